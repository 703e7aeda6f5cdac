package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when a server setting violates its contract
var ErrInvalidConfig = errors.New("invalid config")

// Config 应用配置
type Config struct {
	Port              string
	DBPath            string
	ReportCacheTTL    time.Duration // 报告缓存时间
	RateLimitRequests int
	RateLimitWindow   time.Duration
	Analysis          Thresholds
}

// setDefaults registers default values for every configuration key
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8080")
	v.SetDefault("database.path", "./data/geotrace.db")
	v.SetDefault("report.cachettl", "30m")
	v.SetDefault("ratelimit.requests", 120)
	v.SetDefault("ratelimit.window", "1m")

	d := DefaultThresholds()
	v.SetDefault("analysis.epskm", d.EpsKm)
	v.SetDefault("analysis.minsamples", d.MinSamples)
	v.SetDefault("analysis.visitgapseconds", d.VisitGapSeconds)
	v.SetDefault("analysis.stationarykmh", d.StationaryKmh)
	v.SetDefault("analysis.walkingkmh", d.WalkingKmh)
	v.SetDefault("analysis.drivingkmh", d.DrivingKmh)
	v.SetDefault("analysis.workers", d.Workers)
}

// Load 加载配置
// Values come from defaults, then the optional YAML file, then environment
// variables (GEOTRACE_SERVER_PORT, GEOTRACE_ANALYSIS_EPSKM, ... plus PORT and DB_PATH).
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GEOTRACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", "GEOTRACE_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind port env: %w", err)
	}
	if err := v.BindEnv("database.path", "GEOTRACE_DATABASE_PATH", "DB_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind database env: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("geotrace")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Config{
		Port:              v.GetString("server.port"),
		DBPath:            v.GetString("database.path"),
		ReportCacheTTL:    v.GetDuration("report.cachettl"),
		RateLimitRequests: v.GetInt("ratelimit.requests"),
		RateLimitWindow:   v.GetDuration("ratelimit.window"),
		Analysis: Thresholds{
			EpsKm:           v.GetFloat64("analysis.epskm"),
			MinSamples:      v.GetInt("analysis.minsamples"),
			VisitGapSeconds: v.GetFloat64("analysis.visitgapseconds"),
			StationaryKmh:   v.GetFloat64("analysis.stationarykmh"),
			WalkingKmh:      v.GetFloat64("analysis.walkingkmh"),
			DrivingKmh:      v.GetFloat64("analysis.drivingkmh"),
			Workers:         v.GetInt("analysis.workers"),
		},
	}

	if !strings.HasPrefix(cfg.Port, ":") && !strings.Contains(cfg.Port, ":") {
		cfg.Port = ":" + cfg.Port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks settings that would otherwise fail at startup
func (c *Config) Validate() error {
	if c.RateLimitRequests < 0 {
		return fmt.Errorf("%w: ratelimit.requests must not be negative, got %d", ErrInvalidConfig, c.RateLimitRequests)
	}
	if c.RateLimitRequests > 0 && c.RateLimitWindow <= 0 {
		return fmt.Errorf("%w: ratelimit.window must be positive, got %v", ErrInvalidConfig, c.RateLimitWindow)
	}
	return c.Analysis.Validate()
}
