package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jengzang/geotrace-go/internal/app"
	"github.com/jengzang/geotrace-go/internal/config"
)

func main() {
	// 加载配置
	cfg, err := config.Load(os.Getenv("GEOTRACE_CONFIG"))
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// 收到中断信号时优雅关闭
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 启动服务器
	if err := app.Run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}
