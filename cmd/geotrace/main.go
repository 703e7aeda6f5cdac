package main

import (
	"fmt"
	"os"

	"github.com/jengzang/geotrace-go/internal/cli"
)

func main() {
	if err := cli.RootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "geotrace:", err)
		os.Exit(1)
	}
}
