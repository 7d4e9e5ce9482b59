//go:build !(rp2040 || rp2350)

package main

import (
	"context"

	"deviceconsole-go/app"
	"deviceconsole-go/config"
	"deviceconsole-go/platform"
)

// Host fallback: the application on stdin/stdout with simulated peripherals.
// cmd/console-host is the full CLI with serial and config-file support.
func main() {
	plat := platform.NewHost(platform.NewStdioDevice())
	a, err := app.New(config.Default(), plat)
	if err != nil {
		println("Error: app setup:", err.Error())
		return
	}
	_ = a.Run(context.Background())
}
