//go:build rp2040 || rp2350

package main

import (
	"context"
	"time"

	"deviceconsole-go/app"
	"deviceconsole-go/config"
	"deviceconsole-go/platform"
)

// Pico default wiring: UART0 on GP0/GP1, I2C0 on GP4/GP5, onboard LED GP25.
const (
	pinUARTTX = 0
	pinUARTRX = 1
	pinI2CSDA = 4
	pinI2CSCL = 5
	pinLED    = 25
)

func main() {
	// Let the serial console settle before the first menu print.
	time.Sleep(2 * time.Second)

	plat, err := platform.NewMCU(platform.MCUConfig{
		UARTTX: pinUARTTX,
		UARTRX: pinUARTRX,
		I2CSDA: pinI2CSDA,
		I2CSCL: pinI2CSCL,
		LEDPin: pinLED,
	})
	if err != nil {
		println("Error: platform setup:", err.Error())
		return
	}

	a, err := app.New(config.Default(), plat)
	if err != nil {
		println("Error: app setup:", err.Error())
		return
	}
	_ = a.Run(context.Background())
}
