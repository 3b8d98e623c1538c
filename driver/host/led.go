//go:build !tinygo && !baremetal

package host

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	periphhost "periph.io/x/host/v3"
)

// LED drives a GPIO pin as the heartbeat indicator.
type LED struct {
	pin gpio.PinOut
}

func OpenLED(name string) (*LED, error) {
	if _, err := periphhost.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("gpio %q not found", name)
	}
	if err := p.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("gpio %q: %w", name, err)
	}
	return &LED{pin: p}, nil
}

// Set ignores pin errors: the LED is diagnostic only.
func (l *LED) Set(on bool) { _ = l.pin.Out(gpio.Level(on)) }

type nopLED struct{}

func (nopLED) Set(bool) {}
