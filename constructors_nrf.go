//go:build tinygo || baremetal

// This file is built only for embedded targets (using real beacon hardware).
package bpskbeacon

import (
	"github.com/ystepanoff/bpskbeacon/driver/nrf"
)

// NewBeacon returns a scheduler on the nRF52 hardware.
func NewBeacon() *Scheduler {
	return NewBeaconWithDriver(nrf.New())
}
