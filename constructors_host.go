//go:build !tinygo && !baremetal

// This file is built only for non-embedded targets (host-based testing).
package bpskbeacon

import (
	"github.com/ystepanoff/bpskbeacon/driver/stub"
	"github.com/ystepanoff/bpskbeacon/protocol"
)

// NewBeacon returns a scheduler on simulated hardware with an all-zero UID.
func NewBeacon() *Scheduler {
	return NewBeaconWithDriver(stub.New(protocol.UID{}))
}
