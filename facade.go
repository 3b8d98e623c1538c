// Package bpskbeacon provides a façade to access the beacon encoder and
// transmission scheduler.
package bpskbeacon

import (
	"github.com/ystepanoff/bpskbeacon/protocol"
	"github.com/ystepanoff/bpskbeacon/transport"
)

// The actual constructors are split into build-tag specific files:
// - constructors_nrf.go - for embedded platforms (//go:build tinygo || baremetal)
// - constructors_host.go - for development/testing (//go:build !tinygo && !baremetal)

type (
	Symbol    = protocol.Symbol
	Message   = protocol.Message
	Kind      = protocol.Kind
	UID       = protocol.UID
	Scheduler = transport.Scheduler
	Cycle     = transport.Cycle
	Driver    = transport.BeaconDriver
	Observer  = transport.Observer
)

var (
	ErrUIDLength = protocol.ErrUIDLength
	ErrUIDHex    = protocol.ErrUIDHex
)

const (
	SymbolMinus = protocol.SymbolMinus
	SymbolPlus  = protocol.SymbolPlus

	KindIdentity = protocol.KindIdentity
	KindTimeSync = protocol.KindTimeSync

	MessageSize = protocol.MessageSize
)

// NewBeaconWithDriver returns a scheduler on the given hardware.
func NewBeaconWithDriver(d Driver) *Scheduler {
	return transport.NewSchedulerWithDriver(d)
}
