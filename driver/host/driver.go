//go:build !tinygo && !baremetal

// Package host runs the beacon on a hosted system: an emulated tick counter
// and a spidev, UART or discarding physical layer.
package host

import (
	proto "github.com/ystepanoff/bpskbeacon/protocol"
	"github.com/ystepanoff/bpskbeacon/transport"
)

// Driver combines a Clock, a physical layer and an optional LED.
type Driver struct {
	*Clock
	transport.PhysicalLayer
	led transport.Indicator
	uid proto.UID
}

var _ transport.BeaconDriver = (*Driver)(nil)

// New returns a driver. A nil led disables the indicator.
func New(clock *Clock, phy transport.PhysicalLayer, led transport.Indicator, uid proto.UID) *Driver {
	if led == nil {
		led = nopLED{}
	}
	return &Driver{Clock: clock, PhysicalLayer: phy, led: led, uid: uid}
}

func (d *Driver) Set(on bool) { d.led.Set(on) }

func (d *Driver) UniqueID() proto.UID { return d.uid }
