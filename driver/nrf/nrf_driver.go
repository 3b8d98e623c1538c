//go:build tinygo || baremetal

package nrf

import (
	"encoding/binary"
	"machine"
	"runtime/interrupt"

	proto "github.com/ystepanoff/bpskbeacon/protocol"
	"github.com/ystepanoff/bpskbeacon/transport"

	"device/nrf"
)

// overflowHandler is called from the TIMER2 interrupt on every counter wrap.
var overflowHandler func()

// Driver provides a BeaconDriver backed by the nRF52 SPI0, TIMER1/TIMER2 and
// FICR registers. Only one instance may exist.
type Driver struct {
	inFlight int // units written to TXD whose READY event is not consumed yet
	irq      interrupt.Interrupt // TIMER2 overflow
	led      machine.Pin
}

var _ transport.BeaconDriver = (*Driver)(nil)

// New configures SPI0, the tick timers and the board LED.
func New() transport.BeaconDriver {
	d := &Driver{led: machine.LED}
	d.led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	ConfigureSPI(SymbolPin, DefaultSPIFrequency)
	d.irq = ConfigureTicks()
	return d
}

func (d *Driver) SendUnit(b byte) {
	nrf.SPI0.TXD.Set(uint32(b))
	d.inFlight++
}

// IsReady reports whether TXD can take another unit. The legacy SPI master
// double-buffers TXD, so two units may be in flight.
func (d *Driver) IsReady() bool {
	d.service()
	return d.inFlight < 2
}

func (d *Driver) IsBusy() bool {
	d.service()
	return d.inFlight > 0
}

// service consumes one finished unit per READY event.
func (d *Driver) service() {
	if nrf.SPI0.EVENTS_READY.Get() != 0 {
		nrf.SPI0.EVENTS_READY.Set(0)
		_ = nrf.SPI0.RXD.Get()
		d.inFlight--
	}
}

func (d *Driver) ReadCounter() uint16 {
	nrf.TIMER2.TASKS_CAPTURE[captureChannel].Set(1)
	return uint16(nrf.TIMER2.CC[captureChannel].Get())
}

func (d *Driver) OnOverflow(handler func()) { overflowHandler = handler }

// Suppress masks only the TIMER2 line in the NVIC. A wrap while masked
// stays pending and is taken on Release.
func (d *Driver) Suppress() { d.irq.Disable() }

func (d *Driver) Release() { d.irq.Enable() }

func (d *Driver) Set(on bool) { d.led.Set(on) }

// UniqueID reads the 64-bit DEVICEID and the low word of DEVICEADDR.
func (d *Driver) UniqueID() proto.UID {
	var uid proto.UID
	binary.LittleEndian.PutUint32(uid[0:4], nrf.FICR.DEVICEID[0].Get())
	binary.LittleEndian.PutUint32(uid[4:8], nrf.FICR.DEVICEID[1].Get())
	binary.LittleEndian.PutUint32(uid[8:12], nrf.FICR.DEVICEADDR[0].Get())
	return uid
}
