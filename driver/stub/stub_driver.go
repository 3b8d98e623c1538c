//go:build !tinygo && !baremetal

package stub

import (
	"sync"

	proto "github.com/ystepanoff/bpskbeacon/protocol"
	"github.com/ystepanoff/bpskbeacon/transport"
)

// Driver implements simulated beacon hardware for host-side testing.
//
// The tick counter advances by one on every ReadCounter call, so busy-waits
// finish after as many polls as there are ticks to wait. A wrap runs the
// overflow handler, or marks it pending while the gate is suppressed.
type Driver struct {
	mu  sync.Mutex
	uid proto.UID

	ticks      uint64
	overflow   func()
	suppressed bool
	pending    int
	delivered  int

	readyDelay int // IsReady polls answered false before each unit
	readyPolls int
	busyDelay  int // IsBusy polls answered true before each frame completes
	busyPolls  int
	busyTotal  int
	busyMasked int // IsBusy polls made with the gate suppressed
	readMasked int // ReadCounter calls made with the gate suppressed
	current    []byte
	unmasked   int // units sent with the gate open
	txBuf      ringBuffer
	frames     int

	led    bool
	blinks int
}

var _ transport.BeaconDriver = (*Driver)(nil)

func New(uid proto.UID) *Driver { return &Driver{uid: uid} }

func (d *Driver) UniqueID() proto.UID { return d.uid }

// SetCounter moves the simulated counter. The next read returns v+1.
func (d *Driver) SetCounter(v uint16) {
	d.mu.Lock()
	d.ticks = d.ticks&^0xFFFF | uint64(v)
	d.mu.Unlock()
}

// SetReadyDelay makes the PHY report not-ready n times before each unit.
func (d *Driver) SetReadyDelay(n int) {
	d.mu.Lock()
	d.readyDelay = n
	d.mu.Unlock()
}

// SetBusyDelay makes the PHY report busy n times before each frame
// completes.
func (d *Driver) SetBusyDelay(n int) {
	d.mu.Lock()
	d.busyDelay = n
	d.mu.Unlock()
}

func (d *Driver) ReadCounter() uint16 {
	d.mu.Lock()
	if d.suppressed {
		d.readMasked++
	}
	d.ticks++
	now := uint16(d.ticks)
	var fire func()
	if now == 0 {
		if d.suppressed {
			d.pending++
		} else {
			fire = d.overflow
			d.delivered++
		}
	}
	d.mu.Unlock()

	if fire != nil {
		fire()
	}
	return now
}

func (d *Driver) OnOverflow(handler func()) {
	d.mu.Lock()
	d.overflow = handler
	d.mu.Unlock()
}

func (d *Driver) Suppress() {
	d.mu.Lock()
	d.suppressed = true
	d.mu.Unlock()
}

func (d *Driver) Release() {
	d.mu.Lock()
	d.suppressed = false
	n := d.pending
	d.pending = 0
	d.delivered += n
	fire := d.overflow
	d.mu.Unlock()

	for ; n > 0 && fire != nil; n-- {
		fire()
	}
}

func (d *Driver) IsReady() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.readyPolls < d.readyDelay {
		d.readyPolls++
		return false
	}
	return true
}

func (d *Driver) SendUnit(b byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.readyPolls = 0
	if !d.suppressed {
		d.unmasked++
	}
	d.current = append(d.current, b)
}

// IsBusy completes the frame in flight and reports idle, after the
// configured number of busy polls.
func (d *Driver) IsBusy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.suppressed {
		d.busyMasked++
	}
	if len(d.current) > 0 && d.busyPolls < d.busyDelay {
		d.busyPolls++
		d.busyTotal++
		return true
	}
	d.busyPolls = 0
	if len(d.current) > 0 {
		d.txBuf.push(d.current)
		d.current = nil
		d.frames++
	}
	return false
}

func (d *Driver) Set(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.led && !on {
		d.blinks++
	}
	d.led = on
}

// GetTxLog returns the most recent frames, oldest first.
func (d *Driver) GetTxLog() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.txBuf.snapshot()
}

// Frames returns the number of frames sent.
func (d *Driver) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// UnmaskedUnits returns how many units were sent with the tick interrupt
// enabled.
func (d *Driver) UnmaskedUnits() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.unmasked
}

// BusyPolls returns how many IsBusy calls reported busy.
func (d *Driver) BusyPolls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busyTotal
}

// MaskedPolls returns how many IsBusy and ReadCounter calls were made with
// the tick interrupt suppressed.
func (d *Driver) MaskedPolls() (busy, reads int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busyMasked, d.readMasked
}

// Overflows returns how many overflow interrupts were delivered.
func (d *Driver) Overflows() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.delivered
}

// LED returns the indicator state and how many times it was switched off.
func (d *Driver) LED() (on bool, blinks int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.led, d.blinks
}

const ringCapacity = 64

type ringBuffer struct {
	data       [ringCapacity][]byte
	head, tail int // head = oldest, tail = next push
	count      int
}

func (rb *ringBuffer) push(frame []byte) {
	if rb.count == ringCapacity {
		// Overwrite the oldest when buffer is full to keep memory bounded
		rb.data[rb.tail] = nil
		rb.head = (rb.head + 1) % ringCapacity
		rb.count--
	}
	rb.data[rb.tail] = frame
	rb.tail = (rb.tail + 1) % ringCapacity
	rb.count++
}

func (rb *ringBuffer) snapshot() [][]byte {
	out := make([][]byte, rb.count)
	i := rb.head
	for c := 0; c < rb.count; c++ {
		p := rb.data[i]
		cp := make([]byte, len(p))
		copy(cp, p)
		out[c] = cp
		i = (i + 1) % ringCapacity
	}
	return out
}
