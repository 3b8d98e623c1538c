//go:build !tinygo && !baremetal

package host

import (
	"errors"
	"fmt"
	"io"

	"go.bug.st/serial"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	periphhost "periph.io/x/host/v3"
)

var ErrLineClosed = errors.New("host: line closed")

// maxBurst bounds the units queued before IsReady reports false.
const maxBurst = 4096

// Line is a physical layer for hosted serial interfaces. Units are queued by
// SendUnit and shifted out as one back-to-back transfer when the caller
// waits for idle, since spidev and tty writes are synchronous.
type Line struct {
	name   string
	write  func([]byte) error
	closer io.Closer
	buf    []byte
	fail   func(error)

	units  uint64
	bursts uint64
}

func newLine(name string, write func([]byte) error, closer io.Closer) *Line {
	return &Line{
		name:   name,
		write:  write,
		closer: closer,
		buf:    make([]byte, 0, maxBurst),
		fail:   func(err error) { panic(err) },
	}
}

// OpenSPI opens a spidev port through periph. The MOSI line carries the
// symbols; hz is the bit clock.
func OpenSPI(name string, hz physic.Frequency, mode spi.Mode) (*Line, error) {
	if _, err := periphhost.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	port, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", name, err)
	}
	conn, err := port.Connect(hz, mode, 8)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("connect spi %q: %w", name, err)
	}
	write := func(b []byte) error { return conn.Tx(b, nil) }
	return newLine(port.String(), write, port), nil
}

// OpenSerial opens a UART through go.bug.st/serial. Each unit goes out as one
// 8N1 character.
func OpenSerial(name string, baud int) (*Line, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial %q: %w", name, err)
	}
	write := func(b []byte) error {
		if _, err := port.Write(b); err != nil {
			return err
		}
		return port.Drain()
	}
	return newLine(name, write, port), nil
}

// NewDiscard returns a line that accepts and drops every unit.
func NewDiscard() *Line {
	return newLine("discard", func([]byte) error { return nil }, nil)
}

// OnError replaces the failure handler. The default panics: a failed transfer
// is fatal, there is no retry.
func (l *Line) OnError(fn func(error)) { l.fail = fn }

func (l *Line) String() string { return l.name }

func (l *Line) SendUnit(b byte) { l.buf = append(l.buf, b) }

func (l *Line) IsReady() bool { return len(l.buf) < maxBurst }

// IsBusy flushes the queued units and reports idle once they are out.
func (l *Line) IsBusy() bool {
	if len(l.buf) == 0 {
		return false
	}
	if l.write == nil {
		l.fail(ErrLineClosed)
		return false
	}
	if err := l.write(l.buf); err != nil {
		l.fail(fmt.Errorf("%s: write: %w", l.name, err))
	}
	l.units += uint64(len(l.buf))
	l.bursts++
	l.buf = l.buf[:0]
	return false
}

// Stats returns the units and transfers written so far.
func (l *Line) Stats() (units, bursts uint64) { return l.units, l.bursts }

func (l *Line) Close() error {
	l.write = nil
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
