//go:build !tinygo && !baremetal

package bpskbeacon

import (
	"testing"

	"github.com/ystepanoff/bpskbeacon/driver/stub"
)

func TestNewBeaconZeroUID(t *testing.T) {
	b := NewBeacon()
	b.Initialise()
	if b.Identity() != 7607535 {
		t.Errorf("Identity() = %d, want 7607535", b.Identity())
	}
	c := b.Step()
	if c.Sent != KindIdentity {
		t.Errorf("first cycle sent %v", c.Sent)
	}
}

func TestNewBeaconWithDriver(t *testing.T) {
	d := stub.New(UID{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	b := NewBeaconWithDriver(d)
	b.Initialise()
	if b.Identity() != 5750229 {
		t.Errorf("Identity() = %d, want 5750229", b.Identity())
	}
	b.Step()
	if d.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", d.Frames())
	}
}
