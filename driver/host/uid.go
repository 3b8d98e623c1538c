//go:build !tinygo && !baremetal

package host

import (
	"fmt"
	"os"
	"strings"

	proto "github.com/ystepanoff/bpskbeacon/protocol"
)

const DefaultMachineIDPath = "/etc/machine-id"

// ReadMachineID derives a UID from the first 96 bits of a systemd
// machine-id file.
func ReadMachineID(path string) (proto.UID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return proto.UID{}, fmt.Errorf("read machine id: %w", err)
	}
	s := strings.TrimSpace(string(data))
	if len(s) < 2*proto.UIDSize {
		return proto.UID{}, fmt.Errorf("machine id %s: %w", path, proto.ErrUIDLength)
	}
	uid, err := proto.ParseUID(s[:2*proto.UIDSize])
	if err != nil {
		return proto.UID{}, fmt.Errorf("machine id %s: %w", path, err)
	}
	return uid, nil
}
