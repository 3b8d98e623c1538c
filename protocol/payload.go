package protocol

import (
	"encoding/hex"
	"strings"
)

// Kind tells the two beacon messages apart. It is not carried on air: the
// time-sync payload is recognised by its tag nibble.
type Kind uint8

const (
	KindIdentity Kind = iota
	KindTimeSync
)

func (k Kind) String() string {
	switch k {
	case KindIdentity:
		return "identity"
	case KindTimeSync:
		return "timesync"
	default:
		return "unknown"
	}
}

// UID is the 96-bit hardware unique identifier the identity is derived from.
type UID [UIDSize]byte

// ParseUID decodes 24 hex digits into a UID.
func ParseUID(s string) (UID, error) {
	var uid UID
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return uid, ErrUIDHex
	}
	if len(raw) != UIDSize {
		return uid, ErrUIDLength
	}
	copy(uid[:], raw)
	return uid, nil
}

func (u UID) String() string { return hex.EncodeToString(u[:]) }

// Identity reduces the CRC-32 of the UID to a 7-digit beacon identity.
func Identity(uid UID) uint32 {
	return CRC32(uid[:]) % IdentityRange
}

// AddChecksum packs the low 24 bits of payload with its CRC-8 into a codeword.
func AddChecksum(payload uint32) uint32 {
	payload &= PayloadMask
	b := [3]byte{byte(payload >> 16), byte(payload >> 8), byte(payload)}
	return payload<<8 | uint32(CRC8(b[:]))
}

// IdentityCodeword is the codeword carried by the identity beacon.
func IdentityCodeword(uid UID) uint32 {
	return AddChecksum(Identity(uid))
}

// TimeSyncPayload packs tag(4) | epoch low nibble(4) | deadline(16).
func TimeSyncPayload(deadline, epoch uint16) uint32 {
	return TimeSyncTag<<TimeSyncTagShift |
		(uint32(epoch)&TimeSyncEpochMask)<<TimeSyncEpochPos |
		uint32(deadline)
}

// TimeSyncCodeword is the codeword carried by the time-sync beacon.
func TimeSyncCodeword(deadline, epoch uint16) uint32 {
	return AddChecksum(TimeSyncPayload(deadline, epoch))
}

// SyncEpoch returns the epoch that will be current when the tick counter
// reaches deadline. A deadline that is not ahead of anchor means the 16-bit
// counter wraps on the way, which bumps the epoch once.
func SyncEpoch(anchor, deadline, epoch uint16) uint16 {
	if deadline <= anchor {
		return epoch + 1
	}
	return epoch
}
