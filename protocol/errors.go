package protocol

import "errors"

var (
	ErrUIDLength = errors.New("protocol: unique id must be 12 bytes")
	ErrUIDHex    = errors.New("protocol: unique id is not valid hex")
)
