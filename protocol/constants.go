package protocol

// Generic beacon & protocol constants (platform independent). All higher layers should depend on this file.
const (
	// Message layout:
	//   Training (4) | Preamble (16) | Codeword (80) | Trailer (4)
	// Every unit on the wire is one Symbol (one byte shifted out by the serial PHY).

	// Sizes of individual regions
	TrainingSize = 4
	PreambleSize = 16
	CodewordSize = 2 * (CodewordBits + FlushBits) // rate 1/2
	TrailerSize  = 4

	// Region offsets within a message
	TrainingOffset = 0
	PreambleOffset = TrainingOffset + TrainingSize // 4
	CodewordOffset = PreambleOffset + PreambleSize // 20
	TrailerOffset  = CodewordOffset + CodewordSize // 100

	// Total message length on air, in symbols
	MessageSize = TrailerOffset + TrailerSize // 104

	// Convolutional code
	CodewordBits = 32 // 24-bit payload + 8-bit CRC
	FlushBits    = 8  // zero bits shifted in to drain the encoder
	PolyA        = 0x1AF
	PolyB        = 0x11D

	// Payload
	PayloadBits   = 24
	PayloadMask   = 1<<PayloadBits - 1
	IdentityRange = 10000000 // identities are 7 decimal digits
	UIDSize       = 12       // 96-bit hardware unique id

	// Time-sync payload: tag(4) | epoch low nibble(4) | deadline(16)
	TimeSyncTag       = 0xA
	TimeSyncTagShift  = 20
	TimeSyncEpochMask = 0xF
	TimeSyncEpochPos  = 16
)

// Scheduling constants. These set the on-air cadence a receiver expects and
// must not be re-derived.
const (
	// Base spacing between frames, in hardware ticks.
	MinSpacing = 10
	// Jitter is drawn uniformly from [0, JitterSpan).
	JitterSpan = 10
	// Number of cycles between two time-sync beacons (about one second).
	SyncPeriod = 667
)
