package observability

import (
	"github.com/rs/zerolog"

	proto "github.com/ystepanoff/bpskbeacon/protocol"
	"github.com/ystepanoff/bpskbeacon/transport"
)

// CycleObserver logs and records every scheduler cycle.
type CycleObserver struct {
	log     zerolog.Logger
	metrics bool
}

var _ transport.Observer = (*CycleObserver)(nil)

func NewCycleObserver(logger zerolog.Logger, metrics bool) *CycleObserver {
	return &CycleObserver{log: logger, metrics: metrics}
}

func (o *CycleObserver) ObserveCycle(c transport.Cycle) {
	if o.metrics {
		RecordCycle(c)
	}
	if c.Next == proto.KindTimeSync {
		o.log.Info().
			Uint16("deadline", c.Deadline).
			Uint16("epoch", c.Epoch).
			Hex("codeword", codewordBytes(proto.TimeSyncCodeword(c.Deadline, c.Epoch))).
			Msg("time-sync scheduled")
		return
	}
	o.log.Debug().
		Stringer("sent", c.Sent).
		Uint16("start", c.Start).
		Uint16("deadline", c.Deadline).
		Uint16("counter", c.Counter).
		Msg("cycle")
}

func codewordBytes(cw uint32) []byte {
	return []byte{byte(cw >> 24), byte(cw >> 16), byte(cw >> 8), byte(cw)}
}
