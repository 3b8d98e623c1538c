package transport

import (
	proto "github.com/ystepanoff/bpskbeacon/protocol"
)

// Cycle reports one pass of the scheduling loop.
type Cycle struct {
	Sent     proto.Kind // message drained in this cycle
	Start    uint16     // tick the drain started at
	Deadline uint16     // tick the next message starts at
	Next     proto.Kind
	Epoch    uint16 // epoch announced by the time-sync beacon; zero unless Next is KindTimeSync
	Counter  uint16 // position in the sync period after this cycle
}

// Observer is notified after every cycle, before the deadline wait. It runs
// on the scheduling loop and must return well within one frame spacing.
type Observer interface {
	ObserveCycle(c Cycle)
}

// Scheduler drains beacon messages to the PHY on a jittered, drift-free tick
// schedule. It is single threaded: only the overflow interrupt runs
// concurrently, and it touches nothing but the epoch.
type Scheduler struct {
	driver   BeaconDriver
	epoch    *Epoch
	jitter   JitterFunc
	observer Observer

	identityID uint32
	identity   proto.Message
	timesync   proto.Message

	next    proto.Kind
	counter uint16
	anchor  uint16 // tick the current cycle started at
	ready   bool
}

// NewSchedulerWithDriver returns a scheduler on d with a random jitter
// source. Initialise must run before the first Step, or Step runs it.
func NewSchedulerWithDriver(d BeaconDriver) *Scheduler {
	return &Scheduler{
		driver: d,
		epoch:  &Epoch{},
		jitter: NewRandomJitter(),
	}
}

// Initialise hooks the epoch to the overflow interrupt, frames both
// messages and latches the first scheduling anchor. The identity message is
// never modified afterwards.
func (s *Scheduler) Initialise() {
	s.driver.OnOverflow(s.epoch.Tick)

	uid := s.driver.UniqueID()
	s.identityID = proto.Identity(uid)
	s.identity.Frame()
	s.identity.SetCodeword(proto.AddChecksum(s.identityID))

	s.timesync = *proto.NewMessage()

	s.next = proto.KindIdentity
	s.counter = 0
	s.anchor = s.driver.ReadCounter()
	s.ready = true
}

func (s *Scheduler) SetJitter(j JitterFunc) { s.jitter = j }

func (s *Scheduler) SetObserver(o Observer) { s.observer = o }

// Epoch returns the shared epoch counter.
func (s *Scheduler) Epoch() *Epoch { return s.epoch }

// Identity returns the 7-digit identity carried by the identity beacon.
func (s *Scheduler) Identity() uint32 { return s.identityID }

// Message returns a copy of the message of the given kind.
func (s *Scheduler) Message(k proto.Kind) proto.Message {
	return *s.message(k)
}

func (s *Scheduler) message(k proto.Kind) *proto.Message {
	if k == proto.KindTimeSync {
		return &s.timesync
	}
	return &s.identity
}

// Step runs one cycle: drain the selected message, pick and prepare the next
// one, then busy-wait until its deadline.
func (s *Scheduler) Step() Cycle {
	if !s.ready {
		s.Initialise()
	}
	c := Cycle{Sent: s.next, Start: s.anchor}

	s.drain(s.message(s.next))
	s.driver.Set(true)

	deadline := s.anchor + proto.MinSpacing + s.jitter()%proto.JitterSpan

	s.counter = (s.counter + 1) % proto.SyncPeriod
	if s.counter == 0 {
		// blink once per sync period
		s.driver.Set(false)

		epoch := proto.SyncEpoch(s.anchor, deadline, s.epoch.Load())
		s.timesync.SetCodeword(proto.TimeSyncCodeword(deadline, epoch))
		s.next = proto.KindTimeSync
		c.Epoch = epoch
	} else {
		s.next = proto.KindIdentity
	}

	c.Deadline = deadline
	c.Next = s.next
	c.Counter = s.counter
	if s.observer != nil {
		s.observer.ObserveCycle(c)
	}

	s.waitUntil(deadline)
	s.anchor = deadline
	return c
}

// Run steps forever. There is no shutdown path.
func (s *Scheduler) Run() {
	for {
		s.Step()
	}
}

// drain shifts the message out back to back. The tick interrupt is masked so
// its latency cannot stretch the gap between two units and break phase
// continuity.
func (s *Scheduler) drain(m *proto.Message) {
	wire := m.Bytes()

	s.driver.Suppress()
	for _, b := range wire {
		for !s.driver.IsReady() {
		}
		s.driver.SendUnit(b)
	}
	s.driver.Release()

	for s.driver.IsBusy() {
	}
}

// waitUntil polls the counter for equality. The counter advances by exactly
// one per period, so it cannot step over the deadline.
func (s *Scheduler) waitUntil(deadline uint16) {
	for s.driver.ReadCounter() != deadline {
	}
}
