package channel

import "sync"

// DefaultDepth is the buffer size of the command FIFOs. Writes only block once a
// responder falls this far behind.
const DefaultDepth = 1024

const signalDepth = 4

// Signal is a one-shot notification raised by a responder and polled by the requester.
type Signal uint8

const (
	VBlankStart Signal = iota
	VBlankEnd
	FrameEnd
	signalCount
)

func (s Signal) String() string {
	switch s {
	case VBlankStart:
		return "vblank-start"
	case VBlankEnd:
		return "vblank-end"
	case FrameEnd:
		return "frame-end"
	default:
		return "unknown"
	}
}

// Command is a register write travelling from the requester to the responder.
// Payload is only used by bulk transfers and is always a private copy.
type Command[T any] struct {
	Target  T
	Value   byte
	Payload []byte
}

// Pair connects a single requester (the CPU context) to a single responder (a
// PPU or APU context). T is the responder's register target enumeration.
type Pair[T any] struct {
	writes  chan Command[T]
	reads   chan T
	results chan byte
	signals [signalCount]chan struct{}

	closed    chan struct{}
	closeOnce sync.Once
}

// NewPair creates a channel pair whose command FIFOs hold depth entries.
func NewPair[T any](depth int) *Pair[T] {
	if depth <= 0 {
		depth = DefaultDepth
	}

	p := &Pair[T]{
		writes:  make(chan Command[T], depth),
		reads:   make(chan T, depth),
		results: make(chan byte, depth),
		closed:  make(chan struct{}),
	}
	for i := range p.signals {
		p.signals[i] = make(chan struct{}, signalDepth)
	}
	return p
}

// Requester returns the sending end of the pair.
func (p *Pair[T]) Requester() *Requester[T] {
	return &Requester[T]{p: p}
}

// Responder returns the receiving and replying end of the pair.
func (p *Pair[T]) Responder() *Responder[T] {
	return &Responder[T]{p: p}
}

// Requester is owned by the context issuing register accesses.
type Requester[T any] struct {
	p *Pair[T]
}

// Write enqueues a register write and returns without waiting for it to be applied.
// Writes to a closed responder are dropped.
func (r *Requester[T]) Write(target T, value byte) {
	r.send(Command[T]{Target: target, Value: value})
}

// WriteBlock enqueues a write carrying a payload. The payload is copied.
func (r *Requester[T]) WriteBlock(target T, value byte, payload []byte) {
	data := make([]byte, len(payload))
	copy(data, payload)
	r.send(Command[T]{Target: target, Value: value, Payload: data})
}

func (r *Requester[T]) send(cmd Command[T]) {
	select {
	case r.p.writes <- cmd:
	case <-r.p.closed:
	}
}

// Read enqueues a read request and blocks until the responder answers it.
// If the responder has exited, Read returns 0.
func (r *Requester[T]) Read(target T) byte {
	select {
	case r.p.reads <- target:
	case <-r.p.closed:
		return 0
	}

	select {
	case v := <-r.p.results:
		return v
	case <-r.p.closed:
		select {
		case v := <-r.p.results:
			return v
		default:
			return 0
		}
	}
}

// Poll consumes one pending occurrence of sig, if any. It never blocks.
func (r *Requester[T]) Poll(sig Signal) bool {
	select {
	case <-r.p.signals[sig]:
		return true
	default:
		return false
	}
}

// Responder is owned by the context that applies register accesses.
type Responder[T any] struct {
	p *Pair[T]
}

// NextWrite dequeues the oldest pending write, if any.
func (r *Responder[T]) NextWrite() (Command[T], bool) {
	select {
	case cmd := <-r.p.writes:
		return cmd, true
	default:
		return Command[T]{}, false
	}
}

// NextRead dequeues the oldest pending read request, if any. Every request
// returned must be answered with exactly one Reply.
func (r *Responder[T]) NextRead() (T, bool) {
	select {
	case target := <-r.p.reads:
		return target, true
	default:
		var zero T
		return zero, false
	}
}

// Reply answers the read request most recently taken with NextRead.
func (r *Responder[T]) Reply(value byte) {
	select {
	case r.p.results <- value:
	default:
		// only possible if Reply was called without a matching request
	}
}

// Service handles one tick of traffic: at most one write and at most one read.
// A read is only answered once no writes are queued, so it can never overtake
// a write issued before it.
func (r *Responder[T]) Service(apply func(Command[T]), answer func(T) byte) {
	if cmd, ok := r.NextWrite(); ok {
		apply(cmd)
	}

	if len(r.p.writes) > 0 {
		return
	}

	if target, ok := r.NextRead(); ok {
		r.Reply(answer(target))
	}
}

// Raise emits a one-shot signal. If the requester is too far behind to have
// consumed earlier occurrences, the new one is dropped.
func (r *Responder[T]) Raise(sig Signal) bool {
	select {
	case r.p.signals[sig] <- struct{}{}:
		return true
	default:
		return false
	}
}

// Close marks the responder as gone. Blocked and future requester calls
// return zero values instead of waiting.
func (r *Responder[T]) Close() {
	r.p.closeOnce.Do(func() { close(r.p.closed) })
}

// PendingWrites returns the number of queued writes.
func (r *Responder[T]) PendingWrites() int {
	return len(r.p.writes)
}
