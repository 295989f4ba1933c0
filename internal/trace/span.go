package trace

import (
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next global event sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a fresh span ID; 0 is never issued.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// Span is an open begin/end pair. The zero tracer makes it inert.
type Span struct {
	tracer  Tracer
	event   Event // template for the end event
	started time.Time
}

// Begin emits a span-begin event under parent (0 for roots). When t is nil,
// disabled or filters scope out, the returned span does nothing.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{tracer: Nop}
	}
	s := &Span{
		tracer:  t,
		started: time.Now(),
		event: Event{
			Scope:    scope,
			SpanID:   NextSpanID(),
			ParentID: parent,
			Name:     name,
		},
	}
	s.emit(KindSpanBegin, s.started, "")
	return s
}

func (s *Span) emit(kind Kind, at time.Time, detail string) {
	ev := s.event
	ev.Time = at
	ev.Seq = NextSeq()
	ev.Kind = kind
	ev.Detail = detail
	if kind == KindSpanBegin {
		ev.Extra = nil
	}
	s.tracer.Emit(&ev)
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.tracer.Enabled()
}

// End emits the span-end event with detail and returns the elapsed time.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	s.emit(KindSpanEnd, now, detail)
	return now.Sub(s.started)
}

// WithExtra records key=value on the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.event.Extra == nil {
		s.event.Extra = make(map[string]string)
	}
	s.event.Extra[key] = value
	return s
}

// ID returns the span ID, 0 for inert spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.event.SpanID
}
