package render

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/scarevision/casebook/internal/service/casebook/domain/record"
)

// Listener reacts to the data ready signal.
type Listener func(records []record.Record)

type namedListener struct {
	name string
	fn   Listener
}

// Signal is the data ready event. Listeners run synchronously in
// registration order, but none may rely on that order. A listener that panics
// is logged and skipped so the remaining sections still render.
type Signal struct {
	logger    *zap.Logger
	listeners []namedListener
	records   []record.Record
	published bool
	delivered bool
}

func NewSignal(logger *zap.Logger) *Signal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Signal{logger: logger}
}

func (s *Signal) Listen(name string, fn Listener) {
	s.listeners = append(s.listeners, namedListener{name: name, fn: fn})
}

// Publish stores records and raises the signal.
func (s *Signal) Publish(records []record.Record) {
	s.records = records
	s.published = true
	s.fire()
}

// Catchup raises the signal once for listeners registered after records
// were already published. It does nothing when the records have been
// delivered or none are available.
func (s *Signal) Catchup() {
	if !s.published || s.delivered || len(s.records) == 0 {
		return
	}
	s.fire()
}

func (s *Signal) fire() {
	for _, l := range s.listeners {
		s.run(l)
	}
	if len(s.listeners) > 0 {
		s.delivered = true
	}
}

func (s *Signal) run(l namedListener) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("section handler failed",
				zap.String("section", l.name),
				zap.String("panic", fmt.Sprint(r)))
		}
	}()
	l.fn(s.records)
}
