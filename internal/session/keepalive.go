package session

import (
	"context"
	"strings"
	"sync"
)

// monitor is the handle of one keep-alive loop. stop is closed to cancel
// the loop; done is closed by the loop itself once it has fully terminated,
// which is what Login waits on before starting a replacement.
type monitor struct {
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func newMonitor() *monitor {
	return &monitor{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

func (m *monitor) cancel() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// keepAlive probes the portal identity endpoint on a fixed cadence and
// closes the owning session the moment the probe errors out, times out, or
// answers with a name that does not match the credentials. Probe failures
// are never surfaced to callers; forcing the session closed is the whole
// effect. A deliberate cancellation via m.stop exits without touching the
// session, since the canceller (Close, or a Login installing a replacement)
// owns the state transition. The loop holds no session lock while probing.
func (s *Session) keepAlive(m *monitor) {
	defer close(m.done)

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.Chan():
		}

		name, err := s.probe(context.Background())
		if err != nil || !strings.EqualFold(name, s.Username()) {
			s.log.Debug(context.Background(), "keep-alive probe failed, closing session",
				"identity", name, "err", err)
			s.Close()
			return
		}
	}
}
