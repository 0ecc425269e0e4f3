package resumesrv

import (
	"context"
	"sync"

	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/recruitment/resume"
)

// LocalLocker serializes runs per candidate within one process.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[kernel.CandidateID]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

var _ resume.CandidateLocker = (*LocalLocker)(nil)

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[kernel.CandidateID]*slot)}
}

func (l *LocalLocker) Lock(ctx context.Context, candidateID kernel.CandidateID) (func(), error) {
	l.mu.Lock()
	s, ok := l.slots[candidateID]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[candidateID] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.unref(candidateID, s)
		return nil, resume.ErrCandidateBusy().
			WithDetail("candidate_id", candidateID).
			WithCause(ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.unref(candidateID, s)
		})
	}, nil
}

func (l *LocalLocker) unref(candidateID kernel.CandidateID, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, candidateID)
	}
}
