package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/recruitment/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanQueue struct {
	ready chan []byte
	moved atomic.Int32
}

func newChanQueue() *chanQueue {
	return &chanQueue{ready: make(chan []byte, 16)}
}

func (q *chanQueue) Enqueue(ctx context.Context, jobID kernel.QueueJobID, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	q.ready <- data
	return nil
}

func (q *chanQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	select {
	case data := <-q.ready:
		return data, nil
	case <-time.After(timeout):
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *chanQueue) EnqueueDelayed(ctx context.Context, jobID kernel.QueueJobID, payload any, delay time.Duration) error {
	return q.Enqueue(ctx, jobID, payload)
}

func (q *chanQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	q.moved.Add(1)
	return 0, nil
}

type recordingHandler struct {
	mu   sync.Mutex
	seen []kernel.CandidateID
	err  error
}

func (h *recordingHandler) HandleJob(ctx context.Context, job *resume.ProcessingJob) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen = append(h.seen, job.CandidateID)
	return h.err
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.seen)
}

func TestResumeWorker_DrainsQueue(t *testing.T) {
	queue := newChanQueue()
	handler := &recordingHandler{err: errors.New("boom")}
	w := NewResumeWorker(handler, queue, Options{
		Workers:        2,
		DequeueTimeout: 20 * time.Millisecond,
		MoveInterval:   10 * time.Millisecond,
	})

	for _, id := range []string{"c-1", "c-2", "c-3"} {
		require.NoError(t, queue.Enqueue(context.Background(), kernel.QueueJobID("q-"+id), resume.ProcessingJob{
			ID:          kernel.QueueJobID("q-" + id),
			CandidateID: kernel.CandidateID(id),
			MaxAttempts: 3,
		}))
	}
	queue.ready <- []byte("not json")

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	require.Eventually(t, func() bool { return handler.count() == 3 }, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return queue.moved.Load() > 0 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	w.Wait()

	assert.ElementsMatch(t, []kernel.CandidateID{"c-1", "c-2", "c-3"}, handler.seen)
}

func TestNewResumeWorker_Defaults(t *testing.T) {
	w := NewResumeWorker(&recordingHandler{}, newChanQueue(), Options{})
	assert.Equal(t, DefaultOptions(), w.opts)
}
