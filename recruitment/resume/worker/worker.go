package worker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Abraxas-365/cvrelay/pkg/logx"
	"github.com/Abraxas-365/cvrelay/recruitment/resume"
)

// JobHandler runs one queued candidate job. *resumesrv.Service satisfies it.
type JobHandler interface {
	HandleJob(ctx context.Context, job *resume.ProcessingJob) error
}

type Options struct {
	Workers        int
	DequeueTimeout time.Duration
	MoveInterval   time.Duration
}

func DefaultOptions() Options {
	return Options{
		Workers:        2,
		DequeueTimeout: 5 * time.Second,
		MoveInterval:   30 * time.Second,
	}
}

type ResumeWorker struct {
	handler JobHandler
	queue   resume.JobQueue
	opts    Options
	wg      sync.WaitGroup
}

func NewResumeWorker(handler JobHandler, queue resume.JobQueue, opts Options) *ResumeWorker {
	def := DefaultOptions()
	if opts.Workers <= 0 {
		opts.Workers = def.Workers
	}
	if opts.DequeueTimeout <= 0 {
		opts.DequeueTimeout = def.DequeueTimeout
	}
	if opts.MoveInterval <= 0 {
		opts.MoveInterval = def.MoveInterval
	}
	return &ResumeWorker{
		handler: handler,
		queue:   queue,
		opts:    opts,
	}
}

// Start launches the pool and the delayed-job mover. They stop when ctx ends;
// Wait blocks until they have.
func (w *ResumeWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d resume workers", w.opts.Workers)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.moveDelayedJobs(ctx)
	}()

	for i := 0; i < w.opts.Workers; i++ {
		w.wg.Add(1)
		go func(id int) {
			defer w.wg.Done()
			w.processJobs(ctx, id)
		}(i)
	}
}

func (w *ResumeWorker) Wait() {
	w.wg.Wait()
}

func (w *ResumeWorker) processJobs(ctx context.Context, workerID int) {
	logx.Infof("Worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Worker %d stopping", workerID)
			return
		default:
		}

		data, err := w.queue.Dequeue(ctx, w.opts.DequeueTimeout)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			logx.Errorf("Worker %d dequeue error: %v", workerID, err)
			w.pause(ctx)
			continue
		}
		if len(data) == 0 {
			continue
		}

		w.runJob(ctx, workerID, data)
	}
}

func (w *ResumeWorker) runJob(ctx context.Context, workerID int, data []byte) {
	var job resume.ProcessingJob
	if err := json.Unmarshal(data, &job); err != nil {
		logx.Errorf("Worker %d unmarshal error: %v (data: %s)", workerID, err, string(data))
		return
	}

	log := logx.With(logx.Fields{
		"worker":       workerID,
		"queue_job_id": job.ID.String(),
		"candidate_id": job.CandidateID.String(),
	})
	log.Infof("Processing job (attempt %d/%d)", job.AttemptCount+1, job.MaxAttempts)

	if err := w.handler.HandleJob(ctx, &job); err != nil {
		log.Errorf("Job failed: %v", err)
	}
}

// pause backs off after a dequeue error so a broken connection does not spin.
func (w *ResumeWorker) pause(ctx context.Context) {
	t := time.NewTimer(time.Second)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func (w *ResumeWorker) moveDelayedJobs(ctx context.Context) {
	ticker := time.NewTicker(w.opts.MoveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed jobs: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed jobs to ready queue", count)
			}
		}
	}
}
