package resumeinfra

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/recruitment/resume"
	"github.com/redis/go-redis/v9"
)

// moveDueScript moves due members of the delayed set to the ready list in
// one step, so concurrent movers never duplicate a job.
var moveDueScript = redis.NewScript(`
local due = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
for _, job in ipairs(due) do
	redis.call('LPUSH', KEYS[2], job)
	redis.call('ZREM', KEYS[1], job)
end
return #due
`)

// RedisQueue implements JobQueue interface using Redis
type RedisQueue struct {
	client    *redis.Client
	queueName string
}

var _ resume.JobQueue = (*RedisQueue)(nil)

// NewRedisQueue creates a new Redis-based queue
func NewRedisQueue(client *redis.Client, queueName string) *RedisQueue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
	}
}

func (q *RedisQueue) delayedKey() string {
	return q.queueName + ":delayed"
}

// Enqueue adds a job to the queue
func (q *RedisQueue) Enqueue(ctx context.Context, jobID kernel.QueueJobID, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return resume.ErrQueueEnqueueFailed().WithDetail("job_id", jobID).WithCause(err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return resume.ErrQueueEnqueueFailed().WithDetail("job_id", jobID).WithCause(err)
	}
	return nil
}

// Dequeue gets a job from the queue (blocking with timeout)
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, resume.ErrQueueDequeueFailed().WithCause(err)
	}

	if len(result) < 2 {
		return nil, resume.ErrQueueDequeueFailed().
			WithDetail("reason", "unexpected reply length").
			WithDetail("length", len(result))
	}
	return []byte(result[1]), nil
}

// EnqueueDelayed schedules a job for later processing (for retries)
func (q *RedisQueue) EnqueueDelayed(ctx context.Context, jobID kernel.QueueJobID, payload any, delay time.Duration) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return resume.ErrQueueEnqueueFailed().WithDetail("job_id", jobID).WithCause(err)
	}

	score := float64(time.Now().Add(delay).Unix())
	if err := q.client.ZAdd(ctx, q.delayedKey(), redis.Z{Score: score, Member: data}).Err(); err != nil {
		return resume.ErrQueueEnqueueFailed().
			WithDetail("job_id", jobID).
			WithDetail("delay", delay.String()).
			WithCause(err)
	}
	return nil
}

// MoveDelayedToReady moves delayed jobs that are ready to the main queue
func (q *RedisQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	now := strconv.FormatInt(time.Now().Unix(), 10)

	n, err := moveDueScript.Run(ctx, q.client, []string{q.delayedKey(), q.queueName}, now).Int()
	if err != nil {
		return 0, resume.ErrQueueDequeueFailed().
			WithDetail("operation", "move_delayed").
			WithCause(err)
	}
	return n, nil
}

// Stats returns the number of ready and delayed jobs
func (q *RedisQueue) Stats(ctx context.Context) (map[string]any, error) {
	pipe := q.client.Pipeline()
	ready := pipe.LLen(ctx, q.queueName)
	delayed := pipe.ZCard(ctx, q.delayedKey())
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	return map[string]any{
		"queue_name":   q.queueName,
		"ready_jobs":   ready.Val(),
		"delayed_jobs": delayed.Val(),
	}, nil
}
