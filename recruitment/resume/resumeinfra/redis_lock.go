package resumeinfra

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/pkg/logx"
	"github.com/Abraxas-365/cvrelay/recruitment/resume"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// DefaultLockPrefix namespaces candidate lock keys as resume:lock:<id>.
const DefaultLockPrefix = "resume:lock"

// RedisCandidateLock serializes candidate runs across service instances.
// The lock expires after ttl so a crashed holder cannot block a candidate
// forever.
type RedisCandidateLock struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	poll   time.Duration
}

var _ resume.CandidateLocker = (*RedisCandidateLock)(nil)

func NewRedisCandidateLock(client *redis.Client, prefix string, ttl time.Duration) *RedisCandidateLock {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	prefix = strings.TrimSuffix(prefix, ":")
	if prefix == "" {
		prefix = DefaultLockPrefix
	}
	return &RedisCandidateLock{client: client, prefix: prefix, ttl: ttl, poll: 100 * time.Millisecond}
}

func (l *RedisCandidateLock) key(candidateID kernel.CandidateID) string {
	return l.prefix + ":" + candidateID.String()
}

func (l *RedisCandidateLock) Lock(ctx context.Context, candidateID kernel.CandidateID) (func(), error) {
	key := l.key(candidateID)
	token := uuid.NewString()

	ticker := time.NewTicker(l.poll)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, resume.ErrCandidateBusy().
				WithDetail("candidate_id", candidateID).
				WithCause(err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, resume.ErrCandidateBusy().
				WithDetail("candidate_id", candidateID).
				WithCause(ctx.Err())
		case <-ticker.C:
		}
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true

		// the caller's ctx may already be done
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
			logx.Warnf("Failed to release candidate lock %s: %v", key, err)
		}
	}, nil
}
