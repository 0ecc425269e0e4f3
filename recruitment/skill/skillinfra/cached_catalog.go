package skillinfra

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Abraxas-365/cvrelay/pkg/errx"
	"github.com/Abraxas-365/cvrelay/pkg/logx"
	"github.com/Abraxas-365/cvrelay/recruitment/skill"
	"github.com/redis/go-redis/v9"
)

const missMarker = "-"

// CachedCatalog caches lookups of another catalog in Redis, misses included.
// Redis failures fall through to the wrapped catalog.
type CachedCatalog struct {
	next   skill.Catalog
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ skill.Catalog = (*CachedCatalog)(nil)

func NewCachedCatalog(next skill.Catalog, client *redis.Client, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{
		next:   next,
		client: client,
		prefix: "skills:catalog:",
		ttl:    ttl,
	}
}

// key follows the catalog's matching rule: case-insensitive, accents kept.
func (c *CachedCatalog) key(name string) string {
	return c.prefix + strings.ToLower(strings.TrimSpace(name))
}

func (c *CachedCatalog) FindByName(ctx context.Context, name string) (*skill.Skill, error) {
	key := c.key(name)

	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if cached == missMarker {
			return nil, skill.ErrSkillNotFound().WithDetail("name", name)
		}
		var s skill.Skill
		if jsonErr := json.Unmarshal([]byte(cached), &s); jsonErr == nil {
			return &s, nil
		}
		logx.Warnf("Discarding malformed cached skill %q", key)
	case !errors.Is(err, redis.Nil):
		logx.Warnf("Skill cache read failed for %q: %v", key, err)
	}

	s, err := c.next.FindByName(ctx, name)
	if err != nil {
		if errx.IsCode(err, skill.CodeSkillNotFound) {
			c.store(ctx, key, missMarker)
		}
		return nil, err
	}

	if data, jsonErr := json.Marshal(s); jsonErr == nil {
		c.store(ctx, key, string(data))
	}
	return s, nil
}

func (c *CachedCatalog) store(ctx context.Context, key, value string) {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		logx.Warnf("Skill cache write failed for %q: %v", key, err)
	}
}
