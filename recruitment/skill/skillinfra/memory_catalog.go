package skillinfra

import (
	"context"
	"strings"
	"sync"

	"github.com/Abraxas-365/cvrelay/recruitment/skill"
)

// MemoryCatalog is an in-process catalog matching names the way the
// postgres catalog does: case-insensitive, accent-sensitive. It backs
// tests and local runs without a database.
type MemoryCatalog struct {
	mu     sync.RWMutex
	byName map[string]skill.Skill
}

var _ skill.Catalog = (*MemoryCatalog)(nil)

func NewMemoryCatalog(skills ...skill.Skill) *MemoryCatalog {
	c := &MemoryCatalog{byName: make(map[string]skill.Skill)}
	for _, s := range skills {
		c.Put(s)
	}
	return c
}

func (c *MemoryCatalog) Put(s skill.Skill) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byName[strings.ToLower(strings.TrimSpace(s.Name))] = s
}

func (c *MemoryCatalog) FindByName(ctx context.Context, name string) (*skill.Skill, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok || !s.Active {
		return nil, skill.ErrSkillNotFound().WithDetail("name", name)
	}
	return &s, nil
}
