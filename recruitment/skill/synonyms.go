package skill

import (
	"strings"
	"sync"

	"github.com/Abraxas-365/cvrelay/internal/textnorm"
)

// SynonymRule proposes Canonical for a cleaned phrase when any of the
// trigger groups matches. A group matches when the folded phrase contains
// every one of its substrings.
type SynonymRule struct {
	Canonical string     `yaml:"canonical" json:"canonical"`
	When      [][]string `yaml:"when" json:"when"`
}

func (r SynonymRule) matches(folded string) bool {
	for _, group := range r.When {
		if len(group) == 0 {
			continue
		}
		all := true
		for _, trigger := range group {
			if !strings.Contains(folded, textnorm.Fold(trigger)) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// DefaultSynonymRules is the built-in trigger table.
func DefaultSynonymRules() []SynonymRule {
	return []SynonymRule{
		{Canonical: "Manejo de CRM", When: [][]string{{"crm"}}},
		{Canonical: "Excel Avanzado", When: [][]string{{"excel"}}},
		{Canonical: "Microsoft Office", When: [][]string{{"microsoft office"}, {"excel", "word"}}},
		{Canonical: "Ventas", When: [][]string{{"venta"}}},
		{Canonical: "Atención al Cliente", When: [][]string{{"cliente"}}},
		{Canonical: "Comunicación", When: [][]string{{"comunic"}}},
		{Canonical: "Manejo de Herramientas de Gestión", When: [][]string{{"herramienta", "gest"}}},
		{Canonical: "Gestión Documentaria", When: [][]string{{"reporte"}}},
		{Canonical: "Trabajo en equipo", When: [][]string{{"equipo"}}},
		{Canonical: "Proactividad", When: [][]string{{"proactiv"}}},
		{Canonical: "Resolución de problemas", When: [][]string{{"resoluci", "proble"}}},
		{Canonical: "Organización", When: [][]string{{"organiz"}}},
		{Canonical: "Responsabilidad", When: [][]string{{"responsab"}}},
	}
}

// SynonymTable is an ordered, extensible list of synonym rules. It is safe
// for concurrent use.
type SynonymTable struct {
	mu    sync.RWMutex
	rules []SynonymRule
}

func NewSynonymTable(rules ...SynonymRule) *SynonymTable {
	t := &SynonymTable{}
	t.Add(rules...)
	return t
}

// Add appends rules. Rules without a canonical name or triggers are ignored.
func (t *SynonymTable) Add(rules ...SynonymRule) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, r := range rules {
		if strings.TrimSpace(r.Canonical) == "" || len(r.When) == 0 {
			continue
		}
		t.rules = append(t.rules, r)
	}
}

func (t *SynonymTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rules)
}

// Expand returns the candidate catalog names for a cleaned phrase: the
// phrase itself first, then every triggered canonical name, without
// case-insensitive duplicates. Spellings that differ in accents are kept.
func (t *SynonymTable) Expand(cleaned string) []string {
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil
	}

	folded := textnorm.Fold(cleaned)
	out := []string{cleaned}
	// Catalog lookups are case-insensitive but accent-sensitive, so
	// "Comunicacion" and "Comunicación" are both worth trying.
	seen := map[string]bool{strings.ToLower(cleaned): true}

	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, r := range t.rules {
		if !r.matches(folded) {
			continue
		}
		key := strings.ToLower(r.Canonical)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r.Canonical)
	}
	return out
}
