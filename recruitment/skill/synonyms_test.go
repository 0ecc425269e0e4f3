package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynonymTableExpand(t *testing.T) {
	table := NewSynonymTable(DefaultSynonymRules()...)

	tests := []struct {
		cleaned string
		want    []string
	}{
		{"Excel", []string{"Excel", "Excel Avanzado"}},
		{"excel avanzado", []string{"excel avanzado"}},
		{"Excel y Word", []string{"Excel y Word", "Excel Avanzado", "Microsoft Office"}},
		{"Manejo de Microsoft Office", []string{"Manejo de Microsoft Office", "Microsoft Office"}},
		{"Comunicación efectiva", []string{"Comunicación efectiva", "Comunicación"}},
		{"Resolución de conflictos", []string{"Resolución de conflictos"}},
		{"Resolución de problemas complejos", []string{"Resolución de problemas complejos", "Resolución de problemas"}},
		{"Herramientas de gestión", []string{"Herramientas de gestión", "Manejo de Herramientas de Gestión"}},
		{"Atencion al cliente", []string{"Atencion al cliente", "Atención al Cliente"}},
		{"Comunicacion", []string{"Comunicacion", "Comunicación"}},
		{"COMUNICACIÓN", []string{"COMUNICACIÓN"}},
		{"Python", []string{"Python"}},
		{"   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.cleaned, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Expand(tt.cleaned))
		})
	}
}

func TestSynonymTableAdd(t *testing.T) {
	table := NewSynonymTable()
	table.Add(
		SynonymRule{Canonical: "Power BI", When: [][]string{{"powerbi"}, {"power", "bi"}}},
		SynonymRule{Canonical: "", When: [][]string{{"x"}}},
		SynonymRule{Canonical: "Nothing"},
	)

	assert.Equal(t, 1, table.Len())
	assert.Equal(t, []string{"Dashboards en PowerBI", "Power BI"}, table.Expand("Dashboards en PowerBI"))
}
