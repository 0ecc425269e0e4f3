package resumeparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSection(t *testing.T) {
	text := "Perfil\r\nx\r\nHABILIDADES\r\nExcel\r\nPerfil\r\ny\r\nExperiencia Laboral\r\nz"

	tests := []struct {
		name  string
		start string
		ends  []string
		want  string
	}{
		{"nearest end wins", "Habilidades", []string{"Experiencia Laboral", "Perfil"}, "Excel"},
		{"ends before start are ignored", "Experiencia Laboral", []string{"Perfil"}, "z"},
		{"no end runs to end of text", "Experiencia laboral", nil, "z"},
		{"missing start", "Educación", []string{"Perfil"}, ""},
		{"diacritics ignored", "Habilidádes", []string{"Perfil"}, "Excel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSection(text, tt.start, tt.ends...))
		})
	}
}

func TestFirstSection(t *testing.T) {
	text := "Formación Académica\n\nEducación\nUNI\nPerfil"

	got := FirstSection(text, []string{"Formación Profesional", "Formación Académica", "Educación"}, "Educación", "Perfil")
	assert.Equal(t, "", ExtractSection(text, "Formación Académica", "Educación"))
	assert.Equal(t, "UNI", got)
}

func TestSectionFallbackToWholeDocument(t *testing.T) {
	text := "Analista – Acme 2018 - 2020\n- Reportes"

	assert.Empty(t, ExtractSection(text, "Experiencia Laboral", "Habilidades"))

	records := NewDefault().Experiences(text)
	if assert.Len(t, records, 1) {
		assert.Equal(t, "Acme", records[0].Employer)
		assert.Equal(t, []string{"Reportes"}, records[0].Duties)
	}
}
