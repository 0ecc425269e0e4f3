package fsxembed

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/Abraxas-365/cvrelay/pkg/fsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader(t *testing.T) {
	ctx := context.Background()
	r := NewReader(fstest.MapFS{
		"cv/CV_Ana.json": {Data: []byte(`{}`)},
	})

	tests := []struct {
		name   string
		path   string
		exists bool
	}{
		{"plain", "cv/CV_Ana.json", true},
		{"leading slash", "/cv/CV_Ana.json", true},
		{"backslashes", `cv\CV_Ana.json`, true},
		{"dot segments", "cv/../cv/CV_Ana.json", true},
		{"missing", "cv/CV_Other.json", false},
		{"directory", "cv", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := r.Exists(ctx, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.exists, ok)
		})
	}

	data, err := r.ReadFile(ctx, "/cv/CV_Ana.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	_, err = r.ReadFile(ctx, "cv/CV_Other.json")
	assert.True(t, fsx.IsNotFound(err))
}
