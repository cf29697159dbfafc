package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTimeIn(t *testing.T) {
	sp, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"bare date", "2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, sp)},
		{"bare datetime", "2024-01-01 10:30:00", time.Date(2024, 1, 1, 10, 30, 0, 0, sp)},
		{"brazilian date", "05/01/2024", time.Date(2024, 1, 5, 0, 0, 0, 0, sp)},
		{"explicit offset", "2024-01-01T00:00:00Z", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"wrapped", map[string]any{"_seconds": 1704067200, "_nanoseconds": 0}, time.Unix(1704067200, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeTimeIn(tt.in, sp)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}

	utc, ok := NormalizeTime("2024-01-01")
	require.True(t, ok)
	assert.True(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Equal(utc))

	_, ok = NormalizeTimeIn("ontem", sp)
	assert.False(t, ok)
}

func TestCreatedAtIn(t *testing.T) {
	sp, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	r := Record{"dataCriacao": "2024-01-01"}
	at, ok := r.CreatedAtIn(sp)
	require.True(t, ok)
	assert.Equal(t, "2024-01-01", at.In(sp).Format(time.DateOnly))
	assert.Equal(t, time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC), at.UTC())
}
