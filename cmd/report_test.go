package main

import (
	"testing"
	"time"

	gerr "github.com/jekabolt/shopdesk-reports/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	tr, err := parsePeriod("2024-01-01", "2024-01-31", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, loc), tr.From)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999999, loc), tr.To)

	tr, err = parsePeriod("", "", loc)
	require.NoError(t, err)
	assert.True(t, tr.IsZero())

	tr, err = parsePeriod("2024-01-10", "", loc)
	require.NoError(t, err)
	assert.True(t, tr.To.IsZero())

	_, err = parsePeriod("10/01/2024", "", loc)
	assert.ErrorIs(t, err, gerr.ErrInvalidPeriod)

	_, err = parsePeriod("2024-02-01", "2024-01-01", loc)
	assert.ErrorIs(t, err, gerr.ErrInvalidPeriod)
}
