package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetPaginationParams(t *testing.T) {
	p := GetPaginationParams(0, -5)
	require.Equal(t, 1, p.Page)
	require.Equal(t, 0, p.Limit)

	p = GetPaginationParams(3, 25)
	require.Equal(t, 3, p.Page)
	require.Equal(t, 25, p.Limit)
}

func TestCalculateOffset(t *testing.T) {
	require.Equal(t, 0, PaginationParams{Page: 0, Limit: 10}.CalculateOffset())
	require.Equal(t, 0, PaginationParams{Page: 1, Limit: 10}.CalculateOffset())
	require.Equal(t, 40, PaginationParams{Page: 5, Limit: 10}.CalculateOffset())
}

func TestCalculateMeta(t *testing.T) {
	m := CalculateMeta(42, 2, 10)
	require.Equal(t, 2, m.Page)
	require.Equal(t, 10, m.Limit)
	require.Equal(t, int64(42), m.TotalCount)
	require.Equal(t, 5, m.TotalPages)

	m = CalculateMeta(42, 1, 0)
	require.Equal(t, 1, m.Page)
	require.Equal(t, 42, m.Limit)
	require.Equal(t, 1, m.TotalPages)
}
