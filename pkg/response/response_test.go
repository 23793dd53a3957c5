package response

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 100, 250)
	require.Equal(t, 2, p.Page)
	require.Equal(t, 100, p.Limit)
	require.Equal(t, int64(250), p.Total)
	require.Equal(t, 3, p.TotalPages)

	require.Equal(t, 0, NewPagination(1, 100, 0).TotalPages)
	require.Equal(t, 1, NewPagination(1, 100, 100).TotalPages)
	require.Equal(t, 0, NewPagination(1, 0, 50).TotalPages)
}

func TestEnvelopeHelpers(t *testing.T) {
	ok := OKT("hello")
	require.Equal(t, APIResponseCodeOK, ok.Code)
	require.Equal(t, "ok", ok.Message)
	require.Equal(t, "hello", ok.Data)

	er := ErrorT[any](APIResponseCodeRateLimited, nil)
	require.Equal(t, APIResponseCodeRateLimited, er.Code)
	require.Equal(t, "too many requests", er.Message)
}
