package test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"sportify/internal/global/response"
)

// ErrorEqual 比较状态码与 reason，提示信息可能被 WithTips 替换
func ErrorEqual(t *testing.T, expected *response.Error, resp Response) {
	t.Helper()
	require.Equal(t, int(expected.Code), resp.Status, string(resp.Raw))
	require.Equal(t, expected.Code, resp.Code)
	require.Equal(t, expected.Reason, resp.Reason)
}

func NoError(t *testing.T, resp Response) {
	t.Helper()
	require.Less(t, resp.Status, http.StatusBadRequest, string(resp.Raw))
	require.Empty(t, resp.Reason)
}
