package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Body 响应信封，data 延迟解码
type Body struct {
	Code   int32           `json:"code"`
	Reason string          `json:"reason"`
	Msg    string          `json:"msg"`
	Data   json.RawMessage `json:"data"`
}

type Response struct {
	Status int
	Header http.Header
	Raw    []byte
	Body
}

// Decode 把 data 解码到 v
func (r Response) Decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, v), string(r.Raw))
}

// DoRequest request 为 nil 时不带请求体，token 为空时不带 Authorization
func DoRequest(t *testing.T, h http.Handler, method, path string, request any, token string) Response {
	t.Helper()
	var body io.Reader
	if request != nil {
		b, err := json.Marshal(request)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	if request != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return Serve(t, h, req)
}

func Serve(t *testing.T, h http.Handler, req *http.Request) Response {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	resp := Response{Status: w.Code, Header: w.Header(), Raw: w.Body.Bytes()}
	if ct := w.Header().Get("Content-Type"); len(resp.Raw) > 0 && bytes.HasPrefix([]byte(ct), []byte("application/json")) {
		require.NoError(t, json.Unmarshal(resp.Raw, &resp.Body), string(resp.Raw))
	}
	return resp
}
