package ping

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sportify/internal/global/metrics"
	"sportify/test"
)

func setup() *gin.Engine {
	gin.SetMode(gin.TestMode)
	p := &ModulePing{}
	p.Init()
	return test.NewRouter(p.InitRouter)
}

func TestPing(t *testing.T) {
	resp := test.DoRequest(t, setup(), http.MethodGet, "/api/ping", nil, "")
	test.NoError(t, resp)
	assert.JSONEq(t, `{"message":"pong","version":"`+Version+`"}`, string(resp.Data))
}

func TestMetrics(t *testing.T) {
	metrics.LoginTotal.WithLabelValues("success").Inc()

	w := httptest.NewRecorder()
	setup().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `user_login_total{result="success",service="sportify"}`)
}
