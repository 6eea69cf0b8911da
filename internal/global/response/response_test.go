package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sportify/config"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.Set(&config.Config{Mode: config.ModeDebug})
}

func TestErrorIs(t *testing.T) {
	derived := ErrCapacityFull.WithTips("只剩 1 个名额")
	assert.True(t, errors.Is(derived, ErrCapacityFull))
	assert.False(t, errors.Is(derived, ErrAlreadyExists))
	assert.Equal(t, "只剩 1 个名额", derived.Message)
	assert.Equal(t, "活动人数已满", ErrCapacityFull.Message)

	origin := errors.New("boom")
	wrapped := ErrDatabase.WithOrigin(origin)
	assert.True(t, errors.Is(wrapped, origin))
	assert.NotNil(t, wrapped.StackTrace())
	assert.Empty(t, ErrDatabase.Origin)
}

func TestFail(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Fail(c, ErrNotFound.WithTips("活动不存在"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body ResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int32(404), body.Code)
	assert.Equal(t, "NOT_FOUND", body.Reason)
	assert.Equal(t, "活动不存在", body.Msg)
	assert.True(t, c.IsAborted())
}

func TestFailWrapsPlainError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Fail(c, errors.New("unexpected"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body ResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_ERROR", body.Reason)
	assert.Contains(t, body.Origin, "unexpected")
}

func TestCreated(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Created(c, gin.H{"id": 1})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"code":201,"msg":"success","data":{"id":1}}`, w.Body.String())
}
