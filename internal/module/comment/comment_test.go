package comment

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sportify/internal/global/response"
	"sportify/internal/model"
	"sportify/test"
)

func setup(t *testing.T) *gin.Engine {
	test.SetupDB(t)
	selfInit()
	return test.NewRouter(func(r *gin.RouterGroup) {
		(&ModuleComment{}).InitRouter(r)
	})
}

func post(t *testing.T, r http.Handler, token string, body gin.H) test.Response {
	t.Helper()
	return test.DoRequest(t, r, http.MethodPost, "/api/comments", body, token)
}

func TestCreateComment(t *testing.T) {
	r := setup(t)
	a := test.CreateActivity(t)
	token := test.Token(t, test.CreateUser(t, "alice", model.RoleUser))

	resp := post(t, r, token, gin.H{"activityId": a.ID, "content": "  场地很好  "})
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Raw))

	var got CommentView
	resp.Decode(t, &got)
	assert.Equal(t, "场地很好", got.Content)
	assert.Equal(t, model.DefaultRating, got.Rating)
	require.NotNil(t, got.User)
	assert.Equal(t, "alice", got.User.Username)
	assert.JSONEq(t, `{"username":"alice"}`, string(extract(t, resp, "user")))

	resp = post(t, r, token, gin.H{"activityId": a.ID, "content": "一般", "rating": 3})
	require.Equal(t, http.StatusCreated, resp.Status)
	resp.Decode(t, &got)
	assert.Equal(t, 3, got.Rating)
}

func TestCreateCommentValidation(t *testing.T) {
	r := setup(t)
	a := test.CreateActivity(t)
	token := test.Token(t, test.CreateUser(t, "alice", model.RoleUser))

	test.ErrorEqual(t, response.ErrInvalidRequest, post(t, r, token, gin.H{"activityId": a.ID, "content": "   "}))
	test.ErrorEqual(t, response.ErrInvalidRequest, post(t, r, token, gin.H{"activityId": a.ID, "content": "x", "rating": 0}))
	test.ErrorEqual(t, response.ErrInvalidRequest, post(t, r, token, gin.H{"activityId": a.ID, "content": "x", "rating": 6}))
	test.ErrorEqual(t, response.ErrNotFound, post(t, r, token, gin.H{"activityId": 42, "content": "x"}))
	test.ErrorEqual(t, response.ErrTokenMissing, post(t, r, "", gin.H{"activityId": a.ID, "content": "x"}))
}

func TestListComments(t *testing.T) {
	r := setup(t)
	a := test.CreateActivity(t)
	other := test.CreateActivity(t)
	alice := test.Token(t, test.CreateUser(t, "alice", model.RoleUser))
	bob := test.Token(t, test.CreateUser(t, "bob", model.RoleUser))

	resp := test.DoRequest(t, r, http.MethodGet, "/api/comments/activity/1", nil, "")
	test.NoError(t, resp)
	assert.JSONEq(t, `[]`, string(resp.Data))

	post(t, r, alice, gin.H{"activityId": a.ID, "content": "第一条"})
	post(t, r, bob, gin.H{"activityId": a.ID, "content": "第二条"})
	post(t, r, bob, gin.H{"activityId": other.ID, "content": "别的活动"})

	resp = test.DoRequest(t, r, http.MethodGet, "/api/comments/activity/1", nil, "")
	test.NoError(t, resp)
	var list []CommentView
	resp.Decode(t, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "第二条", list[0].Content)
	assert.Equal(t, "bob", list[0].User.Username)
	assert.Equal(t, "alice", list[1].User.Username)

	test.ErrorEqual(t, response.ErrNotFound, test.DoRequest(t, r, http.MethodGet, "/api/comments/activity/9", nil, ""))
}

func TestDeleteComment(t *testing.T) {
	r := setup(t)
	a := test.CreateActivity(t)
	alice := test.Token(t, test.CreateUser(t, "alice", model.RoleUser))
	bob := test.Token(t, test.CreateUser(t, "bob", model.RoleUser))
	admin := test.Token(t, test.CreateUser(t, "admin", model.RoleAdmin))

	post(t, r, alice, gin.H{"activityId": a.ID, "content": "a"})
	post(t, r, alice, gin.H{"activityId": a.ID, "content": "b"})

	test.ErrorEqual(t, response.ErrForbidden, test.DoRequest(t, r, http.MethodDelete, "/api/comments/1", nil, bob))
	test.ErrorEqual(t, response.ErrNotFound, test.DoRequest(t, r, http.MethodDelete, "/api/comments/7", nil, bob))
	test.NoError(t, test.DoRequest(t, r, http.MethodDelete, "/api/comments/1", nil, alice))
	test.NoError(t, test.DoRequest(t, r, http.MethodDelete, "/api/comments/2", nil, admin))
	test.ErrorEqual(t, response.ErrNotFound, test.DoRequest(t, r, http.MethodDelete, "/api/comments/1", nil, alice))
}

func extract(t *testing.T, resp test.Response, key string) []byte {
	t.Helper()
	var m map[string]json.RawMessage
	resp.Decode(t, &m)
	return m[key]
}
