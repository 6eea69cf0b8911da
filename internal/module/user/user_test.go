package user

import (
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sportify/config"
	"sportify/internal/global/database"
	"sportify/internal/global/jwt"
	"sportify/internal/global/response"
	"sportify/internal/model"
	"sportify/test"
	"sportify/tools"
)

func setup(t *testing.T) *gin.Engine {
	test.SetupDB(t)
	selfInit()
	return test.NewRouter(func(r *gin.RouterGroup) {
		(&ModuleUser{}).InitRouter(r)
	})
}

func register(t *testing.T, r http.Handler, body any) test.Response {
	return test.DoRequest(t, r, http.MethodPost, "/api/auth/register", body, "")
}

func TestRegister(t *testing.T) {
	r := setup(t)

	resp := register(t, r, gin.H{"username": "alice", "password": "secret1", "email": "alice@example.com", "role": "admin"})
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Raw))
	var got struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	resp.Decode(t, &got)
	assert.NotEmpty(t, got.Token)
	assert.Equal(t, "alice", got.User["username"])
	assert.Equal(t, "user", got.User["role"])
	assert.NotContains(t, got.User, "password")

	claims, err := jwt.ParseToken(got.Token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, claims.Role)

	var stored model.User
	require.NoError(t, database.DB.Where("username = ?", "alice").First(&stored).Error)
	assert.NotEqual(t, "secret1", stored.Password)
	assert.True(t, tools.PasswordCompare("secret1", stored.Password))
}

func TestRegisterValidation(t *testing.T) {
	r := setup(t)

	cases := map[string]gin.H{
		"missing password": {"username": "alice"},
		"short username":   {"username": "ab", "password": "secret1"},
		"long username":    {"username": "abcdefghijklmnopqrstu", "password": "secret1"},
		"short password":   {"username": "alice", "password": "12345"},
		"bad email":        {"username": "alice", "password": "secret1", "email": "not-an-email"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			test.ErrorEqual(t, response.ErrInvalidRequest, register(t, r, body))
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := setup(t)
	test.NoError(t, register(t, r, gin.H{"username": "alice", "password": "secret1", "email": "a@example.com"}))

	test.ErrorEqual(t, response.ErrAlreadyExists, register(t, r, gin.H{"username": "alice", "password": "secret1"}))
	test.ErrorEqual(t, response.ErrAlreadyExists, register(t, r, gin.H{"username": "bob", "password": "secret1", "email": "a@example.com"}))
}

func TestLogin(t *testing.T) {
	r := setup(t)
	test.NoError(t, register(t, r, gin.H{"username": "alice", "password": "secret1", "email": "alice@example.com"}))

	resp := test.DoRequest(t, r, http.MethodPost, "/api/auth/login", gin.H{"username": "alice", "password": "secret1"}, "")
	test.NoError(t, resp)

	resp = test.DoRequest(t, r, http.MethodPost, "/api/auth/login", gin.H{"email": "alice@example.com", "password": "secret1"}, "")
	test.NoError(t, resp)

	resp = test.DoRequest(t, r, http.MethodPost, "/api/auth/login", gin.H{"username": "alice@example.com", "password": "secret1"}, "")
	test.NoError(t, resp)

	wrong := test.DoRequest(t, r, http.MethodPost, "/api/auth/login", gin.H{"username": "alice", "password": "nope123"}, "")
	unknown := test.DoRequest(t, r, http.MethodPost, "/api/auth/login", gin.H{"username": "nobody", "password": "nope123"}, "")
	test.ErrorEqual(t, response.ErrBadCredentials, wrong)
	test.ErrorEqual(t, response.ErrBadCredentials, unknown)
	assert.Equal(t, wrong.Msg, unknown.Msg)

	test.ErrorEqual(t, response.ErrInvalidRequest,
		test.DoRequest(t, r, http.MethodPost, "/api/auth/login", gin.H{"password": "secret1"}, ""))
}

func TestLoginThrottle(t *testing.T) {
	r := setup(t)
	test.NoError(t, register(t, r, gin.H{"username": "alice", "password": "secret1"}))

	mr := miniredis.RunT(t)
	guard = newLoginGuard(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), 3, 60)

	for i := 0; i < 3; i++ {
		test.ErrorEqual(t, response.ErrBadCredentials,
			test.DoRequest(t, r, http.MethodPost, "/api/auth/login", gin.H{"username": "alice", "password": "wrong12"}, ""))
	}
	test.ErrorEqual(t, response.ErrTooManyRequests,
		test.DoRequest(t, r, http.MethodPost, "/api/auth/login", gin.H{"username": "alice", "password": "secret1"}, ""))

	mr.FastForward(61 * time.Second)
	test.NoError(t, test.DoRequest(t, r, http.MethodPost, "/api/auth/login", gin.H{"username": "alice", "password": "secret1"}, ""))
}

func TestMe(t *testing.T) {
	r := setup(t)
	u := test.CreateUser(t, "alice", model.RoleUser)
	token := test.Token(t, u)

	resp := test.DoRequest(t, r, http.MethodGet, "/api/users/me", nil, token)
	test.NoError(t, resp)
	var me model.User
	resp.Decode(t, &me)
	assert.Equal(t, u.ID, me.ID)
	assert.Empty(t, me.Password)

	test.ErrorEqual(t, response.ErrTokenMissing, test.DoRequest(t, r, http.MethodGet, "/api/users/me", nil, ""))

	require.NoError(t, database.DB.Delete(&u).Error)
	test.ErrorEqual(t, response.ErrNotFound, test.DoRequest(t, r, http.MethodGet, "/api/users/me", nil, token))
}

func TestUpdateContact(t *testing.T) {
	r := setup(t)
	u := test.CreateUser(t, "alice", model.RoleUser)
	other := test.CreateUser(t, "bob", model.RoleUser)
	email := "bob@example.com"
	require.NoError(t, database.DB.Model(&other).Update("email", email).Error)
	token := test.Token(t, u)

	resp := test.DoRequest(t, r, http.MethodPatch, "/api/users/me", gin.H{"email": "alice@example.com", "phone": "13800000000"}, token)
	test.NoError(t, resp)
	var me model.User
	resp.Decode(t, &me)
	require.NotNil(t, me.Email)
	assert.Equal(t, "alice@example.com", *me.Email)
	require.NotNil(t, me.Phone)
	assert.Equal(t, "13800000000", *me.Phone)

	test.ErrorEqual(t, response.ErrAlreadyExists, test.DoRequest(t, r, http.MethodPatch, "/api/users/me", gin.H{"email": email}, token))
	test.ErrorEqual(t, response.ErrInvalidRequest, test.DoRequest(t, r, http.MethodPatch, "/api/users/me", gin.H{"email": "bad"}, token))

	resp = test.DoRequest(t, r, http.MethodPatch, "/api/users/me", gin.H{"phone": ""}, token)
	test.NoError(t, resp)
	me = model.User{}
	resp.Decode(t, &me)
	assert.Nil(t, me.Phone)
	assert.NotNil(t, me.Email)
}

func TestChangePassword(t *testing.T) {
	r := setup(t)
	u := test.CreateUser(t, "alice", model.RoleUser)
	token := test.Token(t, u)

	test.ErrorEqual(t, response.ErrInvalidRequest,
		test.DoRequest(t, r, http.MethodPut, "/api/users/me/password", gin.H{"oldPassword": "wrong", "newPassword": "newpass1"}, token))
	test.ErrorEqual(t, response.ErrInvalidRequest,
		test.DoRequest(t, r, http.MethodPut, "/api/users/me/password", gin.H{"oldPassword": "password123", "newPassword": "123"}, token))
	test.NoError(t, test.DoRequest(t, r, http.MethodPut, "/api/users/me/password", gin.H{"oldPassword": "password123", "newPassword": "newpass1"}, token))

	test.NoError(t, test.DoRequest(t, r, http.MethodPost, "/api/auth/login", gin.H{"username": "alice", "password": "newpass1"}, ""))
}

func TestSeedAdmin(t *testing.T) {
	test.SetupDB(t)
	selfInit()

	require.NoError(t, SeedAdmin(config.Admin{Username: "root", Password: "rootpass", Email: "root@example.com"}))
	require.NoError(t, SeedAdmin(config.Admin{Username: "root", Password: "changed"}))
	require.NoError(t, SeedAdmin(config.Admin{}))

	var admins []model.User
	require.NoError(t, database.DB.Where("role = ?", model.RoleAdmin).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.True(t, tools.PasswordCompare("rootpass", admins[0].Password))
}
