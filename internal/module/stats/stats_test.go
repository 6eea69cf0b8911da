package stats

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sportify/internal/global/database"
	"sportify/internal/global/response"
	"sportify/internal/model"
	"sportify/test"
)

func setup(t *testing.T) (*gin.Engine, string) {
	test.SetupDB(t)
	(&ModuleStats{}).Init()
	r := test.NewRouter(func(r *gin.RouterGroup) {
		(&ModuleStats{}).InitRouter(r)
	})
	return r, test.Token(t, test.CreateUser(t, "admin", model.RoleAdmin))
}

func addOrder(t *testing.T, userID, activityID uint, qty int, status model.OrderStatus) {
	o := model.Order{
		UserID:     userID,
		ActivityID: activityID,
		Quantity:   qty,
		TotalPrice: decimal.RequireFromString("25.50").Mul(decimal.NewFromInt(int64(qty))),
		Status:     status,
	}
	require.NoError(t, database.DB.Create(&o).Error)
}

func TestBrief(t *testing.T) {
	r, token := setup(t)
	a := test.CreateActivity(t, func(a *model.Activity) { a.CurrentParticipants = 3 })
	alice := test.CreateUser(t, "alice", model.RoleUser)
	bob := test.CreateUser(t, "bob", model.RoleUser)
	carol := test.CreateUser(t, "carol", model.RoleUser)

	addOrder(t, alice.ID, a.ID, 2, model.OrderPaid)
	addOrder(t, bob.ID, a.ID, 1, model.OrderPending)
	addOrder(t, carol.ID, a.ID, 4, model.OrderCancelled)
	require.NoError(t, database.DB.Create(&[]model.Comment{
		{UserID: alice.ID, ActivityID: a.ID, Content: "好", Rating: 5},
		{UserID: bob.ID, ActivityID: a.ID, Content: "还行", Rating: 4},
	}).Error)

	resp := test.DoRequest(t, r, http.MethodGet, "/api/stats/activities/1/brief", nil, token)
	test.NoError(t, resp)
	var got BriefResponse
	resp.Decode(t, &got)
	assert.Equal(t, OrderCount{Pending: 1, Paid: 1, Cancelled: 1}, got.Orders)
	assert.Equal(t, int64(7), got.SeatsBooked)
	assert.Equal(t, 3, got.CurrentParticipants)
	assert.True(t, decimal.RequireFromString("51").Equal(got.Revenue), got.Revenue.String())
	assert.Equal(t, int64(2), got.Comments)
	assert.InDelta(t, 4.5, got.AverageRating, 0.001)
}

func TestBriefEmptyAndMissing(t *testing.T) {
	r, token := setup(t)
	test.CreateActivity(t)

	resp := test.DoRequest(t, r, http.MethodGet, "/api/stats/activities/1/brief", nil, token)
	test.NoError(t, resp)
	var got BriefResponse
	resp.Decode(t, &got)
	assert.Zero(t, got.Orders)
	assert.True(t, got.Revenue.IsZero())
	assert.Zero(t, got.AverageRating)

	test.ErrorEqual(t, response.ErrNotFound, test.DoRequest(t, r, http.MethodGet, "/api/stats/activities/5/brief", nil, token))
}

func TestRank(t *testing.T) {
	r, token := setup(t)
	test.CreateActivity(t, func(a *model.Activity) { a.Title = "a"; a.CurrentParticipants = 2 })
	test.CreateActivity(t, func(a *model.Activity) { a.Title = "b"; a.CurrentParticipants = 7 })
	test.CreateActivity(t, func(a *model.Activity) { a.Title = "c"; a.CurrentParticipants = 2 })

	resp := test.DoRequest(t, r, http.MethodGet, "/api/stats/activities/rank", nil, token)
	test.NoError(t, resp)
	var got struct {
		Total int64  `json:"total"`
		List  []rank `json:"list"`
	}
	resp.Decode(t, &got)
	assert.Equal(t, int64(3), got.Total)
	require.Len(t, got.List, 3)
	assert.Equal(t, "b", got.List[0].Title)
	assert.Equal(t, []uint{1, 2, 2}, []uint{got.List[0].Rank, got.List[1].Rank, got.List[2].Rank})

	resp = test.DoRequest(t, r, http.MethodGet, "/api/stats/activities/rank?page=2&page_size=2", nil, token)
	test.NoError(t, resp)
	resp.Decode(t, &got)
	require.Len(t, got.List, 1)
	assert.Equal(t, "c", got.List[0].Title)
}

func TestStatsAdminOnly(t *testing.T) {
	r, _ := setup(t)
	user := test.Token(t, test.CreateUser(t, "alice", model.RoleUser))
	test.ErrorEqual(t, response.ErrForbidden, test.DoRequest(t, r, http.MethodGet, "/api/stats/activities/rank", nil, user))
}
