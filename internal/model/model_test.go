package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validActivity() Activity {
	return Activity{
		Title:           "周末篮球",
		Description:     "半场 3v3",
		Type:            TypeBasketball,
		Location:        "东区体育馆",
		Date:            "2026-11-01",
		StartTime:       "09:00",
		EndTime:         "11:00",
		MaxParticipants: 10,
		Price:           decimal.RequireFromString("25.50"),
		Status:          ActivityActive,
	}
}

func TestActivityValidate(t *testing.T) {
	a := validActivity()
	assert.Empty(t, a.Validate())

	cases := map[string]func(a *Activity){
		"empty title":     func(a *Activity) { a.Title = "  " },
		"bad type":        func(a *Activity) { a.Type = "橄榄球" },
		"bad date":        func(a *Activity) { a.Date = "2026/11/01" },
		"bad start":       func(a *Activity) { a.StartTime = "9am" },
		"bad end":         func(a *Activity) { a.EndTime = "25:00" },
		"zero max":        func(a *Activity) { a.MaxParticipants = 0 },
		"over capacity":   func(a *Activity) { a.CurrentParticipants = 11 },
		"negative price":  func(a *Activity) { a.Price = decimal.NewFromInt(-1) },
		"too many digits": func(a *Activity) { a.Price = decimal.RequireFromString("1.005") },
		"bad status":      func(a *Activity) { a.Status = "open" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			a := validActivity()
			mutate(&a)
			assert.Len(t, a.Validate(), 1)
		})
	}
}

func TestActivityIsFull(t *testing.T) {
	a := validActivity()
	a.CurrentParticipants = 8
	assert.False(t, a.IsFull(2))
	assert.True(t, a.IsFull(3))
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{OrderPending, OrderPaid, OrderCancelled} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, OrderStatus("refunded").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = ParseRole("root")
	assert.Error(t, err)

	var got struct {
		Role Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"role":"USER"}`), &got))
	assert.Equal(t, RoleUser, got.Role)
}

func TestPriceMarshalsAsNumber(t *testing.T) {
	b, err := json.Marshal(struct {
		Price decimal.Decimal `json:"price"`
	}{decimal.RequireFromString("25.50")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":25.5}`, string(b))
}
