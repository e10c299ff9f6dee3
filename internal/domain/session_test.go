package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionFields(t *testing.T) {
	s := NewSession(42, StepName)

	assert.Equal(t, int64(42), s.UserID)
	assert.Equal(t, StepName, s.Step)
	assert.Empty(t, s.Get(FieldName))

	s.Set(FieldName, "Alice")
	s.Set(FieldCity, "Kyiv")
	assert.Equal(t, "Alice", s.Get(FieldName))
	assert.Equal(t, "Kyiv", s.Get(FieldCity))
}

func TestSessionNilFieldsMap(t *testing.T) {
	// A session decoded from JSON may carry a nil map
	s := &Session{UserID: 1, Step: StepPhone}
	assert.Empty(t, s.Get(FieldPhone))
	s.Set(FieldPhone, "+380501112233")
	assert.Equal(t, "+380501112233", s.Get(FieldPhone))
}

func TestSessionExpiredAt(t *testing.T) {
	now := time.Now()
	s := &Session{CreatedAt: now.Add(-time.Hour)}

	assert.True(t, s.ExpiredAt(now, 30*time.Minute))
	assert.False(t, s.ExpiredAt(now, 2*time.Hour))
	assert.False(t, s.ExpiredAt(now, 0), "zero ttl disables expiry")
}

func TestCartTotals(t *testing.T) {
	items := []CartItem{
		{ProductID: 1, Qty: 2, PriceCents: 300},
		{ProductID: 2, Qty: 1, PriceCents: 1250},
	}

	assert.Equal(t, int64(600), items[0].LineTotal())
	assert.Equal(t, int64(1850), CartTotal(items))
	assert.Equal(t, int64(0), CartTotal(nil))
}
