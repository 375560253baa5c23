package notification

import (
	"testing"

	"hotelbook/models"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageBuilder(t *testing.T) {
	msg := NewMessageBuilder(EventBookingCreated).
		WithBooking(models.Booking{ID: 5, HotelID: 2}).
		With("queued", false).
		Build()

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(msg), &decoded))
	assert.Equal(t, EventBookingCreated, decoded["event"])
	assert.Equal(t, false, decoded["queued"])
	booking := decoded["booking"].(map[string]interface{})
	assert.EqualValues(t, 5, booking["id"])
}

func TestMelodyServiceNil(t *testing.T) {
	assert.Error(t, NewMelodyService(nil).SendMessage("x"))
	assert.NoError(t, NopService{}.SendMessage("x"))
}
