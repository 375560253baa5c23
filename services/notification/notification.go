package notification

import (
	"fmt"
	"time"

	"hotelbook/models"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// NopService bỏ qua mọi thông báo
type NopService struct{}

func (NopService) SendMessage(string) error { return nil }

// Event types
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventBookingCompleted = "booking.completed"
	EventQueueDrained     = "sync.drained"
)

type MessageBuilder struct {
	event   string
	booking *models.Booking
	extra   map[string]interface{}
}

func NewMessageBuilder(event string) *MessageBuilder {
	return &MessageBuilder{event: event}
}

func (b *MessageBuilder) WithBooking(booking models.Booking) *MessageBuilder {
	b.booking = &booking
	return b
}

func (b *MessageBuilder) With(key string, value interface{}) *MessageBuilder {
	if b.extra == nil {
		b.extra = make(map[string]interface{})
	}
	b.extra[key] = value
	return b
}

// Build trả về JSON gửi qua websocket cho console manager/admin
func (b *MessageBuilder) Build() string {
	msg := map[string]interface{}{
		"event": b.event,
		"at":    time.Now().UTC().Format(time.RFC3339),
	}
	if b.booking != nil {
		msg["booking"] = b.booking
	}
	for k, v := range b.extra {
		msg[k] = v
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Sprintf(`{"event":%q}`, b.event)
	}
	return string(data)
}
