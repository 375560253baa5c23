package models

import (
	"time"

	"github.com/goccy/go-json"
)

// SyncAction là một thao tác ghi bị hoãn khi mất kết nối.
// ActorID/ActorRole là người gửi thao tác, dùng để kiểm tra quyền khi replay.
type SyncAction struct {
	ID        int64           `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	ActorID   int64           `json:"actorId,omitempty"`
	ActorRole string          `json:"actorRole,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Attempts  int             `json:"attempts"`
	LastError string          `json:"lastError,omitempty"`
}

func (a SyncAction) EntityID() int64 { return a.ID }
