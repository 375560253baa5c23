package services

import (
	"context"

	"hotelbook/constants"
	"hotelbook/store"
)

// Session giữ access token của một client
type Session interface {
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// StoreSession lưu token trong collection store dưới key "token", hoặc
// "token:<sessionId>" khi có nhiều client dùng chung một store.
type StoreSession struct {
	store *store.Store
	key   string
}

func NewStoreSession(s *store.Store, sessionID string) *StoreSession {
	key := constants.KeyToken
	if sessionID != "" {
		key = constants.KeyToken + ":" + sessionID
	}
	return &StoreSession{store: s, key: key}
}

func (s *StoreSession) Key() string { return s.key }

func (s *StoreSession) Token(ctx context.Context) (string, error) {
	return store.Read(ctx, s.store, s.key, "")
}

func (s *StoreSession) Save(ctx context.Context, token string) error {
	return store.Write(ctx, s.store, s.key, token)
}

func (s *StoreSession) Clear(ctx context.Context) error {
	return s.store.Remove(ctx, s.key)
}
