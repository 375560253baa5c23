package store

import (
	"context"
	"errors"
	"sync"
)

// ErrUnavailable được trả về khi substrate không kết nối được
var ErrUnavailable = errors.New("store substrate unavailable")

// Substrate là kho key-value lưu nguyên mỗi collection dưới một key
type Substrate interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// MemorySubstrate giữ dữ liệu trong RAM, dùng mặc định và trong test
type MemorySubstrate struct {
	mu      sync.RWMutex
	data    map[string][]byte
	offline bool
}

func NewMemorySubstrate() *MemorySubstrate {
	return &MemorySubstrate{data: make(map[string][]byte)}
}

// SetOffline giả lập mất kết nối: mọi thao tác trả về ErrUnavailable
func (m *MemorySubstrate) SetOffline(offline bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offline = offline
}

func (m *MemorySubstrate) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.offline {
		return nil, false, ErrUnavailable
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemorySubstrate) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offline {
		return ErrUnavailable
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *MemorySubstrate) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offline {
		return ErrUnavailable
	}
	delete(m.data, key)
	return nil
}

func (m *MemorySubstrate) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.offline {
		return ErrUnavailable
	}
	return nil
}

func (m *MemorySubstrate) Close() error { return nil }
