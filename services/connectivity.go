package services

import (
	"context"
	"sync"

	"hotelbook/services/logger"
)

// Connectivity cho biết store chính có đang truy cập được không
type Connectivity interface {
	Online() bool
}

// ConnectivityMonitor giữ trạng thái online/offline. Khi chuyển từ
// offline sang online, các hàm đăng ký qua OnRestore được gọi lần lượt.
type ConnectivityMonitor struct {
	mu        sync.RWMutex
	online    bool
	probe     func(ctx context.Context) error
	onRestore []func(ctx context.Context)
	logger    logger.Logger
}

func NewConnectivityMonitor(probe func(ctx context.Context) error, log logger.Logger) *ConnectivityMonitor {
	return &ConnectivityMonitor{
		online: true,
		probe:  probe,
		logger: log,
	}
}

func (m *ConnectivityMonitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

func (m *ConnectivityMonitor) OnRestore(fn func(ctx context.Context)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onRestore = append(m.onRestore, fn)
}

// SetOnline cập nhật trạng thái; trả về true nếu đây là lần kết nối lại
func (m *ConnectivityMonitor) SetOnline(ctx context.Context, online bool) bool {
	m.mu.Lock()
	restored := online && !m.online
	changed := online != m.online
	m.online = online
	callbacks := append([]func(context.Context){}, m.onRestore...)
	m.mu.Unlock()

	if changed {
		if online {
			m.logger.Info("Kết nối store đã khôi phục")
		} else {
			m.logger.Warn("Mất kết nối store, các thao tác ghi sẽ được đưa vào hàng đợi")
		}
	}
	if restored {
		for _, fn := range callbacks {
			fn(ctx)
		}
	}
	return restored
}

// Probe ping store chính và cập nhật trạng thái theo kết quả
func (m *ConnectivityMonitor) Probe(ctx context.Context) error {
	if m.probe == nil {
		return nil
	}
	err := m.probe(ctx)
	m.SetOnline(ctx, err == nil)
	return err
}
