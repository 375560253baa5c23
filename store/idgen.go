package store

import (
	"sync"
	"time"
)

// IDGenerator sinh id tăng dần dựa trên millisecond. Hai lần gọi trong
// cùng một millisecond vẫn nhận id khác nhau.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Observe đẩy mốc lên nếu id đã tồn tại lớn hơn, tránh cấp trùng sau khi
// khởi động lại với đồng hồ bị lùi.
func (g *IDGenerator) Observe(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id > g.last {
		g.last = id
	}
}
