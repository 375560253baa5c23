package store

import (
	"context"
	"sync"
	"time"

	"hotelbook/errors"
	"hotelbook/services/logger"

	"github.com/goccy/go-json"
)

// Store đọc/ghi các collection đã serialize trên một Substrate.
// Ghi trong cùng process được tuần tự hóa; giữa nhiều process thì ai ghi
// sau cùng sẽ thắng.
type Store struct {
	sub    Substrate
	mu     sync.Mutex
	ids    *IDGenerator
	logger logger.Logger
}

type Options struct {
	Substrate Substrate
	Logger    logger.Logger
	Clock     func() time.Time
}

func New(opts Options) *Store {
	sub := opts.Substrate
	if sub == nil {
		sub = NewMemorySubstrate()
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &Store{
		sub:    sub,
		ids:    NewIDGenerator(opts.Clock),
		logger: log,
	}
}

// Seed là dữ liệu mẫu cho một key
type Seed struct {
	Key   string
	Value interface{}
}

func (s *Store) NextID() int64 {
	return s.ids.Next()
}

func (s *Store) ObserveID(id int64) {
	s.ids.Observe(id)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.sub.Ping(ctx)
}

func (s *Store) Close() error {
	return s.sub.Close()
}

// InitializeIfEmpty ghi seed cho những key chưa có. Gọi nhiều lần không
// ghi đè dữ liệu đã tồn tại.
func (s *Store) InitializeIfEmpty(ctx context.Context, seeds []Seed) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, seed := range seeds {
		_, ok, err := s.sub.Get(ctx, seed.Key)
		if err != nil {
			return unavailable(seed.Key, err)
		}
		if ok {
			continue
		}
		data, err := json.Marshal(seed.Value)
		if err != nil {
			return errors.NewAppError(errors.ErrCodeInvalidFormat, "cannot encode seed "+seed.Key, err)
		}
		if err := s.sub.Set(ctx, seed.Key, data); err != nil {
			return unavailable(seed.Key, err)
		}
		s.logger.Info("Đã seed collection %s", seed.Key)
	}
	return nil
}

// Remove xóa hẳn một key
func (s *Store) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sub.Delete(ctx, key); err != nil {
		return unavailable(key, err)
	}
	return nil
}

// Read trả về nội dung đã parse của key, hoặc def nếu key chưa tồn tại
func Read[T any](ctx context.Context, s *Store, key string, def T) (T, error) {
	return read(ctx, s, key, def)
}

// Write serialize value và ghi đè key
func Write[T any](ctx context.Context, s *Store, key string, value T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return write(ctx, s, key, value)
}

// Mutate đọc key, gọi fn và ghi kết quả trong cùng một lần giữ khóa.
// Nếu fn trả lỗi thì không ghi gì.
func Mutate[T any](ctx context.Context, s *Store, key string, def T, fn func(T) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := read(ctx, s, key, def)
	if err != nil {
		return current, err
	}
	next, err := fn(current)
	if err != nil {
		return current, err
	}
	if err := write(ctx, s, key, next); err != nil {
		return current, err
	}
	return next, nil
}

func read[T any](ctx context.Context, s *Store, key string, def T) (T, error) {
	data, ok, err := s.sub.Get(ctx, key)
	if err != nil {
		return def, unavailable(key, err)
	}
	if !ok {
		return def, nil
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return def, errors.NewAppError(errors.ErrCodeInvalidFormat, "cannot decode "+key, err)
	}
	return out, nil
}

func write[T any](ctx context.Context, s *Store, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "cannot encode "+key, err)
	}
	if err := s.sub.Set(ctx, key, data); err != nil {
		return unavailable(key, err)
	}
	return nil
}

func unavailable(key string, err error) error {
	return errors.NewAppError(errors.ErrCodeStoreUnavailable, "store unavailable for "+key, err)
}
