package store

import "context"

// Entity là record có id trong một collection
type Entity interface {
	EntityID() int64
}

// Collection là một mảng record lưu nguyên khối dưới một key.
// Mọi thao tác đều đọc toàn bộ mảng, quét tuyến tính rồi ghi lại.
type Collection[T Entity] struct {
	store *Store
	key   string
}

func NewCollection[T Entity](s *Store, key string) *Collection[T] {
	return &Collection[T]{store: s, key: key}
}

func (c *Collection[T]) Key() string { return c.key }

func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	return Read(ctx, c.store, c.key, []T{})
}

// Find trả về record có id, ok=false nếu không có
func (c *Collection[T]) Find(ctx context.Context, id int64) (T, bool, error) {
	var zero T
	items, err := c.All(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if item.EntityID() == id {
			return item, true, nil
		}
	}
	return zero, false, nil
}

func (c *Collection[T]) Filter(ctx context.Context, pred func(T) bool) ([]T, error) {
	items, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// Insert thêm record vào cuối collection. Id do caller cấp qua NextID.
func (c *Collection[T]) Insert(ctx context.Context, item T) (T, error) {
	_, err := Mutate(ctx, c.store, c.key, []T{}, func(items []T) ([]T, error) {
		return append(items, item), nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	c.store.ObserveID(item.EntityID())
	return item, nil
}

// Update gọi fn trên record có id rồi ghi lại. found=false nếu không có
// record, khi đó không ghi gì.
func (c *Collection[T]) Update(ctx context.Context, id int64, fn func(*T) error) (T, bool, error) {
	var (
		updated T
		found   bool
	)
	_, err := Mutate(ctx, c.store, c.key, []T{}, func(items []T) ([]T, error) {
		for i := range items {
			if items[i].EntityID() != id {
				continue
			}
			if err := fn(&items[i]); err != nil {
				return nil, err
			}
			updated = items[i]
			found = true
			return items, nil
		}
		return nil, errNotFound
	})
	if err == errNotFound {
		return updated, false, nil
	}
	if err != nil {
		return updated, false, err
	}
	return updated, found, nil
}

// Delete lọc bỏ id và luôn ghi lại collection. removed cho biết có record
// nào thực sự bị xóa không.
func (c *Collection[T]) Delete(ctx context.Context, id int64) (bool, error) {
	removed := false
	_, err := Mutate(ctx, c.store, c.key, []T{}, func(items []T) ([]T, error) {
		out := items[:0]
		for _, item := range items {
			if item.EntityID() == id {
				removed = true
				continue
			}
			out = append(out, item)
		}
		return out, nil
	})
	return removed, err
}

type notFoundSignal struct{}

func (notFoundSignal) Error() string { return "record not found" }

var errNotFound error = notFoundSignal{}
