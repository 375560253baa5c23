package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hotelbook/constants"
	"hotelbook/errors"
	"hotelbook/models"
	"hotelbook/services/logger"
	"hotelbook/store"

	"github.com/goccy/go-json"
)

// ReplayFunc chạy lại một thao tác ghi đã bị hoãn
type ReplayFunc func(ctx context.Context, action models.SyncAction) error

// SyncQueue là hàng đợi FIFO các thao tác ghi chờ đồng bộ. Hàng đợi nằm
// trên store cục bộ, tách khỏi store chính có thể bị mất kết nối.
type SyncQueue struct {
	store    *store.Store
	actions  *store.Collection[models.SyncAction]
	mu       sync.RWMutex
	handlers map[string]ReplayFunc
	draining sync.Mutex
	logger   logger.Logger
}

type DrainReport struct {
	Processed int  `json:"processed"`
	Failed    int  `json:"failed"`
	Remaining int  `json:"remaining"`
	Skipped   bool `json:"skipped"`
}

func NewSyncQueue(s *store.Store, log logger.Logger) *SyncQueue {
	return &SyncQueue{
		store:    s,
		actions:  store.NewCollection[models.SyncAction](s, constants.KeySyncQueue),
		handlers: make(map[string]ReplayFunc),
		logger:   log,
	}
}

// Register gắn hàm replay cho một loại action
func (q *SyncQueue) Register(actionType string, fn ReplayFunc) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[actionType] = fn
}

func (q *SyncQueue) handler(actionType string) (ReplayFunc, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	fn, ok := q.handlers[actionType]
	return fn, ok
}

// Enqueue lưu action kèm danh tính người gửi. actor = nil là action của
// hệ thống, các replay handler cần quyền sẽ từ chối action đó.
func (q *SyncQueue) Enqueue(ctx context.Context, actor *models.User, actionType string, payload interface{}) (*models.SyncAction, error) {
	if actionType == "" {
		return nil, errors.NewAppError(errors.ErrCodeRequiredField, "action type is required", nil)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidFormat, "cannot encode payload", err)
	}
	action := models.SyncAction{
		ID:        q.store.NextID(),
		Type:      actionType,
		Payload:   raw,
		Timestamp: time.Now(),
	}
	if actor != nil {
		action.ActorID = actor.ID
		action.ActorRole = actor.Role
	}
	if _, err := q.actions.Insert(ctx, action); err != nil {
		return nil, err
	}
	q.logger.Info("Đã đưa action %s (%d) vào hàng đợi", action.Type, action.ID)
	return &action, nil
}

func (q *SyncQueue) Pending(ctx context.Context) ([]models.SyncAction, error) {
	return q.actions.All(ctx)
}

// Drain replay các action theo đúng thứ tự đã lưu. Action thành công bị
// xóa khỏi hàng đợi; action lỗi được ghi log và giữ lại cho lần sau,
// các action phía sau vẫn được xử lý. Nếu đang có một lần drain khác
// chạy thì lần này bị bỏ qua.
func (q *SyncQueue) Drain(ctx context.Context) (*DrainReport, error) {
	if !q.draining.TryLock() {
		return &DrainReport{Skipped: true}, nil
	}
	defer q.draining.Unlock()

	pending, err := q.actions.All(ctx)
	if err != nil {
		return nil, err
	}

	report := &DrainReport{}
	for _, action := range pending {
		if err := ctx.Err(); err != nil {
			break
		}
		if replayErr := q.replay(ctx, action); replayErr != nil {
			report.Failed++
			q.logger.Error("Replay action %s (%d) lỗi: %v", action.Type, action.ID, replayErr)
			if _, _, err := q.actions.Update(ctx, action.ID, func(a *models.SyncAction) error {
				a.Attempts++
				a.LastError = replayErr.Error()
				return nil
			}); err != nil {
				return report, err
			}
			continue
		}
		if _, err := q.actions.Delete(ctx, action.ID); err != nil {
			return report, err
		}
		report.Processed++
	}

	remaining, err := q.actions.All(ctx)
	if err != nil {
		return report, err
	}
	report.Remaining = len(remaining)
	q.logger.Info("Drain xong: %d thành công, %d lỗi, còn %d", report.Processed, report.Failed, report.Remaining)
	return report, nil
}

func (q *SyncQueue) replay(ctx context.Context, action models.SyncAction) (err error) {
	fn, ok := q.handler(action.Type)
	if !ok {
		return errors.NewAppError(errors.ErrCodeUnknownAction, "no replay handler for "+action.Type, nil)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("replay panic: %v", r)
		}
	}()
	return fn(ctx, action)
}
