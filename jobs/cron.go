package jobs

import (
	"context"
	"time"

	"hotelbook/services"
	"hotelbook/services/logger"
	"hotelbook/services/notification"

	"github.com/robfig/cron/v3"
)

// SyncJob kiểm tra kết nối store chính và đẩy hàng đợi khi có thể
type SyncJob struct {
	monitor  *services.ConnectivityMonitor
	queue    *services.SyncQueue
	notifier notification.Service
	logger   logger.Logger
	timeout  time.Duration
}

func NewSyncJob(monitor *services.ConnectivityMonitor, queue *services.SyncQueue, notifier notification.Service, log logger.Logger) *SyncJob {
	if notifier == nil {
		notifier = notification.NopService{}
	}
	return &SyncJob{
		monitor:  monitor,
		queue:    queue,
		notifier: notifier,
		logger:   log,
		timeout:  time.Minute,
	}
}

// Drain đẩy hàng đợi và phát sự kiện sync.drained nếu có action được xử lý
func (j *SyncJob) Drain(ctx context.Context) {
	report, err := j.queue.Drain(ctx)
	if err != nil {
		j.logger.Error("Drain hàng đợi lỗi: %v", err)
		return
	}
	if report.Skipped || report.Processed+report.Failed == 0 {
		return
	}
	msg := notification.NewMessageBuilder(notification.EventQueueDrained).
		With("processed", report.Processed).
		With("failed", report.Failed).
		With("remaining", report.Remaining).
		Build()
	if err := j.notifier.SendMessage(msg); err != nil {
		j.logger.Error("Gửi thông báo drain lỗi: %v", err)
	}
}

// Run ping store chính; lần kết nối lại sẽ kích hoạt drain qua OnRestore.
// Khi vẫn online mà hàng đợi còn action cũ thì drain luôn.
func (j *SyncJob) Run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	wasOnline := j.monitor.Online()
	if err := j.monitor.Probe(ctx); err != nil {
		j.logger.Debug("Probe store chính lỗi: %v", err)
		return
	}
	if !wasOnline {
		return
	}
	pending, err := j.queue.Pending(ctx)
	if err != nil {
		j.logger.Error("Đọc hàng đợi lỗi: %v", err)
		return
	}
	if len(pending) > 0 {
		j.Drain(ctx)
	}
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron, spec string, job *SyncJob, log logger.Logger) error {
	_, err := c.AddFunc(spec, func() {
		job.Run(context.Background())
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Info("Cron jobs initialized successfully (%s)", spec)
	return nil
}
