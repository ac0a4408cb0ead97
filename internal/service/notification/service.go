package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/clockwise-hr/clockwise-backend-go/internal/domain/notification"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/metrics"
	"github.com/clockwise-hr/clockwise-backend-go/internal/pkg/sse"
)

// Config holds notification service configuration
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // default: 1000
}

type NotificationServiceImpl struct {
	repo   notification.Repository
	hub    *sse.Hub
	config Config

	queue  chan notification.Event
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewNotificationService creates a notification service with background
// workers. Publish enqueues and returns; the workers persist the event
// and fan it out to SSE subscribers.
func NewNotificationService(repo notification.Repository, hub *sse.Hub, cfg Config) *NotificationServiceImpl {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &NotificationServiceImpl{
		repo:   repo,
		hub:    hub,
		config: cfg,
		queue:  make(chan notification.Event, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker()
	}

	slog.Info("notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)

	return s
}

func (s *NotificationServiceImpl) worker() {
	defer s.wg.Done()

	for {
		select {
		case event := <-s.queue:
			s.deliver(event)
		case <-s.stopCh:
			// Drain what is already queued before exiting.
			for {
				select {
				case event := <-s.queue:
					s.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (s *NotificationServiceImpl) deliver(event notification.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ntf := notification.Notification{
		EmployeeID:  event.EmployeeID,
		CompanyID:   event.CompanyID,
		Type:        event.Type,
		ReferenceID: event.ReferenceID,
	}
	if err := s.repo.Create(ctx, &ntf); err != nil {
		slog.Error("failed to persist notification",
			"employee_id", event.EmployeeID,
			"type", string(event.Type),
			"error", err,
		)
		return
	}

	metrics.NotificationsEmitted.WithLabelValues(string(event.Type)).Inc()

	s.hub.Publish(event.EmployeeID, sse.Event{
		EmployeeID: event.EmployeeID,
		Event:      string(event.Type),
		Data:       event,
	})
}

// Publish implements notification.Dispatcher. It never blocks the
// caller: when the queue is full the event is dropped with a log line.
func (s *NotificationServiceImpl) Publish(_ context.Context, event notification.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	select {
	case s.queue <- event:
	default:
		slog.Warn("notification queue full, dropping event",
			"employee_id", event.EmployeeID,
			"type", string(event.Type),
		)
	}
}

// List implements notification.Service.
func (s *NotificationServiceImpl) List(ctx context.Context, employeeID string, limit int) ([]notification.Notification, error) {
	return s.repo.ListByEmployeeID(ctx, employeeID, limit)
}

// MarkRead implements notification.Service.
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, id, employeeID string) error {
	return s.repo.MarkRead(ctx, id, employeeID)
}

// Stop shuts the workers down after draining the queue.
func (s *NotificationServiceImpl) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}
