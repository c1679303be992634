package notification

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const popTimeout = 5 * time.Second

// Recorder считает результаты доставки
type Recorder interface {
	NotificationSent()
	NotificationFailed()
}

type nopRecorder struct{}

func (nopRecorder) NotificationSent()   {}
func (nopRecorder) NotificationFailed() {}

// Worker забирает уведомления из очереди и отправляет их. Повторных попыток нет.
type Worker struct {
	redisClient *redis.Client
	sender      Sender
	recorder    Recorder
	logger      *logrus.Logger
	sendTimeout time.Duration
}

// NewWorker создает новый Worker. recorder может быть nil.
func NewWorker(redisClient *redis.Client, sender Sender, recorder Recorder, logger *logrus.Logger, sendTimeout time.Duration) *Worker {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Worker{
		redisClient: redisClient,
		sender:      sender,
		recorder:    recorder,
		logger:      logger,
		sendTimeout: sendTimeout,
	}
}

// Start запускает горутину обработки очереди. Останавливается по отмене ctx.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting notification worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping notification worker.")
				return
			default:
				// BRPOP - блокирующее извлечение из правой части списка
				result, err := w.redisClient.BRPop(ctx, popTimeout, notificationQueueKey).Result()
				if err != nil {
					if errors.Is(err, redis.Nil) || ctx.Err() != nil {
						continue
					}
					w.logger.WithError(err).Error("Failed to pop notification from Redis")
					time.Sleep(time.Second)
					continue
				}

				// result[0] - ключ, result[1] - значение
				w.handle(ctx, result[1])
			}
		}
	}()
}

func (w *Worker) handle(ctx context.Context, payload string) {
	var msg Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		w.logger.WithError(err).Error("Failed to unmarshal notification from Redis")
		w.recorder.NotificationFailed()
		return
	}

	log := w.logger.WithFields(logrus.Fields{
		"record_id":  msg.RecordID,
		"student_id": msg.StudentID,
	})
	log.Debug("Sending notification...")

	if w.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.sendTimeout)
		defer cancel()
	}

	if err := w.sender.Send(ctx, msg); err != nil {
		log.WithError(err).Error("Failed to deliver notification")
		w.recorder.NotificationFailed()
		return
	}

	log.Info("Notification delivered successfully.")
	w.recorder.NotificationSent()
}
