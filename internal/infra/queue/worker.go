package queue

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/logger"
)

type MailSenderInterface interface {
	Send(to, templateName string, vars map[string]any) error
}

// Worker drains the notification queue: renders and sends the email, writes
// the in-app notification row. Both halves are best effort relative to each
// other; a job only nacks when its payload is unreadable.
type Worker struct {
	Channel *amqp.Channel
	Mail    MailSenderInterface
	Notifs  entity.NotificationRepositoryInterface
}

func NewWorker(ch *amqp.Channel, mail MailSenderInterface, notifs entity.NotificationRepositoryInterface) *Worker {
	return &Worker{Channel: ch, Mail: mail, Notifs: notifs}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		logger.Get().Fatal("register notification consumer", zap.Error(err))
	}

	for d := range msgs {
		var job NotificationJob
		if err := json.Unmarshal(d.Body, &job); err != nil {
			logger.Get().Error("malformed notification job", zap.Error(err))
			// Poison message, reject without requeue so the DLQ keeps it.
			d.Nack(false, false)
			continue
		}

		w.process(context.Background(), job)
		d.Ack(false)
	}
}

func (w *Worker) process(ctx context.Context, job NotificationJob) {
	if job.Email != nil {
		if err := w.Mail.Send(job.Email.To, job.Email.Template, job.Email.Vars); err != nil {
			logger.Get().Warn("email delivery failed",
				zap.String("template", job.Email.Template),
				zap.String("to", job.Email.To),
				zap.Error(err))
		}
	}

	if job.Notification != nil {
		n := entity.NewNotification(
			job.Notification.UserID,
			job.Notification.UserType,
			job.Notification.Type,
			job.Notification.Title,
			job.Notification.Message,
		)
		n.Category = job.Notification.Category
		if job.Notification.Priority != "" {
			n.Priority = job.Notification.Priority
		}
		n.ActionURL = job.Notification.ActionURL
		n.ActionText = job.Notification.ActionText
		n.Metadata = job.Notification.Metadata

		if err := w.Notifs.Create(ctx, n); err != nil {
			logger.Get().Warn("notification insert failed",
				zap.String("user_id", n.UserID),
				zap.String("type", n.Type),
				zap.Error(err))
		}
	}
}
