package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EmailSpec names a template and its variables; rendering happens in the
// worker, not at dispatch time.
type EmailSpec struct {
	To       string         `json:"to"`
	Template string         `json:"template"`
	Vars     map[string]any `json:"vars,omitempty"`
}

type NotificationSpec struct {
	UserID     string         `json:"user_id"`
	UserType   string         `json:"user_type"`
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Message    string         `json:"message"`
	Category   string         `json:"category,omitempty"`
	Priority   string         `json:"priority,omitempty"`
	ActionURL  string         `json:"action_url,omitempty"`
	ActionText string         `json:"action_text,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// NotificationJob is one detached side effect of a lifecycle transition: an
// email, an in-app notification row, or both. The primary state change has
// already been committed by the time a job is published.
type NotificationJob struct {
	Email        *EmailSpec        `json:"email,omitempty"`
	Notification *NotificationSpec `json:"notification,omitempty"`
}

type DispatcherInterface interface {
	Dispatch(ctx context.Context, job NotificationJob) error
}

type RabbitMQProducer struct {
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) Dispatch(ctx context.Context, job NotificationJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal notification job: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish notification job: %w", err)
	}
	return nil
}
