package consumer

import (
	"context"
	"encoding/json"

	"go-leave/internal/bootstrap"
	"go-leave/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeAuditTrail records every lifecycle event it reads until ctx is done.
// Undecodable messages are committed and dropped.
func ConsumeAuditTrail(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.audit")
	log.Info("audit consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("audit consumer stopped")
				return
			}
			log.Error("fetch audit message failed", zap.Error(err))
			continue
		}

		if err := HandleMessage(ctx, msg, audit); err != nil {
			log.Error("decode audit event failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit audit message failed", zap.Error(err))
		}
	}
}

// HandleMessage turns one lifecycle message into an audit entry.
func HandleMessage(ctx context.Context, msg kafkago.Message, audit bootstrap.AuditLogger) error {
	var env events.Envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		return err
	}

	var meta map[string]any
	if err := json.Unmarshal(msg.Value, &meta); err != nil {
		return err
	}
	delete(meta, "event_type")
	delete(meta, "occurred_at")
	meta["topic"] = msg.Topic
	meta["key"] = string(msg.Key)

	audit.Log(ctx, bootstrap.AuditLog{
		Action:     env.EventType,
		Message:    auditMessage(env.EventType),
		RequestID:  env.RequestID,
		OccurredAt: env.OccurredAt,
		Meta:       meta,
	})
	return nil
}

func auditMessage(eventType string) string {
	switch eventType {
	case events.EmployeeCreated:
		return "employee created"
	case events.EmployeeUpdated:
		return "employee updated"
	case events.EmployeeDeleted:
		return "employee deleted with leave history"
	case events.EmployeeImported:
		return "employees imported"
	case events.LeaveCreated:
		return "leave recorded and balance debited"
	case events.LeaveDeleted:
		return "leave removed and balance restored"
	default:
		return "unrecognised event"
	}
}
