package bootstrap

import (
	"context"
	"time"
)

type AuditLog struct {
	Action     string
	Message    string
	RequestID  string
	OccurredAt time.Time
	Meta       map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
