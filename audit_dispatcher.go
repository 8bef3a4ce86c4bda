package goGuard

import (
	"context"
	"time"

	internalaudit "github.com/MrEthical07/goGuard/internal/audit"
	"github.com/MrEthical07/goGuard/transport"
)

type auditDispatcher = internalaudit.Dispatcher

func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *auditDispatcher {
	return internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    cfg.Enabled,
		BufferSize: cfg.BufferSize,
		DropIfFull: cfg.DropIfFull,
	}, sink)
}

func (e *Engine) auditEmit(ctx context.Context, event AuditEvent) {
	if e == nil || e.audit == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Locale == "" {
		event.Locale = e.store.Locale()
	}
	if id, ok := transport.RequestIDFromContext(ctx); ok {
		if event.Metadata == nil {
			event.Metadata = map[string]string{"request_id": id}
		} else if _, exists := event.Metadata["request_id"]; !exists {
			event.Metadata["request_id"] = id
		}
	}
	e.audit.Emit(ctx, event)
}
