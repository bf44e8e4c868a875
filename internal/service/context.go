package service

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const transactionIDKey contextKey = "transactionId"

// WithTransactionID returns a context carrying a fresh transaction id.
// The transport layer calls this once per inbound request so every log
// line produced while serving it can be correlated.
func WithTransactionID(ctx context.Context) context.Context {
	return context.WithValue(ctx, transactionIDKey, uuid.NewString())
}

// TransactionID returns the transaction id carried by ctx, or "" when
// the call did not come through the transport layer.
func TransactionID(ctx context.Context) string {
	id, _ := ctx.Value(transactionIDKey).(string)
	return id
}
