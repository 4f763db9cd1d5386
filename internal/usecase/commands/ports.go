package commands

import (
	"context"

	"github.com/google/uuid"
)

//go:generate go run go.uber.org/mock/mockgen -source=./ports.go -destination=../../../tests/mock/ports/ports.go -package=portsmock

// PaymentGateway is the external payment collaborator. The lifecycle reacts
// to its outcomes; the protocol itself lives behind this interface.
type PaymentGateway interface {
	Authorize(ctx context.Context, amountCents int64, currency string) (intentRef string, err error)
	Capture(ctx context.Context, intentRef string) error
	Refund(ctx context.Context, intentRef string, amountCents int64) error
}

// AvailabilityInvalidator eagerly drops cached availability windows after a
// successful reservation or cancellation. Best effort only.
type AvailabilityInvalidator interface {
	InvalidateProperty(ctx context.Context, propertyID uuid.UUID)
}
