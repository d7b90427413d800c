package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	storefront "github.com/goliatone/go-studio/components/storefront"
)

// VerifyPaymentInput carries the gateway completion values.
type VerifyPaymentInput struct {
	Request storefront.ConfirmPaymentRequest
}

type paymentConfirmer interface {
	ConfirmPayment(ctx context.Context, req storefront.ConfirmPaymentRequest) error
}

// VerifyPaymentCommand settles an order after signature verification.
type VerifyPaymentCommand struct {
	service   paymentConfirmer
	telemetry Telemetry
}

// NewVerifyPaymentCommand creates the command.
func NewVerifyPaymentCommand(service paymentConfirmer, telemetry Telemetry) *VerifyPaymentCommand {
	return &VerifyPaymentCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[VerifyPaymentInput] = (*VerifyPaymentCommand)(nil)

// Execute verifies the signature and settles the order.
func (c *VerifyPaymentCommand) Execute(ctx context.Context, msg VerifyPaymentInput) error {
	if c.service == nil {
		return errors.New("verify payment requires service")
	}
	if err := c.service.ConfirmPayment(ctx, msg.Request); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "storefront.order.settled", map[string]any{
		"order_id": msg.Request.OrderID,
	})
	return nil
}
