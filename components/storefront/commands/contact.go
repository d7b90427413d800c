package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	storefront "github.com/goliatone/go-studio/components/storefront"
)

// SubmitContactInput carries a contact form payload.
type SubmitContactInput struct {
	Submission storefront.ContactSubmission
}

type contactTaker interface {
	SubmitContact(ctx context.Context, sub storefront.ContactSubmission) error
}

// SubmitContactCommand records a contact inquiry.
type SubmitContactCommand struct {
	service   contactTaker
	telemetry Telemetry
}

// NewSubmitContactCommand creates the command.
func NewSubmitContactCommand(service contactTaker, telemetry Telemetry) *SubmitContactCommand {
	return &SubmitContactCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SubmitContactInput] = (*SubmitContactCommand)(nil)

// Execute stores the inquiry.
func (c *SubmitContactCommand) Execute(ctx context.Context, msg SubmitContactInput) error {
	if c.service == nil {
		return errors.New("submit contact requires service")
	}
	if err := c.service.SubmitContact(ctx, msg.Submission); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "storefront.contact.recorded", map[string]any{
		"service": msg.Submission.Service,
	})
	return nil
}
