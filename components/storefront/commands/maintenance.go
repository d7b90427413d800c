package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	storefront "github.com/goliatone/go-studio/components/storefront"
)

// SubmitMaintenanceInput carries a maintenance ticket submission.
type SubmitMaintenanceInput struct {
	Session    *storefront.Session
	Submission storefront.MaintenanceSubmission
}

type maintenanceTaker interface {
	SubmitMaintenance(ctx context.Context, session *storefront.Session, sub storefront.MaintenanceSubmission) error
}

// SubmitMaintenanceCommand records a ticket after cost revalidation.
type SubmitMaintenanceCommand struct {
	service   maintenanceTaker
	telemetry Telemetry
}

// NewSubmitMaintenanceCommand creates the command.
func NewSubmitMaintenanceCommand(service maintenanceTaker, telemetry Telemetry) *SubmitMaintenanceCommand {
	return &SubmitMaintenanceCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SubmitMaintenanceInput] = (*SubmitMaintenanceCommand)(nil)

// Execute stores the ticket.
func (c *SubmitMaintenanceCommand) Execute(ctx context.Context, msg SubmitMaintenanceInput) error {
	if c.service == nil {
		return errors.New("submit maintenance requires service")
	}
	if err := c.service.SubmitMaintenance(ctx, msg.Session, msg.Submission); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "storefront.maintenance.recorded", map[string]any{
		"issue": string(msg.Submission.IssueType),
	})
	return nil
}
