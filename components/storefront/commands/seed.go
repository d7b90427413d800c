package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocommand "github.com/goliatone/go-command"
	storefront "github.com/goliatone/go-studio/components/storefront"
)

// SeedDemoDataInput describes the demo dataset to install.
type SeedDemoDataInput struct {
	Users  []storefront.UserRecord
	Orders []storefront.Order
}

// SeedDemoDataCommand installs demo users and orders so local environments
// have something on the dashboard and admin panel.
type SeedDemoDataCommand struct {
	orders    storefront.OrderStore
	users     storefront.UserStore
	telemetry Telemetry
}

// NewSeedDemoDataCommand creates the command.
func NewSeedDemoDataCommand(orders storefront.OrderStore, users storefront.UserStore, telemetry Telemetry) *SeedDemoDataCommand {
	return &SeedDemoDataCommand{orders: orders, users: users, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SeedDemoDataInput] = (*SeedDemoDataCommand)(nil)

// Execute installs the dataset. Zero dates are backfilled so seeded orders
// sort deterministically.
func (c *SeedDemoDataCommand) Execute(ctx context.Context, msg SeedDemoDataInput) error {
	if c.orders == nil || c.users == nil {
		return errors.New("seed demo data requires order and user stores")
	}
	for _, user := range msg.Users {
		if _, err := c.users.EnsureUser(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", user.Email, err)
		}
	}
	base := time.Now().UTC().Add(-time.Duration(len(msg.Orders)) * 24 * time.Hour)
	for i, order := range msg.Orders {
		if order.Date.IsZero() {
			order.Date = base.Add(time.Duration(i) * 24 * time.Hour)
		}
		if err := c.orders.Save(ctx, order); err != nil {
			return fmt.Errorf("seed order %s: %w", order.OrderID, err)
		}
	}
	c.telemetry.Record(ctx, "storefront.seed.complete", map[string]any{
		"users":  len(msg.Users),
		"orders": len(msg.Orders),
	})
	return nil
}
