// Package adminpanel helps host applications mount the studio admin screens
// inside an existing admin shell.
package adminpanel

import (
	"context"
	"errors"

	activitypkg "github.com/goliatone/go-studio/pkg/activity"
	storefrontpkg "github.com/goliatone/go-studio/pkg/storefront"
)

// MenuBuilder ensures admin entries exist within the host navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures admin link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the storefront service + feature flags into an admin shell.
type Config struct {
	EnableAdmin    bool
	MenuCode       string
	MenuBuilder    MenuBuilder
	Service        *storefrontpkg.Service
	MenuItems      []MenuItem
	ActivityHooks  activitypkg.Hooks
	ActivityConfig activitypkg.Config
}

// Admin exposes helpers for admin-shell style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed the studio menu entries.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableAdmin && cfg.Service == nil {
		return nil, errors.New("adminpanel: storefront service is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if len(cfg.MenuItems) == 0 {
		cfg.MenuItems = DefaultMenuItems()
	}
	return &Admin{cfg: cfg}, nil
}

// DefaultMenuItems lists one entry per admin tab.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{Label: "Overview", Route: "admin.overview", Icon: "home", Position: 0},
		{Label: "Users", Route: "admin.users", Icon: "users", Position: 1},
		{Label: "Orders", Route: "admin.orders", Icon: "cart", Position: 2},
		{Label: "Maintenance", Route: "admin.maintenance", Icon: "wrench", Position: 3},
		{Label: "Contacts", Route: "admin.contacts", Icon: "mail", Position: 4},
	}
}

// Storefront exposes the configured service when admin support is enabled.
func (a *Admin) Storefront() *storefrontpkg.Service {
	if !a.cfg.EnableAdmin {
		return nil
	}
	return a.cfg.Service
}

// Activity exposes an emitter built from the configured hooks.
func (a *Admin) Activity() *activitypkg.Emitter {
	return activitypkg.NewEmitter(a.cfg.ActivityHooks, a.cfg.ActivityConfig)
}

// Bootstrap seeds menu entries when admin support is enabled.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableAdmin || a.cfg.MenuBuilder == nil {
		return nil
	}
	for _, item := range a.cfg.MenuItems {
		if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, item); err != nil {
			return err
		}
	}
	return nil
}
