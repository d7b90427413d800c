// Package storefront re-exports the storefront component for embedders that
// prefer a flat import path.
package storefront

import (
	core "github.com/goliatone/go-studio/components/storefront"
)

// Service exposes the underlying components/storefront.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}
