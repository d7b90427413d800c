package activity

import "context"

// Config toggles activity emission.
type Config struct {
	Enabled bool
}

// Emitter is the entry point services use to record activity. An emitter
// without hooks is inert regardless of configuration.
type Emitter struct {
	hooks Hooks
	cfg   Config
}

// NewEmitter wires hooks to a config. Nil hooks are fine; the emitter simply
// reports disabled.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	return &Emitter{hooks: hooks, cfg: cfg}
}

// Enabled reports whether Emit would deliver anything.
func (e *Emitter) Enabled() bool {
	return e != nil && e.cfg.Enabled && len(e.hooks) > 0
}

// Emit delivers the event to every hook. No-op when disabled.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	return e.hooks.Notify(ctx, evt)
}
