// Package usersink forwards activity events into a go-users activity log.
package usersink

import (
	"context"
	"fmt"

	"github.com/goliatone/go-studio/pkg/activity"
	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Sink is the subset of the go-users activity logger the hook needs.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook maps activity events onto go-users activity records.
type Hook struct {
	Sink Sink
}

// Notify converts and forwards the event. Events without a verb are skipped;
// a nil sink makes the hook inert.
func (h Hook) Notify(ctx context.Context, evt activity.Event) error {
	if h.Sink == nil || !evt.Valid() {
		return nil
	}

	record := types.ActivityRecord{
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    evt.Channel,
		OccurredAt: evt.OccurredAt,
	}
	var err error
	if record.ActorID, err = parseID(evt.ActorID); err != nil {
		return fmt.Errorf("usersink: actor id: %w", err)
	}
	if record.UserID, err = parseID(evt.UserID); err != nil {
		return fmt.Errorf("usersink: user id: %w", err)
	}
	if record.TenantID, err = parseID(evt.TenantID); err != nil {
		return fmt.Errorf("usersink: tenant id: %w", err)
	}

	data := make(map[string]any, len(evt.Metadata)+2)
	for k, v := range evt.Metadata {
		data[k] = v
	}
	if evt.DefinitionCode != "" {
		data["definition_code"] = evt.DefinitionCode
	}
	if len(evt.Recipients) > 0 {
		data["recipients"] = evt.Recipients
	}
	if len(data) > 0 {
		record.Data = data
	}

	return h.Sink.Log(ctx, record)
}

func parseID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(raw)
}
