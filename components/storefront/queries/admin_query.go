package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	storefront "github.com/goliatone/go-studio/components/storefront"
)

// AdminDataInput identifies the admin session behind the request.
type AdminDataInput struct {
	Session *storefront.Session
}

type adminSnapshotter interface {
	AdminData(ctx context.Context, session *storefront.Session) (storefront.AdminSnapshot, error)
}

// AdminDataQuery fetches the aggregate admin snapshot.
type AdminDataQuery struct {
	service adminSnapshotter
}

// NewAdminDataQuery builds the query.
func NewAdminDataQuery(service adminSnapshotter) *AdminDataQuery {
	return &AdminDataQuery{service: service}
}

var _ gocommand.Querier[AdminDataInput, storefront.AdminSnapshot] = (*AdminDataQuery)(nil)

// Query returns the snapshot behind every admin tab.
func (q *AdminDataQuery) Query(ctx context.Context, input AdminDataInput) (storefront.AdminSnapshot, error) {
	return q.service.AdminData(ctx, input.Session)
}
