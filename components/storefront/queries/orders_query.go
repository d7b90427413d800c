package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	storefront "github.com/goliatone/go-studio/components/storefront"
)

// MyOrdersInput identifies the session whose orders are requested.
type MyOrdersInput struct {
	Session *storefront.Session
}

type orderLister interface {
	MyOrders(ctx context.Context, session *storefront.Session) ([]storefront.Order, error)
}

// MyOrdersQuery fetches the signed-in user's order history.
type MyOrdersQuery struct {
	service orderLister
}

// NewMyOrdersQuery builds the query.
func NewMyOrdersQuery(service orderLister) *MyOrdersQuery {
	return &MyOrdersQuery{service: service}
}

var _ gocommand.Querier[MyOrdersInput, []storefront.OrderView] = (*MyOrdersQuery)(nil)

// Query returns the user's orders as dashboard rows, newest first.
func (q *MyOrdersQuery) Query(ctx context.Context, input MyOrdersInput) ([]storefront.OrderView, error) {
	orders, err := q.service.MyOrders(ctx, input.Session)
	if err != nil {
		return nil, err
	}
	return storefront.OrderViews(orders), nil
}
