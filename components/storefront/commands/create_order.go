package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	storefront "github.com/goliatone/go-studio/components/storefront"
)

// CreateOrderInput carries the session and checkout request.
type CreateOrderInput struct {
	Session *storefront.Session
	Request storefront.CreateOrderRequest
}

type orderCreator interface {
	CreateOrder(ctx context.Context, session *storefront.Session, req storefront.CreateOrderRequest) (storefront.CreateOrderResponse, error)
}

// CreateOrderQuery initiates a checkout and returns the widget payload.
type CreateOrderQuery struct {
	service orderCreator
}

// NewCreateOrderQuery builds the query.
func NewCreateOrderQuery(service orderCreator) *CreateOrderQuery {
	return &CreateOrderQuery{service: service}
}

var _ gocommand.Querier[CreateOrderInput, storefront.CreateOrderResponse] = (*CreateOrderQuery)(nil)

// Query runs the checkout initiation.
func (q *CreateOrderQuery) Query(ctx context.Context, input CreateOrderInput) (storefront.CreateOrderResponse, error) {
	if q.service == nil {
		return storefront.CreateOrderResponse{}, errors.New("create order requires service")
	}
	return q.service.CreateOrder(ctx, input.Session, input.Request)
}
