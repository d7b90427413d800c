package httpapi

import (
	"context"

	storefront "github.com/goliatone/go-studio/components/storefront"
	"github.com/goliatone/go-studio/components/storefront/commands"
	"github.com/goliatone/go-studio/components/storefront/queries"
)

// Executor is the transport-facing facade over the storefront commands and
// queries. Both the net/http handlers and the go-router transport consume it.
type Executor interface {
	CreateOrder(ctx context.Context, input commands.CreateOrderInput) (storefront.CreateOrderResponse, error)
	VerifyPayment(ctx context.Context, input commands.VerifyPaymentInput) error
	MyOrders(ctx context.Context, input queries.MyOrdersInput) ([]storefront.OrderView, error)
	AdminData(ctx context.Context, input queries.AdminDataInput) (storefront.AdminSnapshot, error)
	Maintenance(ctx context.Context, input commands.SubmitMaintenanceInput) error
	Contact(ctx context.Context, input commands.SubmitContactInput) error
}

// CommandExecutor implements Executor by dispatching to the shared commands.
type CommandExecutor struct {
	createOrder   *commands.CreateOrderQuery
	verifyPayment *commands.VerifyPaymentCommand
	maintenance   *commands.SubmitMaintenanceCommand
	contact       *commands.SubmitContactCommand
	myOrders      *queries.MyOrdersQuery
	adminData     *queries.AdminDataQuery
}

// NewCommandExecutor wires every command and query to the given service.
func NewCommandExecutor(service *storefront.Service, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		createOrder:   commands.NewCreateOrderQuery(service),
		verifyPayment: commands.NewVerifyPaymentCommand(service, telemetry),
		maintenance:   commands.NewSubmitMaintenanceCommand(service, telemetry),
		contact:       commands.NewSubmitContactCommand(service, telemetry),
		myOrders:      queries.NewMyOrdersQuery(service),
		adminData:     queries.NewAdminDataQuery(service),
	}
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) CreateOrder(ctx context.Context, input commands.CreateOrderInput) (storefront.CreateOrderResponse, error) {
	return e.createOrder.Query(ctx, input)
}

func (e *CommandExecutor) VerifyPayment(ctx context.Context, input commands.VerifyPaymentInput) error {
	return e.verifyPayment.Execute(ctx, input)
}

func (e *CommandExecutor) MyOrders(ctx context.Context, input queries.MyOrdersInput) ([]storefront.OrderView, error) {
	return e.myOrders.Query(ctx, input)
}

func (e *CommandExecutor) AdminData(ctx context.Context, input queries.AdminDataInput) (storefront.AdminSnapshot, error) {
	return e.adminData.Query(ctx, input)
}

func (e *CommandExecutor) Maintenance(ctx context.Context, input commands.SubmitMaintenanceInput) error {
	return e.maintenance.Execute(ctx, input)
}

func (e *CommandExecutor) Contact(ctx context.Context, input commands.SubmitContactInput) error {
	return e.contact.Execute(ctx, input)
}
