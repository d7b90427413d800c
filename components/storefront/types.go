package storefront

import (
	"context"
	"time"
)

// Product is a catalog entry for a project the studio sells. The catalog is
// loaded once at startup and never mutated afterwards.
type Product struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Price        int      `json:"price" yaml:"price"`
	Category     string   `json:"category" yaml:"category"`
	Image        string   `json:"image,omitempty" yaml:"image,omitempty"`
	Technologies []string `json:"technologies,omitempty" yaml:"technologies,omitempty"`
	Features     []string `json:"features,omitempty" yaml:"features,omitempty"`
}

// Session is the read-only identity snapshot bound to an opaque token. The
// snapshot stays stale until the user authenticates again.
type Session struct {
	Token   string
	Name    string
	Email   string
	Picture string
	Admin   bool
}

// OrderStatus tracks an order through the payment flow.
type OrderStatus string

const (
	OrderCreated OrderStatus = "Created"
	OrderPaid    OrderStatus = "Paid"
	OrderFailed  OrderStatus = "Failed"
)

// Order is the server-owned order record. Amount is the advance collected to
// start the project, computed from the catalog price at initiation time.
type Order struct {
	OrderID       string
	UserEmail     string
	ProjectID     string
	ProjectName   string
	Amount        int
	Status        OrderStatus
	PaymentID     string
	FailureReason string
	Date          time.Time
}

// MaintenanceRequest is a client-submitted support ticket.
type MaintenanceRequest struct {
	UserEmail   string
	IssueType   IssueType
	Description string
	Addons      []string
	Cost        int
	Status      string
	Date        time.Time
}

// ContactInquiry captures a contact-form submission.
type ContactInquiry struct {
	Name    string
	Email   string
	Phone   string
	Service string
	Message string
	Date    time.Time
}

// UserRecord is the stored identity for anyone who has signed in.
type UserRecord struct {
	Name      string
	Email     string
	Picture   string
	CreatedAt time.Time
}

// OrderStore persists order records. Implementations ensure thread safety.
type OrderStore interface {
	Save(ctx context.Context, order Order) error
	Update(ctx context.Context, order Order) error
	FindByOrderID(ctx context.Context, orderID string) (Order, bool, error)
	FindPending(ctx context.Context, userEmail, projectID string) (Order, bool, error)
	ListByUser(ctx context.Context, userEmail string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
}

// UserStore tracks known users for the admin panel.
type UserStore interface {
	EnsureUser(ctx context.Context, user UserRecord) (bool, error)
	ListAll(ctx context.Context) ([]UserRecord, error)
}

// MaintenanceStore persists maintenance tickets.
type MaintenanceStore interface {
	Save(ctx context.Context, req MaintenanceRequest) error
	ListAll(ctx context.Context) ([]MaintenanceRequest, error)
}

// ContactStore persists contact inquiries.
type ContactStore interface {
	Save(ctx context.Context, inquiry ContactInquiry) error
	ListAll(ctx context.Context) ([]ContactInquiry, error)
}

// GatewayOrderRequest asks the payment gateway for a checkout order.
type GatewayOrderRequest struct {
	AmountPaise int
	Currency    string
	Receipt     string
}

// GatewayOrder is the gateway-issued order the payment widget consumes.
type GatewayOrder struct {
	ID          string
	AmountPaise int
	Currency    string
}

// PaymentGateway creates checkout orders and verifies completion signatures.
// Signature verification happens here, server-side, and nowhere else.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, req GatewayOrderRequest) (GatewayOrder, error)
	VerifySignature(orderID, paymentID, signature string) bool
	Key() string
}

// MailMessage is a rendered notification mail.
type MailMessage struct {
	To       string
	Subject  string
	HTMLBody string
}

// Mailer delivers notification mails. Failures are logged via telemetry and
// never fail the triggering operation.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// OrderEvent describes order changes that transports might care about.
type OrderEvent struct {
	OrderID     string `json:"order_id"`
	UserEmail   string `json:"user_email"`
	ProjectName string `json:"project_name"`
	Amount      int    `json:"amount"`
	Reason      string `json:"reason"`
}

// RefreshHook notifies transports (WebSocket/SSE) when an order settles so
// any mounted dashboard can refresh out of band.
type RefreshHook interface {
	OrderUpdated(ctx context.Context, event OrderEvent) error
}

// AdminUserView mirrors the users tab columns.
type AdminUserView struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	LastLogin string `json:"last_login"`
}

// AdminOrderView mirrors the orders tab columns.
type AdminOrderView struct {
	OrderID       string `json:"orderId"`
	UserName      string `json:"userName"`
	ProjectName   string `json:"projectName"`
	ProjectPrice  int    `json:"projectPrice"`
	ProjectStatus string `json:"projectStatus"`
}

// AdminMaintenanceView mirrors the maintenance tab columns.
type AdminMaintenanceView struct {
	User   string `json:"user"`
	Issue  string `json:"issue"`
	Addons string `json:"addons"`
	Cost   int    `json:"cost"`
	Status string `json:"status"`
}

// AdminContactView mirrors the contacts tab columns.
type AdminContactView struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// AdminSnapshot is the single aggregate payload behind every admin tab.
type AdminSnapshot struct {
	Users       []AdminUserView        `json:"users"`
	Orders      []AdminOrderView       `json:"orders"`
	Maintenance []AdminMaintenanceView `json:"maintenance"`
	Contacts    []AdminContactView     `json:"contacts"`
}

// OverviewStats are the aggregate counters on the admin overview tab.
type OverviewStats struct {
	Users     int
	Orders    int
	Inquiries int
	Revenue   int
}
