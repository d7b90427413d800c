package storefront

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-studio/pkg/activity"
)

const defaultCurrency = "INR"

var (
	errMissingGateway = errors.New("storefront: payment gateway not configured")
)

// Options configures the storefront Service. Every collaborator is provided
// via interface so applications can swap implementations without importing
// internal go-studio packages.
type Options struct {
	Catalog     *Catalog
	Orders      OrderStore
	Users       UserStore
	Maintenance MaintenanceStore
	Contacts    ContactStore
	Gateway     PaymentGateway
	Mailer      Mailer
	RefreshHook RefreshHook
	Telemetry   Telemetry
	Activity    *activity.Emitter
	// StudioInbox receives the admin alert mails for new orders, tickets,
	// and inquiries.
	StudioInbox string
	Clock       func() time.Time
}

// Service orchestrates the storefront: catalog, order flow, dashboard data,
// maintenance tickets, contact intake, and the admin aggregate.
type Service struct {
	opts Options
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Catalog == nil {
		opts.Catalog = DefaultCatalog()
	}
	if opts.Orders == nil {
		opts.Orders = NewInMemoryOrderStore()
	}
	if opts.Users == nil {
		opts.Users = NewInMemoryUserStore()
	}
	if opts.Maintenance == nil {
		opts.Maintenance = NewInMemoryMaintenanceStore()
	}
	if opts.Contacts == nil {
		opts.Contacts = NewInMemoryContactStore()
	}
	if opts.Mailer == nil {
		opts.Mailer = noopMailer{}
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Activity == nil {
		opts.Activity = activity.NewEmitter(nil, activity.Config{})
	}
	if opts.Clock == nil {
		opts.Clock = func() time.Time { return time.Now().UTC() }
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{opts: opts}
}

// Catalog exposes the immutable product catalog.
func (s *Service) Catalog() *Catalog {
	return s.opts.Catalog
}

// CreateOrderRequest initiates the payment flow for a product. ProjectID is
// preferred; ProjectName is accepted for callers that only carry the title.
// Amount, when non-zero, must equal the server-computed advance.
type CreateOrderRequest struct {
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
	Amount      int    `json:"amount"`
}

// CreateOrderResponse is the checkout payload the payment widget consumes.
// Amount is in paise, the gateway's smallest currency unit.
type CreateOrderResponse struct {
	Key       string `json:"key"`
	Amount    int    `json:"amount"`
	Currency  string `json:"currency"`
	OrderID   string `json:"order_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// CreateOrder resolves the product, computes the 25% advance from the
// catalog price, and asks the gateway for a checkout order. A pending order
// for the same user/product pair is reused so a double submit never creates
// a duplicate gateway order.
func (s *Service) CreateOrder(ctx context.Context, session *Session, req CreateOrderRequest) (CreateOrderResponse, error) {
	if session == nil || session.Email == "" {
		return CreateOrderResponse{}, ErrLoginRequired
	}
	if s.opts.Gateway == nil {
		return CreateOrderResponse{}, errMissingGateway
	}
	product, err := s.resolveProduct(req)
	if err != nil {
		return CreateOrderResponse{}, err
	}
	quote := QuoteAdvance(product.Price)
	if req.Amount != 0 && req.Amount != quote.Advance {
		return CreateOrderResponse{}, newValidationError(fmt.Sprintf(
			"amount %d does not match the advance %d for %s", req.Amount, quote.Advance, product.Title))
	}

	if pending, ok, err := s.opts.Orders.FindPending(ctx, session.Email, product.ID); err != nil {
		return CreateOrderResponse{}, fmt.Errorf("storefront: find pending order: %w", err)
	} else if ok {
		s.recordTelemetry(ctx, "storefront.order.reuse", map[string]any{
			"order_id": pending.OrderID,
			"project":  product.ID,
		})
		return s.checkoutPayload(pending, session), nil
	}

	gatewayOrder, err := s.opts.Gateway.CreateOrder(ctx, GatewayOrderRequest{
		AmountPaise: quote.Advance * 100,
		Currency:    defaultCurrency,
		Receipt:     fmt.Sprintf("order_%d", s.opts.Clock().Unix()),
	})
	if err != nil {
		return CreateOrderResponse{}, fmt.Errorf("storefront: gateway order: %w", err)
	}

	order := Order{
		OrderID:     gatewayOrder.ID,
		UserEmail:   session.Email,
		ProjectID:   product.ID,
		ProjectName: product.Title,
		Amount:      quote.Advance,
		Status:      OrderCreated,
		Date:        s.opts.Clock(),
	}
	if err := s.opts.Orders.Save(ctx, order); err != nil {
		return CreateOrderResponse{}, fmt.Errorf("storefront: save order: %w", err)
	}
	if _, err := s.opts.Users.EnsureUser(ctx, UserRecord{
		Name:    session.Name,
		Email:   session.Email,
		Picture: session.Picture,
	}); err != nil {
		return CreateOrderResponse{}, fmt.Errorf("storefront: ensure user: %w", err)
	}

	s.recordTelemetry(ctx, "storefront.order.create", map[string]any{
		"order_id": order.OrderID,
		"project":  product.ID,
		"amount":   order.Amount,
	})
	return s.checkoutPayload(order, session), nil
}

func (s *Service) checkoutPayload(order Order, session *Session) CreateOrderResponse {
	return CreateOrderResponse{
		Key:       s.opts.Gateway.Key(),
		Amount:    order.Amount * 100,
		Currency:  defaultCurrency,
		OrderID:   order.OrderID,
		UserName:  session.Name,
		UserEmail: session.Email,
	}
}

func (s *Service) resolveProduct(req CreateOrderRequest) (Product, error) {
	if req.ProjectID != "" {
		if product, ok := s.opts.Catalog.Find(req.ProjectID); ok {
			return product, nil
		}
		return Product{}, newValidationError(fmt.Sprintf("unknown project %s", req.ProjectID))
	}
	if req.ProjectName != "" {
		if product, ok := s.opts.Catalog.FindByTitle(req.ProjectName); ok {
			return product, nil
		}
		return Product{}, newValidationError(fmt.Sprintf("unknown project %q", req.ProjectName))
	}
	return Product{}, newValidationError("project id or name is required")
}

// ConfirmPaymentRequest carries the widget completion values, forwarded
// verbatim by the client. The signature is checked here and only here.
type ConfirmPaymentRequest struct {
	PaymentID string `json:"razorpay_payment_id"`
	OrderID   string `json:"razorpay_order_id"`
	Signature string `json:"razorpay_signature"`
}

// ConfirmPayment verifies the gateway signature and settles the order. A bad
// signature marks the order Failed and returns ErrVerificationFailed; the
// order is never reported as paid on that path.
func (s *Service) ConfirmPayment(ctx context.Context, req ConfirmPaymentRequest) error {
	if s.opts.Gateway == nil {
		return errMissingGateway
	}
	order, ok, err := s.opts.Orders.FindByOrderID(ctx, req.OrderID)
	if err != nil {
		return fmt.Errorf("storefront: find order: %w", err)
	}
	if !ok {
		return ErrOrderNotFound
	}

	if !s.opts.Gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		order.Status = OrderFailed
		order.FailureReason = "signature mismatch"
		if err := s.opts.Orders.Update(ctx, order); err != nil {
			return fmt.Errorf("storefront: record failed verification: %w", err)
		}
		s.recordTelemetry(ctx, "storefront.payment.rejected", map[string]any{
			"order_id": order.OrderID,
		})
		return ErrVerificationFailed
	}

	order.Status = OrderPaid
	order.PaymentID = req.PaymentID
	order.FailureReason = ""
	if err := s.opts.Orders.Update(ctx, order); err != nil {
		return fmt.Errorf("storefront: settle order: %w", err)
	}

	if err := s.opts.RefreshHook.OrderUpdated(ctx, OrderEvent{
		OrderID:     order.OrderID,
		UserEmail:   order.UserEmail,
		ProjectName: order.ProjectName,
		Amount:      order.Amount,
		Reason:      "paid",
	}); err != nil {
		return fmt.Errorf("storefront: broadcast settlement: %w", err)
	}

	s.sendMail(ctx, MailMessage{
		To:      order.UserEmail,
		Subject: "Order Confirmation",
		HTMLBody: fmt.Sprintf("<p>Paid %s for %s. Transaction ID: %s</p>",
			FormatINR(order.Amount), order.ProjectName, order.PaymentID),
	})
	if s.opts.StudioInbox != "" {
		s.sendMail(ctx, MailMessage{
			To:       s.opts.StudioInbox,
			Subject:  "New Order",
			HTMLBody: fmt.Sprintf("<p>%s paid %s for %s</p>", order.UserEmail, FormatINR(order.Amount), order.ProjectName),
		})
	}

	s.emitActivity(ctx, activity.Event{
		Verb:       "pay",
		ObjectType: "order",
		ObjectID:   order.OrderID,
		Metadata: map[string]any{
			"user":    order.UserEmail,
			"project": order.ProjectID,
			"amount":  order.Amount,
		},
	})
	s.recordTelemetry(ctx, "storefront.payment.settled", map[string]any{
		"order_id": order.OrderID,
		"amount":   order.Amount,
	})
	return nil
}

// MyOrders returns the session owner's orders, newest first. Without a
// session the call fails before touching the order store.
func (s *Service) MyOrders(ctx context.Context, session *Session) ([]Order, error) {
	if session == nil || session.Email == "" {
		return nil, ErrLoginRequired
	}
	orders, err := s.opts.Orders.ListByUser(ctx, session.Email)
	if err != nil {
		return nil, fmt.Errorf("storefront: list orders: %w", err)
	}
	return orders, nil
}

// TotalSpent sums the amount across the given order records.
func TotalSpent(orders []Order) int {
	total := 0
	for _, order := range orders {
		total += order.Amount
	}
	return total
}

// MaintenanceSubmission is a ticket as submitted from the maintenance form.
// Cost is the figure displayed to the user; it must equal the server-side
// estimate exactly.
type MaintenanceSubmission struct {
	IssueType   IssueType `json:"issueType"`
	Description string    `json:"description"`
	Addons      []Addon   `json:"addons"`
	Cost        int       `json:"cost"`
}

// SubmitMaintenance validates and stores a ticket, then mails the client and
// the studio inbox.
func (s *Service) SubmitMaintenance(ctx context.Context, session *Session, sub MaintenanceSubmission) error {
	if session == nil || session.Email == "" {
		return ErrLoginRequired
	}
	if !sub.IssueType.Valid() {
		return newValidationError(fmt.Sprintf("unknown issue type %q", sub.IssueType))
	}
	estimate := EstimateCost(sub.IssueType, sub.Addons)
	if sub.Cost != estimate {
		return newValidationError(fmt.Sprintf("submitted cost %d does not match the estimate %d", sub.Cost, estimate))
	}

	labels := make([]string, 0, len(sub.Addons))
	for _, addon := range sub.Addons {
		labels = append(labels, addon.Label)
	}
	if err := s.opts.Maintenance.Save(ctx, MaintenanceRequest{
		UserEmail:   session.Email,
		IssueType:   sub.IssueType,
		Description: sub.Description,
		Addons:      labels,
		Cost:        estimate,
		Status:      "Pending",
		Date:        s.opts.Clock(),
	}); err != nil {
		return fmt.Errorf("storefront: save maintenance request: %w", err)
	}

	if s.opts.StudioInbox != "" {
		s.sendMail(ctx, MailMessage{
			To:      s.opts.StudioInbox,
			Subject: "Maintenance Request Alert",
			HTMLBody: fmt.Sprintf("<h2>New Maintenance Request</h2><p><b>Client:</b> %s</p><p><b>Issue Type:</b> %s</p><p><b>Add-ons:</b> %s</p><p><b>Estimated Cost:</b> %s</p><p><b>Description:</b><br>%s</p>",
				session.Email, sub.IssueType, strings.Join(labels, ", "), FormatINR(estimate), sub.Description),
		})
	}
	s.sendMail(ctx, MailMessage{
		To:      session.Email,
		Subject: "Maintenance Request Confirmation",
		HTMLBody: fmt.Sprintf("<h2>Request Received</h2><p>Hi %s,</p><p>We received your request for <b>%s</b>.</p><p>Estimated Cost: %s</p><p>Our team will review it and contact you shortly.</p>",
			session.Name, sub.IssueType, FormatINR(estimate)),
	})

	s.emitActivity(ctx, activity.Event{
		Verb:       "submit",
		ObjectType: "maintenance",
		ObjectID:   string(sub.IssueType),
		Metadata:   map[string]any{"user": session.Email, "cost": estimate},
	})
	s.recordTelemetry(ctx, "storefront.maintenance.submit", map[string]any{
		"issue": string(sub.IssueType),
		"cost":  estimate,
	})
	return nil
}

// ContactSubmission is a contact-form payload.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// SubmitContact stores the inquiry and alerts the studio inbox.
func (s *Service) SubmitContact(ctx context.Context, sub ContactSubmission) error {
	if strings.TrimSpace(sub.Name) == "" {
		return newValidationError("name is required")
	}
	if strings.TrimSpace(sub.Email) == "" {
		return newValidationError("email is required")
	}
	if err := s.opts.Contacts.Save(ctx, ContactInquiry{
		Name:    sub.Name,
		Email:   sub.Email,
		Phone:   sub.Phone,
		Service: sub.Service,
		Message: sub.Message,
		Date:    s.opts.Clock(),
	}); err != nil {
		return fmt.Errorf("storefront: save inquiry: %w", err)
	}
	if s.opts.StudioInbox != "" {
		s.sendMail(ctx, MailMessage{
			To:       s.opts.StudioInbox,
			Subject:  "New Contact Inquiry",
			HTMLBody: fmt.Sprintf("<p>From: %s (%s)</p><p>%s</p>", sub.Name, sub.Email, sub.Message),
		})
	}
	s.recordTelemetry(ctx, "storefront.contact.submit", map[string]any{"service": sub.Service})
	return nil
}

// AdminData builds the aggregate snapshot behind every admin tab. Sessions
// without the admin flag are rejected before any store access.
func (s *Service) AdminData(ctx context.Context, session *Session) (AdminSnapshot, error) {
	if session == nil || !session.Admin {
		return AdminSnapshot{}, ErrUnauthorized
	}
	users, err := s.opts.Users.ListAll(ctx)
	if err != nil {
		return AdminSnapshot{}, fmt.Errorf("storefront: list users: %w", err)
	}
	orders, err := s.opts.Orders.ListAll(ctx)
	if err != nil {
		return AdminSnapshot{}, fmt.Errorf("storefront: list orders: %w", err)
	}
	maintenance, err := s.opts.Maintenance.ListAll(ctx)
	if err != nil {
		return AdminSnapshot{}, fmt.Errorf("storefront: list maintenance: %w", err)
	}
	contacts, err := s.opts.Contacts.ListAll(ctx)
	if err != nil {
		return AdminSnapshot{}, fmt.Errorf("storefront: list contacts: %w", err)
	}

	snapshot := AdminSnapshot{
		Users:       make([]AdminUserView, 0, len(users)),
		Orders:      make([]AdminOrderView, 0, len(orders)),
		Maintenance: make([]AdminMaintenanceView, 0, len(maintenance)),
		Contacts:    make([]AdminContactView, 0, len(contacts)),
	}
	for _, u := range users {
		snapshot.Users = append(snapshot.Users, AdminUserView{
			Name:      u.Name,
			Email:     u.Email,
			LastLogin: u.CreatedAt.Format(time.DateOnly),
		})
	}
	for _, o := range orders {
		snapshot.Orders = append(snapshot.Orders, AdminOrderView{
			OrderID:       o.OrderID,
			UserName:      o.UserEmail,
			ProjectName:   o.ProjectName,
			ProjectPrice:  o.Amount,
			ProjectStatus: string(o.Status),
		})
	}
	for _, m := range maintenance {
		snapshot.Maintenance = append(snapshot.Maintenance, AdminMaintenanceView{
			User:   m.UserEmail,
			Issue:  string(m.IssueType),
			Addons: strings.Join(m.Addons, ", "),
			Cost:   m.Cost,
			Status: m.Status,
		})
	}
	for _, c := range contacts {
		snapshot.Contacts = append(snapshot.Contacts, AdminContactView{
			Name:    c.Name,
			Email:   c.Email,
			Service: c.Service,
			Message: c.Message,
		})
	}
	s.recordTelemetry(ctx, "storefront.admin.snapshot", map[string]any{
		"users":  len(snapshot.Users),
		"orders": len(snapshot.Orders),
	})
	return snapshot, nil
}

func (s *Service) sendMail(ctx context.Context, msg MailMessage) {
	if err := s.opts.Mailer.Send(ctx, msg); err != nil {
		s.recordTelemetry(ctx, "storefront.mail.error", map[string]any{
			"to":    msg.To,
			"error": err.Error(),
		})
	}
}

func (s *Service) emitActivity(ctx context.Context, event activity.Event) {
	if !s.opts.Activity.Enabled() {
		return
	}
	if err := s.opts.Activity.Emit(ctx, event); err != nil {
		s.recordTelemetry(ctx, "storefront.activity.error", map[string]any{"error": err.Error()})
	}
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

type noopRefreshHook struct{}

func (noopRefreshHook) OrderUpdated(context.Context, OrderEvent) error { return nil }

type noopMailer struct{}

func (noopMailer) Send(context.Context, MailMessage) error { return nil }
