package storefront

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

type stubGateway struct {
	mu      sync.Mutex
	serial  int
	created []GatewayOrderRequest
	valid   map[string]bool
}

func newStubGateway() *stubGateway {
	return &stubGateway{valid: map[string]bool{}}
}

func (g *stubGateway) Key() string { return "rzp_test_stub" }

func (g *stubGateway) CreateOrder(_ context.Context, req GatewayOrderRequest) (GatewayOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.serial++
	g.created = append(g.created, req)
	id := fmt.Sprintf("order_stub_%03d", g.serial)
	return GatewayOrder{ID: id, AmountPaise: req.AmountPaise, Currency: req.Currency}, nil
}

func (g *stubGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return g.valid[orderID+"|"+paymentID+"|"+signature]
}

func (g *stubGateway) accept(orderID, paymentID, signature string) {
	g.valid[orderID+"|"+paymentID+"|"+signature] = true
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []MailMessage
}

func (m *recordingMailer) Send(_ context.Context, msg MailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type recordingRefreshHook struct {
	events []OrderEvent
}

func (h *recordingRefreshHook) OrderUpdated(_ context.Context, event OrderEvent) error {
	h.events = append(h.events, event)
	return nil
}

// countingOrderStore wraps a real store and counts every access.
type countingOrderStore struct {
	*InMemoryOrderStore
	calls int
}

func (s *countingOrderStore) ListByUser(ctx context.Context, email string) ([]Order, error) {
	s.calls++
	return s.InMemoryOrderStore.ListByUser(ctx, email)
}

func clientSession() *Session {
	return &Session{Name: "Asha", Email: "asha@example.com"}
}

func newTestService(gateway PaymentGateway) (*Service, *recordingMailer, *recordingRefreshHook) {
	mailer := &recordingMailer{}
	hook := &recordingRefreshHook{}
	svc := NewService(Options{
		Gateway:     gateway,
		Mailer:      mailer,
		RefreshHook: hook,
		StudioInbox: "studio@example.com",
	})
	return svc, mailer, hook
}

func TestCreateOrderRequiresSession(t *testing.T) {
	svc, _, _ := newTestService(newStubGateway())
	_, err := svc.CreateOrder(context.Background(), nil, CreateOrderRequest{ProjectID: "proj-002"})
	if !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
}

func TestCreateOrderUnknownProject(t *testing.T) {
	svc, _, _ := newTestService(newStubGateway())
	_, err := svc.CreateOrder(context.Background(), clientSession(), CreateOrderRequest{ProjectID: "proj-999"})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = svc.CreateOrder(context.Background(), clientSession(), CreateOrderRequest{})
	if !IsValidation(err) {
		t.Fatalf("expected validation error for empty request, got %v", err)
	}
}

func TestCreateOrderRejectsTamperedAmount(t *testing.T) {
	svc, _, _ := newTestService(newStubGateway())
	_, err := svc.CreateOrder(context.Background(), clientSession(), CreateOrderRequest{
		ProjectID: "proj-002",
		Amount:    1,
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error for tampered amount, got %v", err)
	}
}

func TestCreateOrderComputesAdvanceFromCatalog(t *testing.T) {
	gateway := newStubGateway()
	svc, _, _ := newTestService(gateway)
	ctx := context.Background()

	resp, err := svc.CreateOrder(ctx, clientSession(), CreateOrderRequest{ProjectID: "proj-002"})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if resp.Amount != 3750*100 {
		t.Fatalf("expected amount in paise 375000, got %d", resp.Amount)
	}
	if resp.Key != "rzp_test_stub" || resp.Currency != "INR" {
		t.Fatalf("unexpected checkout payload %+v", resp)
	}
	if resp.UserEmail != "asha@example.com" || resp.UserName != "Asha" {
		t.Fatalf("expected prefill from session, got %+v", resp)
	}

	order, ok, err := svc.opts.Orders.FindByOrderID(ctx, resp.OrderID)
	if err != nil || !ok {
		t.Fatalf("expected persisted order: %v ok=%v", err, ok)
	}
	if order.Status != OrderCreated || order.Amount != 3750 {
		t.Fatalf("unexpected stored order %+v", order)
	}

	users, _ := svc.opts.Users.ListAll(ctx)
	if len(users) != 1 || users[0].Email != "asha@example.com" {
		t.Fatalf("expected user recorded, got %+v", users)
	}
}

func TestCreateOrderResolvesByProjectName(t *testing.T) {
	svc, _, _ := newTestService(newStubGateway())
	resp, err := svc.CreateOrder(context.Background(), clientSession(), CreateOrderRequest{
		ProjectName: "Corporate Landing Page",
	})
	if err != nil {
		t.Fatalf("create order by name: %v", err)
	}
	if resp.Amount != 3750*100 {
		t.Fatalf("expected proj-002 advance, got %d", resp.Amount)
	}
}

func TestCreateOrderReusesPendingOrder(t *testing.T) {
	gateway := newStubGateway()
	svc, _, _ := newTestService(gateway)
	ctx := context.Background()

	first, err := svc.CreateOrder(ctx, clientSession(), CreateOrderRequest{ProjectID: "proj-003"})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := svc.CreateOrder(ctx, clientSession(), CreateOrderRequest{ProjectID: "proj-003"})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if first.OrderID != second.OrderID {
		t.Fatalf("expected pending order reuse, got %s then %s", first.OrderID, second.OrderID)
	}
	if len(gateway.created) != 1 {
		t.Fatalf("expected a single gateway order, got %d", len(gateway.created))
	}

	// A different product still gets its own order.
	third, err := svc.CreateOrder(ctx, clientSession(), CreateOrderRequest{ProjectID: "proj-004"})
	if err != nil {
		t.Fatalf("third create: %v", err)
	}
	if third.OrderID == first.OrderID {
		t.Fatalf("different product must not reuse the pending order")
	}
}

func TestConfirmPaymentUnknownOrder(t *testing.T) {
	svc, _, _ := newTestService(newStubGateway())
	err := svc.ConfirmPayment(context.Background(), ConfirmPaymentRequest{
		OrderID:   "order_missing",
		PaymentID: "pay_1",
		Signature: "sig",
	})
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestConfirmPaymentRejectsBadSignature(t *testing.T) {
	gateway := newStubGateway()
	svc, mailer, hook := newTestService(gateway)
	ctx := context.Background()

	resp, err := svc.CreateOrder(ctx, clientSession(), CreateOrderRequest{ProjectID: "proj-002"})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	err = svc.ConfirmPayment(ctx, ConfirmPaymentRequest{
		OrderID:   resp.OrderID,
		PaymentID: "pay_1",
		Signature: "forged",
	})
	if !errors.Is(err, ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}

	order, _, _ := svc.opts.Orders.FindByOrderID(ctx, resp.OrderID)
	if order.Status != OrderFailed {
		t.Fatalf("expected Failed status, got %s", order.Status)
	}
	if order.FailureReason == "" {
		t.Fatalf("expected failure reason recorded")
	}
	if order.PaymentID != "" {
		t.Fatalf("rejected payment must not be settled")
	}
	if len(hook.events) != 0 {
		t.Fatalf("no refresh events for rejected payments, got %d", len(hook.events))
	}
	if mailer.count() != 0 {
		t.Fatalf("no confirmation mail for rejected payments, got %d", mailer.count())
	}
}

func TestConfirmPaymentSettlesOrder(t *testing.T) {
	gateway := newStubGateway()
	svc, mailer, hook := newTestService(gateway)
	ctx := context.Background()

	resp, err := svc.CreateOrder(ctx, clientSession(), CreateOrderRequest{ProjectID: "proj-002"})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	gateway.accept(resp.OrderID, "pay_42", "good-sig")

	if err := svc.ConfirmPayment(ctx, ConfirmPaymentRequest{
		OrderID:   resp.OrderID,
		PaymentID: "pay_42",
		Signature: "good-sig",
	}); err != nil {
		t.Fatalf("confirm payment: %v", err)
	}

	order, _, _ := svc.opts.Orders.FindByOrderID(ctx, resp.OrderID)
	if order.Status != OrderPaid || order.PaymentID != "pay_42" {
		t.Fatalf("unexpected settled order %+v", order)
	}
	if len(hook.events) != 1 || hook.events[0].Reason != "paid" {
		t.Fatalf("expected one paid refresh event, got %+v", hook.events)
	}
	if mailer.count() != 2 {
		t.Fatalf("expected client + studio mail, got %d", mailer.count())
	}
}

func TestConfirmPaymentRetryAfterFailure(t *testing.T) {
	gateway := newStubGateway()
	svc, _, _ := newTestService(gateway)
	ctx := context.Background()

	resp, _ := svc.CreateOrder(ctx, clientSession(), CreateOrderRequest{ProjectID: "proj-004"})
	_ = svc.ConfirmPayment(ctx, ConfirmPaymentRequest{OrderID: resp.OrderID, PaymentID: "p", Signature: "bad"})

	gateway.accept(resp.OrderID, "pay_retry", "sig_retry")
	if err := svc.ConfirmPayment(ctx, ConfirmPaymentRequest{
		OrderID:   resp.OrderID,
		PaymentID: "pay_retry",
		Signature: "sig_retry",
	}); err != nil {
		t.Fatalf("retry confirm: %v", err)
	}
	order, _, _ := svc.opts.Orders.FindByOrderID(ctx, resp.OrderID)
	if order.Status != OrderPaid || order.FailureReason != "" {
		t.Fatalf("expected clean settled order after retry, got %+v", order)
	}
}

func TestMyOrdersRequiresSessionBeforeStoreAccess(t *testing.T) {
	store := &countingOrderStore{InMemoryOrderStore: NewInMemoryOrderStore()}
	svc := NewService(Options{Orders: store, Gateway: newStubGateway()})

	if _, err := svc.MyOrders(context.Background(), nil); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
	if _, err := svc.MyOrders(context.Background(), &Session{Name: "x"}); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired for empty email, got %v", err)
	}
	if store.calls != 0 {
		t.Fatalf("store must not be touched without a session, got %d calls", store.calls)
	}
}

func TestMyOrdersNewestFirst(t *testing.T) {
	svc, _, _ := newTestService(newStubGateway())
	ctx := context.Background()
	now := time.Now().UTC()

	for i, id := range []string{"order_a", "order_b", "order_c"} {
		if err := svc.opts.Orders.Save(ctx, Order{
			OrderID:   id,
			UserEmail: "asha@example.com",
			Amount:    100,
			Status:    OrderPaid,
			Date:      now.Add(time.Duration(i) * time.Hour),
		}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	_ = svc.opts.Orders.Save(ctx, Order{OrderID: "other", UserEmail: "else@example.com", Date: now})

	orders, err := svc.MyOrders(ctx, clientSession())
	if err != nil {
		t.Fatalf("my orders: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
	if orders[0].OrderID != "order_c" || orders[2].OrderID != "order_a" {
		t.Fatalf("expected newest first, got %s .. %s", orders[0].OrderID, orders[2].OrderID)
	}
}

func TestSubmitMaintenanceRecomputesCost(t *testing.T) {
	svc, mailer, _ := newTestService(newStubGateway())
	ctx := context.Background()
	addons := []Addon{{Label: "Priority Support", Price: 2000}}

	if err := svc.SubmitMaintenance(ctx, nil, MaintenanceSubmission{IssueType: IssueBugFix}); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
	if err := svc.SubmitMaintenance(ctx, clientSession(), MaintenanceSubmission{
		IssueType: "Total Rewrite",
	}); !IsValidation(err) {
		t.Fatalf("expected validation error for unknown issue, got %v", err)
	}
	if err := svc.SubmitMaintenance(ctx, clientSession(), MaintenanceSubmission{
		IssueType: IssueNewFeature,
		Addons:    addons,
		Cost:      1,
	}); !IsValidation(err) {
		t.Fatalf("expected validation error for cost mismatch, got %v", err)
	}

	if err := svc.SubmitMaintenance(ctx, clientSession(), MaintenanceSubmission{
		IssueType:   IssueNewFeature,
		Description: "add a blog",
		Addons:      addons,
		Cost:        7000,
	}); err != nil {
		t.Fatalf("submit maintenance: %v", err)
	}

	tickets, _ := svc.opts.Maintenance.ListAll(ctx)
	if len(tickets) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(tickets))
	}
	ticket := tickets[0]
	if ticket.Cost != 7000 || ticket.Status != "Pending" || ticket.UserEmail != "asha@example.com" {
		t.Fatalf("unexpected ticket %+v", ticket)
	}
	if mailer.count() != 2 {
		t.Fatalf("expected studio + client mail, got %d", mailer.count())
	}
}

func TestSubmitContact(t *testing.T) {
	svc, mailer, _ := newTestService(newStubGateway())
	ctx := context.Background()

	if err := svc.SubmitContact(ctx, ContactSubmission{Email: "a@b.c"}); !IsValidation(err) {
		t.Fatalf("expected validation error without name, got %v", err)
	}
	if err := svc.SubmitContact(ctx, ContactSubmission{Name: "A"}); !IsValidation(err) {
		t.Fatalf("expected validation error without email, got %v", err)
	}

	if err := svc.SubmitContact(ctx, ContactSubmission{
		Name:    "Priya",
		Email:   "priya@example.com",
		Service: "Web Apps",
		Message: "Need a booking system",
	}); err != nil {
		t.Fatalf("submit contact: %v", err)
	}
	inquiries, _ := svc.opts.Contacts.ListAll(ctx)
	if len(inquiries) != 1 || inquiries[0].Name != "Priya" {
		t.Fatalf("unexpected inquiries %+v", inquiries)
	}
	if mailer.count() != 1 {
		t.Fatalf("expected studio alert mail, got %d", mailer.count())
	}
}

func TestAdminDataRequiresAdminSession(t *testing.T) {
	svc, _, _ := newTestService(newStubGateway())
	ctx := context.Background()

	if _, err := svc.AdminData(ctx, nil); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for nil session, got %v", err)
	}
	if _, err := svc.AdminData(ctx, clientSession()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-admin, got %v", err)
	}
}

func TestAdminDataBuildsSnapshot(t *testing.T) {
	gateway := newStubGateway()
	svc, _, _ := newTestService(gateway)
	ctx := context.Background()

	resp, err := svc.CreateOrder(ctx, clientSession(), CreateOrderRequest{ProjectID: "proj-002"})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	gateway.accept(resp.OrderID, "pay_1", "sig_1")
	if err := svc.ConfirmPayment(ctx, ConfirmPaymentRequest{OrderID: resp.OrderID, PaymentID: "pay_1", Signature: "sig_1"}); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := svc.SubmitMaintenance(ctx, clientSession(), MaintenanceSubmission{IssueType: IssueBugFix}); err != nil {
		t.Fatalf("maintenance: %v", err)
	}
	if err := svc.SubmitContact(ctx, ContactSubmission{Name: "Priya", Email: "priya@example.com"}); err != nil {
		t.Fatalf("contact: %v", err)
	}

	snapshot, err := svc.AdminData(ctx, &Session{Name: "Administrator", Email: "admin@x.com", Admin: true})
	if err != nil {
		t.Fatalf("admin data: %v", err)
	}
	if len(snapshot.Users) != 1 || len(snapshot.Orders) != 1 || len(snapshot.Maintenance) != 1 || len(snapshot.Contacts) != 1 {
		t.Fatalf("unexpected snapshot sizes %+v", snapshot)
	}
	orderView := snapshot.Orders[0]
	if orderView.ProjectStatus != "Paid" || orderView.ProjectPrice != 3750 || orderView.UserName != "asha@example.com" {
		t.Fatalf("unexpected order view %+v", orderView)
	}
	if snapshot.Maintenance[0].Status != "Pending" {
		t.Fatalf("unexpected maintenance view %+v", snapshot.Maintenance[0])
	}
}
