package storefront

import (
	"context"
	"errors"
	"io"
	"testing"
)

type recordingRenderer struct {
	names []string
	data  []map[string]any
}

func (r *recordingRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.names = append(r.names, name)
	r.data = append(r.data, data.(map[string]any))
	return "<html>" + name + "</html>", nil
}

func newTestController(t *testing.T, gateway PaymentGateway) (*Controller, *Service, *recordingRenderer) {
	t.Helper()
	svc := NewService(Options{Gateway: gateway})
	renderer := &recordingRenderer{}
	controller, err := NewController(ControllerOptions{
		Service:  svc,
		Renderer: renderer,
		Chart:    NewRevenueChart(WithChartCache(NewChartCache(0))),
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return controller, svc, renderer
}

func TestNewControllerRequiresService(t *testing.T) {
	if _, err := NewController(ControllerOptions{}); err == nil {
		t.Fatalf("expected error without service")
	}
}

func TestRenderHomeFiltersCatalog(t *testing.T) {
	controller, _, renderer := newTestController(t, newStubGateway())

	if _, err := controller.RenderHome(context.Background(), nil, "Landing Pages", nil); err != nil {
		t.Fatalf("render home: %v", err)
	}
	data := renderer.data[0]
	cards := data["products"].([]map[string]any)
	if len(cards) != 2 {
		t.Fatalf("expected 2 landing pages, got %d", len(cards))
	}
	card := cards[0]
	if card["price"] != "₹15,000" || card["advance"] != "₹3,750" || card["balance"] != "₹11,250" {
		t.Fatalf("unexpected money formatting %+v", card)
	}
	if card["advance_value"] != 3750 {
		t.Fatalf("expected numeric advance for the checkout button, got %v", card["advance_value"])
	}
	if view, _ := data["session"].(map[string]any); view != nil {
		t.Fatalf("anonymous render must carry no session view")
	}
}

func TestRenderHomeDefaultsCategoryAndFlash(t *testing.T) {
	controller, _, renderer := newTestController(t, newStubGateway())
	session := &Session{Name: "Asha", Email: "asha@example.com"}

	if _, err := controller.RenderHome(context.Background(), session, "", &Flash{Message: "Welcome back!", Kind: "info"}); err != nil {
		t.Fatalf("render home: %v", err)
	}
	data := renderer.data[0]
	if data["category"] != CategoryAll {
		t.Fatalf("expected category %q, got %v", CategoryAll, data["category"])
	}
	flash := data["flash"].(map[string]any)
	if flash["message"] != "Welcome back!" {
		t.Fatalf("unexpected flash %+v", flash)
	}
	view := data["session"].(map[string]any)
	if view["email"] != "asha@example.com" {
		t.Fatalf("unexpected session view %+v", view)
	}
}

func TestRenderDashboard(t *testing.T) {
	gateway := newStubGateway()
	controller, svc, renderer := newTestController(t, gateway)
	ctx := context.Background()
	session := clientSession()

	resp, err := svc.CreateOrder(ctx, session, CreateOrderRequest{ProjectID: "proj-002"})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	gateway.accept(resp.OrderID, "pay_1", "sig")
	if err := svc.ConfirmPayment(ctx, ConfirmPaymentRequest{OrderID: resp.OrderID, PaymentID: "pay_1", Signature: "sig"}); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if _, err := controller.RenderDashboard(ctx, session); err != nil {
		t.Fatalf("render dashboard: %v", err)
	}
	data := renderer.data[0]
	if data["total_spent"] != "₹3,750" {
		t.Fatalf("unexpected total %v", data["total_spent"])
	}
	if data["has_orders"] != true {
		t.Fatalf("expected has_orders true")
	}
	views := data["orders"].([]OrderView)
	if len(views) != 1 || views[0].Status != "Paid" {
		t.Fatalf("unexpected views %+v", views)
	}
}

func TestRenderDashboardRequiresLogin(t *testing.T) {
	controller, _, _ := newTestController(t, newStubGateway())
	if _, err := controller.RenderDashboard(context.Background(), nil); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
}

func TestRenderAdmin(t *testing.T) {
	controller, _, renderer := newTestController(t, newStubGateway())

	if _, err := controller.RenderAdmin(context.Background(), &Session{Email: "admin@x.com", Admin: true}); err != nil {
		t.Fatalf("render admin: %v", err)
	}
	data := renderer.data[0]
	if _, ok := data["snapshot"].(AdminSnapshot); !ok {
		t.Fatalf("expected snapshot in template data")
	}
	overview := data["overview"].(map[string]any)
	if overview["revenue"] != "₹0" {
		t.Fatalf("unexpected revenue %v", overview["revenue"])
	}
	if chart, _ := data["chart_html"].(string); chart == "" {
		t.Fatalf("expected rendered chart markup")
	}
}

func TestRenderAdminRequiresAdmin(t *testing.T) {
	controller, _, _ := newTestController(t, newStubGateway())
	if _, err := controller.RenderAdmin(context.Background(), clientSession()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestEmbeddedTemplatesRender(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	svc := NewService(Options{Gateway: newStubGateway()})
	controller, err := NewController(ControllerOptions{
		Service:  svc,
		Renderer: renderer,
		Chart:    NewRevenueChart(WithChartCache(NewChartCache(0))),
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	html, err := controller.RenderHome(context.Background(), nil, "", nil)
	if err != nil {
		t.Fatalf("render home: %v", err)
	}
	if html == "" {
		t.Fatalf("expected markup from embedded templates")
	}
}
