package storefront

import (
	"context"
	"errors"
	"fmt"
)

// OrderView is the dashboard order row as the client consumes it.
type OrderView struct {
	Date        string `json:"date"`
	ProjectName string `json:"project_name"`
	Amount      int    `json:"amount"`
	Status      string `json:"status"`
	PaymentID   string `json:"payment_id,omitempty"`
}

// ControllerOptions wires the page controller.
type ControllerOptions struct {
	Service  *Service
	Renderer Renderer
	Chart    *RevenueChart
}

// Controller renders the storefront pages: home, client dashboard, and the
// admin panel. JSON payloads for the same screens come from the service via
// the transports; the controller only concerns itself with markup.
type Controller struct {
	service  *Service
	renderer Renderer
	chart    *RevenueChart
}

// NewController builds a controller. When no renderer is given the embedded
// templates are used.
func NewController(opts ControllerOptions) (*Controller, error) {
	if opts.Service == nil {
		return nil, errors.New("storefront: controller requires a service")
	}
	if opts.Renderer == nil {
		renderer, err := NewTemplateRenderer()
		if err != nil {
			return nil, fmt.Errorf("storefront: build renderer: %w", err)
		}
		opts.Renderer = renderer
	}
	if opts.Chart == nil {
		opts.Chart = NewRevenueChart()
	}
	return &Controller{
		service:  opts.Service,
		renderer: opts.Renderer,
		chart:    opts.Chart,
	}, nil
}

// RenderHome renders the landing page with the catalog filtered by category.
// An unknown category renders an empty grid rather than failing.
func (c *Controller) RenderHome(ctx context.Context, session *Session, category string, flash *Flash) (string, error) {
	products := c.service.Catalog().FilterByCategory(category)
	cards := make([]map[string]any, 0, len(products))
	for _, product := range products {
		quote := QuoteAdvance(product.Price)
		cards = append(cards, map[string]any{
			"id":            product.ID,
			"title":         product.Title,
			"description":   product.Description,
			"category":      product.Category,
			"image":         product.Image,
			"technologies":  product.Technologies,
			"features":      product.Features,
			"price":         FormatINR(product.Price),
			"advance":       FormatINR(quote.Advance),
			"balance":       FormatINR(quote.Balance),
			"advance_value": quote.Advance,
		})
	}
	data := map[string]any{
		"products": cards,
		"category": normalizeCategory(category),
		"session":  sessionView(session),
	}
	if flash != nil {
		data["flash"] = map[string]any{"message": flash.Message, "kind": flash.Kind}
	}
	return c.renderer.Render("home", data)
}

// RenderDashboard renders the client dashboard: the order history plus the
// lifetime spend counter. Requires a signed-in session.
func (c *Controller) RenderDashboard(ctx context.Context, session *Session) (string, error) {
	orders, err := c.service.MyOrders(ctx, session)
	if err != nil {
		return "", err
	}
	return c.renderer.Render("dashboard", map[string]any{
		"session":     sessionView(session),
		"orders":      OrderViews(orders),
		"total_spent": FormatINR(TotalSpent(orders)),
		"has_orders":  len(orders) > 0,
	})
}

// RenderAdmin renders the admin panel with every tab's data, the overview
// counters, and the revenue chart. Requires an admin session.
func (c *Controller) RenderAdmin(ctx context.Context, session *Session) (string, error) {
	snapshot, err := c.service.AdminData(ctx, session)
	if err != nil {
		return "", err
	}
	orders, err := c.service.opts.Orders.ListAll(ctx)
	if err != nil {
		return "", fmt.Errorf("storefront: list orders for chart: %w", err)
	}
	chartHTML, err := c.chart.RenderHTML(orders)
	if err != nil {
		return "", fmt.Errorf("storefront: render revenue chart: %w", err)
	}
	stats := ComputeOverview(snapshot)
	return c.renderer.Render("admin", map[string]any{
		"snapshot": snapshot,
		"overview": map[string]any{
			"users":     stats.Users,
			"orders":    stats.Orders,
			"inquiries": stats.Inquiries,
			"revenue":   FormatINR(stats.Revenue),
		},
		"chart_html": chartHTML,
	})
}

// OrderViews converts order records into dashboard rows.
func OrderViews(orders []Order) []OrderView {
	views := make([]OrderView, len(orders))
	for i, order := range orders {
		views[i] = OrderView{
			Date:        order.Date.Format("02 Jan 2006"),
			ProjectName: order.ProjectName,
			Amount:      order.Amount,
			Status:      string(order.Status),
			PaymentID:   order.PaymentID,
		}
	}
	return views
}

func normalizeCategory(category string) string {
	if category == "" {
		return CategoryAll
	}
	return category
}

func sessionView(session *Session) map[string]any {
	if session == nil {
		return nil
	}
	return map[string]any{
		"name":    session.Name,
		"email":   session.Email,
		"picture": session.Picture,
		"admin":   session.Admin,
	}
}
