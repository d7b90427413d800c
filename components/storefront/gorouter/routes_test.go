package gorouter

import "testing"

func TestRegisterValidatesConfig(t *testing.T) {
	err := Register(Config[struct{}]{})
	if err == nil {
		t.Fatalf("expected error when router/controller missing")
	}
}

func TestCookieValue(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"studio_session=tok123", "tok123"},
		{"other=1; studio_session=tok123; theme=dark", "tok123"},
		{"other=1", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := cookieValue(tc.header, "studio_session"); got != tc.want {
			t.Fatalf("cookieValue(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestDefaultRouteConfig(t *testing.T) {
	routes := defaultRouteConfig(RouteConfig{})
	if routes.Home != "/" || routes.Dashboard != "/dashboard" || routes.Admin != "/admin" {
		t.Fatalf("unexpected page routes %+v", routes)
	}
	if routes.CreateOrder != "/create_order" || routes.PaymentSuccess != "/payment_success" {
		t.Fatalf("unexpected checkout routes %+v", routes)
	}
	if routes.MyOrders != "/api/my_orders" || routes.AdminData != "/api/admin/data" {
		t.Fatalf("unexpected api routes %+v", routes)
	}
	if routes.WebSocket != "/dashboard/ws" || routes.Consent != "/consent" {
		t.Fatalf("unexpected websocket/consent routes %+v", routes)
	}

	custom := defaultRouteConfig(RouteConfig{Home: "/store"})
	if custom.Home != "/store" {
		t.Fatalf("custom home overridden: %+v", custom)
	}
	if custom.Dashboard != "/dashboard" {
		t.Fatalf("defaults should fill the rest: %+v", custom)
	}
}
