package razorpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	storefront "github.com/goliatone/go-studio/components/storefront"
)

func TestNewRequiresCredentials(t *testing.T) {
	if _, err := New(Config{KeyID: "rzp_test"}); err == nil {
		t.Fatalf("expected error without secret")
	}
	if _, err := New(Config{KeySecret: "secret"}); err == nil {
		t.Fatalf("expected error without key id")
	}
}

func TestClientCreateOrder(t *testing.T) {
	var captured struct {
		path    string
		auth    string
		payload map[string]any
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		user, pass, _ := r.BasicAuth()
		captured.auth = user + ":" + pass
		_ = json.NewDecoder(r.Body).Decode(&captured.payload)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       "order_live_001",
			"amount":   375000,
			"currency": "INR",
			"status":   "created",
		})
	}))
	defer server.Close()

	client, err := New(Config{KeyID: "rzp_test_key", KeySecret: "secret", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	order, err := client.CreateOrder(context.Background(), storefront.GatewayOrderRequest{
		AmountPaise: 375000,
		Currency:    "INR",
		Receipt:     "order_1700000000",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.ID != "order_live_001" || order.AmountPaise != 375000 || order.Currency != "INR" {
		t.Fatalf("unexpected order %+v", order)
	}
	if captured.path != "/orders" {
		t.Fatalf("unexpected path %q", captured.path)
	}
	if captured.auth != "rzp_test_key:secret" {
		t.Fatalf("expected basic auth credentials, got %q", captured.auth)
	}
	if captured.payload["amount"] != float64(375000) || captured.payload["receipt"] != "order_1700000000" {
		t.Fatalf("unexpected payload %v", captured.payload)
	}
}

func TestClientCreateOrderRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"description":"Authentication failed"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client, _ := New(Config{KeyID: "k", KeySecret: "s", BaseURL: server.URL})
	_, err := client.CreateOrder(context.Background(), storefront.GatewayOrderRequest{AmountPaise: 100, Currency: "INR"})
	if err == nil {
		t.Fatalf("expected remote error")
	}
}

func TestVerifySignature(t *testing.T) {
	mock := NewMockGateway()
	signature := mock.Sign("order_001", "pay_001")

	if !VerifySignature(mock.Secret, "order_001", "pay_001", signature) {
		t.Fatalf("expected genuine signature to verify")
	}
	if VerifySignature(mock.Secret, "order_001", "pay_002", signature) {
		t.Fatalf("signature must bind the payment id")
	}
	if VerifySignature(mock.Secret, "order_002", "pay_001", signature) {
		t.Fatalf("signature must bind the order id")
	}
	if VerifySignature("other_secret", "order_001", "pay_001", signature) {
		t.Fatalf("signature must bind the secret")
	}
	if VerifySignature(mock.Secret, "order_001", "pay_001", "") {
		t.Fatalf("empty signature must not verify")
	}
}

func TestMockGatewayRoundTrip(t *testing.T) {
	mock := NewMockGateway()
	order, err := mock.CreateOrder(context.Background(), storefront.GatewayOrderRequest{
		AmountPaise: 375000,
		Currency:    "INR",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.ID != "order_mock_001" {
		t.Fatalf("unexpected id %q", order.ID)
	}
	if !mock.VerifySignature(order.ID, "pay_1", mock.Sign(order.ID, "pay_1")) {
		t.Fatalf("mock gateway must verify its own signatures")
	}
	if len(mock.CreatedOrders()) != 1 {
		t.Fatalf("expected recorded order")
	}
}
