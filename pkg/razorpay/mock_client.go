package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	storefront "github.com/goliatone/go-studio/components/storefront"
)

// MockGateway is an in-process gateway for demos and tests. Orders get
// deterministic ids and signatures are real HMACs over a fixed secret, so
// the full checkout flow can be exercised offline.
type MockGateway struct {
	KeyID  string
	Secret string

	mu     sync.Mutex
	serial int
	orders []storefront.GatewayOrderRequest
}

// NewMockGateway builds a mock with default demo credentials.
func NewMockGateway() *MockGateway {
	return &MockGateway{
		KeyID:  "rzp_test_mock",
		Secret: "mock_secret",
	}
}

var _ storefront.PaymentGateway = (*MockGateway)(nil)

// Key returns the mock public key.
func (m *MockGateway) Key() string {
	return m.KeyID
}

// CreateOrder issues a deterministic order id and records the request.
func (m *MockGateway) CreateOrder(_ context.Context, req storefront.GatewayOrderRequest) (storefront.GatewayOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.serial++
	m.orders = append(m.orders, req)
	return storefront.GatewayOrder{
		ID:          fmt.Sprintf("order_mock_%03d", m.serial),
		AmountPaise: req.AmountPaise,
		Currency:    req.Currency,
	}, nil
}

// VerifySignature checks against the mock secret.
func (m *MockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(m.Secret, orderID, paymentID, signature)
}

// Sign produces the signature a real checkout would return, letting tests
// drive the settlement path end to end.
func (m *MockGateway) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(m.Secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// CreatedOrders returns the requests seen so far.
func (m *MockGateway) CreatedOrders() []storefront.GatewayOrderRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]storefront.GatewayOrderRequest, len(m.orders))
	copy(out, m.orders)
	return out
}
