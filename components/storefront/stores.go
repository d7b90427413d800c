package storefront

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryOrderStore keeps order records in memory. Suitable for demos and
// tests; production deployments plug a persistent OrderStore instead.
type InMemoryOrderStore struct {
	mu     sync.RWMutex
	orders []Order
	index  map[string]int
}

// NewInMemoryOrderStore creates an empty order store.
func NewInMemoryOrderStore() *InMemoryOrderStore {
	return &InMemoryOrderStore{index: make(map[string]int)}
}

// Save appends a new order record.
func (s *InMemoryOrderStore) Save(_ context.Context, order Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.Date.IsZero() {
		order.Date = time.Now().UTC()
	}
	s.index[order.OrderID] = len(s.orders)
	s.orders = append(s.orders, order)
	return nil
}

// Update replaces the stored record with the same order id.
func (s *InMemoryOrderStore) Update(_ context.Context, order Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.index[order.OrderID]
	if !ok {
		return ErrOrderNotFound
	}
	s.orders[idx] = order
	return nil
}

// FindByOrderID resolves an order by its gateway order id.
func (s *InMemoryOrderStore) FindByOrderID(_ context.Context, orderID string) (Order, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.index[orderID]
	if !ok {
		return Order{}, false, nil
	}
	return s.orders[idx], true, nil
}

// FindPending returns an unsettled order for the user/product pair, if any.
func (s *InMemoryOrderStore) FindPending(_ context.Context, userEmail, projectID string) (Order, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, order := range s.orders {
		if order.Status == OrderCreated && order.UserEmail == userEmail && order.ProjectID == projectID {
			return order, true, nil
		}
	}
	return Order{}, false, nil
}

// ListByUser returns the user's orders, newest first.
func (s *InMemoryOrderStore) ListByUser(_ context.Context, userEmail string) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Order
	for _, order := range s.orders {
		if order.UserEmail == userEmail {
			out = append(out, order)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// ListAll returns every order in insertion order.
func (s *InMemoryOrderStore) ListAll(_ context.Context) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

// InMemoryUserStore keeps known users in memory.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users []UserRecord
	seen  map[string]struct{}
}

// NewInMemoryUserStore creates an empty user store.
func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{seen: make(map[string]struct{})}
}

// EnsureUser records the user once, keyed by email. Returns true on first
// sight.
func (s *InMemoryUserStore) EnsureUser(_ context.Context, user UserRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[user.Email]; ok {
		return false, nil
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.seen[user.Email] = struct{}{}
	s.users = append(s.users, user)
	return true, nil
}

// ListAll returns every known user in first-seen order.
func (s *InMemoryUserStore) ListAll(_ context.Context) ([]UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]UserRecord, len(s.users))
	copy(out, s.users)
	return out, nil
}

// InMemoryMaintenanceStore keeps maintenance tickets in memory.
type InMemoryMaintenanceStore struct {
	mu       sync.RWMutex
	requests []MaintenanceRequest
}

// NewInMemoryMaintenanceStore creates an empty maintenance store.
func NewInMemoryMaintenanceStore() *InMemoryMaintenanceStore {
	return &InMemoryMaintenanceStore{}
}

// Save appends a ticket.
func (s *InMemoryMaintenanceStore) Save(_ context.Context, req MaintenanceRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.Date.IsZero() {
		req.Date = time.Now().UTC()
	}
	s.requests = append(s.requests, req)
	return nil
}

// ListAll returns every ticket in submission order.
func (s *InMemoryMaintenanceStore) ListAll(_ context.Context) ([]MaintenanceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]MaintenanceRequest, len(s.requests))
	copy(out, s.requests)
	return out, nil
}

// InMemoryContactStore keeps contact inquiries in memory.
type InMemoryContactStore struct {
	mu        sync.RWMutex
	inquiries []ContactInquiry
}

// NewInMemoryContactStore creates an empty contact store.
func NewInMemoryContactStore() *InMemoryContactStore {
	return &InMemoryContactStore{}
}

// Save appends an inquiry.
func (s *InMemoryContactStore) Save(_ context.Context, inquiry ContactInquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inquiry.Date.IsZero() {
		inquiry.Date = time.Now().UTC()
	}
	s.inquiries = append(s.inquiries, inquiry)
	return nil
}

// ListAll returns every inquiry in submission order.
func (s *InMemoryContactStore) ListAll(_ context.Context) ([]ContactInquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ContactInquiry, len(s.inquiries))
	copy(out, s.inquiries)
	return out, nil
}
