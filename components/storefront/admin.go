package storefront

import (
	"context"
	"crypto/subtle"
	"errors"
)

// AdminCredentials configure the admin gate. Both fields are required.
type AdminCredentials struct {
	Email    string
	Password string
}

// AdminGate performs the credential check for the admin panel. The check runs
// entirely server-side; a successful login yields an opaque admin-scoped
// session token and nothing else.
type AdminGate struct {
	creds    AdminCredentials
	sessions SessionStore
}

// NewAdminGate wires credentials and a session store into a gate.
func NewAdminGate(creds AdminCredentials, sessions SessionStore) (*AdminGate, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, errors.New("storefront: admin credentials are required")
	}
	if sessions == nil {
		return nil, errors.New("storefront: admin gate requires a session store")
	}
	return &AdminGate{creds: creds, sessions: sessions}, nil
}

// Login succeeds only when both fields exactly match the configured pair.
// Comparison is constant-time so timing reveals nothing about either field.
func (g *AdminGate) Login(ctx context.Context, email, password string) (string, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(g.creds.Email))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.creds.Password))
	if emailOK&passOK != 1 {
		return "", ErrInvalidCredentials
	}
	return g.sessions.Create(ctx, Session{
		Name:  "Administrator",
		Email: g.creds.Email,
		Admin: true,
	})
}

// ComputeOverview derives the admin overview counters from the aggregate
// snapshot. Revenue sums the amount across all orders regardless of status.
func ComputeOverview(snapshot AdminSnapshot) OverviewStats {
	stats := OverviewStats{
		Users:     len(snapshot.Users),
		Orders:    len(snapshot.Orders),
		Inquiries: len(snapshot.Contacts),
	}
	for _, order := range snapshot.Orders {
		stats.Revenue += order.ProjectPrice
	}
	return stats
}
