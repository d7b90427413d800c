package mailer

import (
	"context"
	"strings"
	"testing"

	storefront "github.com/goliatone/go-studio/components/storefront"
)

func TestNewDefaults(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error without host")
	}
	m, err := New(Config{Host: "smtp.example.com", Username: "bot@example.com"})
	if err != nil {
		t.Fatalf("new mailer: %v", err)
	}
	if m.cfg.Port != 587 {
		t.Fatalf("expected default port 587, got %d", m.cfg.Port)
	}
	if m.cfg.From != "bot@example.com" {
		t.Fatalf("expected from to default to username, got %q", m.cfg.From)
	}
}

func TestSendRequiresRecipient(t *testing.T) {
	m, _ := New(Config{Host: "smtp.example.com"})
	if err := m.Send(context.Background(), storefront.MailMessage{Subject: "x"}); err == nil {
		t.Fatalf("expected error without recipient")
	}
}

func TestSendHonorsCancelledContext(t *testing.T) {
	m, _ := New(Config{Host: "smtp.example.com"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Send(ctx, storefront.MailMessage{To: "a@x.com"}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestBuildMessage(t *testing.T) {
	raw := string(BuildMessage("studio@example.com", storefront.MailMessage{
		To:       "client@example.com",
		Subject:  "Order Confirmation",
		HTMLBody: "<p>Paid ₹3,750</p>",
	}))

	for _, want := range []string{
		"From: studio@example.com\r\n",
		"To: client@example.com\r\n",
		"Subject: Order Confirmation\r\n",
		"MIME-Version: 1.0\r\n",
		"Content-Type: text/html; charset=\"UTF-8\"\r\n",
	} {
		if !strings.Contains(raw, want) {
			t.Fatalf("message missing %q:\n%s", want, raw)
		}
	}
	if !strings.HasSuffix(raw, "\r\n<p>Paid ₹3,750</p>") {
		t.Fatalf("body must follow the blank line, got:\n%s", raw)
	}
}

func TestSanitizeHeaderStripsInjection(t *testing.T) {
	got := sanitizeHeader("Order\r\nBcc: attacker@example.com")
	if strings.ContainsAny(got, "\r\n") {
		t.Fatalf("expected CR/LF stripped, got %q", got)
	}
}
