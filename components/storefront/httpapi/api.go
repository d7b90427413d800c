// Package httpapi exposes the storefront JSON endpoints over net/http. The
// fiber deployment goes through the gorouter package instead; this package
// serves embedders that mount the storefront on a plain mux.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	gocommand "github.com/goliatone/go-command"
	storefront "github.com/goliatone/go-studio/components/storefront"
	"github.com/goliatone/go-studio/components/storefront/commands"
	"github.com/goliatone/go-studio/components/storefront/queries"
)

// SessionCookie is the cookie carrying the opaque session token.
const SessionCookie = "studio_session"

// ConsentCookie records that the visitor dismissed the cookie notice.
const ConsentCookie = "studio_consent"

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	CreateOrder   gocommand.Querier[commands.CreateOrderInput, storefront.CreateOrderResponse]
	VerifyPayment gocommand.Commander[commands.VerifyPaymentInput]
	Maintenance   gocommand.Commander[commands.SubmitMaintenanceInput]
	Contact       gocommand.Commander[commands.SubmitContactInput]
	MyOrders      gocommand.Querier[queries.MyOrdersInput, []storefront.OrderView]
	AdminData     gocommand.Querier[queries.AdminDataInput, storefront.AdminSnapshot]
	Sessions      storefront.SessionStore
	Gate          *storefront.AdminGate
}

// HandleCreateOrder starts a checkout for the signed-in user.
func (h *Handlers) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	var payload storefront.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	resp, err := h.CreateOrder.Query(r.Context(), commands.CreateOrderInput{
		Session: session,
		Request: payload,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandlePaymentSuccess settles an order after the widget completes.
func (h *Handlers) HandlePaymentSuccess(w http.ResponseWriter, r *http.Request) {
	var payload storefront.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.VerifyPayment.Execute(r.Context(), commands.VerifyPaymentInput{Request: payload}); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleMyOrders returns the signed-in user's order history.
func (h *Handlers) HandleMyOrders(w http.ResponseWriter, r *http.Request) {
	views, err := h.MyOrders.Query(r.Context(), queries.MyOrdersInput{Session: h.session(r)})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if views == nil {
		views = []storefront.OrderView{}
	}
	writeJSON(w, http.StatusOK, views)
}

// HandleMaintenance records a maintenance ticket.
func (h *Handlers) HandleMaintenance(w http.ResponseWriter, r *http.Request) {
	var payload storefront.MaintenanceSubmission
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	err := h.Maintenance.Execute(r.Context(), commands.SubmitMaintenanceInput{
		Session:    h.session(r),
		Submission: payload,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleContact records a contact inquiry.
func (h *Handlers) HandleContact(w http.ResponseWriter, r *http.Request) {
	var payload storefront.ContactSubmission
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Contact.Execute(r.Context(), commands.SubmitContactInput{Submission: payload}); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleAdminLogin checks the configured credentials and issues an
// admin-scoped session token.
func (h *Handlers) HandleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if h.Gate == nil {
		writeError(w, http.StatusNotFound, "admin access is not configured")
		return
	}
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, err := h.Gate.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// HandleConsent records cookie-notice consent. Repeating the call just
// refreshes the cookie.
func (h *Handlers) HandleConsent(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     ConsentCookie,
		Value:    "1",
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleAdminData returns the aggregate snapshot for the admin panel.
func (h *Handlers) HandleAdminData(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.AdminData.Query(r.Context(), queries.AdminDataInput{Session: h.session(r)})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// session resolves the request's session from the cookie or bearer token.
// A missing or unknown token yields nil; handlers let the service decide
// whether that matters.
func (h *Handlers) session(r *http.Request) *storefront.Session {
	if h.Sessions == nil {
		return nil
	}
	token := ""
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	if token == "" {
		return nil
	}
	session, ok := h.Sessions.Get(r.Context(), token)
	if !ok {
		return nil
	}
	return &session
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storefront.ErrLoginRequired):
		writeError(w, http.StatusUnauthorized, "login required")
	case errors.Is(err, storefront.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, storefront.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "Unauthorized")
	case errors.Is(err, storefront.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, storefront.ErrVerificationFailed):
		writeError(w, http.StatusBadRequest, "payment verification failed")
	case storefront.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"status": "error", "message": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
