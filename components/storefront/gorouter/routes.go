// Package gorouter mounts the storefront on a go-router router, which in
// turn adapts to fiber or net/http.
package gorouter

import (
	"encoding/json"
	"errors"
	"net/http"

	router "github.com/goliatone/go-router"

	storefront "github.com/goliatone/go-studio/components/storefront"
	"github.com/goliatone/go-studio/components/storefront/commands"
	"github.com/goliatone/go-studio/components/storefront/httpapi"
	"github.com/goliatone/go-studio/components/storefront/queries"
)

// Config wires go-router with the storefront controller, API, and hooks.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *storefront.Controller
	API        httpapi.Executor
	Broadcast  *storefront.BroadcastHook
	Sessions   storefront.SessionStore
	Gate       *storefront.AdminGate
	// LoginURL is where unauthenticated page requests are redirected.
	LoginURL string
	BasePath string
	Routes   RouteConfig
}

// RouteConfig customizes the relative paths used for storefront endpoints.
type RouteConfig struct {
	Home           string
	Dashboard      string
	Admin          string
	Logout         string
	CreateOrder    string
	PaymentSuccess string
	MyOrders       string
	Contact        string
	Maintenance    string
	AdminLogin     string
	AdminData      string
	Consent        string
	WebSocket      string
}

// Register mounts storefront routes (HTML, JSON, WebSocket) on a go-router
// router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	if cfg.API == nil {
		return errors.New("gorouter: api executor is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	loginURL := cfg.LoginURL
	if loginURL == "" {
		loginURL = "/login"
	}

	group := cfg.Router.Group(cfg.BasePath)

	group.Get(routes.Home, router.WrapHandler(func(ctx router.Context) error {
		session := resolveSession(ctx, cfg.Sessions)
		flash := takeFlash(ctx, cfg.Sessions, session)
		html, err := cfg.Controller.RenderHome(ctx.Context(), session, ctx.Query("category"), flash)
		if err != nil {
			return respondServiceError(ctx, err)
		}
		return sendHTML(ctx, html)
	}))

	group.Get(routes.Dashboard, router.WrapHandler(func(ctx router.Context) error {
		session := resolveSession(ctx, cfg.Sessions)
		if session == nil {
			return redirect(ctx, loginURL)
		}
		html, err := cfg.Controller.RenderDashboard(ctx.Context(), session)
		if err != nil {
			return respondServiceError(ctx, err)
		}
		return sendHTML(ctx, html)
	}))

	group.Get(routes.Admin, router.WrapHandler(func(ctx router.Context) error {
		session := resolveSession(ctx, cfg.Sessions)
		if session == nil || !session.Admin {
			return redirect(ctx, loginURL)
		}
		html, err := cfg.Controller.RenderAdmin(ctx.Context(), session)
		if err != nil {
			return respondServiceError(ctx, err)
		}
		return sendHTML(ctx, html)
	}))

	group.Get(routes.Logout, router.WrapHandler(func(ctx router.Context) error {
		if cfg.Sessions != nil {
			if token := sessionToken(ctx); token != "" {
				_ = cfg.Sessions.Revoke(ctx.Context(), token)
			}
		}
		ctx.SetHeader("Set-Cookie", httpapi.SessionCookie+"=; Path=/; Max-Age=0")
		return redirect(ctx, "/")
	}))

	group.Post(routes.CreateOrder, router.WrapHandler(func(ctx router.Context) error {
		session := resolveSession(ctx, cfg.Sessions)
		var payload storefront.CreateOrderRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		resp, err := cfg.API.CreateOrder(ctx.Context(), commands.CreateOrderInput{
			Session: session,
			Request: payload,
		})
		if err != nil {
			return respondServiceError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, resp)
	}))

	group.Post(routes.PaymentSuccess, router.WrapHandler(func(ctx router.Context) error {
		var payload storefront.ConfirmPaymentRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := cfg.API.VerifyPayment(ctx.Context(), commands.VerifyPaymentInput{Request: payload}); err != nil {
			return respondServiceError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "success"})
	}))

	group.Get(routes.MyOrders, router.WrapHandler(func(ctx router.Context) error {
		session := resolveSession(ctx, cfg.Sessions)
		views, err := cfg.API.MyOrders(ctx.Context(), queries.MyOrdersInput{Session: session})
		if err != nil {
			return respondServiceError(ctx, err)
		}
		if views == nil {
			views = []storefront.OrderView{}
		}
		return ctx.JSON(http.StatusOK, views)
	}))

	group.Post(routes.Contact, router.WrapHandler(func(ctx router.Context) error {
		var payload storefront.ContactSubmission
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := cfg.API.Contact(ctx.Context(), commands.SubmitContactInput{Submission: payload}); err != nil {
			return respondServiceError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "success"})
	}))

	group.Post(routes.Maintenance, router.WrapHandler(func(ctx router.Context) error {
		session := resolveSession(ctx, cfg.Sessions)
		var payload storefront.MaintenanceSubmission
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		err := cfg.API.Maintenance(ctx.Context(), commands.SubmitMaintenanceInput{
			Session:    session,
			Submission: payload,
		})
		if err != nil {
			return respondServiceError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "success"})
	}))

	if cfg.Gate != nil {
		group.Post(routes.AdminLogin, router.WrapHandler(func(ctx router.Context) error {
			var payload struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			token, err := cfg.Gate.Login(ctx.Context(), payload.Email, payload.Password)
			if err != nil {
				return respondServiceError(ctx, err)
			}
			ctx.SetHeader("Set-Cookie", httpapi.SessionCookie+"="+token+"; Path=/; HttpOnly; SameSite=Lax")
			return ctx.JSON(http.StatusOK, map[string]string{"token": token})
		}))
	}

	group.Get(routes.AdminData, router.WrapHandler(func(ctx router.Context) error {
		session := resolveSession(ctx, cfg.Sessions)
		snapshot, err := cfg.API.AdminData(ctx.Context(), queries.AdminDataInput{Session: session})
		if err != nil {
			return respondServiceError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, snapshot)
	}))

	group.Post(routes.Consent, router.WrapHandler(func(ctx router.Context) error {
		ctx.SetHeader("Set-Cookie", httpapi.ConsentCookie+"=1; Path=/; Max-Age=31536000; SameSite=Lax")
		return ctx.JSON(http.StatusOK, map[string]string{"status": "success"})
	}))

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerWebSocket[T any](r router.Router[T], hook *storefront.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

// resolveSession pulls the session from locals, the session cookie, or a
// bearer token, in that order.
func resolveSession(ctx router.Context, store storefront.SessionStore) *storefront.Session {
	if session, ok := ctx.Locals("session").(*storefront.Session); ok && session != nil {
		return session
	}
	if store == nil {
		return nil
	}
	token := sessionToken(ctx)
	if token == "" {
		return nil
	}
	session, ok := store.Get(ctx.Context(), token)
	if !ok {
		return nil
	}
	return &session
}

func sessionToken(ctx router.Context) string {
	if token := cookieValue(ctx.Header("Cookie"), httpapi.SessionCookie); token != "" {
		return token
	}
	const bearer = "Bearer "
	if auth := ctx.Header("Authorization"); len(auth) > len(bearer) && auth[:len(bearer)] == bearer {
		return auth[len(bearer):]
	}
	return ""
}

// cookieValue parses a Cookie header with the stdlib parser.
func cookieValue(header, name string) string {
	if header == "" {
		return ""
	}
	req := http.Request{Header: http.Header{"Cookie": []string{header}}}
	cookie, err := req.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func takeFlash(ctx router.Context, store storefront.SessionStore, session *storefront.Session) *storefront.Flash {
	if store == nil || session == nil {
		return nil
	}
	flash, ok := store.TakeFlash(ctx.Context(), session.Token)
	if !ok {
		return nil
	}
	return &flash
}

func sendHTML(ctx router.Context, html string) error {
	ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.Send([]byte(html))
}

func redirect(ctx router.Context, url string) error {
	ctx.SetHeader("Location", url)
	return ctx.JSON(http.StatusFound, map[string]string{"redirect": url})
}

func respondServiceError(ctx router.Context, err error) error {
	switch {
	case errors.Is(err, storefront.ErrLoginRequired):
		return respondError(ctx, http.StatusUnauthorized, err)
	case errors.Is(err, storefront.ErrInvalidCredentials):
		return respondError(ctx, http.StatusUnauthorized, err)
	case errors.Is(err, storefront.ErrUnauthorized):
		return ctx.JSON(http.StatusForbidden, map[string]string{"status": "error", "message": "Unauthorized"})
	case errors.Is(err, storefront.ErrOrderNotFound):
		return respondError(ctx, http.StatusNotFound, err)
	case errors.Is(err, storefront.ErrVerificationFailed):
		return respondError(ctx, http.StatusBadRequest, err)
	case storefront.IsValidation(err):
		return respondError(ctx, http.StatusBadRequest, err)
	default:
		return respondError(ctx, http.StatusInternalServerError, err)
	}
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"status": "error", "message": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Home == "" {
		routes.Home = "/"
	}
	if routes.Dashboard == "" {
		routes.Dashboard = "/dashboard"
	}
	if routes.Admin == "" {
		routes.Admin = "/admin"
	}
	if routes.Logout == "" {
		routes.Logout = "/logout"
	}
	if routes.CreateOrder == "" {
		routes.CreateOrder = "/create_order"
	}
	if routes.PaymentSuccess == "" {
		routes.PaymentSuccess = "/payment_success"
	}
	if routes.MyOrders == "" {
		routes.MyOrders = "/api/my_orders"
	}
	if routes.Contact == "" {
		routes.Contact = "/api/contact"
	}
	if routes.Maintenance == "" {
		routes.Maintenance = "/api/maintenance"
	}
	if routes.AdminLogin == "" {
		routes.AdminLogin = "/api/admin/login"
	}
	if routes.AdminData == "" {
		routes.AdminData = "/api/admin/data"
	}
	if routes.Consent == "" {
		routes.Consent = "/consent"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/dashboard/ws"
	}
	return routes
}
