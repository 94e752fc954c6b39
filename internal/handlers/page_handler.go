package handlers

import (
	"html/template"
	"log"
	"net/http"

	"postflow/internal/service"
)

// PageHandler renders the server-side pages. The dashboard pages sit
// behind the redirect-producing route guard.
type PageHandler struct {
	templates      *template.Template
	accountService *service.AccountService
	postService    *service.PostService
}

// NewPageHandler creates a new page handler
func NewPageHandler(templates *template.Template, accountService *service.AccountService, postService *service.PostService) *PageHandler {
	return &PageHandler{
		templates:      templates,
		accountService: accountService,
		postService:    postService,
	}
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data map[string]interface{}) {
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// Home handles GET / by sending the browser to the dashboard; the route
// guard bounces unauthenticated visitors to sign-in from there.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// ShowSignIn renders the sign-in page
func (h *PageHandler) ShowSignIn(w http.ResponseWriter, r *http.Request) {
	h.render(w, "signin.tmpl", map[string]interface{}{
		"Title": "Sign In - Postflow",
	})
}

// Dashboard renders the dashboard overview page
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	stats, err := h.postService.Stats(claims.UserID)
	if err != nil {
		log.Printf("Error loading dashboard stats: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
		return
	}

	h.render(w, "dashboard.tmpl", map[string]interface{}{
		"Title": "Dashboard - Postflow",
		"Name":  claims.Name,
		"Stats": stats,
	})
}

// bannerMessages maps OAuth outcome codes to user-facing banner text
var bannerMessages = map[string]string{
	OAuthErrorUpstream:       "The platform reported an error during authorization.",
	OAuthErrorMissingParams:  "The authorization response was incomplete.",
	OAuthErrorInvalidState:   "The authorization request could not be verified. Please try again.",
	OAuthErrorConnectionFail: "Connecting the account failed. Please try again.",
}

// DashboardAccounts renders the connected accounts page with the outcome
// banner from the query string
func (h *PageHandler) DashboardAccounts(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	accounts, err := h.accountService.ListAccounts(claims.UserID)
	if err != nil {
		log.Printf("Error loading social accounts: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Title":    "Accounts - Postflow",
		"Accounts": accounts,
	}

	if r.URL.Query().Get("success") == OAuthSuccessConnected {
		data["Success"] = "Account connected."
	} else if code := r.URL.Query().Get("error"); code != "" {
		message, ok := bannerMessages[code]
		if !ok {
			message = bannerMessages[OAuthErrorConnectionFail]
		}
		data["Error"] = message
	}

	h.render(w, "accounts.tmpl", data)
}
