package handlers

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"postflow/internal/database"
	"postflow/internal/models"
	"postflow/internal/oauth"
	"postflow/internal/repository"
	"postflow/internal/security"
	"postflow/internal/service"
)

// testEnv wires the full HTTP surface against a throwaway database and a
// stubbed platform. Flags flip the stub into its failure modes.
type testEnv struct {
	mux         *http.ServeMux
	issuer      *security.TokenIssuer
	accountRepo *repository.SocialAccountRepository
	userID      int64

	stubURL      string
	failExchange bool
	failProfile  bool
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	env := &testEnv{}

	// Stubbed platform: token endpoint plus an X-shaped profile endpoint
	stubMux := http.NewServeMux()
	stubMux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if env.failExchange {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-123","token_type":"bearer","refresh_token":"refresh-456","expires_in":3600}`))
	})
	stubMux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		if env.failProfile {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"42","username":"alice","name":"Alice Smith"}}`))
	})
	stub := httptest.NewServer(stubMux)
	t.Cleanup(stub.Close)
	env.stubURL = stub.URL

	providers := map[models.Platform]oauth.Provider{
		models.PlatformX: {
			Config: &oauth2.Config{
				ClientID:     "x-client",
				ClientSecret: "x-secret",
				RedirectURL:  "http://app.example.com/auth/callback/x",
				Scopes:       []string{"tweet.read", "users.read"},
				Endpoint: oauth2.Endpoint{
					AuthURL:  stub.URL + "/authorize",
					TokenURL: stub.URL + "/token",
				},
			},
			UserInfoURL: stub.URL + "/me",
		},
	}

	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewSocialAccountRepository(db)
	postRepo := repository.NewPostRepository(db)
	jobRepo := repository.NewJobRepository(db)

	user, err := userRepo.CreateUser("alice@example.com", "unused-hash", "Alice", "Smith", nil, nil)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	issuer := security.NewTokenIssuer("test-secret", time.Hour)
	authService := service.NewAuthService(userRepo, issuer, nil)
	accountService := service.NewAccountService(accountRepo)
	postService := service.NewPostService(postRepo, jobRepo, accountRepo)
	connector := oauth.NewConnector(providers)

	templates, err := template.ParseGlob("../templates/*.tmpl")
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}

	middleware := NewMiddleware(issuer, security.NewRateLimiter(100, time.Minute), false)
	authHandler := NewAuthHandler(authService, time.Hour, false)
	userHandler := NewUserHandler(authService)
	accountHandler := NewAccountHandler(accountService)
	connectHandler := NewConnectHandler(connector, accountService, false)
	postHandler := NewPostHandler(postService)
	pageHandler := NewPageHandler(templates, accountService, postService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", pageHandler.Home)
	mux.HandleFunc("GET /auth/signin", pageHandler.ShowSignIn)
	mux.HandleFunc("GET /dashboard", middleware.RequirePage(pageHandler.Dashboard))
	mux.HandleFunc("GET /dashboard/accounts", middleware.RequirePage(pageHandler.DashboardAccounts))
	mux.HandleFunc("POST /auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /auth/connect/{platform}", middleware.RequirePage(connectHandler.Connect))
	mux.HandleFunc("GET /auth/callback/{platform}", middleware.RequirePage(connectHandler.Callback))
	mux.HandleFunc("PUT /user/profile", middleware.RequireAPI(userHandler.UpdateProfile))
	mux.HandleFunc("GET /social-accounts", middleware.RequireAPI(accountHandler.ListAccounts))
	mux.HandleFunc("DELETE /social-accounts/{id}", middleware.RequireAPI(accountHandler.DisconnectAccount))
	mux.HandleFunc("GET /posts", middleware.RequireAPI(postHandler.ListPosts))
	mux.HandleFunc("POST /posts", middleware.RequireAPI(postHandler.CreatePost))
	mux.HandleFunc("GET /posts/{id}", middleware.RequireAPI(postHandler.GetPost))
	mux.HandleFunc("PUT /posts/{id}", middleware.RequireAPI(postHandler.UpdatePost))
	mux.HandleFunc("DELETE /posts/{id}", middleware.RequireAPI(postHandler.DeletePost))
	mux.HandleFunc("GET /scheduled-jobs", middleware.RequireAPI(postHandler.ListJobs))
	mux.HandleFunc("POST /scheduled-jobs", middleware.RequireAPI(postHandler.ScheduleJob))
	mux.HandleFunc("GET /dashboard/stats", middleware.RequireAPI(postHandler.DashboardStats))

	env.mux = mux
	env.issuer = issuer
	env.accountRepo = accountRepo
	env.userID = user.ID

	return env
}

// sessionCookie mints a valid session cookie for the fixture user
func (env *testEnv) sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()

	token, err := env.issuer.Issue(env.userID, "alice@example.com", "Alice Smith")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	return &http.Cookie{Name: security.SessionCookieName, Value: token}
}

func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)
	return rec
}

// responseCookie finds a named cookie among those set by the response
func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
