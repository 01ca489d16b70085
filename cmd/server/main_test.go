package main

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/auth"
	"salesdash/internal/config"
)

func testConfig(backendURL string) *config.Config {
	return &config.Config{
		AppPort:    "8080",
		AppEnv:     "test",
		BackendURL: backendURL,
		JWTSecret:  "test-secret",
		CORSOrigin: "http://dashboard.test",
	}
}

func newTestRouter(t *testing.T, backendURL string) http.Handler {
	t.Helper()
	database, err := sql.Open("mock_driver_main", "")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	srv, err := newServer(testConfig(backendURL), database)
	require.NoError(t, err)
	return srv.router
}

func TestSetupRouter(t *testing.T) {
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/get_products":
			w.Write([]byte(`[{"product_id":1,"name":"Mouse","price":"25.00","stock":3,"category":"Accessories"}]`))
		default:
			w.Write([]byte(`[]`))
		}
	}))
	defer backendSrv.Close()

	router := newTestRouter(t, backendSrv.URL)

	t.Run("Health Check", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "OK")
		assert.Contains(t, rr.Body.String(), `"in_flight":0`)
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	})

	t.Run("CORS preflight", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/api/products", nil))

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "http://dashboard.test", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Products are served from the backend", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/products", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Mouse")
	})

	t.Run("Dashboard summary of an empty backend", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/dashboard/summary", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"total_users":0`)
	})

	t.Run("Cart requires a session", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Invalid token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Stale token does not block a new session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/session", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "expired-token"})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("Issued session is accepted", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/session", nil))
		require.Equal(t, http.StatusCreated, rr.Code)

		var body struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		require.NotEmpty(t, body.Token)

		req := httptest.NewRequest(http.MethodPost, "/api/cart/items", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: body.Token})
		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		// Past the session gate; the empty body is what fails.
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestStrictRateLimit(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:1")

	var last int
	for range 10 {
		req := httptest.NewRequest(http.MethodPost, "/api/session", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		last = rr.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestNewServer(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router := newTestRouter(t, "http://backend.test")
		assert.NotNil(t, router)
	})

	t.Run("Missing secret", func(t *testing.T) {
		database, err := sql.Open("mock_driver_main", "")
		require.NoError(t, err)
		defer database.Close()

		cfg := testConfig("http://backend.test")
		cfg.JWTSecret = ""

		_, err = newServer(cfg, database)
		assert.Error(t, err)
	})

	t.Run("Missing asset manifest", func(t *testing.T) {
		database, err := sql.Open("mock_driver_main", "")
		require.NoError(t, err)
		defer database.Close()

		cfg := testConfig("http://backend.test")
		cfg.AssetManifest = "does-not-exist.yaml"

		_, err = newServer(cfg, database)
		assert.Error(t, err)
	})
}

// --- Mock Driver for Testing ---
type mockDriver struct{}

func (m *mockDriver) Open(name string) (driver.Conn, error)         { return &mockConn{}, nil }
func (c *mockConn) Prepare(query string) (driver.Stmt, error)       { return &mockStmt{}, nil }
func (c *mockConn) Close() error                                    { return nil }
func (c *mockConn) Begin() (driver.Tx, error)                       { return nil, nil }
func (s *mockStmt) Close() error                                    { return nil }
func (s *mockStmt) NumInput() int                                   { return 0 }
func (s *mockStmt) Exec(args []driver.Value) (driver.Result, error) { return nil, nil }
func (s *mockStmt) Query(args []driver.Value) (driver.Rows, error)  { return nil, nil }

type mockConn struct{}
type mockStmt struct{}

func init() {
	sql.Register("mock_driver_main", &mockDriver{})
}

func TestRun(t *testing.T) {
	origInitDB := initDBFunc
	defer func() { initDBFunc = origInitDB }()
	initDBFunc = func(cfg *config.Config) *sql.DB {
		db, _ := sql.Open("mock_driver_main", "")
		return db
	}

	origStartServer := startServerFunc
	defer func() { startServerFunc = origStartServer }()
	var gotAddr string
	startServerFunc = func(ctx context.Context, addr string, h http.Handler) error {
		gotAddr = addr
		return nil
	}

	t.Setenv("APP_PORT", "8081")
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ASSET_MANIFEST", "")

	assert.NoError(t, run())
	assert.Equal(t, ":8081", gotAddr)
}
