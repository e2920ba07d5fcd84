package supabase_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/vecopay/vecopay/internal/adapter/datasource"
	"github.com/vecopay/vecopay/internal/adapter/datasource/supabase"
	"github.com/vecopay/vecopay/internal/domain"
	"github.com/vecopay/vecopay/internal/infrastructure/metrics"
)

const testAnonKey = "anon-key"

func newTestClient(t *testing.T, handler http.Handler) *supabase.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return supabase.NewClient(supabase.Config{
		BaseURL:         srv.URL,
		AnonKey:         testAnonKey,
		SessionFile:     filepath.Join(t.TempDir(), "session.json"),
		Timeout:         5 * time.Second,
		RetryMaxElapsed: 2 * time.Second,
	}, zerolog.Nop(), metrics.New(prometheus.NewRegistry()))
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func signedToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-1",
		"email": "a@b.com",
		"exp":   time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestClient_SignInSessionFlow(t *testing.T) {
	accessToken := "session-token"

	r := chi.NewRouter()
	r.Post("/auth/v1/token", func(w http.ResponseWriter, req *http.Request) {
		if got := req.URL.Query().Get("grant_type"); got != "password" {
			t.Errorf("grant_type = %q, want password", got)
		}
		var creds map[string]string
		json.NewDecoder(req.Body).Decode(&creds)
		if creds["email"] != "a@b.com" || creds["password"] != "123456" {
			t.Errorf("credentials = %v", creds)
		}
		writeJSON(t, w, map[string]any{
			"access_token":  accessToken,
			"refresh_token": "refresh",
			"user":          map[string]string{"id": "user-1", "email": "a@b.com"},
		})
	})
	r.Get("/rest/v1/accounts", func(w http.ResponseWriter, req *http.Request) {
		if got := req.Header.Get("Authorization"); got != "Bearer "+accessToken {
			t.Errorf("Authorization = %q, want the session token", got)
		}
		if got := req.Header.Get("apikey"); got != testAnonKey {
			t.Errorf("apikey = %q", got)
		}
		if got := req.URL.Query().Get("owner_id"); got != "eq.user-1" {
			t.Errorf("owner_id = %q, want eq.user-1", got)
		}
		writeJSON(t, w, []map[string]any{{"id": "acc-1", "name": "Wallet", "owner_id": "user-1"}})
	})

	c := newTestClient(t, r)
	ctx := context.Background()

	user, err := c.SignIn(ctx, "a@b.com", "123456")
	if err != nil {
		t.Fatalf("sign-in: %v", err)
	}
	if user == nil || user.ID != "user-1" {
		t.Fatalf("user = %+v", user)
	}

	rows, err := c.ListAccounts(ctx, "user-1")
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "acc-1" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestClient_SignInPersistsSessionFile(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/v1/token", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(t, w, map[string]any{
			"access_token": "session-token",
			"user":         map[string]string{"id": "user-1", "email": "a@b.com"},
		})
	})

	sessionPath := filepath.Join(t.TempDir(), "session.json")
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c := supabase.NewClient(supabase.Config{
		BaseURL:         srv.URL,
		AnonKey:         testAnonKey,
		SessionFile:     sessionPath,
		Timeout:         5 * time.Second,
		RetryMaxElapsed: 2 * time.Second,
	}, zerolog.Nop(), metrics.New(prometheus.NewRegistry()))

	if _, err := c.SignIn(context.Background(), "a@b.com", "123456"); err != nil {
		t.Fatalf("sign-in: %v", err)
	}

	info, err := os.Stat(sessionPath)
	if err != nil {
		t.Fatalf("session file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("session file mode = %o, want 600", perm)
	}

	var stored map[string]any
	data, _ := os.ReadFile(sessionPath)
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("parse session file: %v", err)
	}
	if stored["access_token"] != "session-token" {
		t.Errorf("stored token = %v", stored["access_token"])
	}
}

func TestClient_InsertAccountReturnsRepresentation(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/rest/v1/accounts", func(w http.ResponseWriter, req *http.Request) {
		if got := req.Header.Get("Prefer"); got != "return=representation" {
			t.Errorf("Prefer = %q", got)
		}
		var rec datasource.AccountRecord
		json.NewDecoder(req.Body).Decode(&rec)
		writeJSON(t, w, []datasource.AccountRecord{rec})
	})

	c := newTestClient(t, r)

	rec, err := c.InsertAccount(context.Background(), datasource.AccountRecord{
		ID: "acc-1", Name: "Wallet", Type: "cash", Balance: 50, Currency: "S/", OwnerID: "user-1",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if rec == nil || rec.Name != "Wallet" || rec.Balance != 50 {
		t.Errorf("rec = %+v", rec)
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32

	r := chi.NewRouter()
	r.Get("/rest/v1/accounts", func(w http.ResponseWriter, req *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeJSON(t, w, []datasource.AccountRecord{})
	})

	c := newTestClient(t, r)

	if _, err := c.ListAccounts(context.Background(), "user-1"); err != nil {
		t.Fatalf("expected the retry to succeed, got %v", err)
	}
	if got := attempts.Load(); got != 2 {
		t.Errorf("attempts = %d, want 2", got)
	}
}

func TestClient_ClientErrorsArePermanent(t *testing.T) {
	var attempts atomic.Int32

	r := chi.NewRouter()
	r.Get("/rest/v1/accounts", func(w http.ResponseWriter, req *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(t, w, map[string]string{"message": "malformed filter"})
	})

	c := newTestClient(t, r)

	_, err := c.ListAccounts(context.Background(), "user-1")

	var apiErr *supabase.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "malformed filter" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("attempts = %d, want exactly 1 for a 4xx", got)
	}
}

func TestClient_SignUpEmailTaken(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/v1/signup", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		writeJSON(t, w, map[string]string{"msg": "User already registered"})
	})

	c := newTestClient(t, r)

	_, err := c.SignUp(context.Background(), "a@b.com", "123456")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestClient_SignInBadCredentials(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/v1/token", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(t, w, map[string]string{"error_description": "Invalid login credentials"})
	})

	c := newTestClient(t, r)

	_, err := c.SignIn(context.Background(), "a@b.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidLogin) {
		t.Errorf("err = %v, want ErrInvalidLogin", err)
	}
}

func TestClient_MarkDebtPaid(t *testing.T) {
	r := chi.NewRouter()
	r.Patch("/rest/v1/debts", func(w http.ResponseWriter, req *http.Request) {
		if got := req.URL.Query().Get("id"); got != "eq.d1" {
			t.Errorf("id = %q, want eq.d1", got)
		}
		var body map[string]bool
		json.NewDecoder(req.Body).Decode(&body)
		if !body["is_paid"] || len(body) != 1 {
			t.Errorf("body = %v, want only is_paid=true", body)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	c := newTestClient(t, r)

	if err := c.MarkDebtPaid(context.Background(), "d1"); err != nil {
		t.Fatalf("mark paid: %v", err)
	}
}

func TestClient_DeleteDebt(t *testing.T) {
	r := chi.NewRouter()
	r.Delete("/rest/v1/debts", func(w http.ResponseWriter, req *http.Request) {
		if got := req.URL.Query().Get("id"); got != "eq.d1" {
			t.Errorf("id = %q, want eq.d1", got)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	c := newTestClient(t, r)

	if err := c.DeleteDebt(context.Background(), "d1"); err != nil {
		t.Fatalf("delete debt: %v", err)
	}
}

func TestClient_SignOutClearsSessionDespite401(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/v1/token", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(t, w, map[string]any{
			"access_token": "session-token",
			"user":         map[string]string{"id": "user-1", "email": "a@b.com"},
		})
	})
	r.Post("/auth/v1/logout", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(t, w, map[string]string{"msg": "token expired"})
	})

	c := newTestClient(t, r)
	ctx := context.Background()

	if _, err := c.SignIn(ctx, "a@b.com", "123456"); err != nil {
		t.Fatalf("sign-in: %v", err)
	}

	// A dead server-side token still ends the local session cleanly.
	if err := c.SignOut(ctx); err != nil {
		t.Fatalf("sign-out: %v", err)
	}

	user, err := c.CurrentUser(ctx)
	if err != nil || user != nil {
		t.Errorf("CurrentUser after sign-out = (%+v, %v), want (nil, nil)", user, err)
	}
}

func TestClient_CurrentUserFromPersistedFile(t *testing.T) {
	sessionPath := filepath.Join(t.TempDir(), "session.json")

	data, _ := json.Marshal(map[string]string{"access_token": signedToken(t, time.Hour)})
	if err := os.WriteFile(sessionPath, data, 0o600); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(chi.NewRouter())
	t.Cleanup(srv.Close)

	c := supabase.NewClient(supabase.Config{
		BaseURL:         srv.URL,
		AnonKey:         testAnonKey,
		SessionFile:     sessionPath,
		Timeout:         5 * time.Second,
		RetryMaxElapsed: 2 * time.Second,
	}, zerolog.Nop(), metrics.New(prometheus.NewRegistry()))

	// No user payload in the file: the record is rebuilt from the token claims.
	user, err := c.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if user == nil || user.ID != "user-1" || user.Email != "a@b.com" {
		t.Errorf("user = %+v", user)
	}
}

func TestClient_RowCallUsesPersistedToken(t *testing.T) {
	sessionPath := filepath.Join(t.TempDir(), "session.json")

	data, _ := json.Marshal(map[string]string{"access_token": "persisted-token"})
	if err := os.WriteFile(sessionPath, data, 0o600); err != nil {
		t.Fatal(err)
	}

	r := chi.NewRouter()
	r.Get("/rest/v1/accounts", func(w http.ResponseWriter, req *http.Request) {
		if got := req.Header.Get("Authorization"); got != "Bearer persisted-token" {
			t.Errorf("Authorization = %q, want the persisted token", got)
		}
		writeJSON(t, w, []datasource.AccountRecord{})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c := supabase.NewClient(supabase.Config{
		BaseURL:         srv.URL,
		AnonKey:         testAnonKey,
		SessionFile:     sessionPath,
		Timeout:         5 * time.Second,
		RetryMaxElapsed: 2 * time.Second,
	}, zerolog.Nop(), metrics.New(prometheus.NewRegistry()))

	// The very first call on a fresh client is a row fetch, no auth call
	// before it. It must still run as the persisted user, not the anon key.
	if _, err := c.ListAccounts(context.Background(), "user-1"); err != nil {
		t.Fatalf("list accounts: %v", err)
	}
}

func TestClient_CurrentUserExpiredToken(t *testing.T) {
	sessionPath := filepath.Join(t.TempDir(), "session.json")

	data, _ := json.Marshal(map[string]string{"access_token": signedToken(t, -time.Hour)})
	if err := os.WriteFile(sessionPath, data, 0o600); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(chi.NewRouter())
	t.Cleanup(srv.Close)

	c := supabase.NewClient(supabase.Config{
		BaseURL:         srv.URL,
		AnonKey:         testAnonKey,
		SessionFile:     sessionPath,
		Timeout:         5 * time.Second,
		RetryMaxElapsed: 2 * time.Second,
	}, zerolog.Nop(), metrics.New(prometheus.NewRegistry()))

	user, err := c.CurrentUser(context.Background())
	if err != nil || user != nil {
		t.Errorf("got (%+v, %v), want (nil, nil) for an expired token", user, err)
	}
}
