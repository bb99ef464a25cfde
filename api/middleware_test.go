package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hackercoop/coop/internal/identity"
	"golang.org/x/crypto/bcrypt"
)

func okHandler() (http.Handler, *bool) {
	called := new(bool)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}), called
}

func TestCORSMiddleware(t *testing.T) {
	next, called := okHandler()
	h := CORSMiddleware(next)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header")
	}
	if !*called {
		t.Fatalf("next handler not called")
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("OPTIONS", "/", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", rr.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	if body := decodeBody(t, rr); body["error"] != "Internal Server Error" {
		t.Fatalf("error = %v", body["error"])
	}
}

func TestSessionMiddleware(t *testing.T) {
	const secret = "test-secret"
	mw := SessionMiddlewareWithSecret(secret)

	var got *identity.Identity
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("no cookie", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/me", nil))
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rr.Code)
		}
		if body := decodeBody(t, rr); body["error"] != msgUnauthorized {
			t.Fatalf("error = %v", body["error"])
		}
	})

	t.Run("valid cookie", func(t *testing.T) {
		tok, err := mintSessionToken(secret, time.Hour, testIdentity())
		if err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest("GET", "/v1/me", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: tok})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d", rr.Code)
		}
		if got == nil || got.UserID != "github:1001" || got.Login != "janeo" {
			t.Fatalf("identity not in context: %+v", got)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok, err := mintSessionToken("other-secret", time.Hour, testIdentity())
		if err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest("GET", "/v1/me", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: tok})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rr.Code)
		}
	})

	t.Run("expired session", func(t *testing.T) {
		tok, err := mintSessionToken(secret, -time.Hour, testIdentity())
		if err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest("GET", "/v1/me", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: tok})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rr.Code)
		}
	})

	t.Run("garbage cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/v1/me", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "garbage"})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rr.Code)
		}
	})
}

func TestParseSessionToken_NoUserID(t *testing.T) {
	tok, err := mintSessionToken("s", time.Hour, &identity.Identity{Login: "janeo"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := parseSessionToken("s", tok); err == nil {
		t.Fatalf("expected error for session without user id")
	}
}

func TestAdminAuthMiddleware_NoHash(t *testing.T) {
	next, called := okHandler()

	// development keeps the local review workflow usable
	rr := httptest.NewRecorder()
	AdminAuthMiddleware("", true)(next).ServeHTTP(rr, httptest.NewRequest("GET", "/v1/applications", nil))
	if rr.Code != http.StatusOK || !*called {
		t.Fatalf("development request blocked: %d", rr.Code)
	}

	// anywhere else an unset hash closes the endpoints
	next, called = okHandler()
	rr = httptest.NewRecorder()
	AdminAuthMiddleware("", false)(next).ServeHTTP(rr, httptest.NewRequest("GET", "/v1/applications", nil))
	if rr.Code != http.StatusUnauthorized || *called {
		t.Fatalf("production request allowed without hash: %d", rr.Code)
	}
}

func TestAdminAuthMiddleware_Bearer(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	mw := AdminAuthMiddleware(string(hash), false)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"correct token", "Bearer letmein", http.StatusOK},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic letmein", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, _ := okHandler()
			req := httptest.NewRequest("GET", "/v1/applications", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			mw(next).ServeHTTP(rr, req)
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d", rr.Code, tc.want)
			}
			if tc.want == http.StatusUnauthorized {
				if body := decodeBody(t, rr); body["error"] != msgAccessDenied {
					t.Fatalf("error = %v", body["error"])
				}
			}
		})
	}
}
