// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/foundermafstat/mafstat2-sub002/internal/auth"
	"github.com/foundermafstat/mafstat2-sub002/internal/models"
)

func okHandler(t *testing.T, wantUser uuid.UUID, wantRole string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := UserID(r.Context()); got != wantUser {
			t.Errorf("context user id = %v, want %v", got, wantUser)
		}
		if got := Role(r.Context()); got != wantRole {
			t.Errorf("context role = %q, want %q", got, wantRole)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireNoToken(t *testing.T) {
	auth.Init(0) // ephemeral keys, no DB needed

	h := Require()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest("GET", "/user/me", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireBadToken(t *testing.T) {
	auth.Init(0)

	h := Require()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest("GET", "/user/me", nil)
	req.Header.Set("Cookie", "auth_token=not-a-jwt")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireInsufficientRole(t *testing.T) {
	auth.Init(0)

	uid := uuid.New()
	token, _ := auth.CreateJWT(uid.String(), models.RoleUser)

	h := Require(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest("POST", "/clubs/create", nil)
	req.Header.Set("Cookie", "auth_token="+token)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRequireAllowed(t *testing.T) {
	auth.Init(0)

	uid := uuid.New()
	token, _ := auth.CreateJWT(uid.String(), models.RoleAdmin)

	h := Require(models.RoleAdmin)(okHandler(t, uid, models.RoleAdmin))
	req := httptest.NewRequest("POST", "/clubs/create", nil)
	req.Header.Set("Cookie", "auth_token="+token)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireAnyAuthenticated(t *testing.T) {
	auth.Init(0)

	uid := uuid.New()
	token, _ := auth.CreateJWT(uid.String(), models.RolePremium)

	h := Require()(okHandler(t, uid, models.RolePremium))
	req := httptest.NewRequest("GET", "/user/me", nil)
	req.Header.Set("Cookie", "auth_token="+token)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestExtractCookieToken(t *testing.T) {
	if got := ExtractCookieToken("auth_token=abc; other=1", "auth_token"); got != "abc" {
		t.Fatalf("got %q", got)
	}
	if got := ExtractCookieToken("other=1", "auth_token"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
