package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopd/internal/domain"
	usersvc "shopd/internal/service/user"
)

func strPtr(s string) *string { return &s }

func TestSignup_Created(t *testing.T) {
	deps := testDeps()
	deps.UserSvc = &stubUserService{
		user: &domain.User{ID: 1, Username: "john", Token: strPtr("tok-1")},
	}
	router := testRouter(t, deps)

	body := `{"username":"john","password":"demo123"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	for _, want := range []string{`"id":1`, `"username":"john"`, `"token":"tok-1"`} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Fatalf("body missing %s: %s", want, rec.Body.String())
		}
	}
}

func TestSignup_DuplicateUsername(t *testing.T) {
	deps := testDeps()
	deps.UserSvc = &stubUserService{signupErr: domain.ErrAlreadyExists}
	router := testRouter(t, deps)

	body := `{"username":"john","password":"demo123"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "username already exists") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestSignup_MissingFields(t *testing.T) {
	deps := testDeps()
	deps.UserSvc = &stubUserService{signupErr: usersvc.ErrMissingCredentials}
	router := testRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"username":"john"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	deps := testDeps()
	deps.UserSvc = &stubUserService{loginErr: usersvc.ErrInvalidCredentials}
	router := testRouter(t, deps)

	body := `{"username":"john","password":"nope"}`
	req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLogin_ReturnsUserWithCart(t *testing.T) {
	deps := testDeps()
	deps.UserSvc = &stubUserService{
		user: &domain.User{ID: 1, Username: "john", Token: strPtr("tok-2")},
		cart: &domain.Cart{ID: 3, UserID: 1, Lines: []domain.CartLine{}},
	}
	router := testRouter(t, deps)

	body := `{"username":"john","password":"demo123"}`
	req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	for _, want := range []string{`"token":"tok-2"`, `"user":`, `"cart":`, `"id":3`} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Fatalf("body missing %s: %s", want, rec.Body.String())
		}
	}
}

func TestListUsers_OmitsCredentials(t *testing.T) {
	deps := testDeps()
	deps.UserSvc = &stubUserService{users: []domain.User{
		{ID: 1, Username: "john", PasswordHash: "secret-hash"},
	}}
	router := testRouter(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "secret-hash") {
		t.Fatalf("password hash leaked: %s", body)
	}
	if strings.Contains(body, `"token"`) {
		t.Fatalf("token leaked: %s", body)
	}
}
