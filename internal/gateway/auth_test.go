package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(zerolog.Nop(), server.URL, 5*time.Second)
}

func TestLogin_Success(t *testing.T) {
	var gotPath string
	var gotBody loginRequest
	gw := NewAuthGateway(zerolog.Nop(), newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token":  "access-123",
			"refresh_token": "refresh-456",
			"token_type":    "bearer",
		})
	})))

	token, err := gw.Login(context.Background(), "test@example.com", "testtest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/api/v1/auth/auth_token" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotBody.Email != "test@example.com" || gotBody.Password != "testtest" {
		t.Errorf("unexpected request body %+v", gotBody)
	}
	if token.AccessToken != "access-123" {
		t.Errorf("unexpected token %+v", token)
	}
}

func TestLogin_MissingAccessToken(t *testing.T) {
	gw := NewAuthGateway(zerolog.Nop(), newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"token_type": "bearer"})
	})))

	_, err := gw.Login(context.Background(), "test@example.com", "testtest")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_RejectedCredentials(t *testing.T) {
	gw := NewAuthGateway(zerolog.Nop(), newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password."})
	})))

	_, err := gw.Login(context.Background(), "test@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignup_PropagatesServerDetail(t *testing.T) {
	gw := NewAuthGateway(zerolog.Nop(), newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "email already registered"})
	})))

	_, err := gw.Signup(context.Background(), "test@example.com", "tester", "testtest")

	var herr *HTTPError
	if !errors.As(err, &herr) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if herr.Status != http.StatusConflict {
		t.Errorf("expected status 409, got %d", herr.Status)
	}
	if herr.Detail != "email already registered" {
		t.Errorf("expected the server's detail, got %q", herr.Detail)
	}
}

func TestCurrentUser_Unauthorized(t *testing.T) {
	gw := NewAuthGateway(zerolog.Nop(), newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})))

	_, err := gw.CurrentUser(context.Background(), "expired-token")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCurrentUser_SendsBearerToken(t *testing.T) {
	var gotAuth string
	gw := NewAuthGateway(zerolog.Nop(), newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"uuid":     "9f3a2c84-0000-0000-0000-000000000001",
			"username": "tester",
		})
	})))

	user, err := gw.CurrentUser(context.Background(), "access-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer access-123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if user.Username != "tester" {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestUpdateUser_ValidationShortCircuitsNetwork(t *testing.T) {
	gw := NewAuthGateway(zerolog.Nop(), newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("api must not be called for invalid params")
	})))

	_, err := gw.UpdateUser(context.Background(), "access-123", "uuid-1", UpdateUserParams{
		Username: "abc",
		Email:    "test@example.com",
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Fields) != 1 || verr.Fields[0].Field != "username" {
		t.Errorf("expected a username field error, got %+v", verr.Fields)
	}
}

func TestUpdateUser_EnumeratesEveryViolatedField(t *testing.T) {
	gw := NewAuthGateway(zerolog.Nop(), newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("api must not be called for invalid params")
	})))

	_, err := gw.UpdateUser(context.Background(), "access-123", "uuid-1", UpdateUserParams{
		Username: "abc",
		Email:    "",
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected both fields reported, got %+v", verr.Fields)
	}
}

func TestUpdateUser_PatchesUser(t *testing.T) {
	var gotMethod, gotPath string
	gw := NewAuthGateway(zerolog.Nop(), newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{
			"uuid":     "uuid-1",
			"username": "renamed",
		})
	})))

	user, err := gw.UpdateUser(context.Background(), "access-123", "uuid-1", UpdateUserParams{
		Username: "renamed",
		Email:    "test@example.com",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/api/v1/users/edit_user/uuid-1" {
		t.Errorf("unexpected request %s %s", gotMethod, gotPath)
	}
	if user.Username != "renamed" {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestDeleteUser_Unauthorized(t *testing.T) {
	gw := NewAuthGateway(zerolog.Nop(), newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})))

	err := gw.DeleteUser(context.Background(), "uuid-1")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestChangePassword_SendsBothPasswords(t *testing.T) {
	var gotBody changePasswordRequest
	gw := NewAuthGateway(zerolog.Nop(), newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})))

	err := gw.ChangePassword(context.Background(), "access-123", "oldpass", "newpass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody.CurrentPassword != "oldpass" || gotBody.NewPassword != "newpass" {
		t.Errorf("unexpected body %+v", gotBody)
	}
}

func TestClient_NetworkError(t *testing.T) {
	client := NewClient(zerolog.Nop(), "http://127.0.0.1:1", time.Second)
	gw := NewAuthGateway(zerolog.Nop(), client)

	_, err := gw.CurrentUser(context.Background(), "access-123")

	var nerr *NetworkError
	if !errors.As(err, &nerr) {
		t.Errorf("expected *NetworkError, got %v", err)
	}
}
