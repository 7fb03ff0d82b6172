package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"contacts_backend/internal/feature/auth/domain/entity"
)

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockResolver is a mock implementation of the IdentityResolver interface.
type mockResolver struct {
	ResolveFunc func(ctx context.Context, token string) (*entity.User, error)
}

func (m *mockResolver) Resolve(ctx context.Context, token string) (*entity.User, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, token)
	}
	return nil, errors.New("could not validate credentials") // Default: failure
}

// TestAuthRequired_MissingBearerToken はBearerトークンがない場合やプレフィックスが不正な場合に
// 401とWWW-Authenticateチャレンジが返されることを検証します。
func TestAuthRequired_MissingBearerToken(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"bearer lowercase", "bearer token123"},
		{"no space after Bearer", "Bearertoken123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolverCalled := false
			resolver := &mockResolver{
				ResolveFunc: func(ctx context.Context, token string) (*entity.User, error) {
					resolverCalled = true
					return nil, errors.New("should not be called")
				},
			}

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				c.Request.Header.Set("Authorization", tt.authHeader)
			}

			handler := AuthRequired(resolver)
			handler(c)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
			if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
				t.Errorf("expected WWW-Authenticate challenge %q, got %q", "Bearer", got)
			}
			if !c.IsAborted() {
				t.Error("expected request to be aborted")
			}
			if resolverCalled {
				t.Error("resolver must not be called without a bearer token")
			}
		})
	}
}

// TestAuthRequired_ResolutionFailure はトークン解決に失敗した場合に401が返され、
// 内部的な失敗理由が漏れないことを検証します。
func TestAuthRequired_ResolutionFailure(t *testing.T) {
	resolver := &mockResolver{
		ResolveFunc: func(ctx context.Context, token string) (*entity.User, error) {
			return nil, errors.New("token has expired")
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer some-token")

	handler := AuthRequired(resolver)
	handler(c)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
	if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Errorf("expected WWW-Authenticate challenge %q, got %q", "Bearer", got)
	}
	// The body must carry the generic message, not the internal reason
	if body := w.Body.String(); body != `{"error":"could not validate credentials"}` {
		t.Errorf("unexpected response body: %s", body)
	}
}

// TestAuthRequired_ValidToken は有効なトークンでリクエストが通過し、
// コンテキストに解決済みユーザーが設定されることを検証します。
func TestAuthRequired_ValidToken(t *testing.T) {
	testUser := &entity.User{ID: 42, Email: "alice@example.com", Username: "alice"}
	resolver := &mockResolver{
		ResolveFunc: func(ctx context.Context, token string) (*entity.User, error) {
			if token != "valid-token" {
				t.Errorf("expected token %q, got %q", "valid-token", token)
			}
			return testUser, nil
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer valid-token")

	handler := AuthRequired(resolver)
	handler(c)

	if c.IsAborted() {
		t.Fatalf("expected request not to be aborted, response: %s", w.Body.String())
	}

	user, ok := CurrentUser(c)
	if !ok {
		t.Fatal("expected user to be set in context")
	}
	if user.ID != testUser.ID || user.Email != testUser.Email {
		t.Errorf("unexpected user in context: %+v", user)
	}
}

// TestCurrentUser_NotSet は未解決のコンテキストからユーザーが取得できないことを検証します。
func TestCurrentUser_NotSet(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	if _, ok := CurrentUser(c); ok {
		t.Error("expected no user in a fresh context")
	}
}
