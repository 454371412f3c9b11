package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

type ctxKey string

const ContextSessionKey ctxKey = "session"

// Session is the resolved identity of the current request. The role is
// captured at resolve time; audit records store it as it was when the
// action happened.
type Session struct {
	UserID string
	Name   string
	Email  string
	Role   Role
}

func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ContextSessionKey).(*Session)
	return s, ok
}

func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ContextSessionKey, s)
}

// SessionProvider resolves the acting user from an inbound request, or
// returns an error when no valid session is present.
type SessionProvider interface {
	Resolve(r *http.Request) (*Session, error)
}

// TokenSessionProvider resolves sessions from a bearer access token.
type TokenSessionProvider struct {
	service *Service
}

func NewTokenSessionProvider(service *Service) *TokenSessionProvider {
	return &TokenSessionProvider{service: service}
}

func (p *TokenSessionProvider) Resolve(r *http.Request) (*Session, error) {
	token := extractBearerToken(r)
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims, err := p.service.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	user, err := p.service.GetUser(claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return &Session{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

// StaticSessionProvider always resolves a fixed OWNER identity. It backs the
// skip_auth development switch and must never be wired up in production.
type StaticSessionProvider struct {
	session Session
}

func NewStaticSessionProvider() *StaticSessionProvider {
	return &StaticSessionProvider{
		session: Session{
			UserID: "demo-owner-id",
			Name:   "Demo Owner",
			Email:  "demo@example.com",
			Role:   RoleOwner,
		},
	}
}

func (p *StaticSessionProvider) Resolve(_ *http.Request) (*Session, error) {
	s := p.session
	return &s, nil
}

// SessionMiddleware resolves the session and stores it in the request
// context. Requests without a resolvable session get a 401.
func SessionMiddleware(provider SessionProvider, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := provider.Resolve(r)
			if err != nil {
				logger.Warn("session resolution failed", "error", err, "path", r.URL.Path)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := ContextWithSession(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}
