package services

import (
	"context"
	"time"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade issues the application's access tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken signs a JWT whose subject is the user id and whose
	// email_verified claim carries the verified flag.
	GenerateAccessToken(ctx context.Context, id domain.Identity) (string, time.Time, error)
	// ParseAccessToken validates a JWT and returns the identity it carries.
	ParseAccessToken(ctx context.Context, token string) (domain.Identity, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
