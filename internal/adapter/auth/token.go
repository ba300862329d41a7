// Package auth mints bearer tokens for outbound service calls.
package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenProvider mints a bearer token for a target audience.
type TokenProvider interface {
	Token(ctx context.Context, audience string) (string, error)
}

// Error reports a failed token mint.
type Error struct {
	Audience string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to mint token for %s: %v", e.Audience, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// SourceFunc builds a token source for an audience.
type SourceFunc func(ctx context.Context, audience string) (oauth2.TokenSource, error)

// Provider mints tokens from a freshly built token source on every call, so
// no token is ever reused.
type Provider struct {
	newSource SourceFunc
}

// Ensure Provider implements TokenProvider interface.
var _ TokenProvider = (*Provider)(nil)

// NewGoogleIDTokenProvider mints Google-signed ID tokens using the ambient
// credentials.
func NewGoogleIDTokenProvider() *Provider {
	return &Provider{
		newSource: func(ctx context.Context, audience string) (oauth2.TokenSource, error) {
			return idtoken.NewTokenSource(ctx, audience)
		},
	}
}

// NewSourceTokenProvider mints tokens from sources built by fn.
func NewSourceTokenProvider(fn SourceFunc) *Provider {
	return &Provider{newSource: fn}
}

// Token mints a fresh token for audience.
func (p *Provider) Token(ctx context.Context, audience string) (string, error) {
	ts, err := p.newSource(ctx, audience)
	if err != nil {
		return "", &Error{Audience: audience, Err: err}
	}
	tok, err := ts.Token()
	if err != nil {
		return "", &Error{Audience: audience, Err: err}
	}
	if tok.AccessToken == "" {
		return "", &Error{Audience: audience, Err: fmt.Errorf("empty token")}
	}
	return tok.AccessToken, nil
}

// NewStaticTokenProvider returns the same token for every audience. Used for
// local development against an unauthenticated or mock LLM service.
func NewStaticTokenProvider(token string) *Provider {
	return NewSourceTokenProvider(func(ctx context.Context, audience string) (oauth2.TokenSource, error) {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}), nil
	})
}
