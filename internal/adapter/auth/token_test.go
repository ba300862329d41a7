package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type tokenSourceFunc func() (*oauth2.Token, error)

func (f tokenSourceFunc) Token() (*oauth2.Token, error) { return f() }

func TestSourceTokenProviderMintsEveryCall(t *testing.T) {
	var audiences []string
	minted := 0
	p := NewSourceTokenProvider(func(ctx context.Context, audience string) (oauth2.TokenSource, error) {
		audiences = append(audiences, audience)
		return tokenSourceFunc(func() (*oauth2.Token, error) {
			minted++
			return &oauth2.Token{AccessToken: "tok"}, nil
		}), nil
	})

	for i := 0; i < 2; i++ {
		tok, err := p.Token(context.Background(), "https://llm.example.com")
		require.NoError(t, err)
		assert.Equal(t, "tok", tok)
	}
	assert.Equal(t, 2, minted)
	assert.Equal(t, []string{"https://llm.example.com", "https://llm.example.com"}, audiences)
}

func TestSourceTokenProviderSourceError(t *testing.T) {
	boom := errors.New("no credentials")
	p := NewSourceTokenProvider(func(ctx context.Context, audience string) (oauth2.TokenSource, error) {
		return nil, boom
	})

	_, err := p.Token(context.Background(), "https://llm.example.com")
	var authErr *Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "https://llm.example.com", authErr.Audience)
	assert.ErrorIs(t, err, boom)
}

func TestSourceTokenProviderTokenError(t *testing.T) {
	p := NewSourceTokenProvider(func(ctx context.Context, audience string) (oauth2.TokenSource, error) {
		return tokenSourceFunc(func() (*oauth2.Token, error) {
			return nil, errors.New("metadata server unreachable")
		}), nil
	})

	_, err := p.Token(context.Background(), "aud")
	var authErr *Error
	assert.ErrorAs(t, err, &authErr)
}

func TestSourceTokenProviderEmptyToken(t *testing.T) {
	p := NewStaticTokenProvider("")
	_, err := p.Token(context.Background(), "aud")
	assert.Error(t, err)
}

func TestStaticTokenProvider(t *testing.T) {
	p := NewStaticTokenProvider("dev-token")
	tok, err := p.Token(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "dev-token", tok)
}
