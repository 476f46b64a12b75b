package auth

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

var (
	errInvalidScheme = errors.New("scheme must be http or https")
	errMissingHost   = errors.New("host is required")
)

// NewTokenSource returns a caching token source that refreshes access tokens with the refresh token grant.
// The client id and secret are sent in the form body. A nil httpClient uses http.DefaultClient.
func NewTokenSource(ctx context.Context, httpClient *http.Client, c Credentials) (oauth2.TokenSource, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	}
	conf := &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.TokenURL(),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	return conf.TokenSource(ctx, &oauth2.Token{RefreshToken: c.RefreshToken}), nil
}

// StaticTokenSource always returns accessToken, for callers that manage tokens themselves
func StaticTokenSource(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
}
