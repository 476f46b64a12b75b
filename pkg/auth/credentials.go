// Package auth obtains access tokens for the api and keeps login credentials in the os keyring.
package auth

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/foomo/wca/pkg/apierrors"
)

// DefaultTokenPath is the oauth token endpoint relative to the api endpoint
const DefaultTokenPath = "/oauth/token"

// Credentials of an oauth application registered for the account
type Credentials struct {
	// api endpoint, e.g. https://api-campaign-us-1.goacoustic.com
	Endpoint     string `json:"endpoint"`
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RefreshToken string `json:"refreshToken"`
}

func (c *Credentials) Validate() error {
	switch {
	case c.Endpoint == "":
		return apierrors.New(apierrors.KindAccessToken, "", "endpoint is required")
	case c.ClientID == "":
		return apierrors.New(apierrors.KindAccessToken, "", "client id is required")
	case c.ClientSecret == "":
		return apierrors.New(apierrors.KindAccessToken, "", "client secret is required")
	case c.RefreshToken == "":
		return apierrors.New(apierrors.KindAccessToken, "", "refresh token is required")
	}
	if _, err := ParseEndpoint(c.Endpoint); err != nil {
		return apierrors.Wrap(apierrors.KindAccessToken, "", "invalid endpoint", err)
	}
	return nil
}

// TokenURL is the oauth token endpoint of the api endpoint
func (c *Credentials) TokenURL() string {
	return strings.TrimRight(c.Endpoint, "/") + DefaultTokenPath
}

// PodEndpoint is the api endpoint of an account pod
func PodEndpoint(pod int) string {
	return fmt.Sprintf("https://api-campaign-us-%d.goacoustic.com", pod)
}

// ParseEndpoint accepts absolute http(s) urls
func ParseEndpoint(endpoint string) (*url.URL, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &url.Error{Op: "parse", URL: endpoint, Err: errInvalidScheme}
	}
	if u.Host == "" {
		return nil, &url.Error{Op: "parse", URL: endpoint, Err: errMissingHost}
	}
	return u, nil
}
