// Package linkedin wraps the OAuth2 flow and profile lookup used to link a
// LinkedIn account to a user profile.
package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	oauthlinkedin "golang.org/x/oauth2/linkedin"
)

const defaultUserInfoURL = "https://api.linkedin.com/v2/userinfo"

// UserInfo is the subset of the OpenID userinfo response we keep.
type UserInfo struct {
	Sub        string `json:"sub"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Picture    string `json:"picture"`
	ProfileURL string `json:"-"`
}

// Client drives the authorization-code exchange against LinkedIn.
type Client struct {
	oauth       *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

// NewClient builds a client for the given application credentials.
// redirectURL must match the callback registered with LinkedIn.
func NewClient(clientID, clientSecret, redirectURL string) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     oauthlinkedin.Endpoint,
		},
		userInfoURL: defaultUserInfoURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

// WithEndpoints overrides the OAuth and userinfo endpoints, mainly for tests.
func (c *Client) WithEndpoints(authURL, tokenURL, userInfoURL string) *Client {
	c.oauth.Endpoint = oauth2.Endpoint{AuthURL: authURL, TokenURL: tokenURL}
	c.userInfoURL = userInfoURL
	return c
}

// Configured reports whether application credentials are present.
func (c *Client) Configured() bool {
	return c.oauth.ClientID != "" && c.oauth.ClientSecret != ""
}

// AuthURL returns the LinkedIn authorization URL carrying state.
func (c *Client) AuthURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// Exchange trades the authorization code for an access token.
func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	return token, nil
}

// FetchUserInfo resolves the OpenID userinfo for the given token.
func (c *Client) FetchUserInfo(ctx context.Context, token *oauth2.Token) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var info UserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse userinfo: %w", err)
	}
	if info.Sub != "" {
		info.ProfileURL = "https://www.linkedin.com/openid/" + info.Sub
	}
	return &info, nil
}
