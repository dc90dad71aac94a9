package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/personachat/server/internal/identity"
)

// ErrInvalidToken is returned for ID tokens Google rejects or that were not
// issued for this client.
var ErrInvalidToken = errors.New("invalid token")

// Google drives the sign-in flow against Google's OAuth 2.0 endpoints. All
// cryptographic verification of ID tokens is delegated to Google's tokeninfo
// endpoint; this client only checks the audience.
type Google struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	AuthURL      string
	TokenURL     string
	TokenInfoURL string
	UserInfoURL  string

	Client *http.Client
}

func NewGoogle(clientID, clientSecret, redirectURL string) *Google {
	return &Google{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		AuthURL:      "https://accounts.google.com/o/oauth2/v2/auth",
		TokenURL:     "https://oauth2.googleapis.com/token",
		TokenInfoURL: "https://oauth2.googleapis.com/tokeninfo",
		UserInfoURL:  "https://openidconnect.googleapis.com/v1/userinfo",
		Client:       &http.Client{Timeout: 15 * time.Second},
	}
}

// AuthCodeURL builds the consent-screen redirect target.
func (g *Google) AuthCodeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", g.ClientID)
	q.Set("redirect_uri", g.RedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", "profile email")
	q.Set("state", state)
	return g.AuthURL + "?" + q.Encode()
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
}

// Exchange trades an authorization code for tokens.
func (g *Google) Exchange(ctx context.Context, code string) (accessToken string, err error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", g.ClientID)
	form.Set("client_secret", g.ClientSecret)
	form.Set("redirect_uri", g.RedirectURL)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return "", fmt.Errorf("token exchange: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded tokenResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if decoded.AccessToken == "" {
		return "", errors.New("token exchange: empty access token")
	}
	return decoded.AccessToken, nil
}

type userInfoResp struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// UserInfo fetches the signed-in user's OpenID profile.
func (g *Google) UserInfo(ctx context.Context, accessToken string) (identity.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.UserInfoURL, nil)
	if err != nil {
		return identity.Profile{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.Client.Do(req)
	if err != nil {
		return identity.Profile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return identity.Profile{}, fmt.Errorf("userinfo: status %d", resp.StatusCode)
	}

	var decoded userInfoResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return identity.Profile{}, err
	}
	if decoded.Sub == "" {
		return identity.Profile{}, errors.New("userinfo: missing subject")
	}
	return identity.Profile{
		GoogleID:    decoded.Sub,
		DisplayName: decoded.Name,
		Email:       decoded.Email,
		Picture:     decoded.Picture,
	}, nil
}

type tokenInfoResp struct {
	Aud     string `json:"aud"`
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// VerifyIDToken validates a client-supplied ID token via tokeninfo and
// returns the asserted profile. Any rejection maps to ErrInvalidToken.
func (g *Google) VerifyIDToken(ctx context.Context, idToken string) (identity.Profile, error) {
	if strings.TrimSpace(idToken) == "" {
		return identity.Profile{}, ErrInvalidToken
	}

	u := g.TokenInfoURL + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return identity.Profile{}, err
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return identity.Profile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return identity.Profile{}, ErrInvalidToken
	}

	var decoded tokenInfoResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return identity.Profile{}, ErrInvalidToken
	}
	if decoded.Aud != g.ClientID || decoded.Sub == "" {
		return identity.Profile{}, ErrInvalidToken
	}
	return identity.Profile{
		GoogleID:    decoded.Sub,
		DisplayName: decoded.Name,
		Email:       decoded.Email,
		Picture:     decoded.Picture,
	}, nil
}
