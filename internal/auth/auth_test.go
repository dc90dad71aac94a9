package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignParseToken_RoundTrip(t *testing.T) {
	token, err := SignToken("01SESSIONID000000000000000", PurposeSession, "secret", time.Hour)
	require.NoError(t, err)

	sub, err := ParseToken(token, PurposeSession, "secret")
	require.NoError(t, err)
	assert.Equal(t, "01SESSIONID000000000000000", sub)
}

func TestParseToken_Rejections(t *testing.T) {
	token, err := SignToken("sid", PurposeSession, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, PurposeState, "secret")
	assert.Error(t, err, "purpose mismatch must fail")

	_, err = ParseToken(token, PurposeSession, "other-secret")
	assert.Error(t, err, "wrong secret must fail")

	expired, err := SignToken("sid", PurposeSession, "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired, PurposeSession, "secret")
	assert.Error(t, err, "expired token must fail")
}

func TestAuthCodeURL(t *testing.T) {
	g := NewGoogle("client-1", "secret", "http://localhost:3000/auth/google/callback")
	raw := g.AuthCodeURL("the-state")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "client-1", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "profile email", q.Get("scope"))
	assert.Equal(t, "the-state", q.Get("state"))
	assert.Equal(t, "http://localhost:3000/auth/google/callback", q.Get("redirect_uri"))
}

func TestExchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		_, _ = w.Write([]byte(`{"access_token":"at-1","id_token":"idt-1"}`))
	}))
	defer srv.Close()

	g := NewGoogle("client-1", "secret", "http://localhost/cb")
	g.TokenURL = srv.URL

	at, err := g.Exchange(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "at-1", at)
}

func TestVerifyIDToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("id_token") {
		case "good":
			_, _ = w.Write([]byte(`{"aud":"client-1","sub":"sub-5","name":"Ada","email":"ada@example.com","picture":"p"}`))
		case "wrong-aud":
			_, _ = w.Write([]byte(`{"aud":"someone-else","sub":"sub-5"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	g := NewGoogle("client-1", "secret", "http://localhost/cb")
	g.TokenInfoURL = srv.URL

	p, err := g.VerifyIDToken(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "sub-5", p.GoogleID)
	assert.Equal(t, "Ada", p.DisplayName)

	_, err = g.VerifyIDToken(context.Background(), "wrong-aud")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = g.VerifyIDToken(context.Background(), "rejected")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = g.VerifyIDToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
