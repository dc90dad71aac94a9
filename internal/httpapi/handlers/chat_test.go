package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/personachat/server/internal/ai"
	"github.com/personachat/server/internal/chat"
	"github.com/personachat/server/internal/config"
	"github.com/personachat/server/internal/persona"
)

type stubProvider struct {
	transcript []ai.Message
	message    string
	err        error
	calls      int
}

func (p *stubProvider) Generate(ctx context.Context, transcript []ai.Message, message string) (string, error) {
	_ = ctx
	p.calls++
	p.transcript = append([]ai.Message(nil), transcript...)
	p.message = message
	if p.err != nil {
		return "", p.err
	}
	return message, nil // echo
}

type spyRecorder struct {
	calls int
}

func (r *spyRecorder) Record(personaName, message string) { r.calls++ }

func newChatRouter(t *testing.T, prov ai.Provider, rec *spyRecorder) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg, err := persona.NewRegistry(persona.Defaults())
	require.NoError(t, err)

	svc := chat.NewService(reg, prov, rec, 0, zap.NewNop())
	h := NewHandler(config.Config{}, zap.NewNop(), svc, nil, nil, nil)

	r := gin.New()
	r.POST("/api/chat", h.Chat)
	return r
}

func postChat(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestChat_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"missing botId":    `{"message":"hi","history":[]}`,
		"missing message":  `{"botId":1,"history":[]}`,
		"missing history":  `{"botId":1,"message":"hi"}`,
		"null history":     `{"botId":1,"message":"hi","history":null}`,
		"history not list": `{"botId":1,"message":"hi","history":"nope"}`,
		"empty message":    `{"botId":1,"message":"","history":[]}`,
		"not json":         `this is not json`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			prov := &stubProvider{}
			rec := &spyRecorder{}
			r := newChatRouter(t, prov, rec)

			w := postChat(r, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"Invalid request: botId, message, and history are required."}`, w.Body.String())
			assert.Zero(t, rec.calls, "prompt logger must not run for invalid requests")
			assert.Zero(t, prov.calls, "backend must not run for invalid requests")
		})
	}
}

func TestChat_UnknownBot(t *testing.T) {
	prov := &stubProvider{}
	rec := &spyRecorder{}
	r := newChatRouter(t, prov, rec)

	for _, id := range []int{8, 42, 100} {
		w := postChat(r, fmt.Sprintf(`{"botId":%d,"message":"hi","history":[]}`, id))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Bot persona not found."}`, w.Body.String())
	}
	assert.Zero(t, rec.calls)
	assert.Zero(t, prov.calls)
}

func TestChat_EmpathyBotEndToEnd(t *testing.T) {
	prov := &stubProvider{}
	rec := &spyRecorder{}
	r := newChatRouter(t, prov, rec)

	w := postChat(r, `{"botId":3,"message":"I failed my exam","history":[]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response":"I failed my exam"}`, w.Body.String())

	require.Len(t, prov.transcript, 2, "empty history yields only the priming pair")
	assert.Contains(t, prov.transcript[0].Text, "Empathy Bot")
	assert.Equal(t, "Understood. I am now acting as Empathy Bot.", prov.transcript[1].Text)
	assert.Equal(t, "I failed my exam", prov.message)
	assert.Equal(t, 1, rec.calls)
}

func TestChat_HistoryPassedThrough(t *testing.T) {
	prov := &stubProvider{}
	r := newChatRouter(t, prov, &spyRecorder{})

	body := `{
		"botId": 1,
		"message": "third",
		"history": [
			{"role":"user","parts":[{"text":"first"}]},
			{"role":"model","parts":[{"text":"re: "},{"text":"first"}]}
		]
	}`
	w := postChat(r, body)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, prov.transcript, 4)
	assert.Equal(t, ai.Message{Role: "user", Text: "first"}, prov.transcript[2])
	assert.Equal(t, ai.Message{Role: "model", Text: "re: first"}, prov.transcript[3], "multi-part turns are joined")
}

func TestChat_NoServerSideMemory(t *testing.T) {
	prov := &stubProvider{}
	r := newChatRouter(t, prov, &spyRecorder{})

	w := postChat(r, `{"botId":1,"message":"one","history":[{"role":"user","parts":[{"text":"a"}]}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = postChat(r, `{"botId":1,"message":"two","history":[
		{"role":"user","parts":[{"text":"a"}]},
		{"role":"model","parts":[{"text":"b"}]}
	]}`)
	require.Equal(t, http.StatusOK, w.Code)

	suffix := prov.transcript[2:]
	require.Len(t, suffix, 2, "transcript suffix must equal the submitted history only")
	assert.Equal(t, "a", suffix[0].Text)
	assert.Equal(t, "b", suffix[1].Text)
}

func TestChat_BackendFailureThenRecovery(t *testing.T) {
	prov := &stubProvider{err: errors.New("boom")}
	r := newChatRouter(t, prov, &spyRecorder{})

	w := postChat(r, `{"botId":2,"message":"hi","history":[]}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"An error occurred while communicating with the AI."}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "boom", "cause must never leak to the client")

	// process stays healthy: the same engine serves the next request
	prov.err = nil
	w = postChat(r, `{"botId":2,"message":"still alive?","history":[]}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "still alive?", resp["response"])
}

func TestChat_HistoryCapMapsToValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg, err := persona.NewRegistry(persona.Defaults())
	require.NoError(t, err)

	prov := &stubProvider{}
	svc := chat.NewService(reg, prov, &spyRecorder{}, 1, zap.NewNop())
	h := NewHandler(config.Config{}, zap.NewNop(), svc, nil, nil, nil)

	r := gin.New()
	r.POST("/api/chat", h.Chat)

	body := `{"botId":1,"message":"hi","history":[
		{"role":"user","parts":[{"text":"a"}]},
		{"role":"model","parts":[{"text":"b"}]}
	]}`
	w := postChat(r, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid request: botId, message, and history are required."}`, w.Body.String())
}
