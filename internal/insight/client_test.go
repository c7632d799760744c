package insight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "models/gemini-1.5-flash:generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"A reflective thought."}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", "gemini-1.5-flash", 2*time.Second)
	c.SetBaseURL(srv.URL)

	text, err := c.Generate(context.Background(), MentorPrompt("today was quiet"))
	require.NoError(t, err)
	assert.Equal(t, "A reflective thought.", text)
}

func TestGenerate_NoAPIKey(t *testing.T) {
	t.Parallel()

	c := NewClient("", "gemini-1.5-flash", time.Second)

	_, err := c.Generate(context.Background(), "prompt")
	require.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGenerate_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	c := NewClient("bad-key", "gemini-1.5-flash", 2*time.Second)
	c.SetBaseURL(srv.URL)

	_, err := c.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGenerate_Timeout(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient("test-key", "gemini-1.5-flash", 50*time.Millisecond)
	c.SetBaseURL(srv.URL)

	_, err := c.Generate(context.Background(), "prompt")
	require.Error(t, err)

	// Exactly one attempt per invocation, no retry on timeout.
	assert.Equal(t, int32(1), requests.Load())
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", "gemini-1.5-flash", 2*time.Second)
	c.SetBaseURL(srv.URL)

	_, err := c.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestMentorPrompt_EmbedsContent(t *testing.T) {
	t.Parallel()

	prompt := MentorPrompt(`felt "unstoppable" today`)

	assert.Contains(t, prompt, "Chronos AI")
	assert.Contains(t, prompt, "unstoppable")
	assert.True(t, strings.Contains(prompt, "futuristic quote"))
}
