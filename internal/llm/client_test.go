package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeBody reads a request body into a generic map for field assertions.
func decodeBody(t *testing.T, r *http.Request) map[string]interface{} {
	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func TestComplete(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		got = decodeBody(t, r)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","model":"gpt-4o","choices":[{"index":0,"message":{"role":"assistant","content":"  {\"ok\":true}\n"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
	text, err := c.Complete(context.Background(), ChatRequest{
		Model:       "gpt-4o",
		System:      "system prompt",
		User:        "user prompt",
		Temperature: 0.9,
		JSON:        true,
	})
	require.NoError(t, err)

	assert.Equal(t, `{"ok":true}`, text)
	assert.Equal(t, "gpt-4o", got["model"])
	assert.InDelta(t, 0.9, got["temperature"], 0.0001)

	messages, ok := got["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])
	user := messages[1].(map[string]interface{})
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, "user prompt", user["content"])

	format, ok := got["response_format"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "json_object", format["type"])
}

func TestComplete_UserOnly(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = decodeBody(t, r)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"hi"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), ChatRequest{Model: "gpt-4o-mini", User: "stats", Temperature: 0.7})
	require.NoError(t, err)

	messages := got["messages"].([]interface{})
	require.Len(t, messages, 1)
	assert.Equal(t, "user", messages[0].(map[string]interface{})["role"])
	assert.NotContains(t, got, "response_format")
}

func TestComplete_APIErrorIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests","code":"rate_limit_exceeded"}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), ChatRequest{Model: "gpt-4o", User: "x"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "rate limited")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), ChatRequest{Model: "gpt-4o", User: "x"})
	assert.Error(t, err)
}

func TestNotConfigured(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "  ", BaseURL: srv.URL})
	assert.False(t, c.Configured())

	_, err := c.Complete(context.Background(), ChatRequest{User: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = c.GenerateImage(context.Background(), "flyer")
	assert.ErrorIs(t, err, ErrNotConfigured)

	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestGenerateImage(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/images/generations"), r.URL.Path)
		got = decodeBody(t, r)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"created":1,"data":[{"url":"https://images.example.com/abc.png"}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL})
	url, err := c.GenerateImage(context.Background(), "A bright flyer")
	require.NoError(t, err)

	assert.Equal(t, "https://images.example.com/abc.png", url)
	assert.Equal(t, "dall-e-3", got["model"])
	assert.Equal(t, "A bright flyer", got["prompt"])
	assert.Equal(t, float64(1), got["n"])
	assert.Equal(t, "1024x1024", got["size"])
	assert.Equal(t, "hd", got["quality"])
}

func TestGenerateImage_EmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"created":1,"data":[]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL})
	_, err := c.GenerateImage(context.Background(), "A bright flyer")
	assert.Error(t, err)
}

func TestDownload(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nfake")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test"})

	data, contentType, err := c.Download(context.Background(), srv.URL+"/flyer.png")
	require.NoError(t, err)
	assert.Equal(t, png, data)
	assert.Equal(t, "image/png", contentType)

	_, _, err = c.Download(context.Background(), srv.URL+"/missing.png")
	assert.Error(t, err)
}
