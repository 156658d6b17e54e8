package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotifierSelection(t *testing.T) {
	assert.IsType(t, noopNotifier{}, NewNotifier(SlackConfig{}, nil))
	assert.IsType(t, &webhookNotifier{}, NewNotifier(SlackConfig{WebhookURL: "https://hooks.example"}, nil))
	assert.IsType(t, &botNotifier{}, NewNotifier(SlackConfig{BotToken: "xoxb-1", Channel: "#pcc"}, nil))

	// Bot token without a channel cannot post anywhere.
	assert.IsType(t, noopNotifier{}, NewNotifier(SlackConfig{BotToken: "xoxb-1"}, nil))
}

func TestWebhookNotifierPost(t *testing.T) {
	var payload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier(SlackConfig{WebhookURL: srv.URL}, nil)
	err := n.Post(context.Background(), "*Station Updates*", []string{"[UPDATE] Jazz FM: ..."})
	require.NoError(t, err)
	assert.Equal(t, "*Station Updates*\n[UPDATE] Jazz FM: ...", payload["text"])
}

func TestWebhookNotifierNoChanges(t *testing.T) {
	var payload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
	}))
	defer srv.Close()

	n := NewNotifier(SlackConfig{WebhookURL: srv.URL}, nil)
	require.NoError(t, n.Post(context.Background(), "title", nil))
	assert.Equal(t, "title\n[info] no changes.", payload["text"])
}

func TestWebhookNotifierBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewNotifier(SlackConfig{WebhookURL: srv.URL}, nil)
	assert.Error(t, n.Post(context.Background(), "title", nil))
}

func TestBotNotifierChunks(t *testing.T) {
	var requests []map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer xoxb-1", r.Header.Get("Authorization"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		requests = append(requests, body)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := NewNotifier(SlackConfig{BotToken: "xoxb-1", Channel: "#pcc"}, nil).(*botNotifier)
	n.apiURL = srv.URL

	// 200 lines of ~40 chars exceed one 3500-char message.
	lines := make([]string, 200)
	for i := range lines {
		lines[i] = "[UPDATE] Station: 1 songs, 1.00 hrs etc"
	}
	require.NoError(t, n.Post(context.Background(), "title", lines))

	require.Greater(t, len(requests), 1)
	for _, req := range requests {
		assert.Equal(t, "#pcc", req["channel"])
		assert.LessOrEqual(t, len(req["text"]), messageCharLimit+1)
	}
}

func TestBotNotifierAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
	}))
	defer srv.Close()

	n := NewNotifier(SlackConfig{BotToken: "xoxb-1", Channel: "#missing"}, nil).(*botNotifier)
	n.apiURL = srv.URL

	err := n.Post(context.Background(), "title", []string{"line"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}

func TestChunkMessage(t *testing.T) {
	t.Run("Short", func(t *testing.T) {
		chunks := chunkMessage("a\nb")
		assert.Equal(t, []string{"a\nb\n"}, chunks)
	})

	t.Run("SplitsOnLineBoundary", func(t *testing.T) {
		long := strings.Repeat("x", 2000)
		chunks := chunkMessage(long + "\n" + long + "\n" + long)
		require.Len(t, chunks, 3)
		for _, c := range chunks {
			assert.True(t, strings.HasSuffix(c, "\n"))
			assert.LessOrEqual(t, len(c), messageCharLimit+1)
		}
	})
}
