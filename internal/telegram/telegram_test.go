package telegram

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short"))

	long := strings.Repeat("я", messageMaxRunes+10)
	got := truncate(long)
	assert.Len(t, []rune(got), messageMaxRunes)
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestSendMessagesDryRun(t *testing.T) {
	var buf bytes.Buffer
	s := NewSender("", "", 0, true)
	s.out = &buf

	sent := s.SendMessages([]string{"block one", "   ", "block two"})

	assert.Equal(t, 2, sent)
	assert.Contains(t, buf.String(), "block one")
	assert.Contains(t, buf.String(), "block two")
}

func TestSendMessagesCountsFailures(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if calls == 2 {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"ok": false, "description": "Bad Request: message is too long",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true})
	}))
	defer srv.Close()

	s := NewSender("token", "@channel", 0, false)
	s.apiBase = srv.URL

	sent := s.SendMessages([]string{"first", "second", "third"})

	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, sent, "the failed send is counted as not-sent, never retried")
}

func TestSendMessagePayload(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Contains(t, r.URL.Path, "/bottoken/sendMessage")
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true})
	}))
	defer srv.Close()

	s := NewSender("token", "@channel", 0, false)
	s.apiBase = srv.URL

	sent := s.SendMessages([]string{"<b>hello</b>"})

	assert.Equal(t, 1, sent)
	assert.Equal(t, "@channel", got["chat_id"])
	assert.Equal(t, "<b>hello</b>", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestSendMessageRequiresCredentials(t *testing.T) {
	s := NewSender("", "", 0, false)
	assert.Equal(t, 0, s.SendMessages([]string{"hello"}))
}
