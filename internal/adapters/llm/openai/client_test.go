package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chuckie/aigitcommit/internal/adapters/llm/openai"
	"github.com/chuckie/aigitcommit/internal/domain"
)

func chatMessages() []domain.ChatMessage {
	return []domain.ChatMessage{
		domain.SystemMessage("system prompt"),
		domain.UserMessage("user prompt"),
	}
}

func TestChat(t *testing.T) {
	t.Parallel()

	t.Run("should join the content of all choices", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer xyz", r.Header.Get("Authorization"))
			assert.Equal(t, "CLI", r.Header.Get("X-Client-Type"))

			var req struct {
				Model    string `json:"model"`
				Messages []struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"messages"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "gpt-5", req.Model)
			require.Len(t, req.Messages, 2)
			assert.Equal(t, "system", req.Messages[0].Role)
			assert.Equal(t, "user", req.Messages[1].Role)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"choices": [
					{"message": {"role": "assistant", "content": "feat: add greeting\n\n- add hello"}},
					{"message": {"role": "assistant", "content": "alternative"}}
				],
				"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
			}`))
		}))
		defer server.Close()

		client := openai.New(openai.Options{BaseURL: server.URL, Token: "xyz"})

		// when
		result, err := client.Chat(context.Background(), "gpt-5", chatMessages())

		// then
		require.NoError(t, err)
		assert.Equal(t, "feat: add greeting\n\n- add hello\nalternative", result)
	})

	t.Run("should classify non-2xx responses as api errors", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`))
		}))
		defer server.Close()

		client := openai.New(openai.Options{BaseURL: server.URL, Token: "bad"})

		// when
		_, err := client.Chat(context.Background(), "gpt-5", chatMessages())

		// then
		var clientErr *openai.Error
		require.ErrorAs(t, err, &clientErr)
		assert.Equal(t, openai.KindAPI, clientErr.Kind)
		assert.Equal(t, http.StatusUnauthorized, clientErr.Status)
		assert.Contains(t, clientErr.Error(), "401")
	})

	t.Run("should classify unreachable endpoints as network errors", func(t *testing.T) {
		t.Parallel()

		// given an endpoint that is not listening
		client := openai.New(openai.Options{BaseURL: "http://127.0.0.1:1", Token: "xyz"})

		// when
		_, err := client.Chat(context.Background(), "gpt-5", chatMessages())

		// then
		var clientErr *openai.Error
		require.ErrorAs(t, err, &clientErr)
		assert.Equal(t, openai.KindNetwork, clientErr.Kind)
	})

	t.Run("should not send an authorization header without a token", func(t *testing.T) {
		t.Parallel()

		// given
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "t\n\nc"}}]}`))
		}))
		defer server.Close()

		client := openai.New(openai.Options{BaseURL: server.URL})

		// when
		_, err := client.Chat(context.Background(), "gpt-5", chatMessages())

		// then
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
	})
}

func TestCheckModel(t *testing.T) {
	t.Parallel()

	newModelsServer := func(t *testing.T) *httptest.Server {
		t.Helper()
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/models", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"object": "list", "data": [
				{"id": "gpt-5", "object": "model"},
				{"id": "gpt-5-mini", "object": "model"}
			]}`))
		}))
	}

	t.Run("should succeed when the model is listed", func(t *testing.T) {
		t.Parallel()

		// given
		server := newModelsServer(t)
		defer server.Close()
		client := openai.New(openai.Options{BaseURL: server.URL, Token: "xyz"})

		// then
		assert.NoError(t, client.CheckModel(context.Background(), "gpt-5"))
	})

	t.Run("should fail when the model is absent", func(t *testing.T) {
		t.Parallel()

		// given
		server := newModelsServer(t)
		defer server.Close()
		client := openai.New(openai.Options{BaseURL: server.URL, Token: "xyz"})

		// when
		err := client.CheckModel(context.Background(), "gpt-9")

		// then
		var clientErr *openai.Error
		require.ErrorAs(t, err, &clientErr)
		assert.Equal(t, openai.KindInvalidArgument, clientErr.Kind)
	})
}
