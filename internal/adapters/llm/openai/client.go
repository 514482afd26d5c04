// Package openai implements ports.LLM against an OpenAI-compatible
// chat-completions endpoint.
package openai

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	logger "github.com/sirupsen/logrus"

	"github.com/chuckie/aigitcommit/internal/domain"
	"github.com/chuckie/aigitcommit/internal/version"
)

// Options configures the client. Zero values mean the vendor default
// endpoint, no credential, no proxy and no request timeout.
type Options struct {
	BaseURL string
	Token   string
	Proxy   string
	Timeout time.Duration
}

// Client is a thin wrapper over go-openai issuing a single in-flight
// request per invocation. It never retries.
type Client struct {
	api *openai.Client
}

// New builds the HTTP client and go-openai configuration. A malformed
// proxy URL is dropped with a warning and the client proceeds without it.
func New(opts Options) *Client {
	cfg := openai.DefaultConfig(opts.Token)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}

	transport := http.DefaultTransport
	if opts.Proxy != "" {
		proxyURL, err := url.Parse(opts.Proxy)
		if err != nil {
			logger.Warnf("ignoring malformed proxy %q: %v", opts.Proxy, err)
		} else {
			logger.Tracef("using proxy %s", proxyURL)
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	cfg.HTTPClient = &http.Client{
		Timeout: opts.Timeout,
		Transport: &headerTransport{
			next:     transport,
			dropAuth: opts.Token == "",
		},
	}

	return &Client{api: openai.NewClientWithConfig(cfg)}
}

// CheckModel lists the endpoint's models and succeeds only if name is
// among the returned identifiers.
func (c *Client) CheckModel(ctx context.Context, name string) error {
	list, err := c.api.ListModels(ctx)
	if err != nil {
		return wrapError(err)
	}

	for _, model := range list.Models {
		if model.ID == name {
			logger.Tracef("model %q is available", name)
			return nil
		}
	}

	return &Error{
		Kind: KindInvalidArgument,
		Err:  errors.New("model " + name + " is not available at this endpoint"),
	}
}

// Chat posts one chat-completion request and returns the joined content
// of all returned choices, newline-separated.
func (c *Client) Chat(ctx context.Context, model string, messages []domain.ChatMessage) (string, error) {
	request := openai.ChatCompletionRequest{
		Model:    model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		request.Messages = append(request.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	response, err := c.api.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", wrapError(err)
	}

	if len(response.Choices) == 0 {
		return "", &Error{Kind: KindDeserialize, Err: errors.New("response contained no choices")}
	}

	parts := make([]string, 0, len(response.Choices))
	for _, choice := range response.Choices {
		parts = append(parts, choice.Message.Content)
	}

	logger.Debugf("usage: completion_tokens=%d prompt_tokens=%d total_tokens=%d",
		response.Usage.CompletionTokens, response.Usage.PromptTokens, response.Usage.TotalTokens)

	return strings.Join(parts, "\n"), nil
}

// headerTransport stamps the client identification headers on every
// outbound request.
type headerTransport struct {
	next     http.RoundTripper
	dropAuth bool
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("HTTP-Referer", version.Homepage)
	req.Header.Set("X-Title", version.Name)
	req.Header.Set("X-Client-Type", "CLI")
	if t.dropAuth {
		req.Header.Del("Authorization")
	}
	return t.next.RoundTrip(req)
}
