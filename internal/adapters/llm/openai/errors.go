package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	openai "github.com/sashabaranov/go-openai"
)

// Kind is the closed failure taxonomy surfaced to callers. Transport
// library errors are mapped to it at this boundary and never leak.
type Kind string

const (
	KindNetwork         Kind = "network"
	KindDeserialize     Kind = "deserialize"
	KindInvalidArgument Kind = "invalid-argument"
	KindIO              Kind = "io"
	KindAPI             Kind = "api"
)

// Error is a classified LLM client failure.
type Error struct {
	Kind   Kind
	Status int    // HTTP status, for KindAPI
	Body   string // response payload, for KindAPI
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindAPI:
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Body)
	case KindNetwork:
		return fmt.Sprintf("network request error: %v", e.Err)
	default:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// wrapError maps go-openai and transport errors onto the taxonomy.
func wrapError(err error) *Error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Kind: KindAPI, Status: apiErr.HTTPStatusCode, Body: apiErr.Message, Err: err}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &Error{Kind: KindAPI, Status: reqErr.HTTPStatusCode, Body: reqErr.Error(), Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &Error{Kind: KindNetwork, Err: err}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &Error{Kind: KindDeserialize, Err: err}
	}

	return &Error{Kind: KindIO, Err: err}
}
