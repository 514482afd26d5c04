// Package domain holds the core types of the commit message pipeline:
// the repository author identity, chat messages exchanged with the LLM,
// and the structured commit message produced from the LLM response.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyTitle is returned when the title trims to an empty string.
	ErrEmptyTitle = errors.New("commit title cannot be empty")
	// ErrEmptyContent is returned when the content trims to an empty string.
	ErrEmptyContent = errors.New("commit content cannot be empty")
	// ErrMalformedResponse is returned when the LLM response has no blank
	// line separating title from content.
	ErrMalformedResponse = errors.New("malformed response: missing blank line between title and content")
)

// Author is the commit author identity resolved from repository config.
type Author struct {
	Name  string
	Email string
}

// Signoff renders the DCO trailer line for this author.
func (a Author) Signoff() string {
	return fmt.Sprintf("Signed-off-by: %s <%s>", a.Name, a.Email)
}

// Message is a structured commit message. Title and Content are non-empty
// and trimmed; construct values through NewMessage or ParseResponse.
type Message struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NewMessage validates title and content and optionally appends the
// sign-off trailer for author. The trailer is added exactly once, at
// construction time.
func NewMessage(title, content string, author Author, signoff bool) (*Message, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" {
		return nil, ErrEmptyTitle
	}
	if content == "" {
		return nil, ErrEmptyContent
	}

	if signoff {
		content += "\n\n" + author.Signoff()
	}

	return &Message{Title: title, Content: content}, nil
}

// ParseResponse splits the assistant text at the first blank line into
// (title, content) and builds a Message from the two halves.
func ParseResponse(text string, author Author, signoff bool) (*Message, error) {
	idx := strings.Index(text, "\n\n")
	if idx < 0 {
		return nil, ErrMalformedResponse
	}
	return NewMessage(text[:idx], text[idx+2:], author, signoff)
}

// String renders the full commit message text.
func (m *Message) String() string {
	return m.Title + "\n\n" + m.Content
}

// CharCount returns the total character count of the rendered message.
func (m *Message) CharCount() int {
	return len(m.Title) + 2 + len(m.Content)
}

// LineCount returns the number of lines in the rendered message, not
// counting the separating blank line.
func (m *Message) LineCount() int {
	return 1 + strings.Count(m.Content, "\n") + 1
}
