// Package ports defines the interfaces between the pipeline and its
// adapters. Components accept these interfaces and return concrete types.
package ports

import (
	"context"

	"github.com/chuckie/aigitcommit/internal/domain"
)

// Repository is the single point of contact with the git working copy.
type Repository interface {
	// Author resolves the commit author identity. It never fails once the
	// repository is open; missing config falls back to sentinel defaults.
	Author() domain.Author

	// StagedDiff returns the trimmed, non-empty lines of the unified diff
	// between the index and the HEAD tree (empty tree when HEAD is unborn).
	StagedDiff() ([]string, error)

	// RecentSubjects returns up to n trimmed commit messages walking
	// backward from HEAD. An unborn HEAD yields an empty list.
	RecentSubjects(n int) ([]string, error)

	// Commit writes the index to a tree and creates a commit on HEAD with
	// the rendered message, returning the new commit id.
	Commit(msg *domain.Message) (string, error)
}

// LLM is the interface to a chat-completions endpoint.
type LLM interface {
	// Chat issues one chat-completion request and returns the joined
	// content of all returned choices.
	Chat(ctx context.Context, model string, messages []domain.ChatMessage) (string, error)

	// CheckModel reports whether the endpoint lists the given model.
	CheckModel(ctx context.Context, model string) error
}

// Clipboard places text on the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// Redactor redacts sensitive data from text before it leaves the process.
type Redactor interface {
	Redact(text string) string
	RedactLog(text string) string // for logging (more aggressive)
}
