// Package testutil provides deterministic fakes for the ports interfaces.
package testutil

import (
	"context"

	"github.com/chuckie/aigitcommit/internal/domain"
)

// FakeRepository is an in-memory ports.Repository.
type FakeRepository struct {
	AuthorValue domain.Author

	DiffLines []string
	DiffErr   error

	Subjects    []string
	SubjectsErr error

	CommitHash        string
	CommitErr         error
	CommittedMessages []*domain.Message
}

func (f *FakeRepository) Author() domain.Author {
	return f.AuthorValue
}

func (f *FakeRepository) StagedDiff() ([]string, error) {
	if f.DiffErr != nil {
		return nil, f.DiffErr
	}
	return f.DiffLines, nil
}

func (f *FakeRepository) RecentSubjects(n int) ([]string, error) {
	if f.SubjectsErr != nil {
		return nil, f.SubjectsErr
	}
	if len(f.Subjects) > n {
		return f.Subjects[:n], nil
	}
	return f.Subjects, nil
}

func (f *FakeRepository) Commit(msg *domain.Message) (string, error) {
	if f.CommitErr != nil {
		return "", f.CommitErr
	}
	f.CommittedMessages = append(f.CommittedMessages, msg)
	return f.CommitHash, nil
}

// FakeLLM is a canned ports.LLM.
type FakeLLM struct {
	Response string
	Err      error

	CallCount    int
	LastModel    string
	LastMessages []domain.ChatMessage
}

func (f *FakeLLM) Chat(_ context.Context, model string, messages []domain.ChatMessage) (string, error) {
	f.CallCount++
	f.LastModel = model
	f.LastMessages = messages
	if f.Err != nil {
		return "", f.Err
	}
	return f.Response, nil
}

func (f *FakeLLM) CheckModel(_ context.Context, _ string) error {
	return f.Err
}

// FakeClipboard records what was copied, and can simulate failure.
type FakeClipboard struct {
	Contents string
	Err      error
	Calls    int
}

func (f *FakeClipboard) WriteAll(text string) error {
	f.Calls++
	if f.Err != nil {
		return f.Err
	}
	f.Contents = text
	return nil
}

// NoopRedactor passes text through unchanged.
type NoopRedactor struct{}

func (NoopRedactor) Redact(text string) string    { return text }
func (NoopRedactor) RedactLog(text string) string { return text }
