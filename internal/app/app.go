// Package app orchestrates the commit-message generation pipeline:
// staged diff and recent history in, structured commit message out.
package app

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/chuckie/aigitcommit/internal/domain"
	"github.com/chuckie/aigitcommit/internal/ports"
	"github.com/chuckie/aigitcommit/internal/prompt"
)

// recentLogCount is how many recent commit messages are handed to the LLM
// as a style reference.
const recentLogCount = 5

var (
	// ErrNoStagedChanges means the index matches the HEAD tree, so there
	// is nothing to describe.
	ErrNoStagedChanges = errors.New("no staged changes found, please stage your changes first")
	// ErrNoCommitHistory means HEAD has no commits to learn the message
	// style from.
	ErrNoCommitHistory = errors.New("no commit history found in this repository")
)

// Generator runs the pipeline against one repository and one LLM endpoint.
type Generator struct {
	repo     ports.Repository
	llm      ports.LLM
	redactor ports.Redactor
	model    string
	signoff  bool
}

// NewGenerator wires the pipeline dependencies.
func NewGenerator(repo ports.Repository, llm ports.LLM, redactor ports.Redactor, model string, signoff bool) *Generator {
	return &Generator{
		repo:     repo,
		llm:      llm,
		redactor: redactor,
		model:    model,
		signoff:  signoff,
	}
}

// Generate extracts the staged state, consults the LLM once and parses
// the response into a Message. Every failure here is fatal for the
// invocation; only the sink layer downgrades errors.
func (g *Generator) Generate(ctx context.Context) (*domain.Message, error) {
	diffs, err := g.repo.StagedDiff()
	if err != nil {
		return nil, fmt.Errorf("read staged diff: %w", err)
	}
	if len(diffs) == 0 {
		return nil, ErrNoStagedChanges
	}
	logger.Debugf("staged diff has %d lines", len(diffs))

	logs, err := g.repo.RecentSubjects(recentLogCount)
	if err != nil {
		return nil, fmt.Errorf("read commit history: %w", err)
	}
	if len(logs) == 0 {
		return nil, ErrNoCommitHistory
	}
	logger.Debugf("using %d recent commit messages", len(logs))

	for i, line := range diffs {
		diffs[i] = g.redactor.Redact(line)
	}

	messages := []domain.ChatMessage{
		domain.SystemMessage(prompt.System),
		domain.UserMessage(prompt.Build(logs, diffs)),
	}

	text, err := g.llm.Chat(ctx, g.model, messages)
	if err != nil {
		return nil, err
	}

	msg, err := domain.ParseResponse(text, g.repo.Author(), g.signoff)
	if err != nil {
		return nil, err
	}

	logger.Tracef("generated message: %d characters, %d lines", msg.CharCount(), msg.LineCount())
	return msg, nil
}
