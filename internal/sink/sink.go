// Package sink routes a generated commit message to its destinations:
// stdout, the system clipboard, a new commit, a file. Sinks run in a
// fixed order and a failed sink never prevents the ones after it.
package sink

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	logger "github.com/sirupsen/logrus"

	"github.com/chuckie/aigitcommit/internal/config"
	"github.com/chuckie/aigitcommit/internal/domain"
	"github.com/chuckie/aigitcommit/internal/ports"
)

// tableWidth is the wrap width of the stdout table rendering.
const tableWidth = 120

// Kind tags one sink variant.
type Kind int

const (
	KindStdout Kind = iota
	KindClipboard
	KindCommit
	KindSave
)

// Sink is a tagged destination for the generated message. Only the
// fields relevant to its Kind are set.
type Sink struct {
	Kind    Kind
	Format  config.Format // KindStdout
	Confirm bool          // KindCommit: ask before committing
	Path    string        // KindSave
}

// FromConfig builds the enabled sinks in execution order:
// stdout, clipboard, commit, save.
func FromConfig(cfg *config.Config) []Sink {
	sinks := []Sink{{Kind: KindStdout, Format: cfg.Format}}
	if cfg.Copy {
		sinks = append(sinks, Sink{Kind: KindClipboard})
	}
	if cfg.Commit {
		sinks = append(sinks, Sink{Kind: KindCommit, Confirm: !cfg.Yes})
	}
	if cfg.SavePath != "" {
		sinks = append(sinks, Sink{Kind: KindSave, Path: cfg.SavePath})
	}
	return sinks
}

// Router dispatches a message to sinks. The rendered message goes to
// out; prompts and action reports go to report so stdout stays clean.
type Router struct {
	repo      ports.Repository
	clipboard ports.Clipboard
	out       io.Writer
	report    io.Writer
	in        *bufio.Reader
}

// NewRouter wires the router's collaborators.
func NewRouter(repo ports.Repository, clipboard ports.Clipboard, out, report io.Writer, in io.Reader) *Router {
	return &Router{
		repo:      repo,
		clipboard: clipboard,
		out:       out,
		report:    report,
		in:        bufio.NewReader(in),
	}
}

// Dispatch runs each sink in order. Sink failures are logged and do not
// abort the remaining sinks; a declined commit is not a failure.
func (r *Router) Dispatch(msg *domain.Message, sinks []Sink) {
	for _, s := range sinks {
		switch s.Kind {
		case KindStdout:
			if err := r.render(msg, s.Format); err != nil {
				logger.Errorf("failed to render message: %v", err)
			}
		case KindClipboard:
			if err := r.clipboard.WriteAll(msg.String()); err != nil {
				logger.Errorf("failed to copy message to clipboard: %v", err)
			} else {
				logger.Trace("message copied to clipboard")
			}
		case KindCommit:
			r.commit(msg, s.Confirm)
		case KindSave:
			r.save(msg, s.Path)
		}
	}
}

// render writes the message to stdout in the selected format.
func (r *Router) render(msg *domain.Message, format config.Format) error {
	switch format {
	case config.FormatJSON:
		data, err := json.MarshalIndent(msg, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.out, string(data))
		return err
	case config.FormatTable:
		_, err := fmt.Fprintln(r.out, renderTable(msg))
		return err
	default:
		_, err := fmt.Fprintf(r.out, "%s\n", msg.String())
		return err
	}
}

// renderTable draws the two-row rounded-border table.
func renderTable(msg *domain.Message) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Width(tableWidth).
		StyleFunc(func(_, _ int) lipgloss.Style {
			return lipgloss.NewStyle().Align(lipgloss.Left).Padding(0, 1)
		}).
		Rows(
			[]string{"Title", strings.TrimSpace(msg.Title)},
			[]string{"Content", strings.TrimSpace(msg.Content)},
		)
	return t.Render()
}

// commit asks for confirmation unless bypassed, then creates the commit.
// A negative answer aborts silently; a commit failure is logged and the
// remaining sinks still run.
func (r *Router) commit(msg *domain.Message, confirm bool) {
	if confirm && !r.confirmed() {
		logger.Trace("commit declined by user")
		return
	}

	hash, err := r.repo.Commit(msg)
	if err != nil {
		logger.Errorf("git commit failed: %v", err)
		return
	}
	fmt.Fprintf(r.report, "created commit %s\n", hash)
}

// confirmed asks the default-no question and reads one answer line.
func (r *Router) confirmed() bool {
	fmt.Fprint(r.report, "Commit with this message? [y/N]: ")
	answer, err := r.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// save truncate-creates the file and writes the rendered message.
func (r *Router) save(msg *domain.Message, path string) {
	if err := os.WriteFile(path, []byte(msg.String()), 0o644); err != nil {
		logger.Errorf("failed to save message to %s: %v", path, err)
		return
	}

	resolved := path
	if abs, err := filepath.Abs(path); err == nil {
		resolved = abs
	}
	fmt.Fprintf(r.report, "message saved to %s\n", resolved)
}
