package sink_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chuckie/aigitcommit/internal/config"
	"github.com/chuckie/aigitcommit/internal/domain"
	"github.com/chuckie/aigitcommit/internal/sink"
	"github.com/chuckie/aigitcommit/internal/testutil"
)

func testMessage(t *testing.T) *domain.Message {
	t.Helper()
	msg, err := domain.NewMessage(
		"feat: add greeting",
		"- add hello line to README.md",
		domain.Author{Name: "Ada", Email: "ada@x"},
		false,
	)
	require.NoError(t, err)
	return msg
}

type harness struct {
	repo      *testutil.FakeRepository
	clipboard *testutil.FakeClipboard
	out       *bytes.Buffer
	report    *bytes.Buffer
	router    *sink.Router
}

func newHarness(answers string) *harness {
	h := &harness{
		repo:      &testutil.FakeRepository{CommitHash: "abc1234"},
		clipboard: &testutil.FakeClipboard{},
		out:       &bytes.Buffer{},
		report:    &bytes.Buffer{},
	}
	h.router = sink.NewRouter(h.repo, h.clipboard, h.out, h.report, strings.NewReader(answers))
	return h
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("should always start with the stdout sink", func(t *testing.T) {
		t.Parallel()

		// when
		sinks := sink.FromConfig(&config.Config{Format: config.FormatPlain})

		// then
		require.Len(t, sinks, 1)
		assert.Equal(t, sink.KindStdout, sinks[0].Kind)
	})

	t.Run("should order sinks stdout, clipboard, commit, save", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := &config.Config{
			Format:   config.FormatPlain,
			Copy:     true,
			Commit:   true,
			Yes:      true,
			SavePath: "msg.txt",
		}

		// when
		sinks := sink.FromConfig(cfg)

		// then
		require.Len(t, sinks, 4)
		assert.Equal(t, sink.KindStdout, sinks[0].Kind)
		assert.Equal(t, sink.KindClipboard, sinks[1].Kind)
		assert.Equal(t, sink.KindCommit, sinks[2].Kind)
		assert.False(t, sinks[2].Confirm)
		assert.Equal(t, sink.KindSave, sinks[3].Kind)
		assert.Equal(t, "msg.txt", sinks[3].Path)
	})

	t.Run("should not add a save sink for an empty path", func(t *testing.T) {
		t.Parallel()

		// when
		sinks := sink.FromConfig(&config.Config{Format: config.FormatPlain, SavePath: ""})

		// then
		require.Len(t, sinks, 1)
	})
}

func TestDispatchStdout(t *testing.T) {
	t.Parallel()

	t.Run("should render plain as title, blank line, content", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness("")

		// when
		h.router.Dispatch(testMessage(t), []sink.Sink{{Kind: sink.KindStdout, Format: config.FormatPlain}})

		// then
		assert.Equal(t, "feat: add greeting\n\n- add hello line to README.md\n", h.out.String())
	})

	t.Run("should render json pretty-printed with stable key order", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness("")

		// when
		h.router.Dispatch(testMessage(t), []sink.Sink{{Kind: sink.KindStdout, Format: config.FormatJSON}})

		// then
		expected := "{\n  \"title\": \"feat: add greeting\",\n  \"content\": \"- add hello line to README.md\"\n}\n"
		assert.Equal(t, expected, h.out.String())
	})

	t.Run("should render a rounded table with title and content rows", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness("")

		// when
		h.router.Dispatch(testMessage(t), []sink.Sink{{Kind: sink.KindStdout, Format: config.FormatTable}})

		// then
		out := h.out.String()
		assert.Contains(t, out, "Title")
		assert.Contains(t, out, "Content")
		assert.Contains(t, out, "feat: add greeting")
		assert.Contains(t, out, "╭")
		assert.Contains(t, out, "╯")
	})
}

func TestDispatchClipboard(t *testing.T) {
	t.Parallel()

	// given
	h := newHarness("")

	// when
	h.router.Dispatch(testMessage(t), []sink.Sink{{Kind: sink.KindClipboard}})

	// then
	assert.Equal(t, "feat: add greeting\n\n- add hello line to README.md", h.clipboard.Contents)
}

func TestDispatchCommit(t *testing.T) {
	t.Parallel()

	t.Run("should commit without prompting when confirmation is bypassed", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness("")

		// when
		h.router.Dispatch(testMessage(t), []sink.Sink{{Kind: sink.KindCommit, Confirm: false}})

		// then
		require.Len(t, h.repo.CommittedMessages, 1)
		assert.Contains(t, h.report.String(), "created commit abc1234")
		assert.NotContains(t, h.report.String(), "[y/N]")
	})

	t.Run("should commit on an affirmative answer", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness("y\n")

		// when
		h.router.Dispatch(testMessage(t), []sink.Sink{{Kind: sink.KindCommit, Confirm: true}})

		// then
		assert.Len(t, h.repo.CommittedMessages, 1)
		assert.Contains(t, h.report.String(), "[y/N]")
	})

	t.Run("should abort silently on a negative answer", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness("n\n")

		// when
		h.router.Dispatch(testMessage(t), []sink.Sink{{Kind: sink.KindCommit, Confirm: true}})

		// then
		assert.Empty(t, h.repo.CommittedMessages)
	})

	t.Run("should default to no on an empty answer", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness("\n")

		// when
		h.router.Dispatch(testMessage(t), []sink.Sink{{Kind: sink.KindCommit, Confirm: true}})

		// then
		assert.Empty(t, h.repo.CommittedMessages)
	})
}

func TestDispatchSave(t *testing.T) {
	t.Parallel()

	// given
	h := newHarness("")
	path := filepath.Join(t.TempDir(), "msg.txt")

	// when
	h.router.Dispatch(testMessage(t), []sink.Sink{{Kind: sink.KindSave, Path: path}})

	// then
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "feat: add greeting\n\n- add hello line to README.md", string(data))
	assert.Contains(t, h.report.String(), "message saved to ")
}

func TestDispatchIsolation(t *testing.T) {
	t.Parallel()

	t.Run("should run later sinks when an earlier one fails", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness("")
		h.clipboard.Err = errors.New("no display")
		path := filepath.Join(t.TempDir(), "msg.txt")

		// when
		h.router.Dispatch(testMessage(t), []sink.Sink{
			{Kind: sink.KindClipboard},
			{Kind: sink.KindCommit, Confirm: false},
			{Kind: sink.KindSave, Path: path},
		})

		// then
		assert.Len(t, h.repo.CommittedMessages, 1)
		assert.FileExists(t, path)
	})

	t.Run("should continue past a failing commit", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness("")
		h.repo.CommitErr = errors.New("index is empty")
		path := filepath.Join(t.TempDir(), "msg.txt")

		// when
		h.router.Dispatch(testMessage(t), []sink.Sink{
			{Kind: sink.KindCommit, Confirm: false},
			{Kind: sink.KindSave, Path: path},
		})

		// then
		assert.FileExists(t, path)
	})
}
