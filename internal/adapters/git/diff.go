package git

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	gitdiff "github.com/go-git/go-git/v5/utils/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
	logger "github.com/sirupsen/logrus"
)

// diffContextLines is the number of unified-diff context lines.
const diffContextLines = 3

// excludedBasenames lists lock and manifest files whose diffs are noise
// for a commit message.
var excludedBasenames = map[string]struct{}{
	"go.mod":            {},
	"go.sum":            {},
	"Cargo.lock":        {},
	"package-lock.json": {},
	"yarn.lock":         {},
	"pnpm-lock.yaml":    {},
}

// StagedDiff returns the unified diff between the index and the HEAD tree
// (the empty tree when HEAD is unborn) as trimmed, non-empty lines.
// Binary files are suppressed, submodules are ignored, and files from the
// exclusion set are dropped by basename.
func (r *Repository) StagedDiff() ([]string, error) {
	tree, err := r.headTree()
	if err != nil {
		return nil, err
	}

	headFiles := map[string]fileRef{}
	if tree != nil {
		err = tree.Files().ForEach(func(f *object.File) error {
			headFiles[f.Name] = fileRef{hash: f.Hash, mode: f.Mode}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("list HEAD tree files: %w", err)
		}
	}

	idx, err := r.repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	changes := map[string]change{}
	for _, entry := range idx.Entries {
		if entry.Mode == filemode.Submodule {
			continue
		}

		staged := fileRef{hash: entry.Hash, mode: entry.Mode}
		old, existed := headFiles[entry.Name]
		if existed {
			// Mark as handled so it is not reported as a deletion.
			delete(headFiles, entry.Name)
			if old == staged {
				continue
			}
			changes[entry.Name] = change{from: &old, to: &staged}
			continue
		}
		changes[entry.Name] = change{to: &staged}
	}

	// Whatever remains in headFiles is staged for deletion.
	for name, old := range headFiles {
		ref := old
		changes[name] = change{from: &ref}
	}

	paths := make([]string, 0, len(changes))
	for name := range changes {
		paths = append(paths, name)
	}
	sort.Strings(paths)

	var filePatches []fdiff.FilePatch
	for _, name := range paths {
		if _, excluded := excludedBasenames[path.Base(name)]; excluded {
			logger.Warnf("skipping excluded file: %s", path.Base(name))
			continue
		}

		fp, err := r.filePatch(name, changes[name])
		if err != nil {
			return nil, err
		}
		if fp != nil {
			filePatches = append(filePatches, fp)
		}
	}

	var buf bytes.Buffer
	encoder := fdiff.NewUnifiedEncoder(&buf, diffContextLines)
	if err := encoder.Encode(stagedPatch{filePatches: filePatches}); err != nil {
		return nil, fmt.Errorf("encode staged diff: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// fileRef identifies one side of a file change.
type fileRef struct {
	hash plumbing.Hash
	mode filemode.FileMode
}

// change is a staged file delta; a nil side means the file is absent there.
type change struct {
	from *fileRef
	to   *fileRef
}

// filePatch loads both blob contents and computes the line chunks for one
// changed file. Binary content returns a nil patch, suppressing the file.
func (r *Repository) filePatch(name string, ch change) (fdiff.FilePatch, error) {
	fromContent, err := r.blobContent(ch.from)
	if err != nil {
		return nil, fmt.Errorf("load previous content of %s: %w", name, err)
	}
	toContent, err := r.blobContent(ch.to)
	if err != nil {
		return nil, fmt.Errorf("load staged content of %s: %w", name, err)
	}

	if isBinary(fromContent) || isBinary(toContent) {
		logger.Tracef("suppressing binary file: %s", name)
		return nil, nil
	}

	fp := &textFilePatch{}
	if ch.from != nil {
		fp.from = changeFile{hash: ch.from.hash, mode: ch.from.mode, path: name}
	}
	if ch.to != nil {
		fp.to = changeFile{hash: ch.to.hash, mode: ch.to.mode, path: name}
	}

	for _, d := range gitdiff.Do(fromContent, toContent) {
		var op fdiff.Operation
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			op = fdiff.Equal
		case diffmatchpatch.DiffInsert:
			op = fdiff.Add
		case diffmatchpatch.DiffDelete:
			op = fdiff.Delete
		}
		fp.chunks = append(fp.chunks, textChunk{content: d.Text, op: op})
	}

	return fp, nil
}

// blobContent reads a blob from the object database; staged blobs are
// present there as soon as they are added to the index.
func (r *Repository) blobContent(ref *fileRef) (string, error) {
	if ref == nil {
		return "", nil
	}

	blob, err := r.repo.BlobObject(ref.hash)
	if err != nil {
		return "", err
	}

	reader, err := blob.Reader()
	if err != nil {
		return "", err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func isBinary(content string) bool {
	return strings.ContainsRune(content, '\x00')
}

// stagedPatch adapts the computed file patches to the unified encoder.
type stagedPatch struct {
	filePatches []fdiff.FilePatch
}

func (p stagedPatch) FilePatches() []fdiff.FilePatch { return p.filePatches }
func (p stagedPatch) Message() string { return "" }

type textFilePatch struct {
	from, to fdiff.File
	chunks   []fdiff.Chunk
}

func (p *textFilePatch) IsBinary() bool { return false }
func (p *textFilePatch) Files() (from, to fdiff.File) { return p.from, p.to }
func (p *textFilePatch) Chunks() []fdiff.Chunk { return p.chunks }

type changeFile struct {
	hash plumbing.Hash
	mode filemode.FileMode
	path string
}

func (f changeFile) Hash() plumbing.Hash { return f.hash }
func (f changeFile) Mode() filemode.FileMode { return f.mode }
func (f changeFile) Path() string { return f.path }

type textChunk struct {
	content string
	op      fdiff.Operation
}

func (c textChunk) Content() string { return c.content }
func (c textChunk) Type() fdiff.Operation { return c.op }
