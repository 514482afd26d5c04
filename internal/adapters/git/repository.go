// Package git implements ports.Repository on top of go-git. It is the
// sole point of contact with the on-disk working copy: index, HEAD, refs,
// object database and config.
package git

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	logger "github.com/sirupsen/logrus"

	"github.com/chuckie/aigitcommit/internal/domain"
)

// Sentinel author identity used when neither git config nor the
// GIT_AUTHOR_* environment variables provide one.
const (
	DefaultAuthorName  = "Unknown User"
	DefaultAuthorEmail = "unknown@example.com"
)

// Repository wraps an open git working copy.
type Repository struct {
	repo     *gogit.Repository
	worktree *gogit.Worktree
}

// Open locates the repository by walking upward from path. Bare
// repositories are rejected because there is no index to diff or commit.
func Open(path string) (*Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository at %q: %w", path, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("repository at %q has no working directory: %w", path, err)
	}

	logger.Tracef("opened repository at %s", worktree.Filesystem.Root())
	return &Repository{repo: repo, worktree: worktree}, nil
}

// Author resolves the commit author: user.name/user.email from the merged
// git config, then the GIT_AUTHOR_* environment variables, then sentinel
// defaults. It never fails once the repository is open.
func (r *Repository) Author() domain.Author {
	var name, email string

	if cfg, err := r.repo.ConfigScoped(gitconfig.SystemScope); err == nil {
		name = cfg.User.Name
		email = cfg.User.Email
	} else {
		logger.Warnf("failed to read git config: %v", err)
	}

	if name == "" {
		name = os.Getenv("GIT_AUTHOR_NAME")
	}
	if email == "" {
		email = os.Getenv("GIT_AUTHOR_EMAIL")
	}

	if name == "" {
		logger.Warnf("user.name not configured, using default name %q", DefaultAuthorName)
		name = DefaultAuthorName
	}
	if email == "" {
		logger.Warnf("user.email not configured, using default email %q", DefaultAuthorEmail)
		email = DefaultAuthorEmail
	}

	return domain.Author{Name: name, Email: email}
}

// RecentSubjects returns up to n trimmed commit messages walking backward
// from HEAD in committer-time order. Empty messages are skipped and an
// unborn HEAD yields an empty list.
func (r *Repository) RecentSubjects(n int) ([]string, error) {
	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		logger.Trace("HEAD is unborn, no commit history")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	iter, err := r.repo.Log(&gogit.LogOptions{
		From:  head.Hash(),
		Order: gogit.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("walk commit history: %w", err)
	}
	defer iter.Close()

	var subjects []string
	visited := 0
	err = iter.ForEach(func(c *object.Commit) error {
		if visited >= n {
			return storer.ErrStop
		}
		visited++

		if msg := strings.TrimSpace(c.Message); msg != "" {
			subjects = append(subjects, msg)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk commit history: %w", err)
	}

	logger.Tracef("retrieved %d commit messages", len(subjects))
	return subjects, nil
}

// Commit writes the current index to a tree and creates a commit on HEAD
// with author = committer and the current wall-clock time. The parent is
// the current HEAD commit, or nothing when HEAD is unborn. It fails when
// the index holds no staged changes.
func (r *Repository) Commit(msg *domain.Message) (string, error) {
	author := r.Author()
	signature := &object.Signature{
		Name:  author.Name,
		Email: author.Email,
		When:  time.Now(),
	}

	hash, err := r.worktree.Commit(msg.String(), &gogit.CommitOptions{
		Author:    signature,
		Committer: signature,
	})
	if err != nil {
		return "", fmt.Errorf("create commit: %w", err)
	}

	logger.Tracef("created commit %s", hash)
	return hash.String(), nil
}

// headTree returns the tree of the current HEAD commit, or nil when HEAD
// is unborn so callers compare against the empty tree.
func (r *Repository) headTree() (*object.Tree, error) {
	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("load HEAD commit: %w", err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("load HEAD tree: %w", err)
	}
	return tree, nil
}
