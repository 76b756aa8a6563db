// Package publish pushes edited content to the site's git remote.
package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"

	"github.com/Zachkp/portfolio/internal/model"
)

// ErrEmptyMessage is returned when no commit message is given.
var ErrEmptyMessage = errors.New("commit message is required")

// Publisher makes the current content live.
type Publisher interface {
	Publish(ctx context.Context, message string) error
}

const binGit = "git"

// Git stages the content directory, commits and pushes.
type Git struct {
	// RepoDir is the working tree; empty means the process working directory.
	RepoDir string
	// ContentPath is staged relative to RepoDir.
	ContentPath string
	Remote      string
	Branch      string
	// Author, when set, is passed as --author.
	Author string
}

func (g *Git) cmd(ctx context.Context, arg ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, binGit, arg...)
	if g.RepoDir != "" {
		cmd.Dir = g.RepoDir
	}
	return cmd
}

func (g *Git) run(ctx context.Context, arg ...string) error {
	var out bytes.Buffer
	cmd := g.cmd(ctx, arg...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git %s: %w: %s", arg[0], err, strings.TrimSpace(out.String()))
	}
	return nil
}

// hasStagedChanges reports whether the index differs from HEAD.
func (g *Git) hasStagedChanges(ctx context.Context) (bool, error) {
	err := g.cmd(ctx, "diff", "--cached", "--quiet").Run()
	if err == nil {
		return false, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return true, nil
	}
	return false, err
}

// Publish commits whatever changed under ContentPath and pushes it. With
// nothing to commit it still pushes, so earlier unpushed commits go out.
func (g *Git) Publish(ctx context.Context, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return model.Invalid("message", ErrEmptyMessage.Error())
	}

	path := g.ContentPath
	if path == "" {
		path = "."
	}
	if err := g.run(ctx, "add", "-A", "--", path); err != nil {
		return &model.UpstreamError{Service: "publish", Err: err}
	}

	changed, err := g.hasStagedChanges(ctx)
	if err != nil {
		return &model.UpstreamError{Service: "publish", Err: err}
	}
	if changed {
		args := []string{"commit", "--no-verify", "-m", message}
		if g.Author != "" {
			args = append(args, "--author", g.Author)
		}
		if err := g.run(ctx, args...); err != nil {
			return &model.UpstreamError{Service: "publish", Err: err}
		}
	} else {
		log.Printf("Publish: no content changes to commit")
	}

	push := []string{"push"}
	if g.Remote != "" {
		push = append(push, g.Remote)
		if g.Branch != "" {
			push = append(push, "HEAD:"+g.Branch)
		}
	}
	if err := g.run(ctx, push...); err != nil {
		return &model.UpstreamError{Service: "publish", Err: err}
	}
	log.Printf("Publish: pushed content (%s)", message)
	return nil
}
