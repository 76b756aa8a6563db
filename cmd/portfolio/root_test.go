package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Zachkp/portfolio/internal/config"
)

func TestNewPublisher_ContentPathRelativeToRepo(t *testing.T) {
	repo := t.TempDir()
	p := newPublisher(config.Config{
		ContentDir:    repo + "/site/content",
		PublishRepo:   repo,
		PublishRemote: "origin",
		PublishBranch: "main",
	})
	assert.Equal(t, "site/content", p.ContentPath)
	assert.Equal(t, repo, p.RepoDir)
	assert.Equal(t, "origin", p.Remote)
}

func TestCommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "lint", "publish"})
}
