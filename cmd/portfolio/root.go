package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/publish"
)

var (
	cfgFile   string
	v         = config.New()
	appConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio site server and content tools",
	Long: `portfolio serves the JSON API behind the portfolio site. Content comes
either from the built-in seeded records or from Markdown files with YAML front
matter under the content directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		appConfig = cfg
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./portfolio.yaml)")
	rootCmd.PersistentFlags().String("content-dir", "", "directory holding the Markdown content")
	bindFlag("contentDir", rootCmd, "content-dir")

	rootCmd.AddCommand(serveCmd, lintCmd, publishCmd)
}

// bindFlag lets an explicitly set flag override file and environment values.
func bindFlag(key string, cmd *cobra.Command, name string) {
	f := cmd.Flags().Lookup(name)
	if f == nil {
		f = cmd.PersistentFlags().Lookup(name)
	}
	if err := v.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

// newPublisher stages the content directory relative to the publish repo.
func newPublisher(cfg config.Config) *publish.Git {
	contentPath := cfg.ContentDir
	if repo, err := filepath.Abs(cfg.PublishRepo); err == nil {
		if dir, err := filepath.Abs(cfg.ContentDir); err == nil {
			if rel, err := filepath.Rel(repo, dir); err == nil {
				contentPath = rel
			}
		}
	}
	return &publish.Git{
		RepoDir:     cfg.PublishRepo,
		ContentPath: contentPath,
		Remote:      cfg.PublishRemote,
		Branch:      cfg.PublishBranch,
	}
}
