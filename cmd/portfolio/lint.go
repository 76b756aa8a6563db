package main

import (
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/lint"
	"github.com/Zachkp/portfolio/internal/source"
)

var errLintIssues = errors.New("content has issues")

var lintWatch bool

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Report content that falls back to defaults",
	Long: `lint loads every content file the file-backed source reads and reports
unrecognized status labels, out-of-range progress, missing titles, malformed
front matter and missing blurb files. With --watch it re-checks on every
change until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := lint.New(source.New(appConfig.ContentDir, nil))
		out := cmd.OutOrStdout()

		if !lintWatch {
			report, err := checker.Check()
			if err != nil {
				return err
			}
			report.Print(out)
			if !report.OK() {
				return errLintIssues
			}
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		log.Printf("Watching %s for changes...", appConfig.ContentDir)
		return checker.Watch(ctx, lint.Debounce, func(r lint.Report, err error) {
			if err != nil {
				log.Printf("Lint failed: %v", err)
				return
			}
			fmt.Fprintln(out, "---")
			r.Print(out)
		})
	},
}

func init() {
	lintCmd.Flags().BoolVarP(&lintWatch, "watch", "w", false, "re-check whenever content changes")
}
