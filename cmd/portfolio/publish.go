package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var publishMessage string

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Commit and push the content directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newPublisher(appConfig).Publish(cmd.Context(), publishMessage); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Published.")
		return nil
	},
}

func init() {
	publishCmd.Flags().StringVarP(&publishMessage, "message", "m", "", "commit message")
	_ = publishCmd.MarkFlagRequired("message")
}
