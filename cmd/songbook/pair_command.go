package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"songbook/internal/pairing"
)

func newPairCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "pair <path>",
		Short:       "Find the companion file for a karaoke file",
		Long:        "Resolves the sibling a player needs alongside the given file:\nthe .mp3 for a .cdg (and vice versa), or the .ass/.srt subtitle for a video.",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			companion := pairing.Companion(args[0], nil)
			out := cmd.OutOrStdout()
			if companion == "" {
				fmt.Fprintln(out, "no pairing found")
				return nil
			}
			fmt.Fprintln(out, companion)
			return nil
		},
	}
}
