package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"songbook/internal/songname"
)

func newParseCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "parse <filename>...",
		Short:       "Parse artist, title, and YouTube ID out of filenames",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			refs := make([]songname.Reference, 0, len(args))
			for _, name := range args {
				refs = append(refs, songname.Parse(name))
			}

			if asJSON {
				return writeJSON(cmd, refs)
			}

			out := cmd.OutOrStdout()
			for i, ref := range refs {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s\n", args[i])
				if ref.Artist != "" {
					fmt.Fprintf(out, "  artist:     %s\n", ref.Artist)
				}
				fmt.Fprintf(out, "  title:      %s\n", ref.Title)
				if ref.YouTubeID != "" {
					fmt.Fprintf(out, "  youtube id: %s\n", ref.YouTubeID)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit parse results as JSON")
	return cmd
}
