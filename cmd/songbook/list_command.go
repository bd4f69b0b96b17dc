package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"songbook/internal/catalog"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "List cataloged songs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}

			filter := catalog.Filter{}
			if len(args) == 1 {
				filter.Query = args[0]
			}
			if trimmed := strings.TrimSpace(formatFlag); trimmed != "" {
				format, err := parseFormat(trimmed)
				if err != nil {
					return err
				}
				filter.Format = format
			}

			songs, err := store.List(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("list songs: %w", err)
			}

			if asJSON {
				return writeJSON(cmd, songs)
			}

			out := cmd.OutOrStdout()
			if len(songs) == 0 {
				fmt.Fprintln(out, "No songs found")
				return nil
			}

			if isTerminal(out) {
				headers := table.Row{"ID", "Artist", "Title", "Format", "Path"}
				rows := make([]table.Row, 0, len(songs))
				for _, song := range songs {
					rows = append(rows, table.Row{song.ID, song.Artist, song.Title, string(song.Format), song.RelPath})
				}
				fmt.Fprintln(out, renderTable(headers, rows, 1))
				return nil
			}

			for _, song := range songs {
				label := song.Title
				if song.Artist != "" {
					label = song.Artist + " - " + song.Title
				}
				fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", song.ID, label, song.Format, song.RelPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Restrict to one format (CDG, ZIP, MP4, MP4+ASS)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit songs as JSON")
	return cmd
}

func parseFormat(value string) (catalog.Format, error) {
	for _, format := range []catalog.Format{catalog.FormatCDG, catalog.FormatZIP, catalog.FormatMP4, catalog.FormatMP4ASS} {
		if strings.EqualFold(value, string(format)) {
			return format, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (expected CDG, ZIP, MP4, or MP4+ASS)", value)
}
