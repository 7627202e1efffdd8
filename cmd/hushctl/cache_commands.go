package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"hushplay/internal/store"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the transcript cache",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheShowCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	cacheCmd.AddCommand(newCachePruneCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached transcripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				entries, err := st.ListTranscripts(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "Cache is empty")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						entry.VideoID,
						strconv.Itoa(entry.WordCount),
						formatDuration(entry.Duration),
						entry.FetchedAt.Local().Format("2006-01-02 15:04"),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Video", "Words", "Duration", "Fetched"},
					rows, 1, 2,
				))
				return nil
			})
		},
	}
}

func newCacheShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <video-id>",
		Short: "Show the cached transcript for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				tr, ok, err := st.GetTranscript(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no cached transcript for %s", args[0])
				}
				rows := make([][]string, 0, len(tr.Words))
				for _, word := range tr.Words {
					rows = append(rows, []string{
						fmt.Sprintf("%.2f", word.Start),
						fmt.Sprintf("%.2f", word.End),
						word.Text,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Start", "End", "Word"},
					rows, 0, 1,
				))
				return nil
			})
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [video-id]",
		Short: "Remove one cached transcript, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				out := cmd.OutOrStdout()
				if len(args) == 1 {
					removed, err := st.DeleteTranscript(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					if !removed {
						return fmt.Errorf("no cached transcript for %s", args[0])
					}
					fmt.Fprintf(out, "Removed cached transcript for %s\n", args[0])
					return nil
				}
				count, err := st.ClearTranscripts(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed %d cached transcript(s)\n", count)
				return nil
			})
		},
	}
}

func newCachePruneCommand(ctx *commandContext) *cobra.Command {
	var maxAgeDays int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove cache entries older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				days := maxAgeDays
				if days <= 0 {
					cfg, err := ctx.ensureConfig()
					if err != nil {
						return err
					}
					days = cfg.Cache.MaxAgeDays
				}
				count, err := st.Prune(cmd.Context(), time.Duration(days)*24*time.Hour)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d entry(ies) older than %d days\n", count, days)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&maxAgeDays, "max-age-days", 0, "Override the configured retention window")
	return cmd
}

func formatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	return d.String()
}
