package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hushplay/internal/lexicon"
	"hushplay/internal/store"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check <word>",
		Short: "Report how a word would be treated under current preferences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				p, err := st.LoadPreferences(cmd.Context())
				if err != nil {
					return err
				}

				lex := lexicon.Default()
				word := args[0]
				folded := lex.Fold(word)
				out := cmd.OutOrStdout()

				for _, entry := range p.Whitelist {
					if lex.Fold(entry) == folded {
						fmt.Fprintf(out, "%q is whitelisted and never filtered\n", word)
						return nil
					}
				}
				for _, entry := range p.Blacklist {
					if lex.Fold(entry) == folded {
						fmt.Fprintf(out, "%q is blacklisted and always filtered\n", word)
						return nil
					}
				}

				matches := lex.Matches(word)
				if len(matches) == 0 {
					fmt.Fprintf(out, "%q matches no lexicon entry\n", word)
					return nil
				}
				for _, match := range matches {
					state := "filtered"
					if !p.SeverityEnabled(match.Severity) {
						state = "not filtered (tier disabled)"
					}
					fmt.Fprintf(out, "%q matches %q (%s): %s\n", word, match.Term, match.Severity, state)
				}
				return nil
			})
		},
	}
}
