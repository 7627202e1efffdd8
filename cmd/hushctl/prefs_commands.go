package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"hushplay/internal/prefs"
	"hushplay/internal/store"
)

func newPrefsCommand(ctx *commandContext) *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show and edit filtering preferences",
	}

	prefsCmd.AddCommand(newPrefsShowCommand(ctx))
	prefsCmd.AddCommand(newPrefsSetCommand(ctx))

	return prefsCmd
}

func newPrefsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				p, err := st.LoadPreferences(cmd.Context())
				if err != nil {
					return err
				}
				rows := [][]string{
					{"mode", string(p.Mode)},
					{"filter_mild", yesNo(p.FilterMild)},
					{"filter_moderate", yesNo(p.FilterModerate)},
					{"filter_severe", yesNo(p.FilterSevere)},
					{"filter_religious", yesNo(p.FilterReligious)},
					{"padding_before_ms", strconv.Itoa(p.PaddingBeforeMS)},
					{"padding_after_ms", strconv.Itoa(p.PaddingAfterMS)},
					{"merge_threshold_ms", strconv.Itoa(p.MergeThresholdMS)},
					{"auto_enable", yesNo(p.AutoEnable)},
					{"blacklist", strings.Join(p.Blacklist, ", ")},
					{"whitelist", strings.Join(p.Whitelist, ", ")},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Setting", "Value"}, rows))
				return nil
			})
		},
	}
}

func newPrefsSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <setting> <value>",
		Short: "Update one preference setting",
		Long: `Update one preference setting and persist it.

Boolean settings: filter_mild, filter_moderate, filter_severe,
filter_religious, auto_enable. Numeric settings: padding_before_ms,
padding_after_ms, merge_threshold_ms. mode accepts "mute" or "bleep".
blacklist and whitelist take a comma-separated word list.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				p, err := st.LoadPreferences(cmd.Context())
				if err != nil {
					return err
				}
				if err := applySetting(&p, args[0], args[1]); err != nil {
					return err
				}
				if err := st.SavePreferences(cmd.Context(), p); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
				return nil
			})
		},
	}
}

func applySetting(p *prefs.Preferences, setting, value string) error {
	setting = strings.ToLower(strings.TrimSpace(setting))

	boolTargets := map[string]*bool{
		"filter_mild":      &p.FilterMild,
		"filter_moderate":  &p.FilterModerate,
		"filter_severe":    &p.FilterSevere,
		"filter_religious": &p.FilterReligious,
		"auto_enable":      &p.AutoEnable,
	}
	if target, ok := boolTargets[setting]; ok {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects true or false, got %q", setting, value)
		}
		*target = parsed
		return nil
	}

	intTargets := map[string]*int{
		"padding_before_ms":  &p.PaddingBeforeMS,
		"padding_after_ms":   &p.PaddingAfterMS,
		"merge_threshold_ms": &p.MergeThresholdMS,
	}
	if target, ok := intTargets[setting]; ok {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			return fmt.Errorf("%s expects a non-negative integer, got %q", setting, value)
		}
		*target = parsed
		return nil
	}

	switch setting {
	case "mode":
		mode, ok := prefs.ParseMode(value)
		if !ok {
			return fmt.Errorf("mode expects mute or bleep, got %q", value)
		}
		p.Mode = mode
		return nil
	case "blacklist":
		p.Blacklist = splitWordList(value)
		return nil
	case "whitelist":
		p.Whitelist = splitWordList(value)
		return nil
	default:
		return fmt.Errorf("unknown setting %q", setting)
	}
}

func splitWordList(value string) []string {
	parts := strings.Split(value, ",")
	words := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			words = append(words, trimmed)
		}
	}
	return words
}
