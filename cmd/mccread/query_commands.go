package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"mccread/internal/caption"
	langcodes "mccread/internal/language"
)

func newCaptionsCommand(ctx *commandContext) *cobra.Command {
	var opts decodeOptions
	var formatFlag, trackFlag, languageFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "captions <file.mcc>",
		Short: "Decode an MCC file and list its caption events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := ctx.decode(cmd, args[0], opts)
			if err != nil {
				return err
			}
			matched := result.Query(caption.Filter{
				Format:   formatFlag,
				Track:    trackFlag,
				Language: normalizeLanguageFilter(languageFlag),
			})
			if !renderAsTable(cmd, jsonFlag) {
				return writeJSON(cmd, matched)
			}

			var rows [][]string
			for _, format := range caption.Formats {
				tracks := matched[format]
				trackIDs := make([]string, 0, len(tracks))
				for id := range tracks {
					trackIDs = append(trackIDs, id)
				}
				sort.Strings(trackIDs)
				for _, id := range trackIDs {
					for _, event := range tracks[id] {
						end := ""
						if event.EndTimecode != nil {
							end = *event.EndTimecode
						}
						rows = append(rows, []string{
							format,
							id,
							event.StartTimecode,
							end,
							strings.ReplaceAll(event.Text, "\n", " / "),
						})
					}
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Format", "Track", "Start", "End", "Text"},
				rows,
				nil,
			))
			return nil
		},
	}

	addDecodeFlags(cmd, &opts)
	cmd.Flags().StringVar(&formatFlag, "format", "", "Restrict to one standard (cea608 or cea708)")
	cmd.Flags().StringVar(&trackFlag, "track", "", "Restrict to one track id (e.g. c1, s1)")
	cmd.Flags().StringVar(&languageFlag, "language", "", "Restrict to tracks in this language (code or name, e.g. en, eng, English)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Force JSON output")
	return cmd
}

func newTracksCommand(ctx *commandContext) *cobra.Command {
	var opts decodeOptions
	var formatFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "tracks <file.mcc>",
		Short: "Decode an MCC file and list its caption tracks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := ctx.decode(cmd, args[0], opts)
			if err != nil {
				return err
			}
			tracks := result.Tracks(formatFlag)
			if !renderAsTable(cmd, jsonFlag) {
				return writeJSON(cmd, tracks)
			}

			var rows [][]string
			for _, format := range caption.Formats {
				for _, id := range tracks[format] {
					events := result.TrackEvents(format, id)
					lang := result.TrackLanguage(format, id)
					if lang == "" {
						lang = "-"
					}
					rows = append(rows, []string{
						format,
						id,
						strconv.Itoa(len(events)),
						lang,
					})
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Format", "Track", "Events", "Language"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	addDecodeFlags(cmd, &opts)
	cmd.Flags().StringVar(&formatFlag, "format", "", "Restrict to one standard (cea608 or cea708)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Force JSON output")
	return cmd
}

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	var opts decodeOptions
	var formatFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "languages <file.mcc>",
		Short: "Decode an MCC file and list detected track languages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := ctx.decode(cmd, args[0], opts)
			if err != nil {
				return err
			}
			languages := result.Languages(formatFlag)
			if !renderAsTable(cmd, jsonFlag) {
				return writeJSON(cmd, languages)
			}

			var rows [][]string
			for _, format := range caption.Formats {
				tracks := languages[format]
				trackIDs := make([]string, 0, len(tracks))
				for id := range tracks {
					trackIDs = append(trackIDs, id)
				}
				sort.Strings(trackIDs)
				for _, id := range trackIDs {
					code := tracks[id]
					rows = append(rows, []string{format, id, code, languageName(code)})
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Format", "Track", "Code", "Language"},
				rows,
				nil,
			))
			return nil
		},
	}

	addDecodeFlags(cmd, &opts)
	cmd.Flags().StringVar(&formatFlag, "format", "", "Restrict to one standard (cea608 or cea708)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Force JSON output")
	return cmd
}

// normalizeLanguageFilter maps user input like "eng" or "English" to the
// ISO 639-1 code the annotation pass records. Unrecognized input is kept
// as-is so a bad filter matches nothing instead of everything.
func normalizeLanguageFilter(input string) string {
	if input == "" {
		return ""
	}
	if code := langcodes.ToISO2(input); code != "" {
		return code
	}
	return input
}

// languageName resolves an ISO 639-1 code to its English display name.
func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}

func newDebugCommand(ctx *commandContext) *cobra.Command {
	var opts decodeOptions
	var levelFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "debug <file.mcc>",
		Short: "Decode an MCC file and show the decoder's debug entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if levelFlag != "" && !caption.IsDebugLevel(caption.NormalizeDebugLevel(levelFlag)) {
				return fmt.Errorf("unknown debug level %q (valid: %s)",
					levelFlag, strings.Join(caption.DebugLevels, ", "))
			}
			result, err := ctx.decode(cmd, args[0], opts)
			if err != nil {
				return err
			}
			entries := result.Debug(levelFlag)
			if !renderAsTable(cmd, jsonFlag) {
				return writeJSON(cmd, entries)
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{entry.Level, entry.Category, entry.Source, entry.Message})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Level", "Category", "Source", "Message"},
				rows,
				nil,
			))
			return nil
		},
	}

	addDecodeFlags(cmd, &opts)
	cmd.Flags().StringVar(&levelFlag, "level", "", "Restrict to one debug level (e.g. WARN)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Force JSON output")
	return cmd
}
