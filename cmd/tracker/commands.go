package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/artifact-tracker/internal/entities"
	"github.com/KirkDiggler/artifact-tracker/internal/errors"
	"github.com/KirkDiggler/artifact-tracker/internal/orchestrators/tracker"
)

// withApp opens the tracker for the duration of fn
func withApp(cmd *cobra.Command, o *rootOptions, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := openApp(ctx, o.cfg, o.logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

func newAddCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Start tracking a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, o, func(ctx context.Context, a *app) error {
				out, err := a.tracker.AddCharacter(ctx, &tracker.AddCharacterInput{Name: args[0]})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", out.Character.Name)
				return nil
			})
		},
	}
}

func newRemoveCmd(o *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Stop tracking a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !yes {
				ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Remove %s? [y/N]: ", name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Kept")
					return nil
				}
			}

			return withApp(cmd, o, func(ctx context.Context, a *app) error {
				out, err := a.tracker.RemoveCharacter(ctx, &tracker.RemoveCharacterInput{Name: name})
				if err != nil {
					return err
				}
				if !out.Removed {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is not tracked\n", name)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", name)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newSetCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <kind> <index> <value>",
		Short: "Choose a value for one slot, or clear it with an empty value",
		Long: `Set edits one slot of a character's list. Kinds are sets, circlet, goblet,
sands and substats. Slots are numbered from 0; the slot after the last value
is always free while the list has room. An empty value ("") clears the slot
and the later values move up.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := entities.ParseSlotKind(args[1])
			if err != nil {
				return err
			}
			index, err := strconv.Atoi(args[2])
			if err != nil {
				return errors.InvalidArgumentf("slot index %q is not a number", args[2])
			}

			return withApp(cmd, o, func(ctx context.Context, a *app) error {
				out, err := a.tracker.UpdateSlot(ctx, &tracker.UpdateSlotInput{
					Name:  args[0],
					Kind:  kind,
					Index: index,
					Value: args[3],
				})
				if err != nil {
					return err
				}
				printList(cmd.OutOrStdout(), out.List, true)
				return nil
			})
		},
	}
}

func newListCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, o, func(ctx context.Context, a *app) error {
				out, err := a.tracker.ListCharacters(ctx, &tracker.ListCharactersInput{})
				if err != nil {
					return err
				}
				if len(out.Characters) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No characters tracked yet.")
					return nil
				}
				for _, c := range out.Characters {
					printCharacter(cmd.OutOrStdout(), c, false)
				}
				return nil
			})
		},
	}
}

func newShowCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one character with the options of every slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, o, func(ctx context.Context, a *app) error {
				out, err := a.tracker.GetCharacter(ctx, &tracker.GetCharacterInput{Name: args[0]})
				if err != nil {
					return err
				}
				printCharacter(cmd.OutOrStdout(), out.Character, true)
				return nil
			})
		},
	}
}

func newTrackerCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tracker [set]",
		Short: "Show who uses an artifact set, with their stats",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, o, func(ctx context.Context, a *app) error {
				if len(args) == 0 {
					return printSets(ctx, cmd.OutOrStdout(), a)
				}

				out, err := a.tracker.Summary(ctx, &tracker.SummaryInput{Set: args[0]})
				if err != nil {
					return err
				}
				if len(out.Entries) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Nobody uses %s.\n", args[0])
					return nil
				}
				for _, e := range out.Entries {
					fmt.Fprintf(cmd.OutOrStdout(), "%s - Sets: %s\n  %s\n", e.Name, strings.Join(e.Sets, ", "), e.Details)
				}
				return nil
			})
		},
	}
}

func newSetsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sets",
		Short: "List the artifact sets chosen by any character",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, o, func(ctx context.Context, a *app) error {
				return printSets(ctx, cmd.OutOrStdout(), a)
			})
		},
	}
}

func newSuggestCmd(o *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest [prefix]",
		Short: "Suggest characters that are not tracked yet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			return withApp(cmd, o, func(ctx context.Context, a *app) error {
				out, err := a.tracker.Suggest(ctx, &tracker.SuggestInput{Prefix: prefix, Limit: limit})
				if err != nil {
					return err
				}
				for _, name := range out.Names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum suggestions (0 for all)")
	return cmd
}

func newExportCmd(o *rootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the roster as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, o, func(ctx context.Context, a *app) error {
				out, err := a.tracker.Export(ctx, &tracker.ExportInput{})
				if err != nil {
					return err
				}
				if outPath == "-" {
					_, err := cmd.OutOrStdout().Write(append(out.Data, '\n'))
					return err
				}

				path := outPath
				if path == "" {
					path = out.FileName
				}
				if err := os.WriteFile(path, out.Data, 0o644); err != nil {
					return errors.Wrapf(err, "failed to write %s", path)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file, - for stdout (default "+tracker.ExportFileName+")")
	return cmd
}

func newImportCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the roster with an exported JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.WrapWithCode(err, errors.CodeNotFound, "failed to read import file").
					WithMeta("path", args[0])
			}

			return withApp(cmd, o, func(ctx context.Context, a *app) error {
				out, err := a.tracker.Import(ctx, &tracker.ImportInput{Data: data})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d characters\n", out.Characters)
				if out.Duplicates > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d repeated entries\n", out.Duplicates)
				}
				return nil
			})
		},
	}
}

func printSets(ctx context.Context, w io.Writer, a *app) error {
	out, err := a.tracker.FilterOptions(ctx, &tracker.FilterOptionsInput{})
	if err != nil {
		return err
	}
	if len(out.Sets) == 0 {
		fmt.Fprintln(w, "No artifact sets chosen yet.")
		return nil
	}
	for _, s := range out.Sets {
		fmt.Fprintln(w, s)
	}
	return nil
}

func printCharacter(w io.Writer, c *tracker.CharacterView, withOptions bool) {
	fmt.Fprintln(w, c.Name)
	for _, l := range c.Lists {
		printList(w, l, withOptions)
	}
}

func printList(w io.Writer, l entities.ListView, withOptions bool) {
	values := make([]string, 0, len(l.Slots))
	for _, slot := range l.Slots {
		if slot.Blank() {
			values = append(values, "—")
			continue
		}
		values = append(values, slot.Value)
	}
	fmt.Fprintf(w, "  %-13s %s\n", l.Label+":", strings.Join(values, ", "))

	if !withOptions {
		return
	}
	for _, slot := range l.Slots {
		fmt.Fprintf(w, "    [%d] %s\n", slot.Index, strings.Join(slot.Options, " | "))
	}
}

// confirm asks a yes/no question and defaults to no
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.Wrap(err, "failed to read answer")
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
