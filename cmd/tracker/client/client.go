// Package client provides commands that talk to a running tracker over gRPC
package client

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/artifact-tracker/internal/errors"
	v1 "github.com/KirkDiggler/artifact-tracker/internal/handlers/tracker/v1"
	"github.com/KirkDiggler/artifact-tracker/internal/orchestrators/tracker"
)

// options holds the connection flags shared by every client command
type options struct {
	serverAddr string
	timeout    time.Duration
}

// NewClientCmd returns the root command of the gRPC client commands
func NewClientCmd() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "client",
		Short: "Call a running tracker server",
		Long:  `Client commands make real gRPC requests against a tracker started with serve.`,
	}
	cmd.PersistentFlags().StringVar(&o.serverAddr, "server", "localhost:50051", "gRPC server address")
	cmd.PersistentFlags().DurationVar(&o.timeout, "timeout", 30*time.Second, "request timeout")

	cmd.AddCommand(
		newListCmd(o),
		newAddCmd(o),
		newRemoveCmd(o),
		newSetCmd(o),
		newTrackerCmd(o),
	)
	return cmd
}

// call makes one request and decodes the response into out when out is not nil
func (o *options) call(ctx context.Context, method string, fields map[string]any, out any) error {
	conn, err := grpc.NewClient(o.serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to connect to server")
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	req, err := structpb.NewStruct(fields)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to build request")
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := v1.NewClient(conn).Call(ctx, method, req)
	if err != nil {
		return errors.FromGRPCError(err)
	}
	if out == nil {
		return nil
	}
	return v1.FromStruct(resp, out)
}

func newListCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resp struct {
				Characters []*tracker.CharacterView `json:"characters"`
			}
			if err := o.call(cmd.Context(), v1.MethodListCharacters, nil, &resp); err != nil {
				return err
			}
			if len(resp.Characters) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No characters tracked yet.")
				return nil
			}
			for _, c := range resp.Characters {
				printCharacter(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func newAddCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Start tracking a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Character *tracker.CharacterView `json:"character"`
			}
			if err := o.call(cmd.Context(), v1.MethodAddCharacter, map[string]any{"name": args[0]}, &resp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", resp.Character.Name)
			return nil
		},
	}
}

func newRemoveCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Stop tracking a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Removed bool `json:"removed"`
			}
			if err := o.call(cmd.Context(), v1.MethodRemoveCharacter, map[string]any{"name": args[0]}, &resp); err != nil {
				return err
			}
			if !resp.Removed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is not tracked\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func newSetCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <kind> <index> <value>",
		Short: "Choose a value for one slot, or clear it with an empty value",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			var index int
			if _, err := fmt.Sscan(args[2], &index); err != nil {
				return errors.InvalidArgumentf("slot index %q is not a number", args[2])
			}

			var resp struct {
				Character *tracker.CharacterView `json:"character"`
			}
			err := o.call(cmd.Context(), v1.MethodUpdateSlot, map[string]any{
				"name":  args[0],
				"kind":  args[1],
				"index": index,
				"value": args[3],
			}, &resp)
			if err != nil {
				return err
			}
			printCharacter(cmd.OutOrStdout(), resp.Character)
			return nil
		},
	}
}

func newTrackerCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tracker [set]",
		Short: "Show who uses an artifact set",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				var resp struct {
					Sets []string `json:"sets"`
				}
				if err := o.call(cmd.Context(), v1.MethodFilterOptions, nil, &resp); err != nil {
					return err
				}
				for _, s := range resp.Sets {
					fmt.Fprintln(cmd.OutOrStdout(), s)
				}
				return nil
			}

			var resp struct {
				Summary []tracker.SummaryEntry `json:"summary"`
			}
			if err := o.call(cmd.Context(), v1.MethodCharactersUsingSet, map[string]any{"set": args[0]}, &resp); err != nil {
				return err
			}
			if len(resp.Summary) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Nobody uses %s.\n", args[0])
				return nil
			}
			for _, e := range resp.Summary {
				fmt.Fprintf(cmd.OutOrStdout(), "%s - Sets: %s\n  %s\n", e.Name, strings.Join(e.Sets, ", "), e.Details)
			}
			return nil
		},
	}
}

func printCharacter(w io.Writer, c *tracker.CharacterView) {
	if c == nil {
		return
	}
	fmt.Fprintln(w, c.Name)
	for _, l := range c.Lists {
		values := make([]string, 0, len(l.Slots))
		for _, slot := range l.Slots {
			if slot.Blank() {
				values = append(values, "—")
				continue
			}
			values = append(values, slot.Value)
		}
		fmt.Fprintf(w, "  %-13s %s\n", l.Label+":", strings.Join(values, ", "))
	}
}
