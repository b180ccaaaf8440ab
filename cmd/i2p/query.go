package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/bft-labs/i2p/internal/app"
	"github.com/bft-labs/i2p/internal/cliconfig"
	"github.com/bft-labs/i2p/internal/command"
	"github.com/bft-labs/i2p/internal/domain"
)

func newLookupCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <id> <bound>",
		Short: "Print the name of one packet (bound is c2s or s2c)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.start(cmd)
			if err != nil {
				return err
			}
			res, err := a.Querier().LookupPacket(args[1], args[0])
			if err != nil {
				return errors.New(command.UserMessage(err))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), command.RenderResult(res))
			return err
		},
	}
}

func newListCmd(c *cli) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every packet, server-bound first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.start(cmd)
			if err != nil {
				return err
			}
			listing := a.Querier().ListAll()
			if plain {
				_, err = io.WriteString(cmd.OutOrStdout(), command.RenderListing(listing))
				return err
			}
			return renderTable(cmd.OutOrStdout(), listing)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the chat-style listing instead of a table")
	return cmd
}

// start resolves configuration and performs the one-time load.
func (c *cli) start(cmd *cobra.Command) (*app.App, error) {
	if err := c.load(cmd); err != nil {
		return nil, err
	}
	a := c.newApp(cliconfig.Logger(c.cfg.LogLevel))
	if err := a.Start(contextOf(cmd)); err != nil {
		return nil, err
	}
	return a, nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func renderTable(w io.Writer, l domain.Listing) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Bound", "ID", "Name"})

	for _, dir := range domain.Directions {
		for _, e := range l.Entries(dir) {
			if err := table.Append([]string{dir.String(), e.ID, e.Name}); err != nil {
				return fmt.Errorf("render table: %w", err)
			}
		}
	}
	return table.Render()
}
