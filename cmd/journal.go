package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewJournalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect recorded exchanges",
	}
	cmd.AddCommand(newJournalListCommand())
	cmd.AddCommand(newJournalShowCommand())
	return cmd
}

func newJournalListCommand() *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded exchanges, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := newJournal(cmd.Context(), v, zap.L())
			if err != nil {
				return err
			}
			defer j.Close()

			keys, err := j.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, key := range keys {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), key); err != nil {
					return err
				}
			}
			return nil
		},
	}

	addJournalFlags(cmd.Flags(), v)

	return cmd
}

func newJournalShowCommand() *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:   "show <key>",
		Short: "Show a recorded exchange",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := newJournal(cmd.Context(), v, zap.L())
			if err != nil {
				return err
			}
			defer j.Close()

			e, err := j.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), outputFlag(v), e)
		},
	}

	addJournalFlags(cmd.Flags(), v)
	addOutputFlag(cmd.Flags(), v)

	return cmd
}
