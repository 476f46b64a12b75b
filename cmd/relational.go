package cmd

import (
	"github.com/foomo/wca/requests"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func NewDeleteRelationalTableDataCommand() *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:   "delete-relational-table-data",
		Short: "Delete rows of a relational table by their key columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tableID, rows, err := relationalTableFlags(cmd)
			if err != nil {
				return err
			}
			c, closer, err := newClient(cmd.Context(), v, zap.L())
			if err != nil {
				return err
			}
			defer closer()

			response, err := c.DeleteRelationalTableData(cmd.Context(), &requests.DeleteRelationalTableData{TableID: tableID, Rows: rows})
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), outputFlag(v), response)
		},
	}

	addRelationalTableFlags(cmd.Flags())
	addConnectionFlags(cmd.Flags(), v)

	return cmd
}

func NewInsertUpdateRelationalTableCommand() *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:   "insert-update-relational-table",
		Short: "Insert rows into a relational table or update them by their key columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tableID, rows, err := relationalTableFlags(cmd)
			if err != nil {
				return err
			}
			c, closer, err := newClient(cmd.Context(), v, zap.L())
			if err != nil {
				return err
			}
			defer closer()

			response, err := c.InsertUpdateRelationalTable(cmd.Context(), &requests.InsertUpdateRelationalTable{TableID: tableID, Rows: rows})
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), outputFlag(v), response)
		},
	}

	addRelationalTableFlags(cmd.Flags())
	addConnectionFlags(cmd.Flags(), v)

	return cmd
}

func addRelationalTableFlags(flags *pflag.FlagSet) {
	flags.Int64("table-id", 0, "Id of the relational table")
	flags.String("rows", "-", "Yaml file with a sequence of rows, - reads stdin")
}

func relationalTableFlags(cmd *cobra.Command) (int64, []requests.Row, error) {
	tableID, _ := cmd.Flags().GetInt64("table-id")
	name, _ := cmd.Flags().GetString("rows")
	data, err := readInput(name, cmd.InOrStdin())
	if err != nil {
		return 0, nil, err
	}
	rows, err := parseRows(data)
	if err != nil {
		return 0, nil, err
	}
	return tableID, rows, nil
}
