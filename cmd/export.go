package cmd

import (
	"time"

	"github.com/foomo/wca/requests"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type exportTableResult struct {
	JobID    int64       `json:"jobId" yaml:"jobId"`
	FilePath string      `json:"filePath" yaml:"filePath"`
	Status   interface{} `json:"status,omitempty" yaml:"status,omitempty"`
}

func NewExportTableCommand() *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:   "export-table",
		Short: "Export a relational table to the sftp area of the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			o := &requests.ExportTable{}
			o.TableID, _ = flags.GetInt64("table-id")
			o.TableName, _ = flags.GetString("table-name")
			o.Email, _ = flags.GetString("email")
			o.AddToStoredFiles, _ = flags.GetBool("add-to-stored-files")

			var err error
			if format, _ := flags.GetString("format"); format != "" {
				if o.Format, err = requests.ParseExportFormat(format); err != nil {
					return err
				}
			}
			start, _ := flags.GetString("date-start")
			if o.DateStart, err = parseDate(start); err != nil {
				return err
			}
			end, _ := flags.GetString("date-end")
			if o.DateEnd, err = parseDate(end); err != nil {
				return err
			}

			l := zap.L()
			c, closer, err := newClient(cmd.Context(), v, l)
			if err != nil {
				return err
			}
			defer closer()

			response, err := c.ExportTable(cmd.Context(), o)
			if err != nil {
				return err
			}
			result := exportTableResult{JobID: response.JobID, FilePath: response.FilePath}
			if wait, _ := flags.GetBool("wait"); wait {
				interval, _ := flags.GetDuration("poll-interval")
				l.Info("waiting for export", zap.Int64("job", response.JobID))
				status, err := c.WaitForJob(cmd.Context(), response.JobID, interval)
				if err != nil {
					return err
				}
				result.Status = status
			}
			return writeOutput(cmd.OutOrStdout(), outputFlag(v), result)
		},
	}

	flags := cmd.Flags()
	flags.Int64("table-id", 0, "Id of the table, exclusive with --table-name")
	flags.String("table-name", "", "Name of the table, exclusive with --table-id")
	flags.String("format", "", "Export format (CSV, TAB, PIPE), defaults to CSV")
	flags.String("email", "", "Notify this address when the export is done")
	flags.Bool("add-to-stored-files", false, "Keep the export in stored files")
	flags.String("date-start", "", "Only rows modified at or after this date")
	flags.String("date-end", "", "Only rows modified at or before this date")
	flags.Bool("wait", false, "Poll the job until it is done")
	flags.Duration("poll-interval", 5*time.Second, "Poll interval used with --wait")
	addConnectionFlags(flags, v)

	return cmd
}
