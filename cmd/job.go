package cmd

import (
	"strconv"

	"github.com/foomo/wca/client"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewGetJobStatusCommand() *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:   "get-job-status <job-id>...",
		Short: "Show the status of background jobs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobIDs, err := parseJobIDs(args)
			if err != nil {
				return err
			}
			concurrency, _ := cmd.Flags().GetInt("concurrency")

			c, closer, err := newClient(cmd.Context(), v, zap.L(), client.WithJobStatusConcurrency(concurrency))
			if err != nil {
				return err
			}
			defer closer()

			statuses, err := c.GetJobStatuses(cmd.Context(), jobIDs)
			if err != nil {
				return err
			}
			if len(statuses) == 1 {
				return writeOutput(cmd.OutOrStdout(), outputFlag(v), statuses[0])
			}
			return writeOutput(cmd.OutOrStdout(), outputFlag(v), statuses)
		},
	}

	cmd.Flags().Int("concurrency", 4, "Number of jobs polled in parallel")
	addConnectionFlags(cmd.Flags(), v)

	return cmd
}

func parseJobIDs(args []string) ([]int64, error) {
	ret := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid job id %q", arg)
		}
		ret = append(ret, id)
	}
	return ret, nil
}
