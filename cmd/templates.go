package cmd

import (
	"github.com/foomo/wca/requests"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewGetMailingTemplatesCommand() *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:   "get-mailing-templates",
		Short: "List mailing templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			o := &requests.GetMailingTemplates{}

			visibility, _ := flags.GetString("visibility")
			var err error
			if o.Visibility, err = requests.ParseVisibilityValue(visibility); err != nil {
				return err
			}
			start, _ := flags.GetString("last-modified-start")
			if o.LastModifiedStartDate, err = parseDate(start); err != nil {
				return err
			}
			end, _ := flags.GetString("last-modified-end")
			if o.LastModifiedEndDate, err = parseDate(end); err != nil {
				return err
			}
			o.CRMEnabled, _ = flags.GetBool("crm-enabled")

			c, closer, err := newClient(cmd.Context(), v, zap.L())
			if err != nil {
				return err
			}
			defer closer()

			response, err := c.GetMailingTemplates(cmd.Context(), o)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), outputFlag(v), response)
		},
	}

	flags := cmd.Flags()
	flags.String("visibility", requests.VisibilityPrivate.Alias(), "Template visibility (Private, Shared or 0, 1)")
	flags.String("last-modified-start", "", "Only templates modified at or after this date")
	flags.String("last-modified-end", "", "Only templates modified at or before this date")
	flags.Bool("crm-enabled", false, "Only templates with crm blocks")
	addConnectionFlags(flags, v)

	return cmd
}
