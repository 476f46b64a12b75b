package cmd

import (
	"strings"

	"github.com/foomo/keel/log"
	"github.com/foomo/wca/pkg/metrics"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// NewRootCommand represents the base command when called without any subcommands
func NewRootCommand() *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:           "wca",
		Short:         "Talks to the Engage xml api",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zap.ReplaceGlobals(log.NewLogger(
				logLevelFlag(v),
				logFormatFlag(v),
			))
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if filename := metricsTextfileFlag(v); filename != "" {
				if err := metrics.WriteTextfile(filename); err != nil {
					return errors.Wrap(err, "failed to write metrics")
				}
			}
			return nil
		},
	}

	addLogLevelFlag(cmd.PersistentFlags(), v)
	addLogFormatFlag(cmd.PersistentFlags(), v)
	addMetricsTextfileFlag(cmd.PersistentFlags(), v)

	cmd.AddCommand(NewGetMailingTemplatesCommand())
	cmd.AddCommand(NewDeleteRelationalTableDataCommand())
	cmd.AddCommand(NewInsertUpdateRelationalTableCommand())
	cmd.AddCommand(NewExportTableCommand())
	cmd.AddCommand(NewGetJobStatusCommand())
	cmd.AddCommand(NewLoginCommand())
	cmd.AddCommand(NewLogoutCommand())
	cmd.AddCommand(NewJournalCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		log.Logger().Fatal("failed to run command", zap.Error(err))
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}
