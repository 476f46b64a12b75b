package cmd

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Populated by goreleaser during build
var version = "latest"

type versionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit,omitempty" yaml:"commit,omitempty"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
}

func NewVersionCommand() *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{Version: version, GoVersion: runtime.Version()}
			if bi, ok := debug.ReadBuildInfo(); ok {
				for _, s := range bi.Settings {
					if s.Key == "vcs.revision" {
						info.Commit = s.Value
					}
				}
			}
			return writeOutput(cmd.OutOrStdout(), outputFlag(v), info)
		},
	}

	addOutputFlag(cmd.Flags(), v)

	return cmd
}
