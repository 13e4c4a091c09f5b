package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/autocare/autocare/internal/catalog"
)

// version is set via -ldflags at build time.
var version = ""

// buildVersion falls back to the module version recorded by `go install`.
func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "(devel)"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the program and symptom catalog versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "autocare", buildVersion())
		cat, err := catalog.Load(cfg.Engine.CatalogPath)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "catalog ", cat.Version())
		return nil
	},
}
