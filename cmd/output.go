package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/autocare/autocare/internal/report"
)

// renderer returns the report renderer selected by --plain.
func renderer(cmd *cobra.Command) *report.Renderer {
	plain, _ := cmd.Flags().GetBool("plain")
	return report.New(plain)
}

// out returns the command's stdout. Styled output is downsampled to what
// the terminal supports.
func out(cmd *cobra.Command, r *report.Renderer) io.Writer {
	if r != nil && !r.Plain() {
		return colorprofile.NewWriter(cmd.OutOrStdout(), os.Environ())
	}
	return cmd.OutOrStdout()
}

func printReport(cmd *cobra.Command, r *report.Renderer, s string) error {
	_, err := fmt.Fprint(out(cmd, r), s)
	return err
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Print JSON instead of a report")
	cmd.Flags().Bool("plain", false, "Print the report without colors or styling")
}

func wantJSON(cmd *cobra.Command) bool {
	j, _ := cmd.Flags().GetBool("json")
	return j
}
