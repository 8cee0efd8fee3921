package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/s2l/internal/version"
)

var versionFormats = []string{"text", "json", "yaml"}

func newVersionCmd() *cobra.Command {
	var (
		format string
		short  bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display version information for s2l: version, git commit, build time,
Go version, and target platform.

Examples:
  s2l version              # Show version details
  s2l version --short      # Version only
  s2l version -f json      # Output as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			out := cmd.OutOrStdout()

			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			case "yaml":
				return yaml.NewEncoder(out).Encode(info)
			default:
				if short {
					_, err := fmt.Fprintln(out, info.Short())
					return err
				}
				_, err := fmt.Fprintln(out, info.String())
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, yaml)")
	cmd.Flags().BoolVar(&short, "short", false, "Show short version only")
	AddFlagValidation(cmd, "format", func(f string) error {
		return ValidateFormat(f, versionFormats)
	})
	return cmd
}
