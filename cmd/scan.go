package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/s2l/internal/output"
	"github.com/conneroisu/s2l/internal/scanner"
	"github.com/conneroisu/s2l/internal/session"
	"github.com/conneroisu/s2l/internal/types"
	"github.com/conneroisu/s2l/internal/ui"
)

var scanFormats = []string{"table", "json", "yaml"}

func newScanCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "scan [dir]",
		Aliases: []string{"ls"},
		Short:   "List the SVG files of a directory",
		Long: `List the SVG files directly inside a directory, in the order they would
be converted, with the attributes configured defaults give them.

Examples:
  s2l scan ./icons              # Table
  s2l scan ./icons -o json      # JSON array of file descriptors
  s2l scan -o yaml              # Uses directories.input from the config`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runScan(cmd, args, format)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format (table|json|yaml)")
	AddFlagValidation(cmd, "output", func(f string) error {
		return ValidateFormat(f, scanFormats)
	})
	return cmd
}

// inputDir picks the directory argument, then the configured input, then ".".
func (a *app) inputDir(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if a.cfg != nil && a.cfg.Directories.Input != "" {
		return a.cfg.Directories.Input
	}
	return "."
}

// loadSession scans dir and applies the configured defaults.
func (a *app) loadSession(dir string) (*session.Session, error) {
	sess := session.New(scanner.New(a.fs))
	if err := sess.Load(dir); err != nil {
		return nil, err
	}
	defaults, err := a.cfg.DefaultSettings()
	if err != nil {
		return nil, err
	}
	sess.ApplyDefaults(defaults)
	return sess, nil
}

func (a *app) runScan(cmd *cobra.Command, args []string, format string) error {
	dir := a.inputDir(args)
	sess, err := a.loadSession(dir)
	if err != nil {
		return err
	}
	files := sess.Files()
	a.logger.Debug(cmd.Context(), "Scanned directory", "dir", dir, "files", len(files))

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(files)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(files); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeScanTable(out, dir, files)
	}
}

func writeScanTable(out io.Writer, dir string, files []types.FileDescriptor) error {
	if len(files) == 0 {
		_, err := fmt.Fprintln(out, ui.RenderMuted("No SVG files found in "+dir))
		return err
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVIEWBOX\tCLASS\tFILL\tPREFIX\tOUTPUT")
	for _, fd := range files {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			fd.Name, fd.ViewBox.String(), dash(fd.ClassName), dash(fd.Fill), dash(fd.Prefix),
			output.OutputName(fd.Name, fd.Prefix))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	lines[0] = ui.RenderHeader(lines[0])
	lines = append(lines, "", ui.RenderMuted(fmt.Sprintf("%d files in %s", len(files), dir)))
	_, err := fmt.Fprintln(out, strings.Join(lines, "\n"))
	return err
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
