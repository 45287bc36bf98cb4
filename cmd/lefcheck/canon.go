package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"lefcheck/internal/driver"
)

var canonCmd = &cobra.Command{
	Use:   "canon [flags] <file.lef> [file.lef...]",
	Short: "Canonicalize LEF files without cross-checking",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCanon,
}

func init() {
	canonCmd.Flags().Bool("check", false, "detect whether output would differ, write nothing")
	canonCmd.Flags().Bool("stdout", false, "print canonical text to stdout instead of writing files")
	canonCmd.Flags().String("tech", "", "technology file for the layer order")
	canonCmd.Flags().String("out", "", "directory for canonical outputs")
	canonCmd.Flags().String("format", "text", "output format (text|json)")
}

func runCanon(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	techPath, err := cmd.Flags().GetString("tech")
	if err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if toStdout && check {
		return fmt.Errorf("canon: --stdout cannot be used with --check")
	}

	results, err := driver.CanonPaths(cmd.Context(), args, driver.CanonOptions{
		Check:    check,
		Stdout:   toStdout,
		TechPath: techPath,
		OutDir:   outDir,
	})
	if err != nil {
		return err
	}

	switch format {
	case "text":
		return renderCanonText(cmd, results, check, toStdout)
	case "json":
		return renderCanonJSON(cmd, results)
	default:
		return fmt.Errorf("canon: unsupported output format %q", format)
	}
}

func renderCanonText(cmd *cobra.Command, results []driver.CanonResult, check, toStdout bool) error {
	out := cmd.OutOrStdout()
	var failed, changed int
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
			fmt.Fprintf(out, "error: %s: %v\n", res.Path, res.Err)
		case toStdout:
			fmt.Fprint(out, res.Canonical)
		case res.Changed:
			changed++
			if check {
				fmt.Fprintf(out, "would change: %s\n", res.Path)
			} else {
				fmt.Fprintf(out, "canonicalized: %s -> %s\n", res.Path, res.OutPath)
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("canon: failed to canonicalize %d file(s)", failed)
	}
	if check && changed > 0 {
		return fmt.Errorf("canon: %d file(s) would change", changed)
	}
	return nil
}

type canonFileJSON struct {
	Path    string `json:"path"`
	Changed bool   `json:"changed"`
	OutPath string `json:"out_path,omitempty"`
	Error   string `json:"error,omitempty"`
}

func renderCanonJSON(cmd *cobra.Command, results []driver.CanonResult) error {
	payload := make([]canonFileJSON, 0, len(results))
	for _, res := range results {
		file := canonFileJSON{Path: res.Path, Changed: res.Changed, OutPath: res.OutPath}
		if res.Err != nil {
			file.Error = res.Err.Error()
		}
		payload = append(payload, file)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
