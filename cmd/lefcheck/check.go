package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lefcheck/internal/diag"
	"lefcheck/internal/driver"
	"lefcheck/internal/observ"
	"lefcheck/internal/project"
	"lefcheck/internal/reportfmt"
	"lefcheck/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path...]",
	Short: "Run the full pipeline over a workspace",
	Long: `Parse every LEF file, cross-check cells and pins against Liberty libraries
and the technology layer table, write canonical renderings and print the
categorized report. With no path arguments on a terminal an interactive
picker selects the workspace directory.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("out", "", "directory for canonical outputs and the report")
	checkCmd.Flags().String("format", "text", "report format (text|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for LEF files (0=auto)")
	checkCmd.Flags().Bool("no-cache", false, "bypass the persistent disk cache")
	checkCmd.Flags().Bool("no-output", false, "report only, do not write canonical files")
	checkCmd.Flags().Bool("write-report", false, "also write the text report next to the outputs")
	checkCmd.Flags().Bool("strict", false, "exit non-zero when the report is not empty")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	noOutput, err := cmd.Flags().GetBool("no-output")
	if err != nil {
		return err
	}
	writeReport, err := cmd.Flags().GetBool("write-report")
	if err != nil {
		return err
	}
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return err
	}
	useColor, err := colorEnabled(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	ws, err := resolveWorkspace(args)
	if err != nil {
		return err
	}
	if ws == nil {
		// Пользователь отменил выбор каталога.
		return nil
	}

	timer := observ.NewTimer()
	results, err := driver.CheckWorkspace(cmd.Context(), ws, driver.CheckOptions{
		OutDir:     outDir,
		Jobs:       jobs,
		NoCache:    noCache,
		SkipOutput: noOutput,
		Logger:     logger,
		Timer:      timer,
	})
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			logger.Error("document aborted", "path", res.Path, "err", res.Err)
		}
	}
	merged := driver.MergedLedger(results)

	switch format {
	case "text":
		reportfmt.Text(cmd.OutOrStdout(), merged, reportfmt.TextOpts{Color: useColor})
	case "json":
		if err := renderCheckJSON(cmd, results, merged); err != nil {
			return err
		}
	default:
		return fmt.Errorf("check: unsupported report format %q", format)
	}

	if writeReport {
		var sb strings.Builder
		reportfmt.Text(&sb, merged, reportfmt.TextOpts{})
		path, err := driver.WriteReport(outDir, sb.String())
		if err != nil {
			return err
		}
		logger.Info("report written", "path", path)
	}

	if show, err := showTimings(cmd); err != nil {
		return err
	} else if show {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if failed > 0 {
		return fmt.Errorf("check: %d document(s) failed to parse", failed)
	}
	if strict && !merged.Empty() {
		return fmt.Errorf("check: %d finding(s)", merged.Total())
	}
	return nil
}

// resolveWorkspace собирает входы: явные пути, каталог из lefcheck.toml,
// либо интерактивный выбор на терминале.
func resolveWorkspace(args []string) (*project.Workspace, error) {
	if len(args) == 0 {
		dir, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		if isTerminal(os.Stdout) && isTerminal(os.Stdin) {
			picked, ok, err := ui.PickDirectory(dir)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, nil
			}
			dir = picked
		}
		return discoverWithConfig(dir)
	}
	if len(args) == 1 {
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			return discoverWithConfig(args[0])
		}
	}
	return project.FromPaths(args)
}

func discoverWithConfig(dir string) (*project.Workspace, error) {
	ws, err := project.Discover(dir)
	if err != nil {
		return nil, err
	}
	if path, ok := project.FindConfig(dir); ok {
		cfg, err := project.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg.Apply(ws, dir)
	}
	return ws, nil
}

type checkFileJSON struct {
	Path     string `json:"path"`
	OutPath  string `json:"out_path,omitempty"`
	CacheHit bool   `json:"cache_hit,omitempty"`
	Error    string `json:"error,omitempty"`
}

type checkPayload struct {
	Files  []checkFileJSON   `json:"files"`
	Report []reportfmt.Entry `json:"report"`
}

func renderCheckJSON(cmd *cobra.Command, results []driver.CheckResult, merged *diag.Ledger) error {
	payload := checkPayload{Report: reportfmt.Entries(merged)}
	for _, res := range results {
		file := checkFileJSON{
			Path:     res.Path,
			OutPath:  res.OutPath,
			CacheHit: res.CacheHit,
		}
		if res.Err != nil {
			file.Error = res.Err.Error()
		}
		payload.Files = append(payload.Files, file)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
