package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lefcheck/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "lefcheck",
	Short: "LEF library canonicalizer and cross-checker",
	Long:  `lefcheck validates standard-cell LEF libraries, cross-checks them against Liberty timing libraries and a technology layer file, and writes a canonical, diffable rendering.`,
}

// main registers subcommands and persistent flags, then executes the root
// command. If command execution returns an error, the process exits with
// status code 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(canonCmd)
	rootCmd.AddCommand(techCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
