package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lefcheck/internal/tech"
)

var techCmd = &cobra.Command{
	Use:   "tech [flags] <file.tf|file.tlef>",
	Short: "Parse a technology file and show the layer order",
	Args:  cobra.ExactArgs(1),
	RunE:  runTech,
}

func init() {
	techCmd.Flags().String("format", "text", "output format (text|json)")
}

func runTech(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("tech: read %s: %w", args[0], err)
	}
	table := tech.Load(args[0], string(data))

	switch format {
	case "text":
		return renderTechText(cmd, table)
	case "json":
		return renderTechJSON(cmd, table)
	default:
		return fmt.Errorf("tech: unsupported output format %q", format)
	}
}

func renderTechText(cmd *cobra.Command, table *tech.Table) error {
	out := cmd.OutOrStdout()
	useColor, err := colorEnabled(cmd)
	if err != nil {
		return err
	}
	color.NoColor = !useColor

	heading := color.New(color.FgCyan, color.Bold)
	cut := color.New(color.FgYellow)
	routing := color.New(color.FgGreen)

	heading.Fprintf(out, "layer order (%d layers)\n", len(table.Names))
	for i, name := range table.Names {
		switch {
		case table.IsCut(name):
			fmt.Fprintf(out, "  %2d  %-12s %s\n", i+1, name, cut.Sprint("CUT"))
		case table.IsRouting(name):
			fmt.Fprintf(out, "  %2d  %-12s %s\n", i+1, name, routing.Sprint("ROUTING"))
		default:
			fmt.Fprintf(out, "  %2d  %-12s ?\n", i+1, name)
		}
	}
	return nil
}

type techLayerJSON struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
}

func renderTechJSON(cmd *cobra.Command, table *tech.Table) error {
	layers := make([]techLayerJSON, 0, len(table.Names))
	for i, name := range table.Names {
		kind := "unknown"
		switch {
		case table.IsCut(name):
			kind = "cut"
		case table.IsRouting(name):
			kind = "routing"
		}
		layers = append(layers, techLayerJSON{Index: i + 1, Name: name, Kind: kind})
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(layers)
}
