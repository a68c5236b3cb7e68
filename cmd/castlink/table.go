package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"castlink/internal/manifest"
	"castlink/internal/registry"
	"castlink/internal/types"
)

var tableCmd = &cobra.Command{
	Use:   "table [flags] manifest.toml|snapshot.mp",
	Short: "Print the linked class table",
	Args:  cobra.ExactArgs(1),
	RunE:  runTable,
}

func init() {
	tableCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type tableRow struct {
	ID       uint32   `json:"id"`
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Castable []string `json:"castable"`
}

func runTable(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	reg, err := manifest.Open(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	rows := tableRows(reg)

	switch format {
	case "pretty":
		renderTablePretty(cmd.OutOrStdout(), reg, rows)
		return nil
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Unit    string     `json:"unit"`
			Classes []tableRow `json:"classes"`
			Strings []string   `json:"strings"`
		}{reg.Unit().Name(), rows, castableNames(reg, reg.StringCastMap())})
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func tableRows(reg *registry.Registry) []tableRow {
	classes := reg.Classes()
	rows := make([]tableRow, len(classes))
	for i, c := range classes {
		rows[i] = tableRow{
			ID:       uint32(c.ID),
			Name:     c.Name,
			Kind:     c.Kind.String(),
			Castable: castableNames(reg, c.Castable),
		}
	}
	return rows
}

func castableNames(reg *registry.Registry, m *types.CastableTypeMap) []string {
	ids := m.IDs()
	names := make([]string, len(ids))
	for i, id := range ids {
		if c, ok := reg.Class(id); ok && c.Name != "" {
			names[i] = c.Name
		} else {
			names[i] = id.String()
		}
	}
	return names
}

func renderTablePretty(out io.Writer, reg *registry.Registry, rows []tableRow) {
	header := color.New(color.Bold)
	nameWidth := runewidth.StringWidth("class")
	for _, r := range rows {
		nameWidth = max(nameWidth, runewidth.StringWidth(r.Name))
	}

	header.Fprintf(out, "unit %s: %d classes\n", reg.Unit().Name(), len(rows))
	header.Fprintf(out, "%6s  %s  %-9s  %s\n", "id", runewidth.FillRight("class", nameWidth), "kind", "castable")
	for _, r := range rows {
		fmt.Fprintf(out, "%6d  %s  %-9s  %s\n", r.ID, runewidth.FillRight(r.Name, nameWidth), r.Kind, strings.Join(r.Castable, ", "))
	}
	fmt.Fprintf(out, "strings: %s\n", strings.Join(castableNames(reg, reg.StringCastMap()), ", "))
}
