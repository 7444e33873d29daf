package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"moshpit/internal/report"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// emit renders one result according to the output flags: JSON wins, then CSV,
// then the terminal table.
func (c *commandContext) emit(cmd *cobra.Command, tbl report.Table, payload any) error {
	if c.jsonEnabled() {
		return writeJSON(cmd, payload)
	}
	if path := c.csvPath(); path != "" {
		if err := tbl.WriteCSV(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	}
	tbl.Fprint(cmd.OutOrStdout())
	return nil
}
