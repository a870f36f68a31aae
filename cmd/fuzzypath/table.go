package main

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	fuzzypath "github.com/baditaflorin/go_fuzzypath"
)

// renderGroups draws one row per group: the normalized path, how many inputs
// produced it and the inputs themselves, one per line.
func renderGroups(groups []fuzzypath.Group) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Options.SeparateRows = true

	tw.AppendHeader(table.Row{"Path", "Count", "Inputs"})
	for _, g := range groups {
		tw.AppendRow(table.Row{g.Path.String(), strconv.Itoa(len(g.Inputs)), strings.Join(g.Inputs, "\n")})
	}
	tw.AppendFooter(table.Row{"", strconv.Itoa(countInputs(groups)), ""})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignLeft},
	})

	return tw.Render()
}

func countInputs(groups []fuzzypath.Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Inputs)
	}
	return n
}
