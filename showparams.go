// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cliextra

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/matt-FFFFFF/cliextra/internal/color"
)

var showParamsHeaders = []string{"PARAMETER", "KIND", "DEFAULT", "VALUE", "SOURCE"}

// ParamRows returns one row per configurable parameter, in declaration order:
// dotted path, kind, default, current value and source. Parameters of
// commands that were not invoked have an empty source.
func ParamRows(st *State) [][]string {
	rows := make([][]string, 0, len(st.Tree.Params))

	for _, prm := range st.Tree.Params {
		if prm.Excluded {
			continue
		}

		key := prm.Path.String()

		source := ""
		if s, ok := st.Sources[key]; ok {
			source = s.String()
		}

		rows = append(rows, []string{
			key,
			prm.Kind.String(),
			formatValue(prm.Default),
			formatValue(prm.Value()),
			source,
		})
	}

	return rows
}

// ShowParams writes the parameter table to w. Borders and styling are only
// used when w is a terminal.
func ShowParams(w io.Writer, st *State) error {
	t := table.New().
		Headers(showParamsHeaders...).
		Rows(ParamRows(st)...)

	if color.Supported(w) {
		header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
		cell := lipgloss.NewStyle().Padding(0, 1)

		t = t.Border(lipgloss.RoundedBorder()).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return header
				}

				return cell
			})
	} else {
		cell := lipgloss.NewStyle().PaddingRight(2)

		t = t.Border(lipgloss.HiddenBorder()).
			BorderTop(false).
			BorderBottom(false).
			BorderLeft(false).
			BorderRight(false).
			BorderColumn(false).
			BorderHeader(false).
			StyleFunc(func(_, _ int) lipgloss.Style {
				return cell
			})
	}

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}

	if st.Loaded() {
		_, err := fmt.Fprintf(w, "\nconfiguration: %s (%s)\n", st.Location, st.Format)
		return err
	}

	return nil
}
