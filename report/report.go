package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"danawa-crawler/internal/types"
)

// Supported output formats
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatTable = "table"
)

// ErrUnknownFormat is returned for a format other than text, json or table
var ErrUnknownFormat = errors.New("unknown report format")

// Formats lists the accepted format names
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatTable}
}

// ValidFormat reports whether format can be rendered
func ValidFormat(format string) bool {
	switch format {
	case FormatText, FormatJSON, FormatTable:
		return true
	}
	return false
}

// Text renders one "Name: ..., Power: ..., Price: ..." line per product
func Text(products []types.ProductInfo) string {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("Name: %s, Power: %s, Price: %d", p.Name, FormatPower(p), p.Price))
	}
	return strings.Join(lines, "\n")
}

// FormatPower prints an extracted power with at least one decimal place
// ("50.0", "123.4") and a missing one as a bare "0".
func FormatPower(p types.ProductInfo) string {
	if !p.PowerFound {
		return "0"
	}
	s := strconv.FormatFloat(p.Power, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Table renders the products as a terminal table
func Table(products []types.ProductInfo) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Name", "Power", "Price"})
	for i, p := range products {
		t.AppendRow(table.Row{i + 1, p.Name, FormatPower(p), p.Price})
	}
	t.SetStyle(table.StyleRounded)
	return t.Render()
}

// Write renders result in the given format to w
func Write(w io.Writer, result *types.CategoryResult, format string) error {
	var out string

	switch format {
	case FormatText, "":
		out = Text(result.Products)
	case FormatTable:
		out = Table(result.Products)
	case FormatJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		out = string(data)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if out != "" {
		out += "\n"
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Categories renders the category registry as a table
func Categories(categories []types.Category) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Code", "Name", "Power unit"})
	for _, c := range categories {
		unit := c.PowerUnit
		if !c.HasPower {
			unit = "-"
		}
		t.AppendRow(table.Row{c.Code, c.Name, unit})
	}
	t.SetStyle(table.StyleRounded)
	return t.Render()
}
