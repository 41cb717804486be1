package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"pylift/internal/symtab"
)

// sortedEntries orders entries by scope id, then name, for stable dumps.
func sortedEntries(table *symtab.Table) []*symtab.Entry {
	entries := table.AllEntries()
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Scope != entries[j].Scope {
			return entries[i].Scope < entries[j].Scope
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// FormatSymbolsPretty writes the identifier table as an aligned listing,
// one entry per line, followed by table statistics.
func FormatSymbolsPretty(w io.Writer, table *symtab.Table) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCOPE\tNAME\tKIND\tTYPE\tLINE:COL")
	for _, e := range sortedEntries(table) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d:%d\n",
			e.Scope, e.Name, e.Kind, e.Type, e.Pos.Line, e.Pos.Col)
	}
	_ = tw.Flush()

	stats := table.Statistics()
	fmt.Fprintf(w, "\n%d entries, capacity %d, load %.2f, %d collisions\n",
		stats.Count, stats.Capacity, stats.LoadFactor, stats.Collisions)
}

type SymbolOutput struct {
	Scope string `json:"scope"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Type  string `json:"type"`
	Line  uint32 `json:"line"`
	Col   uint32 `json:"col"`
}

// FormatSymbolsJSON writes the identifier table as an indented JSON array.
func FormatSymbolsJSON(w io.Writer, table *symtab.Table) error {
	entries := sortedEntries(table)
	output := make([]SymbolOutput, 0, len(entries))
	for _, e := range entries {
		output = append(output, SymbolOutput{
			Scope: e.Scope,
			Name:  e.Name,
			Kind:  e.Kind.String(),
			Type:  e.Type,
			Line:  e.Pos.Line,
			Col:   e.Pos.Col,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
