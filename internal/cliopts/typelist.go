package cliopts

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/veloxsearch/velox/internal/ignore"
)

// PrintTypeList renders defs as a two-column table (name, globs) for
// --type-list, the way the teacher's table-shaped CLI output
// (originally meant for bleve index stats) rendered rows.
func PrintTypeList(w io.Writer, defs *ignore.TypeDefs) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Type", "Globs"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, name := range defs.Names() {
		globs := ""
		for i, g := range defs.Globs(name) {
			if i > 0 {
				globs += ", "
			}
			globs += g
		}
		table.Append([]string{name, globs})
	}

	table.Render()
}
