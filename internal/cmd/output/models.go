package output

import (
	"io"
	"strconv"
	"strings"

	"github.com/CameronBrooks11/projects-registry/pkg/projects"
)

// ProjectsToData converts normalized projects to table rows. Wide adds the
// repository count and tags.
func ProjectsToData(ps []projects.Project, wide bool) Data {
	headers := []string{"ID", "Name", "Type", "Status", "Maturity"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft}
	if wide {
		headers = append(headers, "Repos", "Tags")
		align = append(align, AlignRight, AlignLeft)
	}

	rows := make([][]string, 0, len(ps))
	for _, p := range ps {
		row := []string{p.ID, p.Name, dash(p.TypeName()), dash(p.StatusName()), dash(p.MaturityName())}
		if wide {
			row = append(row, strconv.Itoa(len(p.Repos)), dash(strings.Join(p.Tags, ", ")))
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// PendingToData converts pending candidates to table rows.
func PendingToData(ps []projects.Pending) Data {
	rows := make([][]string, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, []string{p.ID, p.Name, dash(strings.Join(p.URLs(), ", "))})
	}
	return Data{Headers: []string{"ID", "Name", "Repos"}, Rows: rows}
}

// FormatProjects writes projects in format. Table formats get the
// tabular projection; JSON and YAML get the full records.
func FormatProjects(w io.Writer, ps []projects.Project, format Format) error {
	var data any = ps
	switch format {
	case FormatTable, FormatWide, "":
		data = ProjectsToData(ps, format == FormatWide)
	}
	return NewFormatter(format).Format(w, data)
}

// FormatPending writes pending candidates in format.
func FormatPending(w io.Writer, ps []projects.Pending, format Format) error {
	var data any = ps
	switch format {
	case FormatTable, FormatWide, "":
		data = PendingToData(ps)
	}
	return NewFormatter(format).Format(w, data)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
