package docs

import (
	"slices"

	md "github.com/nao1215/markdown"

	"github.com/CameronBrooks11/projects-registry/pkg/index"
	"github.com/CameronBrooks11/projects-registry/pkg/projects"
	"github.com/CameronBrooks11/projects-registry/pkg/taxonomy"
)

// uncategorized heads the section of projects without a known type.
const uncategorized = "Uncategorized"

// notesWidth bounds the notes column.
const notesWidth = 120

// Render produces the catalog markdown: a summary table, one section per
// project type in taxonomy order, then the pending candidates.
func Render(docs *index.Documents) ([]byte, error) {
	b := NewMarkdownBuilderBuffer()
	b.H1("Projects Registry").LF()
	b.PlainTextf("Generated %s from %s and %s.",
		docs.Projects.GeneratedAt,
		buildCountText(docs.Projects.Count, "project", "projects"),
		buildCountText(docs.Pending.Count, "pending candidate", "pending candidates"),
	).LF()

	groups := groupByType(docs.Projects.Projects, docs.Projects.Taxonomy)

	b.H2("Summary").LF()
	summary := make([][]string, 0, len(groups))
	for _, g := range groups {
		summary = append(summary, []string{g.name, buildCountText(len(g.projects), "project", "projects")})
	}
	b.Table([]string{"Type", "Projects"}, summary).LF()

	for _, g := range groups {
		b.H2(g.name).LF()
		rows := make([][]string, 0, len(g.projects))
		for _, p := range g.projects {
			rows = append(rows, []string{
				md.Bold(cell(p.Name)) + " (" + md.Code(p.ID) + ")",
				cell(p.StatusName()),
				cell(p.MaturityName()),
				repoLinks(p.URLs()),
				cell(buildTruncatedText(p.Notes, notesWidth)),
			})
		}
		b.Table([]string{"Project", "Status", "Maturity", "Repositories", "Notes"}, rows).LF()
	}

	b.H2("Pending").LF()
	if len(docs.Pending.Pending) == 0 {
		b.Italic("No pending candidates.").LF()
	} else {
		items := make([]string, 0, len(docs.Pending.Pending))
		for _, p := range docs.Pending.Pending {
			items = append(items, pendingItem(p))
		}
		b.BulletList(items...)
	}

	if err := b.Build(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

type group struct {
	name     string
	projects []projects.Project
}

// groupByType buckets projects by type, ordered by the taxonomy's types
// list. Types missing from the taxonomy follow in name order, then
// projects without a type. Empty buckets are dropped.
func groupByType(ps []projects.Project, tax *taxonomy.Taxonomy) []group {
	buckets := map[string][]projects.Project{}
	for _, p := range ps {
		name := p.TypeName()
		if name == "" {
			name = uncategorized
		}
		buckets[name] = append(buckets[name], p)
	}

	var order []string
	if tax != nil {
		order = append(order, tax.Values(taxonomy.Types)...)
	}
	var extra []string
	for name := range buckets {
		if name != uncategorized && !slices.Contains(order, name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	order = append(order, extra...)
	order = append(order, uncategorized)

	groups := make([]group, 0, len(buckets))
	for _, name := range order {
		if list, ok := buckets[name]; ok {
			groups = append(groups, group{name: name, projects: list})
			delete(buckets, name)
		}
	}
	return groups
}

func pendingItem(p projects.Pending) string {
	item := md.Bold(p.Name) + " (" + md.Code(p.ID) + ")"
	if urls := p.URLs(); len(urls) > 0 {
		item += ": " + repoLinks(urls)
	}
	if p.Notes != "" {
		item += " " + buildTruncatedText(p.Notes, notesWidth)
	}
	return item
}
