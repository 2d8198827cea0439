package surface

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/muurk/tablekit/internal/table"
)

// Filter returns new contents holding only the items whose titles fuzzy-match
// query, in their original order. Sections left empty are dropped. An empty
// query returns c itself.
func Filter(c *table.Contents, query string) *table.Contents {
	query = strings.TrimSpace(query)
	if c == nil || query == "" {
		return c
	}

	filtered := table.NewContents(c.Title)
	for _, section := range c.Sections() {
		items := section.Items()
		titles := make([]string, len(items))
		for i, it := range items {
			titles[i] = it.Title()
		}

		matches := fuzzy.Find(query, titles)
		if len(matches) == 0 {
			continue
		}
		keep := make([]bool, len(items))
		for _, m := range matches {
			keep[m.Index] = true
		}

		out := table.NewSection(section.HeaderTitle, section.FooterTitle)
		for i, it := range items {
			if keep[i] {
				out.Add(it)
			}
		}
		filtered.AddSection(out)
	}
	return filtered
}
