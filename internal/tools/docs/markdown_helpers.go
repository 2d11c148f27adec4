package docs

import (
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"
)

// buildCountText creates formatted count text (e.g., "5 projects")
func buildCountText(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// buildTruncatedText truncates text with ellipsis
func buildTruncatedText(text string, maxLen int) string {
	if len([]rune(text)) > maxLen && maxLen > 3 {
		return string([]rune(text)[:maxLen-3]) + "..."
	}
	return text
}

// cell escapes table separators and line breaks inside a table cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

// repoLinks renders each repository as a link labelled by its host path.
func repoLinks(urls []string) string {
	if len(urls) == 0 {
		return "-"
	}
	links := make([]string, 0, len(urls))
	for _, u := range urls {
		label := strings.TrimPrefix(strings.TrimPrefix(u, "https://"), "http://")
		links = append(links, md.Link(label, u))
	}
	return strings.Join(links, "<br>")
}
