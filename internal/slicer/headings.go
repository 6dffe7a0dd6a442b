// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package slicer

import (
	"regexp"
	"strings"

	"github.com/pdiddy/specdex/internal/loader"
	"github.com/pdiddy/specdex/pkg/types"
)

// headingPattern matches body lines that open a numbered section, e.g.
// "2.1.3 Power Negotiation Basics".
var headingPattern = regexp.MustCompile(`^\d+(\.\d+)*\s+.+$`)

type openHeading struct {
	heading string
	level   int
}

// ChunkByHeadings walks the document line by line and starts a new
// chunk at each numbered heading. A stack of open headings yields the
// breadcrumb SectionPath; body lines mentioning tables or figures are
// captured for the validation report.
func ChunkByHeadings(doc *loader.Document) []types.HeadingChunk {
	var (
		chunks  []types.HeadingChunk
		current *types.HeadingChunk
		stack   []openHeading
	)

	for pageNum := 1; pageNum <= doc.PageCount(); pageNum++ {
		text := doc.Page(pageNum)
		if text == "" {
			continue
		}

		for _, raw := range strings.Split(text, "\n") {
			line := strings.TrimSpace(raw)
			if headingPattern.MatchString(line) {
				if current != nil {
					current.EndPage = pageNum - 1
					if current.EndPage < current.StartPage {
						current.EndPage = current.StartPage
					}
					chunks = append(chunks, *current)
				}

				level := strings.Count(strings.Fields(line)[0], ".") + 1
				for len(stack) > 0 && stack[len(stack)-1].level >= level {
					stack = stack[:len(stack)-1]
				}
				stack = append(stack, openHeading{heading: line, level: level})

				path := make([]string, len(stack))
				for i, h := range stack {
					path[i] = h.heading
				}

				current = &types.HeadingChunk{
					SectionPath:  strings.Join(path, " > "),
					StartHeading: line,
					StartPage:    pageNum,
					EndPage:      pageNum,
				}
				continue
			}

			if current != nil {
				current.Content += raw + "\n"
				if strings.Contains(raw, "Table") {
					current.Tables = append(current.Tables, line)
				}
				if strings.Contains(raw, "Figure") {
					current.Figures = append(current.Figures, line)
				}
			}
		}
	}

	if current != nil {
		current.EndPage = doc.PageCount()
		chunks = append(chunks, *current)
	}
	return chunks
}
