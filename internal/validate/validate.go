// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks the document's body structure against its ToC.
package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/specdex/pkg/types"
)

const defaultMinSimilarity = 0.9

// candidateFloor is the minimum similarity for a chunk heading to be
// considered at all as a fuzzy match candidate.
const candidateFloor = 0.8

// Compare builds a ValidationReport from ToC entries and body heading
// chunks. A ToC entry matches a chunk exactly on its "<id> <title>"
// path, or fuzzily when the best candidate exceeds MinSimilarity.
func Compare(docTitle string, entries []types.TocEntry, chunks []types.HeadingChunk, cfg types.ValidationConfig) types.ValidationReport {
	minSim := cfg.MinSimilarity
	if minSim <= 0 {
		minSim = defaultMinSimilarity
	}

	chunkSet := make(map[string]bool, len(chunks))
	chunkOrder := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if !chunkSet[c.StartHeading] {
			chunkOrder = append(chunkOrder, c.StartHeading)
		}
		chunkSet[c.StartHeading] = true
	}

	tocSet := make(map[string]bool, len(entries))
	tocOrder := make([]string, 0, len(entries))
	for _, e := range entries {
		tocSet[e.FullPath()] = true
		tocOrder = append(tocOrder, e.FullPath())
	}

	var matched, missing []string
	for _, path := range tocOrder {
		if chunkSet[path] {
			matched = append(matched, path)
			continue
		}
		bestRatio := 0.0
		for _, candidate := range chunkOrder {
			if r := Similarity(path, candidate); r > candidateFloor && r > bestRatio {
				bestRatio = r
			}
		}
		if bestRatio > minSim {
			matched = append(matched, path)
		} else {
			missing = append(missing, path)
		}
	}

	var extra []string
	for _, heading := range chunkOrder {
		if !tocSet[heading] {
			extra = append(extra, heading)
		}
	}

	// Ordering check: the body's heading sequence, restricted to ToC
	// members, should follow the ToC order position by position.
	var bodyOrder []string
	for _, heading := range chunkOrder {
		if tocSet[heading] {
			bodyOrder = append(bodyOrder, heading)
		}
	}
	var outOfOrder []types.OrderMismatch
	for i := 0; i < len(tocOrder) && i < len(bodyOrder); i++ {
		if tocOrder[i] != bodyOrder[i] {
			outOfOrder = append(outOfOrder, types.OrderMismatch{
				Expected: tocOrder[i],
				Found:    bodyOrder[i],
				Position: i,
			})
		}
	}

	pct := 0.0
	if len(entries) > 0 {
		pct = float64(len(matched)) / float64(len(entries)) * 100
	}

	return types.ValidationReport{
		DocTitle:        docTitle,
		TocSections:     len(entries),
		ParsedSections:  len(chunks),
		Matched:         matched,
		Missing:         missing,
		Extra:           extra,
		OutOfOrder:      outOfOrder,
		MatchPercentage: pct,
		Timestamp:       time.Now().UTC(),
	}
}

// WriteReport saves the report as YAML.
func WriteReport(path string, report types.ValidationReport) error {
	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
