// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// QueryOptions holds parameters for section index queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over section text.
	Query string

	// DocID filters by document.
	DocID string

	// SectionID filters by dotted section number.
	SectionID string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.DocID == "" && q.SectionID == ""
}

// QueryResult is a stored section with its document metadata.
type QueryResult struct {
	ID        string `json:"id" yaml:"id"`
	DocID     string `json:"doc_id" yaml:"doc_id"`
	DocTitle  string `json:"doc_title" yaml:"doc_title"`
	SectionID string `json:"section_id" yaml:"section_id"`
	Title     string `json:"title" yaml:"title"`
	StartPage int    `json:"start_page" yaml:"start_page"`
	EndPage   int    `json:"end_page" yaml:"end_page"`
	Text      string `json:"text" yaml:"text"`
}

// Retrieve queries the section index with optional full-text search and
// structured filters. Full-text results are ranked by relevance;
// filter-only results are ordered by document then section.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT sec.id, sec.doc_id, d.title, sec.section_id, sec.title,
				sec.start_page, sec.end_page, sec.text
			FROM sections_fts
			JOIN sections sec ON sec.rowid = sections_fts.rowid
			LEFT JOIN documents d ON sec.doc_id = d.id
			WHERE sections_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT sec.id, sec.doc_id, d.title, sec.section_id, sec.title,
				sec.start_page, sec.end_page, sec.text
			FROM sections sec
			LEFT JOIN documents d ON sec.doc_id = d.id
			WHERE 1=1`)
	}

	if opts.DocID != "" {
		qb.WriteString(` AND sec.doc_id = ?`)
		args = append(args, opts.DocID)
	}
	if opts.SectionID != "" {
		qb.WriteString(` AND sec.section_id = ?`)
		args = append(args, opts.SectionID)
	}

	if useFTS {
		qb.WriteString(` ORDER BY sections_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY sec.doc_id, sec.start_page, sec.section_id`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying section index: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr       QueryResult
			docTitle sql.NullString
		)
		if err := rows.Scan(
			&qr.ID, &qr.DocID, &docTitle, &qr.SectionID, &qr.Title,
			&qr.StartPage, &qr.EndPage, &qr.Text,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if docTitle.Valid {
			qr.DocTitle = docTitle.String
		}
		results = append(results, qr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return results, nil
}
