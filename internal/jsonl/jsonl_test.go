// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jsonl

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/specdex/pkg/types"
)

func sampleRecords() []types.SectionRecord {
	return []types.SectionRecord{
		{
			DocTitle:  "usb-pd",
			SectionID: "1.1",
			Title:     "Overview",
			StartPage: 5,
			EndPage:   6,
			Text:      "Overview body text\nwith a second line",
		},
		{
			DocTitle:  "usb-pd",
			SectionID: "2",
			Title:     "Protocol",
			StartPage: 7,
			EndPage:   10,
			Text:      "Protocol body with \"quotes\" and unicode: µUSB",
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usb-pd.jsonl")
	want := sampleRecords()

	if err := Write(path, want); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestWriteOneRecordPerLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	if err := Write(path, sampleRecords()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.HasSuffix(text, "\n") {
		t.Error("output not newline-terminated")
	}
	if got := strings.Count(text, "\n"); got != 2 {
		t.Errorf("expected 2 lines, got %d", got)
	}
}

func TestWriteCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "out.jsonl")
	if err := Write(path, sampleRecords()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestWriteFailsOnUnwritablePath(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	// The parent "directory" is a regular file.
	if err := Write(filepath.Join(blocker, "out.jsonl"), sampleRecords()); err == nil {
		t.Error("expected error writing under a regular file")
	}
}

func TestReadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse.jsonl")
	content := `{"doc_title":"d","section_id":"1","title":"A","start_page":1,"end_page":1,"text":"a"}

{"doc_title":"d","section_id":"2","title":"B","start_page":2,"end_page":2,"text":"b"}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}
}

func TestReadFailsOnMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	if err := os.WriteFile(path, []byte("{not json}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); err == nil {
		t.Error("expected error for malformed line")
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "missing.jsonl")); err == nil {
		t.Error("expected error for missing file")
	}
}
