package knowledge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const circularHTML = `<html>
<head><title>Section 80C Investment Limits</title><style>p{color:red}</style></head>
<body>
<h1>Deduction under Section 80C</h1>
<p>The aggregate deduction under section 80C is capped at Rs 1,50,000.</p>
<p>Eligible instruments include PPF, ELSS, and life insurance premium.</p>
<script>console.log("tracking")</script>
</body></html>`

const sipArticle = `# SIP Step-Up Strategies

Increasing your SIP by 10% each year keeps contributions aligned with salary growth.
`

func writeLibrary(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "80c_circular.html"), []byte(circularHTML), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sip_stepup.md"), []byte(sipArticle), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignore.csv"), []byte("a,b"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadDirectory(t *testing.T) {
	lib := NewLibrary()
	loaded, err := lib.LoadDirectory(writeLibrary(t))
	if err != nil {
		t.Fatal(err)
	}
	if loaded != 2 || lib.Count() != 2 {
		t.Fatalf("expected 2 articles, got %d loaded / %d stored", loaded, lib.Count())
	}

	results := lib.Search("80C deduction", 5)
	if len(results) == 0 {
		t.Fatal("expected a hit for 80C")
	}
	hit := results[0]
	if hit.Title != "Section 80C Investment Limits" || hit.Type != SourceHTML {
		t.Errorf("unexpected top hit: %+v", hit)
	}
	if !strings.Contains(hit.Content, "1,50,000") || !strings.Contains(hit.Content, "PPF") {
		t.Errorf("extracted text missing expected content: %q", hit.Content)
	}
	// Script and style bodies must not be indexed.
	if strings.Contains(hit.Content, "tracking") || strings.Contains(hit.Content, "color:red") {
		t.Errorf("script/style text leaked into content: %q", hit.Content)
	}
}

func TestSearchMarkdownTitle(t *testing.T) {
	lib := NewLibrary()
	if _, err := lib.LoadDirectory(writeLibrary(t)); err != nil {
		t.Fatal(err)
	}
	results := lib.Search("step-up", 5)
	if len(results) == 0 || results[0].Title != "SIP Step-Up Strategies" {
		t.Fatalf("markdown title lookup failed: %+v", results)
	}
}

func TestSearchNoHit(t *testing.T) {
	lib := NewLibrary()
	if _, err := lib.LoadDirectory(writeLibrary(t)); err != nil {
		t.Fatal(err)
	}
	if results := lib.Search("cryptocurrency rollercoaster", 5); len(results) != 0 {
		t.Errorf("expected no hits, got %+v", results)
	}
	if results := lib.Search("", 5); results != nil {
		t.Errorf("empty query must return nothing, got %+v", results)
	}
}

func TestLoadDirectoryMissing(t *testing.T) {
	lib := NewLibrary()
	if _, err := lib.LoadDirectory("/does/not/exist"); err == nil {
		t.Error("missing directory must error")
	}
}
