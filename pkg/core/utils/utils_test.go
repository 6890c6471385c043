package utils

import (
	"strings"
	"testing"
)

func TestDecodeLenient(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"strict json", `{"income": 1200000, "regime": "NEW"}`},
		{"single quotes", `{'income': 1200000, 'regime': 'NEW'}`},
		{"trailing comma", `{"income": 1200000, "regime": "NEW",}`},
		{"markdown fence", "```json\n{\"income\": 1200000, \"regime\": \"NEW\"}\n```"},
		{"hjson unquoted keys", "{\n  income: 1200000\n  regime: NEW\n}"},
	}
	for _, c := range cases {
		var out struct {
			Income float64 `json:"income"`
			Regime string  `json:"regime"`
		}
		if err := DecodeLenient(c.in, &out); err != nil {
			t.Errorf("%s: %v", c.name, err)
			continue
		}
		if out.Income != 1200000 || out.Regime != "NEW" {
			t.Errorf("%s: decoded %+v", c.name, out)
		}
	}
}

func TestDecodeLenientRejectsGarbage(t *testing.T) {
	var out map[string]interface{}
	if err := DecodeLenient(`]]][[`, &out); err == nil {
		t.Error("expected failure for unparseable input")
	}
}

func TestCleanMarkdown(t *testing.T) {
	in := "```markdown\n# Tax Summary\n\nYour tax is lower under the New regime.\n```"
	out := CleanMarkdown(in)
	if strings.Contains(out, "```") || !strings.HasPrefix(out, "# Tax Summary") {
		t.Errorf("fence not stripped: %q", out)
	}
}

func TestRenderMarkdownTable(t *testing.T) {
	in := "| Regime | Tax |\n|---|---|\n| OLD | 296400 |\n| NEW | 215800 |"
	html, err := RenderMarkdown(in)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "<table>") || !strings.Contains(html, "296400") {
		t.Errorf("table not rendered: %q", html)
	}
}
