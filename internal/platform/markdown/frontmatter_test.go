package markdown_test

import (
	"strings"
	"testing"

	"innertone/internal/platform/markdown"
)

type meta struct {
	Kind   string `yaml:"kind"`
	Cycles int    `yaml:"cycles"`
}

func TestRenderThenSplit(t *testing.T) {
	t.Parallel()
	doc, err := markdown.Render(meta{Kind: "breathing", Cycles: 4}, "# Breathing\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(doc, "---\nkind: breathing\n") {
		t.Fatalf("unexpected document:\n%s", doc)
	}
	var got meta
	body, err := markdown.Split(doc, &got)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if got.Kind != "breathing" || got.Cycles != 4 || body != "\n# Breathing\n" {
		t.Fatalf("unexpected split %+v %q", got, body)
	}
}

func TestSplitWithoutFrontmatter(t *testing.T) {
	t.Parallel()
	var got meta
	body, err := markdown.Split("plain note", &got)
	if err != nil || body != "plain note" || got.Kind != "" {
		t.Fatalf("unexpected result %q %+v %v", body, got, err)
	}
	if _, err := markdown.Split("---\nkind: x\n", &got); err == nil {
		t.Fatalf("unterminated frontmatter must fail")
	}
}
