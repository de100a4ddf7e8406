package markdown_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-leadform/pkg/markdown"
	"github.com/goliatone/go-leadform/pkg/testsupport"
)

func TestRenderBold(t *testing.T) {
	got, err := markdown.New().Render("**hi**")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "<p><strong>hi</strong></p>" {
		t.Fatalf("unexpected html %q", got)
	}
}

func TestRenderEmpty(t *testing.T) {
	got, err := markdown.New().Render("  \n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestRenderGFM(t *testing.T) {
	src := strings.Join([]string{
		"| Área | Solução |",
		"| :--- | ---: |",
		"| Vendas | ~~planilhas~~ CRM |",
		"",
		"- [x] diagnóstico",
		"- [ ] piloto",
		"",
		"Veja https://neroai.com.br",
		"",
		"```go",
		"fmt.Println(1)",
		"```",
	}, "\n")

	got, err := markdown.New().Render(src)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		"<table>",
		"<del>planilhas</del>",
		`type="checkbox"`,
		`<a href="https://neroai.com.br"`,
		`<code class="language-go">`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestRenderStripsUnsafeHTML(t *testing.T) {
	src := "ok <script>alert(1)</script> <a href=\"javascript:alert(1)\">x</a> <img src=x onerror=alert(1)>"

	got, err := markdown.New().Render(src)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, banned := range []string{"<script", "javascript:", "onerror"} {
		if strings.Contains(got, banned) {
			t.Fatalf("unsafe markup %q survived:\n%s", banned, got)
		}
	}
	if !strings.Contains(got, "ok") {
		t.Fatalf("expected text to survive, got %q", got)
	}
}

func TestSanitizeKeepsCodeLanguageOnly(t *testing.T) {
	got := markdown.Sanitize(`<code class="language-go">x</code><code class="evil">y</code>`)
	if got != `<code class="language-go">x</code><code>y</code>` {
		t.Fatalf("unexpected sanitize output %q", got)
	}
}

func TestRenderGolden(t *testing.T) {
	input := testsupport.MustReadGolden(t, filepath.Join("testdata", "response.md"))
	got, err := markdown.New().Render(string(input))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	goldenPath := filepath.Join("testdata", "response.golden.html")
	if testsupport.WriteMaybeGolden(t, goldenPath, []byte(got+"\n")) {
		return
	}
	want := strings.TrimSpace(string(testsupport.MustReadGolden(t, goldenPath)))
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("rendered html mismatch (-want +got):\n%s", diff)
	}
}
