package leadform

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-leadform/pkg/render"
)

func TestRenderPageFreshForm(t *testing.T) {
	out, err := RenderPage(context.Background(), "en", []render.HiddenField{render.CSRFToken("tok")})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	html := string(out)
	for _, want := range []string{"Company name", `name="_csrf" value="tok"`, `data-status="idle"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected page to contain %q", want)
		}
	}
}
