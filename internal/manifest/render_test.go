package manifest

import (
	"strings"
	"testing"
)

func TestRender_KeepsExampleCode(t *testing.T) {
	header, ok := Extract(copybox)
	if !ok {
		t.Fatal("copybox fixture should carry a header")
	}

	out, err := Render(header.Text(), 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatal("rendered manifest is empty")
	}
	for _, want := range []string{"Copybox", "import", "@/components/copybox"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered manifest missing %q:\n%s", want, out)
		}
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("trailing newlines should be trimmed")
	}
}

func TestRender_NoWrap(t *testing.T) {
	out, err := Render("A plain description.", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "A plain description.") {
		t.Errorf("output = %q", out)
	}
}
