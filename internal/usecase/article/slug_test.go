package article

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello-world"},
		{"  Go 1.25 --- released  ", "go-1-25-released"},
		{"!!!", ""},
		{"MiXeD CaSe", "mixed-case"},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q)=%q want %q", tt.in, got, tt.want)
		}
	}
}

func TestMakeSlug_UniqueSuffix(t *testing.T) {
	a := makeSlug("Same Title")
	b := makeSlug("Same Title")
	if a == b {
		t.Fatalf("slugs for identical titles must differ: %q", a)
	}
	if !strings.HasPrefix(a, "same-title-") {
		t.Fatalf("prefix mismatch: %q", a)
	}
}

func TestMakeSlug_EmptyTitle(t *testing.T) {
	if got := makeSlug("???"); len(got) != 8 {
		t.Fatalf("bare suffix expected for unslugifiable title, got %q", got)
	}
}
