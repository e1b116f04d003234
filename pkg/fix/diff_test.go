package fix_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/gojslint/pkg/fix"
)

func TestGenerateDiffIdentical(t *testing.T) {
	t.Parallel()

	if fd := fix.GenerateDiff("a.js", "x\n", "x\n"); fd != nil {
		t.Errorf("GenerateDiff() = %v, want nil", fd)
	}
}

func TestGenerateDiff(t *testing.T) {
	t.Parallel()

	original := "var a = 1;\nvar foo = [1, 2];\nvar b = 2;\n"
	modified := "var a = 1;\nvar foo = [\n1, 2\n];\nvar b = 2;\n"

	fd := fix.GenerateDiff("src/app.js", original, modified)
	if fd == nil {
		t.Fatal("GenerateDiff() = nil, want a diff")
	}
	if len(fd.Hunks) != 1 {
		t.Fatalf("hunks = %d, want 1", len(fd.Hunks))
	}

	added, deleted := fix.Stat(fd)
	if added != 3 || deleted != 1 {
		t.Errorf("Stat() = (+%d, -%d), want (+3, -1)", added, deleted)
	}

	out, err := fix.Render(fd)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{"--- a/src/app.js", "+++ b/src/app.js", "-var foo = [1, 2];", "+var foo = [", "+];"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q in:\n%s", want, out)
		}
	}
}
