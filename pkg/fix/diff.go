package fix

import (
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

type opKind byte

const (
	opEqual  opKind = ' '
	opDelete opKind = '-'
	opInsert opKind = '+'
)

type lineOp struct {
	kind opKind
	text string
	orig int // 0-based index in the original, for equal and delete
	mod  int // 0-based index in the modified, for equal and insert
}

// GenerateDiff builds a unified diff between original and modified text.
// Returns nil when the texts are identical.
func GenerateDiff(path, original, modified string) *diff.FileDiff {
	if original == modified {
		return nil
	}

	ops := diffLines(splitLines(original), splitLines(modified))
	hunks := groupHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	return &diff.FileDiff{
		OrigName: "a/" + path,
		NewName:  "b/" + path,
		Hunks:    hunks,
	}
}

// Render prints a file diff in unified format.
func Render(fd *diff.FileDiff) (string, error) {
	if fd == nil {
		return "", nil
	}
	out, err := diff.PrintFileDiff(fd)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Stat returns the number of added and deleted lines.
func Stat(fd *diff.FileDiff) (int, int) {
	if fd == nil {
		return 0, 0
	}
	st := fd.Stat()
	return int(st.Added + st.Changed), int(st.Deleted + st.Changed)
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// diffLines computes a line edit script from the longest common subsequence.
func diffLines(orig, mod []string) []lineOp {
	n, m := len(orig), len(mod)
	table := make([][]int, n+1)
	for i := range table {
		table[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if orig[i] == mod[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else {
				table[i][j] = max(table[i+1][j], table[i][j+1])
			}
		}
	}

	ops := make([]lineOp, 0, n+m)
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && orig[i] == mod[j]:
			ops = append(ops, lineOp{kind: opEqual, text: orig[i], orig: i, mod: j})
			i++
			j++
		case j < m && (i == n || table[i][j+1] >= table[i+1][j]):
			ops = append(ops, lineOp{kind: opInsert, text: mod[j], orig: i, mod: j})
			j++
		default:
			ops = append(ops, lineOp{kind: opDelete, text: orig[i], orig: i, mod: j})
			i++
		}
	}
	return ops
}

// groupHunks splits the edit script into hunks with surrounding context.
func groupHunks(ops []lineOp) []*diff.Hunk {
	var hunks []*diff.Hunk
	idx := 0
	for idx < len(ops) {
		for idx < len(ops) && ops[idx].kind == opEqual {
			idx++
		}
		if idx == len(ops) {
			break
		}

		start := max(idx-contextLines, 0)
		end := idx
		for end < len(ops) {
			if ops[end].kind != opEqual {
				end++
				continue
			}
			run := end
			for run < len(ops) && ops[run].kind == opEqual {
				run++
			}
			if run == len(ops) || run-end > 2*contextLines {
				end = min(end+contextLines, len(ops))
				break
			}
			end = run
		}

		hunks = append(hunks, buildHunk(ops[start:end]))
		idx = end
	}
	return hunks
}

func buildHunk(ops []lineOp) *diff.Hunk {
	hunk := &diff.Hunk{
		OrigStartLine: int32(ops[0].orig) + 1,
		NewStartLine:  int32(ops[0].mod) + 1,
	}
	var body strings.Builder
	for _, op := range ops {
		body.WriteByte(byte(op.kind))
		body.WriteString(op.text)
		if !strings.HasSuffix(op.text, "\n") {
			body.WriteString("\n\\ No newline at end of file\n")
		}
		switch op.kind {
		case opEqual:
			hunk.OrigLines++
			hunk.NewLines++
		case opDelete:
			hunk.OrigLines++
		case opInsert:
			hunk.NewLines++
		}
	}
	if hunk.OrigLines == 0 {
		hunk.OrigStartLine--
	}
	if hunk.NewLines == 0 {
		hunk.NewStartLine--
	}
	hunk.Body = []byte(body.String())
	return hunk
}
