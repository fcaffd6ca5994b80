package format

import (
	"fmt"
	"strings"
)

// DiffOptions controls unified diff rendering.
type DiffOptions struct {
	// Context is the number of unchanged lines shown around each
	// changed region.
	Context int
}

// DefaultDiffOptions returns the usual three lines of context.
func DefaultDiffOptions() DiffOptions {
	return DiffOptions{Context: 3}
}

type editKind int

const (
	editKeep editKind = iota
	editDelete
	editInsert
)

type edit struct {
	kind editKind
	text string
}

// Diff returns a unified diff between two texts, or the empty string
// when they are line-wise equal. name labels both sides of the header.
func Diff(name, before, after string, opts DiffOptions) string {
	if before == after {
		return ""
	}
	edits := diffLines(splitLines(before), splitLines(after))

	changed := false
	for _, e := range edits {
		if e.kind != editKeep {
			changed = true
			break
		}
	}
	if !changed {
		return ""
	}

	var out strings.Builder
	fmt.Fprintf(&out, "--- a/%s\n", name)
	fmt.Fprintf(&out, "+++ b/%s\n", name)

	i := 0
	for i < len(edits) {
		if edits[i].kind == editKeep {
			i++
			continue
		}

		// Grow the cluster while further changes are close enough to
		// share a hunk.
		clusterEnd := i + 1
		gap := 0
		for k := i + 1; k < len(edits); k++ {
			if edits[k].kind == editKeep {
				gap++
				if gap > 2*opts.Context {
					break
				}
			} else {
				gap = 0
				clusterEnd = k + 1
			}
		}

		start := i - opts.Context
		if start < 0 {
			start = 0
		}
		end := clusterEnd + opts.Context
		if end > len(edits) {
			end = len(edits)
		}

		oldBefore, newBefore := 0, 0
		for _, e := range edits[:start] {
			if e.kind != editInsert {
				oldBefore++
			}
			if e.kind != editDelete {
				newBefore++
			}
		}

		var body strings.Builder
		oldCount, newCount := 0, 0
		for _, e := range edits[start:end] {
			switch e.kind {
			case editKeep:
				body.WriteString(" " + e.text + "\n")
				oldCount++
				newCount++
			case editDelete:
				body.WriteString("-" + e.text + "\n")
				oldCount++
			case editInsert:
				body.WriteString("+" + e.text + "\n")
				newCount++
			}
		}

		oldStart := oldBefore + 1
		if oldCount == 0 {
			oldStart = oldBefore
		}
		newStart := newBefore + 1
		if newCount == 0 {
			newStart = newBefore
		}
		fmt.Fprintf(&out, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
		out.WriteString(body.String())

		i = end
	}

	return out.String()
}

// diffLines computes a line-level edit script using a longest common
// subsequence table. Declaration files are small, so the quadratic
// table is not a concern.
func diffLines(a, b []string) []edit {
	n, m := len(a), len(b)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			switch {
			case a[i] == b[j]:
				lcs[i][j] = lcs[i+1][j+1] + 1
			case lcs[i+1][j] >= lcs[i][j+1]:
				lcs[i][j] = lcs[i+1][j]
			default:
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var edits []edit
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			edits = append(edits, edit{editKeep, a[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			edits = append(edits, edit{editDelete, a[i]})
			i++
		default:
			edits = append(edits, edit{editInsert, b[j]})
			j++
		}
	}
	for ; i < n; i++ {
		edits = append(edits, edit{editDelete, a[i]})
	}
	for ; j < m; j++ {
		edits = append(edits, edit{editInsert, b[j]})
	}
	return edits
}

func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
