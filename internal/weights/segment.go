package weights

import (
	"regexp"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// Function declaration patterns used to track which extrinsic a change
// line belongs to. Git puts the enclosing declaration in the hunk
// section heading; declarations inside hunk bodies move the cursor too.
var (
	hunkFnRE = regexp.MustCompile(`fn (\w+)`)
	declFnRE = regexp.MustCompile(`^\s*fn (\w+)\s*\(`)
)

// sideLines accumulates the changed lines of one extrinsic, split by
// diff side.
type sideLines struct {
	Removed []string
	Added   []string
}

// segmentFunctions groups a file diff's change lines by the enclosing
// extrinsic. The "current function" cursor starts unset and is moved by
// hunk section headings and by in-body fn declarations; lines seen
// before any function is identified are discarded. Context lines carry
// no changed weight data and are skipped.
func segmentFunctions(fd *diff.FileDiff) map[string]*sideLines {
	fns := make(map[string]*sideLines)
	current := ""

	for _, hunk := range fd.Hunks {
		if m := hunkFnRE.FindStringSubmatch(hunk.Section); m != nil {
			current = m[1]
		}

		for _, line := range strings.Split(string(hunk.Body), "\n") {
			if line == "" {
				continue
			}

			marker := line[0]
			content := line
			if marker == ' ' || marker == '+' || marker == '-' {
				content = line[1:]
			}

			if m := declFnRE.FindStringSubmatch(content); m != nil {
				current = m[1]
			}
			if current == "" {
				continue
			}

			switch marker {
			case '-':
				fn := sideFor(fns, current)
				fn.Removed = append(fn.Removed, content)
			case '+':
				fn := sideFor(fns, current)
				fn.Added = append(fn.Added, content)
			}
		}
	}

	return fns
}

func sideFor(fns map[string]*sideLines, name string) *sideLines {
	if fn, ok := fns[name]; ok {
		return fn
	}
	fn := &sideLines{}
	fns[name] = fn
	return fn
}
