package weights

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// ErrEmptyDiff is returned when the supplied diff text is empty or
// whitespace-only. It is the single fatal condition in the pipeline.
var ErrEmptyDiff = errors.New("no diff input provided")

// weightPathRE matches the generated weight file convention
// <top>/<runtime>/.../weights/<pallet>.<ext> and captures the runtime
// and pallet identifiers.
var weightPathRE = regexp.MustCompile(`^[^/]+/([^/]+)/(?:.+/)?weights/([^/]+)\.[A-Za-z0-9_]+$`)

// ExtractChanges parses a unified diff and returns the per-extrinsic
// weight changes for every file matching the runtime weights path
// convention. Files and functions contributing no recognizable weight
// data are dropped silently: this is a filter, not an error.
//
// Output order is deterministic: files in diff order, functions
// alphabetically within a file.
func ExtractChanges(diffText string) ([]Change, error) {
	fileDiffs, err := diff.NewMultiFileDiffReader(strings.NewReader(diffText)).ReadAllFiles()
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	var changes []Change
	for _, fd := range fileDiffs {
		path := targetPath(fd)
		m := weightPathRE.FindStringSubmatch(path)
		if m == nil {
			continue
		}
		runtime, pallet := m[1], m[2]

		fns := segmentFunctions(fd)
		names := make([]string, 0, len(fns))
		for name := range fns {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			oldRec := ParseRecord(fns[name].Removed)
			newRec := ParseRecord(fns[name].Added)
			if !oldRec.hasWeightData() && !newRec.hasWeightData() {
				continue
			}
			changes = append(changes, Change{
				Runtime:  runtime,
				Pallet:   pallet,
				Function: name,
				Old:      oldRec,
				New:      newRec,
			})
		}
	}

	return changes, nil
}

// targetPath returns the post-image path of a file diff, falling back
// to the pre-image path for deletions.
func targetPath(fd *diff.FileDiff) string {
	if fd.NewName != "" && fd.NewName != "/dev/null" {
		return strings.TrimPrefix(fd.NewName, "b/")
	}
	return strings.TrimPrefix(fd.OrigName, "a/")
}

// Analyze runs the full pipeline: parse the diff, extract per-extrinsic
// weight changes, and classify them against threshold. Analyze is a
// pure function of its inputs; repeated runs produce identical results.
func Analyze(diffText string, threshold float64) (*Analysis, error) {
	if strings.TrimSpace(diffText) == "" {
		return nil, ErrEmptyDiff
	}
	changes, err := ExtractChanges(diffText)
	if err != nil {
		return nil, err
	}
	return Classify(changes, threshold), nil
}
