package questionnaire

import (
	"fmt"
	"sort"
)

// VersionV1 is the current questionnaire version.
const VersionV1 = "v1"

var sets = map[string]*Set{
	VersionV1: questionsV1,
}

// GetSet returns the question set for a version tag.
func GetSet(version string) (*Set, error) {
	set, ok := sets[version]
	if !ok {
		return nil, fmt.Errorf("unknown questionnaire version %q", version)
	}
	return set, nil
}

// Versions returns all known version tags, sorted.
func Versions() []string {
	out := make([]string, 0, len(sets))
	for v := range sets {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
