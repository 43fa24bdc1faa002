package history

import (
	"path/filepath"
	"strings"
)

// Labels derives display labels for a candidate list. The label for each path
// is its descriptor stem (base name minus the descriptor extension). When two
// candidates share a stem, their labels are disambiguated by appending the
// parent path components, nearest first.
//
// The returned slice is positionally aligned with paths.
func Labels(paths []string) []string {
	type entry struct {
		stem    string
		parents []string
	}

	entries := make([]entry, len(paths))
	counts := make(map[string]int, len(paths))

	for i, p := range paths {
		components := strings.Split(filepath.Clean(p), string(filepath.Separator))

		// Reverse so the file name comes first and parents follow,
		// nearest first. Drop the empty leading component of absolute
		// paths.
		reversed := make([]string, 0, len(components))
		for j := len(components) - 1; j >= 0; j-- {
			if components[j] == "" {
				continue
			}
			reversed = append(reversed, components[j])
		}

		if len(reversed) == 0 {
			entries[i] = entry{stem: p}
			counts[p]++
			continue
		}

		stem := strings.TrimSuffix(reversed[0], DescriptorExt)
		entries[i] = entry{stem: stem, parents: reversed[1:]}
		counts[stem]++
	}

	sep := " " + string(filepath.Separator) + " "
	labels := make([]string, len(paths))
	for i, e := range entries {
		if counts[e.stem] == 1 {
			labels[i] = e.stem
		} else {
			labels[i] = strings.Join(append([]string{e.stem}, e.parents...), sep)
		}
	}
	return labels
}
