package fuzzypath

import "slices"

// Group collects the raw inputs that share one normalized Path.
type Group struct {
	Path   Path     `json:"path"`
	Inputs []string `json:"inputs"`
}

// GroupInputs normalizes every input and groups the inputs by their Path.
// Groups are sorted by Path; inputs keep their original order within a group.
func GroupInputs(inputs []string) []Group {
	index := make(map[Path]int, len(inputs))
	var groups []Group
	for _, in := range inputs {
		p := New(in)
		i, ok := index[p]
		if !ok {
			i = len(groups)
			index[p] = i
			groups = append(groups, Group{Path: p})
		}
		groups[i].Inputs = append(groups[i].Inputs, in)
	}

	slices.SortFunc(groups, func(a, b Group) int {
		return Compare(a.Path, b.Path)
	})
	return groups
}

// Duplicates returns the groups that have more than one input.
func Duplicates(groups []Group) []Group {
	var dups []Group
	for _, g := range groups {
		if len(g.Inputs) > 1 {
			dups = append(dups, g)
		}
	}
	return dups
}
