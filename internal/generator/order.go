package generator

import "github.com/cockroachdb/errors"

// orderMembers computes the emission order for one namespace's generated
// members:
//
//  1. every type-alias member precedes every class/enum member
//  2. a class appears strictly after its recorded direct superclass
//  3. the module-root member appears last among class/enum members
//  4. subject to 1-3, original declaration order breaks ties
//
// The class/enum portion is an explicit dependency graph (superclass ->
// subclass edges plus a synthetic edge from every other member to the module
// root) sorted topologically. A cycle means the reflected input is malformed
// and aborts via an assertion error rather than silently reordering.
func orderMembers(members []*generatedMember) ([]*generatedMember, error) {
	ordered := make([]*generatedMember, 0, len(members))
	var rest []*generatedMember
	for _, m := range members {
		if m.Kind == KindTypeAlias {
			ordered = append(ordered, m)
		} else {
			rest = append(rest, m)
		}
	}

	inGraph := make(map[*generatedMember]bool, len(rest))
	for _, m := range rest {
		inGraph[m] = true
	}
	var root *generatedMember
	for _, m := range rest {
		if m.IsModuleRoot {
			root = m
		}
	}
	indegree := make(map[*generatedMember]int, len(rest))
	successors := make(map[*generatedMember][]*generatedMember, len(rest))
	for _, m := range rest {
		if m.Superclass != nil && inGraph[m.Superclass] {
			successors[m.Superclass] = append(successors[m.Superclass], m)
			indegree[m]++
		}
		if root != nil && m != root {
			successors[m] = append(successors[m], root)
			indegree[root]++
		}
	}

	emitted := make(map[*generatedMember]bool, len(rest))
	for range rest {
		// pick the ready member with the smallest original index; member
		// counts are small enough that the quadratic scan stays cheap
		var pick *generatedMember
		for _, m := range rest {
			if emitted[m] || indegree[m] != 0 {
				continue
			}
			if pick == nil || m.index < pick.index {
				pick = m
			}
		}
		if pick == nil {
			return nil, errors.AssertionFailedf("dependency cycle among generated members")
		}
		emitted[pick] = true
		ordered = append(ordered, pick)
		for _, s := range successors[pick] {
			indegree[s]--
		}
	}
	return ordered, nil
}
