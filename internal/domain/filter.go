package domain

// FilterBySelection prunes a tree down to the branches that contain at least
// one selected option. Leaves keep the selected options in catalog order
// without duplicates. The result is nil when nothing matches.
//
// The input is never modified and the function keeps no state, so it can be
// called concurrently on a shared catalog.
func FilterBySelection(node *Node, selection Selection) *Node {
	if node == nil || len(selection) == 0 {
		return nil
	}

	switch node.kind {
	case KindLeaf:
		return filterLeaf(node, selection)
	case KindInterior:
		var kept []Entry
		for _, e := range node.children {
			if sub := FilterBySelection(e.Node, selection); sub != nil {
				kept = append(kept, Entry{Label: e.Label, Node: sub})
			}
		}
		if len(kept) == 0 {
			return nil
		}
		return newInteriorUnchecked(kept)
	default:
		return nil
	}
}

func filterLeaf(node *Node, selection Selection) *Node {
	var kept []string
	seen := make(map[string]struct{}, len(node.options))

	for _, opt := range node.options {
		if !selection.Contains(opt) {
			continue
		}
		if _, dup := seen[opt]; dup {
			continue
		}
		seen[opt] = struct{}{}
		kept = append(kept, opt)
	}

	if len(kept) == 0 {
		return nil
	}
	return &Node{kind: KindLeaf, options: kept}
}
