package search

import "github.com/sha1n/wikitree/internal/domain"

// Flatten returns every node of the tree in pre-order.
func Flatten(nodes []domain.IndexNode) []domain.IndexNode {
	var out []domain.IndexNode
	var walk func([]domain.IndexNode)
	walk = func(nodes []domain.IndexNode) {
		for _, n := range nodes {
			out = append(out, n)
			walk(n.Children)
		}
	}
	walk(nodes)
	return out
}

// FindNode looks a node up by id.
func FindNode(idx *domain.Index, id string) (domain.IndexNode, bool) {
	for _, n := range Flatten(idx.Nodes) {
		if n.ID == id {
			return n, true
		}
	}
	return domain.IndexNode{}, false
}
