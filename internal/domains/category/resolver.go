package category

import "sort"

// AllCategories is the selection sentinel that matches every product.
const AllCategories = "All"

// ============================================================
// SELECTION
// ============================================================

// Selection is the closed set of category ids a filter admits.
// The zero value admits nothing.
type Selection struct {
	all bool
	ids map[int64]struct{}
}

// MatchAll returns a selection that admits every category.
func MatchAll() Selection {
	return Selection{all: true}
}

func (s Selection) All() bool {
	return s.all
}

// Empty reports whether the selection admits no category at all.
func (s Selection) Empty() bool {
	return !s.all && len(s.ids) == 0
}

func (s Selection) Contains(id int64) bool {
	if s.all {
		return true
	}
	_, ok := s.ids[id]
	return ok
}

// IDs returns the admitted ids in ascending order; nil for a match-all selection.
func (s Selection) IDs() []int64 {
	if s.all {
		return nil
	}
	ids := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ============================================================
// RESOLVER
// ============================================================

// Resolve maps a category name to the node and all of its descendants.
// The first exact match in pre-order wins when names repeat. An unknown name
// yields an empty selection.
func Resolve(name string, tree []*Node) Selection {
	if name == AllCategories {
		return MatchAll()
	}
	node := Find(tree, func(n *Node) bool { return n.Name == name })
	return subtree(node)
}

// ResolveID is Resolve keyed by category id.
func ResolveID(id int64, tree []*Node) Selection {
	node := Find(tree, func(n *Node) bool { return n.ID == id })
	return subtree(node)
}

func subtree(node *Node) Selection {
	if node == nil {
		return Selection{}
	}
	ids := make(map[int64]struct{})
	Walk([]*Node{node}, func(n *Node, _ int) bool {
		ids[n.ID] = struct{}{}
		return true
	})
	return Selection{ids: ids}
}
