package category

import "sort"

// ============================================================
// TREE BUILDER
// ============================================================

// BuildTree turns a flat category list into an ordered forest.
//
//   - parent_id pointing outside the input → the node becomes a root
//   - duplicate ids → the first record wins
//   - a cycle in parent_id (including a self reference) → the member of the cycle
//     that appears first in the input becomes a root
//
// Every unique id appears exactly once in the result.
func BuildTree(categories []Category) []*Node {
	nodes := make(map[int64]*Node, len(categories))
	order := make([]int64, 0, len(categories))
	position := make(map[int64]int, len(categories))

	for _, c := range categories {
		if _, dup := nodes[c.ID]; dup {
			continue
		}
		nodes[c.ID] = &Node{Category: c, Subcategories: []*Node{}}
		position[c.ID] = len(order)
		order = append(order, c.ID)
	}

	parents := make(map[int64]int64, len(order))
	for _, id := range order {
		pid := nodes[id].ParentID
		if pid == nil {
			continue
		}
		if _, ok := nodes[*pid]; ok {
			parents[id] = *pid
		}
	}

	breakCycles(order, position, parents)

	roots := make([]*Node, 0)
	for _, id := range order {
		node := nodes[id]
		if pid, ok := parents[id]; ok {
			parent := nodes[pid]
			parent.Subcategories = append(parent.Subcategories, node)
			continue
		}
		roots = append(roots, node)
	}

	sortNodes(roots)
	for _, id := range order {
		sortNodes(nodes[id].Subcategories)
	}

	return roots
}

// breakCycles removes one parent link from every cycle in parents.
func breakCycles(order []int64, position map[int64]int, parents map[int64]int64) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[int64]int, len(order))

	for _, start := range order {
		var path []int64
		cur := start
		for {
			s := state[cur]
			if s == done {
				break
			}
			if s == visiting {
				cycle := path[indexOf(path, cur):]
				first := cycle[0]
				for _, id := range cycle[1:] {
					if position[id] < position[first] {
						first = id
					}
				}
				delete(parents, first)
				break
			}

			state[cur] = visiting
			path = append(path, cur)

			pid, ok := parents[cur]
			if !ok {
				break
			}
			cur = pid
		}

		for _, id := range path {
			state[id] = done
		}
	}
}

func indexOf(ids []int64, target int64) int {
	for i, id := range ids {
		if id == target {
			return i
		}
	}
	return 0
}

// sortNodes orders siblings by sort_order; the sort is stable so equal
// sort_order keeps input order.
func sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].SortOrder < nodes[j].SortOrder
	})
}

// ============================================================
// TRAVERSAL
// ============================================================

// Walk visits nodes in pre-order. visit returns false to stop the walk.
// The walk is iterative and visits each node once, so deep chains are walked
// in full and a hand-built cyclic tree still terminates.
func Walk(roots []*Node, visit func(node *Node, depth int) bool) {
	type frame struct {
		node  *Node
		depth int
	}

	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: roots[i], depth: 0})
	}
	seen := make(map[*Node]struct{})

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.node == nil {
			continue
		}
		if _, ok := seen[top.node]; ok {
			continue
		}
		seen[top.node] = struct{}{}

		if !visit(top.node, top.depth) {
			return
		}

		children := top.node.Subcategories
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: children[i], depth: top.depth + 1})
		}
	}
}

// Find returns the first node in pre-order that matches, or nil.
func Find(roots []*Node, match func(node *Node) bool) *Node {
	var found *Node
	Walk(roots, func(node *Node, _ int) bool {
		if match(node) {
			found = node
			return false
		}
		return true
	})
	return found
}

// Flatten lists the forest in pre-order.
func Flatten(roots []*Node) []*Node {
	out := make([]*Node, 0)
	Walk(roots, func(node *Node, _ int) bool {
		out = append(out, node)
		return true
	})
	return out
}

// Breadcrumb returns the path root → ... → node with the given id, or nil.
func Breadcrumb(roots []*Node, id int64) []*Node {
	var path []*Node
	Walk(roots, func(node *Node, depth int) bool {
		path = append(path[:depth], node)
		return node.ID != id
	})
	if len(path) == 0 || path[len(path)-1].ID != id {
		return nil
	}
	return path
}
