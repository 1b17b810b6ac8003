package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tree := BuildTree([]Category{
		{ID: 1, Name: "iPhone"},
		{ID: 2, Name: "iPhone 16", ParentID: ptr(1)},
	})

	tests := []struct {
		name string
		in   string
		want []int64
	}{
		{name: "parent includes descendants", in: "iPhone", want: []int64{1, 2}},
		{name: "leaf", in: "iPhone 16", want: []int64{2}},
		{name: "unknown name fails closed", in: "Mac", want: []int64{}},
		{name: "match is exact", in: "iphone", want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Resolve(tt.in, tree)
			assert.False(t, sel.All())
			assert.Equal(t, tt.want, sel.IDs())
		})
	}
}

func TestResolve_AllMatchesEverything(t *testing.T) {
	sel := Resolve(AllCategories, nil)

	assert.True(t, sel.All())
	assert.False(t, sel.Empty())
	assert.True(t, sel.Contains(12345))
	assert.Nil(t, sel.IDs())
}

func TestResolve_ClosedUnderDescendants(t *testing.T) {
	tree := BuildTree([]Category{
		{ID: 1, Name: "Electronics"},
		{ID: 2, Name: "Phones", ParentID: ptr(1)},
		{ID: 3, Name: "Laptops", ParentID: ptr(1)},
		{ID: 4, Name: "iPhone", ParentID: ptr(2)},
		{ID: 5, Name: "Books"},
	})

	sel := Resolve("Electronics", tree)

	node := Find(tree, func(n *Node) bool { return n.Name == "Electronics" })
	Walk([]*Node{node}, func(n *Node, _ int) bool {
		assert.True(t, sel.Contains(n.ID), "descendant %d missing", n.ID)
		return true
	})
	assert.False(t, sel.Contains(5))
}

func TestResolve_DeepChainReturnsWholeSubtree(t *testing.T) {
	sel := Resolve("root", BuildTree(chain(70)))

	assert.Len(t, sel.IDs(), 70)
	assert.True(t, sel.Contains(69))
}

func TestResolve_DuplicateNameFirstInPreOrder(t *testing.T) {
	tree := BuildTree([]Category{
		{ID: 1, Name: "Apple", SortOrder: 1},
		{ID: 2, Name: "Fruit", SortOrder: 0},
		{ID: 3, Name: "Apple", ParentID: ptr(2)},
	})

	assert.Equal(t, []int64{3}, Resolve("Apple", tree).IDs())
}

func TestResolveID(t *testing.T) {
	tree := BuildTree([]Category{
		{ID: 1, Name: "Apple"},
		{ID: 2, Name: "Apple", ParentID: ptr(1)},
		{ID: 3, Name: "Other"},
	})

	assert.Equal(t, []int64{1, 2}, ResolveID(1, tree).IDs())
	assert.Equal(t, []int64{2}, ResolveID(2, tree).IDs())
	assert.True(t, ResolveID(99, tree).Empty())
}

func TestSelection_ZeroValueAdmitsNothing(t *testing.T) {
	var sel Selection

	assert.True(t, sel.Empty())
	assert.False(t, sel.Contains(0))
}
