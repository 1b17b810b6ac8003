package category

// ============================================================
// ENTITY: Category
// ============================================================
// Category is one node of the catalog hierarchy. ParentID = nil marks a root.
//
// DATABASE MAPPING:
// ┌──────────────────────────────┐
// │        categories table       │
// ├──────────────────────────────┤
// │ id (BIGINT) - PRIMARY KEY     │
// │ name (TEXT)                   │
// │ slug (TEXT) - UNIQUE          │
// │ parent_id (BIGINT) - nullable │
// │ sort_order (INT)              │
// └──────────────────────────────┘
//
// Categories are maintained by the admin tooling; this service only reads them.
type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	ParentID  *int64 `json:"parent_id"`
	SortOrder int    `json:"sort_order"`
}

// IsRoot reports whether the record itself declares no parent.
// A record whose parent is missing from the loaded set is still placed at the
// root of the tree by BuildTree.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// ============================================================
// VALUE OBJECT: Node
// ============================================================
// Node is a category placed in the tree, with its children ordered by
// sort_order (ties keep the input order).
type Node struct {
	Category
	Subcategories []*Node `json:"subcategories"`
}
