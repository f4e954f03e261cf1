package model

// Category as the catalog API returns it: flat, no tree. The admin CRUD
// surface uses the tree-capable shape below; the two coexist upstream.
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Image        string `json:"image,omitempty"`
	ProductCount int    `json:"product_count,omitempty"`
}

// CategoryNode is the admin shape with parent/children links.
type CategoryNode struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Slug     string         `json:"slug"`
	ParentID string         `json:"parentId,omitempty"`
	Children []CategoryNode `json:"children,omitempty"`
}
