package domain

import "encoding/json"

// Catalog maps customer types to their category trees. It is built once at
// start-up and only read afterwards.
type Catalog struct {
	root *Node
}

func NewCatalog(root *Node) (*Catalog, error) {
	if root.Kind() != KindInterior {
		return nil, malformed("", "top level must be a mapping of customer types, got %s", root.Kind())
	}
	return &Catalog{root: root}, nil
}

// Root is the whole catalog as one interior node keyed by customer type.
func (c *Catalog) Root() *Node {
	return c.root
}

// CustomerTypes returns the customer types in source order.
func (c *Catalog) CustomerTypes() []string {
	return c.root.Labels()
}

func (c *Catalog) Has(customerType string) bool {
	_, ok := c.root.Child(customerType)
	return ok
}

func (c *Catalog) Subtree(customerType string) (*Node, bool) {
	return c.root.Child(customerType)
}

// Filter filters one customer type's subtree. An unknown type has no
// subtree and yields nil.
func (c *Catalog) Filter(customerType string, selection Selection) *Node {
	subtree, ok := c.Subtree(customerType)
	if !ok {
		return nil
	}
	return FilterBySelection(subtree, selection)
}

func (c *Catalog) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.root)
}
