package models

import "slices"

// Cart holds the products a shopper has picked, in the order they were added
type Cart struct {
	productIDs []int
}

// Add puts a product in the cart. Adding it twice has no effect.
func (c *Cart) Add(id int) {
	if !c.Contains(id) {
		c.productIDs = append(c.productIDs, id)
	}
}

// Remove takes a product out of the cart
func (c *Cart) Remove(id int) {
	c.productIDs = slices.DeleteFunc(c.productIDs, func(v int) bool { return v == id })
}

// Contains reports whether the product is in the cart
func (c *Cart) Contains(id int) bool {
	return slices.Contains(c.productIDs, id)
}

// Len returns the number of products in the cart
func (c *Cart) Len() int {
	return len(c.productIDs)
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.productIDs = nil
}

// Products resolves the cart against the catalog
func (c *Cart) Products() []Product {
	out := make([]Product, 0, len(c.productIDs))
	for _, id := range c.productIDs {
		if p, ok := FindProduct(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// ProductIDs returns a copy of the product ids in insertion order
func (c *Cart) ProductIDs() []int {
	return slices.Clone(c.productIDs)
}

// Clone returns an independent copy of the cart
func (c Cart) Clone() Cart {
	return Cart{productIDs: slices.Clone(c.productIDs)}
}
