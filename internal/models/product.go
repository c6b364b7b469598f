package models

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Product is one item of the catalog. Prices are in cents.
type Product struct {
	ID          int
	Slug        string
	Name        string
	Description string
	Price       int64
}

// SortOrder is the value submitted by the inventory sort control
type SortOrder string

// Sort orders
const (
	SortNameAsc   SortOrder = "az"
	SortNameDesc  SortOrder = "za"
	SortPriceAsc  SortOrder = "lohi"
	SortPriceDesc SortOrder = "hilo"
)

// SortOrders lists every order in the sequence the control shows them
var SortOrders = []SortOrder{SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc}

// Label returns the visible label of the order
func (o SortOrder) Label() string {
	switch o {
	case SortNameDesc:
		return "Name (Z to A)"
	case SortPriceAsc:
		return "Price (low to high)"
	case SortPriceDesc:
		return "Price (high to low)"
	default:
		return "Name (A to Z)"
	}
}

// ParseSortOrder maps a submitted value to a SortOrder, defaulting to
// SortNameAsc for anything unknown.
func ParseSortOrder(v string) SortOrder {
	o := SortOrder(v)
	if slices.Contains(SortOrders, o) {
		return o
	}
	return SortNameAsc
}

// Catalog is the fixed Swag Labs product range
var Catalog = []Product{
	{ID: 4, Slug: "sauce-labs-backpack", Name: "Sauce Labs Backpack", Price: 2999,
		Description: "carry.allTheThings() with the sleek, streamlined Sly Pack that melds uncompromising style with unequaled laptop and tablet protection."},
	{ID: 0, Slug: "sauce-labs-bike-light", Name: "Sauce Labs Bike Light", Price: 999,
		Description: "A red light isn't the desired state in testing but it sure helps when riding your bike at night. Water-resistant with 3 lighting modes, 1 AAA battery included."},
	{ID: 1, Slug: "sauce-labs-bolt-t-shirt", Name: "Sauce Labs Bolt T-Shirt", Price: 1599,
		Description: "Get your testing superhero on with the Sauce Labs bolt T-shirt. From American Apparel, 100% ringspun combed cotton, heather gray with red bolt."},
	{ID: 5, Slug: "sauce-labs-fleece-jacket", Name: "Sauce Labs Fleece Jacket", Price: 4999,
		Description: "It's not every day that you come across a midweight quarter-zip fleece jacket capable of handling everything from a relaxing day outdoors to a busy day at the office."},
	{ID: 2, Slug: "sauce-labs-onesie", Name: "Sauce Labs Onesie", Price: 799,
		Description: "Rib snap infant onesie for the junior automation engineer in development. Reinforced 3-snap bottom closure, two-needle hemmed sleeved and bottom won't unravel."},
	{ID: 3, Slug: "test.allthethings()-t-shirt-(red)", Name: "Test.allTheThings() T-Shirt (Red)", Price: 1599,
		Description: "This classic Sauce Labs t-shirt is perfect to wear when cozying up to your keyboard to automate a few tests. Super-soft and comfy ringspun combed cotton."},
}

// FindProduct returns the catalog product with the given id
func FindProduct(id int) (Product, bool) {
	for _, p := range Catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// FindProductBySlug returns the catalog product with the given slug
func FindProductBySlug(slug string) (Product, bool) {
	for _, p := range Catalog {
		if p.Slug == slug {
			return p, true
		}
	}
	return Product{}, false
}

// SortProducts returns a sorted copy of products. Ties keep catalog order.
func SortProducts(products []Product, order SortOrder) []Product {
	out := slices.Clone(products)
	slices.SortStableFunc(out, func(a, b Product) int {
		switch order {
		case SortNameDesc:
			return strings.Compare(b.Name, a.Name)
		case SortPriceAsc:
			return cmp.Compare(a.Price, b.Price)
		case SortPriceDesc:
			return cmp.Compare(b.Price, a.Price)
		default:
			return strings.Compare(a.Name, b.Name)
		}
	})
	return out
}

// FormatPrice renders cents as "$29.99"
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
