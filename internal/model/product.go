package model

import "time"

// Product is a single item a seller wants to market.
type Product struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"seller_id"`
	ProductName string    `json:"product_name"`
	Price       float64   `json:"price"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductContext is the joined product + owning seller read.
type ProductContext struct {
	Product Product
	Seller  Seller
}

// Consistent reports whether the product belongs to the joined seller.
func (c *ProductContext) Consistent() bool {
	return c.Product.SellerID != "" && c.Product.SellerID == c.Seller.ID
}
