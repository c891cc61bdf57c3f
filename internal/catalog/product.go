// Package catalog provides the product catalog: the raw product list
// received from the external source and the query pipeline that derives
// filtered, sorted views from it.
package catalog

// Product is a single catalog record as delivered by the external product
// source. It is read-only to the engines: nothing in the storefront core
// writes a Product back.
type Product struct {
	ID                 int64   `json:"id"`
	Title              string  `json:"title"`
	Brand              string  `json:"brand"`
	Category           string  `json:"category"`
	Price              float64 `json:"price"`
	DiscountPercentage float64 `json:"discountPercentage"`
	Rating             float64 `json:"rating"`
	Stock              int     `json:"stock"`
	Thumbnail          string  `json:"thumbnail"`
}

// EffectivePrice returns the list price after applying the percentage
// discount. The result is unrounded; display rounding is the renderer's
// concern, so repeated computation stays lossless and composable.
func EffectivePrice(price, discountPercentage float64) float64 {
	return price - price*discountPercentage/100
}
