// Package models defines the wire-level records exchanged with the
// property-listing backend.
package models

// Property mirrors a single listing as returned by GET /properties.
// Visibility and mutation rights depend only on SellerID, Verified and the
// caller's claims; see the policy package.
type Property struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	SellerID     int64   `json:"seller_id"`
	ImageURL     string  `json:"image_url"`
	DocsURL      string  `json:"docs_url"`
	Verified     bool    `json:"verified"`
	Location     string  `json:"location"`
	PropertyType string  `json:"propertyType"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	Area         int     `json:"area"`
	CreatedAt    string  `json:"created_at"`
}

// PropertyDraft is the payload for creating or editing a listing.
// Validation tags are checked client-side before the request is sent.
type PropertyDraft struct {
	Title        string  `json:"title" validate:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Location     string  `json:"location"`
	PropertyType string  `json:"propertyType"`
	Bedrooms     int     `json:"bedrooms" validate:"gte=0"`
	Bathrooms    int     `json:"bathrooms" validate:"gte=0"`
	Area         int     `json:"area" validate:"gte=0"`
}
