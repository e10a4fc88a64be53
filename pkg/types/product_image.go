package types

// ProductImage is one entry in a product's ordered image gallery.
type ProductImage struct {
	URL string `json:"url" validate:"required,url"`
	Alt string `json:"alt"`
}

// ProductImages is persisted as a jsonb column.
type ProductImages []ProductImage

// FirstURL returns the primary image URL, or "" when the gallery is empty.
func (p ProductImages) FirstURL() string {
	if len(p) == 0 {
		return ""
	}
	return p[0].URL
}
