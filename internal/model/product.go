package model

// Product is a catalog record. The cart only ever reads it.
type Product struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Price     Money    `json:"price"`
	Images    []string `json:"images"`
	Thumbnail string   `json:"thumbnail"`
	Sizes     []string `json:"sizes"`
	Colors    []string `json:"colors"`
	SoldOut   bool     `json:"soldOut"`
	Category  string   `json:"category"`
	Active    bool     `json:"active"`
}

// PrimaryImage returns the first image, falling back to the thumbnail.
func (p Product) PrimaryImage() string {
	if len(p.Images) > 0 && p.Images[0] != "" {
		return p.Images[0]
	}
	return p.Thumbnail
}

// OffersSize reports whether size is one of the product's sizes.
func (p Product) OffersSize(size string) bool {
	return contains(p.Sizes, size)
}

// OffersColor reports whether color is one of the product's colors.
func (p Product) OffersColor(color string) bool {
	return contains(p.Colors, color)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
