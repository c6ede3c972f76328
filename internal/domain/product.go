package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Variation struct {
	Name      string          `json:"name" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	IsDefault bool            `json:"isDefault"`
}

type Variations struct {
	Colors    []Variation `json:"colors"`
	Sizes     []Variation `json:"sizes"`
	Thickness []Variation `json:"thickness"`
}

type Specifications struct {
	Material          string `json:"material,omitempty"`
	Origin            string `json:"origin,omitempty"`
	Warranty          string `json:"warranty,omitempty"`
	FireResistant     string `json:"fireResistant,omitempty"`
	MoistureResistant string `json:"moistureResistant,omitempty"`
	Installation      string `json:"installation,omitempty"`
}

type Product struct {
	ID             uuid.UUID                           `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string                              `gorm:"size:255;not null" json:"name"`
	Description    string                              `gorm:"type:text" json:"description"`
	Content        string                              `gorm:"type:text" json:"content"`
	Price          decimal.Decimal                     `gorm:"type:decimal(12,2);not null;index" json:"price"`
	OriginalPrice  decimal.NullDecimal                 `gorm:"type:decimal(12,2)" json:"originalPrice"`
	Discount       *int                                `json:"discount"`
	Rating         decimal.NullDecimal                 `gorm:"type:decimal(3,2)" json:"rating"`
	ReviewCount    int                                 `gorm:"default:0" json:"reviewCount"`
	Category       string                              `gorm:"size:100;index" json:"category"`
	Variations     datatypes.JSONType[Variations]      `json:"variations"`
	Colors         []string                            `gorm:"type:jsonb;serializer:json" json:"colors"`
	Sizes          []string                            `gorm:"type:jsonb;serializer:json" json:"sizes"`
	Thickness      []string                            `gorm:"type:jsonb;serializer:json" json:"thickness"`
	Features       []string                            `gorm:"type:jsonb;serializer:json" json:"features"`
	Images         []string                            `gorm:"type:jsonb;serializer:json" json:"images"`
	Specifications datatypes.JSONType[Specifications] `json:"specifications"`
	IsActive       bool                                `gorm:"default:true;index" json:"isActive"`
	CreatedAt      time.Time                           `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time                           `json:"updatedAt"`
}

// SyncLegacyLists rebuilds the flat colors/sizes/thickness label lists from
// the structured variations. When a write carries only flat lists the
// variations are built from them first, at price zero.
func (p *Product) SyncLegacyLists() {
	v := p.Variations.Data()
	if len(v.Colors)+len(v.Sizes)+len(v.Thickness) == 0 {
		v = Variations{
			Colors:    variationsFromLabels(p.Colors),
			Sizes:     variationsFromLabels(p.Sizes),
			Thickness: variationsFromLabels(p.Thickness),
		}
	}
	v.Colors = nonNilVariations(v.Colors)
	v.Sizes = nonNilVariations(v.Sizes)
	v.Thickness = nonNilVariations(v.Thickness)
	p.Variations = datatypes.NewJSONType(v)
	p.Colors = v.labels(v.Colors)
	p.Sizes = v.labels(v.Sizes)
	p.Thickness = v.labels(v.Thickness)
	if p.Features == nil {
		p.Features = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
}

func (Variations) labels(list []Variation) []string {
	out := make([]string, 0, len(list))
	for _, it := range list {
		out = append(out, it.Name)
	}
	return out
}

func variationsFromLabels(labels []string) []Variation {
	out := make([]Variation, 0, len(labels))
	for i, l := range labels {
		out = append(out, Variation{Name: l, Price: decimal.Zero, IsDefault: i == 0})
	}
	return out
}

func nonNilVariations(list []Variation) []Variation {
	if list == nil {
		return []Variation{}
	}
	return list
}

// ProductFilterOptions lists the values a storefront filter panel offers.
type ProductFilterOptions struct {
	Categories []string   `json:"categories"`
	Colors     []string   `json:"colors"`
	Thickness  []string   `json:"thickness"`
	PriceRange PriceRange `json:"priceRange"`
}

type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

var (
	DefaultPriceMin = decimal.Zero
	DefaultPriceMax = decimal.NewFromInt(1000000)
)

type FeaturedProduct struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"productId"`
	DisplayOrder int       `gorm:"not null;default:0" json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
}
