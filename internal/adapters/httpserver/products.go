package httpserver

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/woodveneer/storefront/internal/adapters/xlsx"
	"github.com/woodveneer/storefront/internal/domain"
)

// productInput is both the create and the partial update body.
type productInput struct {
	Name           *string                `json:"name" validate:"omitempty,min=1,max=255"`
	Description    *string                `json:"description"`
	Content        *string                `json:"content"`
	Price          *decimal.Decimal       `json:"price"`
	OriginalPrice  *decimal.Decimal       `json:"originalPrice"`
	Discount       *int                   `json:"discount" validate:"omitempty,min=0,max=100"`
	Rating         *decimal.Decimal       `json:"rating"`
	ReviewCount    *int                   `json:"reviewCount" validate:"omitempty,min=0"`
	Category       *string                `json:"category" validate:"omitempty,max=100"`
	Variations     *domain.Variations     `json:"variations"`
	Colors         []string               `json:"colors" validate:"omitempty,dive,min=1"`
	Sizes          []string               `json:"sizes" validate:"omitempty,dive,min=1"`
	Thickness      []string               `json:"thickness" validate:"omitempty,dive,min=1"`
	Features       []string               `json:"features"`
	Images         []string               `json:"images"`
	Specifications *domain.Specifications `json:"specifications"`
	IsActive       *bool                  `json:"isActive"`
}

func (in *productInput) checkValues() error {
	errs := &domain.ValidationError{}
	neg := func(field string, d *decimal.Decimal) {
		if d != nil && d.IsNegative() {
			errs.Fields = append(errs.Fields, domain.FieldError{Field: field, Message: "must not be negative"})
		}
	}
	neg("price", in.Price)
	neg("originalPrice", in.OriginalPrice)
	if in.Rating != nil && (in.Rating.IsNegative() || in.Rating.GreaterThan(decimal.NewFromInt(5))) {
		errs.Fields = append(errs.Fields, domain.FieldError{Field: "rating", Message: "must be between 0 and 5"})
	}
	if in.Variations != nil {
		for _, list := range [][]domain.Variation{in.Variations.Colors, in.Variations.Sizes, in.Variations.Thickness} {
			for _, v := range list {
				if v.Name == "" {
					errs.Fields = append(errs.Fields, domain.FieldError{Field: "variations", Message: "every variation needs a name"})
					break
				}
				if v.Price.IsNegative() {
					errs.Fields = append(errs.Fields, domain.FieldError{Field: "variations", Message: "variation prices must not be negative"})
					break
				}
			}
		}
	}
	if len(errs.Fields) > 0 {
		return errs
	}
	return nil
}

// mergeLabels turns a flat label list into variations, keeping the price of
// labels that already exist.
func mergeLabels(existing []domain.Variation, labels []string) []domain.Variation {
	out := make([]domain.Variation, 0, len(labels))
	for i, l := range labels {
		v := domain.Variation{Name: l, Price: decimal.Zero, IsDefault: i == 0}
		for _, e := range existing {
			if e.Name == l {
				v.Price, v.IsDefault = e.Price, e.IsDefault
				break
			}
		}
		out = append(out, v)
	}
	return out
}

func (in *productInput) apply(p *domain.Product) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.OriginalPrice != nil {
		p.OriginalPrice = decimal.NewNullDecimal(*in.OriginalPrice)
	}
	if in.Discount != nil {
		p.Discount = in.Discount
	}
	if in.Rating != nil {
		p.Rating = decimal.NewNullDecimal(*in.Rating)
	}
	if in.ReviewCount != nil {
		p.ReviewCount = *in.ReviewCount
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	switch {
	case in.Variations != nil:
		p.Variations = datatypes.NewJSONType(*in.Variations)
	case in.Colors != nil || in.Sizes != nil || in.Thickness != nil:
		v := p.Variations.Data()
		if in.Colors != nil {
			v.Colors = mergeLabels(v.Colors, in.Colors)
		}
		if in.Sizes != nil {
			v.Sizes = mergeLabels(v.Sizes, in.Sizes)
		}
		if in.Thickness != nil {
			v.Thickness = mergeLabels(v.Thickness, in.Thickness)
		}
		p.Variations = datatypes.NewJSONType(v)
	}
	if in.Features != nil {
		p.Features = in.Features
	}
	if in.Images != nil {
		p.Images = in.Images
	}
	if in.Specifications != nil {
		p.Specifications = datatypes.NewJSONType(*in.Specifications)
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
}

func productFilter(r *http.Request) (domain.ProductFilter, error) {
	q := newQuery(r)
	f := domain.ProductFilter{
		Search:    q.str("search"),
		Category:  q.str("category"),
		Colors:    q.list("colors"),
		Thickness: q.list("thickness"),
		MinPrice:  q.number("minPrice"),
		MaxPrice:  q.number("maxPrice"),
		IsActive:  q.boolean("isActive"),
	}
	f.ListParams = q.page(domain.ProductSortKeys)
	return f, q.err()
}

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	f, err := productFilter(r)
	if err != nil {
		writeError(w, r, "list products", err)
		return
	}
	list, pg, err := s.products.List(r.Context(), f)
	if err != nil {
		writeError(w, r, "list products", err)
		return
	}
	ok(w, map[string]any{"products": list, "pagination": pg}, "")
}

func (s *Server) apiProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "product", err)
		return
	}
	p, err := s.products.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, "product", err)
		return
	}
	ok(w, p, "")
}

func (s *Server) apiProductCreate(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	var in productInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, "create product", err)
		return
	}
	if err := requireFields(map[string]bool{"name": in.Name != nil, "price": in.Price != nil}); err != nil {
		writeError(w, r, "create product", err)
		return
	}
	if err := in.checkValues(); err != nil {
		writeError(w, r, "create product", err)
		return
	}
	p := &domain.Product{IsActive: true}
	in.apply(p)
	if err := s.products.Create(r.Context(), p); err != nil {
		writeError(w, r, "create product", err)
		return
	}
	created(w, p, "Product created successfully")
}

func (s *Server) apiProductUpdate(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "product", err)
		return
	}
	var in productInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, "update product", err)
		return
	}
	if err := in.checkValues(); err != nil {
		writeError(w, r, "update product", err)
		return
	}
	p, err := s.products.Update(r.Context(), id, in.apply)
	if err != nil {
		writeError(w, r, "product", err)
		return
	}
	ok(w, p, "Product updated successfully")
}

func (s *Server) apiProductDelete(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "product", err)
		return
	}
	if err := s.products.Delete(r.Context(), id); err != nil {
		writeError(w, r, "product", err)
		return
	}
	ok(w, nil, "Product deleted successfully")
}

func (s *Server) apiProductFilters(w http.ResponseWriter, r *http.Request) {
	opts, err := s.products.FilterOptions(r.Context())
	if err != nil {
		writeError(w, r, "product filters", err)
		return
	}
	ok(w, opts, "")
}

func (s *Server) apiFeatured(w http.ResponseWriter, r *http.Request) {
	list, err := s.products.ListFeatured(r.Context())
	if err != nil {
		writeError(w, r, "featured products", err)
		return
	}
	ok(w, list, "")
}

type featuredRequest struct {
	ProductIDs []uuid.UUID `json:"productIds" validate:"required,max=24"`
}

func (s *Server) apiFeaturedSet(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	var req featuredRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, "set featured products", err)
		return
	}
	if err := s.products.SetFeatured(r.Context(), req.ProductIDs); err != nil {
		writeError(w, r, "set featured products", err)
		return
	}
	list, err := s.products.ListFeatured(r.Context())
	if err != nil {
		writeError(w, r, "featured products", err)
		return
	}
	ok(w, list, "Featured products updated")
}

func (s *Server) apiProductsExport(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	f, err := productFilter(r)
	if err != nil {
		writeError(w, r, "export products", err)
		return
	}
	sheet, err := xlsx.NewProductSheet()
	if err != nil {
		writeError(w, r, "export products", err)
		return
	}
	defer sheet.Close()
	if err := s.products.Each(r.Context(), f, sheet.Add); err != nil {
		writeError(w, r, "export products", err)
		return
	}
	writeWorkbook(w, r, xlsx.Filename("products", time.Now()), sheet)
}
