package httpserver

import (
	"net/http"
	"strings"

	"github.com/woodveneer/storefront/internal/domain"
)

type categoryInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Slug        *string `json:"slug" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	IsActive    *bool   `json:"isActive"`
}

func (in *categoryInput) apply(c *domain.Category) {
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Slug != nil {
		c.Slug = *in.Slug
	}
	if in.Description != nil {
		c.Description = in.Description
	}
	if in.Image != nil {
		c.Image = in.Image
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
}

func (s *Server) apiCategories(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	f := domain.CategoryFilter{Search: q.str("search"), IsActive: q.boolean("isActive"), ListParams: q.page(domain.CategorySortKeys)}
	if err := q.err(); err != nil {
		writeError(w, r, "list categories", err)
		return
	}
	list, pg, err := s.categories.List(r.Context(), f)
	if err != nil {
		writeError(w, r, "list categories", err)
		return
	}
	ok(w, map[string]any{"categories": list, "pagination": pg}, "")
}

func (s *Server) apiCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "category", err)
		return
	}
	c, err := s.categories.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, "category", err)
		return
	}
	ok(w, c, "")
}

func (s *Server) apiCategoryCreate(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	var in categoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, "create category", err)
		return
	}
	if err := requireFields(map[string]bool{"name": in.Name != nil}); err != nil {
		writeError(w, r, "create category", err)
		return
	}
	c := &domain.Category{IsActive: true}
	in.apply(c)
	if err := s.categories.Create(r.Context(), c); err != nil {
		writeError(w, r, "create category", err)
		return
	}
	created(w, c, "Category created successfully")
}

func (s *Server) apiCategoryUpdate(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "category", err)
		return
	}
	var in categoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, "update category", err)
		return
	}
	c, err := s.categories.Update(r.Context(), id, in.apply)
	if err != nil {
		writeError(w, r, "category", err)
		return
	}
	ok(w, c, "Category updated successfully")
}

func (s *Server) apiCategoryDelete(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "category", err)
		return
	}
	if err := s.categories.Delete(r.Context(), id); err != nil {
		writeError(w, r, "category", err)
		return
	}
	ok(w, nil, "Category deleted successfully")
}

type optionInput struct {
	Type     *domain.OptionType `json:"type" validate:"omitempty,oneof=color size thickness"`
	Name     *string            `json:"name" validate:"omitempty,min=1,max=100"`
	Value    *string            `json:"value" validate:"omitempty,min=1,max=100"`
	HexColor *string            `json:"hexColor" validate:"omitempty,hexcolor"`
	IsActive *bool              `json:"isActive"`
}

func (in *optionInput) apply(o *domain.ProductOption) {
	if in.Type != nil {
		o.Type = *in.Type
	}
	if in.Name != nil {
		o.Name = *in.Name
	}
	if in.Value != nil {
		o.Value = *in.Value
	}
	if in.HexColor != nil {
		o.HexColor = in.HexColor
	}
	if in.IsActive != nil {
		o.IsActive = *in.IsActive
	}
}

func (s *Server) apiOptions(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	f := domain.OptionFilter{
		Search:     q.str("search"),
		Type:       domain.OptionType(q.enum("type", string(domain.OptionColor), string(domain.OptionSize), string(domain.OptionThickness))),
		IsActive:   q.boolean("isActive"),
		ListParams: q.page(domain.OptionSortKeys),
	}
	if err := q.err(); err != nil {
		writeError(w, r, "list options", err)
		return
	}
	list, pg, err := s.options.List(r.Context(), f)
	if err != nil {
		writeError(w, r, "list options", err)
		return
	}
	ok(w, map[string]any{"options": list, "pagination": pg}, "")
}

func (s *Server) apiOption(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "option", err)
		return
	}
	o, err := s.options.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, "option", err)
		return
	}
	ok(w, o, "")
}

func (s *Server) apiOptionCreate(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	var in optionInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, "create option", err)
		return
	}
	if err := requireFields(map[string]bool{"type": in.Type != nil, "name": in.Name != nil, "value": in.Value != nil}); err != nil {
		writeError(w, r, "create option", err)
		return
	}
	o := &domain.ProductOption{IsActive: true}
	in.apply(o)
	if err := s.options.Create(r.Context(), o); err != nil {
		writeError(w, r, "create option", err)
		return
	}
	created(w, o, "Option created successfully")
}

func (s *Server) apiOptionUpdate(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "option", err)
		return
	}
	var in optionInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, "update option", err)
		return
	}
	o, err := s.options.Update(r.Context(), id, in.apply)
	if err != nil {
		writeError(w, r, "option", err)
		return
	}
	ok(w, o, "Option updated successfully")
}

func (s *Server) apiOptionDelete(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "option", err)
		return
	}
	if err := s.options.Delete(r.Context(), id); err != nil {
		writeError(w, r, "option", err)
		return
	}
	ok(w, nil, "Option deleted successfully")
}

type postInput struct {
	Title         *string  `json:"title" validate:"omitempty,min=1,max=255"`
	Slug          *string  `json:"slug" validate:"omitempty,max=255"`
	Excerpt       *string  `json:"excerpt"`
	Content       *string  `json:"content" validate:"omitempty,min=1"`
	FeaturedImage *string  `json:"featuredImage"`
	Author        *string  `json:"author" validate:"omitempty,min=1,max=255"`
	Category      *string  `json:"category" validate:"omitempty,max=100"`
	Tags          []string `json:"tags"`
	IsPublished   *bool    `json:"isPublished"`
}

func (in *postInput) apply(b *domain.BlogPost) {
	if in.Title != nil {
		b.Title = strings.TrimSpace(*in.Title)
	}
	if in.Slug != nil {
		b.Slug = *in.Slug
	}
	if in.Excerpt != nil {
		b.Excerpt = *in.Excerpt
	}
	if in.Content != nil {
		b.Content = *in.Content
	}
	if in.FeaturedImage != nil {
		b.FeaturedImage = in.FeaturedImage
	}
	if in.Author != nil {
		b.Author = *in.Author
	}
	if in.Category != nil {
		b.Category = *in.Category
	}
	if in.Tags != nil {
		b.Tags = in.Tags
	}
	if in.IsPublished != nil {
		b.IsPublished = *in.IsPublished
	}
}

func (s *Server) apiPosts(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	f := domain.BlogFilter{
		Search:      q.str("search"),
		Category:    q.str("category"),
		IsPublished: q.boolean("isPublished"),
		ListParams:  q.page(domain.BlogSortKeys),
	}
	if err := q.err(); err != nil {
		writeError(w, r, "list posts", err)
		return
	}
	list, pg, err := s.blog.List(r.Context(), f)
	if err != nil {
		writeError(w, r, "list posts", err)
		return
	}
	ok(w, map[string]any{"posts": list, "pagination": pg}, "")
}

func (s *Server) apiPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "blog post", err)
		return
	}
	b, err := s.blog.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, "blog post", err)
		return
	}
	ok(w, b, "")
}

func (s *Server) apiPostCreate(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	var in postInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, "create blog post", err)
		return
	}
	if err := requireFields(map[string]bool{"title": in.Title != nil, "content": in.Content != nil, "author": in.Author != nil}); err != nil {
		writeError(w, r, "create blog post", err)
		return
	}
	b := &domain.BlogPost{}
	in.apply(b)
	if err := s.blog.Create(r.Context(), b); err != nil {
		writeError(w, r, "create blog post", err)
		return
	}
	created(w, b, "Blog post created successfully")
}

func (s *Server) apiPostUpdate(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "blog post", err)
		return
	}
	var in postInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, "update blog post", err)
		return
	}
	b, err := s.blog.Update(r.Context(), id, in.apply)
	if err != nil {
		writeError(w, r, "blog post", err)
		return
	}
	ok(w, b, "Blog post updated successfully")
}

func (s *Server) apiPostDelete(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "blog post", err)
		return
	}
	if err := s.blog.Delete(r.Context(), id); err != nil {
		writeError(w, r, "blog post", err)
		return
	}
	ok(w, nil, "Blog post deleted successfully")
}
