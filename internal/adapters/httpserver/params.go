package httpserver

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/woodveneer/storefront/internal/domain"
)

// query collects typed query-string values and every parse failure.
type query struct {
	v    url.Values
	errs []domain.FieldError
}

func newQuery(r *http.Request) *query { return &query{v: r.URL.Query()} }

func (q *query) bad(field, msg string) {
	q.errs = append(q.errs, domain.FieldError{Field: field, Message: msg})
}

func (q *query) str(key string) string { return strings.TrimSpace(q.v.Get(key)) }

func (q *query) integer(key string, def, lo, hi int) int {
	raw := q.str(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	switch {
	case err != nil:
		q.bad(key, "must be an integer")
	case n < lo:
		q.bad(key, "must be at least "+strconv.Itoa(lo))
	case n > hi:
		q.bad(key, "must be at most "+strconv.Itoa(hi))
	default:
		return n
	}
	return def
}

func (q *query) boolean(key string) *bool {
	raw := q.str(key)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		q.bad(key, "must be true or false")
		return nil
	}
	return &b
}

func (q *query) number(key string) *decimal.Decimal {
	raw := q.str(key)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		q.bad(key, "must be a number")
		return nil
	}
	return &d
}

// list splits a comma-separated value, trimming items and dropping empties.
func (q *query) list(key string) []string {
	var out []string
	for _, part := range strings.Split(q.v.Get(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// enum returns the value when allowed, "" when absent, and records an error otherwise.
func (q *query) enum(key string, allowed ...string) string {
	raw := q.str(key)
	if raw == "" || slices.Contains(allowed, raw) {
		return raw
	}
	q.bad(key, "must be one of: "+strings.Join(allowed, " "))
	return ""
}

func (q *query) page(sortKeys []string) domain.ListParams {
	p := domain.ListParams{
		Page:      q.integer("page", domain.DefaultPage, 1, 1<<30),
		Limit:     q.integer("limit", domain.DefaultLimit, 1, domain.MaxLimit),
		SortBy:    q.enum("sortBy", sortKeys...),
		SortOrder: q.enum("sortOrder", domain.SortAsc, domain.SortDesc),
	}
	return p.Normalized()
}

func (q *query) err() error {
	if len(q.errs) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: q.errs}
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, domain.NewValidationError("id", "must be a UUID")
	}
	return id, nil
}
