package postgres

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/woodveneer/storefront/internal/domain"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// contains builds an ILIKE pattern matching s anywhere, with wildcards in s escaped.
func contains(s string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(s)) + "%"
}

// sortColumns maps API sortBy keys to table columns.
type sortColumns map[string]string

func page(q *gorm.DB, p domain.ListParams, cols sortColumns) *gorm.DB {
	p = p.Normalized()
	col, ok := cols[p.SortBy]
	if !ok {
		col = "created_at"
	}
	return q.
		Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: p.SortOrder == domain.SortDesc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Offset(p.Offset()).
		Limit(p.Limit)
}

// list runs the filtered count and the bounded page over the same predicates.
func list[T any](q *gorm.DB, p domain.ListParams, cols sortColumns) ([]T, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	out := []T{}
	if total == 0 {
		return out, 0, nil
	}
	if err := page(q.Session(&gorm.Session{}), p, cols).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	}
	return err
}

// affected maps a write that touched no rows to ErrNotFound.
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// save overwrites every column of an existing row except its key and creation time.
func save(db *gorm.DB, v any) error {
	return affected(db.Model(v).Select("*").Omit("id", "created_at").Updates(v))
}
