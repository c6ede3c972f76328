// Package xlsx writes product and customer lists as Excel workbooks.
package xlsx

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/woodveneer/storefront/internal/domain"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet writes one row per value into a single-sheet workbook.
type Sheet[T any] struct {
	f     *excelize.File
	name  string
	row   int
	cells func(T) []any
}

func newSheet[T any](name string, header []string, cells func(T) []any) (*Sheet[T], error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", name); err != nil {
		f.Close()
		return nil, err
	}
	s := &Sheet[T]{f: f, name: name, cells: cells}
	hdr := make([]any, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	if err := s.put(hdr); err != nil {
		f.Close()
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(name, 1, 1, bold)
	}
	last, _ := excelize.ColumnNumberToName(len(header))
	_ = f.SetColWidth(name, "A", last, 20)
	return s, nil
}

func (s *Sheet[T]) put(cells []any) error {
	s.row++
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return err
	}
	return s.f.SetSheetRow(s.name, cell, &cells)
}

func (s *Sheet[T]) Add(v T) error { return s.put(s.cells(v)) }

// Rows counts data rows written so far.
func (s *Sheet[T]) Rows() int { return s.row - 1 }

func (s *Sheet[T]) WriteTo(w io.Writer) (int64, error) { return s.f.WriteTo(w) }

func (s *Sheet[T]) Close() error { return s.f.Close() }

func money(d decimal.Decimal) float64 { return d.InexactFloat64() }

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func NewProductSheet() (*Sheet[domain.Product], error) {
	return newSheet("Products",
		[]string{"ID", "Name", "Category", "Price", "Original price", "Colors", "Sizes", "Thickness", "Active", "Created"},
		func(p domain.Product) []any {
			orig := ""
			if p.OriginalPrice.Valid {
				orig = p.OriginalPrice.Decimal.StringFixed(2)
			}
			return []any{
				p.ID.String(), p.Name, p.Category, money(p.Price), orig,
				strings.Join(p.Colors, ", "), strings.Join(p.Sizes, ", "), strings.Join(p.Thickness, ", "),
				yesNo(p.IsActive), stamp(p.CreatedAt),
			}
		})
}

func NewCustomerSheet() (*Sheet[domain.Customer], error) {
	return newSheet("Customers",
		[]string{"ID", "Name", "Phone", "Email", "Company", "Tax code", "Type", "Status", "Source", "Total orders", "Total spent", "Created"},
		func(c domain.Customer) []any {
			return []any{
				c.ID.String(), c.Name, c.Phone, deref(c.Email), deref(c.Company), deref(c.TaxCode),
				string(c.CustomerType), string(c.Status), string(c.Source),
				c.TotalOrders, money(c.TotalSpent), stamp(c.CreatedAt),
			}
		})
}

// Filename is the download name for a sheet exported at t.
func Filename(kind string, t time.Time) string {
	return fmt.Sprintf("%s-%s.xlsx", kind, t.Format("20060102-150405"))
}
