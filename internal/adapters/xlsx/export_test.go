package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/woodveneer/storefront/internal/domain"
)

func TestProductSheet(t *testing.T) {
	s, err := NewProductSheet()
	require.NoError(t, err)
	defer s.Close()

	p := domain.Product{
		ID:        uuid.New(),
		Name:      "Gỗ ép vân sồi",
		Category:  "Vân gỗ",
		Price:     decimal.RequireFromString("450000"),
		Colors:    []string{"Sồi", "Óc chó"},
		IsActive:  true,
		CreatedAt: time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, s.Add(p))
	assert.Equal(t, 1, s.Rows())

	var buf bytes.Buffer
	_, err = s.WriteTo(&buf)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Name", rows[0][1])
	assert.Equal(t, "Gỗ ép vân sồi", rows[1][1])
	assert.Equal(t, "450000", rows[1][3])
	assert.Equal(t, "Sồi, Óc chó", rows[1][5])
	assert.Equal(t, "yes", rows[1][8])
	assert.Equal(t, "2024-05-02 09:30", rows[1][9])
}

func TestCustomerSheet(t *testing.T) {
	s, err := NewCustomerSheet()
	require.NoError(t, err)
	defer s.Close()

	email := "lan@example.com"
	require.NoError(t, s.Add(domain.Customer{
		ID: uuid.New(), Name: "Lan", Phone: "0901234567", Email: &email,
		CustomerType: domain.CustomerIndividual, Status: domain.CustomerActive, Source: domain.SourceContact,
		TotalSpent: decimal.RequireFromString("1250000.5"),
	}))

	var buf bytes.Buffer
	_, err = s.WriteTo(&buf)
	require.NoError(t, err)
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Customers")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "lan@example.com", rows[1][3])
	assert.Equal(t, "", rows[1][4])
	assert.Equal(t, "contact", rows[1][8])
	assert.Equal(t, "1250000.5", rows[1][10])
}

func TestFilename(t *testing.T) {
	at := time.Date(2024, 1, 9, 8, 7, 6, 0, time.UTC)
	assert.Equal(t, "products-20240109-080706.xlsx", Filename("products", at))
}
