package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ContactStatus string

const (
	ContactPending   ContactStatus = "pending"
	ContactContacted ContactStatus = "contacted"
	ContactCompleted ContactStatus = "completed"
	ContactCancelled ContactStatus = "cancelled"
)

type ContactRequest struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string        `gorm:"size:255;not null" json:"name"`
	Phone       string        `gorm:"size:20;not null" json:"phone"`
	Email       *string       `gorm:"size:255" json:"email"`
	Address     *string       `gorm:"type:text" json:"address"`
	Service     *string       `gorm:"size:100" json:"service"`
	Message     *string       `gorm:"type:text" json:"message"`
	ProductID   *uuid.UUID    `gorm:"type:uuid" json:"productId"`
	ProductName *string       `gorm:"size:255" json:"productName"`
	Status      ContactStatus `gorm:"type:varchar(20);default:pending;index" json:"status"`
	CreatedAt   time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type CustomerType string

const (
	CustomerIndividual CustomerType = "individual"
	CustomerBusiness   CustomerType = "business"
)

type CustomerStatus string

const (
	CustomerActive    CustomerStatus = "active"
	CustomerInactive  CustomerStatus = "inactive"
	CustomerPotential CustomerStatus = "potential"
)

type CustomerSource string

const (
	SourceContact  CustomerSource = "contact"
	SourceDirect   CustomerSource = "direct"
	SourceReferral CustomerSource = "referral"
	SourceOnline   CustomerSource = "online"
)

type Customer struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Phone         string          `gorm:"size:20;not null" json:"phone"`
	Email         *string         `gorm:"size:255" json:"email"`
	Address       *string         `gorm:"type:text" json:"address"`
	Company       *string         `gorm:"size:255" json:"company"`
	TaxCode       *string         `gorm:"size:50" json:"taxCode"`
	CustomerType  CustomerType    `gorm:"type:varchar(20);default:individual;index" json:"customerType"`
	Status        CustomerStatus  `gorm:"type:varchar(20);default:potential;index" json:"status"`
	Notes         string          `gorm:"type:text" json:"notes"`
	TotalOrders   int             `gorm:"default:0" json:"totalOrders"`
	TotalSpent    decimal.Decimal `gorm:"type:decimal(14,2);default:0" json:"totalSpent"`
	LastOrderDate *time.Time      `json:"lastOrderDate"`
	Source        CustomerSource  `gorm:"type:varchar(20);default:direct;index" json:"source"`
	ContactID     *uuid.UUID      `gorm:"type:uuid;uniqueIndex" json:"contactId"`
	CreatedAt     time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ConvertContactInput is the admin's choice of fields for a lead conversion.
type ConvertContactInput struct {
	ContactID    uuid.UUID
	CustomerType CustomerType
	Company      *string
	TaxCode      *string
	Notes        string
}

// CustomerFromContact builds the customer row a lead converts into.
func CustomerFromContact(c *ContactRequest, in ConvertContactInput) *Customer {
	ctype := in.CustomerType
	if ctype == "" {
		ctype = CustomerIndividual
	}
	notes := in.Notes
	if notes == "" {
		msg := ""
		if c.Message != nil {
			msg = *c.Message
		}
		notes = "Chuyển đổi từ liên hệ: " + msg
	}
	contactID := c.ID
	return &Customer{
		ID:           uuid.New(),
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		Address:      c.Address,
		Company:      in.Company,
		TaxCode:      in.TaxCode,
		CustomerType: ctype,
		Status:       CustomerPotential,
		Notes:        notes,
		TotalSpent:   decimal.Zero,
		Source:       SourceContact,
		ContactID:    &contactID,
	}
}
