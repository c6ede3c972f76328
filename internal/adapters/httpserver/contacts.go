package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/woodveneer/storefront/internal/adapters/xlsx"
	"github.com/woodveneer/storefront/internal/domain"
)

var contactStatuses = []string{
	string(domain.ContactPending), string(domain.ContactContacted),
	string(domain.ContactCompleted), string(domain.ContactCancelled),
}

type contactInput struct {
	Name        *string               `json:"name" validate:"omitempty,min=1,max=255"`
	Phone       *string               `json:"phone" validate:"omitempty,min=1,max=20"`
	Email       *string               `json:"email" validate:"omitempty,email"`
	Address     *string               `json:"address"`
	Service     *string               `json:"service" validate:"omitempty,max=100"`
	Message     *string               `json:"message"`
	ProductID   *uuid.UUID            `json:"productId"`
	ProductName *string               `json:"productName" validate:"omitempty,max=255"`
	Status      *domain.ContactStatus `json:"status" validate:"omitempty,oneof=pending contacted completed cancelled"`
}

func (in *contactInput) apply(c *domain.ContactRequest) {
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		c.Email = in.Email
	}
	if in.Address != nil {
		c.Address = in.Address
	}
	if in.Service != nil {
		c.Service = in.Service
	}
	if in.Message != nil {
		c.Message = in.Message
	}
	if in.ProductID != nil {
		c.ProductID = in.ProductID
	}
	if in.ProductName != nil {
		c.ProductName = in.ProductName
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
}

func contactFilter(q *query) domain.ContactFilter {
	status := q.str("status")
	if status == "all" {
		status = ""
	} else {
		status = q.enum("status", contactStatuses...)
	}
	return domain.ContactFilter{
		Search:     q.str("search"),
		Status:     domain.ContactStatus(status),
		ListParams: q.page(domain.ContactSortKeys),
	}
}

func (s *Server) listContacts(w http.ResponseWriter, r *http.Request, key string) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	q := newQuery(r)
	f := contactFilter(q)
	if err := q.err(); err != nil {
		writeError(w, r, "list contacts", err)
		return
	}
	list, pg, err := s.contacts.List(r.Context(), f)
	if err != nil {
		writeError(w, r, "list contacts", err)
		return
	}
	ok(w, map[string]any{key: list, "pagination": pg}, "")
}

func (s *Server) apiContacts(w http.ResponseWriter, r *http.Request) {
	s.listContacts(w, r, "contacts")
}

func (s *Server) apiContactRequests(w http.ResponseWriter, r *http.Request) {
	s.listContacts(w, r, "contactRequests")
}

func (s *Server) apiContact(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "contact", err)
		return
	}
	c, err := s.contacts.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, "contact", err)
		return
	}
	ok(w, c, "")
}

func (s *Server) apiContactCreate(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	var in contactInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, "create contact", err)
		return
	}
	if err := requireFields(map[string]bool{"name": in.Name != nil, "phone": in.Phone != nil}); err != nil {
		writeError(w, r, "create contact", err)
		return
	}
	c := &domain.ContactRequest{}
	in.apply(c)
	if err := s.contacts.Create(r.Context(), c); err != nil {
		writeError(w, r, "create contact", err)
		return
	}
	created(w, c, "Contact created successfully")
}

func (s *Server) apiContactUpdate(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "contact", err)
		return
	}
	var in contactInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, "update contact", err)
		return
	}
	c, err := s.contacts.Update(r.Context(), id, in.apply)
	if err != nil {
		writeError(w, r, "contact", err)
		return
	}
	ok(w, c, "Contact updated successfully")
}

func (s *Server) apiContactDelete(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "contact", err)
		return
	}
	if err := s.contacts.Delete(r.Context(), id); err != nil {
		writeError(w, r, "contact", err)
		return
	}
	ok(w, nil, "Contact deleted successfully")
}

// publicContact is the storefront form. productId is kept only when it is a UUID.
type publicContact struct {
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email" validate:"omitempty,email"`
	Address   string  `json:"address"`
	Service   string  `json:"service" validate:"max=100"`
	Message   string  `json:"message" validate:"max=5000"`
	Product   string  `json:"product" validate:"max=255"`
	ProductID *string `json:"productId"`
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

func (s *Server) apiContactSubmit(w http.ResponseWriter, r *http.Request) {
	var in publicContact
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, "submit contact", err)
		return
	}
	in.Name, in.Phone = strings.TrimSpace(in.Name), strings.TrimSpace(in.Phone)
	if err := requireFields(map[string]bool{"name": in.Name != "", "phone": in.Phone != ""}); err != nil {
		writeError(w, r, "submit contact", err)
		return
	}
	c := &domain.ContactRequest{
		Name:        in.Name,
		Phone:       in.Phone,
		Email:       optional(in.Email),
		Address:     optional(in.Address),
		Service:     optional(in.Service),
		Message:     optional(in.Message),
		ProductName: optional(in.Product),
	}
	if in.ProductID != nil && domain.ValidUUID(*in.ProductID) {
		id := uuid.MustParse(*in.ProductID)
		c.ProductID = &id
	}
	if err := s.contacts.Submit(r.Context(), c); err != nil {
		writeError(w, r, "submit contact", err)
		return
	}
	ok(w, map[string]any{"id": c.ID, "message": "Yêu cầu tư vấn đã được gửi thành công!"}, "")
}

type statusRequest struct {
	Status domain.ContactStatus `json:"status" validate:"required,oneof=pending contacted completed cancelled"`
}

func (s *Server) apiContactStatus(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "contact", err)
		return
	}
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, "update contact status", err)
		return
	}
	c, err := s.contacts.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, r, "contact", err)
		return
	}
	ok(w, c, "Contact status updated successfully")
}

type convertRequest struct {
	ContactID    uuid.UUID           `json:"contactId" validate:"required"`
	CustomerType domain.CustomerType `json:"customerType" validate:"omitempty,oneof=individual business"`
	Company      *string             `json:"company" validate:"omitempty,max=255"`
	TaxCode      *string             `json:"taxCode" validate:"omitempty,max=50"`
	Notes        string              `json:"notes"`
}

func (s *Server) apiConvertContact(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	var req convertRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, "convert contact", err)
		return
	}
	c, err := s.customers.ConvertContact(r.Context(), domain.ConvertContactInput{
		ContactID:    req.ContactID,
		CustomerType: req.CustomerType,
		Company:      req.Company,
		TaxCode:      req.TaxCode,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(w, r, "contact", err)
		return
	}
	created(w, c, "Contact converted to customer successfully")
}

var (
	customerStatuses = []string{string(domain.CustomerActive), string(domain.CustomerInactive), string(domain.CustomerPotential)}
	customerTypes    = []string{string(domain.CustomerIndividual), string(domain.CustomerBusiness)}
	customerSources  = []string{string(domain.SourceContact), string(domain.SourceDirect), string(domain.SourceReferral), string(domain.SourceOnline)}
)

type customerInput struct {
	Name          *string                `json:"name" validate:"omitempty,min=1,max=255"`
	Phone         *string                `json:"phone" validate:"omitempty,min=1,max=20"`
	Email         *string                `json:"email" validate:"omitempty,email"`
	Address       *string                `json:"address"`
	Company       *string                `json:"company" validate:"omitempty,max=255"`
	TaxCode       *string                `json:"taxCode" validate:"omitempty,max=50"`
	CustomerType  *domain.CustomerType   `json:"customerType" validate:"omitempty,oneof=individual business"`
	Status        *domain.CustomerStatus `json:"status" validate:"omitempty,oneof=active inactive potential"`
	Notes         *string                `json:"notes"`
	TotalOrders   *int                   `json:"totalOrders" validate:"omitempty,min=0"`
	TotalSpent    *decimal.Decimal       `json:"totalSpent"`
	LastOrderDate *time.Time             `json:"lastOrderDate"`
	Source        *domain.CustomerSource `json:"source" validate:"omitempty,oneof=contact direct referral online"`
}

func (in *customerInput) apply(c *domain.Customer) {
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		c.Email = in.Email
	}
	if in.Address != nil {
		c.Address = in.Address
	}
	if in.Company != nil {
		c.Company = in.Company
	}
	if in.TaxCode != nil {
		c.TaxCode = in.TaxCode
	}
	if in.CustomerType != nil {
		c.CustomerType = *in.CustomerType
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}
	if in.TotalOrders != nil {
		c.TotalOrders = *in.TotalOrders
	}
	if in.TotalSpent != nil {
		c.TotalSpent = *in.TotalSpent
	}
	if in.LastOrderDate != nil {
		c.LastOrderDate = in.LastOrderDate
	}
	if in.Source != nil {
		c.Source = *in.Source
	}
}

func customerFilter(r *http.Request) (domain.CustomerFilter, error) {
	q := newQuery(r)
	f := domain.CustomerFilter{
		Search:       q.str("search"),
		Status:       domain.CustomerStatus(q.enum("status", customerStatuses...)),
		CustomerType: domain.CustomerType(q.enum("customerType", customerTypes...)),
		Source:       domain.CustomerSource(q.enum("source", customerSources...)),
		ListParams:   q.page(domain.CustomerSortKeys),
	}
	return f, q.err()
}

func (s *Server) apiCustomers(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	f, err := customerFilter(r)
	if err != nil {
		writeError(w, r, "list customers", err)
		return
	}
	list, pg, err := s.customers.List(r.Context(), f)
	if err != nil {
		writeError(w, r, "list customers", err)
		return
	}
	ok(w, map[string]any{"customers": list, "pagination": pg}, "")
}

func (s *Server) apiCustomer(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "customer", err)
		return
	}
	c, err := s.customers.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, "customer", err)
		return
	}
	ok(w, c, "")
}

func (s *Server) apiCustomerCreate(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	var in customerInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, "create customer", err)
		return
	}
	if err := requireFields(map[string]bool{"name": in.Name != nil, "phone": in.Phone != nil}); err != nil {
		writeError(w, r, "create customer", err)
		return
	}
	c := &domain.Customer{TotalSpent: decimal.Zero}
	in.apply(c)
	if err := s.customers.Create(r.Context(), c); err != nil {
		writeError(w, r, "create customer", err)
		return
	}
	created(w, c, "Customer created successfully")
}

func (s *Server) apiCustomerUpdate(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "customer", err)
		return
	}
	var in customerInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, "update customer", err)
		return
	}
	c, err := s.customers.Update(r.Context(), id, in.apply)
	if err != nil {
		writeError(w, r, "customer", err)
		return
	}
	ok(w, c, "Customer updated successfully")
}

func (s *Server) apiCustomerDelete(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, "customer", err)
		return
	}
	if err := s.customers.Delete(r.Context(), id); err != nil {
		writeError(w, r, "customer", err)
		return
	}
	ok(w, nil, "Customer deleted successfully")
}

func (s *Server) apiCustomersExport(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	f, err := customerFilter(r)
	if err != nil {
		writeError(w, r, "export customers", err)
		return
	}
	sheet, err := xlsx.NewCustomerSheet()
	if err != nil {
		writeError(w, r, "export customers", err)
		return
	}
	defer sheet.Close()
	if err := s.customers.Each(r.Context(), f, sheet.Add); err != nil {
		writeError(w, r, "export customers", err)
		return
	}
	writeWorkbook(w, r, xlsx.Filename("customers", time.Now()), sheet)
}
