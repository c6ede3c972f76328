package httpserver

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodveneer/storefront/internal/adapters/imagekit"
	"github.com/woodveneer/storefront/internal/adapters/xlsx"
	"github.com/woodveneer/storefront/internal/domain"
)

type productList struct {
	Products   []domain.Product  `json:"products"`
	Pagination domain.Pagination `json:"pagination"`
}

func (h *harness) seedProduct(name, category string, price int64, colors ...string) domain.Product {
	h.t.Helper()
	res := h.do(http.MethodPost, "/api/products", "manager", map[string]any{
		"name": name, "category": category, "price": price, "colors": colors,
	})
	require.Equal(h.t, http.StatusCreated, res.Code, string(res.Raw))
	var p domain.Product
	res.data(h.t, &p)
	return p
}

func TestLoginAndVerify(t *testing.T) {
	h := newHarness(t)

	res := h.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "writer", "password": "secret1"})
	require.Equal(t, http.StatusOK, res.Code, string(res.Raw))
	var sess struct {
		Token string       `json:"token"`
		User  domain.Admin `json:"user"`
	}
	res.data(t, &sess)
	require.NotEmpty(t, sess.Token)
	assert.NotContains(t, string(res.Raw), "passwordHash")

	h.tokens["fresh"] = sess.Token
	res = h.do(http.MethodGet, "/api/auth/verify", "fresh", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var v struct {
		User    domain.Admin `json:"user"`
		IsValid bool         `json:"isValid"`
	}
	res.data(t, &v)
	assert.True(t, v.IsValid)
	assert.Equal(t, "writer", v.User.Username)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	h := newHarness(t)

	wrong := h.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "writer", "password": "nope"})
	unknown := h.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "ghost", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.Equal(t, wrong.Body.Error, unknown.Body.Error)

	missing := h.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "writer"})
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}

func TestDeactivatedAdminTokenRejected(t *testing.T) {
	h := newHarness(t)
	res := h.do(http.MethodDelete, "/api/admins/"+h.admins["writer"].ID.String(), "root", nil)
	require.Equal(t, http.StatusOK, res.Code, string(res.Raw))

	res = h.do(http.MethodGet, "/api/auth/verify", "writer", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	res = h.do(http.MethodGet, "/api/contacts", "writer", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestAdminRoutesNeedToken(t *testing.T) {
	h := newHarness(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/products"},
		{http.MethodGet, "/api/contacts"},
		{http.MethodGet, "/api/contact"},
		{http.MethodGet, "/api/customers"},
		{http.MethodGet, "/api/admins"},
		{http.MethodPut, "/api/settings"},
		{http.MethodGet, "/api/dashboard/stats"},
		{http.MethodGet, "/api/imagekit-auth"},
		{http.MethodGet, "/api/products/export"},
	} {
		res := h.do(tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code, tc.method+" "+tc.path)
		assert.False(t, res.Body.Success)
	}

	h.tokens["bogus"] = "abc.def.ghi"
	res := h.do(http.MethodGet, "/api/contacts", "bogus", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestProductFilterQuery(t *testing.T) {
	h := newHarness(t)
	h.seedProduct("Oak panel", "wall", 100, "Oak")
	h.seedProduct("Walnut panel", "wall", 300, "Walnut")
	h.seedProduct("Ash panel", "floor", 200, "Ash", "Oak")

	list := func(q string) productList {
		res := h.do(http.MethodGet, "/api/products?"+q, "", nil)
		require.Equal(t, http.StatusOK, res.Code, string(res.Raw))
		var out productList
		res.data(t, &out)
		return out
	}

	got := list("colors=Oak,%20Walnut,")
	assert.EqualValues(t, 3, got.Pagination.Total, "colors are a union")

	got = list("category=wall&minPrice=150")
	require.Len(t, got.Products, 1)
	assert.Equal(t, "Walnut panel", got.Products[0].Name)

	got = list("minPrice=500&maxPrice=100")
	assert.Empty(t, got.Products)

	got = list("sortBy=price&sortOrder=asc&limit=2&page=2")
	require.Len(t, got.Products, 1)
	assert.Equal(t, "Walnut panel", got.Products[0].Name)
	assert.Equal(t, domain.Pagination{Page: 2, Limit: 2, Total: 3, TotalPages: 2}, got.Pagination)

	got = list("search=PANEL")
	assert.Len(t, got.Products, 3)

	for _, q := range []string{"sortBy=password", "limit=101", "page=0", "minPrice=cheap", "isActive=maybe"} {
		res := h.do(http.MethodGet, "/api/products?"+q, "", nil)
		assert.Equal(t, http.StatusBadRequest, res.Code, q)
		assert.NotEmpty(t, res.Body.Details, q)
	}
}

func TestProductFiltersEndpoint(t *testing.T) {
	h := newHarness(t)
	res := h.do(http.MethodGet, "/api/products/filters", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var empty domain.ProductFilterOptions
	res.data(t, &empty)
	assert.True(t, empty.PriceRange.Max.Equal(domain.DefaultPriceMax))

	h.seedProduct("A", "wall", 120, "Oak")
	h.seedProduct("B", "floor", 80, "Ash", "Oak")
	res = h.do(http.MethodGet, "/api/products/filters", "", nil)
	var opts domain.ProductFilterOptions
	res.data(t, &opts)
	assert.Equal(t, []string{"floor", "wall"}, opts.Categories)
	assert.Equal(t, []string{"Ash", "Oak"}, opts.Colors)
	assert.True(t, opts.PriceRange.Min.Equal(decimal.NewFromInt(80)))
	assert.True(t, opts.PriceRange.Max.Equal(decimal.NewFromInt(120)))
}

func TestProductValidationAndPartialUpdate(t *testing.T) {
	h := newHarness(t)

	res := h.do(http.MethodPost, "/api/products", "manager", map[string]any{"name": "No price"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	res = h.do(http.MethodPost, "/api/products", "manager", map[string]any{"name": "X", "price": -1})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	res = h.do(http.MethodPost, "/api/products", "manager", `{"name": "X", "price": `)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	p := h.seedProduct("Oak", "wall", 100, "Oak")
	res = h.do(http.MethodPut, "/api/products/"+p.ID.String(), "writer", map[string]any{"price": 150})
	require.Equal(t, http.StatusOK, res.Code, string(res.Raw))
	var got domain.Product
	res.data(t, &got)
	assert.Equal(t, "Oak", got.Name, "absent fields untouched")
	assert.True(t, got.Price.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, []string{"Oak"}, got.Colors)

	res = h.do(http.MethodPut, "/api/products/"+uuid.NewString(), "writer", map[string]any{"price": 1})
	assert.Equal(t, http.StatusNotFound, res.Code)
	res = h.do(http.MethodGet, "/api/products/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = h.do(http.MethodDelete, "/api/products/"+p.ID.String(), "writer", nil)
	assert.Equal(t, http.StatusOK, res.Code)
	res = h.do(http.MethodGet, "/api/products/"+p.ID.String(), "", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestFeaturedProducts(t *testing.T) {
	h := newHarness(t)
	a := h.seedProduct("A", "wall", 1)
	b := h.seedProduct("B", "wall", 2)

	res := h.do(http.MethodPut, "/api/products/featured", "manager", map[string]any{"productIds": []string{b.ID.String(), a.ID.String()}})
	require.Equal(t, http.StatusOK, res.Code, string(res.Raw))

	res = h.do(http.MethodGet, "/api/products/featured", "", nil)
	var list []domain.Product
	res.data(t, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].Name)

	res = h.do(http.MethodPut, "/api/products/featured", "manager", map[string]any{"productIds": []string{uuid.NewString()}})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestCategorySlugAndErrors(t *testing.T) {
	h := newHarness(t)

	res := h.do(http.MethodPost, "/api/categories", "writer", map[string]any{"name": "Vân Sồi"})
	require.Equal(t, http.StatusCreated, res.Code, string(res.Raw))
	var c domain.Category
	res.data(t, &c)
	assert.Equal(t, "van-soi", c.Slug)
	assert.True(t, c.IsActive)

	res = h.do(http.MethodPost, "/api/categories", "writer", map[string]any{"name": "Vân  sồi!"})
	res.data(t, &c)
	assert.Equal(t, "van-soi-2", c.Slug)

	res = h.do(http.MethodPost, "/api/categories", "writer", map[string]any{"description": "no name"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	require.Len(t, res.Body.Details, 1)
	assert.Equal(t, "name", res.Body.Details[0].Field)

	res = h.do(http.MethodGet, "/api/categories/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = h.do(http.MethodGet, "/api/categories?sortBy=name&sortOrder=asc", "", nil)
	var list struct {
		Categories []domain.Category `json:"categories"`
	}
	res.data(t, &list)
	assert.Len(t, list.Categories, 2)
}

func TestOptionValidation(t *testing.T) {
	h := newHarness(t)
	res := h.do(http.MethodPost, "/api/options", "writer", map[string]any{"type": "material", "name": "x", "value": "x"})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = h.do(http.MethodPost, "/api/options", "writer", map[string]any{"type": "size", "name": "Lớn", "value": "L", "hexColor": "#ffffff"})
	require.Equal(t, http.StatusCreated, res.Code, string(res.Raw))
	var o domain.ProductOption
	res.data(t, &o)
	assert.Nil(t, o.HexColor)

	res = h.do(http.MethodGet, "/api/options?type=size", "", nil)
	assert.Equal(t, http.StatusOK, res.Code)
	res = h.do(http.MethodGet, "/api/options?type=weight", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestBlogPublishFlow(t *testing.T) {
	h := newHarness(t)
	res := h.do(http.MethodPost, "/api/blog", "writer", map[string]any{"title": "Xu hướng 2024", "content": "...", "author": "An"})
	require.Equal(t, http.StatusCreated, res.Code, string(res.Raw))
	var b domain.BlogPost
	res.data(t, &b)
	assert.Equal(t, "xu-huong-2024", b.Slug)
	assert.Nil(t, b.PublishedAt)

	res = h.do(http.MethodPut, "/api/blog/"+b.ID.String(), "writer", map[string]any{"isPublished": true})
	res.data(t, &b)
	assert.NotNil(t, b.PublishedAt)

	res = h.do(http.MethodGet, "/api/blog?isPublished=true", "", nil)
	var list struct {
		Posts []domain.BlogPost `json:"posts"`
	}
	res.data(t, &list)
	assert.Len(t, list.Posts, 1)
}

func TestPublicContactSubmission(t *testing.T) {
	h := newHarness(t)

	res := h.do(http.MethodPost, "/api/contact", "", map[string]any{
		"name": " Hùng ", "phone": "0903 111 222", "product": "Vân óc chó",
		"productId": "not-a-uuid", "email": "hung@example.com",
	})
	require.Equal(t, http.StatusOK, res.Code, string(res.Raw))
	var ack struct {
		ID      uuid.UUID `json:"id"`
		Message string    `json:"message"`
	}
	res.data(t, &ack)
	assert.Equal(t, "Yêu cầu tư vấn đã được gửi thành công!", ack.Message)

	res = h.do(http.MethodGet, "/api/contact/"+ack.ID.String(), "writer", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var c domain.ContactRequest
	res.data(t, &c)
	assert.Equal(t, "Hùng", c.Name)
	assert.Equal(t, domain.ContactPending, c.Status)
	assert.Nil(t, c.ProductID, "non-UUID productId is dropped")
	require.NotNil(t, c.ProductName)
	assert.Equal(t, "Vân óc chó", *c.ProductName)

	res = h.do(http.MethodPost, "/api/contact", "", map[string]any{"name": "No phone"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	res = h.do(http.MethodPost, "/api/contact", "", map[string]any{"name": "x", "phone": "1", "email": "nope"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestContactStatusAndListing(t *testing.T) {
	h := newHarness(t)
	res := h.do(http.MethodPost, "/api/contact", "", map[string]any{"name": "Mai", "phone": "1"})
	var ack struct {
		ID uuid.UUID `json:"id"`
	}
	res.data(t, &ack)
	h.do(http.MethodPost, "/api/contact", "", map[string]any{"name": "Tú", "phone": "2"})

	res = h.do(http.MethodPatch, "/api/contact/"+ack.ID.String(), "writer", map[string]any{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	res = h.do(http.MethodPatch, "/api/contact/"+ack.ID.String(), "writer", map[string]any{"status": "contacted"})
	require.Equal(t, http.StatusOK, res.Code)

	var reqs struct {
		ContactRequests []domain.ContactRequest `json:"contactRequests"`
		Pagination      domain.Pagination       `json:"pagination"`
	}
	res = h.do(http.MethodGet, "/api/contact?status=contacted", "writer", nil)
	res.data(t, &reqs)
	require.Len(t, reqs.ContactRequests, 1)
	assert.Equal(t, "Mai", reqs.ContactRequests[0].Name)

	res = h.do(http.MethodGet, "/api/contact?status=all", "writer", nil)
	res.data(t, &reqs)
	assert.EqualValues(t, 2, reqs.Pagination.Total)

	var contacts struct {
		Contacts []domain.ContactRequest `json:"contacts"`
	}
	res = h.do(http.MethodGet, "/api/contacts?search=t%C3%BA", "writer", nil)
	res.data(t, &contacts)
	assert.Len(t, contacts.Contacts, 1)

	res = h.do(http.MethodDelete, "/api/contact/"+ack.ID.String(), "writer", nil)
	assert.Equal(t, http.StatusOK, res.Code)
	res = h.do(http.MethodGet, "/api/contacts/"+ack.ID.String(), "writer", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestConvertContactTwiceConflicts(t *testing.T) {
	h := newHarness(t)
	res := h.do(http.MethodPost, "/api/contacts", "writer", map[string]any{"name": "Bảo", "phone": "0911", "message": "Cần báo giá"})
	require.Equal(t, http.StatusCreated, res.Code, string(res.Raw))
	var lead domain.ContactRequest
	res.data(t, &lead)

	body := map[string]any{"contactId": lead.ID, "customerType": "business", "company": "Nội thất Bảo An"}
	res = h.do(http.MethodPost, "/api/contacts/convert-to-customer", "writer", body)
	require.Equal(t, http.StatusCreated, res.Code, string(res.Raw))
	var cust domain.Customer
	res.data(t, &cust)
	assert.Equal(t, domain.CustomerBusiness, cust.CustomerType)
	assert.Equal(t, domain.SourceContact, cust.Source)
	assert.Equal(t, "Chuyển đổi từ liên hệ: Cần báo giá", cust.Notes)

	res = h.do(http.MethodPost, "/api/contacts/convert-to-customer", "writer", body)
	assert.Equal(t, http.StatusConflict, res.Code)

	res = h.do(http.MethodGet, "/api/contacts/"+lead.ID.String(), "writer", nil)
	res.data(t, &lead)
	assert.Equal(t, domain.ContactCompleted, lead.Status)

	res = h.do(http.MethodPost, "/api/contacts/convert-to-customer", "writer", map[string]any{"contactId": uuid.New()})
	assert.Equal(t, http.StatusNotFound, res.Code)
	res = h.do(http.MethodPost, "/api/contacts/convert-to-customer", "writer", map[string]any{"customerType": "business"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestCustomerCRUDAndExport(t *testing.T) {
	h := newHarness(t)
	res := h.do(http.MethodPost, "/api/customers", "writer", map[string]any{
		"name": "Công ty Gỗ Việt", "phone": "028 3838", "company": "Gỗ Việt", "totalSpent": "1500000",
	})
	require.Equal(t, http.StatusCreated, res.Code, string(res.Raw))
	var c domain.Customer
	res.data(t, &c)
	assert.Equal(t, domain.CustomerPotential, c.Status)

	res = h.do(http.MethodPut, "/api/customers/"+c.ID.String(), "writer", map[string]any{"status": "active"})
	require.Equal(t, http.StatusOK, res.Code)
	res = h.do(http.MethodPut, "/api/customers/"+c.ID.String(), "writer", map[string]any{"status": "vip"})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	var list struct {
		Customers []domain.Customer `json:"customers"`
	}
	res = h.do(http.MethodGet, "/api/customers?search=3838&status=active", "writer", nil)
	res.data(t, &list)
	assert.Len(t, list.Customers, 1)

	res = h.do(http.MethodGet, "/api/customers/export", "writer", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, xlsx.ContentType, res.Header.Get("Content-Type"))
	assert.Contains(t, res.Header.Get("Content-Disposition"), "customers-")
	assert.True(t, bytes.HasPrefix(res.Raw, []byte("PK")), "xlsx is a zip archive")
}

func TestProductExport(t *testing.T) {
	h := newHarness(t)
	h.seedProduct("Oak", "wall", 100, "Oak")
	res := h.do(http.MethodGet, "/api/products/export?category=wall", "writer", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, xlsx.ContentType, res.Header.Get("Content-Type"))
}

func TestAdminManagementPermissions(t *testing.T) {
	h := newHarness(t)
	newAdmin := map[string]any{"username": "newbie", "email": "newbie@example.com", "fullName": "Newbie", "password": "secret1"}

	res := h.do(http.MethodPost, "/api/admins", "manager", newAdmin)
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = h.do(http.MethodPost, "/api/admins", "root", newAdmin)
	require.Equal(t, http.StatusCreated, res.Code, string(res.Raw))
	var a domain.Admin
	res.data(t, &a)
	assert.Equal(t, domain.RoleEditor, a.Role)
	assert.NotContains(t, string(res.Raw), "secret1")

	res = h.do(http.MethodPost, "/api/admins", "root", newAdmin)
	assert.Equal(t, http.StatusConflict, res.Code)

	res = h.do(http.MethodPut, "/api/admins/"+a.ID.String(), "manager", map[string]any{"role": "admin"})
	assert.Equal(t, http.StatusForbidden, res.Code)
	res = h.do(http.MethodPut, "/api/admins/"+a.ID.String(), "manager", map[string]any{"fullName": "Renamed"})
	assert.Equal(t, http.StatusOK, res.Code)

	res = h.do(http.MethodDelete, "/api/admins/"+h.admins["root"].ID.String(), "root", nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = h.do(http.MethodGet, "/api/admins", "writer", nil)
	var list []domain.Admin
	res.data(t, &list)
	assert.Len(t, list, 4)
}

func TestSettingsPublicReadAdminWrite(t *testing.T) {
	h := newHarness(t)
	res := h.do(http.MethodGet, "/api/settings", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var st domain.SiteSettings
	res.data(t, &st)
	assert.Equal(t, "WoodVeneer Pro", st.SiteName)

	res = h.do(http.MethodPut, "/api/settings", "writer", map[string]any{"contactEmail": "bad"})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = h.do(http.MethodPut, "/api/settings", "writer", map[string]any{
		"siteName": "Gỗ Đẹp", "maintenance": map[string]any{"enabled": true, "message": "Bảo trì"},
	})
	require.Equal(t, http.StatusOK, res.Code, string(res.Raw))

	res = h.do(http.MethodGet, "/api/settings", "", nil)
	res.data(t, &st)
	assert.Equal(t, "Gỗ Đẹp", st.SiteName)
	assert.True(t, st.Maintenance.Data().Enabled)
	assert.Equal(t, "info@woodveneerpro.com", st.ContactEmail, "untouched fields keep their value")
}

func multipartUpload(t *testing.T, field string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, "photo.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func (h *harness) upload(as string, body *bytes.Buffer, contentType string) *response {
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+h.tokens[as])
	return h.serve(req)
}

func TestUploadImage(t *testing.T) {
	h := newHarness(t)
	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 640, 320))))

	body, ct := multipartUpload(t, "file", img.Bytes())
	res := h.upload("writer", body, ct)
	require.Equal(t, http.StatusOK, res.Code, string(res.Raw))
	var f domain.StoredFile
	res.data(t, &f)
	assert.Equal(t, "image/png", f.Type)
	assert.FileExists(t, filepath.Join(h.dir, f.Filename))
	assert.NotEmpty(t, f.ThumbnailURL)

	served := h.do(http.MethodGet, f.URL, "", nil)
	assert.Equal(t, http.StatusOK, served.Code)
	listing := h.do(http.MethodGet, "/uploads/", "", nil)
	assert.Equal(t, http.StatusNotFound, listing.Code)
}

func TestUploadRejectsOversizeAndWrongType(t *testing.T) {
	h := newHarness(t)

	big := make([]byte, 6<<20)
	copy(big, []byte("\x89PNG\r\n\x1a\n"))
	body, ct := multipartUpload(t, "file", big)
	res := h.upload("writer", body, ct)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	body, ct = multipartUpload(t, "file", []byte("<?php echo 1; ?>"))
	res = h.upload("writer", body, ct)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	body, ct = multipartUpload(t, "image", []byte("x"))
	res = h.upload("writer", body, ct)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	entries, err := os.ReadDir(h.dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing is written for rejected uploads")
}

func TestImageKitAuth(t *testing.T) {
	h := newHarness(t)
	res := h.do(http.MethodGet, "/api/imagekit-auth", "writer", nil)
	assert.Equal(t, http.StatusServiceUnavailable, res.Code)

	h = newHarness(t, func(d *Deps) {
		d.ImageKit = &imagekit.Signer{PublicKey: "public_x", PrivateKey: "private_x", URLEndpoint: "https://ik.imagekit.io/demo", Folder: "product"}
	})
	res = h.do(http.MethodGet, "/api/imagekit-auth", "writer", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var p imagekit.Params
	require.NoError(t, json.Unmarshal(res.Raw, &p))
	assert.Equal(t, imagekit.Signature("private_x", p.Token, p.Expire), p.Signature)
	assert.Equal(t, "product", p.Folder)
}

func TestDashboardEndpoints(t *testing.T) {
	h := newHarness(t)
	h.seedProduct("A", "wall", 1)
	h.do(http.MethodPost, "/api/contact", "", map[string]any{"name": "Lead", "phone": "1"})

	for _, path := range []string{"/api/dashboard/stats", "/api/dashboard/sales-chart", "/api/dashboard/category-chart", "/api/dashboard/recent-contacts"} {
		res := h.do(http.MethodGet, path, "writer", nil)
		assert.Equal(t, http.StatusOK, res.Code, path)
		assert.True(t, res.Body.Success, path)
	}

	res := h.do(http.MethodGet, "/api/dashboard/stats", "writer", nil)
	var st domain.DashboardStats
	res.data(t, &st)
	assert.EqualValues(t, 1, st.TotalProducts.Value)
	assert.EqualValues(t, 1, st.NewContacts.Value)
}

func TestPublicRateLimit(t *testing.T) {
	h := newHarness(t, func(d *Deps) { d.PublicRate = 2 })
	lead := map[string]any{"name": "Spam", "phone": "1"}

	assert.Equal(t, http.StatusOK, h.do(http.MethodPost, "/api/contact", "", lead).Code)
	assert.Equal(t, http.StatusOK, h.do(http.MethodPost, "/api/contact", "", lead).Code)
	res := h.do(http.MethodPost, "/api/contact", "", lead)
	assert.Equal(t, http.StatusTooManyRequests, res.Code)
	assert.NotEmpty(t, res.Header.Get("Retry-After"))

	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/products", "", nil).Code, "reads are not limited")
}

func TestCORSAndSecurityHeaders(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	res := h.serve(req)
	assert.Equal(t, http.StatusNoContent, res.Code)
	assert.Equal(t, "https://shop.example.com", res.Header.Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	res = h.serve(req)
	assert.Empty(t, res.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "nosniff", res.Header.Get("X-Content-Type-Options"))
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
}

func TestMethodNotAllowed(t *testing.T) {
	h := newHarness(t)
	res := h.do(http.MethodPatch, "/api/products", "root", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, res.Code)
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	res := h.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestNoFiltersMatchesWidestBounds(t *testing.T) {
	h := newHarness(t)
	h.seedProduct("Oak", "wall", 0, "Oak")
	h.seedProduct("Walnut", "floor", 999999, "Walnut")
	inactive := h.seedProduct("Ash", "wall", 500)
	h.do(http.MethodPut, "/api/products/"+inactive.ID.String(), "writer", map[string]any{"isActive": false})

	var plain, wide productList
	h.do(http.MethodGet, "/api/products?limit=100", "", nil).data(t, &plain)
	h.do(http.MethodGet, "/api/products?limit=100&minPrice=0&maxPrice=1000000&search=", "", nil).data(t, &wide)
	assert.EqualValues(t, 3, plain.Pagination.Total, "inactive products are listed without isActive")
	assert.Equal(t, plain.Pagination, wide.Pagination)
	assert.Len(t, wide.Products, len(plain.Products))
}
