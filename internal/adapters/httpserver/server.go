package httpserver

import (
	"io/fs"
	"net/http"

	"github.com/woodveneer/storefront/internal/adapters/imagekit"
	"github.com/woodveneer/storefront/internal/usecase"
)

type Server struct {
	mux        *http.ServeMux
	products   *usecase.ProductUC
	categories *usecase.CategoryUC
	options    *usecase.OptionUC
	blog       *usecase.BlogUC
	contacts   *usecase.ContactUC
	customers  *usecase.CustomerUC
	admins     *usecase.AdminUC
	auth       *usecase.AuthUC
	settings   *usecase.SettingsUC
	dashboard  *usecase.DashboardUC
	uploads    *usecase.UploadUC
	imagekit   *imagekit.Signer
	uploadDir  string
}

type Deps struct {
	Products   *usecase.ProductUC
	Categories *usecase.CategoryUC
	Options    *usecase.OptionUC
	Blog       *usecase.BlogUC
	Contacts   *usecase.ContactUC
	Customers  *usecase.CustomerUC
	Admins     *usecase.AdminUC
	Auth       *usecase.AuthUC
	Settings   *usecase.SettingsUC
	Dashboard  *usecase.DashboardUC
	Uploads    *usecase.UploadUC
	ImageKit   *imagekit.Signer
	// UploadDir is served read-only under /uploads/.
	UploadDir   string
	CORSOrigins []string
	// PublicRate is the per-IP, per-minute budget for public POST endpoints.
	PublicRate int
}

func New(d Deps) http.Handler {
	s := &Server{
		mux:        http.NewServeMux(),
		products:   d.Products,
		categories: d.Categories,
		options:    d.Options,
		blog:       d.Blog,
		contacts:   d.Contacts,
		customers:  d.Customers,
		admins:     d.Admins,
		auth:       d.Auth,
		settings:   d.Settings,
		dashboard:  d.Dashboard,
		uploads:    d.Uploads,
		imagekit:   d.ImageKit,
		uploadDir:  d.UploadDir,
	}
	rate := d.PublicRate
	if rate <= 0 {
		rate = 10
	}

	s.routes()
	return Chain(s.mux,
		CORS(d.CORSOrigins),
		PublicRateLimit(map[string]int{
			"/api/contact":    rate,
			"/api/auth/login": rate,
		}),
		SecurityHeaders,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	if s.uploadDir != "" {
		s.mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(noDirFS{http.Dir(s.uploadDir)})))
	}
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("POST /api/auth/login", s.apiLogin)
	s.mux.HandleFunc("POST /api/auth/logout", s.apiLogout)
	s.mux.HandleFunc("GET /api/auth/verify", s.apiVerify)

	s.mux.HandleFunc("GET /api/products", s.apiProducts)
	s.mux.HandleFunc("POST /api/products", s.apiProductCreate)
	s.mux.HandleFunc("GET /api/products/filters", s.apiProductFilters)
	s.mux.HandleFunc("GET /api/products/featured", s.apiFeatured)
	s.mux.HandleFunc("PUT /api/products/featured", s.apiFeaturedSet)
	s.mux.HandleFunc("GET /api/products/export", s.apiProductsExport)
	s.mux.HandleFunc("GET /api/products/{id}", s.apiProduct)
	s.mux.HandleFunc("PUT /api/products/{id}", s.apiProductUpdate)
	s.mux.HandleFunc("DELETE /api/products/{id}", s.apiProductDelete)

	s.mux.HandleFunc("GET /api/categories", s.apiCategories)
	s.mux.HandleFunc("POST /api/categories", s.apiCategoryCreate)
	s.mux.HandleFunc("GET /api/categories/{id}", s.apiCategory)
	s.mux.HandleFunc("PUT /api/categories/{id}", s.apiCategoryUpdate)
	s.mux.HandleFunc("DELETE /api/categories/{id}", s.apiCategoryDelete)

	s.mux.HandleFunc("GET /api/options", s.apiOptions)
	s.mux.HandleFunc("POST /api/options", s.apiOptionCreate)
	s.mux.HandleFunc("GET /api/options/{id}", s.apiOption)
	s.mux.HandleFunc("PUT /api/options/{id}", s.apiOptionUpdate)
	s.mux.HandleFunc("DELETE /api/options/{id}", s.apiOptionDelete)

	s.mux.HandleFunc("GET /api/blog", s.apiPosts)
	s.mux.HandleFunc("POST /api/blog", s.apiPostCreate)
	s.mux.HandleFunc("GET /api/blog/{id}", s.apiPost)
	s.mux.HandleFunc("PUT /api/blog/{id}", s.apiPostUpdate)
	s.mux.HandleFunc("DELETE /api/blog/{id}", s.apiPostDelete)

	s.mux.HandleFunc("GET /api/contacts", s.apiContacts)
	s.mux.HandleFunc("POST /api/contacts", s.apiContactCreate)
	s.mux.HandleFunc("POST /api/contacts/convert-to-customer", s.apiConvertContact)
	s.mux.HandleFunc("GET /api/contacts/{id}", s.apiContact)
	s.mux.HandleFunc("PUT /api/contacts/{id}", s.apiContactUpdate)
	s.mux.HandleFunc("DELETE /api/contacts/{id}", s.apiContactDelete)

	s.mux.HandleFunc("POST /api/contact", s.apiContactSubmit)
	s.mux.HandleFunc("GET /api/contact", s.apiContactRequests)
	s.mux.HandleFunc("GET /api/contact/{id}", s.apiContact)
	s.mux.HandleFunc("PATCH /api/contact/{id}", s.apiContactStatus)
	s.mux.HandleFunc("DELETE /api/contact/{id}", s.apiContactDelete)

	s.mux.HandleFunc("GET /api/customers", s.apiCustomers)
	s.mux.HandleFunc("POST /api/customers", s.apiCustomerCreate)
	s.mux.HandleFunc("GET /api/customers/export", s.apiCustomersExport)
	s.mux.HandleFunc("GET /api/customers/{id}", s.apiCustomer)
	s.mux.HandleFunc("PUT /api/customers/{id}", s.apiCustomerUpdate)
	s.mux.HandleFunc("DELETE /api/customers/{id}", s.apiCustomerDelete)

	s.mux.HandleFunc("GET /api/admins", s.apiAdmins)
	s.mux.HandleFunc("POST /api/admins", s.apiAdminCreate)
	s.mux.HandleFunc("GET /api/admins/{id}", s.apiAdmin)
	s.mux.HandleFunc("PUT /api/admins/{id}", s.apiAdminUpdate)
	s.mux.HandleFunc("DELETE /api/admins/{id}", s.apiAdminDelete)

	s.mux.HandleFunc("GET /api/settings", s.apiSettings)
	s.mux.HandleFunc("PUT /api/settings", s.apiSettingsUpdate)

	s.mux.HandleFunc("POST /api/upload", s.apiUpload)
	s.mux.HandleFunc("GET /api/imagekit-auth", s.apiImageKitAuth)

	s.mux.HandleFunc("GET /api/dashboard/stats", s.apiDashboardStats)
	s.mux.HandleFunc("GET /api/dashboard/sales-chart", s.apiSalesChart)
	s.mux.HandleFunc("GET /api/dashboard/category-chart", s.apiCategoryChart)
	s.mux.HandleFunc("GET /api/dashboard/recent-contacts", s.apiRecentContacts)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ok(w, map[string]string{"status": "ok"}, "")
}

// noDirFS hides directory listings from the upload file server.
type noDirFS struct{ root http.FileSystem }

func (n noDirFS) Open(name string) (http.File, error) {
	f, err := n.root.Open(name)
	if err != nil {
		return nil, err
	}
	if st, err := f.Stat(); err == nil && st.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
