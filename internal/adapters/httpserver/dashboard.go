package httpserver

import "net/http"

func (s *Server) apiDashboardStats(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	st, err := s.dashboard.Overview(r.Context())
	if err != nil {
		writeError(w, r, "dashboard stats", err)
		return
	}
	ok(w, st, "")
}

func (s *Server) apiSalesChart(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	points, err := s.dashboard.SalesChart(r.Context())
	if err != nil {
		writeError(w, r, "sales chart", err)
		return
	}
	ok(w, points, "")
}

func (s *Server) apiCategoryChart(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	wedges, err := s.dashboard.CategoryChart(r.Context())
	if err != nil {
		writeError(w, r, "category chart", err)
		return
	}
	ok(w, wedges, "")
}

func (s *Server) apiRecentContacts(w http.ResponseWriter, r *http.Request) {
	if _, authed := s.requireAdmin(w, r); !authed {
		return
	}
	list, err := s.dashboard.RecentContacts(r.Context())
	if err != nil {
		writeError(w, r, "recent contacts", err)
		return
	}
	ok(w, list, "")
}
