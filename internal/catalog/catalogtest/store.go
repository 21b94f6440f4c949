// Package catalogtest serves a scripted products.json endpoint for tests.
package catalogtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/timecost/internal/catalog"
)

const emptyPage = `{"products":[]}`

// Store answers GET /products.json?page=n. Page n is served from Pages[n-1];
// any page past the end is the empty sentinel. Raw and Status override
// individual pages.
type Store struct {
	Pages  [][]catalog.Product
	Raw    map[int]string
	Status map[int]int

	mu        sync.Mutex
	requested []int
}

// NewServer starts an httptest server for store and closes it when t finishes.
func NewServer(t testing.TB, store *Store) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(store.Router())
	t.Cleanup(srv.Close)
	return srv
}

// Router exposes the chi router so it can be mounted elsewhere.
func (s *Store) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/products.json", s.products)
	return r
}

// Requested returns the page numbers requested so far, in order.
func (s *Store) Requested() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.requested))
	copy(out, s.requested)
	return out
}

func (s *Store) products(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		http.Error(w, "bad page", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.requested = append(s.requested, page)
	s.mu.Unlock()

	if status, ok := s.Status[page]; ok {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if raw, ok := s.Raw[page]; ok {
		_, _ = w.Write([]byte(raw))
		return
	}
	if page > len(s.Pages) || len(s.Pages[page-1]) == 0 {
		_, _ = w.Write([]byte(emptyPage))
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"products": s.Pages[page-1]})
}
