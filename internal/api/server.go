package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mohammed-adachi/marjane-products-pipeline/internal/engine"
	"github.com/mohammed-adachi/marjane-products-pipeline/internal/search"
)

type Server struct {
	Engine *engine.Engine
	Logger *logrus.Entry
	Router *http.ServeMux
}

func NewServer(eng *engine.Engine, logger *logrus.Entry) *Server {
	s := &Server{
		Engine: eng,
		Logger: logger,
		Router: http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.HandleFunc("/api/v1/search", s.handleSearch)
	s.Router.HandleFunc("/api/v1/search/category", s.handleSearchByCategory)
	s.Router.HandleFunc("/api/v1/similar", s.handleSimilar)
	s.Router.HandleFunc("/api/v1/scrape", s.handleScrape)
	s.Router.HandleFunc("/api/v1/status", s.handleStatus)
}

func (s *Server) Start(addr string) error {
	s.Logger.Infof("Starting API Server on %s", addr)
	return http.ListenAndServe(addr, s.Router)
}

// Responses
type ErrorResponse struct {
	Error string `json:"error"`
}

type SearchResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
}

type SimilarResponse struct {
	Index   int             `json:"index"`
	Results []search.Result `json:"results"`
}

type StatusResponse struct {
	Ready           bool   `json:"ready"`
	ProductsLoaded  int    `json:"products_loaded"`
	VocabularyTerms int    `json:"vocabulary_terms"`
	LastBuild       string `json:"last_build"`
	LastError       string `json:"last_error,omitempty"`
}

type ScrapeResponse struct {
	Products int `json:"products"`
}

// Handlers

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Query 'q' is required"})
		return
	}

	results, err := s.Engine.Search(query, s.topK(r))
	if err != nil {
		s.queryError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, SearchResponse{Query: query, Results: results})
}

func (s *Server) handleSearchByCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	if query == "" || category == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Query 'q' and 'category' are required"})
		return
	}

	results, err := s.Engine.SearchByCategory(query, category, s.topK(r))
	if err != nil {
		s.queryError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, SearchResponse{Query: query, Results: results})
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	index, err := strconv.Atoi(r.URL.Query().Get("index"))
	if err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Query 'index' must be an integer"})
		return
	}

	results, err := s.Engine.SimilarProducts(index, s.topK(r))
	if err != nil {
		s.queryError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, SimilarResponse{Index: index, Results: results})
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	count, err := s.Engine.RunScrape(r.Context())
	if err != nil {
		jsonResponse(w, http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		return
	}

	jsonResponse(w, http.StatusOK, ScrapeResponse{Products: count})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats := s.Engine.StatsSnapshot()

	resp := StatusResponse{
		Ready:           s.Engine.Ready(),
		ProductsLoaded:  stats.ProductsLoaded,
		VocabularyTerms: stats.VocabularyTerms,
		LastError:       stats.LastError,
	}
	if !stats.LastBuild.IsZero() {
		resp.LastBuild = stats.LastBuild.Format(time.RFC3339)
	}

	jsonResponse(w, http.StatusOK, resp)
}

// queryError maps the search error taxonomy to HTTP statuses: not-ready is
// a service condition, bad references are client errors.
func (s *Server) queryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, search.ErrNotReady):
		jsonResponse(w, http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	case errors.Is(err, search.ErrInvalidIndex):
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, search.ErrUnknownCategory), errors.Is(err, search.ErrNoCategories):
		jsonResponse(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

func (s *Server) topK(r *http.Request) int {
	if k, err := strconv.Atoi(r.URL.Query().Get("k")); err == nil && k > 0 {
		return k
	}
	return s.Engine.Config.Search.DefaultTopK
}

func jsonResponse(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
