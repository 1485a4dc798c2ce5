// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"gamecatalog/internal/app"
	"gamecatalog/internal/domain"
)

// Handlers serves the public API. Catalog and Snapshots are optional; their
// routes answer 503 when the backing service is not configured.
type Handlers struct {
	Catalog   *app.CatalogService
	Offers    *app.OfferService
	Snapshots *app.SnapshotService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type gameResponse struct {
	domain.GameDetail
	Offers app.OffersView `json:"offers"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/games", h.listGames)
		r.Get("/games/{id}", h.getGame)
		r.Get("/home", h.home)
		r.Get("/genres", h.genres)
		r.Get("/platforms", h.platforms)
		r.Get("/offers", h.offers)
		r.Get("/offers/history", h.history)
	})
}

// localePref prefers an explicit ?locale= over the Accept-Language header.
func localePref(r *http.Request) string {
	if l := r.URL.Query().Get("locale"); l != "" {
		return l
	}
	return r.Header.Get("Accept-Language")
}

// setLocalized marks a body whose prices depend on Accept-Language so shared
// caches key on it along with the URL.
func setLocalized(w http.ResponseWriter, tag string) {
	w.Header().Set("Content-Language", tag)
	w.Header().Add("Vary", "Accept-Language")
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps service errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "resource not found")
	case errors.Is(err, context.DeadlineExceeded):
		writeProblem(w, http.StatusGatewayTimeout, "Gateway Timeout", "upstream did not answer in time")
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusBadGateway, "Bad Gateway", "upstream service unavailable")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		// Log but don't fail the whole response; return empty ETag and best-effort body.
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON answers 304 when the client already has this version.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func queryInt(r *http.Request, k string) (int, bool) {
	v := r.URL.Query().Get(k)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

func (h *Handlers) catalogReady(w http.ResponseWriter) bool {
	if h.Catalog == nil {
		writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", "catalog is not configured")
		return false
	}
	return true
}

func (h *Handlers) listGames(w http.ResponseWriter, r *http.Request) {
	if !h.catalogReady(w) {
		return
	}
	q := r.URL.Query()
	bq := domain.BrowseQuery{
		Search:   q.Get("search"),
		Genre:    q.Get("genres"),
		Platform: q.Get("platforms"),
		Ordering: q.Get("ordering"),
	}
	var ok1, ok2, ok3 bool
	bq.Page, ok1 = queryInt(r, "page")
	bq.PageSize, ok2 = queryInt(r, "page_size")
	bq.Year, ok3 = queryInt(r, "year")
	if !ok1 || !ok2 || !ok3 {
		writeProblem(w, http.StatusBadRequest, "Invalid query", "page, page_size and year must be integers")
		return
	}

	out, err := h.Catalog.Browse(r.Context(), bq)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) getGame(w http.ResponseWriter, r *http.Request) {
	if !h.catalogReady(w) {
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	gd, err := h.Catalog.Game(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := gameResponse{GameDetail: gd}
	if h.Offers != nil {
		if resp.Offers, err = h.Offers.ForGame(r.Context(), gd.Game, localePref(r)); err != nil {
			writeError(w, err)
			return
		}
		setLocalized(w, resp.Offers.Locale)
	}
	writeJSON(w, r, resp)
}

func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	if !h.catalogReady(w) {
		return
	}
	out, err := h.Catalog.Home(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) genres(w http.ResponseWriter, r *http.Request) {
	if !h.catalogReady(w) {
		return
	}
	out, err := h.Catalog.Genres(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) platforms(w http.ResponseWriter, r *http.Request) {
	if !h.catalogReady(w) {
		return
	}
	out, err := h.Catalog.Platforms(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) offers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.Offers.Lookup(r.Context(), q.Get("title"), q.Get("steam_app_id"), localePref(r))
	if err != nil {
		writeError(w, err)
		return
	}
	setLocalized(w, out.Locale)
	writeJSON(w, r, out)
}

func (h *Handlers) history(w http.ResponseWriter, r *http.Request) {
	if h.Snapshots == nil {
		writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", "price history is not configured")
		return
	}
	limit, ok := queryInt(r, "limit")
	if !ok || limit < 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be a non-negative integer")
		return
	}
	out, err := h.Snapshots.History(r.Context(), r.URL.Query().Get("title"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}
