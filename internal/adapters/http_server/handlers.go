package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"estate_catalog/internal/catalog"
	"estate_catalog/internal/domain"
)

type Handlers struct {
	Q        *catalog.QueryService
	C        *catalog.CommandService
	MaxLimit int
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
	Field  string `json:"field,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers, adminToken string) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/properties", h.listProperties)
	s.mux.Get("/v1/properties/{slug}", h.getProperty)
	s.mux.Get("/v1/facets/{dim}", h.listFacet)

	s.mux.Route("/v1/admin", func(r chi.Router) {
		r.Use(AdminAuth(adminToken))
		r.Post("/properties", h.createProperty)
		r.Put("/properties/{id}", h.updateProperty)
		r.Delete("/properties/{id}", h.deleteProperty)
		r.Put("/properties/{id}/gallery", h.saveGallery)
		r.Put("/properties/{id}/cover", h.promoteCover)
		r.Post("/properties/{id}/uploads", h.attachUploads)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeFieldProblem(w, status, title, detail, "")
}

func writeFieldProblem(w http.ResponseWriter, status int, title, detail, field string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail, Field: field}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeDomainErr maps the error taxonomy onto HTTP problems. Conflicts carry
// the offending field so the editor can render a field-level error.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "no such property")
	case errors.Is(err, domain.ErrConflict):
		writeFieldProblem(w, http.StatusConflict, "Conflict", "slug already in use", "slug")
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSONWithETag(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// ---- public reads ----

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// Bad filter/sort tokens degrade to "no filter"/"default sort" inside the
	// engine; only pagination is validated hard, like any bounds check.
	limit := 0
	if ls := q.Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > h.MaxLimit {
			writeProblem(w, http.StatusBadRequest, "Invalid limit",
				"limit must be an integer between 1 and "+strconv.Itoa(h.MaxLimit))
			return
		}
		limit = l
	}
	offset := 0
	if os := q.Get("offset"); os != "" {
		if n, err := strconv.Atoi(os); err == nil {
			offset = n
		}
	}

	params := catalog.ListParams{
		Filter: catalog.ListFilter{
			Search:   q.Get("q"),
			Active:   queryOpt(q.Get("is_active")),
			Slug:     q.Get("slug"),
			District: q.Get("district"),
			City:     q.Get("city"),
			Type:     q.Get("type"),
			Status:   q.Get("status"),
		},
		// "sort" may be a combined column.direction token or a bare column
		// paired with orderDir; the resolver decides.
		SortToken:  q.Get("sort"),
		SortColumn: q.Get("sort"),
		SortDir:    q.Get("orderDir"),
		Limit:      limit,
		Offset:     offset,
	}

	page, err := h.Q.List(r.Context(), params)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSONWithETag(w, r, page)
}

// queryOpt keeps an absent query param distinct from an empty string for the
// tolerant active-flag decoding.
func queryOpt(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	pv, err := h.Q.GetBySlug(r.Context(), slug)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSONWithETag(w, r, pv)
}

func (h *Handlers) listFacet(w http.ResponseWriter, r *http.Request) {
	dim := chi.URLParam(r, "dim")
	vals, err := h.Q.Distinct(r.Context(), dim)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	if vals == nil {
		vals = []string{}
	}
	writeJSONWithETag(w, r, vals)
}

// ---- admin writes ----

type propertyPayload struct {
	Title        string  `json:"title"`
	Slug         string  `json:"slug"`
	Type         string  `json:"type"`
	Status       string  `json:"status"`
	Address      string  `json:"address"`
	District     string  `json:"district"`
	City         string  `json:"city"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Description  *string `json:"description"`
	IsActive     bool    `json:"is_active"`
	DisplayOrder int     `json:"display_order"`
}

func (p propertyPayload) toDomain(id string) domain.Property {
	return domain.Property{
		ID:           id,
		Title:        p.Title,
		Slug:         p.Slug,
		Type:         p.Type,
		Status:       p.Status,
		Address:      p.Address,
		District:     p.District,
		City:         p.City,
		Lat:          strconv.FormatFloat(p.Lat, 'f', 7, 64),
		Lng:          strconv.FormatFloat(p.Lng, 'f', 7, 64),
		Description:  p.Description,
		IsActive:     p.IsActive,
		DisplayOrder: p.DisplayOrder,
	}
}

func decodePayload(w http.ResponseWriter, r *http.Request) (propertyPayload, bool) {
	var p propertyPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "malformed JSON")
		return p, false
	}
	if p.Title == "" {
		writeFieldProblem(w, http.StatusUnprocessableEntity, "Validation failed", "title is required", "title")
		return p, false
	}
	if p.Slug == "" {
		writeFieldProblem(w, http.StatusUnprocessableEntity, "Validation failed", "slug is required", "slug")
		return p, false
	}
	return p, true
}

func (h *Handlers) createProperty(w http.ResponseWriter, r *http.Request) {
	p, ok := decodePayload(w, r)
	if !ok {
		return
	}
	created, err := h.C.CreateProperty(r.Context(), p.toDomain(""))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(catalog.ToView(created))
}

func (h *Handlers) updateProperty(w http.ResponseWriter, r *http.Request) {
	p, ok := decodePayload(w, r)
	if !ok {
		return
	}
	if err := h.C.UpdateProperty(r.Context(), p.toDomain(chi.URLParam(r, "id"))); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteProperty(w http.ResponseWriter, r *http.Request) {
	if err := h.C.DeleteProperty(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) saveGallery(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Assets []domain.Asset `json:"assets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "malformed JSON")
		return
	}
	saved, err := h.C.SaveGallery(r.Context(), chi.URLParam(r, "id"), body.Assets)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"assets": saved})
}

func (h *Handlers) promoteCover(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AssetID string `json:"asset_id"`
		URL     string `json:"url"`
		Alt     string `json:"alt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "malformed JSON")
		return
	}
	if body.AssetID == "" && body.URL == "" {
		writeFieldProblem(w, http.StatusUnprocessableEntity, "Validation failed", "asset_id or url is required", "asset_id")
		return
	}
	saved, err := h.C.PromoteCover(r.Context(), chi.URLParam(r, "id"), body.AssetID, body.URL, body.Alt)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"assets": saved})
}

const maxUploadBytes = 64 << 20

func (h *Handlers) attachUploads(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected multipart form")
		return
	}
	fhs := r.MultipartForm.File["files"]
	if len(fhs) == 0 {
		writeFieldProblem(w, http.StatusUnprocessableEntity, "Validation failed", "at least one file is required", "files")
		return
	}
	files := make([]domain.UploadFile, 0, len(fhs))
	for _, fh := range fhs {
		f, err := fh.Open()
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid body", "unreadable file part")
			return
		}
		data, rerr := io.ReadAll(f)
		_ = f.Close()
		if rerr != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid body", "unreadable file part")
			return
		}
		files = append(files, domain.UploadFile{
			Name: fh.Filename,
			Mime: fh.Header.Get("Content-Type"),
			Data: data,
		})
	}
	saved, err := h.C.AttachUploads(r.Context(), chi.URLParam(r, "id"), files)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"assets": saved})
}
