package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/diewo77/go-coopcycle/httpx"
	"github.com/diewo77/go-coopcycle/internal/models"
	"github.com/diewo77/go-coopcycle/internal/schema"
	"github.com/diewo77/go-coopcycle/internal/services"
	"github.com/diewo77/go-coopcycle/validation"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
	maxBodyBytes    = 1 << 20
)

// entityPtr is the pointer form of an entity struct T.
type entityPtr[T any] interface {
	*T
	models.Entity
	SetIdentity(models.ID)
}

// ReferenceChecker reports whether a referenced record exists.
// *services.Repository implements it.
type ReferenceChecker interface {
	Exists(ctx context.Context, id models.ID) (bool, error)
}

// References maps a resource name to the store its references point into.
type References map[string]ReferenceChecker

// ResourceHandler serves the REST endpoints of one entity type.
type ResourceHandler[T any, P entityPtr[T]] struct {
	repo   *services.Repository[T]
	schema *schema.Schema
	refs   References
	log    logrus.FieldLogger
}

// NewResourceHandler serves s backed by db. Every reference of a written
// entity must exist in the store refs holds for its target resource.
func NewResourceHandler[T any, P entityPtr[T]](db *gorm.DB, s *schema.Schema, refs References, log logrus.FieldLogger) *ResourceHandler[T, P] {
	return &ResourceHandler[T, P]{repo: services.NewRepository[T](db), schema: s, refs: refs, log: log}
}

// Register mounts the handlers on /api/<resource>.
func (h *ResourceHandler[T, P]) Register(mux *http.ServeMux) {
	base := "/api/" + h.schema.Resource
	mux.HandleFunc("POST "+base, h.Create)
	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("GET "+base+"/{id}", h.Get)
	mux.HandleFunc("PUT "+base+"/{id}", h.Update)
	mux.HandleFunc("PATCH "+base+"/{id}", h.Patch)
	mux.HandleFunc("DELETE "+base+"/{id}", h.Delete)
}

func (h *ResourceHandler[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	values, ok := h.decodeBody(w, r)
	if !ok {
		return
	}
	if values["id"] != nil {
		httpx.JSONError(w, http.StatusBadRequest, "idexists", nil)
		return
	}
	e, ok := h.validated(w, r, values)
	if !ok {
		return
	}
	if err := h.repo.Create(r.Context(), e); err != nil {
		h.storeError(w, r, "create", err)
		return
	}
	id := P(e).Identity().String()
	w.Header().Set("Location", "/api/"+h.schema.Resource+"/"+id)
	httpx.Alert(w, h.schema.Entity, "created", id)
	httpx.JSON(w, http.StatusCreated, e)
}

func (h *ResourceHandler[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	values, ok := h.decodeBody(w, r)
	if !ok {
		return
	}
	if !h.checkBodyID(w, r, id, values) {
		return
	}
	e, ok := h.validated(w, r, values)
	if !ok {
		return
	}
	if err := h.repo.Save(r.Context(), e); err != nil {
		h.storeError(w, r, "update", err)
		return
	}
	httpx.Alert(w, h.schema.Entity, "updated", id.String())
	httpx.JSON(w, http.StatusOK, e)
}

// Patch merges the non-null fields of the body into the stored entity.
func (h *ResourceHandler[T, P]) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt != "application/json" && mt != httpx.MergePatchJSON {
		httpx.JSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", nil)
		return
	}
	patch, ok := h.decodeBody(w, r)
	if !ok {
		return
	}
	if !h.checkBodyID(w, r, id, patch) {
		return
	}
	existing, err := h.repo.Find(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "patch", err)
		return
	}
	merged, err := schema.Values(existing)
	if err != nil {
		h.storeError(w, r, "patch", err)
		return
	}
	for k, v := range patch {
		if _, known := h.schema.Field(k); known && v != nil {
			merged[k] = v
		}
	}
	e, ok := h.validated(w, r, merged)
	if !ok {
		return
	}
	if err := h.repo.Save(r.Context(), e); err != nil {
		h.storeError(w, r, "patch", err)
		return
	}
	httpx.Alert(w, h.schema.Entity, "updated", id.String())
	httpx.JSON(w, http.StatusOK, e)
}

func (h *ResourceHandler[T, P]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	e, err := h.repo.Find(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "get", err)
		return
	}
	httpx.JSON(w, http.StatusOK, e)
}

func (h *ResourceHandler[T, P]) List(w http.ResponseWriter, r *http.Request) {
	params, code := h.listParams(r)
	if code != "" {
		httpx.JSONError(w, http.StatusBadRequest, code, nil)
		return
	}
	items, total, err := h.repo.List(r.Context(), params)
	if err != nil {
		h.storeError(w, r, "list", err)
		return
	}
	httpx.Paginate(w, r.URL, params.Page, params.Size, total)
	httpx.JSON(w, http.StatusOK, items)
}

func (h *ResourceHandler[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.storeError(w, r, "delete", err)
		return
	}
	httpx.Alert(w, h.schema.Entity, "deleted", id.String())
	httpx.NoContent(w)
}

func (h *ResourceHandler[T, P]) pathID(w http.ResponseWriter, r *http.Request) (models.ID, bool) {
	id, err := models.ParseID(r.PathValue("id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "idinvalid", nil)
		return 0, false
	}
	return id, true
}

// checkBodyID applies the update preconditions: the body names the same
// entity as the path and that entity exists.
func (h *ResourceHandler[T, P]) checkBodyID(w http.ResponseWriter, r *http.Request, id models.ID, values map[string]any) bool {
	raw := values["id"]
	if raw == nil {
		httpx.JSONError(w, http.StatusBadRequest, "idnull", nil)
		return false
	}
	n, ok := raw.(json.Number)
	if !ok || n.String() != id.String() {
		httpx.JSONError(w, http.StatusBadRequest, "idinvalid", nil)
		return false
	}
	exists, err := h.repo.Exists(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "exists", err)
		return false
	}
	if !exists {
		httpx.JSONError(w, http.StatusBadRequest, "idnotfound", nil)
		return false
	}
	return true
}

func (h *ResourceHandler[T, P]) decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var values map[string]any
	if err := dec.Decode(&values); err != nil || values == nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return nil, false
	}
	return values, true
}

// validated checks values against the schema and the stored references,
// then decodes them. A reference without a positive id is absent.
func (h *ResourceHandler[T, P]) validated(w http.ResponseWriter, r *http.Request, values map[string]any) (*T, bool) {
	if v := h.schema.Validate(values); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return nil, false
	}
	for _, f := range h.schema.Fields {
		if f.Kind != schema.KindRef {
			continue
		}
		if validation.IsEmpty(values[f.Name]) {
			delete(values, f.Name)
			continue
		}
		ok, err := h.referenceExists(r.Context(), f, values[f.Name])
		if err != nil {
			h.storeError(w, r, "reference", err)
			return nil, false
		}
		if !ok {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_reference", validation.Violations{f.Name: "not_found"})
			return nil, false
		}
	}
	e := new(T)
	if err := schema.Decode(values, e); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return nil, false
	}
	return e, true
}

func (h *ResourceHandler[T, P]) referenceExists(ctx context.Context, f schema.Field, value any) (bool, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return false, nil
	}
	n, ok := validation.Number(m["id"])
	if !ok || n != float64(int64(n)) {
		return false, nil
	}
	store, ok := h.refs[f.Target]
	if !ok {
		return false, fmt.Errorf("no store for %s references", f.Target)
	}
	return store.Exists(ctx, models.ID(n))
}

func (h *ResourceHandler[T, P]) listParams(r *http.Request) (services.ListParams, string) {
	q := r.URL.Query()
	p := services.ListParams{Size: defaultPageSize, Filters: map[string]any{}}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return p, "invalid_page"
		}
		p.Page = n
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return p, "invalid_page"
		}
		p.Size = min(n, maxPageSize)
	}
	for _, s := range q["sort"] {
		name, dir, _ := strings.Cut(s, ",")
		f, ok := h.schema.Field(name)
		if !ok {
			return p, "invalid_sort"
		}
		switch strings.ToLower(dir) {
		case "", "asc":
			p.Sort = append(p.Sort, services.Order{Column: f.Column})
		case "desc":
			p.Sort = append(p.Sort, services.Order{Column: f.Column, Desc: true})
		default:
			return p, "invalid_sort"
		}
	}
	for key, vals := range q {
		name, found := strings.CutSuffix(key, ".equals")
		if !found || len(vals) == 0 {
			continue
		}
		f, ok := h.schema.Field(name)
		if !ok {
			return p, "invalid_filter"
		}
		value, err := filterValue(f, vals[0])
		if err != nil {
			return p, "invalid_filter"
		}
		p.Filters[f.Column] = value
	}
	return p, ""
}

func filterValue(f schema.Field, s string) (any, error) {
	switch f.Kind {
	case schema.KindID, schema.KindRef:
		id, err := models.ParseID(s)
		return int64(id), err
	case schema.KindNumber:
		return strconv.ParseFloat(s, 64)
	case schema.KindDateTime:
		dt, err := models.ParseDateTime(s)
		if err != nil {
			return nil, err
		}
		return dt.Time(), nil
	case schema.KindEnum:
		for _, c := range f.Choices {
			if c == s {
				return s, nil
			}
		}
		return nil, fmt.Errorf("unknown %s %q", f.Name, s)
	}
	return s, nil
}

func (h *ResourceHandler[T, P]) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, services.ErrInvalidReference):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_reference", nil)
	default:
		h.log.WithError(err).WithFields(logrus.Fields{
			"entity": h.schema.Entity,
			"op":     op,
			"path":   r.URL.Path,
		}).Error("store failure")
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
