package partnerships

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osa-portal/osa-portal/internal/auth"
	"github.com/osa-portal/osa-portal/internal/platform/httpx"
	"github.com/osa-portal/osa-portal/internal/shared"
)

const maxImageSize = 5 << 20 // 5MB, matching the upload contract

// Handler wires partnership HTTP endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	mw      auth.Middleware
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, mw auth.Middleware) *Handler {
	return &Handler{logger: logger, service: service, mw: mw}
}

// MountRoutes registers partnership routes. All routes require
// authentication; writes additionally require the admin or department role.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.mw.Authenticate)

	r.Get("/", h.list)
	r.Get("/statistics", h.statistics)
	r.Get("/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(h.mw.RequireRoles(shared.RoleAdmin, shared.RoleDepartment))
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	identity := shared.IdentityFromContext(r.Context())
	filters := Filters{
		Department: r.URL.Query().Get("department"),
		Status:     r.URL.Query().Get("status"),
		SchoolYear: r.URL.Query().Get("school_year"),
		Search:     r.URL.Query().Get("search"),
	}
	views, err := h.service.List(r.Context(), identity, filters)
	if err != nil {
		h.logger.Error("list partnerships", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OKList(w, http.StatusOK, len(views), views)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid partnership id")
		return
	}
	identity := shared.IdentityFromContext(r.Context())
	view, err := h.service.Get(r.Context(), identity, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, view)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	input, image, err := parseForm(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if image != nil {
		defer image.file.Close()
	}
	identity := shared.IdentityFromContext(r.Context())
	view, err := h.service.Create(r.Context(), identity, input, image.upload())
	if err != nil {
		h.logger.Warn("create partnership", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OKMessage(w, http.StatusCreated, "Partnership created successfully", view)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid partnership id")
		return
	}
	input, image, err := parseForm(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if image != nil {
		defer image.file.Close()
	}
	identity := shared.IdentityFromContext(r.Context())
	view, err := h.service.Update(r.Context(), identity, id, input, image.upload())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OKMessage(w, http.StatusOK, "Partnership updated successfully", view)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid partnership id")
		return
	}
	identity := shared.IdentityFromContext(r.Context())
	if err := h.service.Delete(r.Context(), identity, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OKMessage(w, http.StatusOK, "Partnership deleted successfully", nil)
}

func (h *Handler) statistics(w http.ResponseWriter, r *http.Request) {
	identity := shared.IdentityFromContext(r.Context())
	stats, err := h.service.Statistics(r.Context(), identity)
	if err != nil {
		h.logger.Error("partnership statistics", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, stats)
}

type formImage struct {
	file   multipart.File
	header *multipart.FileHeader
}

func (f *formImage) upload() *ImageUpload {
	if f == nil {
		return nil
	}
	return &ImageUpload{
		Filename:    f.header.Filename,
		ContentType: f.header.Header.Get("Content-Type"),
		Content:     f.file,
	}
}

// parseForm reads the multipart (or urlencoded) payload shared by create and
// update, including the optional image part.
func parseForm(r *http.Request) (Input, *formImage, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/") {
		if err := r.ParseMultipartForm(maxImageSize); err != nil {
			return Input{}, nil, fmt.Errorf("%w: invalid multipart payload", shared.ErrValidation)
		}
	} else if err := r.ParseForm(); err != nil {
		return Input{}, nil, fmt.Errorf("%w: invalid form payload", shared.ErrValidation)
	}

	input := Input{
		BusinessName:       strings.TrimSpace(r.FormValue("business_name")),
		Department:         r.FormValue("department"),
		Address:            strings.TrimSpace(r.FormValue("address")),
		ContactPerson:      strings.TrimSpace(r.FormValue("contact_person")),
		ManagerSupervisor1: strings.TrimSpace(r.FormValue("manager_supervisor_1")),
		Email:              strings.TrimSpace(r.FormValue("email")),
		ContactNumber:      strings.TrimSpace(r.FormValue("contact_number")),
		Status:             Status(r.FormValue("status")),
	}
	if v := strings.TrimSpace(r.FormValue("manager_supervisor_2")); v != "" {
		input.ManagerSupervisor2 = &v
	}
	if v := strings.TrimSpace(r.FormValue("remarks")); v != "" {
		input.Remarks = &v
	}

	var err error
	if input.DateEstablished, err = parseDate(r.FormValue("date_established")); err != nil {
		return Input{}, nil, fmt.Errorf("%w: valid establishment date is required", shared.ErrValidation)
	}
	if input.ExpirationDate, err = parseDate(r.FormValue("expiration_date")); err != nil {
		return Input{}, nil, fmt.Errorf("%w: valid expiration date is required", shared.ErrValidation)
	}

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile || (err != nil && r.MultipartForm == nil) {
		return input, nil, nil
	}
	if err != nil {
		return Input{}, nil, fmt.Errorf("%w: invalid image upload", shared.ErrValidation)
	}
	if ct := header.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		file.Close()
		return Input{}, nil, fmt.Errorf("%w: only image files are allowed", shared.ErrValidation)
	}
	return input, &formImage{file: file, header: header}, nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(value))
}
