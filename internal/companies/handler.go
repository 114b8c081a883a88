package companies

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ledgerline/ledgerline/internal/platform/httpx"
)

// Handler manages company endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers company routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{code}", h.get)
	r.Post("/", h.create)
	r.Put("/{code}", h.update)
	r.Delete("/{code}", h.remove)
}

type companyRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list companies", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []CompanySummary{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"companies": list})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	company, err := h.service.GetWithInvoices(r.Context(), code)
	if err != nil {
		h.respondCompanyError(w, err, code)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"company": company})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: name is required", httpx.ErrValidation))
		return
	}

	company, err := h.service.Create(r.Context(), CompanyInput{Name: req.Name, Description: req.Description})
	if err != nil {
		h.logger.Error("create company", slog.Any("error", err), slog.String("name", req.Name))
		if errors.Is(err, httpx.ErrDuplicate) {
			err = fmt.Errorf("%w: company code already exists", httpx.ErrDuplicate)
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"company": company})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req companyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: name is required", httpx.ErrValidation))
		return
	}

	company, err := h.service.Update(r.Context(), code, CompanyInput{Name: req.Name, Description: req.Description})
	if err != nil {
		h.respondCompanyError(w, err, code)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"company": company})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := h.service.Delete(r.Context(), code); err != nil {
		h.respondCompanyError(w, err, code)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) respondCompanyError(w http.ResponseWriter, err error, code string) {
	if errors.Is(err, httpx.ErrNotFound) {
		httpx.RespondError(w, fmt.Errorf("%w: cannot find company %q", httpx.ErrNotFound, code))
		return
	}
	h.logger.Error("company operation", slog.Any("error", err), slog.String("code", code))
	httpx.RespondError(w, err)
}
