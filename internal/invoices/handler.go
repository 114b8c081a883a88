package invoices

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ledgerline/ledgerline/internal/platform/httpx"
)

// Handler manages invoice endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers invoice routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

type createInvoiceRequest struct {
	CompCode string  `json:"comp_code" validate:"required"`
	Amt      float64 `json:"amt" validate:"required,gt=0"`
}

type updateInvoiceRequest struct {
	Amt  float64 `json:"amt" validate:"required"`
	Paid bool    `json:"paid"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list invoices", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []InvoiceSummary{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoices": list})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.invoiceID(w, r)
	if !ok {
		return
	}
	inv, err := h.service.GetWithCompany(r.Context(), id)
	if err != nil {
		h.respondInvoiceError(w, err, id)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoice": detailJSON(inv)})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: comp_code and a positive amt are required", httpx.ErrValidation))
		return
	}

	inv, err := h.service.Create(r.Context(), CreateInvoiceInput{CompCode: req.CompCode, Amt: req.Amt})
	if err != nil {
		h.logger.Error("create invoice", slog.Any("error", err), slog.String("comp_code", req.CompCode))
		if errors.Is(err, httpx.ErrValidation) {
			err = fmt.Errorf("%w: unknown company code %q", httpx.ErrValidation, req.CompCode)
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"invoice": inv})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.invoiceID(w, r)
	if !ok {
		return
	}
	var req updateInvoiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: amt is required", httpx.ErrValidation))
		return
	}

	inv, err := h.service.UpdatePayment(r.Context(), id, UpdateInvoiceInput{Amt: req.Amt, Paid: req.Paid})
	if err != nil {
		h.respondInvoiceError(w, err, id)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoice": inv})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := h.invoiceID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondInvoiceError(w, err, id)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) invoiceID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid invoice id")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondInvoiceError(w http.ResponseWriter, err error, id int64) {
	if errors.Is(err, httpx.ErrNotFound) {
		httpx.RespondError(w, fmt.Errorf("%w: cannot find invoice %d", httpx.ErrNotFound, id))
		return
	}
	h.logger.Error("invoice operation", slog.Any("error", err), slog.Int64("id", id))
	httpx.RespondError(w, err)
}

// detailJSON reshapes the joined read so the response embeds the owning
// company as a nested object instead of the flat comp_code.
func detailJSON(inv *InvoiceWithCompany) map[string]any {
	return map[string]any{
		"id":        inv.ID,
		"company":   inv.Company,
		"amt":       inv.Amt,
		"paid":      inv.Paid,
		"add_date":  inv.AddDate,
		"paid_date": inv.PaidDate,
	}
}
