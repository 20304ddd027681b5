package fees

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/maplelisted/maplelisted/internal/fees"
)

// Handler exposes read-only fee estimation endpoints. They are public: a
// visitor should be able to price the platform before signing up.
type Handler struct {
	policy fees.Policy
}

func NewHandler(policy fees.Policy) *Handler {
	return &Handler{policy: policy}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/estimate", h.estimate)
	r.Get("/realtor-comparison", h.realtorComparison)
}

type estimateResponse struct {
	TotalCents      int64      `json:"total_cents"`
	ListingFeeCents int64      `json:"listing_fee_cents,omitempty"`
	SuccessFeeCents int64      `json:"success_fee_cents,omitempty"`
	Percentage      float64    `json:"percentage,omitempty"`
	Currency        string     `json:"currency"`
	Model           fees.Model `json:"model"`
}

func (h *Handler) estimate(w http.ResponseWriter, r *http.Request) {
	price, err := strconv.ParseInt(r.URL.Query().Get("price"), 10, 64)
	if err != nil {
		http.Error(w, "price must be an integer number of cents", http.StatusBadRequest)
		return
	}

	model := h.policy.DefaultModel
	if m := r.URL.Query().Get("model"); m != "" {
		model = fees.Model(m)
	}

	breakdown, err := h.policy.Calculate(price, model)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, estimateResponse{
		TotalCents:      breakdown.TotalCents,
		ListingFeeCents: breakdown.ListingFeeCents,
		SuccessFeeCents: breakdown.SuccessFeeCents,
		Percentage:      breakdown.Percentage,
		Currency:        breakdown.Currency,
		Model:           breakdown.Model,
	})
}

type comparisonResponse struct {
	RealtorCommissionCents int64   `json:"realtor_commission_cents"`
	PlatformFeeCents       int64   `json:"platform_fee_cents"`
	SavingsCents           int64   `json:"savings_cents"`
	SavingsPercentage      float64 `json:"savings_percentage"`
}

func (h *Handler) realtorComparison(w http.ResponseWriter, r *http.Request) {
	price, err := strconv.ParseInt(r.URL.Query().Get("price"), 10, 64)
	if err != nil {
		http.Error(w, "price must be an integer number of cents", http.StatusBadRequest)
		return
	}

	cmp, err := h.policy.CompareToRealtor(price)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comparisonResponse{
		RealtorCommissionCents: cmp.RealtorCommissionCents,
		PlatformFeeCents:       cmp.PlatformFeeCents,
		SavingsCents:           cmp.SavingsCents,
		SavingsPercentage:      cmp.SavingsPercentage,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, fees.ErrInvalidPrice), errors.Is(err, fees.ErrUnknownModel):
		status = http.StatusBadRequest
	}

	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
