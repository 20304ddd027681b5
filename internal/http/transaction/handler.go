package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/maplelisted/maplelisted/internal/compliance"
	"github.com/maplelisted/maplelisted/internal/http/auth"
	"github.com/maplelisted/maplelisted/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/offer", h.submitOffer)
	r.Get("/my-offers", h.myOffers)
	r.Get("/my-listings", h.myListings)
	r.Get("/{id}", h.get)
	r.Put("/{id}/accept", h.accept)
	r.Put("/{id}/reject", h.reject)
	r.Put("/{id}/withdraw", h.withdraw)
	r.Put("/{id}/deposit", h.recordDeposit)
	r.Put("/{id}/advance", h.advance)
	r.Put("/{id}/complete", h.complete)
	r.Put("/{id}/cancel", h.cancel)
	r.Put("/{id}/fail", h.fail)
	r.Post("/{id}/messages", h.addMessage)
	r.Patch("/{id}/conditions/{conditionID}", h.resolveCondition)
}

type conditionRequest struct {
	Type        transaction.ConditionType `json:"type"`
	Description string                    `json:"description"`
	Deadline    *time.Time                `json:"deadline,omitempty"`
}

type submitOfferRequest struct {
	PropertyID      uuid.UUID          `json:"property_id"`
	OfferPriceCents int64              `json:"offer_price_cents"`
	DepositCents    int64              `json:"deposit_cents,omitempty"`
	DepositOverride bool               `json:"deposit_override,omitempty"`
	ClosingDate     *time.Time         `json:"closing_date,omitempty"`
	Conditions      []conditionRequest `json:"conditions,omitempty"`
}

func (h *Handler) submitOffer(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.Caller(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req submitOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conditions := make([]transaction.ConditionInput, len(req.Conditions))
	for i, c := range req.Conditions {
		conditions[i] = transaction.ConditionInput{
			Type:        c.Type,
			Description: c.Description,
			Deadline:    c.Deadline,
		}
	}

	tx, err := h.svc.SubmitOffer(r.Context(), transaction.SubmitOfferParams{
		BuyerID:         callerID,
		PropertyID:      req.PropertyID,
		OfferPriceCents: req.OfferPriceCents,
		DepositCents:    req.DepositCents,
		DepositOverride: req.DepositOverride,
		ClosingDate:     req.ClosingDate,
		Conditions:      conditions,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) myOffers(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.Caller(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	txs, err := h.svc.ListOffers(r.Context(), callerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) myListings(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.Caller(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	txs, err := h.svc.ListListingOffers(r.Context(), callerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	callerID, txID, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	tx, err := h.svc.Get(r.Context(), txID, callerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) accept(w http.ResponseWriter, r *http.Request) {
	callerID, txID, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	tx, err := h.svc.AcceptOffer(r.Context(), txID, callerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

type reasonRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	callerID, txID, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	req := decodeOptional[reasonRequest](r)

	tx, err := h.svc.RejectOffer(r.Context(), txID, callerID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) withdraw(w http.ResponseWriter, r *http.Request) {
	callerID, txID, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	req := decodeOptional[reasonRequest](r)

	tx, err := h.svc.WithdrawOffer(r.Context(), txID, callerID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) recordDeposit(w http.ResponseWriter, r *http.Request) {
	callerID, txID, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	tx, err := h.svc.RecordDeposit(r.Context(), txID, callerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

type advanceRequest struct {
	Status transaction.Status `json:"status"`
	Reason string             `json:"reason,omitempty"`
}

func (h *Handler) advance(w http.ResponseWriter, r *http.Request) {
	callerID, txID, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Advance(r.Context(), txID, callerID, req.Status, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

type completeRequest struct {
	FinalPriceCents int64 `json:"final_price_cents,omitempty"`
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	callerID, txID, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	req := decodeOptional[completeRequest](r)

	tx, err := h.svc.Complete(r.Context(), txID, callerID, req.FinalPriceCents)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	callerID, txID, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	req := decodeOptional[reasonRequest](r)

	tx, err := h.svc.Cancel(r.Context(), txID, callerID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request) {
	callerID, txID, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	req := decodeOptional[reasonRequest](r)

	tx, err := h.svc.Fail(r.Context(), txID, callerID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

type messageRequest struct {
	Body string `json:"body"`
}

func (h *Handler) addMessage(w http.ResponseWriter, r *http.Request) {
	callerID, txID, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.AddMessage(r.Context(), txID, callerID, req.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(tx))
}

type resolveConditionRequest struct {
	Status transaction.ConditionStatus `json:"status"`
}

func (h *Handler) resolveCondition(w http.ResponseWriter, r *http.Request) {
	callerID, txID, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	conditionID, err := uuid.Parse(chi.URLParam(r, "conditionID"))
	if err != nil {
		http.Error(w, "invalid condition id", http.StatusBadRequest)
		return
	}

	var req resolveConditionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.ResolveCondition(r.Context(), txID, callerID, conditionID, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) callerAndID(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	callerID, ok := auth.Caller(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	txID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}

	return callerID, txID, true
}

// decodeOptional tolerates an empty body for requests whose fields are all
// optional.
func decodeOptional[T any](r *http.Request) T {
	var req T

	_ = json.NewDecoder(r.Body).Decode(&req)

	return req
}

type errorResponse struct {
	Error       string `json:"error"`
	Kind        string `json:"kind"`
	Requirement string `json:"requirement,omitempty"`
	Province    string `json:"province,omitempty"`
	Action      string `json:"action,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	var cerr *compliance.Error
	if errors.As(err, &cerr) {
		writeJSON(w, http.StatusForbidden, errorResponse{
			Error:       cerr.Error(),
			Kind:        "compliance_required",
			Requirement: string(cerr.Requirement),
			Province:    cerr.Province,
			Action:      cerr.Action,
		})

		return
	}

	kind, status := classify(err)

	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}

func classify(err error) (string, int) {
	switch {
	case errors.Is(err, transaction.ErrNotFound):
		return "not_found", http.StatusNotFound
	case errors.Is(err, transaction.ErrUnauthorized):
		return "unauthorized", http.StatusForbidden
	case errors.Is(err, transaction.ErrInvalidTransition):
		return "invalid_transition", http.StatusConflict
	case errors.Is(err, transaction.ErrConflict):
		return "conflict", http.StatusConflict
	case errors.Is(err, transaction.ErrInvalidOperation):
		return "invalid_operation", http.StatusBadRequest
	case errors.Is(err, transaction.ErrInvalidInput):
		return "invalid_input", http.StatusBadRequest
	default:
		return "internal", http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
