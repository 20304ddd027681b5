package legal

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/maplelisted/maplelisted/internal/audit"
	"github.com/maplelisted/maplelisted/internal/http/auth"
	"github.com/maplelisted/maplelisted/internal/regulation"
	"github.com/maplelisted/maplelisted/internal/user"
)

// Directory is the user persistence the legal endpoints need.
type Directory interface {
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateCompliance(ctx context.Context, u *user.User) error
}

// AuditLogger records compliance-relevant events. Failures are logged and
// swallowed; the acceptance itself must not roll back.
type AuditLogger interface {
	Log(ctx context.Context, entry audit.Entry) error
}

type Handler struct {
	users   Directory
	auditor AuditLogger
	now     func() time.Time
}

func NewHandler(users Directory, auditor AuditLogger) *Handler {
	return &Handler{users: users, auditor: auditor, now: time.Now}
}

// AuthenticatedRoutes mounts the endpoints that mutate the caller's
// compliance record. Provinces is mounted separately without auth.
func (h *Handler) AuthenticatedRoutes(r chi.Router) {
	r.Post("/accept-terms", h.acceptTerms)
	r.Post("/acknowledge-province", h.acknowledgeProvince)
}

type provinceResponse struct {
	Code                 string   `json:"code"`
	Name                 string   `json:"name"`
	RegulatoryBody       string   `json:"regulatory_body"`
	CoolingOffDays       int      `json:"cooling_off_days"`
	DepositMinFraction   float64  `json:"deposit_min_fraction"`
	DepositMaxFraction   float64  `json:"deposit_max_fraction"`
	MandatoryDisclosures []string `json:"mandatory_disclosures"`
}

// Provinces lists every supported province with its regulatory profile.
func (h *Handler) Provinces(w http.ResponseWriter, r *http.Request) {
	regs := regulation.All()

	resp := make([]provinceResponse, len(regs))
	for i, reg := range regs {
		resp[i] = provinceResponse{
			Code:                 reg.Code,
			Name:                 reg.Name,
			RegulatoryBody:       reg.RegulatoryBody,
			CoolingOffDays:       reg.CoolingOffDays,
			DepositMinFraction:   reg.DepositMinFraction,
			DepositMaxFraction:   reg.DepositMaxFraction,
			MandatoryDisclosures: reg.MandatoryDisclosures,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type acceptTermsRequest struct {
	Version string `json:"version"`
}

type termsResponse struct {
	TOS           bool       `json:"tos"`
	TOSVersion    string     `json:"tos_version,omitempty"`
	TOSAcceptedAt *time.Time `json:"tos_accepted_at,omitempty"`
}

func (h *Handler) acceptTerms(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.Caller(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req acceptTermsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Version == "" {
		http.Error(w, "version is required", http.StatusBadRequest)
		return
	}

	u, err := h.users.GetUser(r.Context(), callerID)
	if err != nil {
		writeError(w, err)
		return
	}

	u.AcceptTerms(req.Version, h.now())

	if err := h.users.UpdateCompliance(r.Context(), u); err != nil {
		writeError(w, err)
		return
	}

	h.logEvent(r.Context(), audit.EventTermsAccepted, callerID, "terms of service accepted", map[string]any{
		"version": req.Version,
	})

	writeJSON(w, http.StatusOK, termsResponse{
		TOS:           u.Terms.TOS,
		TOSVersion:    u.Terms.TOSVersion,
		TOSAcceptedAt: u.Terms.TOSAcceptedAt,
	})
}

type acknowledgeProvinceRequest struct {
	Province string `json:"province"`
	Version  string `json:"version"`
}

type acknowledgmentResponse struct {
	Province       string    `json:"province"`
	Acknowledged   bool      `json:"acknowledged"`
	Version        string    `json:"version"`
	AcknowledgedAt time.Time `json:"acknowledged_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (h *Handler) acknowledgeProvince(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.Caller(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req acknowledgeProvinceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !regulation.IsValid(req.Province) {
		http.Error(w, "unknown province code", http.StatusBadRequest)
		return
	}

	if req.Version == "" {
		http.Error(w, "version is required", http.StatusBadRequest)
		return
	}

	u, err := h.users.GetUser(r.Context(), callerID)
	if err != nil {
		writeError(w, err)
		return
	}

	if u.Acknowledgments == nil {
		u.Acknowledgments = user.Acknowledgments{}
	}

	ack := u.Acknowledgments.Set(req.Province, req.Version, h.now())

	if err := h.users.UpdateCompliance(r.Context(), u); err != nil {
		writeError(w, err)
		return
	}

	h.logEvent(r.Context(), audit.EventProvinceAcked, callerID, "province regulations acknowledged", map[string]any{
		"province": req.Province,
		"version":  req.Version,
	})

	writeJSON(w, http.StatusOK, acknowledgmentResponse{
		Province:       req.Province,
		Acknowledged:   ack.Acknowledged,
		Version:        ack.Version,
		AcknowledgedAt: ack.AcknowledgedAt,
		UpdatedAt:      ack.UpdatedAt,
	})
}

func (h *Handler) logEvent(ctx context.Context, eventType string, actorID uuid.UUID, description string, details map[string]any) {
	entry := audit.Entry{
		EventType:   eventType,
		ActorID:     actorID,
		TargetType:  "user",
		TargetID:    actorID,
		Description: description,
		Details:     details,
	}

	if err := h.auditor.Log(ctx, entry); err != nil {
		slog.Error("failed to write audit entry", "event_type", eventType, "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, user.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
