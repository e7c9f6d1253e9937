package routes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/athletiq/internal/athlete"
	"github.com/briangreenhill/athletiq/internal/bmi"
	"github.com/briangreenhill/athletiq/internal/plan"
	"github.com/briangreenhill/athletiq/internal/providers"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
	Plan   *planResponse     `json:"plan,omitempty"`
}

type bmiRequest struct {
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
}

type bmiResponse struct {
	BMI        float64      `json:"bmi"`
	Category   bmi.Category `json:"category"`
	Label      string       `json:"label"`
	Disclaimer string       `json:"disclaimer"`
}

type promptResponse struct {
	BMI    bmi.Result `json:"bmi"`
	Prompt string     `json:"prompt"`
}

type planResponse struct {
	*plan.Plan
	DownloadURL string `json:"download_url,omitempty"`
}

func (s *Server) handleAPIBMI(w http.ResponseWriter, r *http.Request) {
	var req bmiRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := bmi.Classify(req.HeightCm, req.WeightKg)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, bmiResponse{
		BMI:        res.Value,
		Category:   res.Category,
		Label:      res.Category.Label(bmi.LabelsCoaching),
		Disclaimer: bmi.Disclaimer,
	})
}

func (s *Server) handleAPIPrompt(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeProfile(w, r)
	if !ok {
		return
	}
	res, text, err := s.Plans.Assess(p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, promptResponse{BMI: res, Prompt: text})
}

func (s *Server) handleAPICreatePlan(w http.ResponseWriter, r *http.Request) {
	async := r.URL.Query().Get("async") == "true"
	if async && !s.Async {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "async generation is disabled"})
		return
	}
	p, ok := decodeProfile(w, r)
	if !ok {
		return
	}

	if async {
		pl, err := s.Plans.Enqueue(r.Context(), p)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Location", "/api/plans/"+pl.ID.String())
		writeJSON(w, r, http.StatusAccepted, planResponse{Plan: pl})
		return
	}

	pl, err := s.Plans.Generate(r.Context(), p)
	if err != nil {
		if pl != nil && errors.Is(err, providers.ErrGeneration) {
			writeJSON(w, r, http.StatusBadGateway, errorResponse{Error: pl.Error, Plan: &planResponse{Plan: pl}})
			return
		}
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, planResponse{Plan: pl, DownloadURL: s.downloadURL(pl)})
}

func (s *Server) handleAPIGetPlan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "planID"))
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid plan ID"})
		return
	}
	pl, err := s.Plans.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, planResponse{Plan: pl, DownloadURL: s.downloadURL(pl)})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}

func decodeProfile(w http.ResponseWriter, r *http.Request) (athlete.Profile, bool) {
	var p athlete.Profile
	if !decodeJSON(w, r, &p) {
		return p, false
	}
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		writeError(w, r, err)
		return p, false
	}
	return p, true
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var verr *athlete.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, bmi.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, providers.ErrGeneration):
		return http.StatusBadGateway
	case errors.Is(err, plan.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: err.Error()}
	var verr *athlete.ValidationError
	if errors.As(err, &verr) {
		resp.Error = "invalid profile"
		resp.Fields = verr.Fields
	}
	if status == http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("api request failed")
		resp.Error = "internal server error"
	}
	writeJSON(w, r, status, resp)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode response failed")
	}
}
