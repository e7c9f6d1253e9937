package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/athletiq/internal/athlete"
	"github.com/briangreenhill/athletiq/internal/auth"
	"github.com/briangreenhill/athletiq/internal/bmi"
	"github.com/briangreenhill/athletiq/internal/plan"
)

type pageData struct {
	Title    string
	AppTitle string

	Profile athlete.Profile
	Sports  []athlete.Sport
	Goals   []athlete.Goal
	Diets   []athlete.Diet

	MinAge, MaxAge       int
	MinHeight, MaxHeight int
	MinWeight, MaxWeight int

	Error  string
	Fields map[string]string
	BMI    *bmi.Result

	Plan        *plan.Plan
	DownloadURL string
}

func (s *Server) formPage(p athlete.Profile) pageData {
	return pageData{
		Title:     s.appTitle(),
		AppTitle:  s.appTitle(),
		Profile:   p,
		Sports:    athlete.Sports(),
		Goals:     athlete.Goals(),
		Diets:     athlete.Diets(),
		MinAge:    athlete.MinAge,
		MaxAge:    athlete.MaxAge,
		MinHeight: athlete.MinHeightCm,
		MaxHeight: athlete.MaxHeightCm,
		MinWeight: athlete.MinWeightKg,
		MaxWeight: athlete.MaxWeightKg,
	}
}

func (s *Server) appTitle() string {
	return strings.ReplaceAll(s.AppName, "_", " ")
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.Tmpl.ExecuteTemplate(w, name, data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("template", name).Msg("render template failed")
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "home", s.formPage(athlete.Default()))
}

func (s *Server) handlePlanSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	p, fields := profileFromForm(r)
	page := s.formPage(p)
	if len(fields) > 0 {
		page.Fields = fields
		s.render(w, r, http.StatusUnprocessableEntity, "home", page)
		return
	}
	if err := p.Validate(); err != nil {
		var verr *athlete.ValidationError
		if errors.As(err, &verr) {
			page.Fields = verr.Fields
		} else {
			page.Error = err.Error()
		}
		s.render(w, r, http.StatusUnprocessableEntity, "home", page)
		return
	}

	if s.Async {
		pl, err := s.Plans.Enqueue(r.Context(), p)
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("enqueue plan failed")
			page.Error = "Could not queue your plan, please try again."
			s.render(w, r, http.StatusServiceUnavailable, "home", page)
			return
		}
		s.Sess.Put(r.Context(), sessionLastPlan, pl.ID.String())
		http.Redirect(w, r, "/plan/last", http.StatusSeeOther)
		return
	}

	pl, err := s.Plans.Generate(r.Context(), p)
	if err != nil {
		if pl != nil {
			page.BMI = &pl.BMI
			page.Error = pl.Error
		} else {
			page.Error = err.Error()
		}
		s.render(w, r, statusFor(err), "home", page)
		return
	}

	if pl.Unsaved {
		hlog.FromRequest(r).Warn().Str("plan_id", pl.ID.String()).Msg("showing plan that was not saved")
	} else {
		s.Sess.Put(r.Context(), sessionLastPlan, pl.ID.String())
	}
	s.render(w, r, http.StatusOK, "plan", s.planPage(pl))
}

func (s *Server) handleLastPlan(w http.ResponseWriter, r *http.Request) {
	raw := s.Sess.GetString(r.Context(), sessionLastPlan)
	id, err := uuid.Parse(raw)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	pl, err := s.Plans.Get(r.Context(), id)
	if errors.Is(err, plan.ErrNotFound) {
		s.Sess.Remove(r.Context(), sessionLastPlan)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("plan_id", raw).Msg("load last plan failed")
		http.Error(w, "could not load plan", http.StatusInternalServerError)
		return
	}
	s.render(w, r, http.StatusOK, "plan", s.planPage(pl))
}

func (s *Server) planPage(pl *plan.Plan) pageData {
	page := s.formPage(pl.Profile)
	page.Title = pl.Title()
	page.Plan = pl
	page.DownloadURL = s.downloadURL(pl)
	return page
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")
	tokID, err := s.Download.Verify(r.URL.Query().Get("token"))
	if err != nil {
		status := http.StatusForbidden
		if errors.Is(err, auth.ErrExpired) {
			status = http.StatusGone
		}
		http.Error(w, "invalid or expired download link", status)
		return
	}
	if tokID != planID {
		http.Error(w, "invalid or expired download link", http.StatusForbidden)
		return
	}
	id, err := uuid.Parse(planID)
	if err != nil {
		http.Error(w, "invalid plan ID", http.StatusBadRequest)
		return
	}

	pl, err := s.Plans.Get(r.Context(), id)
	if errors.Is(err, plan.ErrNotFound) {
		http.Error(w, "plan not found", http.StatusNotFound)
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("plan_id", planID).Msg("load plan failed")
		http.Error(w, "could not load plan", http.StatusInternalServerError)
		return
	}
	if pl.Status != plan.StatusReady {
		http.Error(w, "plan is not ready", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pl.Filename(s.AppName)))
	if _, err := w.Write([]byte(pl.Export())); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("write download failed")
	}
}

// profileFromForm reads the form fields. Numeric fields that do not parse are
// reported by name; range checks are left to Profile.Validate.
func profileFromForm(r *http.Request) (athlete.Profile, map[string]string) {
	fields := map[string]string{}
	p := athlete.Profile{
		Sport:       athlete.Sport(r.PostForm.Get("sport")),
		Position:    r.PostForm.Get("position"),
		Goal:        athlete.Goal(r.PostForm.Get("goal")),
		Diet:        athlete.Diet(r.PostForm.Get("diet")),
		InjuryNotes: r.PostForm.Get("injury_notes"),
	}
	if v, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("age"))); err == nil {
		p.Age = v
	} else {
		fields["age"] = "must be a whole number"
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(r.PostForm.Get("height_cm")), 64); err == nil {
		p.HeightCm = v
	} else {
		fields["height_cm"] = "must be a number"
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(r.PostForm.Get("weight_kg")), 64); err == nil {
		p.WeightKg = v
	} else {
		fields["weight_kg"] = "must be a number"
	}
	return p.Normalize(), fields
}
