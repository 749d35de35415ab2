package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/paperdeck/paperdeck/internal/config"
	"github.com/paperdeck/paperdeck/internal/engine"
	"github.com/paperdeck/paperdeck/internal/paper"
)

func (s *Server) handleListPapers(w http.ResponseWriter, r *http.Request) {
	var papers []paper.Paper
	var err error
	if limit := queryInt(r, "limit", 0); limit > 0 {
		papers, err = s.engine.Recent(limit)
	} else {
		papers, err = s.engine.AllPapers()
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, papers)
}

func (s *Server) handleAddPaper(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title         string   `json:"paper_title"`
		Authors       string   `json:"authors"`
		Background    string   `json:"background_of_the_study"`
		Objectives    string   `json:"research_objectives_and_hypothesis"`
		Methodology   string   `json:"methodology"`
		Results       string   `json:"results_and_findings"`
		Discussion    string   `json:"discussion_and_interpretation"`
		Contributions string   `json:"contributions_to_the_field"`
		Significance  string   `json:"achievements_and_significance"`
		Link          string   `json:"link"`
		Notes         string   `json:"notes"`
		Keywords      []string `json:"keywords"`
		Categories    []string `json:"category"`
		PDFPath       string   `json:"pdf_path"`
		Question      string   `json:"question"`
		Answer        string   `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	id, err := s.engine.AddPaper(engine.AddRequest{
		Title:         req.Title,
		Authors:       req.Authors,
		Background:    req.Background,
		Objectives:    req.Objectives,
		Methodology:   req.Methodology,
		Results:       req.Results,
		Discussion:    req.Discussion,
		Contributions: req.Contributions,
		Significance:  req.Significance,
		Link:          req.Link,
		Notes:         req.Notes,
		Keywords:      req.Keywords,
		Categories:    req.Categories,
		PDFPath:       req.PDFPath,
		Question:      req.Question,
		Answer:        req.Answer,
	})
	if err != nil {
		if errors.Is(err, paper.ErrEmptyTitle) || errors.Is(err, paper.ErrEmptyAuthors) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleGetPaper(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.LoadByID(chi.URLParam(r, "paperID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "paper not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdatePaper(w http.ResponseWriter, r *http.Request) {
	var p paper.Paper
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	p.ID = chi.URLParam(r, "paperID")

	ok, err := s.engine.UpdatePaper(p)
	if err != nil {
		if errors.Is(err, paper.ErrInvalidRecord) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "paper not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeletePaper(w http.ResponseWriter, r *http.Request) {
	ok, err := s.engine.DeletePaper(chi.URLParam(r, "paperID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "paper not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleDue(w http.ResponseWriter, r *http.Request) {
	due, err := s.engine.DueForReview(queryInt(r, "limit", 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if due == nil {
		due = []paper.Paper{}
	}
	writeJSON(w, http.StatusOK, due)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaperID    string     `json:"paper_id"`
		Difficulty string     `json:"difficulty"`
		Timestamp  *time.Time `json:"timestamp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.PaperID == "" {
		writeError(w, http.StatusBadRequest, "paper_id required")
		return
	}

	difficulty, err := paper.ParseDifficulty(req.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ev, err := paper.NewReviewEvent(req.PaperID, difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Timestamp != nil {
		ev.Timestamp = *req.Timestamp
	}

	ok, err := s.engine.ProcessReview(ev)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "paper not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reviewed"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	results, err := s.engine.Search(q.Get("q"), splitParam(q.Get("category")), splitParam(q.Get("keyword")))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if results == nil {
		results = []paper.Paper{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.engine.Tags()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.engine.Categories()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleConfigCategories(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.config.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cfg.Categories)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := s.config.AddCategory(req.Name); err != nil {
		if errors.Is(err, config.ErrDuplicateCategory) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		if errors.Is(err, config.ErrEmptyCategory) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	summary, err := s.engine.Analytics()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	upcoming, err := s.engine.Upcoming(queryInt(r, "days", 7))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if upcoming == nil {
		upcoming = []engine.UpcomingReview{}
	}
	writeJSON(w, http.StatusOK, upcoming)
}

func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	perf, err := s.engine.Performance()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, perf)
}

func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	path, err := s.store.CreateBackup("")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.config.MarkBackup(time.Now()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"path": path})
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path required")
		return
	}

	if !s.store.RestoreFromBackup(req.Path) {
		writeError(w, http.StatusUnprocessableEntity, "restore failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "restored"})
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func splitParam(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
