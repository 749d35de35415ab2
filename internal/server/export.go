package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
)

// The narrative sections are written as markdown in the UI, so export renders
// them through goldmark into a standalone HTML fragment.

func (s *Server) handleExportPaper(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.LoadByID(chi.URLParam(r, "paperID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "paper not found")
		return
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", p.Title)
	fmt.Fprintf(&md, "**Authors:** %s\n\n", p.Authors)
	if p.Link != nil {
		fmt.Fprintf(&md, "**Link:** <%s>\n\n", *p.Link)
	}
	if len(p.Categories) > 0 {
		fmt.Fprintf(&md, "**Categories:** %s\n\n", strings.Join(p.Categories, ", "))
	}
	if len(p.Keywords) > 0 {
		fmt.Fprintf(&md, "**Keywords:** %s\n\n", strings.Join(p.Keywords, ", "))
	}

	sections := []struct {
		heading string
		body    string
	}{
		{"Background of the Study", p.Background},
		{"Research Objectives and Hypothesis", p.Objectives},
		{"Methodology", p.Methodology},
		{"Results and Findings", p.Results},
		{"Discussion and Interpretation", p.Discussion},
		{"Contributions to the Field", p.Contributions},
		{"Achievements and Significance", p.Significance},
		{"Notes", p.Notes},
	}
	for _, sec := range sections {
		if sec.body == "" {
			continue
		}
		fmt.Fprintf(&md, "## %s\n\n%s\n\n", sec.heading, sec.body)
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md.String()), &buf); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("render markdown: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
