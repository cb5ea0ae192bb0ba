package httpapi

import (
	"database/sql"
	"net/http"
	"strconv"

	"jobmarket-engine/internal/store"
)

type PostingsHandler struct {
	DB *sql.DB
}

func (h PostingsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.DB == nil {
		http.Error(w, "persistence disabled", http.StatusServiceUnavailable)
		return
	}
	q := r.URL.Query()

	limit, _ := strconv.Atoi(q.Get("limit"))
	postings, err := store.ListPostings(r.Context(), h.DB, store.ListPostingsOpts{
		From:      q.Get("from"),
		To:        q.Get("to"),
		Industry:  q.Get("industry"),
		Role:      q.Get("role"),
		Country:   q.Get("country"),
		Seniority: q.Get("seniority"),
		Limit:     limit,
	})
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if postings == nil {
		postings = []store.Posting{}
	}
	writeJSON(w, postings)
}

func (h PostingsHandler) TopSkills(w http.ResponseWriter, r *http.Request) {
	if h.DB == nil {
		http.Error(w, "persistence disabled", http.StatusServiceUnavailable)
		return
	}
	q := r.URL.Query()

	limit, _ := strconv.Atoi(q.Get("limit"))
	skills, err := store.TopSkills(r.Context(), h.DB, q.Get("industry"), limit)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if skills == nil {
		skills = []store.SkillCount{}
	}
	writeJSON(w, skills)
}
