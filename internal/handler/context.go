package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/borgespro/golist/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseIDParam(r *http.Request) (int64, error) {
	idStr := r.PathValue("id")
	return strconv.ParseInt(idStr, 10, 64)
}

// queryOptions reads the common collection parameters: search, ordering,
// and the 1-based page number.
func queryOptions(r *http.Request) store.QueryOptions {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	return store.QueryOptions{
		Search:   q.Get("search"),
		Ordering: q.Get("ordering"),
		Page:     page,
	}
}

// pageResponse is the paginated collection envelope. Next and Previous
// are page URLs, null when there is no such page.
type pageResponse struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// writePage writes one page of results with total count and neighbor
// page links derived from the request URL.
func writePage(w http.ResponseWriter, r *http.Request, count, page int, results any) {
	resp := pageResponse{Count: count, Results: results}
	if page*store.PageSize < count {
		resp.Next = pageURL(r, page+1)
	}
	if page > 1 {
		resp.Previous = pageURL(r, page-1)
	}
	writeJSON(w, http.StatusOK, resp)
}

func pageURL(r *http.Request, page int) *string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
