package library

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"scriptgen-workers/internal/common/logger"
)

// NewHTTPHandler serves the read side of the library:
//
//	GET /library?limit=n
//	GET /library/{id}
func NewHTTPHandler(store *Store, defaultLimit int, log logger.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /library", func(w http.ResponseWriter, r *http.Request) {
		limit := defaultLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
				return
			}
			limit = n
		}

		scripts, err := store.List(r.Context(), limit)
		if err != nil {
			log.Error("library list failed", map[string]interface{}{"error": err.Error()})
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "library unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"scripts": scripts, "count": len(scripts)})
	})

	mux.HandleFunc("GET /library/{id}", func(w http.ResponseWriter, r *http.Request) {
		script, err := store.Get(r.Context(), r.PathValue("id"))
		switch {
		case errors.Is(err, ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "script not found"})
		case err != nil:
			log.Error("library get failed", map[string]interface{}{"error": err.Error()})
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "library unavailable"})
		default:
			writeJSON(w, http.StatusOK, script)
		}
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
