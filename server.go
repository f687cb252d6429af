package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

/////////////////////
// Response helpers

func RespondInternalServiceError(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(err.Error()))
}

func RespondNotFoundError(w http.ResponseWriter, body string) {
	w.WriteHeader(http.StatusNotFound)
	if body == "" {
		body = "Not found"
	}
	RespondText(w, body)
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadRequest)
	RespondText(w, message)
}

func RespondText(w http.ResponseWriter, body string) {
	w.Write([]byte(body))
}

func RespondJSON(w http.ResponseWriter, body any) {
	w.Header().Add("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		RespondInternalServiceError(w, err)
	}
}

// RespondError maps the domain sentinels onto status codes.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotExist):
		RespondNotFoundError(w, err.Error())
	case errors.Is(err, ErrValidation):
		RespondBadRequest(w, err.Error())
	case errors.Is(err, ErrExhausted):
		w.WriteHeader(http.StatusGone)
		RespondText(w, err.Error())
	default:
		RespondInternalServiceError(w, err)
	}
}

type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
}

func StartServer(config *Config, buildInfo BuildInfo, drum *Drum, storage *Storage) error {
	r := NewRouter(buildInfo, drum, storage)

	address := config.Address()
	log.Info().Str("listen", address).Msg("launching server")
	return http.ListenAndServe(address, r)
}

// NewRouter is split from StartServer so tests can drive the handlers
// through httptest.
func NewRouter(buildInfo BuildInfo, drum *Drum, storage *Storage) chi.Router {
	hlog := ComponentLogger("http")

	r := chi.NewRouter()
	r.Use(LoggerMiddleware(&hlog))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, buildInfo)
	})

	// GET pool names
	r.Get("/api/pools", func(w http.ResponseWriter, r *http.Request) {
		pools, err := storage.ListPools()
		if err != nil {
			RespondError(w, err)
			return
		}
		if pools == nil {
			pools = []string{}
		}
		RespondJSON(w, pools)
	})

	// GET single pool status
	r.Get("/api/pools/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Cache-Control", "no-cache, no-store")
		name := chi.URLParam(r, "name")
		status, err := drum.Status(name)
		if err != nil {
			RespondError(w, err)
			return
		}
		RespondJSON(w, status)
	})

	// POST (create or replace) single pool
	r.Post("/api/pools/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		var pool Pool
		if err := json.NewDecoder(r.Body).Decode(&pool); err != nil {
			RespondBadRequest(w, fmt.Sprintf("could not parse pool: %s", err))
			return
		}
		pool.Name = name

		if err := storage.SavePool(&pool); err != nil {
			RespondError(w, err)
			return
		}

		// Drop any stale in-memory state so the next draw sees the new
		// entries.
		drum.Unload(name)

		w.WriteHeader(http.StatusNoContent)
	})

	r.Delete("/api/pools/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		if err := storage.DeletePool(name); err != nil {
			RespondError(w, err)
			return
		}
		drum.Unload(name)

		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/api/pools/{name}/draw", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		entry, err := drum.Draw(name)
		if err != nil {
			RespondError(w, err)
			return
		}

		remaining, err := drum.Remaining(name)
		if err != nil {
			RespondError(w, err)
			return
		}

		RespondJSON(w, map[string]any{
			"entry":     entry,
			"remaining": remaining,
		})
	})

	r.Post("/api/pools/{name}/reset", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		if err := drum.Reset(name); err != nil {
			RespondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/api/pools/{name}/spin", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		rotate := 0
		if by := r.URL.Query().Get("by"); by != "" {
			var err error
			rotate, err = strconv.Atoi(by)
			if err != nil {
				RespondBadRequest(w, fmt.Sprintf("invalid spin amount %q", by))
				return
			}
		}

		if err := drum.Spin(name, rotate); err != nil {
			RespondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/api/pools/{name}/reverse", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		if err := drum.Reverse(name); err != nil {
			RespondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/api/pools/{name}/remaining", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		remaining, err := drum.Remaining(name)
		if err != nil {
			RespondError(w, err)
			return
		}
		RespondJSON(w, map[string]int{"remaining": remaining})
	})

	r.Get("/api/events", createWebsocketHandler(drum))

	return r
}
