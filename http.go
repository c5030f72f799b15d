package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// httpAPI exposes the same controls as the line protocol over HTTP.
type httpAPI struct {
	ctl *Controller
}

func newRouter(ctl *Controller) chi.Router {
	h := httpAPI{ctl}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))

	r.Get("/status", h.getStatus)
	r.Put("/mode/{name}", h.putMode)
	r.Put("/palette/{name}", h.putPalette)
	r.Put("/status/{state}", h.putState)
	r.Put("/brightness/{value}", h.putBrightness)
	r.Put("/color/{rrggbb}", h.putColor)
	return r
}

func newHTTPServer(addr string, ctl *Controller) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           newRouter(ctl),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(payload)
	if err != nil {
		log.Warnf("Couldn't write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, errStopped) {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h httpAPI) getStatus(w http.ResponseWriter, r *http.Request) {
	var rep Report
	_, err := h.ctl.Do(r.Context(), func() (string, error) {
		rep = h.ctl.report()
		return "", nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// apply runs fn on the render loop and answers with the resulting state.
func (h httpAPI) apply(w http.ResponseWriter, r *http.Request, fn func() error) {
	var rep Report
	_, err := h.ctl.Do(r.Context(), func() (string, error) {
		err := fn()
		if err != nil {
			return "", err
		}
		rep = h.ctl.report()
		return "", nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (h httpAPI) putMode(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	h.apply(w, r, func() error {
		return h.ctl.setMode(name)
	})
}

func (h httpAPI) putPalette(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	h.apply(w, r, func() error {
		return h.ctl.setPalette(name)
	})
}

func (h httpAPI) putState(w http.ResponseWriter, r *http.Request) {
	state := chi.URLParam(r, "state")
	h.apply(w, r, func() error {
		return h.ctl.setStatus(state)
	})
}

func (h httpAPI) putBrightness(w http.ResponseWriter, r *http.Request) {
	b, err := strconv.Atoi(chi.URLParam(r, "value"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.apply(w, r, func() error {
		return h.ctl.setBrightness(b)
	})
}

func (h httpAPI) putColor(w http.ResponseWriter, r *http.Request) {
	p, err := parseColor(chi.URLParam(r, "rrggbb"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.apply(w, r, func() error {
		return h.ctl.setColor(p)
	})
}
