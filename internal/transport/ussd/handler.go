// Package ussd adapts telephony gateway callbacks to the menu engine.
package ussd

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/huddle-backend/internal/service/menu"
)

const maxBodyBytes = 16 << 10

type menuEngine interface {
	Handle(ctx context.Context, req menu.Request) menu.Response
}

// Handler serves POST /ussd. The gateway may post either JSON or a form.
type Handler struct {
	engine menuEngine
	log    *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(engine menuEngine, logger *slog.Logger) *Handler {
	return &Handler{engine: engine, log: logger.With("handler", "ussd")}
}

type request struct {
	Identity    string `json:"identity"`
	Input       string `json:"input"`
	Next        string `json:"next"`
	Interrupted bool   `json:"interrupted"`
	PriorInput  string `json:"prior_input"`
	Dial        string `json:"dial"`
}

type response struct {
	menu.Response
	Text string `json:"text"`
}

// ServeHTTP renders one menu screen.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	req, err := parse(r)
	if err != nil {
		h.log.DebugContext(r.Context(), "bad ussd request", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}
	if strings.TrimSpace(req.Identity) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "identity is required"})
		return
	}

	resp := h.engine.Handle(r.Context(), menu.Request{
		Identity:    req.Identity,
		Input:       req.Input,
		Locator:     req.Next,
		Interrupted: req.Interrupted,
		PriorInput:  req.PriorInput,
		Dial:        req.Dial,
	})
	writeJSON(w, http.StatusOK, response{Response: resp, Text: resp.Text()})
}

func parse(r *http.Request) (request, error) {
	var req request

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}

	if err := r.ParseForm(); err != nil {
		return req, err
	}
	req.Identity = r.PostForm.Get("identity")
	req.Input = r.PostForm.Get("input")
	req.Next = r.PostForm.Get("next")
	req.PriorInput = r.PostForm.Get("prior_input")
	req.Dial = r.PostForm.Get("dial")
	if v := r.PostForm.Get("interrupted"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, err
		}
		req.Interrupted = b
	}
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
