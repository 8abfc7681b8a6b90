// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"folioadmin/internal/portfolio"
)

// notice is a message the services reported while handling the request.
type notice struct {
	Kind    portfolio.NoticeKind `json:"kind"`
	Message string               `json:"message"`
}

// httpPrompter adapts portfolio.Prompter to a request/response cycle. The
// client pre-answers confirmations with confirm=true; notices are collected
// and returned in the JSON body.
type httpPrompter struct {
	confirmed bool
	question  string
	notices   []notice
}

func newPrompter(r *http.Request) *httpPrompter {
	v := strings.ToLower(r.FormValue("confirm"))
	return &httpPrompter{confirmed: v == "true" || v == "1" || v == "yes"}
}

func (p *httpPrompter) Confirm(question string) bool {
	p.question = question
	return p.confirmed
}

func (p *httpPrompter) Notify(kind portfolio.NoticeKind, message string) {
	p.notices = append(p.notices, notice{Kind: kind, Message: message})
}

// envelope is the JSON body of every admin API response.
type envelope struct {
	Data    any      `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`
	Confirm string   `json:"confirm,omitempty"`
	Notices []notice `json:"notices,omitempty"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respond writes data along with the notices p collected.
func respond(w http.ResponseWriter, p *httpPrompter, status int, data any) {
	env := envelope{Data: data}
	if p != nil {
		env.Notices = p.notices
	}
	writeJSON(w, status, env)
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Error: msg})
}

// fail maps a service error to a response:
//
//	ErrNotConfirmed  409 {"confirm": question}
//	ValidationError  400 {"error": message}
//	OperationError   500 {"error": "Error <action>: <cause>"}
func fail(w http.ResponseWriter, p *httpPrompter, err error) {
	env := envelope{Notices: p.notices}

	var (
		verr *portfolio.ValidationError
		oerr *portfolio.OperationError
	)
	switch {
	case errors.Is(err, portfolio.ErrNotConfirmed):
		env.Confirm = p.question
		writeJSON(w, http.StatusConflict, env)
	case errors.As(err, &verr):
		env.Error = verr.Message
		writeJSON(w, http.StatusBadRequest, env)
	case errors.As(err, &oerr):
		// Already logged at the operation boundary.
		env.Error = oerr.Error()
		writeJSON(w, http.StatusInternalServerError, env)
	default:
		slog.Error("request failed", "error", err)
		env.Error = "Internal Server Error"
		writeJSON(w, http.StatusInternalServerError, env)
	}
}

// idParam parses the {id} URL parameter.
func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
