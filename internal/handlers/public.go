// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"folioadmin/internal/cache"
	"folioadmin/internal/portfolio"
)

// Public serves the read-only portfolio document the public site renders:
// projects, skills grouped by category, the About text as HTML and the
// active contacts. It checks the snapshot cache before reading the
// database, and stores the encoded document on miss.
type Public struct {
	overview *portfolio.Overview
	cache    *cache.SnapshotCache
}

// NewPublic creates a new Public handler group. snapshots may be nil to
// disable caching.
func NewPublic(overview *portfolio.Overview, snapshots *cache.SnapshotCache) *Public {
	return &Public{overview: overview, cache: snapshots}
}

// Portfolio writes the public snapshot.
func (p *Public) Portfolio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if p.cache != nil {
		if cached, ok := p.cache.Get(ctx, cache.PortfolioKey); ok {
			writeCached(w, cached)
			return
		}
	}

	snap, err := p.overview.Snapshot(ctx)
	if err != nil {
		slog.Error("portfolio snapshot failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Portfolio is unavailable.")
		return
	}

	body, err := json.Marshal(envelope{Data: snap})
	if err != nil {
		slog.Error("encode snapshot failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Portfolio is unavailable.")
		return
	}

	if p.cache != nil {
		p.cache.Set(ctx, cache.PortfolioKey, body)
	}
	writeCached(w, body)
}

func writeCached(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
