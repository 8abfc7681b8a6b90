// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"slices"
	"sort"
)

// DefaultCategory is the category a skill row gets when none is given.
const DefaultCategory = "General"

// Experience is a single skill row. Categories have no table of their own:
// the set of categories is the set of distinct Category values.
type Experience struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Categories returns the sorted distinct non-empty categories present in rows.
func Categories(rows []Experience) []string {
	seen := make(map[string]struct{}, len(rows))
	var out []string
	for _, r := range rows {
		if r.Category == "" {
			continue
		}
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	sort.Strings(out)
	return out
}

// DiffCategories compares the groupings a front end currently renders with
// the categories present in storage. add lists categories to create,
// remove lists groupings to drop; both are sorted.
func DiffCategories(rendered, current []string) (add, remove []string) {
	for _, c := range current {
		if !slices.Contains(rendered, c) {
			add = append(add, c)
		}
	}
	for _, r := range rendered {
		if !slices.Contains(current, r) {
			remove = append(remove, r)
		}
	}
	sort.Strings(add)
	sort.Strings(remove)
	return add, remove
}

// GroupByCategory buckets rows by category, keeping their relative order.
func GroupByCategory(rows []Experience) map[string][]Experience {
	groups := make(map[string][]Experience)
	for _, r := range rows {
		if r.Category == "" {
			continue
		}
		groups[r.Category] = append(groups[r.Category], r)
	}
	return groups
}
