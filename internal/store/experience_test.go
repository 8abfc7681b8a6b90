// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestExperienceStoreCategories(t *testing.T) {
	db := testDB(t)
	s := NewExperienceStore(db)
	ctx := context.Background()

	cats, err := s.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(cats) != 0 {
		t.Fatalf("expected no categories, got %v", cats)
	}

	for _, row := range [][2]string{
		{"Tools", "Docker"},
		{"Languages", "Go"},
		{"Languages", "Rust"},
		{"Frameworks", "Gin"},
	} {
		if _, err := s.Create(ctx, row[0], row[1]); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	// NULL and empty categories are not categories.
	db.Exec("INSERT INTO skills (name, category) VALUES ('orphan', NULL)")
	db.Exec("INSERT INTO skills (name, category) VALUES ('blank', '')")

	cats, err = s.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	want := []string{"Frameworks", "Languages", "Tools"}
	if !reflect.DeepEqual(cats, want) {
		t.Errorf("Categories = %v, want %v", cats, want)
	}
}

func TestExperienceStoreListByCategory(t *testing.T) {
	db := testDB(t)
	s := NewExperienceStore(db)
	ctx := context.Background()

	s.Create(ctx, "Languages", "Rust")
	s.Create(ctx, "Languages", "Go")
	s.Create(ctx, "Tools", "Docker")

	rows, err := s.ListByCategory(ctx, "Languages")
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Name != "Go" || rows[1].Name != "Rust" {
		t.Errorf("order = [%s %s], want [Go Rust]", rows[0].Name, rows[1].Name)
	}
	for _, r := range rows {
		if r.Category != "Languages" {
			t.Errorf("row %d has category %q", r.ID, r.Category)
		}
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 || all[0].Category != "Languages" || all[2].Category != "Tools" {
		t.Errorf("ListAll = %+v", all)
	}
}

func TestExperienceStoreUpdateName(t *testing.T) {
	db := testDB(t)
	s := NewExperienceStore(db)
	ctx := context.Background()

	e, err := s.Create(ctx, "Languages", "Rust")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.UpdateName(ctx, e.ID, "Rust (advanced)"); err != nil {
		t.Fatalf("UpdateName: %v", err)
	}

	found, err := s.FindByID(ctx, e.ID)
	if err != nil || found == nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Name != "Rust (advanced)" || found.Category != "Languages" {
		t.Errorf("got %+v", found)
	}

	if err := s.UpdateName(ctx, 9999, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateName on missing row: got %v, want ErrNotFound", err)
	}
}

func TestExperienceStoreDeleteCategory(t *testing.T) {
	db := testDB(t)
	s := NewExperienceStore(db)
	ctx := context.Background()

	s.Create(ctx, "X", "one")
	s.Create(ctx, "X", "two")
	keep, _ := s.Create(ctx, "Y", "three")

	n, err := s.DeleteCategory(ctx, "X")
	if err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d rows, want 2", n)
	}

	cats, _ := s.Categories(ctx)
	if !reflect.DeepEqual(cats, []string{"Y"}) {
		t.Errorf("Categories = %v, want [Y]", cats)
	}
	if found, _ := s.FindByID(ctx, keep.ID); found == nil {
		t.Error("rows of other categories must survive")
	}

	// Deleting a category that does not exist is a no-op.
	n, err = s.DeleteCategory(ctx, "missing")
	if err != nil || n != 0 {
		t.Errorf("DeleteCategory(missing) = %d, %v", n, err)
	}
}

func TestExperienceStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewExperienceStore(db)
	ctx := context.Background()

	e, _ := s.Create(ctx, "Tools", "Docker")
	if err := s.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, e.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: got %v, want ErrNotFound", err)
	}
	if n, _ := s.Count(ctx); n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}
}

func TestExperienceStoreDefaultCategory(t *testing.T) {
	db := testDB(t)
	s := NewExperienceStore(db)
	ctx := context.Background()

	if _, err := db.Exec("INSERT INTO skills (name) VALUES ('Sample')"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	cats, _ := s.Categories(ctx)
	if !reflect.DeepEqual(cats, []string{"General"}) {
		t.Errorf("Categories = %v, want [General]", cats)
	}
}
