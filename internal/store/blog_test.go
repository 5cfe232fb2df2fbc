// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"aidigest/internal/models"
)

func testBlog(title string) *models.Blog {
	slug := "test-" + uuid.NewString()
	now := time.Now()
	return &models.Blog{
		Title:       title,
		Content:     "<p>Body text for " + title + "</p>",
		Excerpt:     "An excerpt.",
		Category:    models.CategoryAITrends,
		ImageURL:    "https://image.example/test",
		Date:        now.Format("January 2, 2006"),
		ReadTime:    3,
		Slug:        &slug,
		PublishedAt: &now,
	}
}

func TestBlogStoreInsertAndFind(t *testing.T) {
	db := testDB(t)
	s := NewBlogStore(db)
	ctx := context.Background()

	title := "Insert Test " + uuid.NewString()
	t.Cleanup(func() { cleanBlogs(t, db, title) })

	created, err := s.Insert(ctx, testBlog(title))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected generated ID")
	}
	if created.ReadTime != 3 {
		t.Errorf("read time = %d, want 3", created.ReadTime)
	}

	found, err := s.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Title != title {
		t.Errorf("title = %q, want %q", found.Title, title)
	}

	bySlug, err := s.FindBySlug(ctx, *created.Slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if bySlug.ID != created.ID {
		t.Error("FindBySlug returned a different blog")
	}
}

func TestBlogStoreFindMissing(t *testing.T) {
	db := testDB(t)
	s := NewBlogStore(db)

	_, err := s.FindByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestBlogStoreExistsByTitle(t *testing.T) {
	db := testDB(t)
	s := NewBlogStore(db)
	ctx := context.Background()

	title := "Exists Test " + uuid.NewString()
	t.Cleanup(func() { cleanBlogs(t, db, title) })

	exists, err := s.ExistsByTitle(ctx, models.CategoryAITrends, title)
	if err != nil {
		t.Fatalf("ExistsByTitle: %v", err)
	}
	if exists {
		t.Error("title should not exist yet")
	}

	if _, err := s.Insert(ctx, testBlog(title)); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	exists, err = s.ExistsByTitle(ctx, models.CategoryAITrends, title)
	if err != nil {
		t.Fatalf("ExistsByTitle: %v", err)
	}
	if !exists {
		t.Error("title should exist after insert")
	}

	// Same title in a different category does not count as a duplicate.
	exists, err = s.ExistsByTitle(ctx, models.CategoryAIEthics, title)
	if err != nil {
		t.Fatalf("ExistsByTitle: %v", err)
	}
	if exists {
		t.Error("title in another category must not match")
	}
}

func TestBlogStoreExistsBySlug(t *testing.T) {
	db := testDB(t)
	s := NewBlogStore(db)
	ctx := context.Background()

	title := "Slug Exists Test " + uuid.NewString()
	t.Cleanup(func() { cleanBlogs(t, db, title) })

	blog := testBlog(title)

	exists, err := s.ExistsBySlug(ctx, *blog.Slug)
	if err != nil {
		t.Fatalf("ExistsBySlug: %v", err)
	}
	if exists {
		t.Error("slug should not exist yet")
	}

	if _, err := s.Insert(ctx, blog); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	exists, err = s.ExistsBySlug(ctx, *blog.Slug)
	if err != nil {
		t.Fatalf("ExistsBySlug: %v", err)
	}
	if !exists {
		t.Error("slug should exist after insert")
	}
}

func TestBlogStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewBlogStore(db)
	ctx := context.Background()

	title := "Delete Test " + uuid.NewString()
	t.Cleanup(func() { cleanBlogs(t, db, title) })

	created, err := s.Insert(ctx, testBlog(title))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestBlogStoreListByCategory(t *testing.T) {
	db := testDB(t)
	s := NewBlogStore(db)
	ctx := context.Background()

	title := "Category List Test " + uuid.NewString()
	t.Cleanup(func() { cleanBlogs(t, db, title) })

	b := testBlog(title)
	b.Category = models.CategoryDeepLearning
	if _, err := s.Insert(ctx, b); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	items, err := s.ListByCategory(ctx, models.CategoryDeepLearning)
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	found := false
	for _, item := range items {
		if item.Title == title {
			found = true
		}
		if item.Category != models.CategoryDeepLearning {
			t.Errorf("unexpected category %q in result", item.Category)
		}
	}
	if !found {
		t.Error("inserted blog missing from category listing")
	}
}
