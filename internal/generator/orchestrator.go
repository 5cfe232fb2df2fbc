// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generator coordinates one blog-generation request: ask the
// content provider for a draft, attach a generated image URL, derive the
// display date and read time, and persist the result. Batch generation
// fans out per category; partial successes stay persisted even when a
// sibling category fails.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"aidigest/internal/ai"
	"aidigest/internal/models"
	"aidigest/internal/slug"
)

// imagePromptPrefix frames every article title as an image prompt.
const imagePromptPrefix = "A futuristic tech visualization representing: "

// wordsPerMinute is the reading speed used to derive Blog.ReadTime.
const wordsPerMinute = 200

// ContentProvider produces article drafts. Implemented by *ai.Registry.
type ContentProvider interface {
	GenerateBlogContent(ctx context.Context, category string) (*ai.Draft, error)
}

// ImageGenerator builds an image URL for a prompt and never fails.
// Implemented by *imaging.Generator.
type ImageGenerator interface {
	GenerateImage(prompt string) string
}

// BlogStore is the persistence surface the orchestrator needs.
type BlogStore interface {
	Insert(ctx context.Context, b *models.Blog) (*models.Blog, error)
	ExistsByTitle(ctx context.Context, category, title string) (bool, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}

// GenerationLogStore records best-effort audit entries for generation runs.
type GenerationLogStore interface {
	Begin(ctx context.Context, categories []string) (uuid.UUID, error)
	Finish(ctx context.Context, id uuid.UUID, status models.GenerationStatus, blogID *uuid.UUID, errMsg string) error
}

// Orchestrator wires provider, image generation, and persistence together.
type Orchestrator struct {
	provider ContentProvider
	images   ImageGenerator
	blogs    BlogStore
	logs     GenerationLogStore // optional; nil disables audit logging
	now      func() time.Time
}

// Option customises an Orchestrator.
type Option func(*Orchestrator)

// WithLogStore enables best-effort generation audit logging.
func WithLogStore(logs GenerationLogStore) Option {
	return func(o *Orchestrator) { o.logs = logs }
}

// WithNow overrides the clock. Used by tests.
func WithNow(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New creates an Orchestrator.
func New(provider ContentProvider, images ImageGenerator, blogs BlogStore, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		provider: provider,
		images:   images,
		blogs:    blogs,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Request describes one generation request. Title is optional; when set it
// both pins the article headline and enables the duplicate check.
type Request struct {
	Category string
	Title    string
}

// Result is the outcome of a single generation request. When Duplicate is
// true no provider was called and Blog is nil.
type Result struct {
	Blog      *models.Blog
	Duplicate bool
}

// Generate runs one generation request. If an explicit title is given and
// a blog with that title already exists in the category, generation
// short-circuits without calling any provider.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if req.Title != "" {
		exists, err := o.blogs.ExistsByTitle(ctx, req.Category, req.Title)
		if err != nil {
			return Result{}, fmt.Errorf("duplicate check: %w", err)
		}
		if exists {
			slog.Info("skipping generation, title already exists",
				"category", req.Category, "title", req.Title)
			return Result{Duplicate: true}, nil
		}
	}

	draft, err := o.provider.GenerateBlogContent(ctx, req.Category)
	if err != nil {
		return Result{}, err
	}
	if req.Title != "" {
		draft.Title = req.Title
	}

	blog, err := o.persist(ctx, draft)
	if err != nil {
		return Result{}, err
	}
	return Result{Blog: blog}, nil
}

// GenerateForCategory generates and persists one article for the category.
func (o *Orchestrator) GenerateForCategory(ctx context.Context, category string) (*models.Blog, error) {
	res, err := o.Generate(ctx, Request{Category: category})
	if err != nil {
		return nil, err
	}
	return res.Blog, nil
}

// GenerateForAllCategories generates one article per category
// concurrently. The first failure cancels siblings still in flight and is
// returned, but articles already persisted are kept — there is no
// cross-category rollback. The returned slice holds the successes.
func (o *Orchestrator) GenerateForAllCategories(ctx context.Context, categories []string) ([]*models.Blog, error) {
	logID := o.beginLog(ctx, categories)

	g, gctx := errgroup.WithContext(ctx)
	results := make([]*models.Blog, len(categories))

	for i, category := range categories {
		g.Go(func() error {
			blog, err := o.GenerateForCategory(gctx, category)
			if err != nil {
				return fmt.Errorf("category %q: %w", category, err)
			}
			results[i] = blog
			return nil
		})
	}

	err := g.Wait()

	var blogs []*models.Blog
	for _, b := range results {
		if b != nil {
			blogs = append(blogs, b)
		}
	}

	if err != nil {
		o.finishLog(ctx, logID, models.GenerationError, nil, err.Error())
		return blogs, err
	}

	var firstID *uuid.UUID
	if len(blogs) > 0 {
		firstID = &blogs[0].ID
	}
	o.finishLog(ctx, logID, models.GenerationSuccess, firstID, "")
	return blogs, nil
}

// persist assembles the Blog record from a draft and inserts it.
// Persistence errors propagate to the caller without retry.
func (o *Orchestrator) persist(ctx context.Context, draft *ai.Draft) (*models.Blog, error) {
	imageURL := o.images.GenerateImage(imagePromptPrefix + draft.Title)

	now := o.now()
	s, err := o.uniqueSlug(ctx, draft.Title, now)
	if err != nil {
		return nil, err
	}

	blog := &models.Blog{
		Title:       draft.Title,
		Content:     draft.Content,
		Excerpt:     draft.Excerpt,
		Category:    draft.Category,
		ImageURL:    imageURL,
		Date:        now.Format("January 2, 2006"),
		ReadTime:    ReadTime(draft.Content),
		Slug:        &s,
		PublishedAt: &now,
	}

	created, err := o.blogs.Insert(ctx, blog)
	if err != nil {
		return nil, fmt.Errorf("persist blog: %w", err)
	}

	slog.Info("blog generated",
		"id", created.ID,
		"category", created.Category,
		"title", created.Title,
		"read_time", created.ReadTime,
	)
	return created, nil
}

// uniqueSlug derives the URL slug for a title, de-duplicating against
// existing articles. Slugs are unique in storage and synthesized drafts can
// repeat a default title across runs, so a straight title slug would make
// every later run for that category fail its insert. A date suffix keeps
// the daily repeat readable; a random fragment covers anything denser.
func (o *Orchestrator) uniqueSlug(ctx context.Context, title string, now time.Time) (string, error) {
	s := slug.Generate(title)
	exists, err := o.blogs.ExistsBySlug(ctx, s)
	if err != nil {
		return "", fmt.Errorf("slug check: %w", err)
	}
	if !exists {
		return s, nil
	}

	dated := s + "-" + now.Format("2006-01-02")
	exists, err = o.blogs.ExistsBySlug(ctx, dated)
	if err != nil {
		return "", fmt.Errorf("slug check: %w", err)
	}
	if !exists {
		return dated, nil
	}

	return dated + "-" + uuid.NewString()[:8], nil
}

// beginLog opens a pending audit entry. Best-effort: failures are logged
// and generation continues.
func (o *Orchestrator) beginLog(ctx context.Context, categories []string) *uuid.UUID {
	if o.logs == nil {
		return nil
	}
	id, err := o.logs.Begin(ctx, categories)
	if err != nil {
		slog.Warn("generation audit log write failed", "error", err)
		return nil
	}
	return &id
}

// finishLog closes a pending audit entry. Best-effort.
func (o *Orchestrator) finishLog(ctx context.Context, id *uuid.UUID, status models.GenerationStatus, blogID *uuid.UUID, errMsg string) {
	if o.logs == nil || id == nil {
		return
	}
	if err := o.logs.Finish(ctx, *id, status, blogID, errMsg); err != nil {
		slog.Warn("generation audit log update failed", "error", err)
	}
}

// tagPattern matches HTML tags for word counting.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// ReadTime estimates reading time in minutes for an HTML body: strip tags,
// count words, divide by a standard reading speed, round up. Always at
// least one minute.
func ReadTime(htmlContent string) int {
	text := tagPattern.ReplaceAllString(htmlContent, " ")
	words := len(strings.Fields(text))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
