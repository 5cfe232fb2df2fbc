// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"aidigest/internal/cache"
	"aidigest/internal/generator"
	"aidigest/internal/models"
	"aidigest/internal/slug"
	"aidigest/internal/store"
)

// ScheduleStore is the schedule persistence the admin handlers need.
type ScheduleStore interface {
	Get(ctx context.Context) (models.ScheduleConfig, error)
	Save(ctx context.Context, cfg models.ScheduleConfig) error
}

// Generator runs content generation on demand.
type Generator interface {
	Generate(ctx context.Context, req generator.Request) (generator.Result, error)
	GenerateForAllCategories(ctx context.Context, categories []string) ([]*models.Blog, error)
}

// BlogWriter is the write-side blog persistence for manual admin edits.
type BlogWriter interface {
	Insert(ctx context.Context, b *models.Blog) (*models.Blog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LogReader lists generation audit entries.
type LogReader interface {
	List(ctx context.Context, limit int) ([]models.GenerationLog, error)
}

// ProviderRegistry exposes runtime provider selection.
type ProviderRegistry interface {
	Available() []string
	ActiveName() string
	SetActive(name string) error
}

// AgentWriter is the write-side directory persistence.
type AgentWriter interface {
	Create(ctx context.Context, a *models.Agent) (*models.Agent, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PageWriter upserts editable page blobs.
type PageWriter interface {
	Set(ctx context.Context, key, content string) error
}

// Admin serves the authenticated dashboard API.
type Admin struct {
	schedule  ScheduleStore
	gen       Generator
	blogs     BlogWriter
	logs      LogReader
	providers ProviderRegistry
	agents    AgentWriter
	pages     PageWriter
	cache     ResponseCache // optional
	now       func() time.Time
}

// AdminDeps bundles the admin handler dependencies.
type AdminDeps struct {
	Schedule  ScheduleStore
	Generator Generator
	Blogs     BlogWriter
	Logs      LogReader
	Providers ProviderRegistry
	Agents    AgentWriter
	Pages     PageWriter
	Cache     ResponseCache
}

// NewAdmin creates the admin handler set.
func NewAdmin(deps AdminDeps) *Admin {
	return &Admin{
		schedule:  deps.Schedule,
		gen:       deps.Generator,
		blogs:     deps.Blogs,
		logs:      deps.Logs,
		providers: deps.Providers,
		agents:    deps.Agents,
		pages:     deps.Pages,
		cache:     deps.Cache,
		now:       time.Now,
	}
}

// --- Schedule ---

// GetSchedule returns the current generation schedule.
func (a *Admin) GetSchedule(w http.ResponseWriter, r *http.Request) {
	cfg, err := a.schedule.Get(r.Context())
	if err != nil {
		slog.Error("get schedule failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load schedule")
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// UpdateSchedule replaces the generation schedule. The whole configuration
// is saved at once; concurrent saves are last-write-wins.
func (a *Admin) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var cfg models.ScheduleConfig
	if !readJSON(w, r, &cfg) {
		return
	}
	if err := cfg.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.schedule.Save(r.Context(), cfg); err != nil {
		slog.Error("save schedule failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save schedule")
		return
	}

	slog.Info("schedule updated",
		"active", cfg.IsActive,
		"frequency", cfg.Frequency,
		"time", cfg.Time,
	)
	writeJSON(w, http.StatusOK, cfg)
}

// --- Generation ---

// generateRequest asks for one article. Title is optional; when present it
// pins the headline and enables the duplicate check.
type generateRequest struct {
	Category string `json:"category"`
	Title    string `json:"title,omitempty"`
}

// Generate produces one article on demand.
func (a *Admin) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !readJSON(w, r, &req) {
		return
	}
	if !models.IsKnownCategory(req.Category) {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}

	res, err := a.gen.Generate(r.Context(), generator.Request{
		Category: req.Category,
		Title:    req.Title,
	})
	if err != nil {
		slog.Error("admin generation failed", "category", req.Category, "error", err)
		writeError(w, providerErrorStatus(err), "generation failed: "+err.Error())
		return
	}
	if res.Duplicate {
		writeJSON(w, http.StatusConflict, map[string]string{
			"status": "duplicate",
			"title":  req.Title,
		})
		return
	}

	a.invalidateBlogCache(r.Context())
	writeJSON(w, http.StatusCreated, res.Blog)
}

// GenerateAll produces one article per known category. Partial successes
// are persisted and returned even when some categories fail.
func (a *Admin) GenerateAll(w http.ResponseWriter, r *http.Request) {
	blogs, err := a.gen.GenerateForAllCategories(r.Context(), models.Categories)
	if len(blogs) > 0 {
		a.invalidateBlogCache(r.Context())
	}
	if err != nil {
		slog.Error("admin batch generation failed", "error", err, "generated", len(blogs))
		writeJSON(w, providerErrorStatus(err), map[string]any{
			"error": err.Error(),
			"blogs": blogs,
		})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"blogs": blogs})
}

// ListGenerationLogs returns the recent generation audit entries.
func (a *Admin) ListGenerationLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := a.logs.List(r.Context(), 50)
	if err != nil {
		slog.Error("list generation logs failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load logs")
		return
	}
	if logs == nil {
		logs = []models.GenerationLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

// --- Manual blog management ---

// createBlogRequest is a manually authored article.
type createBlogRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Excerpt  string `json:"excerpt"`
	Category string `json:"category"`
	ImageURL string `json:"image_url"`
}

// CreateBlog inserts a manually written article. Read time, slug, and the
// display date are derived the same way generated articles get them.
func (a *Admin) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var req createBlogRequest
	if !readJSON(w, r, &req) {
		return
	}
	if msg := validateBlog(req.Title, req.Content, req.Category, models.IsKnownCategory); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	now := a.now()
	s := slug.Generate(req.Title)
	blog := &models.Blog{
		Title:       req.Title,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Date:        now.Format("January 2, 2006"),
		ReadTime:    generator.ReadTime(req.Content),
		Slug:        &s,
		PublishedAt: &now,
	}

	created, err := a.blogs.Insert(r.Context(), blog)
	if err != nil {
		slog.Error("create blog failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create blog")
		return
	}

	a.invalidateBlogCache(r.Context())
	writeJSON(w, http.StatusCreated, created)
}

// DeleteBlog removes an article.
func (a *Admin) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid blog id")
		return
	}

	err = a.blogs.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "blog not found")
		return
	}
	if err != nil {
		slog.Error("delete blog failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete blog")
		return
	}

	a.invalidateBlogCache(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// --- Directory management ---

// createAgentRequest is a new directory entry.
type createAgentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	URL         string `json:"url"`
	Pricing     string `json:"pricing"`
}

// CreateAgent adds a directory entry.
func (a *Admin) CreateAgent(w http.ResponseWriter, r *http.Request) {
	var req createAgentRequest
	if !readJSON(w, r, &req) {
		return
	}
	if msg := validateAgent(req.Name, req.URL, req.Pricing); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := a.agents.Create(r.Context(), &models.Agent{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		URL:         req.URL,
		Pricing:     req.Pricing,
	})
	if err != nil {
		slog.Error("create agent failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create agent")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// DeleteAgent removes a directory entry.
func (a *Admin) DeleteAgent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid agent id")
		return
	}

	err = a.agents.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "agent not found")
		return
	}
	if err != nil {
		slog.Error("delete agent failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete agent")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Pages ---

// setPageRequest replaces a page-content blob.
type setPageRequest struct {
	Content string `json:"content"`
}

// SetPage replaces the content blob for a page key.
func (a *Admin) SetPage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req setPageRequest
	if !readJSON(w, r, &req) {
		return
	}
	if msg := validatePageBlob(req.Content); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := a.pages.Set(r.Context(), key, req.Content); err != nil {
		slog.Error("set page failed", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save page")
		return
	}

	if a.cache != nil {
		a.cache.Invalidate(r.Context(), cache.PageKey(key))
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// --- Providers ---

// providersResponse lists configured providers and the active one.
type providersResponse struct {
	Active    string   `json:"active"`
	Available []string `json:"available"`
}

// ListProviders returns the configured content providers.
func (a *Admin) ListProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, providersResponse{
		Active:    a.providers.ActiveName(),
		Available: a.providers.Available(),
	})
}

// setProviderRequest switches the active provider.
type setProviderRequest struct {
	Provider string `json:"provider"`
}

// SetProvider switches the active content provider at runtime.
func (a *Admin) SetProvider(w http.ResponseWriter, r *http.Request) {
	var req setProviderRequest
	if !readJSON(w, r, &req) {
		return
	}

	if err := a.providers.SetActive(req.Provider); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("content provider switched", "provider", req.Provider)
	writeJSON(w, http.StatusOK, providersResponse{
		Active:    a.providers.ActiveName(),
		Available: a.providers.Available(),
	})
}

// invalidateBlogCache drops cached blog listings after any write.
func (a *Admin) invalidateBlogCache(ctx context.Context) {
	if a.cache != nil {
		a.cache.InvalidateBlogs(ctx)
	}
}
