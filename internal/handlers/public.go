// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"aidigest/internal/cache"
	"aidigest/internal/models"
	"aidigest/internal/store"
)

// BlogReader is the read-side persistence the public handlers need.
type BlogReader interface {
	List(ctx context.Context) ([]models.Blog, error)
	ListByCategory(ctx context.Context, category string) ([]models.Blog, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*models.Blog, error)
}

// AgentReader lists the agent directory.
type AgentReader interface {
	List(ctx context.Context) ([]models.Agent, error)
}

// SubscriberWriter records newsletter signups.
type SubscriberWriter interface {
	Add(ctx context.Context, email string) (bool, error)
}

// PageReader fetches editable page blobs.
type PageReader interface {
	Get(ctx context.Context, key string) (*models.PageContent, error)
}

// ResponseCache is the subset of the Valkey cache the handlers use.
// A nil cache disables caching entirely.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte)
	Invalidate(ctx context.Context, key string)
	InvalidateBlogs(ctx context.Context)
}

// Public serves the unauthenticated JSON API consumed by the site frontend.
type Public struct {
	blogs       BlogReader
	agents      AgentReader
	subscribers SubscriberWriter
	pages       PageReader
	cache       ResponseCache // optional
}

// NewPublic creates the public handler set. cache may be nil.
func NewPublic(blogs BlogReader, agents AgentReader, subscribers SubscriberWriter, pages PageReader, c ResponseCache) *Public {
	return &Public{
		blogs:       blogs,
		agents:      agents,
		subscribers: subscribers,
		pages:       pages,
		cache:       c,
	}
}

// Health reports service liveness.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListBlogs returns all blogs, optionally filtered by the category query
// parameter, newest first. Responses are cached.
func (p *Public) ListBlogs(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && !models.IsKnownCategory(category) {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}

	key := cache.BlogsKey(category)
	if p.cache != nil {
		if body, ok := p.cache.Get(r.Context(), key); ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Write(body)
			return
		}
	}

	var (
		blogs []models.Blog
		err   error
	)
	if category == "" {
		blogs, err = p.blogs.List(r.Context())
	} else {
		blogs, err = p.blogs.ListByCategory(r.Context(), category)
	}
	if err != nil {
		slog.Error("list blogs failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load blogs")
		return
	}
	if blogs == nil {
		blogs = []models.Blog{}
	}

	body := mustJSON(blogs)
	if p.cache != nil {
		p.cache.Set(r.Context(), key, body)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(body)
}

// GetBlog returns one blog by UUID, or by slug when the path segment is not
// a UUID.
func (p *Public) GetBlog(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "id")

	var (
		blog *models.Blog
		err  error
	)
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		blog, err = p.blogs.FindByID(r.Context(), id)
	} else {
		blog, err = p.blogs.FindBySlug(r.Context(), ref)
	}

	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "blog not found")
		return
	}
	if err != nil {
		slog.Error("get blog failed", "ref", ref, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load blog")
		return
	}
	writeJSON(w, http.StatusOK, blog)
}

// ListAgents returns the AI agent directory.
func (p *Public) ListAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := p.agents.List(r.Context())
	if err != nil {
		slog.Error("list agents failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load agents")
		return
	}
	if agents == nil {
		agents = []models.Agent{}
	}
	writeJSON(w, http.StatusOK, agents)
}

// subscribeRequest is the newsletter signup payload.
type subscribeRequest struct {
	Email string `json:"email"`
}

// Subscribe records a newsletter signup. Duplicate signups succeed quietly
// so the endpoint does not leak which addresses are subscribed.
func (p *Public) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if !readJSON(w, r, &req) {
		return
	}
	if msg := validateEmail(req.Email); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if _, err := p.subscribers.Add(r.Context(), req.Email); err != nil {
		slog.Error("subscribe failed", "error", err)
		writeError(w, http.StatusInternalServerError, "subscription failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "subscribed"})
}

// GetPage returns the editable content blob for a page key.
func (p *Public) GetPage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if p.cache != nil {
		if body, ok := p.cache.Get(r.Context(), cache.PageKey(key)); ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Write(body)
			return
		}
	}

	page, err := p.pages.Get(r.Context(), key)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "page not found")
		return
	}
	if err != nil {
		slog.Error("get page failed", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load page")
		return
	}

	body := mustJSON(page)
	if p.cache != nil {
		p.cache.Set(r.Context(), cache.PageKey(key), body)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(body)
}

// mustJSON marshals data for cache storage. The domain types marshal
// cleanly; a failure here is a programming error.
func mustJSON(data any) []byte {
	body, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	return body
}
