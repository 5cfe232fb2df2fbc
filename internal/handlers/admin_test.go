// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"aidigest/internal/ai"
	"aidigest/internal/generator"
	"aidigest/internal/models"
	"aidigest/internal/store"
)

type fakeScheduleStore struct {
	cfg   models.ScheduleConfig
	saved *models.ScheduleConfig
}

func (f *fakeScheduleStore) Get(ctx context.Context) (models.ScheduleConfig, error) {
	return f.cfg, nil
}

func (f *fakeScheduleStore) Save(ctx context.Context, cfg models.ScheduleConfig) error {
	f.saved = &cfg
	return nil
}

type fakeGenerator struct {
	result    generator.Result
	err       error
	batch     []*models.Blog
	batchErr  error
	lastReq   generator.Request
	batchCats []string
}

func (f *fakeGenerator) Generate(ctx context.Context, req generator.Request) (generator.Result, error) {
	f.lastReq = req
	return f.result, f.err
}

func (f *fakeGenerator) GenerateForAllCategories(ctx context.Context, categories []string) ([]*models.Blog, error) {
	f.batchCats = categories
	return f.batch, f.batchErr
}

type fakeBlogWriter struct {
	inserted *models.Blog
	deleted  []uuid.UUID
	delErr   error
}

func (f *fakeBlogWriter) Insert(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	b.ID = uuid.New()
	f.inserted = b
	return b, nil
}

func (f *fakeBlogWriter) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return f.delErr
}

type fakeLogReader struct{ logs []models.GenerationLog }

func (f *fakeLogReader) List(ctx context.Context, limit int) ([]models.GenerationLog, error) {
	return f.logs, nil
}

type fakeRegistry struct {
	active    string
	available []string
}

func (f *fakeRegistry) Available() []string { return f.available }
func (f *fakeRegistry) ActiveName() string  { return f.active }
func (f *fakeRegistry) SetActive(name string) error {
	for _, n := range f.available {
		if n == name {
			f.active = name
			return nil
		}
	}
	return fmt.Errorf("provider %q is not configured", name)
}

type fakeAgentWriter struct {
	created *models.Agent
	delErr  error
}

func (f *fakeAgentWriter) Create(ctx context.Context, a *models.Agent) (*models.Agent, error) {
	a.ID = uuid.New()
	f.created = a
	return a, nil
}

func (f *fakeAgentWriter) Delete(ctx context.Context, id uuid.UUID) error { return f.delErr }

type fakePageWriter struct {
	key, content string
}

func (f *fakePageWriter) Set(ctx context.Context, key, content string) error {
	f.key, f.content = key, content
	return nil
}

type adminFixture struct {
	schedule  *fakeScheduleStore
	gen       *fakeGenerator
	blogs     *fakeBlogWriter
	logs      *fakeLogReader
	providers *fakeRegistry
	agents    *fakeAgentWriter
	pages     *fakePageWriter
	cache     *memCache
	handler   http.Handler
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		schedule:  &fakeScheduleStore{cfg: models.DefaultScheduleConfig()},
		gen:       &fakeGenerator{},
		blogs:     &fakeBlogWriter{},
		logs:      &fakeLogReader{},
		providers: &fakeRegistry{active: "perplexity", available: []string{"perplexity", "huggingface"}},
		agents:    &fakeAgentWriter{},
		pages:     &fakePageWriter{},
		cache:     newMemCache(),
	}
	a := NewAdmin(AdminDeps{
		Schedule:  f.schedule,
		Generator: f.gen,
		Blogs:     f.blogs,
		Logs:      f.logs,
		Providers: f.providers,
		Agents:    f.agents,
		Pages:     f.pages,
		Cache:     f.cache,
	})

	r := chi.NewRouter()
	r.Get("/schedule", a.GetSchedule)
	r.Put("/schedule", a.UpdateSchedule)
	r.Post("/generate", a.Generate)
	r.Post("/generate/all", a.GenerateAll)
	r.Get("/generation-logs", a.ListGenerationLogs)
	r.Post("/blogs", a.CreateBlog)
	r.Delete("/blogs/{id}", a.DeleteBlog)
	r.Post("/agents", a.CreateAgent)
	r.Delete("/agents/{id}", a.DeleteAgent)
	r.Put("/pages/{key}", a.SetPage)
	r.Get("/providers", a.ListProviders)
	r.Put("/providers", a.SetProvider)
	f.handler = r
	return f
}

func (f *adminFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestGetSchedule(t *testing.T) {
	f := newAdminFixture()
	rec := f.do(http.MethodGet, "/schedule", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var cfg models.ScheduleConfig
	if err := json.Unmarshal(rec.Body.Bytes(), &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Time != "09:00" || cfg.Frequency != models.FrequencyDaily {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestUpdateSchedule(t *testing.T) {
	f := newAdminFixture()
	rec := f.do(http.MethodPut, "/schedule",
		`{"is_active":true,"frequency":"weekly","time":"07:30","days_of_week":[1,3,5],"categories":["AI Trends"]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if f.schedule.saved == nil {
		t.Fatal("schedule was not saved")
	}
	if !f.schedule.saved.IsActive || f.schedule.saved.Time != "07:30" {
		t.Errorf("saved = %+v", f.schedule.saved)
	}
}

func TestUpdateScheduleInvalid(t *testing.T) {
	f := newAdminFixture()
	cases := []string{
		`{"is_active":true,"frequency":"hourly","time":"07:30","categories":["AI Trends"]}`,
		`{"is_active":true,"frequency":"weekly","time":"07:30","categories":["AI Trends"]}`,
		`{"is_active":true,"frequency":"daily","time":"07:30","categories":[]}`,
	}
	for _, body := range cases {
		if rec := f.do(http.MethodPut, "/schedule", body); rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
	if f.schedule.saved != nil {
		t.Error("invalid schedule was saved")
	}
}

func TestAdminGenerate(t *testing.T) {
	f := newAdminFixture()
	f.gen.result = generator.Result{Blog: &models.Blog{ID: uuid.New(), Title: "Fresh"}}
	f.cache.entries["blogs"] = []byte("[]")

	rec := f.do(http.MethodPost, "/generate", `{"category":"AI Trends"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if f.gen.lastReq.Category != models.CategoryAITrends {
		t.Errorf("category = %q", f.gen.lastReq.Category)
	}
	if _, ok := f.cache.entries["blogs"]; ok {
		t.Error("blog cache was not invalidated")
	}
}

func TestAdminGenerateUnknownCategory(t *testing.T) {
	f := newAdminFixture()
	rec := f.do(http.MethodPost, "/generate", `{"category":"Cooking"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAdminGenerateDuplicate(t *testing.T) {
	f := newAdminFixture()
	f.gen.result = generator.Result{Duplicate: true}

	rec := f.do(http.MethodPost, "/generate", `{"category":"AI Trends","title":"Seen Before"}`)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "duplicate" {
		t.Errorf("body = %v", body)
	}
}

func TestAdminGenerateProviderErrors(t *testing.T) {
	tests := []struct {
		kind ai.Kind
		want int
	}{
		{ai.KindConfiguration, http.StatusServiceUnavailable},
		{ai.KindAuthentication, http.StatusBadGateway},
		{ai.KindRateLimit, http.StatusTooManyRequests},
		{ai.KindServer, http.StatusBadGateway},
		{ai.KindMalformedResponse, http.StatusBadGateway},
	}
	for _, tt := range tests {
		f := newAdminFixture()
		f.gen.err = fmt.Errorf("generate: %w", &ai.Error{
			Provider: "perplexity",
			Kind:     tt.kind,
			Message:  "boom",
		})
		rec := f.do(http.MethodPost, "/generate", `{"category":"AI Trends"}`)
		if rec.Code != tt.want {
			t.Errorf("kind %v: status = %d, want %d", tt.kind, rec.Code, tt.want)
		}
	}
}

func TestAdminGenerateAll(t *testing.T) {
	f := newAdminFixture()
	f.gen.batch = []*models.Blog{{ID: uuid.New()}, {ID: uuid.New()}}
	f.cache.entries["blogs:AI Trends"] = []byte("[]")

	rec := f.do(http.MethodPost, "/generate/all", "")

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if len(f.gen.batchCats) != len(models.Categories) {
		t.Errorf("categories = %v", f.gen.batchCats)
	}
	if len(f.cache.entries) != 0 {
		t.Error("blog cache was not invalidated")
	}
}

func TestAdminGenerateAllPartialFailure(t *testing.T) {
	f := newAdminFixture()
	f.gen.batch = []*models.Blog{{ID: uuid.New()}}
	f.gen.batchErr = fmt.Errorf("AI Ethics: %w", &ai.Error{Kind: ai.KindRateLimit})

	rec := f.do(http.MethodPost, "/generate/all", "")

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	var body struct {
		Error string         `json:"error"`
		Blogs []*models.Blog `json:"blogs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error == "" || len(body.Blogs) != 1 {
		t.Errorf("body = %+v", body)
	}
}

func TestListGenerationLogs(t *testing.T) {
	f := newAdminFixture()
	f.logs.logs = []models.GenerationLog{{ID: uuid.New(), Status: models.GenerationSuccess}}

	rec := f.do(http.MethodGet, "/generation-logs", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var logs []models.GenerationLog
	if err := json.Unmarshal(rec.Body.Bytes(), &logs); err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Errorf("got %d logs", len(logs))
	}
}

func TestCreateBlog(t *testing.T) {
	f := newAdminFixture()
	content := strings.Repeat("word ", 450)
	body, _ := json.Marshal(map[string]string{
		"title":    "Hand Written Piece",
		"content":  content,
		"excerpt":  "A short summary.",
		"category": models.CategoryAIEthics,
	})

	rec := f.do(http.MethodPost, "/blogs", string(body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	b := f.blogs.inserted
	if b == nil {
		t.Fatal("blog was not inserted")
	}
	if b.ReadTime != 3 {
		t.Errorf("read time = %d, want 3", b.ReadTime)
	}
	if b.Slug == nil || *b.Slug != "hand-written-piece" {
		t.Errorf("slug = %v", b.Slug)
	}
	if b.PublishedAt == nil || b.Date == "" {
		t.Errorf("publication fields missing: %+v", b)
	}
}

func TestCreateBlogValidation(t *testing.T) {
	f := newAdminFixture()
	cases := []string{
		`{"title":"","content":"x","category":"AI Trends"}`,
		`{"title":"T","content":"","category":"AI Trends"}`,
		`{"title":"T","content":"x","category":"Cooking"}`,
	}
	for _, body := range cases {
		if rec := f.do(http.MethodPost, "/blogs", body); rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestDeleteBlog(t *testing.T) {
	f := newAdminFixture()
	id := uuid.New()

	rec := f.do(http.MethodDelete, "/blogs/"+id.String(), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if len(f.blogs.deleted) != 1 || f.blogs.deleted[0] != id {
		t.Errorf("deleted = %v", f.blogs.deleted)
	}
}

func TestDeleteBlogErrors(t *testing.T) {
	f := newAdminFixture()
	if rec := f.do(http.MethodDelete, "/blogs/not-a-uuid", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}

	f.blogs.delErr = store.ErrNotFound
	if rec := f.do(http.MethodDelete, "/blogs/"+uuid.NewString(), ""); rec.Code != http.StatusNotFound {
		t.Errorf("missing blog status = %d, want 404", rec.Code)
	}

	f.blogs.delErr = errors.New("connection reset")
	if rec := f.do(http.MethodDelete, "/blogs/"+uuid.NewString(), ""); rec.Code != http.StatusInternalServerError {
		t.Errorf("store error status = %d, want 500", rec.Code)
	}
}

func TestCreateAgent(t *testing.T) {
	f := newAdminFixture()
	rec := f.do(http.MethodPost, "/agents",
		`{"name":"ScribeBot","description":"Summaries","category":"productivity","url":"https://scribebot.example","pricing":"freemium"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if f.agents.created == nil || f.agents.created.Name != "ScribeBot" {
		t.Errorf("created = %+v", f.agents.created)
	}
}

func TestCreateAgentInvalidPricing(t *testing.T) {
	f := newAdminFixture()
	rec := f.do(http.MethodPost, "/agents",
		`{"name":"X","description":"","category":"","url":"https://x.example","pricing":"enterprise"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSetPage(t *testing.T) {
	f := newAdminFixture()
	f.cache.entries["page:about"] = []byte("stale")

	rec := f.do(http.MethodPut, "/pages/about", `{"content":"{\"title\":\"About\"}"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if f.pages.key != "about" {
		t.Errorf("key = %q", f.pages.key)
	}
	if _, ok := f.cache.entries["page:about"]; ok {
		t.Error("page cache was not invalidated")
	}
}

func TestProviders(t *testing.T) {
	f := newAdminFixture()

	rec := f.do(http.MethodGet, "/providers", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp providersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Active != "perplexity" || len(resp.Available) != 2 {
		t.Errorf("resp = %+v", resp)
	}

	rec = f.do(http.MethodPut, "/providers", `{"provider":"huggingface"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("switch status = %d, body = %s", rec.Code, rec.Body)
	}
	if f.providers.active != "huggingface" {
		t.Errorf("active = %q", f.providers.active)
	}

	rec = f.do(http.MethodPut, "/providers", `{"provider":"openai"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown provider status = %d, want 400", rec.Code)
	}
}
