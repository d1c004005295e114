// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/squadmatch/internal/config"
	"github.com/tomtom215/squadmatch/internal/models"
)

type mockMatcher struct {
	result    *models.MatchResult
	summaries []models.MatchSummary
	pool      []models.UserID
	err       error
	calls     int
}

func (m *mockMatcher) ComputeOne(_ context.Context, _, _ models.UserID) (*models.MatchResult, error) {
	m.calls++
	return m.result, m.err
}

func (m *mockMatcher) Candidates(_ context.Context, _ models.UserID) ([]models.UserID, error) {
	return m.pool, m.err
}

func (m *mockMatcher) ComputeBatch(_ context.Context, _ models.UserID) ([]models.MatchSummary, error) {
	return m.summaries, m.err
}

type mockCache struct {
	entries     map[string]*models.MatchResult
	invalidated []models.UserID
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]*models.MatchResult)}
}

func (c *mockCache) GetMatch(_ context.Context, viewerID, targetID models.UserID) (*models.MatchResult, bool) {
	r, ok := c.entries[string(viewerID)+":"+string(targetID)]
	return r, ok
}

func (c *mockCache) PutMatch(_ context.Context, viewerID, targetID models.UserID, result *models.MatchResult) error {
	c.entries[string(viewerID)+":"+string(targetID)] = result
	return nil
}

func (c *mockCache) InvalidateUser(_ context.Context, id models.UserID) error {
	c.invalidated = append(c.invalidated, id)
	return nil
}

type mockWriter struct {
	traits map[models.UserID]*models.TraitsContext
	slots  map[models.UserID][]models.ScheduleSlot
	err    error
}

func newMockWriter() *mockWriter {
	return &mockWriter{
		traits: make(map[models.UserID]*models.TraitsContext),
		slots:  make(map[models.UserID][]models.ScheduleSlot),
	}
}

func (w *mockWriter) SaveTraits(_ context.Context, id models.UserID, t *models.TraitsContext) error {
	if w.err != nil {
		return w.err
	}
	w.traits[id] = t
	return nil
}

func (w *mockWriter) ReplaceSlots(_ context.Context, id models.UserID, slots []models.ScheduleSlot) error {
	if w.err != nil {
		return w.err
	}
	w.slots[id] = slots
	return nil
}

type mockPinger struct{ err error }

func (p mockPinger) Ping(context.Context) error { return p.err }

func apiConfig() config.APIConfig {
	return config.APIConfig{DefaultPageSize: 20, MaxPageSize: 100}
}

func testServer(t *testing.T, matcher *mockMatcher, cache *mockCache, writer *mockWriter, ping mockPinger) *httptest.Server {
	t.Helper()
	var c ResultCache
	if cache != nil {
		c = cache
	}
	var w UserWriter
	if writer != nil {
		w = writer
	}
	handler := NewHandler(matcher, c, w, ping, apiConfig())
	router := NewRouter(handler, config.SecurityConfig{RateLimitDisabled: true, CORSOrigins: []string{"*"}})
	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv
}

func decodeEnvelope(t *testing.T, resp *http.Response) models.APIResponse {
	t.Helper()
	defer resp.Body.Close()
	var env models.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func reencode(t *testing.T, data interface{}, dst interface{}) {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("re-marshal data: %v", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		t.Fatalf("re-unmarshal data: %v", err)
	}
}

func TestHealthLive(t *testing.T) {
	srv := testServer(t, &mockMatcher{}, nil, nil, mockPinger{})
	resp, err := http.Get(srv.URL + "/api/v1/health/live")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	env := decodeEnvelope(t, resp)
	if resp.StatusCode != http.StatusOK || env.Status != "success" {
		t.Fatalf("unexpected response: %d %+v", resp.StatusCode, env)
	}
}

func TestHealthReadyFailsWhenStoreDown(t *testing.T) {
	srv := testServer(t, &mockMatcher{}, nil, nil, mockPinger{err: errors.New("down")})
	resp, err := http.Get(srv.URL + "/api/v1/health/ready")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	env := decodeEnvelope(t, resp)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != ErrCodeUnavailable {
		t.Fatalf("unexpected error: %+v", env.Error)
	}
}

func TestArchetypesCatalog(t *testing.T) {
	srv := testServer(t, &mockMatcher{}, nil, nil, mockPinger{})
	resp, err := http.Get(srv.URL + "/api/v1/archetypes")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	env := decodeEnvelope(t, resp)
	var entries []map[string]interface{}
	reencode(t, env.Data, &entries)
	if len(entries) != 16 {
		t.Fatalf("expected 16 archetypes, got %d", len(entries))
	}
	if entries[0]["slug"] != "vanguard" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
}

func TestClassifyPureComputation(t *testing.T) {
	srv := testServer(t, &mockMatcher{}, nil, nil, mockPinger{})

	body, _ := json.Marshal(ClassifyRequest{
		Answers: []AnswerPayload{{QuestionID: "q_session_start", OptionID: "lead"}},
	})
	resp, err := http.Post(srv.URL+"/api/v1/classify", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	env := decodeEnvelope(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %+v", resp.StatusCode, env.Error)
	}

	var out classifyResponse
	reencode(t, env.Data, &out)
	if out.Archetype == "" {
		t.Fatal("expected an archetype")
	}
	if out.Persisted {
		t.Fatal("classification without user_id must not persist")
	}
	if out.Vector.Leadership <= 50 {
		t.Fatalf("leading answer should raise leadership: %+v", out.Vector)
	}
}

func TestClassifyPersistsForUser(t *testing.T) {
	writer := newMockWriter()
	cache := newMockCache()
	srv := testServer(t, &mockMatcher{}, cache, writer, mockPinger{})

	body, _ := json.Marshal(ClassifyRequest{
		UserID:  "u1",
		Answers: []AnswerPayload{{QuestionID: "q_plan", OptionID: "deep"}},
	})
	resp, err := http.Post(srv.URL+"/api/v1/classify", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	env := decodeEnvelope(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %+v", resp.StatusCode, env.Error)
	}

	var out classifyResponse
	reencode(t, env.Data, &out)
	if !out.Persisted {
		t.Fatal("expected persisted flag")
	}
	saved, ok := writer.traits["u1"]
	if !ok {
		t.Fatal("traits not saved")
	}
	if saved.Archetype != out.Archetype {
		t.Fatalf("saved archetype %q does not match response %q", saved.Archetype, out.Archetype)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "u1" {
		t.Fatalf("expected cache invalidation for u1, got %v", cache.invalidated)
	}
}

func TestClassifyRejectsEmptyAnswers(t *testing.T) {
	srv := testServer(t, &mockMatcher{}, nil, nil, mockPinger{})
	resp, err := http.Post(srv.URL+"/api/v1/classify", "application/json", bytes.NewReader([]byte(`{"answers":[]}`)))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	env := decodeEnvelope(t, resp)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != ErrCodeValidationFailed {
		t.Fatalf("unexpected error: %+v", env.Error)
	}
}

func TestClassifyRejectsMalformedJSON(t *testing.T) {
	srv := testServer(t, &mockMatcher{}, nil, nil, mockPinger{})
	resp, err := http.Post(srv.URL+"/api/v1/classify", "application/json", bytes.NewReader([]byte(`{`)))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestMatchComputesAndCaches(t *testing.T) {
	matcher := &mockMatcher{result: &models.MatchResult{Score: 74, ComputedAt: time.Now().UTC()}}
	cache := newMockCache()
	srv := testServer(t, matcher, cache, nil, mockPinger{})

	resp, err := http.Get(srv.URL + "/api/v1/match/u1/u2")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	env := decodeEnvelope(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if env.Metadata.Cached {
		t.Fatal("first call should not be cached")
	}
	var result models.MatchResult
	reencode(t, env.Data, &result)
	if result.Score != 74 {
		t.Fatalf("unexpected score: %d", result.Score)
	}

	// Second call is served from cache without touching the matcher.
	callsBefore := matcher.calls
	resp, err = http.Get(srv.URL + "/api/v1/match/u1/u2")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	env = decodeEnvelope(t, resp)
	if !env.Metadata.Cached {
		t.Fatal("second call should be cached")
	}
	if matcher.calls != callsBefore {
		t.Fatal("cached call must not recompute")
	}
}

func TestMatchRejectsSelfPair(t *testing.T) {
	srv := testServer(t, &mockMatcher{}, nil, nil, mockPinger{})
	resp, err := http.Get(srv.URL + "/api/v1/match/u1/u1")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestMatchBreakerOpenMapsTo503(t *testing.T) {
	matcher := &mockMatcher{err: gobreaker.ErrOpenState}
	srv := testServer(t, matcher, nil, nil, mockPinger{})
	resp, err := http.Get(srv.URL + "/api/v1/match/u1/u2")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func TestMatchInfrastructureErrorMapsTo500(t *testing.T) {
	matcher := &mockMatcher{err: errors.New("db gone")}
	srv := testServer(t, matcher, nil, nil, mockPinger{})
	resp, err := http.Get(srv.URL + "/api/v1/match/u1/u2")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

func TestCandidates(t *testing.T) {
	matcher := &mockMatcher{pool: []models.UserID{"u2", "u3"}}
	srv := testServer(t, matcher, nil, nil, mockPinger{})
	resp, err := http.Get(srv.URL + "/api/v1/match/u1/candidates")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	env := decodeEnvelope(t, resp)
	var pool []models.UserID
	reencode(t, env.Data, &pool)
	if len(pool) != 2 || pool[0] != "u2" {
		t.Fatalf("unexpected pool: %v", pool)
	}
}

func TestBatchPagination(t *testing.T) {
	summaries := make([]models.MatchSummary, 5)
	for i := range summaries {
		summaries[i] = models.MatchSummary{
			TargetID:    models.UserID(string(rune('a' + i))),
			MatchResult: models.MatchResult{Score: 50 + i},
		}
	}
	matcher := &mockMatcher{summaries: summaries}
	srv := testServer(t, matcher, nil, nil, mockPinger{})

	resp, err := http.Get(srv.URL + "/api/v1/match/u1/?limit=2&offset=4")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	env := decodeEnvelope(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %+v", resp.StatusCode, env.Error)
	}

	var out struct {
		Matches []models.MatchSummary `json:"matches"`
		Total   int                   `json:"total"`
		Offset  int                   `json:"offset"`
		Limit   int                   `json:"limit"`
	}
	reencode(t, env.Data, &out)
	if out.Total != 5 || len(out.Matches) != 1 {
		t.Fatalf("unexpected page: total=%d matches=%d", out.Total, len(out.Matches))
	}
	if out.Matches[0].Score != 54 {
		t.Fatalf("wrong page contents: %+v", out.Matches[0])
	}
}

func TestBatchOffsetPastEnd(t *testing.T) {
	matcher := &mockMatcher{summaries: []models.MatchSummary{{TargetID: "u2"}}}
	srv := testServer(t, matcher, nil, nil, mockPinger{})

	resp, err := http.Get(srv.URL + "/api/v1/match/u1/?offset=10")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	env := decodeEnvelope(t, resp)
	var out struct {
		Matches []models.MatchSummary `json:"matches"`
		Total   int                   `json:"total"`
	}
	reencode(t, env.Data, &out)
	if len(out.Matches) != 0 || out.Total != 1 {
		t.Fatalf("unexpected page: %+v", out)
	}
}

func TestUpdateSchedule(t *testing.T) {
	writer := newMockWriter()
	cache := newMockCache()
	srv := testServer(t, &mockMatcher{}, cache, writer, mockPinger{})

	body := []byte(`{"slots":[{"day":"weekday","slot":"evening"},{"day":"weekend","slot":"morning"}]}`)
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/v1/users/u1/schedule", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	env := decodeEnvelope(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %+v", resp.StatusCode, env.Error)
	}
	if len(writer.slots["u1"]) != 2 {
		t.Fatalf("slots not saved: %+v", writer.slots)
	}
	if writer.slots["u1"][0].Day != models.DayWeekday {
		t.Fatalf("unexpected slot: %+v", writer.slots["u1"][0])
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "u1" {
		t.Fatalf("expected cache invalidation, got %v", cache.invalidated)
	}
}

func TestUpdateScheduleRejectsUnknownDay(t *testing.T) {
	writer := newMockWriter()
	srv := testServer(t, &mockMatcher{}, nil, writer, mockPinger{})

	body := []byte(`{"slots":[{"day":"holiday","slot":"evening"}]}`)
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/v1/users/u1/schedule", bytes.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	env := decodeEnvelope(t, resp)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != ErrCodeValidationFailed {
		t.Fatalf("unexpected error: %+v", env.Error)
	}
	if len(writer.slots) != 0 {
		t.Fatal("invalid request must not persist")
	}
}

func TestRequestIDHeaderPresent(t *testing.T) {
	srv := testServer(t, &mockMatcher{}, nil, nil, mockPinger{})
	resp, err := http.Get(srv.URL + "/api/v1/archetypes")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header")
	}
}
