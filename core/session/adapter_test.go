package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sagar-developer08/tree-json/core/domain"
	"github.com/sagar-developer08/tree-json/core/interfaces"
	"github.com/sagar-developer08/tree-json/pkg/featureflags"
)

// mapCache is an in-memory Cache with injectable failures
type mapCache struct {
	mu       sync.Mutex
	data     map[string][]byte
	ttls     map[string]time.Duration
	setErr   error
	getErr   error
	setCalls int
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}
	return v, nil
}

func (m *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mapCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type mockLogger struct {
	warnings []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	m.warnings = append(m.warnings, msg)
}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}

func TestAdapter_SaveAndLoad(t *testing.T) {
	cache := newMapCache()
	a := NewAdapter(cache, &mockLogger{}, Options{SessionID: "tab-1", TTL: time.Minute})
	ctx := context.Background()

	assert.Equal(t, Saved, a.Save(ctx, "a: 1", domain.FormatYAML))
	assert.Equal(t, []byte("a: 1"), cache.data["tab-1:content"])
	assert.Equal(t, []byte("yaml"), cache.data["tab-1:format"])
	assert.Equal(t, time.Minute, cache.ttls["tab-1:content"])

	snapshot, ok := a.Load(ctx)
	assert.True(t, ok)
	assert.Equal(t, Snapshot{Content: "a: 1", Format: domain.FormatYAML}, snapshot)
}

func TestAdapter_SessionsAreIsolated(t *testing.T) {
	cache := newMapCache()
	ctx := context.Background()

	first := NewAdapter(cache, &mockLogger{}, Options{SessionID: "one"})
	second := NewAdapter(cache, &mockLogger{}, Options{SessionID: "two"})

	first.Save(ctx, "{}", domain.FormatJSON)

	_, ok := second.Load(ctx)
	assert.False(t, ok)
}

func TestAdapter_GeneratesSessionID(t *testing.T) {
	a := NewAdapter(newMapCache(), &mockLogger{}, Options{})
	b := NewAdapter(newMapCache(), &mockLogger{}, Options{})

	assert.NotEmpty(t, a.SessionID())
	assert.NotEqual(t, a.SessionID(), b.SessionID())
}

func TestAdapter_SkipsAboveSizeCeiling(t *testing.T) {
	cache := newMapCache()
	a := NewAdapter(cache, &mockLogger{}, Options{SessionID: "s"})
	ctx := context.Background()

	assert.Equal(t, SkippedSize, a.Save(ctx, strings.Repeat("x", 90000), domain.FormatJSON))
	assert.Equal(t, SkippedSize, a.Save(ctx, strings.Repeat("x", MaxContentLength), domain.FormatJSON))
	assert.Equal(t, 0, cache.setCalls)

	assert.Equal(t, Saved, a.Save(ctx, strings.Repeat("é", MaxContentLength-1), domain.FormatJSON))
}

func TestAdapter_SkipsInEmbeddedAndURLContexts(t *testing.T) {
	cache := newMapCache()
	a := NewAdapter(cache, &mockLogger{}, Options{SessionID: "s"})
	ctx := context.Background()

	a.SetEmbedded(true)
	assert.Equal(t, SkippedContext, a.Save(ctx, "{}", domain.FormatJSON))

	a.SetEmbedded(false)
	a.SetURLDriven(true)
	assert.Equal(t, SkippedContext, a.Save(ctx, "{}", domain.FormatJSON))

	a.SetURLDriven(false)
	assert.Equal(t, Saved, a.Save(ctx, "{}", domain.FormatJSON))
}

func TestAdapter_SkipsWhenDisabled(t *testing.T) {
	cache := newMapCache()
	flags := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{
		featureflags.SessionPersistence: false,
	})
	a := NewAdapter(cache, &mockLogger{}, Options{SessionID: "s", Flags: flags})

	assert.Equal(t, SkippedDisabled, a.Save(context.Background(), "{}", domain.FormatJSON))
	assert.Equal(t, 0, cache.setCalls)
}

func TestAdapter_StorageFailuresNeverPropagate(t *testing.T) {
	cache := newMapCache()
	logger := &mockLogger{}
	a := NewAdapter(cache, logger, Options{SessionID: "s"})
	ctx := context.Background()

	cache.setErr = errors.New("disk full")
	assert.Equal(t, Failed, a.Save(ctx, "{}", domain.FormatJSON))

	cache.getErr = errors.New("connection refused")
	_, ok := a.Load(ctx)
	assert.False(t, ok)

	assert.Len(t, logger.warnings, 2)
}

func TestAdapter_LoadDefaultsFormat(t *testing.T) {
	cache := newMapCache()
	a := NewAdapter(cache, &mockLogger{}, Options{SessionID: "s"})
	ctx := context.Background()

	cache.data["s:content"] = []byte("[1]")
	snapshot, ok := a.Load(ctx)
	assert.True(t, ok)
	assert.Equal(t, domain.FormatJSON, snapshot.Format)

	cache.data["s:format"] = []byte("bogus")
	snapshot, _ = a.Load(ctx)
	assert.Equal(t, domain.FormatJSON, snapshot.Format)

	cache.data["s:content"] = []byte("")
	_, ok = a.Load(ctx)
	assert.False(t, ok)
}

func TestAdapter_Clear(t *testing.T) {
	cache := newMapCache()
	a := NewAdapter(cache, &mockLogger{}, Options{SessionID: "s"})
	ctx := context.Background()

	a.Save(ctx, "x,y\n1,2", domain.FormatCSV)
	a.Clear(ctx)

	_, ok := a.Load(ctx)
	assert.False(t, ok)
	assert.Empty(t, cache.data)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "saved", Saved.String())
	assert.Equal(t, "skipped_size", SkippedSize.String())
	assert.Equal(t, "skipped_context", SkippedContext.String())
	assert.Equal(t, "skipped_disabled", SkippedDisabled.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}
