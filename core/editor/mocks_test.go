package editor

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sagar-developer08/tree-json/core/canonical"
	"github.com/sagar-developer08/tree-json/core/domain"
	"github.com/sagar-developer08/tree-json/core/interfaces"
	"github.com/sagar-developer08/tree-json/core/session"
)

// recordingRenderer captures renderer calls
type recordingRenderer struct {
	mu       sync.Mutex
	loading  []bool
	contents []string
}

func (r *recordingRenderer) SetLoading(loading bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = append(r.loading, loading)
}

func (r *recordingRenderer) SetCanonicalContent(content string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contents = append(r.contents, content)
}

func (r *recordingRenderer) delivered() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.contents...)
}

func (r *recordingRenderer) loadingCalls() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.loading...)
}

// recordingNotifier captures notifications
type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

// mockPropagator records scheduled values instead of waiting for a timer
type mockPropagator struct {
	scheduled []canonical.Value
	cancels   int
	flushes   int
}

func (m *mockPropagator) Schedule(v canonical.Value) { m.scheduled = append(m.scheduled, v) }
func (m *mockPropagator) Cancel() bool {
	m.cancels++
	return false
}
func (m *mockPropagator) Flush() bool {
	m.flushes++
	return false
}

type savedDraft struct {
	content string
	format  domain.Format
}

// mockSession is a mock implementation of SessionStore
type mockSession struct {
	saves     []savedDraft
	loadFunc  func(ctx context.Context) (session.Snapshot, bool)
	embedded  bool
	urlDriven bool
}

func (m *mockSession) Save(ctx context.Context, content string, format domain.Format) session.Outcome {
	m.saves = append(m.saves, savedDraft{content: content, format: format})
	return session.Saved
}

func (m *mockSession) Load(ctx context.Context) (session.Snapshot, bool) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx)
	}
	return session.Snapshot{}, false
}

func (m *mockSession) SetEmbedded(embedded bool)   { m.embedded = embedded }
func (m *mockSession) SetURLDriven(urlDriven bool) { m.urlDriven = urlDriven }

// mockAPI is a mock implementation of DocumentAPI
type mockAPI struct {
	getFunc     func(ctx context.Context) (domain.Envelope, error)
	replaceFunc func(ctx context.Context, v canonical.Value) (domain.Envelope, error)
	mergeFunc   func(ctx context.Context, v canonical.Value) (domain.Envelope, error)
	clearFunc   func(ctx context.Context) (domain.Envelope, error)
	healthFunc  func(ctx context.Context) (domain.Envelope, error)
	calls       []string
}

func (m *mockAPI) Get(ctx context.Context) (domain.Envelope, error) {
	m.calls = append(m.calls, "get")
	if m.getFunc != nil {
		return m.getFunc(ctx)
	}
	return domain.Envelope{Success: true}, nil
}

func (m *mockAPI) Replace(ctx context.Context, v canonical.Value) (domain.Envelope, error) {
	m.calls = append(m.calls, "replace")
	if m.replaceFunc != nil {
		return m.replaceFunc(ctx, v)
	}
	return domain.Envelope{Success: true, StatusCode: 200}, nil
}

func (m *mockAPI) Merge(ctx context.Context, v canonical.Value) (domain.Envelope, error) {
	m.calls = append(m.calls, "merge")
	if m.mergeFunc != nil {
		return m.mergeFunc(ctx, v)
	}
	return domain.Envelope{Success: true, StatusCode: 200}, nil
}

func (m *mockAPI) Clear(ctx context.Context) (domain.Envelope, error) {
	m.calls = append(m.calls, "clear")
	if m.clearFunc != nil {
		return m.clearFunc(ctx)
	}
	return domain.Envelope{Success: true, StatusCode: 200}, nil
}

func (m *mockAPI) Health(ctx context.Context) (domain.Envelope, error) {
	m.calls = append(m.calls, "health")
	if m.healthFunc != nil {
		return m.healthFunc(ctx)
	}
	return domain.Envelope{Success: true, StatusCode: 200}, nil
}

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string) (interfaces.Response, error)
	gets    []string
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	m.gets = append(m.gets, url)
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return &mockResponse{statusCode: 404}, nil
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return nil, nil
}

func (m *mockHTTPClient) Put(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return nil, nil
}

func (m *mockHTTPClient) Delete(ctx context.Context, url string) (interfaces.Response, error) {
	return nil, nil
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
}

func (m *mockResponse) StatusCode() int         { return m.statusCode }
func (m *mockResponse) Body() io.ReadCloser     { return io.NopCloser(strings.NewReader(m.body)) }
func (m *mockResponse) Header(key string) string { return "" }

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	warns []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.warns = append(m.warns, msg) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}

// mapCache backs a real session adapter in tests
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (m *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}
	return v, nil
}

func (m *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mapCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *mapCache) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// fixture bundles a store with its fakes
type fixture struct {
	store      *Store
	renderer   *recordingRenderer
	notifier   *recordingNotifier
	propagator *mockPropagator
	session    *mockSession
	api        *mockAPI
	http       *mockHTTPClient
	logger     *mockLogger
}

func newFixture(opts Options) *fixture {
	f := &fixture{
		renderer:   &recordingRenderer{},
		notifier:   &recordingNotifier{},
		propagator: &mockPropagator{},
		session:    &mockSession{},
		api:        &mockAPI{},
		http:       &mockHTTPClient{},
		logger:     &mockLogger{},
	}
	f.store = NewStore(interfaces.Dependencies{
		HTTPClient: f.http,
		Logger:     f.logger,
		Renderer:   f.renderer,
		Notifier:   f.notifier,
	}, Components{
		Propagator: f.propagator,
		Session:    f.session,
		API:        f.api,
	}, opts)
	return f
}
