package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagar-developer08/tree-json/core/canonical"
	"github.com/sagar-developer08/tree-json/core/domain"
	coreerrors "github.com/sagar-developer08/tree-json/core/errors"
	"github.com/sagar-developer08/tree-json/core/interfaces"
	"github.com/sagar-developer08/tree-json/pkg/featureflags"
)

func TestLoadFromAPI_Success(t *testing.T) {
	f := newFixture(Options{})
	ctx := context.Background()
	require.NoError(t, f.store.SetContents(ctx, "x = 1\n", WithFormat(domain.FormatTOML)))
	f.api.getFunc = remoteDocument(`{"a":1}`)

	require.NoError(t, f.store.LoadFromAPI(ctx))

	assert.Equal(t, "{\n  \"a\": 1\n}", f.store.Contents())
	assert.Equal(t, domain.FormatJSON, f.store.Format())
	assert.False(t, f.store.HasChanges())
	assert.Equal(t, []string{"JSON data loaded from API successfully!"}, f.notifier.successes)
	assert.Empty(t, f.notifier.errors)
}

func TestLoadFromAPI_Failures(t *testing.T) {
	tests := []struct {
		name    string
		get     func(ctx context.Context) (domain.Envelope, error)
		wantMsg string
	}{
		{
			name:    "unreachable",
			get:     unreachable,
			wantMsg: "Failed to connect to API",
		},
		{
			name: "server error",
			get: func(ctx context.Context) (domain.Envelope, error) {
				return domain.Envelope{Error: "Database offline", StatusCode: 500},
					&coreerrors.RemoteAPIError{StatusCode: 500, Message: "Database offline"}
			},
			wantMsg: "Database offline",
		},
		{
			name: "no data",
			get: func(ctx context.Context) (domain.Envelope, error) {
				return domain.Envelope{Success: true, StatusCode: 200}, nil
			},
			wantMsg: "Failed to load data from API",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(Options{})
			ctx := context.Background()
			require.NoError(t, f.store.SetContents(ctx, `{"keep": true}`))
			f.api.getFunc = tt.get

			err := f.store.LoadFromAPI(ctx)

			require.Error(t, err)
			assert.Equal(t, []string{tt.wantMsg}, f.notifier.errors)
			assert.Equal(t, `{"keep": true}`, f.store.Contents())
			assert.Equal(t, domain.StatusReady, f.store.Snapshot().Status)
		})
	}
}

func TestLoadFromAPI_StaleResult(t *testing.T) {
	f := newFixture(Options{})
	ctx := context.Background()
	f.api.getFunc = func(ctx context.Context) (domain.Envelope, error) {
		require.NoError(t, f.store.SetContents(ctx, `{"typed": true}`))
		return domain.Envelope{Success: true, Data: []byte(`{"a":1}`), StatusCode: 200}, nil
	}

	err := f.store.LoadFromAPI(ctx)

	assert.True(t, coreerrors.IsStale(err))
	assert.Equal(t, `{"typed": true}`, f.store.Contents())
	assert.Empty(t, f.notifier.successes)
}

func TestLoadFromAPI_NoAPI(t *testing.T) {
	notifier := &recordingNotifier{}
	store := NewStore(interfaces.Dependencies{
		Logger:   &mockLogger{},
		Renderer: &recordingRenderer{},
		Notifier: notifier,
	}, Components{Propagator: &mockPropagator{}}, Options{})

	err := store.LoadFromAPI(context.Background())
	assert.True(t, coreerrors.IsValidation(err))
	assert.Len(t, notifier.errors, 1)
	assert.False(t, store.IsAPIConnected(context.Background()))
	assert.True(t, coreerrors.IsValidation(store.SaveToAPI(context.Background())))
}

func TestSaveToAPI_Success(t *testing.T) {
	f := newFixture(Options{})
	ctx := context.Background()
	require.NoError(t, f.store.SetContents(ctx, "name: tree\ntags: [a, b]\n", WithFormat(domain.FormatYAML)))

	var sent canonical.Value
	f.api.replaceFunc = func(ctx context.Context, v canonical.Value) (domain.Envelope, error) {
		sent = v
		return domain.Envelope{Success: true, StatusCode: 200}, nil
	}

	require.NoError(t, f.store.SaveToAPI(ctx))

	want, err := canonical.ParseJSON([]byte(`{"name":"tree","tags":["a","b"]}`))
	require.NoError(t, err)
	assert.True(t, canonical.Equal(want, sent))
	assert.False(t, f.store.HasChanges())
	assert.Equal(t, []string{"JSON data saved to API successfully!"}, f.notifier.successes)
	assert.Equal(t, []string{"replace"}, f.api.calls)
}

func TestSaveToAPI_UnparsableContentMakesNoRequest(t *testing.T) {
	f := newFixture(Options{})
	ctx := context.Background()
	require.Error(t, f.store.SetContents(ctx, `{"a": `))

	err := f.store.SaveToAPI(ctx)

	require.Error(t, err)
	assert.True(t, coreerrors.IsConversion(err))
	assert.Empty(t, f.api.calls)
	assert.Equal(t, []string{"Failed to save data to API"}, f.notifier.errors)
	assert.True(t, f.store.HasChanges())
}

func TestSaveToAPI_EmptyContentMakesNoRequest(t *testing.T) {
	f := newFixture(Options{})

	err := f.store.SaveToAPI(context.Background())

	assert.True(t, coreerrors.IsValidation(err))
	assert.Empty(t, f.api.calls)
	assert.Equal(t, []string{"No data to save"}, f.notifier.errors)
}

func TestSaveToAPI_RemoteFailures(t *testing.T) {
	tests := []struct {
		name    string
		replace func(ctx context.Context, v canonical.Value) (domain.Envelope, error)
		wantMsg string
	}{
		{
			name: "unreachable",
			replace: func(ctx context.Context, v canonical.Value) (domain.Envelope, error) {
				err := &coreerrors.NetworkError{Op: "PUT", URL: "http://api/api/json", Err: errors.New("timeout")}
				return domain.Envelope{Error: err.Error()}, err
			},
			wantMsg: "Failed to connect to API",
		},
		{
			name: "rejected",
			replace: func(ctx context.Context, v canonical.Value) (domain.Envelope, error) {
				return domain.Envelope{Error: "jsonData is required", StatusCode: 400},
					&coreerrors.RemoteAPIError{StatusCode: 400, Message: "jsonData is required"}
			},
			wantMsg: "jsonData is required",
		},
		{
			name: "rejected without message",
			replace: func(ctx context.Context, v canonical.Value) (domain.Envelope, error) {
				return domain.Envelope{StatusCode: 500}, &coreerrors.RemoteAPIError{StatusCode: 500}
			},
			wantMsg: "Failed to save data to API",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(Options{})
			ctx := context.Background()
			require.NoError(t, f.store.SetContents(ctx, `{"a": 1}`))
			f.api.replaceFunc = tt.replace

			require.Error(t, f.store.SaveToAPI(ctx))
			assert.Equal(t, []string{tt.wantMsg}, f.notifier.errors)
			assert.True(t, f.store.HasChanges())
		})
	}
}

func TestSaveToAPI_EditDuringSaveKeepsChangeFlag(t *testing.T) {
	f := newFixture(Options{})
	ctx := context.Background()
	require.NoError(t, f.store.SetContents(ctx, `{"v": 1}`))
	f.api.replaceFunc = func(ctx context.Context, v canonical.Value) (domain.Envelope, error) {
		require.NoError(t, f.store.SetContents(ctx, `{"v": 2}`))
		return domain.Envelope{Success: true, StatusCode: 200}, nil
	}

	err := f.store.SaveToAPI(ctx)

	assert.True(t, coreerrors.IsStale(err))
	assert.True(t, f.store.HasChanges())
	assert.Equal(t, `{"v": 2}`, f.store.Contents())
}

func TestMergeToAPI(t *testing.T) {
	f := newFixture(Options{})
	ctx := context.Background()
	require.NoError(t, f.store.SetContents(ctx, `{"patch": true}`))

	require.NoError(t, f.store.MergeToAPI(ctx))

	assert.Equal(t, []string{"merge"}, f.api.calls)
	assert.False(t, f.store.HasChanges())
}

func TestClearRemote(t *testing.T) {
	f := newFixture(Options{})
	ctx := context.Background()
	require.NoError(t, f.store.SetContents(ctx, `{"a": 1}`))

	require.NoError(t, f.store.ClearRemote(ctx))

	assert.Equal(t, []string{"clear"}, f.api.calls)
	assert.Equal(t, `{"a": 1}`, f.store.Contents())
}

func TestIsAPIConnected(t *testing.T) {
	tests := []struct {
		name   string
		health func(ctx context.Context) (domain.Envelope, error)
		want   bool
	}{
		{"healthy", nil, true},
		{"unreachable", unreachable, false},
		{
			name: "unhealthy",
			health: func(ctx context.Context) (domain.Envelope, error) {
				return domain.Envelope{Error: "API health check failed", StatusCode: 503},
					&coreerrors.RemoteAPIError{StatusCode: 503, Message: "API health check failed"}
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(Options{})
			f.api.healthFunc = tt.health
			assert.Equal(t, tt.want, f.store.IsAPIConnected(context.Background()))
		})
	}
}

func TestIsAPIConnected_RemoteSyncDisabled(t *testing.T) {
	api := &mockAPI{}
	flags := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{featureflags.RemoteSync: false})
	store := NewStore(interfaces.Dependencies{
		Logger:   &mockLogger{},
		Renderer: &recordingRenderer{},
		Notifier: &recordingNotifier{},
	}, Components{Propagator: &mockPropagator{}, API: api, Flags: flags}, Options{})

	assert.False(t, store.IsAPIConnected(context.Background()))
	assert.Empty(t, api.calls)
}
