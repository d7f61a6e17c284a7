package otelvault

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/goleak"

	"github.com/skosovsky/promptvault"
	"github.com/skosovsky/promptvault/localvault"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTraced(t *testing.T) (*Vault, *tracetest.SpanRecorder) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	inner, err := localvault.New(t.TempDir())
	require.NoError(t, err)
	return New(inner, WithTracerProvider(tp)), rec
}

func attrs(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, kv := range s.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestNew_PanicsOnNilInner(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { New(nil) })
}

func TestVault_Save_RecordsStoredVersion(t *testing.T) {
	t.Parallel()
	v, rec := newTraced(t)
	ctx := context.Background()
	require.NoError(t, v.Save(ctx, promptvault.NewTemplate("a"), promptvault.WithFolder("X")))
	require.NoError(t, v.Save(ctx, promptvault.NewTemplate("b"), promptvault.WithFolder("X")))

	spans := rec.Ended()
	require.Len(t, spans, 2)
	second := spans[1]
	assert.Equal(t, "promptvault.Save", second.Name())
	a := attrs(second)
	assert.Equal(t, "X", a[AttrName].AsString())
	assert.Equal(t, promptvault.BaseTag, a[AttrTag].AsString())
	assert.Equal(t, "1.0", a[AttrVersion].AsString())
	assert.Equal(t, "1.1", a[AttrResolvedVersion].AsString())
	assert.Equal(t, codes.Unset, second.Status().Code)
}

func TestVault_Load(t *testing.T) {
	t.Parallel()
	v, rec := newTraced(t)
	ctx := context.Background()
	require.NoError(t, v.Save(ctx, promptvault.NewTemplate("a"), promptvault.WithFolder("X")))

	tpl, err := v.Load(ctx, "X", "")
	require.NoError(t, err)
	assert.Equal(t, "a", tpl.Base().Text)

	spans := rec.Ended()
	require.Len(t, spans, 2)
	load := spans[1]
	assert.Equal(t, "promptvault.Load", load.Name())
	a := attrs(load)
	assert.Equal(t, "X", a[AttrName].AsString())
	assert.Empty(t, a[AttrVersion].AsString())
	assert.Equal(t, "1.0", a[AttrResolvedVersion].AsString())
}

func TestVault_Load_ErrorRecorded(t *testing.T) {
	t.Parallel()
	v, rec := newTraced(t)
	_, err := v.Load(context.Background(), "absent", "")
	require.ErrorIs(t, err, promptvault.ErrNotFound)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestVault_List(t *testing.T) {
	t.Parallel()
	v, rec := newTraced(t)
	ctx := context.Background()
	require.NoError(t, v.Save(ctx, promptvault.NewTemplate("a"), promptvault.WithFolder("X")))
	require.NoError(t, v.Save(ctx, promptvault.NewTemplate("b"), promptvault.WithFolder("Y")))

	entries, err := v.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	spans := rec.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "promptvault.List", spans[2].Name())
	assert.Equal(t, int64(2), attrs(spans[2])[AttrEntries].AsInt64())
}

func TestVault_Save_InvalidNameRecorded(t *testing.T) {
	t.Parallel()
	v, rec := newTraced(t)
	err := v.Save(context.Background(), promptvault.NewTemplate("a"), promptvault.WithFolder("../x"))
	require.ErrorIs(t, err, promptvault.ErrInvalidName)
	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}
