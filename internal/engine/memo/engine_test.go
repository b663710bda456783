package memo_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/derp/internal/core/domain"
	"go.trai.ch/derp/internal/core/ports"
	"go.trai.ch/derp/internal/core/ports/mocks"
	"go.trai.ch/derp/internal/engine/memo"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type engineMocks struct {
	hasher  *mocks.MockFingerprinter
	index   *mocks.MockIndexStore
	objects *mocks.MockObjectStore
	invoker *mocks.MockInvoker
	logger  *mocks.MockLogger
}

// setupEngineTest creates an engine over mocked ports with a pinned clock.
func setupEngineTest(t *testing.T) (*memo.Engine, engineMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := engineMocks{
		hasher:  mocks.NewMockFingerprinter(ctrl),
		index:   mocks.NewMockIndexStore(ctrl),
		objects: mocks.NewMockObjectStore(ctrl),
		invoker: mocks.NewMockInvoker(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
	}

	// Logging and tracing are incidental to the behavior under test.
	m.logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	mockSpan := mocks.NewMockSpan(ctrl)
	mockSpan.EXPECT().End().AnyTimes()
	mockSpan.EXPECT().RecordError(gomock.Any()).AnyTimes()
	mockSpan.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, mockSpan
		},
	).AnyTimes()

	e := memo.NewEngine(
		domain.Config{Root: t.TempDir()},
		m.hasher,
		m.index,
		m.objects,
		m.invoker,
		m.logger,
		tracer,
	).WithClock(func() time.Time { return testNow })

	return e, m
}

// expectSignature describes the callable and fingerprints its signature.
// Func values are not comparable, so the callable is matched loosely.
func expectSignature(m engineMocks, callable, fingerprint string) {
	m.hasher.EXPECT().Describe(gomock.Any()).Return(callable)
	m.hasher.EXPECT().Fingerprint(gomock.Any()).Return(fingerprint)
}

func TestEngine_CallMiss(t *testing.T) {
	e, m := setupEngineTest(t)

	add := func(a, b int) int { return a + b }
	expectSignature(m, "mathutil.Add", "0a1b2c3d")

	m.index.EXPECT().Init().Return(nil)
	m.index.EXPECT().Read().Return(domain.Index{}, nil)
	m.invoker.EXPECT().Invoke(gomock.Any(), []any{2, 3}, gomock.Nil()).Return(5, nil)

	var added domain.Entry
	write := m.objects.EXPECT().Write("0a1b2c3d", 5).Return(nil)
	record := m.index.EXPECT().Add(gomock.Any(), "0a1b2c3d", gomock.Any()).DoAndReturn(
		func(_ domain.Index, _ string, entry domain.Entry) error {
			added = entry
			return nil
		},
	)
	// The object must be on disk before the index references it.
	gomock.InOrder(write, record)

	var got int
	err := e.Call(context.Background(), domain.CallRequest{Fn: add, Args: []any{2, 3}}, &got)
	require.NoError(t, err)

	assert.Equal(t, 5, got)
	assert.Equal(t, "mathutil.Add", added.Callable)
	assert.Equal(t, testNow, added.CalledAt)
	assert.False(t, added.Expires())
	assert.Empty(t, added.Annotation)
	assert.Nil(t, added.HashAnnotation)
}

func TestEngine_CallMissRecordsOptions(t *testing.T) {
	e, m := setupEngineTest(t)

	add := func(a, b int) int { return a + b }
	expectSignature(m, "mathutil.Add", "0a1b2c3d")

	m.index.EXPECT().Init().Return(nil)
	m.index.EXPECT().Read().Return(domain.Index{}, nil)
	m.invoker.EXPECT().Invoke(gomock.Any(), gomock.Any(), gomock.Any()).Return(5, nil)
	m.objects.EXPECT().Write("0a1b2c3d", 5).Return(nil)

	var added domain.Entry
	m.index.EXPECT().Add(gomock.Any(), "0a1b2c3d", gomock.Any()).DoAndReturn(
		func(_ domain.Index, _ string, entry domain.Entry) error {
			added = entry
			return nil
		},
	)

	var got int
	err := e.Call(context.Background(), domain.CallRequest{
		Fn:   add,
		Args: []any{2, 3},
		Options: domain.CallOptions{
			ExpiresAfter:   90 * time.Second,
			Annotation:     "batch 7",
			HashAnnotation: true,
		},
	}, &got)
	require.NoError(t, err)

	assert.InDelta(t, 90.0, added.ExpiresAfter, 0)
	assert.Equal(t, "batch 7", added.Annotation)
	require.NotNil(t, added.HashAnnotation)
	assert.True(t, *added.HashAnnotation)
}

func TestEngine_CallHit(t *testing.T) {
	e, m := setupEngineTest(t)

	add := func(a, b int) int { return a + b }
	expectSignature(m, "mathutil.Add", "0a1b2c3d")

	m.index.EXPECT().Init().Return(nil)
	m.index.EXPECT().Read().Return(domain.Index{
		"0a1b2c3d": domain.NewEntry("mathutil.Add", testNow.Add(-time.Hour), domain.CallOptions{}),
	}, nil)

	// No Invoke, Write or Add expectations: a hit must not touch them.
	m.objects.EXPECT().Read("0a1b2c3d", gomock.Any()).DoAndReturn(
		func(_ string, dst any) error {
			*dst.(*int) = 5
			return nil
		},
	)

	var got int
	err := e.Call(context.Background(), domain.CallRequest{Fn: add, Args: []any{3, 2}}, &got)
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}

func TestEngine_CallableErrorPropagatesUnchanged(t *testing.T) {
	e, m := setupEngineTest(t)

	boom := errors.New("boom")
	fail := func() (int, error) { return 0, boom }
	expectSignature(m, "mathutil.Fail", "deadbeef")

	m.index.EXPECT().Init().Return(nil)
	m.index.EXPECT().Read().Return(domain.Index{}, nil)
	// Nothing may be written for the failed fingerprint.
	m.invoker.EXPECT().Invoke(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, boom)

	var got int
	err := e.Call(context.Background(), domain.CallRequest{Fn: fail}, &got)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, boom, err)
}

func TestEngine_CallResultMismatch(t *testing.T) {
	e, m := setupEngineTest(t)

	answer := func() string { return "42" }
	expectSignature(m, "mathutil.Answer", "deadbeef")

	m.index.EXPECT().Init().Return(nil)
	m.index.EXPECT().Read().Return(domain.Index{}, nil)
	// The mismatch is detected before anything lands on disk.
	m.invoker.EXPECT().Invoke(gomock.Any(), gomock.Any(), gomock.Any()).Return("42", nil)

	var got int
	err := e.Call(context.Background(), domain.CallRequest{Fn: answer}, &got)
	require.ErrorIs(t, err, domain.ErrResultMismatch)
}

func TestEngine_CallSweepsExpiredBeforeLookup(t *testing.T) {
	e, m := setupEngineTest(t)

	add := func(a, b int) int { return a + b }
	expectSignature(m, "mathutil.Add", "0a1b2c3d")

	// The deadline of "11c0ffee" is still ahead of now, which counts as
	// expired under the current policy.
	idx := domain.Index{
		"11c0ffee": domain.NewEntry("mathutil.Fib", testNow.Add(-time.Minute), domain.CallOptions{
			ExpiresAfter: time.Hour,
		}),
	}

	m.index.EXPECT().Init().Return(nil)
	m.index.EXPECT().Read().Return(idx, nil)
	m.index.EXPECT().Remove(gomock.Any(), []string{"11c0ffee"}).DoAndReturn(
		func(idx domain.Index, fingerprints []string) error {
			for _, fp := range fingerprints {
				delete(idx, fp)
			}
			return nil
		},
	)
	m.objects.EXPECT().Remove([]string{"11c0ffee"}).Return(nil)

	m.invoker.EXPECT().Invoke(gomock.Any(), gomock.Any(), gomock.Any()).Return(5, nil)
	m.objects.EXPECT().Write("0a1b2c3d", 5).Return(nil)
	m.index.EXPECT().Add(gomock.Any(), "0a1b2c3d", gomock.Any()).Return(nil)

	var got int
	err := e.Call(context.Background(), domain.CallRequest{Fn: add, Args: []any{2, 3}}, &got)
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}

func TestEngine_IndexSortedByTime(t *testing.T) {
	e, m := setupEngineTest(t)

	m.index.EXPECT().Read().Return(domain.Index{
		"33333333": domain.NewEntry("mathutil.C", testNow.Add(-time.Hour), domain.CallOptions{}),
		"11111111": domain.NewEntry("mathutil.A", testNow.Add(-3*time.Hour), domain.CallOptions{}),
		"22222222": domain.NewEntry("mathutil.B", testNow.Add(-2*time.Hour), domain.CallOptions{}),
	}, nil)

	records, err := e.Index(context.Background(), false)
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "11111111", records[0].Fingerprint)
	assert.Equal(t, "22222222", records[1].Fingerprint)
	assert.Equal(t, "33333333", records[2].Fingerprint)
}

func TestEngine_IndexClearExpired(t *testing.T) {
	e, m := setupEngineTest(t)

	idx := domain.Index{
		"11c0ffee": domain.NewEntry("mathutil.Fib", testNow.Add(-time.Minute), domain.CallOptions{
			ExpiresAfter: time.Hour,
		}),
		"22facade": domain.NewEntry("mathutil.Add", testNow.Add(-time.Hour), domain.CallOptions{}),
	}

	m.index.EXPECT().Read().Return(idx, nil)
	m.index.EXPECT().Remove(gomock.Any(), []string{"11c0ffee"}).DoAndReturn(
		func(idx domain.Index, fingerprints []string) error {
			for _, fp := range fingerprints {
				delete(idx, fp)
			}
			return nil
		},
	)
	m.objects.EXPECT().Remove([]string{"11c0ffee"}).Return(nil)

	records, err := e.Index(context.Background(), true)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "22facade", records[0].Fingerprint)
}

func TestEngine_IndexNotInitialized(t *testing.T) {
	e, m := setupEngineTest(t)

	m.index.EXPECT().Read().Return(nil, domain.ErrNotInitialized)

	_, err := e.Index(context.Background(), true)
	require.ErrorIs(t, err, domain.ErrNotInitialized)
}

func TestEngine_GetBypassesIndex(t *testing.T) {
	e, m := setupEngineTest(t)

	// No index expectations at all: Get goes straight to the object store.
	m.objects.EXPECT().Read("0a1b2c3d", gomock.Any()).DoAndReturn(
		func(_ string, dst any) error {
			*dst.(*string) = "cached value"
			return nil
		},
	)

	var got string
	err := e.Get(context.Background(), "0a1b2c3d", &got)
	require.NoError(t, err)
	assert.Equal(t, "cached value", got)
}

func TestEngine_Clear(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	mockSpan := mocks.NewMockSpan(ctrl)
	mockSpan.EXPECT().End().AnyTimes()
	mockSpan.EXPECT().RecordError(gomock.Any()).AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, mockSpan
		},
	).AnyTimes()

	cfg := domain.Config{Root: t.TempDir()}
	e := memo.NewEngine(
		cfg,
		mocks.NewMockFingerprinter(ctrl),
		mocks.NewMockIndexStore(ctrl),
		mocks.NewMockObjectStore(ctrl),
		mocks.NewMockInvoker(ctrl),
		log,
		tracer,
	)

	require.NoError(t, os.MkdirAll(cfg.CacheDir(), 0o750))
	//nolint:gosec // Test file with controlled path
	require.NoError(t, os.WriteFile(cfg.ObjectPath("0a1b2c3d"), []byte("payload"), 0o644))

	require.NoError(t, e.Clear(context.Background()))

	_, err := os.Stat(cfg.CacheDir())
	assert.True(t, errors.Is(err, os.ErrNotExist), "cache directory should be gone, stat returned %v", err)

	// Clearing an absent cache is success, not an error.
	require.NoError(t, e.Clear(context.Background()))
}
