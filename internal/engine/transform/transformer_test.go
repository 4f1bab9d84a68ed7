package transform_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/elmpack/internal/core/domain"
	"go.trai.ch/elmpack/internal/core/ports"
	"go.trai.ch/elmpack/internal/core/ports/mocks"
	"go.trai.ch/elmpack/internal/engine/transform"
	"go.uber.org/mock/gomock"
)

const entry = "/project/src/Main.elm"

type fixture struct {
	compiler  *mocks.MockCompiler
	minifier  *mocks.MockMinifier
	logger    *mocks.MockLogger
	telemetry *mocks.MockTelemetry
	vertex    *mocks.MockVertex

	transformer *transform.Transformer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		compiler:  mocks.NewMockCompiler(ctrl),
		minifier:  mocks.NewMockMinifier(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		vertex:    mocks.NewMockVertex(ctrl),
	}
	f.transformer = transform.New(f.compiler, f.minifier, f.logger, f.telemetry)

	f.vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()

	return f
}

// expectRecord expects one vertex to be recorded under name.
func (f *fixture) expectRecord(name any) {
	f.telemetry.EXPECT().Record(gomock.Any(), name).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ports.ContextWithVertex(ctx, f.vertex), f.vertex
		})
}

func request(mode domain.CompileMode) domain.TransformRequest {
	return domain.TransformRequest{
		Path:           entry,
		Compiler:       domain.CompileOptions{Mode: mode, PathToElm: "elm"},
		PathToMinifier: "/usr/local/bin/uglifyjs",
	}
}

// registry collects registered paths. Registration happens off the calling goroutine.
type registry struct {
	mu    sync.Mutex
	paths []string
}

func (r *registry) register(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func TestTransform_DebugReturnsCompilerOutput(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		req := request(domain.ModeDebug)

		f.expectRecord("elm make Main.elm (debug)")
		f.compiler.EXPECT().FindAllDependencies(gomock.Any(), entry).Return(nil, nil)
		f.compiler.EXPECT().CompileToString(gomock.Any(), []string{entry}, req.Compiler).Return("var elm = 1;", nil)
		f.vertex.EXPECT().Complete(nil)

		result := f.transformer.Transform(context.Background(), req, func(string) {})

		assert.False(t, result.Failed())
		assert.Equal(t, "var elm = 1;", result.Code())
	})
}

func TestTransform_OptimizeMinifiesWithElmRules(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectRecord(gomock.Any())
		req := request(domain.ModeOptimize)

		f.compiler.EXPECT().FindAllDependencies(gomock.Any(), entry).Return(nil, nil)
		f.compiler.EXPECT().CompileToString(gomock.Any(), []string{entry}, req.Compiler).Return("X", nil)
		f.minifier.EXPECT().Minify(gomock.Any(), "X", domain.MinifyOptions{
			PathToMinifier: "/usr/local/bin/uglifyjs",
			Rules:          domain.ElmMinifyRules(),
		}).Return("Y", nil)
		f.vertex.EXPECT().Complete(nil)

		result := f.transformer.Transform(context.Background(), req, func(string) {})

		assert.Equal(t, "Y", result.Code())
		assert.NoError(t, result.Diagnostic())
	})
}

func TestTransform_DebugNeverMinifies(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectRecord(gomock.Any())
		req := request(domain.ModeDebug)

		f.compiler.EXPECT().FindAllDependencies(gomock.Any(), entry).Return(nil, nil)
		f.compiler.EXPECT().CompileToString(gomock.Any(), gomock.Any(), gomock.Any()).Return("X", nil)
		f.minifier.EXPECT().Minify(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		f.vertex.EXPECT().Complete(nil)

		result := f.transformer.Transform(context.Background(), req, func(string) {})
		assert.Equal(t, "X", result.Code())
	})
}

func TestTransform_RegistersEveryDependencyOnce(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectRecord(gomock.Any())
		deps := []string{"/project/src/Page/Home.elm", "/project/src/Util.elm", "/project/src/Util.elm"}

		f.compiler.EXPECT().FindAllDependencies(gomock.Any(), entry).Return(deps, nil)
		f.compiler.EXPECT().CompileToString(gomock.Any(), gomock.Any(), gomock.Any()).Return("X", nil)
		f.vertex.EXPECT().Complete(nil)

		var reg registry
		result := f.transformer.Transform(context.Background(), request(domain.ModeDebug), reg.register)

		assert.Equal(t, "X", result.Code())
		assert.Equal(t, deps, reg.paths)
	})
}

func TestTransform_CompileErrorYieldsEmptyOutput(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectRecord(gomock.Any())
		compileErr := errors.New("-- TYPE MISMATCH --")

		f.compiler.EXPECT().FindAllDependencies(gomock.Any(), entry).Return([]string{"/project/src/Util.elm"}, nil)
		f.compiler.EXPECT().CompileToString(gomock.Any(), gomock.Any(), gomock.Any()).Return("", compileErr)
		f.minifier.EXPECT().Minify(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
			assert.ErrorIs(t, err, compileErr)
		})
		f.vertex.EXPECT().Complete(gomock.Not(gomock.Nil()))

		var reg registry
		result := f.transformer.Transform(context.Background(), request(domain.ModeOptimize), reg.register)

		assert.True(t, result.Failed())
		assert.Empty(t, result.Code())
		require.ErrorIs(t, result.Diagnostic(), compileErr)
		assert.Equal(t, []string{"/project/src/Util.elm"}, reg.paths)
	})
}

func TestTransform_MinifyErrorYieldsEmptyOutput(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectRecord(gomock.Any())

		f.compiler.EXPECT().FindAllDependencies(gomock.Any(), entry).Return(nil, nil)
		f.compiler.EXPECT().CompileToString(gomock.Any(), gomock.Any(), gomock.Any()).Return("unminified", nil)
		f.minifier.EXPECT().Minify(gomock.Any(), "unminified", gomock.Any()).Return("", domain.ErrMinifyFailed)
		f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
			assert.ErrorIs(t, err, domain.ErrMinifyFailed)
		})
		f.vertex.EXPECT().Complete(gomock.Not(gomock.Nil()))

		result := f.transformer.Transform(context.Background(), request(domain.ModeOptimize), func(string) {})

		assert.True(t, result.Failed())
		assert.Empty(t, result.Code())
		assert.NotContains(t, result.Code(), "unminified")
	})
}

func TestTransform_DiscoveryFailureIsLoggedNotFatal(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectRecord(gomock.Any())

		f.compiler.EXPECT().FindAllDependencies(gomock.Any(), entry).Return(nil, domain.ErrElmJSONNotFound)
		f.compiler.EXPECT().CompileToString(gomock.Any(), gomock.Any(), gomock.Any()).Return("X", nil)
		f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
			assert.ErrorIs(t, err, domain.ErrDependencyDiscoveryFailed)
			assert.Contains(t, err.Error(), "elm.json not found")
		})
		f.vertex.EXPECT().Complete(nil)

		var reg registry
		result := f.transformer.Transform(context.Background(), request(domain.ModeDebug), reg.register)

		assert.False(t, result.Failed())
		assert.Equal(t, "X", result.Code())
		assert.Empty(t, reg.paths)
	})
}

func TestTransform_RunsDiscoveryAndCompileConcurrently(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectRecord(gomock.Any())
		discovering := make(chan struct{})
		compiled := make(chan struct{})

		// Discovery only finishes once compilation has started, so a sequential
		// implementation would deadlock inside the bubble.
		f.compiler.EXPECT().FindAllDependencies(gomock.Any(), entry).
			DoAndReturn(func(context.Context, string) ([]string, error) {
				close(discovering)
				<-compiled
				return []string{"/project/src/Util.elm"}, nil
			})
		f.compiler.EXPECT().CompileToString(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, []string, domain.CompileOptions) (string, error) {
				close(compiled)
				<-discovering
				return "X", nil
			})
		f.vertex.EXPECT().Complete(nil)

		var reg registry
		result := f.transformer.Transform(context.Background(), request(domain.ModeDebug), reg.register)

		assert.Equal(t, "X", result.Code())
		assert.Equal(t, []string{"/project/src/Util.elm"}, reg.paths)
	})
}
