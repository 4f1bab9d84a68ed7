package progrock_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vprogrock "github.com/vito/progrock"
	"go.trai.ch/elmpack/internal/adapters/telemetry/progrock"
	"go.trai.ch/elmpack/internal/core/domain"
	"go.trai.ch/elmpack/internal/core/ports"
	"go.trai.ch/elmpack/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const vertexName = "elm make Main.elm (debug)"

// tape keeps every status update written to it.
type tape struct {
	mu      sync.Mutex
	updates []*vprogrock.StatusUpdate
}

func (w *tape) WriteStatus(u *vprogrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.updates = append(w.updates, u)
	return nil
}

func (w *tape) Close() error { return nil }

func (w *tape) vertexIDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var ids []string
	for _, u := range w.updates {
		for _, v := range u.GetVertexes() {
			ids = append(ids, v.GetId())
		}
	}
	return ids
}

func TestRecorder_RecordAttachesVertexToContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := progrock.New(mocks.NewMockLogger(ctrl))

	ctx, vertex := recorder.Record(context.Background(), vertexName)
	require.NotNil(t, vertex)

	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, fromCtx)

	vertex.Complete(nil)
	require.NoError(t, recorder.Close())
}

func TestRecorder_DigestIsStablePerName(t *testing.T) {
	var w tape
	recorder := progrock.NewRecorder(&w)

	for range 3 {
		_, vertex := recorder.Record(context.Background(), vertexName)
		vertex.Complete(nil)
	}
	_, other := recorder.Record(context.Background(), "elm make Util.elm (debug)")
	other.Complete(nil)

	ids := w.vertexIDs()
	require.NotEmpty(t, ids)

	want := digest.FromString(vertexName).String()
	distinct := map[string]struct{}{}
	for _, id := range ids {
		distinct[id] = struct{}{}
	}
	assert.Len(t, distinct, 2)
	assert.Contains(t, distinct, want)
	assert.Contains(t, distinct, digest.FromString("elm make Util.elm (debug)").String())
}

func TestRecorder_ForwardsStdoutLinesToLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	recorder := progrock.New(log)

	gomock.InOrder(
		log.EXPECT().Info(vertexName+": Compiling ..."),
		log.EXPECT().Info(vertexName+": Success! Compiled 3 modules."),
	)

	_, vertex := recorder.Record(context.Background(), vertexName)

	_, err := vertex.Stdout().Write([]byte("Compiling ...\nSuccess! Com"))
	require.NoError(t, err)
	_, err = vertex.Stdout().Write([]byte("piled 3 modules.\n"))
	require.NoError(t, err)
	_, err = vertex.Stderr().Write([]byte("-- TYPE MISMATCH --\n"))
	require.NoError(t, err)
	vertex.Log(domain.LogLevelError, "compile failed")

	vertex.Complete(errors.New("compile failed"))
	require.NoError(t, recorder.Close())
}

func TestRecorder_FlushesPartialLineOnComplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	recorder := progrock.New(log)

	_, vertex := recorder.Record(context.Background(), vertexName)
	_, err := vertex.Stdout().Write([]byte("Success!"))
	require.NoError(t, err)

	log.EXPECT().Info(vertexName + ": Success!")
	vertex.Complete(nil)

	// A rebuild of the same file reuses the vertex and is still named.
	_, again := recorder.Record(context.Background(), vertexName)
	log.EXPECT().Info(vertexName + ": Success!")
	_, err = again.Stdout().Write([]byte("Success!\n"))
	require.NoError(t, err)
	again.Complete(nil)

	require.NoError(t, recorder.Close())
}
