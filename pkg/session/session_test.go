// pkg/session/session_test.go
package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/chromedp/cdproto/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestRegistry returns a registry whose attach function hands out stub
// sessions and counts how many were created per page.
func newTestRegistry(t *testing.T) (*Registry, map[target.ID]int) {
	t.Helper()
	created := make(map[target.ID]int)
	var mu sync.Mutex

	r := NewRegistry(context.Background(), zap.NewNop())
	r.attach = func(page target.ID) (*Session, error) {
		mu.Lock()
		created[page]++
		mu.Unlock()
		ctx, cancel := context.WithCancel(context.Background())
		return &Session{
			id:     string(page),
			page:   page,
			tabCtx: ctx,
			cancel: cancel,
			logger: zap.NewNop(),
		}, nil
	}
	return r, created
}

func TestRegistryMemoizesSessions(t *testing.T) {
	r, created := newTestRegistry(t)
	defer r.Close()

	first, err := r.Session("tab-1")
	require.NoError(t, err)
	second, err := r.Session("tab-1")
	require.NoError(t, err)

	assert.Same(t, first, second, "repeated requests must return the identical session")
	assert.Equal(t, 1, created["tab-1"])

	other, err := r.Session("tab-2")
	require.NoError(t, err)
	assert.NotSame(t, first, other)
	assert.Equal(t, 1, created["tab-2"])
}

func TestRegistryDetachCreatesFreshSession(t *testing.T) {
	r, created := newTestRegistry(t)
	defer r.Close()

	first, err := r.Session("tab-1")
	require.NoError(t, err)

	r.Detach("tab-1")

	second, err := r.Session("tab-1")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 2, created["tab-1"])
}

func TestRegistryDetachUnknownPageIsNoop(t *testing.T) {
	r, created := newTestRegistry(t)
	defer r.Close()

	r.Detach("never-seen")
	assert.Empty(t, created)
}

func TestRegistryConcurrentFirstAccessAttachesOnce(t *testing.T) {
	r, created := newTestRegistry(t)
	defer r.Close()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Session("tab-1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created["tab-1"])
}

func TestRegistryAttachErrorIsNotCached(t *testing.T) {
	r := NewRegistry(context.Background(), zap.NewNop())
	defer r.Close()

	attachErr := errors.New("target gone")
	r.attach = func(page target.ID) (*Session, error) { return nil, attachErr }

	_, err := r.Session("tab-1")
	require.ErrorIs(t, err, attachErr)

	// A later attempt must try to attach again rather than return a cached failure.
	calls := 0
	r.attach = func(page target.ID) (*Session, error) {
		calls++
		ctx, cancel := context.WithCancel(context.Background())
		return &Session{id: "s", page: page, tabCtx: ctx, cancel: cancel, logger: zap.NewNop()}, nil
	}
	_, err = r.Session("tab-1")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestSessionSendAfterCloseFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{id: "s", page: "tab-1", tabCtx: ctx, cancel: cancel, logger: zap.NewNop()}
	s.close()

	err := s.Send(context.Background(), "DOM.getDocument", nil, nil)
	assert.ErrorContains(t, err, "closed")
}
