package browser_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emurenMRz/vdeck/internal/browser"
	apperrors "github.com/emurenMRz/vdeck/internal/errors"
)

const (
	testTimeout = 2 * time.Second
	testTick    = 5 * time.Millisecond
)

func TestLoopRunsTasksInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loop := browser.NewLoop()
	stopped := make(chan error, 1)
	go func() { stopped <- loop.Run(ctx) }()

	var got []int
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		require.True(t, loop.Post(func() { got = append(got, i) }))
	}
	loop.Post(func() { close(done) })
	<-done

	cancel()
	assert.ErrorIs(t, <-stopped, context.Canceled)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
	assert.False(t, loop.Post(func() {}), "stopped loop rejects tasks")
}

func TestLoopDrainsQueueOnStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loop := browser.NewLoop()
	ran := 0
	loop.Post(func() { ran++ })
	loop.Post(func() { ran++ })

	err := loop.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, ran)
}

func TestHTTPTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("BEGIN:VCARD\r\nEND:VCARD\r\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tr := browser.NewHTTPTransport(testTimeout)

	body, err := tr.Get(context.Background(), srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, "BEGIN:VCARD\r\nEND:VCARD\r\n", string(body))

	_, err = tr.Get(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConnection))
}

func TestHTTPTransportUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := browser.NewHTTPTransport(testTimeout).Get(context.Background(), url)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConnection))
}
