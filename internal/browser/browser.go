// Package browser implements the contact browser: a grid of contacts loaded
// once from the server, a raw vCard viewer for the filename column and a
// structured editor opened by activating a row.
//
// The browser renders into a host Surface and touches it only from a
// Scheduler, so a host with its own event loop can supply that loop and keep
// every surface mutation on one goroutine.
package browser

import (
	"context"
	"time"

	apperrors "github.com/emurenMRz/vdeck/internal/errors"
	"github.com/emurenMRz/vdeck/internal/logging"
)

// DefaultTimeout bounds each request of the default transport.
const DefaultTimeout = 30 * time.Second

type options struct {
	transport Transport
	sched     Scheduler
	log       logging.Logger
	rawViewer bool
	editor    bool
}

// Option configures Initialize.
type Option func(*options)

// WithTransport replaces the HTTP transport.
func WithTransport(t Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithScheduler runs continuations on s instead of a private Loop.
func WithScheduler(s Scheduler) Option {
	return func(o *options) { o.sched = s }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithRawViewer enables or disables the raw vCard viewer.
func WithRawViewer(enabled bool) Option {
	return func(o *options) { o.rawViewer = enabled }
}

// WithEditor enables or disables the contact editor.
func WithEditor(enabled bool) Option {
	return func(o *options) { o.editor = enabled }
}

// Browser is an initialised contact browser.
type Browser struct {
	List   *ListView
	Raw    *RawCardViewer // nil when disabled
	Editor *EditorBinder  // nil when disabled

	endpoints Endpoints
	fetcher   *Fetcher
	cancel    context.CancelFunc
}

// Initialize wires the browser into surface and requests the contact list.
// The list arrives asynchronously; Wait blocks until it has been rendered.
func Initialize(ctx context.Context, surface Surface, endpoints Endpoints, opts ...Option) (*Browser, error) {
	if surface == nil {
		return nil, apperrors.ValidationError("surface is required")
	}
	if err := endpoints.Validate(); err != nil {
		return nil, err
	}

	o := options{rawViewer: true, editor: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logging.WithFields(logging.String("component", "browser"))
	}
	if o.transport == nil {
		o.transport = NewHTTPTransport(DefaultTimeout)
	}

	ctx, cancel := context.WithCancel(ctx)
	if o.sched == nil {
		loop := NewLoop()
		go loop.Run(ctx)
		o.sched = loop
	}

	b := &Browser{
		endpoints: endpoints,
		fetcher:   NewFetcher(ctx, o.transport, o.sched, o.log),
		cancel:    cancel,
	}
	b.List = NewListView(surface.Grid(), o.log)

	if o.rawViewer {
		b.Raw = NewRawCardViewer(surface.RawDialog(), endpoints, b.fetcher, o.log)
		b.List.OnCellActivated(b.Raw.HandleCell)
	}
	if o.editor {
		b.Editor = NewEditorBinder(surface.Editor(), b.List, endpoints, b.fetcher, o.log)
		b.List.OnRowActivated(b.Editor.HandleRow)
	}

	o.log.Info("Browser initialized",
		logging.String("list", endpoints.List),
		logging.Bool("raw_viewer", o.rawViewer),
		logging.Bool("editor", o.editor),
	)
	b.List.Load(b.fetcher, endpoints.List)
	return b, nil
}

// Endpoints returns the request targets in use.
func (b *Browser) Endpoints() Endpoints {
	return b.endpoints
}

// Wait blocks until every request issued so far has been applied or dropped.
func (b *Browser) Wait() {
	b.fetcher.Wait()
}

// Close cancels outstanding requests and stops the private loop, if any.
// Continuations already accepted by the scheduler still run.
func (b *Browser) Close() {
	b.cancel()
}
