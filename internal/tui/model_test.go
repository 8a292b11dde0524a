package tui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emurenMRz/vdeck/internal/browser"
	"github.com/emurenMRz/vdeck/internal/logging"
)

type chanSender chan tea.Msg

func (c chanSender) Send(msg tea.Msg) { c <- msg }

// exitedSender behaves like a program that has already returned.
type exitedSender struct{}

func (exitedSender) Send(tea.Msg) {}

type stubTransport struct {
	mu       sync.Mutex
	bodies   map[string]string
	requests []string
}

func (s *stubTransport) Get(ctx context.Context, url string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, url)
	body, ok := s.bodies[url]
	if !ok {
		return nil, fmt.Errorf("404 Not Found: %s", url)
	}
	return []byte(body), nil
}

func (s *stubTransport) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

const listJSON = `[
  {"fullname":"Jane Doe","family_name":"Doe","first_name":"Jane","phone":"555-1212","email":"jane@example.com","filename":"jane.vcf"},
  {"fullname":"John Roe","family_name":"Roe","first_name":"John","phone":"","email":"","filename":"john.vcf"},
  {"fullname":"Eve\u001b]0;pwned\u0007\u001b[2J","family_name":"","first_name":"","phone":"","email":"","filename":"eve.vcf"}
]`

type fixture struct {
	model     *Model
	msgs      chanSender
	transport *stubTransport
	browser   *browser.Browser
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log, err := logging.NewZapLogger(logging.LogConfig{Level: logging.ErrorLevel, Output: io.Discard})
	require.NoError(t, err)

	f := &fixture{
		model: New("vdeck"),
		msgs:  make(chanSender, 16),
		transport: &stubTransport{bodies: map[string]string{
			"/vdeck/all/":          listJSON,
			"/vdeck/vcf/jane.vcf":  "BEGIN:VCARD\r\nFN:Jane Doe\r\nEND:VCARD\r\n",
			"/vdeck/json/jane.vcf": `{"FullName":"Jane Doe","Tel":[{"Value":"555-1212"}]}`,
			"/vdeck/vcf/eve.vcf":   "BEGIN:VCARD\r\nFN:Eve\x1b]0;pwned\x07\x1b[2J\r\nNOTE:a\tb\r\nEND:VCARD\r\n",
			"/vdeck/json/eve.vcf":  `{"FullName":"Eve\u001b]0;pwned\u0007\u001b[2J","Tel":[{"Value":"555\u009b31m-0000"}]}`,
		}},
	}
	endpoints, err := browser.NewEndpoints("")
	require.NoError(t, err)

	sched := NewScheduler(f.msgs)
	f.browser, err = browser.Initialize(context.Background(), f.model.Document(), endpoints,
		browser.WithTransport(f.transport),
		browser.WithScheduler(sched),
		browser.WithLogger(log),
	)
	require.NoError(t, err)
	f.model.Attach(f.browser)
	t.Cleanup(func() {
		sched.Stop()
		f.browser.Close()
	})

	f.deliver(t)
	return f
}

// deliver feeds the next posted continuation to Update, as the program would.
func (f *fixture) deliver(t *testing.T) {
	t.Helper()
	select {
	case msg := <-f.msgs:
		f.model.Update(msg)
	case <-time.After(2 * time.Second):
		t.Fatal("no continuation posted")
	}
}

func (f *fixture) press(keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = f.model.Update(k)
	}
	return cmd
}

var (
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyE     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")}
	keyQ     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
)

func TestListIsRendered(t *testing.T) {
	f := newFixture(t)

	assert.Len(t, f.model.table.Rows(), 3)
	view := f.model.View()
	assert.Contains(t, view, "Jane Doe")
	assert.Contains(t, view, "3 contacts")
	assert.Contains(t, view, "[Full name]")
}

func TestColumnCursorStaysInRange(t *testing.T) {
	f := newFixture(t)

	f.press(keyLeft)
	assert.Equal(t, browser.ColFullName, f.model.col)

	for i := 0; i < 10; i++ {
		f.press(keyRight)
	}
	assert.Equal(t, browser.ColFilename, f.model.col)
	assert.Contains(t, f.model.View(), "[Filename]")
}

func TestEnterOnFilenameShowsRawCard(t *testing.T) {
	f := newFixture(t)

	f.press(keyRight, keyRight, keyRight, keyRight, keyRight, keyEnter)
	f.deliver(t)

	assert.True(t, f.model.Document().RawCard.IsOpen())
	assert.Contains(t, f.model.View(), "FN:Jane Doe")

	f.press(keyEsc)
	assert.False(t, f.model.Document().RawCard.IsOpen())
}

func TestEnterOnOtherColumnDoesNothing(t *testing.T) {
	f := newFixture(t)

	f.press(keyEnter)
	f.browser.Wait()

	assert.Equal(t, []string{"/vdeck/all/"}, f.transport.Requests())
	assert.False(t, f.model.Document().RawCard.IsOpen())
}

func TestEditRowOpensEditor(t *testing.T) {
	f := newFixture(t)

	f.press(keyE)
	f.deliver(t)

	ed := f.model.Document().ContactEditor
	require.True(t, ed.IsOpen())
	assert.Contains(t, f.model.View(), "Jane Doe")

	f.press(keyTab, keyTab)
	assert.Equal(t, 2, ed.ActiveTab())
	assert.Contains(t, f.model.View(), "555-1212")

	f.press(keyEsc)
	assert.False(t, ed.IsOpen())
}

func TestEditOnFilenameColumnDoesNothing(t *testing.T) {
	f := newFixture(t)

	f.press(keyRight, keyRight, keyRight, keyRight, keyRight, keyE)
	f.browser.Wait()

	assert.Equal(t, []string{"/vdeck/all/"}, f.transport.Requests())
}

func TestQuit(t *testing.T) {
	f := newFixture(t)

	cmd := f.press(keyQ)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestStoppedSchedulerRejectsTasks(t *testing.T) {
	s := NewScheduler(make(chanSender, 1))
	assert.True(t, s.Post(func() {}))
	s.Stop()
	assert.False(t, s.Post(func() {}))
}

func keyDown() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyDown} }

func assertNoControls(t *testing.T, view string) {
	t.Helper()
	assert.NotContains(t, view, "\x1b")
	assert.NotContains(t, view, "\x07")
	assert.NotContains(t, view, "\u009b")
}

func TestContactTextCannotDriveTheTerminal(t *testing.T) {
	f := newFixture(t)
	f.press(keyDown(), keyDown())

	view := f.model.View()
	assertNoControls(t, view)
	assert.Contains(t, view, "Eve")
	assert.NotContains(t, view, "pwned")

	f.press(keyE)
	f.deliver(t)
	require.True(t, f.model.Document().ContactEditor.IsOpen())
	assertNoControls(t, f.model.View())
	f.press(keyTab, keyTab)
	view = f.model.View()
	assertNoControls(t, view)
	assert.Contains(t, view, "-0000")
	f.press(keyEsc)

	for i := 0; i < 5; i++ {
		f.press(keyRight)
	}
	f.press(keyEnter)
	f.deliver(t)
	require.True(t, f.model.Document().RawCard.IsOpen())
	view = f.model.View()
	assertNoControls(t, view)
	assert.Contains(t, view, "NOTE:a    b")
}

func TestStopRunsTasksTheProgramDropped(t *testing.T) {
	s := NewScheduler(exitedSender{})
	ran := 0
	require.True(t, s.Post(func() { ran++ }))
	require.True(t, s.Post(func() { ran++ }))
	assert.Equal(t, 0, ran)

	s.Stop()
	assert.Equal(t, 2, ran)
}

func TestWaitReturnsAfterProgramExit(t *testing.T) {
	log, err := logging.NewZapLogger(logging.LogConfig{Level: logging.ErrorLevel, Output: io.Discard})
	require.NoError(t, err)
	endpoints, err := browser.NewEndpoints("")
	require.NoError(t, err)

	model := New("vdeck")
	sched := NewScheduler(exitedSender{})
	b, err := browser.Initialize(context.Background(), model.Document(), endpoints,
		browser.WithTransport(&stubTransport{bodies: map[string]string{"/vdeck/all/": listJSON}}),
		browser.WithScheduler(sched),
		browser.WithLogger(log),
	)
	require.NoError(t, err)
	defer b.Close()

	require.Eventually(t, func() bool {
		sched.mu.Lock()
		defer sched.mu.Unlock()
		return len(sched.pending) == 1
	}, 2*time.Second, 10*time.Millisecond)

	waited := make(chan struct{})
	go func() {
		b.Wait()
		close(waited)
	}()

	sched.Stop()
	select {
	case <-waited:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait blocked after the program exited")
	}
	assert.Equal(t, 3, model.Document().Contacts.Len())
}
