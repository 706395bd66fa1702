package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/AliceAlbano/vgrep/internal/command"
	"github.com/AliceAlbano/vgrep/internal/render"
	"github.com/AliceAlbano/vgrep/internal/session"
)

type fakePager struct {
	pages []string
}

func (p *fakePager) Page(content string) error {
	p.pages = append(p.pages, content)
	return nil
}

type fakeEditor struct {
	files []string
}

func (e *fakeEditor) Open(file string, _ int) error {
	e.files = append(e.files, file)
	return nil
}

type testShell struct {
	*Shell
	pager  *fakePager
	editor *fakeEditor
	store  *session.Store
	errOut *bytes.Buffer
}

func newTestShell(t *testing.T, input string, records ...string) *testShell {
	t.Helper()

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	ts := &testShell{
		pager:  &fakePager{},
		editor: &fakeEditor{},
		store:  store,
		errOut: &bytes.Buffer{},
	}
	env := &command.Env{
		Out:              io.Discard,
		Pager:            ts.pager,
		Render:           render.New(render.Options{}),
		Editor:           ts.editor,
		ContextLines:     10,
		TreeDepth:        10,
		ConfirmThreshold: 3,
	}
	ts.Shell = New(Config{
		Session: session.Session{Workdir: "/w", Args: []string{"foo"}, Records: records},
		Env:     env,
		Reader:  NewScanReader(strings.NewReader(input), io.Discard),
		Saver:   session.NewSaver(store),
		ErrOut:  ts.errOut,
	})
	return ts
}

func TestRunUntilEOF(t *testing.T) {
	ts := newTestShell(t, "p\n\n1d\n", "a:1:x", "b:2:x", "c:3:x")

	if err := ts.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ts.State() != Quit {
		t.Errorf("State() = %v, want quit", ts.State())
	}
	if len(ts.pager.pages) != 2 {
		t.Errorf("got %d pages, want 2", len(ts.pager.pages))
	}

	want := []string{"a:1:x", "c:3:x"}
	if !reflect.DeepEqual(ts.Records(), want) {
		t.Errorf("Records() = %v, want %v", ts.Records(), want)
	}

	if err := ts.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	saved, err := ts.store.Load("/w")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(saved.Records, want) || !reflect.DeepEqual(saved.Args, []string{"foo"}) {
		t.Errorf("saved session = %+v", saved)
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	ts := newTestShell(t, "q\np\n", "a:1:x")

	if err := ts.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(ts.pager.pages) != 0 {
		t.Errorf("commands after q were run: %q", ts.pager.pages)
	}
	if err := ts.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := ts.store.Load("/w"); !errors.Is(err, session.ErrNoSession) {
		t.Errorf("quit without changes should not save, Load() error = %v", err)
	}
}

func TestRunReportsErrors(t *testing.T) {
	ts := newTestShell(t, "9p\nz\n0p\n", "a:1:x")

	if err := ts.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(ts.errOut.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("diagnostics = %q, want 2 lines", ts.errOut.String())
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, "vgrep: ") {
			t.Errorf("diagnostic %q lacks prefix", l)
		}
	}
	if len(ts.pager.pages) != 1 {
		t.Errorf("loop should continue after errors, got %d pages", len(ts.pager.pages))
	}
}

func TestRunContextHugeCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte("a\nb\nc\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ts := newTestShell(t, "0c 9223372036854775807\n0c 99999999999999999999\nq\n", path+":2:b")

	if err := ts.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(ts.pager.pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(ts.pager.pages))
	}
	if !strings.Contains(ts.pager.pages[0], "[1-3]") {
		t.Errorf("context page = %q, want the whole file", ts.pager.pages[0])
	}
	lines := strings.Split(strings.TrimSpace(ts.errOut.String()), "\n")
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "vgrep: ") {
		t.Errorf("diagnostics = %q, want one for the out-of-range count", ts.errOut.String())
	}
}

func TestConfirmThroughReader(t *testing.T) {
	records := []string{"a:1:x", "b:1:x", "c:1:x", "d:1:x"}

	ts := newTestShell(t, "n\n", records...)
	if err := ts.Execute(context.Background(), "s"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(ts.editor.files) != 0 {
		t.Errorf("declined confirmation opened %v", ts.editor.files)
	}

	ts = newTestShell(t, "y\n", records...)
	if err := ts.Execute(context.Background(), "s"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(ts.editor.files) != 4 {
		t.Errorf("accepted confirmation opened %v", ts.editor.files)
	}
}

func TestExecuteTitleFollowsReplacement(t *testing.T) {
	ts := newTestShell(t, "", "a:1:x", "b:2:x")
	ts.env.Render = render.New(render.Options{Header: true, Title: "foo"})

	if err := ts.Execute(context.Background(), "1P"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(ts.pager.pages[0], "1 match for \"foo\"") {
		t.Errorf("page = %q", ts.pager.pages[0])
	}
	if ts.State() != AwaitInput {
		t.Errorf("State() = %v, want await-input", ts.State())
	}
	if err := ts.Close(); err != nil {
		t.Fatal(err)
	}
}
