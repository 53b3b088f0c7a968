package app

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dshills/contour/internal/design"
	"github.com/dshills/contour/internal/geom"
	"github.com/dshills/contour/internal/input/key"
	"github.com/dshills/contour/internal/renderer/backend"
)

func keyEvent(k key.Key, mods key.Modifier) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: key.NewEvent(k, mods)}
}

func quitEvent() backend.Event {
	return backend.Event{Type: backend.EventKey, Key: key.NewRuneEvent('q', key.ModCtrl)}
}

func newApp(t *testing.T, opts Options) *Application {
	t.Helper()
	app, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(app.Shutdown)
	return app
}

func TestRunWithoutBackend(t *testing.T) {
	app := newApp(t, Options{})
	require.ErrorIs(t, app.Run(), ErrNoBackend)
	require.False(t, app.IsRunning())
}

func TestRunQuit(t *testing.T) {
	app := newApp(t, Options{})
	b := backend.NewNullBackend(80, 24)
	require.NoError(t, app.SetBackend(b))

	b.PostEvent(keyEvent(key.KeyTab, key.ModNone))
	b.PostEvent(quitEvent())

	require.ErrorIs(t, app.Run(), ErrQuit)
	require.Equal(t, 1, app.Editor().Session().Selection().Len())
	require.Positive(t, b.ShowCount())
}

func TestRunNudgeRecordsUndo(t *testing.T) {
	app := newApp(t, Options{})
	b := backend.NewNullBackend(80, 24)
	require.NoError(t, app.SetBackend(b))

	b.PostEvent(keyEvent(key.KeyTab, key.ModNone))
	b.PostEvent(keyEvent(key.KeyRight, key.ModNone))
	b.PostEvent(quitEvent())
	require.ErrorIs(t, app.Run(), ErrQuit)

	ed := app.Editor()
	require.Equal(t, 1, ed.History().UndoCount())

	doc := ed.Session()
	id, ok := doc.Selection().First()
	require.True(t, ok)
	pt, ok := doc.PathPoint(id)
	require.True(t, ok)
	require.Equal(t, design.Pt(41, 40), pt.Point)
}

func TestRunResize(t *testing.T) {
	app := newApp(t, Options{})
	b := backend.NewNullBackend(80, 24)
	require.NoError(t, app.SetBackend(b))

	b.PostEvent(backend.Event{Type: backend.EventResize, Width: 40, Height: 12})
	b.PostEvent(quitEvent())
	require.ErrorIs(t, app.Run(), ErrQuit)

	bounds := geom.Rect{X1: 40 * backend.DefaultCellWidth, Y1: 12 * backend.DefaultCellHeight}
	want := FitViewport(bounds, demoExtent, viewMargin)
	require.Equal(t, want, app.Editor().Session().Viewport())
}

func TestShutdownStopsRun(t *testing.T) {
	app := newApp(t, Options{})
	require.NoError(t, app.SetBackend(backend.NewNullBackend(20, 10)))

	errc := make(chan error, 1)
	go func() { errc <- app.Run() }()

	require.Eventually(t, app.IsRunning, time.Second, 5*time.Millisecond)
	require.ErrorIs(t, app.SetBackend(backend.NewNullBackend(1, 1)), ErrAlreadyRunning)
	app.Shutdown()

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func TestSnapshot(t *testing.T) {
	app := newApp(t, Options{})
	out := filepath.Join(t.TempDir(), "snap.png")
	before := app.Editor().Session().Viewport()

	require.NoError(t, app.Snapshot(out, 320, 240))
	require.Equal(t, before, app.Editor().Session().Viewport())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 320, img.Bounds().Dx())
	require.Equal(t, 240, img.Bounds().Dy())
}

func TestNewBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contour.toml")
	require.NoError(t, os.WriteFile(path, []byte("[select]\nbogus = 1\n"), 0o644))

	_, err := New(Options{ConfigPath: path})
	require.Error(t, err)

	var initErr *InitError
	require.True(t, errors.As(err, &initErr))
	require.Equal(t, "config", initErr.Component)
}

func TestConfigReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contour.toml")
	require.NoError(t, os.WriteFile(path, []byte("[select]\nhit_tolerance = 6.0\n"), 0o644))

	app := newApp(t, Options{ConfigPath: path, Watch: true})
	require.Equal(t, 6.0, app.Config().Select.HitTolerance)
	require.NoError(t, app.SetBackend(backend.NewNullBackend(40, 20)))

	errc := make(chan error, 1)
	go func() { errc <- app.Run() }()
	require.Eventually(t, app.IsRunning, time.Second, 5*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("[select]\nhit_tolerance = 9.0\n"), 0o644))
	require.Eventually(t, func() bool {
		return app.Config().Select.HitTolerance == 9
	}, 3*time.Second, 20*time.Millisecond)

	// an invalid file keeps the current settings
	require.NoError(t, os.WriteFile(path, []byte("[select]\nhit_tolerance = -1.0\n"), 0o644))
	time.Sleep(300 * time.Millisecond)
	require.Equal(t, 9.0, app.Config().Select.HitTolerance)

	app.Shutdown()
	require.NoError(t, <-errc)
}
