// Package app wires the editor core together: configuration, the store,
// the tool router, logging, and the persistence subscriber.
package app

import (
	"reflect"
	"sync"
	"time"

	"github.com/drawkit/drawkit/internal/config"
	"github.com/drawkit/drawkit/internal/doc"
	"github.com/drawkit/drawkit/internal/input"
	"github.com/drawkit/drawkit/internal/persist"
	"github.com/drawkit/drawkit/internal/state"
	"github.com/drawkit/drawkit/internal/store"
	"github.com/drawkit/drawkit/internal/tools"
)

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger.
func WithLogger(l *Logger) Option {
	return func(a *App) { a.log = l }
}

// WithConfig sets the settings directly, skipping the file load.
func WithConfig(cfg config.Config) Option {
	return func(a *App) {
		a.cfg = cfg
		a.cfgLoaded = true
	}
}

// WithConfigPath loads settings from path and, when watch is true,
// reloads them live on file change.
func WithConfigPath(path string, watch bool) Option {
	return func(a *App) {
		a.cfgPath = path
		a.watchCfg = watch
	}
}

// WithSink sets the persistence sink document snapshots are forwarded to.
func WithSink(sink persist.Sink) Option {
	return func(a *App) { a.sink = sink }
}

// WithBoardID sets the board id patches are enqueued under.
func WithBoardID(id string) Option {
	return func(a *App) { a.boardID = id }
}

// App is one running editor instance.
type App struct {
	mu        sync.RWMutex
	cfg       config.Config
	cfgLoaded bool
	cfgPath   string
	watchCfg  bool

	log     *Logger
	store   *store.Store
	router  *tools.Router
	sink    persist.Sink
	boardID string

	watcher *config.Watcher
	unsub   func()
	lastDoc *doc.Document
}

// New creates an app with one empty page and the select tool active.
func New(opts ...Option) (*App, error) {
	a := &App{
		log:     NullLogger,
		sink:    persist.NopSink{},
		boardID: "default",
	}
	for _, opt := range opts {
		opt(a)
	}
	if !a.cfgLoaded {
		cfg, err := config.Load(a.cfgPath)
		if err != nil {
			return nil, err
		}
		a.cfg = cfg
	}

	initial := state.New()
	page := initial.Doc.AddPage("Page 1")
	initial.UI.CurrentPageID = page.ID

	a.store = store.New(initial, store.WithHistoryLimit(a.cfg.Editor.HistoryLimit))
	a.router = tools.NewRouter(a.store)
	a.registerTools(a.cfg)
	if err := a.router.Switch(tools.ToolSelect); err != nil {
		return nil, err
	}

	a.unsub = a.store.Subscribe(a.forwardDocChanges)

	if a.watchCfg && a.cfgPath != "" {
		w, err := config.Watch(a.cfgPath, a.applyConfig)
		if err != nil {
			a.log.Warn("config watch unavailable: %v", err)
		} else {
			a.watcher = w
		}
	}

	a.log.Info("editor ready, page %s", page.ID)
	return a, nil
}

// registerTools (re)registers every tool with the given settings. The
// active tool id is preserved; any in-progress gesture on a replaced tool
// instance is abandoned.
func (a *App) registerTools(cfg config.Config) {
	p := cfg.Params()
	style := cfg.DefaultStyle()
	a.router.Register(tools.NewSelect(p))
	a.router.Register(tools.NewRectTool(p, style))
	a.router.Register(tools.NewEllipseTool(p, style))
	a.router.Register(tools.NewLineTool(p, style))
	a.router.Register(tools.NewArrowTool(p, style))
	a.router.Register(tools.NewTextTool(p, style))
	a.router.Register(tools.NewMarkdownTool(p, style))
	a.router.Register(tools.NewPenTool(p, style))
}

// applyConfig installs reloaded settings. It runs on the watcher's timer
// goroutine, so the config write and the tool re-registration must both be
// safe against concurrent dispatch.
func (a *App) applyConfig(cfg config.Config) {
	a.mu.Lock()
	a.cfg = cfg
	a.mu.Unlock()
	a.registerTools(cfg)
	a.log.Info("config reloaded")
}

// forwardDocChanges enqueues a snapshot whenever a publish carries a
// changed document. UI-only and camera-only publishes are skipped; clones
// with identical content do not count as changes.
func (a *App) forwardDocChanges(st *state.EditorState) {
	if st.Doc == a.lastDoc {
		return
	}
	if a.lastDoc != nil && reflect.DeepEqual(st.Doc, a.lastDoc) {
		a.lastDoc = st.Doc
		return
	}
	a.lastDoc = st.Doc
	patch := persist.Patch{Doc: st.Doc, Time: time.Now()}
	if err := a.sink.EnqueueDocPatch(a.boardID, patch); err != nil {
		a.log.Error("enqueue patch: %v", err)
	}
}

// HandleAction routes one input action to the active tool.
func (a *App) HandleAction(act input.Action) {
	a.router.Dispatch(act)
}

// SwitchTool activates the named tool.
func (a *App) SwitchTool(id string) error {
	return a.router.Switch(id)
}

// Undo reverses the most recent command. False when nothing to undo.
func (a *App) Undo() bool { return a.store.Undo() }

// Redo reapplies the most recently undone command. False when nothing to
// redo.
func (a *App) Redo() bool { return a.store.Redo() }

// State returns the current published state.
func (a *App) State() *state.EditorState { return a.store.GetState() }

// Store exposes the underlying store.
func (a *App) Store() *store.Store { return a.store }

// Config returns the active settings.
func (a *App) Config() config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg
}

// Shutdown stops the watcher, detaches the persistence subscriber, and
// flushes the sink.
func (a *App) Shutdown() error {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	if a.unsub != nil {
		a.unsub()
	}
	return a.sink.Flush()
}
