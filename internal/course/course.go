package course

import (
	"context"
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/coursetrack/internal/catalog"
	"github.com/desertthunder/coursetrack/internal/models"
	"github.com/desertthunder/coursetrack/internal/services"
	"github.com/desertthunder/coursetrack/internal/storage"
)

// LoadErrorMessage is shown when the catalog could not be loaded.
const LoadErrorMessage = "Não foi possível carregar os dados do treinamento."

// DefaultBreakpoint is the terminal width, in columns, at or above which the layout counts as wide.
const DefaultBreakpoint = 100

// Persister stores the three durable state slices.
type Persister interface {
	LoadWatched() (map[string]struct{}, error)
	LoadComments() (map[string]string, error)
	LoadActiveKey() (string, bool, error)
	SaveWatched(map[string]struct{}) error
	SaveComments(map[string]string) error
	SaveActiveKey(string) error
}

var _ Persister = (*storage.Persistence)(nil)

// Options configures a [Controller].
type Options struct {
	Source      services.ContentSource // nil serves the embedded sample
	Persistence Persister              // nil keeps state in memory only
	Logger      *log.Logger
	Breakpoint  int    // <= 0 selects DefaultBreakpoint
	HomeKey     string // initial and home section; unknown keys fall back to the first section
	// FallbackToSample substitutes the embedded sample course when the source fails.
	FallbackToSample bool
}

// LoadResult carries the outcome of [Controller.Fetch] back to [Controller.Complete].
type LoadResult struct {
	Source string
	Doc    *models.RawDocument
	Err    error
}

// Controller owns all tracker state. It is not safe for concurrent use; only [Controller.Fetch]
// may run off the owning goroutine.
type Controller struct {
	source     services.ContentSource
	store      Persister
	logger     *log.Logger
	breakpoint int
	homeKey    string
	fallback   bool

	sections    models.Catalog
	watched     map[string]struct{}
	comments    map[string]string
	activeKey   string
	active      models.Selection
	loading     bool
	loadError   string
	sidebarOpen bool
	listeners   []Listener
}

// New creates a [Controller]. Call [Controller.Initialize] (or Restore/Fetch/Complete) before use.
func New(opts Options) *Controller {
	if opts.Source == nil {
		opts.Source = services.EmbeddedSource{}
	}
	if opts.Persistence == nil {
		opts.Persistence = storage.NewPersistence(storage.NewMemoryStore(), "")
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Breakpoint <= 0 {
		opts.Breakpoint = DefaultBreakpoint
	}

	return &Controller{
		source:     opts.Source,
		store:      opts.Persistence,
		logger:     opts.Logger,
		breakpoint: opts.Breakpoint,
		homeKey:    opts.HomeKey,
		fallback:   opts.FallbackToSample,
		watched:    make(map[string]struct{}),
		comments:   make(map[string]string),
		activeKey:  opts.HomeKey,
	}
}

// Subscribe registers l for all subsequent events.
func (c *Controller) Subscribe(l Listener) {
	if l != nil {
		c.listeners = append(c.listeners, l)
	}
}

func (c *Controller) emit(e Event) {
	for _, l := range c.listeners {
		l(e)
	}
}

// Initialize restores persisted state and loads the catalog, blocking until the source settles.
func (c *Controller) Initialize(ctx context.Context) {
	c.Restore()
	c.Complete(c.Fetch(ctx))
}

// Restore marks the controller loading and rehydrates the persisted slices.
//
// Unreadable slices start empty.
func (c *Controller) Restore() {
	c.loading = true
	c.loadError = ""

	watched, err := c.store.LoadWatched()
	c.ignore("load watched", err)
	c.watched = watched

	comments, err := c.store.LoadComments()
	c.ignore("load comments", err)
	c.comments = comments

	key, ok, err := c.store.LoadActiveKey()
	c.ignore("load active key", err)
	if ok {
		c.activeKey = key
	}

	if c.watched == nil {
		c.watched = make(map[string]struct{})
	}
	if c.comments == nil {
		c.comments = make(map[string]string)
	}
}

// Fetch queries the content source. It reads no mutable controller state.
func (c *Controller) Fetch(ctx context.Context) LoadResult {
	doc, err := c.source.FetchCatalog(ctx)
	return LoadResult{Source: c.source.Name(), Doc: doc, Err: err}
}

// Complete installs a fetched catalog, resolves the active section and clears the loading flag.
func (c *Controller) Complete(res LoadResult) {
	var raw []models.RawSection

	switch {
	case res.Err != nil:
		c.loadError = LoadErrorMessage
		c.logger.Error("failed to load course catalog", "source", res.Source, "error", res.Err)
		if c.fallback {
			c.logger.Warn("using embedded sample course")
			raw = catalog.Sample()
		}
	case res.Doc != nil:
		raw = res.Doc.Sections
	}

	c.sections = catalog.Normalize(raw)

	if c.sections.IndexOf(c.activeKey) < 0 {
		c.activeKey = c.firstKey()
	}
	c.setActive(c.activeKey)

	c.loading = false
	c.logger.Debug("catalog loaded", "sections", len(c.sections), "videos", c.sections.VideoCount(), "active", c.activeKey)
	c.emit(Event{Kind: EventLoaded, Key: c.activeKey})
}

func (c *Controller) firstKey() string {
	if len(c.sections) == 0 {
		return ""
	}
	return c.sections[0].Key
}

// setActive recomputes the selection for key and persists the resolved key when it names a section.
func (c *Controller) setActive(key string) {
	c.active = c.sections.Select(key)
	c.activeKey = c.active.Key

	if c.active.Section != nil {
		c.ignore("save active key", c.store.SaveActiveKey(c.activeKey))
	}
}

// SelectSection makes key the active section and closes the sidebar.
//
// Unknown keys select the first section. When the resolved key is already active only the sidebar closes.
// Reports whether the active section changed.
func (c *Controller) SelectSection(key string) bool {
	resolved := c.sections.Select(key).Key
	if resolved == c.activeKey {
		c.setSidebar(false)
		return false
	}

	c.setActive(resolved)
	c.setSidebar(false)
	c.emit(Event{Kind: EventSectionChanged, Key: c.activeKey})
	c.emit(Event{Kind: EventScrollTop, Key: c.activeKey})
	return true
}

// GoHome selects the home section, or the first section when none is configured, and scrolls to top.
func (c *Controller) GoHome() {
	key := c.homeKey
	if c.sections.IndexOf(key) < 0 {
		key = c.firstKey()
	}
	if !c.SelectSection(key) {
		c.emit(Event{Kind: EventScrollTop, Key: c.activeKey})
	}
}

// NextSection selects the section after the active one. It does not wrap.
func (c *Controller) NextSection() bool {
	if c.active.Section == nil || c.active.Index+1 >= len(c.sections) {
		return false
	}
	return c.SelectSection(c.sections[c.active.Index+1].Key)
}

// PrevSection selects the section before the active one. It does not wrap.
func (c *Controller) PrevSection() bool {
	if c.active.Section == nil || c.active.Index == 0 {
		return false
	}
	return c.SelectSection(c.sections[c.active.Index-1].Key)
}

// MarkWatched adds id to the watched set. Already-watched ids are not re-persisted.
func (c *Controller) MarkWatched(id string) bool {
	if _, ok := c.watched[id]; ok {
		return false
	}
	c.watched[id] = struct{}{}
	c.ignore("save watched", c.store.SaveWatched(c.watched))
	c.emit(Event{Kind: EventWatchedChanged, VideoID: id})
	return true
}

// ResetWatched removes id from the watched set. Unwatched ids are not re-persisted.
func (c *Controller) ResetWatched(id string) bool {
	if _, ok := c.watched[id]; !ok {
		return false
	}
	delete(c.watched, id)
	c.ignore("save watched", c.store.SaveWatched(c.watched))
	c.emit(Event{Kind: EventWatchedChanged, VideoID: id})
	return true
}

// ToggleWatched marks id watched, or resets it when already watched. Returns the new state.
func (c *Controller) ToggleWatched(id string) bool {
	if c.IsWatched(id) {
		c.ResetWatched(id)
		return false
	}
	c.MarkWatched(id)
	return true
}

// IsWatched reports whether id is in the watched set.
func (c *Controller) IsWatched(id string) bool {
	_, ok := c.watched[id]
	return ok
}

// UpdateComment overwrites the comment for id and persists on every call.
//
// An empty string is stored as an empty comment, not removed.
func (c *Controller) UpdateComment(id, text string) {
	c.comments[id] = text
	c.ignore("save comments", c.store.SaveComments(c.comments))
	c.emit(Event{Kind: EventCommentChanged, VideoID: id})
}

// Comment returns the comment for id and whether one has been set.
func (c *Controller) Comment(id string) (string, bool) {
	text, ok := c.comments[id]
	return text, ok
}

// ToggleSidebar flips the sidebar flag. Not persisted.
func (c *Controller) ToggleSidebar() {
	c.setSidebar(!c.sidebarOpen)
}

// OnViewportChange closes the sidebar once width reaches the breakpoint. It never opens it.
func (c *Controller) OnViewportChange(width int) {
	if width >= c.breakpoint {
		c.setSidebar(false)
	}
}

func (c *Controller) setSidebar(open bool) {
	if c.sidebarOpen == open {
		return
	}
	c.sidebarOpen = open
	c.emit(Event{Kind: EventSidebarChanged})
}

// ignore drops a best-effort storage error after logging it.
func (c *Controller) ignore(op string, err error) {
	if err != nil {
		c.logger.Debug("storage error ignored", "op", op, "error", err)
	}
}

func (c *Controller) Loading() bool                  { return c.loading }
func (c *Controller) LoadError() string              { return c.loadError }
func (c *Controller) Sections() models.Catalog       { return c.sections }
func (c *Controller) ActiveKey() string              { return c.activeKey }
func (c *Controller) ActiveIndex() int               { return c.active.Index }
func (c *Controller) ActiveSection() *models.Section { return c.active.Section }
func (c *Controller) Selection() models.Selection    { return c.active }
func (c *Controller) SidebarOpen() bool              { return c.sidebarOpen }
func (c *Controller) Breakpoint() int                { return c.breakpoint }

// Watched returns the watched ids in sorted order, including ids absent from the catalog.
func (c *Controller) Watched() []string {
	ids := make([]string, 0, len(c.watched))
	for id := range c.watched {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Comments returns a copy of the comment map.
func (c *Controller) Comments() map[string]string {
	out := make(map[string]string, len(c.comments))
	for id, text := range c.comments {
		out[id] = text
	}
	return out
}

// Video looks up a lesson by id in the loaded catalog.
func (c *Controller) Video(id string) (*models.Video, *models.Section, bool) {
	return c.sections.FindVideo(id)
}

// Progress summarizes watched lessons over the whole catalog. Stale watched ids are not counted.
func (c *Controller) Progress() models.Progress {
	watched, total := 0, 0
	for _, s := range c.sections {
		w, t := c.count(s)
		watched += w
		total += t
	}
	return models.NewProgress("", "", watched, total)
}

// SectionProgress summarizes watched lessons in the section with key.
func (c *Controller) SectionProgress(key string) (models.Progress, bool) {
	idx := c.sections.IndexOf(key)
	if idx < 0 {
		return models.Progress{}, false
	}
	s := c.sections[idx]
	w, t := c.count(s)
	return models.NewProgress(s.Key, s.Title, w, t), true
}

// AllProgress returns per-section progress in catalog order.
func (c *Controller) AllProgress() []models.Progress {
	out := make([]models.Progress, 0, len(c.sections))
	for _, s := range c.sections {
		w, t := c.count(s)
		out = append(out, models.NewProgress(s.Key, s.Title, w, t))
	}
	return out
}

func (c *Controller) count(s models.Section) (watched, total int) {
	for _, v := range s.Videos {
		if c.IsWatched(v.ID) {
			watched++
		}
	}
	return watched, len(s.Videos)
}
