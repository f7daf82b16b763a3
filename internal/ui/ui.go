package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/coursetrack/internal/course"
	"github.com/desertthunder/coursetrack/internal/embedurl"
	"github.com/desertthunder/coursetrack/internal/models"
	"github.com/desertthunder/coursetrack/internal/shared"
)

const (
	sidebarWidth  = 32
	chromeHeight  = 6 // header, help line and pane borders
	lessonsHeight = 10
	loadingText   = "Carregando treinamento..."
)

// Pane identifies which pane receives navigation keys.
type Pane int

const (
	LessonPane Pane = iota
	SidebarPane
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	ctrl    *course.Controller
	urls    *embedurl.Cache
	openURL func(string) error

	width  int
	height int
	focus  Pane

	sidebar list.Model
	lessons list.Model
	detail  viewport.Model
	editor  textinput.Model
	editing string // video ID whose comment is being edited

	help   help.Model
	keys   keyMap
	status string
	err    error

	dirty     bool
	scrollTop bool
}

// Option customizes a [Model].
type Option func(*Model)

// WithBrowser replaces the function used to open watch URLs.
func WithBrowser(open func(string) error) Option {
	return func(m *Model) {
		if open != nil {
			m.openURL = open
		}
	}
}

// WithURLCache shares an embed URL cache with the caller.
func WithURLCache(c *embedurl.Cache) Option {
	return func(m *Model) {
		if c != nil {
			m.urls = c
		}
	}
}

// NewModel creates a new TUI model driving ctrl.
func NewModel(ctx context.Context, ctrl *course.Controller, opts ...Option) *Model {
	m := &Model{
		ctx:     ctx,
		ctrl:    ctrl,
		urls:    embedurl.NewCache(),
		openURL: shared.OpenBrowser,
		sidebar: newList("Seções"),
		lessons: newList("Aulas"),
		detail:  viewport.New(0, 0),
		editor:  textinput.New(),
		help:    help.New(),
		keys:    newKeyMap(),
	}
	m.editor.Placeholder = "Escreva um comentário"
	m.editor.Prompt = "› "

	for _, opt := range opts {
		opt(m)
	}

	ctrl.Subscribe(m.onEvent)
	return m
}

func newList(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)
	return l
}

// onEvent runs synchronously inside the controller call made from Update.
func (m *Model) onEvent(e course.Event) {
	switch e.Kind {
	case course.EventScrollTop:
		m.scrollTop = true
	case course.EventSidebarChanged:
		if m.ctrl.SidebarOpen() {
			m.focus = SidebarPane
		} else if !m.wide() {
			m.focus = LessonPane
		}
	}
	m.dirty = true
}

// Init restores persisted state and starts fetching the catalog.
func (m *Model) Init() tea.Cmd {
	m.ctrl.Restore()
	return m.fetchCatalog()
}

func (m *Model) fetchCatalog() tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg(m.ctrl.Fetch(m.ctx))
	}
}

func (m *Model) openVideo(target string) tea.Cmd {
	return func() tea.Msg {
		return browserOpenedMsg(target, m.openURL(target))
	}
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ctrl.OnViewportChange(msg.Width)
		m.resize()
		m.dirty = true

	case Msg:
		switch msg.kind {
		case MsgCatalogLoaded:
			m.ctrl.Complete(msg.data.(course.LoadResult))
			m.focus = LessonPane
		case MsgBrowserOpened:
			res := msg.data.(browserResult)
			m.err = res.err
			if res.err == nil {
				m.status = "Abrindo " + res.target
			}
		}

	case tea.KeyMsg:
		if m.editing != "" {
			cmd = m.handleEditorKeys(msg)
		} else {
			cmd = m.handleKeys(msg)
		}

	default:
		m.detail, cmd = m.detail.Update(msg)
	}

	m.sync()
	return m, cmd
}

func (m *Model) handleKeys(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.quit) {
		return tea.Quit
	}
	if m.ctrl.Loading() {
		return nil
	}

	m.status, m.err = "", nil

	switch {
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return nil
	case key.Matches(msg, m.keys.focus):
		if m.wide() {
			m.focus = 1 - m.focus
		} else {
			m.ctrl.ToggleSidebar()
		}
		return nil
	case key.Matches(msg, m.keys.next):
		m.ctrl.NextSection()
		return nil
	case key.Matches(msg, m.keys.prev):
		m.ctrl.PrevSection()
		return nil
	case key.Matches(msg, m.keys.home):
		m.ctrl.GoHome()
		return nil
	}

	if m.focus == SidebarPane {
		return m.handleSidebarKeys(msg)
	}
	return m.handleLessonKeys(msg)
}

func (m *Model) handleSidebarKeys(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.enter) {
		if item, ok := m.sidebar.SelectedItem().(sectionItem); ok {
			m.ctrl.SelectSection(item.section.Key)
			m.focus = LessonPane
		}
		return nil
	}

	var cmd tea.Cmd
	m.sidebar, cmd = m.sidebar.Update(msg)
	return cmd
}

func (m *Model) handleLessonKeys(msg tea.KeyMsg) tea.Cmd {
	video, ok := m.selectedVideo()

	switch {
	case key.Matches(msg, m.keys.watched):
		if ok {
			if m.ctrl.ToggleWatched(video.ID) {
				m.status = "Aula marcada como assistida"
			} else {
				m.status = "Aula marcada como não assistida"
			}
		}
		return nil
	case key.Matches(msg, m.keys.comment):
		if !ok {
			return nil
		}
		text, _ := m.ctrl.Comment(video.ID)
		m.editing = video.ID
		m.editor.SetValue(text)
		m.editor.CursorEnd()
		return m.editor.Focus()
	case key.Matches(msg, m.keys.open):
		if !ok {
			return nil
		}
		return m.openVideo(m.urls.Resolve(video.ExternalVideoID).WatchURL())
	}

	before := m.lessons.Index()
	var cmd tea.Cmd
	m.lessons, cmd = m.lessons.Update(msg)
	if m.lessons.Index() != before {
		m.renderDetail()
		m.detail.GotoTop()
		return cmd
	}

	var vpCmd tea.Cmd
	m.detail, vpCmd = m.detail.Update(msg)
	return tea.Batch(cmd, vpCmd)
}

// handleEditorKeys saves the comment on every edit; enter and esc only close the editor.
func (m *Model) handleEditorKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return tea.Quit
	case key.Matches(msg, m.keys.save), key.Matches(msg, m.keys.cancel):
		m.status = "Comentário salvo"
		m.closeEditor()
		return nil
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if text := m.editor.Value(); text != before {
		m.ctrl.UpdateComment(m.editing, text)
	}
	return cmd
}

func (m *Model) closeEditor() {
	m.editing = ""
	m.editor.Blur()
	m.editor.Reset()
	m.dirty = true
}

func (m *Model) selectedVideo() (models.Video, bool) {
	item, ok := m.lessons.SelectedItem().(lessonItem)
	if !ok {
		return models.Video{}, false
	}
	return item.video, true
}

func (m *Model) wide() bool {
	return m.width >= m.ctrl.Breakpoint()
}

// sync rebuilds list items from the controller after any state change.
func (m *Model) sync() {
	if !m.dirty {
		return
	}
	m.dirty = false

	sections := m.ctrl.Sections()
	active := m.ctrl.ActiveKey()

	items := make([]list.Item, len(sections))
	for i, s := range sections {
		p, _ := m.ctrl.SectionProgress(s.Key)
		items[i] = sectionItem{section: s, progress: p, active: s.Key == active}
	}
	m.sidebar.SetItems(items)
	if !m.sidebar.IsFiltered() && len(items) > 0 && m.focus == LessonPane {
		m.sidebar.Select(m.ctrl.ActiveIndex())
	}

	var lessons []list.Item
	if s := m.ctrl.ActiveSection(); s != nil {
		m.lessons.Title = s.Title
		lessons = make([]list.Item, len(s.Videos))
		for i, v := range s.Videos {
			_, commented := m.ctrl.Comment(v.ID)
			lessons[i] = lessonItem{video: v, watched: m.ctrl.IsWatched(v.ID), comment: commented}
		}
	}
	idx := m.lessons.Index()
	m.lessons.SetItems(lessons)

	if m.scrollTop {
		m.scrollTop = false
		idx = 0
		m.detail.GotoTop()
	}
	if len(lessons) > 0 {
		m.lessons.Select(min(idx, len(lessons)-1))
	}

	m.renderDetail()
}

func (m *Model) resize() {
	helpHeight := lipgloss.Height(m.helpView())
	bodyHeight := max(m.height-chromeHeight-helpHeight, 4)
	mainWidth := m.width - 4
	if m.wide() {
		mainWidth = m.width - sidebarWidth - 8
	}
	mainWidth = max(mainWidth, 20)

	m.sidebar.SetSize(sidebarWidth, bodyHeight)
	listHeight := min(lessonsHeight, bodyHeight/2)
	m.lessons.SetSize(mainWidth, listHeight)
	m.detail.Width = mainWidth
	m.detail.Height = max(bodyHeight-listHeight-1, 1)
	m.editor.Width = mainWidth - 4
}

// renderDetail fills the viewport with the selected lesson.
func (m *Model) renderDetail() {
	video, ok := m.selectedVideo()
	if !ok {
		m.detail.SetContent(styles.help.Render("Nenhuma aula nesta seção."))
		return
	}

	var b strings.Builder
	b.WriteString(styles.heading.Render(video.Title))
	b.WriteString("\n")

	url := m.urls.Resolve(video.ExternalVideoID)
	fmt.Fprintf(&b, "Vídeo: %s\n", url)
	if m.ctrl.IsWatched(video.ID) {
		b.WriteString(styles.ok.Render("✓ Assistida"))
	} else {
		b.WriteString(styles.warn.Render("○ Não assistida"))
	}
	b.WriteString("\n")

	if len(video.Links) > 0 {
		b.WriteString("\n" + styles.heading.Render("Links") + "\n")
		for _, l := range video.Links {
			fmt.Fprintf(&b, "  • %s: %s\n", l.Label, l.Href)
		}
	}

	if len(video.Commands) > 0 {
		b.WriteString("\n" + styles.heading.Render("Comandos") + "\n")
		for _, c := range video.Commands {
			b.WriteString(styles.command.Render("$ "+c) + "\n")
		}
	}

	b.WriteString("\n" + styles.heading.Render("Comentário") + "\n")
	if text, ok := m.ctrl.Comment(video.ID); ok && text != "" {
		b.WriteString(text + "\n")
	} else {
		b.WriteString(styles.help.Render("sem comentário") + "\n")
	}

	m.detail.SetContent(b.String())
}

func (m *Model) helpView() string {
	if m.editing != "" {
		return m.help.ShortHelpView(m.keys.editHelp())
	}
	return m.help.View(m.keys)
}

// View renders the UI based on the current controller state.
func (m *Model) View() string {
	if m.ctrl.Loading() {
		return styles.help.Render(loadingText)
	}

	header := m.renderHeader()

	if msg := m.ctrl.LoadError(); msg != "" && len(m.ctrl.Sections()) == 0 {
		return fmt.Sprintf("%s\n%s\n\n%s", header, styles.err.Render(msg), m.help.ShortHelpView([]key.Binding{m.keys.quit}))
	}

	var body string
	switch {
	case m.wide():
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), m.renderLessons())
	case m.ctrl.SidebarOpen():
		body = m.renderSidebar()
	default:
		body = m.renderLessons()
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, body, m.renderStatus(), m.helpView())
}

func (m *Model) renderHeader() string {
	p := m.ctrl.Progress()
	title := styles.title.Render("Treinamento")
	return fmt.Sprintf("%s  %d/%d aulas assistidas (%.0f%%)", title, p.Watched, p.Total, p.Percent)
}

func (m *Model) renderSidebar() string {
	pane := styles.pane
	if m.focus == SidebarPane {
		pane = styles.focused
	}
	return pane.Render(m.sidebar.View())
}

func (m *Model) renderLessons() string {
	pane := styles.pane
	if m.focus == LessonPane {
		pane = styles.focused
	}

	content := m.lessons.View() + "\n" + m.detail.View()
	if m.editing != "" {
		content += "\n" + m.editor.View()
	}
	return pane.Render(content)
}

func (m *Model) renderStatus() string {
	switch {
	case m.err != nil:
		return styles.err.Render(fmt.Sprintf("Erro: %v", m.err))
	case m.ctrl.LoadError() != "":
		return styles.warn.Render(m.ctrl.LoadError())
	case m.status != "":
		return styles.ok.Render(m.status)
	}
	return ""
}

// Focus reports which pane has keyboard focus.
func (m *Model) Focus() Pane { return m.focus }

// Editing reports whether the comment editor is open.
func (m *Model) Editing() bool { return m.editing != "" }
