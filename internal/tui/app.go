package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/anidex/internal/catalog"
	"github.com/mmcdole/anidex/internal/cloud"
	"github.com/mmcdole/anidex/internal/domain"
	"github.com/mmcdole/anidex/internal/filter"
	"github.com/mmcdole/anidex/internal/tui/components"
	"github.com/mmcdole/anidex/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateLoading ApplicationState = iota
	StateBrowsing
	StateLoadFailed
)

// Layout rows outside the grid: header, category bar, details, footer
const chromeHeight = 5

// maxSuggestions bounds the "did you mean" hint
const maxSuggestions = 3

// Options wires the model's collaborators
type Options struct {
	Loader      CatalogLoader
	LoadTimeout time.Duration
	Source      string // shown while loading
	Opener      LinkOpener
	Cloud       *cloud.Service
	Catalog     catalog.Options
	Columns     int
	Logger      *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	State ApplicationState

	opts   Options
	logger *slog.Logger

	ctrl *catalog.Controller
	grid *components.CardGrid

	// Modals and bars
	searchModal components.InputModal
	cloudModal  components.InputModal
	filterModal components.FilterModal
	categories  components.CategoryBar

	spinner  spinner.Model
	help     help.Model
	showHelp bool

	// Dimensions
	Width  int
	Height int

	// Status line
	statusMsg   string
	statusIsErr bool
	statusSeq   int

	loadErr error
}

// NewModel creates the application model. The catalog is loaded by Init.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	return Model{
		State:       StateLoading,
		opts:        opts,
		logger:      logger,
		grid:        components.NewCardGrid(opts.Columns),
		searchModal: components.NewInputModal(100),
		cloudModal:  components.NewInputModal(200),
		spinner:     sp,
		help:        help.New(),
	}
}

// Init starts the spinner and the catalog load
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, LoadCatalogCmd(m.opts.Loader, m.opts.LoadTimeout))
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		m.grid.SetSize(msg.Width, max(msg.Height-chromeHeight, components.CardHeight))
		m.fill()
		return m, nil

	case spinner.TickMsg:
		if m.State != StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case CatalogLoadedMsg:
		m.startSession(msg)
		return m, nil

	case LoadFailedMsg:
		m.State = StateLoadFailed
		m.loadErr = msg.Err
		m.logger.Error("catalog unavailable", "error", msg.Err)
		return m, nil

	case OpenedMsg:
		if msg.Err != nil {
			return m, m.setStatus(fmt.Sprintf("could not open %s: %v", msg.Title, msg.Err), true)
		}
		return m, m.setStatus("opened "+msg.Title, false)

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.statusMsg = ""
			m.statusIsErr = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Forward cursor blinks to whichever input is open
	return m.updateInputs(msg)
}

func (m *Model) startSession(msg CatalogLoadedMsg) {
	m.ctrl = catalog.NewController(msg.Collection, m.opts.Catalog, m.logger)
	m.ctrl.Attach(m.grid)

	entries := m.ctrl.Entries()
	// Categories have their own bar
	var filterKeys []domain.FilterKey
	for _, k := range domain.FilterKeys() {
		if k != domain.FilterCategory {
			filterKeys = append(filterKeys, k)
		}
	}
	m.filterModal = components.NewFilterModal(filterKeys, func(k domain.FilterKey) []filter.Option {
		return filter.Options(entries, k)
	})
	m.categories = components.NewCategoryBar(m.ctrl.Categories())

	m.State = StateBrowsing
	m.fill()
	m.logger.Info("session started", "count", len(entries), "view", m.ctrl.View().String())
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.searchModal.IsVisible():
		m.searchModal, cmd, _ = m.searchModal.Update(msg)
	case m.cloudModal.IsVisible():
		m.cloudModal, cmd, _ = m.cloudModal.Update(msg)
	case m.filterModal.IsVisible():
		m.filterModal, cmd, _ = m.filterModal.Update(msg, nil)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.State != StateBrowsing {
		if key.Matches(msg, keys.Quit) || msg.String() == "esc" {
			return m, tea.Quit
		}
		return m, nil
	}

	// Modals consume keys first
	switch {
	case m.showHelp:
		m.showHelp = false
		return m, nil

	case m.searchModal.IsVisible():
		var cmd tea.Cmd
		var submitted bool
		m.searchModal, cmd, submitted = m.searchModal.Update(msg)
		if submitted {
			term := m.searchModal.Value()
			m.searchModal.Hide()
			m.ctrl.SetSearchTerm(term)
			m.fill()
			return m, m.resultStatus()
		}
		return m, cmd

	case m.cloudModal.IsVisible():
		var cmd tea.Cmd
		var submitted bool
		m.cloudModal, cmd, submitted = m.cloudModal.Update(msg)
		if submitted {
			return m.submitCloudLink()
		}
		return m, cmd

	case m.filterModal.IsVisible():
		var cmd tea.Cmd
		var sel *components.FilterSelection
		m.filterModal, cmd, sel = m.filterModal.Update(msg, m.ctrl.Query().Filter)
		if sel != nil {
			m.ctrl.SetFilter(sel.Key, sel.Values...)
			m.fill()
			return m, m.resultStatus()
		}
		return m, cmd

	case m.categories.Focused():
		var chosen *string
		m.categories, chosen, _ = m.categories.Update(msg)
		if chosen != nil {
			m.ctrl.SetCategory(*chosen)
			m.fill()
			return m, m.resultStatus()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, keys.Search):
		cmd := m.searchModal.Show("Search", m.ctrl.Query().SearchTerm(), "title, synonym, English or Japanese name", "enter to search · empty to clear · esc to cancel")
		return m, cmd

	case key.Matches(msg, keys.Filter):
		m.filterModal.Show()
		return m, nil

	case key.Matches(msg, keys.Category):
		active := ""
		if vals := m.ctrl.Query().Filter(domain.FilterCategory); len(vals) > 0 {
			active = vals[0]
		}
		m.categories.Focus(active)
		return m, nil

	case key.Matches(msg, keys.Home):
		m.ctrl.ResetAll()
		m.categories.SetActive("")
		m.fill()
		return m, m.setStatus("home", false)

	case key.Matches(msg, keys.Browse):
		m.ctrl.SetView(domain.ViewBrowse)
		m.fill()
		return m, m.resultStatus()

	case key.Matches(msg, keys.Cloud):
		current := ""
		if m.opts.Cloud != nil {
			current, _ = m.opts.Cloud.Current()
		}
		cmd := m.cloudModal.Show("Cloud link", current, cloud.DefaultHostPrefix+"<token>", "enter to save · empty to clear · esc to cancel")
		return m, cmd

	case key.Matches(msg, keys.Open):
		return m.openSelected()
	}

	cmd := m.grid.Update(msg)
	m.fill()
	return m, cmd
}

func (m Model) submitCloudLink() (tea.Model, tea.Cmd) {
	if m.opts.Cloud == nil {
		m.cloudModal.Hide()
		return m, m.setStatus("settings storage unavailable", true)
	}

	link := strings.TrimSpace(m.cloudModal.Value())
	if link == "" {
		m.cloudModal.Hide()
		if err := m.opts.Cloud.Clear(); err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		return m, m.setStatus("cloud link removed", false)
	}

	if err := m.opts.Cloud.Set(link); err != nil {
		if errors.Is(err, domain.ErrInvalidCloudLink) {
			m.cloudModal.SetError("invalid link, expected " + cloud.DefaultHostPrefix + "<token>")
			return m, nil
		}
		m.cloudModal.Hide()
		return m, m.setStatus(err.Error(), true)
	}
	m.cloudModal.Hide()
	return m, m.setStatus("cloud link saved", false)
}

func (m Model) openSelected() (tea.Model, tea.Cmd) {
	e := m.grid.Selected()
	if e == nil {
		return m, nil
	}
	if !e.IsAvailable() {
		return m, m.setStatus(e.Title+" is unavailable", true)
	}

	resolver := cloud.Resolver{}
	if m.opts.Cloud != nil {
		resolver = m.opts.Cloud.Resolver()
	}
	url := resolver.Resolve(e)
	m.logger.Info("opening entry", "id", e.ID.String(), "url", url)
	if m.opts.Opener == nil {
		return m, m.setStatus(url, false)
	}
	return m, OpenLinkCmd(m.opts.Opener, e.Title, url)
}

// fill requests pages until the grid covers the screen plus one row, or
// the cursor is no longer on the last rendered row.
func (m *Model) fill() {
	if m.ctrl == nil {
		return
	}
	for !m.ctrl.Exhausted() {
		if m.grid.Len() >= m.grid.Capacity()+m.grid.Columns() && !m.grid.NearEnd() {
			return
		}
		if _, ok := m.ctrl.RequestNextPage(); !ok {
			return
		}
	}
}

// resultStatus summarizes the current result set in the status line
func (m *Model) resultStatus() tea.Cmd {
	n := len(m.ctrl.Results())
	q := m.ctrl.Query()
	if n > 0 {
		return m.setStatus(fmt.Sprintf("%d results", n), false)
	}
	if q.HasSearch() {
		msg := fmt.Sprintf("no results for %q", q.SearchTerm())
		if s := m.ctrl.Suggestions(maxSuggestions); len(s) > 0 {
			msg += ". Did you mean: " + strings.Join(s, ", ") + "?"
		}
		return m.setStatus(msg, true)
	}
	return m.setStatus("no entries match the active filters", true)
}

func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.statusMsg = msg
	m.statusIsErr = isErr
	return clearStatusCmd(m.statusSeq)
}
