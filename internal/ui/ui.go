package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/modao/internal/models"
	"github.com/desertthunder/modao/internal/shared"
	"github.com/desertthunder/modao/internal/tasks"
)

// settledRowDelay is how long a decided row lingers in the list showing its
// outcome before it is removed. Purely cosmetic; the engines trim their
// caches as soon as the server confirms.
const settledRowDelay = 1500 * time.Millisecond

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PendingView ViewState = iota
	CatalogView
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	moderation *tasks.ModerationEngine
	catalog    *tasks.CatalogEngine
	width      int
	height     int

	pendingList  list.Model
	catalogList  list.Model
	pendingReady bool
	catalogReady bool

	// gen invalidates async replies from before the last reload.
	gen     int
	settled map[int64]string
	status  string
	err     error
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, moderation *tasks.ModerationEngine, catalog *tasks.CatalogEngine) *Model {
	return &Model{
		ctx:        ctx,
		view:       PendingView,
		moderation: moderation,
		catalog:    catalog,
		settled:    make(map[int64]string),
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init loads both views.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadPending(), m.loadCatalog())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.pendingReady {
			m.pendingList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.catalogReady {
			m.catalogList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case pendingLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		items := make([]list.Item, len(msg.suggestions))
		for i, s := range msg.suggestions {
			items[i] = suggestionItem{suggestion: s}
		}
		m.pendingList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
		m.pendingList.Title = "Sugestões pendentes"
		m.pendingReady = true
		return m, nil

	case catalogLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		items := make([]list.Item, len(msg.musics))
		for i, mu := range msg.musics {
			items[i] = musicItem{music: mu}
		}
		m.catalogList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
		m.catalogList.Title = "Catálogo aprovado"
		m.catalogReady = true
		return m, nil

	case decisionDoneMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			m.status = m.describeError(msg.err)
			return m, nil
		}
		label := "aprovada ✓"
		if msg.action == models.ActionReject {
			label = "reprovada ✗"
		}
		m.settled[msg.id] = label
		m.markPendingRow(msg.id, label)
		return m, m.expireSettledRow(msg.id)

	case deleteDoneMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			m.status = m.describeError(msg.err)
			return m, nil
		}
		m.settled[msg.id] = "removida ✓"
		m.markCatalogRow(msg.id, "removida ✓")
		return m, m.expireSettledRow(msg.id)

	case settledRowExpiredMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		delete(m.settled, msg.id)
		m.rebuildLists()
		return m, nil

	case browserOpenedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("não foi possível abrir o navegador: %v", msg.err)
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Erro: %v\n\nPressione q para sair", m.err))
	}

	var body string
	switch m.view {
	case PendingView:
		if !m.pendingReady {
			body = "Carregando sugestões..."
		} else {
			body = m.pendingList.View()
		}
	case CatalogView:
		if !m.catalogReady {
			body = "Carregando catálogo..."
		} else {
			body = m.catalogList.View()
		}
	}

	status := ""
	if m.status != "" {
		status = "\n" + styles.warn.Render(m.status)
	}

	helpView := m.help.ShortHelpView(m.helpKeys())
	return fmt.Sprintf("%s%s\n\n%s", body, status, helpView)
}

func (m *Model) helpKeys() []key.Binding {
	if m.view == PendingView {
		return []key.Binding{m.keys.approve, m.keys.reject, m.keys.open, m.keys.tab, m.keys.quit}
	}
	return []key.Binding{m.keys.del, m.keys.open, m.keys.tab, m.keys.quit}
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.tab):
		if m.view == PendingView {
			m.view = CatalogView
		} else {
			m.view = PendingView
		}
		return m, nil

	case key.Matches(msg, m.keys.reload):
		m.gen++
		m.settled = make(map[int64]string)
		if m.view == PendingView {
			return m, m.loadPending()
		}
		return m, m.loadCatalog()

	case key.Matches(msg, m.keys.approve):
		if m.view == PendingView {
			if s, ok := m.selectedSuggestion(); ok {
				return m, m.decide(s.RemoteID, models.ActionApprove)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.reject):
		if m.view == PendingView {
			if s, ok := m.selectedSuggestion(); ok {
				return m, m.decide(s.RemoteID, models.ActionReject)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.del):
		if m.view == CatalogView {
			if mu, ok := m.selectedMusic(); ok {
				return m, m.deleteMusic(mu.RemoteID)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.open):
		url := ""
		if m.view == PendingView {
			if s, ok := m.selectedSuggestion(); ok {
				url = s.YouTubeURL
			}
		} else if mu, ok := m.selectedMusic(); ok {
			url = mu.YouTubeURL
		}
		if url != "" {
			return m, func() tea.Msg {
				return browserOpenedMsg{err: shared.OpenBrowser(url)}
			}
		}
		return m, nil
	}

	return m.updateLists(msg)
}

func (m *Model) selectedSuggestion() (models.Suggestion, bool) {
	if !m.pendingReady {
		return models.Suggestion{}, false
	}
	if item, ok := m.pendingList.SelectedItem().(suggestionItem); ok {
		return item.suggestion, true
	}
	return models.Suggestion{}, false
}

func (m *Model) selectedMusic() (models.Music, bool) {
	if !m.catalogReady {
		return models.Music{}, false
	}
	if item, ok := m.catalogList.SelectedItem().(musicItem); ok {
		return item.music, true
	}
	return models.Music{}, false
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PendingView:
		if m.pendingReady {
			m.pendingList, cmd = m.pendingList.Update(msg)
		}
	case CatalogView:
		if m.catalogReady {
			m.catalogList, cmd = m.catalogList.Update(msg)
		}
	}
	return m, cmd
}

func (m *Model) loadPending() tea.Cmd {
	gen := m.gen
	return func() tea.Msg {
		suggestions, err := m.moderation.LoadPending(m.ctx)
		return pendingLoadedMsg{gen: gen, suggestions: suggestions, err: err}
	}
}

func (m *Model) loadCatalog() tea.Cmd {
	gen := m.gen
	return func() tea.Msg {
		musics, err := m.catalog.LoadAll(m.ctx)
		return catalogLoadedMsg{gen: gen, musics: musics, err: err}
	}
}

func (m *Model) decide(id int64, action string) tea.Cmd {
	label := "aprovando..."
	if action == models.ActionReject {
		label = "reprovando..."
	}
	m.markPendingRow(id, label)

	gen := m.gen
	return func() tea.Msg {
		var err error
		if action == models.ActionApprove {
			err = m.moderation.Approve(m.ctx, id)
		} else {
			err = m.moderation.Reject(m.ctx, id)
		}
		return decisionDoneMsg{gen: gen, id: id, action: action, err: err}
	}
}

func (m *Model) deleteMusic(id int64) tea.Cmd {
	m.markCatalogRow(id, "removendo...")

	gen := m.gen
	return func() tea.Msg {
		err := m.catalog.Delete(m.ctx, id)
		return deleteDoneMsg{gen: gen, id: id, err: err}
	}
}

func (m *Model) expireSettledRow(id int64) tea.Cmd {
	gen := m.gen
	return tea.Tick(settledRowDelay, func(time.Time) tea.Msg {
		return settledRowExpiredMsg{gen: gen, id: id}
	})
}

// markPendingRow updates the status label shown on a pending row in place.
func (m *Model) markPendingRow(id int64, label string) {
	if !m.pendingReady {
		return
	}
	for i, item := range m.pendingList.Items() {
		if s, ok := item.(suggestionItem); ok && s.suggestion.RemoteID == id {
			s.status = label
			m.pendingList.SetItem(i, s)
			return
		}
	}
}

// markCatalogRow updates the status label shown on a catalog row in place.
func (m *Model) markCatalogRow(id int64, label string) {
	if !m.catalogReady {
		return
	}
	for i, item := range m.catalogList.Items() {
		if mu, ok := item.(musicItem); ok && mu.music.RemoteID == id {
			mu.status = label
			m.catalogList.SetItem(i, mu)
			return
		}
	}
}

// rebuildLists re-derives the list rows from the engine caches once settled
// rows have expired.
func (m *Model) rebuildLists() {
	if m.pendingReady {
		pending := m.moderation.Pending()
		items := make([]list.Item, 0, len(pending))
		for _, s := range pending {
			item := suggestionItem{suggestion: s}
			if label, ok := m.settled[s.RemoteID]; ok {
				item.status = label
			}
			items = append(items, item)
		}
		m.pendingList.SetItems(items)
	}

	if m.catalogReady {
		entries := m.catalog.Entries()
		items := make([]list.Item, 0, len(entries))
		for _, mu := range entries {
			item := musicItem{music: mu}
			if label, ok := m.settled[mu.RemoteID]; ok {
				item.status = label
			}
			items = append(items, item)
		}
		m.catalogList.SetItems(items)
	}
}

func (m *Model) describeError(err error) string {
	switch {
	case errors.Is(err, shared.ErrOperationInFlight):
		return "operação já em andamento para este item"
	case errors.Is(err, shared.ErrSessionExpired):
		return "sessão expirada, faça login novamente"
	case errors.Is(err, shared.ErrNotAdmin):
		return "apenas administradores podem moderar"
	default:
		return fmt.Sprintf("falha na operação: %v", err)
	}
}
