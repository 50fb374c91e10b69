package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fikus/internal/config"
	"fikus/internal/manager"
	"fikus/internal/reconcile"
	"fikus/internal/store"
	"fikus/internal/worker"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type viewMode int

const (
	viewNormal viewMode = iota
	viewSearch
	viewInfo
	viewConfirm
	viewPassword
)

const (
	bookmarksTab = "Bookmarks"
	searchTab    = "Search"
)

type tab struct {
	name  string
	names []string
}

type pendingOp struct {
	intent manager.Intent
	pkg    string
}

type Model struct {
	svc    *store.Service
	cfg    *config.Config
	bridge *Bridge
	keys   keyMap

	width  int
	height int
	cursor int
	scroll int // scroll offset for viewport
	active int
	tabs   []tab

	viewMode      viewMode
	searchInput   textinput.Model
	passwordInput textinput.Model

	states  map[string]bool
	busy    map[string]bool
	pending pendingOp

	infoText  string
	statusMsg string
	statusErr bool
	searching bool
}

func NewModel(svc *store.Service, cfg *config.Config, bridge *Bridge) Model {
	si := textinput.New()
	si.Placeholder = "Search packages..."
	si.CharLimit = 100

	pi := textinput.New()
	pi.Placeholder = "sudo password"
	pi.EchoMode = textinput.EchoPassword
	pi.EchoCharacter = '•'
	pi.CharLimit = 256

	tabs := []tab{{name: bookmarksTab, names: append([]string(nil), cfg.Packages...)}}
	for _, c := range cfg.Catalog() {
		tabs = append(tabs, tab{name: c.Name, names: c.Names()})
	}
	tabs = append(tabs, tab{name: searchTab})

	return Model{
		svc:           svc,
		cfg:           cfg,
		bridge:        bridge,
		keys:          defaultKeyMap(),
		tabs:          tabs,
		searchInput:   si,
		passwordInput: pi,
		states:        make(map[string]bool),
		busy:          make(map[string]bool),
	}
}

// Run starts the catalog and blocks until the user quits.
func Run(svc *store.Service, cfg *config.Config, bridge *Bridge) error {
	p := tea.NewProgram(NewModel(svc, cfg, bridge), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.bridge.listen(), m.resolveStates(m.visibleItems()))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case statesMsg:
		for name, installed := range msg.states {
			m.states[name] = installed
		}
		return m, nil

	case searchResultsMsg:
		m.searching = false
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Error searching for packages: %v", msg.err), true)
			return m, nil
		}
		idx := m.tabIndex(searchTab)
		m.tabs[idx].names = msg.names
		m.selectTab(idx)
		if len(msg.names) == 0 {
			m.setStatus("No packages found.", false)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("%d packages match %q", len(msg.names), msg.query), false)
		return m, m.resolveStates(msg.names)

	case packageInfoMsg:
		if m.viewMode == viewInfo && msg.pkg == m.pending.pkg {
			m.infoText = msg.info
		}
		return m, nil

	case operationDoneMsg:
		ev := msg.event
		delete(m.busy, busyKey(ev.Intent, ev.Target))
		if ev.Result.Outcome == manager.OutcomeAborted {
			m.setStatus("Cancelled.", false)
		}
		return m, nil

	case notifyMsg:
		m.setStatus(msg.note.Message, msg.note.Severity == reconcile.SeverityError)
		return m, m.bridge.listen()

	case refreshMsg:
		clear(m.states)
		return m, tea.Batch(m.bridge.listen(), m.resolveStates(m.visibleItems()))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case viewSearch:
		return m.handleSearchKey(msg)
	case viewInfo:
		return m.handleInfoKey(msg)
	case viewConfirm:
		return m.handleConfirmKey(msg)
	case viewPassword:
		return m.handlePasswordKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visibleItems())-1 {
			m.cursor++
			m.ensureCursorVisible()
		}

	case key.Matches(msg, m.keys.NextTab):
		m.selectTab((m.active + 1) % len(m.tabs))
		return m, m.resolveStates(m.unresolved())

	case key.Matches(msg, m.keys.PrevTab):
		m.selectTab((m.active + len(m.tabs) - 1) % len(m.tabs))
		return m, m.resolveStates(m.unresolved())

	case key.Matches(msg, m.keys.Search):
		m.viewMode = viewSearch
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Info):
		if pkg, ok := m.selected(); ok {
			m.viewMode = viewInfo
			m.pending = pendingOp{pkg: pkg}
			m.infoText = "Loading..."
			return m, m.fetchInfo(pkg)
		}

	case key.Matches(msg, m.keys.Install):
		if pkg, ok := m.selected(); ok && !m.states[pkg] {
			m.confirm(manager.Install, pkg)
		}

	case key.Matches(msg, m.keys.Remove):
		if pkg, ok := m.selected(); ok && m.states[pkg] {
			m.confirm(manager.Remove, pkg)
		}

	case key.Matches(msg, m.keys.Upgrade):
		m.confirm(manager.FullUpgrade, "")

	case key.Matches(msg, m.keys.Bookmark):
		if pkg, ok := m.selected(); ok {
			m.toggleBookmark(pkg)
		}

	case key.Matches(msg, m.keys.Switch):
		if len(m.busy) > 0 {
			m.setStatus("Wait for running operations before switching manager.", true)
			return m, nil
		}
		sel := m.svc.Selection().Toggle()
		m.svc.SetSelection(sel)
		m.cfg.UseAlternate = sel == manager.Alternate
		if err := m.cfg.Save(); err != nil {
			m.setStatus(fmt.Sprintf("Could not save settings: %v", err), true)
		} else {
			m.setStatus(fmt.Sprintf("Using %s", m.managerName()), false)
		}
		clear(m.states)
		return m, m.resolveStates(m.visibleItems())

	case key.Matches(msg, m.keys.Refresh):
		m.svc.Invalidate()
		clear(m.states)
		return m, m.resolveStates(m.visibleItems())
	}

	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = viewNormal
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		return m, nil

	case "enter":
		query := strings.TrimSpace(m.searchInput.Value())
		m.viewMode = viewNormal
		m.searchInput.Blur()
		if query == "" {
			m.tabs[m.tabIndex(searchTab)].names = nil
			return m, nil
		}
		m.searching = true
		return m, m.searchPackages(query)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) handleInfoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pkg := m.pending.pkg
	switch {
	case key.Matches(msg, m.keys.Install):
		if !m.states[pkg] {
			m.confirm(manager.Install, pkg)
		}
	case key.Matches(msg, m.keys.Remove):
		if m.states[pkg] {
			m.confirm(manager.Remove, pkg)
		}
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Info), key.Matches(msg, m.keys.Quit):
		m.viewMode = viewNormal
		m.infoText = ""
	}
	return m, nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		if m.svc.NeedsCredential(m.pending.intent) {
			m.viewMode = viewPassword
			m.passwordInput.SetValue("")
			m.passwordInput.Focus()
			return m, textinput.Blink
		}
		return m, m.submit("")

	case key.Matches(msg, m.keys.Cancel):
		m.viewMode = viewNormal
		m.pending = pendingOp{}
	}
	return m, nil
}

func (m *Model) handlePasswordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		cred := manager.Credential(m.passwordInput.Value())
		m.passwordInput.SetValue("")
		m.passwordInput.Blur()
		return m, m.submit(cred)

	case "esc":
		// Dismissing the prompt submits no credential; the worker reports it
		// as aborted without starting anything.
		m.passwordInput.SetValue("")
		m.passwordInput.Blur()
		return m, m.submit("")
	}

	var cmd tea.Cmd
	m.passwordInput, cmd = m.passwordInput.Update(msg)
	return m, cmd
}

func (m *Model) confirm(intent manager.Intent, pkg string) {
	if m.busy[busyKey(intent, pkg)] {
		m.setStatus(fmt.Sprintf("%s is already in progress.", describe(intent, pkg)), true)
		return
	}
	m.pending = pendingOp{intent: intent, pkg: pkg}
	m.viewMode = viewConfirm
}

func (m *Model) submit(cred manager.Credential) tea.Cmd {
	op := m.pending
	m.pending = pendingOp{}
	m.viewMode = viewNormal

	ctx := context.Background()
	var (
		events <-chan reconcile.Event
		err    error
	)
	switch op.intent {
	case manager.Install:
		events, err = m.svc.SubmitInstall(ctx, op.pkg, cred)
	case manager.Remove:
		events, err = m.svc.SubmitRemove(ctx, op.pkg, cred)
	case manager.FullUpgrade:
		events, err = m.svc.SubmitUpgrade(ctx, cred)
	default:
		return nil
	}
	if err != nil {
		if errors.Is(err, worker.ErrInFlight) {
			m.setStatus(fmt.Sprintf("%s is already in progress.", describe(op.intent, op.pkg)), true)
		} else {
			m.setStatus(err.Error(), true)
		}
		return nil
	}

	if !cred.Empty() || !m.svc.NeedsCredential(op.intent) {
		m.busy[busyKey(op.intent, op.pkg)] = true
		m.setStatus(describe(op.intent, op.pkg)+"...", false)
	}
	return waitForEvent(events)
}

func waitForEvent(events <-chan reconcile.Event) tea.Cmd {
	return func() tea.Msg {
		return operationDoneMsg{event: <-events}
	}
}

func (m Model) resolveStates(names []string) tea.Cmd {
	if len(names) == 0 {
		return nil
	}
	svc := m.svc
	names = append([]string(nil), names...)
	return func() tea.Msg {
		return statesMsg{states: svc.States(context.Background(), names)}
	}
}

func (m Model) searchPackages(query string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		names, err := svc.Search(context.Background(), query)
		return searchResultsMsg{query: query, names: names, err: err}
	}
}

func (m Model) fetchInfo(pkg string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return packageInfoMsg{pkg: pkg, info: svc.Info(context.Background(), pkg)}
	}
}

func (m *Model) toggleBookmark(pkg string) {
	bookmarked := m.cfg.ToggleBookmark(pkg)
	if err := m.cfg.Save(); err != nil {
		m.setStatus(fmt.Sprintf("Could not save bookmarks: %v", err), true)
	} else if bookmarked {
		m.setStatus(fmt.Sprintf("Bookmarked %s", pkg), false)
	} else {
		m.setStatus(fmt.Sprintf("Removed bookmark for %s", pkg), false)
	}
	m.tabs[m.tabIndex(bookmarksTab)].names = append([]string(nil), m.cfg.Packages...)
	if m.tabs[m.active].name == bookmarksTab && m.cursor >= len(m.visibleItems()) && m.cursor > 0 {
		m.cursor--
		m.ensureCursorVisible()
	}
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusErr = isErr
}

func (m *Model) selectTab(idx int) {
	m.active = idx
	m.cursor = 0
	m.scroll = 0
}

func (m Model) tabIndex(name string) int {
	for i, t := range m.tabs {
		if t.name == name {
			return i
		}
	}
	return 0
}

func (m Model) visibleItems() []string {
	return m.tabs[m.active].names
}

func (m Model) selected() (string, bool) {
	items := m.visibleItems()
	if len(items) == 0 || m.cursor >= len(items) {
		return "", false
	}
	return items[m.cursor], true
}

// unresolved lists the visible names whose state is not known yet.
func (m Model) unresolved() []string {
	var names []string
	for _, name := range m.visibleItems() {
		if _, ok := m.states[name]; !ok {
			names = append(names, name)
		}
	}
	return names
}

func (m Model) managerName() string {
	if m.svc.Selection() == manager.Alternate {
		return m.cfg.Alternate
	}
	return m.cfg.Primary
}

func busyKey(intent manager.Intent, pkg string) string {
	if intent == manager.FullUpgrade {
		return worker.UpgradeTarget
	}
	return pkg
}

func describe(intent manager.Intent, pkg string) string {
	switch intent {
	case manager.Install:
		return "Installing " + pkg
	case manager.Remove:
		return "Removing " + pkg
	case manager.FullUpgrade:
		return "System update"
	}
	return intent.String() + " " + pkg
}

// maxVisibleItems is the row budget left after the fixed chrome.
func (m Model) maxVisibleItems() int {
	overhead := 12
	available := m.height - overhead
	if available < 1 {
		return 1
	}
	return available
}

func (m *Model) ensureCursorVisible() {
	maxVisible := m.maxVisibleItems()

	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+maxVisible {
		m.scroll = m.cursor - maxVisible + 1
	}
}

func (m Model) View() string {
	var b strings.Builder

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("Fikus Store"),
		managerStyle.Render(fmt.Sprintf("[%s]", m.managerName())),
	)
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(min(m.width, 80), 20)))
	b.WriteString("\n")

	switch {
	case m.viewMode == viewSearch:
		b.WriteString(searchStyle.Render("Search: "))
		b.WriteString(m.searchInput.View())
	case m.searching:
		b.WriteString(dimStyle.Render("Searching..."))
	default:
		b.WriteString(dimStyle.Render("Press / to search"))
	}
	b.WriteString("\n")

	items := m.visibleItems()
	maxVisible := m.maxVisibleItems()
	b.WriteString(headerStyle.Render(strings.ToUpper(m.tabs[m.active].name)))
	if len(items) > maxVisible {
		b.WriteString(dimStyle.Render(fmt.Sprintf(" (%d-%d of %d)", m.scroll+1, min(m.scroll+maxVisible, len(items)), len(items))))
	}
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(dimStyle.Render("  Nothing here yet."))
		b.WriteString("\n")
	}
	m.renderItemsViewport(&b, items, maxVisible)

	if m.statusMsg != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(errorStyle.Render(truncate(m.statusMsg, 200)))
		} else {
			b.WriteString(successStyle.Render(truncate(m.statusMsg, 200)))
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/k up  ↓/j down  tab switch  i install  u remove  U update system"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Enter info  / search  b bookmark  m pacman/yay  r refresh  q quit"))

	switch m.viewMode {
	case viewInfo:
		return m.renderWithModal(b.String(), "Package Info: "+m.pending.pkg, m.infoText+"\n\n[i] Install  [u] Remove")
	case viewConfirm:
		msg := fmt.Sprintf("%s?\n\n[y] Yes  [n] No", describe(m.pending.intent, m.pending.pkg))
		return m.renderWithModal(b.String(), "Confirm", msg)
	case viewPassword:
		msg := "Enter your sudo password:\n\n" + m.passwordInput.View()
		return m.renderWithModal(b.String(), "Enter Password", msg)
	}

	return b.String()
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.active {
			parts = append(parts, activeTabStyle.Render(t.name))
		} else {
			parts = append(parts, tabStyle.Render(t.name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderItemsViewport(b *strings.Builder, items []string, maxItems int) {
	rendered := 0
	for i, name := range items {
		if i < m.scroll {
			continue
		}
		if rendered >= maxItems {
			break
		}

		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}

		bullet := " "
		if m.cfg.IsBookmarked(name) {
			bullet = bookmarkStyle.Render("●")
		}

		label := normalStyle.Render(name)
		if i == m.cursor {
			label = selectedStyle.Render(name)
		}

		installed, known := m.states[name]
		status := notInstalledStyle.Render("[ ]")
		switch {
		case m.busy[name]:
			status = busyStyle.Render("[…]")
		case !known:
			status = dimStyle.Render("[?]")
		case installed:
			status = installedStyle.Render("[✓]")
		}

		fmt.Fprintf(b, "%s%s %s %s\n", prefix, bullet, status, label)
		rendered++
	}
}

func (m Model) renderWithModal(bg, title, content string) string {
	lines := strings.Split(bg, "\n")

	modalContent := fmt.Sprintf("%s\n\n%s\n\n%s",
		titleStyle.Render(title),
		content,
		dimStyle.Render("Press Esc to close"),
	)
	modal := modalStyle.Render(modalContent)
	modalLines := strings.Split(modal, "\n")

	startY := (len(lines) - len(modalLines)) / 2
	if startY < 0 {
		startY = 0
	}

	for i, mLine := range modalLines {
		lineIdx := startY + i
		if lineIdx < len(lines) {
			lines[lineIdx] = mLine
		} else {
			lines = append(lines, mLine)
		}
	}

	return strings.Join(lines, "\n")
}

// truncate flattens s to one line of at most n runes.
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
