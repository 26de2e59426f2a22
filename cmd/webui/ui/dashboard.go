package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"safesurf/backend/app/dto"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type tab int

const (
	tabActivity tab = iota
	tabSettings
	tabWhitelist
	tabCount
)

const activityLimit = 100

type DashboardModel struct {
	Session *Session
	Tab     tab

	Table     table.Model
	Settings  *dto.SettingsResponse
	Whitelist []string
	WLCursor  int
	AddInput  textinput.Model
	Adding    bool

	// editing the restriction window
	TimeInputs  []textinput.Model
	TimeFocus   int
	EditingTime bool

	Status string
	Err    error
}

func NewDashboardModel(s *Session) DashboardModel {
	columns := []table.Column{
		{Title: "Time", Width: 19},
		{Title: "Reason", Width: 16},
		{Title: "URL", Width: 48},
	}
	t := table.New(table.WithColumns(columns), table.WithFocused(true), table.WithHeight(12))

	add := textinput.New()
	add.Placeholder = "example.com"
	add.Prompt = "Add domain: "

	times := make([]textinput.Model, 2)
	times[0] = textinput.New()
	times[0].Prompt = "Start: "
	times[0].CharLimit = 5
	times[1] = textinput.New()
	times[1].Prompt = "End: "
	times[1].CharLimit = 5

	return DashboardModel{Session: s, Table: t, AddInput: add, TimeInputs: times}
}

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.Session.LoadActivityCmd(activityLimit),
		m.Session.LoadSettingsCmd(),
		m.Session.LoadWhitelistCmd(),
	)
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ActivityLoadedMsg:
		if msg.Err != nil {
			m.Err = msg.Err
			return m, nil
		}
		rows := make([]table.Row, 0, len(msg.Logs))
		for _, l := range msg.Logs {
			rows = append(rows, table.Row{
				time.Unix(l.Timestamp, 0).Format("2006-01-02 15:04:05"),
				l.Reason,
				l.URL,
			})
		}
		m.Table.SetRows(rows)
		m.Err = nil
		return m, nil

	case SettingsLoadedMsg:
		if msg.Err != nil {
			m.Err = msg.Err
			return m, nil
		}
		m.Settings = msg.Settings
		m.TimeInputs[0].SetValue(msg.Settings.TimeRestriction.StartTime)
		m.TimeInputs[1].SetValue(msg.Settings.TimeRestriction.EndTime)
		m.Err = nil
		return m, nil

	case WhitelistLoadedMsg:
		if msg.Err != nil {
			m.Err = msg.Err
			return m, nil
		}
		m.Whitelist = msg.Whitelist.Sites
		if m.WLCursor >= len(m.Whitelist) {
			m.WLCursor = 0
		}
		m.Err = nil
		return m, nil

	case SavedMsg:
		if msg.Err != nil {
			m.Err = msg.Err
			m.Status = ""
			return m, nil
		}
		m.Err = nil
		m.Status = "saved"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m DashboardModel) handleKey(msg tea.KeyMsg) (DashboardModel, tea.Cmd) {
	if m.Adding {
		return m.handleAddKey(msg)
	}
	if m.EditingTime {
		return m.handleTimeKey(msg)
	}

	switch msg.String() {
	case "tab":
		m.Tab = (m.Tab + 1) % tabCount
		m.Status = ""
		return m, nil
	case "r":
		return m, m.Init()
	}

	switch m.Tab {
	case tabActivity:
		var cmd tea.Cmd
		m.Table, cmd = m.Table.Update(msg)
		return m, cmd
	case tabSettings:
		return m.handleSettingsKey(msg)
	case tabWhitelist:
		return m.handleWhitelistKey(msg)
	}
	return m, nil
}

func (m DashboardModel) handleSettingsKey(msg tea.KeyMsg) (DashboardModel, tea.Cmd) {
	if m.Settings == nil {
		return m, nil
	}
	switch msg.String() {
	case "e":
		m.Settings.Enabled = !m.Settings.Enabled
	case "b":
		m.Settings.AdBlocking = !m.Settings.AdBlocking
	case "t":
		m.Settings.TimeRestriction.Enabled = !m.Settings.TimeRestriction.Enabled
	case "w":
		m.EditingTime = true
		m.TimeFocus = 0
		m.TimeInputs[0].Focus()
	case "1", "2", "3", "4":
		names := sortedCategories(m.Settings.BlockedCategories)
		idx := int(msg.String()[0] - '1')
		if idx < len(names) {
			m.Settings.BlockedCategories[names[idx]] = !m.Settings.BlockedCategories[names[idx]]
		}
	case "s":
		return m, m.saveSettingsCmd()
	}
	return m, nil
}

func (m DashboardModel) handleTimeKey(msg tea.KeyMsg) (DashboardModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyTab:
		if m.TimeFocus == 0 {
			m.TimeFocus = 1
			m.TimeInputs[0].Blur()
			m.TimeInputs[1].Focus()
			return m, nil
		}
		m.EditingTime = false
		m.TimeInputs[1].Blur()
		m.Settings.TimeRestriction.StartTime = m.TimeInputs[0].Value()
		m.Settings.TimeRestriction.EndTime = m.TimeInputs[1].Value()
		return m, nil
	case tea.KeyEsc:
		m.EditingTime = false
		m.TimeInputs[m.TimeFocus].Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.TimeInputs[m.TimeFocus], cmd = m.TimeInputs[m.TimeFocus].Update(msg)
	return m, cmd
}

func (m DashboardModel) handleWhitelistKey(msg tea.KeyMsg) (DashboardModel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.WLCursor > 0 {
			m.WLCursor--
		}
	case "down", "j":
		if m.WLCursor < len(m.Whitelist)-1 {
			m.WLCursor++
		}
	case "a":
		m.Adding = true
		m.AddInput.SetValue("")
		m.AddInput.Focus()
	case "d":
		if len(m.Whitelist) > 0 {
			m.Whitelist = append(m.Whitelist[:m.WLCursor], m.Whitelist[m.WLCursor+1:]...)
			if m.WLCursor >= len(m.Whitelist) && m.WLCursor > 0 {
				m.WLCursor--
			}
		}
	case "s":
		return m, m.saveWhitelistCmd()
	}
	return m, nil
}

func (m DashboardModel) handleAddKey(msg tea.KeyMsg) (DashboardModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if v := strings.TrimSpace(m.AddInput.Value()); v != "" {
			m.Whitelist = append(m.Whitelist, v)
		}
		m.Adding = false
		m.AddInput.Blur()
		return m, nil
	case tea.KeyEsc:
		m.Adding = false
		m.AddInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.AddInput, cmd = m.AddInput.Update(msg)
	return m, cmd
}

func (m DashboardModel) saveSettingsCmd() tea.Cmd {
	req := dto.SettingsRequest{
		Enabled:           m.Settings.Enabled,
		AdBlocking:        m.Settings.AdBlocking,
		TimeRestriction:   m.Settings.TimeRestriction,
		BlockedCategories: m.Settings.BlockedCategories,
	}
	return func() tea.Msg {
		_, err := m.Session.PutSettings(req)
		return SavedMsg{Err: err}
	}
}

func (m DashboardModel) saveWhitelistCmd() tea.Cmd {
	sites := append([]string(nil), m.Whitelist...)
	return func() tea.Msg {
		_, err := m.Session.PutWhitelist(sites)
		return SavedMsg{Err: err}
	}
}

func sortedCategories(categories map[string]bool) []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m DashboardModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SafeSurf — Parent Dashboard"))
	b.WriteString("  ")
	for i, name := range []string{"Activity", "Settings", "Whitelist"} {
		if tab(i) == m.Tab {
			b.WriteString(activeTabStyle.Render("[" + name + "]"))
		} else {
			b.WriteString(blurredStyle.Render(" " + name + " "))
		}
	}
	b.WriteString("\n\n")

	switch m.Tab {
	case tabActivity:
		b.WriteString(m.Table.View())
		b.WriteString("\n" + blurredStyle.Render("r to refresh, tab to switch"))
	case tabSettings:
		b.WriteString(m.settingsView())
	case tabWhitelist:
		b.WriteString(m.whitelistView())
	}

	if m.Status != "" {
		b.WriteString("\n" + statusMessageStyle(m.Status))
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return docStyle.Render(b.String())
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (m DashboardModel) settingsView() string {
	if m.Settings == nil {
		return "loading settings..."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "(e) Filtering:        %s\n", onOff(m.Settings.Enabled))
	fmt.Fprintf(&b, "(b) Ad blocking:      %s\n", onOff(m.Settings.AdBlocking))
	fmt.Fprintf(&b, "(t) Time restriction: %s\n", onOff(m.Settings.TimeRestriction.Enabled))
	if m.EditingTime {
		b.WriteString("    " + m.TimeInputs[0].View() + "  " + m.TimeInputs[1].View() + "\n")
	} else {
		fmt.Fprintf(&b, "(w) Window:           %s - %s\n", m.Settings.TimeRestriction.StartTime, m.Settings.TimeRestriction.EndTime)
	}
	b.WriteString("Blocked categories:\n")
	for i, name := range sortedCategories(m.Settings.BlockedCategories) {
		fmt.Fprintf(&b, "(%d) %-12s %s\n", i+1, name, onOff(m.Settings.BlockedCategories[name]))
	}
	b.WriteString("\n" + blurredStyle.Render("s to save, tab to switch"))
	return b.String()
}

func (m DashboardModel) whitelistView() string {
	var b strings.Builder
	if len(m.Whitelist) == 0 {
		b.WriteString("whitelist is empty\n")
	}
	for i, d := range m.Whitelist {
		cursor := "  "
		if i == m.WLCursor {
			cursor = focusedStyle.Render("> ")
		}
		b.WriteString(cursor + d + "\n")
	}
	if m.Adding {
		b.WriteString("\n" + m.AddInput.View() + "\n")
	}
	b.WriteString("\n" + blurredStyle.Render("a add, d delete, s save, tab to switch"))
	return b.String()
}
