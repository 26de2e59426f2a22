package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type LoginModel struct {
	Session  *Session
	Inputs   []textinput.Model
	FocusIdx int
	Err      error
}

const (
	inputHost = iota
	inputPort
	inputUsername
	inputPassword
)

func NewLoginModel(s *Session) LoginModel {
	inputs := make([]textinput.Model, 4)

	inputs[inputHost] = textinput.New()
	inputs[inputHost].Placeholder = "127.0.0.1"
	inputs[inputHost].Focus()
	inputs[inputHost].Prompt = "Host: "
	inputs[inputHost].SetValue("127.0.0.1")

	inputs[inputPort] = textinput.New()
	inputs[inputPort].Placeholder = "9400"
	inputs[inputPort].Prompt = "Port: "
	inputs[inputPort].SetValue("9400")

	inputs[inputUsername] = textinput.New()
	inputs[inputUsername].Placeholder = "parent"
	inputs[inputUsername].Prompt = "Username: "

	inputs[inputPassword] = textinput.New()
	inputs[inputPassword].Placeholder = "password"
	inputs[inputPassword].EchoMode = textinput.EchoPassword
	inputs[inputPassword].Prompt = "Password: "

	return LoginModel{Session: s, Inputs: inputs}
}

func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.Inputs))

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			if m.FocusIdx == len(m.Inputs)-1 {
				return m, m.loginCmd()
			}
			m.nextInput()
		case tea.KeyTab, tea.KeyDown:
			m.nextInput()
		case tea.KeyShiftTab, tea.KeyUp:
			m.prevInput()
		}
	case LoginDoneMsg:
		m.Err = msg.Err
	}

	for i := range m.Inputs {
		m.Inputs[i], cmds[i] = m.Inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m *LoginModel) nextInput() {
	m.FocusIdx = (m.FocusIdx + 1) % len(m.Inputs)
	m.updateFocus()
}

func (m *LoginModel) prevInput() {
	m.FocusIdx--
	if m.FocusIdx < 0 {
		m.FocusIdx = len(m.Inputs) - 1
	}
	m.updateFocus()
}

func (m *LoginModel) updateFocus() {
	for i := range m.Inputs {
		if i == m.FocusIdx {
			m.Inputs[i].Focus()
			m.Inputs[i].PromptStyle = focusedStyle
			continue
		}
		m.Inputs[i].Blur()
		m.Inputs[i].PromptStyle = noStyle
	}
}

func (m LoginModel) loginCmd() tea.Cmd {
	host := m.Inputs[inputHost].Value()
	port, err := strconv.Atoi(m.Inputs[inputPort].Value())
	username := m.Inputs[inputUsername].Value()
	password := m.Inputs[inputPassword].Value()
	return func() tea.Msg {
		if err != nil {
			return LoginDoneMsg{Err: err}
		}
		return LoginDoneMsg{Err: m.Session.Login(host, port, username, password)}
	}
}

func (m LoginModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SafeSurf — Parent Dashboard"))
	b.WriteString("\n\n")
	for i := range m.Inputs {
		b.WriteString(m.Inputs[i].View())
		b.WriteRune('\n')
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle("login failed: "+m.Err.Error()) + "\n")
	}
	b.WriteString("\n" + blurredStyle.Render("enter to submit, tab to move, ctrl+c to quit"))
	return docStyle.Render(b.String())
}
