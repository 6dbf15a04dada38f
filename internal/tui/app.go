package tui

import (
	"fmt"
	"strings"
	"time"

	"cyclet/internal/dateutil"
	"cyclet/internal/store"
	"cyclet/internal/tracker"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type uiState int

const (
	stateMenu uiState = iota
	stateForm
	stateOutput
)

type menuAction int

const (
	actionViewCycles menuAction = iota
	actionAddCycle
	actionDeleteCycle
	actionUndo
	actionRedo
	actionPredict
	actionLogDay
	actionViewLogs
	actionViewReminders
	actionAddReminder
	actionViewStats
	actionQuit
)

type menuItem struct {
	title  string
	desc   string
	action menuAction
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

type formField struct {
	label string
	input textinput.Model
}

type appModel struct {
	store   store.Store
	db      *store.DB
	session *tracker.Tracker

	state  uiState
	menu   list.Model
	fields []formField
	focus  int
	action menuAction

	outTitle string
	outBody  string
	errMsg   string

	width  int
	height int
}

func newAppModel(s store.Store, db *store.DB) appModel {
	items := []list.Item{
		menuItem{"View cycles", "Recorded cycles in chronological order", actionViewCycles},
		menuItem{"Add cycle", "Record a start and end date", actionAddCycle},
		menuItem{"Delete cycle", "Remove a cycle by start date", actionDeleteCycle},
		menuItem{"Undo", "Reverse the last ledger change", actionUndo},
		menuItem{"Redo", "Re-apply the last undone change", actionRedo},
		menuItem{"Predict", "Next expected start and days until", actionPredict},
		menuItem{"Log day", "Symptoms and mood for a date", actionLogDay},
		menuItem{"View logs", "Daily logs sorted by date", actionViewLogs},
		menuItem{"Reminders", "Upcoming reminders", actionViewReminders},
		menuItem{"Add reminder", "Manual reminder on a date", actionAddReminder},
		menuItem{"Stats", "Duration and spacing summary", actionViewStats},
		menuItem{"Quit", "", actionQuit},
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "cyclet"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle

	return appModel{
		store:   s,
		db:      db,
		session: tracker.New(db.Cycles, db.Undo, db.Redo, db.Reminders),
		state:   stateMenu,
		menu:    l,
	}
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.menu.SetSize(msg.Width, msg.Height-2)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state {
		case stateMenu:
			return m.updateMenu(msg)
		case stateForm:
			return m.updateForm(msg)
		case stateOutput:
			// Any key returns to the menu.
			m.state = stateMenu
			m.errMsg = ""
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m appModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		it, ok := m.menu.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}
		return m.dispatch(it.action)
	}
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m appModel) dispatch(action menuAction) (tea.Model, tea.Cmd) {
	switch action {
	case actionQuit:
		return m, tea.Quit
	case actionViewCycles:
		return m.showOutput("Cycles", renderCycles(m.session.Ledger)), nil
	case actionViewLogs:
		return m.showOutput("Daily logs", renderLogs(m.db.LogsByDate())), nil
	case actionViewReminders:
		out := m.session.Reminders.Upcoming(time.Now().UTC(), 0)
		return m.showOutput("Reminders", renderReminders(out)), nil
	case actionViewStats:
		return m.showOutput("Stats", renderStats(m.session.Ledger.Stats())), nil
	case actionPredict:
		return m.showOutput("Prediction", renderPrediction(m.session.Ledger)), nil
	case actionUndo:
		return m.mutate(action, nil), nil
	case actionRedo:
		return m.mutate(action, nil), nil
	case actionAddCycle:
		return m.startForm(action, "Start date (YYYY-MM-DD)", "End date (YYYY-MM-DD)"), nil
	case actionDeleteCycle:
		return m.startForm(action, "Start date (YYYY-MM-DD)"), nil
	case actionLogDay:
		return m.startForm(action, "Date (YYYY-MM-DD)", "Symptoms", "Mood"), nil
	case actionAddReminder:
		return m.startForm(action, "Date (YYYY-MM-DD)", "Message"), nil
	}
	return m, nil
}

func (m appModel) startForm(action menuAction, labels ...string) appModel {
	m.fields = make([]formField, len(labels))
	for i, lbl := range labels {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 120
		if i == 0 {
			ti.Focus()
		}
		m.fields[i] = formField{label: lbl, input: ti}
	}
	m.focus = 0
	m.action = action
	m.state = stateForm
	m.errMsg = ""
	return m
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateMenu
		m.errMsg = ""
		return m, nil
	case "tab", "down":
		return m.moveFocus(1), nil
	case "shift+tab", "up":
		return m.moveFocus(-1), nil
	case "enter":
		if m.focus < len(m.fields)-1 {
			return m.moveFocus(1), nil
		}
		return m.submitForm(), nil
	}

	var cmd tea.Cmd
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	return m, cmd
}

func (m appModel) moveFocus(delta int) appModel {
	m.fields[m.focus].input.Blur()
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	m.fields[m.focus].input.Focus()
	return m
}

func (m appModel) submitForm() appModel {
	values := make([]string, len(m.fields))
	for i := range m.fields {
		values[i] = strings.TrimSpace(m.fields[i].input.Value())
	}
	return m.mutate(m.action, values)
}

// mutate runs a state-changing action against the session and persists the
// result immediately, so a killed TUI never loses an applied change.
func (m appModel) mutate(action menuAction, values []string) appModel {
	var body string
	var err error

	switch action {
	case actionAddCycle:
		c, e := m.session.AddCycle(values[0], values[1])
		body, err = fmt.Sprintf("Recorded %s to %s (spacing %d days)", c.StartDate, c.EndDate, c.SpacingDays), e
	case actionDeleteCycle:
		c, e := m.session.DeleteCycle(values[0])
		body, err = fmt.Sprintf("Deleted cycle starting %s", c.StartDate), e
	case actionUndo:
		act, e := m.session.Undo()
		body, err = fmt.Sprintf("Undid %s of %s", act.Kind, act.Record.StartDate), e
	case actionRedo:
		act, e := m.session.Redo()
		body, err = fmt.Sprintf("Redid %s of %s", act.Kind, act.Record.StartDate), e
	case actionLogDay:
		if values[1] == "" && values[2] == "" {
			return m.showError(fmt.Errorf("nothing to log"))
		}
		if _, e := dateutil.ParseDate(values[0]); e != nil {
			return m.showError(e)
		}
		entry := m.db.LogDay(values[0], values[1], values[2])
		body = fmt.Sprintf("Logged %s: %s / %s", entry.Date, entry.Symptoms, entry.Mood)
	case actionAddReminder:
		when, e := dateutil.ParseDate(values[0])
		if e != nil {
			return m.showError(e)
		}
		if values[1] == "" {
			return m.showError(fmt.Errorf("missing message"))
		}
		r := m.session.Reminders.AddManual(when, values[1])
		body = fmt.Sprintf("Reminder on %s: %s", r.When.Format("2006-01-02"), r.Message)
	}
	if err != nil {
		return m.showError(err)
	}

	m.db.Cycles = m.session.Ledger.Records()
	m.db.Undo = m.session.History.UndoStack()
	m.db.Redo = m.session.History.RedoStack()
	m.db.Reminders = m.session.Reminders.Manual()
	if err := m.store.Save(m.db); err != nil {
		return m.showError(err)
	}
	return m.showOutput("Done", body)
}

func (m appModel) showOutput(title, body string) appModel {
	m.outTitle = title
	m.outBody = body
	m.errMsg = ""
	m.state = stateOutput
	return m
}

func (m appModel) showError(err error) appModel {
	m.errMsg = err.Error()
	m.outTitle = "Error"
	m.outBody = ""
	m.state = stateOutput
	return m
}

func (m appModel) View() string {
	switch m.state {
	case stateForm:
		return m.viewForm()
	case stateOutput:
		return m.viewOutput()
	default:
		return m.menu.View()
	}
}

func (m appModel) viewForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("cyclet") + "\n\n")
	for i := range m.fields {
		b.WriteString(labelStyle.Render(m.fields[i].label) + "\n")
		b.WriteString(m.fields[i].input.View() + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter: next/submit · esc: back"))
	return b.String()
}

func (m appModel) viewOutput() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.outTitle) + "\n\n")
	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg) + "\n")
	} else {
		b.WriteString(m.outBody + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("any key: back"))
	return b.String()
}
