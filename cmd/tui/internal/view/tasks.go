package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/paidwork/internal/resignation"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
	"github.com/MrJamesThe3rd/paidwork/internal/task"
)

// TasksModel lists the tasks assigned to a contributor.
type TasksModel struct {
	CommonModel
	tasks        task.Repository
	resignations resignation.Repository
	contributor  scope.Contributor

	table    table.Model
	items    []*task.Task
	resigned int
	loading  bool
	err      error
}

func NewTasksModel(tasks task.Repository, resignations resignation.Repository, c scope.Contributor) TasksModel {
	return TasksModel{
		tasks:        tasks,
		resignations: resignations,
		contributor:  c,
		loading:      true,
		table: newTable([]table.Column{
			{Title: "Task", Width: 36},
			{Title: "Role", Width: 6},
			{Title: "Estimate", Width: 9},
			{Title: "Assigned", Width: 12},
			{Title: "Deadline", Width: 12},
		}),
	}
}

func (m TasksModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TasksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTasksMsg:
		m.loading = false
		m.err = msg.err
		m.items = msg.items
		m.resigned = msg.resigned
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TasksModel) View() string {
	if m.loading {
		return "Loading tasks..."
	}

	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err)
	}

	header := fmt.Sprintf("Tasks of %s (%d) | resignations: %s",
		activeStyle(m.contributor.String()), len(m.items), activeStyle(fmt.Sprint(m.resigned)))

	return framed(header, m.table, "r: refresh | Esc: back")
}

func (m *TasksModel) refreshTable() {
	now := time.Now()

	rows := make([]table.Row, 0, len(m.items))
	for _, t := range m.items {
		assigned, deadline := "", ""

		if a := t.Assignment; a != nil {
			assigned = FormatDate(a.AssignedAt)
			deadline = FormatDate(a.Deadline)

			if a.Deadline.Before(now) {
				deadline += " !"
			}
		}

		rows = append(rows, table.Row{t.ID.String(), t.Role, FormatEstimation(t.Estimation), assigned, deadline})
	}

	m.table.SetRows(rows)
}

type loadTasksMsg struct {
	items    []*task.Task
	resigned int
	err      error
}

func (m TasksModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		items, err := scope.Collect(task.NewContributorTasks(m.tasks, m.contributor).All(ctx))
		if err != nil {
			return loadTasksMsg{err: err}
		}

		resigned, err := resignation.NewContributorResignations(m.resignations, m.contributor).Count(ctx)

		return loadTasksMsg{items: items, resigned: resigned, err: err}
	}
}
