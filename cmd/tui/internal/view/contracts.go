package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

// ContractsModel lists the contracts of one contributor.
type ContractsModel struct {
	CommonModel
	repo        contract.Repository
	contributor scope.Contributor

	table   table.Model
	items   []*contract.Contract
	loading bool
	err     error
}

func NewContractsModel(repo contract.Repository, c scope.Contributor) ContractsModel {
	return ContractsModel{
		repo:        repo,
		contributor: c,
		loading:     true,
		table: newTable([]table.Column{
			{Title: "Project", Width: 30},
			{Title: "Role", Width: 6},
			{Title: "Hourly rate", Width: 12},
			{Title: "Removal", Width: 12},
		}),
	}
}

func (m ContractsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ContractsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadContractsMsg:
		m.loading = false
		m.err = msg.err
		m.items = msg.items
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
		case "t":
			c := m.contributor
			return m, func() tea.Msg { return OpenTasksMsg{Contributor: c} }
		case "enter":
			if selected := m.selected(); selected != nil {
				id := selected.ID
				return m, func() tea.Msg { return OpenInvoicesMsg{Contract: id} }
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ContractsModel) View() string {
	if m.loading {
		return "Loading contracts..."
	}

	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err)
	}

	header := fmt.Sprintf("Contracts of %s (%d)", activeStyle(m.contributor.String()), len(m.items))

	return framed(header, m.table, "Enter: invoices | t: tasks | r: refresh | Esc: back")
}

func (m ContractsModel) selected() *contract.Contract {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	return m.items[idx]
}

func (m *ContractsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, c := range m.items {
		removal := ""
		if c.MarkedForRemoval != nil {
			removal = FormatDate(*c.MarkedForRemoval)
		}

		rows = append(rows, table.Row{
			c.Project().String(),
			c.ID.Role,
			FormatMoney(c.HourlyRate),
			removal,
		})
	}

	m.table.SetRows(rows)
}

type loadContractsMsg struct {
	items []*contract.Contract
	err   error
}

func (m ContractsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		items, err := scope.Collect(contract.NewContributorContracts(m.repo, m.contributor).All(ctx))

		return loadContractsMsg{items: items, err: err}
	}
}
