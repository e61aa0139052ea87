package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/paidwork/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/paidwork/internal/config"
	"github.com/MrJamesThe3rd/paidwork/internal/storage"
	"github.com/MrJamesThe3rd/paidwork/internal/wallet"
)

type model struct {
	repos  *storage.Repositories
	wallet *wallet.Fake

	currentView View

	contributorView view.ContributorModel
	contractsView   view.ContractsModel
	invoicesView    view.InvoicesModel
	tasksView       view.TasksModel
}

type View int

const (
	ViewContributor View = 0
	ViewContracts   View = 1
	ViewInvoices    View = 2
	ViewTasks       View = 3
)

func initialModel(repos *storage.Repositories, w *wallet.Fake) model {
	return model{
		repos:           repos,
		wallet:          w,
		currentView:     ViewContributor,
		contributorView: view.NewContributorModel(),
	}
}

func (m model) Init() tea.Cmd {
	return m.contributorView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case view.ContributorSelectedMsg:
		m.currentView = ViewContracts
		m.contractsView = view.NewContractsModel(m.repos.Contracts, msg.Contributor)

		return m, m.contractsView.Init()
	case view.OpenInvoicesMsg:
		m.currentView = ViewInvoices
		m.invoicesView = view.NewInvoicesModel(m.repos.Invoices, m.wallet, msg.Contract)

		return m, m.invoicesView.Init()
	case view.OpenTasksMsg:
		m.currentView = ViewTasks
		m.tasksView = view.NewTasksModel(m.repos.Tasks, m.repos.Resignations, msg.Contributor)

		return m, m.tasksView.Init()
	case view.BackMsg:
		if m.currentView == ViewContracts {
			m.currentView = ViewContributor
			m.contributorView = view.NewContributorModel()

			return m, m.contributorView.Init()
		}

		m.currentView = ViewContracts

		return m, nil
	}

	switch m.currentView {
	case ViewContributor:
		var newModel tea.Model
		newModel, cmd = m.contributorView.Update(msg)
		m.contributorView = newModel.(view.ContributorModel)
	case ViewContracts:
		var newModel tea.Model
		newModel, cmd = m.contractsView.Update(msg)
		m.contractsView = newModel.(view.ContractsModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	case ViewTasks:
		var newModel tea.Model
		newModel, cmd = m.tasksView.Update(msg)
		m.tasksView = newModel.(view.TasksModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewContributor:
		return m.contributorView.View()
	case ViewContracts:
		return m.contractsView.View()
	case ViewInvoices:
		return m.invoicesView.View()
	case ViewTasks:
		return m.tasksView.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	repos, err := storage.Open(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer repos.Close()

	p := tea.NewProgram(initialModel(repos, wallet.NewFake(repos.Invoices, cfg.Wallet.CashLimit)))
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
