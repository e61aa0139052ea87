package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// ContributorSelectedMsg is sent once the contributor form is submitted.
type ContributorSelectedMsg struct {
	Contributor scope.Contributor
}

type OpenInvoicesMsg struct {
	Contract contract.ID
}

type OpenTasksMsg struct {
	Contributor scope.Contributor
}
