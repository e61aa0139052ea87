package view

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

var providers = []string{"github", "gitlab", "bitbucket"}

type contributorFields struct {
	provider string
	username string
}

// ContributorModel asks which contributor to browse.
type ContributorModel struct {
	CommonModel

	form   *huh.Form
	fields *contributorFields
}

func NewContributorModel() ContributorModel {
	fields := &contributorFields{provider: providers[0]}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("provider").
				Title("Provider").
				Options(huh.NewOptions(providers...)...).
				Value(&fields.provider),

			huh.NewInput().
				Key("username").
				Title("Username").
				Placeholder("exact, case-sensitive").
				Value(&fields.username).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("username cannot be empty")
					}

					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	return ContributorModel{form: form, fields: fields}
}

func (m ContributorModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ContributorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	selected := scope.Contributor{
		Username: strings.TrimSpace(m.fields.username),
		Provider: m.fields.provider,
	}

	return m, func() tea.Msg { return ContributorSelectedMsg{Contributor: selected} }
}

func (m ContributorModel) View() string {
	return lipgloss.NewStyle().Padding(2).Render("paidwork\n\n" + m.form.View() + "\n\n(ctrl+c to quit)")
}
