package view

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/invoice"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
	"github.com/MrJamesThe3rd/paidwork/internal/wallet"
)

// Payer settles invoices.
type Payer interface {
	Pay(ctx context.Context, inv *invoice.Invoice, charge wallet.Charge) (*invoice.Payment, error)
}

type invoicesState int

const (
	invoicesStateBrowse invoicesState = iota
	invoicesStatePay
)

type chargeFields struct {
	vat      string
	eurToRon string
}

// InvoicesModel lists the invoices of one contract with the active one
// highlighted.
type InvoicesModel struct {
	CommonModel
	repo     invoice.Repository
	payer    Payer
	contract contract.ID

	state   invoicesState
	table   table.Model
	items   []*invoice.Invoice
	active  *invoice.Invoice
	form    *huh.Form
	charge  *chargeFields
	loading bool
	err     error
	status  string
}

func NewInvoicesModel(repo invoice.Repository, payer Payer, id contract.ID) InvoicesModel {
	return InvoicesModel{
		repo:     repo,
		payer:    payer,
		contract: id,
		loading:  true,
		table: newTable([]table.Column{
			{Title: "", Width: 2},
			{Title: "Invoice", Width: 10},
			{Title: "Created", Width: 12},
			{Title: "Status", Width: 8},
			{Title: "Paid", Width: 12},
			{Title: "Transaction", Width: 38},
		}),
	}
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoicesMsg:
		m.loading = false
		m.err = msg.err
		m.items = msg.items
		m.active = invoice.OldestUnpaid(msg.items)
		m.refreshTable()

		return m, nil

	case invoiceActionMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == invoicesStatePay {
		return m.updatePay(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m, m.activeCmd()
		case "n":
			return m, m.createCmd()
		case "p":
			return m.enterPayMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoicesModel) enterPayMode() (tea.Model, tea.Cmd) {
	selected := m.selected()
	if selected == nil || selected.IsPaid() {
		m.status = "Select an open invoice to pay"
		return m, nil
	}

	m.charge = &chargeFields{vat: "0", eurToRon: "1"}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("vat").
				Title("Contributor VAT (fraction)").
				Value(&m.charge.vat).
				Validate(validateDecimal),

			huh.NewInput().
				Key("eur_to_ron").
				Title("EUR to RON").
				Value(&m.charge.eurToRon).
				Validate(validateDecimal),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = invoicesStatePay
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoicesModel) updatePay(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.leavePayMode()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	charge := wallet.Charge{
		ContributorVat: decimal.RequireFromString(strings.TrimSpace(m.charge.vat)),
		EurToRon:       decimal.RequireFromString(strings.TrimSpace(m.charge.eurToRon)),
	}
	selected := m.selected()
	m.leavePayMode()

	return m, m.payCmd(selected, charge)
}

func (m *InvoicesModel) leavePayMode() {
	m.state = invoicesStateBrowse
	m.form = nil
	m.charge = nil
	m.table.Focus()
}

func validateDecimal(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return errors.New("not a number")
	}

	if d.IsNegative() {
		return errors.New("must not be negative")
	}

	return nil
}

func (m InvoicesModel) View() string {
	if m.loading {
		return "Loading invoices..."
	}

	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err)
	}

	active := "none"
	if m.active != nil {
		active = m.active.ID.String()
	}

	header := fmt.Sprintf("Invoices of %s | active: %s", m.contract, activeStyle(active))
	help := "a: active | n: new | p: pay | r: refresh | Esc: back"

	status := help
	if m.status != "" {
		status = m.status + "\n" + help
	}

	content := framed(header, m.table, status)

	if m.state == invoicesStatePay && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("Pay %s\n\n%s", m.selected().ID, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	return content
}

func (m InvoicesModel) selected() *invoice.Invoice {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	return m.items[idx]
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, inv := range m.items {
		marker, status, paidAt, tx := "", "OPEN", "", ""

		if m.active != nil && inv.ID == m.active.ID {
			marker = "●"
		}

		if inv.IsPaid() {
			status = "PAID"
			paidAt = FormatDate(*inv.PaymentTime)
			tx = *inv.TransactionID
		}

		rows = append(rows, table.Row{marker, inv.ID.String(), FormatDate(inv.CreatedAt), status, paidAt, tx})
	}

	m.table.SetRows(rows)
}

type loadInvoicesMsg struct {
	items []*invoice.Invoice
	err   error
}

type invoiceActionMsg struct {
	status string
	err    error
}

func (m InvoicesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		items, err := scope.Collect(invoice.NewContractInvoices(m.repo, m.contract).All(ctx))

		return loadInvoicesMsg{items: items, err: err}
	}
}

func (m InvoicesModel) activeCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		active, err := invoice.NewContractInvoices(m.repo, m.contract).Active(ctx)
		if err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{status: fmt.Sprintf("Active invoice is %s", active.ID)}
	}
}

func (m InvoicesModel) createCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		created, err := invoice.NewContractInvoices(m.repo, m.contract).CreateNewInvoice(ctx)
		if err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{status: fmt.Sprintf("Created %s", created.ID)}
	}
}

func (m InvoicesModel) payCmd(inv *invoice.Invoice, charge wallet.Charge) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		payment, err := m.payer.Pay(ctx, inv, charge)
		if err != nil {
			return invoiceActionMsg{err: err}
		}

		if payment.Status == invoice.StatusFailed {
			return invoiceActionMsg{status: fmt.Sprintf("Payment of %s failed: %s", inv.ID, *payment.FailReason)}
		}

		return invoiceActionMsg{status: fmt.Sprintf("Paid %s: %s", inv.ID, FormatMoney(payment.Value))}
	}
}
