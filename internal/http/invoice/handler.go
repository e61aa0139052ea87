package invoice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/http/request"
	"github.com/MrJamesThe3rd/paidwork/internal/http/response"
	"github.com/MrJamesThe3rd/paidwork/internal/invoice"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
	"github.com/MrJamesThe3rd/paidwork/internal/task"
	"github.com/MrJamesThe3rd/paidwork/internal/wallet"
)

// Payer settles invoices.
type Payer interface {
	Pay(ctx context.Context, inv *invoice.Invoice, charge wallet.Charge) (*invoice.Payment, error)
}

type Handler struct {
	invoices  invoice.Repository
	tasks     task.Repository
	contracts contract.Repository
	payer     Payer
}

func NewHandler(invoices invoice.Repository, tasks task.Repository, contracts contract.Repository, payer Payer) *Handler {
	return &Handler{
		invoices:  invoices,
		tasks:     tasks,
		contracts: contracts,
		payer:     payer,
	}
}

// Routes mounts under /projects/{provider}/{owner}/{repo}/contracts/{username}/{role}/invoices.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/active", h.active)
	r.Get("/{id}", h.get)
	r.Get("/{id}/tasks", h.listTasks)
	r.Post("/{id}/tasks", h.registerTask)
	r.Get("/{id}/payments", h.listPayments)
	r.Post("/{id}/pay", h.pay)
	r.Get("/{id}/platform-invoice", h.platformInvoice)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.contractInvoices(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	items, err := scope.Collect(invoices.All(r.Context()))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, mapSlice(items, toResponse))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.contractInvoices(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	created, err := invoices.CreateNewInvoice(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, toResponse(created))
}

func (h *Handler) active(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.contractInvoices(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	active, err := invoices.Active(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponse(active))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	_, inv, err := h.invoice(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	_, inv, err := h.invoice(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	items, err := scope.Collect(invoice.NewInvoicedTasks(h.invoices, inv.ID).All(r.Context()))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, mapSlice(items, toInvoicedTaskResponse))
}

type registerTaskRequest struct {
	IssueID               string          `json:"issue_id"`
	PullRequest           bool            `json:"pull_request"`
	Value                 decimal.Decimal `json:"value"`
	ProjectCommission     decimal.Decimal `json:"project_commission"`
	ContributorCommission decimal.Decimal `json:"contributor_commission"`
}

// registerTask invoices a task worked under the invoice's contract at the
// value given by the caller.
func (h *Handler) registerTask(w http.ResponseWriter, r *http.Request) {
	var req registerTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	invoices, inv, err := h.invoice(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	cid := invoices.Contract()
	id := task.ID{
		IssueID:      req.IssueID,
		RepoFullName: cid.RepoFullName,
		Provider:     cid.Provider,
		PullRequest:  req.PullRequest,
	}

	t, err := task.NewContractTasks(h.tasks, cid).GetByID(r.Context(), id)
	if err == nil && t == nil {
		err = fmt.Errorf("task %s under %s: %w", id, cid, scope.ErrNotFound)
	}

	if err != nil {
		response.Error(w, r, err)
		return
	}

	entry, err := invoice.NewInvoicedTasks(h.invoices, inv.ID).Register(r.Context(), inv,
		invoice.FinishedTask{Task: t, Value: req.Value},
		req.ProjectCommission, req.ContributorCommission,
	)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	slog.Info("task invoiced", "invoice", inv.ID.String(), "task", t.ID.String(), "value", entry.Value.String())
	response.JSON(w, http.StatusCreated, toInvoicedTaskResponse(entry))
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	_, inv, err := h.invoice(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	items, err := scope.Collect(invoice.NewPayments(h.invoices, inv.ID).All(r.Context()))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, mapSlice(items, toPaymentResponse))
}

type payRequest struct {
	ContributorVat decimal.Decimal `json:"contributor_vat"`
	EurToRon       decimal.Decimal `json:"eur_to_ron"`
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	_, inv, err := h.invoice(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	payment, err := h.payer.Pay(r.Context(), inv, wallet.Charge{
		ContributorVat: req.ContributorVat,
		EurToRon:       req.EurToRon,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, toPaymentResponse(payment))
}

func (h *Handler) platformInvoice(w http.ResponseWriter, r *http.Request) {
	invoices, inv, err := h.invoice(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	pi, err := invoices.PlatformInvoice(r.Context(), inv)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toPlatformInvoiceResponse(pi))
}

// contractInvoices returns the invoices view of the contract named in the URL.
// The contract must exist.
func (h *Handler) contractInvoices(r *http.Request) (*invoice.ContractInvoices, error) {
	id := request.ContractID(r)

	c, err := contract.NewProjectContracts(h.contracts, id.Project()).GetByID(r.Context(), id)
	if err != nil {
		return nil, err
	}

	if c == nil {
		return nil, fmt.Errorf("contract %s: %w", id, scope.ErrNotFound)
	}

	return invoice.NewContractInvoices(h.invoices, c.ID), nil
}

func (h *Handler) invoice(r *http.Request) (*invoice.ContractInvoices, *invoice.Invoice, error) {
	id, ok := request.InvoiceID(r)
	if !ok {
		return nil, nil, fmt.Errorf("invoice %q: %w", chi.URLParam(r, "id"), scope.ErrNotFound)
	}

	invoices, err := h.contractInvoices(r)
	if err != nil {
		return nil, nil, err
	}

	inv, err := invoices.GetByID(r.Context(), id)
	if err != nil {
		return nil, nil, err
	}

	if inv == nil {
		return nil, nil, fmt.Errorf("%s: %w", id, scope.ErrNotFound)
	}

	return invoices, inv, nil
}
