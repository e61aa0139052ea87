package contract

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/http/request"
	"github.com/MrJamesThe3rd/paidwork/internal/http/response"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
)

type Handler struct {
	repo contract.Repository
}

func NewHandler(repo contract.Repository) *Handler {
	return &Handler{repo: repo}
}

// ProjectRoutes mounts under /projects/{provider}/{owner}/{repo}/contracts.
func (h *Handler) ProjectRoutes(r chi.Router) {
	r.Get("/", h.listOfProject)
	r.Post("/", h.add)
	r.Patch("/{username}/{role}", h.updateHourlyRate)
	r.Delete("/{username}/{role}", h.remove)
	r.Post("/{username}/{role}/removal", h.markForRemoval)
}

// ContributorRoutes mounts under /contributors/{provider}/{username}.
func (h *Handler) ContributorRoutes(r chi.Router) {
	r.Get("/contracts", h.listOfContributor)
}

func (h *Handler) listOfProject(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, contract.NewProjectContracts(h.repo, request.Project(r)))
}

func (h *Handler) listOfContributor(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, contract.NewContributorContracts(h.repo, request.Contributor(r)))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, contracts *contract.Contracts) {
	items, err := scope.Collect(contracts.All(r.Context()))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponses(items))
}

type addContractRequest struct {
	Username   string          `json:"username"`
	Role       string          `json:"role"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req addContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	p := request.Project(r)

	added, err := contract.NewProjectContracts(h.repo, p).Add(r.Context(), contract.ID{
		RepoFullName:        p.RepoFullName,
		ContributorUsername: req.Username,
		Provider:            p.Provider,
		Role:                req.Role,
	}, req.HourlyRate)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	slog.Info("contract added", "contract", added.ID.String())
	response.JSON(w, http.StatusCreated, toResponse(added))
}

type updateHourlyRateRequest struct {
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

func (h *Handler) updateHourlyRate(w http.ResponseWriter, r *http.Request) {
	var req updateHourlyRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	id := request.ContractID(r)

	updated, err := contract.NewProjectContracts(h.repo, id.Project()).UpdateHourlyRate(r.Context(), id, req.HourlyRate)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponse(updated))
}

func (h *Handler) markForRemoval(w http.ResponseWriter, r *http.Request) {
	id := request.ContractID(r)

	marked, err := contract.NewProjectContracts(h.repo, id.Project()).MarkForRemoval(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponse(marked))
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id := request.ContractID(r)

	if err := contract.NewProjectContracts(h.repo, id.Project()).Remove(r.Context(), id); err != nil {
		response.Error(w, r, err)
		return
	}

	slog.Info("contract removed", "contract", id.String())
	w.WriteHeader(http.StatusNoContent)
}
