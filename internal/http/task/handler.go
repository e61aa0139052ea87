package task

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/http/request"
	"github.com/MrJamesThe3rd/paidwork/internal/http/response"
	"github.com/MrJamesThe3rd/paidwork/internal/importer"
	"github.com/MrJamesThe3rd/paidwork/internal/resignation"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
	"github.com/MrJamesThe3rd/paidwork/internal/task"
)

type Handler struct {
	tasks        task.Repository
	contracts    contract.Repository
	resignations resignation.Repository
	importSvc    *importer.Service
}

func NewHandler(
	tasks task.Repository,
	contracts contract.Repository,
	resignations resignation.Repository,
	importSvc *importer.Service,
) *Handler {
	return &Handler{
		tasks:        tasks,
		contracts:    contracts,
		resignations: resignations,
		importSvc:    importSvc,
	}
}

// ProjectRoutes mounts under /projects/{provider}/{owner}/{repo}/tasks.
func (h *Handler) ProjectRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.register)
	r.Post("/import", h.importCSV)
	r.Get("/unassigned", h.listUnassigned)
	r.Get("/{issue}", h.get)
	r.Delete("/{issue}", h.remove)
	r.Put("/{issue}/assignee", h.assign)
	r.Delete("/{issue}/assignee", h.unassign)
	r.Post("/{issue}/resignations", h.resign)
}

// ContributorRoutes mounts under /contributors/{provider}/{username}.
func (h *Handler) ContributorRoutes(r chi.Router) {
	r.Get("/tasks", h.listOfContributor)
	r.Get("/resignations", h.listResignations)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	tasks := task.NewProjectTasks(h.tasks, request.Project(r))

	all := tasks.All(r.Context())
	if username := r.URL.Query().Get("assignee"); username != "" {
		c := scope.Contributor{Username: username, Provider: tasks.Project().Provider}
		all = tasks.OfContributor(c).All(r.Context())
	}

	items, err := scope.Collect(all)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponses(items))
}

func (h *Handler) listUnassigned(w http.ResponseWriter, r *http.Request) {
	items, err := scope.Collect(task.NewUnassignedTasks(h.tasks, request.Project(r)).All(r.Context()))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponses(items))
}

func (h *Handler) listOfContributor(w http.ResponseWriter, r *http.Request) {
	items, err := scope.Collect(task.NewContributorTasks(h.tasks, request.Contributor(r)).All(r.Context()))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponses(items))
}

func (h *Handler) listResignations(w http.ResponseWriter, r *http.Request) {
	view := resignation.NewContributorResignations(h.resignations, request.Contributor(r))

	items, err := scope.Collect(view.All(r.Context()))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	out := make([]resignationResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toResignationResponse(item))
	}

	response.JSON(w, http.StatusOK, out)
}

type registerTaskRequest struct {
	IssueID     string `json:"issue_id"`
	Role        string `json:"role"`
	Estimation  int    `json:"estimation"`
	PullRequest bool   `json:"pull_request"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if req.IssueID == "" {
		response.BadRequest(w, "issue_id is required")
		return
	}

	p := request.Project(r)

	registered, err := task.NewProjectTasks(h.tasks, p).Register(r.Context(), task.Issue{
		ID:           req.IssueID,
		RepoFullName: p.RepoFullName,
		Provider:     p.Provider,
		Role:         req.Role,
		Estimation:   req.Estimation,
		PullRequest:  req.PullRequest,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, toResponse(registered))
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.BadRequest(w, "failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file field is required")
		return
	}
	defer file.Close()

	res, err := h.importSvc.Import(r.Context(), task.NewProjectTasks(h.tasks, request.Project(r)), file)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toImportResponse(res))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	t, err := h.find(r, task.NewProjectTasks(h.tasks, request.Project(r)))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponse(t))
}

type assignRequest struct {
	Username string `json:"username"`
	Days     int    `json:"days"`
}

// assign hands the task to the contributor holding a contract for the task's
// role in the same project.
func (h *Handler) assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	p := request.Project(r)
	tasks := task.NewProjectTasks(h.tasks, p)

	t, err := h.find(r, tasks)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	id := contract.ID{
		RepoFullName:        p.RepoFullName,
		ContributorUsername: req.Username,
		Provider:            p.Provider,
		Role:                t.Role,
	}

	c, err := contract.NewProjectContracts(h.contracts, p).GetByID(r.Context(), id)
	if err == nil && c == nil {
		err = fmt.Errorf("contract %s: %w", id, scope.ErrNotFound)
	}

	if err != nil {
		response.Error(w, r, err)
		return
	}

	assigned, err := tasks.Assign(r.Context(), t, c, req.Days)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	slog.Info("task assigned", "task", assigned.ID.String(), "contributor", req.Username)
	response.JSON(w, http.StatusOK, toResponse(assigned))
}

func (h *Handler) unassign(w http.ResponseWriter, r *http.Request) {
	tasks := task.NewProjectTasks(h.tasks, request.Project(r))

	t, err := h.find(r, tasks)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	unassigned, err := tasks.Unassign(r.Context(), t)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponse(unassigned))
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	tasks := task.NewProjectTasks(h.tasks, request.Project(r))

	t, err := h.find(r, tasks)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := tasks.Remove(r.Context(), t); err != nil {
		response.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type resignRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) resign(w http.ResponseWriter, r *http.Request) {
	var req resignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	t, err := h.find(r, task.NewProjectTasks(h.tasks, request.Project(r)))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	resigned, err := resignation.NewTaskResignations(h.resignations, t.ID).Register(r.Context(), t, req.Reason)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	slog.Info("contributor resigned", "task", t.ID.String(), "contributor", resigned.Contributor)
	response.JSON(w, http.StatusCreated, toResignationResponse(resigned))
}

func (h *Handler) find(r *http.Request, tasks *task.ProjectTasks) (*task.Task, error) {
	id := request.TaskID(r)

	t, err := tasks.GetByID(r.Context(), id)
	if err != nil {
		return nil, err
	}

	if t == nil {
		return nil, fmt.Errorf("task %s: %w", id, scope.ErrNotFound)
	}

	return t, nil
}
