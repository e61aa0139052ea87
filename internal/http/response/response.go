package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/paidwork/internal/contract"
	"github.com/MrJamesThe3rd/paidwork/internal/importer"
	"github.com/MrJamesThe3rd/paidwork/internal/invoice"
	"github.com/MrJamesThe3rd/paidwork/internal/scope"
	"github.com/MrJamesThe3rd/paidwork/internal/task"
)

type errorBody struct {
	Error    string `json:"error"`
	Kind     string `json:"kind,omitempty"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
}

var validationErrors = []error{
	contract.ErrInvalidRole,
	contract.ErrNegativeRate,
	task.ErrUnassigned,
	task.ErrInvalidDays,
	invoice.ErrAlreadyPaid,
	invoice.ErrInvalidStatus,
	invoice.ErrFailReason,
	invoice.ErrNegativeAmount,
	importer.ErrNoHeader,
}

// Status maps a domain error to an HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, scope.ErrMismatch),
		errors.Is(err, scope.ErrConflict),
		errors.Is(err, task.ErrAlreadyAssigned):
		return http.StatusConflict
	case errors.Is(err, scope.ErrNotFound):
		return http.StatusNotFound
	}

	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return http.StatusUnprocessableEntity
		}
	}

	return http.StatusInternalServerError
}

// Error writes err as a JSON body. Internal errors are logged and not exposed.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)

	body := errorBody{Error: err.Error()}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)

		body.Error = "internal error"
	}

	var mismatch *scope.MismatchError
	if errors.As(err, &mismatch) {
		body.Kind = mismatch.Kind
		body.Expected = mismatch.Expected
		body.Actual = mismatch.Actual
	}

	JSON(w, status, body)
}

// BadRequest reports a malformed request.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
