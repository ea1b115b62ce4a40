package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-formbuilder/pkg/export"
	"github.com/goliatone/go-formbuilder/pkg/history"
	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
)

const (
	submissionNotFoundMessage = "submission not found"
	exportErrMessage          = "failed to export submission"
)

func NewSubmissionController(orch *orchestrator.Orchestrator) *SubmissionController {
	return &SubmissionController{orch: orch}
}

var _ Controller = &SubmissionController{}

type SubmissionController struct {
	orch *orchestrator.Orchestrator
}

func (c *SubmissionController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/submissions", c.listSubmissions())
	router.Handle("DELETE /v1/submissions", c.clearSubmissions())
	router.Handle("GET /v1/submissions/{id}", c.getSubmission())
	router.Handle("DELETE /v1/submissions/{id}", c.deleteSubmission())
	router.Handle("POST /v1/submissions/{id}/layout-edit", c.beginLayoutEdit())
	router.Handle("GET /v1/submissions/{id}/export", c.exportSubmission())
}

type submissionListResponse struct {
	Data  []history.Submission `json:"data"`
	Total int                  `json:"total"`
}

type layoutEditResponse struct {
	SubmissionID string            `json:"submissionId"`
	Config       layout.FormConfig `json:"config"`
}

func (c *SubmissionController) listSubmissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := c.orch.History().List()
		if items == nil {
			items = []history.Submission{}
		}
		ReplyJSONResponse(w, http.StatusOK, submissionListResponse{Data: items, Total: len(items)})
	}
}

func (c *SubmissionController) clearSubmissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.orch.ClearHistory()
		w.WriteHeader(http.StatusNoContent)
	}
}

func (c *SubmissionController) getSubmission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submission, ok := c.orch.History().Get(r.PathValue("id"))
		if !ok {
			ReplyWithError(w, http.StatusNotFound, submissionNotFoundMessage)
			return
		}
		ReplyJSONResponse(w, http.StatusOK, submission)
	}
}

func (c *SubmissionController) deleteSubmission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if !c.orch.DeleteSubmission(id) {
			ReplyWithError(w, http.StatusNotFound, submissionNotFoundMessage)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (c *SubmissionController) beginLayoutEdit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		cfg, err := c.orch.BeginLayoutEdit(id)
		if errors.Is(err, orchestrator.ErrSubmissionNotFound) {
			ReplyWithError(w, http.StatusNotFound, submissionNotFoundMessage)
			return
		}
		if err != nil {
			slog.Error("beginning layout edit", slog.String("error", err.Error()))
			ReplyWithError(w, http.StatusInternalServerError, "failed to begin layout edit")
			return
		}
		ReplyJSONResponse(w, http.StatusOK, layoutEditResponse{SubmissionID: id, Config: cfg})
	}
}

func (c *SubmissionController) exportSubmission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artifact, err := c.orch.Export(r.PathValue("id"), r.URL.Query().Get("format"))
		switch {
		case errors.Is(err, orchestrator.ErrSubmissionNotFound):
			ReplyWithError(w, http.StatusNotFound, submissionNotFoundMessage)
			return
		case errors.Is(err, export.ErrUnknownFormat):
			ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			slog.Error("exporting submission", slog.String("error", err.Error()))
			ReplyWithError(w, http.StatusInternalServerError, exportErrMessage)
			return
		}
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.FileName))
		ReplyBytes(w, http.StatusOK, artifact.ContentType, artifact.Body)
	}
}
