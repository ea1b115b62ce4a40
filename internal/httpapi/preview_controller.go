package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

const (
	previewErrMessage = "failed to open preview"
	submitErrMessage  = "failed to submit preview"
)

func NewPreviewController(orch *orchestrator.Orchestrator, metrics *Metrics) *PreviewController {
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &PreviewController{orch: orch, metrics: metrics}
}

var _ Controller = &PreviewController{}

type PreviewController struct {
	orch    *orchestrator.Orchestrator
	metrics *Metrics
}

func (c *PreviewController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/preview", c.renderPreview())
	router.Handle("POST /v1/preview", c.submitPreview())
	router.Handle("POST /v1/layout-edit/save", c.saveLayoutEdit())
}

type previewRequest struct {
	Mode         string        `json:"mode"`
	SubmissionID string        `json:"submissionId"`
	Values       layout.Values `json:"values"`
}

// openSession opens the preview for a mode name. Layout edit previews go
// through the orchestrator so they pick up the submission being
// restructured.
func (c *PreviewController) openSession(modeName, submissionID string) (*render.Session, error) {
	mode, err := render.ParseMode(modeName, submissionID)
	if err != nil {
		return nil, err
	}
	if _, ok := mode.(render.LayoutEdit); ok {
		if target, active := c.orch.LayoutEditTarget(); !active || target != render.SubmissionID(mode) {
			return nil, orchestrator.ErrNoLayoutEdit
		}
		return c.orch.PreviewLayoutEdit()
	}
	return c.orch.OpenPreview(mode)
}

func (c *PreviewController) renderPreview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		session, err := c.openSession(query.Get("mode"), query.Get("submissionId"))
		if err != nil {
			c.replySessionError(w, err, previewErrMessage)
			return
		}
		defer session.Close()

		rendererName := query.Get("renderer")
		contentType, err := c.orch.ContentType(rendererName)
		if err != nil {
			ReplyWithError(w, http.StatusNotFound, err.Error())
			return
		}
		out, err := c.orch.Render(r.Context(), rendererName, session.Plan(), render.RenderOptions{
			Locale: query.Get("locale"),
		})
		if err != nil {
			slog.Error("rendering preview", slog.String("error", err.Error()))
			ReplyWithError(w, http.StatusInternalServerError, previewErrMessage)
			return
		}
		ReplyBytes(w, http.StatusOK, contentType, out)
	}
}

func (c *PreviewController) submitPreview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body previewRequest
		if err := DecodeJSONBody(r, &body); err != nil {
			ReplyWithError(w, http.StatusBadRequest, submitErrMessage)
			return
		}
		session, err := c.openSession(body.Mode, body.SubmissionID)
		if err != nil {
			c.replySessionError(w, err, submitErrMessage)
			return
		}
		c.submit(w, session, body.Values)
	}
}

func (c *PreviewController) saveLayoutEdit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := c.orch.PreviewLayoutEdit()
		if err != nil {
			c.replySessionError(w, err, submitErrMessage)
			return
		}
		c.submit(w, session, nil)
	}
}

func (c *PreviewController) submit(w http.ResponseWriter, session *render.Session, values layout.Values) {
	outcome, err := session.Submit(values)
	if fields := render.ErrorsFrom(err); fields != nil {
		c.metrics.validationFailed("values")
		ReplyJSONResponse(w, http.StatusUnprocessableEntity, &ErrorResponse{
			Message: "submission has invalid fields",
			Fields:  fields,
		})
		return
	}
	if err != nil {
		c.replySessionError(w, err, submitErrMessage)
		return
	}
	c.metrics.submitted(outcome.Mode)
	ReplyJSONResponse(w, http.StatusOK, outcome)
}

func (c *PreviewController) replySessionError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, render.ErrUnknownMode):
		ReplyWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, render.ErrSubmissionNotFound):
		ReplyWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, orchestrator.ErrNoLayoutEdit), errors.Is(err, render.ErrSessionClosed):
		ReplyWithError(w, http.StatusConflict, err.Error())
	default:
		slog.Error(msg, slog.String("error", err.Error()))
		ReplyWithError(w, http.StatusInternalServerError, msg)
	}
}
