package httpapi

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/openapi"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

const (
	dispatchErrMessage = "failed to apply action"
	importErrMessage   = "failed to import form config"
	schemaErrMessage   = "failed to encode values schema"
)

func NewFormController(orch *orchestrator.Orchestrator, metrics *Metrics) *FormController {
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &FormController{orch: orch, metrics: metrics}
}

var _ Controller = &FormController{}

type FormController struct {
	orch    *orchestrator.Orchestrator
	metrics *Metrics
}

func (c *FormController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/form", c.getForm())
	router.Handle("PUT /v1/form", c.importForm())
	router.Handle("POST /v1/form/actions", c.dispatch())
	router.Handle("POST /v1/form/undo", c.undo())
	router.Handle("GET /v1/form/validate", c.validate())
	router.Handle("GET /v1/form/schema", c.schema())
}

type formResponse struct {
	Config  layout.FormConfig `json:"config"`
	CanUndo bool              `json:"canUndo"`
}

type validateResponse struct {
	Valid  bool                     `json:"valid"`
	Errors []validation.LayoutError `json:"errors"`
}

func (c *FormController) reply(w http.ResponseWriter, cfg layout.FormConfig) {
	ReplyJSONResponse(w, http.StatusOK, formResponse{Config: cfg, CanUndo: c.orch.Builder().CanUndo()})
}

func (c *FormController) getForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.reply(w, c.orch.Config())
	}
}

func (c *FormController) dispatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := ReadBody(r)
		if err != nil {
			ReplyWithError(w, http.StatusBadRequest, dispatchErrMessage)
			return
		}
		action, err := builder.DecodeAction(body)
		if err != nil {
			c.metrics.actionDispatched("unknown", "malformed")
			ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		cfg, err := c.orch.Dispatch(action)
		if errors.Is(err, builder.ErrInvalidPatch) || errors.Is(err, builder.ErrDuplicateID) || errors.Is(err, builder.ErrDuplicateName) {
			c.metrics.actionDispatched(builder.Kind(action), "rejected")
			ReplyWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err != nil {
			slog.Error("dispatching action", slog.String("error", err.Error()))
			c.metrics.actionDispatched(builder.Kind(action), "error")
			ReplyWithError(w, http.StatusInternalServerError, dispatchErrMessage)
			return
		}

		c.metrics.actionDispatched(builder.Kind(action), "applied")
		c.reply(w, cfg)
	}
}

func (c *FormController) undo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !c.orch.Undo() {
			ReplyWithError(w, http.StatusConflict, "nothing to undo")
			return
		}
		c.reply(w, c.orch.Config())
	}
}

func (c *FormController) validate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		errs := c.orch.Validate()
		if len(errs) > 0 {
			c.metrics.validationFailed("layout")
		}
		if errs == nil {
			errs = []validation.LayoutError{}
		}
		ReplyJSONResponse(w, http.StatusOK, validateResponse{Valid: len(errs) == 0, Errors: errs})
	}
}

func (c *FormController) importForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := ReadBody(r)
		if err != nil {
			ReplyWithError(w, http.StatusBadRequest, importErrMessage)
			return
		}

		cfg, err := c.orch.Import(body, formatFromContentType(r.Header.Get("Content-Type")))
		var importErr *orchestrator.ImportError
		if errors.As(err, &importErr) {
			c.metrics.validationFailed("import")
			ReplyJSONResponse(w, http.StatusUnprocessableEntity, &ErrorResponse{
				Message: importErrMessage,
				Issues:  importErr.Issues,
			})
			return
		}
		if err != nil {
			ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		c.reply(w, cfg)
	}
}

func (c *FormController) schema() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := layout.ParseFormat(r.URL.Query().Get("format"))
		if err != nil || format == layout.FormatMsgpack {
			ReplyWithError(w, http.StatusBadRequest, "format must be json or yaml")
			return
		}
		out, err := openapi.Encode(openapi.Document(c.orch.Config()), format)
		if err != nil {
			slog.Error("encoding values schema", slog.String("error", err.Error()))
			ReplyWithError(w, http.StatusInternalServerError, schemaErrMessage)
			return
		}
		contentType := "application/json"
		if format == layout.FormatYAML {
			contentType = "application/yaml"
		}
		ReplyBytes(w, http.StatusOK, contentType, out)
	}
}

// formatFromContentType maps a request media type onto a codec. Unknown or
// missing types return "" so the payload is sniffed.
func formatFromContentType(header string) layout.Format {
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	switch mediaType {
	case "application/json":
		return layout.FormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml":
		return layout.FormatYAML
	case "application/msgpack", "application/x-msgpack", "application/vnd.msgpack":
		return layout.FormatMsgpack
	default:
		return ""
	}
}
