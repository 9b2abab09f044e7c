package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/reeflow/reeflow/pkg/diagram/route"
	apperr "github.com/reeflow/reeflow/pkg/errors"
	"github.com/reeflow/reeflow/pkg/flow"
)

// Event is one posted interaction. Type selects the operation; the other
// fields are read as that operation requires.
type Event struct {
	Type string `json:"type"`

	// Node operations.
	Node   string  `json:"node,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Endpoint operations.
	Link  string     `json:"link,omitempty"`
	End   string     `json:"end,omitempty"` // "source" or "target"
	Point flow.Point `json:"point,omitempty"`

	// Label operations.
	Label string `json:"label,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Supported event types.
const (
	EventMoveNode     = "move_node"
	EventResizeNode   = "resize_node"
	EventRotateNode   = "rotate_node"
	EventMoveEndpoint = "move_endpoint"
	EventAddLabel     = "add_label"
	EventEditLabel    = "edit_label"
	EventMoveLabel    = "move_label"
	EventDeleteLabel  = "delete_label"
)

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"years": s.session.Years()})
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	d, err := s.session.Diagram(r.Context(), year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	var ev Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "decode event"))
		return
	}

	ctx := r.Context()
	d, err := func() (any, error) {
		switch ev.Type {
		case EventMoveNode:
			return s.session.MoveNode(ctx, year, ev.Node, ev.DX, ev.DY)
		case EventResizeNode:
			return s.session.ResizeNode(ctx, year, ev.Node, ev.Width, ev.Height)
		case EventRotateNode:
			return s.session.RotateNode(ctx, year, ev.Node)
		case EventMoveEndpoint:
			end := route.EndSource
			if ev.End == "target" {
				end = route.EndTarget
			}
			return s.session.MoveEndpoint(ctx, year, ev.Link, end, ev.Point)
		case EventAddLabel:
			return s.session.AddLabel(ctx, year, ev.Text, ev.Point)
		case EventEditLabel:
			return s.session.EditLabel(ctx, year, ev.Label, ev.Text)
		case EventMoveLabel:
			return s.session.MoveLabel(ctx, year, ev.Label, ev.Point)
		case EventDeleteLabel:
			return s.session.DeleteLabel(ctx, year, ev.Label)
		default:
			return nil, apperr.New(apperr.ErrCodeInvalidInput, "unknown event type %q", ev.Type)
		}
	}()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleSaveLayout(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	if err := s.session.SaveLayout(r.Context(), year); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) handleResetLayout(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	d, err := s.session.ResetLayout(r.Context(), year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

var contentTypes = map[string]string{
	"svg":  "image/svg+xml",
	"dot":  "text/vnd.graphviz",
	"json": "application/json",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "svg"
	}
	style := r.URL.Query().Get("style")

	data, err := s.session.Render(r.Context(), year, format, style)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// yearParam parses the {year} URL parameter, writing a 400 on failure.
func yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, apperr.New(apperr.ErrCodeInvalidYear, "year must be an integer"))
		return 0, false
	}
	return year, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps application error codes onto HTTP statuses and writes
// a JSON error body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperr.GetCode(err) {
	case apperr.ErrCodeInvalidInput, apperr.ErrCodeInvalidYear,
		apperr.ErrCodeInvalidFormat, apperr.ErrCodeInvalidAlign,
		apperr.ErrCodeInvalidRow:
		status = http.StatusBadRequest
	case apperr.ErrCodeYearNotFound, apperr.ErrCodeNodeNotFound,
		apperr.ErrCodeLinkNotFound, apperr.ErrCodeLabelNotFound,
		apperr.ErrCodeNotFound:
		status = http.StatusNotFound
	case apperr.ErrCodeStoreUnavailable:
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]string{
		"error": apperr.UserMessage(err),
		"code":  string(apperr.GetCode(err)),
	})
}
