package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/auditai/pkg/domain/model"
	"github.com/secmon-lab/auditai/pkg/domain/types"
	"github.com/secmon-lab/auditai/pkg/usecase"
	"github.com/secmon-lab/auditai/pkg/utils/errutil"
	"github.com/secmon-lab/auditai/pkg/utils/safe"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.WriteJSON(r.Context(), w, v)
}

func (s *Server) listHandler(w http.ResponseWriter, r *http.Request) {
	collection, err := types.ParseCollection(chi.URLParam(r, "collection"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound)
		return
	}

	items, err := s.uc.Report.List(r.Context(), collection)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, 0)
		return
	}
	writeJSON(w, r, http.StatusOK, items)
}

func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	collection, err := types.ParseCollection(chi.URLParam(r, "collection"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound)
		return
	}

	// Buffered so that a failed fetch still gets a JSON error response
	var buf bytes.Buffer
	if _, err := s.uc.Report.Export(r.Context(), collection, &buf); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, 0)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": collection.String() + ".csv",
	}))
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, buf.Bytes())
}

// matrixPoint adds the display colour of the tier to a classified risk
type matrixPoint struct {
	model.MatrixPoint
	Color string `json:"color"`
}

type matrixResponse struct {
	Points   []matrixPoint        `json:"points"`
	Rejected []model.RejectedRisk `json:"rejected"`
	Grid     [3][3]int            `json:"grid"`
	Counts   map[types.Tier]int   `json:"counts"`
}

// TierColor is the dashboard colour of a tier
func TierColor(tier types.Tier) string {
	switch tier {
	case types.TierHigh:
		return "red"
	case types.TierMedium:
		return "orange"
	case types.TierLow:
		return "green"
	default:
		return "gray"
	}
}

func (s *Server) matrixHandler(w http.ResponseWriter, r *http.Request) {
	m, err := s.uc.Matrix.Build(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, 0)
		return
	}

	resp := matrixResponse{
		Points:   make([]matrixPoint, len(m.Points)),
		Rejected: m.Rejected,
		Grid:     m.Grid,
		Counts:   m.CountByTier(),
	}
	for i, p := range m.Points {
		resp.Points[i] = matrixPoint{MatrixPoint: p, Color: TierColor(p.Tier)}
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) uploadHandler(w http.ResponseWriter, r *http.Request) {
	kind, err := types.ParseEntityKind(chi.URLParam(r, "kind"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)

	var src io.Reader = r.Body
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "multipart/form-data" {
		file, _, err := r.FormFile("file")
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "multipart upload requires a file field"), http.StatusBadRequest)
			return
		}
		defer safe.Close(r.Context(), file)
		src = file
	}

	summary, err := s.uc.Ingest.Ingest(r.Context(), kind, src)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusRequestEntityTooLarge)
			return
		}
		errutil.HandleHTTP(r.Context(), w, err, 0)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) registerHandler(name string) http.HandlerFunc {
	kind := types.EntityKind(name)

	return func(w http.ResponseWriter, r *http.Request) {
		fields, err := decodeFields(r.Body)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		created, err := s.uc.Register.Create(r.Context(), kind, fields)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, 0)
			return
		}
		writeJSON(w, r, http.StatusCreated, created)
	}
}

type feedbackRequest struct {
	TransactionID int64  `json:"id_transacao"`
	Label         string `json:"rotulo"`
	Observation   string `json:"observacao"`
}

func (s *Server) feedbackHandler(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid feedback body"), http.StatusBadRequest)
		return
	}

	submitted, err := s.uc.Feedback.Submit(r.Context(), req.TransactionID, req.Label, req.Observation)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, 0)
		return
	}
	writeJSON(w, r, http.StatusCreated, submitted)
}

// decodeFields reads a flat JSON object into raw column values. Numbers and
// booleans are kept in their textual form so they go through the same
// coercion as CSV cells.
func decodeFields(body io.Reader) (usecase.Fields, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, goerr.Wrap(err, "request body must be a JSON object")
	}

	fields := make(usecase.Fields, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			fields[k] = ""
		case string:
			fields[k] = val
		case json.Number:
			fields[k] = val.String()
		case bool:
			fields[k] = strconv.FormatBool(val)
		default:
			return nil, goerr.New("nested values are not supported", goerr.V(model.ColumnKey, k))
		}
		fields[k] = strings.TrimSpace(fields[k])
	}
	return fields, nil
}
