package server

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"
	"slices"

	"github.com/matzehuels/stratum/pkg/buildinfo"
	perrors "github.com/matzehuels/stratum/pkg/errors"
	"github.com/matzehuels/stratum/pkg/layers"
	"github.com/matzehuels/stratum/pkg/output"
	"github.com/matzehuels/stratum/pkg/pipeline"
	"github.com/matzehuels/stratum/pkg/stackfile"
)

type statsResponse struct {
	Layers      int     `json:"layers"`
	Static      int     `json:"static"`
	Constraints int     `json:"constraints"`
	BuildMs     float64 `json:"build_ms"`
	SolveMs     float64 `json:"solve_ms"`
}

type solveResponse struct {
	Solution layers.Solution `json:"solution"`
	Order    []string        `json:"order"`
	Max      int             `json:"max"`
	Stats    statsResponse   `json:"stats"`
}

var contentTypes = map[string]string{
	output.FormatText:  "text/plain; charset=utf-8",
	output.FormatTOML:  "application/toml",
	output.FormatYAML:  "application/yaml",
	output.FormatCSS:   "text/css; charset=utf-8",
	output.FormatSCSS:  "text/x-scss; charset=utf-8",
	pipeline.FormatDOT: "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG: "image/svg+xml",
}

// GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Get().Version,
	})
}

// POST /v1/solve?format=json|text|toml|yaml|css|scss&prefix=z-
//
// The default JSON response includes stats and the order from the lowest
// index to the highest. Other
// formats return the encoded solution only.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if err := perrors.ValidateFormat(format, output.Formats); err != nil {
		writeError(w, err)
		return
	}

	def, err := s.readDefinition(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.runner.Solve(r.Context(), def, pipeline.SourceAPI)
	if err != nil {
		writeError(w, err)
		return
	}

	if format == "" || format == output.FormatJSON {
		writeJSON(w, http.StatusOK, solveResponse{
			Solution: res.Solution,
			Order:    res.Solution.Order(),
			Max:      res.Solution.Max(),
			Stats: statsResponse{
				Layers:      res.Stats.LayerCount,
				Static:      res.Stats.StaticCount,
				Constraints: res.Stats.ConstraintCount,
				BuildMs:     float64(res.Stats.BuildTime.Microseconds()) / 1000,
				SolveMs:     float64(res.Stats.SolveTime.Microseconds()) / 1000,
			},
		})
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	opts := output.Options{Prefix: r.URL.Query().Get("prefix")}
	if err := output.Write(w, res.Solution, format, opts); err != nil {
		s.logger.Error("write solution", "format", format, "err", err, "request_id", RequestIDFromContext(r.Context()))
	}
}

// POST /v1/graph?format=dot|svg
//
// Unsolvable graphs are still drawn. Layers caught in a cycle are
// highlighted and the solve error code is reported in X-Solve-Error.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatDOT
	}
	if !slices.Contains(pipeline.GraphFormats, format) {
		writeError(w, perrors.New(perrors.ErrCodeInvalidFormat, "unsupported graph format %q (want dot or svg)", format))
		return
	}

	def, err := s.readDefinition(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, solveErr := s.runner.Solve(r.Context(), def, pipeline.SourceAPI)
	if res == nil {
		writeError(w, solveErr)
		return
	}

	out, err := s.runner.Render(r.Context(), res, solveErr, format)
	if err != nil {
		writeError(w, err)
		return
	}
	if solveErr != nil {
		w.Header().Set("X-Solve-Error", string(perrors.Classify(solveErr)))
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// readDefinition decodes the request body as a stackfile, choosing the
// format from Content-Type.
func (s *Server) readDefinition(w http.ResponseWriter, r *http.Request) (*stackfile.Definition, error) {
	format, err := bodyFormat(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, perrors.Wrap(perrors.ErrCodePayloadTooLarge, err, "stackfile exceeds %d bytes", tooLarge.Limit)
		}
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read body")
	}
	return stackfile.Read(bytes.NewReader(data), format)
}

func bodyFormat(contentType string) (string, error) {
	if contentType == "" {
		return stackfile.FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", perrors.Wrap(perrors.ErrCodeInvalidInput, err, "content type")
	}
	switch mt {
	case "application/json":
		return stackfile.FormatJSON, nil
	case "application/toml":
		return stackfile.FormatTOML, nil
	case "application/yaml", "application/x-yaml", "text/yaml":
		return stackfile.FormatYAML, nil
	}
	return "", perrors.New(perrors.ErrCodeInvalidFormat, "unsupported content type %q", mt)
}
