// Package server exposes the stratum solver over HTTP.
//
// # Endpoints
//
//   - POST /v1/solve: solve a stackfile sent in the request body
//   - POST /v1/graph: render the constraint graph as DOT or SVG
//   - GET /healthz: liveness probe
//   - GET /metrics: Prometheus metrics
//
// Request bodies are stackfiles. JSON is the default; send
// Content-Type application/toml or application/yaml to post the other
// formats unchanged.
//
// Every response carries an X-Request-ID header. A client-supplied ID is
// echoed back; otherwise one is generated.
//
// # Errors
//
// Failures are reported as a JSON envelope whose code matches
// [github.com/matzehuels/stratum/pkg/errors.Code]:
//
//	{"error": {"code": "CYCLE", "message": "...", "unresolved": ["a", "b"]}}
package server
