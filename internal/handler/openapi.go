package handler

import (
	"net/http"

	"github.com/openmicnyc/miccrawl/spec"
)

// GetOpenAPI handles GET /openapi.yaml, serving the embedded API document.
// Serving it from the binary means the spec and the running code are always
// in sync.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
