package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) healthCheckOp() huma.Operation {
	return huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Service liveness",
		Description: "Reports whether the vault API is reachable. The client uses this before unlocking.",
		Tags:        []string{"health"},
		Middlewares: h.middleware,
	}
}
