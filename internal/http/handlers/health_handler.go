// README: Liveness and provider-status endpoints.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProviderStatus reports which external credentials are configured, so
// operators can tell degraded mode from fully live behavior.
type ProviderStatus struct {
	Gemini     bool `json:"gemini"`
	GoogleMaps bool `json:"googleMaps"`
	SerpAPI    bool `json:"serpapi"`
}

type HealthHandler struct {
	providers ProviderStatus
}

func NewHealthHandler(providers ProviderStatus) *HealthHandler {
	return &HealthHandler{providers: providers}
}

// Live handles GET /health.
func (h *HealthHandler) Live(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

type providerHealthResponse struct {
	Status    string         `json:"status"`
	Providers ProviderStatus `json:"providers"`
}

// Providers handles GET /api/health.
func (h *HealthHandler) Providers(c *gin.Context) {
	status := "ok"
	if !h.providers.Gemini || !h.providers.GoogleMaps || !h.providers.SerpAPI {
		status = "degraded"
	}
	writeJSON(c, http.StatusOK, providerHealthResponse{Status: status, Providers: h.providers})
}
