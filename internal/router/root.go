package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearthbudget/backend/internal/httputil"
)

var errMethodNotAllowed = errors.New("this HTTP method is not allowed for the endpoint you called")

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"` // Endpoint returning the application health
	Metrics string `json:"metrics" example:"https://example.com/api/metrics"` // Endpoint returning Prometheus metrics
	Version string `json:"version" example:"https://example.com/api/version"` // Endpoint returning the version of the backend
	V1      string `json:"v1" example:"https://example.com/api/v1"`           // List of endpoints for API v1
}

// GetRoot is the entrypoint for the API, listing all endpoints.
func GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Healthz: "/healthz",
			Metrics: "/metrics",
			Version: "/version",
			V1:      "/v1",
		},
	})
}

func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

type VersionResponse struct {
	Data VersionObject `json:"data"`
}

type VersionObject struct {
	Version string `json:"version" example:"1.0.0"`
}

// GetVersion returns the version of the backend.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Categories       string `json:"categories" example:"https://example.com/api/v1/categories"`
	SinkingFunds     string `json:"sinkingFunds" example:"https://example.com/api/v1/sinking-funds"`
	Bills            string `json:"bills" example:"https://example.com/api/v1/bills"`
	Transactions     string `json:"transactions" example:"https://example.com/api/v1/transactions"`
	Budgets          string `json:"budgets" example:"https://example.com/api/v1/budgets"`
	IncomeAllocation string `json:"incomeAllocation" example:"https://example.com/api/v1/income-allocation"`
	Dashboard        string `json:"dashboard" example:"https://example.com/api/v1/dashboard"`
}

// GetV1 returns the links for API v1.
func GetV1(c *gin.Context) {
	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Categories:       "/v1/categories",
			SinkingFunds:     "/v1/sinking-funds",
			Bills:            "/v1/bills",
			Transactions:     "/v1/transactions",
			Budgets:          "/v1/budgets",
			IncomeAllocation: "/v1/income-allocation",
			Dashboard:        "/v1/dashboard",
		},
	})
}

func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
