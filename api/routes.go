// Package api exposes the finkit engines as a JSON HTTP API.
//
// Every engine has one POST endpoint taking the same request document as the
// fin scenario files. Numbers may be sent as JSON numbers or strings, and
// strings ending with "%" are percentages.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// SetupRoutes registers the API on router.
func SetupRoutes(router *gin.Engine, opts Options) {
	api := router.Group("/api")
	{
		api.GET("/health", healthCheck)
		api.POST("/npv", handle(DefaultNPVRequest, func(r NPVRequest) (any, error) { return r.Compute(opts) }))
		api.POST("/capm", handle(DefaultCAPMRequest, func(r CAPMRequest) (any, error) { return r.Compute() }))
		api.POST("/dcf", handle(DefaultDCFRequest, func(r DCFRequest) (any, error) { return r.Compute() }))
		api.POST("/wacc", handle(DefaultWACCRequest, func(r WACCRequest) (any, error) { return r.Compute() }))
		api.POST("/bond", handle(DefaultBondRequest, func(r BondRequest) (any, error) { return r.Compute() }))
		api.POST("/statements", handle(DefaultStatementsRequest, func(r StatementsRequest) (any, error) { return r.Compute() }))
	}
}

// NewRouter returns a gin engine with the middlewares and routes installed.
func NewRouter(opts Options, log logrus.FieldLogger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(log))
	SetupRoutes(router, opts)
	return router
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Version: Version})
}

// handle decodes the body over the default request, so omitted fields keep
// their default value, then computes it. An empty body computes the defaults.
func handle[R any](defaults func() R, compute func(R) (any, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := defaults()
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				badRequest(c, err)
				return
			}
		}
		res, err := compute(req)
		if err != nil && !partial(err) {
			domainError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
