package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scholarlink/recommender/model"
	"github.com/scholarlink/recommender/services"
)

const maxRequestBodySize = 10 << 20 // 10 MB

// CatalogAdmin is the write surface of the memory catalog backend, used to
// seed and replace catalog documents over HTTP.
type CatalogAdmin interface {
	PutStudent(id string, doc model.Document)
	ReplaceOffers(docs []model.Document) int
	Snapshot() error
}

// OfferGetter fetches a single offer by id.
type OfferGetter interface {
	GetOffer(ctx context.Context, id string) (model.Offer, error)
}

// Pipeline is the reactive recompute surface: input changes trigger a fresh
// recommendation cycle and Current returns the latest published result.
type Pipeline interface {
	RefreshCatalog(ctx context.Context)
	SetStudent(id string)
	SetSearchTerm(term string)
	Current() services.RecommendationResult
}

// API holds dependencies for API handlers.
type API struct {
	recommender services.Recommender
	catalog     services.CatalogSource
	admin       CatalogAdmin // nil for read-only backends
	pipeline    Pipeline
}

// NewAPI creates a new API handler structure. admin may be nil when the
// catalog backend is read-only (postgres).
func NewAPI(recommender services.Recommender, catalog services.CatalogSource, admin CatalogAdmin, pipeline Pipeline) *API {
	return &API{
		recommender: recommender,
		catalog:     catalog,
		admin:       admin,
		pipeline:    pipeline,
	}
}

// SetupRoutes defines all the API routes for the recommendation service.
func SetupRoutes(router *gin.Engine, apiHandler *API) {
	router.Use(CORSMiddleware())
	router.Use(RequestSizeLimitMiddleware(maxRequestBodySize))

	router.GET("/health", apiHandler.HealthCheckHandler)

	studentRoutes := router.Group("/students")
	{
		studentRoutes.GET("/:studentId/recommendations", apiHandler.GetRecommendationsHandler)
	}

	// Reactive surface: a client registers its inputs once and polls the
	// current result while cycles run in the background.
	pipelineRoutes := router.Group("/pipeline")
	{
		pipelineRoutes.PUT("/inputs", apiHandler.SetPipelineInputsHandler)
		pipelineRoutes.GET("/result", apiHandler.GetPipelineResultHandler)
	}

	catalogRoutes := router.Group("/catalog")
	{
		catalogRoutes.POST("/refresh", apiHandler.RefreshCatalogHandler)
		catalogRoutes.GET("/offers", apiHandler.ListOffersHandler)
		catalogRoutes.GET("/offers/:offerId", apiHandler.GetOfferHandler)
		catalogRoutes.PUT("/offers", apiHandler.ReplaceOffersHandler)
		catalogRoutes.PUT("/students/:studentId", apiHandler.PutStudentHandler)
	}
}

// HealthCheckHandler reports service liveness.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
