package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	internalErrors "github.com/scholarlink/recommender/internal/errors"
	"github.com/scholarlink/recommender/model"
)

// ListOffersHandler returns the full offer catalog.
func (api *API) ListOffersHandler(c *gin.Context) {
	offers, err := api.catalog.GetAllOffers(c.Request.Context())
	if err != nil {
		SendCatalogUnavailableError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers, "total": len(offers)})
}

// GetOfferHandler returns a single offer by id.
func (api *API) GetOfferHandler(c *gin.Context) {
	offerID := c.Param("offerId")

	getter, ok := api.catalog.(OfferGetter)
	if !ok {
		SendError(c, http.StatusNotImplemented, ErrorCodeInvalidRequest,
			"Catalog backend does not support single-offer lookup")
		return
	}

	offer, err := getter.GetOffer(c.Request.Context(), offerID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrOfferNotFound) {
			SendOfferNotFoundError(c, offerID)
			return
		}
		SendCatalogUnavailableError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

// ReplaceOffersHandler replaces the whole offer catalog (memory backend only).
// Request Body: {"offers": [Document, ...]}
func (api *API) ReplaceOffersHandler(c *gin.Context) {
	if api.admin == nil {
		SendError(c, http.StatusNotImplemented, ErrorCodeInvalidRequest,
			"Catalog backend is read-only")
		return
	}

	var req struct {
		Offers []model.Document `json:"offers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	stored := api.admin.ReplaceOffers(req.Offers)
	if err := api.admin.Snapshot(); err != nil {
		logrus.WithField("component", "api").Warnf("Catalog snapshot failed: %v", err)
	}

	if api.pipeline != nil {
		api.pipeline.RefreshCatalog(c.Request.Context())
	}

	c.JSON(http.StatusOK, gin.H{"stored": stored})
}

// PutStudentHandler stores or replaces a student document (memory backend only).
// Request Body: model.Document
func (api *API) PutStudentHandler(c *gin.Context) {
	if api.admin == nil {
		SendError(c, http.StatusNotImplemented, ErrorCodeInvalidRequest,
			"Catalog backend is read-only")
		return
	}

	studentID := c.Param("studentId")

	var doc model.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	api.admin.PutStudent(studentID, doc)
	if err := api.admin.Snapshot(); err != nil {
		logrus.WithField("component", "api").Warnf("Catalog snapshot failed: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"status": "stored", "id": studentID})
}
