package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/tomato/backend/internal/service"
)

const missingReviewFields = "Name, rating, and comment are required"

type ReviewHandler struct {
	reviews service.IReviewService
	log     *logrus.Logger
}

func NewReviewHandler(reviews service.IReviewService, log *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, log: log}
}

func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/reviews")
	{
		reviews.GET("", h.ListReviews)
		reviews.POST("", h.CreateReview)
		reviews.PATCH("/:id/like", h.LikeReview)
	}
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviews.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch reviews")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var input service.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	if field := firstMissingReviewField(input); field != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   missingReviewFields,
			"field":   field,
			"message": missingReviewFields,
		})
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err, "Failed to create review")
		return
	}
	c.JSON(http.StatusCreated, review)
}

func firstMissingReviewField(in service.ReviewInput) string {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return "name"
	case in.Rating == 0:
		return "rating"
	case strings.TrimSpace(in.Comment) == "":
		return "comment"
	}
	return ""
}

func (h *ReviewHandler) LikeReview(c *gin.Context) {
	review, err := h.reviews.Like(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to like review")
		return
	}
	c.JSON(http.StatusOK, review)
}
