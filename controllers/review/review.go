package reviewControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thebilalkhokhar/EatsOnline/middleware"
	"github.com/thebilalkhokhar/EatsOnline/models"
	"gorm.io/gorm"
)

// Reviews with this many reports are hidden pending moderation.
const autoRejectReportCount = 5

type SubmitReviewRequest struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// POST /api/reviews — only for the caller's own Delivered order, at most
// one per order. A second submission is a 409; revisions go through PUT.
func SubmitReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubmitReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order_id and rating are required"})
			return
		}
		if req.Rating < 1 || req.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
			return
		}
		if req.Comment == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Comment is required"})
			return
		}
		if len(req.Comment) > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Comment cannot exceed 500 characters"})
			return
		}
		userID := middleware.CurrentUserID(c)

		var order models.Order
		if err := db.Where("id = ? AND user_id = ?", req.OrderID, userID).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if order.Status != models.OrderStatusDelivered {
			c.JSON(http.StatusConflict, gin.H{"error": "Only delivered orders can be reviewed"})
			return
		}

		var existing models.Review
		if err := db.Where("order_id = ?", req.OrderID).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "You have already submitted a review for this order"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate review"})
			return
		}

		review := models.Review{
			OrderID:      req.OrderID,
			UserID:       userID,
			RestaurantID: order.RestaurantID,
			Rating:       req.Rating,
			Comment:      req.Comment,
			Status:       models.ReviewStatusApproved,
		}
		if err := db.Create(&review).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "You have already submitted a review for this order"})
			return
		}

		if _, err := RecomputeRestaurantRating(db, order.RestaurantID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant rating"})
			return
		}

		db.Preload("User").First(&review, review.ID)
		c.JSON(http.StatusCreated, gin.H{"message": "Review submitted successfully", "review": review})
	}
}

// GET /api/reviews/restaurant/:restaurantId — public, approved reviews only.
func GetRestaurantReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurantID := c.Param("restaurantId")
		page, limit := pagination(c)

		var reviews []models.Review
		if err := db.Where("restaurant_id = ? AND status = ?", restaurantID, models.ReviewStatusApproved).
			Preload("User").
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		var total int64
		db.Model(&models.Review{}).
			Where("restaurant_id = ? AND status = ?", restaurantID, models.ReviewStatusApproved).
			Count(&total)

		totalPages := int(total) / limit
		if int(total)%limit != 0 {
			totalPages++
		}

		c.JSON(http.StatusOK, gin.H{
			"reviews":       reviews,
			"total_reviews": total,
			"total_pages":   totalPages,
			"current_page":  page,
		})
	}
}

// GET /api/reviews/user — the caller's own reviews.
func GetUserReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pagination(c)
		userID := middleware.CurrentUserID(c)

		var reviews []models.Review
		if err := db.Where("user_id = ?", userID).
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		var total int64
		db.Model(&models.Review{}).Where("user_id = ?", userID).Count(&total)

		c.JSON(http.StatusOK, gin.H{"reviews": reviews, "total_reviews": total, "current_page": page})
	}
}

// GET /api/reviews/check/:orderId — has this order been reviewed yet?
func CheckOrderReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.CurrentUserID(c)

		var order models.Order
		if err := db.Where("id = ? AND user_id = ?", c.Param("orderId"), userID).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found", "has_review": false})
			return
		}

		var review models.Review
		if err := db.Where("order_id = ?", order.ID).First(&review).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"has_review": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"has_review": true, "review_id": review.ID})
	}
}

// GET /api/reviews/featured — top-rated approved reviews for the home page.
func GetFeaturedReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reviews []models.Review
		if err := db.Where("status = ?", models.ReviewStatusApproved).
			Preload("User").
			Order("rating DESC, created_at DESC").
			Limit(5).
			Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

// PUT /api/reviews/:reviewId — revise one's own review; resets moderation.
func UpdateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var review models.Review
		if err := db.Where("id = ? AND user_id = ?", c.Param("reviewId"), middleware.CurrentUserID(c)).
			First(&review).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}

		var req UpdateReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if req.Rating != 0 {
			if req.Rating < 1 || req.Rating > 5 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
				return
			}
			review.Rating = req.Rating
		}
		if req.Comment != "" {
			if len(req.Comment) > 500 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Comment cannot exceed 500 characters"})
				return
			}
			review.Comment = req.Comment
		}
		review.Status = models.ReviewStatusPending // back through moderation

		if err := db.Save(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
			return
		}

		stats, err := RecomputeRestaurantRating(db, review.RestaurantID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant rating"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Review updated successfully", "review": review, "restaurant_stats": stats})
	}
}

// DELETE /api/reviews/:reviewId
func DeleteReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var review models.Review
		if err := db.Where("id = ? AND user_id = ?", c.Param("reviewId"), middleware.CurrentUserID(c)).
			First(&review).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		if err := db.Delete(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
			return
		}
		if _, err := RecomputeRestaurantRating(db, review.RestaurantID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant rating"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
	}
}

// POST /api/reviews/:reviewId/vote
func VoteReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var review models.Review
		if err := db.First(&review, "id = ?", c.Param("reviewId")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		if err := db.Model(&review).UpdateColumn("helpful_votes", gorm.Expr("helpful_votes + 1")).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to vote review"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Vote recorded successfully", "helpful_votes": review.HelpfulVotes + 1})
	}
}

// POST /api/reviews/:reviewId/report — enough reports hides the review.
func ReportReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var review models.Review
		if err := db.First(&review, "id = ?", c.Param("reviewId")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}

		review.ReportCount++
		if review.ReportCount >= autoRejectReportCount {
			review.Status = models.ReviewStatusRejected
		}
		if err := db.Save(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to report review"})
			return
		}
		if review.Status == models.ReviewStatusRejected {
			RecomputeRestaurantRating(db, review.RestaurantID)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Review reported successfully"})
	}
}

// POST /api/reviews/:reviewId/respond — restaurant owner's reply.
func RespondToReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Response string `json:"response" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Response text is required"})
			return
		}

		var review models.Review
		if err := db.First(&review, "id = ?", c.Param("reviewId")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}

		var restaurant models.Restaurant
		if err := db.Where("id = ? AND admin_id = ?", review.RestaurantID, middleware.CurrentUserID(c)).
			First(&restaurant).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to respond to this review"})
			return
		}

		now := time.Now()
		review.ResponseText = req.Response
		review.RespondedAt = &now
		if err := db.Save(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add response"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Response added successfully", "review": review})
	}
}

// PUT /api/reviews/:reviewId/approve — moderation.
func ApproveReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var review models.Review
		if err := db.First(&review, "id = ?", c.Param("reviewId")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}

		review.Status = models.ReviewStatusApproved
		if err := db.Save(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve review"})
			return
		}
		if _, err := RecomputeRestaurantRating(db, review.RestaurantID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant rating"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Review approved successfully", "review": review})
	}
}
