package routes

import (
	"github.com/gin-gonic/gin"
	reviewControllers "github.com/thebilalkhokhar/EatsOnline/controllers/review"
	"github.com/thebilalkhokhar/EatsOnline/middleware"
	"gorm.io/gorm"
)

func SetupReviewRoutes(api *gin.RouterGroup, db *gorm.DB) {
	reviews := api.Group("/reviews")
	{
		// Public listings for restaurant pages and the landing page
		reviews.GET("/restaurant/:restaurantId", reviewControllers.GetRestaurantReviews(db))
		reviews.GET("/featured", reviewControllers.GetFeaturedReviews(db))

		authed := reviews.Group("")
		authed.Use(middleware.ValidateToken)
		{
			authed.POST("", reviewControllers.SubmitReview(db))
			authed.GET("/user", reviewControllers.GetUserReviews(db))
			authed.GET("/check/:orderId", reviewControllers.CheckOrderReview(db))
			authed.PUT("/:reviewId", reviewControllers.UpdateReview(db))
			authed.DELETE("/:reviewId", reviewControllers.DeleteReview(db))
			authed.POST("/:reviewId/vote", reviewControllers.VoteReview(db))
			authed.POST("/:reviewId/report", reviewControllers.ReportReview(db))
		}

		owner := reviews.Group("")
		owner.Use(middleware.ValidateToken, middleware.AdminOnly)
		{
			owner.POST("/:reviewId/respond", reviewControllers.RespondToReview(db))
			owner.PUT("/:reviewId/approve", reviewControllers.ApproveReview(db))
		}
	}
}
