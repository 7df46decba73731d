package reviewControllers

import (
	"github.com/thebilalkhokhar/EatsOnline/models"
	"gorm.io/gorm"
)

// RecomputeRestaurantRating rescans approved and pending reviews for the
// restaurant and writes the aggregate back. Rejected reviews never count.
func RecomputeRestaurantRating(db *gorm.DB, restaurantID uint) (models.Rating, error) {
	var reviews []models.Review
	if err := db.Where("restaurant_id = ? AND status IN ?", restaurantID,
		[]models.ReviewStatus{models.ReviewStatusApproved, models.ReviewStatusPending}).
		Find(&reviews).Error; err != nil {
		return models.Rating{}, err
	}

	var rating models.Rating
	var sum int
	for _, r := range reviews {
		sum += r.Rating
		switch r.Rating {
		case 1:
			rating.Star1++
		case 2:
			rating.Star2++
		case 3:
			rating.Star3++
		case 4:
			rating.Star4++
		case 5:
			rating.Star5++
		}
	}
	rating.Total = len(reviews)
	if rating.Total > 0 {
		rating.Average = float64(sum) / float64(rating.Total)
	}

	err := db.Model(&models.Restaurant{}).Where("id = ?", restaurantID).
		Updates(map[string]interface{}{
			"rating_average": rating.Average,
			"rating_total":   rating.Total,
			"rating_star1":   rating.Star1,
			"rating_star2":   rating.Star2,
			"rating_star3":   rating.Star3,
			"rating_star4":   rating.Star4,
			"rating_star5":   rating.Star5,
		}).Error
	return rating, err
}
