package reportControllers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thebilalkhokhar/EatsOnline/middleware"
	"github.com/thebilalkhokhar/EatsOnline/models"
	"gorm.io/gorm"
)

type PeriodSales struct {
	Period string  `json:"period"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

type ProductSales struct {
	ProductID  uint    `json:"product_id"`
	Name       string  `json:"name"`
	TotalSales float64 `json:"total_sales"`
	UnitsSold  int     `json:"units_sold"`
}

type SalesReport struct {
	TotalSales    float64        `json:"total_sales"`
	TotalOrders   int            `json:"total_orders"`
	AvgOrderValue float64        `json:"avg_order_value"`
	SalesByPeriod []PeriodSales  `json:"sales_by_period"`
	TopProducts   []ProductSales `json:"top_products"`
}

// bucketLabel buckets a timestamp by calendar boundaries in server-local
// time. Daily buckets are dates, weekly are ISO weeks, monthly are months.
func bucketLabel(t time.Time, period string) string {
	switch period {
	case "weekly":
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case "monthly":
		return t.Format("Jan 2006")
	default:
		return t.Format("2006-01-02")
	}
}

// BuildSalesReport aggregates the restaurant's orders in the window into
// totals, a per-bucket breakdown, and a top-5 product ranking.
func BuildSalesReport(db *gorm.DB, restaurantID uint, period string, start, end *time.Time) (*SalesReport, error) {
	query := db.Where("restaurant_id = ?", restaurantID)

	now := time.Now()
	switch {
	case start != nil && end != nil:
		query = query.Where("created_at BETWEEN ? AND ?", *start, *end)
	case period == "weekly":
		query = query.Where("created_at >= ?", now.AddDate(0, 0, -7))
	case period == "monthly":
		query = query.Where("created_at >= ?", now.AddDate(0, 0, -30))
	default: // daily
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		query = query.Where("created_at >= ?", midnight)
	}

	var orders []models.Order
	if err := query.Preload("Items").Order("created_at ASC").Find(&orders).Error; err != nil {
		return nil, err
	}

	report := &SalesReport{
		SalesByPeriod: []PeriodSales{},
		TopProducts:   []ProductSales{},
	}
	if len(orders) == 0 {
		return report, nil
	}

	buckets := map[string]*PeriodSales{}
	var bucketOrder []string
	products := map[uint]*ProductSales{}

	for _, order := range orders {
		report.TotalSales += order.TotalPrice
		report.TotalOrders++

		label := bucketLabel(order.CreatedAt, period)
		bucket, ok := buckets[label]
		if !ok {
			bucket = &PeriodSales{Period: label}
			buckets[label] = bucket
			bucketOrder = append(bucketOrder, label)
		}
		bucket.Sales += order.TotalPrice
		bucket.Orders++

		for _, item := range order.Items {
			p, ok := products[item.ProductID]
			if !ok {
				p = &ProductSales{ProductID: item.ProductID, Name: item.ProductName}
				products[item.ProductID] = p
			}
			p.TotalSales += item.Price * float64(item.Quantity)
			p.UnitsSold += item.Quantity
		}
	}

	report.AvgOrderValue = report.TotalSales / float64(report.TotalOrders)

	for _, label := range bucketOrder {
		report.SalesByPeriod = append(report.SalesByPeriod, *buckets[label])
	}

	for _, p := range products {
		report.TopProducts = append(report.TopProducts, *p)
	}
	sort.Slice(report.TopProducts, func(i, j int) bool {
		return report.TopProducts[i].TotalSales > report.TopProducts[j].TotalSales
	})
	if len(report.TopProducts) > 5 {
		report.TopProducts = report.TopProducts[:5]
	}

	return report, nil
}

func parseReportQuery(c *gin.Context) (period string, start, end *time.Time, err error) {
	period = c.DefaultQuery("period", "daily")
	switch period {
	case "daily", "weekly", "monthly":
	default:
		return "", nil, nil, fmt.Errorf("invalid period %q", period)
	}

	if s := c.Query("startDate"); s != "" {
		t, perr := time.Parse("2006-01-02", s)
		if perr != nil {
			return "", nil, nil, fmt.Errorf("invalid startDate")
		}
		start = &t
	}
	if e := c.Query("endDate"); e != "" {
		t, perr := time.Parse("2006-01-02", e)
		if perr != nil {
			return "", nil, nil, fmt.Errorf("invalid endDate")
		}
		// inclusive end of day
		t = t.Add(24*time.Hour - time.Nanosecond)
		end = &t
	}
	if (start == nil) != (end == nil) {
		return "", nil, nil, fmt.Errorf("startDate and endDate must be given together")
	}
	return period, start, end, nil
}

// GET /api/admin/reports/sales
func SalesReportHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		period, start, end, err := parseReportQuery(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		report, err := BuildSalesReport(db, middleware.AdminRestaurantID(c), period, start, end)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sales report"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
	}
}

// GET /api/admin/dashboard
func DashboardHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurantID := middleware.AdminRestaurantID(c)

		var totalProducts, totalOrders, totalCategories int64
		db.Model(&models.Product{}).Where("restaurant_id = ?", restaurantID).Count(&totalProducts)
		db.Model(&models.Order{}).Where("restaurant_id = ?", restaurantID).Count(&totalOrders)
		db.Model(&models.Category{}).Where("restaurant_id = ?", restaurantID).Count(&totalCategories)

		var restaurant models.Restaurant
		if err := db.First(&restaurant, restaurantID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_products":   totalProducts,
			"total_orders":     totalOrders,
			"total_categories": totalCategories,
			"restaurant_info":  restaurant,
		})
	}
}
