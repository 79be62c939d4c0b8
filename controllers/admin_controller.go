package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bhetghat/bhetghat-server/config"
)

// MonthlySales is one month's order volume for the dashboard chart.
type MonthlySales struct {
	Month       string  `bson:"_id" json:"month"` // "2025-06"
	TotalOrders int64   `bson:"totalOrders" json:"totalOrders"`
	TotalSales  float64 `bson:"totalSales" json:"totalSales"`
}

// GetAdminStats aggregates the dashboard numbers: totals across orders and
// products plus a per-month sales breakdown.
func GetAdminStats(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		orders := cfg.Collection("orders")
		products := cfg.Collection("products")

		totalOrders, err := orders.CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch admin stats", "error": err.Error()})
			return
		}

		totalProducts, err := products.CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch admin stats", "error": err.Error()})
			return
		}

		freeProducts, err := products.CountDocuments(ctx, bson.M{"price": 0})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch admin stats", "error": err.Error()})
			return
		}

		// Total sales: sum of the stored (client-supplied) order totals.
		salesPipeline := []bson.M{
			{"$group": bson.M{
				"_id":        nil,
				"totalSales": bson.M{"$sum": "$totalPrice"},
			}},
		}
		cursor, err := orders.Aggregate(ctx, salesPipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch admin stats", "error": err.Error()})
			return
		}
		var salesRow []struct {
			TotalSales float64 `bson:"totalSales"`
		}
		if err := cursor.All(ctx, &salesRow); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch admin stats", "error": err.Error()})
			return
		}
		totalSales := 0.0
		if len(salesRow) > 0 {
			totalSales = salesRow[0].TotalSales
		}

		// Monthly breakdown, oldest month first.
		monthlyPipeline := []bson.M{
			{"$group": bson.M{
				"_id":         bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$createdAt"}},
				"totalOrders": bson.M{"$sum": 1},
				"totalSales":  bson.M{"$sum": "$totalPrice"},
			}},
			{"$sort": bson.M{"_id": 1}},
		}
		cursor, err = orders.Aggregate(ctx, monthlyPipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch admin stats", "error": err.Error()})
			return
		}
		monthly := []MonthlySales{}
		if err := cursor.All(ctx, &monthly); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch admin stats", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"totalOrders":   totalOrders,
			"totalSales":    totalSales,
			"totalProducts": totalProducts,
			"freeProducts":  freeProducts,
			"paidProducts":  totalProducts - freeProducts,
			"monthlySales":  monthly,
		})
	}
}
