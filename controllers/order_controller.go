package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bhetghat/bhetghat-server/config"
	"github.com/bhetghat/bhetghat-server/models"
	"github.com/bhetghat/bhetghat-server/utils"
)

// ---------------- CREATE ----------------

// CreateOrder persists the order first, then attempts the confirmation
// email with the referenced product files attached. The order is created
// in "pending" status and transitions to "confirmed" or
// "confirmation_failed"; an email failure never loses the order and is
// reported through the status, not as a creation failure.
func CreateOrder(cfg *config.Config, store utils.FileStore, mailer utils.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := c.ShouldBindJSON(&order); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to create order", "error": err.Error()})
			return
		}

		order.ID = primitive.NewObjectID()
		order.Status = models.OrderPending
		order.CreatedAt = time.Now()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		orders := cfg.Collection("orders")
		if _, err := orders.InsertOne(ctx, order); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create order", "error": err.Error()})
			return
		}

		order.Status = confirmOrder(ctx, cfg, store, mailer, &order)
		setOrderStatus(cfg, order.ID, order.Status)

		c.JSON(http.StatusCreated, order)
	}
}

// ---------------- RESEND CONFIRMATION ----------------

// ResendConfirmation retries the confirmation email for an order whose
// first attempt failed.
func ResendConfirmation(cfg *config.Config, store utils.FileStore, mailer utils.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		orders := cfg.Collection("orders")
		var order models.Order
		if err := orders.FindOne(ctx, bson.M{"_id": oid}).Decode(&order); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		if order.Status == models.OrderConfirmed {
			c.JSON(http.StatusConflict, gin.H{"message": "Order already confirmed"})
			return
		}

		order.Status = confirmOrder(ctx, cfg, store, mailer, &order)
		setOrderStatus(cfg, order.ID, order.Status)

		c.JSON(http.StatusOK, order)
	}
}

// ---------------- LIST BY EMAIL ----------------
func GetOrdersByEmail(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := cfg.Collection("orders").Find(ctx, bson.M{"email": email}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order", "error": err.Error()})
			return
		}

		var results []models.Order
		if err := cursor.All(ctx, &results); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order", "error": err.Error()})
			return
		}

		// Empty result sets report not-found, matching the historical API.
		if len(results) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}

		c.JSON(http.StatusOK, results)
	}
}

// ---------------- LIST ALL ----------------
func GetAllOrders(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := cfg.Collection("orders").Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching all orders", "error": err.Error()})
			return
		}

		var results []models.Order
		if err := cursor.All(ctx, &results); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching all orders", "error": err.Error()})
			return
		}

		if len(results) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "No orders found"})
			return
		}

		c.JSON(http.StatusOK, results)
	}
}

// ---------------- helpers ----------------

// confirmOrder sends the confirmation email and returns the resulting
// status. Attachments are the non-null eventFile values among the
// referenced products.
func confirmOrder(ctx context.Context, cfg *config.Config, store utils.FileStore, mailer utils.Mailer, order *models.Order) string {
	cursor, err := cfg.Collection("products").Find(ctx, bson.M{"_id": bson.M{"$in": order.ProductIDs}})
	if err != nil {
		cfg.Logger.Errorw("order confirmation: product lookup failed", "order", order.ID.Hex(), "error", err)
		return models.OrderConfirmationFailed
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		cfg.Logger.Errorw("order confirmation: product decode failed", "order", order.ID.Hex(), "error", err)
		return models.OrderConfirmationFailed
	}

	attachments := AttachmentPaths(store, products, cfg.Logger.Infow)
	if err := mailer.SendOrderConfirmation(order.Email, order.Name, attachments); err != nil {
		return models.OrderConfirmationFailed
	}
	return models.OrderConfirmed
}

// setOrderStatus persists the confirmation outcome. The SMTP send has no
// deadline and may have exhausted the request budget, so the write runs
// on its own context.
func setOrderStatus(cfg *config.Config, id primitive.ObjectID, status string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := cfg.Collection("orders").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		cfg.Logger.Errorw("order status update failed", "order", id.Hex(), "error", err)
	}
}

// AttachmentPaths resolves the ordered products' event files to local disk
// paths for mailing. Remote URLs (Cloudinary-backed files) cannot be
// attached from disk and are skipped with a log line.
func AttachmentPaths(store utils.FileStore, products []models.Product, logf func(msg string, kv ...interface{})) []string {
	type localResolver interface {
		LocalPath(publicPath string) string
	}

	var paths []string
	for _, p := range products {
		if p.EventFile == nil || *p.EventFile == "" {
			continue
		}
		file := *p.EventFile
		if strings.HasPrefix(file, "http://") || strings.HasPrefix(file, "https://") {
			if logf != nil {
				logf("skipping remote attachment", "file", file)
			}
			continue
		}
		if r, ok := store.(localResolver); ok {
			paths = append(paths, r.LocalPath(file))
		}
	}
	return paths
}
