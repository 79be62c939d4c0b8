package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bhetghat/bhetghat-server/config"
	"github.com/bhetghat/bhetghat-server/models"
	"github.com/bhetghat/bhetghat-server/utils"
)

// Form fields shared by create and edit. File parts (eventImage, eventFile,
// profileImage) are read from the multipart form separately.
type productForm struct {
	Title         string `form:"title"`
	OrganizerName string `form:"organizerName"`
	Description   string `form:"description"`
	Price         string `form:"price"`
	IsFree        string `form:"isFree"`
	Category      string `form:"category"`
	Date          string `form:"date"`
	Time          string `form:"time"`
	Venue         string `form:"venue"`
	Location      string `form:"location"`
}

var productFileFields = []string{"eventImage", "eventFile", "profileImage"}

// ---------------- CREATE ----------------
func CreateProduct(cfg *config.Config, store utils.FileStore, geo *utils.Geocoder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input productForm
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "File upload failed", "error": err.Error()})
			return
		}

		if msg := validateRequired(input); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": msg})
			return
		}

		price, err := resolvePrice(input.Price, input.IsFree)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		files, ok := saveProductFiles(c, store)
		if !ok {
			return
		}

		venue := nullable(input.Venue)
		if venue == nil {
			if name := enrichVenue(geo, input.Location); name != "" {
				venue = &name
			}
		}

		now := time.Now()
		product := models.Product{
			ID:            primitive.NewObjectID(),
			Title:         input.Title,
			OrganizerName: input.OrganizerName,
			Description:   nullable(input.Description),
			Price:         price,
			Category:      input.Category,
			Date:          nullable(input.Date),
			Time:          nullable(input.Time),
			Venue:         venue,
			Location:      nullable(input.Location),
			EventImage:    files["eventImage"],
			EventFile:     files["eventFile"],
			ProfileImage:  files["profileImage"],
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := cfg.Collection("products").InsertOne(ctx, product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create product", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product created successfully", "product": product})
	}
}

// ---------------- LIST ----------------
func GetAllProducts(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := cfg.Collection("products").Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
			return
		}

		products := []models.Product{}
		if err := cursor.All(ctx, &products); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

// ---------------- GET ----------------
func GetSingleProduct(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var product models.Product
		if err := cfg.Collection("products").FindOne(ctx, bson.M{"_id": oid}).Decode(&product); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found!"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// ---------------- UPDATE ----------------
func UpdateProduct(cfg *config.Config, store utils.FileStore, geo *utils.Geocoder) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
			return
		}

		var input productForm
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "File upload failed", "error": err.Error()})
			return
		}

		update := bson.M{"updatedAt": time.Now()}

		// The edit form replaces the full mutable field set: optional text
		// fields go back to null when cleared.
		if input.Title != "" {
			if len(input.Title) > models.MaxTitleLen {
				c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("title must be at most %d characters", models.MaxTitleLen)})
				return
			}
			update["title"] = input.Title
		}
		if input.OrganizerName != "" {
			if len(input.OrganizerName) > models.MaxTitleLen {
				c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("organizerName must be at most %d characters", models.MaxTitleLen)})
				return
			}
			update["organizerName"] = input.OrganizerName
		}
		if input.Category != "" {
			update["category"] = input.Category
		}
		if input.Price != "" || input.IsFree != "" {
			price, err := resolvePrice(input.Price, input.IsFree)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			update["price"] = price
		}
		update["description"] = nullable(input.Description)
		update["date"] = nullable(input.Date)
		update["time"] = nullable(input.Time)
		update["location"] = nullable(input.Location)

		// Venue is kept as-is unless the form supplies one, or a new
		// location was provided that reverse-geocodes to a name.
		if input.Venue != "" {
			update["venue"] = &input.Venue
		} else if name := enrichVenue(geo, input.Location); name != "" {
			update["venue"] = &name
		}

		// Replace only the file slots a new upload was sent for.
		files, ok := saveProductFiles(c, store)
		if !ok {
			return
		}
		for _, field := range productFileFields {
			if files[field] != nil {
				update[field] = files[field]
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		var updated models.Product
		err = cfg.Collection("products").
			FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": update}, opts).
			Decode(&updated)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found!"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": updated})
	}
}

// ---------------- DELETE ----------------
func DeleteProduct(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// Orders referencing this product keep their ids; deletion never
		// cascades.
		var deleted models.Product
		err = cfg.Collection("products").
			FindOneAndDelete(ctx, bson.M{"_id": oid}).
			Decode(&deleted)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found!"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully", "product": deleted})
	}
}

// ---------------- helpers ----------------

func validateRequired(input productForm) string {
	switch {
	case input.Title == "":
		return "title is required"
	case len(input.Title) > models.MaxTitleLen:
		return fmt.Sprintf("title must be at most %d characters", models.MaxTitleLen)
	case input.OrganizerName == "":
		return "organizerName is required"
	case len(input.OrganizerName) > models.MaxTitleLen:
		return fmt.Sprintf("organizerName must be at most %d characters", models.MaxTitleLen)
	case input.Category == "":
		return "category is required"
	}
	return ""
}

// resolvePrice applies the free-event rule: an empty price or an explicit
// isFree flag stores 0.
func resolvePrice(price, isFree string) (float64, error) {
	if isFree == "true" || price == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", price)
	}
	if v < 0 {
		return 0, fmt.Errorf("price must be a positive number")
	}
	return v, nil
}

// saveProductFiles stores whichever of the three named file parts were
// uploaded. On failure it writes the error response and returns ok=false.
func saveProductFiles(c *gin.Context, store utils.FileStore) (map[string]*string, bool) {
	out := map[string]*string{}
	for _, field := range productFileFields {
		header, err := c.FormFile(field)
		if err != nil {
			continue // slot not provided
		}
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "File upload failed", "error": err.Error()})
			return nil, false
		}
		path, err := store.Save(file, header)
		file.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "File upload failed", "error": err.Error()})
			return nil, false
		}
		out[field] = &path
	}
	return out, true
}

// enrichVenue fills a missing venue from a "lat,lng" location via reverse
// geocoding. Best effort: failures leave the venue empty.
func enrichVenue(geo *utils.Geocoder, location string) string {
	if geo == nil {
		return ""
	}
	lat, lng, ok := utils.ParseLatLng(location)
	if !ok {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	name, err := geo.Reverse(ctx, lat, lng)
	if err != nil {
		return ""
	}
	return name
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
