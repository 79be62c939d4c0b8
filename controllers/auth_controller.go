package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/bhetghat/bhetghat-server/config"
	"github.com/bhetghat/bhetghat-server/models"
	"github.com/bhetghat/bhetghat-server/utils"
)

const bcryptCost = 10

// ---------------- REGISTER ----------------

// Register checks uniqueness and emails a verification link. Nothing is
// persisted until the link is visited: the pending user travels inside the
// signed token.
func Register(cfg *config.Config, tokens *utils.TokenService, mailer utils.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input utils.PendingUser
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error during registration", "error": err.Error()})
			return
		}
		if input.Username == "" || input.Email == "" || input.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "username, email and password are required"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		filter := bson.M{"$or": []bson.M{
			{"username": input.Username},
			{"email": input.Email},
		}}
		count, err := cfg.Collection("credentials").CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error during registration", "error": err.Error()})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username or email already exists"})
			return
		}

		token, err := tokens.NewRegistrationToken(input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error during registration", "error": err.Error()})
			return
		}

		link := cfg.ServerURL + "/api/auth/verify?token=" + token
		if err := mailer.SendVerification(input.Email, link); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error sending email", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Verification email sent. Please check your inbox."})
	}
}

// ---------------- VERIFY ----------------

// VerifyUser decodes the emailed token and persists the user, then sends
// the browser to the client success page.
func VerifyUser(cfg *config.Config, tokens *utils.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.Query("token")
		if tokenString == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "No token provided"})
			return
		}

		pending, err := tokens.ParseRegistrationToken(tokenString)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Verification failed", "error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		creds := cfg.Collection("credentials")
		count, err := creds.CountDocuments(ctx, bson.M{"email": pending.Email})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Verification failed", "error": err.Error()})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already verified or registered"})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(pending.Password), bcryptCost)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Verification failed", "error": err.Error()})
			return
		}

		user := models.Credential{
			ID:             primitive.NewObjectID(),
			Username:       pending.Username,
			Email:          pending.Email,
			Password:       string(hashed),
			ProfilePicture: pending.ProfilePicture,
			Bio:            pending.Bio,
			CreatedAt:      time.Now(),
		}
		if _, err := creds.InsertOne(ctx, user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Verification failed", "error": err.Error()})
			return
		}

		c.Redirect(http.StatusFound, cfg.ClientURL+"/verify-success")
	}
}

// ---------------- LOGIN ----------------

// Login issues a two-hour session token. Unknown usernames and wrong
// passwords produce the identical response so callers cannot enumerate
// accounts.
func Login(cfg *config.Config, tokens *utils.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error logging in", "error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var cred models.Credential
		err := cfg.Collection("credentials").FindOne(ctx, bson.M{"username": input.Username}).Decode(&cred)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"message": "Invalid username or password"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(cred.Password), []byte(input.Password)); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"message": "Invalid username or password"})
			return
		}

		token, err := tokens.NewSessionToken(cred.Username, cred.ID.Hex())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging in", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   token,
			"userId":  cred.ID.Hex(),
		})
	}
}

// ---------------- PROFILE PICTURE ----------------
func UploadProfilePicture(store utils.FileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := c.FormFile("profilePicture")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
			return
		}

		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading image", "error": err.Error()})
			return
		}
		defer file.Close()

		path, err := store.Save(file, header)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading image", "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Image uploaded successfully", "data": path})
	}
}

// ---------------- GET USER ----------------
func GetUserByID(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.Credential
		if err := cfg.Collection("credentials").FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		// Password hash is excluded by the model's json tag.
		c.JSON(http.StatusOK, user)
	}
}
