package config

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Config holds everything handlers need: env settings, the shared Mongo
// client and the application logger.
type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	JWTSecret   string
	ClientURL   string
	ServerURL   string
	ImagesDir   string
	CORSOrigins string

	SMTP       SMTPConfig
	Cloudinary CloudinaryConfig

	GeocodeBaseURL string

	MongoClient *mongo.Client
	Logger      *zap.SugaredLogger
}

// SMTPConfig holds outbound mail settings (gmail-style defaults).
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// CloudinaryConfig is optional; when CloudName is set uploads go to
// Cloudinary instead of local disk.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "465"))

	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "bhetghat"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		ClientURL:   getEnv("CLIENT_URL", "http://localhost:5173"),
		ServerURL:   getEnv("SERVER_URL", "http://localhost:3000"),
		ImagesDir:   getEnv("IMAGES_DIR", "images"),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		SMTP: SMTPConfig{
			Host: getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port: smtpPort,
			User: getEnv("EMAIL_USER", ""),
			Pass: getEnv("EMAIL_PASS", ""),
			From: getEnv("EMAIL_FROM", getEnv("EMAIL_USER", "")),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		},
		GeocodeBaseURL: getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
	}
	return cfg, nil
}

// ConnectMongo dials MongoDB and pings it so startup fails fast on a bad URI.
func (c *Config) ConnectMongo(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.MongoURI))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}
	c.MongoClient = client
	return nil
}

// Collection is a shorthand for the named collection in the app database.
func (c *Config) Collection(name string) *mongo.Collection {
	return c.MongoClient.Database(c.DBName).Collection(name)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
