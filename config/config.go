package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Config struct {
	MongoClient  *mongo.Client
	DBName       string
	JWTSecret    []byte
	StripeSecret string
	Port         string
}

// Load reads the environment, connects to MongoDB and ensures indexes.
// Fatal on anything the server cannot run without.
func Load() *Config {
	uri := os.Getenv("MONGOURI")
	if uri == "" {
		log.Fatal("MONGOURI environment variable not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	log.Println("Successfully connected to MongoDB")

	cfg := &Config{
		MongoClient:  client,
		DBName:       envOr("DB_NAME", "crowdfund"),
		JWTSecret:    []byte(secret),
		StripeSecret: os.Getenv("STRIPE_SECRET"),
		Port:         envOr("PORT", "8080"),
	}
	cfg.ensureIndexes(ctx)

	return cfg
}

// ensureIndexes backs the duplicate-email check at the store level.
func (cfg *Config) ensureIndexes(ctx context.Context) {
	users := cfg.MongoClient.Database(cfg.DBName).Collection("users")
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("could not ensure unique email index: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
