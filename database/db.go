package database

import (
	"context"
	"log"
	"time"

	"transformai/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is the global MongoDB client instance. It stays nil when the
// server runs on the in-memory storage backend.
var MongoClient *mongo.Client

// InitDB initializes the MongoDB connection. A connection failure is returned
// rather than fatal so the caller can fall back to in-memory storage.
func InitDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}
	MongoClient = client
	log.Println("Connected to MongoDB successfully!")
	return nil
}

// DB returns a handle to the configured application database.
func DB() *mongo.Database {
	return MongoClient.Database(config.AppConfig.DatabaseName)
}
