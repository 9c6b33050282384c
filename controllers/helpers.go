package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	config "github.com/HunainMulla/Crowdfund-backend/config"
	models "github.com/HunainMulla/Crowdfund-backend/models"
)

func usersCollection(cfg *config.Config) *mongo.Collection {
	return cfg.MongoClient.Database(cfg.DBName).Collection("users")
}

func postsCollection(cfg *config.Config) *mongo.Collection {
	return cfg.MongoClient.Database(cfg.DBName).Collection("posts")
}

// currentUser loads the caller's user document from the email claim set by
// the auth middleware. A valid token whose user has since been deleted is
// a 404, not a 401.
func currentUser(ctx context.Context, c *gin.Context, cfg *config.Config) (*models.User, bool) {
	email := c.GetString("email")

	var user models.User
	err := usersCollection(cfg).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return nil, false
	}
	return &user, true
}

// publicUser strips credentials for response bodies.
func publicUser(u *models.User) gin.H {
	return gin.H{
		"id":       u.ID,
		"name":     u.Name,
		"email":    u.Email,
		"mobile":   u.Mobile,
		"location": u.Location,
		"bio":      u.Bio,
		"avatar":   u.AvatarOrDefault(),
		"isAdmin":  u.IsAdmin,
	}
}
