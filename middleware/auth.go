package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	config "github.com/HunainMulla/Crowdfund-backend/config"
	models "github.com/HunainMulla/Crowdfund-backend/models"
	utils "github.com/HunainMulla/Crowdfund-backend/utils"
)

// AuthMiddleware verifies the bearer token and stores its claims on the
// context. Handlers re-derive the current user from the email claim.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, cfg)
		if !ok {
			return
		}
		c.Set("email", claims.Email)
		c.Set("is_admin", claims.Admin)
		c.Next()
	}
}

// AdminMiddleware additionally loads the user record and rejects callers
// without the admin flag.
func AdminMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, cfg)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		err := cfg.MongoClient.Database(cfg.DBName).Collection("users").
			FindOne(ctx, bson.M{"email": claims.Email}).
			Decode(&user)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		c.Set("email", user.Email)
		c.Set("is_admin", true)
		c.Next()
	}
}

func bearerClaims(c *gin.Context, cfg *config.Config) (*utils.TokenClaims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
		return nil, false
	}
	if !strings.HasPrefix(header, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
		return nil, false
	}

	claims, err := utils.ParseToken(cfg.JWTSecret, strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return nil, false
	}
	return claims, true
}
