package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	config "github.com/HunainMulla/Crowdfund-backend/config"
	models "github.com/HunainMulla/Crowdfund-backend/models"
	utils "github.com/HunainMulla/Crowdfund-backend/utils"
)

// ---------------- SIGNUP ----------------
func Signup(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
			Name     string `json:"name" binding:"required"`
			Mobile   string `json:"mobile"`
			Location string `json:"location"`
			Bio      string `json:"bio"`
			Avatar   string `json:"avatar"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		col := usersCollection(cfg)

		// pre-check; the unique index backs this under races
		count, err := col.CountDocuments(ctx, bson.M{"email": input.Email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
			return
		}

		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
			return
		}

		avatar := input.Avatar
		if avatar == "" {
			avatar = models.DefaultAvatar
		}

		user := models.User{
			ID:        primitive.NewObjectID(),
			Name:      input.Name,
			Email:     input.Email,
			Password:  hashed,
			Mobile:    input.Mobile,
			Location:  input.Location,
			Bio:       input.Bio,
			Avatar:    avatar,
			CreatedAt: time.Now(),
			Campaigns: []models.Campaign{},
		}

		if _, err := col.InsertOne(ctx, user); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
			return
		}

		token, err := utils.GenerateToken(cfg.JWTSecret, user.Email, user.IsAdmin)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User created successfully",
			"token":   token,
			"user":    publicUser(&user),
		})
	}
}

// ---------------- LOGIN ----------------
func Login(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		err := usersCollection(cfg).FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user not found"})
			return
		}

		if !utils.CheckPassword(user.Password, input.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid password"})
			return
		}

		token, err := utils.GenerateToken(cfg.JWTSecret, user.Email, user.IsAdmin)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   token,
			"user":    publicUser(&user),
		})
	}
}

// ---------------- LOGOUT ----------------
// Tokens are stateless; logout is an acknowledgement for the client.
func Logout(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}

// ---------------- PROFILE ----------------
func Profile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, ok := currentUser(ctx, c, cfg)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Profile route", "user": publicUser(user)})
	}
}

// ---------------- UPDATE PROFILE ----------------
func UpdateProfile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Phone    string `json:"phone"`
			Location string `json:"location"`
			Bio      string `json:"bio"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, ok := currentUser(ctx, c, cfg)
		if !ok {
			return
		}

		col := usersCollection(cfg)

		update := bson.M{}
		if input.Name != "" {
			update["name"] = input.Name
		}
		if input.Email != "" && input.Email != user.Email {
			count, err := col.CountDocuments(ctx, bson.M{"email": input.Email})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
				return
			}
			if count > 0 {
				c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
				return
			}
			update["email"] = input.Email
		}
		if input.Phone != "" {
			update["mobile"] = input.Phone
		}
		if input.Location != "" {
			update["location"] = input.Location
		}
		if input.Bio != "" {
			update["bio"] = input.Bio
		}

		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		if _, err := col.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": update}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
			return
		}

		var updated models.User
		if err := col.FindOne(ctx, bson.M{"_id": user.ID}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve updated profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Profile updated successfully",
			"user":    publicUser(&updated),
		})
	}
}

// ---------------- VERIFY PASSWORD ----------------
func VerifyPassword(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, ok := currentUser(ctx, c, cfg)
		if !ok {
			return
		}

		if !utils.CheckPassword(user.Password, input.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid password"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password verified successfully"})
	}
}
