package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/HunainMulla/Crowdfund-backend/config"
	models "github.com/HunainMulla/Crowdfund-backend/models"
)

// ---------------- ADMIN: USERS ----------------
func AdminUsers(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		col := usersCollection(cfg)

		cursor, err := col.Find(ctx, bson.M{}, options.Find().
			SetProjection(bson.M{"password": 0}).
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(int64((page-1)*limit)).
			SetLimit(int64(limit)))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch users"})
			return
		}

		var users []models.User
		if err := cursor.All(ctx, &users); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode users"})
			return
		}

		total, err := col.CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch users"})
			return
		}

		formatted := []gin.H{}
		for i := range users {
			u := &users[i]
			location := u.Location
			if location == "" {
				location = "Not specified"
			}
			formatted = append(formatted, gin.H{
				"id":             u.ID,
				"name":           u.Name,
				"email":          u.Email,
				"avatar":         u.AvatarOrDefault(),
				"location":       location,
				"joinedDate":     u.CreatedAt.Format("2006-01-02"),
				"campaignsCount": len(u.Campaigns),
				"totalRaised":    u.TotalRaised(),
				"isAdmin":        u.IsAdmin,
				"status":         "active",
			})
		}

		totalPages := int((total + int64(limit) - 1) / int64(limit))
		c.JSON(http.StatusOK, gin.H{
			"users": formatted,
			"pagination": gin.H{
				"currentPage": page,
				"totalPages":  totalPages,
				"totalUsers":  total,
			},
		})
	}
}

// ---------------- ADMIN: CAMPAIGNS ----------------
// Flattens every user's campaigns and paginates the sorted slice in
// memory, same as the public listing does.
func AdminCampaigns(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		skip := (page - 1) * limit

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		views, err := loadCampaignViews(ctx, cfg)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch campaigns"})
			return
		}

		total := len(views)
		if skip > total {
			skip = total
		}
		end := skip + limit
		if end > total {
			end = total
		}

		totalPages := (total + limit - 1) / limit
		c.JSON(http.StatusOK, gin.H{
			"campaigns": views[skip:end],
			"pagination": gin.H{
				"currentPage":    page,
				"totalPages":     totalPages,
				"totalCampaigns": total,
			},
		})
	}
}

// ---------------- ADMIN: DELETE CAMPAIGN ----------------
func AdminDeleteCampaign(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		campaignID, err := primitive.ObjectIDFromHex(c.Param("campaignId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		col := usersCollection(cfg)

		var owner models.User
		if err := col.FindOne(ctx, bson.M{"_id": userID}).Decode(&owner); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		campaign := owner.FindCampaign(campaignID)
		if campaign == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}

		_, err = col.UpdateOne(ctx,
			bson.M{"_id": userID},
			bson.M{"$pull": bson.M{"campaigns": bson.M{"_id": campaignID}}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete campaign"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "Campaign deleted successfully by admin",
			"campaign": campaign.Name,
		})
	}
}

// ---------------- ADMIN: DELETE USER ----------------
// Embedded campaigns vanish with the document; nothing else cascades.
func AdminDeleteUser(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := usersCollection(cfg).DeleteOne(ctx, bson.M{"_id": userID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete user"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}

// ---------------- ADMIN: GRANT ADMIN ----------------
func MakeAdmin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := usersCollection(cfg).UpdateOne(ctx,
			bson.M{"email": input.Email},
			bson.M{"$set": bson.M{"is_admin": true}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update user"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User is now an admin", "email": input.Email})
	}
}

// ---------------- ADMIN: POSTS ----------------
func AdminPosts(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)

		filter := bson.M{}
		if category := c.Query("category"); category != "" && category != "All" {
			filter["category"] = category
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		col := postsCollection(cfg)

		cursor, err := col.Find(ctx, filter, options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(int64((page-1)*limit)).
			SetLimit(int64(limit)))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch posts"})
			return
		}

		var posts []models.Post
		if err := cursor.All(ctx, &posts); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode posts"})
			return
		}

		total, err := col.CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch posts"})
			return
		}

		now := time.Now()
		formatted := []gin.H{}
		for i := range posts {
			p := &posts[i]
			view := models.NewPostView(p, now)
			// truncate body for the admin panel
			content := p.Content
			if len(content) > 100 {
				content = content[:100] + "..."
			}
			formatted = append(formatted, gin.H{
				"id":           view.ID,
				"title":        view.Title,
				"content":      content,
				"image":        view.Image,
				"authorName":   view.AuthorName,
				"authorAvatar": view.AuthorAvatar,
				"category":     view.Category,
				"tags":         view.Tags,
				"likes":        view.Likes,
				"comments":     view.Comments,
				"createdAt":    view.CreatedAt,
				"timeAgo":      view.TimeAgo,
				"status":       "active",
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"posts":      formatted,
			"pagination": models.NewPagination(page, limit, total),
		})
	}
}

// ---------------- ADMIN: DELETE POST ----------------
func AdminDeletePost(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, err := primitive.ObjectIDFromHex(c.Param("postId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := postsCollection(cfg).DeleteOne(ctx, bson.M{"_id": postID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete post"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully by admin"})
	}
}
