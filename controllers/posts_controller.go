package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/HunainMulla/Crowdfund-backend/config"
	models "github.com/HunainMulla/Crowdfund-backend/models"
	utils "github.com/HunainMulla/Crowdfund-backend/utils"
)

// ---------------- CREATE ----------------
func CreatePost(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Title    string `json:"title"`
			Content  string `json:"content"`
			Image    string `json:"image"`
			Category string `json:"category"`
			Tags     string `json:"tags"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		title := strings.TrimSpace(input.Title)
		content := strings.TrimSpace(input.Content)
		if title == "" || content == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and content are required"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, ok := currentUser(ctx, c, cfg)
		if !ok {
			return
		}

		category := input.Category
		if category == "" {
			category = "General"
		}

		now := time.Now()
		post := models.Post{
			ID:           primitive.NewObjectID(),
			Title:        title,
			Content:      content,
			Image:        input.Image,
			Author:       user.ID,
			AuthorName:   user.Name,
			AuthorAvatar: user.AvatarOrDefault(),
			Category:     category,
			Tags:         models.ParseTags(input.Tags),
			Likes:        []primitive.ObjectID{},
			Comments:     []models.Comment{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if _, err := postsCollection(cfg).InsertOne(ctx, post); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create post"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Post created successfully",
			"post":    post,
		})
	}
}

// listPostPage runs the shared filter/sort/skip/limit query behind the
// public and per-user feeds.
func listPostPage(ctx context.Context, cfg *config.Config, filter bson.M, page, limit int) ([]models.PostView, models.Pagination, error) {
	col := postsCollection(cfg)

	cursor, err := col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page-1)*limit)).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, models.Pagination{}, err
	}

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, models.Pagination{}, err
	}

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	now := time.Now()
	views := []models.PostView{}
	for i := range posts {
		views = append(views, models.NewPostView(&posts[i], now))
	}

	return views, models.NewPagination(page, limit, total), nil
}

func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return page, limit
}

// ---------------- LIST (public) ----------------
func ListPosts(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)

		filter := bson.M{}
		if category := c.Query("category"); category != "" && category != "All" {
			filter["category"] = category
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		views, pagination, err := listPostPage(ctx, cfg, filter, page, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch posts"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"posts":      views,
			"pagination": pagination,
		})
	}
}

// ---------------- LIST BY AUTHOR (public) ----------------
func UserPosts(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorID, err := primitive.ObjectIDFromHex(c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		page, limit := pageParams(c)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		views, pagination, err := listPostPage(ctx, cfg, bson.M{"author": authorID}, page, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch posts"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"posts":      views,
			"pagination": pagination,
		})
	}
}

// ---------------- LIKE / UNLIKE ----------------
func ToggleLike(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, err := primitive.ObjectIDFromHex(c.Param("postId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, ok := currentUser(ctx, c, cfg)
		if !ok {
			return
		}

		col := postsCollection(cfg)

		var post models.Post
		if err := col.FindOne(ctx, bson.M{"_id": postID}).Decode(&post); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}

		liked := post.ToggleLike(user.ID)

		// $addToSet/$pull keep the membership change atomic in the store
		var update bson.M
		if liked {
			update = bson.M{"$addToSet": bson.M{"likes": user.ID}}
		} else {
			update = bson.M{"$pull": bson.M{"likes": user.ID}}
		}
		if _, err := col.UpdateOne(ctx, bson.M{"_id": postID}, update); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update post"})
			return
		}

		message := "Post unliked"
		if liked {
			message = "Post liked"
		}
		c.JSON(http.StatusOK, gin.H{
			"message": message,
			"likes":   len(post.Likes),
			"isLiked": liked,
		})
	}
}

// ---------------- COMMENT ----------------
func AddComment(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, err := primitive.ObjectIDFromHex(c.Param("postId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
			return
		}

		var input struct {
			Content string `json:"content"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		content := strings.TrimSpace(input.Content)
		if content == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "comment content is required"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, ok := currentUser(ctx, c, cfg)
		if !ok {
			return
		}

		col := postsCollection(cfg)

		var post models.Post
		if err := col.FindOne(ctx, bson.M{"_id": postID}).Decode(&post); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}

		comment := models.Comment{
			ID:         primitive.NewObjectID(),
			UserID:     user.ID,
			UserName:   user.Name,
			UserAvatar: user.AvatarOrDefault(),
			Content:    content,
			CreatedAt:  time.Now(),
		}

		_, err = col.UpdateOne(ctx,
			bson.M{"_id": postID},
			bson.M{
				"$push": bson.M{"comments": comment},
				"$set":  bson.M{"updated_at": time.Now()},
			},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add comment"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":       "Comment added successfully",
			"comment":       comment,
			"totalComments": len(post.Comments) + 1,
		})
	}
}

// ---------------- LIST COMMENTS (public) ----------------
func ListComments(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, err := primitive.ObjectIDFromHex(c.Param("postId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var post models.Post
		err = postsCollection(cfg).
			FindOne(ctx, bson.M{"_id": postID}, options.FindOne().SetProjection(bson.M{"comments": 1})).
			Decode(&post)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}

		now := time.Now()
		comments := []models.CommentView{}
		for i := range post.Comments {
			comments = append(comments, models.NewCommentView(&post.Comments[i], now))
		}

		c.JSON(http.StatusOK, gin.H{"comments": comments})
	}
}

// ---------------- DELETE ----------------
func DeletePost(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, err := primitive.ObjectIDFromHex(c.Param("postId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, ok := currentUser(ctx, c, cfg)
		if !ok {
			return
		}

		col := postsCollection(cfg)

		var post models.Post
		if err := col.FindOne(ctx, bson.M{"_id": postID}).Decode(&post); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}

		if post.Author != user.ID && !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "you can only delete your own posts"})
			return
		}

		if _, err := col.DeleteOne(ctx, bson.M{"_id": postID}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete post"})
			return
		}

		if post.Image != "" {
			go func(url string) {
				if err := utils.DeleteImage(url); err != nil {
					log.Printf("image cleanup for post %s failed: %v", postID.Hex(), err)
				}
			}(post.Image)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
	}
}

// ---------------- STATS (public) ----------------
// Calendar-month window for post counts, rolling 7 days for active users.
func Stats(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		col := postsCollection(cfg)

		now := time.Now()
		startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		weekAgo := now.AddDate(0, 0, -7)

		postsThisMonth, err := col.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": startOfMonth}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch stats"})
			return
		}

		weekAuthors, err := col.Distinct(ctx, "author", bson.M{"created_at": bson.M{"$gte": weekAgo}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch stats"})
			return
		}

		totalPosts, err := col.CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch stats"})
			return
		}

		totalUsers, err := usersCollection(cfg).CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch stats"})
			return
		}

		pipeline := mongo.Pipeline{
			{{Key: "$group", Value: bson.D{
				{Key: "_id", Value: "$category"},
				{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			}}},
			{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
			{{Key: "$limit", Value: 5}},
		}
		cursor, err := col.Aggregate(ctx, pipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch stats"})
			return
		}

		var grouped []struct {
			Category string `bson:"_id"`
			Count    int    `bson:"count"`
		}
		if err := cursor.All(ctx, &grouped); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch stats"})
			return
		}

		categoryStats := []gin.H{}
		for _, g := range grouped {
			categoryStats = append(categoryStats, gin.H{"category": g.Category, "count": g.Count})
		}

		c.JSON(http.StatusOK, gin.H{
			"activePosts":    postsThisMonth,
			"activeUsers":    len(weekAuthors),
			"postsThisMonth": postsThisMonth,
			"totalPosts":     totalPosts,
			"totalUsers":     totalUsers,
			"categoryStats":  categoryStats,
		})
	}
}
