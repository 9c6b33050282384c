package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/HunainMulla/Crowdfund-backend/config"
	models "github.com/HunainMulla/Crowdfund-backend/models"
	utils "github.com/HunainMulla/Crowdfund-backend/utils"
)

// campaignOwnersProjection limits the full-scan listings to the fields the
// views need.
var campaignOwnersProjection = bson.M{
	"name": 1, "email": 1, "mobile": 1, "avatar": 1, "campaigns": 1,
}

// loadCampaignViews scans every user owning at least one campaign and
// flattens their campaigns into sorted views. Full scan on every call;
// acceptable at CRUD scale.
func loadCampaignViews(ctx context.Context, cfg *config.Config) ([]models.CampaignView, error) {
	cursor, err := usersCollection(cfg).Find(ctx,
		bson.M{"campaigns.0": bson.M{"$exists": true}},
		options.Find().SetProjection(campaignOwnersProjection),
	)
	if err != nil {
		return nil, err
	}

	var owners []models.User
	if err := cursor.All(ctx, &owners); err != nil {
		return nil, err
	}

	now := time.Now()
	views := []models.CampaignView{}
	for i := range owners {
		owner := &owners[i]
		for j := range owner.Campaigns {
			views = append(views, models.NewCampaignView(&owner.Campaigns[j], owner, now))
		}
	}

	models.SortCampaignViews(views)
	return views, nil
}

// ---------------- LIST ALL (public) ----------------
func AllCampaigns(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		views, err := loadCampaignViews(ctx, cfg)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch campaigns"})
			return
		}

		parts := make([]string, 0, len(views)+1)
		parts = append(parts, strconv.Itoa(len(views)))
		for i := range views {
			parts = append(parts, views[i].ID.Hex(), fmt.Sprintf("%.2f", views[i].Raised))
		}
		etag := utils.GenerateETag(parts...)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, gin.H{
			"campaigns": views,
			"total":     len(views),
		})
	}
}

// ---------------- LIST OWN ----------------
func UserCampaigns(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, ok := currentUser(ctx, c, cfg)
		if !ok {
			return
		}

		now := time.Now()
		views := []models.CampaignView{}
		for i := range user.Campaigns {
			views = append(views, models.NewCampaignView(&user.Campaigns[i], user, now))
		}
		models.SortCampaignViews(views)

		c.JSON(http.StatusOK, gin.H{
			"campaigns": views,
			"total":     len(views),
		})
	}
}

// ---------------- CREATE ----------------
func AddCampaign(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name        string  `json:"name" binding:"required"`
			Description string  `json:"description" binding:"required"`
			GoalAmount  float64 `json:"goalAmount" binding:"required,gt=0"`
			Image       string  `json:"image"`
			StartDate   string  `json:"startDate"`
			EndDate     string  `json:"endDate" binding:"required"`
			Category    string  `json:"category"`
			Location    string  `json:"location"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		start := time.Now()
		if input.StartDate != "" {
			parsed, err := parseDate(input.StartDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate format, use RFC3339 or YYYY-MM-DD"})
				return
			}
			start = parsed
		}
		end, err := parseDate(input.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate format, use RFC3339 or YYYY-MM-DD"})
			return
		}
		if end.Before(start) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must not be before startDate"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, ok := currentUser(ctx, c, cfg)
		if !ok {
			return
		}

		campaign := models.Campaign{
			ID:           primitive.NewObjectID(),
			Name:         input.Name,
			Description:  input.Description,
			GoalAmount:   input.GoalAmount,
			RaisedAmount: 0,
			Image:        input.Image,
			StartDate:    start,
			EndDate:      end,
			Category:     input.Category,
			Location:     input.Location,
			Backers:      []models.Pledge{},
		}

		_, err = usersCollection(cfg).UpdateOne(ctx,
			bson.M{"_id": user.ID},
			bson.M{"$push": bson.M{"campaigns": campaign}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create campaign"})
			return
		}

		user.Campaigns = append(user.Campaigns, campaign)

		c.JSON(http.StatusCreated, gin.H{
			"message":  "Campaign added successfully",
			"campaign": campaign,
			"user":     publicUser(user),
		})
	}
}

// ---------------- DELETE ----------------
func DeleteCampaign(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		campaignID, err := primitive.ObjectIDFromHex(c.Param("campaignId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, ok := currentUser(ctx, c, cfg)
		if !ok {
			return
		}

		campaign := user.FindCampaign(campaignID)
		if campaign == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}
		image := campaign.Image

		// pull by identity so the remaining campaigns keep their order
		_, err = usersCollection(cfg).UpdateOne(ctx,
			bson.M{"_id": user.ID},
			bson.M{"$pull": bson.M{"campaigns": bson.M{"_id": campaignID}}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete campaign"})
			return
		}

		user.RemoveCampaign(campaignID)

		if image != "" {
			go func(url string) {
				if err := utils.DeleteImage(url); err != nil {
					log.Printf("image cleanup for campaign %s failed: %v", campaignID.Hex(), err)
				}
			}(image)
		}

		c.JSON(http.StatusOK, gin.H{
			"message":   "Campaign deleted successfully",
			"campaigns": user.Campaigns,
		})
	}
}

// parseDate accepts RFC3339 with date-only fallbacks.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	layouts := []string{"2006-01-02", "2006-01-02 15:04", "2006-01-02 15:04:05"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
