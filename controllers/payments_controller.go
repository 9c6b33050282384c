package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v74"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/HunainMulla/Crowdfund-backend/config"
	models "github.com/HunainMulla/Crowdfund-backend/models"
	utils "github.com/HunainMulla/Crowdfund-backend/utils"
)

// ---------------- CREATE PAYMENT INTENT ----------------
// Validates the target campaign, then opens an intent with Stripe. No
// local state changes here; the pledge lands on confirm.
func CreatePaymentIntent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Amount       float64 `json:"amount" binding:"required,gt=0"`
			CampaignID   string  `json:"campaignId" binding:"required"`
			CreatorEmail string  `json:"creatorEmail" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		campaignID, err := primitive.ObjectIDFromHex(input.CampaignID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		backer, ok := currentUser(ctx, c, cfg)
		if !ok {
			return
		}

		var creator models.User
		err = usersCollection(cfg).FindOne(ctx, bson.M{"email": input.CreatorEmail}).Decode(&creator)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign creator not found"})
			return
		}

		campaign := creator.FindCampaign(campaignID)
		if campaign == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}

		intent, err := utils.CreatePaymentIntent(cfg.StripeSecret, input.Amount, map[string]string{
			"campaignId":   input.CampaignID,
			"creatorEmail": input.CreatorEmail,
			"backerEmail":  backer.Email,
			"backerName":   backer.Name,
			"campaignName": campaign.Name,
		})
		if err != nil {
			log.Printf("create payment intent error: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "payment provider error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"clientSecret":    intent.ClientSecret,
			"paymentIntentId": intent.ID,
		})
	}
}

// ---------------- CONFIRM PAYMENT ----------------
// Re-queries Stripe for the intent status, then applies the pledge as one
// atomic update: $inc on the matched campaign's raised amount plus $push of
// the backer record. The filter rejects documents already holding this
// intent id, so a replayed confirm cannot double-apply.
func ConfirmPayment(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			PaymentIntentID string  `json:"paymentIntentId" binding:"required"`
			CampaignID      string  `json:"campaignId" binding:"required"`
			CreatorEmail    string  `json:"creatorEmail" binding:"required"`
			Amount          float64 `json:"amount" binding:"required,gt=0"`
			Message         string  `json:"message"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		campaignID, err := primitive.ObjectIDFromHex(input.CampaignID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		backer, ok := currentUser(ctx, c, cfg)
		if !ok {
			return
		}

		intent, err := utils.RetrievePaymentIntent(cfg.StripeSecret, input.PaymentIntentID)
		if err != nil {
			log.Printf("retrieve payment intent error: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "payment provider error"})
			return
		}
		if intent.Status != stripe.PaymentIntentStatusSucceeded {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment not completed"})
			return
		}

		col := usersCollection(cfg)

		var creator models.User
		err = col.FindOne(ctx, bson.M{"email": input.CreatorEmail}).Decode(&creator)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign creator not found"})
			return
		}
		if creator.FindCampaign(campaignID) == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}

		pledge := models.Pledge{
			UserID:          backer.ID,
			Name:            backer.Name,
			Email:           backer.Email,
			Amount:          input.Amount,
			Message:         input.Message,
			Date:            time.Now(),
			PaymentIntentID: input.PaymentIntentID,
		}

		filter := bson.M{
			"email":         input.CreatorEmail,
			"campaigns._id": campaignID,
			"campaigns.backers.payment_intent_id": bson.M{"$ne": input.PaymentIntentID},
		}
		update := bson.M{
			"$inc":  bson.M{"campaigns.$[c].raised_amount": input.Amount},
			"$push": bson.M{"campaigns.$[c].backers": pledge},
		}
		opts := options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"c._id": campaignID}},
		})

		res, err := col.UpdateOne(ctx, filter, update, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record pledge"})
			return
		}
		if res.MatchedCount == 0 {
			// creator and campaign were just verified, so the only way the
			// filter misses is an already-recorded intent
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment already recorded"})
			return
		}

		var updated models.User
		if err := col.FindOne(ctx, bson.M{"email": input.CreatorEmail}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve updated campaign"})
			return
		}
		campaign := updated.FindCampaign(campaignID)
		if campaign == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve updated campaign"})
			return
		}

		go func() {
			if err := utils.SendPledgeEmail(updated.Email, updated.Name, campaign.Name, pledge.Name, pledge.Amount); err != nil {
				log.Printf("pledge email to %s failed: %v", updated.Email, err)
			}
		}()

		c.JSON(http.StatusOK, gin.H{
			"message":       "Payment successful and campaign updated!",
			"updatedAmount": campaign.RaisedAmount,
			"campaign": gin.H{
				"id":           campaign.ID,
				"name":         campaign.Name,
				"raisedAmount": campaign.RaisedAmount,
				"goal":         campaign.GoalAmount,
			},
		})
	}
}

// ---------------- CAMPAIGN DETAILS (public) ----------------
func CampaignDetails(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		campaignID, err := primitive.ObjectIDFromHex(c.Param("campaignId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
			return
		}
		creatorEmail := c.Param("creatorEmail")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var creator models.User
		err = usersCollection(cfg).FindOne(ctx, bson.M{"email": creatorEmail}).Decode(&creator)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign creator not found"})
			return
		}

		campaign := creator.FindCampaign(campaignID)
		if campaign == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}

		etag := utils.GenerateETag(
			campaign.ID.Hex(),
			fmt.Sprintf("%.2f", campaign.RaisedAmount),
			strconv.Itoa(len(campaign.Backers)),
		)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		view := models.NewCampaignView(campaign, &creator, time.Now())
		c.JSON(http.StatusOK, gin.H{
			"id":          view.ID,
			"title":       view.Title,
			"description": view.Description,
			"image":       view.Image,
			"category":    view.Category,
			"goal":        view.Goal,
			"raised":      view.Raised,
			"daysLeft":    view.DaysLeft,
			"backers":     view.Backers,
			"status":      view.Status,
			"creator": gin.H{
				"name":   creator.Name,
				"email":  creator.Email,
				"avatar": creator.AvatarOrDefault(),
			},
		})
	}
}
