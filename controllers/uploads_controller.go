package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	config "github.com/HunainMulla/Crowdfund-backend/config"
	utils "github.com/HunainMulla/Crowdfund-backend/utils"
)

var uploadFolders = map[string]bool{
	"avatars":   true,
	"campaigns": true,
	"posts":     true,
}

// ---------------- UPLOAD IMAGE ----------------
// Clients upload here first, then pass the returned URL when creating a
// campaign, post or profile.
func UploadImage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}

		folder := c.PostForm("folder")
		if !uploadFolders[folder] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "folder must be one of avatars, campaigns, posts"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
			return
		}
		defer file.Close()

		url, err := utils.UploadImage(file, folder)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "image upload failed",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
