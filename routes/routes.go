package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	config "github.com/HunainMulla/Crowdfund-backend/config"
	controllers "github.com/HunainMulla/Crowdfund-backend/controllers"
	middleware "github.com/HunainMulla/Crowdfund-backend/middleware"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	auth := middleware.AuthMiddleware(cfg)
	admin := middleware.AdminMiddleware(cfg)

	a := r.Group("/auth")
	{
		a.POST("/signup", controllers.Signup(cfg))
		a.POST("/login", controllers.Login(cfg))
		a.POST("/logout", controllers.Logout(cfg))
		a.GET("/all-campaigns", controllers.AllCampaigns(cfg))
		a.GET("/user-campaigns", auth, controllers.UserCampaigns(cfg))
		a.POST("/add-campaign", auth, controllers.AddCampaign(cfg))
		a.DELETE("/delete-campaign/:campaignId", auth, controllers.DeleteCampaign(cfg))
		a.PUT("/update-profile", auth, controllers.UpdateProfile(cfg))
		a.POST("/verify-password", auth, controllers.VerifyPassword(cfg))
		a.POST("/make-admin", admin, controllers.MakeAdmin(cfg))

		adm := a.Group("/admin")
		adm.Use(admin)
		{
			adm.GET("/users", controllers.AdminUsers(cfg))
			adm.GET("/campaigns", controllers.AdminCampaigns(cfg))
			adm.DELETE("/campaigns/:userId/:campaignId", controllers.AdminDeleteCampaign(cfg))
			adm.DELETE("/users/:userId", controllers.AdminDeleteUser(cfg))
		}
	}

	pay := r.Group("/payments")
	{
		pay.POST("/create-payment-intent", auth, controllers.CreatePaymentIntent(cfg))
		pay.POST("/confirm-payment", auth, controllers.ConfirmPayment(cfg))
		pay.GET("/campaign/:campaignId/:creatorEmail", controllers.CampaignDetails(cfg))
	}

	posts := r.Group("/posts")
	{
		posts.POST("/create", auth, controllers.CreatePost(cfg))
		posts.GET("/all", controllers.ListPosts(cfg))
		posts.GET("/user/:userId", controllers.UserPosts(cfg))
		posts.GET("/stats", controllers.Stats(cfg))
		posts.GET("/admin/all", admin, controllers.AdminPosts(cfg))
		posts.DELETE("/admin/:postId", admin, controllers.AdminDeletePost(cfg))
		posts.POST("/:postId/like", auth, controllers.ToggleLike(cfg))
		posts.POST("/:postId/comment", auth, controllers.AddComment(cfg))
		posts.GET("/:postId/comments", controllers.ListComments(cfg))
		posts.DELETE("/:postId", auth, controllers.DeletePost(cfg))
	}

	r.POST("/protected/profile", auth, controllers.Profile(cfg))
	r.POST("/uploads/image", auth, controllers.UploadImage(cfg))
}
