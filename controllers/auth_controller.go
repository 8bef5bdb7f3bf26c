package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	config "github.com/collecto/payment-collector-go/config"
	middleware "github.com/collecto/payment-collector-go/middleware"
	models "github.com/collecto/payment-collector-go/models"
	utils "github.com/collecto/payment-collector-go/utils"
)

const cookieMaxAge = 86400 // matches the 24h token validity

// ---------------- LOGIN ----------------
func Login(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("collectors")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var collector models.Collector
		err := col.FindOne(ctx, bson.M{"username": input.Username}).Decode(&collector)
		if err != nil || bcrypt.CompareHashAndPassword([]byte(collector.PasswordHash), []byte(input.Password)) != nil {
			// same response for unknown user and wrong password
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		token, err := utils.GenerateJWT(cfg.JWTSecret, collector.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}

		c.SetCookie(middleware.AuthCookie, token, cookieMaxAge, "/", "", cfg.CookieSecure, true)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// ---------------- LOGOUT ----------------
func Logout(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(middleware.AuthCookie, "", -1, "/", "", cfg.CookieSecure, true)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// currentCollector resolves the authenticated session to its collector
// record. Handlers behind the auth middleware use it for ownership checks.
func currentCollector(c *gin.Context, cfg *config.Config) (*models.Collector, bool) {
	username := c.GetString("username")
	if username == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}

	col := cfg.MongoClient.Database(cfg.DBName).Collection("collectors")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var collector models.Collector
	if err := col.FindOne(ctx, bson.M{"username": username}).Decode(&collector); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "collector not found"})
		return nil, false
	}
	return &collector, true
}
