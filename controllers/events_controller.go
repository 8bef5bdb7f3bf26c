package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/collecto/payment-collector-go/config"
	models "github.com/collecto/payment-collector-go/models"
	utils "github.com/collecto/payment-collector-go/utils"
)

// ---------------- CREATE ----------------
func CreateEvent(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		collector, ok := currentCollector(c, cfg)
		if !ok {
			return
		}

		var input struct {
			Title       string   `json:"title" binding:"required"`
			Description string   `json:"description"`
			Amount      float64  `json:"amount" binding:"required"`
			Payers      []string `json:"payers"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be greater than 0"})
			return
		}

		slug := utils.Slugify(input.Title)
		if slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title must contain at least one letter or digit"})
			return
		}

		payers := []models.Payer{}
		for _, name := range input.Payers {
			if name == "" {
				continue
			}
			payers = append(payers, models.NewPayer(name))
		}

		now := time.Now()
		event := models.CollectionEvent{
			ID:          primitive.NewObjectID(),
			Title:       input.Title,
			Description: input.Description,
			Slug:        slug,
			Amount:      input.Amount,
			CollectorID: collector.ID,
			Status:      models.StatusPublished,
			Payers:      payers,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, event); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create event"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":        true,
			"slug":           slug,
			"collector_name": collector.Username,
		})
	}
}

// ---------------- LIST ----------------
func ListEvents(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		collector, ok := currentCollector(c, cfg)
		if !ok {
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// --- Build filter ---
		filter := bson.M{"collector_id": collector.ID}
		if q := c.Query("q"); q != "" {
			filter["title"] = bson.M{"$regex": q, "$options": "i"}
		}

		// --- Fetch data ---
		cursor, err := col.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch events"})
			return
		}

		var events []models.CollectionEvent
		if err := cursor.All(ctx, &events); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode events"})
			return
		}

		if len(events) == 0 {
			c.JSON(http.StatusOK, []models.CollectionEvent{})
			return
		}

		// --- Pick the most recently updated event ---
		latest := events[0]
		for _, ev := range events {
			if ev.UpdatedAt.After(latest.UpdatedAt) {
				latest = ev
			}
		}

		// --- Generate ETag from latest event ---
		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		// --- Add Last-Modified from latest event ---
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, events)
	}
}

// ---------------- PUBLIC EVENT PAGE ----------------
// GetEventBySlug serves the payer-facing page payload: the event, its payers
// bucketed by state, and a ready-to-use UPI link plus QR code for the
// collector's payment address. No auth; the slug URL is the invitation.
func GetEventBySlug(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		db := cfg.MongoClient.Database(cfg.DBName)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var collector models.Collector
		err := db.Collection("collectors").
			FindOne(ctx, bson.M{"username": c.Param("collectorName")}).
			Decode(&collector)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}

		var event models.CollectionEvent
		err = db.Collection("events").
			FindOne(ctx, bson.M{"slug": c.Param("slug"), "collector_id": collector.ID}).
			Decode(&event)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}

		upiLink := utils.GenerateUPILink(collector.UpiID, collector.Name, event.Amount, "")
		qrCode, err := utils.GenerateQRCode(upiLink)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render qr code"})
			return
		}

		etag := utils.GenerateETag(event.ID, event.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, gin.H{
			"event":          event,
			"collector_name": collector.Name,
			"upi_link":       upiLink,
			"qr_code":        qrCode,
			"paid":           event.PayersByState(models.StatePaid),
			"pending":        event.PayersByState(models.StatePendingVerification),
			"not_paid":       event.PayersByState(models.StateNotPaid),
		})
	}
}
