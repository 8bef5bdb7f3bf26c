package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/collecto/payment-collector-go/config"
	models "github.com/collecto/payment-collector-go/models"
	utils "github.com/collecto/payment-collector-go/utils"
)

type payerActionInput struct {
	EventID string `json:"event_id" binding:"required"`
	PayerID string `json:"payer_id" binding:"required"`
}

func loadEvent(c *gin.Context, cfg *config.Config, eventID string) (*models.CollectionEvent, bool) {
	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return nil, false
	}

	col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var event models.CollectionEvent
	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&event); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return nil, false
	}
	return &event, true
}

// updatePayer applies a partial update to one embedded payer via the
// positional operator. Last write wins; there is a single verifier per
// event, so no optimistic lock.
func updatePayer(cfg *config.Config, eventID, payerID primitive.ObjectID, update bson.M) error {
	col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := col.UpdateOne(ctx,
		bson.M{"_id": eventID, "payers._id": payerID},
		update,
	)
	return err
}

// notifyCollector looks up the owner of the event and fires a best-effort
// payment-claim email.
func notifyCollector(cfg *config.Config, event *models.CollectionEvent, payerName string) {
	col := cfg.MongoClient.Database(cfg.DBName).Collection("collectors")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var collector models.Collector
	if err := col.FindOne(ctx, bson.M{"_id": event.CollectorID}).Decode(&collector); err != nil {
		log.Printf("could not load collector for claim notification: %v", err)
		return
	}

	utils.NotifyPaymentClaim(collector.Email, collector.Name, payerName, event.Title)
}

// ---------------- MARK PAID ----------------
// A payer self-reports a payment: pending_verification plus a fresh payment
// timestamp, whatever the prior state was.
func MarkPaid(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input payerActionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		event, ok := loadEvent(c, cfg, input.EventID)
		if !ok {
			return
		}

		payerID, err := primitive.ObjectIDFromHex(input.PayerID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payer id"})
			return
		}

		payer := event.FindPayer(payerID)
		if payer == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "payer not found"})
			return
		}

		now := time.Now()
		payer.MarkPending(now)

		err = updatePayer(cfg, event.ID, payer.ID, bson.M{
			"$set": bson.M{
				"payers.$.state":             models.StatePendingVerification,
				"payers.$.payment_timestamp": now,
				"updated_at":                 now,
			},
			"$unset": bson.M{"payers.$.verification_timestamp": ""},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment"})
			return
		}

		go notifyCollector(cfg, event, payer.Name)

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// ---------------- PAY AS ----------------
// Upsert by name: a case-insensitive match on an existing payer overwrites
// that payer's state, anything else appends a new payer. Either way the
// record lands in pending_verification.
func PayAs(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			EventID   string `json:"event_id" binding:"required"`
			PayerName string `json:"payer_name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		event, ok := loadEvent(c, cfg, input.EventID)
		if !ok {
			return
		}

		now := time.Now()
		name := input.PayerName

		if existing := event.FindPayerByName(input.PayerName); existing != nil {
			name = existing.Name
			existing.MarkPending(now)

			err := updatePayer(cfg, event.ID, existing.ID, bson.M{
				"$set": bson.M{
					"payers.$.state":             models.StatePendingVerification,
					"payers.$.payment_timestamp": now,
					"updated_at":                 now,
				},
				"$unset": bson.M{"payers.$.verification_timestamp": ""},
			})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment"})
				return
			}
		} else {
			payer := models.Payer{
				ID:               primitive.NewObjectID(),
				Name:             input.PayerName,
				State:            models.StatePendingVerification,
				PaymentTimestamp: &now,
			}

			col := cfg.MongoClient.Database(cfg.DBName).Collection("events")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			_, err := col.UpdateOne(ctx,
				bson.M{"_id": event.ID},
				bson.M{
					"$push": bson.M{"payers": payer},
					"$set":  bson.M{"updated_at": now},
				},
			)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment"})
				return
			}
		}

		go notifyCollector(cfg, event, name)

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// ---------------- VERIFY ----------------
// Owner-only. Only a pending_verification claim can be verified; verifying
// a not_paid or already-paid payer is refused with a conflict.
func VerifyPayment(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		collector, ok := currentCollector(c, cfg)
		if !ok {
			return
		}

		var input payerActionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		event, ok := loadEvent(c, cfg, input.EventID)
		if !ok {
			return
		}

		// foreign events look absent, not forbidden
		if event.CollectorID != collector.ID {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}

		payerID, err := primitive.ObjectIDFromHex(input.PayerID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payer id"})
			return
		}

		payer := event.FindPayer(payerID)
		if payer == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "payer not found"})
			return
		}

		now := time.Now()
		if !payer.Verify(now) {
			c.JSON(http.StatusConflict, gin.H{"error": "payment is not pending verification"})
			return
		}

		err = updatePayer(cfg, event.ID, payer.ID, bson.M{
			"$set": bson.M{
				"payers.$.state":                  models.StatePaid,
				"payers.$.verification_timestamp": now,
				"updated_at":                      now,
			},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify payment"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// ---------------- REJECT ----------------
// Owner-only. Rejecting always lands the payer back on not_paid with both
// timestamps cleared, whatever the prior state was.
func RejectPayment(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		collector, ok := currentCollector(c, cfg)
		if !ok {
			return
		}

		var input payerActionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		event, ok := loadEvent(c, cfg, input.EventID)
		if !ok {
			return
		}

		if event.CollectorID != collector.ID {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}

		payerID, err := primitive.ObjectIDFromHex(input.PayerID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payer id"})
			return
		}

		payer := event.FindPayer(payerID)
		if payer == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "payer not found"})
			return
		}

		now := time.Now()
		err = updatePayer(cfg, event.ID, payer.ID, bson.M{
			"$set": bson.M{
				"payers.$.state": models.StateNotPaid,
				"updated_at":     now,
			},
			"$unset": bson.M{
				"payers.$.payment_timestamp":      "",
				"payers.$.verification_timestamp": "",
			},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reject payment"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
