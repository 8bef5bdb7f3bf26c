package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Collector struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"` // unique, login + URL identity
	Name         string             `bson:"name" json:"name"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	UpiID        string             `bson:"upi_id" json:"upi_id"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"` // payment-claim notifications
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
