// Out-of-band collector provisioning. Collectors have no signup API; an
// operator runs this once per collector.
//
//	go run ./cmd/setup-collector -username jane -name "Jane Doe" -upi jane@upi -password secret
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	models "github.com/collecto/payment-collector-go/models"
)

const bcryptCost = 12

func main() {
	username := flag.String("username", "", "login username (unique)")
	name := flag.String("name", "", "display name, shown to payers")
	upiID := flag.String("upi", "", "UPI payment address")
	password := flag.String("password", "", "login password")
	email := flag.String("email", "", "optional, receives payment-claim notifications")
	flag.Parse()

	if *username == "" || *name == "" || *upiID == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment as-is")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		log.Fatal("MONGODB_URI is required")
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "collecto"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal("mongo connect: ", err)
	}
	defer client.Disconnect(context.Background())

	col := client.Database(dbName).Collection("collectors")

	count, err := col.CountDocuments(ctx, bson.M{"username": *username})
	if err != nil {
		log.Fatal("username lookup: ", err)
	}
	if count > 0 {
		log.Fatalf("collector %q already exists", *username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcryptCost)
	if err != nil {
		log.Fatal("hash password: ", err)
	}

	now := time.Now()
	collector := models.Collector{
		ID:           primitive.NewObjectID(),
		Username:     *username,
		Name:         *name,
		PasswordHash: string(hash),
		UpiID:        *upiID,
		Email:        *email,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := col.InsertOne(ctx, collector); err != nil {
		log.Fatal("insert collector: ", err)
	}

	log.Printf("collector created: %s (%s), upi %s", *username, *name, *upiID)
}
