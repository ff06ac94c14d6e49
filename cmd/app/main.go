package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/ewallet-ledger/pkg/coordinator"
	"github.com/chris/ewallet-ledger/pkg/events"
	kafkaevents "github.com/chris/ewallet-ledger/pkg/events/kafka"
	"github.com/chris/ewallet-ledger/pkg/handlers"
	"github.com/chris/ewallet-ledger/pkg/handlers/accounts"
	"github.com/chris/ewallet-ledger/pkg/handlers/operations"
	appmiddleware "github.com/chris/ewallet-ledger/pkg/middleware"
	dynamostore "github.com/chris/ewallet-ledger/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	accountsTable := os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME")
	handlesTable := os.Getenv("DYNAMODB_HANDLES_TABLE_NAME")
	recordsTable := os.Getenv("DYNAMODB_RECORDS_TABLE_NAME")

	if accountsTable == "" || handlesTable == "" || recordsTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	store := dynamostore.New(dbClient, accountsTable, handlesTable, recordsTable)

	// Committed-operation events go to Kafka when brokers are configured.
	var publisher events.Publisher = &events.NoOpPublisher{}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		kafkaPublisher := kafkaevents.NewPublisher(strings.Split(brokers, ","))
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	coord := coordinator.New(store, store, publisher, logger)

	accountsHandler := accounts.NewAccountsHandler(store, coord)
	operationsHandler := operations.NewOperationsHandler(coord)

	router := handlers.NewRouter(accountsHandler, operationsHandler)
	handler := appmiddleware.RequestLogger(logger)(router)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
