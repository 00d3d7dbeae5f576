// Package db owns the Firestore connection and the run history collection.
package db

import (
	"context"
	"encoding/base64"
	"log"
	"sync"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"
)

// Firestore client singleton.
var (
	client     *firestore.Client
	clientOnce sync.Once
)

// InitFirestore initializes and returns the Firestore client. Credentials
// arrive base64 encoded so the service account JSON can live in a single
// environment variable.
func InitFirestore(encodedCreds string) *firestore.Client {
	clientOnce.Do(func() {
		creds, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			log.Fatalf("Failed to decode Firestore credentials: %v", err)
		}

		opt := option.WithCredentialsJSON(creds)
		app, err := firebase.NewApp(context.Background(), nil, opt)
		if err != nil {
			log.Fatalf("Error initializing Firestore: %v", err)
		}

		client, err = app.Firestore(context.Background())
		if err != nil {
			log.Fatalf("Error getting Firestore client: %v", err)
		}
	})

	return client
}

// CloseFirestore closes the Firestore client.
func CloseFirestore() {
	if client != nil {
		client.Close()
	}
}
