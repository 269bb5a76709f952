// utils/firebase.go
package utils

import (
	"context"
	"fmt"

	"tripmate/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Firebase bundles the clients of one initialized Firebase app. It is built once in main
// and handed to the components that need it.
type Firebase struct {
	App       *firebase.App
	Auth      *auth.Client
	Database  *db.Client
	Firestore *firestore.Client
	Messaging *messaging.Client
}

// NewFirebase initializes the Firebase app and all clients used by the service.
func NewFirebase(ctx context.Context, cfg config.Config) (*Firebase, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		DatabaseURL: cfg.FirebaseDatabaseURL,
		ProjectID:   cfg.FirebaseProjectID,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Auth client: %w", err)
	}

	dbClient, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Database client: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Firestore client: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		_ = fsClient.Close()
		return nil, fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}

	return &Firebase{
		App:       app,
		Auth:      authClient,
		Database:  dbClient,
		Firestore: fsClient,
		Messaging: msgClient,
	}, nil
}

// Close releases the Firestore connection. The other clients hold no resources.
func (f *Firebase) Close() error {
	if f == nil || f.Firestore == nil {
		return nil
	}
	return f.Firestore.Close()
}
