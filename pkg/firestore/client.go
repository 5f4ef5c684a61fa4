package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	cloudfirestore "cloud.google.com/go/firestore"
	"github.com/lucasrivero/brandforge-backend/pkg/config"
	"github.com/lucasrivero/brandforge-backend/pkg/logger"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const pingTimeout = 10 * time.Second

var (
	// ErrNotFound reports a missing document.
	ErrNotFound = errors.New("document not found")

	errProjectIDRequired    = errors.New("gcp project id is required")
	errClientNotInitialized = errors.New("firestore client not initialized")
	errCollectionRequired   = errors.New("collection name is required")
	errDocIDRequired        = errors.New("document id is required")
)

// Client wraps the Firestore document store used for brand and theme records.
type Client struct {
	client    *cloudfirestore.Client
	projectID string
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

// NewClient creates a Firestore client and verifies connectivity.
func NewClient(ctx context.Context, gcp config.GCPConfig, logg *logger.Logger) (*Client, error) {
	projectID := strings.TrimSpace(gcp.ProjectID)
	if projectID == "" {
		return nil, errProjectIDRequired
	}

	fsClient, err := cloudfirestore.NewClient(ctx, projectID, clientOptions(gcp)...)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	client := &Client{client: fsClient, projectID: projectID}

	if err := client.Ping(ctx); err != nil {
		_ = fsClient.Close()
		return nil, fmt.Errorf("firestore health check failed: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "firestore client initialized")
	}

	return client, nil
}

func clientOptions(gcp config.GCPConfig) []option.ClientOption {
	var opts []option.ClientOption
	switch {
	case strings.TrimSpace(gcp.CredentialsJSON) != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(gcp.CredentialsJSON)))
	case strings.TrimSpace(gcp.ApplicationCredentials) != "":
		opts = append(opts, option.WithCredentialsFile(gcp.ApplicationCredentials))
	}
	return opts
}

// Ping verifies the project is reachable by listing at most one collection.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errClientNotInitialized
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	iter := c.client.Collections(ctx)
	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return fmt.Errorf("listing collections: %w", err)
	}
	return nil
}

// GetDoc loads the document into dest, returning ErrNotFound when absent.
func (c *Client) GetDoc(ctx context.Context, collection, id string, dest any) error {
	if c == nil || c.client == nil {
		return errClientNotInitialized
	}
	if strings.TrimSpace(collection) == "" {
		return errCollectionRequired
	}
	if strings.TrimSpace(id) == "" {
		return errDocIDRequired
	}

	snap, err := c.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("getting %s/%s: %w", collection, id, err)
	}
	if err := snap.DataTo(dest); err != nil {
		return fmt.Errorf("decoding %s/%s: %w", collection, id, err)
	}
	return nil
}

// SetDoc writes the full document, replacing any existing content.
func (c *Client) SetDoc(ctx context.Context, collection, id string, data any) error {
	if c == nil || c.client == nil {
		return errClientNotInitialized
	}
	if strings.TrimSpace(collection) == "" {
		return errCollectionRequired
	}
	if strings.TrimSpace(id) == "" {
		return errDocIDRequired
	}

	if _, err := c.client.Collection(collection).Doc(id).Set(ctx, data); err != nil {
		return fmt.Errorf("setting %s/%s: %w", collection, id, err)
	}
	return nil
}

// UpdateDoc merges the supplied fields into an existing document.
func (c *Client) UpdateDoc(ctx context.Context, collection, id string, fields map[string]any) error {
	if c == nil || c.client == nil {
		return errClientNotInitialized
	}
	if strings.TrimSpace(collection) == "" {
		return errCollectionRequired
	}
	if strings.TrimSpace(id) == "" {
		return errDocIDRequired
	}
	if len(fields) == 0 {
		return nil
	}

	if _, err := c.client.Collection(collection).Doc(id).Set(ctx, fields, cloudfirestore.MergeAll); err != nil {
		return fmt.Errorf("updating %s/%s: %w", collection, id, err)
	}
	return nil
}

// DeleteDoc removes a document. Deleting an absent document is not an error.
func (c *Client) DeleteDoc(ctx context.Context, collection, id string) error {
	if c == nil || c.client == nil {
		return errClientNotInitialized
	}
	if strings.TrimSpace(collection) == "" {
		return errCollectionRequired
	}
	if strings.TrimSpace(id) == "" {
		return errDocIDRequired
	}

	if _, err := c.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("deleting %s/%s: %w", collection, id, err)
	}
	return nil
}

// EqualFilter restricts a query to documents whose field equals value.
type EqualFilter struct {
	Field string
	Value any
}

// QueryDocs returns the snapshots matching every equality filter.
func (c *Client) QueryDocs(ctx context.Context, collection string, filters ...EqualFilter) ([]*cloudfirestore.DocumentSnapshot, error) {
	if c == nil || c.client == nil {
		return nil, errClientNotInitialized
	}
	if strings.TrimSpace(collection) == "" {
		return nil, errCollectionRequired
	}

	query := c.client.Collection(collection).Query
	for _, f := range filters {
		query = query.Where(f.Field, "==", f.Value)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var snaps []*cloudfirestore.DocumentSnapshot
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("querying %s: %w", collection, err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// Close releases the Firestore client.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
