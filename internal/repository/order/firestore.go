package order

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"fundraiser-store/internal/domain"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NewFirestoreClient opens a Firestore client. An empty credentialsFile falls
// back to Application Default Credentials.
func NewFirestoreClient(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return client, nil
}

type firestoreRepo struct {
	client *firestore.Client
}

func NewFirestore(client *firestore.Client) Repository {
	return &firestoreRepo{client: client}
}

func (r *firestoreRepo) orders() *firestore.CollectionRef {
	return r.client.Collection(Collection)
}

func (r *firestoreRepo) Create(ctx context.Context, rec domain.OrderRecord) (string, error) {
	ref, _, err := r.orders().Add(ctx, toDoc(rec))
	if err != nil {
		return "", fmt.Errorf("firestore add order: %w", err)
	}
	return ref.ID, nil
}

func (r *firestoreRepo) Get(ctx context.Context, id string) (*domain.OrderRecord, error) {
	snap, err := r.orders().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("firestore get order %s: %w", id, err)
	}
	var doc orderDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", id, err)
	}
	rec := fromDoc(doc)
	return &rec, nil
}
