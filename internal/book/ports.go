package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	// Save inserts b and fills in the storage assigned ID and CreatedAt.
	Save(ctx context.Context, b *Book) error
	// FindAll returns every stored book in storage order.
	FindAll(ctx context.Context) ([]Book, error)
}
