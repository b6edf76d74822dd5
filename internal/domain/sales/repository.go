package sales

import (
	"context"
	"time"

	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SaleFilter defines filtering options for sale queries
type SaleFilter struct {
	shared.Filter
	ClientID *uuid.UUID  // Filter by client
	PlotID   *uuid.UUID  // Filter by plot
	Status   *SaleStatus // Filter by status
	FromDate *time.Time  // Filter by sale date range start
	ToDate   *time.Time  // Filter by sale date range end
}

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByID finds a sale by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindBySaleNumber finds a sale by its number
	FindBySaleNumber(ctx context.Context, saleNumber string) (*Sale, error)

	// FindAll finds sales with filtering
	FindAll(ctx context.Context, filter SaleFilter) ([]Sale, error)

	// Save creates or updates a sale
	Save(ctx context.Context, sale *Sale) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, sale *Sale) error

	// Count counts sales with optional filters
	Count(ctx context.Context, filter SaleFilter) (int64, error)

	// ExistsBySaleNumber checks if a sale number is already taken
	ExistsBySaleNumber(ctx context.Context, saleNumber string) (bool, error)

	// GenerateSaleNumber generates a unique sale number
	GenerateSaleNumber(ctx context.Context) (string, error)
}
