package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/estatebooks/backend/internal/domain/finance"
	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/estatebooks/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCancellationRepository implements CancellationRepository using GORM
type GormCancellationRepository struct {
	db *gorm.DB
}

// NewGormCancellationRepository creates a new GormCancellationRepository
func NewGormCancellationRepository(db *gorm.DB) *GormCancellationRepository {
	return &GormCancellationRepository{db: db}
}

// FindByID finds a cancellation by ID
func (r *GormCancellationRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Cancellation, error) {
	var model models.CancellationModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySaleID finds the cancellation attached to a sale, if any.
// A sale can only ever have one non-rejected cancellation; rejected
// requests are skipped so a later retry is found instead.
func (r *GormCancellationRepository) FindBySaleID(ctx context.Context, saleID uuid.UUID) (*finance.Cancellation, error) {
	var model models.CancellationModel
	if err := r.db.WithContext(ctx).
		Where("sale_id = ? AND status <> ?", saleID, finance.CancellationStatusRejected).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds cancellations with filtering
func (r *GormCancellationRepository) FindAll(ctx context.Context, filter finance.CancellationFilter) ([]finance.Cancellation, error) {
	var cancellationModels []models.CancellationModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CancellationModel{}), filter)

	if err := query.Find(&cancellationModels).Error; err != nil {
		return nil, err
	}
	result := make([]finance.Cancellation, len(cancellationModels))
	for i, model := range cancellationModels {
		result[i] = *model.ToDomain()
	}
	return result, nil
}

// Save creates or updates a cancellation
func (r *GormCancellationRepository) Save(ctx context.Context, cancellation *finance.Cancellation) error {
	model := models.CancellationModelFromDomain(cancellation)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check).
// Domain mutations have already incremented the aggregate version, so the
// row in the database must still carry the previous one.
func (r *GormCancellationRepository) SaveWithLock(ctx context.Context, cancellation *finance.Cancellation) error {
	model := models.CancellationModelFromDomain(cancellation)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", cancellation.ID, cancellation.Version-1).
		Select("*").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts cancellations with optional filters
func (r *GormCancellationRepository) Count(ctx context.Context, filter finance.CancellationFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.CancellationModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsOpenForSale reports whether the sale already has a non-rejected cancellation
func (r *GormCancellationRepository) ExistsOpenForSale(ctx context.Context, saleID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CancellationModel{}).
		Where("sale_id = ? AND status <> ?", saleID, finance.CancellationStatusRejected).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateCancellationNumber generates a unique cancellation number
func (r *GormCancellationRepository) GenerateCancellationNumber(ctx context.Context) (string, error) {
	return nextDocumentNumber(ctx, r.db, &models.CancellationModel{}, "cancellation_number", "CAN")
}

// applyFilter applies filter conditions, sorting and pagination to query
func (r *GormCancellationRepository) applyFilter(query *gorm.DB, filter finance.CancellationFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, CancellationSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if filter.Page > 0 {
			query = query.Offset((filter.Page - 1) * filter.PageSize)
		}
	}
	return query
}

// applyFilterWithoutPagination applies filter conditions to query
func (r *GormCancellationRepository) applyFilterWithoutPagination(query *gorm.DB, filter finance.CancellationFilter) *gorm.DB {
	if filter.SaleID != nil {
		query = query.Where("sale_id = ?", *filter.SaleID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at <= ?", *filter.ToDate)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("cancellation_number ILIKE ? OR sale_number ILIKE ? OR client_name ILIKE ?", pattern, pattern, pattern)
	}
	return query
}

// Ensure GormCancellationRepository implements the interface
var _ finance.CancellationRepository = (*GormCancellationRepository)(nil)
