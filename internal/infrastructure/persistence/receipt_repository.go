package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/estatebooks/backend/internal/domain/approval"
	"github.com/estatebooks/backend/internal/domain/finance"
	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/estatebooks/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReceiptRepository implements ReceiptRepository using GORM
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// FindByID finds a receipt by ID
func (r *GormReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Receipt, error) {
	var model models.ReceiptModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByReceiptNumber finds a receipt by its number
func (r *GormReceiptRepository) FindByReceiptNumber(ctx context.Context, receiptNumber string) (*finance.Receipt, error) {
	var model models.ReceiptModel
	if err := r.db.WithContext(ctx).
		First(&model, "receipt_number = ?", receiptNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds receipts with filtering
func (r *GormReceiptRepository) FindAll(ctx context.Context, filter finance.ReceiptFilter) ([]finance.Receipt, error) {
	var receiptModels []models.ReceiptModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ReceiptModel{}), filter)

	if err := query.Find(&receiptModels).Error; err != nil {
		return nil, err
	}
	result := make([]finance.Receipt, len(receiptModels))
	for i, model := range receiptModels {
		result[i] = *model.ToDomain()
	}
	return result, nil
}

// FindPendingApproval finds receipts awaiting the given approval status,
// most recently submitted first
func (r *GormReceiptRepository) FindPendingApproval(ctx context.Context, status approval.Status) ([]finance.Receipt, error) {
	var receiptModels []models.ReceiptModel
	if err := r.db.WithContext(ctx).
		Where("approval_status = ?", status).
		Order("submitted_at DESC").
		Find(&receiptModels).Error; err != nil {
		return nil, err
	}
	result := make([]finance.Receipt, len(receiptModels))
	for i, model := range receiptModels {
		result[i] = *model.ToDomain()
	}
	return result, nil
}

// Save creates or updates a receipt
func (r *GormReceiptRepository) Save(ctx context.Context, receipt *finance.Receipt) error {
	model := models.ReceiptModelFromDomain(receipt)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check).
// Domain mutations have already incremented the aggregate version, so the
// row in the database must still carry the previous one.
func (r *GormReceiptRepository) SaveWithLock(ctx context.Context, receipt *finance.Receipt) error {
	model := models.ReceiptModelFromDomain(receipt)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", receipt.ID, receipt.Version-1).
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

// Count counts receipts with optional filters
func (r *GormReceiptRepository) Count(ctx context.Context, filter finance.ReceiptFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ReceiptModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateReceiptNumber generates a unique receipt number
func (r *GormReceiptRepository) GenerateReceiptNumber(ctx context.Context) (string, error) {
	return nextDocumentNumber(ctx, r.db, &models.ReceiptModel{}, "receipt_number", "RCP")
}

// applyFilter applies filter conditions, sorting and pagination to query
func (r *GormReceiptRepository) applyFilter(query *gorm.DB, filter finance.ReceiptFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, ReceiptSortFields, "created_at")
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
func (r *GormReceiptRepository) applyFilterWithoutPagination(query *gorm.DB, filter finance.ReceiptFilter) *gorm.DB {
	if filter.SaleID != nil {
		query = query.Where("sale_id = ?", *filter.SaleID)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.ApprovalStatus != nil {
		query = query.Where("approval_status = ?", *filter.ApprovalStatus)
	}
	if filter.FromDate != nil {
		query = query.Where("receipt_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("receipt_date <= ?", *filter.ToDate)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("receipt_number ILIKE ? OR client_name ILIKE ? OR payment_reference ILIKE ?", pattern, pattern, pattern)
	}
	return query
}

// Ensure GormReceiptRepository implements the interface
var _ finance.ReceiptRepository = (*GormReceiptRepository)(nil)
