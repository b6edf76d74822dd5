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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormRefundRepository implements RefundRepository using GORM
type GormRefundRepository struct {
	db *gorm.DB
}

// NewGormRefundRepository creates a new GormRefundRepository
func NewGormRefundRepository(db *gorm.DB) *GormRefundRepository {
	return &GormRefundRepository{db: db}
}

// FindByID finds a refund by ID
func (r *GormRefundRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Refund, error) {
	var model models.RefundModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCancellation finds all installments of a cancellation, ordered by installment number
func (r *GormRefundRepository) FindByCancellation(ctx context.Context, cancellationID uuid.UUID) ([]finance.Refund, error) {
	var refundModels []models.RefundModel
	if err := r.db.WithContext(ctx).
		Where("cancellation_id = ?", cancellationID).
		Order("installment_number ASC").
		Find(&refundModels).Error; err != nil {
		return nil, err
	}
	result := make([]finance.Refund, len(refundModels))
	for i, model := range refundModels {
		result[i] = *model.ToDomain()
	}
	return result, nil
}

// FindAll finds refunds with filtering
func (r *GormRefundRepository) FindAll(ctx context.Context, filter finance.RefundFilter) ([]finance.Refund, error) {
	var refundModels []models.RefundModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.RefundModel{}), filter)

	if err := query.Find(&refundModels).Error; err != nil {
		return nil, err
	}
	result := make([]finance.Refund, len(refundModels))
	for i, model := range refundModels {
		result[i] = *model.ToDomain()
	}
	return result, nil
}

// FindPendingApproval finds refunds awaiting the given approval status,
// most recently submitted first
func (r *GormRefundRepository) FindPendingApproval(ctx context.Context, status approval.Status) ([]finance.Refund, error) {
	var refundModels []models.RefundModel
	if err := r.db.WithContext(ctx).
		Where("approval_status = ?", status).
		Order("submitted_at DESC").
		Find(&refundModels).Error; err != nil {
		return nil, err
	}
	result := make([]finance.Refund, len(refundModels))
	for i, model := range refundModels {
		result[i] = *model.ToDomain()
	}
	return result, nil
}

// Save creates or updates a refund
func (r *GormRefundRepository) Save(ctx context.Context, refund *finance.Refund) error {
	model := models.RefundModelFromDomain(refund)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveBatch persists a whole refund schedule in one transaction. The unique
// index on (cancellation_id, installment_number) rejects a duplicate
// schedule that slipped past the existence check.
func (r *GormRefundRepository) SaveBatch(ctx context.Context, refunds []*finance.Refund) error {
	if len(refunds) == 0 {
		return nil
	}
	refundModels := make([]*models.RefundModel, len(refunds))
	for i, refund := range refunds {
		refundModels[i] = models.RefundModelFromDomain(refund)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&refundModels).Error
	})
}

// SaveWithLock saves with optimistic locking (version check).
// Domain mutations have already incremented the aggregate version, so the
// row in the database must still carry the previous one.
func (r *GormRefundRepository) SaveWithLock(ctx context.Context, refund *finance.Refund) error {
	model := models.RefundModelFromDomain(refund)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", refund.ID, refund.Version-1).
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

// Count counts refunds with optional filters
func (r *GormRefundRepository) Count(ctx context.Context, filter finance.RefundFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.RefundModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCancellation counts installments scheduled for a cancellation
func (r *GormRefundRepository) CountByCancellation(ctx context.Context, cancellationID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RefundModel{}).
		Where("cancellation_id = ?", cancellationID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumPaidByCancellation sums the amounts of paid installments for a cancellation
func (r *GormRefundRepository) SumPaidByCancellation(ctx context.Context, cancellationID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&models.RefundModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("cancellation_id = ? AND payment_status = ?", cancellationID, finance.RefundPaymentPaid).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// GenerateRefundNumber generates a unique refund number
func (r *GormRefundRepository) GenerateRefundNumber(ctx context.Context) (string, error) {
	return nextDocumentNumber(ctx, r.db, &models.RefundModel{}, "refund_number", "REF")
}

// applyFilter applies filter conditions, sorting and pagination to query
func (r *GormRefundRepository) applyFilter(query *gorm.DB, filter finance.RefundFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, RefundSortFields, "due_date")
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
func (r *GormRefundRepository) applyFilterWithoutPagination(query *gorm.DB, filter finance.RefundFilter) *gorm.DB {
	if filter.CancellationID != nil {
		query = query.Where("cancellation_id = ?", *filter.CancellationID)
	}
	if filter.SaleID != nil {
		query = query.Where("sale_id = ?", *filter.SaleID)
	}
	if filter.ApprovalStatus != nil {
		query = query.Where("approval_status = ?", *filter.ApprovalStatus)
	}
	if filter.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *filter.PaymentStatus)
	}
	if filter.DueFrom != nil {
		query = query.Where("due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("due_date <= ?", *filter.DueTo)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("refund_number ILIKE ? OR client_name ILIKE ?", pattern, pattern)
	}
	return query
}

// Ensure GormRefundRepository implements the interface
var _ finance.RefundRepository = (*GormRefundRepository)(nil)
