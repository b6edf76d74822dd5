package models

import (
	"time"

	"github.com/estatebooks/backend/internal/domain/approval"
	"github.com/estatebooks/backend/internal/domain/finance"
	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CancellationModel is the persistence model for the Cancellation aggregate root.
type CancellationModel struct {
	AggregateModel
	CancellationNumber  string                     `gorm:"type:varchar(50);not null;uniqueIndex"`
	SaleID              uuid.UUID                  `gorm:"type:uuid;not null;index"`
	SaleNumber          string                     `gorm:"type:varchar(50);not null"`
	ClientName          string                     `gorm:"type:varchar(200);not null"`
	Reason              string                     `gorm:"type:varchar(500);not null"`
	Notes               string                     `gorm:"type:text"`
	TotalPaid           decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	OfficeChargePercent decimal.Decimal            `gorm:"type:decimal(7,4);not null"`
	OfficeChargeAmount  decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	OtherDeductions     decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	RefundableAmount    decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	RefundedAmount      decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	Status              finance.CancellationStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	RequestedBy         uuid.UUID                  `gorm:"type:uuid;not null"`
	DecidedAt           *time.Time
	DecidedBy           *uuid.UUID `gorm:"type:uuid"`
	DecisionRemarks     string     `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (CancellationModel) TableName() string {
	return "cancellations"
}

// ToDomain converts the persistence model to a domain Cancellation entity.
func (m *CancellationModel) ToDomain() *finance.Cancellation {
	return &finance.Cancellation{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		CancellationNumber:  m.CancellationNumber,
		SaleID:              m.SaleID,
		SaleNumber:          m.SaleNumber,
		ClientName:          m.ClientName,
		Reason:              m.Reason,
		Notes:               m.Notes,
		TotalPaid:           m.TotalPaid,
		OfficeChargePercent: m.OfficeChargePercent,
		OfficeChargeAmount:  m.OfficeChargeAmount,
		OtherDeductions:     m.OtherDeductions,
		RefundableAmount:    m.RefundableAmount,
		RefundedAmount:      m.RefundedAmount,
		Status:              m.Status,
		RequestedBy:         m.RequestedBy,
		DecidedAt:           m.DecidedAt,
		DecidedBy:           m.DecidedBy,
		DecisionRemarks:     m.DecisionRemarks,
	}
}

// FromDomain populates the persistence model from a domain Cancellation entity.
func (m *CancellationModel) FromDomain(c *finance.Cancellation) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.CancellationNumber = c.CancellationNumber
	m.SaleID = c.SaleID
	m.SaleNumber = c.SaleNumber
	m.ClientName = c.ClientName
	m.Reason = c.Reason
	m.Notes = c.Notes
	m.TotalPaid = c.TotalPaid
	m.OfficeChargePercent = c.OfficeChargePercent
	m.OfficeChargeAmount = c.OfficeChargeAmount
	m.OtherDeductions = c.OtherDeductions
	m.RefundableAmount = c.RefundableAmount
	m.RefundedAmount = c.RefundedAmount
	m.Status = c.Status
	m.RequestedBy = c.RequestedBy
	m.DecidedAt = c.DecidedAt
	m.DecidedBy = c.DecidedBy
	m.DecisionRemarks = c.DecisionRemarks
}

// CancellationModelFromDomain creates a new persistence model from a domain Cancellation.
func CancellationModelFromDomain(c *finance.Cancellation) *CancellationModel {
	m := &CancellationModel{}
	m.FromDomain(c)
	return m
}

// RefundModel is the persistence model for the Refund aggregate root.
// Installment numbers are unique per cancellation so a schedule can never
// contain duplicate positions.
type RefundModel struct {
	AggregateModel
	RefundNumber      string                      `gorm:"type:varchar(50);not null;uniqueIndex"`
	CancellationID    uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_refund_cancellation_installment,priority:1"`
	SaleID            uuid.UUID                   `gorm:"type:uuid;not null;index"`
	ClientName        string                      `gorm:"type:varchar(200);not null"`
	InstallmentNumber int                         `gorm:"not null;uniqueIndex:idx_refund_cancellation_installment,priority:2"`
	Amount            decimal.Decimal             `gorm:"type:decimal(18,4);not null"`
	DueDate           time.Time                   `gorm:"not null;index"`
	ApprovalStatus    approval.Status             `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	SubmittedAt       *time.Time                  `gorm:"index"`
	SubmittedBy       *uuid.UUID                  `gorm:"type:uuid"`
	ApprovalHistory   approval.History            `gorm:"type:jsonb;default:'[]'"`
	PaymentStatus     finance.RefundPaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaymentMethod     *finance.PaymentMethod      `gorm:"type:varchar(20)"`
	PaidDate          *time.Time
	PaidBy            *uuid.UUID `gorm:"type:uuid"`
	TransactionRef    string     `gorm:"type:varchar(100)"`
	Remarks           string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RefundModel) TableName() string {
	return "refunds"
}

// ToDomain converts the persistence model to a domain Refund entity.
func (m *RefundModel) ToDomain() *finance.Refund {
	return &finance.Refund{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		RefundNumber:      m.RefundNumber,
		CancellationID:    m.CancellationID,
		SaleID:            m.SaleID,
		ClientName:        m.ClientName,
		InstallmentNumber: m.InstallmentNumber,
		Amount:            m.Amount,
		DueDate:           m.DueDate,
		Approval: approval.Flow{
			Status:      m.ApprovalStatus,
			SubmittedAt: m.SubmittedAt,
			SubmittedBy: m.SubmittedBy,
			History:     m.ApprovalHistory,
		},
		PaymentStatus:  m.PaymentStatus,
		PaymentMethod:  m.PaymentMethod,
		PaidDate:       m.PaidDate,
		PaidBy:         m.PaidBy,
		TransactionRef: m.TransactionRef,
		Remarks:        m.Remarks,
	}
}

// FromDomain populates the persistence model from a domain Refund entity.
func (m *RefundModel) FromDomain(r *finance.Refund) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.RefundNumber = r.RefundNumber
	m.CancellationID = r.CancellationID
	m.SaleID = r.SaleID
	m.ClientName = r.ClientName
	m.InstallmentNumber = r.InstallmentNumber
	m.Amount = r.Amount
	m.DueDate = r.DueDate
	m.ApprovalStatus = r.Approval.Status
	m.SubmittedAt = r.Approval.SubmittedAt
	m.SubmittedBy = r.Approval.SubmittedBy
	m.ApprovalHistory = r.Approval.History
	m.PaymentStatus = r.PaymentStatus
	m.PaymentMethod = r.PaymentMethod
	m.PaidDate = r.PaidDate
	m.PaidBy = r.PaidBy
	m.TransactionRef = r.TransactionRef
	m.Remarks = r.Remarks
}

// RefundModelFromDomain creates a new persistence model from a domain Refund.
func RefundModelFromDomain(r *finance.Refund) *RefundModel {
	m := &RefundModel{}
	m.FromDomain(r)
	return m
}

// ReceiptModel is the persistence model for the Receipt aggregate root.
type ReceiptModel struct {
	AggregateModel
	ReceiptNumber    string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	SaleID           uuid.UUID             `gorm:"type:uuid;not null;index"`
	ClientID         uuid.UUID             `gorm:"type:uuid;not null;index"`
	ClientName       string                `gorm:"type:varchar(200);not null"`
	Amount           decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	PaymentMethod    finance.PaymentMethod `gorm:"type:varchar(20);not null"`
	PaymentReference string                `gorm:"type:varchar(100)"`
	ReceiptDate      time.Time             `gorm:"not null;index"`
	Remarks          string                `gorm:"type:text"`
	ApprovalStatus   approval.Status       `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	SubmittedAt      *time.Time            `gorm:"index"`
	SubmittedBy      *uuid.UUID            `gorm:"type:uuid"`
	ApprovalHistory  approval.History      `gorm:"type:jsonb;default:'[]'"`
	PostedToLedger   bool                  `gorm:"not null;default:false"`
	PostedAt         *time.Time
}

// TableName returns the table name for GORM
func (ReceiptModel) TableName() string {
	return "receipts"
}

// ToDomain converts the persistence model to a domain Receipt entity.
func (m *ReceiptModel) ToDomain() *finance.Receipt {
	return &finance.Receipt{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		ReceiptNumber:    m.ReceiptNumber,
		SaleID:           m.SaleID,
		ClientID:         m.ClientID,
		ClientName:       m.ClientName,
		Amount:           m.Amount,
		PaymentMethod:    m.PaymentMethod,
		PaymentReference: m.PaymentReference,
		ReceiptDate:      m.ReceiptDate,
		Remarks:          m.Remarks,
		Approval: approval.Flow{
			Status:      m.ApprovalStatus,
			SubmittedAt: m.SubmittedAt,
			SubmittedBy: m.SubmittedBy,
			History:     m.ApprovalHistory,
		},
		PostedToLedger: m.PostedToLedger,
		PostedAt:       m.PostedAt,
	}
}

// FromDomain populates the persistence model from a domain Receipt entity.
func (m *ReceiptModel) FromDomain(r *finance.Receipt) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.ReceiptNumber = r.ReceiptNumber
	m.SaleID = r.SaleID
	m.ClientID = r.ClientID
	m.ClientName = r.ClientName
	m.Amount = r.Amount
	m.PaymentMethod = r.PaymentMethod
	m.PaymentReference = r.PaymentReference
	m.ReceiptDate = r.ReceiptDate
	m.Remarks = r.Remarks
	m.ApprovalStatus = r.Approval.Status
	m.SubmittedAt = r.Approval.SubmittedAt
	m.SubmittedBy = r.Approval.SubmittedBy
	m.ApprovalHistory = r.Approval.History
	m.PostedToLedger = r.PostedToLedger
	m.PostedAt = r.PostedAt
}

// ReceiptModelFromDomain creates a new persistence model from a domain Receipt.
func ReceiptModelFromDomain(r *finance.Receipt) *ReceiptModel {
	m := &ReceiptModel{}
	m.FromDomain(r)
	return m
}

// ExpenseModel is the persistence model for the Expense aggregate root.
type ExpenseModel struct {
	AggregateModel
	ExpenseNumber   string                  `gorm:"type:varchar(50);not null;uniqueIndex"`
	Category        finance.ExpenseCategory `gorm:"type:varchar(20);not null;index"`
	PaidTo          string                  `gorm:"type:varchar(200);not null"`
	Amount          decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	PaymentMethod   finance.PaymentMethod   `gorm:"type:varchar(20);not null"`
	ExpenseDate     time.Time               `gorm:"not null;index"`
	Description     string                  `gorm:"type:text"`
	ApprovalStatus  approval.Status         `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	SubmittedAt     *time.Time              `gorm:"index"`
	SubmittedBy     *uuid.UUID              `gorm:"type:uuid"`
	ApprovalHistory approval.History        `gorm:"type:jsonb;default:'[]'"`
	PostedToLedger  bool                    `gorm:"not null;default:false"`
	PostedAt        *time.Time
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		ExpenseNumber: m.ExpenseNumber,
		Category:      m.Category,
		PaidTo:        m.PaidTo,
		Amount:        m.Amount,
		PaymentMethod: m.PaymentMethod,
		ExpenseDate:   m.ExpenseDate,
		Description:   m.Description,
		Approval: approval.Flow{
			Status:      m.ApprovalStatus,
			SubmittedAt: m.SubmittedAt,
			SubmittedBy: m.SubmittedBy,
			History:     m.ApprovalHistory,
		},
		PostedToLedger: m.PostedToLedger,
		PostedAt:       m.PostedAt,
	}
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.ExpenseNumber = e.ExpenseNumber
	m.Category = e.Category
	m.PaidTo = e.PaidTo
	m.Amount = e.Amount
	m.PaymentMethod = e.PaymentMethod
	m.ExpenseDate = e.ExpenseDate
	m.Description = e.Description
	m.ApprovalStatus = e.Approval.Status
	m.SubmittedAt = e.Approval.SubmittedAt
	m.SubmittedBy = e.Approval.SubmittedBy
	m.ApprovalHistory = e.Approval.History
	m.PostedToLedger = e.PostedToLedger
	m.PostedAt = e.PostedAt
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense.
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}

// LedgerEntryModel is the append-only accounting ledger row. Entries are
// written once when a document is posted and never updated or deleted.
type LedgerEntryModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	EntryDate    time.Time       `gorm:"not null;index"`
	Direction    string          `gorm:"type:varchar(10);not null;index"`
	SourceType   string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_ledger_source,priority:1"`
	SourceID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_source,priority:2"`
	SourceNumber string          `gorm:"type:varchar(50);not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Description  string          `gorm:"type:varchar(500)"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}
