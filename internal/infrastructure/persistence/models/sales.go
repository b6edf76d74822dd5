package models

import (
	"time"

	"github.com/estatebooks/backend/internal/domain/sales"
	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale aggregate root.
type SaleModel struct {
	AggregateModel
	SaleNumber  string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	ClientID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	ClientName  string           `gorm:"type:varchar(200);not null"`
	PlotID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	PlotNumber  string           `gorm:"type:varchar(50);not null"`
	TotalPrice  decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	PaidAmount  decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Status      sales.SaleStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	SaleDate    time.Time        `gorm:"not null;index"`
	CompletedAt *time.Time
	CancelledAt *time.Time
	HeldAt      *time.Time
	HoldReason  string `gorm:"type:varchar(500)"`
	Remarks     string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale entity.
func (m *SaleModel) ToDomain() *sales.Sale {
	return &sales.Sale{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		SaleNumber:  m.SaleNumber,
		ClientID:    m.ClientID,
		ClientName:  m.ClientName,
		PlotID:      m.PlotID,
		PlotNumber:  m.PlotNumber,
		TotalPrice:  m.TotalPrice,
		PaidAmount:  m.PaidAmount,
		Status:      m.Status,
		SaleDate:    m.SaleDate,
		CompletedAt: m.CompletedAt,
		CancelledAt: m.CancelledAt,
		HeldAt:      m.HeldAt,
		HoldReason:  m.HoldReason,
		Remarks:     m.Remarks,
	}
}

// FromDomain populates the persistence model from a domain Sale entity.
func (m *SaleModel) FromDomain(s *sales.Sale) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.SaleNumber = s.SaleNumber
	m.ClientID = s.ClientID
	m.ClientName = s.ClientName
	m.PlotID = s.PlotID
	m.PlotNumber = s.PlotNumber
	m.TotalPrice = s.TotalPrice
	m.PaidAmount = s.PaidAmount
	m.Status = s.Status
	m.SaleDate = s.SaleDate
	m.CompletedAt = s.CompletedAt
	m.CancelledAt = s.CancelledAt
	m.HeldAt = s.HeldAt
	m.HoldReason = s.HoldReason
	m.Remarks = s.Remarks
}

// SaleModelFromDomain creates a new persistence model from a domain Sale.
func SaleModelFromDomain(s *sales.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}
