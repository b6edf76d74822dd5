package finance

import (
	"context"
	"testing"
	"time"

	"github.com/estatebooks/backend/internal/domain/approval"
	"github.com/estatebooks/backend/internal/domain/finance"
	"github.com/estatebooks/backend/internal/domain/sales"
	"github.com/estatebooks/backend/internal/domain/shared"
	"github.com/estatebooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func hofPendingReceipt(t *testing.T, sale *sales.Sale, amount int64) *finance.Receipt {
	t.Helper()
	receipt, err := finance.NewReceipt(
		"RCP-2026-0001", sale.ID, sale.ClientID, sale.ClientName,
		valueobject.NewMoneyINRFromInt(amount),
		finance.PaymentMethodBankTransfer,
		time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.NoError(t, receipt.Submit(uuid.New()))
	_, err = receipt.Approve(uuid.New(), approval.RoleAccountManager, "")
	require.NoError(t, err)
	return receipt
}

func TestReceiptService_CreateReceipt(t *testing.T) {
	receiptRepo := new(MockReceiptRepository)
	saleRepo := new(MockSaleRepository)
	service := NewReceiptService(receiptRepo, saleRepo, new(MockLedgerPoster))

	sale := activeSaleWithPayments(t, 0)
	saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
	receiptRepo.On("GenerateReceiptNumber", mock.Anything).Return("RCP-2026-0007", nil)
	receiptRepo.On("Save", mock.Anything, mock.AnythingOfType("*finance.Receipt")).Return(nil)

	resp, err := service.CreateReceipt(context.Background(), CreateReceiptRequest{
		SaleID:        sale.ID,
		ClientID:      sale.ClientID,
		ClientName:    sale.ClientName,
		Amount:        decimal.NewFromInt(50000),
		PaymentMethod: "UPI",
		ReceiptDate:   time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "RCP-2026-0007", resp.ReceiptNumber)
	assert.Equal(t, "DRAFT", resp.ApprovalStatus)
	assert.False(t, resp.PostedToLedger)
	receiptRepo.AssertExpectations(t)
}

func TestReceiptService_CreateReceipt_InactiveSale(t *testing.T) {
	receiptRepo := new(MockReceiptRepository)
	saleRepo := new(MockSaleRepository)
	service := NewReceiptService(receiptRepo, saleRepo, new(MockLedgerPoster))

	sale := activeSaleWithPayments(t, 0)
	require.NoError(t, sale.Hold("disputed allotment"))
	saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)

	_, err := service.CreateReceipt(context.Background(), CreateReceiptRequest{
		SaleID:        sale.ID,
		ClientID:      sale.ClientID,
		ClientName:    sale.ClientName,
		Amount:        decimal.NewFromInt(50000),
		PaymentMethod: "CASH",
		ReceiptDate:   time.Now(),
	})

	assertServiceErrCode(t, err, "INVALID_STATE")
	receiptRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReceiptService_FinalApproval_PostsAndAppliesPayment(t *testing.T) {
	receiptRepo := new(MockReceiptRepository)
	saleRepo := new(MockSaleRepository)
	ledger := new(MockLedgerPoster)
	service := NewReceiptService(receiptRepo, saleRepo, ledger)

	sale := activeSaleWithPayments(t, 100000)
	receipt := hofPendingReceipt(t, sale, 50000)

	receiptRepo.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
	receiptRepo.On("SaveWithLock", mock.Anything, receipt).Return(nil)
	ledger.On("PostReceipt", mock.Anything, receipt).Return(nil)
	saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
	saleRepo.On("SaveWithLock", mock.Anything, sale).Return(nil)

	resp, err := service.ApproveReceipt(context.Background(), receipt.ID, uuid.New(), approval.RoleHOF, "verified against bank statement")

	require.NoError(t, err)
	assert.Equal(t, "APPROVED", resp.ApprovalStatus)
	assert.True(t, resp.PostedToLedger)
	assert.True(t, sale.PaidAmount.Equal(decimal.NewFromInt(150000)))
	ledger.AssertExpectations(t)
	saleRepo.AssertExpectations(t)
}

func TestReceiptService_FinalApproval_CompletesSaleAtFullPrice(t *testing.T) {
	receiptRepo := new(MockReceiptRepository)
	saleRepo := new(MockSaleRepository)
	ledger := new(MockLedgerPoster)
	service := NewReceiptService(receiptRepo, saleRepo, ledger)

	sale := activeSaleWithPayments(t, 450000) // total price 500000
	receipt := hofPendingReceipt(t, sale, 50000)

	receiptRepo.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
	receiptRepo.On("SaveWithLock", mock.Anything, receipt).Return(nil)
	ledger.On("PostReceipt", mock.Anything, receipt).Return(nil)
	saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
	saleRepo.On("SaveWithLock", mock.Anything, sale).Return(nil)

	_, err := service.ApproveReceipt(context.Background(), receipt.ID, uuid.New(), approval.RoleHOF, "")

	require.NoError(t, err)
	assert.Equal(t, sales.SaleStatusCompleted, sale.Status)
}

func TestReceiptService_FirstApproval_NoSideEffects(t *testing.T) {
	receiptRepo := new(MockReceiptRepository)
	saleRepo := new(MockSaleRepository)
	ledger := new(MockLedgerPoster)
	service := NewReceiptService(receiptRepo, saleRepo, ledger)

	sale := activeSaleWithPayments(t, 0)
	receipt, err := finance.NewReceipt(
		"RCP-2026-0002", sale.ID, sale.ClientID, sale.ClientName,
		valueobject.NewMoneyINRFromInt(25000),
		finance.PaymentMethodCash,
		time.Now(),
	)
	require.NoError(t, err)
	require.NoError(t, receipt.Submit(uuid.New()))

	receiptRepo.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
	receiptRepo.On("SaveWithLock", mock.Anything, receipt).Return(nil)

	resp, err := service.ApproveReceipt(context.Background(), receipt.ID, uuid.New(), approval.RoleAccountManager, "")

	require.NoError(t, err)
	assert.Equal(t, "PENDING_HOF", resp.ApprovalStatus)
	ledger.AssertNotCalled(t, "PostReceipt", mock.Anything, mock.Anything)
	saleRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestReceiptService_Approve_WrongRole(t *testing.T) {
	receiptRepo := new(MockReceiptRepository)
	saleRepo := new(MockSaleRepository)
	service := NewReceiptService(receiptRepo, saleRepo, new(MockLedgerPoster))

	sale := activeSaleWithPayments(t, 0)
	receipt := hofPendingReceipt(t, sale, 10000)

	receiptRepo.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)

	_, err := service.ApproveReceipt(context.Background(), receipt.ID, uuid.New(), approval.RoleAccountManager, "")

	assertServiceErrCode(t, err, "FORBIDDEN")
	receiptRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestReceiptService_Approve_LostRace(t *testing.T) {
	receiptRepo := new(MockReceiptRepository)
	saleRepo := new(MockSaleRepository)
	ledger := new(MockLedgerPoster)
	service := NewReceiptService(receiptRepo, saleRepo, ledger)

	sale := activeSaleWithPayments(t, 0)
	receipt := hofPendingReceipt(t, sale, 10000)

	receiptRepo.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
	receiptRepo.On("SaveWithLock", mock.Anything, receipt).Return(shared.ErrConcurrencyConflict)

	_, err := service.ApproveReceipt(context.Background(), receipt.ID, uuid.New(), approval.RoleHOF, "")

	assertServiceErrCode(t, err, "VERSION_CONFLICT")
	ledger.AssertNotCalled(t, "PostReceipt", mock.Anything, mock.Anything)
}

func TestReceiptService_FinalApproval_PostedFlagRecoversFromLostRace(t *testing.T) {
	receiptRepo := new(MockReceiptRepository)
	saleRepo := new(MockSaleRepository)
	ledger := new(MockLedgerPoster)
	service := NewReceiptService(receiptRepo, saleRepo, ledger)

	sale := activeSaleWithPayments(t, 100000)
	receipt := hofPendingReceipt(t, sale, 50000)

	// the copy another writer raced ahead with: approved but not yet posted
	fresh := hofPendingReceipt(t, sale, 50000)
	fresh.ID = receipt.ID
	_, err := fresh.Approve(uuid.New(), approval.RoleHOF, "")
	require.NoError(t, err)

	receiptRepo.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil).Once()
	receiptRepo.On("SaveWithLock", mock.Anything, receipt).Return(nil).Once()
	ledger.On("PostReceipt", mock.Anything, receipt).Return(nil)
	// the ledger entry is durable when this save loses the version race;
	// the flag must be re-applied to a reloaded copy, not abandoned
	receiptRepo.On("SaveWithLock", mock.Anything, receipt).Return(shared.ErrConcurrencyConflict).Once()
	receiptRepo.On("FindByID", mock.Anything, receipt.ID).Return(fresh, nil).Once()
	receiptRepo.On("SaveWithLock", mock.Anything, fresh).Return(nil).Once()
	saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
	saleRepo.On("SaveWithLock", mock.Anything, sale).Return(nil)

	resp, err := service.ApproveReceipt(context.Background(), receipt.ID, uuid.New(), approval.RoleHOF, "")

	require.NoError(t, err)
	assert.Equal(t, "APPROVED", resp.ApprovalStatus)
	assert.True(t, fresh.PostedToLedger)
	assert.True(t, sale.PaidAmount.Equal(decimal.NewFromInt(150000)))
	receiptRepo.AssertExpectations(t)
}

func TestReceiptService_FinalApproval_PaymentRetriesOnSaleRace(t *testing.T) {
	receiptRepo := new(MockReceiptRepository)
	saleRepo := new(MockSaleRepository)
	ledger := new(MockLedgerPoster)
	service := NewReceiptService(receiptRepo, saleRepo, ledger)

	sale := activeSaleWithPayments(t, 100000)
	receipt := hofPendingReceipt(t, sale, 50000)

	receiptRepo.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)
	receiptRepo.On("SaveWithLock", mock.Anything, receipt).Return(nil)
	ledger.On("PostReceipt", mock.Anything, receipt).Return(nil)
	saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
	saleRepo.On("SaveWithLock", mock.Anything, sale).Return(shared.ErrConcurrencyConflict).Once()
	saleRepo.On("SaveWithLock", mock.Anything, sale).Return(nil).Once()

	_, err := service.ApproveReceipt(context.Background(), receipt.ID, uuid.New(), approval.RoleHOF, "")

	require.NoError(t, err)
	saleRepo.AssertNumberOfCalls(t, "SaveWithLock", 2)
}

func TestReceiptService_Reject_RequiresRemarks(t *testing.T) {
	receiptRepo := new(MockReceiptRepository)
	saleRepo := new(MockSaleRepository)
	service := NewReceiptService(receiptRepo, saleRepo, new(MockLedgerPoster))

	sale := activeSaleWithPayments(t, 0)
	receipt := hofPendingReceipt(t, sale, 10000)

	receiptRepo.On("FindByID", mock.Anything, receipt.ID).Return(receipt, nil)

	_, err := service.RejectReceipt(context.Background(), receipt.ID, uuid.New(), approval.RoleHOF, "   ")

	assertServiceErrCode(t, err, "MISSING_REASON")
	receiptRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}
