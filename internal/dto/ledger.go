package dto

import (
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest records an expense against an expense account.
type CreateExpenseRequest struct {
	AccountID       string          `json:"accountID" binding:"required,uuid"`
	EntryDate       string          `json:"entryDate" binding:"required,datetime=2006-01-02"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Description     string          `json:"description" binding:"required,max=255"`
	ReferenceNumber string          `json:"referenceNumber,omitempty" binding:"omitempty,max=100"`
	PaymentMethod   string          `json:"paymentMethod" binding:"required,oneof=cash bank_transfer check petty_cash credit"`
	PaymentStatus   string          `json:"paymentStatus" binding:"required,oneof=full partial unpaid"`
	// PartialPaymentAmount is required when paymentStatus is partial.
	PartialPaymentAmount *decimal.Decimal `json:"partialPaymentAmount,omitempty"`
	DueDate              *string          `json:"dueDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	SupplierID           string           `json:"supplierID,omitempty" binding:"omitempty,max=100"`
	SupplierName         string           `json:"supplierName,omitempty" binding:"omitempty,max=255"`
}

// CreatePaymentRequest records a payment received into a revenue account.
type CreatePaymentRequest struct {
	AccountID       string          `json:"accountID" binding:"required,uuid"`
	EntryDate       string          `json:"entryDate" binding:"required,datetime=2006-01-02"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Description     string          `json:"description" binding:"required,max=255"`
	ReferenceNumber string          `json:"referenceNumber,omitempty" binding:"omitempty,max=100"`
	PaymentMethod   string          `json:"paymentMethod" binding:"required,oneof=cash bank_transfer check petty_cash credit"`
	StudentID       string          `json:"studentID,omitempty" binding:"omitempty,max=100"`
	StudentName     string          `json:"studentName,omitempty" binding:"omitempty,max=255"`

	// ChargedAmount is the billed portion this payment settles. When the
	// payment exceeds it, the surplus becomes the student's credit. Omitted
	// means the full amount was billed (no credit arises).
	ChargedAmount *decimal.Decimal `json:"chargedAmount,omitempty"`
}

// PettyCashMovementRequest issues float to or returns float from a petty cash user.
type PettyCashMovementRequest struct {
	AccountID       string          `json:"accountID" binding:"required,uuid"`
	EntryDate       string          `json:"entryDate" binding:"required,datetime=2006-01-02"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Description     string          `json:"description" binding:"required,max=255"`
	ReferenceNumber string          `json:"referenceNumber,omitempty" binding:"omitempty,max=100"`
}

// UpdateEntryRequest amends the descriptive fields of a ledger entry.
// Monetary and account fields are immutable once posted.
type UpdateEntryRequest struct {
	Description     *string `json:"description,omitempty" binding:"omitempty,max=255"`
	ReferenceNumber *string `json:"referenceNumber,omitempty" binding:"omitempty,max=100"`
	PaymentStatus   *string `json:"paymentStatus,omitempty" binding:"omitempty,oneof=full partial unpaid"`
	// PartialPaymentAmount applies when paymentStatus moves to partial.
	PartialPaymentAmount *decimal.Decimal `json:"partialPaymentAmount,omitempty"`
	DueDate              *string          `json:"dueDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	SupplierName         *string          `json:"supplierName,omitempty" binding:"omitempty,max=255"`
	StudentName          *string          `json:"studentName,omitempty" binding:"omitempty,max=255"`
}

// ListEntriesParams carries query filters for listing ledger entries.
type ListEntriesParams struct {
	Kind      string `form:"kind" binding:"omitempty,oneof=EXPENSE PAYMENT PETTY_CASH_ISSUANCE PETTY_CASH_REDUCTION"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID              string               `json:"entryID"`
	BoardingHouseID      string               `json:"boardingHouseID"`
	Kind                 domain.EntryKind     `json:"kind"`
	Side                 domain.EntrySide     `json:"side"`
	AccountID            string               `json:"accountID"`
	EntryDate            string               `json:"entryDate"`
	Amount               decimal.Decimal      `json:"amount"`
	Description          string               `json:"description"`
	ReferenceNumber      string               `json:"referenceNumber,omitempty"`
	PaymentMethod        domain.PaymentMethod `json:"paymentMethod"`
	PaymentStatus        domain.PaymentStatus `json:"paymentStatus,omitempty"`
	PartialPaymentAmount decimal.Decimal      `json:"partialPaymentAmount"`
	RemainingBalance     decimal.Decimal      `json:"remainingBalance"`
	DueDate              *string              `json:"dueDate,omitempty"`
	SupplierID           string               `json:"supplierID,omitempty"`
	SupplierName         string               `json:"supplierName,omitempty"`
	StudentID            string               `json:"studentID,omitempty"`
	StudentName          string               `json:"studentName,omitempty"`
	PettyCashUserID      string               `json:"pettyCashUserID,omitempty"`
	CreatedAt            time.Time            `json:"createdAt"`
	CreatedBy            string               `json:"createdBy"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to a DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	resp := LedgerEntryResponse{
		EntryID:              e.EntryID,
		BoardingHouseID:      e.BoardingHouseID,
		Kind:                 e.Kind,
		Side:                 e.Side,
		AccountID:            e.AccountID,
		EntryDate:            e.EntryDate.Format("2006-01-02"),
		Amount:               e.Amount,
		Description:          e.Description,
		ReferenceNumber:      e.ReferenceNumber,
		PaymentMethod:        e.PaymentMethod,
		PaymentStatus:        e.PaymentStatus,
		PartialPaymentAmount: e.PartialPaymentAmount,
		RemainingBalance:     e.RemainingBalance,
		SupplierID:           e.SupplierID,
		SupplierName:         e.SupplierName,
		StudentID:            e.StudentID,
		StudentName:          e.StudentName,
		PettyCashUserID:      e.PettyCashUserID,
		CreatedAt:            e.CreatedAt,
		CreatedBy:            e.CreatedBy,
	}
	if e.DueDate != nil {
		due := e.DueDate.Format("2006-01-02")
		resp.DueDate = &due
	}
	return resp
}

// ListEntriesResponse wraps a page of ledger entries.
type ListEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToListEntriesResponse converts a page of domain entries to the response DTO.
func ToListEntriesResponse(entries []domain.LedgerEntry, nextToken *string) ListEntriesResponse {
	resp := ListEntriesResponse{Entries: make([]LedgerEntryResponse, len(entries)), NextToken: nextToken}
	for i := range entries {
		resp.Entries[i] = ToLedgerEntryResponse(&entries[i])
	}
	return resp
}
