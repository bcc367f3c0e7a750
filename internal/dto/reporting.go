package dto

import (
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GenerateStatementParams selects the scope and date range of an income statement.
type GenerateStatementParams struct {
	// BoardingHouseID is ignored when Consolidated is true.
	BoardingHouseID string
	Consolidated    bool
	StartDate       time.Time
	EndDate         time.Time
}

// SaveStatementRequest persists a generated income statement under a name.
type SaveStatementRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	StartDate    string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate      string `json:"endDate" binding:"required,datetime=2006-01-02"`
	Consolidated bool   `json:"consolidated"`
}

// AccountAmountResponse is one account line on an income statement.
type AccountAmountResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// IncomeStatementResponse defines the generated income statement payload.
type IncomeStatementResponse struct {
	BoardingHouseID string                  `json:"boardingHouseID,omitempty"`
	Consolidated    bool                    `json:"consolidated"`
	StartDate       string                  `json:"startDate"`
	EndDate         string                  `json:"endDate"`
	Revenue         []AccountAmountResponse `json:"revenue"`
	Expenses        []AccountAmountResponse `json:"expenses"`
	TotalRevenue    decimal.Decimal         `json:"totalRevenue"`
	TotalExpenses   decimal.Decimal         `json:"totalExpenses"`
	NetIncome       decimal.Decimal         `json:"netIncome"`
}

// ToIncomeStatementResponse converts a domain.IncomeStatement to a DTO.
func ToIncomeStatementResponse(s *domain.IncomeStatement) IncomeStatementResponse {
	resp := IncomeStatementResponse{
		BoardingHouseID: s.BoardingHouseID,
		Consolidated:    s.Consolidated,
		StartDate:       s.StartDate.Format("2006-01-02"),
		EndDate:         s.EndDate.Format("2006-01-02"),
		Revenue:         make([]AccountAmountResponse, len(s.Revenue)),
		Expenses:        make([]AccountAmountResponse, len(s.Expenses)),
		TotalRevenue:    s.TotalRevenue,
		TotalExpenses:   s.TotalExpenses,
		NetIncome:       s.NetIncome,
	}
	for i, line := range s.Revenue {
		resp.Revenue[i] = AccountAmountResponse(line)
	}
	for i, line := range s.Expenses {
		resp.Expenses[i] = AccountAmountResponse(line)
	}
	return resp
}

// SavedStatementResponse defines a stored income statement snapshot.
type SavedStatementResponse struct {
	StatementID     string                  `json:"statementID"`
	BoardingHouseID string                  `json:"boardingHouseID,omitempty"`
	Name            string                  `json:"name"`
	StartDate       string                  `json:"startDate"`
	EndDate         string                  `json:"endDate"`
	Snapshot        IncomeStatementResponse `json:"snapshot"`
	CreatedAt       time.Time               `json:"createdAt"`
	CreatedBy       string                  `json:"createdBy"`
}

// ToSavedStatementResponse converts a domain.SavedStatement to a DTO.
func ToSavedStatementResponse(s *domain.SavedStatement) SavedStatementResponse {
	return SavedStatementResponse{
		StatementID:     s.StatementID,
		BoardingHouseID: s.BoardingHouseID,
		Name:            s.Name,
		StartDate:       s.StartDate.Format("2006-01-02"),
		EndDate:         s.EndDate.Format("2006-01-02"),
		Snapshot:        ToIncomeStatementResponse(&s.Snapshot),
		CreatedAt:       s.CreatedAt,
		CreatedBy:       s.CreatedBy,
	}
}

// ListSavedStatementsResponse wraps the list of saved statements.
type ListSavedStatementsResponse struct {
	Statements []SavedStatementResponse `json:"statements"`
}

// ToListSavedStatementsResponse converts saved statements to the response DTO.
func ToListSavedStatementsResponse(statements []domain.SavedStatement) ListSavedStatementsResponse {
	resp := ListSavedStatementsResponse{Statements: make([]SavedStatementResponse, len(statements))}
	for i := range statements {
		resp.Statements[i] = ToSavedStatementResponse(&statements[i])
	}
	return resp
}

// CreditorResponse is one supplier's accounts payable position.
type CreditorResponse struct {
	SupplierID      string                `json:"supplierID,omitempty"`
	SupplierName    string                `json:"supplierName"`
	TotalBilled     decimal.Decimal       `json:"totalBilled"`
	TotalPaid       decimal.Decimal       `json:"totalPaid"`
	OutstandingDebt decimal.Decimal       `json:"outstandingDebt"`
	ExpenseCount    int                   `json:"expenseCount"`
	LastExpenseDate string                `json:"lastExpenseDate"`
	Status          domain.CreditorStatus `json:"status"`
}

// CreditorsReportResponse defines the accounts payable report payload.
type CreditorsReportResponse struct {
	TotalOutstanding decimal.Decimal    `json:"totalOutstanding"`
	CreditorCount    int                `json:"creditorCount"`
	Creditors        []CreditorResponse `json:"creditors"`
}

// ToCreditorsReportResponse converts a domain.CreditorsReport to a DTO.
func ToCreditorsReportResponse(r *domain.CreditorsReport) CreditorsReportResponse {
	resp := CreditorsReportResponse{
		TotalOutstanding: r.TotalOutstanding,
		CreditorCount:    r.CreditorCount,
		Creditors:        make([]CreditorResponse, len(r.Creditors)),
	}
	for i, c := range r.Creditors {
		resp.Creditors[i] = CreditorResponse{
			SupplierID:      c.SupplierID,
			SupplierName:    c.SupplierName,
			TotalBilled:     c.TotalBilled,
			TotalPaid:       c.TotalPaid,
			OutstandingDebt: c.OutstandingDebt,
			ExpenseCount:    c.ExpenseCount,
			LastExpenseDate: c.LastExpenseDate.Format("2006-01-02"),
			Status:          c.Status,
		}
	}
	return resp
}

// StudentPrepaymentResponse is one student's prepayment position.
type StudentPrepaymentResponse struct {
	StudentID       string                 `json:"studentID,omitempty"`
	StudentName     string                 `json:"studentName"`
	TotalPaid       decimal.Decimal        `json:"totalPaid"`
	TotalCharged    decimal.Decimal        `json:"totalCharged"`
	CreditBalance   decimal.Decimal        `json:"creditBalance"`
	LastPaymentDate string                 `json:"lastPaymentDate"`
	Class           domain.PrepaymentClass `json:"class"`
}

// PrepaymentsReportResponse defines the student prepayments report payload.
type PrepaymentsReportResponse struct {
	TotalCredit  decimal.Decimal             `json:"totalCredit"`
	StudentCount int                         `json:"studentCount"`
	Students     []StudentPrepaymentResponse `json:"students"`
}

// ToPrepaymentsReportResponse converts a domain.PrepaymentsReport to a DTO.
func ToPrepaymentsReportResponse(r *domain.PrepaymentsReport) PrepaymentsReportResponse {
	resp := PrepaymentsReportResponse{
		TotalCredit:  r.TotalCredit,
		StudentCount: r.StudentCount,
		Students:     make([]StudentPrepaymentResponse, len(r.Students)),
	}
	for i, s := range r.Students {
		resp.Students[i] = StudentPrepaymentResponse{
			StudentID:       s.StudentID,
			StudentName:     s.StudentName,
			TotalPaid:       s.TotalPaid,
			TotalCharged:    s.TotalCharged,
			CreditBalance:   s.CreditBalance,
			LastPaymentDate: s.LastPaymentDate.Format("2006-01-02"),
			Class:           s.Class,
		}
	}
	return resp
}

// OverduePaymentResponse is one unpaid or partially paid entry past its due date.
type OverduePaymentResponse struct {
	EntryID          string          `json:"entryID"`
	SupplierID       string          `json:"supplierID,omitempty"`
	SupplierName     string          `json:"supplierName,omitempty"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	DueDate          string          `json:"dueDate"`
	DaysOverdue      int             `json:"daysOverdue"`
}

// OverduePaymentsResponse wraps the list of overdue payments.
type OverduePaymentsResponse struct {
	Overdue []OverduePaymentResponse `json:"overdue"`
}

// ToOverduePaymentsResponse converts domain overdue rows to the response DTO.
func ToOverduePaymentsResponse(rows []domain.OverduePayment) OverduePaymentsResponse {
	resp := OverduePaymentsResponse{Overdue: make([]OverduePaymentResponse, len(rows))}
	for i, row := range rows {
		resp.Overdue[i] = OverduePaymentResponse{
			EntryID:          row.EntryID,
			SupplierID:       row.SupplierID,
			SupplierName:     row.SupplierName,
			Description:      row.Description,
			Amount:           row.Amount,
			RemainingBalance: row.RemainingBalance,
			DueDate:          row.DueDate.Format("2006-01-02"),
			DaysOverdue:      row.DaysOverdue,
		}
	}
	return resp
}
