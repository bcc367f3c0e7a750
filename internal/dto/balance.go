package dto

import (
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PeriodResponse defines the data returned for an accounting period.
type PeriodResponse struct {
	PeriodID        string    `json:"periodID"`
	BoardingHouseID string    `json:"boardingHouseID"`
	Name            string    `json:"name"`
	StartDate       string    `json:"startDate"`
	EndDate         string    `json:"endDate"`
	IsClosed        bool      `json:"isClosed"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToPeriodResponse converts a domain.Period to a DTO.
func ToPeriodResponse(p *domain.Period) PeriodResponse {
	return PeriodResponse{
		PeriodID:        p.PeriodID,
		BoardingHouseID: p.BoardingHouseID,
		Name:            p.Name,
		StartDate:       p.StartDate.Format("2006-01-02"),
		EndDate:         p.EndDate.Format("2006-01-02"),
		IsClosed:        p.IsClosed,
		CreatedAt:       p.CreatedAt,
	}
}

// ListPeriodsResponse wraps the list of periods.
type ListPeriodsResponse struct {
	Periods []PeriodResponse `json:"periods"`
}

// ToListPeriodsResponse converts domain periods to the response DTO.
func ToListPeriodsResponse(periods []domain.Period) ListPeriodsResponse {
	resp := ListPeriodsResponse{Periods: make([]PeriodResponse, len(periods))}
	for i := range periods {
		resp.Periods[i] = ToPeriodResponse(&periods[i])
	}
	return resp
}

// BalanceRowResponse is one account's balance within a period.
type BalanceRowResponse struct {
	AccountID         string             `json:"accountID"`
	AccountCode       string             `json:"accountCode"`
	AccountName       string             `json:"accountName"`
	AccountType       domain.AccountType `json:"accountType"`
	BroughtDown       decimal.Decimal    `json:"broughtDown"`
	TotalDebits       decimal.Decimal    `json:"totalDebits"`
	TotalCredits      decimal.Decimal    `json:"totalCredits"`
	CalculatedBalance decimal.Decimal    `json:"calculatedBalance"`
	CarriedDown       *decimal.Decimal   `json:"carriedDown,omitempty"`
}

// ListBalancesResponse wraps the balance rows of one period.
type ListBalancesResponse struct {
	PeriodID string               `json:"periodID"`
	Balances []BalanceRowResponse `json:"balances"`
}

// ToListBalancesResponse converts domain balance rows to the response DTO.
func ToListBalancesResponse(periodID string, rows []domain.AccountPeriodBalance) ListBalancesResponse {
	resp := ListBalancesResponse{PeriodID: periodID, Balances: make([]BalanceRowResponse, len(rows))}
	for i, row := range rows {
		resp.Balances[i] = BalanceRowResponse{
			AccountID:         row.AccountID,
			AccountCode:       row.AccountCode,
			AccountName:       row.AccountName,
			AccountType:       row.AccountType,
			BroughtDown:       row.BroughtDown,
			TotalDebits:       row.TotalDebits,
			TotalCredits:      row.TotalCredits,
			CalculatedBalance: row.CalculatedBalance,
			CarriedDown:       row.CarriedDown,
		}
	}
	return resp
}

// SetBroughtDownRequest sets an account's opening balance for a period.
type SetBroughtDownRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}
