package accounting

import (
	"fmt"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the correct sign to a ledger entry amount
// based on account type and entry side. This is used in both services and
// repositories to ensure consistent accounting logic.
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func CalculateSignedAmount(amount decimal.Decimal, side domain.EntrySide, accountType domain.AccountType) (decimal.Decimal, error) {
	if !accountType.Valid() {
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
	isDebit := side == domain.Debit
	if accountType.DebitNormal() == isDebit {
		return amount, nil
	}
	return amount.Neg(), nil
}

// CalculateBalance derives an account's calculated balance for a period
// from its brought-down balance and aggregated debits/credits, applying
// the account type's sign convention uniformly:
// debit-normal (ASSET, EXPENSE):   BD + debits - credits
// credit-normal (LIABILITY, EQUITY, REVENUE): BD - debits + credits
func CalculateBalance(accountType domain.AccountType, broughtDown, totalDebits, totalCredits decimal.Decimal) (decimal.Decimal, error) {
	if !accountType.Valid() {
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
	if accountType.DebitNormal() {
		return broughtDown.Add(totalDebits).Sub(totalCredits), nil
	}
	return broughtDown.Sub(totalDebits).Add(totalCredits), nil
}
