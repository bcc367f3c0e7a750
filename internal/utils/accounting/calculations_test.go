package accounting_test

import (
	"testing"

	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	"github.com/KudaNhari/boarding_house_mgmt/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateSignedAmount(t *testing.T) {
	amount := d("150.25")

	testCases := []struct {
		name        string
		side        domain.EntrySide
		accountType domain.AccountType
		expected    decimal.Decimal
	}{
		{"debit to asset is positive", domain.Debit, domain.Asset, amount},
		{"credit to asset is negative", domain.Credit, domain.Asset, amount.Neg()},
		{"debit to expense is positive", domain.Debit, domain.Expense, amount},
		{"credit to expense is negative", domain.Credit, domain.Expense, amount.Neg()},
		{"debit to liability is negative", domain.Debit, domain.Liability, amount.Neg()},
		{"credit to liability is positive", domain.Credit, domain.Liability, amount},
		{"debit to equity is negative", domain.Debit, domain.Equity, amount.Neg()},
		{"credit to equity is positive", domain.Credit, domain.Equity, amount},
		{"debit to revenue is negative", domain.Debit, domain.Revenue, amount.Neg()},
		{"credit to revenue is positive", domain.Credit, domain.Revenue, amount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			signed, err := accounting.CalculateSignedAmount(amount, tc.side, tc.accountType)
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(signed), "expected %s, got %s", tc.expected, signed)
		})
	}
}

func TestCalculateSignedAmount_UnknownType(t *testing.T) {
	_, err := accounting.CalculateSignedAmount(d("10"), domain.Debit, domain.AccountType("BOGUS"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown account type")
}

func TestCalculateBalance(t *testing.T) {
	testCases := []struct {
		name        string
		accountType domain.AccountType
		broughtDown string
		debits      string
		credits     string
		expected    string
	}{
		{"asset grows with debits", domain.Asset, "100", "250", "50", "300"},
		{"expense grows with debits", domain.Expense, "0", "75.50", "0", "75.50"},
		{"asset shrinks with credits", domain.Asset, "500", "0", "120", "380"},
		{"liability grows with credits", domain.Liability, "200", "50", "150", "300"},
		{"equity grows with credits", domain.Equity, "1000", "0", "250", "1250"},
		{"revenue grows with credits", domain.Revenue, "0", "30", "430", "400"},
		{"negative opening carries through", domain.Asset, "-100", "40", "0", "-60"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			balance, err := accounting.CalculateBalance(tc.accountType, d(tc.broughtDown), d(tc.debits), d(tc.credits))
			require.NoError(t, err)
			assert.True(t, d(tc.expected).Equal(balance), "expected %s, got %s", tc.expected, balance)
		})
	}
}

func TestCalculateBalance_UnknownType(t *testing.T) {
	_, err := accounting.CalculateBalance(domain.AccountType(""), d("0"), d("0"), d("0"))
	require.Error(t, err)
}

// The two helpers must agree: applying the signed amounts of a set of
// entries to the opening balance has to land on the calculated balance.
func TestCalculateBalance_MatchesSignedAmounts(t *testing.T) {
	for _, accountType := range []domain.AccountType{domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense} {
		broughtDown := d("100")
		debits := d("70")
		credits := d("45")

		signedDebit, err := accounting.CalculateSignedAmount(debits, domain.Debit, accountType)
		require.NoError(t, err)
		signedCredit, err := accounting.CalculateSignedAmount(credits, domain.Credit, accountType)
		require.NoError(t, err)

		balance, err := accounting.CalculateBalance(accountType, broughtDown, debits, credits)
		require.NoError(t, err)

		assert.True(t, broughtDown.Add(signedDebit).Add(signedCredit).Equal(balance),
			"sign conventions disagree for %s", accountType)
	}
}
