package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/KudaNhari/boarding_house_mgmt/internal/apperrors"
	"github.com/KudaNhari/boarding_house_mgmt/internal/core/domain"
	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// decimalArg matches a decimal query argument by numeric value, so the
// comparison ignores internal exponent representation.
type decimalArg struct {
	want decimal.Decimal
}

func (d decimalArg) Match(v interface{}) bool {
	dec, ok := v.(decimal.Decimal)
	return ok && dec.Equal(d.want)
}

type PeriodRepositoryTestSuite struct {
	suite.Suite
	mockPool        pgxmock.PgxPoolIface
	repo            *PgxPeriodRepository
	boardingHouseID string
	userID          string
}

func (suite *PeriodRepositoryTestSuite) SetupTest() {
	pool, err := pgxmock.NewPool()
	suite.Require().NoError(err)
	suite.mockPool = pool
	suite.repo = &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
	suite.boardingHouseID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *PeriodRepositoryTestSuite) TearDownTest() {
	suite.mockPool.Close()
}

func (suite *PeriodRepositoryTestSuite) periodRows(p domain.Period) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"period_id", "boarding_house_id", "name", "start_date", "end_date",
		"is_closed", "created_at", "created_by", "last_updated_at", "last_updated_by",
	}).AddRow(
		p.PeriodID, p.BoardingHouseID, p.Name, p.StartDate, p.EndDate,
		p.IsClosed, p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy,
	)
}

func (suite *PeriodRepositoryTestSuite) marchPeriod(closed bool) domain.Period {
	return domain.Period{
		PeriodID:        uuid.NewString(),
		BoardingHouseID: suite.boardingHouseID,
		Name:            "2024-03",
		StartDate:       time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		IsClosed:        closed,
	}
}

func (suite *PeriodRepositoryTestSuite) expectLock(p domain.Period) {
	suite.mockPool.ExpectQuery(`SELECT (.+) FROM periods WHERE period_id = (.+) FOR UPDATE`).
		WithArgs(p.PeriodID).
		WillReturnRows(suite.periodRows(p))
}

func (suite *PeriodRepositoryTestSuite) TestClosePeriod_SnapshotsAndRollsForward() {
	ctx := context.Background()
	now := time.Date(2024, time.April, 1, 8, 0, 0, 0, time.UTC)
	period := suite.marchPeriod(false)
	assetID := uuid.NewString()
	revenueID := uuid.NewString()
	nextID := uuid.NewString()

	suite.mockPool.ExpectBegin()
	suite.expectLock(period)
	// Decimal amounts arrive as strings, the way NUMERIC columns scan.
	suite.mockPool.ExpectQuery(`FROM accounts a`).
		WithArgs(period.PeriodID, suite.boardingHouseID).
		WillReturnRows(pgxmock.NewRows([]string{"account_id", "account_type", "brought_down", "total_debits", "total_credits"}).
			AddRow(assetID, domain.Asset, "100", "250", "50").
			AddRow(revenueID, domain.Revenue, "0", "0", "900"))
	suite.mockPool.ExpectExec(`INSERT INTO periods`).
		WithArgs(pgxmock.AnyArg(), suite.boardingHouseID, "2024-04", pgxmock.AnyArg(), pgxmock.AnyArg(), now, suite.userID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mockPool.ExpectQuery(`SELECT period_id, is_closed FROM periods`).
		WithArgs(suite.boardingHouseID, "2024-04").
		WillReturnRows(pgxmock.NewRows([]string{"period_id", "is_closed"}).AddRow(nextID, false))

	batch := suite.mockPool.ExpectBatch()
	// Asset: carried down = 100 + 250 - 50 = 300, rolled into April's BD.
	batch.ExpectExec(`INSERT INTO account_period_balances`).
		WithArgs(pgxmock.AnyArg(), assetID, period.PeriodID, decimalArg{decimal.NewFromInt(100)}, decimalArg{decimal.NewFromInt(300)}, now, suite.userID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	batch.ExpectExec(`INSERT INTO account_period_balances`).
		WithArgs(pgxmock.AnyArg(), assetID, nextID, decimalArg{decimal.NewFromInt(300)}, now, suite.userID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	// Revenue: carried down = 0 - 0 + 900 = 900.
	batch.ExpectExec(`INSERT INTO account_period_balances`).
		WithArgs(pgxmock.AnyArg(), revenueID, period.PeriodID, decimalArg{decimal.Zero}, decimalArg{decimal.NewFromInt(900)}, now, suite.userID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	batch.ExpectExec(`INSERT INTO account_period_balances`).
		WithArgs(pgxmock.AnyArg(), revenueID, nextID, decimalArg{decimal.NewFromInt(900)}, now, suite.userID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	batch.ExpectExec(`UPDATE periods SET is_closed = TRUE`).
		WithArgs(period.PeriodID, now, suite.userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mockPool.ExpectCommit()

	err := suite.repo.ClosePeriod(ctx, period.PeriodID, suite.userID, now)

	suite.Require().NoError(err)
	suite.NoError(suite.mockPool.ExpectationsWereMet())
}

func (suite *PeriodRepositoryTestSuite) TestClosePeriod_AlreadyClosed() {
	ctx := context.Background()
	period := suite.marchPeriod(true)

	suite.mockPool.ExpectBegin()
	suite.expectLock(period)
	suite.mockPool.ExpectRollback()

	err := suite.repo.ClosePeriod(ctx, period.PeriodID, suite.userID, time.Now())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.NoError(suite.mockPool.ExpectationsWereMet())
}

func (suite *PeriodRepositoryTestSuite) TestClosePeriod_FollowingPeriodClosed() {
	ctx := context.Background()
	now := time.Date(2024, time.May, 2, 9, 0, 0, 0, time.UTC)
	period := suite.marchPeriod(false)
	accountID := uuid.NewString()

	suite.mockPool.ExpectBegin()
	suite.expectLock(period)
	suite.mockPool.ExpectQuery(`FROM accounts a`).
		WithArgs(period.PeriodID, suite.boardingHouseID).
		WillReturnRows(pgxmock.NewRows([]string{"account_id", "account_type", "brought_down", "total_debits", "total_credits"}).
			AddRow(accountID, domain.Asset, "0", "40", "0"))
	suite.mockPool.ExpectExec(`INSERT INTO periods`).
		WithArgs(pgxmock.AnyArg(), suite.boardingHouseID, "2024-04", pgxmock.AnyArg(), pgxmock.AnyArg(), now, suite.userID).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	// April was closed out of order; its brought-down rows are immutable.
	suite.mockPool.ExpectQuery(`SELECT period_id, is_closed FROM periods`).
		WithArgs(suite.boardingHouseID, "2024-04").
		WillReturnRows(pgxmock.NewRows([]string{"period_id", "is_closed"}).AddRow(uuid.NewString(), true))
	suite.mockPool.ExpectRollback()

	err := suite.repo.ClosePeriod(ctx, period.PeriodID, suite.userID, now)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.NoError(suite.mockPool.ExpectationsWereMet())
}

func (suite *PeriodRepositoryTestSuite) TestClosePeriod_RollsBackWhenBatchFails() {
	ctx := context.Background()
	now := time.Date(2024, time.April, 1, 8, 0, 0, 0, time.UTC)
	period := suite.marchPeriod(false)
	assetID := uuid.NewString()
	nextID := uuid.NewString()

	suite.mockPool.ExpectBegin()
	suite.expectLock(period)
	suite.mockPool.ExpectQuery(`FROM accounts a`).
		WithArgs(period.PeriodID, suite.boardingHouseID).
		WillReturnRows(pgxmock.NewRows([]string{"account_id", "account_type", "brought_down", "total_debits", "total_credits"}).
			AddRow(assetID, domain.Asset, "100", "250", "50"))
	suite.mockPool.ExpectExec(`INSERT INTO periods`).
		WithArgs(pgxmock.AnyArg(), suite.boardingHouseID, "2024-04", pgxmock.AnyArg(), pgxmock.AnyArg(), now, suite.userID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mockPool.ExpectQuery(`SELECT period_id, is_closed FROM periods`).
		WithArgs(suite.boardingHouseID, "2024-04").
		WillReturnRows(pgxmock.NewRows([]string{"period_id", "is_closed"}).AddRow(nextID, false))

	batch := suite.mockPool.ExpectBatch()
	batch.ExpectExec(`INSERT INTO account_period_balances`).
		WithArgs(pgxmock.AnyArg(), assetID, period.PeriodID, decimalArg{decimal.NewFromInt(100)}, decimalArg{decimal.NewFromInt(300)}, now, suite.userID).
		WillReturnError(assert.AnError)
	suite.mockPool.ExpectRollback()

	err := suite.repo.ClosePeriod(ctx, period.PeriodID, suite.userID, now)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	// No commit expectation: the period must stay open and untouched.
	suite.NoError(suite.mockPool.ExpectationsWereMet())
}

func TestPeriodRepository(t *testing.T) {
	suite.Run(t, new(PeriodRepositoryTestSuite))
}
