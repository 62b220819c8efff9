package transaction_test

import (
	"context"
	"testing"
	"time"

	infraeventbus "github.com/amirasaad/finhealth/infra/eventbus"
	"github.com/amirasaad/finhealth/pkg/domain"
	"github.com/amirasaad/finhealth/pkg/domain/events"
	"github.com/amirasaad/finhealth/pkg/domain/transaction"
	"github.com/amirasaad/finhealth/pkg/dto"
	txsvc "github.com/amirasaad/finhealth/pkg/service/transaction"
	"github.com/amirasaad/finhealth/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	svc   *txsvc.Service
	bus   *infraeventbus.MemoryEventBus
	user  *dto.UserRead
	other *dto.UserRead
	ctx   context.Context
}

func (s *TransactionServiceTestSuite) SetupTest() {
	uow := testutils.NewTestUoW(s.T())
	logger := testutils.DiscardLogger()
	s.bus = infraeventbus.NewWithMemory(logger, infraeventbus.WithRecording())
	s.svc = txsvc.New(s.bus, uow, logger)
	s.user = testutils.CreateUser(s.T(), uow)
	s.other = testutils.CreateUser(s.T(), uow)
	s.ctx = context.Background()
}

func (s *TransactionServiceTestSuite) create(userID uuid.UUID, amount, category string, typ transaction.Type, date time.Time) *dto.TransactionRead {
	tx, err := s.svc.Create(s.ctx, userID, &dto.TransactionCreate{
		Amount:      decimal.RequireFromString(amount),
		Description: category + " purchase",
		Category:    category,
		Type:        typ,
		Date:        date,
	})
	s.Require().NoError(err)
	return tx
}

func (s *TransactionServiceTestSuite) TestCreate_AppliesDefaults() {
	tx, err := s.svc.Create(s.ctx, s.user.ID, &dto.TransactionCreate{
		Amount:      decimal.NewFromInt(12),
		Description: "Lunch",
		Category:    "Food",
	})
	s.Require().NoError(err)

	s.Equal(transaction.Expense, tx.Type)
	s.Equal([]string{}, tx.Tags)
	s.WithinDuration(time.Now(), tx.Date, time.Minute)
	s.Equal(s.user.ID, tx.UserID)

	published := s.bus.Published()
	s.Require().Len(published, 1)
	s.Equal(events.EventTypeTransactionsChanged.String(), published[0].Type())
}

func (s *TransactionServiceTestSuite) TestCreate_MissingFields() {
	_, err := s.svc.Create(s.ctx, s.user.ID, &dto.TransactionCreate{Description: "x", Category: "y"})
	s.ErrorIs(err, transaction.ErrMissingFields)
	s.ErrorIs(err, domain.ErrValidation)
	s.Empty(s.bus.Published())
}

func (s *TransactionServiceTestSuite) TestCreate_InvalidType() {
	_, err := s.svc.Create(s.ctx, s.user.ID, &dto.TransactionCreate{
		Amount: decimal.NewFromInt(1), Description: "x", Category: "y", Type: "transfer",
	})
	s.ErrorIs(err, transaction.ErrInvalidType)
}

func (s *TransactionServiceTestSuite) TestList_FiltersAndPaginates() {
	base := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		s.create(s.user.ID, "10", "Food", transaction.Expense, base.AddDate(0, 0, i))
	}
	s.create(s.user.ID, "2000", "Salary", transaction.Income, base)
	s.create(s.other.ID, "99", "Food", transaction.Expense, base)

	page, err := s.svc.List(s.ctx, s.user.ID, dto.TransactionFilter{Category: "Food", Limit: 2, Offset: 1})
	s.Require().NoError(err)
	s.EqualValues(5, page.Total)
	s.Len(page.Items, 2)
	s.Equal(2, page.Limit)
	s.Equal(1, page.Offset)
	s.True(page.Items[0].Date.After(page.Items[1].Date), "newest first")

	start := base.AddDate(0, 0, 3)
	page, err = s.svc.List(s.ctx, s.user.ID, dto.TransactionFilter{StartDate: &start})
	s.Require().NoError(err)
	s.EqualValues(2, page.Total)
	s.Equal(txsvc.DefaultLimit, page.Limit)

	end := base
	page, err = s.svc.List(s.ctx, s.user.ID, dto.TransactionFilter{EndDate: &end})
	s.Require().NoError(err)
	s.EqualValues(2, page.Total, "end bound is inclusive and independent")
}

func (s *TransactionServiceTestSuite) TestGetUpdateDelete_OtherUserIsNotFound() {
	tx := s.create(s.user.ID, "10", "Food", transaction.Expense, time.Now())

	_, err := s.svc.Get(s.ctx, s.other.ID, tx.ID)
	s.ErrorIs(err, transaction.ErrTransactionNotFound)

	desc := "hijack"
	_, err = s.svc.Update(s.ctx, s.other.ID, tx.ID, &dto.TransactionUpdate{Description: &desc})
	s.ErrorIs(err, domain.ErrNotFound)

	err = s.svc.Delete(s.ctx, s.other.ID, tx.ID)
	s.ErrorIs(err, domain.ErrNotFound)

	got, err := s.svc.Get(s.ctx, s.user.ID, tx.ID)
	s.Require().NoError(err)
	s.Equal("Food purchase", got.Description)
}

func (s *TransactionServiceTestSuite) TestUpdate_MergesSuppliedFields() {
	tx := s.create(s.user.ID, "10", "Food", transaction.Expense, time.Now())
	amount := decimal.RequireFromString("42.50")
	tags := []string{"work"}

	got, err := s.svc.Update(s.ctx, s.user.ID, tx.ID, &dto.TransactionUpdate{Amount: &amount, Tags: &tags})
	s.Require().NoError(err)
	s.True(got.Amount.Equal(amount))
	s.Equal([]string{"work"}, got.Tags)
	s.Equal("Food", got.Category)

	bad := transaction.Type("gift")
	_, err = s.svc.Update(s.ctx, s.user.ID, tx.ID, &dto.TransactionUpdate{Type: &bad})
	s.ErrorIs(err, transaction.ErrInvalidType)
}

func (s *TransactionServiceTestSuite) TestDelete() {
	tx := s.create(s.user.ID, "10", "Food", transaction.Expense, time.Now())
	s.Require().NoError(s.svc.Delete(s.ctx, s.user.ID, tx.ID))

	_, err := s.svc.Get(s.ctx, s.user.ID, tx.ID)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *TransactionServiceTestSuite) TestImport_AllOrNothing() {
	rows := []*dto.TransactionCreate{
		{Amount: decimal.NewFromInt(5), Description: "Coffee", Category: "Food"},
		{Amount: decimal.Zero, Description: "Broken", Category: "Food"},
		{Amount: decimal.NewFromInt(5), Description: "", Category: "Food"},
	}
	_, err := s.svc.Import(s.ctx, s.user.ID, rows)

	var importErr *transaction.ImportError
	s.Require().ErrorAs(err, &importErr)
	s.Equal([]int{1, 2}, importErr.Indexes())
	s.ErrorIs(err, domain.ErrValidation)

	page, err := s.svc.List(s.ctx, s.user.ID, dto.TransactionFilter{})
	s.Require().NoError(err)
	s.Zero(page.Total)
}

func (s *TransactionServiceTestSuite) TestImport_StampsOwnerAndDefaults() {
	rows := []*dto.TransactionCreate{
		{Amount: decimal.NewFromInt(5), Description: "Coffee", Category: "Food", UserID: s.other.ID},
		{Amount: decimal.NewFromInt(3000), Description: "Pay", Category: "Salary", Type: transaction.Income},
	}
	created, err := s.svc.Import(s.ctx, s.user.ID, rows)
	s.Require().NoError(err)
	s.Len(created, 2)
	for _, c := range created {
		s.Equal(s.user.ID, c.UserID)
	}
	s.Equal(transaction.Expense, created[0].Type)

	page, err := s.svc.List(s.ctx, s.user.ID, dto.TransactionFilter{})
	s.Require().NoError(err)
	s.EqualValues(2, page.Total)

	published := s.bus.Published()
	s.Require().Len(published, 1)
	changed := published[0].(*events.TransactionsChanged)
	s.Equal(events.ActionImported, changed.Action)
	s.Equal(2, changed.Count)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		in, want dto.TransactionFilter
	}{
		{dto.TransactionFilter{}, dto.TransactionFilter{Limit: 20}},
		{dto.TransactionFilter{Limit: 500, Offset: -3}, dto.TransactionFilter{Limit: 100}},
		{dto.TransactionFilter{Limit: 7, Offset: 14}, dto.TransactionFilter{Limit: 7, Offset: 14}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, txsvc.NormalizePage(tt.in))
	}
	require.Equal(t, 100, txsvc.MaxLimit)
}
