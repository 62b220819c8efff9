package goal_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/finhealth/pkg/domain"
	"github.com/amirasaad/finhealth/pkg/domain/goal"
	"github.com/amirasaad/finhealth/pkg/dto"
	goalsvc "github.com/amirasaad/finhealth/pkg/service/goal"
	"github.com/amirasaad/finhealth/pkg/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type GoalServiceTestSuite struct {
	suite.Suite
	svc   *goalsvc.Service
	user  *dto.UserRead
	other *dto.UserRead
	ctx   context.Context
}

func (s *GoalServiceTestSuite) SetupTest() {
	uow := testutils.NewTestUoW(s.T())
	s.svc = goalsvc.New(nil, uow, testutils.DiscardLogger())
	s.user = testutils.CreateUser(s.T(), uow)
	s.other = testutils.CreateUser(s.T(), uow)
	s.ctx = context.Background()
}

func (s *GoalServiceTestSuite) newGoal(name string, deadline time.Time) *dto.GoalRead {
	g, err := s.svc.Create(s.ctx, s.user.ID, &dto.GoalCreate{
		Name:         name,
		TargetAmount: decimal.NewFromInt(1000),
		Deadline:     deadline,
	})
	s.Require().NoError(err)
	return g
}

func (s *GoalServiceTestSuite) TestCreate_Defaults() {
	g := s.newGoal("Emergency fund", time.Now().AddDate(1, 0, 0))
	s.Equal(goal.PriorityMedium, g.Priority)
	s.Equal(goal.StatusActive, g.Status)
	s.True(g.SavedAmount.IsZero())
}

func (s *GoalServiceTestSuite) TestCreate_Validation() {
	_, err := s.svc.Create(s.ctx, s.user.ID, &dto.GoalCreate{Name: "No deadline", TargetAmount: decimal.NewFromInt(1)})
	s.ErrorIs(err, goal.ErrMissingFields)

	_, err = s.svc.Create(s.ctx, s.user.ID, &dto.GoalCreate{
		Name: "Bad", TargetAmount: decimal.NewFromInt(1), Deadline: time.Now(), Priority: "urgent",
	})
	s.ErrorIs(err, goal.ErrInvalidPriority)
	s.ErrorIs(err, domain.ErrValidation)
}

func (s *GoalServiceTestSuite) TestList_NearestDeadlineFirst() {
	now := time.Now().UTC()
	s.newGoal("Later", now.AddDate(0, 6, 0))
	s.newGoal("Sooner", now.AddDate(0, 1, 0))

	goals, err := s.svc.List(s.ctx, s.user.ID, dto.GoalFilter{})
	s.Require().NoError(err)
	s.Require().Len(goals, 2)
	s.Equal("Sooner", goals[0].Name)

	_, err = s.svc.List(s.ctx, s.user.ID, dto.GoalFilter{Status: "paused"})
	s.ErrorIs(err, goal.ErrInvalidStatus)
}

func (s *GoalServiceTestSuite) TestUpdate() {
	g := s.newGoal("Car", time.Now().AddDate(1, 0, 0))
	saved := decimal.NewFromInt(250)
	status := goal.StatusCompleted

	got, err := s.svc.Update(s.ctx, s.user.ID, g.ID, &dto.GoalUpdate{SavedAmount: &saved, Status: &status})
	s.Require().NoError(err)
	s.True(got.SavedAmount.Equal(saved))
	s.Equal(goal.StatusCompleted, got.Status)

	completed, err := s.svc.List(s.ctx, s.user.ID, dto.GoalFilter{Status: goal.StatusCompleted})
	s.Require().NoError(err)
	s.Len(completed, 1)

	bad := goal.Priority("asap")
	_, err = s.svc.Update(s.ctx, s.user.ID, g.ID, &dto.GoalUpdate{Priority: &bad})
	s.ErrorIs(err, goal.ErrInvalidPriority)
}

func (s *GoalServiceTestSuite) TestOtherUsersGoalIsNotFound() {
	g := s.newGoal("Private", time.Now().AddDate(1, 0, 0))
	name := "stolen"

	_, err := s.svc.Get(s.ctx, s.other.ID, g.ID)
	s.ErrorIs(err, goal.ErrGoalNotFound)
	_, err = s.svc.Update(s.ctx, s.other.ID, g.ID, &dto.GoalUpdate{Name: &name})
	s.ErrorIs(err, goal.ErrGoalNotFound)
	s.ErrorIs(s.svc.Delete(s.ctx, s.other.ID, g.ID), goal.ErrGoalNotFound)

	s.Require().NoError(s.svc.Delete(s.ctx, s.user.ID, g.ID))
}

func TestGoalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GoalServiceTestSuite))
}
