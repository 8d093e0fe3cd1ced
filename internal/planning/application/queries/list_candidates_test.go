package queries

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reluam/pokrok.app-sub004/internal/planning/domain"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// fakeHabitDirectory serves canned habit candidates.
type fakeHabitDirectory struct {
	due []domain.HabitCandidate
}

func (f *fakeHabitDirectory) DueHabits(ctx context.Context, userID uuid.UUID, day dates.Day) ([]domain.HabitCandidate, error) {
	return f.due, nil
}

func (f *fakeHabitDirectory) HabitsByID(ctx context.Context, ids []uuid.UUID, day dates.Day) (map[uuid.UUID]domain.HabitCandidate, error) {
	byID := make(map[uuid.UUID]domain.HabitCandidate)
	for _, h := range f.due {
		for _, id := range ids {
			if h.ID == id {
				byID[id] = h
			}
		}
	}
	return byID, nil
}

// memPlanRepo keeps plans in memory.
type memPlanRepo struct {
	plans map[string]*domain.DailyPlan
}

func newMemPlanRepo() *memPlanRepo {
	return &memPlanRepo{plans: make(map[string]*domain.DailyPlan)}
}

func (m *memPlanRepo) Save(ctx context.Context, plan *domain.DailyPlan) error {
	m.plans[plan.UserID().String()+plan.Day().String()] = plan
	return nil
}

func (m *memPlanRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.DailyPlan, error) {
	for _, p := range m.plans {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, domain.ErrPlanNotFound
}

func (m *memPlanRepo) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day dates.Day) (*domain.DailyPlan, error) {
	if p, ok := m.plans[userID.String()+day.String()]; ok {
		return p, nil
	}
	return nil, domain.ErrPlanNotFound
}

func (m *memPlanRepo) FindByUserBetween(ctx context.Context, userID uuid.UUID, from, to dates.Day) ([]*domain.DailyPlan, error) {
	var out []*domain.DailyPlan
	for _, p := range m.plans {
		if p.UserID() == userID && !p.Day().Before(from) && !p.Day().After(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

// memStepRepo keeps steps in memory.
type memStepRepo struct {
	steps map[uuid.UUID]*domain.DailyStep
}

func newMemStepRepo() *memStepRepo {
	return &memStepRepo{steps: make(map[uuid.UUID]*domain.DailyStep)}
}

func (m *memStepRepo) Save(ctx context.Context, step *domain.DailyStep) error {
	m.steps[step.ID()] = step
	return nil
}

func (m *memStepRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.DailyStep, error) {
	if s, ok := m.steps[id]; ok {
		return s, nil
	}
	return nil, domain.ErrStepNotFound
}

func (m *memStepRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.DailyStep, error) {
	var out []*domain.DailyStep
	for _, id := range ids {
		if s, ok := m.steps[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStepRepo) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day dates.Day) ([]*domain.DailyStep, error) {
	var out []*domain.DailyStep
	for _, s := range m.steps {
		if s.UserID() == userID && s.Day().Equal(day) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStepRepo) FindOverdue(ctx context.Context, userID uuid.UUID, before dates.Day) ([]*domain.DailyStep, error) {
	var out []*domain.DailyStep
	for _, s := range m.steps {
		if s.UserID() == userID && s.IsOverdueOn(before) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStepRepo) FindByGoal(ctx context.Context, goalID uuid.UUID) ([]*domain.DailyStep, error) {
	var out []*domain.DailyStep
	for _, s := range m.steps {
		if s.GoalID() == goalID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStepRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.steps, id)
	return nil
}

func day(t *testing.T, s string) dates.Day {
	t.Helper()
	d, err := dates.ParseDay(s)
	require.NoError(t, err)
	return d
}

func TestListCandidatesHandler_Handle(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	today := day(t, "2025-06-10")

	habitID := uuid.New()
	habits := &fakeHabitDirectory{due: []domain.HabitCandidate{
		{ID: habitID, Title: "Morning run"},
	}}

	stepRepo := newMemStepRepo()
	overdue, err := domain.NewDailyStep(userID, "overdue step", day(t, "2025-06-08"), uuid.Nil)
	require.NoError(t, err)
	todayStep, err := domain.NewDailyStep(userID, "today step", today, uuid.Nil)
	require.NoError(t, err)
	futureStep, err := domain.NewDailyStep(userID, "future step", day(t, "2025-06-12"), uuid.Nil)
	require.NoError(t, err)
	for _, s := range []*domain.DailyStep{overdue, todayStep, futureStep} {
		require.NoError(t, stepRepo.Save(ctx, s))
	}

	planRepo := newMemPlanRepo()
	handler := NewListCandidatesHandler(planRepo, stepRepo, habits)

	got, err := handler.Handle(ctx, ListCandidatesQuery{UserID: userID, Day: today})
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, overdue.ID(), got[0].ID)
	ids := []uuid.UUID{got[0].ID, got[1].ID, got[2].ID}
	assert.Contains(t, ids, habitID)
	assert.Contains(t, ids, todayStep.ID())
	assert.NotContains(t, ids, futureStep.ID())

	// Listing candidates must not create a plan as a side effect.
	_, err = planRepo.FindByUserAndDay(ctx, userID, today)
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
}

func TestListCandidatesHandler_Filters(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	today := day(t, "2025-06-10")

	stepRepo := newMemStepRepo()
	done, err := domain.NewDailyStep(userID, "done", today, uuid.Nil)
	require.NoError(t, err)
	require.NoError(t, done.Complete(today.Time()))
	open, err := domain.NewDailyStep(userID, "open", today, uuid.Nil)
	require.NoError(t, err)
	planned, err := domain.NewDailyStep(userID, "planned", today, uuid.Nil)
	require.NoError(t, err)
	for _, s := range []*domain.DailyStep{done, open, planned} {
		require.NoError(t, stepRepo.Save(ctx, s))
	}

	planRepo := newMemPlanRepo()
	plan, err := domain.NewDailyPlan(userID, today)
	require.NoError(t, err)
	require.NoError(t, plan.Add(planned.ID(), today))
	require.NoError(t, planRepo.Save(ctx, plan))

	handler := NewListCandidatesHandler(planRepo, stepRepo, &fakeHabitDirectory{})

	got, err := handler.Handle(ctx, ListCandidatesQuery{
		UserID: userID, Day: today, HideCompleted: true, HidePlanned: true,
	})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, open.ID(), got[0].ID)
}

func TestGetDailyPlanHandler_Handle(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	today := day(t, "2025-06-10")

	stepRepo := newMemStepRepo()
	step, err := domain.NewDailyStep(userID, "Write report", today, uuid.Nil)
	require.NoError(t, err)
	require.NoError(t, stepRepo.Save(ctx, step))

	habitID := uuid.New()
	habits := &fakeHabitDirectory{due: []domain.HabitCandidate{
		{ID: habitID, Title: "Morning run", Completed: true},
	}}

	planRepo := newMemPlanRepo()
	plan, err := domain.NewDailyPlan(userID, today)
	require.NoError(t, err)
	require.NoError(t, plan.Add(habitID, today))
	require.NoError(t, plan.Add(step.ID(), today))
	require.NoError(t, planRepo.Save(ctx, plan))

	handler := NewGetDailyPlanHandler(planRepo, stepRepo, habits)

	dto, err := handler.Handle(ctx, GetDailyPlanQuery{UserID: userID, Day: today})
	require.NoError(t, err)

	require.Len(t, dto.Items, 2)
	assert.Equal(t, domain.CandidateHabit, dto.Items[0].Kind)
	assert.Equal(t, "Morning run", dto.Items[0].Title)
	assert.True(t, dto.Items[0].Completed)
	assert.Equal(t, domain.CandidateStep, dto.Items[1].Kind)
	assert.Equal(t, "Write report", dto.Items[1].Title)
}

func TestGetDailyPlanHandler_ReadOnlyAgainstInjectedToday(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	planDay := day(t, "2025-06-09")

	planRepo := newMemPlanRepo()
	plan, err := domain.NewDailyPlan(userID, planDay)
	require.NoError(t, err)
	require.NoError(t, planRepo.Save(ctx, plan))

	handler := NewGetDailyPlanHandler(planRepo, newMemStepRepo(), &fakeHabitDirectory{})

	dto, err := handler.Handle(ctx, GetDailyPlanQuery{
		UserID: userID, Day: planDay, Today: day(t, "2025-06-10"),
	})
	require.NoError(t, err)
	assert.True(t, dto.ReadOnly)

	dto, err = handler.Handle(ctx, GetDailyPlanQuery{
		UserID: userID, Day: planDay, Today: planDay,
	})
	require.NoError(t, err)
	assert.False(t, dto.ReadOnly)
}

func TestGetDailyPlanHandler_NoPlanYieldsEmpty(t *testing.T) {
	handler := NewGetDailyPlanHandler(newMemPlanRepo(), newMemStepRepo(), &fakeHabitDirectory{})

	dto, err := handler.Handle(context.Background(), GetDailyPlanQuery{
		UserID: uuid.New(), Day: day(t, "2025-06-10"),
	})
	require.NoError(t, err)
	assert.Empty(t, dto.Items)
	assert.Equal(t, uuid.Nil, dto.PlanID)
}
