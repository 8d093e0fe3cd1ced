package commands

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/reluam/pokrok.app-sub004/internal/planning/domain"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/outbox"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// mockPlanRepo is a mock implementation of domain.PlanRepository.
type mockPlanRepo struct {
	mock.Mock
}

func (m *mockPlanRepo) Save(ctx context.Context, plan *domain.DailyPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *mockPlanRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.DailyPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyPlan), args.Error(1)
}

func (m *mockPlanRepo) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day dates.Day) (*domain.DailyPlan, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyPlan), args.Error(1)
}

func (m *mockPlanRepo) FindByUserBetween(ctx context.Context, userID uuid.UUID, from, to dates.Day) ([]*domain.DailyPlan, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyPlan), args.Error(1)
}

// mockStepRepo is a mock implementation of domain.StepRepository.
type mockStepRepo struct {
	mock.Mock
}

func (m *mockStepRepo) Save(ctx context.Context, step *domain.DailyStep) error {
	args := m.Called(ctx, step)
	return args.Error(0)
}

func (m *mockStepRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.DailyStep, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyStep), args.Error(1)
}

func (m *mockStepRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.DailyStep, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyStep), args.Error(1)
}

func (m *mockStepRepo) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day dates.Day) ([]*domain.DailyStep, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyStep), args.Error(1)
}

func (m *mockStepRepo) FindOverdue(ctx context.Context, userID uuid.UUID, before dates.Day) ([]*domain.DailyStep, error) {
	args := m.Called(ctx, userID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyStep), args.Error(1)
}

func (m *mockStepRepo) FindByGoal(ctx context.Context, goalID uuid.UUID) ([]*domain.DailyStep, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyStep), args.Error(1)
}

func (m *mockStepRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockOutboxRepo is a mock implementation of outbox.Repository.
type mockOutboxRepo struct {
	mock.Mock
}

func (m *mockOutboxRepo) Save(ctx context.Context, msg *outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockOutboxRepo) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) MarkPublished(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	args := m.Called(ctx, id, errMsg)
	return args.Error(0)
}

// mockUnitOfWork is a mock implementation of application.UnitOfWork.
type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type txKey struct{}

func txContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, "transaction")
}

func TestPlanItemsHandler_HandleAdd(t *testing.T) {
	userID := uuid.New()
	today := dates.Today()

	t.Run("creates the plan on first add", func(t *testing.T) {
		planRepo := new(mockPlanRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewPlanItemsHandler(planRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := txContext(ctx)
		itemID := uuid.New()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		planRepo.On("FindByUserAndDay", txCtx, userID, today).Return(nil, domain.ErrPlanNotFound)
		planRepo.On("Save", txCtx, mock.MatchedBy(func(p *domain.DailyPlan) bool {
			return p.Contains(itemID) && p.Day().Equal(today)
		})).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		err := handler.HandleAdd(ctx, AddPlanItemCommand{UserID: userID, Day: today, ItemID: itemID})

		require.NoError(t, err)
		planRepo.AssertExpectations(t)
	})

	t.Run("adding twice keeps one entry", func(t *testing.T) {
		planRepo := new(mockPlanRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewPlanItemsHandler(planRepo, outboxRepo, uow)

		itemID := uuid.New()
		plan, err := domain.NewDailyPlan(userID, today)
		require.NoError(t, err)
		require.NoError(t, plan.Add(itemID, today))
		plan.ClearDomainEvents()

		ctx := context.Background()
		txCtx := txContext(ctx)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		planRepo.On("FindByUserAndDay", txCtx, userID, today).Return(plan, nil)
		planRepo.On("Save", txCtx, plan).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		require.NoError(t, handler.HandleAdd(ctx, AddPlanItemCommand{UserID: userID, Day: today, ItemID: itemID}))
		assert.Len(t, plan.Items(), 1)
	})

	t.Run("rejects past days before touching storage", func(t *testing.T) {
		planRepo := new(mockPlanRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewPlanItemsHandler(planRepo, outboxRepo, uow)

		yesterday := today.AddDays(-1)
		err := handler.HandleAdd(context.Background(), AddPlanItemCommand{
			UserID: userID, Day: yesterday, ItemID: uuid.New(),
		})

		assert.ErrorIs(t, err, domain.ErrPlanReadOnly)
		planRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPlanItemsHandler_InjectedToday(t *testing.T) {
	userID := uuid.New()
	today, err := dates.ParseDay("2025-06-10")
	require.NoError(t, err)

	t.Run("rejects days before the injected today", func(t *testing.T) {
		planRepo := new(mockPlanRepo)
		handler := NewPlanItemsHandler(planRepo, new(mockOutboxRepo), new(mockUnitOfWork))

		err := handler.HandleAdd(context.Background(), AddPlanItemCommand{
			UserID: userID, Day: today.AddDays(-1), ItemID: uuid.New(), Today: today,
		})

		assert.ErrorIs(t, err, domain.ErrPlanReadOnly)
		planRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("accepts the injected today itself", func(t *testing.T) {
		planRepo := new(mockPlanRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewPlanItemsHandler(planRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := txContext(ctx)
		itemID := uuid.New()

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		planRepo.On("FindByUserAndDay", txCtx, userID, today).Return(nil, domain.ErrPlanNotFound)
		planRepo.On("Save", txCtx, mock.AnythingOfType("*domain.DailyPlan")).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		err := handler.HandleAdd(ctx, AddPlanItemCommand{
			UserID: userID, Day: today, ItemID: itemID, Today: today,
		})

		require.NoError(t, err)
		planRepo.AssertExpectations(t)
	})

	t.Run("remove honours the injected today", func(t *testing.T) {
		planRepo := new(mockPlanRepo)
		uow := new(mockUnitOfWork)
		handler := NewPlanItemsHandler(planRepo, new(mockOutboxRepo), uow)

		yesterday := today.AddDays(-1)
		itemID := uuid.New()
		plan, err := domain.NewDailyPlan(userID, yesterday)
		require.NoError(t, err)
		require.NoError(t, plan.Add(itemID, yesterday))
		plan.ClearDomainEvents()

		ctx := context.Background()
		txCtx := txContext(ctx)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		planRepo.On("FindByUserAndDay", txCtx, userID, yesterday).Return(plan, nil)

		err = handler.HandleRemove(ctx, RemovePlanItemCommand{
			UserID: userID, Day: yesterday, ItemID: itemID, Today: today,
		})

		assert.ErrorIs(t, err, domain.ErrPlanReadOnly)
		assert.True(t, plan.Contains(itemID), "past plans stay untouched")
	})
}

func TestPlanItemsHandler_HandleReorder(t *testing.T) {
	userID := uuid.New()
	today := dates.Today()

	planRepo := new(mockPlanRepo)
	outboxRepo := new(mockOutboxRepo)
	uow := new(mockUnitOfWork)
	handler := NewPlanItemsHandler(planRepo, outboxRepo, uow)

	a, b := uuid.New(), uuid.New()
	plan, err := domain.NewDailyPlan(userID, today)
	require.NoError(t, err)
	require.NoError(t, plan.Add(a, today))
	require.NoError(t, plan.Add(b, today))
	plan.ClearDomainEvents()

	ctx := context.Background()
	txCtx := txContext(ctx)

	uow.On("Begin", ctx).Return(txCtx, nil)
	uow.On("Commit", txCtx).Return(nil)
	planRepo.On("FindByUserAndDay", txCtx, userID, today).Return(plan, nil)
	planRepo.On("Save", txCtx, plan).Return(nil)
	outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

	err = handler.HandleReorder(ctx, ReorderPlanCommand{
		UserID: userID, Day: today, Order: []uuid.UUID{b, a},
	})

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b, a}, plan.Items())
}

func TestCreateStepHandler_Handle(t *testing.T) {
	userID := uuid.New()
	today := dates.Today()

	t.Run("creates a step and plans it", func(t *testing.T) {
		stepRepo := new(mockStepRepo)
		planRepo := new(mockPlanRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCreateStepHandler(stepRepo, planRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := txContext(ctx)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		stepRepo.On("Save", txCtx, mock.AnythingOfType("*domain.DailyStep")).Return(nil)
		planRepo.On("FindByUserAndDay", txCtx, userID, today).Return(nil, domain.ErrPlanNotFound)
		planRepo.On("Save", txCtx, mock.AnythingOfType("*domain.DailyPlan")).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		result, err := handler.Handle(ctx, CreateStepCommand{
			UserID:    userID,
			Title:     "Write report",
			Day:       today,
			Important: true,
			Plan:      true,
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, result.StepID)
		planRepo.AssertExpectations(t)
	})

	t.Run("rejects empty titles", func(t *testing.T) {
		stepRepo := new(mockStepRepo)
		planRepo := new(mockPlanRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := NewCreateStepHandler(stepRepo, planRepo, outboxRepo, uow)

		ctx := context.Background()
		txCtx := txContext(ctx)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)

		_, err := handler.Handle(ctx, CreateStepCommand{UserID: userID, Title: "  ", Day: today})
		assert.ErrorIs(t, err, domain.ErrStepEmptyTitle)
	})
}
