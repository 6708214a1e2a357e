package lifecycle_test

import (
	"errors"
	"testing"

	"samadhan/backend/internal/lifecycle"
	"samadhan/backend/internal/models"
	"samadhan/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var admin = &models.User{ID: "admin-1", IsAdmin: true}

func pendingGrievance() *models.Grievance {
	return &models.Grievance{
		ID:       "g-1",
		Category: models.CategoryRoad,
		Status:   models.StatusPending,
		UserID:   "citizen-1",
	}
}

func TestTransition_PersistsThenReflects(t *testing.T) {
	storageMock := new(MockStorage)
	notifier := new(MockNotifier)
	svc := lifecycle.NewService(storageMock, notifier)

	storageMock.On("GetGrievanceByID", "g-1").Return(pendingGrievance(), nil).Once()
	storageMock.On("UpdateGrievanceStatus", "g-1", models.StatusInProgress).Return(nil).Once()
	notifier.On("StatusChanged", mock.AnythingOfType("*models.Grievance"), models.StatusPending).Once()

	g, err := svc.Transition("g-1", models.StatusInProgress, admin)

	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, g.Status)
	storageMock.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

// TestTransition_EachStepPersistsIndependently walks the whole lifecycle:
// pending → in-progress → resolved.
func TestTransition_EachStepPersistsIndependently(t *testing.T) {
	storageMock := new(MockStorage)
	svc := lifecycle.NewService(storageMock, nil)

	g := pendingGrievance()
	storageMock.On("GetGrievanceByID", "g-1").Return(g, nil)
	storageMock.On("UpdateGrievanceStatus", "g-1", models.StatusInProgress).Return(nil).Once()
	storageMock.On("UpdateGrievanceStatus", "g-1", models.StatusResolved).Return(nil).Once()

	got, err := svc.Transition("g-1", models.StatusInProgress, admin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, got.Status)

	got, err = svc.Transition("g-1", models.StatusResolved, admin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, got.Status)

	storageMock.AssertExpectations(t)
}

// TestTransition_FailureLeavesStatusUnchanged: no optimistic commit. The
// caller keeps showing the previous status when the write is rejected.
func TestTransition_FailureLeavesStatusUnchanged(t *testing.T) {
	storageMock := new(MockStorage)
	notifier := new(MockNotifier)
	svc := lifecycle.NewService(storageMock, notifier)

	g := pendingGrievance()
	storageMock.On("GetGrievanceByID", "g-1").Return(g, nil).Once()
	storageMock.On("UpdateGrievanceStatus", "g-1", models.StatusResolved).
		Return(errors.New("store unreachable")).Once()

	_, err := svc.Transition("g-1", models.StatusResolved, admin)

	assert.Error(t, err)
	assert.Equal(t, models.StatusPending, g.Status, "status must not change before the store confirms")
	notifier.AssertNotCalled(t, "StatusChanged", mock.Anything, mock.Anything)
}

func TestTransition_UnknownIDIsNotFound(t *testing.T) {
	storageMock := new(MockStorage)
	svc := lifecycle.NewService(storageMock, nil)

	storageMock.On("GetGrievanceByID", "vanished").Return(nil, storage.ErrNotFound).Once()

	_, err := svc.Transition("vanished", models.StatusResolved, admin)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTransition_RequiresAdministrator(t *testing.T) {
	storageMock := new(MockStorage)
	svc := lifecycle.NewService(storageMock, nil)

	citizen := &models.User{ID: "citizen-1"}
	_, err := svc.Transition("g-1", models.StatusResolved, citizen)
	assert.ErrorIs(t, err, lifecycle.ErrNotAuthorized)

	_, err = svc.Transition("g-1", models.StatusResolved, nil)
	assert.ErrorIs(t, err, lifecycle.ErrNotAuthorized)

	storageMock.AssertNotCalled(t, "UpdateGrievanceStatus", mock.Anything, mock.Anything)
}

func TestTransition_RejectsValuesOutsideTheEnum(t *testing.T) {
	storageMock := new(MockStorage)
	svc := lifecycle.NewService(storageMock, nil)

	_, err := svc.Transition("g-1", models.Status("closed"), admin)
	assert.ErrorIs(t, err, lifecycle.ErrInvalidStatus)
	storageMock.AssertNotCalled(t, "UpdateGrievanceStatus", mock.Anything, mock.Anything)
}

func TestTransition_SameStatusIsANoOp(t *testing.T) {
	storageMock := new(MockStorage)
	svc := lifecycle.NewService(storageMock, nil)

	storageMock.On("GetGrievanceByID", "g-1").Return(pendingGrievance(), nil).Once()

	g, err := svc.Transition("g-1", models.StatusPending, admin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, g.Status)
	storageMock.AssertNotCalled(t, "UpdateGrievanceStatus", mock.Anything, mock.Anything)
}

// TestCanTransition documents the permissive edge set, backward edges
// included.
func TestCanTransition(t *testing.T) {
	states := []models.Status{models.StatusPending, models.StatusInProgress, models.StatusResolved}
	for _, from := range states {
		for _, to := range states {
			assert.True(t, lifecycle.CanTransition(from, to), "%s → %s should be allowed", from, to)
		}
	}
}
