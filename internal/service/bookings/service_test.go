package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motozapp/MotoZapp-BookingService/internal/domain"
	bookingRepo "github.com/motozapp/MotoZapp-BookingService/internal/infra/storage/booking"
	shopClient "github.com/motozapp/MotoZapp-BookingService/internal/integrations/shopservice"
	"github.com/motozapp/MotoZapp-BookingService/internal/service/bookings/models"
	"github.com/motozapp/MotoZapp-BookingService/pkg/types"
)

const (
	customerID = int64(1)
	ownerID    = int64(2)
	strangerID = int64(99)
	shopID     = int64(10)
)

// fakeRepository in-memory реализация BookingRepository
// UpdateStatus повторяет guard репозитория: статус меняется только из from
type fakeRepository struct {
	byID   map[int64]*domain.Booking
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: make(map[int64]*domain.Booking), nextID: 1}
}

func (f *fakeRepository) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	clone := *b
	clone.ID = f.nextID
	clone.CreatedAt = time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)
	f.nextID++
	f.byID[clone.ID] = &clone
	return &clone, nil
}

func (f *fakeRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (f *fakeRepository) GetByCounterparty(_ context.Context, filter domain.CounterpartyFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.byID {
		switch filter.Role {
		case domain.RoleCustomer:
			if b.CustomerID != filter.ID {
				continue
			}
		case domain.RoleShop:
			if b.ShopID != filter.ID {
				continue
			}
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeRepository) UpdateStatus(_ context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	if b.Status != from {
		return nil, bookingRepo.ErrStatusConflict
	}
	b.Status = to
	updatedAt := time.Date(2025, 5, 21, 10, 0, 0, 0, time.UTC)
	b.UpdatedAt = &updatedAt
	clone := *b
	return &clone, nil
}

type fakeShopClient struct {
	shops map[int64]*shopClient.Shop
}

func (f *fakeShopClient) GetShop(_ context.Context, id int64) (*shopClient.Shop, error) {
	shop, ok := f.shops[id]
	if !ok {
		return nil, shopClient.ErrShopNotFound
	}
	return shop, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService(t *testing.T) (*Service, *fakeRepository) {
	t.Helper()

	repo := newFakeRepository()
	shops := &fakeShopClient{shops: map[int64]*shopClient.Shop{
		shopID: {ID: shopID, OwnerID: ownerID, Name: "Moto Garage"},
	}}
	return NewService(repo, shops, nopLogger{}), repo
}

func seedBooking(t *testing.T, repo *fakeRepository, status domain.BookingStatus) *domain.Booking {
	t.Helper()

	startTime, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)

	b, err := repo.Create(context.Background(), &domain.Booking{
		CustomerID:  customerID,
		ShopID:      shopID,
		ServiceType: "Oil Change",
		BookingDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		StartTime:   startTime,
		Status:      status,
	})
	require.NoError(t, err)
	return b
}

func TestGetByID_CounterpartyAccess(t *testing.T) {
	svc, repo := newTestService(t)
	b := seedBooking(t, repo, domain.StatusPending)
	ctx := context.Background()

	// Клиент и владелец мастерской видят бронирование
	resp, err := svc.GetByID(ctx, b.ID, customerID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, resp.ID)

	_, err = svc.GetByID(ctx, b.ID, ownerID)
	require.NoError(t, err)

	// Посторонний - нет
	_, err = svc.GetByID(ctx, b.ID, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, 777, customerID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateStatus_LifecycleScenario(t *testing.T) {
	svc, repo := newTestService(t)
	b := seedBooking(t, repo, domain.StatusPending)
	ctx := context.Background()

	// Новое бронирование: pending, переходов еще не было
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Nil(t, b.UpdatedAt)

	// pending -> confirmed владельцем мастерской
	resp, draft, err := svc.UpdateStatus(ctx, b.ID, &models.UpdateStatusRequest{ActorID: ownerID, Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.NotNil(t, resp.UpdatedAt)

	require.NotNil(t, draft)
	assert.Equal(t, customerID, draft.UserID)
	assert.Equal(t, "Booking Confirmed", draft.Title)
	assert.Equal(t, "Your booking for Oil Change has been confirmed", draft.Message)

	// Возврат в pending запрещен
	_, _, err = svc.UpdateStatus(ctx, b.ID, &models.UpdateStatusRequest{ActorID: ownerID, Status: "pending"})
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// confirmed -> completed
	resp, draft, err = svc.UpdateStatus(ctx, b.ID, &models.UpdateStatusRequest{ActorID: ownerID, Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	require.NotNil(t, draft)
	assert.Equal(t, "Service Completed", draft.Title)

	// Из терминального статуса переходов нет
	_, _, err = svc.UpdateStatus(ctx, b.ID, &models.UpdateStatusRequest{ActorID: ownerID, Status: "cancelled"})
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestUpdateStatus_SameStatusIsIllegal(t *testing.T) {
	svc, repo := newTestService(t)
	b := seedBooking(t, repo, domain.StatusPending)

	_, _, err := svc.UpdateStatus(context.Background(), b.ID,
		&models.UpdateStatusRequest{ActorID: ownerID, Status: "pending"})
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestUpdateStatus_TransitionAccess(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	// Подтверждать может только владелец мастерской
	b := seedBooking(t, repo, domain.StatusPending)
	_, _, err := svc.UpdateStatus(ctx, b.ID, &models.UpdateStatusRequest{ActorID: customerID, Status: "confirmed"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Отменять может клиент
	_, draft, err := svc.UpdateStatus(ctx, b.ID, &models.UpdateStatusRequest{ActorID: customerID, Status: "cancelled"})
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, ownerID, draft.UserID)
	assert.Equal(t, "Booking Cancelled", draft.Title)

	// И владелец мастерской - с уведомлением клиенту
	b2 := seedBooking(t, repo, domain.StatusConfirmed)
	_, draft, err = svc.UpdateStatus(ctx, b2.ID, &models.UpdateStatusRequest{ActorID: ownerID, Status: "cancelled"})
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, customerID, draft.UserID)
	assert.Equal(t, "Booking Declined", draft.Title)

	// Посторонний не может ничего
	b3 := seedBooking(t, repo, domain.StatusPending)
	_, _, err = svc.UpdateStatus(ctx, b3.ID, &models.UpdateStatusRequest{ActorID: strangerID, Status: "cancelled"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc, repo := newTestService(t)
	b := seedBooking(t, repo, domain.StatusPending)

	_, _, err := svc.UpdateStatus(context.Background(), b.ID,
		&models.UpdateStatusRequest{ActorID: ownerID, Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.UpdateStatus(context.Background(), 404,
		&models.UpdateStatusRequest{ActorID: ownerID, Status: "confirmed"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListByCounterparty_Access(t *testing.T) {
	svc, repo := newTestService(t)
	seedBooking(t, repo, domain.StatusPending)
	ctx := context.Background()

	// Клиент видит свою выборку
	resp, err := svc.ListByCounterparty(ctx, &models.ListBookingsRequest{
		ActorID: customerID, Role: "customer", ID: customerID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	// Чужую выборку клиент не видит
	_, err = svc.ListByCounterparty(ctx, &models.ListBookingsRequest{
		ActorID: strangerID, Role: "customer", ID: customerID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Выборку мастерской видит только владелец
	resp, err = svc.ListByCounterparty(ctx, &models.ListBookingsRequest{
		ActorID: ownerID, Role: "shop", ID: shopID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.ListByCounterparty(ctx, &models.ListBookingsRequest{
		ActorID: customerID, Role: "shop", ID: shopID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListByCounterparty_StatusFilter(t *testing.T) {
	svc, repo := newTestService(t)
	seedBooking(t, repo, domain.StatusPending)
	seedBooking(t, repo, domain.StatusCancelled)
	ctx := context.Background()

	status := "pending"
	resp, err := svc.ListByCounterparty(ctx, &models.ListBookingsRequest{
		ActorID: customerID, Role: "customer", ID: customerID, Status: &status,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "pending", resp.Bookings[0].Status)

	bad := "archived"
	_, err = svc.ListByCounterparty(ctx, &models.ListBookingsRequest{
		ActorID: customerID, Role: "customer", ID: customerID, Status: &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
