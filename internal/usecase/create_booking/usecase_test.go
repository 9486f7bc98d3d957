package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motozapp/MotoZapp-BookingService/internal/domain"
	"github.com/motozapp/MotoZapp-BookingService/internal/integrations/identityservice"
	"github.com/motozapp/MotoZapp-BookingService/internal/integrations/shopservice"
	notificationModels "github.com/motozapp/MotoZapp-BookingService/internal/service/notifications/models"
	"github.com/motozapp/MotoZapp-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	created *domain.Booking
	err     error
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	clone := *b
	clone.ID = 42
	clone.CreatedAt = time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)
	f.created = &clone
	return &clone, nil
}

type fakeNotifications struct {
	appended []*notificationModels.AppendRequest
	failFrom int // с какого по счету вызова возвращать ошибку; 0 - не возвращать
}

func (f *fakeNotifications) Append(_ context.Context, req *notificationModels.AppendRequest) (*notificationModels.NotificationResponse, error) {
	f.appended = append(f.appended, req)
	if f.failFrom > 0 && len(f.appended) >= f.failFrom {
		return nil, errors.New("notification store unavailable")
	}
	return &notificationModels.NotificationResponse{UserID: req.UserID}, nil
}

type fakeIdentityClient struct {
	users map[int64]*identityservice.User
}

func (f *fakeIdentityClient) GetUser(_ context.Context, id int64) (*identityservice.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, identityservice.ErrUserNotFound
	}
	return u, nil
}

type fakeShopClient struct {
	shops map[int64]*shopservice.Shop
}

func (f *fakeShopClient) GetShop(_ context.Context, id int64) (*shopservice.Shop, error) {
	s, ok := f.shops[id]
	if !ok {
		return nil, shopservice.ErrShopNotFound
	}
	return s, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testNow = time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)

func newTestUseCase(t *testing.T, notifications *fakeNotifications) (*UseCase, *fakeBookingRepo) {
	t.Helper()

	repo := &fakeBookingRepo{}
	uc := NewUseCase(
		repo,
		notifications,
		&fakeIdentityClient{users: map[int64]*identityservice.User{1: {ID: 1, Role: "motorist"}}},
		&fakeShopClient{shops: map[int64]*shopservice.Shop{10: {ID: 10, OwnerID: 2, Name: "Moto Garage"}}},
		fakeTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc, repo
}

func validRequest(t *testing.T) *Request {
	t.Helper()

	startTime, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)

	return &Request{
		CustomerID:  1,
		ShopID:      10,
		ServiceType: "Oil Change",
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		StartTime:   startTime,
	}
}

func TestExecute_Success(t *testing.T) {
	notifications := &fakeNotifications{}
	uc, repo := newTestUseCase(t, notifications)

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Nil(t, resp.UpdatedAt)
	assert.Equal(t, domain.StatusPending, repo.created.Status)

	// Уведомление владельцу мастерской и подтверждение клиенту
	require.Len(t, notifications.appended, 2)
	assert.Equal(t, int64(2), notifications.appended[0].UserID)
	assert.Equal(t, "New Booking Request", notifications.appended[0].Title)
	assert.Equal(t, int64(1), notifications.appended[1].UserID)
	assert.Equal(t, "Booking Request Submitted", notifications.appended[1].Title)
}

func TestExecute_DateToday(t *testing.T) {
	uc, _ := newTestUseCase(t, &fakeNotifications{})

	req := validRequest(t)
	req.Date = time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_DateInPast(t *testing.T) {
	uc, _ := newTestUseCase(t, &fakeNotifications{})

	req := validRequest(t)
	req.Date = time.Date(2025, 5, 19, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_Validation(t *testing.T) {
	uc, _ := newTestUseCase(t, &fakeNotifications{})
	ctx := context.Background()

	req := validRequest(t)
	req.ServiceType = "  "
	_, err := uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest(t)
	year := 1900
	req.Vehicle = &Vehicle{Year: &year}
	_, err = uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_UnknownCustomer(t *testing.T) {
	uc, _ := newTestUseCase(t, &fakeNotifications{})

	req := validRequest(t)
	req.CustomerID = 777

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestExecute_UnknownShop(t *testing.T) {
	uc, _ := newTestUseCase(t, &fakeNotifications{})

	req := validRequest(t)
	req.ShopID = 777

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrShopNotFound)
}

func TestExecute_OwnerNotificationFailureIsFatal(t *testing.T) {
	notifications := &fakeNotifications{failFrom: 1}
	uc, _ := newTestUseCase(t, notifications)

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_CustomerNotificationFailureIsNotFatal(t *testing.T) {
	notifications := &fakeNotifications{failFrom: 2}
	uc, _ := newTestUseCase(t, notifications)

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
}
