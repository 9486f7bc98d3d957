package update_booking_status

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motozapp/MotoZapp-BookingService/internal/domain"
	"github.com/motozapp/MotoZapp-BookingService/internal/service/bookings"
	bookingModels "github.com/motozapp/MotoZapp-BookingService/internal/service/bookings/models"
	notificationModels "github.com/motozapp/MotoZapp-BookingService/internal/service/notifications/models"
)

type fakeBookingService struct {
	resp  *bookingModels.BookingResponse
	draft *domain.NotificationDraft
	err   error

	gotBookingID int64
	gotReq       *bookingModels.UpdateStatusRequest
}

func (f *fakeBookingService) UpdateStatus(_ context.Context, bookingID int64, req *bookingModels.UpdateStatusRequest) (*bookingModels.BookingResponse, *domain.NotificationDraft, error) {
	f.gotBookingID = bookingID
	f.gotReq = req
	return f.resp, f.draft, f.err
}

type fakeNotificationService struct {
	err    error
	drafts []*domain.NotificationDraft
}

func (f *fakeNotificationService) AppendDraft(_ context.Context, draft *domain.NotificationDraft) (*notificationModels.NotificationResponse, error) {
	f.drafts = append(f.drafts, draft)
	if f.err != nil {
		return nil, f.err
	}
	return &notificationModels.NotificationResponse{UserID: draft.UserID, Title: draft.Title}, nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestExecute_Success(t *testing.T) {
	bookingSvc := &fakeBookingService{
		resp: &bookingModels.BookingResponse{ID: 10, CustomerID: 1, ShopID: 2, Status: "confirmed"},
		draft: &domain.NotificationDraft{
			UserID:  1,
			Title:   "Booking Confirmed",
			Message: "Your booking for Oil Change has been confirmed",
			Type:    domain.NotificationService,
		},
	}
	notificationSvc := &fakeNotificationService{}
	txManager := &fakeTxManager{}

	uc := NewUseCase(bookingSvc, notificationSvc, txManager, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 10, ActorID: 7, Status: "confirmed"})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, int64(10), resp.Booking.ID)
	assert.Equal(t, "confirmed", resp.Booking.Status)
	assert.Equal(t, int64(10), bookingSvc.gotBookingID)
	assert.Equal(t, int64(7), bookingSvc.gotReq.ActorID)
	assert.Equal(t, 1, txManager.calls)

	require.Len(t, notificationSvc.drafts, 1)
	assert.Equal(t, "Booking Confirmed", notificationSvc.drafts[0].Title)
}

func TestExecute_NoDraft(t *testing.T) {
	bookingSvc := &fakeBookingService{
		resp: &bookingModels.BookingResponse{ID: 10, Status: "completed"},
	}
	notificationSvc := &fakeNotificationService{}

	uc := NewUseCase(bookingSvc, notificationSvc, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 10, ActorID: 2, Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Booking.Status)
	assert.Empty(t, notificationSvc.drafts)
}

func TestExecute_IllegalTransitionPassthrough(t *testing.T) {
	bookingSvc := &fakeBookingService{err: bookings.ErrIllegalTransition}
	notificationSvc := &fakeNotificationService{}

	uc := NewUseCase(bookingSvc, notificationSvc, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 10, ActorID: 7, Status: "pending"})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, bookings.ErrIllegalTransition)
	assert.Empty(t, notificationSvc.drafts)
}

func TestExecute_AccessDeniedPassthrough(t *testing.T) {
	bookingSvc := &fakeBookingService{err: bookings.ErrAccessDenied}

	uc := NewUseCase(bookingSvc, &fakeNotificationService{}, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 10, ActorID: 99, Status: "confirmed"})
	assert.ErrorIs(t, err, bookings.ErrAccessDenied)
}

func TestExecute_NotificationFailureRollsBack(t *testing.T) {
	bookingSvc := &fakeBookingService{
		resp: &bookingModels.BookingResponse{ID: 10, Status: "confirmed"},
		draft: &domain.NotificationDraft{
			UserID: 1,
			Title:  "Booking Confirmed",
			Type:   domain.NotificationService,
		},
	}
	notificationSvc := &fakeNotificationService{err: errors.New("db down")}

	uc := NewUseCase(bookingSvc, notificationSvc, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 10, ActorID: 7, Status: "confirmed"})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInternal)
}
