package update_booking_status

import (
	"context"
	"fmt"

	bookingModels "github.com/motozapp/MotoZapp-BookingService/internal/service/bookings/models"
)

// UseCase use case для перевода бронирования в новый статус
//
// Смена статуса и запись уведомления контрагенту выполняются в одной
// транзакции: либо видны обе, либо ни одной.
type UseCase struct {
	bookingService      BookingService
	notificationService NotificationService
	txManager           TransactionManager
	logger              Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingService BookingService,
	notificationService NotificationService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingService:      bookingService,
		notificationService: notificationService,
		txManager:           txManager,
		logger:              logger,
	}
}

// Execute выполняет use case смены статуса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingStatus: booking=%d, actor=%d, status=%s", req.BookingID, req.ActorID, req.Status)

	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 1. Переводим бронирование в новый статус
		booking, draft, err := uc.bookingService.UpdateStatus(ctx, req.BookingID, &bookingModels.UpdateStatusRequest{
			ActorID: req.ActorID,
			Status:  req.Status,
		})
		if err != nil {
			return err
		}

		// 2. Записываем уведомление контрагенту в той же транзакции
		if draft != nil {
			if _, err := uc.notificationService.AppendDraft(ctx, draft); err != nil {
				return fmt.Errorf("%w: failed to append notification: %v", ErrInternal, err)
			}
		}

		resp = &Response{Booking: booking}
		return nil
	})
	if err != nil {
		uc.logger.Warn("UpdateBookingStatus: booking=%d, actor=%d, status=%s failed: %v",
			req.BookingID, req.ActorID, req.Status, err)
		return nil, err
	}

	uc.logger.Info("UpdateBookingStatus: booking=%d moved to status=%s", req.BookingID, req.Status)
	return resp, nil
}
