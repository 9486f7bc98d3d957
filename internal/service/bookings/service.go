package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/motozapp/MotoZapp-BookingService/internal/domain"
	bookingRepo "github.com/motozapp/MotoZapp-BookingService/internal/infra/storage/booking"
	shopClient "github.com/motozapp/MotoZapp-BookingService/internal/integrations/shopservice"
	"github.com/motozapp/MotoZapp-BookingService/internal/service/bookings/models"
)

// Service контроллер жизненного цикла бронирований
// Единственное место, где проверяется таблица переходов статусов
type Service struct {
	bookingRepo BookingRepository
	shopClient  ShopServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	shopClient ShopServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		shopClient:  shopClient,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Бронирование видят только его стороны: клиент и владелец мастерской
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%d", id, actorID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkCounterpartyAccess(ctx, booking, actorID); err != nil {
		s.logger.Warn("GetByID: access denied for actor=%d to booking id=%d", actorID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// ListByCounterparty получает бронирования, где сторона сделки - клиент или мастерская
// Клиент видит только свои бронирования, выборку мастерской видит только её владелец
func (s *Service) ListByCounterparty(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListByCounterparty: role=%s id=%d actor=%d status=%v", req.Role, req.ID, req.ActorID, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByCounterparty: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Проверяем права доступа к выборке
	switch filter.Role {
	case domain.RoleCustomer:
		if req.ActorID != req.ID {
			s.logger.Warn("ListByCounterparty: actor=%d requested bookings of customer=%d", req.ActorID, req.ID)
			return nil, ErrAccessDenied
		}
	case domain.RoleShop:
		if err := s.checkShopOwner(ctx, req.ID, req.ActorID); err != nil {
			return nil, err
		}
	}

	bookings, err := s.bookingRepo.GetByCounterparty(ctx, filter)
	if err != nil {
		s.logger.Error("ListByCounterparty: repository error for %s=%d: %v", req.Role, req.ID, err)
		return nil, fmt.Errorf("%w: ListByCounterparty - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByCounterparty: fetched %d bookings for %s=%d", len(bookings), req.Role, req.ID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus переводит бронирование в новый статус
// Подтверждение и завершение доступны только владельцу мастерской,
// отмена - владельцу мастерской или клиенту бронирования.
//
// Возвращает обновленное бронирование и NotificationDraft для контрагента -
// явный контракт побочного эффекта: вызывающая сторона обязана поставить
// уведомление в очередь, контроллер сам его не создает
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, *domain.NotificationDraft, error) {
	s.logger.Info("UpdateStatus: booking id=%d -> status=%s by actor=%d", bookingID, req.Status, req.ActorID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return nil, nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Статус движется только вперед по таблице переходов;
	// повторный перевод в текущий статус - тоже нарушение
	if !domain.CanTransition(booking.Status, newStatus) {
		s.logger.Warn("UpdateStatus: illegal transition %s -> %s for booking id=%d",
			booking.Status, newStatus, bookingID)
		return nil, nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, booking.Status, newStatus)
	}

	// Для проверки прав и адресации уведомления нужен владелец мастерской
	shop, err := s.getShop(ctx, booking.ShopID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.checkTransitionAccess(booking, shop, newStatus, req.ActorID); err != nil {
		s.logger.Warn("UpdateStatus: access denied for actor=%d on booking id=%d (%s -> %s)",
			req.ActorID, bookingID, booking.Status, newStatus)
		return nil, nil, err
	}

	updated, err := s.bookingRepo.UpdateStatus(ctx, bookingID, booking.Status, newStatus)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, nil, ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			// Конкурентный переход успел раньше - для вызывающей стороны
			// это тот же недопустимый повторный переход
			s.logger.Warn("UpdateStatus: concurrent transition on booking id=%d", bookingID)
			return nil, nil, fmt.Errorf("%w: booking status changed concurrently", ErrIllegalTransition)
		default:
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
			return nil, nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
	}

	draft := buildTransitionDraft(updated, shop.OwnerID, req.ActorID)

	s.logger.Info("UpdateStatus: booking id=%d transitioned %s -> %s", bookingID, booking.Status, newStatus)
	return models.FromDomainBooking(updated), draft, nil
}

// Вспомогательные методы

// buildTransitionDraft описывает уведомление контрагенту о переходе статуса
// Каждый переход порождает не более одного уведомления:
// клиента уведомляем о решениях мастерской, мастерскую - об отмене клиентом
func buildTransitionDraft(b *domain.Booking, shopOwnerID, actorID int64) *domain.NotificationDraft {
	switch b.Status {
	case domain.StatusConfirmed:
		return &domain.NotificationDraft{
			UserID:  b.CustomerID,
			Title:   "Booking Confirmed",
			Message: fmt.Sprintf("Your booking for %s has been confirmed", b.ServiceType),
			Type:    domain.NotificationService,
		}
	case domain.StatusCompleted:
		return &domain.NotificationDraft{
			UserID:  b.CustomerID,
			Title:   "Service Completed",
			Message: fmt.Sprintf("Your booking for %s has been completed", b.ServiceType),
			Type:    domain.NotificationService,
		}
	case domain.StatusCancelled:
		if actorID == b.CustomerID {
			return &domain.NotificationDraft{
				UserID:  shopOwnerID,
				Title:   "Booking Cancelled",
				Message: fmt.Sprintf("The booking for %s on %s has been cancelled by the customer", b.ServiceType, b.BookingDate.Format(domain.DateFormat)),
				Type:    domain.NotificationService,
			}
		}
		return &domain.NotificationDraft{
			UserID:  b.CustomerID,
			Title:   "Booking Declined",
			Message: fmt.Sprintf("Your booking for %s has been declined", b.ServiceType),
			Type:    domain.NotificationService,
		}
	default:
		return nil
	}
}

// checkTransitionAccess проверяет права на переход статуса
func (s *Service) checkTransitionAccess(b *domain.Booking, shop *shopClient.Shop, newStatus domain.BookingStatus, actorID int64) error {
	switch newStatus {
	case domain.StatusConfirmed, domain.StatusCompleted:
		if actorID != shop.OwnerID {
			return ErrAccessDenied
		}
	case domain.StatusCancelled:
		if actorID != shop.OwnerID && actorID != b.CustomerID {
			return ErrAccessDenied
		}
	}
	return nil
}

// checkCounterpartyAccess проверяет, что актор - сторона бронирования
func (s *Service) checkCounterpartyAccess(ctx context.Context, b *domain.Booking, actorID int64) error {
	if b.CustomerID == actorID {
		return nil
	}

	shop, err := s.getShop(ctx, b.ShopID)
	if err != nil {
		return err
	}
	if shop.OwnerID == actorID {
		return nil
	}

	return ErrAccessDenied
}

// checkShopOwner проверяет, что актор - владелец мастерской
func (s *Service) checkShopOwner(ctx context.Context, shopID, actorID int64) error {
	shop, err := s.getShop(ctx, shopID)
	if err != nil {
		return err
	}

	if shop.OwnerID != actorID {
		s.logger.Warn("checkShopOwner: actor=%d is not the owner of shop=%d", actorID, shopID)
		return ErrAccessDenied
	}

	return nil
}

func (s *Service) getShop(ctx context.Context, shopID int64) (*shopClient.Shop, error) {
	shop, err := s.shopClient.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, shopClient.ErrShopNotFound) {
			s.logger.Warn("getShop: shop id=%d not found", shopID)
			return nil, ErrShopNotFound
		}
		s.logger.Error("getShop: failed to get shop id=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}
	return shop, nil
}
