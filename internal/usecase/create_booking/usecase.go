package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/motozapp/MotoZapp-BookingService/internal/domain"
	identityClient "github.com/motozapp/MotoZapp-BookingService/internal/integrations/identityservice"
	shopClient "github.com/motozapp/MotoZapp-BookingService/internal/integrations/shopservice"
	notificationModels "github.com/motozapp/MotoZapp-BookingService/internal/service/notifications/models"
)

// UseCase use case для создания бронирования
// Новое бронирование всегда начинает жизнь в статусе pending;
// мастерская уведомляется о новой заявке, клиент - об отправке
type UseCase struct {
	bookingRepo    BookingRepository
	notifications  NotificationService
	identityClient IdentityServiceClient
	shopClient     ShopServiceClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	notifications NotificationService,
	identityClient IdentityServiceClient,
	shopClient ShopServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		notifications:  notifications,
		identityClient: identityClient,
		shopClient:     shopClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, shop=%d, service=%q, date=%s, time=%s",
		req.CustomerID, req.ShopID, req.ServiceType, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата визита не может быть в прошлом относительно момента отправки
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Разрешаем личность актора
	if _, err := uc.identityClient.GetUser(ctx, req.CustomerID); err != nil {
		if errors.Is(err, identityClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: customer id=%d is not authenticated", req.CustomerID)
			return nil, ErrNotAuthenticated
		}
		uc.logger.Error("CreateBooking: failed to resolve customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to resolve identity: %v", ErrInternal, err)
	}

	// 4. Получаем мастерскую - для проверки существования и адресации уведомления
	shop, err := uc.shopClient.GetShop(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, shopClient.ErrShopNotFound) {
			uc.logger.Warn("CreateBooking: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("CreateBooking: failed to get shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 5. Создаем бронирование и уведомление мастерской в одной транзакции:
	//    заявка без уведомления владельцу потерялась бы для мастерской
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err := uc.bookingRepo.Create(txCtx, req.toDomainBooking())
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		_, err = uc.notifications.Append(txCtx, &notificationModels.AppendRequest{
			UserID:  shop.OwnerID,
			Title:   "New Booking Request",
			Message: fmt.Sprintf("New booking request for %s on %s at %s", created.ServiceType, created.BookingDate.Format(domain.DateFormat), created.StartTime),
			Type:    string(domain.NotificationService),
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to notify shop owner=%d: %v", shop.OwnerID, err)
			return fmt.Errorf("%w: failed to notify shop owner: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 6. Подтверждение клиенту об отправке заявки - не критичный путь:
	//    при ошибке бронирование уже создано, только логируем
	_, err = uc.notifications.Append(ctx, &notificationModels.AppendRequest{
		UserID:  result.CustomerID,
		Title:   "Booking Request Submitted",
		Message: fmt.Sprintf("Your booking request for %s has been submitted and is pending approval", result.ServiceType),
		Type:    string(domain.NotificationService),
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to notify customer=%d about submission: %v", result.CustomerID, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return fromDomainBooking(result), nil
}
