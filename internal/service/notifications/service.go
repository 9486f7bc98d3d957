package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/motozapp/MotoZapp-BookingService/internal/domain"
	notificationRepo "github.com/motozapp/MotoZapp-BookingService/internal/infra/storage/notification"
	"github.com/motozapp/MotoZapp-BookingService/internal/service/notifications/models"
)

// Service лента уведомлений пользователя
// Запись идемпотентна по ID: локальное событие и его дубль из push-канала
// приводят к одной записи. Порядок отображения - по времени создания по убыванию
type Service struct {
	repo         NotificationRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(repo NotificationRepository, logger Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Append добавляет уведомление в ленту пользователя
// Вызывается одинаково из переходов статусов бронирований и из callback'а
// push-канала; если ID не передан, присваивается новый UUID
func (s *Service) Append(ctx context.Context, req *models.AppendRequest) (*models.NotificationResponse, error) {
	if err := validateAppend(req); err != nil {
		s.logger.Warn("Append: validation failed for user=%d: %v", req.UserID, err)
		return nil, err
	}

	now := s.timeProvider.Now()

	n := &domain.Notification{
		ID:        req.ID,
		UserID:    req.UserID,
		Title:     req.Title,
		Message:   req.Message,
		Type:      models.ToDomainNotificationType(req.Type),
		Read:      false,
		CreatedAt: now,
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	created, err := s.repo.Create(ctx, n)
	if err != nil {
		s.logger.Error("Append: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Append - repository error: %v", ErrInternal, err)
	}

	if !created {
		// Повторная доставка того же события - штатная ситуация
		s.logger.Info("Append: duplicate delivery of notification id=%s for user=%d", n.ID, n.UserID)
	} else {
		s.logger.Info("Append: notification id=%s created for user=%d", n.ID, n.UserID)
	}

	return models.FromDomainNotification(n, now), nil
}

// AppendDraft добавляет уведомление, описанное контроллером бронирований
func (s *Service) AppendDraft(ctx context.Context, draft *domain.NotificationDraft) (*models.NotificationResponse, error) {
	if draft == nil {
		return nil, nil
	}

	return s.Append(ctx, &models.AppendRequest{
		UserID:  draft.UserID,
		Title:   draft.Title,
		Message: draft.Message,
		Type:    string(draft.Type),
	})
}

// List возвращает ленту уведомлений пользователя, сгруппированную
// на "New" и "Earlier". Ошибка чтения деградирует до пустой ленты
// с предупреждением в логе - лента не критичный путь
func (s *Service) List(ctx context.Context, userID int64, filter string) (*models.FeedResponse, error) {
	domainFilter := domain.FilterAll
	if filter == string(domain.FilterUnread) {
		domainFilter = domain.FilterUnread
	}

	now := s.timeProvider.Now()

	notifications, err := s.repo.GetByUserID(ctx, userID, domainFilter)
	if err != nil {
		s.logger.Warn("List: repository error for user=%d, degrading to empty feed: %v", userID, err)
		return models.BuildFeed(nil, 0, now), nil
	}

	unread, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		s.logger.Warn("List: failed to count unread for user=%d: %v", userID, err)
		unread = 0
	}

	return models.BuildFeed(notifications, unread, now), nil
}

// MarkRead помечает уведомление прочитанным
// Повторная пометка прочитанного - no-op, неизвестный ID - ошибка
func (s *Service) MarkRead(ctx context.Context, id string, userID int64) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: notification id is required", ErrInvalidInput)
	}

	err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			s.logger.Warn("MarkRead: notification id=%s not found for user=%d", id, userID)
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}

	return nil
}

// MarkAllRead помечает прочитанными все уведомления пользователя
func (s *Service) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	marked, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		s.logger.Error("MarkAllRead: repository error for user=%d: %v", userID, err)
		return 0, fmt.Errorf("%w: MarkAllRead - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkAllRead: marked %d notifications for user=%d", marked, userID)
	return marked, nil
}

// UnreadCount возвращает количество непрочитанных уведомлений пользователя
func (s *Service) UnreadCount(ctx context.Context, userID int64) (int, error) {
	count, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		s.logger.Error("UnreadCount: repository error for user=%d: %v", userID, err)
		return 0, fmt.Errorf("%w: UnreadCount - repository error: %v", ErrInternal, err)
	}

	return count, nil
}

// validateAppend валидирует запрос на добавление уведомления
func validateAppend(req *models.AppendRequest) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(req.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if len(req.Message) > domain.MaxMessageLength {
		return fmt.Errorf("%w: message is too long", ErrInvalidInput)
	}

	return nil
}
