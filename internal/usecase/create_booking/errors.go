package create_booking

import "errors"

var (
	// ErrNotAuthenticated возвращается, когда актор не найден в IdentityService
	ErrNotAuthenticated = errors.New("create_booking: actor identity is not resolved")

	// ErrShopNotFound возвращается, когда мастерская не найдена
	ErrShopNotFound = errors.New("create_booking: shop not found")

	// ErrDateInPast возвращается, когда дата визита в прошлом
	// относительно момента отправки запроса
	ErrDateInPast = errors.New("create_booking: booking date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
