package shopservice

import "errors"

var (
	// ErrShopNotFound возвращается, когда мастерская не найдена
	ErrShopNotFound = errors.New("shopservice client: shop not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("shopservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("shopservice client: invalid response")
)
