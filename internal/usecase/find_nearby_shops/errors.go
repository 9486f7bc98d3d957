package find_nearby_shops

import "errors"

var (
	// ErrInvalidCoordinates возвращается при координатах вне допустимых диапазонов
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrUnknownBand возвращается при неизвестной метке полосы расстояний
	ErrUnknownBand = errors.New("unknown distance band")
)
