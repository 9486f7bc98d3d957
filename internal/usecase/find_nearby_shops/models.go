package find_nearby_shops

// Request модель запроса на поиск мастерских поблизости
type Request struct {
	Lat  float64 // Широта точки отсчета в градусах
	Lng  float64 // Долгота точки отсчета в градусах
	Band string  // Метка полосы расстояний; пустая строка - без фильтрации
}

// ShopResult мастерская с вычисленным расстоянием от точки отсчета
type ShopResult struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Services   []string `json:"services,omitempty"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	DistanceKm float64  `json:"distanceKm"`
	Distance   string   `json:"distance"` // Человекочитаемое расстояние, например "450 meters"
}

// Response модель ответа со списком мастерских, отсортированным по расстоянию
type Response struct {
	Band  string       `json:"band"`
	Shops []ShopResult `json:"shops"`
}
