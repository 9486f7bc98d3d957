package shopservice

// Location координаты точки обслуживания
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Shop мастерская из каталога ShopService
// Location может отсутствовать, если владелец не указал адрес на карте
type Shop struct {
	ID       int64     `json:"id"`
	OwnerID  int64     `json:"owner_id"`
	Name     string    `json:"name"`
	Services []string  `json:"services"`
	Location *Location `json:"location,omitempty"`
}

// ShopListResponse ответ со списком мастерских
type ShopListResponse struct {
	Shops []*Shop `json:"shops"`
}
