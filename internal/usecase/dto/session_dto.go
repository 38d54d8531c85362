package dto

// StartSessionRequest - создание новой сессии
type StartSessionRequest struct {
	Locale string `json:"locale" validate:"omitempty,alpha,len=2"`
}

// TextRequest - текстовый ввод пользователя (поисковый терм)
type TextRequest struct {
	Text string `json:"text" validate:"required,min=1,max=200"`
}

// LocationRequest - геопозиция пользователя
type LocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// ActionRequest - нажатие кнопки, закодированное токеном действия
type ActionRequest struct {
	Token string `json:"token" validate:"required,max=64"`
}

// ActionButton - одна кнопка экрана: подпись и токен действия
type ActionButton struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

// GeoPoint - координаты, которые транспорт должен показать пользователю
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ScreenView - результат любого действия: новая фаза, текст экрана и ряды
// кнопок. Это полный контракт ядра с транспортом.
type ScreenView struct {
	SessionID string           `json:"session_id"`
	Phase     string           `json:"phase"`
	Text      string           `json:"text"`
	Actions   [][]ActionButton `json:"actions"`
	Location  *GeoPoint        `json:"location,omitempty"`
}
