package domain

// PageSize - количество элементов на одной странице списка
const PageSize = 10

// Phase - текущая фаза диалога, ограничивает множество допустимых действий
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseSearching      Phase = "searching"
	PhaseResultList     Phase = "result_list"
	PhaseSiteDetails    Phase = "site_details"
	PhaseLocationList   Phase = "location_list"
	PhaseLocationDetail Phase = "location_detail"
)

// ProximityRequest - параметры поиска по близости.
// RadiusKm = 0 означает автоматическое расширение радиуса.
type ProximityRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusKm  int     `json:"radius_km"`
}

// RankedSite - найденный объект с опциональной дистанцией до пользователя
type RankedSite struct {
	Site       Site `json:"site"`
	DistanceKm int  `json:"distance_km"`
}

// ResultSet - активный результат поиска с курсором пагинации
type ResultSet struct {
	Sites      []RankedSite `json:"sites"`
	Start      int          `json:"start"`
	ByDistance bool         `json:"by_distance"`
	RadiusKm   int          `json:"radius_km"`
	NearestKm  int          `json:"nearest_km"`
}

// Len возвращает размер результата
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Sites)
}

// PageBounds возвращает границы текущего окна списка [start, end)
func (r *ResultSet) PageBounds() (int, int) {
	return pageBounds(r.Start, len(r.Sites))
}

// Advance сдвигает курсор на страницу вперёд или назад.
// Курсор никогда не уходит ниже нуля и не перешагивает последнюю страницу.
func (r *ResultSet) Advance(dir int) {
	r.Start = advance(r.Start, dir, len(r.Sites))
}

// DrillDownContext - навигационный курсор внутри выбранного объекта
type DrillDownContext struct {
	SiteIndex     int  `json:"site_index"`
	LocationIndex *int `json:"location_index,omitempty"`
	LocationStart int  `json:"location_start"`
}

// AdvanceLocations сдвигает курсор списка локаций по тем же правилам, что и
// курсор списка результатов
func (d *DrillDownContext) AdvanceLocations(dir, total int) {
	d.LocationStart = advance(d.LocationStart, dir, total)
}

// SessionState - всё состояние одной сессии. Фильтр хранится в сериализованном
// виде (составная строка), чтобы состояние целиком укладывалось в одно значение
// хранилища сессий.
type SessionState struct {
	ID             string            `json:"id"`
	Locale         string            `json:"locale"`
	Phase          Phase             `json:"phase"`
	FilterText     string            `json:"filter_text"`
	Proximity      *ProximityRequest `json:"proximity,omitempty"`
	Result         *ResultSet        `json:"result,omitempty"`
	Drill          *DrillDownContext `json:"drill,omitempty"`
	RadiusAdjusted bool              `json:"radius_adjusted"`
}

// NewSessionState создаёт пустую сессию в фазе ожидания
func NewSessionState(id, locale string) *SessionState {
	return &SessionState{
		ID:     id,
		Locale: locale,
		Phase:  PhaseIdle,
	}
}

// Reset возвращает сессию в исходную фазу, сбрасывая фильтр, локацию,
// результаты и навигационный контекст
func (s *SessionState) Reset() {
	s.Phase = PhaseIdle
	s.FilterText = ""
	s.Proximity = nil
	s.Result = nil
	s.Drill = nil
	s.RadiusAdjusted = false
}

// Clone делает глубокую копию состояния. Переходы конечного автомата готовятся
// на копии и фиксируются только после успешного сохранения.
func (s *SessionState) Clone() *SessionState {
	next := *s
	if s.Proximity != nil {
		p := *s.Proximity
		next.Proximity = &p
	}
	if s.Result != nil {
		r := *s.Result
		r.Sites = append([]RankedSite(nil), s.Result.Sites...)
		next.Result = &r
	}
	if s.Drill != nil {
		d := *s.Drill
		if s.Drill.LocationIndex != nil {
			idx := *s.Drill.LocationIndex
			d.LocationIndex = &idx
		}
		next.Drill = &d
	}
	return &next
}

func pageBounds(start, total int) (int, int) {
	end := start + PageSize
	if end > total {
		end = total
	}
	return start, end
}

func advance(start, dir, total int) int {
	next := start + dir*PageSize
	if next < 0 {
		return 0
	}
	if next >= total {
		return start
	}
	return next
}
