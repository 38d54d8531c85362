package usecase

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/heritage-catalog-service/internal/domain"
	"github.com/heritage-catalog-service/internal/pkg/utils"
)

// Параметры автоматического расширения радиуса поиска по близости
const (
	autoRadiusStepKm    = 50
	autoRadiusCeilingKm = 5000
	autoMinResults      = 3
)

// SearchUseCase - поисковые движки: текстовый фильтр, поиск по близости
// и их объединение в упорядоченный результат. Все методы чистые, работают
// над неизменяемым снимком каталога.
type SearchUseCase struct {
	logger *zap.Logger
}

// NewSearchUseCase создает новый use case для поиска
func NewSearchUseCase(logger *zap.Logger) *SearchUseCase {
	return &SearchUseCase{logger: logger}
}

// proximityResult - итог поиска по близости до объединения с текстовым
type proximityResult struct {
	ids      map[int64]struct{}
	radiusKm int
	// округлённая дистанция до ближайшего объекта каталога;
	// +Inf на пустом каталоге
	nearestKm float64
}

// MatchIDs возвращает идентификаторы объектов, подходящих под фильтр:
// объединение OR-групп, внутри группы - пересечение AND-термов.
// Порядок обхода термов на результат не влияет.
func (uc *SearchUseCase) MatchIDs(sites []domain.Site, filter domain.Filter) map[int64]struct{} {
	ids := make(map[int64]struct{})
	for i := range sites {
		for _, group := range filter.Groups {
			if matchesAll(&sites[i], group) {
				ids[sites[i].ID] = struct{}{}
				break
			}
		}
	}
	return ids
}

func matchesAll(site *domain.Site, terms []string) bool {
	for _, term := range terms {
		if !site.MatchesTerm(term) {
			return false
		}
	}
	return len(terms) > 0
}

// proximitySearch отбирает объекты, у которых хотя бы одна локация лежит
// в радиусе от точки. Нулевой радиус включает автоматическое расширение:
// радиус растёт шагами по 50 км, пока не наберётся минимум три объекта
// или не будет достигнут потолок 5000 км.
func (uc *SearchUseCase) proximitySearch(sites []domain.Site, lat, lon float64, radiusKm int) proximityResult {
	distances := make(map[int64]int, len(sites))
	nearest := math.Inf(1)
	for i := range sites {
		d := math.Round(utils.NearestLocationDistance(&sites[i], lat, lon))
		distances[sites[i].ID] = int(d)
		if d < nearest {
			nearest = d
		}
	}

	within := func(radius int) map[int64]struct{} {
		ids := make(map[int64]struct{})
		for id, d := range distances {
			if d <= radius {
				ids[id] = struct{}{}
			}
		}
		return ids
	}

	if radiusKm > 0 {
		return proximityResult{ids: within(radiusKm), radiusKm: radiusKm, nearestKm: nearest}
	}

	radius := 0
	ids := within(radius)
	for len(ids) < autoMinResults && radius <= autoRadiusCeilingKm {
		radius += autoRadiusStepKm
		ids = within(radius)
	}

	uc.logger.Debug("Proximity search expanded",
		zap.Int("radius_km", radius),
		zap.Int("matches", len(ids)))

	return proximityResult{ids: ids, radiusKm: radius, nearestKm: nearest}
}

// Evaluate выполняет полный поиск: текстовый фильтр и поиск по близости
// независимо, затем пересечение. Результат отсортирован по году внесения,
// при наличии геоточки - по дистанции. Курсор пагинации всегда в начале.
func (uc *SearchUseCase) Evaluate(sites []domain.Site, filter domain.Filter, prox *domain.ProximityRequest) *domain.ResultSet {
	result := &domain.ResultSet{}

	var textIDs map[int64]struct{}
	if !filter.Empty() {
		textIDs = uc.MatchIDs(sites, filter)
	}

	var proxRes proximityResult
	if prox != nil {
		proxRes = uc.proximitySearch(sites, prox.Latitude, prox.Longitude, prox.RadiusKm)
		result.ByDistance = true
		result.RadiusKm = proxRes.radiusKm
		if !math.IsInf(proxRes.nearestKm, 1) {
			result.NearestKm = int(proxRes.nearestKm)
		}
	}

	matched := combine(textIDs, proxRes.ids)

	for i := range sites {
		if _, ok := matched[sites[i].ID]; !ok {
			continue
		}
		ranked := domain.RankedSite{Site: sites[i]}
		if prox != nil {
			ranked.DistanceKm = int(math.Round(
				utils.NearestLocationDistance(&sites[i], prox.Latitude, prox.Longitude)))
		}
		result.Sites = append(result.Sites, ranked)
	}

	if result.ByDistance {
		sort.SliceStable(result.Sites, func(i, j int) bool {
			return result.Sites[i].DistanceKm < result.Sites[j].DistanceKm
		})
	} else {
		sort.SliceStable(result.Sites, func(i, j int) bool {
			return result.Sites[i].Site.Year < result.Sites[j].Site.Year
		})
	}

	return result
}

// combine пересекает множества двух движков; отсутствующее множество
// (nil) означает, что движок не участвовал в поиске
func combine(text, prox map[int64]struct{}) map[int64]struct{} {
	if text == nil {
		return prox
	}
	if prox == nil {
		return text
	}
	out := make(map[int64]struct{})
	for id := range text {
		if _, ok := prox[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}
