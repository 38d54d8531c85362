package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/heritage-catalog-service/internal/domain"
	"github.com/heritage-catalog-service/internal/usecase"
)

// Пользователь в центре Парижа во всех геотестах
const (
	userLat = 48.85
	userLon = 2.35
)

func testCatalog() []domain.Site {
	return []domain.Site{
		{
			ID: 1, Locale: "EN", RefID: "83", Name: "Palace of Versailles",
			Year: 1990, Category: "Cultural", Region: "Europe and North America",
			Criteria: []string{"(i)", "(ii)"}, Country: []string{"France"},
			Locations: []domain.SiteLocation{
				{Name: "Versailles", Latitude: 48.8566, Longitude: 2.3522, Country: "France"},
			},
		},
		{
			ID: 2, Locale: "EN", RefID: "160", Name: "Palace of Fontainebleau",
			Year: 1978, Category: "Cultural", Region: "Europe and North America",
			Criteria: []string{"(i)", "(vi)"}, Country: []string{"France"},
			Locations: []domain.SiteLocation{
				{Name: "Fontainebleau", Latitude: 48.402, Longitude: 2.70, Country: "France"},
			},
		},
		{
			ID: 3, Locale: "EN", RefID: "896", Name: "Museumsinsel Berlin",
			Year: 2001, Category: "Cultural", Region: "Europe and North America",
			Criteria: []string{"(ii)", "(iv)"}, Country: []string{"Germany"},
			Locations: []domain.SiteLocation{
				{Name: "Museumsinsel", Latitude: 52.52, Longitude: 13.405, Country: "Germany"},
			},
		},
	}
}

func ids(m map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	return out
}

// TestSearchUseCase_MatchIDs tests AND narrowing and OR broadening
func TestSearchUseCase_MatchIDs(t *testing.T) {
	uc := usecase.NewSearchUseCase(zap.NewNop())
	sites := testCatalog()

	matched := uc.MatchIDs(sites, domain.ParseFilter("france"))
	assert.ElementsMatch(t, []int64{1, 2}, ids(matched))

	// AND сужает
	matched = uc.MatchIDs(sites, domain.ParseFilter("france,(vi)"))
	assert.ElementsMatch(t, []int64{2}, ids(matched))

	// OR объединяет группы
	matched = uc.MatchIDs(sites, domain.ParseFilter("germany+(vi)"))
	assert.ElementsMatch(t, []int64{2, 3}, ids(matched))

	// пустой фильтр не матчит ничего
	matched = uc.MatchIDs(sites, domain.ParseFilter(""))
	assert.Empty(t, matched)
}

// TestSearchUseCase_MatchIDs_OrderInvariant tests that term order inside a group is irrelevant
func TestSearchUseCase_MatchIDs_OrderInvariant(t *testing.T) {
	uc := usecase.NewSearchUseCase(zap.NewNop())
	sites := testCatalog()

	a := uc.MatchIDs(sites, domain.ParseFilter("france,(vi)"))
	b := uc.MatchIDs(sites, domain.ParseFilter("(vi),france"))
	assert.Equal(t, a, b)
}

// TestSearchUseCase_Evaluate_YearSort tests ascending inscription year order for text search
func TestSearchUseCase_Evaluate_YearSort(t *testing.T) {
	uc := usecase.NewSearchUseCase(zap.NewNop())

	result := uc.Evaluate(testCatalog(), domain.ParseFilter("(i)+(ii)"), nil)

	assert.Equal(t, 3, result.Len())
	assert.False(t, result.ByDistance)

	years := []int{}
	for _, r := range result.Sites {
		years = append(years, r.Site.Year)
	}
	assert.Equal(t, []int{1978, 1990, 2001}, years)
	assert.Equal(t, 0, result.Start)
}

// TestSearchUseCase_Evaluate_AutoExpand tests radius growth in 50 km steps until three matches
func TestSearchUseCase_Evaluate_AutoExpand(t *testing.T) {
	uc := usecase.NewSearchUseCase(zap.NewNop())

	result := uc.Evaluate(testCatalog(), domain.Filter{}, &domain.ProximityRequest{
		Latitude:  userLat,
		Longitude: userLon,
	})

	assert.Equal(t, 3, result.Len())
	assert.True(t, result.ByDistance)

	// радиус - кратный шагу и достаточный для третьего объекта (Берлин, ~878 км)
	assert.Equal(t, 0, result.RadiusKm%50)
	assert.Equal(t, 900, result.RadiusKm)

	// сортировка по возрастанию дистанции
	assert.Equal(t, []int64{1, 2, 3},
		[]int64{result.Sites[0].Site.ID, result.Sites[1].Site.ID, result.Sites[2].Site.ID})
	assert.LessOrEqual(t, result.Sites[0].DistanceKm, result.Sites[1].DistanceKm)
	assert.LessOrEqual(t, result.Sites[1].DistanceKm, result.Sites[2].DistanceKm)

	// ближайший объект и первая строка списка совпадают
	assert.Equal(t, result.Sites[0].DistanceKm, result.NearestKm)
}

// TestSearchUseCase_Evaluate_ExplicitRadius tests that a fixed radius disables auto expansion
func TestSearchUseCase_Evaluate_ExplicitRadius(t *testing.T) {
	uc := usecase.NewSearchUseCase(zap.NewNop())

	result := uc.Evaluate(testCatalog(), domain.Filter{}, &domain.ProximityRequest{
		Latitude:  userLat,
		Longitude: userLon,
		RadiusKm:  10,
	})

	assert.Equal(t, 1, result.Len())
	assert.Equal(t, int64(1), result.Sites[0].Site.ID)
	assert.Equal(t, 10, result.RadiusKm)
}

// TestSearchUseCase_Evaluate_ExpansionCeiling tests that expansion halts past 5000 km
func TestSearchUseCase_Evaluate_ExpansionCeiling(t *testing.T) {
	uc := usecase.NewSearchUseCase(zap.NewNop())

	// пользователь в Новой Зеландии, весь каталог в Европе
	result := uc.Evaluate(testCatalog(), domain.Filter{}, &domain.ProximityRequest{
		Latitude:  -45,
		Longitude: 170,
	})

	assert.Equal(t, 0, result.Len())
	assert.Equal(t, 5050, result.RadiusKm)
	assert.NotZero(t, result.NearestKm)
}

// TestSearchUseCase_Evaluate_Combined tests intersection of text and proximity matches
func TestSearchUseCase_Evaluate_Combined(t *testing.T) {
	uc := usecase.NewSearchUseCase(zap.NewNop())

	result := uc.Evaluate(testCatalog(), domain.ParseFilter("france"), &domain.ProximityRequest{
		Latitude:  userLat,
		Longitude: userLon,
		RadiusKm:  100,
	})

	assert.Equal(t, 2, result.Len())
	assert.True(t, result.ByDistance)
	assert.Equal(t, int64(1), result.Sites[0].Site.ID)
	assert.Equal(t, int64(2), result.Sites[1].Site.ID)

	// узкий радиус отсекает дальний из текстовых матчей
	result = uc.Evaluate(testCatalog(), domain.ParseFilter("france"), &domain.ProximityRequest{
		Latitude:  userLat,
		Longitude: userLon,
		RadiusKm:  30,
	})
	assert.Equal(t, 1, result.Len())
	assert.Equal(t, int64(1), result.Sites[0].Site.ID)
}
