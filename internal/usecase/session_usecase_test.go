package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/heritage-catalog-service/internal/domain"
	"github.com/heritage-catalog-service/internal/locale"
	apperrors "github.com/heritage-catalog-service/internal/pkg/errors"
	"github.com/heritage-catalog-service/internal/usecase"
	"github.com/heritage-catalog-service/internal/usecase/dto"
)

// MockCatalogRepository is a mock of CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) LoadByLocale(ctx context.Context, loc string) ([]domain.Site, error) {
	args := m.Called(ctx, loc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Site), args.Error(1)
}

func (m *MockCatalogRepository) ReplaceLocale(ctx context.Context, loc string, sites []domain.Site) error {
	args := m.Called(ctx, loc, sites)
	return args.Error(0)
}

func (m *MockCatalogRepository) CountByLocale(ctx context.Context, loc string) (int, error) {
	args := m.Called(ctx, loc)
	return args.Int(0), args.Error(1)
}

// nopCache - кеш, который всегда промахивается
type nopCache struct{}

func (nopCache) Get(context.Context, string) ([]byte, error)              { return nil, nil }
func (nopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (nopCache) Delete(context.Context, string) error                     { return nil }

// memSessionRepo - хранилище сессий в памяти для тестов.
// Get и Save клонируют состояние, имитируя сериализацию.
type memSessionRepo struct {
	states map[string]*domain.SessionState
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{states: make(map[string]*domain.SessionState)}
}

func (m *memSessionRepo) Get(_ context.Context, id string) (*domain.SessionState, error) {
	state, ok := m.states[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return state.Clone(), nil
}

func (m *memSessionRepo) Save(_ context.Context, state *domain.SessionState) error {
	m.states[state.ID] = state.Clone()
	return nil
}

func (m *memSessionRepo) Delete(_ context.Context, id string) error {
	delete(m.states, id)
	return nil
}

func newTestSessionUC(t *testing.T, sites []domain.Site) (*usecase.SessionUseCase, *memSessionRepo) {
	t.Helper()

	catalogRepo := &MockCatalogRepository{}
	catalogRepo.On("LoadByLocale", mock.Anything, mock.Anything).Return(sites, nil)

	cacheRepo := &nopCache{}
	sessions := newMemSessionRepo()

	tables, err := locale.LoadAll()
	require.NoError(t, err)

	catalogUC := usecase.NewCatalogUseCase(catalogRepo, cacheRepo, 0, zap.NewNop())
	searchUC := usecase.NewSearchUseCase(zap.NewNop())
	sessionUC := usecase.NewSessionUseCase(sessions, catalogUC, searchUC, tables, "EN", zap.NewNop())

	return sessionUC, sessions
}

func startSession(t *testing.T, uc *usecase.SessionUseCase) string {
	t.Helper()
	view, err := uc.StartSession(context.Background(), "EN")
	require.NoError(t, err)
	require.NotEmpty(t, view.SessionID)
	return view.SessionID
}

func assertAppCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func hasToken(view *dto.ScreenView, token string) bool {
	for _, row := range view.Actions {
		for _, b := range row {
			if b.Token == token {
				return true
			}
		}
	}
	return false
}

// TestSessionUseCase_StartSession tests session creation and the greeting screen
func TestSessionUseCase_StartSession(t *testing.T) {
	uc, sessions := newTestSessionUC(t, testCatalog())

	view, err := uc.StartSession(context.Background(), "EN")
	require.NoError(t, err)

	assert.Equal(t, string(domain.PhaseIdle), view.Phase)
	assert.NotEmpty(t, view.Text)
	assert.True(t, hasToken(view, "countries"))
	assert.True(t, hasToken(view, "criteriainfo"))
	assert.True(t, hasToken(view, "lang:RU"))

	state := sessions.states[view.SessionID]
	require.NotNil(t, state)
	assert.Equal(t, domain.PhaseIdle, state.Phase)
	assert.Equal(t, "EN", state.Locale)
}

// TestSessionUseCase_StartSession_UnknownLocale tests rejection of unsupported languages
func TestSessionUseCase_StartSession_UnknownLocale(t *testing.T) {
	uc, _ := newTestSessionUC(t, testCatalog())

	_, err := uc.StartSession(context.Background(), "XX")
	assertAppCode(t, err, "UNKNOWN_LOCALE")
}

// TestSessionUseCase_SubmitText tests a plain text search and the summary screen
func TestSessionUseCase_SubmitText(t *testing.T) {
	uc, sessions := newTestSessionUC(t, testCatalog())
	id := startSession(t, uc)

	view, err := uc.SubmitText(context.Background(), id, "france")
	require.NoError(t, err)

	assert.Equal(t, string(domain.PhaseSearching), view.Phase)
	assert.Contains(t, view.Text, "2")
	assert.Contains(t, view.Text, "france")
	assert.True(t, hasToken(view, "results"))
	assert.True(t, hasToken(view, "home"))

	state := sessions.states[id]
	assert.Equal(t, domain.PhaseSearching, state.Phase)
	assert.Equal(t, "france", state.FilterText)
	assert.Equal(t, 2, state.Result.Len())
}

// TestSessionUseCase_SubmitText_Narrowing tests that a second input narrows the filter
func TestSessionUseCase_SubmitText_Narrowing(t *testing.T) {
	uc, sessions := newTestSessionUC(t, testCatalog())
	id := startSession(t, uc)

	_, err := uc.SubmitText(context.Background(), id, "france")
	require.NoError(t, err)

	view, err := uc.SubmitText(context.Background(), id, "1978")
	require.NoError(t, err)

	assert.Equal(t, "france,1978", sessions.states[id].FilterText)
	assert.Equal(t, 1, sessions.states[id].Result.Len())
	assert.True(t, hasToken(view, "results"))
}

// TestSessionUseCase_SubmitText_Broadening tests the plus prefix adding an OR group
func TestSessionUseCase_SubmitText_Broadening(t *testing.T) {
	uc, sessions := newTestSessionUC(t, testCatalog())
	id := startSession(t, uc)

	_, err := uc.SubmitText(context.Background(), id, "germany")
	require.NoError(t, err)
	assert.Equal(t, 1, sessions.states[id].Result.Len())

	_, err = uc.SubmitText(context.Background(), id, "+france")
	require.NoError(t, err)

	assert.Equal(t, "germany+france", sessions.states[id].FilterText)
	assert.Equal(t, 3, sessions.states[id].Result.Len())
}

// TestSessionUseCase_SubmitText_CriteriaShorthand tests numeric criteria expansion
func TestSessionUseCase_SubmitText_CriteriaShorthand(t *testing.T) {
	uc, sessions := newTestSessionUC(t, testCatalog())
	id := startSession(t, uc)

	_, err := uc.SubmitText(context.Background(), id, "3")
	require.NoError(t, err)

	assert.Equal(t, "(iii)", sessions.states[id].FilterText)
}

// TestSessionUseCase_SubmitText_EmptySearch tests separator-only input resetting the session
func TestSessionUseCase_SubmitText_EmptySearch(t *testing.T) {
	uc, sessions := newTestSessionUC(t, testCatalog())
	id := startSession(t, uc)

	view, err := uc.SubmitText(context.Background(), id, ",")
	require.NoError(t, err)

	assert.Equal(t, string(domain.PhaseIdle), view.Phase)
	assert.Equal(t, domain.PhaseIdle, sessions.states[id].Phase)
	assert.Empty(t, sessions.states[id].FilterText)
}

// TestSessionUseCase_SubmitText_NoResults tests a miss resetting the session with a notice
func TestSessionUseCase_SubmitText_NoResults(t *testing.T) {
	uc, sessions := newTestSessionUC(t, testCatalog())
	id := startSession(t, uc)

	view, err := uc.SubmitText(context.Background(), id, "atlantis")
	require.NoError(t, err)

	assert.Equal(t, string(domain.PhaseIdle), view.Phase)
	assert.Contains(t, view.Text, "no results")
	assert.Contains(t, view.Text, "atlantis")

	state := sessions.states[id]
	assert.Equal(t, domain.PhaseIdle, state.Phase)
	assert.Empty(t, state.FilterText)
	assert.Nil(t, state.Result)
}

// TestSessionUseCase_CancelConfirm tests that text input while browsing asks for confirmation
func TestSessionUseCase_CancelConfirm(t *testing.T) {
	uc, sessions := newTestSessionUC(t, testCatalog())
	id := startSession(t, uc)
	ctx := context.Background()

	_, err := uc.SubmitText(ctx, id, "france")
	require.NoError(t, err)
	_, err = uc.HandleAction(ctx, id, "results")
	require.NoError(t, err)
	require.Equal(t, domain.PhaseResultList, sessions.states[id].Phase)

	// текст из списка результатов: подтверждение, состояние не тронуто
	view, err := uc.SubmitText(ctx, id, "castle")
	require.NoError(t, err)
	assert.True(t, hasToken(view, "home"))
	assert.True(t, hasToken(view, "keep"))
	assert.Equal(t, domain.PhaseResultList, sessions.states[id].Phase)
	assert.Equal(t, "france", sessions.states[id].FilterText)

	// отказ от отмены возвращает текущий экран
	view, err = uc.HandleAction(ctx, id, "keep")
	require.NoError(t, err)
	assert.Equal(t, string(domain.PhaseResultList), view.Phase)

	// согласие сбрасывает поиск
	view, err = uc.HandleAction(ctx, id, "home")
	require.NoError(t, err)
	assert.Equal(t, string(domain.PhaseIdle), view.Phase)
	assert.Empty(t, sessions.states[id].FilterText)
}

// TestSessionUseCase_SingleResultOpensDetails tests that one match goes straight to the card
func TestSessionUseCase_SingleResultOpensDetails(t *testing.T) {
	uc, sessions := newTestSessionUC(t, testCatalog())
	id := startSession(t, uc)
	ctx := context.Background()

	_, err := uc.SubmitText(ctx, id, "1978")
	require.NoError(t, err)
	require.Equal(t, 1, sessions.states[id].Result.Len())

	view, err := uc.HandleAction(ctx, id, "results")
	require.NoError(t, err)

	assert.Equal(t, string(domain.PhaseSiteDetails), view.Phase)
	assert.Contains(t, view.Text, "Fontainebleau")
	assert.Equal(t, 0, sessions.states[id].Drill.SiteIndex)
}

// TestSessionUseCase_OpenSite tests opening a card from the list and index validation
func TestSessionUseCase_OpenSite(t *testing.T) {
	uc, sessions := newTestSessionUC(t, testCatalog())
	id := startSession(t, uc)
	ctx := context.Background()

	_, err := uc.SubmitText(ctx, id, "france")
	require.NoError(t, err)
	_, err = uc.HandleAction(ctx, id, "results")
	require.NoError(t, err)

	view, err := uc.HandleAction(ctx, id, "open:1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.PhaseSiteDetails), view.Phase)
	assert.Equal(t, 1, sessions.states[id].Drill.SiteIndex)

	// индекс за пределами результата
	_, err = uc.HandleAction(ctx, id, "open:5")
	assertAppCode(t, err, "INVALID_ACTION")
}

// TestSessionUseCase_PhaseValidation tests that stale buttons are rejected without state change
func TestSessionUseCase_PhaseValidation(t *testing.T) {
	uc, sessions := newTestSessionUC(t, testCatalog())
	id := startSession(t, uc)
	ctx := context.Background()

	// листать нечего: сессия в фазе ожидания
	_, err := uc.HandleAction(ctx, id, "page:+")
	assertAppCode(t, err, "INVALID_ACTION_FOR_PHASE")

	_, err = uc.HandleAction(ctx, id, "results")
	assertAppCode(t, err, "INVALID_ACTION_FOR_PHASE")

	_, err = uc.HandleAction(ctx, id, "dist:+50")
	assertAppCode(t, err, "INVALID_ACTION_FOR_PHASE")

	_, err = uc.HandleAction(ctx, id, "keep")
	assertAppCode(t, err, "INVALID_ACTION_FOR_PHASE")

	assert.Equal(t, domain.PhaseIdle, sessions.states[id].Phase)
}

// TestSessionUseCase_InvalidToken tests rejection of malformed tokens
func TestSessionUseCase_InvalidToken(t *testing.T) {
	uc, _ := newTestSessionUC(t, testCatalog())
	id := startSession(t, uc)

	_, err := uc.HandleAction(context.Background(), id, "dist:+25")
	assertAppCode(t, err, "INVALID_ACTION")
}

// TestSessionUseCase_SessionNotFound tests the missing session error
func TestSessionUseCase_SessionNotFound(t *testing.T) {
	uc, _ := newTestSessionUC(t, testCatalog())

	_, err := uc.SubmitText(context.Background(), "missing", "france")
	assertAppCode(t, err, "SESSION_NOT_FOUND")
}

// TestSessionUseCase_Pagination tests page navigation over a large result
func TestSessionUseCase_Pagination(t *testing.T) {
	sites := make([]domain.Site, 25)
	for i := range sites {
		sites[i] = domain.Site{
			ID:      int64(i + 1),
			RefID:   fmt.Sprintf("b%d", i+1),
			Name:    fmt.Sprintf("Bulk site %d", i+1),
			Year:    1900 + i,
			Country: []string{"Bulkland"},
			Locations: []domain.SiteLocation{
				{Latitude: float64(i), Longitude: 0},
			},
		}
	}

	uc, sessions := newTestSessionUC(t, sites)
	id := startSession(t, uc)
	ctx := context.Background()

	_, err := uc.SubmitText(ctx, id, "bulkland")
	require.NoError(t, err)
	_, err = uc.HandleAction(ctx, id, "results")
	require.NoError(t, err)

	view, err := uc.HandleAction(ctx, id, "page:+")
	require.NoError(t, err)
	assert.Equal(t, 10, sessions.states[id].Result.Start)
	assert.True(t, hasToken(view, "page:-"))
	assert.True(t, hasToken(view, "page:+"))

	_, err = uc.HandleAction(ctx, id, "page:+")
	require.NoError(t, err)
	assert.Equal(t, 20, sessions.states[id].Result.Start)

	// дальше последней страницы курсор не уходит
	view, err = uc.HandleAction(ctx, id, "page:+")
	require.NoError(t, err)
	assert.Equal(t, 20, sessions.states[id].Result.Start)
	assert.False(t, hasToken(view, "page:+"))
	assert.True(t, hasToken(view, "page:-"))

	_, err = uc.HandleAction(ctx, id, "page:-")
	require.NoError(t, err)
	_, err = uc.HandleAction(ctx, id, "page:-")
	require.NoError(t, err)
	view, err = uc.HandleAction(ctx, id, "page:-")
	require.NoError(t, err)
	assert.Equal(t, 0, sessions.states[id].Result.Start)
	assert.False(t, hasToken(view, "page:-"))
}

// TestSessionUseCase_LocationSearch tests proximity search with automatic radius
func TestSessionUseCase_LocationSearch(t *testing.T) {
	uc, sessions := newTestSessionUC(t, testCatalog())
	id := startSession(t, uc)

	view, err := uc.SubmitLocation(context.Background(), id, userLat, userLon)
	require.NoError(t, err)

	assert.Equal(t, string(domain.PhaseSearching), view.Phase)
	assert.True(t, hasToken(view, "dist:+50"))
	assert.True(t, hasToken(view, "dist:-100"))

	state := sessions.states[id]
	assert.Equal(t, 3, state.Result.Len())
	assert.Equal(t, 900, state.Result.RadiusKm)
	assert.True(t, state.Result.ByDistance)
	assert.False(t, state.RadiusAdjusted)
}

// TestSessionUseCase_LocationSearch_InvalidCoordinates tests coordinate validation
func TestSessionUseCase_LocationSearch_InvalidCoordinates(t *testing.T) {
	uc, _ := newTestSessionUC(t, testCatalog())
	id := startSession(t, uc)

	_, err := uc.SubmitLocation(context.Background(), id, 95, 0)
	assertAppCode(t, err, "INVALID_COORDINATES")
}

// TestSessionUseCase_RadiusAdjust tests manual narrowing down to the too-narrow screen
func TestSessionUseCase_RadiusAdjust(t *testing.T) {
	// три объекта на ~311, ~361 и ~411 км от точки (0, 0)
	sites := []domain.Site{
		{ID: 1, RefID: "n1", Name: "Near", Year: 1980, Country: []string{"Testland"},
			Locations: []domain.SiteLocation{{Latitude: 2.8, Longitude: 0}}},
		{ID: 2, RefID: "n2", Name: "Middle", Year: 1985, Country: []string{"Testland"},
			Locations: []domain.SiteLocation{{Latitude: 3.25, Longitude: 0}}},
		{ID: 3, RefID: "n3", Name: "Far", Year: 1990, Country: []string{"Testland"},
			Locations: []domain.SiteLocation{{Latitude: 3.7, Longitude: 0}}},
	}

	uc, sessions := newTestSessionUC(t, sites)
	id := startSession(t, uc)
	ctx := context.Background()

	_, err := uc.SubmitLocation(ctx, id, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 450, sessions.states[id].Result.RadiusKm)
	require.Equal(t, 3, sessions.states[id].Result.Len())

	// сужение отсекает два дальних объекта
	_, err = uc.HandleAction(ctx, id, "dist:-100")
	require.NoError(t, err)
	state := sessions.states[id]
	assert.Equal(t, 350, state.Result.RadiusKm)
	assert.Equal(t, 1, state.Result.Len())
	assert.True(t, state.RadiusAdjusted)

	// еще одно сужение оставляет пустой результат, но не сбрасывает поиск
	view, err := uc.HandleAction(ctx, id, "dist:-100")
	require.NoError(t, err)
	state = sessions.states[id]
	assert.Equal(t, string(domain.PhaseSearching), view.Phase)
	assert.Equal(t, 250, state.Result.RadiusKm)
	assert.Equal(t, 0, state.Result.Len())
	assert.NotNil(t, state.Proximity)

	// экран со слишком узким радиусом предлагает только расширение
	assert.True(t, hasToken(view, "dist:+50"))
	assert.True(t, hasToken(view, "dist:+100"))
	assert.False(t, hasToken(view, "dist:-50"))
	assert.False(t, hasToken(view, "dist:-100"))
	assert.False(t, hasToken(view, "results"))

	// расширение возвращает результаты
	_, err = uc.HandleAction(ctx, id, "dist:+100")
	require.NoError(t, err)
	assert.Equal(t, 1, sessions.states[id].Result.Len())
	assert.Equal(t, 350, sessions.states[id].Result.RadiusKm)
}

// TestSessionUseCase_Locations tests drilling into the location list of a site
func TestSessionUseCase_Locations(t *testing.T) {
	sites := []domain.Site{
		{ID: 1, RefID: "m1", Name: "Struve Geodetic Arc", Year: 2005,
			Country: []string{"Estonia", "Finland"},
			Locations: []domain.SiteLocation{
				{Name: "Point A", Latitude: 59.05, Longitude: 26.0, Country: "Estonia"},
				{Name: "Point B", Latitude: 60.1, Longitude: 25.5, Country: "Finland"},
			}},
	}

	uc, sessions := newTestSessionUC(t, sites)
	id := startSession(t, uc)
	ctx := context.Background()

	_, err := uc.SubmitText(ctx, id, "struve")
	require.NoError(t, err)
	_, err = uc.HandleAction(ctx, id, "results")
	require.NoError(t, err)
	require.Equal(t, domain.PhaseSiteDetails, sessions.states[id].Phase)

	// список локаций
	view, err := uc.HandleAction(ctx, id, "locations")
	require.NoError(t, err)
	assert.Equal(t, string(domain.PhaseLocationList), view.Phase)
	assert.Contains(t, view.Text, "Point A")
	assert.Contains(t, view.Text, "Point B")
	assert.True(t, hasToken(view, "loc:0"))
	assert.True(t, hasToken(view, "loc:1"))

	// выбор локации: экран с координатами
	view, err = uc.HandleAction(ctx, id, "loc:1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.PhaseLocationDetail), view.Phase)
	require.NotNil(t, view.Location)
	assert.InDelta(t, 60.1, view.Location.Latitude, 1e-9)
	assert.Equal(t, 1, *sessions.states[id].Drill.LocationIndex)

	// возврат к карточке объекта
	view, err = uc.HandleAction(ctx, id, "open:0")
	require.NoError(t, err)
	assert.Equal(t, string(domain.PhaseSiteDetails), view.Phase)
}

// TestSessionUseCase_SingleLocation tests the shortcut for sites with one location
func TestSessionUseCase_SingleLocation(t *testing.T) {
	uc, sessions := newTestSessionUC(t, testCatalog())
	id := startSession(t, uc)
	ctx := context.Background()

	_, err := uc.SubmitText(ctx, id, "1978")
	require.NoError(t, err)
	_, err = uc.HandleAction(ctx, id, "results")
	require.NoError(t, err)

	view, err := uc.HandleAction(ctx, id, "locations")
	require.NoError(t, err)

	// фаза не меняется, координаты приложены сразу
	assert.Equal(t, string(domain.PhaseSiteDetails), view.Phase)
	require.NotNil(t, view.Location)
	assert.InDelta(t, 48.402, view.Location.Latitude, 1e-9)
	assert.Equal(t, domain.PhaseSiteDetails, sessions.states[id].Phase)
}

// TestSessionUseCase_SetLocale tests the language switch resetting the search
func TestSessionUseCase_SetLocale(t *testing.T) {
	uc, sessions := newTestSessionUC(t, testCatalog())
	id := startSession(t, uc)
	ctx := context.Background()

	_, err := uc.SubmitText(ctx, id, "france")
	require.NoError(t, err)

	view, err := uc.HandleAction(ctx, id, "lang:RU")
	require.NoError(t, err)

	assert.Equal(t, string(domain.PhaseIdle), view.Phase)
	assert.Equal(t, "RU", sessions.states[id].Locale)
	assert.Empty(t, sessions.states[id].FilterText)

	_, err = uc.HandleAction(ctx, id, "lang:XX")
	assertAppCode(t, err, "UNKNOWN_LOCALE")
}

// TestSessionUseCase_CriteriaShortcut tests searching from the criteria screen button
func TestSessionUseCase_CriteriaShortcut(t *testing.T) {
	uc, sessions := newTestSessionUC(t, testCatalog())
	id := startSession(t, uc)
	ctx := context.Background()

	view, err := uc.HandleAction(ctx, id, "criteriainfo")
	require.NoError(t, err)
	assert.True(t, hasToken(view, "criteria:(i)"))
	assert.True(t, hasToken(view, "criteria:(x)"))
	assert.True(t, hasToken(view, "criteria:(i)+(iii)+(vii)"))

	view, err = uc.HandleAction(ctx, id, "criteria:(vi)")
	require.NoError(t, err)
	assert.Equal(t, string(domain.PhaseSearching), view.Phase)
	assert.Equal(t, "(vi)", sessions.states[id].FilterText)
	assert.Equal(t, 1, sessions.states[id].Result.Len())

	// сводная кнопка добавляет сразу три OR-группы
	view, err = uc.HandleAction(ctx, id, "criteria:(i)+(iii)+(vii)")
	require.NoError(t, err)
	assert.Equal(t, string(domain.PhaseSearching), view.Phase)
	assert.Equal(t, "(vi),(i)+(iii)+(vii)", sessions.states[id].FilterText)
	// (vi),(i) совпадает с Фонтенбло, остальные группы пусты
	assert.Equal(t, 1, sessions.states[id].Result.Len())
}

// TestSessionUseCase_CatalogUnavailable tests searching over an empty catalog
func TestSessionUseCase_CatalogUnavailable(t *testing.T) {
	uc, _ := newTestSessionUC(t, []domain.Site{})
	id := startSession(t, uc)

	_, err := uc.SubmitText(context.Background(), id, "france")
	assertAppCode(t, err, "CATALOG_UNAVAILABLE")
}
