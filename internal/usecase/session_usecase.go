package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/heritage-catalog-service/internal/domain"
	"github.com/heritage-catalog-service/internal/domain/repository"
	"github.com/heritage-catalog-service/internal/locale"
	apperrors "github.com/heritage-catalog-service/internal/pkg/errors"
	"github.com/heritage-catalog-service/internal/pkg/utils"
	"github.com/heritage-catalog-service/internal/usecase/dto"
)

// SessionUseCase - конечный автомат диалога. Каждый вход (текст, геопозиция,
// нажатие кнопки) проверяется против текущей фазы, переход готовится на копии
// состояния и фиксируется в хранилище до того, как экран уйдёт пользователю.
// Недопустимый вход не меняет состояние.
type SessionUseCase struct {
	sessionRepo   repository.SessionRepository
	catalog       *CatalogUseCase
	search        *SearchUseCase
	tables        map[string]*locale.StringTable
	supported     []string
	defaultLocale string
	logger        *zap.Logger
}

// NewSessionUseCase создает новый use case для сессий
func NewSessionUseCase(
	sessionRepo repository.SessionRepository,
	catalog *CatalogUseCase,
	search *SearchUseCase,
	tables map[string]*locale.StringTable,
	defaultLocale string,
	logger *zap.Logger,
) *SessionUseCase {
	return &SessionUseCase{
		sessionRepo:   sessionRepo,
		catalog:       catalog,
		search:        search,
		tables:        tables,
		supported:     locale.Supported(),
		defaultLocale: defaultLocale,
		logger:        logger,
	}
}

// StartSession создаёт новую сессию и возвращает стартовый экран
func (uc *SessionUseCase) StartSession(ctx context.Context, localeCode string) (*dto.ScreenView, error) {
	code := strings.ToUpper(strings.TrimSpace(localeCode))
	if code == "" {
		code = uc.defaultLocale
	}
	if _, ok := uc.tables[code]; !ok {
		return nil, apperrors.ErrUnknownLocale.WithDetails(map[string]interface{}{"locale": code})
	}

	state := domain.NewSessionState(uuid.New().String(), code)
	if err := uc.sessionRepo.Save(ctx, state); err != nil {
		return nil, err
	}

	uc.logger.Info("Session started",
		zap.String("session_id", state.ID),
		zap.String("locale", code))

	view := uc.screensFor(state).greeting("")
	return uc.finish(view, state), nil
}

// GetView возвращает текущий экран сессии, не меняя её состояния
func (uc *SessionUseCase) GetView(ctx context.Context, id string) (*dto.ScreenView, error) {
	state, err := uc.sessionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	view := uc.renderState(state, "")
	return uc.finish(view, state), nil
}

// ResetSession удаляет сессию
func (uc *SessionUseCase) ResetSession(ctx context.Context, id string) error {
	return uc.sessionRepo.Delete(ctx, id)
}

// SubmitText обрабатывает текстовый ввод. В фазах просмотра результатов текст
// воспринимается как попытка нового поиска и требует подтверждения отмены;
// состояние при этом не меняется. В остальных фазах терм дописывается к фильтру
// и поиск перевычисляется.
func (uc *SessionUseCase) SubmitText(ctx context.Context, id, text string) (*dto.ScreenView, error) {
	state, err := uc.sessionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch state.Phase {
	case domain.PhaseResultList, domain.PhaseSiteDetails,
		domain.PhaseLocationList, domain.PhaseLocationDetail:
		view := uc.screensFor(state).cancelConfirm(state.Phase)
		return uc.finish(view, state), nil
	}

	next := state.Clone()
	next.FilterText = domain.AppendTerm(next.FilterText, normalizeTerm(text))
	return uc.evaluateAndCommit(ctx, next)
}

// normalizeTerm обрезает пробелы и разворачивает числовую запись критерия,
// сохраняя маркер расширения поиска в начале ввода
func normalizeTerm(text string) string {
	raw := strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(raw, domain.OrSeparator); ok {
		return domain.OrSeparator + domain.TranslateCriteriaShorthand(rest)
	}
	return domain.TranslateCriteriaShorthand(raw)
}

// SubmitLocation запоминает геопозицию и перевычисляет поиск.
// Радиус сбрасывается в автоматический режим, если пользователь
// не выставлял его вручную.
func (uc *SessionUseCase) SubmitLocation(ctx context.Context, id string, lat, lon float64) (*dto.ScreenView, error) {
	if !utils.ValidateCoordinates(lat, lon) {
		return nil, apperrors.ErrInvalidCoordinates
	}

	state, err := uc.sessionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := state.Clone()
	radius := 0
	if next.Proximity != nil && next.RadiusAdjusted {
		radius = next.Proximity.RadiusKm
	}
	next.Proximity = &domain.ProximityRequest{
		Latitude:  lat,
		Longitude: lon,
		RadiusKm:  radius,
	}
	return uc.evaluateAndCommit(ctx, next)
}

// HandleAction обрабатывает нажатие кнопки. Токен из чужой фазы отклоняется
// без изменения состояния: устаревшие кнопки остаются на старых экранах.
func (uc *SessionUseCase) HandleAction(ctx context.Context, id, token string) (*dto.ScreenView, error) {
	action, err := domain.ParseAction(token)
	if err != nil {
		return nil, apperrors.ErrInvalidAction.WithDetails(map[string]interface{}{"token": token, "reason": err.Error()})
	}

	state, err := uc.sessionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch action.Type {
	case domain.ActionHome:
		return uc.actionHome(ctx, state)
	case domain.ActionKeepSearch:
		return uc.actionKeep(state)
	case domain.ActionShowResults:
		return uc.actionShowResults(ctx, state)
	case domain.ActionOpenSite:
		return uc.actionOpenSite(ctx, state, action.Index)
	case domain.ActionPageResults:
		return uc.actionPageResults(ctx, state, action.Delta)
	case domain.ActionShowLocations:
		return uc.actionShowLocations(ctx, state)
	case domain.ActionPageLocations:
		return uc.actionPageLocations(ctx, state, action.Delta)
	case domain.ActionOpenLocation:
		return uc.actionOpenLocation(ctx, state, action.Index)
	case domain.ActionAdjustRadius:
		return uc.actionAdjustRadius(ctx, state, action.Delta)
	case domain.ActionSearchCriteria:
		return uc.actionSearchCriteria(ctx, state, action.Term)
	case domain.ActionCountryInfo:
		return uc.actionCountryInfo(ctx, state)
	case domain.ActionCriteriaInfo:
		view := uc.screensFor(state).criteriaList(state.Phase)
		return uc.finish(view, state), nil
	case domain.ActionSetLocale:
		return uc.actionSetLocale(ctx, state, action.Term)
	}

	return nil, apperrors.ErrInvalidAction
}

func (uc *SessionUseCase) actionHome(ctx context.Context, state *domain.SessionState) (*dto.ScreenView, error) {
	next := state.Clone()
	next.Reset()
	if err := uc.sessionRepo.Save(ctx, next); err != nil {
		return nil, err
	}
	view := uc.screensFor(next).greeting("")
	return uc.finish(view, next), nil
}

func (uc *SessionUseCase) actionKeep(state *domain.SessionState) (*dto.ScreenView, error) {
	switch state.Phase {
	case domain.PhaseResultList, domain.PhaseSiteDetails,
		domain.PhaseLocationList, domain.PhaseLocationDetail:
		view := uc.renderState(state, "")
		return uc.finish(view, state), nil
	}
	return nil, apperrors.ErrInvalidActionForPhase
}

func (uc *SessionUseCase) actionShowResults(ctx context.Context, state *domain.SessionState) (*dto.ScreenView, error) {
	if state.Result.Len() == 0 {
		return nil, apperrors.ErrInvalidActionForPhase
	}
	switch state.Phase {
	case domain.PhaseSearching, domain.PhaseSiteDetails,
		domain.PhaseLocationList, domain.PhaseLocationDetail:
	default:
		return nil, apperrors.ErrInvalidActionForPhase
	}

	next := state.Clone()
	if next.Result.Len() == 1 {
		// единственный результат открывается сразу карточкой
		next.Phase = domain.PhaseSiteDetails
		next.Drill = &domain.DrillDownContext{SiteIndex: 0}
	} else {
		next.Phase = domain.PhaseResultList
		next.Drill = nil
	}
	if err := uc.sessionRepo.Save(ctx, next); err != nil {
		return nil, err
	}
	return uc.finish(uc.renderState(next, ""), next), nil
}

func (uc *SessionUseCase) actionOpenSite(ctx context.Context, state *domain.SessionState, index int) (*dto.ScreenView, error) {
	switch state.Phase {
	case domain.PhaseResultList, domain.PhaseSiteDetails,
		domain.PhaseLocationList, domain.PhaseLocationDetail:
	default:
		return nil, apperrors.ErrInvalidActionForPhase
	}
	if index >= state.Result.Len() {
		return nil, apperrors.ErrInvalidAction.WithDetails(map[string]interface{}{"index": index})
	}

	next := state.Clone()
	next.Phase = domain.PhaseSiteDetails
	next.Drill = &domain.DrillDownContext{SiteIndex: index}
	if err := uc.sessionRepo.Save(ctx, next); err != nil {
		return nil, err
	}
	view := uc.screensFor(next).siteDetails(next)
	return uc.finish(view, next), nil
}

func (uc *SessionUseCase) actionPageResults(ctx context.Context, state *domain.SessionState, delta int) (*dto.ScreenView, error) {
	if state.Phase != domain.PhaseResultList {
		return nil, apperrors.ErrInvalidActionForPhase
	}

	next := state.Clone()
	next.Result.Advance(delta)
	if err := uc.sessionRepo.Save(ctx, next); err != nil {
		return nil, err
	}
	view := uc.screensFor(next).resultList(next)
	return uc.finish(view, next), nil
}

func (uc *SessionUseCase) actionShowLocations(ctx context.Context, state *domain.SessionState) (*dto.ScreenView, error) {
	switch state.Phase {
	case domain.PhaseSiteDetails, domain.PhaseLocationDetail:
	default:
		return nil, apperrors.ErrInvalidActionForPhase
	}

	next := state.Clone()
	site := &next.Result.Sites[next.Drill.SiteIndex].Site

	if len(site.Locations) == 1 {
		// единственная локация показывается прямо из карточки
		idx := 0
		next.Phase = domain.PhaseSiteDetails
		next.Drill.LocationIndex = &idx
		if err := uc.sessionRepo.Save(ctx, next); err != nil {
			return nil, err
		}
		view := uc.screensFor(next).locationShown(next, true)
		return uc.finish(view, next), nil
	}

	next.Phase = domain.PhaseLocationList
	next.Drill.LocationIndex = nil
	if err := uc.sessionRepo.Save(ctx, next); err != nil {
		return nil, err
	}
	view := uc.screensFor(next).locationList(next)
	return uc.finish(view, next), nil
}

func (uc *SessionUseCase) actionPageLocations(ctx context.Context, state *domain.SessionState, delta int) (*dto.ScreenView, error) {
	if state.Phase != domain.PhaseLocationList {
		return nil, apperrors.ErrInvalidActionForPhase
	}

	next := state.Clone()
	site := &next.Result.Sites[next.Drill.SiteIndex].Site
	next.Drill.AdvanceLocations(delta, len(site.Locations))
	if err := uc.sessionRepo.Save(ctx, next); err != nil {
		return nil, err
	}
	view := uc.screensFor(next).locationList(next)
	return uc.finish(view, next), nil
}

func (uc *SessionUseCase) actionOpenLocation(ctx context.Context, state *domain.SessionState, index int) (*dto.ScreenView, error) {
	if state.Phase != domain.PhaseLocationList {
		return nil, apperrors.ErrInvalidActionForPhase
	}
	site := &state.Result.Sites[state.Drill.SiteIndex].Site
	if index >= len(site.Locations) {
		return nil, apperrors.ErrInvalidAction.WithDetails(map[string]interface{}{"index": index})
	}

	next := state.Clone()
	next.Phase = domain.PhaseLocationDetail
	next.Drill.LocationIndex = &index
	if err := uc.sessionRepo.Save(ctx, next); err != nil {
		return nil, err
	}
	view := uc.screensFor(next).locationShown(next, false)
	return uc.finish(view, next), nil
}

// actionAdjustRadius переключает поиск на фиксированный радиус.
// Радиус не может стать меньше одного километра.
func (uc *SessionUseCase) actionAdjustRadius(ctx context.Context, state *domain.SessionState, delta int) (*dto.ScreenView, error) {
	if state.Phase != domain.PhaseSearching || state.Proximity == nil || state.Result == nil {
		return nil, apperrors.ErrInvalidActionForPhase
	}

	next := state.Clone()
	radius := next.Result.RadiusKm + delta
	if radius < 1 {
		radius = 1
	}
	next.Proximity.RadiusKm = radius
	next.RadiusAdjusted = true
	return uc.evaluateAndCommit(ctx, next)
}

func (uc *SessionUseCase) actionSearchCriteria(ctx context.Context, state *domain.SessionState, term string) (*dto.ScreenView, error) {
	next := state.Clone()
	next.FilterText = domain.AppendTerm(next.FilterText, term)
	return uc.evaluateAndCommit(ctx, next)
}

func (uc *SessionUseCase) actionCountryInfo(ctx context.Context, state *domain.SessionState) (*dto.ScreenView, error) {
	stats, err := uc.catalog.CountryStats(ctx, state.Locale)
	if err != nil {
		return nil, err
	}
	view := uc.screensFor(state).countryList(state.Phase, stats)
	return uc.finish(view, state), nil
}

// actionSetLocale меняет язык сессии. Каталог другого языка - другой снимок,
// поэтому активный поиск сбрасывается.
func (uc *SessionUseCase) actionSetLocale(ctx context.Context, state *domain.SessionState, code string) (*dto.ScreenView, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if _, ok := uc.tables[code]; !ok {
		return nil, apperrors.ErrUnknownLocale.WithDetails(map[string]interface{}{"locale": code})
	}

	next := state.Clone()
	next.Reset()
	next.Locale = code
	if err := uc.sessionRepo.Save(ctx, next); err != nil {
		return nil, err
	}
	view := uc.screensFor(next).greeting("")
	return uc.finish(view, next), nil
}

// evaluateAndCommit перевычисляет поиск для подготовленного состояния,
// выбирает исход (пустой фильтр, ничего не найдено, слишком узкий радиус,
// сводка) и фиксирует состояние до отдачи экрана
func (uc *SessionUseCase) evaluateAndCommit(ctx context.Context, next *domain.SessionState) (*dto.ScreenView, error) {
	scr := uc.screensFor(next)
	filter := domain.ParseFilter(next.FilterText)

	if filter.Empty() && next.Proximity == nil {
		next.Reset()
		if err := uc.sessionRepo.Save(ctx, next); err != nil {
			return nil, err
		}
		return uc.finish(scr.greeting(scr.st.Strings.EmptySearch), next), nil
	}

	sites, err := uc.catalog.Snapshot(ctx, next.Locale)
	if err != nil {
		return nil, err
	}

	result := uc.search.Evaluate(sites, filter, next.Proximity)
	next.Result = result
	next.Drill = nil
	next.Phase = domain.PhaseSearching

	if result.Len() == 0 {
		// Сужение радиуса до пустого результата поиск не сбрасывает:
		// пользователю предлагаются кнопки расширения
		if next.Proximity != nil && next.RadiusAdjusted {
			if err := uc.sessionRepo.Save(ctx, next); err != nil {
				return nil, err
			}
			return uc.finish(scr.tooNarrow(next), next), nil
		}

		notice := scr.st.Strings.NoResults
		if next.Proximity != nil && !filter.Empty() {
			notice = scr.st.Strings.NoResultsLocation
		}
		notice = locale.Fill(notice, map[string]string{
			"search": filter.Display(scr.st.Words.And, scr.st.Words.Or),
		})

		next.Reset()
		if err := uc.sessionRepo.Save(ctx, next); err != nil {
			return nil, err
		}
		return uc.finish(scr.greeting(notice), next), nil
	}

	if err := uc.sessionRepo.Save(ctx, next); err != nil {
		return nil, err
	}

	uc.logger.Debug("Search evaluated",
		zap.String("session_id", next.ID),
		zap.Int("results", result.Len()),
		zap.Bool("by_distance", result.ByDistance))

	return uc.finish(scr.searchSummary(next, filter), next), nil
}

// renderState строит экран, соответствующий сохранённой фазе сессии
func (uc *SessionUseCase) renderState(state *domain.SessionState, notice string) dto.ScreenView {
	scr := uc.screensFor(state)
	switch state.Phase {
	case domain.PhaseSearching:
		if state.Result.Len() == 0 {
			return scr.tooNarrow(state)
		}
		return scr.searchSummary(state, domain.ParseFilter(state.FilterText))
	case domain.PhaseResultList:
		return scr.resultList(state)
	case domain.PhaseSiteDetails:
		return scr.siteDetails(state)
	case domain.PhaseLocationList:
		return scr.locationList(state)
	case domain.PhaseLocationDetail:
		return scr.locationShown(state, false)
	}
	return scr.greeting(notice)
}

func (uc *SessionUseCase) screensFor(state *domain.SessionState) *screens {
	table, ok := uc.tables[state.Locale]
	if !ok {
		table = uc.tables[uc.defaultLocale]
	}
	return newScreens(table, state.Locale, uc.supported)
}

func (uc *SessionUseCase) finish(view dto.ScreenView, state *domain.SessionState) *dto.ScreenView {
	view.SessionID = state.ID
	return &view
}
