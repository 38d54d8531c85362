package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/heritage-catalog-service/internal/domain"
	"github.com/heritage-catalog-service/internal/locale"
	"github.com/heritage-catalog-service/internal/usecase/dto"
)

// Кнопок в одном ряду числовой клавиатуры
const buttonsPerRow = 5

// screens строит экраны диалога для одного языка.
// Экран - это текст плюс ряды кнопок; вся логика раскладки и локализации
// собрана здесь, конечный автомат только выбирает, какой экран показать.
type screens struct {
	st     *locale.StringTable
	locale string
	langs  []string
}

func newScreens(st *locale.StringTable, current string, supported []string) *screens {
	return &screens{st: st, locale: current, langs: supported}
}

func (s *screens) fill(template string, vars map[string]string) string {
	return locale.Fill(template, vars)
}

// greeting - стартовый экран. Необязательное уведомление (пустой поиск,
// ничего не найдено) показывается над приветствием.
func (s *screens) greeting(notice string) dto.ScreenView {
	text := s.st.Strings.Greeting
	if notice != "" {
		text = notice + "\n\n" + text
	}

	rows := [][]dto.ActionButton{{
		{Label: s.st.Buttons.Countries, Token: domain.Action{Type: domain.ActionCountryInfo}.Token()},
		{Label: s.st.Buttons.Criteria, Token: domain.Action{Type: domain.ActionCriteriaInfo}.Token()},
	}}
	if langRow := s.langButtons(); len(langRow) > 0 {
		rows = append(rows, langRow)
	}

	return dto.ScreenView{
		Phase:   string(domain.PhaseIdle),
		Text:    text,
		Actions: rows,
	}
}

func (s *screens) langButtons() []dto.ActionButton {
	var row []dto.ActionButton
	for _, code := range s.langs {
		if code == s.locale {
			continue
		}
		row = append(row, dto.ActionButton{
			Label: code,
			Token: domain.Action{Type: domain.ActionSetLocale, Term: code}.Token(),
		})
	}
	return row
}

// cancelConfirm - подтверждение сброса поиска при текстовом вводе из списка
func (s *screens) cancelConfirm(phase domain.Phase) dto.ScreenView {
	return dto.ScreenView{
		Phase: string(phase),
		Text:  s.st.Strings.CancelConfirm,
		Actions: [][]dto.ActionButton{{
			{Label: s.st.Buttons.CancelYes, Token: domain.Action{Type: domain.ActionHome}.Token()},
			{Label: s.st.Buttons.CancelNo, Token: domain.Action{Type: domain.ActionKeepSearch}.Token()},
		}},
	}
}

// searchSummary - сводка после каждого уточнения поиска: количество найденного,
// текущий фильтр, параметры геопоиска и подсказки по уточнению
func (s *screens) searchSummary(state *domain.SessionState, filter domain.Filter) dto.ScreenView {
	result := state.Result
	var lines []string

	lines = append(lines, s.fill(s.st.Strings.Found,
		map[string]string{"count": strconv.Itoa(result.Len())}))

	if !filter.Empty() {
		lines = append(lines, s.fill(s.st.Strings.Request,
			map[string]string{"request": filter.Display(s.st.Words.And, s.st.Words.Or)}))
	}
	if result.ByDistance {
		lines = append(lines, s.fill(s.st.Strings.RequestGPS,
			map[string]string{"km": strconv.Itoa(result.RadiusKm)}))
		lines = append(lines, s.fill(s.st.Strings.Nearest,
			map[string]string{"km": strconv.Itoa(result.NearestKm)}))
	}

	lines = append(lines, "", s.st.Strings.RefineHint)
	if result.ByDistance {
		lines = append(lines, "", s.st.Strings.RadiusHint)
	}

	showLabel := s.st.Buttons.ShowList
	if result.Len() == 1 {
		showLabel = s.st.Buttons.ShowSingle
	}
	rows := [][]dto.ActionButton{{
		{Label: showLabel, Token: domain.Action{Type: domain.ActionShowResults}.Token()},
		{Label: s.st.Buttons.NewSearch, Token: domain.Action{Type: domain.ActionHome}.Token()},
	}}
	if result.ByDistance {
		rows = append(rows, s.radiusButtons(result.RadiusKm, true))
	}

	return dto.ScreenView{
		Phase:   string(domain.PhaseSearching),
		Text:    strings.Join(lines, "\n"),
		Actions: rows,
	}
}

// tooNarrow - в заданном радиусе пусто, предлагаются только кнопки расширения
func (s *screens) tooNarrow(state *domain.SessionState) dto.ScreenView {
	text := s.fill(s.st.Strings.TooNarrow,
		map[string]string{"km": strconv.Itoa(state.Result.RadiusKm)}) +
		"\n\n" + s.st.Strings.RadiusHint

	return dto.ScreenView{
		Phase: string(domain.PhaseSearching),
		Text:  text,
		Actions: [][]dto.ActionButton{
			{{Label: s.st.Buttons.NewSearch, Token: domain.Action{Type: domain.ActionHome}.Token()}},
			s.radiusButtons(state.Result.RadiusKm, false),
		},
	}
}

// radiusButtons - кнопки изменения радиуса. Кнопки сужения скрываются,
// когда уменьшенный радиус не имеет смысла или когда в текущем уже пусто.
func (s *screens) radiusButtons(radiusKm int, allowShrink bool) []dto.ActionButton {
	var row []dto.ActionButton
	add := func(delta int) {
		row = append(row, dto.ActionButton{
			Label: fmt.Sprintf("%+d %s", delta, s.st.Buttons.Km),
			Token: domain.Action{Type: domain.ActionAdjustRadius, Delta: delta}.Token(),
		})
	}
	if allowShrink && radiusKm >= 100 {
		add(-100)
	}
	if allowShrink && radiusKm > 50 {
		add(-50)
	}
	add(50)
	add(100)
	return row
}

// resultList - страница списка найденных объектов с числовыми кнопками
func (s *screens) resultList(state *domain.SessionState) dto.ScreenView {
	result := state.Result
	start, end := result.PageBounds()

	var lines []string
	if result.Len() > domain.PageSize {
		lines = append(lines, s.fill(s.st.Strings.Window, map[string]string{
			"start": strconv.Itoa(start + 1),
			"end":   strconv.Itoa(end),
			"total": strconv.Itoa(result.Len()),
		}), "")
	}
	for i := start; i < end; i++ {
		lines = append(lines, s.siteListItem(i+1, &result.Sites[i], result.ByDistance), "")
	}
	lines = append(lines, s.st.Strings.PressDetails)

	rows := numberedRows(start, end, func(i int) domain.Action {
		return domain.Action{Type: domain.ActionOpenSite, Index: i}
	})
	if nav := pageRow(start, end, result.Len(), domain.ActionPageResults); nav != nil {
		rows = append(rows, nav)
	}
	rows = append(rows, []dto.ActionButton{
		{Label: s.st.Buttons.NewSearch, Token: domain.Action{Type: domain.ActionHome}.Token()},
	})

	return dto.ScreenView{
		Phase:   string(domain.PhaseResultList),
		Text:    strings.Join(lines, "\n"),
		Actions: rows,
	}
}

func (s *screens) siteListItem(number int, ranked *domain.RankedSite, withDistance bool) string {
	site := &ranked.Site
	lines := []string{
		fmt.Sprintf("%d. %s", number, site.Name),
		fmt.Sprintf("%s: %d", s.st.Strings.Year, site.Year),
		fmt.Sprintf("%s: %s", s.st.Strings.Criteria, strings.Join(site.Criteria, ", ")),
		fmt.Sprintf("%s: %s", s.st.Strings.Country, strings.Join(site.Country, ", ")),
	}
	if withDistance {
		lines = append(lines, s.fill(s.st.Strings.Distance,
			map[string]string{"km": strconv.Itoa(ranked.DistanceKm)}))
	}
	return strings.Join(lines, "\n")
}

// siteDetails - карточка объекта
func (s *screens) siteDetails(state *domain.SessionState) dto.ScreenView {
	result := state.Result
	ranked := &result.Sites[state.Drill.SiteIndex]
	site := &ranked.Site

	var lines []string
	if site.NoInfo {
		lines = append(lines, s.st.Strings.NoLangInfo, "")
	}
	lines = append(lines,
		site.Name,
		"",
		fmt.Sprintf("%s: %d", s.st.Strings.Year, site.Year),
		fmt.Sprintf("%s: %s", s.st.Strings.Criteria, strings.Join(site.Criteria, ", ")),
		fmt.Sprintf("%s: %s", s.st.Strings.Country, strings.Join(site.Country, ", ")),
	)
	if result.ByDistance {
		lines = append(lines, s.fill(s.st.Strings.Distance,
			map[string]string{"km": strconv.Itoa(ranked.DistanceKm)}))
	}
	if site.Text != "" {
		lines = append(lines, "", site.Text)
	}
	if site.URL != "" {
		lines = append(lines, "", site.URL)
	}

	var rows [][]dto.ActionButton
	if len(site.Locations) > 0 {
		rows = append(rows, []dto.ActionButton{{
			Label: s.st.Buttons.Locations,
			Token: domain.Action{Type: domain.ActionShowLocations}.Token(),
		}})
	}
	backRow := []dto.ActionButton{}
	if result.Len() > 1 {
		backRow = append(backRow, dto.ActionButton{
			Label: s.st.Buttons.ToList,
			Token: domain.Action{Type: domain.ActionShowResults}.Token(),
		})
	}
	backRow = append(backRow, dto.ActionButton{
		Label: s.st.Buttons.NewSearch,
		Token: domain.Action{Type: domain.ActionHome}.Token(),
	})
	rows = append(rows, backRow)

	return dto.ScreenView{
		Phase:   string(domain.PhaseSiteDetails),
		Text:    strings.Join(lines, "\n"),
		Actions: rows,
	}
}

// locationList - страница списка локаций объекта
func (s *screens) locationList(state *domain.SessionState) dto.ScreenView {
	site := &state.Result.Sites[state.Drill.SiteIndex].Site
	total := len(site.Locations)
	start, end := locationPageBounds(state.Drill.LocationStart, total)

	var lines []string
	if total > domain.PageSize {
		lines = append(lines, s.fill(s.st.Strings.Window, map[string]string{
			"start": strconv.Itoa(start + 1),
			"end":   strconv.Itoa(end),
			"total": strconv.Itoa(total),
		}), "")
	}
	for i := start; i < end; i++ {
		loc := site.Locations[i]
		line := fmt.Sprintf("%d. %s", i+1, loc.Name)
		if loc.Country != "" {
			line += fmt.Sprintf(" (%s)", loc.Country)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", s.st.Strings.PressDetails)

	rows := numberedRows(start, end, func(i int) domain.Action {
		return domain.Action{Type: domain.ActionOpenLocation, Index: i}
	})
	if nav := pageRow(start, end, total, domain.ActionPageLocations); nav != nil {
		rows = append(rows, nav)
	}
	rows = append(rows, []dto.ActionButton{
		{
			Label: s.st.Buttons.ToDetails,
			Token: domain.Action{Type: domain.ActionOpenSite, Index: state.Drill.SiteIndex}.Token(),
		},
		{Label: s.st.Buttons.NewSearch, Token: domain.Action{Type: domain.ActionHome}.Token()},
	})

	return dto.ScreenView{
		Phase:   string(domain.PhaseLocationList),
		Text:    strings.Join(lines, "\n"),
		Actions: rows,
	}
}

// locationShown - экран с координатами выбранной локации.
// Координаты отдаются отдельным полем, транспорт показывает их картой.
func (s *screens) locationShown(state *domain.SessionState, single bool) dto.ScreenView {
	site := &state.Result.Sites[state.Drill.SiteIndex].Site
	idx := 0
	if state.Drill.LocationIndex != nil {
		idx = *state.Drill.LocationIndex
	}
	loc := site.Locations[idx]

	var lines []string
	if single {
		lines = append(lines, s.st.Strings.OneLocation, "")
	}
	if loc.Name != "" {
		lines = append(lines, loc.Name)
	}
	lines = append(lines,
		fmt.Sprintf("%s%.4f, %.4f", s.st.Strings.Coordinates, loc.Latitude, loc.Longitude),
		"",
		s.st.Strings.LocationShown)

	rows := [][]dto.ActionButton{}
	if len(site.Locations) > 1 {
		rows = append(rows, []dto.ActionButton{{
			Label: s.st.Buttons.Locations,
			Token: domain.Action{Type: domain.ActionShowLocations}.Token(),
		}})
	}
	rows = append(rows, []dto.ActionButton{
		{
			Label: s.st.Buttons.ToDetails,
			Token: domain.Action{Type: domain.ActionOpenSite, Index: state.Drill.SiteIndex}.Token(),
		},
		{Label: s.st.Buttons.NewSearch, Token: domain.Action{Type: domain.ActionHome}.Token()},
	})

	phase := domain.PhaseLocationDetail
	if single {
		phase = domain.PhaseSiteDetails
	}
	return dto.ScreenView{
		Phase:   string(phase),
		Text:    strings.Join(lines, "\n"),
		Actions: rows,
		Location: &dto.GeoPoint{
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		},
	}
}

// countryList - информационный экран: страны каталога с количеством объектов.
// Состояние сессии не меняет, поэтому кнопок не несёт.
func (s *screens) countryList(phase domain.Phase, stats []dto.CountryCount) dto.ScreenView {
	lines := make([]string, 0, len(stats))
	for _, c := range stats {
		lines = append(lines, fmt.Sprintf("%s: %d", c.Country, c.Sites))
	}
	return dto.ScreenView{
		Phase: string(phase),
		Text:  strings.Join(lines, "\n"),
	}
}

// criteriaList - справка по критериям с кнопками быстрого поиска
func (s *screens) criteriaList(phase domain.Phase) dto.ScreenView {
	var rows [][]dto.ActionButton
	var row []dto.ActionButton
	for _, code := range domain.CriteriaCodes {
		row = append(row, dto.ActionButton{
			Label: code,
			Token: domain.Action{Type: domain.ActionSearchCriteria, Term: code}.Token(),
		})
		if len(row) == buttonsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	// сводная кнопка "туристических" критериев: красивейшие здания,
	// уникальные постройки и самые живописные природные объекты
	combined := "(i)" + domain.OrSeparator + "(iii)" + domain.OrSeparator + "(vii)"
	rows = append(rows, []dto.ActionButton{
		{
			Label: "(i)" + s.st.Words.Or + "(iii)" + s.st.Words.Or + "(vii)",
			Token: domain.Action{Type: domain.ActionSearchCriteria, Term: combined}.Token(),
		},
		{Label: s.st.Buttons.NewSearch, Token: domain.Action{Type: domain.ActionHome}.Token()},
	})

	return dto.ScreenView{
		Phase:   string(phase),
		Text:    s.st.Strings.CriteriaInfo,
		Actions: rows,
	}
}

// numberedRows строит ряды числовых кнопок для окна [start, end).
// Подпись - порядковый номер в полном списке, аргумент - абсолютный индекс.
func numberedRows(start, end int, build func(i int) domain.Action) [][]dto.ActionButton {
	var rows [][]dto.ActionButton
	var row []dto.ActionButton
	for i := start; i < end; i++ {
		row = append(row, dto.ActionButton{
			Label: strconv.Itoa(i + 1),
			Token: build(i).Token(),
		})
		if len(row) == buttonsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

// pageRow строит кнопки листания. Назад скрыта на первой странице,
// вперёд - на последней.
func pageRow(start, end, total int, action domain.ActionType) []dto.ActionButton {
	var row []dto.ActionButton
	if start > 0 {
		row = append(row, dto.ActionButton{
			Label: "<<",
			Token: domain.Action{Type: action, Delta: -1}.Token(),
		})
	}
	if end < total {
		row = append(row, dto.ActionButton{
			Label: ">>",
			Token: domain.Action{Type: action, Delta: 1}.Token(),
		})
	}
	return row
}

func locationPageBounds(start, total int) (int, int) {
	end := start + domain.PageSize
	if end > total {
		end = total
	}
	return start, end
}
