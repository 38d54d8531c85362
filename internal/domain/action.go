package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ActionType - тип действия, закодированного в кнопке.
// Каждое нажатие кнопки транспорт возвращает ядру как токен "тип[:аргумент]".
type ActionType string

const (
	ActionOpenSite       ActionType = "open"      // open:<index> - открыть объект из списка
	ActionPageResults    ActionType = "page"      // page:+ / page:- - листать список объектов
	ActionPageLocations  ActionType = "locpage"   // locpage:+ / locpage:- - листать список локаций
	ActionOpenLocation   ActionType = "loc"       // loc:<index> - показать локацию
	ActionAdjustRadius   ActionType = "dist"      // dist:+50 / dist:-100 - изменить радиус поиска
	ActionShowResults    ActionType = "results"   // показать список найденного
	ActionShowLocations  ActionType = "locations" // показать локации объекта
	ActionHome           ActionType = "home"      // новый поиск, сброс сессии
	ActionKeepSearch     ActionType = "keep"      // не отменять текущий поиск
	ActionSearchCriteria ActionType = "criteria"  // criteria:<терм> - поиск по критерию с экрана критериев
	ActionCountryInfo    ActionType = "countries" // информационный экран со списком стран
	ActionCriteriaInfo   ActionType = "criteriainfo"
	ActionSetLocale      ActionType = "lang" // lang:<код> - сменить язык сессии
)

// Action - разобранный токен действия
type Action struct {
	Type  ActionType
	Index int    // open, loc
	Delta int    // dist: +-50/+-100; page, locpage: +-1
	Term  string // criteria, lang
}

// Token кодирует действие в строку для транспорта
func (a Action) Token() string {
	switch a.Type {
	case ActionOpenSite, ActionOpenLocation:
		return fmt.Sprintf("%s:%d", a.Type, a.Index)
	case ActionPageResults, ActionPageLocations:
		if a.Delta < 0 {
			return string(a.Type) + ":-"
		}
		return string(a.Type) + ":+"
	case ActionAdjustRadius:
		return fmt.Sprintf("%s:%+d", a.Type, a.Delta)
	case ActionSearchCriteria, ActionSetLocale:
		return fmt.Sprintf("%s:%s", a.Type, a.Term)
	default:
		return string(a.Type)
	}
}

// ParseAction разбирает токен действия. Неизвестный тип или некорректный
// аргумент - ошибка, частично разобранных действий не бывает.
func ParseAction(token string) (Action, error) {
	name, arg, hasArg := strings.Cut(token, ":")

	switch ActionType(name) {
	case ActionShowResults, ActionShowLocations, ActionHome,
		ActionKeepSearch, ActionCountryInfo, ActionCriteriaInfo:
		if hasArg {
			return Action{}, fmt.Errorf("action %q takes no argument", name)
		}
		return Action{Type: ActionType(name)}, nil

	case ActionOpenSite, ActionOpenLocation:
		idx, err := strconv.Atoi(arg)
		if err != nil || idx < 0 {
			return Action{}, fmt.Errorf("action %q: bad index %q", name, arg)
		}
		return Action{Type: ActionType(name), Index: idx}, nil

	case ActionPageResults, ActionPageLocations:
		switch arg {
		case "+":
			return Action{Type: ActionType(name), Delta: 1}, nil
		case "-":
			return Action{Type: ActionType(name), Delta: -1}, nil
		}
		return Action{}, fmt.Errorf("action %q: bad direction %q", name, arg)

	case ActionAdjustRadius:
		delta, err := strconv.Atoi(arg)
		if err != nil {
			return Action{}, fmt.Errorf("action %q: bad delta %q", name, arg)
		}
		switch delta {
		case 50, 100, -50, -100:
			return Action{Type: ActionAdjustRadius, Delta: delta}, nil
		}
		return Action{}, fmt.Errorf("action %q: delta %d not allowed", name, delta)

	case ActionSearchCriteria, ActionSetLocale:
		if arg == "" {
			return Action{}, fmt.Errorf("action %q requires an argument", name)
		}
		return Action{Type: ActionType(name), Term: arg}, nil
	}

	return Action{}, fmt.Errorf("unknown action %q", token)
}
