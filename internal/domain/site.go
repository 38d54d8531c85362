package domain

import (
	"strconv"
	"strings"
)

// CriteriaCodes - десять критериев отбора ЮНЕСКО в исходном формате сайта
var CriteriaCodes = [10]string{
	"(i)", "(ii)", "(iii)", "(iv)", "(v)",
	"(vi)", "(vii)", "(viii)", "(ix)", "(x)",
}

// TranslateCriteriaShorthand - число от 1 до 10 превращается в код критерия,
// любой другой ввод возвращается как есть
func TranslateCriteriaShorthand(raw string) string {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > len(CriteriaCodes) {
		return raw
	}
	return CriteriaCodes[n-1]
}

// Site - объект каталога для одного языка.
// Снимок каталога неизменяем на всё время жизни сессии.
type Site struct {
	ID       int64          `json:"id" db:"id"`
	Locale   string         `json:"locale" db:"locale"`
	RefID    string         `json:"ref_id" db:"ref_id"`
	Name     string         `json:"name" db:"name"`
	Year     int            `json:"year" db:"year"`
	Category string         `json:"category" db:"category"`
	Region   string         `json:"region" db:"region"`
	Criteria []string       `json:"criteria" db:"-"`
	Country  []string       `json:"country" db:"-"`
	Text     string         `json:"text" db:"description"`
	URL      string         `json:"url" db:"url"`
	NoInfo   bool           `json:"no_info" db:"no_info"`
	Locations []SiteLocation `json:"locations" db:"-"`
}

// SiteLocation - одна из физических локаций объекта. У каждого объекта их минимум одна.
type SiteLocation struct {
	Name      string  `json:"name" db:"name"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
	Country   string  `json:"country" db:"country"`
}

// SearchableValues возвращает строковые представления полей, по которым идёт
// текстовый поиск. Локации, описание, язык, внутренний id, URL и флаг fallback
// в поиске не участвуют.
func (s *Site) SearchableValues() []string {
	return []string{
		s.RefID,
		s.Name,
		strconv.Itoa(s.Year),
		s.Category,
		s.Region,
		strings.Join(s.Criteria, ","),
		strings.Join(s.Country, ","),
	}
}

// MatchesTerm проверяет вхождение подстроки без учёта регистра в любое из
// searchable-полей объекта
func (s *Site) MatchesTerm(term string) bool {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return false
	}
	for _, v := range s.SearchableValues() {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}
