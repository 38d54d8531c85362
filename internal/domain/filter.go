package domain

import "strings"

// Разделители составной строки фильтра.
// Запятая сужает поиск (AND), плюс расширяет (OR).
const (
	AndSeparator = ","
	OrSeparator  = "+"
)

// Filter - двухуровневая структура поискового фильтра: список OR-групп,
// каждая из которых содержит список AND-термов. Объект подходит под фильтр,
// если удовлетворяет всем термам хотя бы одной группы.
//
// Известное ограничение: разделители внутри терма не экранируются и всегда
// трактуются как разделители, пустые фрагменты отбрасываются при разборе.
type Filter struct {
	Groups [][]string
}

// ParseFilter разбирает составную строку в структуру фильтра
func ParseFilter(s string) Filter {
	var f Filter
	for _, part := range splitTrimmed(s, OrSeparator) {
		terms := splitTrimmed(part, AndSeparator)
		if len(terms) > 0 {
			f.Groups = append(f.Groups, terms)
		}
	}
	return f
}

// String сериализует фильтр обратно в составную строку
func (f Filter) String() string {
	parts := make([]string, 0, len(f.Groups))
	for _, g := range f.Groups {
		parts = append(parts, strings.Join(g, AndSeparator))
	}
	return strings.Join(parts, OrSeparator)
}

func (f Filter) Empty() bool {
	return len(f.Groups) == 0
}

// Display заменяет разделители на локализованные слова. Используется только
// для показа пользователю, сохранённый текст фильтра не меняет.
func (f Filter) Display(andWord, orWord string) string {
	s := f.String()
	s = strings.ReplaceAll(s, OrSeparator, orWord)
	s = strings.ReplaceAll(s, AndSeparator, andWord)
	return s
}

// AppendTerm добавляет очередной пользовательский ввод к составной строке фильтра.
// Ввод, начинающийся с маркера OR, добавляет новую OR-группу; любой другой ввод
// сужает поиск, добавляя AND-терм в каждую существующую группу.
// Сам разбор здесь не выполняется - функция только переписывает строку.
func AppendTerm(existing, raw string) string {
	if existing == "" {
		return raw
	}

	// расширение поиска: маркер уже содержится в начале ввода
	if strings.HasPrefix(raw, OrSeparator) {
		return existing + raw
	}

	// сужение: новый терм дописывается в каждую OR-группу
	parts := strings.Split(existing, OrSeparator)
	for i, p := range parts {
		parts[i] = p + AndSeparator + raw
	}
	return strings.Join(parts, OrSeparator)
}

// splitTrimmed режет строку по разделителю, обрезает пробелы и выбрасывает
// пустые фрагменты (случайный ввод вида "something,,other")
func splitTrimmed(s, sep string) []string {
	var out []string
	for _, item := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
