package locale

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables/*.yaml
var tablesFS embed.FS

// StringTable - локализованные строки интерфейса одного языка.
// Плейсхолдеры вида %count%, %km%, %start% подставляются при построении экрана.
type StringTable struct {
	Name    string  `yaml:"name"`
	Words   Words   `yaml:"words"`
	Buttons Buttons `yaml:"buttons"`
	Strings Strings `yaml:"strings"`
}

// Words - слова для показа фильтра пользователю вместо служебных разделителей
type Words struct {
	And string `yaml:"and"`
	Or  string `yaml:"or"`
}

type Buttons struct {
	ShowList   string `yaml:"show_list"`
	ShowSingle string `yaml:"show_single"`
	NewSearch  string `yaml:"new_search"`
	Back       string `yaml:"back"`
	ToList     string `yaml:"to_list"`
	ToDetails  string `yaml:"to_details"`
	Locations  string `yaml:"locations"`
	CancelYes  string `yaml:"cancel_yes"`
	CancelNo   string `yaml:"cancel_no"`
	Countries  string `yaml:"countries"`
	Criteria   string `yaml:"criteria"`
	Km         string `yaml:"km"`
}

type Strings struct {
	Greeting          string `yaml:"greeting"`
	EmptySearch       string `yaml:"empty_search"`
	NoResults         string `yaml:"no_results"`
	NoResultsLocation string `yaml:"no_results_location"`
	TooNarrow         string `yaml:"too_narrow"`
	Found             string `yaml:"found"`
	Request           string `yaml:"request"`
	RequestGPS        string `yaml:"request_gps"`
	Nearest           string `yaml:"nearest"`
	RadiusHint        string `yaml:"radius_hint"`
	RefineHint        string `yaml:"refine_hint"`
	Window            string `yaml:"window"`
	Year              string `yaml:"year"`
	Criteria          string `yaml:"criteria"`
	Country           string `yaml:"country"`
	Distance          string `yaml:"distance"`
	PressDetails      string `yaml:"press_details"`
	CancelConfirm     string `yaml:"cancel_confirm"`
	NoLangInfo        string `yaml:"no_lang_info"`
	Coordinates       string `yaml:"coordinates"`
	OneLocation       string `yaml:"one_location"`
	LocationShown     string `yaml:"location_shown"`
	CriteriaInfo      string `yaml:"criteria_info"`
}

// Load читает таблицу строк для языка из встроенных файлов
func Load(code string) (*StringTable, error) {
	data, err := tablesFS.ReadFile(fmt.Sprintf("tables/%s.yaml", strings.ToLower(code)))
	if err != nil {
		return nil, fmt.Errorf("locale %q is not available: %w", code, err)
	}

	var table StringTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse locale %q: %w", code, err)
	}
	return &table, nil
}

// LoadAll загружает все встроенные таблицы, ключ - код языка в верхнем регистре
func LoadAll() (map[string]*StringTable, error) {
	entries, err := tablesFS.ReadDir("tables")
	if err != nil {
		return nil, err
	}

	tables := make(map[string]*StringTable, len(entries))
	for _, e := range entries {
		code := strings.ToUpper(strings.TrimSuffix(e.Name(), ".yaml"))
		table, err := Load(code)
		if err != nil {
			return nil, err
		}
		tables[code] = table
	}
	return tables, nil
}

// Supported возвращает отсортированные коды доступных языков
func Supported() []string {
	entries, err := tablesFS.ReadDir("tables")
	if err != nil {
		return nil
	}
	codes := make([]string, 0, len(entries))
	for _, e := range entries {
		codes = append(codes, strings.ToUpper(strings.TrimSuffix(e.Name(), ".yaml")))
	}
	sort.Strings(codes)
	return codes
}

// Fill подставляет значения в плейсхолдеры вида %name%
func Fill(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "%"+k+"%", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
