package whc

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/heritage-catalog-service/internal/config"
	"github.com/heritage-catalog-service/internal/domain"
	"github.com/heritage-catalog-service/internal/domain/repository"
)

// client скачивает список объектов с whc.unesco.org.
// XML списка содержит только одну локацию на объект; полный список локаций
// берётся из сопровождающего CSV-файла (см. locations.go).
type client struct {
	httpClient *http.Client
	listURL    string
	csvPath    string
	logger     *zap.Logger
}

func NewClient(cfg *config.CatalogConfig, logger *zap.Logger) repository.SiteSourceRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		listURL: cfg.WHCListURL,
		csvPath: cfg.LocationsCSV,
		logger:  logger,
	}
}

var criteriaPattern = regexp.MustCompile(`\((?:i+v*|vi*|i*x)\)`)

// Спецсимволы вида &nbsp;, которые не раскрылись при разборе
var entityPattern = regexp.MustCompile(`&#?[a-z0-9]+;`)

// Замены названий стран: в выгрузке встречаются формулировки,
// которыми никто не пользуется при поиске
var countryExceptions = map[string]string{
	"Jerusalem (Site proposed by Jordan)": "Israel",
	"Holy See":                            "Vatican (Holy See)",
	"Иерусалим (объект, предложенный Иорданией)": "Израиль",
	"*Святой Престол": "Ватикан (Святой Престол)",
}

func (c *client) FetchSites(ctx context.Context, locale string) ([]domain.Site, error) {
	locations, err := loadLocationsCSV(c.csvPath, locale)
	if err != nil {
		return nil, fmt.Errorf("failed to load locations csv: %w", err)
	}

	url := fmt.Sprintf(c.listURL, strings.ToLower(locale))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch site list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("site list request returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse site list: %w", err)
	}

	sites := parseList(doc, locale, locations)

	c.logger.Info("Fetched site list",
		zap.String("locale", locale),
		zap.String("url", url),
		zap.Int("sites", len(sites)))

	return sites, nil
}

// parseList собирает объекты из разобранного XML списка
func parseList(doc *goquery.Document, locale string, locations map[string][]domain.SiteLocation) []domain.Site {
	var sites []domain.Site

	doc.Find("row").Each(func(_ int, row *goquery.Selection) {
		name := cleanText(row.Find("site").Text())
		refID := cleanText(row.Find("id_number").Text())
		if refID == "" {
			return
		}

		countries := splitCountries(cleanText(row.Find("states").Text()))

		// По умолчанию - единственная локация из XML
		siteLocations := locations[refID]
		if len(siteLocations) == 0 {
			lat, _ := strconv.ParseFloat(cleanText(row.Find("latitude").Text()), 64)
			lon, _ := strconv.ParseFloat(cleanText(row.Find("longitude").Text()), 64)
			country := ""
			if len(countries) > 0 {
				country = countries[0]
			}
			siteLocations = []domain.SiteLocation{{
				Name:      name,
				Latitude:  lat,
				Longitude: lon,
				Country:   country,
			}}
		}

		year, _ := strconv.Atoi(cleanText(row.Find("date_inscribed").Text()))

		sites = append(sites, domain.Site{
			Locale:    locale,
			RefID:     refID,
			Name:      name,
			Year:      year,
			Category:  cleanText(row.Find("category").Text()),
			Region:    cleanText(row.Find("region").Text()),
			Criteria:  criteriaPattern.FindAllString(row.Find("criteria_txt").Text(), -1),
			Country:   countries,
			Text:      cleanText(row.Find("short_description").Text()),
			URL:       cleanText(row.Find("http_url").Text()),
			Locations: siteLocations,
		})
	})

	return sites
}

func splitCountries(states string) []string {
	parts := strings.Split(states, ",")
	countries := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			countries = append(countries, trimmed)
		}
	}
	sort.Strings(countries)
	return countries
}

func cleanText(s string) string {
	s = entityPattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	for from, to := range countryExceptions {
		s = strings.ReplaceAll(s, from, to)
	}
	return s
}
