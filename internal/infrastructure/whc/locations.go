package whc

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/heritage-catalog-service/internal/domain"
)

// loadLocationsCSV читает файл с полными списками локаций объектов.
// Колонки: siteID;name;latitude;longitude;countryEN;countryRU - название страны
// берётся в колонке нужного языка. Файл покрывает только объекты с несколькими
// локациями, для остальных достаточно координат из XML.
func loadLocationsCSV(path, locale string) (map[string][]domain.SiteLocation, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Файла может не быть: тогда у всех объектов будет одна локация
			return map[string][]domain.SiteLocation{}, nil
		}
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) < 2 {
		return map[string][]domain.SiteLocation{}, nil
	}

	header := records[0]
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	countryColumn := "country" + strings.ToUpper(locale)
	if _, ok := col[countryColumn]; !ok {
		countryColumn = "countryEN"
	}

	locations := make(map[string][]domain.SiteLocation)
	for _, rec := range records[1:] {
		siteID := field(rec, col, "siteID")
		if siteID == "" {
			continue
		}

		lat, err := strconv.ParseFloat(field(rec, col, "latitude"), 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(field(rec, col, "longitude"), 64)
		if err != nil {
			continue
		}

		locations[siteID] = append(locations[siteID], domain.SiteLocation{
			Name:      field(rec, col, "name"),
			Latitude:  lat,
			Longitude: lon,
			Country:   field(rec, col, countryColumn),
		})
	}
	return locations, nil
}

func field(rec []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
