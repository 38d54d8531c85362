package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/heritage-catalog-service/internal/domain"
	"github.com/heritage-catalog-service/internal/domain/repository"
)

// siteRepository - каталог объектов в PostgreSQL.
// Схема: heritage_sites (ref_id, locale, name, year, category, region,
// criteria text[], country text[], description, url, no_info) и
// site_locations (site_id, position, name, latitude, longitude, country).
type siteRepository struct {
	db *DB
}

func NewSiteRepository(db *DB) repository.CatalogRepository {
	return &siteRepository{db: db}
}

// siteRow - строка heritage_sites; массивы сканируются через pq.Array
type siteRow struct {
	ID          int64          `db:"id"`
	Locale      string         `db:"locale"`
	RefID       string         `db:"ref_id"`
	Name        string         `db:"name"`
	Year        int            `db:"year"`
	Category    string         `db:"category"`
	Region      string         `db:"region"`
	Criteria    pq.StringArray `db:"criteria"`
	Country     pq.StringArray `db:"country"`
	Description string         `db:"description"`
	URL         string         `db:"url"`
	NoInfo      bool           `db:"no_info"`
}

type locationRow struct {
	SiteID    int64   `db:"site_id"`
	Name      string  `db:"name"`
	Latitude  float64 `db:"latitude"`
	Longitude float64 `db:"longitude"`
	Country   string  `db:"country"`
}

func (r *siteRepository) LoadByLocale(ctx context.Context, locale string) ([]domain.Site, error) {
	const sitesQuery = `
		SELECT id, locale, ref_id, name, year, category, region,
		       criteria, country, description, url, no_info
		FROM heritage_sites
		WHERE locale = $1
		ORDER BY id`

	var rows []siteRow
	if err := r.db.SelectContext(ctx, &rows, sitesQuery, locale); err != nil {
		return nil, fmt.Errorf("failed to load sites for locale %s: %w", locale, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	const locationsQuery = `
		SELECT l.site_id, l.name, l.latitude, l.longitude, l.country
		FROM site_locations l
		JOIN heritage_sites s ON s.id = l.site_id
		WHERE s.locale = $1
		ORDER BY l.site_id, l.position`

	var locRows []locationRow
	if err := r.db.SelectContext(ctx, &locRows, locationsQuery, locale); err != nil {
		return nil, fmt.Errorf("failed to load site locations for locale %s: %w", locale, err)
	}

	locationsBySite := make(map[int64][]domain.SiteLocation, len(rows))
	for _, lr := range locRows {
		locationsBySite[lr.SiteID] = append(locationsBySite[lr.SiteID], domain.SiteLocation{
			Name:      lr.Name,
			Latitude:  lr.Latitude,
			Longitude: lr.Longitude,
			Country:   lr.Country,
		})
	}

	sites := make([]domain.Site, 0, len(rows))
	for _, row := range rows {
		sites = append(sites, domain.Site{
			ID:        row.ID,
			Locale:    row.Locale,
			RefID:     row.RefID,
			Name:      row.Name,
			Year:      row.Year,
			Category:  row.Category,
			Region:    row.Region,
			Criteria:  []string(row.Criteria),
			Country:   []string(row.Country),
			Text:      row.Description,
			URL:       row.URL,
			NoInfo:    row.NoInfo,
			Locations: locationsBySite[row.ID],
		})
	}
	return sites, nil
}

func (r *siteRepository) ReplaceLocale(ctx context.Context, locale string, sites []domain.Site) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// site_locations чистится каскадом по внешнему ключу
	if _, err := tx.ExecContext(ctx, `DELETE FROM heritage_sites WHERE locale = $1`, locale); err != nil {
		return fmt.Errorf("failed to clear catalog for locale %s: %w", locale, err)
	}

	const insertSite = `
		INSERT INTO heritage_sites
			(locale, ref_id, name, year, category, region, criteria, country, description, url, no_info)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	const insertLocation = `
		INSERT INTO site_locations (site_id, position, name, latitude, longitude, country)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for _, site := range sites {
		var id int64
		err := tx.QueryRowxContext(ctx, insertSite,
			locale, site.RefID, site.Name, site.Year, site.Category, site.Region,
			pq.Array(site.Criteria), pq.Array(site.Country),
			site.Text, site.URL, site.NoInfo,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert site %s: %w", site.RefID, err)
		}

		for pos, loc := range site.Locations {
			if _, err := tx.ExecContext(ctx, insertLocation,
				id, pos, loc.Name, loc.Latitude, loc.Longitude, loc.Country,
			); err != nil {
				return fmt.Errorf("failed to insert location for site %s: %w", site.RefID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog replace: %w", err)
	}
	return nil
}

func (r *siteRepository) CountByLocale(ctx context.Context, locale string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM heritage_sites WHERE locale = $1`, locale)
	if err != nil {
		return 0, fmt.Errorf("failed to count sites for locale %s: %w", locale, err)
	}
	return count, nil
}
