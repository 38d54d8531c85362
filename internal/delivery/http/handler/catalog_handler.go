package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/heritage-catalog-service/internal/locale"
	"github.com/heritage-catalog-service/internal/pkg/utils"
	"github.com/heritage-catalog-service/internal/usecase"
	"github.com/heritage-catalog-service/internal/usecase/dto"
)

// CatalogHandler - обработчик справочных запросов по каталогу
type CatalogHandler struct {
	catalogUC *usecase.CatalogUseCase
	logger    *zap.Logger
}

// NewCatalogHandler - создание нового CatalogHandler
func NewCatalogHandler(catalogUC *usecase.CatalogUseCase, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: catalogUC,
		logger:    logger,
	}
}

// Countries godoc
// @Summary Страны каталога
// @Description Возвращает страны с количеством объектов, по убыванию количества. Трансграничный объект учитывается в каждой из своих стран.
// @Tags Catalog
// @Produce json
// @Param locale query string false "Язык каталога" default(EN)
// @Success 200 {object} utils.SuccessResponse{data=dto.CountryListResponse}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/catalog/countries [get]
func (h *CatalogHandler) Countries(c *fiber.Ctx) error {
	loc := c.Query("locale", "EN")

	stats, err := h.catalogUC.CountryStats(c.Context(), loc)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.CountryListResponse{
		Countries: stats,
		Total:     len(stats),
	}, nil)
}

// Locales godoc
// @Summary Доступные языки
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]string}
// @Router /api/v1/catalog/locales [get]
func (h *CatalogHandler) Locales(c *fiber.Ctx) error {
	return utils.SendSuccess(c, locale.Supported(), nil)
}
