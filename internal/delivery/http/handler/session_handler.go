package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/heritage-catalog-service/internal/pkg/errors"
	"github.com/heritage-catalog-service/internal/pkg/utils"
	"github.com/heritage-catalog-service/internal/pkg/validator"
	"github.com/heritage-catalog-service/internal/usecase"
	"github.com/heritage-catalog-service/internal/usecase/dto"
)

// SessionHandler - обработчик диалоговых сессий поиска
type SessionHandler struct {
	sessionUC *usecase.SessionUseCase
	logger    *zap.Logger
}

// NewSessionHandler - создание нового SessionHandler
func NewSessionHandler(sessionUC *usecase.SessionUseCase, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUC: sessionUC,
		logger:    logger,
	}
}

// Start godoc
// @Summary Создание сессии поиска
// @Description Создаёт новую диалоговую сессию и возвращает стартовый экран с кнопками
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body dto.StartSessionRequest false "Язык сессии (по умолчанию EN)"
// @Success 200 {object} utils.SuccessResponse{data=dto.ScreenView}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/sessions [post]
func (h *SessionHandler) Start(c *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, apperrors.ErrInvalidRequest)
		}
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, validationError(err))
	}

	view, err := h.sessionUC.StartSession(c.Context(), req.Locale)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, view, nil)
}

// GetView godoc
// @Summary Текущий экран сессии
// @Description Возвращает экран, соответствующий сохранённой фазе диалога. Состояние сессии не меняется.
// @Tags Sessions
// @Produce json
// @Param id path string true "Идентификатор сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.ScreenView}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (h *SessionHandler) GetView(c *fiber.Ctx) error {
	view, err := h.sessionUC.GetView(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, view, nil)
}

// Delete godoc
// @Summary Удаление сессии
// @Tags Sessions
// @Produce json
// @Param id path string true "Идентификатор сессии"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/sessions/{id} [delete]
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	if err := h.sessionUC.ResetSession(c.Context(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}

// SubmitText godoc
// @Summary Текстовый ввод
// @Description Дописывает терм к поисковому фильтру и перевычисляет поиск. Ввод, начинающийся с "+", расширяет поиск, остальной ввод сужает. В фазах просмотра результатов возвращает экран подтверждения отмены поиска.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Идентификатор сессии"
// @Param request body dto.TextRequest true "Текст пользователя"
// @Success 200 {object} utils.SuccessResponse{data=dto.ScreenView}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/text [post]
func (h *SessionHandler) SubmitText(c *fiber.Ctx) error {
	var req dto.TextRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, validationError(err))
	}

	view, err := h.sessionUC.SubmitText(c.Context(), c.Params("id"), req.Text)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, view, nil)
}

// SubmitLocation godoc
// @Summary Геопозиция пользователя
// @Description Запоминает координаты и перевычисляет поиск. Радиус подбирается автоматически, пока пользователь не выставил его кнопками.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Идентификатор сессии"
// @Param request body dto.LocationRequest true "Координаты"
// @Success 200 {object} utils.SuccessResponse{data=dto.ScreenView}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/location [post]
func (h *SessionHandler) SubmitLocation(c *fiber.Ctx) error {
	var req dto.LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, validationError(err))
	}

	view, err := h.sessionUC.SubmitLocation(c.Context(), c.Params("id"), req.Latitude, req.Longitude)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, view, nil)
}

// SubmitAction godoc
// @Summary Нажатие кнопки
// @Description Выполняет действие по токену кнопки. Токен из чужой фазы диалога отклоняется со статусом 409, состояние сессии при этом не меняется.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Идентификатор сессии"
// @Param request body dto.ActionRequest true "Токен действия"
// @Success 200 {object} utils.SuccessResponse{data=dto.ScreenView}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/actions [post]
func (h *SessionHandler) SubmitAction(c *fiber.Ctx) error {
	var req dto.ActionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, validationError(err))
	}

	view, err := h.sessionUC.HandleAction(c.Context(), c.Params("id"), req.Token)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, view, nil)
}

func validationError(err error) error {
	return apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
		"validation": err.Error(),
	})
}
