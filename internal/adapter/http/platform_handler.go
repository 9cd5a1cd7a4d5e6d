package http

import (
	"net/http"

	platformUC "credentia/internal/usecase/platform"

	"github.com/labstack/echo/v4"
)

type PlatformHandler struct{ uc *platformUC.Usecase }

func NewPlatformHandler(uc *platformUC.Usecase) *PlatformHandler {
	return &PlatformHandler{uc: uc}
}

type initializePlatformReq struct {
	Authority string `json:"authority" validate:"required,hex32"`
	FeeBps    uint16 `json:"fee_bps"   validate:"lte=10000"`
}

func (h *PlatformHandler) InitializePlatform(c echo.Context) error {
	var req initializePlatformReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Initialize(c.Request().Context(), platformUC.InitializeInput{
		Authority: req.Authority,
		FeeBps:    req.FeeBps,
	})
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *PlatformHandler) GetPlatform(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context())
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}
