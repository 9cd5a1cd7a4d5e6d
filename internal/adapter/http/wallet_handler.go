package http

import (
	"net/http"

	walletUC "credentia/internal/usecase/wallet"

	"github.com/labstack/echo/v4"
)

// WalletHandler exposes the ledger substrate's own surface: registering
// accounts and collateral units. The lifecycle endpoints never touch these
// routes.
type WalletHandler struct{ uc *walletUC.Usecase }

func NewWalletHandler(uc *walletUC.Usecase) *WalletHandler { return &WalletHandler{uc: uc} }

type createAccountReq struct {
	OwnerID string `json:"owner_id" validate:"required,hex32"`
	Balance uint64 `json:"balance"`
}

func (h *WalletHandler) CreateAccount(c echo.Context) error {
	var req createAccountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	acc, err := h.uc.CreateAccount(c.Request().Context(), walletUC.CreateAccountInput{
		OwnerID: req.OwnerID,
		Balance: req.Balance,
	})
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, acc)
}

func (h *WalletHandler) GetAccount(c echo.Context) error {
	acc, err := h.uc.GetAccount(c.Request().Context(), c.Param("owner_id"))
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, acc)
}

type registerCollateralReq struct {
	OwnerID      string `json:"owner_id"      validate:"required,hex32"`
	CollectionID string `json:"collection_id" validate:"required,hex32"`
	Verified     bool   `json:"verified"`
}

func (h *WalletHandler) RegisterCollateral(c echo.Context) error {
	var req registerCollateralReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	col, err := h.uc.RegisterCollateral(c.Request().Context(), walletUC.RegisterCollateralInput{
		OwnerID:      req.OwnerID,
		CollectionID: req.CollectionID,
		Verified:     req.Verified,
	})
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, col)
}

func (h *WalletHandler) GetCollateral(c echo.Context) error {
	col, err := h.uc.GetCollateral(c.Request().Context(), c.Param("collateral_id"))
	if err != nil {
		return c.JSON(errStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, col)
}
