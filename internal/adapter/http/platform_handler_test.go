package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"credentia/internal/testutil/memuow"
	platformUC "credentia/internal/usecase/platform"
	"credentia/pkg/id"

	"github.com/labstack/echo/v4"
)

func newPlatformHandler() (*echo.Echo, *PlatformHandler) {
	e := newEchoWithValidator()
	return e, NewPlatformHandler(platformUC.NewUsecase(memuow.New()))
}

func TestInitializePlatform_Created(t *testing.T) {
	e, h := newPlatformHandler()

	req := httptest.NewRequest(stdhttp.MethodPost, "/platform", mustJSON(map[string]any{
		"authority": id.NewID32(),
		"fee_bps":   500,
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.InitializePlatform(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}
	var got platformUC.PlatformDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.FeeBps != 500 || got.TreasuryID == "" {
		t.Fatalf("unexpected dto: %+v", got)
	}
}

func TestInitializePlatform_SecondCallConflict(t *testing.T) {
	e, h := newPlatformHandler()

	for i, want := range []int{stdhttp.StatusCreated, stdhttp.StatusConflict} {
		req := httptest.NewRequest(stdhttp.MethodPost, "/platform", mustJSON(map[string]any{
			"authority": id.NewID32(),
			"fee_bps":   100,
		}))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		if err := h.InitializePlatform(e.NewContext(req, rec)); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if rec.Code != want {
			t.Fatalf("call %d status = %d, want %d", i, rec.Code, want)
		}
	}
}

func TestInitializePlatform_FeeOverCap(t *testing.T) {
	e, h := newPlatformHandler()

	req := httptest.NewRequest(stdhttp.MethodPost, "/platform", mustJSON(map[string]any{
		"authority": id.NewID32(),
		"fee_bps":   10_001,
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.InitializePlatform(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body=%s", rec.Code, rec.Body.String())
	}
}

func TestGetPlatform_BeforeInitializeConflict(t *testing.T) {
	e, h := newPlatformHandler()

	req := httptest.NewRequest(stdhttp.MethodGet, "/platform", nil)
	rec := httptest.NewRecorder()
	if err := h.GetPlatform(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409; body=%s", rec.Code, rec.Body.String())
	}
}
