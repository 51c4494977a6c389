package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/casinoradar/casinoradar/app/dto"
	"github.com/casinoradar/casinoradar/app/middleware"
	"github.com/casinoradar/casinoradar/app/services"
	businessflow "github.com/casinoradar/casinoradar/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportFlow struct {
	businessflow.CasinoReportFlow

	submitErr    error
	submittedReq *dto.CreateReportRequest
	listErr      error
}

func (f *fakeReportFlow) Submit(ctx context.Context, req *dto.CreateReportRequest, metadata *businessflow.ClientMetadata) (*dto.ReportDTO, error) {
	f.submittedReq = req
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &dto.ReportDTO{ID: 1, CasinoName: req.CasinoName, ReporterEmail: req.ReporterEmail}, nil
}

func (f *fakeReportFlow) List(ctx context.Context, page, limit int, status string) (*dto.ListReportsResponse, error) {
	return nil, f.listErr
}

type fakeHomepageFlow struct {
	businessflow.HomepageFlow

	upsertErr error
}

func (f *fakeHomepageFlow) Upsert(ctx context.Context, req *dto.HomepageUpsertRequest, actor *businessflow.AdminInfo, metadata *businessflow.ClientMetadata) error {
	return f.upsertErr
}

type fakeAlertFlow struct {
	businessflow.SecurityAlertFlow

	listErr error
}

func (f *fakeAlertFlow) List(ctx context.Context, unresolvedOnly bool, limit, offset int) (*dto.ListAlertsResponse, error) {
	return nil, f.listErr
}

type allowAllPermissions struct {
	businessflow.PermissionFlow
}

func (allowAllPermissions) HasPermission(ctx context.Context, userID, permissionName string) bool {
	return true
}

func (allowAllPermissions) HasPermissionSync(info *businessflow.AdminInfo, permissionName string) bool {
	return true
}

func asAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Locals("admin_info", &businessflow.AdminInfo{
			IsAdmin:     true,
			AdminUserID: 1,
			UserID:      "auth0|admin",
			Email:       "admin@example.com",
		})
		return c.Next()
	}
}

type decodedAPIResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    any             `json:"data,omitempty"`
	Error   dto.ErrorDetail `json:"error,omitempty"`
}

func decodeResponse(t *testing.T, body io.Reader) decodedAPIResponse {
	t.Helper()
	var resp decodedAPIResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func storageDown(code string) error {
	return businessflow.NewBusinessError(code, "storage down", businessflow.ErrStorageUnavailable)
}

func TestStorageOutageMapsToServiceUnavailable(t *testing.T) {
	t.Run("AdminReportList", func(t *testing.T) {
		h := NewCasinoReportAdminHandler(&fakeReportFlow{listErr: storageDown("REPORT_LIST_FAILED")}, allowAllPermissions{})
		app := fiber.New()
		app.Get("/admin/casino-reports", asAdmin(), h.ListReports)

		res, err := app.Test(httptest.NewRequest("GET", "/admin/casino-reports", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, res.StatusCode)
		assert.Equal(t, "60", res.Header.Get("Retry-After"))
		resp := decodeResponse(t, res.Body)
		assert.Equal(t, "DB_CONNECTION_ERROR", resp.Error.Code)
	})

	t.Run("HomepageUpsert", func(t *testing.T) {
		h := NewHomepageHandler(&fakeHomepageFlow{upsertErr: storageDown("HOMEPAGE_UPDATE_FAILED")}, allowAllPermissions{})
		app := fiber.New()
		app.Post("/homepage", asAdmin(), h.UpsertHomepage)

		body := `{"type":"statistic","data":{"label":"Casinos reviewed","value":"1200"}}`
		req := httptest.NewRequest("POST", "/homepage", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, res.StatusCode)
		assert.Equal(t, "60", res.Header.Get("Retry-After"))
		resp := decodeResponse(t, res.Body)
		assert.Equal(t, "DB_CONNECTION_ERROR", resp.Error.Code)
	})

	t.Run("AlertList", func(t *testing.T) {
		h := NewMonitoringAdminHandler(allowAllPermissions{}, nil, &fakeAlertFlow{listErr: storageDown("ALERT_LIST_FAILED")})
		app := fiber.New()
		app.Get("/admin/monitoring/alerts", asAdmin(), h.ListAlerts)

		res, err := app.Test(httptest.NewRequest("GET", "/admin/monitoring/alerts", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, res.StatusCode)
		assert.Equal(t, "60", res.Header.Get("Retry-After"))
		resp := decodeResponse(t, res.Body)
		assert.Equal(t, "DB_CONNECTION_ERROR", resp.Error.Code)
	})

	t.Run("PublicSubmit", func(t *testing.T) {
		h := NewReportHandler(&fakeReportFlow{submitErr: storageDown("REPORT_SUBMISSION_FAILED")})
		app := fiber.New()
		app.Post("/reports", h.SubmitReport)

		body := `{"casino_name":"Lucky Spin","status":"Scam Indicated","summary":"Withheld a withdrawal"}`
		req := httptest.NewRequest("POST", "/reports", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, res.StatusCode)
		assert.Equal(t, "60", res.Header.Get("Retry-After"))
		resp := decodeResponse(t, res.Body)
		assert.Equal(t, "DB_CONNECTION_ERROR", resp.Error.Code)
	})
}

func TestUnclassifiedErrorsStayInternal(t *testing.T) {
	h := NewCasinoReportAdminHandler(&fakeReportFlow{listErr: businessflow.NewBusinessError("REPORT_LIST_FAILED", "boom", nil)}, allowAllPermissions{})
	app := fiber.New()
	app.Get("/admin/casino-reports", asAdmin(), h.ListReports)

	res, err := app.Test(httptest.NewRequest("GET", "/admin/casino-reports", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)
	assert.Empty(t, res.Header.Get("Retry-After"))
	resp := decodeResponse(t, res.Body)
	assert.Equal(t, "REPORT_LIST_FAILED", resp.Error.Code)
}

func TestSubmitReportAttribution(t *testing.T) {
	tokenService, err := services.NewTokenService("https://auth.casinoradar.test/", "casinoradar-api", false, "", "", "attribution-test-secret")
	require.NoError(t, err)
	authMiddleware := middleware.NewAuthMiddleware(tokenService, allowAllPermissions{})

	newApp := func(flow *fakeReportFlow) *fiber.App {
		h := NewReportHandler(flow)
		app := fiber.New()
		app.Post("/reports", authMiddleware.OptionalAuth(), h.SubmitReport)
		return app
	}

	submit := func(t *testing.T, app *fiber.App, body, token string) {
		t.Helper()
		req := httptest.NewRequest("POST", "/reports", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, res.StatusCode)
	}

	body := `{"casino_name":"Lucky Spin","status":"Scam Indicated","summary":"Withheld a withdrawal"}`

	t.Run("SessionEmailFillsMissingReporter", func(t *testing.T) {
		flow := &fakeReportFlow{}
		app := newApp(flow)
		token, err := tokenService.GenerateSessionToken("auth0|reader", "reader@example.com", time.Hour)
		require.NoError(t, err)

		submit(t, app, body, token)
		require.NotNil(t, flow.submittedReq)
		assert.Equal(t, "reader@example.com", flow.submittedReq.ReporterEmail)
	})

	t.Run("ExplicitReporterWins", func(t *testing.T) {
		flow := &fakeReportFlow{}
		app := newApp(flow)
		token, err := tokenService.GenerateSessionToken("auth0|reader", "reader@example.com", time.Hour)
		require.NoError(t, err)

		withReporter := `{"casino_name":"Lucky Spin","reporter_email":"named@example.com","status":"Scam Indicated","summary":"Withheld a withdrawal"}`
		submit(t, app, withReporter, token)
		require.NotNil(t, flow.submittedReq)
		assert.Equal(t, "named@example.com", flow.submittedReq.ReporterEmail)
	})

	t.Run("AnonymousStaysAnonymous", func(t *testing.T) {
		flow := &fakeReportFlow{}
		app := newApp(flow)

		submit(t, app, body, "")
		require.NotNil(t, flow.submittedReq)
		assert.Empty(t, flow.submittedReq.ReporterEmail)
	})

	t.Run("BadTokenStillSubmitsAnonymously", func(t *testing.T) {
		flow := &fakeReportFlow{}
		app := newApp(flow)

		submit(t, app, body, "not-a-token")
		require.NotNil(t, flow.submittedReq)
		assert.Empty(t, flow.submittedReq.ReporterEmail)
	})
}
