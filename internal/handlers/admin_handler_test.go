package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/laddalodge/booking-backend/internal/config"
	"github.com/laddalodge/booking-backend/internal/database"
	"github.com/laddalodge/booking-backend/internal/middleware"
	"github.com/laddalodge/booking-backend/internal/models"
	"github.com/laddalodge/booking-backend/internal/services"
	"github.com/laddalodge/booking-backend/pkg/jwt"
	"github.com/laddalodge/booking-backend/pkg/mailer"
)

type adminTestApp struct {
	router *gin.Engine
	ledger *services.LedgerService
	token  string
}

func setupAdminTestApp(t *testing.T) *adminTestApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	hash, err := bcrypt.GenerateFromPassword([]byte("lodge-password"), bcrypt.MinCost)
	require.NoError(t, err)
	adminCfg := config.AdminConfig{Username: "admin", PasswordHash: string(hash)}

	jwtService := jwt.NewService("test-secret", "test-refresh-secret", time.Hour, 24*time.Hour)

	rooms := database.NewMemoryRoomStore()
	for _, room := range models.DefaultRooms() {
		r := room
		require.NoError(t, rooms.Insert(&r))
	}

	settings := database.NewMemorySettingsStore()
	require.NoError(t, settings.Save(&models.AdminSettings{
		ContactPhone: "+27 53 123 4567",
		ContactEmail: "bookings@laddalodge.co.za",
	}))

	availability := services.NewAvailabilityService(database.NewMemoryBlockedDateStore())
	ledger := services.NewLedgerService(rooms, database.NewMemoryBookingStore(), availability)
	notifications := services.NewNotificationService(mailer.NewNoopGateway(logger), logger)

	bookingHandler := NewBookingHandler(ledger, settings, notifications, logger)
	blockedDateHandler := NewBlockedDateHandler(availability, logger)
	adminHandler := NewAdminHandler(settings, rooms, ledger, availability, logger)
	adminAuthHandler := NewAdminAuthHandler(adminCfg, jwtService, 3600, logger)

	router := gin.New()
	admin := router.Group("/api/v1/admin")
	admin.POST("/login", adminAuthHandler.Login)
	admin.POST("/refresh", adminAuthHandler.Refresh)

	protected := admin.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService, logger))
	protected.GET("/bookings", bookingHandler.AdminList)
	protected.DELETE("/bookings/:id", bookingHandler.AdminDelete)
	protected.GET("/blocked-dates", blockedDateHandler.List)
	protected.POST("/blocked-dates", blockedDateHandler.Create)
	protected.DELETE("/blocked-dates/:id", blockedDateHandler.Delete)
	protected.GET("/settings", adminHandler.GetSettings)
	protected.PUT("/settings", adminHandler.SaveSettings)
	protected.GET("/stats", adminHandler.GetStats)

	app := &adminTestApp{router: router, ledger: ledger}
	app.token = app.login(t, "admin", "lodge-password")
	return app
}

func (app *adminTestApp) login(t *testing.T, username, password string) string {
	t.Helper()

	w := app.do(t, "POST", "/api/v1/admin/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func (app *adminTestApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func (app *adminTestApp) createBooking(t *testing.T) *models.Booking {
	t.Helper()

	booking, err := app.ledger.Create(&models.CreateBookingRequest{
		FirstName:     "Thandi",
		LastName:      "Nkosi",
		Email:         "thandi@example.com",
		Phone:         "0821234567",
		NationalID:    "8001015009087",
		Address:       "12 Protea Street, Clarens",
		RoomTypeID:    models.RoomTypeFamily,
		CheckinDate:   "2024-07-01",
		CheckoutDate:  "2024-07-04",
		GuestCount:    2,
		PaymentMethod: "eft",
	})
	require.NoError(t, err)
	return booking
}

func TestAdminLogin(t *testing.T) {
	app := setupAdminTestApp(t)

	t.Run("Wrong Password", func(t *testing.T) {
		w := app.do(t, "POST", "/api/v1/admin/login", "", map[string]string{
			"username": "admin",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Wrong Username", func(t *testing.T) {
		w := app.do(t, "POST", "/api/v1/admin/login", "", map[string]string{
			"username": "root",
			"password": "lodge-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		w := app.do(t, "POST", "/api/v1/admin/login", "", map[string]string{
			"username": "admin",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminRefresh(t *testing.T) {
	app := setupAdminTestApp(t)

	w := app.do(t, "POST", "/api/v1/admin/login", "", map[string]string{
		"username": "admin",
		"password": "lodge-password",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))

	t.Run("Success", func(t *testing.T) {
		w := app.do(t, "POST", "/api/v1/admin/refresh", "", map[string]string{
			"refresh_token": loginResp.RefreshToken,
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("Access Token Rejected As Refresh", func(t *testing.T) {
		w := app.do(t, "POST", "/api/v1/admin/refresh", "", map[string]string{
			"refresh_token": loginResp.AccessToken,
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	app := setupAdminTestApp(t)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/admin/bookings"},
		{"GET", "/api/v1/admin/blocked-dates"},
		{"GET", "/api/v1/admin/settings"},
		{"GET", "/api/v1/admin/stats"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			w := app.do(t, p.method, p.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAdminListBookings(t *testing.T) {
	app := setupAdminTestApp(t)

	booking := app.createBooking(t)
	_, err := app.ledger.Cancel(booking.BookingID)
	require.NoError(t, err)

	t.Run("All", func(t *testing.T) {
		w := app.do(t, "GET", "/api/v1/admin/bookings", app.token, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Count)
	})

	t.Run("Filter By Status", func(t *testing.T) {
		w := app.do(t, "GET", "/api/v1/admin/bookings?status=cancelled", app.token, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Count)
	})

	t.Run("Invalid Status", func(t *testing.T) {
		w := app.do(t, "GET", "/api/v1/admin/bookings?status=paused", app.token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminDeleteBooking(t *testing.T) {
	app := setupAdminTestApp(t)
	booking := app.createBooking(t)

	w := app.do(t, "DELETE", "/api/v1/admin/bookings/"+booking.BookingID, app.token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, "DELETE", "/api/v1/admin/bookings/"+booking.BookingID, app.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminBlockedDates(t *testing.T) {
	app := setupAdminTestApp(t)

	w := app.do(t, "POST", "/api/v1/admin/blocked-dates", app.token, map[string]string{
		"start_date": "2024-08-01",
		"end_date":   "2024-08-05",
		"reason":     "maintenance",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var blocked models.BlockedDateRange
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &blocked))
	require.NotEmpty(t, blocked.ID)

	w = app.do(t, "GET", "/api/v1/admin/blocked-dates", app.token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "maintenance")

	w = app.do(t, "DELETE", "/api/v1/admin/blocked-dates/"+blocked.ID, app.token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, "DELETE", "/api/v1/admin/blocked-dates/"+blocked.ID, app.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminSettings(t *testing.T) {
	app := setupAdminTestApp(t)

	t.Run("Get", func(t *testing.T) {
		w := app.do(t, "GET", "/api/v1/admin/settings", app.token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "bookings@laddalodge.co.za")
		assert.Contains(t, w.Body.String(), "room_rates")
	})

	t.Run("Save With Rate Update", func(t *testing.T) {
		w := app.do(t, "PUT", "/api/v1/admin/settings", app.token, map[string]interface{}{
			"contact_phone": "053 999 0000",
			"contact_email": "front@laddalodge.co.za",
			"room_rates":    map[string]float64{"family": 500},
		})
		assert.Equal(t, http.StatusOK, w.Code)

		// new rate is visible to quotes
		quote, err := app.ledger.Quote(models.RoomTypeFamily, mustParse(t, "2024-09-01"), mustParse(t, "2024-09-02"), 1)
		require.NoError(t, err)
		assert.Equal(t, 500.0, quote.Total)
	})

	t.Run("Negative Rate Rejected", func(t *testing.T) {
		w := app.do(t, "PUT", "/api/v1/admin/settings", app.token, map[string]interface{}{
			"contact_phone": "053 999 0000",
			"contact_email": "front@laddalodge.co.za",
			"room_rates":    map[string]float64{"family": -1},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown Room Type", func(t *testing.T) {
		w := app.do(t, "PUT", "/api/v1/admin/settings", app.token, map[string]interface{}{
			"contact_phone": "053 999 0000",
			"contact_email": "front@laddalodge.co.za",
			"room_rates":    map[string]float64{"penthouse": 900},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Rejected Save Applies Nothing", func(t *testing.T) {
		before, err := app.ledger.Quote(models.RoomTypeStandard, mustParse(t, "2024-09-01"), mustParse(t, "2024-09-02"), 1)
		require.NoError(t, err)

		// the valid standard rate must not land when another entry fails
		w := app.do(t, "PUT", "/api/v1/admin/settings", app.token, map[string]interface{}{
			"contact_phone": "053 999 0000",
			"contact_email": "front@laddalodge.co.za",
			"room_rates":    map[string]float64{"standard": 999, "penthouse": 900},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)

		after, err := app.ledger.Quote(models.RoomTypeStandard, mustParse(t, "2024-09-01"), mustParse(t, "2024-09-02"), 1)
		require.NoError(t, err)
		assert.Equal(t, before.Total, after.Total)
	})
}

func TestAdminStats(t *testing.T) {
	app := setupAdminTestApp(t)

	app.createBooking(t)
	second := app.createBooking(t)
	_, err := app.ledger.Cancel(second.BookingID)
	require.NoError(t, err)

	created := app.do(t, "POST", "/api/v1/admin/blocked-dates", app.token, map[string]string{
		"start_date": "2024-12-20",
		"end_date":   "2024-12-27",
	})
	require.Equal(t, http.StatusCreated, created.Code)

	w := app.do(t, "GET", "/api/v1/admin/stats", app.token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TotalBookings     int            `json:"total_bookings"`
		ConfirmedBookings int            `json:"confirmed_bookings"`
		CancelledBookings int            `json:"cancelled_bookings"`
		TotalRevenue      float64        `json:"total_revenue"`
		ByRoomType        map[string]int `json:"by_room_type"`
		BlockedDateRanges int            `json:"blocked_date_ranges"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 2, resp.TotalBookings)
	assert.Equal(t, 1, resp.ConfirmedBookings)
	assert.Equal(t, 1, resp.CancelledBookings)
	assert.Equal(t, 2700.0, resp.TotalRevenue)
	assert.Equal(t, 1, resp.ByRoomType[models.RoomTypeFamily])
	assert.Equal(t, 1, resp.BlockedDateRanges)
}

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := models.ParseDate(value)
	require.NoError(t, err)
	return d
}
