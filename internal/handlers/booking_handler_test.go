package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laddalodge/booking-backend/internal/database"
	"github.com/laddalodge/booking-backend/internal/models"
	"github.com/laddalodge/booking-backend/internal/services"
	"github.com/laddalodge/booking-backend/pkg/mailer"
)

type testApp struct {
	router       *gin.Engine
	rooms        *database.MemoryRoomStore
	availability *services.AvailabilityService
	ledger       *services.LedgerService
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

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

	roomHandler := NewRoomHandler(rooms, ledger, availability, logger)
	bookingHandler := NewBookingHandler(ledger, settings, notifications, logger)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.GET("/rooms", roomHandler.ListRooms)
	v1.GET("/rooms/:type_id", roomHandler.GetRoom)
	v1.GET("/availability", roomHandler.CheckAvailability)
	v1.POST("/bookings/quote", bookingHandler.Quote)
	v1.POST("/bookings", bookingHandler.Create)
	v1.GET("/bookings", bookingHandler.ListByEmail)
	v1.GET("/bookings/:id", bookingHandler.Get)
	v1.POST("/bookings/:id/cancel", bookingHandler.Cancel)

	return &testApp{
		router:       router,
		rooms:        rooms,
		availability: availability,
		ledger:       ledger,
	}
}

func (app *testApp) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func bookingPayload() map[string]interface{} {
	return map[string]interface{}{
		"first_name":     "Thandi",
		"last_name":      "Nkosi",
		"email":          "thandi@example.com",
		"phone":          "0821234567",
		"national_id":    "8001015009087",
		"address":        "12 Protea Street, Clarens",
		"room_type_id":   "family",
		"checkin_date":   "2024-07-01",
		"checkout_date":  "2024-07-04",
		"guest_count":    2,
		"payment_method": "eft",
	}
}

func TestListRoomsEndpoint(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(t, "GET", "/api/v1/rooms", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Rooms []models.Room `json:"rooms"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Rooms, 3)
}

func TestGetRoomEndpoint(t *testing.T) {
	app := setupTestApp(t)

	t.Run("Success", func(t *testing.T) {
		w := app.do(t, "GET", "/api/v1/rooms/family", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var room models.Room
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &room))
		assert.Equal(t, "family", room.TypeID)
		assert.Equal(t, 450.0, room.NightlyRate)
	})

	t.Run("UnknownRoomType", func(t *testing.T) {
		w := app.do(t, "GET", "/api/v1/rooms/penthouse", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestQuoteEndpoint(t *testing.T) {
	app := setupTestApp(t)

	t.Run("Success", func(t *testing.T) {
		w := app.do(t, "POST", "/api/v1/bookings/quote", map[string]interface{}{
			"room_type_id":  "family",
			"checkin_date":  "2024-07-01",
			"checkout_date": "2024-07-04",
			"guest_count":   2,
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var quote models.Quote
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
		assert.Equal(t, 3, quote.Nights)
		assert.Equal(t, 2700.0, quote.Total)
	})

	t.Run("Unknown Room", func(t *testing.T) {
		w := app.do(t, "POST", "/api/v1/bookings/quote", map[string]interface{}{
			"room_type_id":  "penthouse",
			"checkin_date":  "2024-07-01",
			"checkout_date": "2024-07-04",
			"guest_count":   2,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing Body Fields", func(t *testing.T) {
		w := app.do(t, "POST", "/api/v1/bookings/quote", map[string]interface{}{
			"room_type_id": "family",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateBookingEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		app := setupTestApp(t)

		w := app.do(t, "POST", "/api/v1/bookings", bookingPayload())
		assert.Equal(t, http.StatusCreated, w.Code)

		var booking models.Booking
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
		assert.Regexp(t, `^LDD\d+[A-Z0-9]{9}$`, booking.BookingID)
		assert.Equal(t, 2700.0, booking.TotalAmount)

		// the booking is retrievable straight away
		w = app.do(t, "GET", "/api/v1/bookings/"+booking.BookingID, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Invalid Email Rejected", func(t *testing.T) {
		app := setupTestApp(t)

		payload := bookingPayload()
		payload["email"] = "not-an-email"

		w := app.do(t, "POST", "/api/v1/bookings", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "validation_error", resp.Error)
		assert.Equal(t, "email", resp.Field)
	})

	t.Run("Blocked Dates Rejected", func(t *testing.T) {
		app := setupTestApp(t)

		_, err := app.availability.Add(&models.CreateBlockedDateRequest{
			StartDate: "2024-07-02",
			EndDate:   "2024-07-03",
		})
		require.NoError(t, err)

		w := app.do(t, "POST", "/api/v1/bookings", bookingPayload())
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetBookingEndpoint(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(t, "GET", "/api/v1/bookings/LDD0UNKNOWN00", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "not_found", resp.Error)
}

func TestListByEmailEndpoint(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(t, "POST", "/api/v1/bookings", bookingPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("Missing Email Param", func(t *testing.T) {
		w := app.do(t, "GET", "/api/v1/bookings", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Matches Exact Email Only", func(t *testing.T) {
		w := app.do(t, "GET", "/api/v1/bookings?email=thandi@example.com", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Bookings []models.Booking `json:"bookings"`
			Count    int              `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Count)
	})

	t.Run("No Matches", func(t *testing.T) {
		w := app.do(t, "GET", "/api/v1/bookings?email=other@example.com", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Zero(t, resp.Count)
	})
}

func TestCancelBookingEndpoint(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(t, "POST", "/api/v1/bookings", bookingPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	var booking models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))

	t.Run("Success And Idempotent", func(t *testing.T) {
		w := app.do(t, "POST", "/api/v1/bookings/"+booking.BookingID+"/cancel", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = app.do(t, "POST", "/api/v1/bookings/"+booking.BookingID+"/cancel", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var cancelled models.Booking
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cancelled))
		assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	})

	t.Run("Unknown ID", func(t *testing.T) {
		w := app.do(t, "POST", "/api/v1/bookings/LDD0UNKNOWN00/cancel", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAvailabilityEndpoint(t *testing.T) {
	app := setupTestApp(t)

	_, err := app.availability.Add(&models.CreateBlockedDateRequest{
		StartDate: "2024-08-01",
		EndDate:   "2024-08-05",
		Reason:    "maintenance",
	})
	require.NoError(t, err)

	t.Run("Blocked Window", func(t *testing.T) {
		w := app.do(t, "GET", "/api/v1/availability?checkin=2024-08-05&checkout=2024-08-10", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["blocked"])
		assert.Equal(t, false, resp["available"])
	})

	t.Run("Free Window With Room Capacity", func(t *testing.T) {
		w := app.do(t, "GET", "/api/v1/availability?checkin=2024-08-06&checkout=2024-08-10&room_type_id=family", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["blocked"])
		assert.Equal(t, true, resp["available"])
		assert.Equal(t, float64(24), resp["units_free"])
	})

	t.Run("Bad Dates", func(t *testing.T) {
		w := app.do(t, "GET", "/api/v1/availability?checkin=notadate&checkout=2024-08-10", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Reversed Dates", func(t *testing.T) {
		w := app.do(t, "GET", "/api/v1/availability?checkin=2024-08-10&checkout=2024-08-06", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
