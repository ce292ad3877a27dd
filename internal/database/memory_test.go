package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laddalodge/booking-backend/internal/models"
)

func TestMemoryRoomStoreDuplicates(t *testing.T) {
	store := NewMemoryRoomStore()

	room := models.Room{TypeID: "family", DisplayName: "Family Room", NightlyRate: 450, MaxGuests: 3, AvailableUnits: 24}
	require.NoError(t, store.Insert(&room))
	assert.Error(t, store.Insert(&room))

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMemoryBookingStoreListOrder(t *testing.T) {
	store := NewMemoryBookingStore()

	for _, id := range []string{"LDD1", "LDD2", "LDD3"} {
		require.NoError(t, store.Insert(&models.Booking{
			BookingID:  id,
			FirstName:  "Thandi",
			LastName:   "Nkosi",
			RoomTypeID: "family",
			Status:     models.BookingStatusConfirmed,
		}))
		time.Sleep(time.Millisecond)
	}

	bookings, err := store.List(models.BookingFilter{})
	require.NoError(t, err)
	require.Len(t, bookings, 3)
	assert.Equal(t, "LDD3", bookings[0].BookingID)
	assert.Equal(t, "LDD1", bookings[2].BookingID)
}

func TestMemoryBookingStoreOverlap(t *testing.T) {
	store := NewMemoryBookingStore()

	day := func(d int) time.Time {
		return time.Date(2024, 7, d, 0, 0, 0, 0, time.UTC)
	}

	require.NoError(t, store.Insert(&models.Booking{
		BookingID:    "LDD1",
		RoomTypeID:   "family",
		CheckinDate:  day(1),
		CheckoutDate: day(4),
		Status:       models.BookingStatusConfirmed,
	}))

	// overlapping window
	count, err := store.CountOverlapping("family", day(3), day(6))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// back-to-back: checkin on the existing checkout day
	count, err = store.CountOverlapping("family", day(4), day(6))
	require.NoError(t, err)
	assert.Zero(t, count)

	// other room type never collides
	count, err = store.CountOverlapping("standard", day(1), day(4))
	require.NoError(t, err)
	assert.Zero(t, count)

	// cancelled bookings release the unit
	require.NoError(t, store.UpdateStatus("LDD1", models.BookingStatusCancelled))
	count, err = store.CountOverlapping("family", day(1), day(4))
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemoryBlockedDateStoreOrder(t *testing.T) {
	store := NewMemoryBlockedDateStore()

	later, err := models.NewBlockedDateRange("2024-09-01", "2024-09-05", "")
	require.NoError(t, err)
	earlier, err := models.NewBlockedDateRange("2024-08-01", "2024-08-05", "")
	require.NoError(t, err)

	require.NoError(t, store.Insert(later))
	require.NoError(t, store.Insert(earlier))

	ranges, err := store.List()
	require.NoError(t, err)
	require.Len(t, ranges, 2)
	assert.Equal(t, earlier.ID, ranges[0].ID)
}
