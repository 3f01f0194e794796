package domain

// Business validation constants
const (
	MaxStationsPerBooking   = 20
	MaxSalesItemsPerBooking = 50
	MaxNotesLength          = 1000

	// MaxCapacityQueryDays limits the window of a lane capacity read
	MaxCapacityQueryDays = 31
)
