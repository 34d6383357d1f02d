package domain

import "fmt"

// SlotStatus represents the occupancy of a (court, hour) slot on a date
type SlotStatus string

const (
	SlotFree      SlotStatus = "free"
	SlotBooked    SlotStatus = "booked"
	SlotCheckedIn SlotStatus = "checked_in"
)

// SlotKey builds the "court:hour" key used by the wire contract
func SlotKey(court, hour int) string {
	return fmt.Sprintf("%d:%d", court, hour)
}

// OperatingWindow describes the bookable grid: courts 1..Courts,
// hours [OpenHour, CloseHour)
type OperatingWindow struct {
	OpenHour  int
	CloseHour int
	Courts    int
}

// ContainsHour returns true if the hour lies in [OpenHour, CloseHour)
func (w OperatingWindow) ContainsHour(hour int) bool {
	return hour >= w.OpenHour && hour < w.CloseHour
}

// ContainsCourt returns true if the court id is part of the grid
func (w OperatingWindow) ContainsCourt(court int) bool {
	return court >= 1 && court <= w.Courts
}

// Hours returns the number of bookable hours per day
func (w OperatingWindow) Hours() int {
	return w.CloseHour - w.OpenHour
}
