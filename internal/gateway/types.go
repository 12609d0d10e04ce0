package gateway

import "encoding/json"

// Booking is a session booked through one of the messaging channels.
type Booking struct {
	ID              int64   `json:"id"`
	BookingID       string  `json:"booking_id"`
	Source          string  `json:"source"`
	SourceUserID    string  `json:"source_user_id"`
	CustomerName    string  `json:"customer_name"`
	CustomerPhone   string  `json:"customer_phone"`
	CustomerEmail   *string `json:"customer_email"`
	BookingType     string  `json:"booking_type"`
	SessionDate     string  `json:"session_date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	CalendarEventID *string `json:"calendar_event_id"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
}

// Booking channels.
const (
	SourceWhatsApp = "whatsapp"
	SourceDiscord  = "discord"
)

type BookingsResponse struct {
	Bookings []Booking `json:"bookings"`
	Total    int       `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}

// Customer is an identity derived by the gateway across bookings.
type Customer struct {
	Name              string   `json:"name"`
	Phone             string   `json:"phone"`
	Email             *string  `json:"email"`
	Sources           []string `json:"sources"`
	TotalBookings     int      `json:"total_bookings"`
	ConfirmedBookings int      `json:"confirmed_bookings"`
	FirstBooking      string   `json:"first_booking"`
	LastBooking       string   `json:"last_booking"`
}

type CustomersResponse struct {
	Customers []Customer `json:"customers"`
	Total     int        `json:"total"`
}

type ChatMessage struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type ChatReply struct {
	Reply string `json:"reply"`
}

type chatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// Document is a gateway payload whose shape the gateway owns (calendar
// events, waiver rows with dynamic columns, health, race timing).
type Document = json.RawMessage
