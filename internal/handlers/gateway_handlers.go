package handlers

import (
	"context"
	"net/http"
	"net/url"

	"rp_admin_backend/internal/gateway"
	"rp_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const calendarLimit = 30

// bookingQueryKeys are forwarded to the gateway untouched.
var bookingQueryKeys = []string{"limit", "offset", "search", "source", "status", "date_from", "date_to"}

// Gateway is the part of the gateway client the proxy routes use.
type Gateway interface {
	Bookings(ctx context.Context, query url.Values) (*gateway.BookingsResponse, error)
	Booking(ctx context.Context, id string) (*gateway.Booking, error)
	CancelBooking(ctx context.Context, id string) (gateway.Document, error)
	Customers(ctx context.Context, query url.Values) (*gateway.CustomersResponse, error)
	Calendar(ctx context.Context, limit int) (gateway.Document, error)
	Waivers(ctx context.Context, phone, email string) (gateway.Document, error)
	Health(ctx context.Context) (gateway.Document, error)
	Drivers(ctx context.Context) (gateway.Document, error)
	Chat(ctx context.Context, messages []gateway.ChatMessage) (*gateway.ChatReply, error)
}

// GatewayHandler proxies reads to the booking gateway. Every failure answers
// with the route's empty payload plus error and message, with the status
// taken from the gateway failure.
type GatewayHandler struct {
	gw Gateway
}

func NewGatewayHandler(gw Gateway) *GatewayHandler {
	return &GatewayHandler{gw: gw}
}

func (h *GatewayHandler) fail(c *gin.Context, op, errText string, empty gin.H, err error) {
	status := gateway.StatusOf(err)
	utils.LogWarn(err, op+": gateway call failed", map[string]interface{}{"status": status})
	empty["error"] = errText
	empty["message"] = gateway.MessageOf(err)
	c.AbortWithStatusJSON(status, empty)
}

func passThrough(c *gin.Context, keys []string) url.Values {
	query := url.Values{}
	for _, k := range keys {
		if v := c.Query(k); v != "" {
			query.Set(k, v)
		}
	}
	return query
}

func (h *GatewayHandler) GetBookings(c *gin.Context) {
	resp, err := h.gw.Bookings(c.Request.Context(), passThrough(c, bookingQueryKeys))
	if err != nil {
		h.fail(c, "GetBookings", "Bookings unavailable", gin.H{"bookings": []gateway.Booking{}, "total": 0}, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GatewayHandler) GetBookingByID(c *gin.Context) {
	booking, err := h.gw.Booking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "GetBookingByID", "Booking unavailable", gin.H{"booking": nil}, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *GatewayHandler) CancelBooking(c *gin.Context) {
	doc, err := h.gw.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "CancelBooking", "Failed to cancel booking", gin.H{"ok": false}, err)
		return
	}
	respondDocument(c, doc, gin.H{"ok": true})
}

func (h *GatewayHandler) GetCustomers(c *gin.Context) {
	resp, err := h.gw.Customers(c.Request.Context(), passThrough(c, []string{"search", "limit", "offset"}))
	if err != nil {
		h.fail(c, "GetCustomers", "Customers unavailable", gin.H{"customers": []gateway.Customer{}, "total": 0}, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GatewayHandler) GetCalendar(c *gin.Context) {
	doc, err := h.gw.Calendar(c.Request.Context(), calendarLimit)
	if err != nil {
		h.fail(c, "GetCalendar", "Calendar unavailable", gin.H{"events": []interface{}{}}, err)
		return
	}
	respondDocument(c, doc, gin.H{"events": []interface{}{}})
}

// GetWaivers lists waivers, or checks one customer when ?phone= or ?email= is given.
func (h *GatewayHandler) GetWaivers(c *gin.Context) {
	phone, email := c.Query("phone"), c.Query("email")
	doc, err := h.gw.Waivers(c.Request.Context(), phone, email)
	if err != nil {
		empty := gin.H{"waivers": []interface{}{}}
		if phone != "" || email != "" {
			empty = gin.H{"signed": false}
		}
		h.fail(c, "GetWaivers", "Waiver service unavailable", empty, err)
		return
	}
	respondDocument(c, doc, gin.H{"waivers": []interface{}{}})
}

func (h *GatewayHandler) GetHealth(c *gin.Context) {
	doc, err := h.gw.Health(c.Request.Context())
	if err != nil {
		h.fail(c, "GetHealth", "Gateway offline", gin.H{"status": "offline"}, err)
		return
	}
	respondDocument(c, doc, gin.H{"status": "ok"})
}

func (h *GatewayHandler) GetLeaderboard(c *gin.Context) {
	doc, err := h.gw.Drivers(c.Request.Context())
	if err != nil {
		h.fail(c, "GetLeaderboard", "Race control unavailable", gin.H{"drivers": []interface{}{}}, err)
		return
	}
	respondDocument(c, doc, gin.H{"drivers": []interface{}{}})
}

type chatRequest struct {
	Messages []gateway.ChatMessage `json:"messages" binding:"required,min=1,dive"`
}

func (h *GatewayHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "Chat", err)
		return
	}
	reply, err := h.gw.Chat(c.Request.Context(), req.Messages)
	if err != nil {
		h.fail(c, "Chat", "Assistant unavailable", gin.H{"reply": ""}, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// respondDocument writes a raw gateway document, or fallback when the gateway sent no body.
func respondDocument(c *gin.Context, doc gateway.Document, fallback gin.H) {
	if len(doc) == 0 {
		c.JSON(http.StatusOK, fallback)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", doc)
}
