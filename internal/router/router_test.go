package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rp_admin_backend/internal/config"
	"rp_admin_backend/internal/gateway"
	"rp_admin_backend/pkg/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func TestSetupGuardsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	jwt, _ := utils.NewJWTManager("router-test", time.Hour)
	engine := gin.New()
	Setup(engine, Dependencies{
		DB:      db,
		Config:  &config.Config{Sales: config.SalesConfig{BillPrefix: "RP-BILL"}},
		JWT:     jwt,
		Gateway: gateway.NewClient("http://127.0.0.1:1", "key", time.Second),
	})

	staff, _ := jwt.GenerateAccessToken(2, "till", "Staff")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"ping is public", http.MethodGet, "/ping", "", http.StatusOK},
		{"login is public", http.MethodPost, "/api/auth/login", "", http.StatusBadRequest},
		{"menu needs a token", http.MethodGet, "/api/menu", "", http.StatusUnauthorized},
		{"staff cannot create sales", http.MethodPost, "/api/sales", staff, http.StatusForbidden},
		{"staff cannot scan", http.MethodPost, "/api/scan/receipt", staff, http.StatusForbidden},
		{"staff cannot cancel bookings", http.MethodPut, "/api/bookings/B1/cancel", staff, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, w.Code, tt.want)
			}
		})
	}
}
