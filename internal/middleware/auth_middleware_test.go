package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rp_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func newTestEngine(t *testing.T, jwt *utils.JWTManager, roles ...string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(jwt), RoleAuthMiddleware(roles...), func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	jwt, err := utils.NewJWTManager("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	other, _ := utils.NewJWTManager("other-secret", time.Hour)

	adminToken, _ := jwt.GenerateAccessToken(1, "admin", "Admin")
	staffToken, _ := jwt.GenerateAccessToken(2, "till", "Staff")
	forged, _ := other.GenerateAccessToken(1, "admin", "Admin")

	tests := []struct {
		name   string
		header string
		roles  []string
		want   int
	}{
		{"missing header", "", []string{"Admin"}, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", []string{"Admin"}, http.StatusUnauthorized},
		{"forged token", "Bearer " + forged, []string{"Admin"}, http.StatusUnauthorized},
		{"admin allowed", "Bearer " + adminToken, []string{"Admin"}, http.StatusOK},
		{"staff forbidden on admin route", "Bearer " + staffToken, []string{"Admin"}, http.StatusForbidden},
		{"staff allowed on read route", "bearer " + staffToken, []string{"Admin", "Staff"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestEngine(t, jwt, tt.roles...)
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}
