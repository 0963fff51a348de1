package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": " 203.0.113.7 , 10.0.0.1"}, "10.0.0.2:5555", "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.4"}, "10.0.0.2:5555", "198.51.100.4"},
		{"empty forwarded entry", map[string]string{"X-Forwarded-For": ",10.0.0.1", "X-Real-IP": "198.51.100.4"}, "10.0.0.2:5555", "198.51.100.4"},
		{"socket peer", nil, "192.0.2.10:40000", "192.0.2.10"},
		{"peer without port", nil, "192.0.2.10", "192.0.2.10"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/api/bookings/track", nil)
			c.Request.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, getClientIP(c))
		})
	}
}
