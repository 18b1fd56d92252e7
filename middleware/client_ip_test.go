package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/assistant/message", nil)
	return c
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{
			name:       "forwarded chain uses first hop",
			forwarded:  "203.0.113.7, 10.0.0.2, 10.0.0.3",
			realIP:     "198.51.100.9",
			remoteAddr: "10.0.0.1:52114",
			want:       "203.0.113.7",
		},
		{
			name:       "real ip when no forwarded header",
			realIP:     "198.51.100.9",
			remoteAddr: "10.0.0.1:52114",
			want:       "198.51.100.9",
		},
		{
			name:       "remote addr strips port",
			remoteAddr: "192.0.2.44:8080",
			want:       "192.0.2.44",
		},
		{
			name:       "remote addr without port passes through",
			remoteAddr: "192.0.2.44",
			want:       "192.0.2.44",
		},
		{
			name:       "whitespace-only forwarded header falls through",
			forwarded:  "  ",
			remoteAddr: "192.0.2.44:9000",
			want:       "192.0.2.44",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testContext(t)
			if tt.forwarded != "" {
				c.Request.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				c.Request.Header.Set("X-Real-IP", tt.realIP)
			}
			c.Request.RemoteAddr = tt.remoteAddr

			assert.Equal(t, tt.want, clientIP(c))
		})
	}
}
