package middleware

import (
	"net/http/httptest"
	"testing"

	"plenura/config"

	"github.com/gin-gonic/gin"
)

func requestContext(t *testing.T, remoteAddr string, headers map[string]string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.RemoteAddr = remoteAddr
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestGetClientIPIgnoresHeadersByDefault(t *testing.T) {
	config.AppConfig.TrustProxyHeaders = false

	c := requestContext(t, "203.0.113.9:51234", map[string]string{
		"X-Forwarded-For": "198.51.100.1",
		"X-Real-IP":       "198.51.100.2",
	})
	if got := getClientIP(c); got != "203.0.113.9" {
		t.Errorf("getClientIP = %q, want socket address 203.0.113.9", got)
	}
}

func TestGetClientIPBehindTrustedProxy(t *testing.T) {
	config.AppConfig.TrustProxyHeaders = true
	defer func() { config.AppConfig.TrustProxyHeaders = false }()

	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"first forwarded hop", map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.2"}, "198.51.100.1"},
		{"real ip fallback", map[string]string{"X-Real-IP": "198.51.100.2"}, "198.51.100.2"},
		{"garbage header falls through", map[string]string{"X-Forwarded-For": "not-an-ip"}, "203.0.113.9"},
		{"no headers", nil, "203.0.113.9"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := requestContext(t, "203.0.113.9:51234", tc.headers)
			if got := getClientIP(c); got != tc.want {
				t.Errorf("getClientIP = %q, want %q", got, tc.want)
			}
		})
	}
}
