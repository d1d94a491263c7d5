package fingerprint_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/visitrack/pkg/fingerprint"
)

func createTestRequest(headers map[string]string, remoteAddr string) *http.Request {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

func TestGenerate(t *testing.T) {
	t.Run("deterministic for identical requests", func(t *testing.T) {
		req := createTestRequest(map[string]string{
			"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)",
			"Accept-Language": "en-US,en;q=0.9",
			"Accept-Encoding": "gzip, deflate, br",
		}, "192.0.2.10:54321")

		fp1 := fingerprint.Generate(req)
		fp2 := fingerprint.Generate(req)

		assert.Equal(t, fp1, fp2, "fingerprints should be consistent")
		assert.Len(t, fp1, fingerprint.DisplayLength)
		assert.Regexp(t, "^[a-f0-9]+$", fp1, "fingerprint should be hex string")
	})

	t.Run("different user agents differ", func(t *testing.T) {
		req1 := createTestRequest(map[string]string{
			"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)",
		}, "192.0.2.10:54321")
		req2 := createTestRequest(map[string]string{
			"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
		}, "192.0.2.10:54321")

		assert.NotEqual(t, fingerprint.Generate(req1), fingerprint.Generate(req2))
	})

	t.Run("different IPs differ", func(t *testing.T) {
		headers := map[string]string{"User-Agent": "Mozilla/5.0"}

		req1 := createTestRequest(headers, "192.0.2.10:54321")
		req2 := createTestRequest(headers, "192.0.2.11:54321")

		assert.NotEqual(t, fingerprint.Generate(req1), fingerprint.Generate(req2))
	})

	t.Run("different accept headers differ", func(t *testing.T) {
		req1 := createTestRequest(map[string]string{
			"User-Agent":      "Mozilla/5.0",
			"Accept-Language": "en-US",
			"Accept-Encoding": "gzip",
		}, "192.0.2.10:54321")
		req2 := createTestRequest(map[string]string{
			"User-Agent":      "Mozilla/5.0",
			"Accept-Language": "fr-FR",
			"Accept-Encoding": "deflate",
		}, "192.0.2.10:54321")

		assert.NotEqual(t, fingerprint.Generate(req1), fingerprint.Generate(req2))
	})

	t.Run("handles request without headers", func(t *testing.T) {
		req := createTestRequest(nil, "192.0.2.10:54321")

		fp := fingerprint.Generate(req)
		assert.Len(t, fp, fingerprint.DisplayLength)
	})
}

func TestFromComponents(t *testing.T) {
	t.Run("empty components are skipped", func(t *testing.T) {
		fp1 := fingerprint.FromComponents("192.0.2.10", "ua", "", "gzip")
		fp2 := fingerprint.FromComponents("192.0.2.10", "ua", "gzip")

		assert.Equal(t, fp1, fp2)
	})

	t.Run("order matters", func(t *testing.T) {
		fp1 := fingerprint.FromComponents("a", "b")
		fp2 := fingerprint.FromComponents("b", "a")

		assert.NotEqual(t, fp1, fp2)
	})
}

func TestValidate(t *testing.T) {
	req := createTestRequest(map[string]string{"User-Agent": "Mozilla/5.0"}, "192.0.2.10:54321")

	assert.True(t, fingerprint.Validate(req, fingerprint.Generate(req)))
	assert.False(t, fingerprint.Validate(req, "deadbeefdeadbeef"))
}
