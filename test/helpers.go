// Package test contains helpers to simplify testing the backend.
package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/mybudget-app/backend/internal/auth"
	"github.com/mybudget-app/backend/internal/config"
	"github.com/mybudget-app/backend/internal/router"
	"github.com/stretchr/testify/assert"
)

// JWTSecret is the token signing secret used by the test router. Tokens for
// test requests must be issued with the same secret, see Token.
const JWTSecret = "test-secret-do-not-use-outside-of-tests"

// TOLERANCE is the number of seconds that a CreatedAt or UpdatedAt time.Time
// is allowed to differ from the time at which it is checked.
//
// As CreatedAt and UpdatedAt are automatically set by gorm, we need a tolerance here.
const TOLERANCE time.Duration = 1000000000 * 60

// Request is a helper method to simplify making a HTTP request for tests.
func Request(t *testing.T, method, url string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	var byteBuffer *bytes.Buffer

	// If the body is a string, convert it to bytes
	if body == nil {
		byteBuffer = bytes.NewBuffer(nil)
	} else if reflect.TypeOf(body).Kind() == reflect.String {
		byteBuffer = bytes.NewBufferString(body.(string))
	} else {
		byteStr, err := json.Marshal(body)
		if err != nil {
			assert.Fail(t, "Request body could not be marshalled from struct input", err)
		}
		byteBuffer = bytes.NewBuffer(byteStr)
	}

	os.Setenv("LOG_FORMAT", "human")
	r, err := router.Router(&config.Config{
		Server: config.ServerConfig{Port: "8080", Mode: "debug"},
		JWT:    config.JWTConfig{Secret: JWTSecret, ExpireHours: 24},
	})
	if err != nil {
		assert.FailNow(t, "Router could not be initialized")
	}

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest(method, url, byteBuffer)

	for _, headerMap := range headers {
		for header, value := range headerMap {
			req.Header.Set(header, value)
		}
	}

	r.ServeHTTP(recorder, req)

	return *recorder
}

// Token returns the Authorization header for requests on behalf of the user.
func Token(t *testing.T, userID uint64, username string) map[string]string {
	token, err := auth.GenerateToken([]byte(JWTSecret), userID, username, time.Hour)
	if err != nil {
		assert.FailNow(t, "Token could not be issued", err)
	}

	return map[string]string{"Authorization": "Bearer " + token}
}

func AssertHTTPStatus(t *testing.T, r *httptest.ResponseRecorder, expectedStatus ...int) {
	assert.Contains(t, expectedStatus, r.Code, "HTTP status is wrong. Response body: %s", r.Body.String())
}

// DecodeResponse decodes an HTTP response into a target struct.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target interface{}) {
	err := json.NewDecoder(r.Body).Decode(target)
	if err != nil {
		assert.FailNow(t, "Parsing error", "Unable to parse response from server %q into %v, '%v'", r.Body, reflect.TypeOf(target), err)
	}
}
