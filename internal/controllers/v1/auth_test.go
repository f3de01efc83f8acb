package v1_test

import (
	"net/http"
	"strings"

	v1 "github.com/mybudget-app/backend/internal/controllers/v1"
	"github.com/mybudget-app/backend/test"
)

func (suite *TestSuiteStandard) TestRegister() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/auth/register", map[string]string{
		"username": "amandine",
		"password": "correct horse battery staple",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("amandine", response.Data.Username)

	// The password hash must never be in a response
	suite.Assert().NotContains(recorder.Body.String(), "password")
}

func (suite *TestSuiteStandard) TestRegisterDuplicate() {
	suite.createTestUser("amandine")

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/auth/register", map[string]string{
		"username": "amandine",
		"password": "hunter2",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusConflict)
}

func (suite *TestSuiteStandard) TestRegisterInvalidBody() {
	tests := []struct {
		name string
		body any
	}{
		{"empty body", ""},
		{"broken JSON", `{ "username": `},
		{"missing password", map[string]string{"username": "amandine"}},
	}

	for _, tt := range tests {
		recorder := test.Request(suite.T(), http.MethodPost, "/v1/auth/register", tt.body)
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestRegisterPasswordLength() {
	tests := []struct {
		name     string
		password string
	}{
		{"too short", "hunter2"},
		{"above the bcrypt limit", strings.Repeat("a", 80)},
	}

	for _, tt := range tests {
		recorder := test.Request(suite.T(), http.MethodPost, "/v1/auth/register", map[string]string{
			"username": "amandine",
			"password": tt.password,
		})
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
		suite.Assert().Contains(recorder.Body.String(), "the password must be between 8 and 72 characters long", tt.name)
	}
}

func (suite *TestSuiteStandard) TestLogin() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/auth/register", map[string]string{
		"username": "amandine",
		"password": "correct horse battery staple",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.T(), http.MethodPost, "/v1/auth/login", map[string]string{
		"username": "amandine",
		"password": "correct horse battery staple",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.LoginResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().NotEmpty(response.Data.Token)
	suite.Assert().Equal("amandine", response.Data.User.Username)

	// The token works on protected routes
	recorder = test.Request(suite.T(), http.MethodGet, "/v1/transactions", nil, map[string]string{
		"Authorization": "Bearer " + response.Data.Token,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
}

func (suite *TestSuiteStandard) TestLoginFailed() {
	suite.createTestUser("amandine")

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "amandine", "hunter2"},
		{"unknown user", "benoit", "correct horse battery staple"},
	}

	for _, tt := range tests {
		recorder := test.Request(suite.T(), http.MethodPost, "/v1/auth/login", map[string]string{
			"username": tt.username,
			"password": tt.password,
		})
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)

		// A wrong username and a wrong password are indistinguishable
		suite.Assert().Contains(recorder.Body.String(), "no user exists with this username and password combination")
	}
}

func (suite *TestSuiteStandard) TestProtectedRoutesRequireToken() {
	for _, path := range []string{"/v1/transactions", "/v1/budgets"} {
		recorder := test.Request(suite.T(), http.MethodGet, path, nil)
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)

		recorder = test.Request(suite.T(), http.MethodGet, path, nil, map[string]string{
			"Authorization": "Bearer not-a-token",
		})
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
	}
}

func (suite *TestSuiteStandard) TestAuthOptions() {
	for _, path := range []string{"/v1/auth/register", "/v1/auth/login"} {
		recorder := test.Request(suite.T(), http.MethodOptions, path, nil)
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
		suite.Assert().Equal("OPTIONS, POST", recorder.Header().Get("allow"))
	}
}
