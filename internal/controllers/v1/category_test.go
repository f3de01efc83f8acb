package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/mybudget-app/backend/internal/controllers/v1"
	"github.com/mybudget-app/backend/internal/models"
	"github.com/mybudget-app/backend/test"
)

func (suite *TestSuiteStandard) TestGetCategories() {
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/categories", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 6)
	suite.Assert().Equal("Food", response.Data[0].Name)
	suite.Assert().Equal("🍔", response.Data[0].Icon)
}

func (suite *TestSuiteStandard) TestGetCategory() {
	category, err := models.FindCategoryByName(models.DB, "Food")
	suite.Require().Nil(err)

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/categories/%d", category.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("Food", response.Data.Name)
}

func (suite *TestSuiteStandard) TestGetCategoryNotFound() {
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/categories/4096", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetCategoryInvalidID() {
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/categories/notanumber", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategoryOptions() {
	recorder := test.Request(suite.T(), http.MethodOptions, "/v1/categories", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET", recorder.Header().Get("allow"))
}
