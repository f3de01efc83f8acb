package models_test

import (
	"strings"

	"github.com/mybudget-app/backend/internal/models"
)

func (suite *TestSuiteStandard) TestCreateUser() {
	user, err := models.CreateUser(models.DB, " amandine ", "correct horse battery staple")
	suite.Require().Nil(err)

	suite.Assert().Equal("amandine", user.Username)

	// The password is stored as a hash
	suite.Assert().NotEqual("correct horse battery staple", user.Password)
	suite.Assert().True(user.CheckPassword("correct horse battery staple"))
	suite.Assert().False(user.CheckPassword("hunter2"))
}

func (suite *TestSuiteStandard) TestCreateUserPasswordLength() {
	tests := []struct {
		name     string
		password string
	}{
		{"too short", "hunter2"},
		{"above the bcrypt limit", strings.Repeat("a", 80)},
	}

	for _, tt := range tests {
		_, err := models.CreateUser(models.DB, "amandine", tt.password)
		suite.Assert().ErrorIs(err, models.ErrPasswordInvalid, tt.name)
	}

	// The boundaries are fine
	for _, password := range []string{"8chars!!", strings.Repeat("a", 72)} {
		var user models.User
		suite.Assert().Nil(user.SetPassword(password))
	}
}

func (suite *TestSuiteStandard) TestCreateUserDuplicate() {
	suite.createTestUser("amandine")

	_, err := models.CreateUser(models.DB, "amandine", "hunter2")
	suite.Assert().ErrorIs(err, models.ErrUsernameTaken)
}

func (suite *TestSuiteStandard) TestFindUserByUsername() {
	created := suite.createTestUser("amandine")

	user, err := models.FindUserByUsername(models.DB, " amandine ")
	suite.Require().Nil(err)
	suite.Assert().Equal(created.ID, user.ID)

	_, err = models.FindUserByUsername(models.DB, "benoit")
	suite.Assert().NotNil(err)
}
