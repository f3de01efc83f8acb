package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/mybudget-app/backend/internal/auth"
	"github.com/mybudget-app/backend/internal/httputil"
	"github.com/mybudget-app/backend/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AuthController issues accounts and tokens. It carries the signing secret so
// that nothing else in the API needs to know it.
type AuthController struct {
	secret   []byte
	lifetime time.Duration
}

// RegisterAuthRoutes registers the routes for registration and login with
// the RouterGroup that is passed.
func RegisterAuthRoutes(r *gin.RouterGroup, secret []byte, lifetime time.Duration) {
	controller := AuthController{secret: secret, lifetime: lifetime}

	{
		r.OPTIONS("/register", httputil.OptionsPost)
		r.POST("/register", controller.Register)
	}
	{
		r.OPTIONS("/login", httputil.OptionsPost)
		r.POST("/login", controller.Login)
	}
}

// User is the API representation of an account. The password hash never
// leaves the model layer.
type User struct {
	models.DefaultModel
	Username string `json:"username" example:"amandine"`
}

func newUser(model models.User) User {
	return User{
		DefaultModel: model.DefaultModel,
		Username:     model.Username,
	}
}

// Credentials is the request body for registration and login.
type Credentials struct {
	Username string `json:"username" binding:"required" example:"amandine"`
	Password string `json:"password" binding:"required" example:"correct horse battery staple"`
}

// Login bundles a token with the account it belongs to.
type Login struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UserResponse struct {
	Data  *User   `json:"data"`
	Error *string `json:"error"`
}

type LoginResponse struct {
	Data  *Login  `json:"data"`
	Error *string `json:"error"`
}

// Register creates a new account.
func (controller AuthController) Register(c *gin.Context) {
	var credentials Credentials
	if err := httputil.BindData(c, &credentials); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, UserResponse{Error: &s})
		return
	}

	user, err := models.CreateUser(models.DB, credentials.Username, credentials.Password)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{Error: &s})
		return
	}

	data := newUser(user)
	c.JSON(http.StatusCreated, UserResponse{Data: &data})
}

// Login verifies the credentials and issues a token. A wrong username and a
// wrong password are indistinguishable to the client.
func (controller AuthController) Login(c *gin.Context) {
	var credentials Credentials
	if err := httputil.BindData(c, &credentials); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, LoginResponse{Error: &s})
		return
	}

	user, err := models.FindUserByUsername(models.DB, credentials.Username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, models.ErrResourceNotFound) {
			log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err)
		}
		s := errLoginFailed.Error()
		c.JSON(http.StatusUnauthorized, LoginResponse{Error: &s})
		return
	}

	if !user.CheckPassword(credentials.Password) {
		s := errLoginFailed.Error()
		c.JSON(http.StatusUnauthorized, LoginResponse{Error: &s})
		return
	}

	token, err := auth.GenerateToken(controller.secret, user.ID, user.Username, controller.lifetime)
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("issuing a token failed: %v", err)
		s := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, LoginResponse{Error: &s})
		return
	}

	data := Login{Token: token, User: newUser(user)}
	c.JSON(http.StatusOK, LoginResponse{Data: &data})
}
