package controllers

import (
	"hotelbook/dto"
	"hotelbook/middleware"
	"hotelbook/response"
	"hotelbook/services"
	"hotelbook/store"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth     *services.AuthService
	sessions *store.Store
}

func NewAuthController(auth *services.AuthService, sessions *store.Store) AuthController {
	return AuthController{auth: auth, sessions: sessions}
}

func (a AuthController) Register(c *gin.Context) {
	var req dto.RegisterInput
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	user, err := a.auth.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, dto.ToUserResponse(*user))
}

func (a AuthController) Login(c *gin.Context) {
	var req dto.LoginInput
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	sess := middleware.Session(c, a.sessions)
	result, err := a.auth.Login(c.Request.Context(), sess, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.LoginResponse{
		Token:     result.Token,
		SessionID: middleware.SessionID(c),
		User:      dto.ToUserResponse(result.User),
	})
}

func (a AuthController) Logout(c *gin.Context) {
	if err := a.auth.Logout(c.Request.Context(), middleware.Session(c, a.sessions)); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}

func (a AuthController) Me(c *gin.Context) {
	response.Success(c, dto.ToUserResponse(*middleware.CurrentUser(c)))
}
