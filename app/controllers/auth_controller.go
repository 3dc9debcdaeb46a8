package controllers

import (
	"github.com/themirzaalibaig/server-ecommerce/app/models"
	"github.com/themirzaalibaig/server-ecommerce/app/services"
	"github.com/themirzaalibaig/server-ecommerce/pkg/ctx"
)

type signupRequest struct {
	Username string `json:"username" validate:"required,alpha_dash,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"required,min=7,max=20"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Image    string `json:"image"    validate:"nullable,url"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// authResponse pairs the serialised user with its token.
type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

func (ac *AuthController) Signup(c *ctx.Context) {
	var req signupRequest
	if !c.BindJSON(&req) {
		return
	}

	user, token, err := ac.service.Signup(c.Context(), services.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Image:    req.Image,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Created("Account created successfully", authResponse{User: user, Token: token})
}

func (ac *AuthController) Login(c *ctx.Context) {
	var req loginRequest
	if !c.BindJSON(&req) {
		return
	}

	user, token, err := ac.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Success("Logged in successfully", authResponse{User: user, Token: token})
}
