package controllers

import (
	"net/http"

	"fitlog/structs"

	"github.com/gin-gonic/gin"
)

// SignUpHandler registers a new account
func SignUpHandler(c *gin.Context) {
	var request structs.SignUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	account, res := accountService.SignUp(request.Email, request.Password, request.DisplayName)
	if !res.Success {
		fail(c, res)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Sign-up successful", "userId": account.ID})
}

// LoginHandler verifies credentials and returns a JWT
func LoginHandler(c *gin.Context) {
	var request structs.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	token, account, res := accountService.Login(request.Email, request.Password)
	if !res.Success {
		fail(c, res)
		return
	}

	c.JSON(http.StatusOK, structs.LoginResponse{Token: token, UserID: account.ID})
}
