package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"auth_service/internal/model"
	"auth_service/internal/service"

	"github.com/gin-gonic/gin"
)

// AccountHandler handles account CRUD requests
type AccountHandler struct {
	service service.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(s service.AccountService) *AccountHandler {
	return &AccountHandler{service: s}
}

func parseAccountID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
		return 0, false
	}
	return id, true
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req model.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	account, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrDuplicatePhoneNumber):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			log.Printf("Error creating account: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}

	c.JSON(http.StatusCreated, account)
}

func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, ok := parseAccountID(c)
	if !ok {
		return
	}

	var req model.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	account, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidRole), errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrDuplicatePhoneNumber):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			log.Printf("Error updating account %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		}
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := parseAccountID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error deleting account %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, ok := parseAccountID(c)
	if !ok {
		return
	}

	account, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error getting account %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) GetAllAccounts(c *gin.Context) {
	accounts, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("Error listing accounts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve accounts"})
		return
	}

	c.JSON(http.StatusOK, accounts)
}

// RegisterAccountRoutes registers account CRUD routes behind the given
// auth and admin middlewares
func (h *AccountHandler) RegisterAccountRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	accountGroup := rg.Group("/accounts")
	accountGroup.Use(authMW, adminMW)
	{
		accountGroup.POST("", h.CreateAccount)
		accountGroup.GET("", h.GetAllAccounts)
		accountGroup.GET("/:id", h.GetAccount)
		accountGroup.PUT("/:id", h.UpdateAccount)
		accountGroup.DELETE("/:id", h.DeleteAccount)
	}
}
