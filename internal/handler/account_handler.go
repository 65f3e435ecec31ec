package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/eaglebank/accounts/internal/cqrs"
	"github.com/eaglebank/accounts/internal/middleware"
	"github.com/eaglebank/accounts/internal/models"
	"github.com/eaglebank/accounts/internal/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccountCommander defines the write-side operations used by AccountHandler.
type AccountCommander interface {
	CreateAccount(context.Context, cqrs.CreateAccountCommand) (*models.Account, error)
	UpdateAccount(context.Context, cqrs.UpdateAccountCommand) (*models.Account, error)
	DeleteAccount(context.Context, cqrs.DeleteAccountCommand) error
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	GetAccount(context.Context, cqrs.GetAccountQuery) (*models.AccountView, error)
	ListAccounts(context.Context, cqrs.ListAccountsQuery) ([]models.AccountView, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
	logger   *zap.Logger
}

// AccountRequest is the body accepted by create and update. Update is a full
// replacement, so both share the same rules.
type AccountRequest struct {
	Name        string `json:"name" validate:"required,max=64"`
	Email       string `json:"email" validate:"required,email,max=64"`
	Address     string `json:"address" validate:"required,max=256"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=32"`
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries, logger: logger}
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	h.log(c).Info("Request to create an Account")

	req, ok := bindAccountRequest(c)
	if !ok {
		return
	}

	account, err := h.commands.CreateAccount(c.Request.Context(), cqrs.CreateAccountCommand{
		Name:        req.Name,
		Email:       req.Email,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		h.log(c).Error("failed to create account", zap.Error(err))
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	c.Header("Location", fmt.Sprintf("/accounts/%d", account.ID))
	c.JSON(http.StatusCreated, account.View())
}

func (h *AccountHandler) ListAccounts(c *gin.Context) {
	h.log(c).Info("Request to list Accounts")

	views, err := h.queries.ListAccounts(c.Request.Context(), cqrs.ListAccountsQuery{})
	if err != nil {
		h.log(c).Error("failed to list accounts", zap.Error(err))
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list accounts")
		return
	}
	if views == nil {
		views = []models.AccountView{}
	}

	h.log(c).Info("Found Accounts to list", zap.Int("count", len(views)))
	c.JSON(http.StatusOK, views)
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	h.log(c).Info("Request to read an Account", zap.String("id", c.Param("id")))

	id, ok := accountID(c)
	if !ok {
		return
	}

	view, err := h.queries.GetAccount(c.Request.Context(), cqrs.GetAccountQuery{ID: id})
	if err != nil {
		h.respondWithStoreError(c, id, err, "Failed to read account")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	h.log(c).Info("Request to update an Account", zap.String("id", c.Param("id")))

	id, ok := accountID(c)
	if !ok {
		return
	}
	// An unknown account is reported before the body is looked at.
	if _, err := h.queries.GetAccount(c.Request.Context(), cqrs.GetAccountQuery{ID: id}); err != nil {
		h.respondWithStoreError(c, id, err, "Failed to update account")
		return
	}

	req, ok := bindAccountRequest(c)
	if !ok {
		return
	}

	account, err := h.commands.UpdateAccount(c.Request.Context(), cqrs.UpdateAccountCommand{
		ID:          id,
		Name:        req.Name,
		Email:       req.Email,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		h.respondWithStoreError(c, id, err, "Failed to update account")
		return
	}

	c.JSON(http.StatusOK, account.View())
}

// DeleteAccount answers 204 whether or not the account existed.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	h.log(c).Info("Request to delete an Account", zap.String("id", c.Param("id")))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	if err := h.commands.DeleteAccount(c.Request.Context(), cqrs.DeleteAccountCommand{ID: id}); err != nil {
		h.log(c).Error("failed to delete account", zap.Int64("id", id), zap.Error(err))
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AccountHandler) respondWithStoreError(c *gin.Context, id int64, err error, message string) {
	if errors.Is(err, repository.ErrAccountNotFound) {
		middleware.RespondWithError(c, http.StatusNotFound, notFoundMessage(c.Param("id")))
		return
	}
	h.log(c).Error(message, zap.Int64("id", id), zap.Error(err))
	middleware.RespondWithError(c, http.StatusInternalServerError, message)
}

func (h *AccountHandler) log(c *gin.Context) *zap.Logger {
	return h.logger.With(zap.String("requestId", middleware.GetRequestID(c)))
}

// accountID parses the :id path parameter. IDs that are not integers cannot
// name an account and are answered with 404.
func accountID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		middleware.RespondWithError(c, http.StatusNotFound, notFoundMessage(raw))
		return 0, false
	}
	return id, true
}

func notFoundMessage(id string) string {
	return fmt.Sprintf("Account with id [%s] could not be found.", id)
}

// bindAccountRequest decodes and validates the JSON body, writing a 400 on failure.
func bindAccountRequest(c *gin.Context) (*AccountRequest, bool) {
	var req AccountRequest
	if err := decodeJSONBody(c.Request.Body, &req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return nil, false
	}
	return &req, true
}

// decodeJSONBody decodes exactly one JSON value; anything after it, other
// than whitespace, makes the body invalid.
func decodeJSONBody(body io.Reader, v any) error {
	if body == nil {
		return errors.New("missing request body")
	}
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON value")
	}
	return nil
}
