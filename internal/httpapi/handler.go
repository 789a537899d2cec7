package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/bagcheckout/internal/bag"
	"github.com/nikolayk812/bagcheckout/internal/checkout"
	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/nikolayk812/bagcheckout/internal/notify"
)

type Handler struct {
	bags     *bag.Service
	checkout *checkout.Service
}

func NewHandler(bags *bag.Service, checkouts *checkout.Service) (*Handler, error) {
	if bags == nil {
		return nil, errors.New("bags is nil")
	}
	if checkouts == nil {
		return nil, errors.New("checkouts is nil")
	}

	return &Handler{
		bags:     bags,
		checkout: checkouts,
	}, nil
}

func (h *Handler) GetBag(c *gin.Context) {
	messages := notify.NewMessages()

	snapshot, err := h.bags.Snapshot(c.Request.Context(), sessionID(c))
	if err != nil {
		h.fail(c, "Handler.GetBag", err, messages)
		return
	}

	sendJSONResponse(c, http.StatusOK, gin.H{"bag": toSnapshotResponse(snapshot)}, messages)
}

func (h *Handler) AddToBag(c *gin.Context) {
	messages := notify.NewMessages()

	req, err := mutationRequest(c)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, err, messages)
		return
	}

	if _, err := h.bags.AddToBag(c.Request.Context(), req, messages); err != nil {
		h.fail(c, "Handler.AddToBag", err, messages)
		return
	}

	h.sendSnapshot(c, messages)
}

func (h *Handler) AdjustBag(c *gin.Context) {
	messages := notify.NewMessages()

	req, err := mutationRequest(c)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, err, messages)
		return
	}

	if _, err := h.bags.AdjustBag(c.Request.Context(), req, messages); err != nil {
		h.fail(c, "Handler.AdjustBag", err, messages)
		return
	}

	h.sendSnapshot(c, messages)
}

// RemoveFromBag answers every failure with 500 and its reason.
func (h *Handler) RemoveFromBag(c *gin.Context) {
	messages := notify.NewMessages()

	req, err := mutationRequest(c)
	if err == nil {
		_, err = h.bags.RemoveFromBag(c.Request.Context(), req, messages)
	}
	if err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, err, messages)
		return
	}

	h.sendSnapshot(c, messages)
}

func (h *Handler) Checkout(c *gin.Context) {
	messages := notify.NewMessages()

	var customer domain.CustomerDetails
	if err := c.ShouldBind(&customer); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, fmt.Errorf("c.ShouldBind: %w", err), messages)
		return
	}

	receipt, err := h.checkout.PlaceOrder(c.Request.Context(), sessionID(c), customer, messages)
	if err != nil {
		h.fail(c, "Handler.Checkout", err, messages)
		return
	}

	sendJSONResponse(c, http.StatusCreated, gin.H{
		"order":         toOrderResponse(receipt.Order),
		"client_secret": receipt.ClientSecret,
	}, messages)
}

func (h *Handler) CheckoutSuccess(c *gin.Context) {
	messages := notify.NewMessages()

	order, err := h.checkout.GetOrder(c.Request.Context(), c.Param("order_number"))
	if err != nil {
		h.fail(c, "Handler.CheckoutSuccess", err, messages)
		return
	}

	sendJSONResponse(c, http.StatusOK, gin.H{"order": toOrderResponse(order)}, messages)
}

// sendSnapshot answers a successful mutation with the priced bag. A bag that can no longer
// be priced is still reported as changed.
func (h *Handler) sendSnapshot(c *gin.Context, messages *notify.Messages) {
	snapshot, err := h.bags.Snapshot(c.Request.Context(), sessionID(c))
	if err != nil {
		slog.Warn("Bag pricing failed",
			"method", "Handler.sendSnapshot",
			"error", err)
		sendJSONResponse(c, http.StatusOK, gin.H{}, messages)
		return
	}

	sendJSONResponse(c, http.StatusOK, gin.H{"bag": toSnapshotResponse(snapshot)}, messages)
}

// fail hides the cause of unexpected errors from the client.
func (h *Handler) fail(c *gin.Context, method string, err error, messages *notify.Messages) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		slog.Error("Request failed",
			"method", method,
			"error", err)
		err = errors.New(http.StatusText(status))
	}

	sendErrorResponse(c, status, err, messages)
}

func mutationRequest(c *gin.Context) (bag.MutationRequest, error) {
	var req bag.MutationRequest

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		return req, domain.NewValidationError("product_id", "is not a valid id")
	}

	return bag.MutationRequest{
		SessionID: sessionID(c),
		ProductID: productID,
		Quantity:  c.PostForm("quantity"),
		Size:      c.PostForm("product_size"),
	}, nil
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
