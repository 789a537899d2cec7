package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/nikolayk812/bagcheckout/internal/notify"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type bagLineResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Size      string          `json:"size,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type snapshotResponse struct {
	Lines                 []bagLineResponse `json:"lines"`
	Total                 decimal.Decimal   `json:"total"`
	ProductCount          int               `json:"product_count"`
	Delivery              decimal.Decimal   `json:"delivery"`
	FreeDeliveryDelta     decimal.Decimal   `json:"free_delivery_delta"`
	FreeDeliveryThreshold decimal.Decimal   `json:"free_delivery_threshold"`
	GrandTotal            decimal.Decimal   `json:"grand_total"`
}

type lineItemResponse struct {
	ProductID     uuid.UUID       `json:"product_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Size          string          `json:"size,omitempty"`
	Quantity      int             `json:"quantity"`
	LineItemTotal decimal.Decimal `json:"lineitem_total"`
}

type orderResponse struct {
	OrderNumber      string                 `json:"order_number"`
	Customer         domain.CustomerDetails `json:"customer"`
	LineItems        []lineItemResponse     `json:"line_items"`
	OrderTotal       decimal.Decimal        `json:"order_total"`
	DeliveryCost     decimal.Decimal        `json:"delivery_cost"`
	GrandTotal       decimal.Decimal        `json:"grand_total"`
	PaymentReference string                 `json:"payment_reference"`
	CreatedAt        time.Time              `json:"created_at"`
}

func toSnapshotResponse(s domain.BagSnapshot) snapshotResponse {
	return snapshotResponse{
		Lines: lo.Map(s.Lines, func(l domain.BagLine, _ int) bagLineResponse {
			return bagLineResponse{
				ProductID: l.ProductID,
				Name:      l.Product.Name,
				Size:      string(l.Size),
				Quantity:  l.Quantity,
				Price:     l.Product.Price,
				Subtotal:  l.Subtotal(),
			}
		}),
		Total:                 s.Total,
		ProductCount:          s.ProductCount,
		Delivery:              s.Delivery,
		FreeDeliveryDelta:     s.FreeDeliveryDelta,
		FreeDeliveryThreshold: s.FreeDeliveryThreshold,
		GrandTotal:            s.GrandTotal,
	}
}

func toOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		OrderNumber: o.OrderNumber,
		Customer:    o.Customer,
		LineItems: lo.Map(o.LineItems, func(item domain.OrderLineItem, _ int) lineItemResponse {
			return lineItemResponse{
				ProductID:     item.Product.ID,
				SKU:           item.Product.SKU,
				Name:          item.Product.Name,
				Size:          string(item.ProductSize),
				Quantity:      item.Quantity,
				LineItemTotal: item.LineItemTotal,
			}
		}),
		OrderTotal:       o.OrderTotal,
		DeliveryCost:     o.DeliveryCost,
		GrandTotal:       o.GrandTotal,
		PaymentReference: o.PaymentReference,
		CreatedAt:        o.CreatedAt,
	}
}

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	var (
		validationErr  *domain.ValidationError
		validationErrs domain.ValidationErrors
		externalErr    *domain.ExternalServiceError
	)

	switch {
	case errors.As(err, &validationErrs), errors.As(err, &validationErr), errors.Is(err, domain.ErrEmptyBag):
		return http.StatusBadRequest
	// a product gone wraps a not found error, it is checked first
	case errors.Is(err, domain.ErrProductGone), errors.Is(err, domain.ErrPriceChanged):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &externalErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func sendJSONResponse(c *gin.Context, status int, data gin.H, messages *notify.Messages) {
	data["messages"] = messages.All()
	c.JSON(status, data)
}

func sendErrorResponse(c *gin.Context, status int, err error, messages *notify.Messages) {
	sendJSONResponse(c, status, gin.H{"error": err.Error()}, messages)
}
