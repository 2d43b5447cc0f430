package payments

import (
	"errors"
	"net/http"
	"time"

	"fanloop-backend/db"
	"fanloop-backend/models"
	"fanloop-backend/pkg/gateway"
	"fanloop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type confirmBody struct {
	OrderID    string `json:"orderId" binding:"required"`
	PaymentKey string `json:"paymentKey" binding:"required"`
	Amount     int    `json:"amount" binding:"required"`
}

// @Summary Create a payment order
// @Description Create a pending order for a one-month membership to a creator. The order expires after 30 minutes.
// @Tags payments
// @Accept json
// @Produce json
// @Param order body models.OrderCreate true "Target creator"
// @Security BearerAuth
// @Success 201 {object} models.Order
// @Failure 400 {object} utils.Response "code: SELF_SUBSCRIBE_FORBIDDEN"
// @Failure 403 {object} utils.Response "code: NOT_CREATOR"
// @Router /orders [post]
func CreateOrder(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendErrorCode(c, http.StatusUnauthorized, utils.CodeLoginRequired, "User not found in token")
		return
	}

	var body models.OrderCreate
	if !utils.ValidateRequestBody(c, &body) {
		return
	}

	if body.CreatorID == userID {
		utils.LogErrorWithUser(userID, nil, "Self order refused in CreateOrder")
		utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeSelfSubscribeForbidden, "You cannot buy a membership to yourself")
		return
	}

	var creator models.User
	if err := db.DB.First(&creator, "id = ?", body.CreatorID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Creator not found in CreateOrder")
		utils.SendErrorCode(c, http.StatusNotFound, utils.CodeNotFound, "Creator not found")
		return
	}
	if creator.Role != models.CreatorRole {
		utils.LogErrorWithUser(userID, nil, "Target is not a creator in CreateOrder")
		utils.SendErrorCode(c, http.StatusForbidden, utils.CodeNotCreator, "Can only buy a membership to a creator")
		return
	}
	if creator.SubscriptionPrice <= 0 {
		utils.LogErrorWithUser(userID, nil, "Creator has no price in CreateOrder")
		utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeInvalidInput, "This creator has no paid membership")
		return
	}

	order := models.Order{
		OrderID:   uuid.NewString(),
		BuyerID:   userID.(string),
		CreatorID: creator.ID,
		Amount:    creator.SubscriptionPrice,
		Status:    models.OrderPending,
		ExpiresAt: time.Now().Add(orderTTL),
	}
	if err := db.DB.Create(&order).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating order in CreateOrder")
		utils.SendError(c, http.StatusInternalServerError, "Error creating order")
		return
	}

	utils.LogSuccessWithUser(userID, "Order created in CreateOrder")
	c.JSON(http.StatusCreated, order)
}

// @Summary Confirm a payment
// @Description Confirm a paid checkout with the gateway payment key. On success the order is marked paid and the membership renewed by one month.
// @Tags payments
// @Accept json
// @Produce json
// @Param confirmation body confirmBody true "Order id, payment key and amount"
// @Security BearerAuth
// @Success 200 {object} models.Payment
// @Failure 400 {object} utils.Response "code: AMOUNT_MISMATCH"
// @Failure 404 {object} utils.Response "code: NOT_FOUND"
// @Failure 409 {object} utils.Response "code: ALREADY_PAID"
// @Failure 502 {object} utils.Response "code: CONFIRM_FAILED"
// @Router /payments/confirm [post]
func ConfirmPayment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendErrorCode(c, http.StatusUnauthorized, utils.CodeLoginRequired, "User not found in token")
		return
	}

	var body confirmBody
	if !utils.ValidateRequestBody(c, &body) {
		return
	}

	payment, err := Confirm(c.Request.Context(), db.DB, Gateway, body.OrderID, body.PaymentKey, body.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			utils.LogErrorWithUser(userID, err, "Order not found in ConfirmPayment")
			utils.SendErrorCode(c, http.StatusNotFound, utils.CodeNotFound, "Order not found")
		case errors.Is(err, ErrAlreadyPaid):
			utils.LogErrorWithUser(userID, nil, "Order already paid in ConfirmPayment")
			utils.SendErrorCode(c, http.StatusConflict, utils.CodeAlreadyPaid, "This order has already been paid")
		case errors.Is(err, ErrOrderClosed):
			utils.LogErrorWithUser(userID, nil, "Order closed in ConfirmPayment")
			utils.SendErrorCode(c, http.StatusConflict, utils.CodeConflict, "This order can no longer be paid")
		case errors.Is(err, ErrAmountMismatch):
			utils.LogErrorWithUser(userID, nil, "Amount mismatch in ConfirmPayment")
			utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeAmountMismatch, "Amount does not match the order")
		case gateway.UserCanceled(err):
			utils.LogErrorWithUser(userID, err, "Checkout canceled by user in ConfirmPayment")
			utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeConfirmFailed, "The checkout was canceled")
		case gateway.ClientFault(err):
			utils.LogErrorWithUser(userID, err, "Gateway declined in ConfirmPayment")
			utils.SendErrorCode(c, http.StatusBadRequest, utils.CodeConfirmFailed, "The payment was declined")
		default:
			utils.LogErrorWithUser(userID, err, "Gateway or storage failure in ConfirmPayment")
			utils.SendErrorCode(c, http.StatusBadGateway, utils.CodeConfirmFailed, "Error confirming the payment")
		}
		return
	}

	utils.LogSuccessWithUser(userID, "Payment confirmed in ConfirmPayment")
	c.JSON(http.StatusOK, payment)
}

// @Summary List the user's orders
// @Description Return the connected user's orders, newest first
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Order
// @Router /orders [get]
func GetMyOrders(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendErrorCode(c, http.StatusUnauthorized, utils.CodeLoginRequired, "User not found in token")
		return
	}

	var orders []models.Order
	if err := db.DB.Where("buyer_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error fetching orders in GetMyOrders")
		utils.SendError(c, http.StatusInternalServerError, "Error fetching orders")
		return
	}

	utils.LogSuccessWithUser(userID, "Orders listed in GetMyOrders")
	c.JSON(http.StatusOK, orders)
}
