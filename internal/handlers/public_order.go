package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"droneshop/internal/checkout"
	"droneshop/internal/models"
	"droneshop/internal/payments"
)

/* =========================
   REQUEST DTOs
========================= */

type createOrderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type createOrderRequest struct {
	Items        []createOrderItemRequest `json:"items" binding:"required"`
	CustomerInfo models.CustomerInfo      `json:"customerInfo" binding:"required"`
	TotalAmount  int64                    `json:"totalAmount"`
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	OrderID           string `json:"order_id" binding:"required"`
}

/* =========================
   CREATE ORDER
========================= */

// CreateOrder validates the order intent, snapshots catalog prices,
// registers a gateway order and persists the pending order. The response
// carries everything the client needs to open the payment widget.
func CreateOrder(db *mongo.Database, gateway *payments.Gateway, jwtSecret, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders/create"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if len(req.Items) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "at least one item is required")
			return
		}

		if fieldErrs := checkout.ValidateCustomerInfo(req.CustomerInfo); len(fieldErrs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "validation failed",
				"fields":  fieldErrs,
			})
			return
		}
		req.CustomerInfo.Phone = checkout.NormalizePhone(req.CustomerInfo.Phone)

		// Guest checkout is allowed; a valid token just links the order.
		userID, err := userIDFromHeader(c.GetHeader("Authorization"), jwtSecret)
		if err != nil {
			log.Println("[ORDER] [ERROR] token validation failed:", err)
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		items, err := snapshotOrderItems(ctx, db, req.Items)
		if err != nil {
			respondOrderBuildError(c, route, err)
			return
		}

		total := orderTotal(items)
		if req.TotalAmount != total {
			respondWithError(c, http.StatusBadRequest, route, "total amount mismatch")
			return
		}

		orderNumber := newOrderNumber("ORD")

		gatewayOrder, err := gateway.CreateOrder(total, currency, orderNumber)
		if err != nil {
			log.Println("[ORDER] [ERROR] gateway order create failed:", err)
			respondWithError(c, http.StatusBadGateway, route, "payment gateway unavailable")
			return
		}

		order := models.Order{
			OrderNumber:     orderNumber,
			UserID:          userID,
			Items:           items,
			Customer:        req.CustomerInfo,
			TotalAmount:     total,
			Currency:        currency,
			RazorpayOrderID: gatewayOrder.ID,
			Status:          models.OrderStatusPending,
			DeliveryStatus:  models.DeliveryProcessing,
			CreatedAt:       time.Now(),
		}

		orderID, err := reserveStockAndInsert(ctx, db, &order, req.Items)
		if err != nil {
			respondOrderBuildError(c, route, err)
			return
		}

		log.Printf("[ORDER] [INFO] order %s created, gateway order %s", orderNumber, gatewayOrder.ID)

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"order": gin.H{
				"id":              orderID.Hex(),
				"orderId":         order.OrderNumber,
				"razorpayOrderId": order.RazorpayOrderID,
				"amount":          order.TotalAmount,
				"currency":        order.Currency,
			},
			"razorpayKey": gateway.KeyID(),
		})
	}
}

// snapshotOrderItems loads each product and captures name, effective price
// and primary image at order time.
func snapshotOrderItems(ctx context.Context, db *mongo.Database, reqItems []createOrderItemRequest) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(reqItems))

	for _, item := range reqItems {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, errors.New("invalid productId")
		}
		if item.Quantity <= 0 {
			return nil, errors.New("quantity must be greater than zero")
		}

		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{
			"_id":       productID,
			"isActive":  bson.M{"$ne": false},
			"isDeleted": bson.M{"$ne": true},
		}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			return nil, productNotFoundError{ProductID: productID}
		}
		if err != nil {
			return nil, err
		}

		if product.Stock < item.Quantity {
			return nil, outOfStockError{
				ProductID: productID,
				Available: product.Stock,
				Requested: item.Quantity,
			}
		}

		items = append(items, models.OrderItem{
			ProductID: productID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
			Image:     product.Images.Primary(),
		})
	}

	return items, nil
}

// reserveStockAndInsert decrements stock and inserts the order in one
// transaction. The stock filter re-checks availability so concurrent
// orders cannot oversell.
func reserveStockAndInsert(ctx context.Context, db *mongo.Database, order *models.Order, reqItems []createOrderItemRequest) (primitive.ObjectID, error) {
	session, err := db.Client().StartSession()
	if err != nil {
		return primitive.NilObjectID, err
	}
	defer session.EndSession(ctx)

	var orderID primitive.ObjectID
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		for i, item := range order.Items {
			filter := bson.M{
				"_id":       item.ProductID,
				"isDeleted": bson.M{"$ne": true},
				"stock":     bson.M{"$gte": item.Quantity},
			}
			update := bson.M{"$inc": bson.M{"stock": -item.Quantity}}

			res, err := db.Collection("products").UpdateOne(sessCtx, filter, update)
			if err != nil {
				return nil, err
			}
			if res.MatchedCount == 0 {
				return nil, outOfStockError{
					ProductID: item.ProductID,
					Requested: reqItems[i].Quantity,
				}
			}
		}

		res, err := db.Collection("orders").InsertOne(sessCtx, order)
		if err != nil {
			return nil, err
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			orderID = id
		}
		return nil, nil
	})
	if err != nil {
		return primitive.NilObjectID, err
	}

	order.ID = orderID
	return orderID, nil
}

func respondOrderBuildError(c *gin.Context, route string, err error) {
	var stockErr outOfStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":   false,
			"error":     "insufficient stock",
			"productId": stockErr.ProductID.Hex(),
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		})
		return
	}
	var notFoundErr productNotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":   false,
			"error":     "product not found",
			"productId": notFoundErr.ProductID.Hex(),
		})
		return
	}
	respondWithError(c, http.StatusInternalServerError, route, "db error")
}

/* =========================
   VERIFY PAYMENT
========================= */

// VerifyPayment checks the gateway's signed payload and marks the order
// paid. The signature check is the sole proof of payment; the callback's
// arrival alone proves nothing.
func VerifyPayment(db *mongo.Database, gateway *payments.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders/verify"
		defer handlePanic(c, route)

		var req verifyPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing payment details"})
			return
		}

		orderID, err := primitive.ObjectIDFromHex(req.OrderID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid order id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "order not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if order.RazorpayOrderID != req.RazorpayOrderID {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "order mismatch"})
			return
		}

		if err := gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature); err != nil {
			// Order stays pending: the same order may be retried or abandoned.
			log.Printf("[ORDER] [ERROR] verification failed for %s: %v", order.OrderNumber, err)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "signature mismatch"})
			return
		}

		now := time.Now()
		update := bson.M{"$set": bson.M{
			"status":            models.OrderStatusPaid,
			"razorpayPaymentId": req.RazorpayPaymentID,
			"paidAt":            now,
		}}
		if _, err := db.Collection("orders").UpdateOne(ctx, bson.M{"_id": orderID}, update); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[ORDER] [INFO] order %s paid, payment %s", order.OrderNumber, req.RazorpayPaymentID)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"order": gin.H{
				"orderId":     order.OrderNumber,
				"paymentId":   req.RazorpayPaymentID,
				"totalAmount": order.TotalAmount,
			},
		})
	}
}

/* =========================
   GET ORDER
========================= */

// GetOrder returns the canonical order projection by its human-facing
// order number.
func GetOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:orderId"
		defer handlePanic(c, route)

		orderNumber := strings.TrimSpace(c.Param("orderId"))
		if orderNumber == "" {
			respondWithError(c, http.StatusBadRequest, route, "order id is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err := db.Collection("orders").FindOne(ctx, bson.M{"orderNumber": orderNumber}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

/* =========================
   SHARED
========================= */

func newOrderNumber(prefix string) string {
	return prefix + "-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// userIDFromHeader resolves an optional bearer token. Empty header means a
// guest order; a malformed token is rejected.
func userIDFromHeader(header, secret string) (*primitive.ObjectID, error) {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("invalid token format")
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userIDValue, ok := claims["userId"].(string)
	if !ok || strings.TrimSpace(userIDValue) == "" {
		return nil, errors.New("userId claim missing")
	}

	userID, err := primitive.ObjectIDFromHex(userIDValue)
	if err != nil {
		return nil, errors.New("invalid userId")
	}

	return &userID, nil
}

type outOfStockError struct {
	ProductID primitive.ObjectID
	Available int
	Requested int
}

func (e outOfStockError) Error() string {
	return "product out of stock"
}

type productNotFoundError struct {
	ProductID primitive.ObjectID
}

func (e productNotFoundError) Error() string {
	return "product not found"
}
