package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"droneshop/internal/checkout"
	"droneshop/internal/models"
	"droneshop/internal/payments"
)

type workshopPaymentRequest struct {
	WorkshopID      string              `json:"workshopId" binding:"required"`
	SelectedDate    string              `json:"selectedDate" binding:"required"`
	ParticipantInfo models.CustomerInfo `json:"participantInfo" binding:"required"`
}

// CreateWorkshopPayment mirrors CreateOrder for workshop seats: it checks
// the date is offered and seats remain, registers a gateway order, and
// persists a pending registration. Runs behind UserAuth.
func CreateWorkshopPayment(db *mongo.Database, gateway *payments.Gateway, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /workshops/payment/create"
		defer handlePanic(c, route)

		userID, ok := c.MustGet("userId").(primitive.ObjectID)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
			return
		}

		var req workshopPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if fieldErrs := checkout.ValidateCustomerInfo(req.ParticipantInfo); len(fieldErrs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "validation failed",
				"fields":  fieldErrs,
			})
			return
		}
		req.ParticipantInfo.Phone = checkout.NormalizePhone(req.ParticipantInfo.Phone)

		workshopID, err := primitive.ObjectIDFromHex(req.WorkshopID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid workshopId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var workshop models.Workshop
		err = db.Collection("workshops").FindOne(ctx, bson.M{
			"_id":      workshopID,
			"isActive": true,
		}).Decode(&workshop)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "workshop not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if !dateOffered(workshop.Dates, req.SelectedDate) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "date not offered"})
			return
		}

		// Seats are held only by paid registrations; a pending one that is
		// never verified does not block the date.
		taken, err := db.Collection("workshop_registrations").CountDocuments(ctx, bson.M{
			"workshopId":   workshopID,
			"selectedDate": req.SelectedDate,
			"status":       models.OrderStatusPaid,
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if int(taken) >= workshop.Seats {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "workshop date is full"})
			return
		}

		registrationNo := newOrderNumber("WRK")

		gatewayOrder, err := gateway.CreateOrder(workshop.Price, currency, registrationNo)
		if err != nil {
			log.Println("[WORKSHOP] [ERROR] gateway order create failed:", err)
			respondWithError(c, http.StatusBadGateway, route, "payment gateway unavailable")
			return
		}

		registration := models.WorkshopRegistration{
			RegistrationNo:  registrationNo,
			WorkshopID:      workshopID,
			UserID:          userID,
			SelectedDate:    req.SelectedDate,
			Participant:     req.ParticipantInfo,
			TotalAmount:     workshop.Price,
			Currency:        currency,
			RazorpayOrderID: gatewayOrder.ID,
			Status:          models.OrderStatusPending,
			CreatedAt:       time.Now(),
		}

		res, err := db.Collection("workshop_registrations").InsertOne(ctx, registration)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		registrationID, _ := res.InsertedID.(primitive.ObjectID)

		log.Printf("[WORKSHOP] [INFO] registration %s created for workshop %s", registrationNo, workshop.Title)

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"order": gin.H{
				"id":              registrationID.Hex(),
				"orderId":         registration.RegistrationNo,
				"razorpayOrderId": registration.RazorpayOrderID,
				"amount":          registration.TotalAmount,
				"currency":        registration.Currency,
			},
			"razorpayKey": gateway.KeyID(),
		})
	}
}

// VerifyWorkshopPayment mirrors VerifyPayment for registrations.
func VerifyWorkshopPayment(db *mongo.Database, gateway *payments.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /workshops/payment/verify"
		defer handlePanic(c, route)

		var req verifyPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing payment details"})
			return
		}

		registrationID, err := primitive.ObjectIDFromHex(req.OrderID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid order id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var registration models.WorkshopRegistration
		err = db.Collection("workshop_registrations").FindOne(ctx, bson.M{"_id": registrationID}).Decode(&registration)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "registration not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if registration.RazorpayOrderID != req.RazorpayOrderID {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "order mismatch"})
			return
		}

		if err := gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature); err != nil {
			log.Printf("[WORKSHOP] [ERROR] verification failed for %s: %v", registration.RegistrationNo, err)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "signature mismatch"})
			return
		}

		now := time.Now()
		update := bson.M{"$set": bson.M{
			"status":            models.OrderStatusPaid,
			"razorpayPaymentId": req.RazorpayPaymentID,
			"paidAt":            now,
		}}
		if _, err := db.Collection("workshop_registrations").UpdateOne(ctx, bson.M{"_id": registrationID}, update); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[WORKSHOP] [INFO] registration %s paid, payment %s", registration.RegistrationNo, req.RazorpayPaymentID)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"order": gin.H{
				"orderId":     registration.RegistrationNo,
				"paymentId":   req.RazorpayPaymentID,
				"totalAmount": registration.TotalAmount,
			},
		})
	}
}

func dateOffered(dates []string, selected string) bool {
	for _, d := range dates {
		if d == selected {
			return true
		}
	}
	return false
}
