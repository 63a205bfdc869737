package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"droneshop/internal/models"
)

type createWorkshopRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       int64    `json:"price" binding:"required"`
	Dates       []string `json:"dates" binding:"required"`
	Seats       int      `json:"seats" binding:"required"`
}

func CreateWorkshop(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/workshops"
		defer handlePanic(c, route)

		var req createWorkshopRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if req.Price <= 0 || req.Seats <= 0 || len(req.Dates) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "price, seats and dates are required")
			return
		}

		workshop := models.Workshop{
			Title:       strings.TrimSpace(req.Title),
			Description: strings.TrimSpace(req.Description),
			Price:       req.Price,
			Dates:       req.Dates,
			Seats:       req.Seats,
			IsActive:    true,
			CreatedAt:   time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("workshops").InsertOne(ctx, workshop)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		workshop.ID, _ = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, workshop)
	}
}

// GetWorkshopRegistrations lists registrations for one workshop, the
// back-office roster view.
func GetWorkshopRegistrations(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/workshops/:id/registrations"
		defer handlePanic(c, route)

		workshopID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		filter := bson.M{"workshopId": workshopID}
		if date := strings.TrimSpace(c.Query("date")); date != "" {
			filter["selectedDate"] = date
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("workshop_registrations").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		var registrations []models.WorkshopRegistration
		if err := cursor.All(ctx, &registrations); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, registrations)
	}
}
