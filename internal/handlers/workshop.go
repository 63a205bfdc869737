package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"droneshop/internal/models"
)

// GetWorkshops lists upcoming active workshops.
func GetWorkshops(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /workshops"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("workshops").Find(ctx, bson.M{"isActive": true}, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		var workshops []models.Workshop
		if err := cursor.All(ctx, &workshops); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, workshops)
	}
}

// GetWorkshop returns one workshop detail.
func GetWorkshop(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /workshops/:id"
		defer handlePanic(c, route)

		workshopID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var workshop models.Workshop
		err = db.Collection("workshops").FindOne(ctx, bson.M{
			"_id":      workshopID,
			"isActive": true,
		}).Decode(&workshop)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "workshop not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, workshop)
	}
}
