// server/internal/api/handlers/factory_handler.go
package handlers

import (
	"context"
	"net/http"
	"sort"
	"strconv"

	"surat-palm-api-server/internal/auth"
	"surat-palm-api-server/internal/geo"
	"surat-palm-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Default user location when the client sends no coordinates: the centre of
// Surat Thani city.
const (
	defaultUserLat = 9.1382
	defaultUserLng = 99.3217
)

type FactoryHandler struct {
	DB *mongo.Database
}

type RegisterFactoryRequest struct {
	Name       string   `json:"name" binding:"required"`
	Username   string   `json:"username" binding:"required,min=4"`
	Password   string   `json:"password" binding:"required,min=6"`
	Latitude   float64  `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude  float64  `json:"longitude" binding:"required,min=-180,max=180"`
	PricePerKg float64  `json:"pricePerKg" binding:"min=0"`
	QueueTons  float64  `json:"queueTons" binding:"min=0"`
	IsOpen     bool     `json:"isOpen"`
	OpenTime   string   `json:"openTime"`
	CloseTime  string   `json:"closeTime"`
	ClosedDays []string `json:"closedDays"`
	Phone      string   `json:"phone"`
	Address    string   `json:"address"`
	District   string   `json:"district"`
}

type AdminCreateFactoryRequest struct {
	Name       string   `json:"name" binding:"required"`
	Latitude   float64  `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude  float64  `json:"longitude" binding:"required,min=-180,max=180"`
	PricePerKg float64  `json:"pricePerKg" binding:"min=0"`
	QueueTons  float64  `json:"queueTons" binding:"min=0"`
	IsOpen     bool     `json:"isOpen"`
	OpenTime   string   `json:"openTime"`
	CloseTime  string   `json:"closeTime"`
	ClosedDays []string `json:"closedDays"`
	Phone      string   `json:"phone"`
	Address    string   `json:"address"`
	District   string   `json:"district"`
}

type UpdateFactoryRequest struct {
	Name       *string   `json:"name"`
	Latitude   *float64  `json:"latitude"`
	Longitude  *float64  `json:"longitude"`
	PricePerKg *float64  `json:"pricePerKg"`
	QueueTons  *float64  `json:"queueTons"`
	IsOpen     *bool     `json:"isOpen"`
	OpenTime   *string   `json:"openTime"`
	CloseTime  *string   `json:"closeTime"`
	ClosedDays *[]string `json:"closedDays"`
	Phone      *string   `json:"phone"`
	Address    *string   `json:"address"`
	District   *string   `json:"district"`
}

type FactoryLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GetAllFactories lists the whole directory.
func (h *FactoryHandler) GetAllFactories(c *gin.Context) {
	collection := h.DB.Collection("factories")

	cursor, err := collection.Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query factories"})
		return
	}
	defer cursor.Close(context.Background())

	var factories []models.Factory
	if err = cursor.All(context.Background(), &factories); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode factories"})
		return
	}

	if factories == nil {
		factories = []models.Factory{}
	}

	sanitized := make([]models.Factory, 0, len(factories))
	for _, f := range factories {
		sanitized = append(sanitized, f.Sanitized())
	}

	c.JSON(http.StatusOK, sanitized)
}

// GetRecommendations ranks factories for the caller's location, either by
// distance ("nearest") or by purchase price ("highest_price").
func (h *FactoryHandler) GetRecommendations(c *gin.Context) {
	userLat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		userLat = defaultUserLat
	}
	userLng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		userLng = defaultUserLng
	}
	mode := c.DefaultQuery("mode", "nearest")

	collection := h.DB.Collection("factories")
	cursor, err := collection.Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query factories"})
		return
	}
	defer cursor.Close(context.Background())

	var factories []models.Factory
	if err = cursor.All(context.Background(), &factories); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode factories"})
		return
	}

	ranked := make([]models.FactoryWithDistance, 0, len(factories))
	for _, f := range factories {
		ranked = append(ranked, models.FactoryWithDistance{
			Factory:  f.Sanitized(),
			Distance: geo.Distance(userLat, userLng, f.Latitude, f.Longitude),
		})
	}

	if mode == "highest_price" {
		sort.Slice(ranked, func(i, j int) bool { return ranked[i].PricePerKg > ranked[j].PricePerKg })
	} else {
		sort.Slice(ranked, func(i, j int) bool { return ranked[i].Distance < ranked[j].Distance })
	}

	c.JSON(http.StatusOK, ranked)
}

// GetFactoryByID returns one factory by its public ID.
func (h *FactoryHandler) GetFactoryByID(c *gin.Context) {
	factoryID := c.Param("id")

	collection := h.DB.Collection("factories")
	var factory models.Factory
	err := collection.FindOne(context.Background(), bson.M{"factoryID": factoryID}).Decode(&factory)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Factory not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve factory"})
		}
		return
	}

	c.JSON(http.StatusOK, factory.Sanitized())
}

// Register creates a factory account with login credentials.
func (h *FactoryHandler) Register(c *gin.Context) {
	var req RegisterFactoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("factories")

	count, err := collection.CountDocuments(context.Background(), bson.M{"username": req.Username})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for factory"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	newFactory := models.Factory{
		FactoryID:  "f-" + uuid.New().String()[:8],
		Name:       req.Name,
		Username:   req.Username,
		Password:   hashedPassword,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		PricePerKg: req.PricePerKg,
		QueueTons:  req.QueueTons,
		IsOpen:     req.IsOpen,
		OpenTime:   req.OpenTime,
		CloseTime:  req.CloseTime,
		ClosedDays: req.ClosedDays,
		Phone:      req.Phone,
		Address:    req.Address,
		District:   req.District,
	}
	if newFactory.ClosedDays == nil {
		newFactory.ClosedDays = []string{}
	}

	if _, err := collection.InsertOne(context.Background(), newFactory); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register factory"})
		return
	}

	token, err := auth.GenerateJWT(req.Username, "factory", newFactory.FactoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"factory": newFactory.Sanitized(),
		"token":   token,
	})
}

// Login authenticates a factory account and issues a JWT.
func (h *FactoryHandler) Login(c *gin.Context) {
	var req FactoryLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("factories")
	var factory models.Factory
	err := collection.FindOne(context.Background(), bson.M{"username": req.Username}).Decode(&factory)
	if err != nil || factory.Password == "" || !auth.CheckPasswordHash(req.Password, factory.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := auth.GenerateJWT(factory.Username, "factory", factory.FactoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"factory": factory.Sanitized(),
		"token":   token,
	})
}

// UpdateFactory applies a partial update to one factory.
func (h *FactoryHandler) UpdateFactory(c *gin.Context) {
	factoryID := c.Param("id")

	var req UpdateFactoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Latitude != nil {
		set["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		set["longitude"] = *req.Longitude
	}
	if req.PricePerKg != nil {
		set["pricePerKg"] = *req.PricePerKg
	}
	if req.QueueTons != nil {
		set["queueTons"] = *req.QueueTons
	}
	if req.IsOpen != nil {
		set["isOpen"] = *req.IsOpen
	}
	if req.OpenTime != nil {
		set["openTime"] = *req.OpenTime
	}
	if req.CloseTime != nil {
		set["closeTime"] = *req.CloseTime
	}
	if req.ClosedDays != nil {
		set["closedDays"] = *req.ClosedDays
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Address != nil {
		set["address"] = *req.Address
	}
	if req.District != nil {
		set["district"] = *req.District
	}

	collection := h.DB.Collection("factories")
	result, err := collection.UpdateOne(context.Background(), bson.M{"factoryID": factoryID}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update factory"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Factory not found"})
		return
	}

	var factory models.Factory
	if err := collection.FindOne(context.Background(), bson.M{"factoryID": factoryID}).Decode(&factory); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve factory"})
		return
	}

	c.JSON(http.StatusOK, factory.Sanitized())
}

// AdminCreateFactory adds a directory entry that has no login credentials.
func (h *FactoryHandler) AdminCreateFactory(c *gin.Context) {
	var req AdminCreateFactoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newFactory := models.Factory{
		FactoryID:  "f-" + uuid.New().String()[:8],
		Name:       req.Name,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		PricePerKg: req.PricePerKg,
		QueueTons:  req.QueueTons,
		IsOpen:     req.IsOpen,
		OpenTime:   req.OpenTime,
		CloseTime:  req.CloseTime,
		ClosedDays: req.ClosedDays,
		Phone:      req.Phone,
		Address:    req.Address,
		District:   req.District,
	}
	if newFactory.ClosedDays == nil {
		newFactory.ClosedDays = []string{}
	}

	collection := h.DB.Collection("factories")
	if _, err := collection.InsertOne(context.Background(), newFactory); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create factory"})
		return
	}

	c.JSON(http.StatusCreated, newFactory)
}

// DeleteFactory removes one directory entry.
func (h *FactoryHandler) DeleteFactory(c *gin.Context) {
	factoryID := c.Param("id")

	collection := h.DB.Collection("factories")
	result, err := collection.DeleteOne(context.Background(), bson.M{"factoryID": factoryID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete factory"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Factory not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Factory deleted successfully"})
}
