package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	futsalRepo "pitchbook/database/repository/futsal"
	"pitchbook/models"
	"pitchbook/services/futsal"
	"pitchbook/utils"
)

type FutsalHandler struct {
	FutsalService futsal.FutsalService
}

func NewFutsalHandler(svc futsal.FutsalService) *FutsalHandler {
	return &FutsalHandler{FutsalService: svc}
}

// CreateFutsalHandler handles POST /futsals (owner only).
func (h *FutsalHandler) CreateFutsalHandler(c *gin.Context) {
	ownerID := c.GetString("userID")
	var req models.Futsal
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	created, err := h.FutsalService.CreateFutsal(c.Request.Context(), ownerID, req)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to create venue", err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetFutsalHandler handles GET /futsals/:futsalID (public).
func (h *FutsalHandler) GetFutsalHandler(c *gin.Context) {
	f, err := h.FutsalService.GetFutsalByID(c.Request.Context(), c.Param("futsalID"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Venue not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, f)
}

// SearchFutsalsHandler handles GET /futsals (public).
func (h *FutsalHandler) SearchFutsalsHandler(c *gin.Context) {
	limit, offset := parsePagination(c)
	filter := futsalRepo.SearchFilter{
		Query:  c.Query("q"),
		City:   c.Query("city"),
		SortBy: c.Query("sortBy"),
		Limit:  limit,
		Offset: offset,
	}
	filter.MaxPrice, _ = strconv.ParseFloat(c.Query("maxPrice"), 64)
	filter.Longitude, _ = strconv.ParseFloat(c.Query("lng"), 64)
	filter.Latitude, _ = strconv.ParseFloat(c.Query("lat"), 64)
	filter.RadiusKm, _ = strconv.ParseFloat(c.Query("radiusKm"), 64)

	results, err := h.FutsalService.SearchFutsals(c.Request.Context(), filter)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Search failed", err.Error())
		return
	}
	if results == nil {
		results = []models.Futsal{}
	}
	c.JSON(http.StatusOK, gin.H{"futsals": results})
}

// UpdateFutsalHandler handles PATCH /futsals/:futsalID.
func (h *FutsalHandler) UpdateFutsalHandler(c *gin.Context) {
	var update map[string]any
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	f, err := h.FutsalService.UpdateFutsal(c.Request.Context(),
		c.Param("futsalID"), c.GetString("userID"), c.GetString("role"), update)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to update venue", err.Error())
		return
	}
	c.JSON(http.StatusOK, f)
}

// DeleteFutsalHandler handles DELETE /futsals/:futsalID.
func (h *FutsalHandler) DeleteFutsalHandler(c *gin.Context) {
	err := h.FutsalService.DeleteFutsal(c.Request.Context(),
		c.Param("futsalID"), c.GetString("userID"), c.GetString("role"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to delete venue", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Venue deleted"})
}

// MyFutsalsHandler handles GET /futsals/mine (owner only).
func (h *FutsalHandler) MyFutsalsHandler(c *gin.Context) {
	results, err := h.FutsalService.ListByOwner(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list venues", err.Error())
		return
	}
	if results == nil {
		results = []models.Futsal{}
	}
	c.JSON(http.StatusOK, gin.H{"futsals": results})
}

// UploadPhotoHandler handles POST /futsals/:futsalID/photos. Accepts a
// multipart form with an "image" file field.
func (h *FutsalHandler) UploadPhotoHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "image file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	defer file.Close()

	url, err := h.FutsalService.AddPhoto(c.Request.Context(),
		c.Param("futsalID"), c.GetString("userID"), c.GetString("role"), file)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to upload photo", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
