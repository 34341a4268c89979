package handlers

import (
	"errors"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/samurai100996/property-preview/config"
	"github.com/samurai100996/property-preview/models"
	"github.com/samurai100996/property-preview/repository"
)

type EnquiryController struct {
	enquiries  repository.EnquiryRepository
	properties repository.PropertyRepository
}

func NewEnquiryController() *EnquiryController {
	collectionName := os.Getenv("MONGODB_COLLECTION_ENQUIRIES")
	if collectionName == "" {
		collectionName = "enquiries"
	}
	propertyCollection := os.Getenv("MONGODB_COLLECTION_PROPERTIES")
	if propertyCollection == "" {
		propertyCollection = "properties"
	}
	return &EnquiryController{
		enquiries:  repository.NewMongoEnquiryRepository(config.GetCollection(collectionName)),
		properties: repository.NewMongoPropertyRepository(config.GetCollection(propertyCollection)),
	}
}

// CreateEnquiry persists a contact-form submission with the property
// title snapshotted server-side at the time of enquiry.
func (ec *EnquiryController) CreateEnquiry(c echo.Context) error {
	var req struct {
		Name       string `json:"name"`
		Phone      string `json:"phone"`
		Message    string `json:"message"`
		PropertyID string `json:"propertyId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.Name == "" || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Name and phone are required"})
	}

	property, err := ec.properties.Get(c.Request().Context(), req.PropertyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}

	enquiry := models.Enquiry{
		Name:          req.Name,
		Phone:         req.Phone,
		Message:       req.Message,
		PropertyID:    req.PropertyID,
		PropertyTitle: property.Title,
	}
	if _, err := ec.enquiries.Create(c.Request().Context(), &enquiry); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to submit enquiry"})
	}
	return c.JSON(http.StatusCreated, enquiry)
}

func (ec *EnquiryController) ListEnquiries(c echo.Context) error {
	enquiries, err := ec.enquiries.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch enquiries"})
	}
	if enquiries == nil {
		enquiries = []models.Enquiry{}
	}
	return c.JSON(http.StatusOK, enquiries)
}
