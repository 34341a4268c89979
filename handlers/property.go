package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/samurai100996/property-preview/config"
	"github.com/samurai100996/property-preview/models"
	"github.com/samurai100996/property-preview/repository"
	"github.com/samurai100996/property-preview/storage"
	"github.com/samurai100996/property-preview/utils"
	"github.com/samurai100996/property-preview/views"
)

const catalogCacheTTL = 5 * time.Minute

type PropertyController struct {
	repo         repository.PropertyRepository
	store        *storage.DiskStore
	contactEmail string
	batchBusy    func(batchID string) bool
}

func NewPropertyController(store *storage.DiskStore, batchBusy func(string) bool) *PropertyController {
	collectionName := os.Getenv("MONGODB_COLLECTION_PROPERTIES")
	if collectionName == "" {
		collectionName = "properties"
	}
	return &PropertyController{
		repo:         repository.NewMongoPropertyRepository(config.GetCollection(collectionName)),
		store:        store,
		contactEmail: os.Getenv("CONTACT_EMAIL"),
		batchBusy:    batchBusy,
	}
}

// ListProperties serves the full catalog as render-ready summaries,
// cached briefly in redis.
func (pc *PropertyController) ListProperties(c echo.Context) error {
	ctx := c.Request().Context()

	cacheKey := utils.GenerateQueryCacheKey("properties", map[string]string{"view": "catalog"})
	if utils.RedisClient != nil {
		var cached views.Catalog
		if found, err := utils.GetCached(ctx, cacheKey, &cached); err == nil && found {
			return c.JSON(http.StatusOK, cached)
		}
	}

	properties, err := pc.repo.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch properties"})
	}

	catalog := views.NewCatalog(properties)
	if utils.RedisClient != nil {
		if err := utils.SetCached(ctx, cacheKey, catalog, catalogCacheTTL); err != nil {
			log.Printf("Failed to cache catalog: %v", err)
		}
	}
	return c.JSON(http.StatusOK, catalog)
}

// FeaturedProperties serves the bounded home-page carousel preview.
func (pc *PropertyController) FeaturedProperties(c echo.Context) error {
	ctx := c.Request().Context()

	properties, err := pc.repo.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch properties"})
	}
	return c.JSON(http.StatusOK, views.FeaturedSummaries(properties))
}

func (pc *PropertyController) GetProperty(c echo.Context) error {
	id := c.Param("id")

	property, err := pc.repo.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}
	return c.JSON(http.StatusOK, views.NewDetail(*property, pc.contactEmail))
}

func (pc *PropertyController) CreateProperty(c echo.Context) error {
	var req struct {
		models.Property
		BatchID string `json:"batchId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Title is required"})
	}
	if !utils.IsValidVideoURL(req.VideoURL) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "videoUrl must be a recognized video-sharing link"})
	}
	// A record must never be saved while its upload batch is incomplete.
	if req.BatchID != "" && pc.batchBusy != nil && pc.batchBusy(req.BatchID) {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Uploads are still in progress"})
	}

	property := req.Property
	property.Facing = utils.NormalizeFacing(property.Facing)
	property.Amenities = utils.DedupeAmenities(property.Amenities)

	if _, err := pc.repo.Create(c.Request().Context(), &property); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create property"})
	}

	pc.invalidateCatalogCache(c.Request().Context())
	return c.JSON(http.StatusCreated, property)
}

func (pc *PropertyController) DeleteProperty(c echo.Context) error {
	id := c.Param("id")
	if c.QueryParam("confirm") != "true" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Deletion requires confirm=true"})
	}

	property, err := pc.repo.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete property"})
	}

	// Best-effort media cleanup so deleted listings don't accumulate
	// orphaned blobs. Failures are logged, never fatal to the delete.
	if pc.store != nil {
		for _, file := range property.Files {
			key := pc.store.KeyFromURL(file.URL)
			if key == "" {
				continue
			}
			if err := pc.store.Remove(c.Request().Context(), key); err != nil {
				log.Printf("Failed to remove blob %s: %v", key, err)
			}
		}
	}

	pc.invalidateCatalogCache(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]string{"message": "Property deleted successfully"})
}

func (pc *PropertyController) invalidateCatalogCache(ctx context.Context) {
	if utils.RedisClient == nil {
		return
	}
	if err := utils.InvalidateCached(ctx, "properties"); err != nil {
		log.Printf("Failed to invalidate catalog cache: %v", err)
	}
}
