package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/samurai100996/property-preview/config"
	"github.com/samurai100996/property-preview/models"
	"github.com/samurai100996/property-preview/utils"
)

type AuthController struct {
	collection *mongo.Collection
}

func NewAuthController() *AuthController {
	collectionName := os.Getenv("MONGODB_COLLECTION_ADMINS")
	if collectionName == "" {
		collectionName = "admins"
	}
	return &AuthController{
		collection: config.GetCollection(collectionName),
	}
}

// EnsureAdminUser seeds the administrative account from ADMIN_EMAIL and
// ADMIN_PASSWORD on startup when no such user exists yet. Without it a
// fresh deployment has no way into the admin shell.
func (ac *AuthController) EnsureAdminUser(ctx context.Context) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	count, err := ac.collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = ac.collection.InsertOne(ctx, models.AdminUser{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Password:  hashed,
		Name:      "Administrator",
		CreatedAt: time.Now(),
	})
	return err
}

func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	var user models.AdminUser
	err := ac.collection.FindOne(context.Background(), bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Invalid email or password",
		})
	}

	if err := utils.CheckPassword(user.Password, req.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Invalid email or password",
		})
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(http.StatusOK, models.LoginResponse{
		Token: token,
		User:  user,
	})
}

// Session lets the admin shell confirm the current token still names an
// authenticated session before rendering the protected views.
func (ac *AuthController) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"email":         c.Get("user_email"),
	})
}
