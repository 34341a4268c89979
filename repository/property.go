package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/samurai100996/property-preview/models"
)

// PropertyRepository is the data-access surface for property records.
// Get distinguishes ErrNotFound from transport failures so the detail
// view can branch on loading / not-found / error / success.
type PropertyRepository interface {
	List(ctx context.Context) ([]models.Property, error)
	Get(ctx context.Context, id string) (*models.Property, error)
	Create(ctx context.Context, property *models.Property) (string, error)
	Delete(ctx context.Context, id string) (*models.Property, error)
}

type mongoPropertyRepository struct {
	collection *mongo.Collection
}

func NewMongoPropertyRepository(collection *mongo.Collection) PropertyRepository {
	return &mongoPropertyRepository{collection: collection}
}

func (r *mongoPropertyRepository) List(ctx context.Context) ([]models.Property, error) {
	// Newest first so reloads of the catalog are stable.
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	for cursor.Next(ctx) {
		var property models.Property
		if err := cursor.Decode(&property); err != nil {
			continue
		}
		properties = append(properties, property)
	}
	if err := cursor.Err(); err != nil {
		return nil, &FetchError{Err: err}
	}
	return properties, nil
}

func (r *mongoPropertyRepository) Get(ctx context.Context, id string) (*models.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id cannot name a document.
		return nil, ErrNotFound
	}

	var property models.Property
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, &FetchError{Err: err}
	}
	return &property, nil
}

func (r *mongoPropertyRepository) Create(ctx context.Context, property *models.Property) (string, error) {
	property.ID = primitive.NewObjectID()
	property.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, property)
	if err != nil {
		return "", &WriteError{Op: "create", Err: err}
	}
	return property.ID.Hex(), nil
}

func (r *mongoPropertyRepository) Delete(ctx context.Context, id string) (*models.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	// Fetch first so the caller can clean up the record's stored media.
	var property models.Property
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, &FetchError{Err: err}
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, &WriteError{Op: "delete", Err: err}
	}
	return &property, nil
}
