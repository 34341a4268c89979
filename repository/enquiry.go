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

type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *models.Enquiry) (string, error)
	List(ctx context.Context) ([]models.Enquiry, error)
}

type mongoEnquiryRepository struct {
	collection *mongo.Collection
}

func NewMongoEnquiryRepository(collection *mongo.Collection) EnquiryRepository {
	return &mongoEnquiryRepository{collection: collection}
}

func (r *mongoEnquiryRepository) Create(ctx context.Context, enquiry *models.Enquiry) (string, error) {
	enquiry.ID = primitive.NewObjectID()
	enquiry.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, enquiry)
	if err != nil {
		return "", &WriteError{Op: "create", Err: err}
	}
	return enquiry.ID.Hex(), nil
}

func (r *mongoEnquiryRepository) List(ctx context.Context) ([]models.Enquiry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer cursor.Close(ctx)

	var enquiries []models.Enquiry
	for cursor.Next(ctx) {
		var enquiry models.Enquiry
		if err := cursor.Decode(&enquiry); err != nil {
			continue
		}
		enquiries = append(enquiries, enquiry)
	}
	if err := cursor.Err(); err != nil {
		return nil, &FetchError{Err: err}
	}
	return enquiries, nil
}
