package enquiryRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lawdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoEnquiryRepo struct {
	coll *mongo.Collection
}

func NewMongoEnquiryRepo(db *mongo.Database) *MongoEnquiryRepo {
	return NewMongoEnquiryRepoFromCollection(db.Collection("enquiries"))
}

func NewMongoEnquiryRepoFromCollection(coll *mongo.Collection) *MongoEnquiryRepo {
	return &MongoEnquiryRepo{coll: coll}
}

func (r *MongoEnquiryRepo) Create(ctx context.Context, enquiry *models.Enquiry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, enquiry); err != nil {
		return fmt.Errorf("error creating enquiry: %w", err)
	}
	return nil
}

func (r *MongoEnquiryRepo) GetByID(ctx context.Context, id string) (*models.Enquiry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var enquiry models.Enquiry
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&enquiry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEnquiryNotFound
		}
		return nil, fmt.Errorf("error fetching enquiry %s: %w", id, err)
	}
	return &enquiry, nil
}

// EnsureIndexes creates the indexes the admin inbox sorts and filters by.
func (r *MongoEnquiryRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("status_created_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create enquiry indexes: %w", err)
	}
	return nil
}
