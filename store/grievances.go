package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"localmarket/models"
)

type grievanceStore struct {
	col *mongo.Collection
}

func (s *grievanceStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Grievance, error) {
	var grievance models.Grievance
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&grievance)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &grievance, nil
}

func (s *grievanceStore) Insert(ctx context.Context, grievance *models.Grievance) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, grievance)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *grievanceStore) findMany(ctx context.Context, filter bson.M) ([]models.Grievance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var grievances []models.Grievance
	if err := cursor.All(ctx, &grievances); err != nil {
		return nil, err
	}
	return grievances, nil
}

func (s *grievanceStore) FindByVendor(ctx context.Context, vendorID primitive.ObjectID) ([]models.Grievance, error) {
	return s.findMany(ctx, bson.M{"vendor_id": vendorID})
}

func (s *grievanceStore) FindBySupplier(ctx context.Context, supplierID primitive.ObjectID) ([]models.Grievance, error) {
	return s.findMany(ctx, bson.M{"supplier_id": supplierID})
}

func (s *grievanceStore) FindAll(ctx context.Context) ([]models.Grievance, error) {
	return s.findMany(ctx, bson.M{})
}

func (s *grievanceStore) SetSupplierNote(ctx context.Context, id primitive.ObjectID, note string) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"supplier_note": note,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *grievanceStore) SetStatus(ctx context.Context, id primitive.ObjectID, status models.GrievanceStatus) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
