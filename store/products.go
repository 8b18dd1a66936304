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

type productStore struct {
	col *mongo.Collection
}

func (s *productStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &product, nil
}

func (s *productStore) FindAll(ctx context.Context) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *productStore) FindBySupplier(ctx context.Context, supplierID primitive.ObjectID) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"supplier_id": supplierID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *productStore) Insert(ctx context.Context, product *models.Product) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, product)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// Update is scoped by supplier: a product owned by another supplier reads
// as not found.
func (s *productStore) Update(ctx context.Context, id, supplierID primitive.ObjectID, upd ProductUpdate) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "supplier_id": supplierID},
		bson.M{"$set": bson.M{
			"name":        upd.Name,
			"description": upd.Description,
			"price":       upd.Price,
			"unit":        upd.Unit,
			"stock":       upd.Stock,
			"image_path":  upd.ImagePath,
			"updated_at":  time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *productStore) Delete(ctx context.Context, id, supplierID primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id, "supplier_id": supplierID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *productStore) IncrementCounters(ctx context.Context, id primitive.ObjectID, stockDelta, soldDelta int) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{
		"stock":      stockDelta,
		"units_sold": soldDelta,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *productStore) TopSelling(ctx context.Context, supplierID primitive.ObjectID) (*models.Product, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "units_sold", Value: -1}})
	var product models.Product
	err := s.col.FindOne(ctx, bson.M{"supplier_id": supplierID}, opts).Decode(&product)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &product, nil
}
