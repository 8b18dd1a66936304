package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"localmarket/models"
)

type orderStore struct {
	col *mongo.Collection
}

func (s *orderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &order, nil
}

func (s *orderStore) Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *orderStore) FindByVendor(ctx context.Context, vendorID primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order_date", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"vendor_id": vendorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderStore) FindBySupplier(ctx context.Context, supplierID primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order_date", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"products.supplier_id": supplierID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *orderStore) SetRatingGiven(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"rating_given": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SupplierRevenue runs the delivered-orders aggregation: unwind lines, keep
// the supplier's, sum snapshot price×quantity and collect distinct order ids.
func (s *orderStore) SupplierRevenue(ctx context.Context, supplierID primitive.ObjectID) (float64, int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.OrderDelivered}}},
		{{Key: "$unwind", Value: "$products"}},
		{{Key: "$match", Value: bson.M{"products.supplier_id": supplierID}}},
		{{Key: "$group", Value: bson.M{
			"_id": nil,
			"total_revenue": bson.M{"$sum": bson.M{
				"$multiply": bson.A{"$products.product.price", "$products.quantity"},
			}},
			"order_ids": bson.M{"$addToSet": "$_id"},
		}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		TotalRevenue float64              `bson:"total_revenue"`
		OrderIDs     []primitive.ObjectID `bson:"order_ids"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].TotalRevenue, len(results[0].OrderIDs), nil
}
