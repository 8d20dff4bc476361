package orderRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"medicore/models"
)

func (r *mongoOrderRepo) PlaceOrderTransactionally(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	client := r.orderColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		for _, item := range order.Items {
			// Conditional decrement: only matches while enough stock remains.
			filter := bson.M{
				"id":     item.ProductID,
				"active": true,
				"stock":  bson.M{"$gte": item.Quantity},
			}
			res, err := r.productColl.UpdateOne(sc, filter, bson.M{
				"$inc": bson.M{"stock": -item.Quantity},
			})
			if err != nil {
				return fmt.Errorf("stock decrement failed for %s: %w", item.ProductID, err)
			}
			if res.MatchedCount == 0 {
				return InsufficientStockError{ProductID: item.ProductID, Requested: item.Quantity}
			}
		}

		if _, err := r.orderColl.InsertOne(sc, order); err != nil {
			return fmt.Errorf("insert order failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}

func (r *mongoOrderRepo) CancelOrderTransactionally(ctx context.Context, orderID string) error {
	client := r.orderColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		var order models.Order
		err := r.orderColl.FindOne(sc, bson.M{"id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if order.Status != models.OrderPending && order.Status != models.OrderPaid {
			return fmt.Errorf("order %s in status %s cannot be cancelled", orderID, order.Status)
		}

		for _, item := range order.Items {
			if _, err := r.productColl.UpdateOne(sc,
				bson.M{"id": item.ProductID},
				bson.M{"$inc": bson.M{"stock": item.Quantity}},
			); err != nil {
				return fmt.Errorf("stock restore failed for %s: %w", item.ProductID, err)
			}
		}

		update := bson.M{"$set": bson.M{"status": models.OrderCancelled, "updatedAt": time.Now()}}
		if _, err := r.orderColl.UpdateOne(sc, bson.M{"id": orderID}, update); err != nil {
			return fmt.Errorf("order cancel update failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}
