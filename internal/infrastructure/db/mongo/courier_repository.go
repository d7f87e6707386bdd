package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/danang-express/delivery-system/internal/core/domain"
)

// CourierRepository resolves couriers from the shared users collection.
type CourierRepository struct {
	col *mongo.Collection
}

func NewCourierRepository(db *mongo.Database) *CourierRepository {
	return &CourierRepository{col: db.Collection(collectionUsers)}
}

func (r *CourierRepository) Exists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid, "role": domain.RoleCourier})
	if err != nil {
		return false, fmt.Errorf("check courier: %w", err)
	}
	return n > 0, nil
}

func (r *CourierRepository) FindByID(ctx context.Context, id string) (*domain.Courier, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourierNotFound
	}

	var mu mongoUser
	if err := r.col.FindOne(ctx, bson.M{"_id": oid, "role": domain.RoleCourier}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourierNotFound
		}
		return nil, fmt.Errorf("find courier: %w", err)
	}

	return &domain.Courier{
		ID:    mu.ID.Hex(),
		Name:  mu.Username,
		Phone: mu.Phone,
		Email: mu.Email,
	}, nil
}
