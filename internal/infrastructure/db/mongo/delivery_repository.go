package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/danang-express/delivery-system/internal/core/domain"
	"github.com/danang-express/delivery-system/internal/core/ports"
)

const collectionDeliveries = "deliveries"

type DeliveryRepository struct {
	col *mongo.Collection
}

func NewDeliveryRepository(db *mongo.Database) *DeliveryRepository {
	return &DeliveryRepository{col: db.Collection(collectionDeliveries)}
}

type mongoDelivery struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	OrderCode     string             `bson:"order_code"`
	RecipientName string             `bson:"recipient_name"`
	Address       string             `bson:"address"`
	Phone         string             `bson:"phone"`
	Email         string             `bson:"email"`
	Note          string             `bson:"note,omitempty"`
	PaymentStatus string             `bson:"payment_status"`
	Status        string             `bson:"status"`
	CourierID     string             `bson:"courier_id,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	DeliveredAt   *time.Time         `bson:"delivered_at,omitempty"`
}

func toDoc(d domain.Delivery) (mongoDelivery, error) {
	doc := mongoDelivery{
		OrderCode:     d.OrderCode,
		RecipientName: d.RecipientName,
		Address:       d.Address,
		Phone:         d.Phone,
		Email:         d.Email,
		Note:          d.Note,
		PaymentStatus: d.PaymentStatus,
		Status:        string(d.Status),
		CourierID:     d.CourierID,
		CreatedAt:     d.CreatedAt.UTC(),
		DeliveredAt:   d.DeliveredAt,
	}
	if d.ID != "" {
		oid, err := primitive.ObjectIDFromHex(d.ID)
		if err != nil {
			return mongoDelivery{}, fmt.Errorf("invalid delivery id %q: %w", d.ID, err)
		}
		doc.ID = oid
	}
	return doc, nil
}

func fromDoc(doc mongoDelivery) domain.Delivery {
	return domain.Delivery{
		ID:            doc.ID.Hex(),
		OrderCode:     doc.OrderCode,
		RecipientName: doc.RecipientName,
		Address:       doc.Address,
		Phone:         doc.Phone,
		Email:         doc.Email,
		Note:          doc.Note,
		PaymentStatus: doc.PaymentStatus,
		Status:        domain.DeliveryStatus(doc.Status),
		CourierID:     doc.CourierID,
		CreatedAt:     doc.CreatedAt,
		DeliveredAt:   doc.DeliveredAt,
	}
}

// FindByStatus returns every delivery in the given status, oldest first.
func (r *DeliveryRepository) FindByStatus(ctx context.Context, status domain.DeliveryStatus) ([]domain.Delivery, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"status": string(status)}, opts)
	if err != nil {
		return nil, fmt.Errorf("find deliveries by status: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Delivery
	for cur.Next(ctx) {
		var doc mongoDelivery
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode delivery: %w", err)
		}
		out = append(out, fromDoc(doc))
	}
	return out, cur.Err()
}

func (r *DeliveryRepository) FindByID(ctx context.Context, id string) (*domain.Delivery, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDeliveryNotFound
	}

	var doc mongoDelivery
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDeliveryNotFound
		}
		return nil, err
	}
	d := fromDoc(doc)
	return &d, nil
}

// Save inserts the delivery when it has no id, otherwise replaces the stored
// document in one atomic write.
func (r *DeliveryRepository) Save(ctx context.Context, d *domain.Delivery) (*domain.Delivery, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toDoc(*d)
	if err != nil {
		return nil, err
	}

	if d.ID == "" {
		res, err := r.col.InsertOne(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("insert delivery: %w", err)
		}
		doc.ID = res.InsertedID.(primitive.ObjectID)
	} else {
		if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc); err != nil {
			return nil, fmt.Errorf("replace delivery: %w", err)
		}
	}

	saved := fromDoc(doc)
	return &saved, nil
}

// SaveAll persists the batch with a single ordered bulk write.
func (r *DeliveryRepository) SaveAll(ctx context.Context, ds []domain.Delivery) ([]domain.Delivery, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	models := make([]mongo.WriteModel, 0, len(ds))
	docs := make([]mongoDelivery, 0, len(ds))
	for _, d := range ds {
		doc, err := toDoc(d)
		if err != nil {
			return nil, err
		}
		if doc.ID.IsZero() {
			doc.ID = primitive.NewObjectID()
		}
		docs = append(docs, doc)
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": doc.ID}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	if _, err := r.col.BulkWrite(ctx, models); err != nil {
		return nil, fmt.Errorf("bulk save deliveries: %w", err)
	}

	out := make([]domain.Delivery, len(docs))
	for i, doc := range docs {
		out[i] = fromDoc(doc)
	}
	return out, nil
}

// List returns a page of deliveries matching filter and the total count.
func (r *DeliveryRepository) List(ctx context.Context, filter ports.ListDeliveriesFilter) ([]domain.Delivery, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.CourierID != "" {
		query["courier_id"] = filter.CourierID
	}
	if filter.Search != "" {
		regex := bson.M{"$regex": filter.Search, "$options": "i"}
		query["$or"] = []bson.M{
			{"order_code": regex},
			{"recipient_name": regex},
		}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count deliveries: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list deliveries: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Delivery
	for cur.Next(ctx) {
		var doc mongoDelivery
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode delivery: %w", err)
		}
		out = append(out, fromDoc(doc))
	}
	return out, total, cur.Err()
}

// EnsureIndexes creates the indexes the delivery queries rely on.
func (r *DeliveryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "courier_id", Value: 1}}},
		{Keys: bson.D{{Key: "order_code", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
