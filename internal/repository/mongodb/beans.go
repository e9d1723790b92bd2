package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mcharron/roastlog/internal/apierror"
	"github.com/mcharron/roastlog/internal/domain/models"
)

// BeanRepository defines the data access contract for beans. Handlers
// and services depend on this interface, not on the MongoDB
// implementation, so tests can substitute an in-memory stub.
type BeanRepository interface {
	Create(ctx context.Context, in models.BeanInput) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, in models.BeanInput) error
	Archive(ctx context.Context, id primitive.ObjectID) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Bean, error)
	FindActiveByID(ctx context.Context, id primitive.ObjectID) (*models.Bean, error)
	ListActive(ctx context.Context) ([]models.Bean, error)
}

type beanRepo struct {
	store  *Store
	logger *zap.Logger
}

// NewBeanRepository wires a bean repository backed by the given store.
func NewBeanRepository(store *Store, logger *zap.Logger) BeanRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &beanRepo{store: store, logger: logger}
}

func (r *beanRepo) Create(ctx context.Context, in models.BeanInput) (primitive.ObjectID, error) {
	doc := buildBeanInsert(in, time.Now(), r.logger)

	res, err := r.store.Beans().InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert bean: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (r *beanRepo) Update(ctx context.Context, id primitive.ObjectID, in models.BeanInput) error {
	doc := buildBeanUpdate(in, time.Now(), r.logger)

	if _, err := r.store.Beans().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": doc}); err != nil {
		return fmt.Errorf("failed to update bean: %w", err)
	}
	return nil
}

func (r *beanRepo) Archive(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{
		"archived":   true,
		"updated_at": time.Now(),
	}}

	if _, err := r.store.Beans().UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("failed to archive bean: %w", err)
	}
	return nil
}

func (r *beanRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Bean, error) {
	var bean models.Bean
	err := r.store.Beans().FindOne(ctx, bson.M{"_id": id}).Decode(&bean)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apierror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load bean: %w", err)
	}
	return &bean, nil
}

func (r *beanRepo) FindActiveByID(ctx context.Context, id primitive.ObjectID) (*models.Bean, error) {
	var bean models.Bean
	err := r.store.Beans().FindOne(ctx, bson.M{"_id": id, "archived": bson.M{"$ne": true}}).Decode(&bean)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apierror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load bean: %w", err)
	}
	return &bean, nil
}

func (r *beanRepo) ListActive(ctx context.Context) ([]models.Bean, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.store.Beans().Find(ctx, bson.M{"archived": bson.M{"$ne": true}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list beans: %w", err)
	}

	var beans []models.Bean
	if err := cursor.All(ctx, &beans); err != nil {
		return nil, fmt.Errorf("failed to decode beans: %w", err)
	}
	return beans, nil
}
