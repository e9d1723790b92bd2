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

// RoastRepository defines the data access contract for roasts,
// including the cross-entity stock adjustments against beans.
type RoastRepository interface {
	CreateDraft(ctx context.Context) (primitive.ObjectID, error)
	Start(ctx context.Context, id primitive.ObjectID, in models.StartInput) error
	End(ctx context.Context, id primitive.ObjectID) error
	UpdateTitle(ctx context.Context, id primitive.ObjectID, title string) error
	AddTiming(ctx context.Context, id primitive.ObjectID, in models.TimingInput) error
	AddCurvePoint(ctx context.Context, id primitive.ObjectID, in models.CurveInput) error
	Update(ctx context.Context, id primitive.ObjectID, in models.RoastInput) error
	Archive(ctx context.Context, id primitive.ObjectID) error
	AddReview(ctx context.Context, id primitive.ObjectID, in models.ReviewInput) (primitive.ObjectID, error)
	UpdateReview(ctx context.Context, id, reviewID primitive.ObjectID, in models.ReviewInput) error
	DeleteReview(ctx context.Context, id, reviewID primitive.ObjectID) error
	FindActiveByID(ctx context.Context, id primitive.ObjectID) (*models.Roast, error)
	ListActive(ctx context.Context) ([]models.Roast, error)
}

type roastRepo struct {
	store  *Store
	logger *zap.Logger
}

// NewRoastRepository wires a roast repository backed by the given store.
func NewRoastRepository(store *Store, logger *zap.Logger) RoastRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &roastRepo{store: store, logger: logger}
}

func (r *roastRepo) CreateDraft(ctx context.Context) (primitive.ObjectID, error) {
	res, err := r.store.Roasts().InsertOne(ctx, buildRoastDraft(time.Now()))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert draft roast: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// Start stamps the start time and optionally binds the bean and charge
// weight. The stock decrement fires only when bean and weight arrive in
// the same call; a weight without a bean is stored without touching any
// stock.
func (r *roastRepo) Start(ctx context.Context, id primitive.ObjectID, in models.StartInput) error {
	now := time.Now()
	set := bson.M{
		"roast_start_time": now,
		"updated_at":       now,
	}

	var beanID *primitive.ObjectID
	if in.BeanID != "" {
		oid, err := primitive.ObjectIDFromHex(in.BeanID)
		if err != nil {
			return apierror.ErrInvalidReference
		}
		beanID = &oid
		set["bean_id"] = oid
	}

	if in.OriginalWeightGrams != 0 {
		set["original_weight_grams"] = in.OriginalWeightGrams
	}
	if adj, ok := startStockAdjustment(beanID, in.OriginalWeightGrams); ok {
		if err := r.adjustStock(ctx, adj.beanID, adj.deltaGrams); err != nil {
			return err
		}
	}

	if _, err := r.store.Roasts().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("failed to start roast: %w", err)
	}
	return nil
}

// End stamps the end time. Ending a roast that was never started is
// rejected so an end-before-start document cannot be written.
func (r *roastRepo) End(ctx context.Context, id primitive.ObjectID) error {
	roast, err := r.findByID(ctx, id)
	if errors.Is(err, apierror.ErrNotFound) {
		// Mutations against missing ids stay silent no-ops.
		return nil
	}
	if err != nil {
		return err
	}

	if !roast.CanEnd() {
		return apierror.ErrInvalidTransition
	}

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"roast_end_time": now,
		"updated_at":     now,
	}}

	if _, err := r.store.Roasts().UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("failed to end roast: %w", err)
	}
	return nil
}

func (r *roastRepo) UpdateTitle(ctx context.Context, id primitive.ObjectID, title string) error {
	if title == "" {
		title = models.DefaultTitle
	}

	update := bson.M{"$set": bson.M{
		"title":      title,
		"updated_at": time.Now(),
	}}

	if _, err := r.store.Roasts().UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("failed to update roast title: %w", err)
	}
	return nil
}

func (r *roastRepo) AddTiming(ctx context.Context, id primitive.ObjectID, in models.TimingInput) error {
	update := bson.M{
		"$push": bson.M{"key_timings": buildTimingEvent(in)},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	if _, err := r.store.Roasts().UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("failed to append timing: %w", err)
	}
	return nil
}

func (r *roastRepo) AddCurvePoint(ctx context.Context, id primitive.ObjectID, in models.CurveInput) error {
	update := bson.M{
		"$push": bson.M{"temp_curve": buildCurvePoint(in)},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	if _, err := r.store.Roasts().UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("failed to append curve point: %w", err)
	}
	return nil
}

// Update applies a full edit. The stored roast is read first so the
// stock reconciliation can compare old and new bean/weight values;
// each planned adjustment is a single atomic $inc on the bean.
func (r *roastRepo) Update(ctx context.Context, id primitive.ObjectID, in models.RoastInput) error {
	existing, err := r.findByID(ctx, id)
	if errors.Is(err, apierror.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	doc, adjustments, err := buildRoastUpdate(existing, in, time.Now(), r.logger)
	if err != nil {
		return err
	}

	for _, adj := range adjustments {
		if err := r.adjustStock(ctx, adj.beanID, adj.deltaGrams); err != nil {
			return err
		}
	}

	if _, err := r.store.Roasts().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": doc}); err != nil {
		return fmt.Errorf("failed to update roast: %w", err)
	}
	return nil
}

// Archive flags the roast and hands its charge weight back to the
// bean's stock when both a bean reference and a weight are recorded.
func (r *roastRepo) Archive(ctx context.Context, id primitive.ObjectID) error {
	roast, err := r.findByID(ctx, id)
	if err != nil && !errors.Is(err, apierror.ErrNotFound) {
		return err
	}

	if adj, ok := archiveStockAdjustment(roast); ok {
		if err := r.adjustStock(ctx, adj.beanID, adj.deltaGrams); err != nil {
			return err
		}
	}

	update := bson.M{"$set": bson.M{
		"archived":   true,
		"updated_at": time.Now(),
	}}

	if _, err := r.store.Roasts().UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("failed to archive roast: %w", err)
	}
	return nil
}

func (r *roastRepo) AddReview(ctx context.Context, id primitive.ObjectID, in models.ReviewInput) (primitive.ObjectID, error) {
	now := time.Now()
	reviewID := primitive.NewObjectID()

	update := bson.M{
		"$push": bson.M{"reviews": buildReview(reviewID, in, now)},
		"$set":  bson.M{"updated_at": now},
	}

	if _, err := r.store.Roasts().UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to add review: %w", err)
	}
	return reviewID, nil
}

// UpdateReview edits the single matched element of the reviews array.
// A review id that matches nothing leaves the document unchanged.
func (r *roastRepo) UpdateReview(ctx context.Context, id, reviewID primitive.ObjectID, in models.ReviewInput) error {
	filter := bson.M{"_id": id, "reviews._id": reviewID}
	update := bson.M{"$set": buildReviewUpdate(in, time.Now())}

	if _, err := r.store.Roasts().UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	return nil
}

func (r *roastRepo) DeleteReview(ctx context.Context, id, reviewID primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{"reviews": bson.M{"_id": reviewID}},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	if _, err := r.store.Roasts().UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

func (r *roastRepo) FindActiveByID(ctx context.Context, id primitive.ObjectID) (*models.Roast, error) {
	var roast models.Roast
	err := r.store.Roasts().FindOne(ctx, bson.M{"_id": id, "archived": bson.M{"$ne": true}}).Decode(&roast)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apierror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load roast: %w", err)
	}
	return &roast, nil
}

func (r *roastRepo) ListActive(ctx context.Context) ([]models.Roast, error) {
	opts := options.Find().SetSort(bson.D{{Key: "roast_date", Value: -1}})

	cursor, err := r.store.Roasts().Find(ctx, bson.M{"archived": bson.M{"$ne": true}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list roasts: %w", err)
	}

	var roasts []models.Roast
	if err := cursor.All(ctx, &roasts); err != nil {
		return nil, fmt.Errorf("failed to decode roasts: %w", err)
	}
	return roasts, nil
}

func (r *roastRepo) findByID(ctx context.Context, id primitive.ObjectID) (*models.Roast, error) {
	var roast models.Roast
	err := r.store.Roasts().FindOne(ctx, bson.M{"_id": id}).Decode(&roast)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apierror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load roast: %w", err)
	}
	return &roast, nil
}

// adjustStock issues one atomic increment against a bean's stock_grams.
// Stock is allowed to go negative; underflow is a documented limitation.
func (r *roastRepo) adjustStock(ctx context.Context, beanID primitive.ObjectID, deltaGrams int) error {
	update := bson.M{"$inc": bson.M{"stock_grams": deltaGrams}}

	if _, err := r.store.Beans().UpdateOne(ctx, bson.M{"_id": beanID}, update); err != nil {
		return fmt.Errorf("failed to adjust bean stock: %w", err)
	}
	return nil
}
