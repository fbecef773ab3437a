package repositories

import (
	"context"
	"time"

	"github.com/ak/mps/internal/domain/models"
	"github.com/ak/mps/internal/domain/repositories"
	"github.com/ak/mps/internal/infrastructure/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mealPlanRepository struct {
	collection *mongo.Collection
}

func NewMealPlanRepository(db *database.MongoDB) repositories.MealPlanRepository {
	return &mealPlanRepository{
		collection: db.Collection(database.CollectionMealPlans),
	}
}

func (r *mealPlanRepository) Create(ctx context.Context, entry *models.MealPlanEntry) error {
	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return err
	}
	entry.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mealPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MealPlanEntry, error) {
	var entry models.MealPlanEntry
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *mealPlanRepository) GetBySlot(ctx context.Context, date time.Time, slot models.MealSlot) (*models.MealPlanEntry, error) {
	var entry models.MealPlanEntry
	err := r.collection.FindOne(ctx, bson.M{"date": date, "slot": slot}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *mealPlanRepository) GetInRange(ctx context.Context, start, end time.Time) ([]*models.MealPlanEntry, error) {
	query := bson.M{"date": bson.M{"$gte": start, "$lte": end}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.MealPlanEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *mealPlanRepository) Update(ctx context.Context, entry *models.MealPlanEntry) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": entry.ID}, entry)
	return err
}

func (r *mealPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *mealPlanRepository) DeleteByRecipe(ctx context.Context, recipeID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"recipe_id": recipeID})
	return err
}
