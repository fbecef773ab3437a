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

type recipeRepository struct {
	collection *mongo.Collection
}

func NewRecipeRepository(db *database.MongoDB) repositories.RecipeRepository {
	return &recipeRepository{
		collection: db.Collection(database.CollectionRecipes),
	}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	recipe.CreatedAt = time.Now()
	recipe.UpdatedAt = time.Now()
	for i := range recipe.Ingredients {
		if recipe.Ingredients[i].ID.IsZero() {
			recipe.Ingredients[i].ID = primitive.NewObjectID()
		}
	}

	result, err := r.collection.InsertOne(ctx, recipe)
	if err != nil {
		return err
	}
	recipe.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	// Sorted by _id so consolidation sees recipes in a stable order.
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recipes []*models.Recipe
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}

	return recipes, nil
}

func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	recipe.UpdatedAt = time.Now()
	for i := range recipe.Ingredients {
		if recipe.Ingredients[i].ID.IsZero() {
			recipe.Ingredients[i].ID = primitive.NewObjectID()
		}
	}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": recipe.ID}, recipe)
	return err
}

func (r *recipeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *recipeRepository) List(ctx context.Context, page, limit int) ([]*models.Recipe, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	skip := (page - 1) * limit

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var recipes []*models.Recipe
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}

func (r *recipeRepository) UpdateIngredientCalories(ctx context.Context, recipeID, ingredientID primitive.ObjectID, fdcID string, caloriesPerUnit float64) error {
	set := bson.M{
		"ingredients.$.calories_per_unit": caloriesPerUnit,
		"updated_at":                      time.Now(),
	}
	if fdcID != "" {
		set["ingredients.$.fdc_id"] = fdcID
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": recipeID, "ingredients._id": ingredientID},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
