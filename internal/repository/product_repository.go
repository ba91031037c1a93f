package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/northlake-labs/product-service/internal/domain"
	pkgconfig "github.com/northlake-labs/product-service/pkg/config"
)

const productCollection = "products"

type ProductRepository struct {
	collection *mongo.Collection
}

// NewMongoClient connects to the document store and verifies the
// connection with a ping before the server starts accepting traffic.
func NewMongoClient(ctx context.Context, cfg *pkgconfig.Config) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, nil
}

func NewProductRepository(client *mongo.Client, database string) *ProductRepository {
	return &ProductRepository{
		collection: client.Database(database).Collection(productCollection),
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var product domain.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return &product, nil
}

// buildListQuery translates a list filter into a find document. A search
// term becomes a case-insensitive substring match on name or category, with
// regex metacharacters escaped so the term matches literally.
func buildListQuery(filter domain.ListFilter) bson.M {
	query := bson.M{}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"category": pattern},
		}
	}
	return query
}

// Find returns one page of products plus the total number of documents
// matching the filter regardless of pagination.
func (r *ProductRepository) Find(ctx context.Context, filter domain.ListFilter) ([]domain.Product, int64, error) {
	query := buildListQuery(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	order := 1
	if filter.SortDesc {
		order = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: filter.SortField, Value: order}}).
		SetSkip(filter.Skip).
		SetLimit(filter.Limit)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, total, nil
}

// buildUpdateSet collects the supplied fields into a $set document. Every
// write refreshes updatedAt, whether or not any other field is present.
func buildUpdateSet(in *domain.ProductInput, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if in.Name != nil {
		set["name"] = *in.Name
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.Price != nil {
		set["price"] = *in.Price
	}
	if in.Currency != nil {
		set["currency"] = *in.Currency
	}
	if in.InStock != nil {
		set["inStock"] = *in.InStock
	}
	if in.Quantity != nil {
		set["quantity"] = *in.Quantity
	}
	if in.Category != nil {
		set["category"] = *in.Category
	}
	if in.Images != nil {
		set["images"] = in.Images
	}
	return set
}

// Update merges the supplied fields into the stored document and refreshes
// updatedAt, returning the document as it stands after the write.
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, in *domain.ProductInput) (*domain.Product, error) {
	set := buildUpdateSet(in, time.Now().UTC())

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product domain.Product
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &product, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var product domain.Product
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	return &product, nil
}
