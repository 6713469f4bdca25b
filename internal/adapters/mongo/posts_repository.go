package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/philly/postboard/internal/posts/domain"
	"github.com/philly/postboard/internal/posts/ports"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PostRepository implements ports.PostRepository on a MongoDB collection.
type PostRepository struct {
	posts *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{posts: db.Collection(postsCollection)}
}

var _ ports.PostRepository = (*PostRepository)(nil)

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	if _, err := r.posts.InsertOne(ctx, newPostDocument(post)); err != nil {
		return fmt.Errorf("PostRepository.Create: %w", err)
	}
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var doc postDocument
	err := r.posts.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrPostNotFound
		}
		return nil, fmt.Errorf("PostRepository.FindByID: %w", err)
	}
	return doc.toDomain()
}

func (r *PostRepository) FindAuthoredByID(ctx context.Context, id uuid.UUID) (*ports.AuthoredPost, error) {
	cursor, err := r.posts.Aggregate(ctx, authoredPipeline(bson.M{"_id": id.String()}))
	if err != nil {
		return nil, fmt.Errorf("PostRepository.FindAuthoredByID: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("PostRepository.FindAuthoredByID: %w", err)
		}
		return nil, ports.ErrPostNotFound
	}

	var doc authoredPostDocument
	if err := cursor.Decode(&doc); err != nil {
		return nil, fmt.Errorf("PostRepository.FindAuthoredByID: decode: %w", err)
	}
	return doc.toDomain()
}

func (r *PostRepository) ListAuthored(ctx context.Context) ([]*ports.AuthoredPost, error) {
	cursor, err := r.posts.Aggregate(ctx, authoredPipeline(nil))
	if err != nil {
		return nil, fmt.Errorf("PostRepository.ListAuthored: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []authoredPostDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("PostRepository.ListAuthored: %w", err)
	}

	posts := make([]*ports.AuthoredPost, 0, len(docs))
	for _, doc := range docs {
		post, err := doc.toDomain()
		if err != nil {
			return nil, fmt.Errorf("PostRepository.ListAuthored: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	result, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": post.ID.String()},
		bson.M{"$set": bson.M{
			"title":      post.Title,
			"content":    post.Content,
			"updated_at": post.UpdatedAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("PostRepository.Update: %w", err)
	}
	if result.MatchedCount == 0 {
		return ports.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.posts.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("PostRepository.Delete: %w", err)
	}
	if result.DeletedCount == 0 {
		return ports.ErrPostNotFound
	}
	return nil
}

// authoredPipeline joins each post with its author's username only,
// newest first. A nil match selects every post.
func authoredPipeline(match bson.M) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	if match != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	return append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "author_id",
			"foreignField": "_id",
			"as":           "author",
		}}},
		bson.D{{Key: "$set", Value: bson.M{
			"author_username": bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$author.username", 0}}, ""}},
		}}},
		bson.D{{Key: "$unset", Value: "author"}},
	)
}
