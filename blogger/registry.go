/* registry.go
 * Contains the optional mongo backed registry mapping post slugs to Blogger
 * post ids. Slug matching against the Blogger URL covers most posts, the
 * registry covers posts whose URL Blogger rewrote (for example after a title
 * edit in the dashboard). Sync runs work without it when no mongo URI is set
 * Authors: Zachary Bower
 */

package blogger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Registry persists slug to post id mappings between sync runs
type Registry struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		Posts *mongo.Collection
	}
}

// registryRecord is one persisted mapping
type registryRecord struct {
	Slug      string    `bson:"slug"`
	PostID    string    `bson:"post_id"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewRegistry connects to mongo and prepares the posts collection.
// Preconditions: receives the database name and a mongo connection URI
// Postconditions: returns a pointer to a Registry object, or an error if the
// connection could not be established
func NewRegistry(ctx context.Context, dbName string, mongoURI string) (*Registry, error) {
	if mongoURI == "" {
		return nil, fmt.Errorf("mongo URI cannot be empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	r := &Registry{
		Client:   client,
		Database: db,
	}
	r.Collections.Posts = db.Collection("blogger_posts")
	return r, nil
}

// Lookup returns the stored Blogger post id for a slug.
// Postconditions: returns the post id, an empty string when no record exists,
// or an error on a database failure
func (r *Registry) Lookup(ctx context.Context, slug string) (string, error) {
	var record registryRecord
	err := r.Collections.Posts.FindOne(ctx, bson.D{{Key: "slug", Value: slug}}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", fmt.Errorf("error fetching post record from db: %w", err)
	}
	return record.PostID, nil
}

// Save upserts the slug to post id mapping
func (r *Registry) Save(ctx context.Context, slug string, postID string) error {
	filter := bson.D{{Key: "slug", Value: slug}}
	update := bson.D{{Key: "$set", Value: registryRecord{
		Slug:      slug,
		PostID:    postID,
		UpdatedAt: time.Now(),
	}}}
	opts := options.Update().SetUpsert(true)

	if _, err := r.Collections.Posts.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("error saving post record to db: %w", err)
	}
	return nil
}

// Close disconnects the underlying mongo client
func (r *Registry) Close(ctx context.Context) error {
	return r.Client.Disconnect(ctx)
}
