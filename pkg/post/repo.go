package post

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stream/pkg/content"
)

const (
	mongoPostsCollection    = "posts"
	mongoCountersCollection = "counters"
	mongoPostCounter        = "feed_post"
)

type mongoTxKey struct{}

// mongoPost is the stored document. Content fields hold embedded documents
// and are left out when empty.
type mongoPost struct {
	Id           PostId   `bson:"_id"`
	Author       string   `bson:"author"`
	Avatar       string   `bson:"avatar"`
	Timestamp    string   `bson:"timestamp"`
	Location     *string  `bson:"location"`
	ContentType  string   `bson:"contentType"`
	CodeSnippet  bson.Raw `bson:"codeSnippet,omitempty"`
	ImageContent bson.Raw `bson:"imageContent,omitempty"`
	Caption      string   `bson:"caption"`
	Hashtags     []string `bson:"hashtags"`
	SortOrder    int      `bson:"sortOrder"`
}

type mongoCounter struct {
	Seq int64 `bson:"seq"`
}

// MongoRepo keeps posts in a collection keyed by integer ids taken from a
// counters collection.
type MongoRepo struct {
	db       *mongo.Database
	posts    IMongoCollection
	counters IMongoCollection
	tx       IMongoTransactor
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{
		db:       db,
		posts:    &MongoCollection{Coll: db.Collection(mongoPostsCollection)},
		counters: &MongoCollection{Coll: db.Collection(mongoCountersCollection)},
		tx:       &MongoTransactor{Client: db.Client()},
	}
}

// Migrate creates the listing index.
func (r *MongoRepo) Migrate(ctx context.Context) error {
	_, err := r.db.Collection(mongoPostsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "sortOrder", Value: 1}, {Key: "_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("post/mongo: failed creating index: %w", err)
	}
	return nil
}

func (r *MongoRepo) Insert(ctx context.Context, p *Post) (PostId, error) {
	id, err := r.nextId(ctx)
	if err != nil {
		return 0, err
	}

	doc, err := toMongo(id, p)
	if err != nil {
		return 0, err
	}
	if _, err := r.posts.InsertOne(ctx, doc); err != nil {
		return 0, fmt.Errorf("post/mongo: failed inserting a post: %w", err)
	}
	return id, nil
}

func (r *MongoRepo) nextId(ctx context.Context) (PostId, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter mongoCounter
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": mongoPostCounter},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("post/mongo: failed allocating post id: %w", err)
	}
	return PostId(counter.Seq), nil
}

func (r *MongoRepo) FindById(ctx context.Context, id PostId) (*Post, error) {
	doc := new(mongoPost)
	err := r.posts.FindOne(ctx, bson.M{"_id": id}).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("post/mongo: failed finding post %d: %w", id, err)
	}
	return fromMongo(doc)
}

func (r *MongoRepo) FindAllOrdered(ctx context.Context) ([]*Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sortOrder", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("post/mongo: failed finding posts: %w", err)
	}
	defer cursor.Close(ctx)

	docs := []*mongoPost{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("post/mongo: failed geting posts from cursor: %w", err)
	}

	posts := make([]*Post, 0, len(docs))
	for _, doc := range docs {
		p, err := fromMongo(doc)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func (r *MongoRepo) ExistsById(ctx context.Context, id PostId) (bool, error) {
	n, err := r.posts.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("post/mongo: failed checking post %d: %w", id, err)
	}
	return n > 0, nil
}

func (r *MongoRepo) Replace(ctx context.Context, id PostId, p *Post) error {
	doc, err := toMongo(id, p)
	if err != nil {
		return err
	}
	res, err := r.posts.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return fmt.Errorf("post/mongo: failed updating post %d: %w", id, err)
	}
	if res.Matched() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) DeleteById(ctx context.Context, id PostId) error {
	res, err := r.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("post/mongo: failed deleting post %d: %w", id, err)
	}
	if res.Deleted() == 0 {
		return ErrNotFound
	}
	return nil
}

// WithTx runs fn in a MongoDB transaction. Nested calls join the outer one.
func (r *MongoRepo) WithTx(ctx context.Context, fn func(context.Context) error) error {
	if ctx.Value(mongoTxKey{}) != nil {
		return fn(ctx)
	}
	return r.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return fn(context.WithValue(ctx, mongoTxKey{}, true))
	})
}

// WithReadTx also uses a transaction so that reads see one snapshot.
func (r *MongoRepo) WithReadTx(ctx context.Context, fn func(context.Context) error) error {
	return r.WithTx(ctx, fn)
}

func (r *MongoRepo) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, nil)
}

func toMongo(id PostId, p *Post) (*mongoPost, error) {
	codeSnippet, err := documentToRaw(p.CodeSnippet)
	if err != nil {
		return nil, err
	}
	imageContent, err := documentToRaw(p.ImageContent)
	if err != nil {
		return nil, err
	}
	return &mongoPost{
		Id:           id,
		Author:       p.Author,
		Avatar:       p.Avatar,
		Timestamp:    p.Timestamp,
		Location:     copyString(p.Location),
		ContentType:  string(p.ContentType),
		CodeSnippet:  codeSnippet,
		ImageContent: imageContent,
		Caption:      p.Caption,
		Hashtags:     copyStrings(p.Hashtags),
		SortOrder:    p.SortOrder,
	}, nil
}

func fromMongo(doc *mongoPost) (*Post, error) {
	p := &Post{
		Id:          doc.Id,
		Author:      doc.Author,
		Avatar:      doc.Avatar,
		Timestamp:   doc.Timestamp,
		Location:    doc.Location,
		ContentType: content.Type(doc.ContentType),
		Caption:     doc.Caption,
		Hashtags:    copyStrings(doc.Hashtags),
		SortOrder:   doc.SortOrder,
	}

	var err error
	if p.CodeSnippet, err = rawToDocument(doc.CodeSnippet, p.ContentType); err != nil {
		return nil, err
	}
	if p.ImageContent, err = rawToDocument(doc.ImageContent, p.ContentType); err != nil {
		return nil, err
	}
	return p, nil
}

func documentToRaw(doc content.Document) (bson.Raw, error) {
	if doc == nil {
		return nil, nil
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("post/mongo: failed encoding document: %w", err)
	}
	return raw, nil
}

// rawToDocument goes through relaxed extended JSON so documents read back
// with the same plain types the JSON columns produce.
func rawToDocument(raw bson.Raw, t content.Type) (content.Document, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	j, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return nil, &content.MalformedContentError{Type: t, Err: err}
	}
	return content.ParseDocument(j, t)
}
