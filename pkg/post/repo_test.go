package post

import (
	"context"
	"errors"
	"fmt"
	"testing"

	gomock "github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"stream/pkg/content"
)

func mongoImageRecord() *Post {
	return &Post{
		Author:      "mara",
		Avatar:      "M",
		Timestamp:   "5h ago",
		ContentType: content.TypeImage,
		ImageContent: content.Encode(&content.ImageCard{
			Emoji: "🔥", Title: "Prod is down", Variant: "fire",
		}),
		Caption:   "It was DNS",
		Hashtags:  []string{"#oncall"},
		SortOrder: 3,
	}
}

func mongoDoc(t *testing.T, id PostId, p *Post) mongoPost {
	t.Helper()
	doc, err := toMongo(id, p)
	require.NoError(t, err)
	return *doc
}

func TestMongoInsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	mockPosts := NewMockIMongoCollection(ctrl)
	mockCounters := NewMockIMongoCollection(ctrl)
	mockCounter := NewMockIMongoSingleResult(ctrl)
	mockInsertOneResult := NewMockIMongoInsertOneResult(ctrl)

	repo := &MongoRepo{
		posts:    mockPosts,
		counters: mockCounters,
	}

	t.Run("should store the post under the next counter value", func(t *testing.T) {
		mockCounters.EXPECT().
			FindOneAndUpdate(ctx, bson.M{"_id": mongoPostCounter}, bson.M{"$inc": bson.M{"seq": 1}}, gomock.Any()).
			Return(mockCounter)
		mockCounter.EXPECT().
			Decode(gomock.AssignableToTypeOf(&mongoCounter{})).
			SetArg(0, mongoCounter{Seq: 4}).
			Return(nil)

		var stored *mongoPost
		mockPosts.EXPECT().
			InsertOne(ctx, gomock.AssignableToTypeOf(&mongoPost{})).
			DoAndReturn(func(_ context.Context, doc interface{}, _ ...interface{}) (IMongoInsertOneResult, error) {
				stored = doc.(*mongoPost)
				return mockInsertOneResult, nil
			})

		id, err := repo.Insert(ctx, mongoImageRecord())
		require.NoError(t, err)
		assert.Equal(t, PostId(4), id)
		require.NotNil(t, stored)
		assert.Equal(t, PostId(4), stored.Id)
		assert.Equal(t, "image", stored.ContentType)
		assert.Empty(t, stored.CodeSnippet)
		assert.NotEmpty(t, stored.ImageContent)
	})

	t.Run("should fail when the counter cannot be advanced", func(t *testing.T) {
		mockCounters.EXPECT().
			FindOneAndUpdate(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(mockCounter)
		mockCounter.EXPECT().
			Decode(gomock.Any()).
			Return(fmt.Errorf("counter_failed"))

		id, err := repo.Insert(ctx, mongoImageRecord())
		assert.Equal(t, PostId(0), id)
		assert.Error(t, err)
	})

	t.Run("should fail on insert error", func(t *testing.T) {
		mockCounters.EXPECT().
			FindOneAndUpdate(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(mockCounter)
		mockCounter.EXPECT().
			Decode(gomock.Any()).
			SetArg(0, mongoCounter{Seq: 5}).
			Return(nil)
		mockPosts.EXPECT().
			InsertOne(ctx, gomock.Any()).
			Return(nil, fmt.Errorf("insert_failed"))

		id, err := repo.Insert(ctx, mongoImageRecord())
		assert.Equal(t, PostId(0), id)
		assert.Error(t, err)
	})
}

func TestMongoFindById(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	mockPosts := NewMockIMongoCollection(ctrl)
	mockResult := NewMockIMongoSingleResult(ctrl)

	repo := &MongoRepo{
		posts: mockPosts,
	}

	t.Run("should decode the embedded document", func(t *testing.T) {
		doc := mongoDoc(t, 2, mongoImageRecord())
		mockPosts.EXPECT().
			FindOne(ctx, bson.M{"_id": PostId(2)}).
			Return(mockResult)
		mockResult.EXPECT().
			Decode(gomock.AssignableToTypeOf(&mongoPost{})).
			SetArg(0, doc).
			Return(nil)

		p, err := repo.FindById(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, PostId(2), p.Id)
		assert.Nil(t, p.Location)
		assert.Nil(t, p.CodeSnippet)

		v, err := content.Decode(p.ImageContent, p.ContentType)
		require.NoError(t, err)
		assert.Equal(t, &content.ImageCard{Emoji: "🔥", Title: "Prod is down", Variant: "fire"}, v)
	})

	t.Run("should return ErrNotFound", func(t *testing.T) {
		mockPosts.EXPECT().
			FindOne(ctx, gomock.Any()).
			Return(mockResult)
		mockResult.EXPECT().
			Decode(gomock.Any()).
			Return(mongo.ErrNoDocuments)

		p, err := repo.FindById(ctx, 9)
		assert.Nil(t, p)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("should wrap other errors", func(t *testing.T) {
		mockPosts.EXPECT().
			FindOne(ctx, gomock.Any()).
			Return(mockResult)
		mockResult.EXPECT().
			Decode(gomock.Any()).
			Return(fmt.Errorf("network"))

		_, err := repo.FindById(ctx, 9)
		assert.Error(t, err)
		assert.False(t, errors.Is(err, ErrNotFound))
	})
}

func TestMongoFindAllOrdered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	mockPosts := NewMockIMongoCollection(ctrl)
	mockCursor := NewMockIMongoCursor(ctrl)

	repo := &MongoRepo{
		posts: mockPosts,
	}

	t.Run("should return posts in cursor order", func(t *testing.T) {
		first, second := mongoDoc(t, 3, mongoImageRecord()), mongoDoc(t, 1, mongoImageRecord())
		second.SortOrder = 5
		expected := []*mongoPost{&first, &second}

		mockPosts.EXPECT().
			Find(ctx, bson.M{}, gomock.Any()).
			Return(mockCursor, nil)
		mockCursor.EXPECT().
			All(ctx, gomock.AssignableToTypeOf(&expected)).
			SetArg(1, expected).
			Return(nil)
		mockCursor.EXPECT().Close(ctx).Return(nil)

		posts, err := repo.FindAllOrdered(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, PostId(3), posts[0].Id)
		assert.Equal(t, PostId(1), posts[1].Id)
		assert.Equal(t, 5, posts[1].SortOrder)
	})

	t.Run("should fail on find error", func(t *testing.T) {
		mockPosts.EXPECT().
			Find(ctx, gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("find_failed"))

		posts, err := repo.FindAllOrdered(ctx)
		assert.Nil(t, posts)
		assert.Error(t, err)
	})
}

func TestMongoExistsById(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockPosts := NewMockIMongoCollection(ctrl)
	repo := &MongoRepo{posts: mockPosts}

	mockPosts.EXPECT().
		CountDocuments(ctx, bson.M{"_id": PostId(1)}, gomock.Any()).
		Return(int64(1), nil)
	mockPosts.EXPECT().
		CountDocuments(ctx, bson.M{"_id": PostId(2)}, gomock.Any()).
		Return(int64(0), nil)

	exists, err := repo.ExistsById(ctx, 1)
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsById(ctx, 2)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestMongoReplaceAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	mockPosts := NewMockIMongoCollection(ctrl)
	mockUpdate := NewMockIMongoUpdateResult(ctrl)
	mockDelete := NewMockIMongoDeleteResult(ctrl)

	repo := &MongoRepo{posts: mockPosts}

	t.Run("should replace the whole document", func(t *testing.T) {
		mockPosts.EXPECT().
			ReplaceOne(ctx, bson.M{"_id": PostId(6)}, gomock.AssignableToTypeOf(&mongoPost{})).
			Return(mockUpdate, nil)
		mockUpdate.EXPECT().Matched().Return(int64(1))

		assert.NoError(t, repo.Replace(ctx, 6, mongoImageRecord()))
	})

	t.Run("should report a missing post on replace", func(t *testing.T) {
		mockPosts.EXPECT().
			ReplaceOne(ctx, gomock.Any(), gomock.Any()).
			Return(mockUpdate, nil)
		mockUpdate.EXPECT().Matched().Return(int64(0))

		assert.ErrorIs(t, repo.Replace(ctx, 6, mongoImageRecord()), ErrNotFound)
	})

	t.Run("should delete", func(t *testing.T) {
		mockPosts.EXPECT().
			DeleteOne(ctx, bson.M{"_id": PostId(6)}).
			Return(mockDelete, nil)
		mockDelete.EXPECT().Deleted().Return(int64(1))

		assert.NoError(t, repo.DeleteById(ctx, 6))
	})

	t.Run("should report a missing post on delete", func(t *testing.T) {
		mockPosts.EXPECT().
			DeleteOne(ctx, gomock.Any()).
			Return(mockDelete, nil)
		mockDelete.EXPECT().Deleted().Return(int64(0))

		assert.ErrorIs(t, repo.DeleteById(ctx, 6), ErrNotFound)
	})

	t.Run("should wrap delete errors", func(t *testing.T) {
		mockPosts.EXPECT().
			DeleteOne(ctx, gomock.Any()).
			Return(nil, fmt.Errorf("delete_failed"))

		err := repo.DeleteById(ctx, 6)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestMongoWithTx(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockTx := NewMockIMongoTransactor(ctrl)
	repo := &MongoRepo{tx: mockTx}

	t.Run("should run nested calls in one transaction", func(t *testing.T) {
		mockTx.EXPECT().
			WithTransaction(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
				return fn(ctx)
			}).
			Times(1)

		calls := 0
		err := repo.WithTx(ctx, func(ctx context.Context) error {
			calls++
			return repo.WithReadTx(ctx, func(context.Context) error {
				calls++
				return nil
			})
		})
		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("should return the callback error", func(t *testing.T) {
		expectedErr := fmt.Errorf("boom")
		mockTx.EXPECT().
			WithTransaction(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
				return fn(ctx)
			})

		err := repo.WithTx(ctx, func(context.Context) error { return expectedErr })
		assert.Equal(t, expectedErr, err)
	})
}

func TestMongoDocuments(t *testing.T) {
	t.Run("should read back what was written", func(t *testing.T) {
		snippet := &content.CodeSnippet{Lines: []content.CodeLine{
			{Segments: []content.CodeSegment{
				{Text: "func", Kind: content.HighlightKeyword},
				{Text: " main()", Kind: content.HighlightFunction},
			}},
			{Segments: []content.CodeSegment{}},
		}}
		raw, err := documentToRaw(content.Encode(snippet))
		require.NoError(t, err)

		doc, err := rawToDocument(raw, content.TypeCode)
		require.NoError(t, err)
		v, err := content.Decode(doc, content.TypeCode)
		require.NoError(t, err)
		assert.Equal(t, snippet, v)
	})

	t.Run("should treat an empty raw value as no document", func(t *testing.T) {
		doc, err := rawToDocument(nil, content.TypeCode)
		assert.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("should keep a missing location nil", func(t *testing.T) {
		doc := mongoDoc(t, 1, mongoImageRecord())
		p, err := fromMongo(&doc)
		require.NoError(t, err)
		assert.Nil(t, p.Location)
		assert.Equal(t, []string{"#oncall"}, p.Hashtags)
	})
}
