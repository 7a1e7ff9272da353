package repository

import (
	"context"
	"regexp"
	"testing"

	"echo/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestTweetRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	tweet := &models.Tweet{Body: "hello world", UserID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "tweets"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, tweet)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTweetRepository_List_NoLimitReturnsEverything(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	// Anchored at the ORDER BY so a stray LIMIT or OFFSET clause fails the match.
	mock.ExpectQuery(`ORDER BY tweets.created_at DESC$`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "body", "user_id"}).
			AddRow(2, "second", 7).
			AddRow(1, "first", 7))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	tweets, err := repo.List(ctx, 1, 0, 0)
	assert.NoError(t, err)
	assert.Len(t, tweets, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTweetRepository_Delete_RemovesRow(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "tweets" WHERE "tweets"."id" = $1`)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(ctx, 5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTweetRepository_IsLiked(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "likes" WHERE user_id = $1 AND tweet_id = $2`)).
		WithArgs(1, 5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	liked, err := repo.IsLiked(ctx, 1, 5)
	assert.NoError(t, err)
	assert.True(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTweetRepository_Unlike(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND tweet_id = $2`)).
		WithArgs(1, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Unlike(ctx, 1, 5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTweetRepository_ListByAuthorIDs_EmptySet(t *testing.T) {
	db, _ := setupMockDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	// No authors means no query at all.
	tweets, err := repo.ListByAuthorIDs(ctx, nil, 1, 20, 0)
	assert.NoError(t, err)
	assert.Empty(t, tweets)
}

func TestTweetRepository_AddComment(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	comment := &models.Comment{TweetID: 5, UserID: 1, Body: "nice"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "comments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.AddComment(ctx, comment)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookmarkRepository_TweetIDs(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBookmarkRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "tweet_id" FROM "bookmarks" WHERE user_id = $1 ORDER BY created_at ASC`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"tweet_id"}).AddRow(4).AddRow(9))

	ids, err := repo.TweetIDs(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, []uint{4, 9}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
