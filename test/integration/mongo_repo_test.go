//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"forum-api/internal/model"
	"forum-api/internal/query"
	"forum-api/internal/repository"
	"forum-api/internal/service"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func seedPosts(t *testing.T, posts *repository.PostRepository, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		tag := "#go"
		if i%2 == 1 {
			tag = "#tech"
		}
		_, err := posts.Insert(context.Background(), model.Post{
			AuthorName: "author",
			Email:      fmt.Sprintf("user%d@x.com", i%3),
			Title:      fmt.Sprintf("post %d", i),
			Tag:        tag,
			PostTime:   baseTime.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
}

func titles(posts []model.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

func TestPostRepository_PagingAndSort(t *testing.T) {
	m := newMongo(t)
	posts := repository.NewPostRepository(m.DB, storeTimeout)
	seedPosts(t, posts, 25)
	ctx := context.Background()

	q, err := query.BuildListQuery(query.ListQuery{Page: 1, Size: 10})
	require.NoError(t, err)
	page, err := posts.Find(ctx, q)
	require.NoError(t, err)
	require.Len(t, page, 10)
	assert.Equal(t, "post 14", page[0].Title)
	assert.Equal(t, "post 5", page[9].Title)

	q, err = query.BuildListQuery(query.ListQuery{SortDirection: "desc", Page: 1, Size: 10})
	require.NoError(t, err)
	page, err = posts.Find(ctx, q)
	require.NoError(t, err)
	require.Len(t, page, 10)
	assert.Equal(t, "post 10", page[0].Title)
	assert.Equal(t, "post 19", page[9].Title)

	q, err = query.BuildListQuery(query.ListQuery{Page: 2, Size: 10})
	require.NoError(t, err)
	page, err = posts.Find(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"post 4", "post 3", "post 2", "post 1", "post 0"}, titles(page))

	all, err := posts.Find(ctx, query.All())
	require.NoError(t, err)
	assert.Len(t, all, 25)

	count, err := posts.EstimatedCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 25, count)
}

func TestPostRepository_Filters(t *testing.T) {
	m := newMongo(t)
	posts := repository.NewPostRepository(m.DB, storeTimeout)
	seedPosts(t, posts, 6)
	ctx := context.Background()

	tagged, err := posts.Find(ctx, query.ByTag("tech"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"post 1", "post 3", "post 5"}, titles(tagged))

	byEmail, err := posts.Find(ctx, query.ByEmail("user0@x.com"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"post 0", "post 3"}, titles(byEmail))

	q, err := query.BuildListQuery(query.ListQuery{Email: "user1@x.com", Tag: "#tech", Page: 0, Size: 10})
	require.NoError(t, err)
	both, err := posts.Find(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"post 1"}, titles(both))
}

func TestPostRepository_FindOneAndDelete(t *testing.T) {
	m := newMongo(t)
	posts := repository.NewPostRepository(m.DB, storeTimeout)
	ctx := context.Background()

	id, err := posts.Insert(ctx, model.Post{ID: primitive.NewObjectID(), Email: "a@x.com", Title: "hello", PostTime: baseTime})
	require.NoError(t, err)
	require.False(t, id.IsZero())

	got, err := posts.FindOne(ctx, bson.M{"_id": id})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hello", got.Title)
	assert.True(t, got.PostTime.Equal(baseTime))

	missing, err := posts.FindOne(ctx, bson.M{"_id": primitive.NewObjectID()})
	require.NoError(t, err)
	assert.Nil(t, missing)

	filter, err := query.ByEmailAndID("b@x.com", id.Hex())
	require.NoError(t, err)
	res, err := posts.Delete(ctx, filter)
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.DeletedCount)

	filter, err = query.ByEmailAndID("a@x.com", id.Hex())
	require.NoError(t, err)
	res, err = posts.Delete(ctx, filter)
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.EqualValues(t, 1, res.DeletedCount)
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	m := newMongo(t)
	require.NoError(t, m.EnsureIndexes(context.Background()))
	users := repository.NewUserRepository(m.DB, storeTimeout)
	ctx := context.Background()

	missing, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	id, err := users.Insert(ctx, model.User{Email: "a@x.com", Name: "A", CreatedAt: baseTime})
	require.NoError(t, err)
	require.False(t, id.IsZero())

	_, err = users.Insert(ctx, model.User{Email: "a@x.com", Name: "again"})
	require.ErrorIs(t, err, repository.ErrUserExists)

	found, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, id, found.ID)
	assert.Equal(t, "A", found.Name)

	res, err := users.SetRole(ctx, id, string(model.RoleAdmin))
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.MatchedCount)
	assert.EqualValues(t, 1, res.ModifiedCount)

	res, err = users.SetRole(ctx, id, string(model.RoleAdmin))
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.MatchedCount)
	assert.EqualValues(t, 0, res.ModifiedCount)

	list, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, string(model.RoleAdmin), list[0].Role)
}

func TestRegister_ConcurrentSameEmail(t *testing.T) {
	m := newMongo(t)
	require.NoError(t, m.EnsureIndexes(context.Background()))
	users := repository.NewUserRepository(m.DB, storeTimeout)
	svc := service.NewUserService(users, service.NewRoleService(users), nil)

	const workers = 8
	results := make([]model.InsertResult, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Register(context.Background(), model.User{Email: "race@x.com"}, model.AuditActor{})
		}(i)
	}
	wg.Wait()

	inserted := 0
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		if results[i].InsertedID != nil {
			inserted++
		} else {
			assert.Equal(t, "user already exists", results[i].Message)
		}
	}
	assert.Equal(t, 1, inserted)

	list, err := users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPaymentAndAnnouncementOrdering(t *testing.T) {
	m := newMongo(t)
	payments := repository.NewPaymentRepository(m.DB, storeTimeout)
	announcements := repository.NewAnnouncementRepository(m.DB, storeTimeout)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := payments.Insert(ctx, model.Payment{
			Email:         "a@x.com",
			Price:         9.99,
			TransactionID: fmt.Sprintf("pi_%d", i),
			Date:          baseTime.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)

		_, err = announcements.Insert(ctx, model.Announcement{
			Title:     fmt.Sprintf("news %d", i),
			CreatedAt: baseTime.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
	_, err := payments.Insert(ctx, model.Payment{Email: "b@x.com", TransactionID: "pi_b", Date: baseTime})
	require.NoError(t, err)

	got, err := payments.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "pi_2", got[0].TransactionID)
	assert.Equal(t, "pi_0", got[2].TransactionID)

	none, err := payments.FindByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	items, err := announcements.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "news 2", items[0].Title)

	count, err := announcements.EstimatedCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}
