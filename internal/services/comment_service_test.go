package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openforum/backend/internal/models"
)

func newCommentService(t *testing.T) (Comment, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	svc := NewCommentService(zap.NewNop(), store, store, 100)
	return svc, store
}

func seedPost(t *testing.T, store *fakeStore, authorID uint) *models.Post {
	t.Helper()
	post := &models.Post{Title: "A valid title", Content: "long enough content", AuthorID: authorID}
	require.NoError(t, store.CreatePost(context.Background(), post))
	return post
}

func TestCommentService_Create(t *testing.T) {
	svc, store := newCommentService(t)
	ctx := context.Background()
	author := seedUser(t, store, "alice", models.RoleUser)
	post := seedPost(t, store, author.ID)

	comment, err := svc.Create(ctx, post.ID, "  good point  ", author.ID)
	require.NoError(t, err)
	assert.Equal(t, "good point", comment.Content)
	assert.Equal(t, post.ID, comment.PostID)
	assert.False(t, comment.CreatedAt.IsZero())
}

func TestCommentService_Create_PostMissing(t *testing.T) {
	svc, store := newCommentService(t)
	author := seedUser(t, store, "alice", models.RoleUser)

	_, err := svc.Create(context.Background(), 999, "good point", author.ID)
	svcErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, svcErr.Code)
}

func TestCommentService_Create_ContentBounds(t *testing.T) {
	svc, store := newCommentService(t)
	ctx := context.Background()
	author := seedUser(t, store, "alice", models.RoleUser)
	post := seedPost(t, store, author.ID)

	_, err := svc.Create(ctx, post.ID, "ab", author.ID)
	svcErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidArgument, svcErr.Code)

	_, err = svc.Create(ctx, post.ID, strings.Repeat("x", 2001), author.ID)
	svcErr, ok = AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidArgument, svcErr.Code)

	// Whitespace padding must not rescue an undersized comment.
	_, err = svc.Create(ctx, post.ID, "  a  ", author.ID)
	svcErr, ok = AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidArgument, svcErr.Code)

	// Bounds count characters: 2 characters is too short no matter
	// how many bytes they take, and 2000 multibyte characters fit.
	_, err = svc.Create(ctx, post.ID, "好的", author.ID)
	svcErr, ok = AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidArgument, svcErr.Code)

	comment, err := svc.Create(ctx, post.ID, strings.Repeat("猫", 2000), author.ID)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("猫", 2000), comment.Content)
}

func TestCommentService_GetForPost(t *testing.T) {
	svc, store := newCommentService(t)
	ctx := context.Background()
	author := seedUser(t, store, "alice", models.RoleUser)
	post := seedPost(t, store, author.ID)

	for _, content := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, post.ID, content, author.ID)
		require.NoError(t, err)
	}

	result, err := svc.GetForPost(ctx, post.ID, 1, 10, models.SortAsc)
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	assert.Equal(t, "first", result.Items[0].Content)
	assert.Equal(t, "third", result.Items[2].Content)

	desc, err := svc.GetForPost(ctx, post.ID, 1, 10, models.SortDesc)
	require.NoError(t, err)
	assert.Equal(t, "third", desc.Items[0].Content)
}

func TestCommentService_GetForPost_PostMissing(t *testing.T) {
	svc, _ := newCommentService(t)

	_, err := svc.GetForPost(context.Background(), 999, 1, 10, "")
	svcErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, svcErr.Code)
}

func TestCommentService_CountForPost(t *testing.T) {
	svc, store := newCommentService(t)
	ctx := context.Background()
	author := seedUser(t, store, "alice", models.RoleUser)
	post := seedPost(t, store, author.ID)

	count, err := svc.CountForPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = svc.Create(ctx, post.ID, "good point", author.ID)
	require.NoError(t, err)

	count, err = svc.CountForPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCommentService_GetByID(t *testing.T) {
	svc, store := newCommentService(t)
	ctx := context.Background()
	author := seedUser(t, store, "alice", models.RoleUser)
	post := seedPost(t, store, author.ID)

	created, err := svc.Create(ctx, post.ID, "good point", author.ID)
	require.NoError(t, err)

	fetched, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Content, fetched.Content)

	exists, err := svc.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = svc.GetByID(ctx, 999)
	svcErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, svcErr.Code)
}
