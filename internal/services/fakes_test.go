package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/openforum/backend/internal/models"
	"github.com/openforum/backend/internal/repositories"
)

// fakeStore is an in-memory implementation of every repository
// interface. It mirrors the schema's guarantees: auto-increment IDs,
// server-side CreatedAt, and unique indexes that reject duplicates
// with gorm.ErrDuplicatedKey under a mutex, just as Postgres would.
type fakeStore struct {
	mu sync.Mutex

	users    map[uint]*models.User
	posts    map[uint]*models.Post
	comments map[uint]*models.Comment
	likes    map[uint]*models.Like
	tags     map[uint]*models.PostTag
	tokens   map[string]uint

	nextID uint
	clock  time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uint]*models.User),
		posts:    make(map[uint]*models.Post),
		comments: make(map[uint]*models.Comment),
		likes:    make(map[uint]*models.Like),
		tags:     make(map[uint]*models.PostTag),
		tokens:   make(map[string]uint),
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick hands out strictly increasing timestamps so ordering tests are
// deterministic.
func (f *fakeStore) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeStore) id() uint {
	f.nextID++
	return f.nextID
}

// --- UserRepository ---

func (f *fakeStore) CreateUser(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = f.id()
	user.CreatedAt = f.tick()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) UserExists(_ context.Context, id uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[id]
	return ok, nil
}

// --- PostRepository ---

func (f *fakeStore) CreatePost(_ context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post.ID = f.id()
	post.CreatedAt = f.tick()
	stored := *post
	f.posts[post.ID] = &stored
	return nil
}

func (f *fakeStore) GetPostByID(_ context.Context, id uint) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *post
	if author, ok := f.users[post.AuthorID]; ok {
		a := *author
		copied.Author = &a
	}
	return &copied, nil
}

func (f *fakeStore) ListPosts(_ context.Context, filter models.PostFilter, limit, offset int) ([]models.Post, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []models.Post
	for _, post := range f.posts {
		if filter.AuthorID != nil && post.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.DateFrom != nil && post.CreatedAt.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && post.CreatedAt.After(*filter.DateTo) {
			continue
		}
		if len(filter.Tags) > 0 && !f.postHasAnyTag(post.ID, filter.Tags) {
			continue
		}
		matched = append(matched, *post)
	}

	asc := filter.SortOrder == models.SortAsc
	sort.Slice(matched, func(i, j int) bool {
		var less bool
		if filter.SortBy == models.SortByLikeCount {
			li, lj := f.likeCount(matched[i].ID), f.likeCount(matched[j].ID)
			if li != lj {
				less = li < lj
			} else {
				less = matched[i].ID < matched[j].ID
			}
		} else {
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})

	total := int64(len(matched))
	return slicePage(matched, limit, offset), total, nil
}

func (f *fakeStore) ListPostsByAuthor(_ context.Context, authorID uint, sortOrder string, limit, offset int) ([]models.Post, int64, error) {
	id := authorID
	return f.ListPosts(context.Background(), models.PostFilter{AuthorID: &id, SortOrder: sortOrder}, limit, offset)
}

func (f *fakeStore) PostExists(_ context.Context, id uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.posts[id]
	return ok, nil
}

func (f *fakeStore) GetPostAuthorID(_ context.Context, id uint) (uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return post.AuthorID, nil
}

func (f *fakeStore) CountPostsByAuthor(_ context.Context, authorID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, post := range f.posts {
		if post.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

// --- CommentRepository ---

func (f *fakeStore) CreateComment(_ context.Context, comment *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment.ID = f.id()
	comment.CreatedAt = f.tick()
	stored := *comment
	f.comments[comment.ID] = &stored
	return nil
}

func (f *fakeStore) GetCommentByID(_ context.Context, id uint) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *comment
	return &copied, nil
}

func (f *fakeStore) ListCommentsByPost(_ context.Context, postID uint, sortOrder string, limit, offset int) ([]models.Comment, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []models.Comment
	for _, comment := range f.comments {
		if comment.PostID == postID {
			matched = append(matched, *comment)
		}
	}
	asc := sortOrder == models.SortAsc
	sort.Slice(matched, func(i, j int) bool {
		less := matched[i].CreatedAt.Before(matched[j].CreatedAt)
		if asc {
			return less
		}
		return !less
	})
	total := int64(len(matched))
	return slicePage(matched, limit, offset), total, nil
}

func (f *fakeStore) CommentExists(_ context.Context, id uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.comments[id]
	return ok, nil
}

func (f *fakeStore) CountCommentsByPost(_ context.Context, postID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, comment := range f.comments {
		if comment.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CountCommentsByAuthor(_ context.Context, authorID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, comment := range f.comments {
		if comment.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

// --- LikeRepository ---

func (f *fakeStore) CreateLike(_ context.Context, like *models.Like) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.likes {
		if l.PostID == like.PostID && l.UserID == like.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	like.ID = f.id()
	like.CreatedAt = f.tick()
	stored := *like
	f.likes[like.ID] = &stored
	return nil
}

func (f *fakeStore) DeleteLike(_ context.Context, postID, userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, like := range f.likes {
		if like.PostID == postID && like.UserID == userID {
			delete(f.likes, id)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) GetLikesByPostID(_ context.Context, postID uint) ([]models.Like, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var likes []models.Like
	for _, like := range f.likes {
		if like.PostID == postID {
			likes = append(likes, *like)
		}
	}
	sort.Slice(likes, func(i, j int) bool { return likes[i].CreatedAt.Before(likes[j].CreatedAt) })
	return likes, nil
}

func (f *fakeStore) GetLikesCountByPostID(_ context.Context, postID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.likeCount(postID), nil
}

func (f *fakeStore) HasUserLikedPost(_ context.Context, postID, userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, like := range f.likes {
		if like.PostID == postID && like.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CountLikesReceivedByAuthor(_ context.Context, authorID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, like := range f.likes {
		if post, ok := f.posts[like.PostID]; ok && post.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

// --- PostTagRepository ---

func (f *fakeStore) CreateTag(_ context.Context, tag *models.PostTag) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tags {
		if t.PostID == tag.PostID {
			return gorm.ErrDuplicatedKey
		}
	}
	tag.ID = f.id()
	tag.CreatedAt = f.tick()
	stored := *tag
	f.tags[tag.ID] = &stored
	return nil
}

func (f *fakeStore) DeleteTagByPost(_ context.Context, postID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, tag := range f.tags {
		if tag.PostID == postID {
			delete(f.tags, id)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) GetTagByPost(_ context.Context, postID uint) (*models.PostTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tag := range f.tags {
		if tag.PostID == postID {
			copied := *tag
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) PostIsTagged(_ context.Context, postID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tag := range f.tags {
		if tag.PostID == postID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ListTaggedPosts(_ context.Context, limit, offset int) ([]models.TaggedPost, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var tags []models.PostTag
	for _, tag := range f.tags {
		tags = append(tags, *tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].CreatedAt.Before(tags[j].CreatedAt) })

	var tagged []models.TaggedPost
	for _, tag := range tags {
		post := f.posts[tag.PostID]
		author := f.users[post.AuthorID]
		moderator := f.users[tag.CreatedByUserID]
		tagged = append(tagged, models.TaggedPost{
			Post:             *post,
			AuthorUsername:   author.Username,
			Tag:              tag.Tag,
			TaggedByUsername: moderator.Username,
			TaggedAt:         tag.CreatedAt,
		})
	}
	total := int64(len(tagged))
	return slicePage(tagged, limit, offset), total, nil
}

func (f *fakeStore) ListTagsByPost(_ context.Context, postID uint) ([]models.PostTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var tags []models.PostTag
	for _, tag := range f.tags {
		if tag.PostID == postID {
			tags = append(tags, *tag)
		}
	}
	return tags, nil
}

// --- RefreshTokenRepository ---

func (f *fakeStore) SaveRefreshToken(_ context.Context, token string, userID uint, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = userID
	return nil
}

func (f *fakeStore) GetRefreshTokenUser(_ context.Context, token string) (uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	userID, ok := f.tokens[token]
	if !ok {
		return 0, repositories.ErrTokenNotFound
	}
	return userID, nil
}

func (f *fakeStore) DeleteRefreshToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
	return nil
}

// --- helpers ---

func (f *fakeStore) likeCount(postID uint) int64 {
	var count int64
	for _, like := range f.likes {
		if like.PostID == postID {
			count++
		}
	}
	return count
}

func (f *fakeStore) postHasAnyTag(postID uint, kinds []models.TagKind) bool {
	for _, tag := range f.tags {
		if tag.PostID != postID {
			continue
		}
		for _, kind := range kinds {
			if tag.Tag == kind {
				return true
			}
		}
	}
	return false
}

func slicePage[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
