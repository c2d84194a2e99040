// Package community 社区服务单元测试
package community

import (
	"context"
	"errors"
	"testing"

	"github.com/serenitybot/serenity/internal/model"
	"github.com/serenitybot/serenity/internal/repository"
)

// mockPostStore 内存帖子存储
type mockPostStore struct {
	posts map[string]*model.Post
	users map[string]*model.User
}

func newMockPostStore() *mockPostStore {
	return &mockPostStore{
		posts: make(map[string]*model.Post),
		users: make(map[string]*model.User),
	}
}

func (m *mockPostStore) CreatePost(_ context.Context, post *model.Post) error {
	post.Author = m.users[post.AuthorID]
	m.posts[post.ID] = post
	return nil
}

func (m *mockPostStore) GetPostByID(_ context.Context, id string) (*model.Post, error) {
	if post, ok := m.posts[id]; ok {
		return post, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockPostStore) ListPosts(_ context.Context) ([]*model.Post, error) {
	result := make([]*model.Post, 0, len(m.posts))
	for _, post := range m.posts {
		result = append(result, post)
	}
	return result, nil
}

func (m *mockPostStore) AddComment(_ context.Context, comment *model.Comment) error {
	post, ok := m.posts[comment.PostID]
	if !ok {
		return repository.ErrNotFound
	}
	comment.Author = m.users[comment.AuthorID]
	post.Comments = append(post.Comments, *comment)
	return nil
}

func (m *mockPostStore) LikePost(_ context.Context, id string) (int, error) {
	post, ok := m.posts[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	post.Likes++
	return post.Likes, nil
}

func TestCreatePostAnonymity(t *testing.T) {
	tests := []struct {
		name        string
		isAnonymous bool
		wantAuthor  string
	}{
		{name: "named post shows author", isAnonymous: false, wantAuthor: "alice"},
		{name: "anonymous post masks author", isAnonymous: true, wantAuthor: "Anonymous User"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockPostStore()
			store.users["user-1"] = &model.User{ID: "user-1", Username: "alice"}
			svc := NewService(store)

			post, err := svc.CreatePost(context.Background(), "user-1", &CreatePostRequest{
				Content:     "sharing my progress",
				IsAnonymous: tt.isAnonymous,
			})
			if err != nil {
				t.Fatalf("CreatePost() error = %v", err)
			}
			if post.Author.Username != tt.wantAuthor {
				t.Errorf("author = %q, want %q", post.Author.Username, tt.wantAuthor)
			}
		})
	}
}

func TestAddComment(t *testing.T) {
	store := newMockPostStore()
	store.users["user-1"] = &model.User{ID: "user-1", Username: "alice"}
	store.users["user-2"] = &model.User{ID: "user-2", Username: "bob"}
	svc := NewService(store)

	post, err := svc.CreatePost(context.Background(), "user-1", &CreatePostRequest{Content: "hello"})
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	updated, err := svc.AddComment(context.Background(), post.ID, "user-2", &AddCommentRequest{
		Content:     "stay strong",
		IsAnonymous: true,
	})
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}
	if len(updated.Comments) != 1 {
		t.Fatalf("post has %d comments, want 1", len(updated.Comments))
	}
	// 匿名评论的作者同样被抹去
	if updated.Comments[0].Author.Username != "Anonymous User" {
		t.Errorf("comment author = %q, want masked", updated.Comments[0].Author.Username)
	}
}

func TestAddCommentUnknownPost(t *testing.T) {
	svc := NewService(newMockPostStore())

	_, err := svc.AddComment(context.Background(), "missing", "user-1", &AddCommentRequest{Content: "hi"})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("AddComment() error = %v, want ErrNotFound", err)
	}
}

func TestLikePost(t *testing.T) {
	store := newMockPostStore()
	store.users["user-1"] = &model.User{ID: "user-1", Username: "alice"}
	svc := NewService(store)

	post, err := svc.CreatePost(context.Background(), "user-1", &CreatePostRequest{Content: "hello"})
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	for want := 1; want <= 3; want++ {
		likes, err := svc.LikePost(context.Background(), post.ID)
		if err != nil {
			t.Fatalf("LikePost() error = %v", err)
		}
		if likes != want {
			t.Errorf("likes = %d, want %d", likes, want)
		}
	}
}
