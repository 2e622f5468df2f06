package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/avudaiappan/blog-api/internal/apperror"
	"github.com/avudaiappan/blog-api/internal/middleware"
	"github.com/avudaiappan/blog-api/internal/models"
	"github.com/avudaiappan/blog-api/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret-for-handler-tests"

// In-memory stand-ins for the Mongo repositories. They mirror the real
// implementations' error semantics: posts fail with NotFound, links
// succeed with nil results for unknown ids.

type mockPostRepo struct {
	posts map[string]models.Post
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: make(map[string]models.Post)}
}

func (m *mockPostRepo) GetAllPosts(_ context.Context) ([]models.Post, error) {
	result := make([]models.Post, 0, len(m.posts))
	for _, p := range m.posts {
		result = append(result, p)
	}
	return result, nil
}

func (m *mockPostRepo) CreatePost(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	m.posts[post.ID.Hex()] = *post
	return nil
}

func (m *mockPostRepo) UpdatePost(_ context.Context, id string, fields bson.M) (*models.Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, apperror.NotFound("post", id)
	}
	for k, v := range fields {
		switch k {
		case "title":
			post.Title = v.(string)
		case "description":
			post.Description = v.(string)
		case "author":
			post.Author = v.(string)
		case "tags":
			post.Tags = v.(string)
		case "publishedAt":
			post.PublishedAt = v.(time.Time)
		case "image":
			post.Image = v.([]byte)
		}
	}
	m.posts[id] = post
	result := post
	return &result, nil
}

func (m *mockPostRepo) DeletePost(_ context.Context, id string) error {
	if _, ok := m.posts[id]; !ok {
		return apperror.NotFound("post", id)
	}
	delete(m.posts, id)
	return nil
}

type mockUserRepo struct {
	users map[string]*models.User // keyed by hex id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	if user.Tokens == nil {
		user.Tokens = []string{}
	}
	stored := *user
	m.users[user.ID.Hex()] = &stored
	return nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (m *mockUserRepo) AppendToken(_ context.Context, id, token string) error {
	u, ok := m.users[id]
	if !ok {
		return apperror.NotFound("user", id)
	}
	u.Tokens = append(u.Tokens, token)
	return nil
}

func (m *mockUserRepo) RemoveToken(_ context.Context, id, token string) error {
	u, ok := m.users[id]
	if !ok {
		return apperror.NotFound("user", id)
	}
	kept := u.Tokens[:0]
	for _, t := range u.Tokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
	return nil
}

type mockLinkRepo struct {
	links map[string]models.Link
}

func newMockLinkRepo() *mockLinkRepo {
	return &mockLinkRepo{links: make(map[string]models.Link)}
}

func (m *mockLinkRepo) GetAllLinks(_ context.Context) ([]models.Link, error) {
	result := make([]models.Link, 0, len(m.links))
	for _, l := range m.links {
		result = append(result, l)
	}
	return result, nil
}

func (m *mockLinkRepo) GetLinkByID(_ context.Context, id string) (*models.Link, error) {
	l, ok := m.links[id]
	if !ok {
		return nil, nil
	}
	result := l
	return &result, nil
}

func (m *mockLinkRepo) CreateLink(_ context.Context, link *models.Link) error {
	link.ID = primitive.NewObjectID()
	m.links[link.ID.Hex()] = *link
	return nil
}

func (m *mockLinkRepo) UpdateLink(_ context.Context, id string, fields bson.M) (*models.Link, error) {
	l, ok := m.links[id]
	if !ok {
		return nil, nil
	}
	if v, ok := fields["linkName"]; ok {
		l.Name = v.(string)
	}
	if v, ok := fields["linkURL"]; ok {
		l.URL = v.(string)
	}
	m.links[id] = l
	result := l
	return &result, nil
}

func (m *mockLinkRepo) DeleteLink(_ context.Context, id string) error {
	delete(m.links, id)
	return nil
}

// failingPostRepo simulates an unreachable document store: every
// operation fails the way the Mongo repository does.
type failingPostRepo struct{}

func (failingPostRepo) GetAllPosts(_ context.Context) ([]models.Post, error) {
	return nil, apperror.Store(errors.New("server selection timeout"))
}

func (failingPostRepo) CreatePost(_ context.Context, _ *models.Post) error {
	return apperror.Store(errors.New("server selection timeout"))
}

func (failingPostRepo) UpdatePost(_ context.Context, _ string, _ bson.M) (*models.Post, error) {
	return nil, apperror.Store(errors.New("server selection timeout"))
}

func (failingPostRepo) DeletePost(_ context.Context, _ string) error {
	return apperror.Store(errors.New("server selection timeout"))
}

// newTestServer wires an Echo instance the same way the router does,
// against the in-memory repositories.
func newTestServer(postRepo repositories.PostRepository, userRepo repositories.UserRepository, linkRepo repositories.LinkRepository) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler

	authMiddleware := middleware.JWTAuthMiddleware(testSecret)

	NewPostHandler(postRepo).RegisterPostRoutes(e.Group("/api/v1/myblog"), authMiddleware)
	NewAuthHandler(userRepo, testSecret).RegisterAuthRoutes(e.Group("/user"), authMiddleware)
	NewLinkHandler(linkRepo).RegisterLinkRoutes(e.Group("/links"))

	return e
}
