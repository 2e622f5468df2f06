package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/avudaiappan/blog-api/internal/apperror"
	"github.com/avudaiappan/blog-api/internal/models"
	"github.com/avudaiappan/blog-api/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
)

// maxImageBytes is the upload size limit for post images.
const maxImageBytes = 1000000

var imageNamePattern = regexp.MustCompile(`(?i)(\.jpg|\.jpeg|\.png)$`)

// PostHandler handles HTTP requests related to blog posts
type PostHandler struct {
	postRepository repositories.PostRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository) *PostHandler {
	return &PostHandler{postRepository: postRepo}
}

// RegisterPostRoutes registers post-related routes. List and create are
// public; update and delete require a bearer token.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, authMiddleware echo.MiddlewareFunc) {
	g.GET("", h.ListPosts)
	g.POST("", h.CreatePost)
	g.PATCH("/:id", h.UpdatePost, authMiddleware)
	g.DELETE("/:id", h.DeletePost, authMiddleware)
}

// ListPosts returns every post as stored
func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// CreatePost creates a new post from a multipart upload. The image
// travels as a file part named "image"; every other part must be one of
// the whitelisted post fields.
func (h *PostHandler) CreatePost(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apperror.ValidationFailed("", "Invalid Entries found!")
	}

	keys := make([]string, 0, len(form.Value)+len(form.File))
	for k := range form.Value {
		keys = append(keys, k)
	}
	for k := range form.File {
		keys = append(keys, k)
	}
	if invalid := models.InvalidPostFields(keys); len(invalid) > 0 {
		return apperror.ValidationFailed(invalid[0], "Invalid Entries found!")
	}

	req := models.CreatePostRequest{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Tags:        c.FormValue("tags"),
		Author:      c.FormValue("author"),
		PublishedAt: c.FormValue("publishedAt"),
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return apperror.ValidationFailed("", err.Error())
	}

	files := form.File["image"]
	if len(files) == 0 {
		return apperror.ValidationFailed("image", "Please upload image!")
	}
	fileHeader := files[0]
	if !imageNamePattern.MatchString(fileHeader.Filename) {
		return apperror.ValidationFailed("image", "Please upload image!")
	}
	if fileHeader.Size > maxImageBytes {
		return apperror.ValidationFailed("image", "Image too large!")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return apperror.ValidationFailed("image", "Please upload image!")
	}
	defer src.Close()
	image, err := io.ReadAll(src)
	if err != nil {
		return apperror.ValidationFailed("image", "Please upload image!")
	}

	publishedAt := time.Now()
	if req.PublishedAt != "" {
		publishedAt, err = time.Parse(time.RFC3339, req.PublishedAt)
		if err != nil {
			return apperror.ValidationFailed("publishedAt", "Invalid publishedAt timestamp!")
		}
	}

	author := req.Author
	if author == "" {
		author = models.DefaultAuthor
	}

	post := &models.Post{
		Title:       req.Title,
		Description: req.Description,
		Author:      author,
		PublishedAt: publishedAt,
		Tags:        req.Tags,
		Image:       image,
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, post)
}

// UpdatePost applies a partial JSON update to an existing post. The
// same field whitelist as create applies, and required fields may not
// be blanked out.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	id := c.Param("id")

	var body map[string]interface{}
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		return apperror.ValidationFailed("", "Invalid request payload")
	}

	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	if invalid := models.InvalidPostFields(keys); len(invalid) > 0 {
		return apperror.ValidationFailed(invalid[0], "Unable to update invalid Entries!")
	}
	if len(body) == 0 {
		return apperror.ValidationFailed("", "No fields to update!")
	}

	fields := bson.M{}
	for k, v := range body {
		switch k {
		case "title", "description", "tags":
			s, ok := v.(string)
			if !ok || s == "" {
				return apperror.ValidationFailed(k, "Field "+k+" must be a non-empty string!")
			}
			fields[k] = s
		case "author":
			s, ok := v.(string)
			if !ok {
				return apperror.ValidationFailed(k, "Field author must be a string!")
			}
			fields[k] = s
		case "publishedAt":
			s, ok := v.(string)
			if !ok {
				return apperror.ValidationFailed(k, "Invalid publishedAt timestamp!")
			}
			publishedAt, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return apperror.ValidationFailed(k, "Invalid publishedAt timestamp!")
			}
			fields[k] = publishedAt
		case "image":
			// JSON carries the image as base64.
			s, ok := v.(string)
			if !ok || s == "" {
				return apperror.ValidationFailed(k, "Please upload image!")
			}
			image, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return apperror.ValidationFailed(k, "Please upload image!")
			}
			fields[k] = image
		}
	}

	post, err := h.postRepository.UpdatePost(c.Request().Context(), id, fields)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post by id
func (h *PostHandler) DeletePost(c echo.Context) error {
	if err := h.postRepository.DeletePost(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
