package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/avudaiappan/blog-api/internal/apperror"
	"github.com/avudaiappan/blog-api/internal/models"
	"github.com/avudaiappan/blog-api/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
)

// LinkHandler handles HTTP requests related to bookmarked links.
// Unlike posts, link updates pass body fields through without a
// whitelist, and unknown ids are not distinct errors.
type LinkHandler struct {
	linkRepository repositories.LinkRepository
}

// NewLinkHandler creates a new LinkHandler
func NewLinkHandler(linkRepo repositories.LinkRepository) *LinkHandler {
	return &LinkHandler{linkRepository: linkRepo}
}

// RegisterLinkRoutes registers link-related routes
func (h *LinkHandler) RegisterLinkRoutes(g *echo.Group) {
	g.GET("", h.ListLinks)
	g.GET("/:id", h.GetLink)
	g.POST("", h.CreateLink)
	g.PATCH("/:id", h.UpdateLink)
	g.DELETE("/:id", h.DeleteLink)
}

// ListLinks returns every link as stored
func (h *LinkHandler) ListLinks(c echo.Context) error {
	links, err := h.linkRepository.GetAllLinks(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, links)
}

// GetLink returns a link by id, or a null body when the id is unknown
func (h *LinkHandler) GetLink(c echo.Context) error {
	link, err := h.linkRepository.GetLinkByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, link)
}

// CreateLink creates a new link
func (h *LinkHandler) CreateLink(c echo.Context) error {
	var req models.CreateLinkRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ValidationFailed("", "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return apperror.ValidationFailed("", err.Error())
	}

	link := &models.Link{
		Name: req.Name,
		URL:  req.URL,
	}

	if err := h.linkRepository.CreateLink(c.Request().Context(), link); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, link)
}

// UpdateLink applies the request body to a link as-is and returns the
// updated record, or a null body when the id is unknown
func (h *LinkHandler) UpdateLink(c echo.Context) error {
	id := c.Param("id")

	// A missing body counts as an empty update set, keeping the links'
	// lenient policy.
	var body map[string]interface{}
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil && err != io.EOF {
		return apperror.ValidationFailed("", "Invalid request payload")
	}

	if len(body) == 0 {
		link, err := h.linkRepository.GetLinkByID(c.Request().Context(), id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusAccepted, link)
	}

	link, err := h.linkRepository.UpdateLink(c.Request().Context(), id, bson.M(body))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, link)
}

// DeleteLink deletes a link by id. Unknown ids still report success.
func (h *LinkHandler) DeleteLink(c echo.Context) error {
	if err := h.linkRepository.DeleteLink(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, map[string]string{"status": "Success!"})
}
