package handler

import (
	"net/http"
	"strconv"

	"postboard/domain"

	"github.com/labstack/echo/v4"
)

func (h *Handler) NewPost(c echo.Context) error {
	in, err := bindPost(c)
	if err != nil {
		return createMessages.wrap(err)
	}

	id, err := h.Posts.Create(c.Request().Context(), in)
	if err != nil {
		return createMessages.wrap(err)
	}
	c.Logger().Infof("created post %d", id)

	return c.JSON(http.StatusCreated, Message{Message: "Created post successfully"})
}

func (h *Handler) EditPost(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}
	in, err := bindPost(c)
	if err != nil {
		return updateMessages.wrap(err)
	}

	if err := h.Posts.Update(c.Request().Context(), id, in); err != nil {
		return updateMessages.wrap(err)
	}

	return c.JSON(http.StatusOK, Message{Message: "Updated post successfully"})
}

func (h *Handler) DeletePost(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}

	if err := h.Posts.Delete(c.Request().Context(), id); err != nil {
		return deleteMessages.wrap(err)
	}

	return c.JSON(http.StatusOK, Message{Message: "Deleted post successfully"})
}

func (h *Handler) GetPosts(c echo.Context) error {
	q := domain.ListQuery{
		Page:    positiveInt(c.QueryParam("page"), domain.DefaultPage),
		Limit:   positiveInt(c.QueryParam("limit"), domain.DefaultLimit),
		Keyword: c.QueryParam("keyword"),
	}
	if category := c.QueryParam("category"); category != "" {
		id, err := strconv.ParseInt(category, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid category").SetInternal(err)
		}
		q.CategoryID = &id
	}

	page, err := h.Posts.List(c.Request().Context(), q)
	if err != nil {
		return readMessages.wrap(err)
	}

	return c.JSON(http.StatusOK, page)
}

type PostDTO struct {
	domain.Post
	ContentHTML string `json:"content_html"`
}

func (h *Handler) GetByID(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}

	p, err := h.Posts.Get(c.Request().Context(), id)
	if err != nil {
		return readMessages.wrap(err)
	}
	p.Title = sanitizerStrict.Sanitize(p.Title)

	return c.JSON(http.StatusOK, PostDTO{
		Post:        p,
		ContentHTML: string(safeMd(p.Content)),
	})
}

func bindPost(c echo.Context) (domain.PostInput, error) {
	in := domain.PostInput{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &in); err != nil {
		return in, &domain.ValidationError{Reason: "malformed body"}
	}
	if err := c.Validate(&in); err != nil {
		return in, err
	}
	return in, nil
}

func postID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("postId"), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid post id")
	}
	return id, nil
}

// positiveInt parses a query value, falling back to def when it is missing,
// not a number or below one.
func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
