package handler

import (
	"context"
	"net/http"

	"postboard/domain"

	"github.com/labstack/echo/v4"
)

// PostStore is the query executor the handlers depend on.
type PostStore interface {
	Create(ctx context.Context, in domain.PostInput) (int64, error)
	Update(ctx context.Context, id int64, in domain.PostInput) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (domain.Post, error)
	List(ctx context.Context, q domain.ListQuery) (domain.Page, error)
}

type Handler struct {
	Posts PostStore
}

type Message struct {
	Message string `json:"message"`
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/", h.Hello)

	posts := e.Group("/posts")
	posts.POST("", h.NewPost)
	posts.GET("", h.GetPosts)
	posts.GET("/:postId", h.GetByID)
	posts.PUT("/:postId", h.EditPost)
	posts.DELETE("/:postId", h.DeletePost)
}

func (h *Handler) Hello(c echo.Context) error {
	return c.String(http.StatusOK, "Hello World")
}
