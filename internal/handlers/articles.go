package handlers

import (
	"net/http"
	"strings"

	"github.com/guiaemprende/backend/internal/i18n"
	"github.com/labstack/echo/v4"
)

// ArticleRequest is the body of POST /api/articles.
type ArticleRequest struct {
	Titulo    string `json:"titulo"`
	Contenido string `json:"contenido"`
	Autor     string `json:"autor"`
}

// CreateArticle stores a new article.
func (h *Handlers) CreateArticle(c echo.Context) error {
	ctx := c.Request().Context()

	var req ArticleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   i18n.T(ctx, "error_article_fields_required"),
		})
	}

	titulo := strings.TrimSpace(req.Titulo)
	contenido := strings.TrimSpace(req.Contenido)
	if titulo == "" || contenido == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   i18n.T(ctx, "error_article_fields_required"),
		})
	}

	article, err := h.repo.CreateArticle(ctx, titulo, contenido, strings.TrimSpace(req.Autor))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   i18n.T(ctx, "error_article_create"),
		})
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"success":  true,
		"message":  i18n.T(ctx, "article_created"),
		"articulo": article,
	})
}

// ListArticles returns all articles, newest first.
func (h *Handlers) ListArticles(c echo.Context) error {
	ctx := c.Request().Context()

	articles, err := h.repo.ListArticles(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   i18n.T(ctx, "error_article_list"),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"articulos": articles,
	})
}
