package repository

import (
	"context"
	"time"

	"github.com/guiaemprende/backend/internal/models"
)

// CreateArticle inserts a new article. An empty author defaults to "Anónimo".
func (r *Repository) CreateArticle(ctx context.Context, titulo, contenido, autor string) (*models.Article, error) {
	if autor == "" {
		autor = "Anónimo"
	}

	article := &models.Article{
		Titulo:    titulo,
		Contenido: contenido,
		Autor:     autor,
		Fecha:     time.Now().UTC(),
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO articles (titulo, contenido, autor, fecha) VALUES (?, ?, ?, ?)`,
		article.Titulo, article.Contenido, article.Autor, article.Fecha)
	if err != nil {
		return nil, err
	}

	article.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return article, nil
}

// ListArticles returns all articles, newest first.
func (r *Repository) ListArticles(ctx context.Context) ([]models.Article, error) {
	articles := []models.Article{}
	err := r.db.SelectContext(ctx, &articles, `SELECT * FROM articles ORDER BY fecha DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return articles, nil
}
