package repository_test

import (
	"context"
	"testing"

	"github.com/guiaemprende/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateArticle(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	article, err := repo.CreateArticle(context.Background(), "Título", "Contenido del artículo", "Ana")

	require.NoError(t, err)
	assert.NotZero(t, article.ID)
	assert.Equal(t, "Título", article.Titulo)
	assert.Equal(t, "Ana", article.Autor)
}

func TestCreateArticle_DefaultAuthor(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	article, err := repo.CreateArticle(context.Background(), "Título", "Contenido", "")

	require.NoError(t, err)
	assert.Equal(t, "Anónimo", article.Autor)
}

func TestListArticles_NewestFirst(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := repo.CreateArticle(ctx, "Primero", "a", "")
	require.NoError(t, err)
	_, err = repo.CreateArticle(ctx, "Segundo", "b", "")
	require.NoError(t, err)

	articles, err := repo.ListArticles(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "Segundo", articles[0].Titulo)
	assert.Equal(t, "Primero", articles[1].Titulo)
}

func TestListArticles_Empty(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	articles, err := repo.ListArticles(context.Background())

	require.NoError(t, err)
	assert.Empty(t, articles)
}
