package models

import "time"

// Article is a blog entry shown on the landing page.
type Article struct { //nolint:govet // fieldalignment: readability over optimization
	ID        int64     `db:"id" json:"id"`
	Titulo    string    `db:"titulo" json:"titulo"`
	Contenido string    `db:"contenido" json:"contenido"`
	Autor     string    `db:"autor" json:"autor"`
	Fecha     time.Time `db:"fecha" json:"fecha"`
}
