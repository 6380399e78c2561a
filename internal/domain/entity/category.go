package entity

import "time"

// Category representa una categoría de ítems (enriquecimiento opcional
// de las vistas de stock; un ítem sin categoría se muestra sin clasificar).
type Category struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
}
