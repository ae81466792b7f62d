package entity

type AccommodationClass struct {
	BaseNoDelete
	Name        string  `db:"name"`
	Description *string `db:"description"`
}
