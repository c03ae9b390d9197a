package models

// Language is one column of the translation matrix.
type Language struct {
	ID         int64  `db:"id" json:"id"`
	Code       string `db:"code" json:"code"`
	Name       string `db:"name" json:"name"`
	NativeName string `db:"native_name" json:"native_name"`
	Flag       string `db:"flag" json:"flag"`
	IsDefault  bool   `db:"is_default" json:"is_default"`
	SortOrder  int    `db:"sort_order" json:"sort_order"`
	IsActive   bool   `db:"is_active" json:"is_active"`
}
