package store

import "gorm.io/gorm"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Pagination is the metadata block returned next to every list result.
type Pagination struct {
	TotalCount      int64 `json:"totalCount"`
	CurrentPage     int   `json:"currentPage"`
	PageSize        int   `json:"pageSize"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// Paginate counts and fetches one page of model rows into dest (a slice
// pointer), applying the given scopes to both queries.
func Paginate(db *gorm.DB, model any, dest any, page, pageSize int, scopes ...func(*gorm.DB) *gorm.DB) (*Pagination, error) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	var total int64
	if err := db.Model(model).Scopes(scopes...).Count(&total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(model).Scopes(scopes...).
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(dest).Error; err != nil {
		return nil, err
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &Pagination{
		TotalCount:      total,
		CurrentPage:     page,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}, nil
}

// ILike filters column by a case-insensitive substring match when value
// is non-empty, otherwise leaves the query untouched.
func ILike(column, value string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		return db.Where(column+" ILIKE ?", "%"+value+"%")
	}
}

// OrderBy applies a fixed ordering clause.
func OrderBy(clause string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(clause)
	}
}
