package blogs

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryFoundations Category = "foundations"
	CategoryDeep        Category = "deep"
)

type Section string

const (
	SectionResources Section = "resources"
	SectionAllBlogs  Section = "allblogs"
)

type Blog struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category,omitempty"`
	Section     Section   `json:"section"`
	FileURL     string    `json:"fileUrl"`
	ObjectKey   string    `json:"-"`
	UploadedBy  string    `json:"uploadedBy"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Filter struct {
	Section  Section
	Category Category
}
