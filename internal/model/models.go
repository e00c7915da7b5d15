package model

import (
	"time"
)

type Report struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:200;not null"`
	Topic     string    `json:"topic" gorm:"size:100;not null"`
	Year      int       `json:"year" gorm:"not null"`
	Status    string    `json:"status" gorm:"size:20;default:open"` // open, published
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Sections  []Section `json:"sections,omitempty" gorm:"foreignKey:ReportID"`
}

type Section struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	ReportID  uint             `json:"report_id" gorm:"index;not null"`
	Title     string           `json:"title" gorm:"size:200;not null"`
	SortOrder int              `json:"sort_order" gorm:"not null"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Elements  []ContentElement `json:"elements,omitempty" gorm:"foreignKey:SectionID"`
}

// Element kinds. Paragraphs, charts and tables live in one table and
// share one sort_order sequence per section.
const (
	ElementKindParagraph = "paragraph"
	ElementKindChart     = "chart"
	ElementKindTable     = "table"
)

type ContentElement struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	SectionID uint   `json:"section_id" gorm:"index;not null"`
	Kind      string `json:"kind" gorm:"size:20;not null"` // paragraph, chart, table
	SortOrder int    `json:"sort_order" gorm:"not null"`
	Status    string `json:"status" gorm:"size:20;default:draft"` // draft, staged, approved

	// Paragraph payload.
	Text string `json:"text,omitempty" gorm:"type:text"`

	// Chart/table payload. Dataset holds uploaded chart data as-is;
	// TableData holds structured table rows as a JSON document.
	Title        string `json:"title,omitempty" gorm:"size:200"`
	Dataset      []byte `json:"dataset,omitempty" gorm:"type:blob"`
	TableData    string `json:"table_data,omitempty" gorm:"type:text"`
	DataSourceID *uint  `json:"data_source_id,omitempty" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DataSource is a named reference to an external dataset. The core
// stores and forwards the reference, it never interprets the content.
type DataSource struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	RefKey     string    `json:"ref_key" gorm:"size:64;uniqueIndex"` // UUID
	Name       string    `json:"name" gorm:"size:200;not null"`
	SourceType string    `json:"source_type" gorm:"size:20;not null"` // csv, json, excel, api
	FilePath   string    `json:"file_path" gorm:"size:500"`
	APIURL     string    `json:"api_url" gorm:"size:500"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type UserProfile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Role      string    `json:"role" gorm:"size:20;default:reader"` // admin, editor, writer, reader
	Bio       string    `json:"bio" gorm:"size:1000"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
