package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Document holds an uploaded contract's extracted text together with the
// analysis produced at upload time. Immutable after creation except deletion.
type Document struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Title     string     `gorm:"size:255;not null"`
	Content   string     `gorm:"type:text;not null"`
	Summary   string     `gorm:"type:text"`
	RedFlags  StringList `gorm:"type:text"`
	Clauses   ClauseList `gorm:"type:text"`
	UserID    uint       `gorm:"index;not null"`
	User      User       `gorm:"foreignKey:UserID;references:ID"`
}

// Clause is one titled passage extracted by the analysis.
type Clause struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// StringList persists an ordered list of strings as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(src any) error {
	return scanJSON(src, l)
}

// ClauseList persists an ordered list of clauses as a JSON column.
type ClauseList []Clause

func (l ClauseList) Value() (driver.Value, error) {
	if l == nil {
		l = ClauseList{}
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *ClauseList) Scan(src any) error {
	return scanJSON(src, l)
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}
