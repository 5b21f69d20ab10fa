package main

import (
	"context"
	"fmt"
	"time"

	"legallens/models"
	"legallens/pkg/aiengine"
	"legallens/pkg/pdftext"

	"gorm.io/gorm"
)

// Analyst is the slice of the AI engine the pipeline needs.
type Analyst interface {
	Analyze(ctx context.Context, text string) (*aiengine.Analysis, error)
	Answer(ctx context.Context, text, question string) (string, error)
}

// DocumentSummary is the lightweight projection returned by List.
type DocumentSummary struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentService runs the upload pipeline (validate, extract, analyze,
// persist) and owns the per-user document lifecycle. Every lookup is scoped
// to the owner in a single predicate, so a miss never reveals whether the id
// exists at all.
type DocumentService struct {
	db      *gorm.DB
	extract func(data []byte) (string, error)
	ai      Analyst
}

func NewDocumentService(db *gorm.DB, ai Analyst) *DocumentService {
	return &DocumentService{db: db, extract: pdftext.ExtractText, ai: ai}
}

const pdfContentType = "application/pdf"

// Create validates the upload, extracts its text, analyzes it and persists
// the document in one insert. The pipeline stops at the first failure and
// never leaves a partial row behind; extraction and analysis run before the
// transaction and are not retried here.
func (s *DocumentService) Create(ctx context.Context, title string, data []byte, contentType string, ownerID uint) (*models.Document, error) {
	if contentType != pdfContentType {
		return nil, ErrUnsupportedFileType
	}

	text, err := s.extract(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	analysis, err := s.ai.Analyze(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	doc := models.Document{
		Title:    title,
		Content:  text,
		Summary:  analysis.Summary,
		RedFlags: models.StringList(analysis.RedFlags),
		Clauses:  toClauseList(analysis.Clauses),
		UserID:   ownerID,
	}
	if err := s.db.Create(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// Get returns the document only if it belongs to the owner.
func (s *DocumentService) Get(docID, ownerID uint) (*models.Document, error) {
	var doc models.Document
	if err := s.db.Where("id = ? AND user_id = ?", docID, ownerID).First(&doc).Error; err != nil {
		return nil, ErrNotFound
	}
	return &doc, nil
}

// List returns the owner's documents as summaries, in insertion order.
func (s *DocumentService) List(ownerID uint) ([]DocumentSummary, error) {
	var out []DocumentSummary
	err := s.db.Model(&models.Document{}).
		Select("id, title, summary, created_at").
		Where("user_id = ?", ownerID).
		Order("id asc").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the document; the scoped predicate makes deleting someone
// else's document indistinguishable from deleting a nonexistent one.
func (s *DocumentService) Delete(docID, ownerID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", docID, ownerID).Delete(&models.Document{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Answer asks the AI engine a question about one of the owner's documents,
// constrained to its stored text. Nothing about the exchange is persisted;
// each call stands alone.
func (s *DocumentService) Answer(ctx context.Context, docID, ownerID uint, question string) (string, error) {
	doc, err := s.Get(docID, ownerID)
	if err != nil {
		return "", err
	}
	answer, err := s.ai.Answer(ctx, doc.Content, question)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	return answer, nil
}

func toClauseList(clauses []aiengine.Clause) models.ClauseList {
	out := make(models.ClauseList, 0, len(clauses))
	for _, c := range clauses {
		out = append(out, models.Clause{Title: c.Title, Content: c.Content})
	}
	return out
}
