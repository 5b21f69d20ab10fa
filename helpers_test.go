package main

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"legallens/models"
	"legallens/pkg/aiengine"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database migrated to the current
// schema. The shared-cache DSN keeps the database alive across the pooled
// connections gorm opens.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func createTestUser(t *testing.T, gdb *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Email: email, HashedPassword: []byte("x")}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

// fakeAnalyst satisfies Analyst without any network. Call counters let tests
// assert which pipeline stages ran.
type fakeAnalyst struct {
	analysis     *aiengine.Analysis
	analyzeErr   error
	answer       string
	answerErr    error
	analyzeCalls int
	answerCalls  int
	lastText     string
	lastQuestion string
}

func (f *fakeAnalyst) Analyze(_ context.Context, text string) (*aiengine.Analysis, error) {
	f.analyzeCalls++
	f.lastText = text
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return f.analysis, nil
}

func (f *fakeAnalyst) Answer(_ context.Context, text, question string) (string, error) {
	f.answerCalls++
	f.lastText = text
	f.lastQuestion = question
	if f.answerErr != nil {
		return "", f.answerErr
	}
	return f.answer, nil
}

func sampleAnalysis() *aiengine.Analysis {
	return &aiengine.Analysis{
		Summary:  "S",
		RedFlags: []string{"R1"},
		Clauses:  []aiengine.Clause{{Title: "C1", Content: "..."}},
	}
}

func testTokenService(gdb *gorm.DB) *TokenService {
	return NewTokenService(gdb, []byte("test-secret"), 15*time.Minute, 24*time.Hour)
}
