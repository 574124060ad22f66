package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/autolearn/kotoba/internal/auth"
	"github.com/autolearn/kotoba/internal/models"
	"github.com/autolearn/kotoba/internal/parser"
)

// UploadFile is one file from an upload batch.
type UploadFile struct {
	Name    string
	Content string
}

// ReplaceResult summarises a bulk import: how many records were stored and
// one diagnostic per file that failed.
type ReplaceResult struct {
	Processed int
	Errors    []string
}

// Service gates catalog operations on session tokens and coordinates the
// parser with the document store.
type Service struct {
	store Store
	gate  *auth.Gate
}

// NewService creates a catalog service.
func NewService(store Store, gate *auth.Gate) *Service {
	return &Service{store: store, gate: gate}
}

// List returns every word record, newest first. Fails with
// apperr.ErrUnauthenticated when the token carries no valid session.
func (s *Service) List(ctx context.Context, token string) ([]models.WordRecord, error) {
	if _, err := s.gate.Check(token); err != nil {
		return nil, err
	}
	return s.store.ListAll(ctx)
}

// ReplaceAll discards the entire catalog and rebuilds it from the uploaded
// batch. Requires an admin session. Files not ending in .md are silently
// skipped; a parse or storage failure on one file is recorded as a diagnostic
// and the batch continues. The operation is deliberately not transactional
// across files.
func (s *Service) ReplaceAll(ctx context.Context, token string, files []UploadFile) (*ReplaceResult, error) {
	user, err := s.gate.Check(token)
	if err != nil {
		return nil, err
	}
	if err := s.gate.RequireAdmin(user); err != nil {
		return nil, err
	}

	if err := s.store.DeleteAll(ctx); err != nil {
		return nil, err
	}

	res := &ReplaceResult{}
	for _, f := range files {
		if !strings.HasSuffix(f.Name, ".md") {
			continue
		}
		rec, err := parser.Parse(f.Content, f.Name)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Failed to parse %s", f.Name))
			continue
		}
		if err := s.store.Insert(ctx, rec); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Error processing %s: %v", f.Name, err))
			continue
		}
		res.Processed++
	}
	return res, nil
}
