package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cinder/internal/annotate"
	"github.com/alexanderramin/cinder/internal/db"
	"github.com/alexanderramin/cinder/internal/importer"
	"github.com/alexanderramin/cinder/internal/repository"
)

type importService struct {
	users     repository.UserRepo
	uow       db.UnitOfWork
	annotator annotate.Annotator
	opts      options
}

// NewImportService loads activity files. Writes go through uow so a file is
// imported completely or not at all.
func NewImportService(users repository.UserRepo, uow db.UnitOfWork, annotator annotate.Annotator, opts ...Option) ImportService {
	o := buildOptions(opts)
	if annotator == nil {
		annotator = annotate.NewKeyword()
	}
	if _, ok := annotator.(*annotate.Fallback); !ok {
		annotator = annotate.WithFallback(annotator, o.logger)
	}
	return &importService{users: users, uow: uow, annotator: annotator, opts: o}
}

func (s *importService) ImportFile(ctx context.Context, userID, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.Import(ctx, userID, schema)
}

func (s *importService) Import(ctx context.Context, userID string, schema *importer.ImportSchema) (result *ImportResult, err error) {
	now := s.opts.now()
	fields := map[string]any{"user_id": userID}
	defer observe(ctx, s.opts.observer, "import-activity", now, fields, &err)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	if err = ensureUser(ctx, s.users, userID); err != nil {
		return nil, err
	}

	batch, err := importer.Convert(schema, userID, s.opts.policy, now)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	// Annotation may call out to a model, so it runs before the
	// transaction is opened.
	for _, e := range batch.Emails {
		a, _ := s.annotator.Annotate(ctx, e.Text())
		e.ApplyAnnotation(a)
		if v, ok := batch.EmailSentiment[e.ID]; ok {
			e.SentimentScore = &v
		}
	}
	for _, j := range batch.JournalEntries {
		a, _ := s.annotator.Annotate(ctx, j.Content)
		j.ApplyAnnotation(a)
		if j.EmotionAnalysis == nil {
			j.EmotionAnalysis = map[string]float64{}
		}
		if v, ok := batch.JournalSentiment[j.ID]; ok {
			j.SentimentScore = &v
		}
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := NewRepos(tx)

		for _, ws := range batch.WorkSessions {
			if err := repos.WorkSessions.Create(ctx, ws); err != nil {
				return fmt.Errorf("creating work session: %w", err)
			}
		}
		for _, m := range batch.Meetings {
			if err := repos.Meetings.Create(ctx, m); err != nil {
				return fmt.Errorf("creating meeting %q: %w", m.Title, err)
			}
		}
		for _, e := range batch.Emails {
			if err := repos.Emails.Create(ctx, e); err != nil {
				return fmt.Errorf("creating email %q: %w", e.Subject, err)
			}
		}
		for _, j := range batch.JournalEntries {
			if err := repos.Journal.Create(ctx, j); err != nil {
				return fmt.Errorf("creating journal entry: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &ImportResult{
		WorkSessionCount:  len(batch.WorkSessions),
		MeetingCount:      len(batch.Meetings),
		EmailCount:        len(batch.Emails),
		JournalEntryCount: len(batch.JournalEntries),
	}
	fields["records"] = result.Total()
	return result, nil
}
