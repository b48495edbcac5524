package shift

import (
	"context"
	"io"
	"time"

	"edp-shifts/internal/models"
	"edp-shifts/internal/session"
)

// Service applies role checks in front of Store. Branch accounts submit;
// admins review, edit and delete.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Submit records a shift for the caller's own branch.
func (s *Service) Submit(ctx context.Context, sess *session.Session, f Fields) (*models.Shift, error) {
	if err := session.Require(sess, models.RoleUser); err != nil {
		return nil, err
	}
	f.Branch = sess.Username
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return s.store.Create(ctx, f)
}

func (s *Service) ListAll(ctx context.Context, sess *session.Session) ([]models.Shift, error) {
	if err := session.Require(sess, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.store.ListAll(ctx)
}

func (s *Service) Update(ctx context.Context, sess *session.Session, id uint, f Fields) (*models.Shift, error) {
	if err := session.Require(sess, models.RoleAdmin); err != nil {
		return nil, err
	}
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	found, err := s.store.Update(ctx, id, f)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return s.store.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, sess *session.Session, id uint) error {
	if err := session.Require(sess, models.RoleAdmin); err != nil {
		return err
	}
	found, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Suggest(ctx context.Context, sess *session.Session, prefix string) ([]Suggestion, error) {
	if err := session.Require(sess); err != nil {
		return nil, err
	}
	return s.store.Suggest(ctx, prefix)
}

func (s *Service) BranchSummary(ctx context.Context, sess *session.Session, date time.Time) ([]BranchCount, error) {
	if err := session.Require(sess, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.store.BranchSummary(ctx, date)
}

// Export writes every shift, in list order, as an XLSX workbook.
func (s *Service) Export(ctx context.Context, sess *session.Session, w io.Writer) error {
	shifts, err := s.ListAll(ctx, sess)
	if err != nil {
		return err
	}
	return WriteXLSX(w, shifts)
}
