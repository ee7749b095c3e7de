package post

import (
	"context"
	"errors"
	"fmt"

	"stream/pkg/logger"
)

// Repo is the storage contract for feed posts. Every implementation must
// honour the transaction carried by the context passed to WithTx callbacks.
type Repo interface {
	Insert(context.Context, *Post) (PostId, error)
	FindById(context.Context, PostId) (*Post, error)
	FindAllOrdered(context.Context) ([]*Post, error)
	ExistsById(context.Context, PostId) (bool, error)
	Replace(context.Context, PostId, *Post) error
	DeleteById(context.Context, PostId) error

	WithTx(context.Context, func(context.Context) error) error
	WithReadTx(context.Context, func(context.Context) error) error
	Ping(context.Context) error
}

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{
		Repo: repo,
	}
}

// List returns every post ordered by sort order, ties in insertion order.
func (s *Service) List(ctx context.Context) ([]*View, error) {
	var views []*View
	err := s.Repo.WithReadTx(ctx, func(ctx context.Context) error {
		posts, err := s.Repo.FindAllOrdered(ctx)
		if err != nil {
			return err
		}
		views, err = ToViews(posts)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("post/service: failed listing posts: %w", err)
	}
	return views, nil
}

func (s *Service) Get(ctx context.Context, id PostId) (*View, error) {
	var view *View
	err := s.Repo.WithReadTx(ctx, func(ctx context.Context) error {
		p, err := s.Repo.FindById(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return &NotFoundError{Id: id}
		}
		if err != nil {
			return err
		}
		view, err = ToView(p)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("post/service: failed getting post %d: %w", id, err)
	}
	return view, nil
}

// Create stores a new post. Any id on the input is ignored.
func (s *Service) Create(ctx context.Context, v *View) (*View, error) {
	rec, err := ToRecord(v)
	if err != nil {
		return nil, err
	}

	err = s.Repo.WithTx(ctx, func(ctx context.Context) error {
		id, err := s.Repo.Insert(ctx, rec)
		if err != nil {
			return err
		}
		rec.Id = id
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("post/service: failed creating post: %w", err)
	}

	logger.Log(ctx).Infof("post/service: created post %d", rec.Id)
	return ToView(rec)
}

// Update replaces every field of the post except its id. The id inside v is
// ignored in favour of the id argument.
func (s *Service) Update(ctx context.Context, id PostId, v *View) (*View, error) {
	rec, err := ToRecord(v)
	if err != nil {
		return nil, err
	}

	var view *View
	err = s.Repo.WithTx(ctx, func(ctx context.Context) error {
		if err := s.mustExist(ctx, id); err != nil {
			return err
		}
		if err := s.Repo.Replace(ctx, id, rec); err != nil {
			return err
		}
		updated, err := s.Repo.FindById(ctx, id)
		if err != nil {
			return err
		}
		view, err = ToView(updated)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("post/service: failed updating post %d: %w", id, err)
	}

	logger.Log(ctx).Infof("post/service: updated post %d", id)
	return view, nil
}

// Delete removes the post. The boolean is always true when err is nil.
func (s *Service) Delete(ctx context.Context, id PostId) (bool, error) {
	err := s.Repo.WithTx(ctx, func(ctx context.Context) error {
		if err := s.mustExist(ctx, id); err != nil {
			return err
		}
		return s.Repo.DeleteById(ctx, id)
	})
	if err != nil {
		return false, fmt.Errorf("post/service: failed deleting post %d: %w", id, err)
	}

	logger.Log(ctx).Infof("post/service: deleted post %d", id)
	return true, nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.Repo.Ping(ctx)
}

func (s *Service) mustExist(ctx context.Context, id PostId) error {
	exists, err := s.Repo.ExistsById(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return &NotFoundError{Id: id}
	}
	return nil
}
