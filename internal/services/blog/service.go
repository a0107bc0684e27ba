package blog

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/lateguess/internal/dependencies/clock"
	"github.com/mcoot/lateguess/internal/model"
	"github.com/mcoot/lateguess/internal/storage"
)

// Service manages blog posts
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new blog Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// List returns every post, newest first
func (s *Service) List(ctx context.Context) ([]model.Post, error) {
	return s.storage.ListPosts(ctx)
}

// Get loads a post. When enforceOwner is set, the actor must be its author.
func (s *Service) Get(ctx context.Context, id model.PostID, actor *model.User, enforceOwner bool) (*model.Post, error) {
	post, err := s.storage.GetPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("post id %d doesn't exist: %w", id, err)
	}

	if enforceOwner && !post.IsAuthoredBy(actor) {
		return nil, model.ErrForbidden
	}

	return post, nil
}

// Create publishes a new post written by actor
func (s *Service) Create(ctx context.Context, actor *model.User, title, body string) (*model.Post, error) {
	if actor == nil {
		return nil, model.ErrForbidden
	}
	if err := validate(title, body); err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:          title,
		Body:           body,
		Created:        s.clock.Now(),
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username,
	}
	if err := s.storage.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post created",
		slog.Int64("post_id", int64(post.ID)),
		slog.Int64("author_id", int64(actor.ID)),
	)
	return post, nil
}

// Update replaces the title and body of a post owned by actor
func (s *Service) Update(ctx context.Context, id model.PostID, actor *model.User, title, body string) (*model.Post, error) {
	post, err := s.Get(ctx, id, actor, true)
	if err != nil {
		return nil, err
	}
	if err := validate(title, body); err != nil {
		return post, err
	}

	if err := s.storage.UpdatePost(ctx, id, title, body); err != nil {
		return nil, err
	}

	post.Title = title
	post.Body = body
	return post, nil
}

// Delete removes a post owned by actor
func (s *Service) Delete(ctx context.Context, id model.PostID, actor *model.User) error {
	if _, err := s.Get(ctx, id, actor, true); err != nil {
		return err
	}

	if err := s.storage.DeletePost(ctx, id); err != nil {
		return err
	}

	s.logger.Info("post deleted",
		slog.Int64("post_id", int64(id)),
		slog.Int64("author_id", int64(actor.ID)),
	)
	return nil
}

func validate(title, body string) error {
	if title == "" {
		return model.Invalid("Title is required.")
	}
	if body == "" {
		return model.Invalid("Body is required.")
	}
	return nil
}
