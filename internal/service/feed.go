package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-article-feed/internal/models"
	"github.com/pribylovaa/go-article-feed/internal/pkg/log"
)

// Feed возвращает персональную ленту.
//
// Правила отбора:
//   - viewerID должен существовать, иначе ErrNotFound;
//   - пустой набор предпочтений даёт пустую ленту (без «всё подряд»);
//   - статья попадает в ленту, если она опубликована, её категория входит
//     в предпочтения, автор не viewer и viewer её не блокировал;
//   - порядок published_at DESC, id DESC.
//
// К каждой статье прикладываются агрегированные реакции и реакция viewer.
func (s *Service) Feed(ctx context.Context, viewerID uuid.UUID, opts models.ListOptions) ([]models.ArticleView, error) {
	const op = "service/feed/Feed"

	lg := log.From(ctx).With("op", op, "user_id", viewerID.String())

	opts, err := s.listOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	viewer, err := s.storage.AccountByID(ctx, viewerID)
	if err != nil {
		return nil, storageErr(lg, op, err)
	}

	if len(viewer.Preferences) == 0 {
		lg.Debug("feed_empty_preferences")

		return []models.ArticleView{}, nil
	}

	recs, err := s.storage.ListFeed(ctx, viewerID, viewer.Preferences, opts)
	if err != nil {
		return nil, storageErr(lg, op, err)
	}

	lg.Debug("feed_selected", "count", len(recs))

	return newViews(recs, viewerID), nil
}
