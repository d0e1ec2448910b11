package user

import (
	"context"
	"sync"

	sq "github.com/Masterminds/squirrel"
	"github.com/pandodao/fuji-wallet/core"
	"github.com/tsenart/nap"
	"github.com/zyedidia/generic/cache"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func New(db *nap.DB) core.UserStore {
	return &store{
		db:      db,
		handles: cache.New[string, *core.User](1024),
	}
}

type store struct {
	db *nap.DB

	handles *cache.Cache[string, *core.User]
	mux     sync.Mutex
}

func (s *store) Find(ctx context.Context, id string) (*core.User, error) {
	return s.findOne(ctx, sq.Eq{"id": id})
}

func (s *store) FindHandle(ctx context.Context, handle string) (*core.User, error) {
	s.mux.Lock()
	v, ok := s.handles.Get(handle)
	s.mux.Unlock()

	if ok {
		return v, nil
	}

	user, err := s.findOne(ctx, sq.Eq{"handle": handle})
	if err != nil {
		return nil, err
	}

	s.mux.Lock()
	s.handles.Put(handle, user)
	s.mux.Unlock()

	return user, nil
}

func (s *store) findOne(ctx context.Context, pred any) (*core.User, error) {
	b := psql.Select("id", "handle").From("users").Where(pred)

	var user core.User
	if err := b.RunWith(s.db).QueryRowContext(ctx).Scan(&user.ID, &user.Handle); err != nil {
		return nil, err
	}

	return &user, nil
}
