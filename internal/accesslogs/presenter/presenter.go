package presenter

import (
	"context"
	"errors"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/entity"
)

// Presenter displays a published snapshot.
type Presenter interface {
	Render(ctx context.Context, snap entity.Snapshot) error
}

// Fanout renders to every presenter and joins their errors.
type Fanout []Presenter

func (f Fanout) Render(ctx context.Context, snap entity.Snapshot) error {
	var errs []error
	for _, p := range f {
		if err := p.Render(ctx, snap); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
