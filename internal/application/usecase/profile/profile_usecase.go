package profile

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/meapi/adapters/event"
	"github.com/khoahotran/meapi/internal/domain/profile"
	"github.com/khoahotran/meapi/internal/domain/project"
	"github.com/khoahotran/meapi/internal/domain/skill"
	"github.com/khoahotran/meapi/internal/domain/work"
	"github.com/khoahotran/meapi/pkg/logger"
)

var tracer = otel.Tracer("github.com/khoahotran/meapi/usecase/profile")

// AggregateCache is an optional read-through cache for the full profile.
// Values are keyed by generation: callers read Generation before touching
// the store and pass it to Get and Set, and Invalidate advances it. A value
// assembled from rows read before an Invalidate is never served after it.
type AggregateCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, gen int64) (*profile.Aggregate, bool, error)
	Set(ctx context.Context, gen int64, agg *profile.Aggregate) error
	Invalidate(ctx context.Context) error
}

type EventPublisher interface {
	PublishProfileEvent(ctx context.Context, payload event.ProfileEventPayload) error
}

type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Options struct {
	// Transactional runs a replace inside one transaction. The default
	// commits every delete and insert separately.
	Transactional bool
	Cache         AggregateCache
	Publisher     EventPublisher
}

type ProfileUseCase struct {
	profileRepo profile.Repository
	skillRepo   skill.Repository
	workRepo    work.Repository
	projectRepo project.Repository
	tx          TxRunner
	opts        Options
	logger      logger.Logger
}

func NewProfileUseCase(
	profileRepo profile.Repository,
	skillRepo skill.Repository,
	workRepo work.Repository,
	projectRepo project.Repository,
	tx TxRunner,
	opts Options,
	log logger.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		skillRepo:   skillRepo,
		workRepo:    workRepo,
		projectRepo: projectRepo,
		tx:          tx,
		opts:        opts,
		logger:      log,
	}
}

type GetProfileOutput struct {
	Profile *profile.Aggregate
}

func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context) (*GetProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "ProfileUseCase.ExecuteGetProfile")
	defer span.End()

	cache := uc.opts.Cache
	var gen int64
	if cache != nil {
		var err error
		if gen, err = cache.Generation(ctx); err != nil {
			uc.logger.Warn("Profile cache unavailable, reading store", zap.Error(err))
			cache = nil
		}
	}

	if cache != nil {
		agg, ok, err := cache.Get(ctx, gen)
		if err != nil {
			uc.logger.Warn("Profile cache read failed, falling back to store", zap.Error(err))
		} else if ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return &GetProfileOutput{Profile: agg}, nil
		}
	}

	agg, err := uc.assemble(ctx)
	if err != nil {
		return nil, fmt.Errorf("get profile failed: %w", err)
	}

	if cache != nil {
		if err := cache.Set(ctx, gen, agg); err != nil {
			uc.logger.Warn("Failed to cache profile", zap.Error(err))
		}
	}
	return &GetProfileOutput{Profile: agg}, nil
}

// ExecuteWarmCache rebuilds the cached aggregate from the store.
func (uc *ProfileUseCase) ExecuteWarmCache(ctx context.Context) error {
	if uc.opts.Cache == nil {
		return nil
	}
	gen, err := uc.opts.Cache.Generation(ctx)
	if err != nil {
		return fmt.Errorf("warm profile cache failed: %w", err)
	}
	agg, err := uc.assemble(ctx)
	if err != nil {
		return fmt.Errorf("warm profile cache failed: %w", err)
	}
	return uc.opts.Cache.Set(ctx, gen, agg)
}

func (uc *ProfileUseCase) assemble(ctx context.Context) (*profile.Aggregate, error) {
	p, err := uc.profileRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	skills, err := uc.skillRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := uc.workRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := uc.projectRepo.List(ctx, project.OrderOldestFirst)
	if err != nil {
		return nil, err
	}
	return &profile.Aggregate{
		Profile:  *p,
		Skills:   skills,
		Work:     entries,
		Projects: projects,
	}, nil
}

// ReplaceProfileInput carries a full profile replace. For Skills, Work and
// Projects a nil slice leaves the stored collection untouched, while a
// non-nil empty slice clears it.
type ReplaceProfileInput struct {
	Profile  profile.Profile
	Skills   []skill.Skill
	Work     []work.Entry
	Projects []project.Project
}

// ExecuteReplaceProfile deletes and re-inserts the profile row and every
// collection present in the input. Outside transactional mode nothing is
// rolled back: a failure part way through leaves earlier steps applied.
func (uc *ProfileUseCase) ExecuteReplaceProfile(ctx context.Context, input ReplaceProfileInput) error {
	ctx, span := tracer.Start(ctx, "ProfileUseCase.ExecuteReplaceProfile")
	defer span.End()

	var err error
	if uc.opts.Transactional {
		err = uc.tx.InTx(ctx, func(ctx context.Context) error {
			return uc.replace(ctx, input)
		})
	} else {
		err = uc.replace(ctx, input)
	}

	// Invalidate even on failure: without a transaction the store may
	// already hold part of the new data.
	if uc.opts.Cache != nil {
		if cerr := uc.opts.Cache.Invalidate(ctx); cerr != nil {
			uc.logger.Warn("Failed to invalidate profile cache", zap.Error(cerr))
		}
	}
	if err != nil {
		return fmt.Errorf("replace profile failed: %w", err)
	}

	uc.publishReplaced(input)
	return nil
}

func (uc *ProfileUseCase) replace(ctx context.Context, input ReplaceProfileInput) error {
	p := input.Profile
	p.Normalize()
	if err := uc.profileRepo.Delete(ctx); err != nil {
		return err
	}
	if err := uc.profileRepo.Insert(ctx, &p); err != nil {
		return err
	}

	if input.Skills != nil {
		if err := uc.skillRepo.DeleteAll(ctx); err != nil {
			return err
		}
		for _, s := range input.Skills {
			if s.Score == 0 {
				s.Score = skill.DefaultScore
			}
			if err := uc.skillRepo.Insert(ctx, s); err != nil {
				return err
			}
		}
	}

	if input.Work != nil {
		if err := uc.workRepo.DeleteAll(ctx); err != nil {
			return err
		}
		for _, e := range input.Work {
			if err := uc.workRepo.Insert(ctx, e); err != nil {
				return err
			}
		}
	}

	if input.Projects != nil {
		if err := uc.projectRepo.DeleteAll(ctx); err != nil {
			return err
		}
		for _, pr := range input.Projects {
			pr.ID = 0
			if err := uc.projectRepo.Insert(ctx, &pr); err != nil {
				return err
			}
		}
	}
	return nil
}

func (uc *ProfileUseCase) publishReplaced(input ReplaceProfileInput) {
	if uc.opts.Publisher == nil {
		return
	}
	collections := make([]string, 0, 3)
	if input.Skills != nil {
		collections = append(collections, "skills")
	}
	if input.Work != nil {
		collections = append(collections, "work")
	}
	if input.Projects != nil {
		collections = append(collections, "projects")
	}
	payload := event.NewProfileReplacedEvent(collections)

	go func() {
		if err := uc.opts.Publisher.PublishProfileEvent(context.Background(), payload); err != nil {
			uc.logger.Error("Failed to publish Kafka 'profile.replaced' event", err, zap.String("event_id", payload.EventID.String()))
		}
	}()
}
