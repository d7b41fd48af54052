package company

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/consulta-cnpj/consulta-cnpj/internal/cnpj"
)

const lookupRule = "required," + cnpj.TagDigits + "," + cnpj.TagChecksum

// Fetcher retrieves the raw registry payload for a 14-digit CNPJ.
type Fetcher interface {
	Fetch(ctx context.Context, cnpj string) (Raw, error)
}

// Recorder receives lookup outcomes. "ok" marks success, otherwise the Kind.
type Recorder interface {
	ObserveLookup(outcome string, elapsed time.Duration)
}

// Service validates identifiers, fetches registry payloads and normalizes
// them.
type Service struct {
	fetcher  Fetcher
	logger   *slog.Logger
	recorder Recorder
	validate *validator.Validate
	group    singleflight.Group
	now      func() time.Time
}

// NewService constructs a Service. logger and recorder may be nil.
func NewService(fetcher Fetcher, logger *slog.Logger, recorder Recorder) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		fetcher:  fetcher,
		logger:   logger,
		recorder: recorder,
		validate: cnpj.NewValidator(),
		now:      time.Now,
	}
}

// Lookup validates input, fetches the company and returns its canonical
// record. Errors are *Error values classified by Kind.
func (s *Service) Lookup(ctx context.Context, input string) (Record, error) {
	start := s.now()
	rec, err := s.lookup(ctx, input)
	outcome := "ok"
	if err != nil {
		outcome = string(KindOf(err))
	}
	if s.recorder != nil {
		s.recorder.ObserveLookup(outcome, s.now().Sub(start))
	}
	return rec, err
}

func (s *Service) lookup(ctx context.Context, input string) (Record, error) {
	if err := s.checkInput(input); err != nil {
		return Record{}, err
	}
	id := cnpj.Clean(input)

	// Concurrent lookups of the same number share one upstream call. The
	// shared call is detached from the first caller's cancellation; each
	// caller still stops waiting when its own context ends.
	shared := context.WithoutCancel(ctx)
	resultCh := s.group.DoChan(id, func() (interface{}, error) {
		return s.fetch(shared, id)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return Record{}, NewError(KindInternal, "", ctx.Err())
	case res = <-resultCh:
	}
	if res.Err != nil {
		return Record{}, res.Err
	}
	rec := Normalize(res.Val.(Raw))
	if len(rec.Identifier) != cnpj.Length {
		rec.Identifier = id
	}
	return rec, nil
}

func (s *Service) fetch(ctx context.Context, id string) (Raw, error) {
	raw, err := s.fetcher.Fetch(ctx, id)
	if err != nil {
		var classified *Error
		if !errors.As(err, &classified) {
			err = NewError(KindInternal, "", err)
		}
		s.logger.Warn("registry fetch failed",
			slog.String("cnpj", id),
			slog.String("kind", string(KindOf(err))),
			slog.Any("error", err))
		return nil, err
	}
	if raw == nil {
		raw = Raw{}
	}
	return raw, nil
}

func (s *Service) checkInput(input string) error {
	err := s.validate.Var(input, lookupRule)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return NewError(KindInternal, "", err)
	}
	switch verrs[0].Tag() {
	case "required":
		return NewError(KindMalformedInput, MessageMissing, cnpj.ErrMissing)
	case cnpj.TagDigits:
		return NewError(KindMalformedInput, MessageLength, cnpj.ErrLength)
	default:
		return NewError(KindChecksumInvalid, MessageChecksum, cnpj.ErrChecksum)
	}
}
