package service

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/kadalikavya/tinylink-backend/models"
)

var codeRe = regexp.MustCompile(`^[A-Za-z0-9]{6,8}$`)

// reservedCodes are the fixed top-level route segments. A short code is
// syntactically indistinguishable from any single path segment, so these are
// checked by name before any store lookup rather than relying on route
// registration order.
var reservedCodes = map[string]struct{}{
	"api":     {},
	"healthz": {},
	"code":    {},
	"static":  {},
	"metrics": {},
	"swagger": {},
}

// IsReservedCode reports whether code shadows a fixed route segment.
func IsReservedCode(code string) bool {
	_, ok := reservedCodes[code]
	return ok
}

// Service validates input and orchestrates all Link lifecycle operations
// against the store.
type Service struct {
	store Store
	gen   *Generator
	log   *zap.Logger
}

func NewService(store Store, gen *Generator, log *zap.Logger) *Service {
	return &Service{store: store, gen: gen, log: log}
}

func validateURL(raw string) error {
	p, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}
	if p.Scheme != "http" && p.Scheme != "https" {
		return ErrInvalidURL
	}
	if p.Host == "" {
		return ErrInvalidURL
	}
	return nil
}

// Create validates the target URL and the optional custom code, allocates a
// generated code when none is supplied, and inserts the new Link.
//
// The existence pre-check on a custom code is a user-experience optimization;
// the store's primary-key constraint is the authoritative safety net, so an
// insert that loses the check-then-act race still comes back as ErrConflict.
func (s *Service) Create(ctx context.Context, rawURL, customCode string) (*models.Link, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, ErrMissingURL
	}
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(customCode)
	if code != "" {
		if !codeRe.MatchString(code) {
			return nil, ErrInvalidCode
		}
		exists, err := s.store.CodeExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrConflict
		}
	} else {
		var err error
		code, err = s.gen.AllocateUniqueCode(ctx)
		if err != nil {
			return nil, err
		}
	}

	if err := s.store.CreateLink(ctx, code, rawURL); err != nil {
		return nil, err
	}
	s.log.Info("link created", zap.String("code", code))

	return &models.Link{Code: code, URL: rawURL}, nil
}

// List returns every Link, newest first.
func (s *Service) List(ctx context.Context) ([]models.Link, error) {
	return s.store.ListLinks(ctx)
}

// GetByCode returns the Link for an exact code match.
func (s *Service) GetByCode(ctx context.Context, code string) (*models.Link, error) {
	return s.store.GetLinkByCode(ctx, code)
}

// Delete removes the Link for a code.
func (s *Service) Delete(ctx context.Context, code string) error {
	if err := s.store.DeleteLink(ctx, code); err != nil {
		return err
	}
	s.log.Info("link deleted", zap.String("code", code))
	return nil
}

// ResolveAndCount looks up the target URL for a code and records the visit.
// The lookup and the click update are two independent statements; the update
// is relative (clicks = clicks + 1), so concurrent redirects cannot lose
// increments.
func (s *Service) ResolveAndCount(ctx context.Context, code string) (string, error) {
	if IsReservedCode(code) {
		return "", ErrReserved
	}
	link, err := s.store.GetLinkByCode(ctx, code)
	if err != nil {
		return "", err
	}
	if err := s.store.RecordClick(ctx, code); err != nil {
		return "", err
	}
	return link.URL, nil
}
