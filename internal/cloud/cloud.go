// Package cloud validates the user-configured share link and rewrites
// relative entry URLs against it.
package cloud

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/mmcdole/anidex/internal/domain"
)

const (
	// DefaultHostPrefix is the literal every share link must start with
	DefaultHostPrefix = "https://cloud.anitsu.moe/nextcloud/s/"

	// DefaultFallbackBase prefixes relative URLs when no link is configured
	DefaultFallbackBase = "https://anitsu.moe"

	// SettingKey is the settings store key holding the link
	SettingKey = "cloud.link"

	pathParam = "?path="
)

// Validator checks share links against a fixed prefix followed by an
// alphanumeric token and an optional query string.
type Validator struct {
	Prefix  string
	pattern *regexp.Regexp
}

// NewValidator compiles a validator for prefix (DefaultHostPrefix when empty)
func NewValidator(prefix string) *Validator {
	if prefix == "" {
		prefix = DefaultHostPrefix
	}
	return &Validator{
		Prefix:  prefix,
		pattern: regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `[A-Za-z0-9]+(\?.*)?$`),
	}
}

// Validate returns domain.ErrInvalidCloudLink when link does not match
func (v *Validator) Validate(link string) error {
	if !v.pattern.MatchString(link) {
		return fmt.Errorf("%w: expected %s<token>", domain.ErrInvalidCloudLink, v.Prefix)
	}
	return nil
}

// Resolver turns an entry URL into an absolute link
type Resolver struct {
	// Link is the validated share link; empty means none configured
	Link         string
	FallbackBase string
}

// Resolve returns the address to open for e.
//
// Unavailable entries resolve to their fallback URL (or "#"). Absolute
// URLs are returned unchanged. Relative URLs are joined to the share link
// as a path parameter, or to FallbackBase when no link is set.
func (r Resolver) Resolve(e *domain.Entry) string {
	if !e.IsAvailable() {
		if e.FallbackURL != "" {
			return e.FallbackURL
		}
		return domain.UnavailableURL
	}

	u := strings.TrimSpace(e.URL)
	if strings.HasPrefix(u, "http") {
		return u
	}

	if r.Link != "" {
		path := strings.TrimPrefix(u, pathParam)
		sep := "?"
		if strings.Contains(r.Link, "?") {
			sep = "&"
		}
		return r.Link + sep + "path=" + path
	}

	base := r.FallbackBase
	if base == "" {
		base = DefaultFallbackBase
	}
	base = strings.TrimSuffix(base, "/")
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return base + u
}

// Service keeps the share link in a settings store
type Service struct {
	store     domain.SettingsStore
	validator *Validator
	fallback  string
	logger    *slog.Logger
}

// NewService creates a cloud link service
func NewService(store domain.SettingsStore, validator *Validator, fallbackBase string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if validator == nil {
		validator = NewValidator("")
	}
	return &Service{store: store, validator: validator, fallback: fallbackBase, logger: logger}
}

// Set validates and stores link. An invalid link leaves the stored one untouched.
func (s *Service) Set(link string) error {
	link = strings.TrimSpace(link)
	if err := s.validator.Validate(link); err != nil {
		s.logger.Warn("rejected cloud link", "error", err)
		return err
	}
	if err := s.store.Set(SettingKey, link); err != nil {
		return fmt.Errorf("save cloud link: %w", err)
	}
	s.logger.Info("cloud link saved")
	return nil
}

// Clear removes the stored link
func (s *Service) Clear() error {
	if err := s.store.Delete(SettingKey); err != nil {
		return fmt.Errorf("clear cloud link: %w", err)
	}
	s.logger.Info("cloud link cleared")
	return nil
}

// Current returns the stored link if it is present and still valid
func (s *Service) Current() (string, bool) {
	link, ok := s.store.Get(SettingKey)
	if !ok || link == "" {
		return "", false
	}
	if err := s.validator.Validate(link); err != nil {
		s.logger.Warn("ignoring stored cloud link", "error", err)
		return "", false
	}
	return link, true
}

// Resolver returns a resolver bound to the current link. A missing or
// invalid stored link falls back to the plain relative URL handling.
func (s *Service) Resolver() Resolver {
	link, _ := s.Current()
	return Resolver{Link: link, FallbackBase: s.fallback}
}
