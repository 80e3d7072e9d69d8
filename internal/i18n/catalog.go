// Package i18n registers compactsim's message catalogs with x/text/message
// and renders localized report labels and error messages.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/signalnine/compactsim/internal/compaction"
)

// BaseLocale is the fallback locale and the source of every key.
const BaseLocale = "en-US"

//go:embed locales/*.yaml
var embeddedFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds every loaded locale's messages.
type Bundle struct {
	locales map[string]map[string]string
}

var (
	registerOnce sync.Once
	registerErr  error
	defaultTags  []language.Tag
)

// LoadFromFS reads locales/*.yaml from fsys. Every locale must define the
// same keys as BaseLocale.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]map[string]string{}}
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		locale := strings.TrimSpace(file.Locale)
		if want := strings.TrimSuffix(path[strings.LastIndex(path, "/")+1:], ".yaml"); locale != want {
			return nil, fmt.Errorf("catalog %s: locale %q must match file name", path, locale)
		}
		if _, err := language.Parse(locale); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", path, err)
		}
		b.locales[locale] = file.Messages
	}

	base, ok := b.locales[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	for locale, messages := range b.locales {
		for key := range base {
			if _, ok := messages[key]; !ok {
				return nil, fmt.Errorf("catalog %s: missing key %q", locale, key)
			}
		}
	}
	return b, nil
}

// Locales returns the sorted locale identifiers in the bundle.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Register installs every message with the x/text default catalog, under
// both the full tag and its base language.
func (b *Bundle) Register() ([]language.Tag, error) {
	var tags []language.Tag
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		registerTags := []language.Tag{tag}
		if base, _ := tag.Base(); base.String() != "und" {
			if baseTag, err := language.Parse(base.String()); err == nil && baseTag != tag {
				registerTags = append(registerTags, baseTag)
			}
		}
		for key, msg := range b.locales[locale] {
			for _, rt := range registerTags {
				if err := message.SetString(rt, key, msg); err != nil {
					return nil, fmt.Errorf("register %s/%s: %w", locale, key, err)
				}
			}
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func registerDefault() error {
	registerOnce.Do(func() {
		b, err := LoadFromFS(embeddedFS)
		if err != nil {
			registerErr = err
			return
		}
		defaultTags, registerErr = b.Register()
	})
	return registerErr
}

// Supported returns the locales shipped with the binary.
func Supported() []string {
	if err := registerDefault(); err != nil {
		return nil
	}
	out := make([]string, len(defaultTags))
	for i, t := range defaultTags {
		out[i] = t.String()
	}
	return out
}

// NewPrinter returns a printer for locale, falling back to BaseLocale when
// the locale is unknown or unsupported.
func NewPrinter(locale string) (*message.Printer, error) {
	if err := registerDefault(); err != nil {
		return nil, err
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(BaseLocale)
	}
	matcher := language.NewMatcher(defaultTags)
	_, idx, _ := matcher.Match(tag)
	return message.NewPrinter(defaultTags[idx]), nil
}

// TrialTypeLabel is the localized name of a trial type.
func TrialTypeLabel(p *message.Printer, t compaction.TrialType) string {
	return p.Sprintf("trial_type." + t.String())
}

// DescribeError renders err as a user-facing sentence. Errors that are not
// parameter errors fall back to their Error text.
func DescribeError(p *message.Printer, err error) string {
	var perr *compaction.ParameterError
	if !errors.As(err, &perr) {
		return err.Error()
	}
	field := p.Sprintf("field." + perr.Field)
	detail := perr.Msg
	if detail == "" && perr.Cause != nil {
		detail = perr.Cause.Error()
	}

	switch key := perr.MessageKey(); key {
	case "error.missing_parameter", "error.malformed_number":
		return p.Sprintf(key, field)
	case "error.invalid_range":
		return p.Sprintf(key, detail)
	default:
		return p.Sprintf(key, field, detail)
	}
}
