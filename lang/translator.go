// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package lang resolves translation texts from per-locale configuration files.
//
// Translation files are laid out one directory per locale under a base path:
//
//	language/
//	    en/
//	        default.yaml
//	        user.yaml
//	    zh-CN/
//	        default.yaml
//	        user.yaml
//
// The default file of a locale is merged at the root of its store when the store
// is created. Other files are namespace files registered with [Translator.AddFile].
// A namespace file is loaded on the first lookup of a key under its file key,
// e.g. `user.greet` loads `user.yaml` and reads `greet` from it.
//
// Keys missing in the current locale are looked up in the fallback locale.
// Keys missing in both are turned into readable text, `order_status` reads `Order status`.
package lang

import (
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cast"

	"github.com/nil-go/confbox"
	"github.com/nil-go/confbox/format"
	"github.com/nil-go/confbox/tree"
)

// Translator looks up translation texts by key.
//
// Translator is not concurrency-safe. Stores of locales and namespace files are
// loaded on demand by the lookups.
//
// To create a new Translator, call [New].
type Translator struct {
	logger       *slog.Logger
	locale       string
	fallback     string
	allowed      []string
	basePath     string
	fsys         fs.FS
	format       format.Format
	separator    string
	defaultFile  string
	registry     *format.Registry
	ignoreErrors bool
	files        map[string]string
	pending      []namespace

	registered  map[string]namespace
	stores      map[string]*store
	loadedFiles []string
}

type store struct {
	config *confbox.Config
	loaded map[string]bool
}

// New creates a Translator with the given Option(s).
//
// It returns [ErrInvalidArgument] if the base path does not exist,
// the format is not supported, or registering a file fails.
func New(opts ...Option) (*Translator, error) {
	option := &options{
		locale:      "en",
		fallback:    "en",
		format:      format.YAML,
		separator:   ".",
		defaultFile: "default",
	}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("confbox.lang")
	if option.registry == nil {
		option.registry = format.Default()
	}
	option.registered = make(map[string]namespace)
	option.stores = make(map[string]*store)

	translator := (*Translator)(option)
	if !translator.registry.Supports(translator.format) {
		return nil, fmt.Errorf("%w: %w: %q", ErrInvalidArgument, format.ErrUnsupportedFormat, translator.format)
	}
	if translator.basePath != "" {
		if err := translator.SetBasePath(translator.basePath); err != nil {
			return nil, err
		}
	}

	pending, files := translator.pending, translator.files
	translator.pending, translator.files = nil, nil
	for _, f := range pending {
		if err := translator.AddFile(f.path, f.key); err != nil {
			return nil, err
		}
	}
	if err := translator.SetFiles(files); err != nil {
		return nil, err
	}

	if _, err := translator.store(translator.locale); err != nil {
		return nil, err
	}

	return translator, nil
}

// Translate returns the text of the key in the current locale.
//
// A key may start with an allowed locale followed by `:`, e.g. `zh-CN:user.greet`,
// to read the text in that locale.
// If the text is not found in the locale nor in the fallback locale, it returns the
// text given with [Default], or the trailing segment of the key made readable.
// The text is formatted with fmt.Sprintf if there are args other than [Default].
//
// It returns [ErrInvalidKey] if the key is empty.
func (t *Translator) Translate(key string, args ...any) (string, error) {
	return t.translate("", key, args)
}

// TranslateIn is like [Translator.Translate] but reads the text in the given locale.
func (t *Translator) TranslateIn(locale, key string, args ...any) (string, error) {
	return t.translate(strings.TrimSpace(locale), key, args)
}

// T is like [Translator.Translate] but logs the error and returns an empty text instead.
func (t *Translator) T(key string, args ...any) string {
	text, err := t.translate("", key, args)
	if err != nil {
		t.logger.Error("Could not translate, return empty text instead.", "error", err, "key", key)

		return ""
	}

	return text
}

func (t *Translator) translate(locale, key string, args []any) (string, error) {
	key = t.trim(key)
	if locale == "" {
		locale, key = t.parseKey(key)
		key = t.trim(key)
	}
	if key == "" {
		return "", fmt.Errorf("%w: empty key", ErrInvalidKey)
	}

	defaultText, args := splitDefault(args)
	text, found, err := t.find(locale, key)
	if err != nil {
		return "", err
	}
	if !found && t.fallback != "" && t.fallback != locale {
		if text, found, err = t.find(t.fallback, key); err != nil {
			return "", err
		}
	}
	if !found {
		if defaultText == "" {
			return humanize(key, t.separator), nil
		}
		text = defaultText
	}

	if len(args) > 0 {
		return fmt.Sprintf(text, args...), nil
	}

	return text, nil
}

func (t *Translator) trim(key string) string {
	return strings.Trim(key, " "+t.separator)
}

func (t *Translator) parseKey(key string) (string, string) {
	if index := strings.Index(key, ":"); index > 0 && t.IsAllowed(key[:index]) {
		return key[:index], key[index+1:]
	}

	return t.locale, key
}

// find looks the key up in the store of the locale, loading the namespace file
// of the key on the first miss.
func (t *Translator) find(locale, key string) (string, bool, error) {
	s, err := t.store(locale)
	if err != nil {
		return "", false, err
	}
	if text, ok := s.text(key); ok {
		return text, true, nil
	}

	fileKey := key
	if index := strings.Index(key, t.separator); index > 0 {
		fileKey = key[:index]
	}
	registered, ok := t.registered[fileKey]
	if !ok || s.loaded[fileKey] {
		return "", false, nil
	}
	s.loaded[fileKey] = true

	path := t.localize(registered, locale)
	if !t.exists(path) {
		t.logger.Debug("Language file does not exist.", "locale", locale, "file", path)

		return "", false, nil
	}
	values, err := t.loader(path).Load()
	if err != nil {
		return "", false, fmt.Errorf("load language file %s: %w", path, err)
	}
	t.loadedFiles = append(t.loadedFiles, path)
	// Merge under the file key so keys the default file already defines there survive.
	scoped := tree.New()
	scoped.Set(fileKey, values)
	s.config.Merge(scoped)
	t.logger.Debug("Language file has been loaded.", "locale", locale, "key", fileKey, "file", path)

	text, ok := s.text(key)

	return text, ok, nil
}

// store returns the store of the locale, creating it with the default file on the first call.
func (t *Translator) store(locale string) (*store, error) {
	if s, ok := t.stores[locale]; ok {
		return s, nil
	}

	s := t.newStore(locale)
	if t.defaultFile != "" {
		path := t.join(t.basePath, locale, t.defaultFile+"."+string(t.format))
		if t.exists(path) {
			if err := s.config.Load(t.loader(path)); err != nil {
				return nil, fmt.Errorf("load default language file %s: %w", path, err)
			}
			t.loadedFiles = append(t.loadedFiles, path)
		}
	}
	t.stores[locale] = s

	return s, nil
}

func (t *Translator) newStore(locale string) *store {
	return &store{
		config: confbox.New(
			confbox.WithName(locale),
			confbox.WithDelimiter(t.separator),
			confbox.WithRegistry(t.registry),
			confbox.WithLogger(t.logger),
		),
		loaded: make(map[string]bool),
	}
}

// text returns the scalar under the key as a non-empty string.
func (s *store) text(key string) (string, bool) {
	switch value := s.config.Get(key).(type) {
	case nil, *tree.Map, []any:
		return "", false
	default:
		text, err := cast.ToStringE(value)
		if err != nil || text == "" {
			return "", false
		}

		return text, true
	}
}

// Get returns the value under the key in the store of the current locale.
// It does not load namespace files.
func (t *Translator) Get(key string) any {
	return t.current().config.Get(key)
}

// Set stores the value under the key in the store of the current locale.
func (t *Translator) Set(key string, value any) error {
	return t.current().config.Set(key, value) //nolint:wrapcheck
}

// Has reports whether the key has a value in the store of the current locale.
func (t *Translator) Has(key string) bool {
	return t.current().config.Has(key)
}

// Data returns a copy of the store of the current locale.
func (t *Translator) Data() *tree.Map {
	return t.current().config.Tree()
}

func (t *Translator) current() *store {
	s, err := t.store(t.locale)
	if err != nil {
		t.logger.Error("Could not load language store, use empty store instead.", "error", err, "locale", t.locale)
		s = t.newStore(t.locale)
		t.stores[t.locale] = s
	}

	return s
}

// Locale returns the current locale.
func (t *Translator) Locale() string {
	return t.locale
}

// SetLocale sets the current locale.
func (t *Translator) SetLocale(locale string) {
	t.locale = strings.TrimSpace(locale)
}

// FallbackLocale returns the fallback locale.
func (t *Translator) FallbackLocale() string {
	return t.fallback
}

// SetFallbackLocale sets the fallback locale. An empty locale disables fallback.
func (t *Translator) SetFallbackLocale(locale string) {
	t.fallback = strings.TrimSpace(locale)
}

// Allowed returns the locales allowed as key prefix.
func (t *Translator) Allowed() []string {
	return slices.Clone(t.allowed)
}

// SetAllowed sets the locales allowed as key prefix.
func (t *Translator) SetAllowed(locales []string) {
	t.allowed = slices.Clone(locales)
}

// IsAllowed reports whether the locale is allowed.
func (t *Translator) IsAllowed(locale string) bool {
	return locale != "" && slices.Contains(t.allowed, locale)
}

// Format returns the format of translation files.
func (t *Translator) Format() format.Format {
	return t.format
}

// Separator returns the separator of key paths.
func (t *Translator) Separator() string {
	return t.separator
}

// LoadedFiles returns the paths of loaded files in loading order.
func (t *Translator) LoadedFiles() []string {
	return slices.Clone(t.loadedFiles)
}
