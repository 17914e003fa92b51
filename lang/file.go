// Copyright (c) 2026 The confbox authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package lang

import (
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/nil-go/confbox"
	"github.com/nil-go/confbox/provider/file"
	kfs "github.com/nil-go/confbox/provider/fs"
)

type namespace struct {
	key    string
	path   string
	locale string
}

var fileKeyPattern = regexp.MustCompile(`^[A-Za-z][\w-]+$`)

// AddFile registers the namespace file at the path under the file key.
//
// A relative path is resolved in the directory of the current locale under the base path.
// An empty file key is the base name of the file without the format extension.
//
// It returns [ErrInvalidArgument] if the file exists neither for the current locale
// nor for the fallback locale, the file key is malformed, or the file key has been
// registered. These errors are logged and ignored if IgnoreErrors is given.
func (t *Translator) AddFile(filePath, fileKey string) error {
	if err := t.addFile(filePath, fileKey); err != nil {
		if t.ignoreErrors {
			t.logger.Warn("Language file has been ignored.", "error", err)

			return nil
		}

		return err
	}

	return nil
}

func (t *Translator) addFile(filePath, fileKey string) error {
	filePath = strings.TrimSpace(filePath)
	if t.isAbs(filePath) {
		if t.fsys != nil {
			filePath = strings.TrimPrefix(filePath, "/")
		}
	} else {
		filePath = t.join(t.basePath, t.locale, filePath)
	}

	registered := namespace{key: fileKey, path: filePath, locale: t.locale}
	if !t.exists(filePath) &&
		(t.fallback == "" || t.fallback == t.locale || !t.exists(t.localize(registered, t.fallback))) {
		return fmt.Errorf("%w: language file %s does not exist", ErrInvalidArgument, filePath)
	}

	if registered.key == "" {
		registered.key = strings.TrimSuffix(path.Base(filepath.ToSlash(filePath)), "."+string(t.format))
	}
	if !fileKeyPattern.MatchString(registered.key) {
		return fmt.Errorf("%w: malformed language file key %q", ErrInvalidArgument, registered.key)
	}
	if existing, ok := t.registered[registered.key]; ok {
		return fmt.Errorf("%w: language file key %q has been registered with %s",
			ErrInvalidArgument, registered.key, existing.path)
	}
	t.registered[registered.key] = registered

	return nil
}

// SetFiles registers the namespace files keyed by file key, in the order of file keys.
// See [Translator.AddFile].
func (t *Translator) SetFiles(files map[string]string) error {
	for _, key := range slices.Sorted(maps.Keys(files)) {
		if err := t.AddFile(files[key], key); err != nil {
			return err
		}
	}

	return nil
}

// File returns the path of the namespace file registered under the file key.
func (t *Translator) File(fileKey string) (string, bool) {
	registered, ok := t.registered[fileKey]

	return registered.path, ok
}

// HasFile reports whether a namespace file is registered under the file key.
func (t *Translator) HasFile(fileKey string) bool {
	_, ok := t.registered[fileKey]

	return ok
}

// Files returns the paths of registered namespace files keyed by file key.
func (t *Translator) Files() map[string]string {
	files := make(map[string]string, len(t.registered))
	for key, registered := range t.registered {
		files[key] = registered.path
	}

	return files
}

// BasePath returns the directory holding the locale directories.
func (t *Translator) BasePath() string {
	return t.basePath
}

// SetBasePath sets the directory holding the locale directories.
//
// It returns [ErrInvalidArgument] if the directory does not exist.
func (t *Translator) SetBasePath(dir string) error {
	name := dir
	if t.fsys != nil && name == "" {
		name = "."
	}
	if name == "" {
		return fmt.Errorf("%w: empty base path", ErrInvalidArgument)
	}

	var (
		info fs.FileInfo
		err  error
	)
	if t.fsys != nil {
		info, err = fs.Stat(t.fsys, name)
	} else {
		info, err = os.Stat(name)
	}
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: base path %s does not exist", ErrInvalidArgument, dir)
	}
	t.basePath = dir

	return nil
}

// localize replaces the locale directory in the path of the registered file.
func (t *Translator) localize(registered namespace, locale string) string {
	if locale == registered.locale {
		return registered.path
	}

	sep := t.pathSeparator()
	marked := sep + registered.path
	dir := sep + registered.locale + sep
	index := strings.LastIndex(marked, dir)
	if index < 0 {
		return registered.path
	}

	return (marked[:index] + sep + locale + sep + marked[index+len(dir):])[len(sep):]
}

func (t *Translator) loader(filePath string) confbox.Loader {
	if t.fsys != nil {
		return kfs.New(t.fsys, filePath, kfs.WithFormat(t.format), kfs.WithRegistry(t.registry))
	}

	return file.New(filePath, file.WithFormat(t.format), file.WithRegistry(t.registry), file.WithLogger(t.logger))
}

func (t *Translator) exists(filePath string) bool {
	var (
		info fs.FileInfo
		err  error
	)
	if t.fsys != nil {
		info, err = fs.Stat(t.fsys, filePath)
	} else {
		info, err = os.Stat(filePath)
	}

	return err == nil && info.Mode().IsRegular()
}

func (t *Translator) isAbs(filePath string) bool {
	if t.fsys != nil {
		return strings.HasPrefix(filePath, "/")
	}

	return filepath.IsAbs(filePath)
}

func (t *Translator) join(elem ...string) string {
	if t.fsys != nil {
		return path.Join(elem...)
	}

	return filepath.Join(elem...)
}

func (t *Translator) pathSeparator() string {
	if t.fsys != nil {
		return "/"
	}

	return string(filepath.Separator)
}
