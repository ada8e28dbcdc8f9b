/*
Package fontload locates font files and opens them as typefaces.

Fonts are given either as a path or as the name of a system font.
*/
package fontload

import (
	"errors"
	"fmt"
	"os"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/typeface"
	"github.com/npillmayer/typeface/fontstream"
)

func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// Locate returns the path of a font file. name is either a path of an
// existing file or the name of a system font, e.g. "Arial.ttf".
func Locate(name string) (string, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return name, nil
	}
	fpath, err := findfont.Find(name) // try to find as system font
	if err != nil {
		return "", fmt.Errorf("font not found: %s: %w", name, err)
	}
	tracer().Debugf("%s is a system font at %s", name, fpath)
	return fpath, nil
}

// Files are the open files backing a set of font streams.
type Files []*fontstream.File

// Close closes all files.
func (files Files) Close() error {
	var errs []error
	for _, f := range files {
		errs = append(errs, f.Close())
	}
	return errors.Join(errs...)
}

// OpenSet opens a font file and, if afmPath is not empty, a metrics file,
// as a set of font streams. The files have to be closed by the client after
// use of the set.
func OpenSet(fontPath, afmPath string) (*fontstream.Set, Files, error) {
	var files Files
	paths := []string{fontPath}
	if afmPath != "" {
		paths = append(paths, afmPath)
	}
	sources := make([]fontstream.Source, 0, len(paths))
	for _, p := range paths {
		f, err := fontstream.OpenFile(p)
		if err != nil {
			files.Close()
			return nil, nil, err
		}
		files = append(files, f)
		sources = append(sources, f)
	}
	set, err := fontstream.NewSet(sources...)
	if err != nil {
		files.Close()
		return nil, nil, err
	}
	return set, files, nil
}

// Load locates a font and opens it as a typeface. Clients have to close the
// typeface first, then the files.
func Load(name, afmPath string) (*typeface.Typeface, Files, error) {
	fpath, err := Locate(name)
	if err != nil {
		return nil, nil, err
	}
	set, files, err := OpenSet(fpath, afmPath)
	if err != nil {
		return nil, nil, err
	}
	tf, err := typeface.New(set)
	if err != nil {
		files.Close()
		return nil, nil, err
	}
	tracer().Infof("loaded typeface %s from %s", tf.FullName(), fpath)
	return tf, files, nil
}
