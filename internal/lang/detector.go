package lang

import (
	"path/filepath"
	"strings"
)

// Unknown is returned for files no mapping entry covers.
const Unknown = "unknown"

// Detector resolves file paths to language labels and language labels to
// coarse categories. Detection is a pure function of the file name; no
// content is inspected. A Detector is immutable after construction and
// safe for concurrent reads.
type Detector struct {
	extToLang      map[string]string
	filenameToLang map[string]string
	langToCategory map[string]string
}

// NewDetector builds a detector from a mapping table. Filename entries take
// precedence over extension entries; extension comparison is
// case-insensitive.
func NewDetector(mapping Mapping) *Detector {
	d := &Detector{
		extToLang:      make(map[string]string),
		filenameToLang: make(map[string]string),
		langToCategory: make(map[string]string),
	}
	for name, def := range mapping {
		for _, ext := range def.Extensions {
			d.extToLang[strings.ToLower(ext)] = name
		}
		for _, fn := range def.Filenames {
			d.filenameToLang[fn] = name
		}
		category := def.Type
		if category == "" {
			category = Unknown
		}
		d.langToCategory[name] = category
	}
	return d
}

// Detect returns the language label for a path, or Unknown.
func (d *Detector) Detect(path string) string {
	name := filepath.Base(path)
	if lang, ok := d.filenameToLang[name]; ok {
		return lang
	}
	ext := strings.ToLower(filepath.Ext(name))
	if lang, ok := d.extToLang[ext]; ok {
		return lang
	}
	return Unknown
}

// Category returns the coarse category for a language label, or Unknown.
func (d *Detector) Category(language string) string {
	if cat, ok := d.langToCategory[language]; ok {
		return cat
	}
	return Unknown
}

// Languages returns all mapped language names in no particular order.
func (d *Detector) Languages() []string {
	names := make([]string, 0, len(d.langToCategory))
	for name := range d.langToCategory {
		names = append(names, name)
	}
	return names
}
