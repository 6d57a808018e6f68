package manifest

import "path/filepath"

// Reader extracts project information from one manifest format. Variants
// are selected by filename, never by content sniffing.
type Reader interface {
	// ReadProjectInfo parses the manifest at path.
	ReadProjectInfo(path string) (*ProjectFileInfo, error)
}

// SupportedFiles lists recognized manifest names in lookup order.
var SupportedFiles = []string{
	"pyproject.toml",
	"package.json",
	"Cargo.toml",
	"requirements.txt",
}

// ReaderFor returns the reader for a manifest path, or nil when the file
// name is not a supported manifest.
func ReaderFor(path string) Reader {
	switch filepath.Base(path) {
	case "pyproject.toml":
		return &PyProjectReader{}
	case "package.json":
		return &PackageJSONReader{}
	case "Cargo.toml":
		return &CargoTomlReader{}
	case "requirements.txt":
		return &RequirementsReader{}
	}
	return nil
}
