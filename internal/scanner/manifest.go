package scanner

import (
	"encoding/json"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// ProjectMeta holds display metadata read from a project manifest. All fields
// are best-effort; a missing or unreadable manifest leaves them empty.
type ProjectMeta struct {
	Name         string `json:"name,omitempty"`
	Description  string `json:"description,omitempty"`
	ManifestPath string `json:"manifestPath,omitempty"`
}

// pyprojectFile mirrors the [project] table of pyproject.toml.
type pyprojectFile struct {
	Project struct {
		Name        string `toml:"name"`
		Description string `toml:"description"`
	} `toml:"project"`
}

// packageJSONFile mirrors the name/description fields of package.json.
type packageJSONFile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ReadProjectMeta looks for pyproject.toml, then package.json, in the project
// root and extracts a display name and description. Never returns an error:
// manifest metadata is optional everywhere it is shown.
func ReadProjectMeta(root string) ProjectMeta {
	pyPath := filepath.Join(root, "pyproject.toml")
	if data, err := os.ReadFile(pyPath); err == nil {
		var py pyprojectFile
		if err := toml.Unmarshal(data, &py); err == nil && py.Project.Name != "" {
			return ProjectMeta{
				Name:         py.Project.Name,
				Description:  py.Project.Description,
				ManifestPath: "pyproject.toml",
			}
		}
	}

	pkgPath := filepath.Join(root, "package.json")
	if data, err := os.ReadFile(pkgPath); err == nil {
		var pkg packageJSONFile
		if err := json.Unmarshal(data, &pkg); err == nil && pkg.Name != "" {
			return ProjectMeta{
				Name:         pkg.Name,
				Description:  pkg.Description,
				ManifestPath: "package.json",
			}
		}
	}

	return ProjectMeta{}
}
