// Package inspect reads back a generated package and prints its
// contents, as a quick verification aid for exported files.
package inspect

import (
	"archive/zip"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/philipparndt/scene3mf/internal/threemf"
	"github.com/philipparndt/scene3mf/internal/ui"
)

// Inspector provides functionality to inspect generated 3MF packages.
type Inspector struct{}

// NewInspector creates a new Inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect reads and displays the contents of a 3MF file.
func (i *Inspector) Inspect(filename string) error {
	if _, err := os.Stat(filename); err != nil {
		return fmt.Errorf("file not found: %s", filename)
	}

	ui.PrintHeader(fmt.Sprintf("Inspecting: %s", filename))

	zr, err := zip.OpenReader(filename)
	if err != nil {
		return fmt.Errorf("error opening ZIP: %w", err)
	}
	defer zr.Close()

	ui.PrintStep("Archive entries:")
	for _, f := range zr.File {
		method := "deflate"
		if f.Method == zip.Store {
			method = "store"
		}
		ui.PrintItem(fmt.Sprintf("%s (%d bytes, %s)", f.Name, f.UncompressedSize64, method))
	}

	model, err := i.readModel(&zr.Reader)
	if err != nil {
		return fmt.Errorf("error reading model document: %w", err)
	}

	ui.PrintHeader("Model")
	ui.PrintKeyValue("Unit", model.Unit)
	for _, meta := range model.Metadata {
		ui.PrintItem(fmt.Sprintf("%s: %s", meta.Name, meta.Value))
	}

	ui.PrintHeader("Objects")
	for _, obj := range model.Resources.Objects {
		if obj.Components != nil {
			ui.PrintItem(fmt.Sprintf("#%d %s (assembly, %d components)",
				obj.ID, obj.Name, len(obj.Components.Component)))
			continue
		}
		vertices, triangles := 0, 0
		if obj.Mesh != nil {
			vertices = len(obj.Mesh.Vertices.Vertex)
			triangles = len(obj.Mesh.Triangles.Triangle)
		}
		ui.PrintItem(fmt.Sprintf("#%d %s (mesh, %d vertices, %d triangles)",
			obj.ID, obj.Name, vertices, triangles))
	}

	ui.PrintHeader("Build Items")
	for idx, item := range model.Build.Items {
		ui.PrintItem(fmt.Sprintf("%d: object #%d transform=%s", idx+1, item.ObjectID, item.Transform))
	}

	if filaments, err := i.readFilaments(&zr.Reader); err == nil && len(filaments) > 0 {
		ui.PrintHeader("Filaments")
		for idx, color := range filaments {
			ui.PrintItem(fmt.Sprintf("extruder %d: %s", idx+1, color))
		}
	}

	return nil
}

// DumpModel prints the raw model document with syntax highlighting.
func (i *Inspector) DumpModel(filename string) error {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return fmt.Errorf("error opening ZIP: %w", err)
	}
	defer zr.Close()

	data, err := i.readEntry(&zr.Reader, threemf.PathModel)
	if err != nil {
		return err
	}

	return quick.Highlight(os.Stdout, string(data), "xml", "terminal256", "monokai")
}

func (i *Inspector) readModel(zr *zip.Reader) (*threemf.Model, error) {
	data, err := i.readEntry(zr, threemf.PathModel)
	if err != nil {
		return nil, err
	}

	var model threemf.Model
	if err := xml.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("error parsing XML: %w", err)
	}

	return &model, nil
}

func (i *Inspector) readFilaments(zr *zip.Reader) ([]string, error) {
	data, err := i.readEntry(zr, threemf.PathProjectSettings)
	if err != nil {
		return nil, err
	}

	var settings struct {
		FilamentColour []string `json:"filament_colour"`
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("error parsing project settings: %w", err)
	}

	return settings.FilamentColour, nil
}

func (i *Inspector) readEntry(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("error opening %s: %w", name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}
