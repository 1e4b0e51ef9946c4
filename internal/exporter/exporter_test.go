package exporter

import (
	"archive/zip"
	"bytes"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/philipparndt/scene3mf/internal/config"
	"github.com/philipparndt/scene3mf/internal/scene"
	"github.com/philipparndt/scene3mf/internal/threemf"
)

func exportScene(t *testing.T, cfg config.Config) []byte {
	t.Helper()

	root := scene.NewGroup("Scene")
	red := scene.RGB{R: 255}
	mesh := triangleMesh("part")
	mesh.Material = &scene.Material{Name: "red part", Color: &red}
	root.AddChild(mesh)

	blob, err := Export(root, cfg)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	return blob
}

func readZip(t *testing.T, blob []byte) *zip.Reader {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		t.Fatalf("output is not a readable ZIP: %v", err)
	}
	return zr
}

func readZipEntry(t *testing.T, zr *zip.Reader, name string) string {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("error opening %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("error reading %s: %v", name, err)
		}
		return string(data)
	}
	t.Fatalf("%s not found in archive", name)
	return ""
}

func TestExportPackageLayout(t *testing.T) {
	blob := exportScene(t, config.Default())
	zr := readZip(t, blob)

	wantOrder := []string{
		threemf.PathRels,
		threemf.PathModel,
		threemf.PathModelSettings,
		threemf.PathProjectSettings,
		threemf.PathContentTypes,
	}

	if len(zr.File) != len(wantOrder) {
		t.Fatalf("expected %d entries, got %d", len(wantOrder), len(zr.File))
	}
	for i, want := range wantOrder {
		if zr.File[i].Name != want {
			t.Errorf("entry %d = %s, want %s", i, zr.File[i].Name, want)
		}
	}

	// The content-types descriptor must be the last entry, never the
	// first: some consuming unzip implementations fail otherwise.
	if zr.File[len(zr.File)-1].Name != threemf.PathContentTypes {
		t.Errorf("content types must be written last")
	}
}

func TestExportCompressionModes(t *testing.T) {
	tests := []struct {
		compression string
		method      uint16
	}{
		{config.CompressionStandard, zip.Deflate},
		{config.CompressionNone, zip.Store},
	}

	for _, tt := range tests {
		t.Run(tt.compression, func(t *testing.T) {
			cfg := config.Default()
			cfg.Compression = tt.compression

			zr := readZip(t, exportScene(t, cfg))
			for _, f := range zr.File {
				if f.Method != tt.method {
					t.Errorf("%s uses method %d, want %d", f.Name, f.Method, tt.method)
				}
			}
		})
	}
}

func TestExportModelDocument(t *testing.T) {
	zr := readZip(t, exportScene(t, config.Default()))
	model := readZipEntry(t, zr, threemf.PathModel)

	for _, want := range []string{
		threemf.NamespaceCore,
		threemf.NamespaceBambuStudio,
		threemf.NamespaceProduction,
		`requiredextensions="p"`,
		`unit="millimeter"`,
		`<vertex x="0.00000" y="0.00000" z="0.00000"`,
	} {
		if !strings.Contains(model, want) {
			t.Errorf("model document missing %q", want)
		}
	}
}

func TestExportProjectSettings(t *testing.T) {
	zr := readZip(t, exportScene(t, config.Default()))
	project := readZipEntry(t, zr, threemf.PathProjectSettings)

	// One red mesh: material table padded to 2 with white.
	for _, want := range []string{
		`"#FF0000"`,
		`"#FFFFFF"`,
		`"printable_area"`,
		`"180x180"`,
	} {
		if !strings.Contains(project, want) {
			t.Errorf("project settings missing %q", want)
		}
	}
}

var uuidAttr = regexp.MustCompile(`p:UUID="[0-9a-f-]+"`)

func TestExportDeterminism(t *testing.T) {
	build := func() *scene.Group {
		root := scene.NewGroup("Scene")
		group := scene.NewGroup("g")
		group.AddChild(triangleMesh("a"), triangleMesh("b"))
		root.AddChild(group)
		return root
	}

	cfg := config.Default()
	first, err := Export(build(), cfg)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	second, err := Export(build(), cfg)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	normalize := func(blob []byte) string {
		model := readZipEntry(t, readZip(t, blob), threemf.PathModel)
		return uuidAttr.ReplaceAllString(model, `p:UUID=""`)
	}

	if normalize(first) != normalize(second) {
		t.Error("re-exporting the same scene produced different geometry output")
	}
}

func TestExportInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Compression = "brotli"

	root := scene.NewGroup("Scene")
	root.AddChild(triangleMesh("m"))

	if _, err := Export(root, cfg); err == nil {
		t.Fatal("expected error for invalid compression mode")
	}
}
