package threemf

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBuildModelSettings(t *testing.T) {
	doc, err := BuildModelSettings(testTable(), mgl64.Vec3{})
	if err != nil {
		t.Fatalf("BuildModelSettings() error: %v", err)
	}

	var settings ModelSettings
	if err := xml.Unmarshal([]byte(doc), &settings); err != nil {
		t.Fatalf("emitted settings are not valid XML: %v", err)
	}

	if len(settings.Objects) != 1 {
		t.Fatalf("expected 1 settings object, got %d", len(settings.Objects))
	}

	obj := settings.Objects[0]
	if obj.ID != 3 {
		t.Errorf("settings object id = %d, want 3 (the build item target)", obj.ID)
	}

	// The assembly flattens to its two mesh leaves.
	if len(obj.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(obj.Parts))
	}
	if obj.Parts[0].ID != 1 || obj.Parts[1].ID != 2 {
		t.Errorf("part ids = %d, %d, want 1, 2", obj.Parts[0].ID, obj.Parts[1].ID)
	}
	for _, part := range obj.Parts {
		if part.Subtype != "normal_part" {
			t.Errorf("part subtype = %q, want normal_part", part.Subtype)
		}
		if part.MeshStat.FaceCount != 1 {
			t.Errorf("part face count = %d, want 1", part.MeshStat.FaceCount)
		}
	}

	if len(settings.Plate.ModelInstances) != 1 {
		t.Fatalf("expected 1 model instance, got %d", len(settings.Plate.ModelInstances))
	}
	if len(settings.Assemble.Items) != 1 {
		t.Fatalf("expected 1 assemble item, got %d", len(settings.Assemble.Items))
	}
	if settings.Assemble.Items[0].ObjectID != 3 {
		t.Errorf("assemble item object id = %d, want 3", settings.Assemble.Items[0].ObjectID)
	}
}

func TestBuildModelSettingsExtruders(t *testing.T) {
	doc, err := BuildModelSettings(testTable(), mgl64.Vec3{})
	if err != nil {
		t.Fatalf("BuildModelSettings() error: %v", err)
	}

	// Both meshes use material 1.
	if !strings.Contains(doc, `<metadata key="extruder" value="1">`) {
		t.Errorf("settings missing extruder metadata:\n%s", doc)
	}
}

func TestBuildModelSettingsSinglePlate(t *testing.T) {
	doc, err := BuildModelSettings(testTable(), mgl64.Vec3{})
	if err != nil {
		t.Fatalf("BuildModelSettings() error: %v", err)
	}

	if strings.Count(doc, "<plate>") != 1 {
		t.Errorf("expected exactly one plate:\n%s", doc)
	}
	if !strings.Contains(doc, `<metadata key="plater_id" value="1">`) {
		t.Errorf("plate missing plater_id metadata:\n%s", doc)
	}
}

func TestBuildModelSettingsCenteringInAssemble(t *testing.T) {
	doc, err := BuildModelSettings(testTable(), mgl64.Vec3{10, 0, 0})
	if err != nil {
		t.Fatalf("BuildModelSettings() error: %v", err)
	}

	// Item translation (1 2 3) plus centering x+10.
	if !strings.Contains(doc, "11.00000 2.00000 3.00000") {
		t.Errorf("assemble transform missing centering:\n%s", doc)
	}
}
