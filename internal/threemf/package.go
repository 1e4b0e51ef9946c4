package threemf

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/philipparndt/scene3mf/internal/config"
)

// Fixed entry paths of the package.
const (
	PathRels            = "_rels/.rels"
	PathModel           = "3D/3dmodel.model"
	PathModelSettings   = "Metadata/model_settings.config"
	PathProjectSettings = "Metadata/project_settings.config"
	PathContentTypes    = "[Content_Types].xml"
)

// ContentType is the media type of the whole package.
const ContentType = "application/vnd.ms-package.3dmanufacturing-3dmodel+xml"

const relsXML = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
 <Relationship Id="rel0" Target="/3D/3dmodel.model" Type="http://schemas.microsoft.com/3dmanufacturing/2013/01/3dmodel"/>
 <Relationship Id="rel1" Target="/Metadata/model_settings.config" Type="http://schemas.bambulab.com/package/2021/model-settings"/>
 <Relationship Id="rel2" Target="/Metadata/project_settings.config" Type="http://schemas.bambulab.com/package/2021/project-settings"/>
</Relationships>`

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
 <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
 <Default Extension="model" ContentType="application/vnd.ms-package.3dmanufacturing-3dmodel+xml"/>
 <Default Extension="config" ContentType="text/xml"/>
</Types>`

// Documents are the three generated payloads of one export.
type Documents struct {
	Model           string
	ModelSettings   string
	ProjectSettings string
}

// Pack writes the package archive and returns its bytes. The
// content-types entry is always written last: some consuming unzip
// implementations fail to open archives that start with it.
func Pack(docs Documents, compression string) ([]byte, error) {
	method := zip.Deflate
	if compression == config.CompressionNone {
		method = zip.Store
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	entries := []struct {
		name    string
		content string
	}{
		{PathRels, relsXML},
		{PathModel, docs.Model},
		{PathModelSettings, docs.ModelSettings},
		{PathProjectSettings, docs.ProjectSettings},
		{PathContentTypes, contentTypesXML},
	}

	for _, entry := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   entry.name,
			Method: method,
		})
		if err != nil {
			return nil, fmt.Errorf("error creating ZIP entry %s: %w", entry.name, err)
		}
		if _, err := w.Write([]byte(entry.content)); err != nil {
			return nil, fmt.Errorf("error writing ZIP entry %s: %w", entry.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("error closing ZIP writer: %w", err)
	}

	return buf.Bytes(), nil
}
