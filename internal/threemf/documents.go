// Package threemf emits the documents of a Bambu-Studio-flavored 3MF
// package and assembles them into the final archive.
package threemf

import "encoding/xml"

// Namespace and extension constants of the target format.
const (
	NamespaceCore        = "http://schemas.microsoft.com/3dmanufacturing/core/2015/02"
	NamespaceBambuStudio = "http://schemas.bambulab.com/package/2021"
	NamespaceProduction  = "http://schemas.microsoft.com/3dmanufacturing/production/2015/06"
)

// Model is the root of the 3D/3dmodel.model document.
type Model struct {
	XMLName            xml.Name   `xml:"model"`
	Xmlns              string     `xml:"xmlns,attr"`
	XmlnsBambuStudio   string     `xml:"xmlns:BambuStudio,attr"`
	XmlnsP             string     `xml:"xmlns:p,attr"`
	RequiredExtensions string     `xml:"requiredextensions,attr"`
	Unit               string     `xml:"unit,attr"`
	Lang               string     `xml:"xml:lang,attr"`
	Metadata           []Metadata `xml:"metadata"`
	Resources          Resources  `xml:"resources"`
	Build              Build      `xml:"build"`
}

type Metadata struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type Resources struct {
	Objects []Object `xml:"object"`
}

type Object struct {
	ID         int         `xml:"id,attr"`
	UUID       string      `xml:"p:UUID,attr"`
	Name       string      `xml:"name,attr,omitempty"`
	Type       string      `xml:"type,attr"`
	Mesh       *Mesh       `xml:"mesh,omitempty"`
	Components *Components `xml:"components,omitempty"`
}

type Mesh struct {
	Vertices  Vertices  `xml:"vertices"`
	Triangles Triangles `xml:"triangles"`
}

type Vertices struct {
	Vertex []Vertex `xml:"vertex"`
}

// Vertex coordinates are preformatted strings so the emitter controls
// the fixed 5-decimal formatting the target parser expects.
type Vertex struct {
	X string `xml:"x,attr"`
	Y string `xml:"y,attr"`
	Z string `xml:"z,attr"`
}

type Triangles struct {
	Triangle []Triangle `xml:"triangle"`
}

type Triangle struct {
	V1 int `xml:"v1,attr"`
	V2 int `xml:"v2,attr"`
	V3 int `xml:"v3,attr"`
}

type Components struct {
	Component []ComponentRef `xml:"component"`
}

type ComponentRef struct {
	ObjectID  int    `xml:"objectid,attr"`
	UUID      string `xml:"p:UUID,attr"`
	Transform string `xml:"transform,attr"`
}

type Build struct {
	UUID  string `xml:"p:UUID,attr"`
	Items []Item `xml:"item"`
}

type Item struct {
	ObjectID  int    `xml:"objectid,attr"`
	UUID      string `xml:"p:UUID,attr"`
	Transform string `xml:"transform,attr"`
	Printable string `xml:"printable,attr"`
}

// ModelSettings is the root of the Metadata/model_settings.config
// document.
type ModelSettings struct {
	XMLName  xml.Name         `xml:"config"`
	Objects  []SettingsObject `xml:"object"`
	Plate    Plate            `xml:"plate"`
	Assemble Assemble         `xml:"assemble"`
}

type SettingsObject struct {
	ID       int                `xml:"id,attr"`
	Metadata []SettingsMetadata `xml:"metadata"`
	Parts    []Part             `xml:"part"`
}

type SettingsMetadata struct {
	Key   string `xml:"key,attr"`
	Value string `xml:"value,attr"`
}

type Part struct {
	ID       int                `xml:"id,attr"`
	Subtype  string             `xml:"subtype,attr"`
	Metadata []SettingsMetadata `xml:"metadata"`
	MeshStat MeshStat           `xml:"mesh_stat"`
}

type MeshStat struct {
	FaceCount int `xml:"face_count,attr"`
}

type Plate struct {
	Metadata       []SettingsMetadata `xml:"metadata"`
	ModelInstances []ModelInstance    `xml:"model_instance"`
}

type ModelInstance struct {
	Metadata []SettingsMetadata `xml:"metadata"`
}

type Assemble struct {
	Items []AssembleItem `xml:"assemble_item"`
}

type AssembleItem struct {
	ObjectID   int    `xml:"object_id,attr"`
	InstanceID int    `xml:"instance_id,attr"`
	Transform  string `xml:"transform,attr"`
	Offset     string `xml:"offset,attr"`
}
