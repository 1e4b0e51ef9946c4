// Package stl parses STL files into scene meshes for the export CLI.
package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/scene3mf/internal/scene"
)

// Parser parses STL files.
type Parser struct{}

// NewParser creates a new STL parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads an STL file and returns it as a mesh node. Positions are
// emitted without an index buffer; the exporter's vertex dedup collapses
// shared corners.
func (p *Parser) Parse(filename string) (*scene.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	// Read first few bytes to detect format
	header := make([]byte, 80)
	if _, err := io.ReadFull(file, header); err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}

	// Reset file position
	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("error seeking: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	// ASCII files start with "solid"
	if strings.HasPrefix(string(header), "solid") {
		return p.parseASCII(file, name)
	}
	return p.parseBinary(file, name)
}

// parseASCII parses an ASCII STL file.
func (p *Parser) parseASCII(reader io.Reader, name string) (*scene.Mesh, error) {
	mesh := scene.NewMesh(name)
	scanner := bufio.NewScanner(reader)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)

		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				mesh.Name = strings.Join(fields[1:], " ")
			}
		case "vertex":
			if len(fields) >= 4 {
				var x, y, z float64
				if _, err := fmt.Sscanf(strings.Join(fields[1:4], " "), "%f %f %f", &x, &y, &z); err != nil {
					return nil, fmt.Errorf("invalid vertex line %q: %w", line, err)
				}
				mesh.Positions = append(mesh.Positions, x, y, z)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return mesh, nil
}

// parseBinary parses a binary STL file.
func (p *Parser) parseBinary(reader io.Reader, name string) (*scene.Mesh, error) {
	mesh := scene.NewMesh(name)

	// Skip 80-byte header
	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("error reading triangle count: %w", err)
	}

	for i := uint32(0); i < triangleCount; i++ {
		// normal + 3 vertices, float32 each
		var record [12]float32
		if err := binary.Read(reader, binary.LittleEndian, &record); err != nil {
			return nil, fmt.Errorf("error reading triangle %d: %w", i, err)
		}

		// Skip the normal; 3MF geometry is positions and topology only.
		for v := 1; v <= 3; v++ {
			mesh.Positions = append(mesh.Positions,
				float64(record[3*v]),
				float64(record[3*v+1]),
				float64(record[3*v+2]),
			)
		}

		// Skip attribute byte count
		var attributeCount uint16
		if err := binary.Read(reader, binary.LittleEndian, &attributeCount); err != nil {
			return nil, fmt.Errorf("error reading attribute count: %w", err)
		}
	}

	return mesh, nil
}
