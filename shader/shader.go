// Package shader loads GPU program sources stored as Block Mixture files.
//
// A shader file carries one text block per stage plus any attribute blocks
// the renderer wants to read:
//
//	[ @program ]
//	@name: unlit
//
//	[ common ]
//	uniform mat4 u_mvp;
//
//	[ vertex ]
//	#version 330 core
//	@include(common)
//	...
//
//	[ fragment ]
//	...
//
// Includes are expanded in the stage blocks only, one level deep.
package shader

import (
	"errors"
	"fmt"
	"io"
	"os"

	bmx "github.com/anpydx/bmx-go"
)

// ShaderType identifies a program stage block.
type ShaderType string

const (
	// StageVertex names the text block holding the vertex stage.
	StageVertex ShaderType = "vertex"

	// StageFragment names the text block holding the fragment stage.
	StageFragment ShaderType = "fragment"
)

// Stages lists the blocks every shader file must define, in pipeline order.
var Stages = []ShaderType{StageVertex, StageFragment}

// ErrMissingStage is returned when a stage block is absent.
var ErrMissingStage = errors.New("failed to find stage block in shaders")

// Source holds the expanded stage code of one shader file.
type Source struct {
	Vertex   string
	Fragment string

	// Attributes are the attribute blocks of the file, keyed by block name.
	Attributes map[string]bmx.Attributes
}

// Stage returns the code of the given stage.
func (s *Source) Stage(t ShaderType) (string, bool) {
	switch t {
	case StageVertex:
		return s.Vertex, true
	case StageFragment:
		return s.Fragment, true
	default:
		return "", false
	}
}

// Load parses a shader file from r. The reader is not closed.
func Load(r io.Reader) (*Source, error) {
	data, err := bmx.Parse(r)
	if err != nil {
		return nil, err
	}
	return FromData(data)
}

// LoadFile opens, loads and closes the named shader file.
func LoadFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shader: %w", err)
	}
	defer f.Close()

	src, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// FromData checks that data holds both stages and expands their includes.
// data itself is not modified.
func FromData(data *bmx.Data) (*Source, error) {
	names := make([]string, 0, len(Stages))
	for _, stage := range Stages {
		if _, ok := data.Texts[string(stage)]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingStage, stage)
		}
		names = append(names, string(stage))
	}

	expanded := data.Clone()
	if err := bmx.ApplyIncludes(expanded, names...); err != nil {
		return nil, err
	}

	return &Source{
		Vertex:     expanded.Texts[string(StageVertex)],
		Fragment:   expanded.Texts[string(StageFragment)],
		Attributes: expanded.Attributes,
	}, nil
}
