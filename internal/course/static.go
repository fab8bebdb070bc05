// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

package course

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// StaticProvider serves course geometry from an in-memory set, typically
// loaded from a YAML file at startup. It backs the hosting process when no
// remote course-data service is configured, and tests.
type StaticProvider struct {
	courses map[int64]*Course
}

// NewStaticProvider creates a provider over the given courses.
func NewStaticProvider(courses ...*Course) *StaticProvider {
	m := make(map[int64]*Course, len(courses))
	for _, c := range courses {
		m[c.ID] = c
	}
	return &StaticProvider{courses: m}
}

// LoadStaticProvider reads a YAML course file of the form:
//
//	courses:
//	  - id: 7
//	    name: Ballyliffin Old Links
//	    boundary: [{lat: ..., lon: ...}, ...]
//	    holes:
//	      - number: 1
//	        par: 4
//	        tee: {lat: ..., lon: ...}
//	        pin: {lat: ..., lon: ...}
func LoadStaticProvider(path string) (*StaticProvider, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load course file %s: %w", path, err)
	}

	var doc struct {
		Courses []*Course `koanf:"courses"`
	}
	if err := k.Unmarshal("", &doc); err != nil {
		return nil, fmt.Errorf("parse course file %s: %w", path, err)
	}

	return NewStaticProvider(doc.Courses...), nil
}

// GetCourse implements Provider.
func (p *StaticProvider) GetCourse(_ context.Context, courseID int64) (*Course, error) {
	c, ok := p.courses[courseID]
	if !ok {
		return nil, fmt.Errorf("course %d not found", courseID)
	}
	return c, nil
}
