package domain_test

import (
	"errors"
	"testing"

	"github.com/Baltazore/hex/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestNormalizeRequirement_Registry(t *testing.T) {
	raw := domain.RawRequirement{Name: "ecto", Constraint: "0.2.0"}

	req, err := domain.NormalizeRequirement(raw, domain.Root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Package != domain.NewPackageIdentity("ecto") {
		t.Errorf("unexpected package identity: %v", req.Package)
	}
	if req.RegistryName != "ecto" {
		t.Errorf("expected registry name ecto, got %q", req.RegistryName)
	}
	if req.Source.Kind != domain.SourceRegistry {
		t.Errorf("expected registry source, got %v", req.Source.Kind)
	}
	if !req.Requestor.IsRoot() {
		t.Error("expected root requestor")
	}

	v, err := domain.ParseVersion("0.2.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !req.Constraint.Check(v) {
		t.Error("expected constraint to accept 0.2.0")
	}
}

func TestNormalizeRequirement_PublishedAs(t *testing.T) {
	raw := domain.RawRequirement{Name: "local_postgres", PublishedAs: "postgrex", Constraint: ">= 0.0.0"}

	req, err := domain.NormalizeRequirement(raw, domain.Root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The identity tracks the local alias, the registry name the published name.
	if req.Package.String() != "local_postgres" {
		t.Errorf("unexpected identity: %v", req.Package)
	}
	if req.RegistryName != "postgrex" {
		t.Errorf("expected registry name postgrex, got %q", req.RegistryName)
	}
}

func TestNormalizeRequirement_Path(t *testing.T) {
	raw := domain.RawRequirement{Name: "ex_doc", Path: "../ex_doc", Override: true}

	req, err := domain.NormalizeRequirement(raw, domain.Root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Source.Kind != domain.SourcePath || req.Source.Path != "../ex_doc" {
		t.Errorf("unexpected source: %+v", req.Source)
	}
	if !req.Constraint.IsZero() {
		t.Errorf("expected zero constraint, got %v", req.Constraint)
	}
	if !req.Override {
		t.Error("expected override flag to survive normalization")
	}
}

func TestNormalizeRequirement_Invalid(t *testing.T) {
	cases := []struct {
		name string
		raw  domain.RawRequirement
	}{
		{"empty name", domain.RawRequirement{Constraint: ">= 0.0.0"}},
		{"no requirement or path", domain.RawRequirement{Name: "ecto"}},
		{"override path with constraint", domain.RawRequirement{Name: "ex_doc", Path: "../ex_doc", Constraint: "~> 0.1.0", Override: true}},
		{"bad constraint", domain.RawRequirement{Name: "ecto", Constraint: "not-a-version"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.NormalizeRequirement(tc.raw, domain.Root)
			if !errors.Is(err, domain.ErrInvalidDeclaration) {
				t.Fatalf("expected ErrInvalidDeclaration, got %v", err)
			}
		})
	}
}

func TestNormalizeRequirement_ErrorMetadata(t *testing.T) {
	_, err := domain.NormalizeRequirement(domain.RawRequirement{Name: "ecto"}, domain.NewPackageIdentity("phoenix"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var zErr *zerr.Error
	if !errors.As(err, &zErr) {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	meta := zErr.Metadata()
	if requestor, ok := meta["requestor"].(string); !ok || requestor != "phoenix" {
		t.Errorf("expected metadata requestor=phoenix, got %v", meta["requestor"])
	}
}
