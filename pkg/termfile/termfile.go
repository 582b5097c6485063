// Package termfile loads tensor terms and symmetry declarations from TOML
// files, the input format of the tensorcanon CLI.
//
// A term file holds one or more [[term]] tables, each with its summations
// and factors, plus optional [[symmetry]] tables shared by all terms:
//
//	[[term]]
//	  [[term.sum]]
//	  dummy = "i"
//	  range = "O"
//
//	  [[term.factor]]
//	  base = "T"
//	  indices = ["i", "j"]
//
//	[[symmetry]]
//	base = "T"
//	arity = 2
//	preset = "antisymmetric"
package termfile

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tensorcanon/pkg/canon"
	"github.com/matzehuels/tensorcanon/pkg/errors"
	"github.com/matzehuels/tensorcanon/pkg/expr"
	"github.com/matzehuels/tensorcanon/pkg/perm"
)

// Term is one parsed input term.
type Term struct {
	Sums    []canon.Sum
	Factors []canon.ColouredFactor
}

// File is a fully parsed term file.
type File struct {
	Terms      []Term
	Symmetries *canon.SymmetryTable
}

// Load reads and parses the term file at path.
func Load(path string) (*File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "term file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "term file %s", path)
	}
	return Parse(data)
}

// Parse parses raw TOML term-file content.
func Parse(data []byte) (*File, error) {
	var raw rawFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "term file is not valid TOML")
	}
	if len(raw.Terms) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "term file declares no terms")
	}

	file := &File{}
	for i, rt := range raw.Terms {
		term, err := buildTerm(rt)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTerm, err, "term %d", i)
		}
		file.Terms = append(file.Terms, term)
	}

	if len(raw.Symmetries) > 0 {
		table := canon.NewSymmetryTable()
		for _, rs := range raw.Symmetries {
			if err := addSymmetry(table, rs); err != nil {
				return nil, err
			}
		}
		file.Symmetries = table
	}
	return file, nil
}

func buildTerm(rt rawTerm) (Term, error) {
	var term Term

	seen := make(map[string]bool, len(rt.Sums))
	for _, rs := range rt.Sums {
		if err := errors.ValidateSymbolName(rs.Dummy); err != nil {
			return Term{}, err
		}
		if seen[rs.Dummy] {
			return Term{}, errors.New(errors.ErrCodeInvalidTerm, "dummy %q is bound twice", rs.Dummy)
		}
		seen[rs.Dummy] = true

		r, err := buildRange(rs)
		if err != nil {
			return Term{}, err
		}
		term.Sums = append(term.Sums, canon.Sum{Dummy: rs.Dummy, Range: r})
	}

	for _, rf := range rt.Factors {
		if err := errors.ValidateSymbolName(rf.Base); err != nil {
			return Term{}, err
		}
		indices := make([]expr.Expr, len(rf.Indices))
		for j, src := range rf.Indices {
			e, err := expr.Parse(src)
			if err != nil {
				return Term{}, errors.Wrap(errors.ErrCodeInvalidTerm, err, "index %d of %s", j, rf.Base)
			}
			indices[j] = e
		}
		factor := expr.Factor(expr.NewTensor(rf.Base, indices...))
		if rf.Conjugated {
			factor = factor.Conjugate()
		}
		colour := rf.Colour
		if colour == "" {
			colour = rf.Base
		}
		term.Factors = append(term.Factors, canon.ColouredFactor{Factor: factor, Colour: colour})
	}

	if len(term.Sums) == 0 && len(term.Factors) == 0 {
		return Term{}, errors.New(errors.ErrCodeInvalidTerm, "term has neither sums nor factors")
	}
	return term, nil
}

func buildRange(rs rawSum) (expr.Range, error) {
	label := rs.Range
	if label == "" {
		return expr.Range{}, errors.New(errors.ErrCodeInvalidTerm, "sum over %q has no range", rs.Dummy)
	}
	if (rs.Lower == "") != (rs.Upper == "") {
		return expr.Range{}, errors.New(errors.ErrCodeInvalidTerm, "range %q needs both bounds or neither", label)
	}
	if rs.Lower == "" {
		return expr.NewRange(label), nil
	}
	lower, err := expr.Parse(rs.Lower)
	if err != nil {
		return expr.Range{}, errors.Wrap(errors.ErrCodeInvalidTerm, err, "lower bound of %q", label)
	}
	upper, err := expr.Parse(rs.Upper)
	if err != nil {
		return expr.Range{}, errors.Wrap(errors.ErrCodeInvalidTerm, err, "upper bound of %q", label)
	}
	return expr.NewBoundedRange(label, lower, upper), nil
}

func addSymmetry(table *canon.SymmetryTable, rs rawSymmetry) error {
	if err := errors.ValidateSymbolName(rs.Base); err != nil {
		return err
	}
	if rs.Preset != "" && len(rs.Generators) > 0 {
		return errors.New(errors.ErrCodeInvalidSymmetry, "symmetry for %q mixes a preset with explicit generators", rs.Base)
	}

	var group *perm.Group
	switch rs.Preset {
	case "antisymmetric":
		if rs.Arity < 2 {
			return errors.New(errors.ErrCodeInvalidSymmetry, "preset %q for %q needs arity >= 2", rs.Preset, rs.Base)
		}
		group = canon.Antisymmetric(rs.Arity)
	case "symmetric":
		if rs.Arity < 2 {
			return errors.New(errors.ErrCodeInvalidSymmetry, "preset %q for %q needs arity >= 2", rs.Preset, rs.Base)
		}
		group = canon.Symmetric(rs.Arity)
	case "":
		var err error
		group, err = buildGroup(rs)
		if err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidSymmetry, "unknown symmetry preset %q for %q", rs.Preset, rs.Base)
	}

	if rs.Arity > 0 {
		table.SetArity(rs.Base, rs.Arity, group)
	} else {
		table.Set(rs.Base, group)
	}
	return nil
}

func buildGroup(rs rawSymmetry) (*perm.Group, error) {
	if len(rs.Generators) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSymmetry, "symmetry for %q has neither preset nor generators", rs.Base)
	}

	degree := len(rs.Generators[0].Images)
	if rs.Arity > 0 {
		degree = rs.Arity
	}

	gens := make([]*perm.Perm, 0, len(rs.Generators))
	for i, rg := range rs.Generators {
		action, err := parseAction(rg.Action)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSymmetry, err, "generator %d of %q", i, rs.Base)
		}
		p, err := perm.New(rg.Images, action)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSymmetry, err, "generator %d of %q", i, rs.Base)
		}
		gens = append(gens, p)
	}

	return perm.NewGroup(degree, gens)
}

func parseAction(s string) (perm.Action, error) {
	switch s {
	case "", "ident":
		return perm.Ident, nil
	case "neg":
		return perm.Neg, nil
	case "conj":
		return perm.Conj, nil
	case "neg+conj", "conj+neg":
		return perm.Neg | perm.Conj, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

type rawFile struct {
	Terms      []rawTerm     `toml:"term"`
	Symmetries []rawSymmetry `toml:"symmetry"`
}

type rawTerm struct {
	Sums    []rawSum    `toml:"sum"`
	Factors []rawFactor `toml:"factor"`
}

type rawSum struct {
	Dummy string `toml:"dummy"`
	Range string `toml:"range"`
	Lower string `toml:"lower"`
	Upper string `toml:"upper"`
}

type rawFactor struct {
	Base       string   `toml:"base"`
	Indices    []string `toml:"indices"`
	Colour     string   `toml:"colour"`
	Conjugated bool     `toml:"conjugated"`
}

type rawSymmetry struct {
	Base       string         `toml:"base"`
	Arity      int            `toml:"arity"`
	Preset     string         `toml:"preset"`
	Generators []rawGenerator `toml:"generator"`
}

type rawGenerator struct {
	Images []int  `toml:"images"`
	Action string `toml:"action"`
}
