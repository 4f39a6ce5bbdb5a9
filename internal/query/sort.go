package query

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
)

// Vocabulary maps named sort keys to sort specifications and lists the
// fields a literal JSON sort may reference.
type Vocabulary struct {
	Named  map[string]domain.SortSpec
	Fields map[string]struct{}
}

func fields(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func by(field string, dir domain.SortDirection) domain.SortSpec {
	return domain.SortSpec{{Field: field, Direction: dir}}
}

// NewestFirst is the default sort of every listing
var NewestFirst = by(domain.SortFieldCreatedAt, domain.SortDesc)

// RecentlyDeletedFirst is the default sort of deleted listings
var RecentlyDeletedFirst = by(domain.SortFieldDeletedAt, domain.SortDesc)

// ProductSorts is the sort vocabulary of product listings
var ProductSorts = Vocabulary{
	Named: map[string]domain.SortSpec{
		"created_at_asc":  by(domain.SortFieldCreatedAt, domain.SortAsc),
		"created_at_desc": by(domain.SortFieldCreatedAt, domain.SortDesc),
		"name_asc":        by(domain.SortFieldName, domain.SortAsc),
		"name_desc":       by(domain.SortFieldName, domain.SortDesc),
		"price-asc":       by(domain.SortFieldPriceFinal, domain.SortAsc),
		"price-desc":      by(domain.SortFieldPriceFinal, domain.SortDesc),
		"popular":         by(domain.SortFieldTotalQuantity, domain.SortDesc),
		"rating":          by(domain.SortFieldRating, domain.SortDesc),
		"newest":          by(domain.SortFieldCreatedAt, domain.SortDesc),
	},
	Fields: fields(
		domain.SortFieldCreatedAt,
		domain.SortFieldUpdatedAt,
		domain.SortFieldDeletedAt,
		domain.SortFieldName,
		domain.SortFieldPriceFinal,
		domain.SortFieldTotalQuantity,
		domain.SortFieldRating,
		domain.SortFieldNumReviews,
		domain.SortFieldStockStatus,
	),
}

// ColorSorts is the sort vocabulary of color listings
var ColorSorts = Vocabulary{
	Named: map[string]domain.SortSpec{
		"created_at_asc":  by(domain.SortFieldCreatedAt, domain.SortAsc),
		"created_at_desc": by(domain.SortFieldCreatedAt, domain.SortDesc),
		"name_asc":        by(domain.SortFieldName, domain.SortAsc),
		"name_desc":       by(domain.SortFieldName, domain.SortDesc),
	},
	Fields: fields(
		domain.SortFieldCreatedAt,
		domain.SortFieldUpdatedAt,
		domain.SortFieldDeletedAt,
		domain.SortFieldName,
		domain.SortFieldType,
	),
}

// BuildSort resolves a product sort key, falling back to newest first
func BuildSort(key string) domain.SortSpec {
	return ProductSorts.Resolve(key, NewestFirst)
}

// Resolve maps key to a sort specification. A key outside the named
// vocabulary is parsed as a JSON object of field to direction; when that
// fails too, NewestFirst is used. An empty key yields fallback.
func (v Vocabulary) Resolve(key string, fallback domain.SortSpec) domain.SortSpec {
	key = strings.TrimSpace(key)
	if key == "" {
		return clone(fallback)
	}
	if spec, ok := v.Named[key]; ok {
		return clone(spec)
	}
	spec, err := v.parseLiteral(key)
	if err != nil {
		return clone(NewestFirst)
	}
	return spec
}

var errBadSort = errors.New("invalid sort literal")

// parseLiteral decodes {"field": 1|-1|"asc"|"desc", ...} keeping key order
func (v Vocabulary) parseLiteral(raw string) (domain.SortSpec, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errBadSort
	}

	var spec domain.SortSpec
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		field, ok := tok.(string)
		if !ok {
			return nil, errBadSort
		}
		if _, known := v.Fields[field]; !known {
			return nil, errBadSort
		}

		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		dir, err := direction(tok)
		if err != nil {
			return nil, err
		}

		if _, dup := seen[field]; dup {
			continue
		}
		seen[field] = struct{}{}
		spec = append(spec, domain.SortField{Field: field, Direction: dir})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errBadSort
	}
	if len(spec) == 0 {
		return nil, errBadSort
	}
	return spec, nil
}

func direction(tok json.Token) (domain.SortDirection, error) {
	switch val := tok.(type) {
	case json.Number:
		switch val.String() {
		case "1":
			return domain.SortAsc, nil
		case "-1":
			return domain.SortDesc, nil
		}
	case string:
		switch strings.ToLower(val) {
		case "asc", "ascending":
			return domain.SortAsc, nil
		case "desc", "descending":
			return domain.SortDesc, nil
		}
	}
	return 0, errBadSort
}

func clone(spec domain.SortSpec) domain.SortSpec {
	out := make(domain.SortSpec, len(spec))
	copy(out, spec)
	return out
}
