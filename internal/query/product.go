// Package query translates listing query parameters into repository filter,
// sort and page specifications.
package query

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
)

// Scope selects which product predicates a listing may use
type Scope int

const (
	// ScopePublic only lists active products
	ScopePublic Scope = iota
	// ScopeAdmin lists active and inactive products and honours isActive
	ScopeAdmin
)

// MaxPage caps the page number of every listing
const MaxPage = 1_000_000

// MaxLimit caps the page size of every listing
const MaxLimit = 100

// ProductQuery holds the raw listing parameters of a product listing
type ProductQuery struct {
	Page        domain.Page
	Name        string
	Category    string
	Brand       string
	StockStatus string
	IsActive    string
	Colors      string
	Sizes       string
	Gender      string
	MinPrice    *float64
	MaxPrice    *float64
	Sort        string
}

// ParsePage reads page and limit. Missing or malformed values fall back to
// page 1 and defaultLimit; limit is clamped to [1, MaxLimit] and page to
// MaxPage.
func ParsePage(values url.Values, defaultLimit int) domain.Page {
	page := domain.Page{Number: 1, Limit: defaultLimit}

	if n, err := strconv.Atoi(strings.TrimSpace(values.Get("page"))); err == nil && n >= 1 {
		page.Number = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(values.Get("limit"))); err == nil && n >= 1 {
		page.Limit = n
	}
	if page.Limit > MaxLimit {
		page.Limit = MaxLimit
	}
	if page.Limit < 1 {
		page.Limit = 1
	}
	if page.Number > MaxPage {
		page.Number = MaxPage
	}
	return page
}

// ParseProductQuery reads a product listing query. Malformed price bounds
// are the only parameters rejected.
func ParseProductQuery(values url.Values, defaultLimit int) (ProductQuery, error) {
	q := ProductQuery{
		Page:        ParsePage(values, defaultLimit),
		Name:        strings.TrimSpace(values.Get("name")),
		Category:    strings.TrimSpace(values.Get("category")),
		Brand:       strings.TrimSpace(values.Get("brand")),
		StockStatus: strings.TrimSpace(values.Get("stockStatus")),
		IsActive:    strings.TrimSpace(values.Get("isActive")),
		Colors:      strings.TrimSpace(values.Get("colors")),
		Sizes:       strings.TrimSpace(values.Get("sizes")),
		Gender:      strings.TrimSpace(values.Get("gender")),
		Sort:        strings.TrimSpace(values.Get("sort")),
	}

	var err error
	if q.MinPrice, err = parsePrice(values, "minPrice"); err != nil {
		return ProductQuery{}, err
	}
	if q.MaxPrice, err = parsePrice(values, "maxPrice"); err != nil {
		return ProductQuery{}, err
	}

	return q, nil
}

func parsePrice(values url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domain.Invalid("%s must be a number", key)
	}
	return &f, nil
}

// BuildFilter turns q into product and variant predicates. Ids that do not
// parse are ignored; enum values that are not recognised do not filter.
func BuildFilter(q ProductQuery, scope Scope) domain.FilterSpec {
	var spec domain.FilterSpec

	p := &spec.Product
	p.Name = q.Name
	p.CategoryID = parseID(q.Category)
	p.BrandID = parseID(q.Brand)
	if status := domain.StockStatus(q.StockStatus); status.Valid() {
		p.StockStatus = status
	}

	switch scope {
	case ScopePublic:
		active := true
		p.IsActive = &active
	case ScopeAdmin:
		if q.IsActive != "" {
			active := q.IsActive == "true"
			p.IsActive = &active
		}
	}

	v := &spec.Variant
	v.ColorIDs = parseIDList(q.Colors)
	v.SizeIDs = parseIDList(q.Sizes)
	if gender := domain.Gender(q.Gender); gender.Valid() {
		v.Gender = gender
	}
	v.MinPrice = q.MinPrice
	v.MaxPrice = q.MaxPrice

	return spec
}

// CacheKey identifies the normalized form of q
func (q ProductQuery) CacheKey() string {
	values := url.Values{}
	values.Set("page", strconv.Itoa(q.Page.Number))
	values.Set("limit", strconv.Itoa(q.Page.Limit))
	set := func(key, val string) {
		if val != "" {
			values.Set(key, val)
		}
	}
	set("name", strings.ToLower(q.Name))
	set("category", q.Category)
	set("brand", q.Brand)
	set("stockStatus", q.StockStatus)
	set("isActive", q.IsActive)
	set("colors", q.Colors)
	set("sizes", q.Sizes)
	set("gender", q.Gender)
	set("sort", q.Sort)
	if q.MinPrice != nil {
		values.Set("minPrice", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		values.Set("maxPrice", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}

	sum := sha256.Sum256([]byte(values.Encode()))
	return hex.EncodeToString(sum[:16])
}

func parseID(raw string) *uuid.UUID {
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func parseIDList(raw string) []uuid.UUID {
	if raw == "" {
		return nil
	}
	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		if id := parseID(strings.TrimSpace(part)); id != nil {
			ids = append(ids, *id)
		}
	}
	return ids
}

// ColorQuery holds the parsed parameters of a color listing
type ColorQuery struct {
	Page   domain.Page
	Filter domain.ColorFilter
	Sort   string
}

// ParseColorQuery reads a color listing query
func ParseColorQuery(values url.Values, defaultLimit int) ColorQuery {
	q := ColorQuery{
		Page: ParsePage(values, defaultLimit),
		Filter: domain.ColorFilter{
			Name: strings.TrimSpace(values.Get("name")),
		},
		Sort: strings.TrimSpace(values.Get("sort")),
	}
	if t := domain.ColorType(strings.TrimSpace(values.Get("type"))); t.Valid() {
		q.Filter.Type = t
	}
	return q
}
