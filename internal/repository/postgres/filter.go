package postgres

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Pesokrava/storefront_catalog/internal/domain"
)

// view selects which soft-delete state a listing reads
type view int

const (
	activeView view = iota
	deletedView
)

// whereBuilder accumulates AND-ed predicates with positional arguments
type whereBuilder struct {
	clauses []string
	args    []interface{}
}

// arg binds v and returns its placeholder
func (w *whereBuilder) arg(v interface{}) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

func (w *whereBuilder) add(clause string) {
	w.clauses = append(w.clauses, clause)
}

func (w *whereBuilder) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func idArray(ids []uuid.UUID) interface{} {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	return pq.Array(strs)
}

// likePattern escapes LIKE wildcards of s and wraps it for substring matching
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func softDeleteClause(alias string, v view) string {
	if v == deletedView {
		return alias + ".deleted_at IS NOT NULL"
	}
	return alias + ".deleted_at IS NULL"
}

func productWhere(f domain.ProductFilter, v view) *whereBuilder {
	w := &whereBuilder{}
	w.add(softDeleteClause("p", v))

	if f.IDs != nil {
		w.add("p.id = ANY(" + w.arg(idArray(f.IDs)) + "::uuid[])")
	}
	if f.Name != "" {
		w.add("p.name ILIKE " + w.arg(likePattern(f.Name)))
	}
	if f.CategoryID != nil {
		w.add("p.category_id = " + w.arg(*f.CategoryID))
	}
	if f.BrandID != nil {
		w.add("p.brand_id = " + w.arg(*f.BrandID))
	}
	if f.StockStatus != "" {
		w.add("p.stock_status = " + w.arg(string(f.StockStatus)))
	}
	if f.IsActive != nil {
		w.add("p.is_active = " + w.arg(*f.IsActive))
	}
	if f.MinRating != nil {
		w.add("p.rating >= " + w.arg(*f.MinRating))
	}
	if f.ExcludeID != nil {
		w.add("p.id <> " + w.arg(*f.ExcludeID))
	}
	return w
}

func variantWhere(f domain.VariantFilter) *whereBuilder {
	w := &whereBuilder{}
	if !f.AnyState {
		w.add("v.is_active = TRUE")
		w.add("v.deleted_at IS NULL")
	}

	if len(f.ColorIDs) > 0 {
		w.add("v.color_id = ANY(" + w.arg(idArray(f.ColorIDs)) + "::uuid[])")
	}
	if f.Gender != "" {
		w.add("v.gender = " + w.arg(string(f.Gender)))
	}
	if f.MinPrice != nil {
		w.add("v.price_final >= " + w.arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		w.add("v.price_final <= " + w.arg(*f.MaxPrice))
	}
	if len(f.SizeIDs) > 0 {
		w.add("EXISTS (SELECT 1 FROM variant_sizes vs WHERE vs.variant_id = v.id AND vs.size_id = ANY(" +
			w.arg(idArray(f.SizeIDs)) + "::uuid[]))")
	}
	return w
}

func colorWhere(f domain.ColorFilter, v view) *whereBuilder {
	w := &whereBuilder{}
	w.add(softDeleteClause("c", v))

	if f.Name != "" {
		w.add("c.name ILIKE " + w.arg(likePattern(f.Name)))
	}
	if f.Type != "" {
		w.add("c.type = " + w.arg(string(f.Type)))
	}
	return w
}

// productSortColumns maps logical sort fields to product expressions
var productSortColumns = map[string]string{
	domain.SortFieldCreatedAt:     "p.created_at",
	domain.SortFieldUpdatedAt:     "p.updated_at",
	domain.SortFieldDeletedAt:     "p.deleted_at",
	domain.SortFieldName:          "p.name",
	domain.SortFieldTotalQuantity: "p.total_quantity",
	domain.SortFieldRating:        "p.rating",
	domain.SortFieldNumReviews:    "p.num_reviews",
	domain.SortFieldStockStatus:   "p.stock_status",
	domain.SortFieldPriceFinal: "(SELECT MIN(sv.price_final) FROM variants sv " +
		"WHERE sv.product_id = p.id AND sv.is_active = TRUE AND sv.deleted_at IS NULL)",
}

var colorSortColumns = map[string]string{
	domain.SortFieldCreatedAt: "c.created_at",
	domain.SortFieldUpdatedAt: "c.updated_at",
	domain.SortFieldDeletedAt: "c.deleted_at",
	domain.SortFieldName:      "c.name",
	domain.SortFieldType:      "c.type",
}

// orderBy renders sort against columns, skipping unknown fields, and ends
// with tiebreak so pages are stable.
func orderBy(sort domain.SortSpec, columns map[string]string, tiebreak string) string {
	parts := make([]string, 0, len(sort)+1)
	for _, s := range sort {
		col, ok := columns[s.Field]
		if !ok {
			continue
		}
		if s.Direction == domain.SortAsc {
			parts = append(parts, col+" ASC NULLS LAST")
		} else {
			parts = append(parts, col+" DESC NULLS LAST")
		}
	}
	parts = append(parts, tiebreak)
	return " ORDER BY " + strings.Join(parts, ", ")
}

func limitOffset(w *whereBuilder, page domain.Page) string {
	return " LIMIT " + w.arg(page.Limit) + " OFFSET " + w.arg(page.Offset())
}
