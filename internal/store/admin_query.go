package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"dreamhouse_backend/internal/model"
	"dreamhouse_backend/internal/search"
	"dreamhouse_backend/pkg/utils/validation"
)

// ListQuery is what the admin console sends to its list and export
// endpoints.
type ListQuery struct {
	Search  string
	Filters map[string]string
	Sort    string
	Page    int
}

type filterKind int

const (
	filterExact filterKind = iota
	// filterRef matches a numeric id; "none" matches rows without one.
	filterRef
	filterNumber
)

type listSpec struct {
	searchable []string
	filters    map[string]filterKind
	sortable   map[string]bool
}

var (
	estateList = listSpec{
		searchable: []string{"location", "description", "type", "area", "floor"},
		filters: map[string]filterKind{
			"type":     filterExact,
			"currency": filterExact,
			"bedrooms": filterExact,
			"location": filterExact,
			"cost":     filterNumber,
			"user_id":  filterRef,
			"admin_id": filterRef,
		},
		sortable: columns("id", "type", "location", "cost", "bedrooms", "created_at"),
	}
	messageList = listSpec{
		searchable: []string{"full_name", "email", "phone_number", "message", "page_url"},
		filters: map[string]filterKind{
			"email":    filterExact,
			"admin_id": filterRef,
		},
		sortable: columns("id", "full_name", "email", "created_at"),
	}
	administratorList = listSpec{
		searchable: []string{"full_name", "email"},
		filters:    map[string]filterKind{"email": filterExact},
		sortable:   columns("id", "full_name", "email", "created_at"),
	}
	userList = listSpec{
		searchable: []string{"name", "email"},
		filters:    map[string]filterKind{"email": filterExact},
		sortable:   columns("id", "name", "email", "created_at"),
	}
)

func columns(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// where adds the search and filter conditions of lq to db. Filter keys
// outside the whitelist are ignored.
func (spec listSpec) where(db *gorm.DB, lq ListQuery) (*gorm.DB, error) {
	if term := strings.TrimSpace(lq.Search); term != "" && len(spec.searchable) > 0 {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		conds := make([]string, 0, len(spec.searchable))
		args := make([]interface{}, 0, len(spec.searchable))
		for _, col := range spec.searchable {
			conds = append(conds, fmt.Sprintf(`LOWER(CAST(%s AS TEXT)) LIKE ? ESCAPE '\'`, col))
			args = append(args, pattern)
		}
		db = db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}

	ve := &validation.ValidationError{}
	for key, raw := range lq.Filters {
		kind, ok := spec.filters[key]
		if !ok || raw == "" {
			continue
		}
		switch kind {
		case filterRef:
			if raw == "none" {
				db = db.Where(key + " IS NULL")
				continue
			}
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				ve.Add(key, "Must be an id or \"none\"")
				continue
			}
			db = db.Where(key+" = ?", uint(id))
		case filterNumber:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				ve.Add(key, "Must be a number")
				continue
			}
			db = db.Where(key+" = ?", n)
		default:
			db = db.Where(key+" = ?", raw)
		}
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	return db, nil
}

// order returns the ORDER BY for lq.Sort ("col" or "-col"). Unknown columns
// fall back to id.
func (spec listSpec) order(lq ListQuery) string {
	col, dir := lq.Sort, "ASC"
	if strings.HasPrefix(col, "-") {
		col, dir = col[1:], "DESC"
	}
	if !spec.sortable[col] {
		return "id ASC"
	}
	if col == "id" {
		return "id " + dir
	}
	return col + " " + dir + ", id ASC"
}

func adminList[T any](ctx context.Context, s *Store, spec listSpec, lq ListQuery) (search.Page[T], error) {
	q, err := spec.where(s.conn(ctx).Model(new(T)), lq)
	if err != nil {
		return search.Page[T]{Items: []T{}}, err
	}
	return search.Paginate[T](q, lq.Page, func(db *gorm.DB) *gorm.DB {
		return db.Order(spec.order(lq))
	})
}

func (s *Store) AdminListEstates(ctx context.Context, lq ListQuery) (search.Page[model.Estate], error) {
	return adminList[model.Estate](ctx, s, estateList, lq)
}

func (s *Store) AdminListMessages(ctx context.Context, lq ListQuery) (search.Page[model.Message], error) {
	return adminList[model.Message](ctx, s, messageList, lq)
}

func (s *Store) AdminListAdministrators(ctx context.Context, lq ListQuery) (search.Page[model.Administrator], error) {
	return adminList[model.Administrator](ctx, s, administratorList, lq)
}

func (s *Store) AdminListUsers(ctx context.Context, lq ListQuery) (search.Page[model.User], error) {
	return adminList[model.User](ctx, s, userList, lq)
}
