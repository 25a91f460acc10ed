package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"dreamhouse_backend/internal/model"
)

// ExportLimit caps the number of rows in one CSV export.
const ExportLimit = 500

func exportRows[T any](ctx context.Context, s *Store, spec listSpec, lq ListQuery, w io.Writer, header []string, row func(T) []string) error {
	q, err := spec.where(s.conn(ctx).Model(new(T)), lq)
	if err != nil {
		return err
	}

	var items []T
	if err := q.Order(spec.order(lq)).Limit(ExportLimit).Find(&items).Error; err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, item := range items {
		if err := cw.Write(row(item)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// text quotes a free-text cell that a spreadsheet would evaluate as a
// formula.
func text(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}

func formatID(id *uint) string {
	if id == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*id), 10)
}

func formatUint(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func (s *Store) ExportEstates(ctx context.Context, lq ListQuery, w io.Writer) error {
	header := []string{"id", "type", "location", "cost", "currency", "bedrooms", "area", "floor",
		"description", "additional_information", "photo", "user_id", "admin_id", "created_at"}
	return exportRows(ctx, s, estateList, lq, w, header, func(e model.Estate) []string {
		return []string{
			formatUint(e.ID), string(e.Type), text(e.Location), fmt.Sprintf("%.2f", e.Cost), string(e.Currency),
			string(e.Bedrooms), text(e.Area), text(e.Floor), text(e.Description), text(e.AdditionalInformation), text(e.Photo),
			formatID(e.UserID), formatID(e.AdminID), formatTime(e.CreatedAt),
		}
	})
}

func (s *Store) ExportMessages(ctx context.Context, lq ListQuery, w io.Writer) error {
	header := []string{"id", "full_name", "email", "phone_number", "message", "page_url", "admin_id", "created_at"}
	return exportRows(ctx, s, messageList, lq, w, header, func(m model.Message) []string {
		return []string{
			formatUint(m.ID), text(m.FullName), text(m.Email), text(m.PhoneNumber), text(m.Body), text(m.PageURL),
			formatID(m.AdminID), formatTime(m.CreatedAt),
		}
	})
}

func (s *Store) ExportAdministrators(ctx context.Context, lq ListQuery, w io.Writer) error {
	header := []string{"id", "full_name", "email", "created_at"}
	return exportRows(ctx, s, administratorList, lq, w, header, func(a model.Administrator) []string {
		return []string{formatUint(a.ID), text(a.FullName), text(a.Email), formatTime(a.CreatedAt)}
	})
}

func (s *Store) ExportUsers(ctx context.Context, lq ListQuery, w io.Writer) error {
	header := []string{"id", "name", "email", "created_at"}
	return exportRows(ctx, s, userList, lq, w, header, func(u model.User) []string {
		return []string{formatUint(u.ID), text(u.Name), text(u.Email), formatTime(u.CreatedAt)}
	})
}
