package store

import (
	"context"
	"time"

	"dreamhouse_backend/internal/model"
)

// DashboardStats is what the admin landing page shows.
type DashboardStats struct {
	TotalEstates       int64            `json:"total_estates"`
	TotalMessages      int64            `json:"total_messages"`
	UnassignedMessages int64            `json:"unassigned_messages"`
	TotalUsers         int64            `json:"total_users"`
	TotalAdmins        int64            `json:"total_administrators"`
	ViewsLastWeek      int64            `json:"views_last_week"`
	TopEstates         []TopEstate      `json:"top_estates"`
	DailyStats         []DailyStat      `json:"daily_stats"`
	EstateTypeStats    []EstateTypeStat `json:"estate_type_stats"`
}

type TopEstate struct {
	ID       uint    `json:"id"`
	Type     string  `json:"type"`
	Location string  `json:"location"`
	Cost     float64 `json:"cost"`
	Currency string  `json:"currency"`
	Views    int64   `json:"views"`
}

type DailyStat struct {
	Date        string `json:"date"`
	Views       int64  `json:"views"`
	NewEstates  int64  `json:"new_estates"`
	NewMessages int64  `json:"new_messages"`
}

type EstateTypeStat struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// DashboardStats aggregates counts as of now; daily figures cover the last
// seven UTC days including today.
func (s *Store) DashboardStats(ctx context.Context, now time.Time) (*DashboardStats, error) {
	db := s.conn(ctx)
	stats := &DashboardStats{TopEstates: []TopEstate{}, EstateTypeStats: []EstateTypeStat{}}

	counts := []struct {
		model interface{}
		where string
		dest  *int64
	}{
		{&model.Estate{}, "", &stats.TotalEstates},
		{&model.Message{}, "", &stats.TotalMessages},
		{&model.Message{}, "admin_id IS NULL", &stats.UnassignedMessages},
		{&model.User{}, "", &stats.TotalUsers},
		{&model.Administrator{}, "", &stats.TotalAdmins},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if c.where != "" {
			q = q.Where(c.where)
		}
		if err := q.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	today := now.UTC().Truncate(24 * time.Hour)
	weekStart := today.AddDate(0, 0, -6)
	if err := db.Model(&model.ViewHistory{}).
		Where("timestamp >= ?", weekStart).
		Count(&stats.ViewsLastWeek).Error; err != nil {
		return nil, err
	}

	if err := db.Table("estate").
		Select("estate.id, estate.type, estate.location, estate.cost, estate.currency, COUNT(view_history.id) AS views").
		Joins("JOIN view_history ON view_history.estate_id = estate.id").
		Group("estate.id, estate.type, estate.location, estate.cost, estate.currency").
		Order("views DESC, estate.id").
		Limit(5).
		Scan(&stats.TopEstates).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&model.Estate{}).
		Select("type, COUNT(*) AS count").
		Group("type").
		Order("type").
		Scan(&stats.EstateTypeStats).Error; err != nil {
		return nil, err
	}

	for i := 6; i >= 0; i-- {
		from := today.AddDate(0, 0, -i)
		to := from.AddDate(0, 0, 1)
		stat := DailyStat{Date: from.Format("2006-01-02")}

		if err := db.Model(&model.ViewHistory{}).
			Where("timestamp >= ? AND timestamp < ?", from, to).
			Count(&stat.Views).Error; err != nil {
			return nil, err
		}
		if err := db.Model(&model.Estate{}).
			Where("created_at >= ? AND created_at < ?", from, to).
			Count(&stat.NewEstates).Error; err != nil {
			return nil, err
		}
		if err := db.Model(&model.Message{}).
			Where("created_at >= ? AND created_at < ?", from, to).
			Count(&stat.NewMessages).Error; err != nil {
			return nil, err
		}
		stats.DailyStats = append(stats.DailyStats, stat)
	}

	return stats, nil
}
