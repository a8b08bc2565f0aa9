package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cklam2/canteen/internal/models"
)

// Summary is the admin dashboard / integrator statistics object. Field names
// follow the wire format consumed by existing integrators.
type Summary struct {
	TotalStudents     int                        `json:"totalStudents"`
	TotalOrders       int                        `json:"totalOrders"`
	TotalRevenue      int64                      `json:"totalRevenue"`
	OrdersToday       int                        `json:"ordersToday"`
	OrdersThisWeek    int                        `json:"ordersThisWeek"`
	OrdersByStatus    map[models.OrderStatus]int `json:"ordersByStatus"`
	AverageOrderValue int64                      `json:"averageOrderValue"`
}

// Student is the per-student rollup derived by grouping orders by studentId.
type Student struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Programme   string `json:"programme"`
	LastOrderAt string `json:"lastLogin"`
	TotalOrders int    `json:"totalOrders"`
	TotalSpent  int64  `json:"totalSpent"`
}

const emailDomain = "student.hsu.edu.hk"

// Summarize scans the order set once. Revenue counts completed orders only;
// an order stuck at taken-unpaid contributes nothing. An empty set yields
// all zeros, never a division error.
func Summarize(orders []models.Order, now time.Time) Summary {
	byStatus := make(map[models.OrderStatus]int, len(models.AllStatuses))
	for _, st := range models.AllStatuses {
		byStatus[st] = 0
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)

	students := make(map[string]struct{})
	var revenue int64
	ordersToday := 0
	ordersThisWeek := 0

	for _, o := range orders {
		students[o.StudentID] = struct{}{}
		byStatus[o.Status]++

		if o.Status == models.StatusCompleted {
			revenue += o.Total
		}
		if !o.CreatedAt.Before(midnight) {
			ordersToday++
		}
		if !o.CreatedAt.Before(weekAgo) {
			ordersThisWeek++
		}
	}

	avg := int64(0)
	if len(orders) > 0 {
		avg = int64(math.Round(float64(revenue) / float64(len(orders))))
	}

	return Summary{
		TotalStudents:     len(students),
		TotalOrders:       len(orders),
		TotalRevenue:      revenue,
		OrdersToday:       ordersToday,
		OrdersThisWeek:    ordersThisWeek,
		OrdersByStatus:    byStatus,
		AverageOrderValue: avg,
	}
}

// Rollup groups the scanned orders by student. Name comes from the first
// order seen, last activity is the max createdAt, spend is the sum over all
// of the student's orders. Sorted by last activity, most recent first.
func Rollup(orders []models.Order) []Student {
	byID := make(map[string]*Student)
	lastAt := make(map[string]time.Time)

	for _, o := range orders {
		st, ok := byID[o.StudentID]
		if !ok {
			st = &Student{
				ID:        o.StudentID,
				Name:      o.StudentName,
				Email:     fmt.Sprintf("%s@%s", o.StudentID, emailDomain),
				Programme: "Unknown",
			}
			byID[o.StudentID] = st
			lastAt[o.StudentID] = o.CreatedAt
		}
		st.TotalOrders++
		st.TotalSpent += o.Total
		if o.CreatedAt.After(lastAt[o.StudentID]) {
			lastAt[o.StudentID] = o.CreatedAt
		}
	}

	out := make([]Student, 0, len(byID))
	for id, st := range byID {
		st.LastOrderAt = lastAt[id].UTC().Format(time.RFC3339)
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastOrderAt != out[j].LastOrderAt {
			return out[i].LastOrderAt > out[j].LastOrderAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}
