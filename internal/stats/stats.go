package stats

import (
	"sort"

	"example.com/fittrack/internal/domain"
)

// ProgressPoints is the length of the per-exercise progress series.
const ProgressPoints = 5

// CategoryCounts counts entries per category inside the window around ref.
func CategoryCounts(entries []domain.ActivityEntry, ref domain.Date, w Window) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		if Contains(e.Date, ref, w) {
			counts[e.Category]++
		}
	}
	return counts
}

// PlanCounts counts resistance-training sessions per plan inside the window.
func PlanCounts(entries []domain.ActivityEntry, ref domain.Date, w Window) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		if e.IsResistanceTraining() && Contains(e.Date, ref, w) {
			counts[e.Details.PlanID]++
		}
	}
	return counts
}

// ActiveDays counts distinct days with at least one activity in the window.
func ActiveDays(entries []domain.ActivityEntry, ref domain.Date, w Window) int {
	days := make(map[string]struct{})
	for _, e := range entries {
		if Contains(e.Date, ref, w) {
			days[e.Date.String()] = struct{}{}
		}
	}
	return len(days)
}

// DailyEnergy is the energy balance of one day. Net is consumed minus expended.
type DailyEnergy struct {
	Date     domain.Date `json:"date"`
	Consumed float64     `json:"consumed"`
	Expended float64     `json:"expended"`
	Net      float64     `json:"net"`
}

// EnergyOn sums food intake and activity expenditure on day.
func EnergyOn(foods []domain.FoodEntry, entries []domain.ActivityEntry, day domain.Date) DailyEnergy {
	out := DailyEnergy{Date: day}
	for _, f := range foods {
		if f.Date.Equal(day) {
			out.Consumed += f.Nutrition.Calories
		}
	}
	for _, e := range entries {
		if e.Date.Equal(day) {
			out.Expended += e.Details.Calories
		}
	}
	out.Net = out.Consumed - out.Expended
	return out
}

// EnergySeries returns one DailyEnergy per day of the window, including
// days with nothing logged.
func EnergySeries(foods []domain.FoodEntry, entries []domain.ActivityEntry, ref domain.Date, w Window) []DailyEnergy {
	days := Days(ref, w)
	out := make([]DailyEnergy, 0, len(days))
	for _, d := range days {
		out = append(out, EnergyOn(foods, entries, d))
	}
	return out
}

// MacroTotals sums nutrition of the food eaten on day.
func MacroTotals(foods []domain.FoodEntry, day domain.Date) domain.Nutrition {
	var total domain.Nutrition
	for _, f := range foods {
		if f.Date.Equal(day) {
			total = total.Add(f.Nutrition)
		}
	}
	return total
}

// MealTotals sums nutrition per meal slot on day.
func MealTotals(foods []domain.FoodEntry, day domain.Date) map[domain.Meal]domain.Nutrition {
	out := make(map[domain.Meal]domain.Nutrition)
	for _, f := range foods {
		if f.Date.Equal(day) {
			out[f.Meal] = out[f.Meal].Add(f.Nutrition)
		}
	}
	return out
}

// PersonalRecord returns the highest load ever logged for exerciseID in a
// training session. ok is false when the exercise was never logged; a logged
// zero is a record of zero.
func PersonalRecord(entries []domain.ActivityEntry, exerciseID string) (best float64, ok bool) {
	for _, e := range entries {
		if !e.IsResistanceTraining() {
			continue
		}
		load, logged := e.Details.Performance[exerciseID]
		if !logged {
			continue
		}
		if !ok || load > best {
			best = load
			ok = true
		}
	}
	return best, ok
}

// Point is one logged load of an exercise.
type Point struct {
	Date domain.Date `json:"date"`
	Load float64     `json:"load"`
}

// Progress returns the last n logged loads of exerciseID in date order.
func Progress(entries []domain.ActivityEntry, exerciseID string, n int) []Point {
	points := make([]Point, 0)
	for _, e := range entries {
		if !e.IsResistanceTraining() {
			continue
		}
		if load, ok := e.Details.Performance[exerciseID]; ok {
			points = append(points, Point{Date: e.Date, Load: load})
		}
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	if n > 0 && len(points) > n {
		points = points[len(points)-n:]
	}
	return points
}

// Adherence counts the days up to and including today within the window on
// which supplementID was satisfied, and how many such days there were.
func Adherence(log domain.IntakeLog, supplementID string, ref, today domain.Date, w Window) (satisfied, days int) {
	for _, d := range Days(ref, w) {
		if d.After(today) {
			break
		}
		days++
		if log.Get(d, supplementID).Satisfied() {
			satisfied++
		}
	}
	return satisfied, days
}

// Summary is the rollup shown for a window.
type Summary struct {
	Window           Window         `json:"window"`
	Start            domain.Date    `json:"start"`
	End              domain.Date    `json:"end"`
	Sessions         int            `json:"sessions"`
	ActiveDays       int            `json:"active_days"`
	ByCategory       map[string]int `json:"by_category"`
	ByPlan           map[string]int `json:"by_plan"`
	CaloriesBurned   float64        `json:"calories_burned"`
	CaloriesConsumed float64        `json:"calories_consumed"`
}

// Summarize builds the rollup of the window around ref. End is inclusive.
func Summarize(entries []domain.ActivityEntry, foods []domain.FoodEntry, ref domain.Date, w Window) Summary {
	start, end := Bounds(ref, w)
	s := Summary{
		Window:     w,
		Start:      start,
		End:        end.AddDays(-1),
		ActiveDays: ActiveDays(entries, ref, w),
		ByCategory: CategoryCounts(entries, ref, w),
		ByPlan:     PlanCounts(entries, ref, w),
	}
	for _, n := range s.ByCategory {
		s.Sessions += n
	}
	for _, day := range EnergySeries(foods, entries, ref, w) {
		s.CaloriesBurned += day.Expended
		s.CaloriesConsumed += day.Consumed
	}
	return s
}
