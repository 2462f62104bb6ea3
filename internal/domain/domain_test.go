package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateJSONAndArithmetic(t *testing.T) {
	d := NewDate(2024, time.February, 28)
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2024-02-28"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	require.True(t, back.Equal(d))
	require.Equal(t, "2024-03-01", d.AddDays(2).String())

	local := time.Date(2024, time.March, 1, 23, 30, 0, 0, time.FixedZone("BRT", -3*3600))
	require.Equal(t, "2024-03-01", DateOf(local).String())
}

func TestTimeOfDayOn(t *testing.T) {
	tod, err := ParseTimeOfDay("08:05")
	require.NoError(t, err)
	require.Equal(t, "08:05", tod.String())

	at := tod.On(NewDate(2024, time.May, 2), time.UTC)
	require.Equal(t, time.Date(2024, time.May, 2, 8, 5, 0, 0, time.UTC), at)

	_, err = ParseTimeOfDay("25:00")
	require.Error(t, err)
}

func TestPlanSetRotation(t *testing.T) {
	plans := PlanSet{
		"C": {ID: "C", Name: "Treino C", Position: 2},
		"A": {ID: "A", Name: "Treino A", Position: 0},
		"B": {ID: "B", Name: "Treino B", Position: 1},
	}

	next, ok := plans.After("A")
	require.True(t, ok)
	require.Equal(t, "B", next.ID)

	next, _ = plans.After("C")
	require.Equal(t, "A", next.ID, "rotation wraps")

	next, _ = plans.After("deleted")
	require.Equal(t, "A", next.ID, "unknown plan falls back to the first")

	require.Equal(t, 3, plans.NextPosition())

	_, ok = PlanSet{}.After("A")
	require.False(t, ok)
}

func TestIntakeLogPutRemovesEmptyRecords(t *testing.T) {
	log := IntakeLog{}
	day := NewDate(2024, time.June, 1)

	log.Put(day, "supp_whey", Intake{Count: 2})
	require.True(t, log.Get(day, "supp_whey").Satisfied())

	log.Put(day, "supp_whey", Intake{})
	require.False(t, log.Get(day, "supp_whey").Satisfied())
	require.Empty(t, log)
}

func TestProfileAge(t *testing.T) {
	p := UserProfile{BirthDate: NewDate(1994, time.June, 15)}
	require.Equal(t, 29, p.AgeOn(NewDate(2024, time.June, 14)))
	require.Equal(t, 30, p.AgeOn(NewDate(2024, time.June, 15)))
}

func TestIconRefParsing(t *testing.T) {
	require.Equal(t, IconRef{Set: "material", Name: "volleyball"}, ParseIconRef("material:volleyball"))
	require.Equal(t, IconRef{Set: DefaultIconSet, Name: "barbell-outline"}, ParseIconRef("barbell-outline"))
	require.Equal(t, "ionicons:football", ParseIconRef("football").String())
}

func TestActivityEntryValidate(t *testing.T) {
	entry := ActivityEntry{Date: NewDate(2024, 1, 1), Category: SportGym}
	require.ErrorIs(t, entry.Validate(), ErrInvalidEntry)

	entry.Details.PlanID = "A"
	require.NoError(t, entry.Validate())

	entry.Details.Intensity = "extreme"
	require.ErrorIs(t, entry.Validate(), ErrInvalidEntry)

	sport := ActivityEntry{Date: NewDate(2024, 1, 1), Category: "futebol", Details: ActivityDetails{Performance: map[string]float64{"A1": 60}}}
	require.ErrorIs(t, sport.Validate(), ErrInvalidEntry, "only training sessions carry exercise loads")
}
