package scheduler

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SmartScheduler/pkg/ptr"
	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

func at(hhmm string) types.TimeOfDay {
	t, err := types.ParseTimeOfDay(hhmm)
	if err != nil {
		panic(err)
	}
	return t
}

func iv(start, end string) TimeInterval {
	return TimeInterval{Start: at(start), End: at(end)}
}

func item(id int64, start, end string) ScheduledItem {
	return ScheduledItem{
		ID:       id,
		Date:     types.DateOf(2025, 3, 12),
		Interval: iv(start, end),
		Status:   "scheduled",
	}
}

func TestTimeInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    TimeInterval
		b    TimeInterval
		want bool
	}{
		{name: "identical", a: iv("09:00", "10:00"), b: iv("09:00", "10:00"), want: true},
		{name: "partial overlap", a: iv("09:00", "10:00"), b: iv("09:30", "10:30"), want: true},
		{name: "nested", a: iv("09:00", "12:00"), b: iv("10:00", "11:00"), want: true},
		{name: "touching end to start", a: iv("09:00", "10:00"), b: iv("10:00", "11:00"), want: false},
		{name: "touching start to end", a: iv("10:00", "11:00"), b: iv("09:00", "10:00"), want: false},
		{name: "disjoint", a: iv("09:00", "10:00"), b: iv("13:00", "14:00"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestTimeInterval_Validate(t *testing.T) {
	assert.NoError(t, iv("00:00", "24:00").Validate())
	assert.ErrorIs(t, iv("10:00", "10:00").Validate(), ErrInvalidArgument)
	assert.ErrorIs(t, iv("11:00", "10:00").Validate(), ErrInvalidArgument)
	assert.ErrorIs(t, TimeInterval{Start: -5, End: 10}.Validate(), ErrInvalidArgument)
	assert.ErrorIs(t, TimeInterval{Start: 1000, End: 1500}.Validate(), ErrInvalidArgument)
}

func TestFindConflicts(t *testing.T) {
	existing := []ScheduledItem{
		item(1, "09:00", "10:00"),
		item(2, "11:00", "12:00"),
		item(3, "13:00", "15:00"),
	}

	tests := []struct {
		name      string
		candidate TimeInterval
		existing  []ScheduledItem
		excludeID *int64
		wantIDs   []int64
	}{
		{
			name:      "fits between two items touching both",
			candidate: iv("10:00", "11:00"),
			existing:  existing[:2],
			wantIDs:   []int64{},
		},
		{
			name:      "overlaps the first item",
			candidate: iv("09:30", "10:30"),
			existing:  existing[:1],
			wantIDs:   []int64{1},
		},
		{
			name:      "spans several items and keeps input order",
			candidate: iv("09:30", "14:00"),
			existing:  existing,
			wantIDs:   []int64{1, 2, 3},
		},
		{
			name:      "excluded item is ignored even if it overlaps",
			candidate: iv("09:30", "11:30"),
			existing:  existing,
			excludeID: ptr.Ptr(int64(1)),
			wantIDs:   []int64{2},
		},
		{
			name:      "exclude id that is not present",
			candidate: iv("09:30", "09:45"),
			existing:  existing,
			excludeID: ptr.Ptr(int64(42)),
			wantIDs:   []int64{1},
		},
		{
			name:      "empty day",
			candidate: iv("09:00", "17:00"),
			existing:  nil,
			wantIDs:   []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflicts, err := FindConflicts(tt.candidate, tt.existing, tt.excludeID)
			require.NoError(t, err)

			ids := make([]int64, 0, len(conflicts))
			for _, c := range conflicts {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFindConflicts_InvalidCandidate(t *testing.T) {
	_, err := FindConflicts(iv("10:00", "09:00"), nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = FindConflicts(iv("10:00", "10:00"), nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFindConflicts_DoesNotMutateInput(t *testing.T) {
	existing := []ScheduledItem{item(1, "09:00", "10:00"), item(2, "11:00", "12:00")}
	snapshot := append([]ScheduledItem(nil), existing...)

	_, err := FindConflicts(iv("09:00", "12:00"), existing, ptr.Ptr(int64(2)))
	require.NoError(t, err)
	assert.Equal(t, snapshot, existing)
}

func TestFindAvailableSlots(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		existing []ScheduledItem
		window   WorkWindow
		want     []TimeInterval
	}{
		{
			name:     "first fitting gap after two morning items",
			duration: 90,
			existing: []ScheduledItem{item(1, "09:00", "10:00"), item(2, "11:00", "12:00")},
			window:   DefaultWorkWindow(),
			want:     []TimeInterval{iv("12:00", "13:30")},
		},
		{
			name:     "gap of exactly the duration qualifies",
			duration: 60,
			existing: []ScheduledItem{item(1, "09:00", "10:00"), item(2, "11:00", "12:00")},
			window:   DefaultWorkWindow(),
			want:     []TimeInterval{iv("10:00", "11:00"), iv("12:00", "13:00")},
		},
		{
			name:     "fully booked day",
			duration: 30,
			existing: []ScheduledItem{item(1, "09:00", "17:00")},
			window:   DefaultWorkWindow(),
			want:     []TimeInterval{},
		},
		{
			name:     "empty day yields one slot at work start",
			duration: 45,
			existing: nil,
			window:   DefaultWorkWindow(),
			want:     []TimeInterval{iv("09:00", "09:45")},
		},
		{
			name:     "duration longer than the window",
			duration: 481,
			existing: nil,
			window:   DefaultWorkWindow(),
			want:     []TimeInterval{},
		},
		{
			name:     "duration equal to the window",
			duration: 480,
			existing: nil,
			window:   DefaultWorkWindow(),
			want:     []TimeInterval{iv("09:00", "17:00")},
		},
		{
			name:     "item before work start pushes the cursor",
			duration: 30,
			existing: []ScheduledItem{item(1, "08:00", "09:30")},
			window:   DefaultWorkWindow(),
			want:     []TimeInterval{iv("09:30", "10:00")},
		},
		{
			name:     "nested item never moves the cursor backwards",
			duration: 60,
			existing: []ScheduledItem{
				item(1, "09:00", "12:00"),
				item(2, "10:00", "11:00"),
				item(3, "13:00", "17:00"),
			},
			window: DefaultWorkWindow(),
			want:   []TimeInterval{iv("12:00", "13:00")},
		},
		{
			name:     "overlapping items are tolerated",
			duration: 30,
			existing: []ScheduledItem{
				item(1, "09:00", "10:30"),
				item(2, "10:00", "11:00"),
			},
			window: DefaultWorkWindow(),
			want:   []TimeInterval{iv("11:00", "11:30")},
		},
		{
			name:     "gap before an item after work end runs past the window",
			duration: 60,
			existing: []ScheduledItem{item(1, "09:00", "16:30"), item(2, "18:00", "19:00")},
			window:   DefaultWorkWindow(),
			want:     []TimeInterval{iv("16:30", "17:30")},
		},
		{
			name:     "gap before the first item is not clipped to a short window",
			duration: 120,
			existing: []ScheduledItem{item(1, "11:00", "12:00")},
			window:   WorkWindow{Start: at("09:00"), End: at("10:00")},
			want:     []TimeInterval{iv("09:00", "11:00")},
		},
		{
			name:     "trailing gap is bounded by work end",
			duration: 120,
			existing: []ScheduledItem{item(1, "09:00", "16:00")},
			window:   DefaultWorkWindow(),
			want:     []TimeInterval{},
		},
		{
			name:     "custom window",
			duration: 30,
			existing: []ScheduledItem{item(1, "07:00", "07:30")},
			window:   WorkWindow{Start: at("06:00"), End: at("08:00")},
			want:     []TimeInterval{iv("06:00", "06:30"), iv("07:30", "08:00")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := FindAvailableSlots(tt.duration, tt.existing, tt.window)
			require.NoError(t, err)

			got := make([]TimeInterval, 0, len(slots))
			for _, s := range slots {
				got = append(got, s.Interval)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindAvailableSlots_EndOfDayBoundary(t *testing.T) {
	existing := []ScheduledItem{item(1, "09:00", "16:00")}

	slots, err := FindAvailableSlots(60, existing, DefaultWorkWindow())
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, iv("16:00", "17:00"), slots[0].Interval)

	slots, err = FindAvailableSlots(61, existing, DefaultWorkWindow())
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestFindAvailableSlots_InvalidArguments(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		window   WorkWindow
	}{
		{name: "zero duration", duration: 0, window: DefaultWorkWindow()},
		{name: "negative duration", duration: -15, window: DefaultWorkWindow()},
		{name: "inverted window", duration: 30, window: WorkWindow{Start: at("17:00"), End: at("09:00")}},
		{name: "empty window", duration: 30, window: WorkWindow{Start: at("12:00"), End: at("12:00")}},
		{name: "window past midnight", duration: 30, window: WorkWindow{Start: at("22:00"), End: types.TimeOfDay(1500)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindAvailableSlots(tt.duration, nil, tt.window)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestFindAvailableSlots_Properties(t *testing.T) {
	existing := []ScheduledItem{
		item(1, "09:15", "09:45"),
		item(2, "10:00", "11:30"),
		item(3, "12:10", "12:20"),
		item(4, "14:00", "16:45"),
	}

	for _, duration := range []int{5, 10, 15, 25, 30, 60, 120} {
		slots, err := FindAvailableSlots(duration, existing, DefaultWorkWindow())
		require.NoError(t, err)

		for i, slot := range slots {
			assert.Equal(t, duration, slot.Interval.Duration(), "slot length must equal duration")
			assert.False(t, slot.Interval.Start.IsBefore(DefaultWorkStart), "slot must not start before the window")

			conflicts, err := FindConflicts(slot.Interval, existing, nil)
			require.NoError(t, err)
			assert.Empty(t, conflicts, "slot %s overlaps existing items", slot.Interval)

			if i > 0 {
				assert.False(t, slot.Interval.Start.IsBefore(slots[i-1].Interval.End), "slots must be ordered and disjoint")
			}
		}
	}
}

func TestFindAvailableSlots_Idempotent(t *testing.T) {
	existing := []ScheduledItem{item(1, "09:00", "10:00"), item(2, "11:00", "12:00")}

	first, err := FindAvailableSlots(30, existing, DefaultWorkWindow())
	require.NoError(t, err)
	second, err := FindAvailableSlots(30, existing, DefaultWorkWindow())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFindAvailableSlots_Concurrent(t *testing.T) {
	existing := []ScheduledItem{item(1, "09:00", "10:00"), item(2, "11:00", "12:00")}
	expected, err := FindAvailableSlots(30, existing, DefaultWorkWindow())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := FindAvailableSlots(30, existing, DefaultWorkWindow())
			assert.NoError(t, err)
			assert.Equal(t, expected, got)
		}()
	}
	wg.Wait()
}
