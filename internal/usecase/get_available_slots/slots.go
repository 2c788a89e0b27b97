package get_available_slots

import (
	"sort"

	"github.com/m04kA/SMC-SmartScheduler/internal/domain"
	"github.com/m04kA/SMC-SmartScheduler/internal/scheduler"
)

// busyItems конвертирует активные задачи с интервалом во входные данные планировщика.
// Планировщик ожидает элементы, отсортированные по началу интервала.
func busyItems(tasks []*domain.Task) []scheduler.ScheduledItem {
	items := make([]scheduler.ScheduledItem, 0, len(tasks))

	for _, t := range tasks {
		if !t.IsActive() {
			continue
		}
		item, ok := t.ToScheduledItem()
		if !ok {
			continue
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Interval.Start.IsBefore(items[j].Interval.Start)
	})

	return items
}

// toSlots конвертирует результат планировщика в модель ответа
func toSlots(free []scheduler.FreeSlot) []Slot {
	result := make([]Slot, len(free))
	for i, slot := range free {
		result[i] = Slot{
			StartTime: slot.Interval.Start,
			EndTime:   slot.Interval.End,
		}
	}
	return result
}
