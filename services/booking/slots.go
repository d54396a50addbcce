package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"plenura/models"
	"plenura/utils"

	"go.uber.org/zap"
)

const (
	slotCacheTTL = time.Minute
	dateLayout   = "2006-01-02"
)

// GetAvailableSlots computes the bookable slots for a therapist on a date:
// weekly rules for that weekday, minus blocked periods covering the date,
// minus pending/confirmed bookings, sliced into consecutive windows of
// durationMinutes with no trailing partial. An empty result is not an error.
func (s *DefaultBookingService) GetAvailableSlots(ctx context.Context, therapistID, date string, durationMinutes int) ([]models.Slot, error) {
	if durationMinutes <= 0 {
		return nil, utils.InvalidInputErr("duration must be positive")
	}
	day, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return nil, utils.InvalidInputErr("date must be formatted as YYYY-MM-DD")
	}

	if cached, ok := s.slotCacheGet(ctx, therapistID, date, durationMinutes); ok {
		return cached, nil
	}

	rules, err := s.Availability.GetRules(ctx, therapistID)
	if err != nil {
		return nil, utils.UpstreamErr("failed to load availability rules", err)
	}

	blocked, err := s.Availability.ListBlockedCovering(ctx, therapistID, date)
	if err != nil {
		return nil, utils.UpstreamErr("failed to load blocked periods", err)
	}
	// Blocked periods are whole-day granularity: any hit empties the day.
	if len(blocked) > 0 {
		return []models.Slot{}, nil
	}

	dayEnd := day.AddDate(0, 0, 1)
	bookings, err := s.Repo.ListActiveInRange(ctx, therapistID, day, dayEnd)
	if err != nil {
		return nil, utils.UpstreamErr("failed to load bookings", err)
	}

	slots := computeDaySlots(day, rules, bookings, durationMinutes)
	s.slotCachePut(ctx, therapistID, date, durationMinutes, slots)
	return slots, nil
}

// minuteRange is a half-open [start, end) interval in minutes from midnight.
type minuteRange struct {
	start int
	end   int
}

// computeDaySlots is the pure slot builder: it subtracts booked ranges from
// active weekday rules and slices the free windows into duration-sized slots,
// discarding trailing partials. Slots are returned in day order.
func computeDaySlots(day time.Time, rules []models.AvailabilityRule, bookings []models.Booking, durationMinutes int) []models.Slot {
	weekday := int(day.Weekday())

	busy := make([]minuteRange, 0, len(bookings))
	for _, b := range bookings {
		busy = append(busy, clampToDay(day, b.ScheduledAt, b.ScheduledEndAt))
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].start < busy[j].start })

	slots := []models.Slot{}
	for _, rule := range rules {
		if !rule.Active || rule.Weekday != weekday {
			continue
		}
		for _, free := range subtractRanges(minuteRange{rule.StartMinute, rule.EndMinute}, busy) {
			for t := free.start; t+durationMinutes <= free.end; t += durationMinutes {
				slots = append(slots, models.Slot{
					Start: day.Add(time.Duration(t) * time.Minute),
					End:   day.Add(time.Duration(t+durationMinutes) * time.Minute),
				})
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })
	return slots
}

// clampToDay converts an absolute time range to minutes from the day's
// midnight, clamped to [0, 1440].
func clampToDay(day time.Time, start, end time.Time) minuteRange {
	startMin := int(start.Sub(day) / time.Minute)
	endMin := int(end.Sub(day) / time.Minute)
	if startMin < 0 {
		startMin = 0
	}
	if endMin > 24*60 {
		endMin = 24 * 60
	}
	return minuteRange{startMin, endMin}
}

// subtractRanges removes the sorted busy intervals from the window and
// returns the remaining free sub-windows in order.
func subtractRanges(window minuteRange, busy []minuteRange) []minuteRange {
	free := []minuteRange{}
	cursor := window.start
	for _, b := range busy {
		if b.end <= cursor || b.start >= window.end {
			continue
		}
		if b.start > cursor {
			free = append(free, minuteRange{cursor, b.start})
		}
		if b.end > cursor {
			cursor = b.end
		}
	}
	if cursor < window.end {
		free = append(free, minuteRange{cursor, window.end})
	}
	return free
}

func slotCacheKey(therapistID, date string, durationMinutes int) string {
	return fmt.Sprintf("slots:%s:%s:%d", therapistID, date, durationMinutes)
}

func (s *DefaultBookingService) slotCacheGet(ctx context.Context, therapistID, date string, durationMinutes int) ([]models.Slot, bool) {
	if s.SlotCache == nil {
		return nil, false
	}
	data, err := s.SlotCache.Get(ctx, slotCacheKey(therapistID, date, durationMinutes)).Result()
	if err != nil {
		return nil, false
	}
	var slots []models.Slot
	if err := json.Unmarshal([]byte(data), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (s *DefaultBookingService) slotCachePut(ctx context.Context, therapistID, date string, durationMinutes int, slots []models.Slot) {
	if s.SlotCache == nil {
		return
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := s.SlotCache.Set(ctx, slotCacheKey(therapistID, date, durationMinutes), data, slotCacheTTL).Err(); err != nil {
		utils.GetLogger().Debug("slot cache write failed", zap.Error(err))
	}
}

// invalidateSlotCache drops every cached duration variant for the booking's
// date by key pattern.
func (s *DefaultBookingService) invalidateSlotCache(ctx context.Context, therapistID string, scheduledAt time.Time) {
	if s.SlotCache == nil {
		return
	}
	pattern := fmt.Sprintf("slots:%s:%s:*", therapistID, scheduledAt.UTC().Format(dateLayout))
	keys, err := s.SlotCache.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := s.SlotCache.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Debug("slot cache invalidation failed", zap.Error(err))
	}
}
