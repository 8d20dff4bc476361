package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	appointmentRepo "medicore/database/repository/appointment"
	clinicRepo "medicore/database/repository/clinic"
	"medicore/models"
	"medicore/utils"
)

const dateLayout = "2006-01-02"

// cacheTTL bounds staleness of the availability view between booking writes.
const cacheTTL = 30 * time.Second

// Service computes the bookable-slot view for a clinic and date.
type Service interface {
	GetAvailableSlots(ctx context.Context, clinicID, date string) ([]models.SlotAvailability, error)
	InvalidateCache(ctx context.Context, clinicID, date string)
}

// DefaultAvailabilityService implements Service on the Mongo repositories,
// with an optional Redis read-through cache (nil Cache disables caching).
type DefaultAvailabilityService struct {
	ClinicRepo clinicRepo.ClinicRepository
	ApptRepo   appointmentRepo.AppointmentRepository
	Cache      *redis.Client
}

func cacheKey(clinicID, date string) string {
	return fmt.Sprintf("avail:%s:%s", clinicID, date)
}

// GetAvailableSlots resolves the clinic's operating hours for the date,
// loads the occupying appointments and returns the full ordered grid with
// each candidate marked available or not. Callers filter as needed.
func (s *DefaultAvailabilityService) GetAvailableSlots(ctx context.Context, clinicID, date string) ([]models.SlotAvailability, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, InvalidDateError{Value: date}
	}

	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, cacheKey(clinicID, date)).Bytes(); err == nil {
			var cached []models.SlotAvailability
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	clinic, err := s.ClinicRepo.GetByID(ctx, clinicID)
	if err != nil {
		if errors.Is(err, clinicRepo.ErrNotFound) {
			return nil, NotFoundError{Resource: "clinic", ID: clinicID}
		}
		return nil, fmt.Errorf("clinic lookup failed: %w", err)
	}

	hours, open := clinic.HoursFor(int(day.Weekday()))
	if !open {
		return nil, ClosedError{ClinicID: clinicID, Date: date}
	}

	// Cancelled and completed appointments do not occupy the grid.
	appts, err := s.ApptRepo.GetActiveByClinicAndDate(ctx, clinicID, date)
	if err != nil {
		return nil, fmt.Errorf("appointment lookup failed: %w", err)
	}

	booked := make([]Interval, 0, len(appts))
	for _, a := range appts {
		iv, err := toInterval(a.TimeSlot)
		if err != nil {
			return nil, fmt.Errorf("appointment %s has a malformed timeslot: %w", a.ID, err)
		}
		booked = append(booked, iv)
	}

	slots, err := GenerateSlots(
		hours.Open, hours.Close,
		clinic.Settings.SlotDurationMinutes,
		clinic.Settings.MaxDailyAppointments,
		booked,
	)
	if err != nil {
		return nil, fmt.Errorf("slot generation failed: %w", err)
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(slots); err == nil {
			if err := s.Cache.Set(ctx, cacheKey(clinicID, date), raw, cacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("availability cache write failed",
					zap.String("clinicId", clinicID), zap.Error(err))
			}
		}
	}

	return slots, nil
}

// InvalidateCache drops the cached view after a booking write.
func (s *DefaultAvailabilityService) InvalidateCache(ctx context.Context, clinicID, date string) {
	if s.Cache == nil || clinicID == "" {
		return
	}
	if err := s.Cache.Del(ctx, cacheKey(clinicID, date)).Err(); err != nil {
		utils.GetLogger().Warn("availability cache invalidation failed",
			zap.String("clinicId", clinicID), zap.Error(err))
	}
}

func toInterval(slot models.TimeSlot) (Interval, error) {
	start, err := utils.ToMinutes(slot.Start)
	if err != nil {
		return Interval{}, err
	}
	end, err := utils.ToMinutes(slot.End)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}
