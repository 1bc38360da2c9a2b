package usecase

import (
	"context"

	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/domain/repository"
	"clinic-booking/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type StatsUsecase interface {
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
}

type statsUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	statsCache      *service.StatsCacheService
}

func NewStatsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	statsCache *service.StatsCacheService,
) StatsUsecase {
	return &statsUsecase{
		db:              db,
		log:             log,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		statsCache:      statsCache,
	}
}

// GetStats returns patient and appointment totals plus a per-status
// breakdown, served from the cache when possible.
func (u *statsUsecase) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	cached, ok, err := u.statsCache.Get(ctx)
	if err != nil {
		u.log.Warnf("Stats cache unavailable, counting from database: %+v", err)
	}
	if ok {
		return toStatsResponse(cached), nil
	}

	// read before counting so a mutation committed mid-count makes Set a no-op
	generation, genErr := u.statsCache.Generation(ctx)
	if genErr != nil {
		u.log.Warnf("Stats cache unavailable, not caching: %+v", genErr)
	}

	stats, err := u.count(ctx)
	if err != nil {
		return nil, err
	}

	if genErr == nil {
		if err := u.statsCache.Set(ctx, stats, generation); err != nil {
			u.log.Warnf("Failed to cache stats (non-fatal): %+v", err)
		}
	}

	return toStatsResponse(stats), nil
}

func (u *statsUsecase) count(ctx context.Context) (*service.Stats, error) {
	byStatus := make([]int64, len(entity.AppointmentStatuses))
	stats := &service.Stats{AppointmentsByStatus: make(map[string]int64, len(byStatus))}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := u.patientRepo.Count(gctx, u.db)
		stats.TotalPatients = n
		return err
	})
	g.Go(func() error {
		n, err := u.appointmentRepo.Count(gctx, u.db, nil)
		stats.TotalAppointments = n
		return err
	})
	for i, status := range entity.AppointmentStatuses {
		i, status := i, status
		g.Go(func() error {
			n, err := u.appointmentRepo.Count(gctx, u.db, &entity.AppointmentFilter{Status: &status})
			byStatus[i] = n
			return err
		})
	}

	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to count stats: %+v", err)
		return nil, err
	}

	for i, status := range entity.AppointmentStatuses {
		stats.AppointmentsByStatus[string(status)] = byStatus[i]
	}
	return stats, nil
}

func toStatsResponse(stats *service.Stats) *dto.StatsResponse {
	byStatus := make(map[string]int64, len(entity.AppointmentStatuses))
	for _, status := range entity.AppointmentStatuses {
		byStatus[string(status)] = stats.AppointmentsByStatus[string(status)]
	}
	return &dto.StatsResponse{
		TotalPatients:        stats.TotalPatients,
		TotalAppointments:    stats.TotalAppointments,
		AppointmentsByStatus: byStatus,
	}
}
