package service

import (
	"context"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/repository"
)

type dashboardService struct {
	statsRepo repository.StatsRepository
	policy    CallPolicy
}

func NewDashboardService(statsRepo repository.StatsRepository, policy CallPolicy) DashboardService {
	return &dashboardService{statsRepo: statsRepo, policy: policy}
}

func (s *dashboardService) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	return read(ctx, s.policy, "dashboard stats", func(ctx context.Context) (*domain.DashboardStats, error) {
		return s.statsRepo.DashboardStats(ctx)
	})
}
