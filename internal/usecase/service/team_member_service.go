package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/niklvrr/teammembers/internal/domain"
	"github.com/niklvrr/teammembers/internal/infrastructure/models/dto"
	"github.com/niklvrr/teammembers/internal/infrastructure/repository"
	"go.uber.org/zap"
)

var (
	createTeamMemberError = errors.New("create team member error")
	listTeamMembersError  = errors.New("list team members error")
	getTeamMemberError    = errors.New("get team member error")
	updateTeamMemberError = errors.New("update team member error")
	deleteTeamMemberError = errors.New("delete team member error")
)

// Интерфейс репозитория
type TeamMemberRepository interface {
	Exists(ctx context.Context, d *dto.MemberExistsDTO) (bool, error)
	Create(ctx context.Context, d *dto.CreateTeamMemberDTO) (*domain.TeamMemberInDB, error)
	List(ctx context.Context) ([]*domain.TeamMemberInDB, error)
	Get(ctx context.Context, d *dto.GetTeamMemberDTO) (*domain.TeamMemberInDB, error)
	Update(ctx context.Context, d *dto.UpdateTeamMemberDTO) (*domain.TeamMemberInDB, error)
	Delete(ctx context.Context, d *dto.DeleteTeamMemberDTO) error
}

type TeamMemberService struct {
	repo TeamMemberRepository
	log  *zap.Logger
}

func NewTeamMemberService(repo TeamMemberRepository, log *zap.Logger) *TeamMemberService {
	return &TeamMemberService{
		repo: repo,
		log:  log,
	}
}

func (s *TeamMemberService) Create(ctx context.Context, member *domain.TeamMember) (*domain.TeamMemberInDB, error) {
	s.log.Info("create team member request accepted",
		zap.Int64("id", member.Id),
	)

	// Проверяем, нет ли уже записи с таким id.
	// Проверка не атомарна со вставкой, гонку закрывает уникальный индекс в хранилище
	exists, err := s.repo.Exists(ctx, &dto.MemberExistsDTO{Id: member.Id})
	if err != nil {
		s.log.Error("failed to check team member existence",
			zap.Int64("id", member.Id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", createTeamMemberError, err)
	}
	if exists {
		return nil, ErrTeamMemberExists
	}

	// Запрос в бд
	res, err := s.repo.Create(ctx, &dto.CreateTeamMemberDTO{Member: member})
	if err != nil {
		s.log.Error("failed to create team member",
			zap.Int64("id", member.Id),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err, createTeamMemberError)
	}

	s.log.Info("team member created",
		zap.String("_id", res.StorageId),
		zap.Int64("id", res.Id),
	)

	return res, nil
}

func (s *TeamMemberService) List(ctx context.Context) ([]*domain.TeamMemberInDB, error) {
	s.log.Info("list team members request accepted")

	res, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list team members", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", listTeamMembersError, err)
	}

	if res == nil {
		res = make([]*domain.TeamMemberInDB, 0)
	}

	s.log.Info("team members listed", zap.Int("count", len(res)))
	return res, nil
}

func (s *TeamMemberService) Get(ctx context.Context, storageId string) (*domain.TeamMemberInDB, error) {
	s.log.Info("get team member request accepted",
		zap.String("_id", storageId),
	)

	res, err := s.repo.Get(ctx, &dto.GetTeamMemberDTO{StorageId: storageId})
	if err != nil {
		s.log.Error("failed to get team member",
			zap.String("_id", storageId),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err, getTeamMemberError)
	}

	return res, nil
}

func (s *TeamMemberService) Update(ctx context.Context, storageId string, member *domain.TeamMember) (*domain.TeamMemberInDB, error) {
	s.log.Info("update team member request accepted",
		zap.String("_id", storageId),
		zap.Int64("id", member.Id),
	)

	// Полная замена полей, частичного обновления нет
	res, err := s.repo.Update(ctx, &dto.UpdateTeamMemberDTO{
		StorageId: storageId,
		Member:    member,
	})
	if err != nil {
		s.log.Error("failed to update team member",
			zap.String("_id", storageId),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err, updateTeamMemberError)
	}

	s.log.Info("team member updated",
		zap.String("_id", res.StorageId),
		zap.Int64("id", res.Id),
	)

	return res, nil
}

func (s *TeamMemberService) Delete(ctx context.Context, storageId string) error {
	s.log.Info("delete team member request accepted",
		zap.String("_id", storageId),
	)

	err := s.repo.Delete(ctx, &dto.DeleteTeamMemberDTO{StorageId: storageId})
	if err != nil {
		s.log.Error("failed to delete team member",
			zap.String("_id", storageId),
			zap.Error(err),
		)
		return mapRepositoryError(err, deleteTeamMemberError)
	}

	s.log.Info("team member deleted", zap.String("_id", storageId))
	return nil
}

// mapRepositoryError маппит ошибки репозитория на доменные
func mapRepositoryError(err, opError error) error {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return WrapError(ErrInvalidTeamMemberId, err)
	case errors.Is(err, repository.ErrNotFound):
		return WrapError(ErrTeamMemberNotFound, err)
	case errors.Is(err, repository.ErrAlreadyExists):
		return WrapError(ErrTeamMemberExists, err)
	case errors.Is(err, repository.ErrInvalidInput):
		return WrapError(ErrInvalidInput, err)
	}

	// Неизвестная ошибка
	return fmt.Errorf("%w: %w", opError, err)
}
