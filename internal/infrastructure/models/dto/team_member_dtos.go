package dto

import "github.com/niklvrr/teammembers/internal/domain"

type CreateTeamMemberDTO struct {
	Member *domain.TeamMember
}

type MemberExistsDTO struct {
	Id int64
}

type GetTeamMemberDTO struct {
	StorageId string
}

type UpdateTeamMemberDTO struct {
	StorageId string
	Member    *domain.TeamMember
}

type DeleteTeamMemberDTO struct {
	StorageId string
}
