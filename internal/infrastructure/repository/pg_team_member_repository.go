package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niklvrr/teammembers/internal/domain"
	"github.com/niklvrr/teammembers/internal/infrastructure/models/dto"
	"go.uber.org/zap"
)

const (
	memberExistsQuery = `
SELECT EXISTS (
    SELECT 1 FROM team_members
    WHERE member_id = $1
);`

	insertMemberQuery = `
INSERT INTO team_members (id, member_id, name, role, photo)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, member_id, name, role, photo;`

	listMembersQuery = `
SELECT id::text, member_id, name, role, photo
FROM team_members
ORDER BY created_at ASC, id ASC;`

	getMemberQuery = `
SELECT id::text, member_id, name, role, photo
FROM team_members
WHERE id = $1;`

	updateMemberQuery = `
UPDATE team_members
SET member_id = $2,
    name      = $3,
    role      = $4,
    photo     = $5
WHERE id = $1;`

	deleteMemberQuery = `
DELETE FROM team_members
WHERE id = $1;`
)

type rowScanner interface {
	Scan(dest ...any) error
}

type PgTeamMemberRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewPgTeamMemberRepository(db *pgxpool.Pool, log *zap.Logger) *PgTeamMemberRepository {
	return &PgTeamMemberRepository{
		db:  db,
		log: log,
	}
}

func (r *PgTeamMemberRepository) Exists(ctx context.Context, d *dto.MemberExistsDTO) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, memberExistsQuery, d.Id).Scan(&exists); err != nil {
		return false, handleDBError(err)
	}
	return exists, nil
}

func (r *PgTeamMemberRepository) Create(ctx context.Context, d *dto.CreateTeamMemberDTO) (*domain.TeamMemberInDB, error) {
	// Идентификатор хранилища генерируем на стороне приложения
	id := uuid.New()

	member, err := scanMember(r.db.QueryRow(ctx, insertMemberQuery,
		id.String(),
		d.Member.Id,
		d.Member.Name,
		d.Member.Role,
		d.Member.Photo,
	))
	if err != nil {
		return nil, handleDBError(err)
	}

	r.log.Debug("team member inserted",
		zap.String("_id", member.StorageId),
		zap.Int64("id", member.Id),
	)

	return member, nil
}

func (r *PgTeamMemberRepository) List(ctx context.Context) ([]*domain.TeamMemberInDB, error) {
	rows, err := r.db.Query(ctx, listMembersQuery)
	if err != nil {
		return nil, handleDBError(err)
	}
	defer rows.Close()

	members := make([]*domain.TeamMemberInDB, 0)
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, handleDBError(err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, handleDBError(err)
	}

	return members, nil
}

func (r *PgTeamMemberRepository) Get(ctx context.Context, d *dto.GetTeamMemberDTO) (*domain.TeamMemberInDB, error) {
	id, err := parseUUID(d.StorageId)
	if err != nil {
		return nil, err
	}

	member, err := scanMember(r.db.QueryRow(ctx, getMemberQuery, id.String()))
	if err != nil {
		return nil, handleDBError(err)
	}
	return member, nil
}

func (r *PgTeamMemberRepository) Update(ctx context.Context, d *dto.UpdateTeamMemberDTO) (*domain.TeamMemberInDB, error) {
	id, err := parseUUID(d.StorageId)
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Exec(ctx, updateMemberQuery,
		id.String(),
		d.Member.Id,
		d.Member.Name,
		d.Member.Role,
		d.Member.Photo,
	)
	if err != nil {
		return nil, handleDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	// Перечитываем запись после обновления
	member, err := scanMember(r.db.QueryRow(ctx, getMemberQuery, id.String()))
	if err != nil {
		return nil, handleDBError(err)
	}
	return member, nil
}

func (r *PgTeamMemberRepository) Delete(ctx context.Context, d *dto.DeleteTeamMemberDTO) error {
	id, err := parseUUID(d.StorageId)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, deleteMemberQuery, id.String())
	if err != nil {
		return handleDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanMember(row rowScanner) (*domain.TeamMemberInDB, error) {
	member := &domain.TeamMemberInDB{}
	err := row.Scan(
		&member.StorageId,
		&member.Id,
		&member.Name,
		&member.Role,
		&member.Photo,
	)
	if err != nil {
		return nil, err
	}
	return member, nil
}

func parseUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}
