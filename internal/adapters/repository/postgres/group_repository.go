package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/crew-app/crew/internal/core/domain"
	"github.com/crew-app/crew/internal/core/ports"
)

type GroupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) ports.GroupRepository {
	return &GroupRepository{db: db}
}

// Create inserts the group and its admin membership in one transaction.
func (r *GroupRepository) Create(ctx context.Context, name, invitationCode string, adminID int) (*domain.Group, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	group := &domain.Group{
		Name:           name,
		InvitationCode: invitationCode,
		AdminID:        adminID,
	}

	query := `
		INSERT INTO groups (name, invitation_code, admin_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, name, invitationCode, adminID).Scan(&group.ID); err != nil {
		return nil, err
	}

	memberQuery := `INSERT INTO group_members (group_id, user_id) VALUES ($1, $2)`
	if _, err := tx.ExecContext(ctx, memberQuery, group.ID, adminID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit group creation: %w", err)
	}
	return group, nil
}

func (r *GroupRepository) FindByID(ctx context.Context, id int) (*domain.Group, error) {
	query := `SELECT id, name, invitation_code, admin_id FROM groups WHERE id = $1`
	return r.scanGroup(r.db.QueryRowContext(ctx, query, id))
}

func (r *GroupRepository) FindByInvitationCode(ctx context.Context, code string) (*domain.Group, error) {
	query := `SELECT id, name, invitation_code, admin_id FROM groups WHERE invitation_code = $1`
	return r.scanGroup(r.db.QueryRowContext(ctx, query, code))
}

func (r *GroupRepository) FindGroupsByUserID(ctx context.Context, userID int) ([]*domain.Group, error) {
	query := `
		SELECT g.id, g.name, g.invitation_code, g.admin_id
		FROM groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE m.user_id = $1
		ORDER BY g.id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []*domain.Group{}
	for rows.Next() {
		group := &domain.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.InvitationCode, &group.AdminID); err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

func (r *GroupRepository) IsMember(ctx context.Context, groupID, userID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(&exists)
	return exists, err
}

func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID int) error {
	query := `INSERT INTO group_members (group_id, user_id) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, groupID, userID)
	return err
}

func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, userID int) error {
	query := `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, groupID, userID)
	return err
}

// Delete removes the group; memberships cascade at the database level.
func (r *GroupRepository) Delete(ctx context.Context, groupID int) error {
	query := `DELETE FROM groups WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, groupID)
	return err
}

func (r *GroupRepository) scanGroup(row *sql.Row) (*domain.Group, error) {
	group := &domain.Group{}
	err := row.Scan(&group.ID, &group.Name, &group.InvitationCode, &group.AdminID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return group, nil
}
