package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/geoface_attendance/internal/models"
	"github.com/shenikar/geoface_attendance/internal/service"
)

type StudentRepository struct {
	db *pgxpool.Pool
}

func NewStudentRepository(db *pgxpool.Pool) service.StudentRepository {
	return &StudentRepository{db: db}
}

// Upsert добавляет ученика или обновляет его данные по номеру
func (r *StudentRepository) Upsert(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (id, name, class, parent_whatsapp, telegram_chat_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			class = EXCLUDED.class,
			parent_whatsapp = EXCLUDED.parent_whatsapp,
			telegram_chat_id = EXCLUDED.telegram_chat_id,
			updated_at = NOW();
	`
	_, err := r.db.Exec(ctx, query,
		student.ID,
		student.Name,
		student.Class,
		student.ParentWhatsapp,
		student.TelegramChatID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert student: %w", err)
	}
	return nil
}

// GetByID возвращает ученика по номеру
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	student := &models.Student{}
	query := `
		SELECT id, name, class, parent_whatsapp, telegram_chat_id
		FROM students
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.Name,
		&student.Class,
		&student.ParentWhatsapp,
		&student.TelegramChatID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("student %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get student by id: %w", err)
	}
	return student, nil
}

// List возвращает всех учеников по номеру
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	query := `
		SELECT id, name, class, parent_whatsapp, telegram_chat_id
		FROM students
		ORDER BY id;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		student := &models.Student{}
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Class,
			&student.ParentWhatsapp,
			&student.TelegramChatID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return students, nil
}
