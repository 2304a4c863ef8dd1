package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eringen/folio/content"
)

const messageColumns = `id, name, email, subject, message, status, created_at`

// ListMessages returns every contact message, newest first.
func (s *Store) ListMessages(ctx context.Context) ([]content.ContactMessage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+messageColumns+` FROM contact_messages ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	msgs := []content.ContactMessage{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	return msgs, nil
}

// GetMessage returns the message with id.
func (s *Store) GetMessage(ctx context.Context, id string) (content.ContactMessage, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+messageColumns+` FROM contact_messages WHERE id = ?`, id)
	m, err := scanMessage(row)
	if err != nil {
		return content.ContactMessage{}, fmt.Errorf("message %s: %w", id, notFound(err))
	}
	return m, nil
}

// InsertMessage stores m with a fresh id and returns the stored row.
func (s *Store) InsertMessage(ctx context.Context, m content.ContactMessage) (content.ContactMessage, error) {
	id := s.ids()
	status := m.Status
	if status == "" {
		status = content.MessageUnread
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO contact_messages (`+messageColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, m.Name, m.Email, nullString(m.Subject), m.Message, string(status), formatTime(s.now()))
	if err != nil {
		return content.ContactMessage{}, fmt.Errorf("insert message: %w", err)
	}
	return s.GetMessage(ctx, id)
}

// UpdateMessageStatus sets the status of the message with id.
func (s *Store) UpdateMessageStatus(ctx context.Context, id string, status content.MessageStatus) (content.ContactMessage, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE contact_messages SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return content.ContactMessage{}, fmt.Errorf("update message: %w", err)
	}
	if err := affected(res); err != nil {
		return content.ContactMessage{}, fmt.Errorf("update message %s: %w", id, err)
	}
	return s.GetMessage(ctx, id)
}

// DeleteMessage removes the message with id.
func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if err := affected(res); err != nil {
		return fmt.Errorf("delete message %s: %w", id, err)
	}
	return nil
}

func scanMessage(sc scanner) (content.ContactMessage, error) {
	var (
		m               content.ContactMessage
		subject         sql.NullString
		status, created string
	)
	if err := sc.Scan(&m.ID, &m.Name, &m.Email, &subject, &m.Message, &status, &created); err != nil {
		return content.ContactMessage{}, err
	}
	m.Subject = stringPtr(subject)
	m.Status = content.MessageStatus(status)

	var err error
	if m.CreatedAt, err = parseTime(created); err != nil {
		return content.ContactMessage{}, err
	}
	return m, nil
}
