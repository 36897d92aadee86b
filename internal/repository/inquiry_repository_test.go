package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestInquiryRepo_MarkRead(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInquiryRepo(db)

	mock.ExpectQuery("SELECT v.owner_id FROM inquiries i").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(10))
	mock.ExpectExec("UPDATE inquiries SET is_read = TRUE WHERE id = \\?").
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkRead(context.Background(), 5, 10))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInquiryRepo_MarkReadOtherOwner(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInquiryRepo(db)

	mock.ExpectQuery("SELECT v.owner_id FROM inquiries i").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(11))

	assert.ErrorIs(t, repo.MarkRead(context.Background(), 5, 10), ErrForbidden)
}

func TestInquiryRepo_MarkReadMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInquiryRepo(db)

	mock.ExpectQuery("SELECT v.owner_id FROM inquiries i").WillReturnError(sql.ErrNoRows)

	assert.ErrorIs(t, repo.MarkRead(context.Background(), 5, 10), ErrNotFound)
}
