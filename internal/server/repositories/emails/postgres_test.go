package emails

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/adminconsole/internal/common"
	"github.com/dmitrijs2005/adminconsole/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

var emailCols = []string{"id", "folder", "from_addr", "to_addr", "subject", "body", "is_read", "starred", "received_at"}

func TestList_Filters(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	where := ` WHERE folder = $1 AND is_read = false AND starred = true AND (subject ILIKE $2 OR from_addr ILIKE $3 OR to_addr ILIKE $4 OR body ILIKE $5)`
	like := "%invoice%"

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM emails` + where)).
		WithArgs("inbox", like, like, like, like).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+emailColumns+` FROM emails`+where+` ORDER BY received_at DESC LIMIT $6 OFFSET $7`)).
		WithArgs("inbox", like, like, like, like, 20, 0).
		WillReturnRows(sqlmock.NewRows(emailCols).
			AddRow("e1", "inbox", "billing@example.com", "admin@example.com", "Invoice", "...", false, true, time.Now()))

	items, total, err := repo.List(context.Background(), models.PageRequest{Size: 20},
		models.EmailFilter{Folder: models.FolderInbox, UnreadOnly: true, Starred: true, Search: "invoice"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.True(t, items[0].Starred)
	assert.False(t, items[0].Read)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM emails WHERE id = $1`)).WithArgs("e9").WillReturnError(sql.ErrNoRows)
	_, err := repo.Get(context.Background(), "e9")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMarkRead_Idempotent(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := regexp.QuoteMeta(`UPDATE emails SET is_read = true WHERE id = $1`)

	mock.ExpectExec(q).WithArgs("e1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs("e1").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkRead(context.Background(), "e1"))
	require.NoError(t, repo.MarkRead(context.Background(), "e1"))
}

func TestSetStarredAndDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE emails SET starred = $2 WHERE id = $1`)).
		WithArgs("e1", false).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetStarred(context.Background(), "e1", false))

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM emails WHERE id = $1`)).
		WithArgs("e2").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "e2"), common.ErrorNotFound)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+emails.*RETURNING\s+id,\s*received_at$`).
		WithArgs("sent", "admin@example.com", "ann@example.com", "Hi", "Hello Ann", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "received_at"}).AddRow("e5", now))

	e, err := repo.Create(context.Background(), &models.Email{
		Folder: models.FolderSent, From: "admin@example.com", To: "ann@example.com",
		Subject: "Hi", Body: "Hello Ann", Read: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "e5", e.ID)
	assert.Equal(t, now, e.ReceivedAt)
}
