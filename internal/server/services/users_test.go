package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/adminconsole/internal/common"
	"github.com/dmitrijs2005/adminconsole/internal/models"
	smodels "github.com/dmitrijs2005/adminconsole/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (*UserService, *fakeRepoManager) {
	t.Helper()
	m := newFakeRepoManager()
	m.users = newFakeUsers(
		&smodels.Account{User: models.User{ID: "admin-1", Email: "admin@example.com", Role: models.RoleAdmin, Status: models.UserActive}},
		&smodels.Account{User: models.User{ID: "u2", Email: "ann@example.com", Role: models.RoleUser, Status: models.UserActive}},
	)
	return NewUserService(nil, m, nil), m
}

func TestUserService_List(t *testing.T) {
	s, _ := newUserFixture(t)

	page, err := s.List(context.Background(), models.PageRequest{Size: 1}, models.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, int64(2), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.First)
	assert.False(t, page.Last)
}

func TestUserService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("bans and audits", func(t *testing.T) {
		db, mock := newSQLMockDB(t)
		_, m := newUserFixture(t)
		s := NewUserService(db, m, NewAuditService(db, m, nil, 0))

		mock.ExpectBegin()
		mock.ExpectCommit()
		require.NoError(t, s.SetStatus(ctx, testActor, "u2", models.UserBanned))

		assert.Equal(t, models.UserBanned, m.users.accounts["u2"].Status)
		require.Len(t, m.audit.entries, 1)
		assert.Equal(t, "user.status", m.audit.entries[0].Action)
		assert.Equal(t, "banned", m.audit.entries[0].Details)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown user rolls back", func(t *testing.T) {
		db, mock := newSQLMockDB(t)
		_, m := newUserFixture(t)
		s := NewUserService(db, m, NewAuditService(db, m, nil, 0))

		mock.ExpectBegin()
		mock.ExpectRollback()
		assert.ErrorIs(t, s.SetStatus(ctx, testActor, "nobody", models.UserBanned), common.ErrorNotFound)
		assert.Empty(t, m.audit.entries)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		s, m := newUserFixture(t)

		err := s.SetStatus(ctx, testActor, "u2", "frozen")
		assert.ErrorIs(t, err, common.ErrorValidation)

		err = s.SetStatus(ctx, testActor, testActor.ID, models.UserBanned)
		assert.ErrorIs(t, err, common.ErrorValidation)
		assert.Equal(t, models.UserActive, m.users.accounts[testActor.ID].Status)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	db, mock := newSQLMockDB(t)
	_, m := newUserFixture(t)
	s := NewUserService(db, m, NewAuditService(db, m, nil, 0))

	assert.ErrorIs(t, s.Delete(ctx, testActor, testActor.ID), common.ErrorValidation)

	mock.ExpectBegin()
	mock.ExpectCommit()
	require.NoError(t, s.Delete(ctx, testActor, "u2"))
	assert.NotContains(t, m.users.accounts, "u2")
	assert.Equal(t, []string{"user.delete"}, m.audit.actions())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostService(t *testing.T) {
	ctx := context.Background()
	db, mock := newSQLMockDB(t)
	m := newFakeRepoManager()
	m.posts.posts["p1"] = &models.Post{ID: "p1", Title: "Hello", Status: models.PostPublished}
	m.posts.posts["p2"] = &models.Post{ID: "p2", Title: "Spam", Status: models.PostPublished}
	s := NewPostService(db, m, NewAuditService(db, m, nil, 0))

	page, err := s.List(ctx, models.PageRequest{}, models.PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalElements)

	assert.ErrorIs(t, s.SetStatus(ctx, testActor, "p1", "archived"), common.ErrorValidation)

	mock.ExpectBegin()
	mock.ExpectCommit()
	require.NoError(t, s.SetStatus(ctx, testActor, "p1", models.PostHidden))
	p, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.PostHidden, p.Status)

	mock.ExpectBegin()
	mock.ExpectCommit()
	require.NoError(t, s.Delete(ctx, testActor, "p2"))
	_, err = s.Get(ctx, "p2")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	mock.ExpectBegin()
	mock.ExpectRollback()
	assert.ErrorIs(t, s.Delete(ctx, testActor, "p2"), common.ErrorNotFound)

	assert.Equal(t, []string{"post.status", "post.delete"}, m.audit.actions())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailService_ReadStarDelete(t *testing.T) {
	ctx := context.Background()
	db, mock := newSQLMockDB(t)
	m := newFakeRepoManager()
	m.emails.emails["e1"] = &models.Email{ID: "e1", Folder: models.FolderInbox, Subject: "Invoice"}
	s := NewEmailService(db, m, NewAuditService(db, m, nil, 0))

	require.NoError(t, s.MarkRead(ctx, "e1"))
	require.NoError(t, s.MarkRead(ctx, "e1"))
	require.NoError(t, s.SetStarred(ctx, "e1", true))
	e, err := s.Get(ctx, "e1")
	require.NoError(t, err)
	assert.True(t, e.Read)
	assert.True(t, e.Starred)
	assert.Empty(t, m.audit.entries, "reading and starring are not audited")

	assert.ErrorIs(t, s.SetStarred(ctx, "missing", true), common.ErrorNotFound)

	mock.ExpectBegin()
	mock.ExpectCommit()
	require.NoError(t, s.Delete(ctx, testActor, "e1"))
	assert.Equal(t, []string{"email.delete"}, m.audit.actions())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailService_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("stores in sent", func(t *testing.T) {
		db, mock := newSQLMockDB(t)
		m := newFakeRepoManager()
		s := NewEmailService(db, m, NewAuditService(db, m, nil, 0))

		mock.ExpectBegin()
		mock.ExpectCommit()
		e, err := s.Send(ctx, testActor, models.SendEmailRequest{To: " ann@example.com ", Subject: "Welcome", Body: "Hi"})
		require.NoError(t, err)

		assert.Equal(t, "sent-1", e.ID)
		assert.Equal(t, models.FolderSent, e.Folder)
		assert.Equal(t, "admin@example.com", e.From)
		assert.Equal(t, "ann@example.com", e.To)
		assert.True(t, e.Read)
		require.Len(t, m.audit.entries, 1)
		assert.Equal(t, "email.send", m.audit.entries[0].Action)
		assert.Equal(t, "sent-1", m.audit.entries[0].ResourceID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("validation", func(t *testing.T) {
		s := NewEmailService(nil, newFakeRepoManager(), nil)
		for _, req := range []models.SendEmailRequest{
			{To: "not-an-address", Subject: "x"},
			{To: "", Subject: "x"},
			{To: "ann@example.com", Subject: " ", Body: ""},
		} {
			_, err := s.Send(ctx, testActor, req)
			assert.ErrorIs(t, err, common.ErrorValidation, "%+v", req)
		}
	})
}
