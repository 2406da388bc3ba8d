package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/adminconsole/internal/dbx"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/auditlogs"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/conversations"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/emails"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/payments"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/posts"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/adminconsole/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same code
// runs against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Posts(db dbx.DBTX) posts.Repository
	Emails(db dbx.DBTX) emails.Repository
	AuditLogs(db dbx.DBTX) auditlogs.Repository
	Conversations(db dbx.DBTX) conversations.Repository
	Payments(db dbx.DBTX) payments.Repository
}
