package dbctx

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/juridica-backend/internal/pkg/ctxutil"
)

// Context bundles a request context with an optional GORM transaction.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// Conn returns Tx when set, else db, bound to Ctx.
func (c Context) Conn(db *gorm.DB) *gorm.DB {
	conn := c.Tx
	if conn == nil {
		conn = db
	}
	return conn.WithContext(ctxutil.Default(c.Ctx))
}
