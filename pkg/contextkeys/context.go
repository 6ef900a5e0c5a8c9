package contextkeys

type ContextKey string

// DBContextKey carries the *gorm.DB (connection pool or an injected
// transaction) through the request. DBMiddleware sets it, BaseHandler.GetDB
// reads it.
const DBContextKey ContextKey = "db"
