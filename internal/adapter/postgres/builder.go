package postgres

import sq "github.com/Masterminds/squirrel"

// Psql is the statement builder for dynamic queries (dollar placeholders).
var Psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
