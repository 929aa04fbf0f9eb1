package repository_test

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/subsync/internal/db"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	container, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("subsync"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	if err := db.Migrate(connStr); err != nil {
		return container, "", fmt.Errorf("db.Migrate: %w", err)
	}

	return container, connStr, nil
}

// pgSuite owns one migrated Postgres container for the suite embedding it.
type pgSuite struct {
	suite.Suite

	pool      *pgxpool.Pool
	container testcontainers.Container
	fx        fixtures
}

// before all tests in the suite
func (suite *pgSuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.fx = fixtures{pool: suite.pool}
}

// after all tests in the suite
func (suite *pgSuite) TearDownSuite() {
	ctx := context.Background()

	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(ctx))
	}
}

func (suite *pgSuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), `TRUNCATE TABLE
		proxy_orders, order_items, orders, subscription_line_items, subscriptions, addresses,
		payment_methods, shipping_methods, order_cycle_schedules, schedules, exchange_fees,
		exchange_variants, exchanges, coordinator_fees, order_cycles, enterprise_fees,
		variant_overrides, variants, customers, enterprise_relationships, enterprises CASCADE`)
	suite.NoError(err)
}
