//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	perr "donormatch/internal/platform/errors"
	"donormatch/internal/platform/store"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func TestLookupTables_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		AppName: "donormatch-geo-integration",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	})
	if err != nil {
		t.Fatalf("store open: %v", err)
	}
	defer st.Close(ctx)

	ddl := []string{
		`CREATE TABLE zip_city_states (zip5 text NOT NULL, city text NOT NULL, state text NOT NULL)`,
		`CREATE TABLE area_code_city_states (npa_id text NOT NULL, city text NOT NULL, state text NOT NULL)`,
		`INSERT INTO zip_city_states (zip5, city, state) VALUES
			('98101','SEATTLE','WA'),
			('10001','NEW YORK','NY'),
			('10001','MANHATTAN','NY'),
			('40047','','KY')`,
		`INSERT INTO area_code_city_states (npa_id, city, state) VALUES
			('206','SEATTLE','WA'),
			('206','TACOMA','WA'),
			('917','NEW YORK','')`,
	}
	for _, stmt := range ddl {
		if _, err := store.Exec(ctx, st.PG, stmt); err != nil {
			t.Fatalf("setup %q: %v", stmt[:24], err)
		}
	}
	if n, err := store.Scalar[int64](ctx, st.PG, `SELECT count(*) FROM zip_city_states`); err != nil || n != 4 {
		t.Fatalf("seed rows = %d, %v", n, err)
	}

	repo := NewPG().Bind(st.PG)

	t.Run("zip single", func(t *testing.T) {
		got, err := repo.CityStatesByZip(ctx, "98101")
		if err != nil {
			t.Fatalf("CityStatesByZip: %v", err)
		}
		if len(got) != 1 || got[0].City != "SEATTLE" || got[0].State != "WA" {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("zip multi city", func(t *testing.T) {
		got, err := repo.CityStatesByZip(ctx, "10001")
		if err != nil {
			t.Fatalf("CityStatesByZip: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %v, want 2 pairs", got)
		}
		// ordered by city
		if got[0].City != "MANHATTAN" || got[1].City != "NEW YORK" {
			t.Fatalf("order = %v", got)
		}
	})

	t.Run("partial rows excluded", func(t *testing.T) {
		got, err := repo.CityStatesByZip(ctx, "40047")
		if err != nil {
			t.Fatalf("CityStatesByZip: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("partial pair leaked: %v", got)
		}
		got, err = repo.CityStatesByAreaCode(ctx, "917")
		if err != nil {
			t.Fatalf("CityStatesByAreaCode: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("partial pair leaked: %v", got)
		}
	})

	t.Run("area code multi", func(t *testing.T) {
		got, err := repo.CityStatesByAreaCode(ctx, "206")
		if err != nil {
			t.Fatalf("CityStatesByAreaCode: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("single row read", func(t *testing.T) {
		cs, err := store.One(ctx, st.PG, scanCityState,
			`SELECT city, state FROM zip_city_states WHERE zip5 = $1`, "98101")
		if err != nil {
			t.Fatalf("One: %v", err)
		}
		if cs.City != "SEATTLE" || cs.State != "WA" {
			t.Fatalf("got %v", cs)
		}
		if _, err := store.One(ctx, st.PG, scanCityState,
			`SELECT city, state FROM zip_city_states WHERE zip5 = $1`, "00000"); !errors.Is(err, perr.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for an absent zip, got %v", err)
		}
	})

	t.Run("unknown keys are empty", func(t *testing.T) {
		if got, err := repo.CityStatesByZip(ctx, "00000"); err != nil || len(got) != 0 {
			t.Fatalf("unknown zip: %v, %v", got, err)
		}
		if got, err := repo.CityStatesByAreaCode(ctx, "999"); err != nil || len(got) != 0 {
			t.Fatalf("unknown npa: %v, %v", got, err)
		}
	})
}
