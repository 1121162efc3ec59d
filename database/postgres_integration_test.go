//go:build integration

package database

import (
	"errors"
	"testing"

	"github.com/Sandanu06/citf-backend-v1/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

// Run with: go test -tags integration ./database
func TestPostgresGateway(t *testing.T) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=citf",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		t.Fatalf("could not start postgres: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	cfg := map[string]string{
		"DB_TYPE":     "postgres",
		"DB_HOST":     "localhost",
		"DB_PORT":     resource.GetPort("5432/tcp"),
		"DB_USER":     "postgres",
		"DB_PASSWORD": "secret",
		"DB_NAME":     "citf",
	}

	var d Database
	if err := pool.Retry(func() error {
		gdb, err := Open(cfg)
		if err != nil {
			return err
		}
		d = New(gdb)
		return nil
	}); err != nil {
		t.Fatalf("postgres not ready: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	id := func() uint {
		p := &models.Project{Title: "pg", Description: "integration"}
		if err := d.ProjectRepo().Add(p); err != nil {
			t.Fatalf("add project: %v", err)
		}
		return p.ID
	}()
	if err := d.ProjectImageRepo().AddAll(id, []string{"/uploads/a.png"}); err != nil {
		t.Fatalf("add images: %v", err)
	}
	rows, err := d.ProjectRepo().FindByIDWithImages(id)
	if err != nil || len(rows) != 1 || rows[0].ImageURL.String != "/uploads/a.png" {
		t.Fatalf("join = %+v, %v", rows, err)
	}

	const insertUser = `INSERT INTO users (username, password) VALUES (?, ?)`
	if _, err := exec(d.db, insertUser, "alice", "digest"); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	if _, err := exec(d.db, insertUser, "alice", "digest"); !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}

	// Without translation the driver error is a *pgconn.PgError carrying 23505.
	sqlDB, err := d.db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	_, err = sqlDB.Exec(`INSERT INTO users (username, password) VALUES ($1, $2)`, "alice", "digest")
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		t.Fatalf("expected SQLSTATE 23505, got %v", err)
	}
	if !IsUniqueViolation(err) {
		t.Fatal("IsUniqueViolation missed a 23505 error")
	}

	if err := d.UserRepo().Add(&models.User{Username: "alice", PasswordHash: "x"}); !IsUniqueViolation(err) {
		t.Fatalf("Add duplicate = %v, want unique violation", err)
	}
}
