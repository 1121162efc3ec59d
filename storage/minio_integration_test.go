//go:build integration

package storage

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

// Run with: go test -tags integration ./storage
func TestMinioStore(t *testing.T) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "minio/minio",
		Tag:        "RELEASE.2024-01-31T20-20-33Z",
		Cmd:        []string{"server", "/data"},
		Env: []string{
			"MINIO_ROOT_USER=minio",
			"MINIO_ROOT_PASSWORD=minio123",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		t.Fatalf("could not start minio: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	endpoint := "localhost:" + resource.GetPort("9000/tcp")
	if err := pool.Retry(func() error {
		resp, err := http.Get("http://" + endpoint + "/minio/health/live")
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("minio not ready: %d", resp.StatusCode)
		}
		return nil
	}); err != nil {
		t.Fatalf("minio not ready: %v", err)
	}

	store, err := NewMinioStore(MinioConfig{
		Endpoint:  endpoint,
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "uploads",
	})
	if err != nil {
		t.Fatalf("NewMinioStore: %v", err)
	}

	if err := store.Save("a.txt", strings.NewReader("hello"), 5, "text/plain"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	f, _, err := store.Open("a.txt")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, _ := io.ReadAll(f)
	_ = f.Close()
	if string(data) != "hello" {
		t.Fatalf("read %q", data)
	}

	cleaner := NewCleaner(store, "/uploads")
	if failures := cleaner.Remove("/uploads/a.txt", "/uploads/missing.txt"); len(failures) != 0 {
		t.Fatalf("cleanup failures: %v", failures)
	}
	if _, _, err := store.Open("a.txt"); !IsNotExist(err) {
		t.Fatalf("Open after remove = %v, want not exist", err)
	}
}
