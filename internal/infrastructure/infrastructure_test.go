package infrastructure

import (
	"io"
	"log/slog"
	"testing"

	"github.com/JaimeStill/rookery/internal/config"
	"github.com/JaimeStill/rookery/pkg/storage"
)

func TestNewWithoutStorage(t *testing.T) {
	infra, err := newInfrastructure(&config.Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	if infra.Storage != nil {
		t.Error("storage created without an endpoint")
	}
	if err := infra.Start(); err != nil {
		t.Errorf("start failed: %v", err)
	}

	families, err := infra.Registry.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Error("registry gathered no metric families")
	}
}

func TestNewWithStorage(t *testing.T) {
	cfg := &config.Config{
		Storage: storage.Config{
			ContainerName:    "models",
			ConnectionString: "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;",
		},
	}

	infra, err := newInfrastructure(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if infra.Storage == nil {
		t.Fatal("storage not created")
	}
}
